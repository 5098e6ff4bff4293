package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/javalsp/internal/lexer"
)

func newLexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lex <file>",
		Short: "Lex a source file and print its token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			toks, errs := lexer.Lex(src)
			for _, t := range toks {
				if t.Token.Text != "" {
					fmt.Printf("%d:%d\t%s\t%q\n", t.Line, t.Column, t.Token.Kind, t.Token.Text)
				} else {
					fmt.Printf("%d:%d\t%s\n", t.Line, t.Column, t.Token.Kind)
				}
			}
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "%d:%d: unrecognized character %q\n", e.Line, e.Column, e.Char)
			}
			return nil
		},
	}
}
