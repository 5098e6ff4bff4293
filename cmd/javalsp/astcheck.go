package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/javalsp/internal/lexer"
	"github.com/oxhq/javalsp/internal/parser"
)

// exit codes: 1 I/O, 2 lex, 3 parse.
const (
	exitIOError    = 1
	exitLexError   = 2
	exitParseError = 3
)

func newASTCheckCmd() *cobra.Command {
	var diff bool
	cmd := &cobra.Command{
		Use:   "ast-check <file>",
		Short: "Parse a source file and report errors",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(checkFileVerbose(args[0], diff))
		},
	}
	cmd.Flags().BoolVar(&diff, "diff", false, "also print a whitespace-normalization diff for the file")
	return cmd
}

// checkFile lexes and parses path, printing any errors to stderr, and
// returns the process exit code matching its failure mode.
func checkFile(path string) int {
	return checkFileVerbose(path, false)
}

func checkFileVerbose(path string, diff bool) int {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return exitIOError
	}

	if diff {
		if d := normalizeWhitespaceDiff(path, src); d != "" {
			fmt.Print(d)
		}
	}

	toks, lexErrs := lexer.Lex(src)
	for _, e := range lexErrs {
		fmt.Fprintf(os.Stderr, "%s:%d:%d: unrecognized character %q\n", path, e.Line, e.Column, e.Char)
	}
	if len(lexErrs) > 0 {
		return exitLexError
	}

	_, perr := parser.ParseFile(toks)
	if perr != nil {
		pos := findPos(perr)
		line, col := 0, 0
		if pos >= 0 && pos < len(toks) {
			line, col = toks[pos].Line, toks[pos].Column
		}
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %v\n", path, line, col, perr)
		return exitParseError
	}

	return 0
}

// findPos extracts the furthest-parse token index from a parser.ParseError,
// falling back to -1 when err isn't the concrete type (it always is, per
// ParseFile's contract, but this avoids a panic on a nil error wrapper).
func findPos(err error) int {
	pe, ok := err.(parser.ParseError)
	if !ok {
		return -1
	}
	return pe.Pos
}
