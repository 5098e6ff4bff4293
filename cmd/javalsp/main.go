// Command javalsp is the entry point surface: a `server` subcommand
// starting the LSP on stdio, plus `lex`/`ast-check`/`ast-check-dir`
// developer utilities for driving the lexer and parser outside a client.
// Built on cobra's root-command-plus-AddCommand-registered-subcommands
// wiring, since the CLI has a natural multi-verb shape.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oxhq/javalsp/internal/config"
	"github.com/oxhq/javalsp/internal/logging"
	"github.com/oxhq/javalsp/internal/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "javalsp",
		Short: "Language server and developer tools for the class-based OO language in scope",
	}

	var debug bool
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")

	rootCmd.AddCommand(
		newServerCmd(&debug),
		newLexCmd(),
		newASTCheckCmd(),
		newASTCheckDirCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newServerCmd(debug *bool) *cobra.Command {
	var root string
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the language server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if *debug {
				cfg.Debug = true
			}
			logger := logging.New(cfg.Debug)

			projectRoot := root
			if projectRoot == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("resolving project root: %w", err)
				}
				projectRoot = wd
			}

			srv := server.NewServer(os.Stdin, os.Stdout, logger, nil)
			srv.SetReloadDependencies(newReloadDependencies(srv.Workspace(), projectRoot, logger))

			return srv.Run()
		},
	}
	cmd.Flags().StringVar(&root, "root", "", "project root to index (default: current directory)")
	return cmd
}
