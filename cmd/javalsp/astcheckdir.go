package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oxhq/javalsp/internal/archive"
)

func newASTCheckDirCmd() *cobra.Command {
	var ignore string
	cmd := &cobra.Command{
		Use:   "ast-check-dir <folder>",
		Short: "Recursively parse every source file under a folder",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			var patterns []string
			if ignore != "" {
				patterns = strings.Split(ignore, ",")
			}

			paths, err := archive.DiscoverSources(context.Background(), args[0], patterns)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", args[0], err)
				os.Exit(exitIOError)
			}

			worst := 0
			for _, path := range paths {
				if code := checkFile(path); code > worst {
					worst = code
				}
			}
			os.Exit(worst)
		},
	}
	cmd.Flags().StringVar(&ignore, "ignore", "", "comma-separated glob patterns to skip")
	return cmd
}
