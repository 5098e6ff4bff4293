package main

import (
	"context"
	"fmt"
	"os"

	"github.com/oxhq/javalsp/internal/archive"
	"github.com/oxhq/javalsp/internal/buildtool"
	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/logging"
	"github.com/oxhq/javalsp/internal/progress"
	"github.com/oxhq/javalsp/internal/server"
	"github.com/oxhq/javalsp/internal/source"
)

// newReloadDependencies builds the function the "ReloadDependencies"
// execute-command wires into srv.SetReloadDependencies. It re-discovers
// every source file under root via internal/archive.DiscoverSources and
// re-projects each one into ws's class index, reporting one progress tick
// per file. Invoking the build-tool executable and unpacking resolved
// dependency archives remain external collaborators
// (internal/buildtool's package doc), so this only logs which family the
// project root belongs to and refreshes the source-backed half of the
// class index.
func newReloadDependencies(ws *server.Workspace, root string, logger *logging.Logger) func(context.Context, progress.Reporter) error {
	return func(ctx context.Context, reporter progress.Reporter) error {
		family := buildtool.DetectFamily(root)
		logger.Info("reload: project root %s uses build tool %s", root, family)

		paths, err := archive.DiscoverSources(ctx, root, nil)
		if err != nil {
			reporter.Report(progress.Update{Percentage: 100, Message: "discovery failed", Err: err})
			return err
		}

		total := len(paths)
		for i, path := range paths {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			text, err := os.ReadFile(path)
			if err != nil {
				logger.Warn("reload: skipping %s: %v", path, err)
				continue
			}

			result := server.Parse(text)
			classes := source.Project(result.File, class.Source{Kind: class.SourceHere, Path: path})
			ws.Classes.PutAll(classes)

			pct := 100
			if total > 0 {
				pct = ((i + 1) * 100) / total
			}
			reporter.Report(progress.Update{Percentage: pct, Message: fmt.Sprintf("indexed %s", path)})
		}

		return nil
	}
}
