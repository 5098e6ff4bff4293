package archive

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DiscoverSources walks a project's source tree and returns every
// `.java`-like file under root, honoring a set of doublestar ignore globs
// matched against both the root-relative path and the bare file name.
// Cancellation is honored between files, never mid-file.
func DiscoverSources(ctx context.Context, root string, ignore []string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".java") {
			return nil
		}
		rel, rerr := filepath.Rel(root, path)
		if rerr != nil {
			rel = path
		}
		base := filepath.Base(path)
		for _, pattern := range ignore {
			if matched, _ := doublestar.PathMatch(pattern, rel); matched {
				return nil
			}
			if matched, _ := doublestar.PathMatch(pattern, base); matched {
				return nil
			}
		}
		paths = append(paths, path)
		return nil
	})
	return paths, err
}
