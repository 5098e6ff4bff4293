// Package archive walks the two compiled-archive container shapes (library
// archives and module archives) and applies the module export filter that
// decides which of a module archive's classes are indexable.
package archive

import (
	"archive/zip"
	"bytes"
	"strings"

	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/classfile"
)

// Kind distinguishes the two archive shapes, handled identically after a
// header trim.
type Kind int

const (
	KindLibrary Kind = iota // a standard archive (e.g. a `.jar`)
	KindModule              // a 4-byte-prefixed archive rooted under `classes/` (e.g. a `.jmod`)
)

// Load decodes every class entry in a compiled archive into a Folder,
// applying the module export filter for KindModule archives. Per-entry
// failures (an entry that cannot be read, a class that fails to parse) are
// collected as warnings rather than aborting the whole archive; classes
// without the Public access flag are dropped without a warning.
func Load(data []byte, kind Kind, source class.Source) (class.Folder, []error) {
	if kind == KindModule && len(data) >= 4 {
		data = data[4:]
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return class.Folder{}, []error{err}
	}

	exports := collectModuleExports(zr)

	var folder class.Folder
	var warnings []error
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(f.Name), ".class") {
			continue
		}
		if strings.HasSuffix(f.Name, "module-info.class") {
			continue
		}
		classPath := entryClassPath(f.Name, kind)
		// An entry under a module-info's directory drops that directory, so
		// its class_path starts at the package.
		for prefix := range exports {
			if prefix != "" && strings.HasPrefix(f.Name, prefix) {
				classPath = entryClassPath(strings.TrimPrefix(f.Name, prefix), KindLibrary)
				break
			}
		}
		if !passesExportFilter(f.Name, classPath, exports) {
			continue
		}

		raw, rerr := readEntry(f)
		if rerr != nil {
			warnings = append(warnings, rerr)
			continue
		}
		c, cerr := classfile.LoadClass(raw, classPath, source, true)
		if cerr != nil {
			if ce, ok := cerr.(classfile.Error); ok && ce.Kind == classfile.ErrPrivate {
				continue
			}
			warnings = append(warnings, cerr)
			continue
		}
		folder.Classes = append(folder.Classes, c)
	}
	return folder, warnings
}

// moduleExports maps a module-info's containing directory prefix (the zip
// entry name with `module-info.class` trimmed off) to its unqualified
// exported packages, dotted the same way a class_path is.
type moduleExports map[string][]string

func collectModuleExports(zr *zip.Reader) moduleExports {
	exports := moduleExports{}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, "module-info.class") {
			continue
		}
		raw, err := readEntry(f)
		if err != nil {
			continue
		}
		mi, err := classfile.LoadModule(raw)
		if err != nil {
			continue
		}
		prefix := strings.TrimSuffix(f.Name, "module-info.class")
		dotted := make([]string, len(mi.Exports))
		for i, e := range mi.Exports {
			dotted[i] = strings.ReplaceAll(e, "/", ".")
		}
		exports[prefix] = dotted
	}
	return exports
}

// passesExportFilter reports whether an entry is visible: an entry passes
// unless its prefix matches a collected module-info prefix, in which case
// its class_path must start with one of that module's exported packages.
func passesExportFilter(entryName, classPath string, exports moduleExports) bool {
	for prefix, pkgs := range exports {
		if !strings.HasPrefix(entryName, prefix) {
			continue
		}
		for _, pkg := range pkgs {
			if classPath == pkg || strings.HasPrefix(classPath, pkg+".") {
				return true
			}
		}
		return false
	}
	return true
}

// entryClassPath computes the class_path of a zip entry by trimming a
// leading slash and the `.class` extension, replacing separators with
// dots, and for module archives removing the `classes.` root prefix.
func entryClassPath(name string, kind Kind) string {
	n := strings.TrimPrefix(name, "/")
	if idx := strings.LastIndex(n, "."); idx >= 0 {
		n = n[:idx]
	}
	dotted := strings.ReplaceAll(n, "/", ".")
	if kind == KindModule {
		dotted = strings.Replace(dotted, "classes.", "", 1)
	}
	return dotted
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(rc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
