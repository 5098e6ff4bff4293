// Package index holds the server's shared, concurrently-accessed symbol
// tables: class_map (every known Class, from dependency archives, runtime
// archives, and project sources), reference_map (which source classes
// import which other classes), and document_map (open document text/AST).
// Each table guards its own map with a dedicated sync.Mutex/sync.RWMutex;
// no operation holds more than one map's guard at a time.
package index

import (
	"strings"
	"sync"

	"github.com/oxhq/javalsp/internal/class"
)

// ClassMap is the concurrent class_path -> Class table. Reads share the
// RWMutex's read lock; writes take the write lock.
type ClassMap struct {
	mu      sync.RWMutex
	classes map[string]class.Class
}

// NewClassMap builds an empty ClassMap.
func NewClassMap() *ClassMap {
	return &ClassMap{classes: make(map[string]class.Class)}
}

// Get implements resolve.ClassMap.
func (m *ClassMap) Get(classPath string) (class.Class, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.classes[classPath]
	return c, ok
}

// Put inserts or replaces a class, e.g. after (re-)parsing a source file or
// loading an archive entry.
func (m *ClassMap) Put(c class.Class) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.classes[c.ClassPath] = c
}

// PutAll inserts a batch of classes, used when an archive or source tree
// finishes loading.
func (m *ClassMap) PutAll(classes []class.Class) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range classes {
		m.classes[c.ClassPath] = c
	}
}

// Delete removes a class_path from the table.
func (m *ClassMap) Delete(classPath string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.classes, classPath)
}

// Len reports how many classes are currently indexed.
func (m *ClassMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.classes)
}

// ByPackagePrefix returns every class whose class_path starts with
// "prefix.", used by the Package/Prefix branch of reference-map population.
func (m *ClassMap) ByPackagePrefix(prefix string) []class.Class {
	m.mu.RLock()
	defer m.mu.RUnlock()
	needle := prefix + "."
	var out []class.Class
	for path, c := range m.classes {
		if strings.HasPrefix(path, needle) {
			out = append(out, c)
		}
	}
	return out
}

// ByShortName returns every class whose simple Name matches name, used by
// the "import missing class" code action to offer every candidate import.
func (m *ClassMap) ByShortName(name string) []class.Class {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []class.Class
	for _, c := range m.classes {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Snapshot returns every indexed class. Used by tests and by a full
// workspace-symbol scan.
func (m *ClassMap) Snapshot() []class.Class {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]class.Class, 0, len(m.classes))
	for _, c := range m.classes {
		out = append(out, c)
	}
	return out
}

// ReferenceUnit is one recorded reference of a class_path from a project
// source class.
type ReferenceUnit struct {
	// FromClassPath is the referencing source class.
	FromClassPath string
}

// ReferenceMap is the concurrent class_path -> []ReferenceUnit table.
// Entries accumulate on document re-parse; consumers deduplicate by
// FromClassPath when rendering.
type ReferenceMap struct {
	mu   sync.RWMutex
	refs map[string][]ReferenceUnit
}

// NewReferenceMap builds an empty ReferenceMap.
func NewReferenceMap() *ReferenceMap {
	return &ReferenceMap{refs: make(map[string][]ReferenceUnit)}
}

// Append records that fromClassPath references target.
func (r *ReferenceMap) Append(target string, fromClassPath string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.refs[target] = append(r.refs[target], ReferenceUnit{FromClassPath: fromClassPath})
}

// Get returns the deduplicated set of class_paths that reference target.
func (r *ReferenceMap) Get(target string) []string {
	r.mu.RLock()
	units := append([]ReferenceUnit(nil), r.refs[target]...)
	r.mu.RUnlock()

	seen := make(map[string]bool, len(units))
	out := make([]string, 0, len(units))
	for _, u := range units {
		if seen[u.FromClassPath] {
			continue
		}
		seen[u.FromClassPath] = true
		out = append(out, u.FromClassPath)
	}
	return out
}

// Populate records one source class's imports into the reference map:
// Class/StaticClass units append a direct reference; Package/Prefix units
// conservatively append for every class in the class_map under that
// package, trusting callers (or a later membership check) to filter false
// positives.
func (r *ReferenceMap) Populate(sourceClassPath string, imports []class.ImportUnit, classMap *ClassMap) {
	for _, imp := range imports {
		switch imp.Kind {
		case class.ImportClass, class.ImportStaticClass, class.ImportStaticClassMethod:
			r.Append(imp.Path, sourceClassPath)
		case class.ImportPackage, class.ImportPrefix, class.ImportStaticPrefix:
			for _, c := range classMap.ByPackagePrefix(imp.Path) {
				r.Append(c.ClassPath, sourceClassPath)
			}
		}
	}
}

// Document is one open file's current text and derived state. The AST
// field is an opaque pointer (internal/parser's *ast.File) so this package
// stays decoupled from the parser's concrete type; the LSP glue package
// that populates document_map knows the concrete type.
type Document struct {
	Path string
	Text string
	AST  any
}

// DocumentMap is the concurrent path -> Document table backing open-file
// tracking (didOpen/didChange/didClose).
type DocumentMap struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

// NewDocumentMap builds an empty DocumentMap.
func NewDocumentMap() *DocumentMap {
	return &DocumentMap{docs: make(map[string]*Document)}
}

// Open inserts or replaces a document.
func (d *DocumentMap) Open(doc *Document) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.docs[doc.Path] = doc
}

// Get returns the document at path, if open.
func (d *DocumentMap) Get(path string) (*Document, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	doc, ok := d.docs[path]
	return doc, ok
}

// Close removes a document from the map.
func (d *DocumentMap) Close(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.docs, path)
}
