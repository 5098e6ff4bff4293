package lsp

import (
	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/resolve"
)

// References answers a textDocument/references request: a type reference
// under the cursor looks class_path up in reference_map and reports the
// occurrences found in each referencing source file; a method-call under the cursor
// does the same but additionally scans each referencing file for
// occurrences of the method name, since reference_map only tracks
// import-level class references, not per-member usage.
func (c *Context) References(path string, point ast.Point) ([]Location, bool) {
	file, ok := c.fileAt(path)
	if !ok {
		return nil, false
	}
	self, hasSelf := c.selfClass(file)

	if jt, ok := TypeRefAt(file, point); ok {
		if name, ok := jt.Identifier(); ok {
			if state, err := resolve.Resolve(name, importsOf(self), c.ClassMap); err == nil {
				return c.referencesToClass(state.Class), true
			}
		}
	}

	if !hasSelf {
		return nil, false
	}
	expr, ok := ExpressionAt(file, point)
	if !ok {
		return nil, false
	}
	chain := resolve.BuildCallChain(expr)
	if len(chain) == 0 {
		return nil, false
	}
	return c.referencesCallChain(path, file, chain, point, self)
}

// referencesToClass reports every source file that imports target,
// locating the occurrence by scanning for the class's short name when the
// file is open, and falling back to a zero-range Location naming the file
// otherwise.
func (c *Context) referencesToClass(target class.Class) []Location {
	var out []Location
	for _, fromClassPath := range c.ReferenceMap.Get(target.ClassPath) {
		out = append(out, c.occurrencesFrom(fromClassPath, target.Name, occurrencesOfTypeName)...)
	}
	return out
}

// occurrencesFrom resolves a reference_map entry (a class_path) to its
// source document's URI before delegating to occurrenceLocations:
// reference_map keys and document_map keys live in different spaces (the
// former is always a class_path, the latter the path callers opened the
// document under), so a reference recorded against a class_path must be
// translated through class_map before it can find an open document.
func (c *Context) occurrencesFrom(fromClassPath, name string, finder func(ast.File, string) []ast.Range) []Location {
	uri := fromClassPath
	if rc, ok := c.ClassMap.Get(fromClassPath); ok {
		if u := uriForClassPath(rc); u != "" {
			uri = u
		}
	}
	return c.occurrenceLocations(uri, name, finder)
}

func (c *Context) referencesCallChain(path string, file ast.File, chain []resolve.CallItem, point ast.Point, self class.Class) ([]Location, bool) {
	truncated := resolve.ValidateToPoint(chain, point)
	if len(truncated) == 0 {
		return nil, false
	}
	last := truncated[len(truncated)-1]
	locals := resolve.NewLocalScope(file, point)

	switch last.Kind {
	case resolve.ItemMethodCall:
		state, err := resolve.ResolveCallChainToPoint(truncated[:len(truncated)-1], locals, importsOf(self), self, c.ClassMap, point)
		if err != nil {
			return nil, false
		}
		owner := state.Class
		if m, ok := findMethod(owner, last.Name); ok && m.Source != "" {
			if srcOwner, ok := c.ClassMap.Get(m.Source); ok {
				owner = srcOwner
			}
		}
		var out []Location
		out = append(out, c.occurrencesFrom(owner.ClassPath, last.Name, occurrencesOfCallName)...)
		for _, fromClassPath := range c.ReferenceMap.Get(owner.ClassPath) {
			out = append(out, c.occurrencesFrom(fromClassPath, last.Name, occurrencesOfCallName)...)
		}
		return out, true

	case resolve.ItemVariable, resolve.ItemClassOrVariable:
		if _, ok := locals.Lookup(last.Name); ok {
			return occurrencesInFile(file, path, last.Name, occurrencesOfCallName), true
		}
		return nil, false

	case resolve.ItemArgumentList:
		if last.ActiveParam != nil && *last.ActiveParam < len(last.FilledParams) {
			nested := last.FilledParams[*last.ActiveParam]
			if len(nested) > 0 {
				return c.referencesCallChain(path, file, nested, point, self)
			}
		}
		return c.referencesCallChain(path, file, last.Prev, point, self)
	}
	return nil, false
}

// occurrenceLocations opens fromPath in document_map (if open) and
// collects every range finder returns for name, falling back to a single
// zero-range Location naming the file when it isn't open (the file is
// known to reference the symbol; pinpointing the exact occurrence requires
// its AST).
func (c *Context) occurrenceLocations(fromPath, name string, finder func(ast.File, string) []ast.Range) []Location {
	doc, ok := c.DocumentMap.Get(fromPath)
	if !ok {
		return []Location{{URI: fromPath, Range: Range{}}}
	}
	f, ok := doc.AST.(ast.File)
	if !ok {
		return []Location{{URI: fromPath, Range: Range{}}}
	}
	return occurrencesInFile(f, fromPath, name, finder)
}

func occurrencesInFile(file ast.File, path, name string, finder func(ast.File, string) []ast.Range) []Location {
	ranges := finder(file, name)
	out := make([]Location, len(ranges))
	for i, r := range ranges {
		out[i] = Location{URI: path, Range: ToRange(r)}
	}
	return out
}

// occurrencesOfTypeName returns the range of every type reference in file
// whose identifier equals name.
func occurrencesOfTypeName(file ast.File, name string) []ast.Range {
	var out []ast.Range
	for _, jt := range TypeRefsIn(file) {
		if id, ok := jt.Identifier(); ok && id == name {
			out = append(out, jt.Range)
		}
	}
	return out
}

// occurrencesOfCallName returns the range of every recursive-access
// segment (method call, field access, or bare identifier) in file whose
// name equals name.
func occurrencesOfCallName(file ast.File, name string) []ast.Range {
	var out []ast.Range
	for _, expr := range ExpressionsIn(file) {
		for _, node := range expr.Nodes {
			if node.Kind != ast.ExprRecursive || node.Recursive == nil {
				continue
			}
			r := node.Recursive
			if r.Root.Kind == ast.RootIdentifier && r.Root.Name == name {
				out = append(out, r.Root.Range)
			}
			for _, seg := range r.Segments {
				if seg.Name == name {
					out = append(out, seg.Range)
				}
			}
		}
	}
	return out
}
