package lsp

import (
	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/resolve"
)

// Definition answers a textDocument/definition request: a type reference
// under the cursor resolves to its class's declaration; a call-chain under
// the cursor dispatches on the final CallItem the same way hover does, but
// each branch reports a Location instead of formatted text.
func (c *Context) Definition(path string, point ast.Point) ([]Location, bool) {
	file, ok := c.fileAt(path)
	if !ok {
		return nil, false
	}
	self, hasSelf := c.selfClass(file)

	if jt, ok := TypeRefAt(file, point); ok {
		if name, ok := jt.Identifier(); ok {
			if state, err := resolve.Resolve(name, importsOf(self), c.ClassMap); err == nil {
				if loc, ok := c.locationForClass(state.Class); ok {
					return []Location{loc}, true
				}
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
	return c.definitionCallChain(path, file, chain, point, self)
}

func (c *Context) definitionCallChain(path string, file ast.File, chain []resolve.CallItem, point ast.Point, self class.Class) ([]Location, bool) {
	truncated := resolve.ValidateToPoint(chain, point)
	if len(truncated) == 0 {
		return nil, false
	}
	last := truncated[len(truncated)-1]
	locals := resolve.NewLocalScope(file, point)

	switch last.Kind {
	case resolve.ItemThis:
		if loc, ok := c.locationForClass(self); ok {
			return []Location{loc}, true
		}
		return nil, false

	case resolve.ItemClass:
		state, err := resolve.Resolve(last.Name, importsOf(self), c.ClassMap)
		if err != nil {
			return nil, false
		}
		if loc, ok := c.locationForClass(state.Class); ok {
			return []Location{loc}, true
		}
		return nil, false

	case resolve.ItemVariable, resolve.ItemClassOrVariable:
		if v, ok := locals.Lookup(last.Name); ok {
			return []Location{{URI: path, Range: ToRange(v.Range)}}, true
		}
		if last.Kind == resolve.ItemClassOrVariable {
			state, err := resolve.Resolve(last.Name, importsOf(self), c.ClassMap)
			if err == nil {
				if loc, ok := c.locationForClass(state.Class); ok {
					return []Location{loc}, true
				}
			}
		}
		return nil, false

	case resolve.ItemMethodCall:
		state, err := resolve.ResolveCallChainToPoint(truncated[:len(truncated)-1], locals, importsOf(self), self, c.ClassMap, point)
		if err != nil {
			return nil, false
		}
		m, ok := findMethod(state.Class, last.Name)
		if !ok {
			return nil, false
		}
		owner := state.Class
		if m.Source != "" {
			if srcOwner, ok := c.ClassMap.Get(m.Source); ok {
				owner = srcOwner
			}
		}
		if loc, ok := c.locationForMethod(owner, m.Name); ok {
			return []Location{loc}, true
		}
		if loc, ok := c.locationForClass(owner); ok {
			return []Location{loc}, true
		}
		return nil, false

	case resolve.ItemFieldAccess:
		state, err := resolve.ResolveCallChainToPoint(truncated[:len(truncated)-1], locals, importsOf(self), self, c.ClassMap, point)
		if err != nil {
			return nil, false
		}
		f, ok := findField(state.Class, last.Name)
		if !ok {
			return nil, false
		}
		owner := state.Class
		if f.Source != "" {
			if srcOwner, ok := c.ClassMap.Get(f.Source); ok {
				owner = srcOwner
			}
		}
		if loc, ok := c.locationForField(owner, f.Name); ok {
			return []Location{loc}, true
		}
		if loc, ok := c.locationForClass(owner); ok {
			return []Location{loc}, true
		}
		return nil, false

	case resolve.ItemArgumentList:
		if last.ActiveParam != nil && *last.ActiveParam < len(last.FilledParams) {
			nested := last.FilledParams[*last.ActiveParam]
			if len(nested) > 0 {
				return c.definitionCallChain(path, file, nested, point, self)
			}
		}
		return c.definitionCallChain(path, file, last.Prev, point, self)
	}
	return nil, false
}

// locationForClass resolves where target's own declaration lives: if its
// source document is open, the Thing's own Range; otherwise the bare
// source file with an empty range, matching definition.rs's
// go_to_definition_range fallback for an unopened document.
func (c *Context) locationForClass(target class.Class) (Location, bool) {
	uri := uriForClassPath(target)
	if uri == "" {
		return Location{}, false
	}
	if doc, ok := c.DocumentMap.Get(uri); ok {
		if f, ok := doc.AST.(ast.File); ok {
			for _, t := range f.Things {
				if t.Name == target.Name {
					return Location{URI: uri, Range: ToRange(t.Range)}, true
				}
			}
		}
	}
	return Location{URI: uri, Range: Range{}}, true
}

func (c *Context) locationForMethod(owner class.Class, name string) (Location, bool) {
	uri := uriForClassPath(owner)
	if uri == "" {
		return Location{}, false
	}
	doc, ok := c.DocumentMap.Get(uri)
	if !ok {
		return Location{}, false
	}
	f, ok := doc.AST.(ast.File)
	if !ok {
		return Location{}, false
	}
	for _, t := range f.Things {
		if t.Name != owner.Name {
			continue
		}
		for _, m := range t.Members {
			if (m.Kind == ast.MemberMethod || m.Kind == ast.MemberConstructor) && m.Name == name {
				return Location{URI: uri, Range: ToRange(m.Range)}, true
			}
		}
	}
	return Location{}, false
}

func (c *Context) locationForField(owner class.Class, name string) (Location, bool) {
	uri := uriForClassPath(owner)
	if uri == "" {
		return Location{}, false
	}
	doc, ok := c.DocumentMap.Get(uri)
	if !ok {
		return Location{}, false
	}
	f, ok := doc.AST.(ast.File)
	if !ok {
		return Location{}, false
	}
	for _, t := range f.Things {
		if t.Name != owner.Name {
			continue
		}
		for _, m := range t.Members {
			if m.Kind == ast.MemberVariable && m.Name == name {
				return Location{URI: uri, Range: ToRange(m.Range)}, true
			}
		}
	}
	return Location{}, false
}
