package resolve

import (
	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
)

// LocalVariable is one method parameter, local declaration, catch binding,
// or lambda parameter visible at a particular point in a method body.
// Level counts nesting depth (a top-level method's parameters are 0, its
// body's declarations 1, and each nested block/thing/catch adds one) so
// that a name shadowed by an inner scope
// is preferred over an outer one of the same name.
type LocalVariable struct {
	Level int
	JType class.JType
	Name  string
	IsFun bool // lambda parameter with no declared type
	Range ast.Range

	// Initializer is the declaration's `= expr` right-hand side, set only
	// for EntryVarDecl locals that have one. ResolveVar uses it to resolve
	// a `var`-typed declaration against the initializer's own type.
	Initializer *ast.Expression
}

// LocalsAt collects every variable in scope at point, walking the file's
// Things to find the enclosing method/constructor and then its body,
// descending into nested blocks only when they contain point.
func LocalsAt(file ast.File, point ast.Point) []LocalVariable {
	var out []LocalVariable
	for _, t := range file.Things {
		out = append(out, localsInThing(t, point, 0)...)
	}
	return out
}

func localsInThing(t ast.Thing, point ast.Point, level int) []LocalVariable {
	if !t.Range.Contains(point) {
		return nil
	}
	var out []LocalVariable
	for _, m := range t.Members {
		switch m.Kind {
		case ast.MemberMethod, ast.MemberConstructor:
			if !m.Range.Contains(point) {
				continue
			}
			for _, p := range m.Params {
				v := LocalVariable{Level: level, Name: p.Name}
				if p.Type != nil {
					v.JType = class.FromAST(*p.Type)
				}
				out = append(out, v)
			}
			if m.Body != nil {
				out = append(out, localsInBlock(*m.Body, point, level+1)...)
			}
		case ast.MemberNestedThing:
			if m.Nested != nil {
				out = append(out, localsInThing(*m.Nested, point, level+1)...)
			}
		}
	}
	return out
}

func localsInBlock(b ast.Block, point ast.Point, level int) []LocalVariable {
	if !b.Range.Contains(point) {
		return nil
	}
	var out []LocalVariable
	for _, e := range b.Entries {
		out = append(out, localsInEntry(e, point, level)...)
	}
	return out
}

func localsInEntry(e ast.BlockEntry, point ast.Point, level int) []LocalVariable {
	var out []LocalVariable
	switch e.Kind {
	case ast.EntryVarDecl:
		if e.VarDecl == nil {
			return nil
		}
		jt := class.FromAST(e.VarDecl.Type)
		for _, v := range e.VarDecl.Vars {
			out = append(out, LocalVariable{Level: level, Name: v.Name, JType: jt, Range: v.Range, Initializer: v.Initializer})
		}
	case ast.EntryIf:
		if e.If == nil {
			return nil
		}
		out = append(out, localsInBlock(e.If.Then, point, level+1)...)
		if e.If.Else != nil {
			out = append(out, localsInBlock(*e.If.Else, point, level+1)...)
		}
	case ast.EntryWhile:
		if e.While != nil {
			out = append(out, localsInBlock(e.While.Body, point, level+1)...)
		}
	case ast.EntryForClassical:
		if e.ForClassical == nil {
			return nil
		}
		if !e.Range.Contains(point) {
			return nil
		}
		for _, init := range e.ForClassical.Init {
			out = append(out, localsInEntry(init, point, level+1)...)
		}
		out = append(out, localsInBlock(e.ForClassical.Body, point, level+1)...)
	case ast.EntryForEnhanced:
		if e.ForEnhanced == nil {
			return nil
		}
		if !e.Range.Contains(point) {
			return nil
		}
		out = append(out, LocalVariable{Level: level + 1, Name: e.ForEnhanced.Name, JType: class.FromAST(e.ForEnhanced.Type)})
		out = append(out, localsInBlock(e.ForEnhanced.Body, point, level+1)...)
	case ast.EntrySwitch:
		if e.Switch == nil {
			return nil
		}
		for _, arm := range e.Switch.Arms {
			if !arm.Range.Contains(point) {
				continue
			}
			for _, s := range arm.Statements {
				out = append(out, localsInEntry(s, point, level+1)...)
			}
			if arm.Block != nil {
				out = append(out, localsInBlock(*arm.Block, point, level+1)...)
			}
		}
	case ast.EntryTry:
		if e.Try == nil {
			return nil
		}
		if !e.Range.Contains(point) {
			return nil
		}
		for _, res := range e.Try.Resources {
			jt := class.FromAST(res.Type)
			for _, v := range res.Vars {
				out = append(out, LocalVariable{Level: level + 1, Name: v.Name, JType: jt, Range: v.Range})
			}
		}
		out = append(out, localsInBlock(e.Try.Body, point, level+1)...)
		for _, c := range e.Try.Catches {
			if !c.Body.Range.Contains(point) {
				continue
			}
			var jt class.JType
			if len(c.Types) > 0 {
				jt = class.FromAST(c.Types[0])
			}
			out = append(out, LocalVariable{Level: level + 1, Name: c.Name, JType: jt})
			out = append(out, localsInBlock(c.Body, point, level+1)...)
		}
		if e.Try.Finally != nil {
			out = append(out, localsInBlock(*e.Try.Finally, point, level+1)...)
		}
	case ast.EntrySynchronized:
		if e.Synchronized != nil {
			out = append(out, localsInBlock(e.Synchronized.Body, point, level+1)...)
		}
	case ast.EntryInlineBlock:
		if e.InlineBlock != nil {
			out = append(out, localsInBlock(*e.InlineBlock, point, level+1)...)
		}
	case ast.EntryNestedThing:
		if e.NestedThing != nil {
			out = append(out, localsInThing(*e.NestedThing, point, level+1)...)
		}
	}
	return out
}

// LocalScope implements the Locals interface ResolveCallChain family needs,
// picking the innermost (highest-level) matching declaration so that a
// shadowing inner-block variable wins over an outer one of the same name.
type LocalScope struct {
	vars []LocalVariable
}

// NewLocalScope builds a LocalScope from the variables visible at point.
func NewLocalScope(file ast.File, point ast.Point) LocalScope {
	return LocalScope{vars: LocalsAt(file, point)}
}

// Lookup implements Locals.
func (s LocalScope) Lookup(name string) (LocalVariable, bool) {
	found := false
	var best LocalVariable
	for _, v := range s.vars {
		if v.Name != name {
			continue
		}
		if !found || v.Level >= best.Level {
			best = v
			found = true
		}
	}
	return best, found
}
