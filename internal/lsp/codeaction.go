package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/resolve"
)

// CodeActions answers a textDocument/codeAction request at point, offering
// three quick fixes: importing a class referenced by short name but not
// imported, replacing a local variable's declared type with the type its
// initializer actually resolves to, and inserting a missing `@Override`
// annotation on a method that overrides a superclass method.
func (c *Context) CodeActions(path string, point ast.Point) []CodeAction {
	file, ok := c.fileAt(path)
	if !ok {
		return nil
	}
	self, hasSelf := c.selfClass(file)

	var out []CodeAction
	out = append(out, c.importMissingClass(path, file, point, self)...)
	if hasSelf {
		if a, ok := c.replaceVariableType(path, file, point, self); ok {
			out = append(out, a)
		}
		out = append(out, c.addMissingOverrides(path, file, self)...)
	}
	return out
}

// importMissingClass offers one import action per class_path the class map
// knows under the short identifier of the type reference under point, when
// that name isn't already reachable through the file's import list
// (resolve.Resolve would otherwise fail with ErrNotImported). Actions are
// ordered by class_path.
func (c *Context) importMissingClass(path string, file ast.File, point ast.Point, self class.Class) []CodeAction {
	jt, ok := TypeRefAt(file, point)
	if !ok {
		return nil
	}
	name, ok := jt.Identifier()
	if !ok || strings.Contains(name, ".") {
		return nil
	}
	if _, err := resolve.Resolve(name, importsOf(self), c.ClassMap); err == nil {
		return nil
	}
	candidates := c.ClassMap.ByShortName(name)
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ClassPath < candidates[j].ClassPath })

	insertAt := importInsertionPoint(file)
	var out []CodeAction
	for _, target := range candidates {
		edit := TextEdit{
			Range:   Range{Start: insertAt, End: insertAt},
			NewText: fmt.Sprintf("import %s;\n", target.ClassPath),
		}
		out = append(out, CodeAction{
			Title: fmt.Sprintf("Import '%s'", target.ClassPath),
			Kind:  "quickfix",
			Edit:  &WorkspaceEdit{Changes: map[string][]TextEdit{path: {edit}}},
		})
	}
	return out
}

func importInsertionPoint(file ast.File) Position {
	if len(file.Imports) > 0 {
		last := file.Imports[len(file.Imports)-1]
		return Position{Line: last.Range.End.Line + 1, Character: 0}
	}
	if file.Package != nil {
		return Position{Line: file.Package.Range.End.Line + 1, Character: 0}
	}
	return Position{Line: 0, Character: 0}
}

// replaceVariableType offers to rewrite a `var`-free local declaration's
// stated type to the type its initializer actually resolves to, when they
// differ (e.g. a local typed `Object` initialized from a call returning
// `String`).
func (c *Context) replaceVariableType(path string, file ast.File, point ast.Point, self class.Class) (CodeAction, bool) {
	decl, ok := varDeclAt(file, point)
	if !ok || decl.initializer == nil {
		return CodeAction{}, false
	}
	declared := class.FromAST(decl.declType)
	if declared.Kind == class.JVar {
		return CodeAction{}, false
	}
	chain := resolve.BuildCallChain(*decl.initializer)
	if len(chain) == 0 {
		return CodeAction{}, false
	}
	locals := resolve.NewLocalScope(file, point)
	state, err := resolve.ResolveCallChainValue(chain, locals, importsOf(self), self, c.ClassMap)
	if err != nil {
		return CodeAction{}, false
	}
	actual := state.JType
	if actual.String() == declared.String() {
		return CodeAction{}, false
	}
	edit := TextEdit{Range: ToRange(decl.typeRange), NewText: actual.String()}
	return CodeAction{
		Title: fmt.Sprintf("Change declared type to '%s'", actual.String()),
		Kind:  "quickfix",
		Edit:  &WorkspaceEdit{Changes: map[string][]TextEdit{path: {edit}}},
	}, true
}

type varDeclMatch struct {
	declType    ast.JType
	typeRange   ast.Range
	initializer *ast.Expression
}

func varDeclAt(file ast.File, point ast.Point) (varDeclMatch, bool) {
	for _, t := range file.Things {
		if m, ok := varDeclInThing(t, point); ok {
			return m, ok
		}
	}
	return varDeclMatch{}, false
}

func varDeclInThing(t ast.Thing, point ast.Point) (varDeclMatch, bool) {
	if !t.Range.Contains(point) {
		return varDeclMatch{}, false
	}
	for _, m := range t.Members {
		if m.Body != nil {
			if match, ok := varDeclInBlock(*m.Body, point); ok {
				return match, ok
			}
		}
		if m.Kind == ast.MemberNestedThing && m.Nested != nil {
			if match, ok := varDeclInThing(*m.Nested, point); ok {
				return match, ok
			}
		}
	}
	return varDeclMatch{}, false
}

func varDeclInBlock(b ast.Block, point ast.Point) (varDeclMatch, bool) {
	if !b.Range.Contains(point) {
		return varDeclMatch{}, false
	}
	for _, e := range b.Entries {
		if e.Kind == ast.EntryVarDecl && e.VarDecl != nil && e.Range.Contains(point) {
			for _, v := range e.VarDecl.Vars {
				if v.Range.Contains(point) {
					return varDeclMatch{declType: e.VarDecl.Type, typeRange: e.VarDecl.Type.Range, initializer: v.Initializer}, true
				}
			}
		}
		if nested, ok := nestedBlocksOf(e); ok {
			for _, blk := range nested {
				if match, ok := varDeclInBlock(blk, point); ok {
					return match, ok
				}
			}
		}
	}
	return varDeclMatch{}, false
}

func nestedBlocksOf(e ast.BlockEntry) ([]ast.Block, bool) {
	var out []ast.Block
	switch e.Kind {
	case ast.EntryIf:
		if e.If != nil {
			out = append(out, e.If.Then)
			if e.If.Else != nil {
				out = append(out, *e.If.Else)
			}
		}
	case ast.EntryWhile:
		if e.While != nil {
			out = append(out, e.While.Body)
		}
	case ast.EntryForClassical:
		if e.ForClassical != nil {
			out = append(out, e.ForClassical.Body)
		}
	case ast.EntryForEnhanced:
		if e.ForEnhanced != nil {
			out = append(out, e.ForEnhanced.Body)
		}
	case ast.EntryTry:
		if e.Try != nil {
			out = append(out, e.Try.Body)
			for _, c := range e.Try.Catches {
				out = append(out, c.Body)
			}
			if e.Try.Finally != nil {
				out = append(out, *e.Try.Finally)
			}
		}
	case ast.EntrySynchronized:
		if e.Synchronized != nil {
			out = append(out, e.Synchronized.Body)
		}
	case ast.EntryInlineBlock:
		if e.InlineBlock != nil {
			out = append(out, *e.InlineBlock)
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// addMissingOverrides offers, for every declared method that shares its
// name and parameter count with a method inherited from the parent overlay
// but carries no `@Override` annotation itself, to insert one.
func (c *Context) addMissingOverrides(path string, file ast.File, self class.Class) []CodeAction {
	var out []CodeAction
	for _, t := range file.Things {
		for _, m := range t.Members {
			if m.Kind != ast.MemberMethod {
				continue
			}
			if hasOverrideAnnotation(m) {
				continue
			}
			if !overridesInherited(self, m.Name, len(m.Params)) {
				continue
			}
			pos := Position{Line: m.Range.Start.Line, Character: m.Range.Start.Column}
			edit := TextEdit{Range: Range{Start: pos, End: pos}, NewText: "@Override\n"}
			out = append(out, CodeAction{
				Title: fmt.Sprintf("Add '@Override' to '%s'", m.Name),
				Kind:  "quickfix",
				Edit:  &WorkspaceEdit{Changes: map[string][]TextEdit{path: {edit}}},
			})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func hasOverrideAnnotation(m ast.Member) bool {
	for _, a := range m.Annotations {
		if a.Name == "Override" {
			return true
		}
	}
	return false
}

// overridesInherited reports whether self.Methods carries a method of the
// given name/arity whose Source is non-empty (inherited from a parent,
// per the parent overlay resolve.includeParent applies), meaning the
// declared method at that same name/arity overrides it.
func overridesInherited(self class.Class, name string, arity int) bool {
	for _, m := range self.Methods {
		if m.Name == name && len(m.Parameters) == arity && m.Source != "" {
			return true
		}
	}
	return false
}
