package lsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/index"
	"github.com/oxhq/javalsp/internal/lsp"
	"github.com/oxhq/javalsp/internal/parser"
	"github.com/oxhq/javalsp/internal/source"
	"github.com/oxhq/javalsp/internal/token"
)

const greeterPath = "/proj/Greeter.java"

// greeterFile builds a small, hand-positioned fixture equivalent to:
//
//	package com.example;
//	public class Greeter {
//	  private String name;
//	  public String greet() {
//	    return this.name;
//	  }
//	  public String rename(String newName) {
//	    return this.rename(name);
//	  }
//	}
//
// Ranges are assigned as if laid out one declaration per line so point
// tests can target a specific token without a full lexer/parser pass.
func greeterFile() ast.File {
	stringField := ast.JType{Kind: ast.JTypeClass, Name: "String", Range: rng(2, 10, 2, 16)}
	stringReturnGreet := ast.JType{Kind: ast.JTypeClass, Name: "String", Range: rng(3, 9, 3, 15)}
	stringReturnRename := ast.JType{Kind: ast.JTypeClass, Name: "String", Range: rng(6, 9, 6, 15)}
	stringParam := ast.JType{Kind: ast.JTypeClass, Name: "String", Range: rng(6, 23, 6, 29)}

	nameArg := ast.Expression{
		Range: rng(7, 23, 7, 27),
		Nodes: []ast.ExpressionNode{{
			Kind:  ast.ExprRecursive,
			Range: rng(7, 23, 7, 27),
			Recursive: &ast.RecursiveExpr{
				Root:  ast.RecursiveRoot{Kind: ast.RootIdentifier, Name: "name", Range: rng(7, 23, 7, 27)},
				Range: rng(7, 23, 7, 27),
			},
		}},
	}

	greetBody := ast.Expression{
		Range: rng(4, 11, 4, 21),
		Nodes: []ast.ExpressionNode{{
			Kind:  ast.ExprRecursive,
			Range: rng(4, 11, 4, 21),
			Recursive: &ast.RecursiveExpr{
				Root: ast.RecursiveRoot{Kind: ast.RootThis, Range: rng(4, 11, 4, 15)},
				Segments: []ast.RecursiveSegment{
					{Name: "name", Range: rng(4, 16, 4, 21)},
				},
				Range: rng(4, 11, 4, 21),
			},
		}},
	}

	renameBody := ast.Expression{
		Range: rng(7, 11, 7, 29),
		Nodes: []ast.ExpressionNode{{
			Kind:  ast.ExprRecursive,
			Range: rng(7, 11, 7, 29),
			Recursive: &ast.RecursiveExpr{
				Root: ast.RecursiveRoot{Kind: ast.RootThis, Range: rng(7, 11, 7, 15)},
				Segments: []ast.RecursiveSegment{
					{Name: "rename", HasArgs: true, Args: []ast.Expression{nameArg}, Range: rng(7, 16, 7, 29)},
				},
				Range: rng(7, 11, 7, 29),
			},
		}},
	}

	return ast.File{
		Package: &ast.Package{Name: "com.example", Range: rng(0, 0, 0, 20)},
		Things: []ast.Thing{{
			Kind:   ast.ThingClass,
			Access: ast.AccessPublic,
			Name:   "Greeter",
			Range:  rng(1, 0, 9, 1),
			Members: []ast.Member{
				{
					Kind:    ast.MemberVariable,
					Access:  ast.AccessPrivate,
					VarType: &stringField,
					Name:    "name",
					Range:   rng(2, 2, 2, 22),
				},
				{
					Kind:   ast.MemberMethod,
					Access: ast.AccessPublic,
					Name:   "greet",
					Return: &stringReturnGreet,
					Range:  rng(3, 2, 5, 3),
					Body: &ast.Block{
						Range: rng(3, 24, 5, 3),
						Entries: []ast.BlockEntry{
							{Kind: ast.EntryReturn, Range: rng(4, 4, 4, 21), Return: &greetBody},
						},
					},
				},
				{
					Kind:   ast.MemberMethod,
					Access: ast.AccessPublic,
					Name:   "rename",
					Return: &stringReturnRename,
					Params: []ast.Param{{Name: "newName", Type: &stringParam, Range: rng(6, 23, 6, 36)}},
					Range:  rng(6, 2, 8, 3),
					Body: &ast.Block{
						Range: rng(6, 42, 8, 3),
						Entries: []ast.BlockEntry{
							{Kind: ast.EntryReturn, Range: rng(7, 4, 7, 30), Return: &renameBody},
						},
					},
				},
			},
		}},
	}
}

func rng(startLine, startCol, endLine, endCol int) ast.Range {
	return ast.Range{Start: ast.Point{Line: startLine, Column: startCol}, End: ast.Point{Line: endLine, Column: endCol}}
}

func pt(line, col int) ast.Point { return ast.Point{Line: line, Column: col} }

// newFixtureContext wires a Context around greeterFile, projecting it into
// class_map via internal/source.Project (the same path the real indexer
// uses for project sources) and registering a synthetic java.lang.String
// so type references in the fixture resolve.
func newFixtureContext(t *testing.T) (*lsp.Context, ast.File) {
	t.Helper()
	file := greeterFile()

	classMap := index.NewClassMap()
	classMap.PutAll(source.Project(file, class.Source{Kind: class.SourceHere, Path: greeterPath}))
	classMap.Put(class.Class{
		ClassPath: "java.lang.String",
		Name:      "String",
		Access:    class.Public,
		Methods: []class.Method{
			{Name: "length", Access: class.Public, Return: class.JType{Kind: class.JInt}},
		},
	})

	docs := index.NewDocumentMap()
	docs.Open(&index.Document{Path: greeterPath, AST: file})

	refs := index.NewReferenceMap()

	return &lsp.Context{ClassMap: classMap, ReferenceMap: refs, DocumentMap: docs}, file
}

func TestHoverOnTypeReference(t *testing.T) {
	ctx, _ := newFixtureContext(t)
	h, ok := ctx.Hover(greeterPath, pt(2, 12))
	require.True(t, ok)
	assert.Contains(t, h.Contents.Value, "java.lang.String")
}

func TestHoverOnThis(t *testing.T) {
	ctx, _ := newFixtureContext(t)
	h, ok := ctx.Hover(greeterPath, pt(4, 13))
	require.True(t, ok)
	assert.Contains(t, h.Contents.Value, "com.example.Greeter")
}

func TestHoverOnFieldAccess(t *testing.T) {
	ctx, _ := newFixtureContext(t)
	h, ok := ctx.Hover(greeterPath, pt(4, 18))
	require.True(t, ok)
	assert.Contains(t, h.Contents.Value, "name")
	assert.Contains(t, h.Contents.Value, "com.example.Greeter")
}

func TestDefinitionOnFieldAccess(t *testing.T) {
	ctx, _ := newFixtureContext(t)
	locs, ok := ctx.Definition(greeterPath, pt(4, 18))
	require.True(t, ok)
	require.Len(t, locs, 1)
	assert.Equal(t, greeterPath, locs[0].URI)
	assert.Equal(t, lsp.ToRange(rng(2, 2, 2, 22)), locs[0].Range)
}

func TestCompletionAfterThisDot(t *testing.T) {
	ctx, _ := newFixtureContext(t)
	items := ctx.Completion(greeterPath, pt(4, 18))
	var labels []string
	for _, it := range items {
		labels = append(labels, it.Label)
	}
	assert.Contains(t, labels, "name")
}

func TestSignatureHelpInsideCallArguments(t *testing.T) {
	ctx, _ := newFixtureContext(t)
	help, ok := ctx.SignatureHelp(greeterPath, pt(7, 24))
	require.True(t, ok)
	require.Len(t, help.Signatures, 1)
	assert.Contains(t, help.Signatures[0].Label, "rename")
	assert.Equal(t, 0, help.ActiveParameter)
}

func TestReferencesToClassFollowsReferenceMapThroughClassMap(t *testing.T) {
	ctx, _ := newFixtureContext(t)
	ctx.ReferenceMap.Append("java.lang.String", "com.example.Greeter")

	locs, ok := ctx.References(greeterPath, pt(2, 12))
	require.True(t, ok)

	var found []lsp.Range
	for _, l := range locs {
		if l.URI == greeterPath {
			found = append(found, l.Range)
		}
	}
	// the field's declared type, both method return types, and rename's
	// parameter type all spell "String"
	assert.Len(t, found, 4)
}

func TestDocumentSymbolsOutlinesClassAndMembers(t *testing.T) {
	_, file := newFixtureContext(t)
	syms := lsp.DocumentSymbols(file)
	require.Len(t, syms, 1)
	assert.Equal(t, "Greeter", syms[0].Name)
	assert.Equal(t, lsp.SymbolClass, syms[0].Kind)

	var names []string
	for _, child := range syms[0].Children {
		names = append(names, child.Name)
	}
	assert.ElementsMatch(t, []string{"name", "greet", "rename"}, names)
}

func TestWorkspaceSymbolsFiltersByQuery(t *testing.T) {
	ctx, _ := newFixtureContext(t)
	syms := ctx.WorkspaceSymbols("greet")
	require.Len(t, syms, 1)
	assert.Equal(t, "Greeter", syms[0].Name)
}

func TestCodeActionImportMissingClass(t *testing.T) {
	ctx, _ := newFixtureContext(t)
	classMap := ctx.ClassMap
	classMap.Put(class.Class{ClassPath: "com.example.util.Widget", Name: "Widget"})

	file := greeterFile()
	widgetType := ast.JType{Kind: ast.JTypeClass, Name: "Widget", Range: rng(2, 24, 2, 30)}
	file.Things[0].Members[0].VarType = &widgetType
	ctx.DocumentMap.Open(&index.Document{Path: greeterPath, AST: file})

	actions := ctx.CodeActions(greeterPath, pt(2, 26))
	require.NotEmpty(t, actions)
	assert.Contains(t, actions[0].Title, "com.example.util.Widget")
	require.NotNil(t, actions[0].Edit)
	edits := actions[0].Edit.Changes[greeterPath]
	require.Len(t, edits, 1)
	assert.Contains(t, edits[0].NewText, "import com.example.util.Widget;")
}

func TestDiagnosticsFromParseError(t *testing.T) {
	toks := []token.Positioned{
		{Token: token.Token{Kind: token.Identifier, Text: "class"}, Line: 0, Column: 0},
		{Token: token.Token{Kind: token.Identifier, Text: "Foo"}, Line: 0, Column: 6},
		{Token: token.Token{Kind: token.LBrace, Text: "{"}, Line: 0, Column: 10},
	}
	errs := []parser.ParseError{
		{Kind: parser.ErrExpectedToken, Pos: 2, Expected: "}"},
	}

	diags := lsp.Diagnostics(toks, errs)
	require.Len(t, diags, 1)
	assert.Equal(t, lsp.SeverityError, diags[0].Severity)
	assert.Equal(t, 0, diags[0].Range.Start.Line)
	assert.Equal(t, 10, diags[0].Range.Start.Character)
	assert.Contains(t, diags[0].Message, "expected }")
}
