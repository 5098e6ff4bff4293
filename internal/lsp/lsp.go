// Package lsp implements the Language Server Protocol feature handlers:
// hover, go-to-definition, references, completion, signature help,
// document/workspace symbols, diagnostics, and code actions. Each handler
// builds a call chain from the AST at the cursor and leans on this
// module's internal/resolve + internal/index packages for the shared
// type-resolution and concurrent-index plumbing.
package lsp

import (
	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/index"
	"github.com/oxhq/javalsp/internal/resolve"
)

// Position is a zero-indexed (line, character) editor position, the wire
// shape protocol messages carry. ast.Point is already zero-indexed so the
// conversion is a straight field copy.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a [Start, End] span in editor coordinates.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Location names a position inside a specific document.
type Location struct {
	URI   string `json:"uri"`
	Range Range  `json:"range"`
}

// ToPosition converts an ast.Point to its wire Position.
func ToPosition(p ast.Point) Position {
	return Position{Line: p.Line, Character: p.Column}
}

// ToPoint converts a wire Position back to an ast.Point.
func ToPoint(p Position) ast.Point {
	return ast.Point{Line: p.Line, Column: p.Character}
}

// ToRange converts an ast.Range to its wire Range.
func ToRange(r ast.Range) Range {
	return Range{Start: ToPosition(r.Start), End: ToPosition(r.End)}
}

// DiagnosticSeverity mirrors the protocol's 1-based severity scale.
type DiagnosticSeverity int

const (
	SeverityError DiagnosticSeverity = iota + 1
	SeverityWarning
	SeverityInformation
	SeverityHint
)

// Diagnostic is one parse or resolution problem reported against a
// document.
type Diagnostic struct {
	Range    Range              `json:"range"`
	Severity DiagnosticSeverity `json:"severity"`
	Source   string             `json:"source"`
	Message  string             `json:"message"`
}

// TextEdit is one replacement against a document's current text.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// WorkspaceEdit groups the TextEdit list per document URI a code action or
// rename produces.
type WorkspaceEdit struct {
	Changes map[string][]TextEdit `json:"changes"`
}

// CodeAction is one quick fix or refactor offered at a diagnostic or
// cursor position.
type CodeAction struct {
	Title string         `json:"title"`
	Kind  string         `json:"kind"`
	Edit  *WorkspaceEdit `json:"edit,omitempty"`
}

// SymbolKind mirrors the protocol's symbol-kind enumeration, restricted to
// the values this server's class/record/interface/enum/annotation/method/
// field/constructor model actually produces.
type SymbolKind int

const (
	SymbolClass SymbolKind = 5
	SymbolMethod SymbolKind = 6
	SymbolField SymbolKind = 8
	SymbolConstructor SymbolKind = 9
	SymbolInterface SymbolKind = 11
	SymbolConstant SymbolKind = 14
	SymbolEnum SymbolKind = 10
	SymbolEnumMember SymbolKind = 22
	SymbolAnnotation SymbolKind = 23 // reported as an interface-like kind variant
)

// DocumentSymbol is one outline entry for the document-symbols request.
type DocumentSymbol struct {
	Name           string           `json:"name"`
	Kind           SymbolKind       `json:"kind"`
	Range          Range            `json:"range"`
	SelectionRange Range            `json:"selectionRange"`
	Children       []DocumentSymbol `json:"children,omitempty"`
}

// WorkspaceSymbol is one entry for the workspace-wide symbol search.
type WorkspaceSymbol struct {
	Name     string     `json:"name"`
	Kind     SymbolKind `json:"kind"`
	Location Location   `json:"location"`
}

// CompletionItemKind mirrors the protocol's subset this server emits.
type CompletionItemKind int

const (
	CompletionMethod CompletionItemKind = 2
	CompletionField  CompletionItemKind = 5
	CompletionClass  CompletionItemKind = 7
	CompletionVariable CompletionItemKind = 6
	CompletionKeyword CompletionItemKind = 14
)

// CompletionItem is one completion-list entry.
type CompletionItem struct {
	Label  string             `json:"label"`
	Kind   CompletionItemKind `json:"kind"`
	Detail string             `json:"detail,omitempty"`
}

// ParameterInformation names one parameter inside a SignatureInformation.
type ParameterInformation struct {
	Label string `json:"label"`
}

// SignatureInformation is one candidate signature.
type SignatureInformation struct {
	Label      string                  `json:"label"`
	Parameters []ParameterInformation `json:"parameters,omitempty"`
}

// SignatureHelp is the response to a signature-help request.
type SignatureHelp struct {
	Signatures      []SignatureInformation `json:"signatures"`
	ActiveSignature int                    `json:"activeSignature"`
	ActiveParameter int                    `json:"activeParameter"`
}

// MarkupContent is a Markdown hover/signature body.
type MarkupContent struct {
	Kind  string `json:"kind"`
	Value string `json:"value"`
}

// Hover is the response to a hover request.
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

// Context bundles the shared index the request handlers in this package
// query. One Context is built per server instance and passed by reference
// into every handler.
type Context struct {
	ClassMap     *index.ClassMap
	ReferenceMap *index.ReferenceMap
	DocumentMap  *index.DocumentMap
}

// fileAt returns the parsed ast.File for an open document at path, whether
// the document stores it as an ast.File or an *ast.File. Handlers call this
// once at the top of a request and pass the result to selfClass when they
// need "my own class" context (self, in resolve.ResolveCallChain's terms).
func (c *Context) fileAt(path string) (ast.File, bool) {
	doc, ok := c.DocumentMap.Get(path)
	if !ok {
		return ast.File{}, false
	}
	f, ok := doc.AST.(ast.File)
	if ok {
		return f, true
	}
	if pf, ok := doc.AST.(*ast.File); ok && pf != nil {
		return *pf, true
	}
	return ast.File{}, false
}

// selfClass resolves the class a document's own top-level Thing
// represents, the "self" the resolver needs for This/unqualified lookups.
// The parent overlay (resolve.includeParent) is applied here rather than
// left to the caller: resolve.ResolveCallChain's initial stack entry is
// `self` verbatim, so an un-overlaid self would silently fail to resolve
// `this.inheritedMethod()` calls.
func (c *Context) selfClass(file ast.File) (class.Class, bool) {
	if len(file.Things) == 0 {
		return class.Class{}, false
	}
	pkg := ""
	if file.Package != nil {
		pkg = file.Package.Name
	}
	name := file.Things[0].Name
	path := name
	if pkg != "" {
		path = pkg + "." + name
	}
	raw, ok := c.ClassMap.Get(path)
	if !ok {
		return class.Class{}, false
	}
	if state, err := resolve.Resolve(path, raw.Imports, c.ClassMap); err == nil {
		return state.Class, true
	}
	return raw, true
}

// importsOf converts a class.Class's normalized imports back into the form
// resolve.Resolve expects, which is exactly class.ImportUnit: no
// conversion needed, kept here only as the single call site documenting
// that fact.
func importsOf(self class.Class) []class.ImportUnit { return self.Imports }

func uriForClassPath(self class.Class) string {
	switch self.Source.Kind {
	case class.SourceHere:
		return self.Source.Path
	default:
		return ""
	}
}
