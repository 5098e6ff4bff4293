package server

import (
	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/index"
	"github.com/oxhq/javalsp/internal/lexer"
	"github.com/oxhq/javalsp/internal/lsp"
	"github.com/oxhq/javalsp/internal/parser"
	"github.com/oxhq/javalsp/internal/source"
	"github.com/oxhq/javalsp/internal/token"
)

// Workspace owns the concurrent indexes internal/lsp's request handlers
// read, plus the per-document lex -> parse -> project pipeline that keeps
// them current as the client opens, edits, and closes buffers: a
// document's token stream and AST live only as long as its current
// snapshot and are rebuilt wholesale on every edit rather than patched
// incrementally.
type Workspace struct {
	Classes    *index.ClassMap
	References *index.ReferenceMap
	Documents  *index.DocumentMap
	ctx        *lsp.Context
}

// NewWorkspace builds an empty Workspace with fresh indexes.
func NewWorkspace() *Workspace {
	w := &Workspace{
		Classes:    index.NewClassMap(),
		References: index.NewReferenceMap(),
		Documents:  index.NewDocumentMap(),
	}
	w.ctx = &lsp.Context{ClassMap: w.Classes, ReferenceMap: w.References, DocumentMap: w.Documents}
	return w
}

// LSP exposes the shared Context internal/lsp's handlers take as a
// receiver, so the method dispatch table in server.go can call straight
// through to Hover/Definition/etc.
func (w *Workspace) LSP() *lsp.Context { return w.ctx }

// ParseResult is one document's lex/parse outcome: the token stream (kept
// for diagnostics range lookups and the `lex`/`ast-check` CLI verbs), the
// parsed file (partial when parsing failed), and every error collected
// along the way.
type ParseResult struct {
	Tokens     []token.Positioned
	File       ast.File
	Parsed     bool
	LexErrors  []lexer.Error
	ParseError *parser.ParseError
}

// Parse lexes and parses src: a lexer that never fails (unknown bytes
// become Error entries but scanning continues) feeds a parser that
// returns one ParseError, the first it could not recover from, on failure.
func Parse(src []byte) ParseResult {
	toks, lexErrs := lexer.Lex(src)
	result := ParseResult{Tokens: toks, LexErrors: lexErrs}
	file, err := parser.ParseFile(toks)
	result.File = file
	if err == nil {
		result.Parsed = true
		return result
	}
	if perr, ok := err.(parser.ParseError); ok {
		result.ParseError = &perr
	}
	return result
}

// classPathFor derives the class_path a document's primary top-level Thing
// would be indexed under, the same derivation lsp.Context.selfClass uses so
// a re-opened document's class record lands at the key handlers expect.
func classPathFor(file ast.File) (string, bool) {
	if len(file.Things) == 0 {
		return "", false
	}
	name := file.Things[0].Name
	if file.Package != nil && file.Package.Name != "" {
		return file.Package.Name + "." + name, true
	}
	return name, true
}

// OpenDocument registers a newly opened buffer: parses it, projects every
// top-level Thing into class_map (replacing any compiled or previously
// projected record at the same class_path, since an open source buffer is
// always more current), and returns the diagnostics to publish.
func (w *Workspace) OpenDocument(path, text string) []lsp.Diagnostic {
	return w.syncDocument(path, text)
}

// ChangeDocument re-parses a buffer after a full-text change notification.
// This server does not attempt incremental re-lexing.
func (w *Workspace) ChangeDocument(path, text string) []lsp.Diagnostic {
	return w.syncDocument(path, text)
}

// CloseDocument removes path from document_map. An implicitly opened class
// source (opened only because goto-definition navigated into it, never an
// explicit didOpen) should stay cached; since Workspace doesn't
// distinguish the two here, callers should only invoke CloseDocument for
// buffers the client itself opened.
func (w *Workspace) CloseDocument(path string) {
	w.Documents.Close(path)
}

func (w *Workspace) syncDocument(path, text string) []lsp.Diagnostic {
	result := Parse([]byte(text))
	w.Documents.Open(&index.Document{Path: path, Text: text, AST: result.File})

	if classPath, ok := classPathFor(result.File); ok {
		classes := source.Project(result.File, class.Source{Kind: class.SourceHere, Path: path})
		w.Classes.PutAll(classes)
		if raw, ok := w.Classes.Get(classPath); ok {
			w.References.Populate(classPath, raw.Imports, w.Classes)
		}
	}

	return diagnosticsFor(result)
}

// diagnosticsFor converts a ParseResult into the protocol diagnostics list,
// merging the parser's error (via lsp.Diagnostics) with the
// lexer's unknown-byte errors, which lsp.Diagnostics doesn't cover since it
// operates purely on parser.ParseError.
func diagnosticsFor(result ParseResult) []lsp.Diagnostic {
	var perrs []parser.ParseError
	if result.ParseError != nil {
		perrs = append(perrs, *result.ParseError)
	}
	out := lsp.Diagnostics(result.Tokens, perrs)

	for _, e := range result.LexErrors {
		start := ast.Point{Line: e.Line, Column: e.Column}
		end := ast.Point{Line: e.Line, Column: e.Column + 1}
		out = append(out, lsp.Diagnostic{
			Range:    lsp.ToRange(ast.Range{Start: start, End: end}),
			Severity: lsp.SeverityError,
			Source:   "javalsp",
			Message:  "unrecognized character " + string(e.Char),
		})
	}
	return out
}
