package lsp

import (
	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/parser"
	"github.com/oxhq/javalsp/internal/token"
)

// Diagnostics converts a file's parse errors into the protocol's
// publishDiagnostics payload, applying the "furthest parse" heuristic
// internal/parser/errors.go already computes: an AllChildrenFailed error
// is reported at its furthest child instead of every backtracked
// alternative, since those alternatives are not independent problems.
func Diagnostics(toks []token.Positioned, errs []parser.ParseError) []Diagnostic {
	out := make([]Diagnostic, 0, len(errs))
	for _, e := range errs {
		out = append(out, diagnosticFor(toks, e))
	}
	return out
}

func diagnosticFor(toks []token.Positioned, e parser.ParseError) Diagnostic {
	r := rangeForToken(toks, e.Pos)
	return Diagnostic{
		Range:    ToRange(r),
		Severity: SeverityError,
		Source:   "javalsp",
		Message:  e.Error(),
	}
}

// rangeForToken builds a one-token Range from the parser's token-index
// positions, clamping to the final token when a production failed past the
// end of the stream (ErrUnexpectedEOF).
func rangeForToken(toks []token.Positioned, pos int) ast.Range {
	if len(toks) == 0 {
		return ast.Range{}
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= len(toks) {
		pos = len(toks) - 1
	}
	tok := toks[pos]
	start := ast.Point{Line: tok.Line, Column: tok.Column}
	end := ast.Point{Line: tok.Line, Column: tok.Column + tok.Token.Len()}
	return ast.Range{Start: start, End: end}
}
