// Package parser implements a hand-written recursive-descent parser: every
// sub-parser has the shape (tokens, pos) -> (Node, next_pos) | ParseError,
// pure backtracking with no exceptions. A failing alternative leaves pos
// untouched so the parent can try the next one.
package parser

import (
	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/token"
)

// cursor is the shared parsing state threaded through every sub-parser by
// value semantics at the call boundary (pos is returned explicitly, never
// mutated on a shared receiver) to keep backtracking pure.
type cursor struct {
	toks []token.Positioned
}

// ParseFile parses a complete source file's token stream. On failure it
// returns the first error a production could not recover from, alongside
// the File parsed up to the failure. The productions do not combine failed
// alternatives into AllChildrenFailed errors, so no furthest-parse
// selection takes place here.
func ParseFile(toks []token.Positioned) (ast.File, error) {
	c := &cursor{toks: toks}
	pos := c.skip(0)
	f, next, err := c.parseFile(pos)
	if err != nil {
		return f, err
	}
	pos = c.skip(next)
	// Only the EOF token may remain.
	if c.at(pos).Token.Kind != token.EOF {
		return f, ParseError{Kind: ErrExpectedToken, Pos: pos, Expected: "end of file"}
	}
	return f, nil
}

func (c *cursor) at(pos int) token.Positioned {
	if pos >= len(c.toks) {
		return token.Positioned{Token: token.Token{Kind: token.EOF}}
	}
	return c.toks[pos]
}

func (c *cursor) kind(pos int) token.Kind { return c.at(pos).Token.Kind }

func (c *cursor) point(pos int) ast.Point {
	p := c.at(pos)
	return ast.Point{Line: p.Line, Column: p.Column}
}

// skip advances past Newline tokens and `//`/`/* */` comments, neither of
// which the lexer recognizes as distinct tokens. A line comment runs from
// a `//` pair to the next Newline or EOF; a block comment runs from `/*`
// to the first subsequent `*` `/` pair.
func (c *cursor) skip(pos int) int {
	for {
		if c.kind(pos) == token.Newline {
			pos++
			continue
		}
		if c.kind(pos) == token.Slash && c.kind(pos+1) == token.Slash {
			pos += 2
			for c.kind(pos) != token.Newline && c.kind(pos) != token.EOF {
				pos++
			}
			continue
		}
		if c.kind(pos) == token.Slash && c.kind(pos+1) == token.Star {
			pos += 2
			for !(c.kind(pos) == token.Star && c.kind(pos+1) == token.Slash) && c.kind(pos) != token.EOF {
				pos++
			}
			if c.kind(pos) == token.Star {
				pos += 2
			}
			continue
		}
		return pos
	}
}

// expect consumes a single token of the given kind after skipping trivia,
// returning the position just after it.
func (c *cursor) expect(pos int, k token.Kind, expected string) (int, error) {
	pos = c.skip(pos)
	if c.kind(pos) != k {
		return pos, ParseError{Kind: ErrExpectedToken, Pos: pos, Expected: expected}
	}
	return pos + 1, nil
}

// expectIdentifier consumes an Identifier token and returns its text.
func (c *cursor) expectIdentifier(pos int) (string, int, error) {
	pos = c.skip(pos)
	if c.kind(pos) != token.Identifier {
		return "", pos, ParseError{Kind: ErrIdentifierEmpty, Pos: pos}
	}
	text := c.at(pos).Token.Text
	if text == "" {
		return "", pos, ParseError{Kind: ErrIdentifierEmpty, Pos: pos}
	}
	return text, pos + 1, nil
}

// peekIs reports whether, after skipping trivia, the token at pos has kind
// k, alongside the skipped position for the caller to resume from.
func (c *cursor) peekIs(pos int, k token.Kind) (int, bool) {
	pos = c.skip(pos)
	return pos, c.kind(pos) == k
}
