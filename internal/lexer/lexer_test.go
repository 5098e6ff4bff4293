package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/token"
)

func TestLexIdentifiersAndKeywords(t *testing.T) {
	toks, errs := Lex([]byte("public class Foo"))
	require.Empty(t, errs)

	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Token.Kind)
	}
	assert.Equal(t, []token.Kind{token.KwPublic, token.KwClass, token.Identifier, token.EOF}, kinds)
	assert.Equal(t, "Foo", toks[2].Token.Text)
}

func TestLexCompoundOperators(t *testing.T) {
	toks, errs := Lex([]byte("a == b != c <= d -> e"))
	require.Empty(t, errs)

	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Token.Kind)
	}
	assert.Contains(t, kinds, token.EqualEqual)
	assert.Contains(t, kinds, token.NotEqual)
	assert.Contains(t, kinds, token.LtEqual)
	assert.Contains(t, kinds, token.Arrow)
}

func TestLexNumberSuffix(t *testing.T) {
	toks, errs := Lex([]byte("123L"))
	require.Empty(t, errs)
	require.Len(t, toks, 2)
	assert.Equal(t, token.Integer, toks[0].Token.Kind)
	assert.Equal(t, "123L", toks[0].Token.Text)
}

func TestLexNewlineAdvancesLine(t *testing.T) {
	toks, _ := Lex([]byte("a\nb"))
	require.Len(t, toks, 4) // a, newline, b, eof
	assert.Equal(t, 0, toks[0].Line)
	assert.Equal(t, 1, toks[2].Line)
}

func TestLexUnknownByteDoesNotAbort(t *testing.T) {
	toks, errs := Lex([]byte("a \x01 b"))
	require.Len(t, errs, 1)
	assert.Equal(t, rune(1), errs[0].Char)

	var kinds []token.Kind
	for _, tk := range toks {
		kinds = append(kinds, tk.Token.Kind)
	}
	assert.Equal(t, []token.Kind{token.Identifier, token.Identifier, token.EOF}, kinds)
}

func TestLexStringQuoteMarker(t *testing.T) {
	toks, errs := Lex([]byte(`"hello"`))
	require.Empty(t, errs)
	require.Len(t, toks, 4) // quote, hello, quote, eof
	assert.Equal(t, token.StringQuote, toks[0].Token.Kind)
	assert.Equal(t, token.Identifier, toks[1].Token.Kind)
	assert.Equal(t, token.StringQuote, toks[2].Token.Kind)
}

func TestTokenLenSumsNonWhitespace(t *testing.T) {
	src := "int x = 1;"
	toks, _ := Lex([]byte(src))
	total := 0
	for _, tk := range toks {
		if tk.Token.Kind == token.EOF || tk.Token.Kind == token.Newline {
			continue
		}
		total += tk.Token.Len()
	}
	nonWhitespace := 0
	for _, r := range src {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			nonWhitespace++
		}
	}
	assert.Equal(t, nonWhitespace, total)
}
