package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/javalsp/internal/token"
)

func TestKindStringNamesPunctuation(t *testing.T) {
	assert.Equal(t, "LParen", token.LParen.String())
	assert.Equal(t, "EOF", token.EOF.String())
}

func TestKindStringNamesReservedWords(t *testing.T) {
	assert.Equal(t, "KwClass", token.KwClass.String())
	assert.Equal(t, "KwInstanceof", token.KwInstanceof.String())
}

func TestTokenLenForIdentifierAndKeyword(t *testing.T) {
	assert.Equal(t, 5, token.Token{Kind: token.Identifier, Text: "hello"}.Len())
	assert.Equal(t, len("class"), token.Token{Kind: token.KwClass}.Len())
}
