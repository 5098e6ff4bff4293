package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempSource(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Sample.java")
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	return path
}

func TestCheckFileValidSourceReturnsZero(t *testing.T) {
	path := writeTempSource(t, "class Greeter {\n    private String name;\n}\n")
	assert.Equal(t, 0, checkFile(path))
}

func TestCheckFileMissingFileReturnsIOError(t *testing.T) {
	assert.Equal(t, exitIOError, checkFile(filepath.Join(t.TempDir(), "missing.java")))
}

func TestCheckFileUnknownByteReturnsLexError(t *testing.T) {
	path := writeTempSource(t, "class Broken # { }\n")
	assert.Equal(t, exitLexError, checkFile(path))
}

func TestCheckFileMalformedSyntaxReturnsParseError(t *testing.T) {
	path := writeTempSource(t, "class Broken { public void m( }\n")
	assert.Equal(t, exitParseError, checkFile(path))
}
