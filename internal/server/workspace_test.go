package server_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/server"
)

const greeterSrc = `
package com.example;

class Greeter {
    private String name;

    public String greet() {
        return this.name;
    }
}
`

func TestParseValidSourceProducesNoDiagnostics(t *testing.T) {
	result := server.Parse([]byte(greeterSrc))
	assert.True(t, result.Parsed)
	assert.Empty(t, result.LexErrors)
	assert.Nil(t, result.ParseError)
}

func TestParseBrokenSourceReportsParseError(t *testing.T) {
	result := server.Parse([]byte("class Greeter { public String greet("))
	assert.False(t, result.Parsed)
	require.NotNil(t, result.ParseError)
}

func TestOpenDocumentProjectsClassIntoClassMap(t *testing.T) {
	w := server.NewWorkspace()
	diags := w.OpenDocument("/proj/Greeter.java", greeterSrc)
	assert.Empty(t, diags)

	cls, ok := w.Classes.Get("com.example.Greeter")
	require.True(t, ok)
	assert.Equal(t, "Greeter", cls.Name)

	doc, ok := w.Documents.Get("/proj/Greeter.java")
	require.True(t, ok)
	_, ok = doc.AST.(ast.File)
	assert.True(t, ok)
}

func TestOpenDocumentWithSyntaxErrorReportsDiagnostic(t *testing.T) {
	w := server.NewWorkspace()
	diags := w.OpenDocument("/proj/Broken.java", "class Broken { public void m( }")
	require.NotEmpty(t, diags)
}

func TestChangeDocumentReplacesClassRecord(t *testing.T) {
	w := server.NewWorkspace()
	w.OpenDocument("/proj/Greeter.java", greeterSrc)

	renamed := `
package com.example;

class Greeter {
    private String nickname;
}
`
	w.ChangeDocument("/proj/Greeter.java", renamed)
	cls, ok := w.Classes.Get("com.example.Greeter")
	require.True(t, ok)
	require.Len(t, cls.Fields, 1)
	assert.Equal(t, "nickname", cls.Fields[0].Name)
}

func TestCloseDocumentRemovesFromDocumentMap(t *testing.T) {
	w := server.NewWorkspace()
	w.OpenDocument("/proj/Greeter.java", greeterSrc)
	w.CloseDocument("/proj/Greeter.java")
	_, ok := w.Documents.Get("/proj/Greeter.java")
	assert.False(t, ok)
}
