package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/lexer"
)

func mustParse(t *testing.T, src string) ast.File {
	t.Helper()
	toks, errs := lexer.Lex([]byte(src))
	require.Empty(t, errs)
	f, err := ParseFile(toks)
	require.NoError(t, err)
	return f
}

func TestParsePackageAndImports(t *testing.T) {
	f := mustParse(t, `
package com.example.app;

import java.util.List;
import static java.util.Collections.emptyList;
import java.util.*;

class Foo {}
`)
	require.NotNil(t, f.Package)
	assert.Equal(t, "com.example.app", f.Package.Name)
	require.Len(t, f.Imports, 3)
	assert.Equal(t, ast.ImportClass, f.Imports[0].Kind)
	assert.Equal(t, "java.util.List", f.Imports[0].Path)
	assert.Equal(t, ast.ImportStaticClassMethod, f.Imports[1].Kind)
	assert.Equal(t, "java.util.Collections", f.Imports[1].Path)
	assert.Equal(t, "emptyList", f.Imports[1].Member)
	assert.Equal(t, ast.ImportPrefix, f.Imports[2].Kind)
	assert.Equal(t, "java.util", f.Imports[2].Path)
	require.Len(t, f.Things, 1)
	assert.Equal(t, "Foo", f.Things[0].Name)
}

func TestParseClassWithFieldsAndMethod(t *testing.T) {
	f := mustParse(t, `
class Greeter {
    private final String name;
    int count = 0, total;

    public Greeter(String name) {
        this.name = name;
    }

    public String greet(int times) {
        return name;
    }
}
`)
	require.Len(t, f.Things, 1)
	thing := f.Things[0]
	assert.Equal(t, ast.ThingClass, thing.Kind)

	var fieldNames []string
	var hasConstructor, hasMethod bool
	for _, m := range thing.Members {
		switch m.Kind {
		case ast.MemberVariable:
			fieldNames = append(fieldNames, m.Name)
		case ast.MemberConstructor:
			hasConstructor = true
			assert.Equal(t, "Greeter", m.Name)
			require.Len(t, m.Params, 1)
		case ast.MemberMethod:
			hasMethod = true
			assert.Equal(t, "greet", m.Name)
			require.NotNil(t, m.Return)
			require.NotNil(t, m.Body)
		}
	}
	assert.Equal(t, []string{"name", "count", "total"}, fieldNames)
	assert.True(t, hasConstructor)
	assert.True(t, hasMethod)
}

func TestParseInterfaceAndRecord(t *testing.T) {
	f := mustParse(t, `
interface Shape {
    double area();
}

record Point(int x, int y) {}
`)
	require.Len(t, f.Things, 2)
	assert.Equal(t, ast.ThingInterface, f.Things[0].Kind)
	require.Len(t, f.Things[0].Members, 1)
	method := f.Things[0].Members[0]
	assert.Equal(t, ast.MemberMethod, method.Kind)
	assert.Nil(t, method.Body)

	record := f.Things[1]
	assert.Equal(t, ast.ThingRecord, record.Kind)
	require.Len(t, record.RecordComponents, 2)
	assert.Equal(t, "x", record.RecordComponents[0].Name)
	assert.Equal(t, "y", record.RecordComponents[1].Name)
}

func TestParseEnum(t *testing.T) {
	f := mustParse(t, `
enum Color {
    RED, GREEN, BLUE;

    public String label() { return "color"; }
}
`)
	require.Len(t, f.Things, 1)
	e := f.Things[0]
	assert.Equal(t, ast.ThingEnumeration, e.Kind)

	var variants []string
	var methods int
	for _, m := range e.Members {
		if m.Kind == ast.MemberEnumVariant {
			variants = append(variants, m.Name)
		}
		if m.Kind == ast.MemberMethod {
			methods++
		}
	}
	assert.Equal(t, []string{"RED", "GREEN", "BLUE"}, variants)
	assert.Equal(t, 1, methods)
}

func TestParseIfWhileForStatements(t *testing.T) {
	f := mustParse(t, `
class Loops {
    void run() {
        if (x > 0) {
            doA();
        } else if (x < 0) {
            doB();
        } else {
            doC();
        }
        while (x < 10) {
            x++;
        }
        for (int i = 0; i < 10; i++) {
            sum += i;
        }
        for (String s : names) {
            use(s);
        }
    }
}
`)
	method := f.Things[0].Members[0]
	require.NotNil(t, method.Body)
	var kinds []ast.BlockEntryKind
	for _, e := range method.Body.Entries {
		kinds = append(kinds, e.Kind)
	}
	assert.Equal(t, []ast.BlockEntryKind{
		ast.EntryIf, ast.EntryWhile, ast.EntryForClassical, ast.EntryForEnhanced,
	}, kinds)

	ifEntry := method.Body.Entries[0].If
	require.NotNil(t, ifEntry.Else)
	require.Len(t, ifEntry.Else.Entries, 1)
	assert.Equal(t, ast.EntryIf, ifEntry.Else.Entries[0].Kind)
}

func TestParseSwitchClassicalAndArrow(t *testing.T) {
	f := mustParse(t, `
class S {
    void classical(int x) {
        switch (x) {
            case 1:
            case 2:
                doSomething();
                break;
            default:
                doOther();
        }
    }

    int arrow(int x) {
        return switch (x) {
            case 1 -> 10;
            default -> 0;
        };
    }
}
`)
	classical := f.Things[0].Members[0].Body.Entries[0].Switch
	require.NotNil(t, classical)
	assert.False(t, classical.Arrow)
	require.Len(t, classical.Arms, 3)
	assert.Equal(t, true, classical.Arms[2].IsDefault)
}

func TestParseTryCatchFinally(t *testing.T) {
	f := mustParse(t, `
class T {
    void run() {
        try {
            risky();
        } catch (IOException | RuntimeException e) {
            handle(e);
        } finally {
            cleanup();
        }
    }
}
`)
	tryEntry := f.Things[0].Members[0].Body.Entries[0].Try
	require.NotNil(t, tryEntry)
	require.Len(t, tryEntry.Catches, 1)
	assert.Len(t, tryEntry.Catches[0].Types, 2)
	assert.Equal(t, "e", tryEntry.Catches[0].Name)
	require.NotNil(t, tryEntry.Finally)
}

func TestParseLambdaAndNewClass(t *testing.T) {
	f := mustParse(t, `
class L {
    Runnable r = () -> doIt();
    Comparator<String> c = (a, b) -> a.length() - b.length();
    Object o = new Object() {
        public String toString() { return "x"; }
    };
}
`)
	require.Len(t, f.Things[0].Members, 3)
	for _, m := range f.Things[0].Members[:2] {
		require.NotNil(t, m.Initializer)
		require.Len(t, m.Initializer.Nodes, 1)
		assert.Equal(t, ast.ExprLambda, m.Initializer.Nodes[0].Kind)
	}
	anon := f.Things[0].Members[2]
	require.NotNil(t, anon.Initializer)
	require.Len(t, anon.Initializer.Nodes, 1)
	assert.Equal(t, ast.ExprNewClass, anon.Initializer.Nodes[0].Kind)
	require.NotNil(t, anon.Initializer.Nodes[0].NewClass.AnonymousBody)
	require.Len(t, anon.Initializer.Nodes[0].NewClass.AnonymousBody.Members, 1)
	assert.Equal(t, "toString", anon.Initializer.Nodes[0].NewClass.AnonymousBody.Members[0].Name)
}

// TestParseIdempotentRange checks the §8 range-containment invariant: every
// nested node's range must fall within its enclosing Thing's range.
func TestParseIdempotentRange(t *testing.T) {
	f := mustParse(t, `
class Outer {
    void m() {
        int x = 1;
    }
}
`)
	thing := f.Things[0]
	member := thing.Members[0]
	assert.True(t, thing.Range.Contains(member.Range.Start))
	assert.True(t, thing.Range.Contains(member.Range.End))
	assert.True(t, member.Range.Contains(member.Body.Range.Start))
	assert.True(t, member.Range.Contains(member.Body.Range.End))
}

func TestUnterminatedClassBodyFails(t *testing.T) {
	toks, errs := lexer.Lex([]byte(`class Bad { void m() {} `))
	require.Empty(t, errs)
	_, err := ParseFile(toks)
	require.Error(t, err)
}

func TestFurthestPicksDeepestAlternative(t *testing.T) {
	errA := ParseError{Kind: ErrExpectedToken, Pos: 3, Expected: "a"}
	errB := ParseError{Kind: ErrExpectedToken, Pos: 9, Expected: "b"}
	errC := ParseError{Kind: ErrExpectedToken, Pos: 5, Expected: "c"}
	best := furthest([]ParseError{errA, errB, errC})
	assert.Equal(t, errB, best)

	combined := allChildrenFailed("alt", []ParseError{errA, errB, errC})
	assert.Equal(t, ErrAllChildrenFailed, combined.Kind)
	assert.Equal(t, 9, combined.Pos)
	assert.Equal(t, "alt", combined.Parent)
}
