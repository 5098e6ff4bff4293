package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/resolve"
)

func pointAt(line, col int) ast.Point { return ast.Point{Line: line, Column: col} }

func rangeAt(startLine, startCol, endLine, endCol int) ast.Range {
	return ast.Range{Start: pointAt(startLine, startCol), End: pointAt(endLine, endCol)}
}

// fakeClassMap is a minimal in-memory ClassMap stub for resolver tests.
type fakeClassMap map[string]class.Class

func (m fakeClassMap) Get(classPath string) (class.Class, bool) {
	c, ok := m[classPath]
	return c, ok
}

func TestResolveDottedName(t *testing.T) {
	cm := fakeClassMap{"com.example.Foo": {ClassPath: "com.example.Foo", Name: "Foo"}}
	state, err := resolve.Resolve("com.example.Foo", nil, cm)
	require.NoError(t, err)
	assert.Equal(t, "com.example.Foo", state.Class.ClassPath)
}

func TestResolveJavaLangFallback(t *testing.T) {
	cm := fakeClassMap{"java.lang.String": {ClassPath: "java.lang.String", Name: "String"}}
	state, err := resolve.Resolve("String", nil, cm)
	require.NoError(t, err)
	assert.Equal(t, "java.lang.String", state.Class.ClassPath)
}

func TestResolveViaExplicitImport(t *testing.T) {
	cm := fakeClassMap{"com.example.Foo": {ClassPath: "com.example.Foo", Name: "Foo"}}
	imports := []class.ImportUnit{{Kind: class.ImportClass, Path: "com.example.Foo"}}
	state, err := resolve.Resolve("Foo", imports, cm)
	require.NoError(t, err)
	assert.Equal(t, "com.example.Foo", state.Class.ClassPath)
}

func TestResolveViaPrefixImport(t *testing.T) {
	cm := fakeClassMap{"com.example.util.Helper": {ClassPath: "com.example.util.Helper", Name: "Helper"}}
	imports := []class.ImportUnit{{Kind: class.ImportPrefix, Path: "com.example.util"}}
	state, err := resolve.Resolve("Helper", imports, cm)
	require.NoError(t, err)
	assert.Equal(t, "com.example.util.Helper", state.Class.ClassPath)
}

func TestResolveNotImported(t *testing.T) {
	cm := fakeClassMap{}
	_, err := resolve.Resolve("Bogus", nil, cm)
	require.Error(t, err)
	rerr, ok := err.(resolve.Error)
	require.True(t, ok)
	assert.Equal(t, resolve.ErrNotImported, rerr.Kind)
}

func TestResolveJTypePrimitiveAndArray(t *testing.T) {
	cm := fakeClassMap{}
	state, err := resolve.ResolveJType(class.JType{Kind: class.JInt}, nil, cm)
	require.NoError(t, err)
	assert.Equal(t, "int", state.Class.Name)

	elem := class.JType{Kind: class.JClass, Name: "com.example.Foo"}
	state, err = resolve.ResolveJType(class.JType{Kind: class.JArray, Elem: &elem}, nil, cm)
	require.NoError(t, err)
	assert.Equal(t, "array", state.Class.Name)
	require.Len(t, state.Class.Fields, 1)
	assert.Equal(t, "length", state.Class.Fields[0].Name)
}

func TestResolveJTypeVarYieldsCheckValue(t *testing.T) {
	cm := fakeClassMap{}
	_, err := resolve.ResolveJType(class.JType{Kind: class.JVar}, nil, cm)
	require.Error(t, err)
	rerr, ok := err.(resolve.Error)
	require.True(t, ok)
	assert.Equal(t, resolve.ErrCheckValue, rerr.Kind)
}

type emptyLocals struct{}

func (emptyLocals) Lookup(string) (resolve.LocalVariable, bool) { return resolve.LocalVariable{}, false }

func TestResolveCallChainMethodReturn(t *testing.T) {
	cm := fakeClassMap{
		"com.example.Foo": {
			ClassPath: "com.example.Foo",
			Name:      "Foo",
			Methods: []class.Method{
				{Name: "getName", Return: class.JType{Kind: class.JClass, Name: "java.lang.String"}},
			},
		},
		"java.lang.String": {ClassPath: "java.lang.String", Name: "String"},
	}
	self := cm["com.example.Foo"]
	chain := []resolve.CallItem{
		{Kind: resolve.ItemThis},
		{Kind: resolve.ItemMethodCall, Name: "getName"},
		{Kind: resolve.ItemArgumentList, Prev: []resolve.CallItem{
			{Kind: resolve.ItemThis},
			{Kind: resolve.ItemMethodCall, Name: "getName"},
		}},
	}
	state, err := resolve.ResolveCallChain(chain, emptyLocals{}, nil, self, cm)
	require.NoError(t, err)
	assert.Equal(t, "java.lang.String", state.Class.ClassPath)
}

func TestResolveCallChainFieldAccess(t *testing.T) {
	cm := fakeClassMap{
		"com.example.Foo": {
			ClassPath: "com.example.Foo",
			Name:      "Foo",
			Fields: []class.Field{
				{Name: "name", JType: class.JType{Kind: class.JClass, Name: "java.lang.String"}},
			},
		},
		"java.lang.String": {ClassPath: "java.lang.String", Name: "String"},
	}
	self := cm["com.example.Foo"]
	chain := []resolve.CallItem{
		{Kind: resolve.ItemThis},
		{Kind: resolve.ItemFieldAccess, Name: "name"},
	}
	state, err := resolve.ResolveCallChain(chain, emptyLocals{}, nil, self, cm)
	require.NoError(t, err)
	assert.Equal(t, "java.lang.String", state.Class.ClassPath)
}

func TestResolveCallChainMethodNotFound(t *testing.T) {
	cm := fakeClassMap{"com.example.Foo": {ClassPath: "com.example.Foo", Name: "Foo"}}
	self := cm["com.example.Foo"]
	chain := []resolve.CallItem{
		{Kind: resolve.ItemThis},
		{Kind: resolve.ItemMethodCall, Name: "missing"},
		{Kind: resolve.ItemArgumentList},
	}
	_, err := resolve.ResolveCallChain(chain, emptyLocals{}, nil, self, cm)
	require.Error(t, err)
	rerr, ok := err.(resolve.Error)
	require.True(t, ok)
	assert.Equal(t, resolve.ErrMethodNotFound, rerr.Kind)
}

func TestResolveCallChainEmpty(t *testing.T) {
	cm := fakeClassMap{}
	_, err := resolve.ResolveCallChain(nil, emptyLocals{}, nil, class.Class{}, cm)
	require.Error(t, err)
	rerr, ok := err.(resolve.Error)
	require.True(t, ok)
	assert.Equal(t, resolve.ErrCallChainEmpty, rerr.Kind)
}

type stubLocals map[string]resolve.LocalVariable

func (s stubLocals) Lookup(name string) (resolve.LocalVariable, bool) {
	v, ok := s[name]
	return v, ok
}

func TestResolveCallChainClassOrVariablePrefersLocal(t *testing.T) {
	cm := fakeClassMap{
		"com.example.Bar": {
			ClassPath: "com.example.Bar",
			Name:      "Bar",
			Methods: []class.Method{
				{Name: "length", Return: class.JType{Kind: class.JInt}},
			},
		},
	}
	locals := stubLocals{"bar": {Name: "bar", JType: class.JType{Kind: class.JClass, Name: "com.example.Bar"}}}
	chain := []resolve.CallItem{
		{Kind: resolve.ItemClassOrVariable, Name: "bar"},
		{Kind: resolve.ItemMethodCall, Name: "length"},
		{Kind: resolve.ItemArgumentList, Prev: []resolve.CallItem{
			{Kind: resolve.ItemClassOrVariable, Name: "bar"},
			{Kind: resolve.ItemMethodCall, Name: "length"},
		}},
	}
	state, err := resolve.ResolveCallChain(chain, locals, nil, class.Class{}, cm)
	require.NoError(t, err)
	assert.Equal(t, "int", state.Class.Name)
}

func TestResolveVarDeclResolvesThroughInitializer(t *testing.T) {
	cm := fakeClassMap{
		"com.example.Foo": {
			ClassPath: "com.example.Foo",
			Name:      "Foo",
			Methods: []class.Method{
				{Name: "length", Return: class.JType{Kind: class.JInt}},
			},
		},
	}
	initializer := ast.Expression{Nodes: []ast.ExpressionNode{
		{Kind: ast.ExprNewClass, NewClass: &ast.NewClassExpr{Type: ast.JType{Name: "com.example.Foo"}}},
	}}
	locals := stubLocals{"foo": {
		Name:        "foo",
		JType:       class.JType{Kind: class.JVar},
		Initializer: &initializer,
	}}
	chain := []resolve.CallItem{
		{Kind: resolve.ItemClassOrVariable, Name: "foo"},
		{Kind: resolve.ItemMethodCall, Name: "length"},
		{Kind: resolve.ItemArgumentList, Prev: []resolve.CallItem{
			{Kind: resolve.ItemClassOrVariable, Name: "foo"},
			{Kind: resolve.ItemMethodCall, Name: "length"},
		}},
	}
	state, err := resolve.ResolveCallChain(chain, locals, nil, class.Class{}, cm)
	require.NoError(t, err)
	assert.Equal(t, "int", state.Class.Name)
}

func TestResolveVarDeclWithoutInitializerStaysCheckValue(t *testing.T) {
	cm := fakeClassMap{}
	locals := stubLocals{"foo": {Name: "foo", JType: class.JType{Kind: class.JVar}}}
	_, err := resolve.ResolveVar(locals["foo"], locals, nil, class.Class{}, cm)
	require.Error(t, err)
	rerr, ok := err.(resolve.Error)
	require.True(t, ok)
	assert.Equal(t, resolve.ErrCheckValue, rerr.Kind)
}

func TestResolveCallChainToPointTruncates(t *testing.T) {
	cm := fakeClassMap{
		"com.example.Foo": {
			ClassPath: "com.example.Foo",
			Name:      "Foo",
			Methods: []class.Method{
				{Name: "getName", Return: class.JType{Kind: class.JClass, Name: "java.lang.String"}},
			},
		},
	}
	self := cm["com.example.Foo"]
	chain := []resolve.CallItem{
		{Kind: resolve.ItemThis},
		{Kind: resolve.ItemMethodCall, Name: "getName", Range: rangeAt(0, 5, 0, 12)},
		{Kind: resolve.ItemArgumentList, Range: rangeAt(0, 12, 0, 14)},
	}
	state, err := resolve.ResolveCallChainToPoint(chain, emptyLocals{}, nil, self, cm, pointAt(0, 7))
	require.NoError(t, err)
	assert.Equal(t, "com.example.Foo", state.Class.ClassPath)
}
