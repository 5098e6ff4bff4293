package class_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
)

func TestAccessFlags(t *testing.T) {
	a := class.Public | class.Static | class.Final
	assert.True(t, a.Has(class.Public))
	assert.True(t, a.Has(class.Static|class.Final))
	assert.False(t, a.Has(class.Private))
	assert.True(t, a.Any(class.Private|class.Public))
	assert.Equal(t, "public static final", a.String())
}

func TestFromASTPrimitivesAndClass(t *testing.T) {
	jt := class.FromAST(ast.JType{Kind: ast.JTypePrimitive, Primitive: ast.PrimInt})
	assert.Equal(t, class.JInt, jt.Kind)

	jt = class.FromAST(ast.JType{Kind: ast.JTypeClass, Name: "java.lang.String"})
	assert.Equal(t, class.JClass, jt.Kind)
	assert.Equal(t, "java.lang.String", jt.Name)
	assert.Equal(t, "String", jt.String())
}

func TestFromASTArrayAndGeneric(t *testing.T) {
	elem := ast.JType{Kind: ast.JTypeClass, Name: "java.lang.String"}
	arr := class.FromAST(ast.JType{Kind: ast.JTypeArray, Elem: &elem})
	assert.Equal(t, class.JArray, arr.Kind)
	assert.Equal(t, "String[]", arr.String())
	assert.Equal(t, []string{"java.lang.String"}, arr.ClassNames())

	generic := class.FromAST(ast.JType{
		Kind: ast.JTypeGeneric,
		Name: "List",
		Args: []ast.JType{elem},
	})
	assert.Equal(t, "List<String>", generic.String())
	assert.Equal(t, []string{"java.lang.String"}, generic.ClassNames())
}

func TestImportUnitClassName(t *testing.T) {
	u := class.ImportUnit{Kind: class.ImportClass, Path: "java.util.List"}
	name, ok := u.ClassName()
	assert.True(t, ok)
	assert.Equal(t, "List", name)

	pkg := class.ImportUnit{Kind: class.ImportPrefix, Path: "java.util"}
	_, ok = pkg.ClassName()
	assert.False(t, ok)
}

func TestClassPackage(t *testing.T) {
	c := class.Class{ClassPath: "com.example.Foo", Name: "Foo"}
	assert.Equal(t, "com.example", c.Package())

	top := class.Class{ClassPath: "Foo", Name: "Foo"}
	assert.Equal(t, "", top.Package())
}
