package class

import (
	"strings"

	"github.com/oxhq/javalsp/internal/ast"
)

// JTypeKind tags a normalized type reference. Distinct from ast.JTypeKind:
// this shape carries no Range and is what gets serialized into the on-disk
// cache and compared across compiled/source origins.
type JTypeKind int

const (
	JVoid JTypeKind = iota
	JByte
	JChar
	JDouble
	JFloat
	JInt
	JLong
	JShort
	JBoolean
	JWildcard
	JClass
	JArray
	JGeneric
	JParameter
	JVar
	JAccess
)

// JType is the normalized, serializable counterpart of ast.JType.
type JType struct {
	Kind JTypeKind `json:"kind"`

	Name string  `json:"name,omitempty"` // JClass, JGeneric, JParameter
	Elem *JType  `json:"elem,omitempty"` // JArray
	Args []JType `json:"args,omitempty"` // JGeneric

	Base  *JType `json:"base,omitempty"`  // JAccess
	Inner *JType `json:"inner,omitempty"` // JAccess
}

// String renders a JType the way it would appear in source, collapsing the
// `java.lang` package prefix the way a hover tooltip should.
func (j JType) String() string {
	switch j.Kind {
	case JVoid:
		return "void"
	case JByte:
		return "byte"
	case JChar:
		return "char"
	case JDouble:
		return "double"
	case JFloat:
		return "float"
	case JInt:
		return "int"
	case JLong:
		return "long"
	case JShort:
		return "short"
	case JBoolean:
		return "boolean"
	case JWildcard:
		return "?"
	case JClass:
		return strings.TrimPrefix(j.Name, "java.lang.")
	case JArray:
		if j.Elem == nil {
			return "[]"
		}
		return j.Elem.String() + "[]"
	case JGeneric:
		parts := make([]string, len(j.Args))
		for i, a := range j.Args {
			parts[i] = a.String()
		}
		return j.Name + "<" + strings.Join(parts, ", ") + ">"
	case JParameter:
		return "<" + j.Name + ">"
	case JVar:
		return "var"
	case JAccess:
		if j.Base == nil || j.Inner == nil {
			return j.Name
		}
		return j.Base.String() + "." + j.Inner.String()
	}
	return "?"
}

// ClassNames collects the name of every JClass node reachable from j
// through array elements and generic arguments, used to build the
// implicit-import set of a class record. A generic's own base name and
// access/parameter types are not included.
func (j JType) ClassNames() []string {
	switch j.Kind {
	case JClass:
		return []string{j.Name}
	case JArray:
		if j.Elem == nil {
			return nil
		}
		return j.Elem.ClassNames()
	case JGeneric:
		var out []string
		for _, a := range j.Args {
			out = append(out, a.ClassNames()...)
		}
		return out
	default:
		return nil
	}
}

// FromAST converts a parser-level ast.JType into its normalized form,
// dropping position information.
func FromAST(t ast.JType) JType {
	switch t.Kind {
	case ast.JTypeVoid:
		return JType{Kind: JVoid}
	case ast.JTypePrimitive:
		return JType{Kind: primitiveKind(t.Primitive)}
	case ast.JTypeWildcard:
		return JType{Kind: JWildcard}
	case ast.JTypeClass:
		return JType{Kind: JClass, Name: t.Name}
	case ast.JTypeArray:
		var elem JType
		if t.Elem != nil {
			elem = FromAST(*t.Elem)
		}
		return JType{Kind: JArray, Elem: &elem}
	case ast.JTypeGeneric:
		args := make([]JType, len(t.Args))
		for i, a := range t.Args {
			args[i] = FromAST(a)
		}
		return JType{Kind: JGeneric, Name: t.Name, Args: args}
	case ast.JTypeParameter:
		return JType{Kind: JParameter, Name: t.Name}
	case ast.JTypeVar:
		return JType{Kind: JVar}
	case ast.JTypeAccess:
		var base JType
		if t.Base != nil {
			base = FromAST(*t.Base)
		}
		inner := JType{Kind: JClass, Name: t.Inner}
		return JType{Kind: JAccess, Base: &base, Inner: &inner}
	}
	return JType{Kind: JVoid}
}

func primitiveKind(p ast.Primitive) JTypeKind {
	switch p {
	case ast.PrimByte:
		return JByte
	case ast.PrimChar:
		return JChar
	case ast.PrimShort:
		return JShort
	case ast.PrimInt:
		return JInt
	case ast.PrimLong:
		return JLong
	case ast.PrimFloat:
		return JFloat
	case ast.PrimDouble:
		return JDouble
	case ast.PrimBoolean:
		return JBoolean
	}
	return JInt
}
