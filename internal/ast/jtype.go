package ast

// JTypeKind tags the variant of a JType node.
type JTypeKind int

const (
	JTypeVoid JTypeKind = iota
	JTypePrimitive
	JTypeWildcard
	JTypeClass
	JTypeArray
	JTypeGeneric
	JTypeParameter
	JTypeVar
	JTypeAccess
)

// Primitive spells out the eight primitive kinds, matched to the keyword
// tokens the lexer recognizes. Void is its own JTypeKind, not a Primitive.
type Primitive int

const (
	PrimByte Primitive = iota
	PrimChar
	PrimShort
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
	PrimBoolean
)

// JType is a tagged variant over the type-reference shapes the source
// language's grammar admits. Only the fields relevant to Kind are
// populated; the rest are zero.
type JType struct {
	Kind  JTypeKind
	Range Range

	Primitive Primitive      // JTypePrimitive
	Name      string         // JTypeClass, JTypeGeneric, JTypeParameter
	Elem      *JType         // JTypeArray: element type
	Args      []JType        // JTypeGeneric: type arguments
	Base      *JType         // JTypeAccess: outer.Inner qualified access
	Inner     string         // JTypeAccess: the inner qualifier name
}

// Identifier returns the leading name component of a type reference, used
// by the resolver to look the type up in the class map. Void, wildcard and
// array types have no identifier of their own.
func (j JType) Identifier() (string, bool) {
	switch j.Kind {
	case JTypeClass, JTypeGeneric, JTypeParameter:
		return j.Name, true
	case JTypeAccess:
		return j.Inner, true
	default:
		return "", false
	}
}

// PrimitiveName returns the source-language spelling of a primitive kind.
func (p Primitive) PrimitiveName() string {
	switch p {
	case PrimByte:
		return "byte"
	case PrimChar:
		return "char"
	case PrimShort:
		return "short"
	case PrimInt:
		return "int"
	case PrimLong:
		return "long"
	case PrimFloat:
		return "float"
	case PrimDouble:
		return "double"
	case PrimBoolean:
		return "boolean"
	}
	return "?"
}
