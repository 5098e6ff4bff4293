package classfile

import "github.com/oxhq/javalsp/internal/class"

// parseFieldDescriptor decodes one field/return descriptor per the JVM
// field-descriptor grammar.
func parseFieldDescriptor(desc string) class.JType {
	jt, _ := parseFieldType(desc, 0)
	return jt
}

// parseFieldType decodes a single descriptor element starting at pos,
// returning the type and the position just past it.
func parseFieldType(desc string, pos int) (class.JType, int) {
	if pos >= len(desc) {
		return class.JType{Kind: class.JVoid}, pos
	}
	switch desc[pos] {
	case 'B':
		return class.JType{Kind: class.JByte}, pos + 1
	case 'C':
		return class.JType{Kind: class.JChar}, pos + 1
	case 'D':
		return class.JType{Kind: class.JDouble}, pos + 1
	case 'F':
		return class.JType{Kind: class.JFloat}, pos + 1
	case 'I':
		return class.JType{Kind: class.JInt}, pos + 1
	case 'J':
		return class.JType{Kind: class.JLong}, pos + 1
	case 'S':
		return class.JType{Kind: class.JShort}, pos + 1
	case 'Z':
		return class.JType{Kind: class.JBoolean}, pos + 1
	case 'V':
		return class.JType{Kind: class.JVoid}, pos + 1
	case 'L':
		end := pos + 1
		for end < len(desc) && desc[end] != ';' {
			end++
		}
		name := dotted(desc[pos+1 : end])
		next := end
		if next < len(desc) {
			next++ // skip ';'
		}
		return class.JType{Kind: class.JClass, Name: name}, next
	case '[':
		elem, next := parseFieldType(desc, pos+1)
		return class.JType{Kind: class.JArray, Elem: &elem}, next
	default:
		return class.JType{Kind: class.JVoid}, pos + 1
	}
}

// parseMethodDescriptor decodes `(T1T2…)R` into its parameter types and
// return type.
func parseMethodDescriptor(desc string) ([]class.JType, class.JType) {
	if len(desc) == 0 || desc[0] != '(' {
		return nil, parseFieldDescriptor(desc)
	}
	var params []class.JType
	pos := 1
	for pos < len(desc) && desc[pos] != ')' {
		var jt class.JType
		jt, pos = parseFieldType(desc, pos)
		params = append(params, jt)
	}
	if pos < len(desc) && desc[pos] == ')' {
		pos++
	}
	ret := parseFieldDescriptor(desc[pos:])
	return params, ret
}
