package parser

import (
	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/token"
)

var primitiveKw = map[token.Kind]ast.Primitive{
	token.KwByte:    ast.PrimByte,
	token.KwChar:    ast.PrimChar,
	token.KwShort:   ast.PrimShort,
	token.KwInt:     ast.PrimInt,
	token.KwLong:    ast.PrimLong,
	token.KwFloat:   ast.PrimFloat,
	token.KwDouble:  ast.PrimDouble,
	token.KwBoolean: ast.PrimBoolean,
}

// parseType parses a JType: primitive | identifier | `?` wildcard | `var`,
// followed by optional `.`-qualified inner types, `<...>` generic argument
// lists (recursively nested), and trailing `[]` array dimensions.
func (c *cursor) parseType(pos int) (ast.JType, int, error) {
	start := c.skip(pos)

	if c.kind(start) == token.KwVoid {
		return ast.JType{Kind: ast.JTypeVoid, Range: ast.Range{Start: c.point(start), End: c.point(start + 1)}}, start + 1, nil
	}
	if c.kind(start) == token.KwVar {
		return ast.JType{Kind: ast.JTypeVar, Range: ast.Range{Start: c.point(start), End: c.point(start + 1)}}, start + 1, nil
	}
	if prim, ok := primitiveKw[c.kind(start)]; ok {
		jt := ast.JType{Kind: ast.JTypePrimitive, Primitive: prim, Range: ast.Range{Start: c.point(start), End: c.point(start + 1)}}
		return c.parseArraySuffix(jt, start+1)
	}
	if c.kind(start) == token.Question {
		jt := ast.JType{Kind: ast.JTypeWildcard, Range: ast.Range{Start: c.point(start), End: c.point(start + 1)}}
		return c.parseArraySuffix(jt, start+1)
	}
	if c.kind(start) != token.Identifier {
		return ast.JType{}, start, ParseError{Kind: ErrInvalidJType, Pos: start}
	}

	name, next, err := c.expectIdentifier(start)
	if err != nil {
		return ast.JType{}, start, ParseError{Kind: ErrInvalidJType, Pos: start}
	}
	jt := ast.JType{Kind: ast.JTypeClass, Name: name}

	// Optional generic argument list.
	if p, ok := c.peekIs(next, token.Lt); ok {
		args, afterArgs, gerr := c.parseGenericArgs(p)
		if gerr == nil {
			jt.Kind = ast.JTypeGeneric
			jt.Args = args
			next = afterArgs
		}
	}

	// Optional `.`-qualified inner types: fold left-to-right into JTypeAccess.
	for {
		p, ok := c.peekIs(next, token.Dot)
		if !ok {
			break
		}
		innerStart := c.skip(p + 1)
		if c.kind(innerStart) != token.Identifier {
			break
		}
		inner, afterInner, ierr := c.expectIdentifier(innerStart)
		if ierr != nil {
			break
		}
		base := jt
		jt = ast.JType{Kind: ast.JTypeAccess, Base: &base, Inner: inner}
		if q, ok := c.peekIs(afterInner, token.Lt); ok {
			args, afterArgs, gerr := c.parseGenericArgs(q)
			if gerr == nil {
				jt.Args = args
				afterInner = afterArgs
			}
		}
		next = afterInner
	}

	jt.Range = ast.Range{Start: c.point(start), End: c.point(next)}
	return c.parseArraySuffix(jt, next)
}

// parseArraySuffix consumes zero-or-more trailing `[]` pairs.
func (c *cursor) parseArraySuffix(elem ast.JType, pos int) (ast.JType, int, error) {
	for {
		p, ok := c.peekIs(pos, token.LBracket)
		if !ok {
			break
		}
		q, ok2 := c.peekIs(p+1, token.RBracket)
		if !ok2 {
			break
		}
		e := elem
		elem = ast.JType{Kind: ast.JTypeArray, Elem: &e, Range: ast.Range{Start: e.Range.Start, End: c.point(q + 1)}}
		pos = q + 1
	}
	return elem, pos, nil
}

// parseGenericArgs parses a `<T1, T2, ...>` list, recursing through nested
// generics. pos points at the opening `<`.
func (c *cursor) parseGenericArgs(pos int) ([]ast.JType, int, error) {
	pos, err := c.expect(pos, token.Lt, "<")
	if err != nil {
		return nil, pos, err
	}
	var args []ast.JType
	if p, ok := c.peekIs(pos, token.Gt); ok {
		return args, p + 1, nil
	}
	for {
		arg, next, aerr := c.parseType(pos)
		if aerr != nil {
			return nil, pos, aerr
		}
		args = append(args, arg)
		pos = next
		if p, ok := c.peekIs(pos, token.Comma); ok {
			pos = p + 1
			continue
		}
		break
	}
	pos, err = c.expect(pos, token.Gt, ">")
	if err != nil {
		return nil, pos, err
	}
	return args, pos, nil
}
