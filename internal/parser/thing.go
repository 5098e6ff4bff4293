package parser

import (
	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/token"
)

var accessKw = map[token.Kind]ast.Access{
	token.KwPublic:       ast.AccessPublic,
	token.KwPrivate:      ast.AccessPrivate,
	token.KwProtected:    ast.AccessProtected,
	token.KwStatic:       ast.AccessStatic,
	token.KwFinal:        ast.AccessFinal,
	token.KwAbstract:     ast.AccessAbstract,
	token.KwSynchronized: ast.AccessSynchronized,
	token.KwVolatile:     ast.AccessVolatile,
	token.KwTransient:    ast.AccessTransient,
	token.KwNative:       0, // carried only in Attributes; no Access bit reserved
}

// parseModifiers consumes a run of access-modifier keywords and `@Name`
// annotation uses in any order, folding them into one Access bitset plus
// the raw spellings for diagnostics.
func (c *cursor) parseModifiers(pos int) (ast.Access, []string, []ast.AnnotationUse, int) {
	var access ast.Access
	var attrs []string
	var annotations []ast.AnnotationUse
	for {
		p := c.skip(pos)
		if c.kind(p) == token.At {
			if ann, next, ok := c.tryAnnotationUse(p); ok {
				annotations = append(annotations, ann)
				pos = next
				continue
			}
		}
		if bit, ok := accessKw[c.kind(p)]; ok {
			access |= bit
			attrs = append(attrs, modifierText(c.kind(p)))
			pos = p + 1
			continue
		}
		break
	}
	return access, attrs, annotations, pos
}

func modifierText(k token.Kind) string {
	switch k {
	case token.KwPublic:
		return "public"
	case token.KwPrivate:
		return "private"
	case token.KwProtected:
		return "protected"
	case token.KwStatic:
		return "static"
	case token.KwFinal:
		return "final"
	case token.KwAbstract:
		return "abstract"
	case token.KwSynchronized:
		return "synchronized"
	case token.KwVolatile:
		return "volatile"
	case token.KwTransient:
		return "transient"
	case token.KwNative:
		return "native"
	}
	return ""
}

// tryAnnotationUse parses `@Name` or `@Name(args)`. pos points at the `@`.
func (c *cursor) tryAnnotationUse(pos int) (ast.AnnotationUse, int, bool) {
	start := pos
	pos++
	name, afterName, err := c.expectIdentifier(pos)
	if err != nil {
		return ast.AnnotationUse{}, start, false
	}
	ann := ast.AnnotationUse{Name: name}
	pos = afterName
	if p, ok := c.peekIs(pos, token.LParen); ok {
		args, after, aerr := c.parseArgList(p)
		if aerr == nil {
			ann.Args = args
			pos = after
		}
	}
	ann.Range = ast.Range{Start: c.point(start), End: c.point(pos)}
	return ann, pos, true
}

// isThingStart reports whether pos begins a class/record/interface/
// enumeration declaration, possibly preceded by modifiers and annotation
// uses. An `@interface` annotation declaration is not recognized.
// Used by parseBlockEntry to recognize a nested thing before falling back
// to the expression-statement path.
func isThingStart(c *cursor, pos int) bool {
	p := c.skip(pos)
	for {
		if c.kind(p) == token.At {
			if _, next, ok := c.tryAnnotationUse(p); ok {
				p = next
				continue
			}
		}
		if _, ok := accessKw[c.kind(p)]; ok {
			p++
			continue
		}
		break
	}
	switch c.kind(p) {
	case token.KwClass, token.KwInterface, token.KwEnum, token.KwRecord:
		return true
	}
	return false
}

// parseThing parses a class/record/interface/enumeration/annotation
// declaration, including any leading modifiers and annotations.
func (c *cursor) parseThing(pos int) (ast.Thing, int, error) {
	start := pos
	access, attrs, annotations, pos := c.parseModifiers(pos)

	var kind ast.ThingKind
	switch {
	case c.kind(pos) == token.KwClass:
		kind = ast.ThingClass
		pos++
	case c.kind(pos) == token.KwRecord:
		kind = ast.ThingRecord
		pos++
	case c.kind(pos) == token.KwInterface:
		kind = ast.ThingInterface
		pos++
	case c.kind(pos) == token.KwEnum:
		kind = ast.ThingEnumeration
		pos++
	case c.kind(pos) == token.At:
		p, ok := c.peekIs(pos+1, token.KwInterface)
		if !ok {
			return ast.Thing{}, start, ParseError{Kind: ErrExpectedToken, Pos: pos, Expected: "class/record/interface/enum declaration"}
		}
		kind = ast.ThingAnnotation
		pos = p + 1
	default:
		return ast.Thing{}, start, ParseError{Kind: ErrExpectedToken, Pos: pos, Expected: "class/record/interface/enum declaration"}
	}

	name, pos2, err := c.expectIdentifier(pos)
	if err != nil {
		return ast.Thing{}, start, err
	}
	pos = pos2

	thing := ast.Thing{Kind: kind, Access: access, Attributes: attrs, Annotations: annotations, Name: name}

	if p, ok := c.peekIs(pos, token.Lt); ok {
		params, next, terr := c.parseTypeParams(p)
		if terr == nil {
			thing.TypeParams = params
			pos = next
		}
	}

	if kind == ast.ThingRecord {
		pos, err = c.expect(pos, token.LParen, "(")
		if err != nil {
			return ast.Thing{}, start, err
		}
		if _, ok := c.peekIs(pos, token.RParen); !ok {
			for {
				ty, afterType, terr := c.parseType(pos)
				if terr != nil {
					return ast.Thing{}, start, terr
				}
				pname, afterName, nerr := c.expectIdentifier(afterType)
				if nerr != nil {
					return ast.Thing{}, start, nerr
				}
				thing.RecordComponents = append(thing.RecordComponents, ast.Param{Name: pname, Type: &ty, Range: ast.Range{Start: c.point(pos), End: c.point(afterName)}})
				pos = afterName
				if cp, ok := c.peekIs(pos, token.Comma); ok {
					pos = cp + 1
					continue
				}
				break
			}
		}
		pos, err = c.expect(pos, token.RParen, ")")
		if err != nil {
			return ast.Thing{}, start, err
		}
	}

	if p, ok := c.peekIs(pos, token.KwExtends); ok {
		if kind == ast.ThingInterface {
			var ifaces []ast.JType
			q := p + 1
			for {
				ty, next, terr := c.parseType(q)
				if terr != nil {
					break
				}
				ifaces = append(ifaces, ty)
				q = next
				if cp, ok := c.peekIs(q, token.Comma); ok {
					q = cp + 1
					continue
				}
				break
			}
			thing.SuperInterfaces = ifaces
			pos = q
		} else {
			super, next, terr := c.parseType(p + 1)
			if terr == nil {
				thing.SuperClass = &super
				pos = next
			}
		}
	}

	if p, ok := c.peekIs(pos, token.KwImplements); ok {
		q := p + 1
		for {
			ty, next, terr := c.parseType(q)
			if terr != nil {
				break
			}
			thing.SuperInterfaces = append(thing.SuperInterfaces, ty)
			q = next
			if cp, ok := c.peekIs(q, token.Comma); ok {
				q = cp + 1
				continue
			}
			break
		}
		pos = q
	}

	pos, err = c.expect(pos, token.LBrace, "{")
	if err != nil {
		return ast.Thing{}, start, err
	}

	// The enumeration-constant list only ever appears as the body's leading
	// run (`RED, GREEN, BLUE;`); once it ends, on a `;` terminator or on
	// the first entry that isn't a valid variant, every following entry
	// is parsed as a regular member.
	inVariantList := kind == ast.ThingEnumeration
	for {
		pos = c.skip(pos)
		if c.kind(pos) == token.RBrace || c.kind(pos) == token.EOF {
			break
		}
		if _, ok := c.peekIs(pos, token.Semicolon); ok {
			pos++
			inVariantList = false
			continue
		}
		if inVariantList && c.kind(pos) == token.Identifier {
			if variant, next, ok := c.tryEnumVariant(pos); ok {
				thing.Members = append(thing.Members, variant)
				pos = next
				if cp, ok := c.peekIs(pos, token.Comma); ok {
					pos = cp + 1
					continue
				}
				if sp, ok := c.peekIs(pos, token.Semicolon); ok {
					pos = sp + 1
				}
				inVariantList = false
				continue
			}
			inVariantList = false
		}
		members, next, merr := c.parseMember(pos, kind)
		if merr != nil {
			pos++
			continue
		}
		thing.Members = append(thing.Members, members...)
		pos = next
	}
	end, err := c.expect(pos, token.RBrace, "}")
	if err != nil {
		return thing, pos, err
	}
	thing.Range = ast.Range{Start: c.point(start), End: c.point(end)}
	return thing, end, nil
}

// parseAnonymousBody parses the `{ members }` block trailing an anonymous
// class instantiation, sharing the member grammar with parseThing's body
// but producing a bodiless Thing (its Name/SuperClass come from the
// enclosing NewClassExpr's Type). pos points at the opening `{`.
func (c *cursor) parseAnonymousBody(pos int) (ast.Thing, int, error) {
	start := pos
	pos, err := c.expect(pos, token.LBrace, "{")
	if err != nil {
		return ast.Thing{}, start, err
	}
	var thing ast.Thing
	for {
		pos = c.skip(pos)
		if c.kind(pos) == token.RBrace || c.kind(pos) == token.EOF {
			break
		}
		if _, ok := c.peekIs(pos, token.Semicolon); ok {
			pos++
			continue
		}
		members, next, merr := c.parseMember(pos, ast.ThingClass)
		if merr != nil {
			pos++
			continue
		}
		thing.Members = append(thing.Members, members...)
		pos = next
	}
	end, err := c.expect(pos, token.RBrace, "}")
	if err != nil {
		return thing, pos, err
	}
	thing.Range = ast.Range{Start: c.point(start), End: c.point(end)}
	return thing, end, nil
}

// parseTypeParams parses `<T, U extends Bound>` and returns just the bare
// parameter names; bounds are accepted syntactically but not retained,
// since resolution does not currently model bounded generics.
func (c *cursor) parseTypeParams(pos int) ([]string, int, error) {
	pos, err := c.expect(pos, token.Lt, "<")
	if err != nil {
		return nil, pos, err
	}
	var names []string
	for {
		name, next, nerr := c.expectIdentifier(pos)
		if nerr != nil {
			return nil, pos, nerr
		}
		names = append(names, name)
		pos = next
		if p, ok := c.peekIs(pos, token.KwExtends); ok {
			_, afterBound, terr := c.parseType(p + 1)
			if terr == nil {
				pos = afterBound
			}
		}
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
	return names, pos, nil
}

func (c *cursor) tryEnumVariant(pos int) (ast.Member, int, bool) {
	start := pos
	name, afterName, err := c.expectIdentifier(pos)
	if err != nil {
		return ast.Member{}, start, false
	}
	member := ast.Member{Kind: ast.MemberEnumVariant, Name: name}
	pos = afterName
	if p, ok := c.peekIs(pos, token.LParen); ok {
		args, after, aerr := c.parseArgList(p)
		if aerr != nil {
			return ast.Member{}, start, false
		}
		member.EnumArgs = args
		pos = after
	}
	if p, ok := c.peekIs(pos, token.LBrace); ok {
		// Enum constant body: a one-off anonymous-class-like override block.
		// Parsed and discarded positionally; its members are not currently
		// surfaced on the variant.
		depth := 1
		q := p + 1
		for depth > 0 && c.kind(q) != token.EOF {
			if c.kind(q) == token.LBrace {
				depth++
			} else if c.kind(q) == token.RBrace {
				depth--
			}
			q++
		}
		pos = q
	}
	member.Range = ast.Range{Start: c.point(start), End: c.point(pos)}
	return member, pos, true
}

// parseMember parses one class-body entry: a field, method, constructor,
// interface constant, or nested thing. kind selects thing-specific
// defaults (e.g. interface members are implicitly public/abstract, but
// that folding happens in the resolver, not here).
func (c *cursor) parseMember(pos int, thingKind ast.ThingKind) ([]ast.Member, int, error) {
	start := pos
	access, _, annotations, pos := c.parseModifiers(pos)

	if isThingStart(c, pos) {
		nested, next, err := c.parseThing(pos)
		if err != nil {
			return nil, start, err
		}
		return []ast.Member{{Kind: ast.MemberNestedThing, Access: access, Annotations: annotations, Nested: &nested, Range: nested.Range}}, next, nil
	}

	// Constructor: Identifier `(` immediately, with no intervening type.
	if c.kind(pos) == token.Identifier {
		if p, ok := c.peekIs(pos+1, token.LParen); ok {
			name := c.at(pos).Token.Text
			params, afterParams, perr := c.parseParamList(p)
			if perr == nil {
				member := ast.Member{Kind: ast.MemberConstructor, Access: access, Annotations: annotations, Name: name, Params: params}
				pos = afterParams
				if tp, ok := c.peekIs(pos, token.KwThrows); ok {
					throws, afterThrows := c.parseThrowsList(tp)
					member.Throws = throws
					pos = afterThrows
				}
				body, afterBody, berr := c.parseBlock(c.skip(pos))
				if berr != nil {
					return nil, start, berr
				}
				member.Body = &body
				member.Range = ast.Range{Start: c.point(start), End: c.point(afterBody)}
				return []ast.Member{member}, afterBody, nil
			}
		}
	}

	ty, afterType, terr := c.parseType(pos)
	if terr != nil {
		return nil, start, terr
	}
	name, afterName, nerr := c.expectIdentifier(afterType)
	if nerr != nil {
		return nil, start, nerr
	}

	// Method: name immediately followed by `(`.
	if p, ok := c.peekIs(afterName, token.LParen); ok {
		params, afterParams, perr := c.parseParamList(p)
		if perr != nil {
			return nil, start, perr
		}
		retTy := ty
		member := ast.Member{Kind: ast.MemberMethod, Access: access, Annotations: annotations, Name: name, Params: params, Return: &retTy}
		pos = afterParams
		pos = c.parseArraySuffixIgnore(pos)
		if tp, ok := c.peekIs(pos, token.KwThrows); ok {
			throws, afterThrows := c.parseThrowsList(tp)
			member.Throws = throws
			pos = afterThrows
		}
		if sp, ok := c.peekIs(pos, token.Semicolon); ok {
			member.Range = ast.Range{Start: c.point(start), End: c.point(sp + 1)}
			return []ast.Member{member}, sp + 1, nil
		}
		body, afterBody, berr := c.parseBlock(c.skip(pos))
		if berr != nil {
			return nil, start, berr
		}
		member.Body = &body
		member.Range = ast.Range{Start: c.point(start), End: c.point(afterBody)}
		return []ast.Member{member}, afterBody, nil
	}

	// Field / interface constant: one or more comma-separated declarators
	// sharing the declared type, each folded into its own Member.
	kind := ast.MemberVariable
	if thingKind == ast.ThingInterface {
		kind = ast.MemberInterfaceConstant
	}
	makeMember := func(declName string, declType ast.JType, init *ast.Expression, r ast.Range) ast.Member {
		return ast.Member{Kind: kind, Access: access, Annotations: annotations, VarType: &declType, Name: declName, Initializer: init, Range: r}
	}

	pos = afterName
	var members []ast.Member
	declStart := start
	declType := ty
	declName := name
	for {
		pos = c.parseArraySuffixIgnore(pos) // `Type name[]` legacy array-declarator suffix
		var init *ast.Expression
		if eq, ok := c.peekIs(pos, token.Equal); ok {
			val, afterInit, ierr := c.parseExpression(eq + 1)
			if ierr != nil {
				return nil, start, ierr
			}
			init = &val
			pos = afterInit
		}
		members = append(members, makeMember(declName, declType, init, ast.Range{Start: c.point(declStart), End: c.point(pos)}))
		if cp, ok := c.peekIs(pos, token.Comma); ok {
			declStart = cp + 1
			nextName, afterNext, nerr := c.expectIdentifier(cp + 1)
			if nerr != nil {
				return nil, start, nerr
			}
			declName = nextName
			declType = ty
			pos = afterNext
			continue
		}
		break
	}
	pos, err := c.expect(pos, token.Semicolon, ";")
	if err != nil {
		return nil, start, err
	}
	return members, pos, nil
}

// parseArraySuffixIgnore consumes trailing `[]` pairs after a method's
// parameter list (the language's legacy `Type name()[]` return-type
// suffix) without needing a JType to attach them to.
func (c *cursor) parseArraySuffixIgnore(pos int) int {
	for {
		p, ok := c.peekIs(pos, token.LBracket)
		if !ok {
			break
		}
		q, ok2 := c.peekIs(p+1, token.RBracket)
		if !ok2 {
			break
		}
		pos = q + 1
	}
	return pos
}

func (c *cursor) parseParamList(pos int) ([]ast.Param, int, error) {
	pos, err := c.expect(pos, token.LParen, "(")
	if err != nil {
		return nil, pos, err
	}
	var params []ast.Param
	if _, ok := c.peekIs(pos, token.RParen); ok {
		pos++
		return params, pos, nil
	}
	for {
		pstart := c.skip(pos)
		if _, ok := c.peekIs(pstart, token.KwFinal); ok {
			pstart++
		}
		for c.kind(pstart) == token.At {
			if _, next, ok := c.tryAnnotationUse(pstart); ok {
				pstart = next
				continue
			}
			break
		}
		ty, afterType, terr := c.parseType(pstart)
		if terr != nil {
			return nil, pos, terr
		}
		if p, ok := c.peekIs(afterType, token.Dot); ok {
			// `Type... name` varargs: three dots tokenize as three Dot
			// tokens since the lexer has no ellipsis compound. Modeled as
			// the equivalent array type.
			if q, ok2 := c.peekIs(p+1, token.Dot); ok2 {
				if r, ok3 := c.peekIs(q+1, token.Dot); ok3 {
					elem := ty
					ty = ast.JType{Kind: ast.JTypeArray, Elem: &elem, Range: ty.Range}
					afterType = r + 1
				}
			}
		}
		name, afterName, nerr := c.expectIdentifier(afterType)
		if nerr != nil {
			return nil, pos, nerr
		}
		param := ast.Param{Name: name, Type: &ty, Range: ast.Range{Start: c.point(pstart), End: c.point(afterName)}}
		params = append(params, param)
		pos = afterName
		if cp, ok := c.peekIs(pos, token.Comma); ok {
			pos = cp + 1
			continue
		}
		break
	}
	pos, err = c.expect(pos, token.RParen, ")")
	if err != nil {
		return nil, pos, err
	}
	return params, pos, nil
}

// parseThrowsList parses `throws Type1, Type2, ...`. Unlike most
// sub-parsers this never fails hard: an unparsable throws clause is
// silently dropped rather than aborting the enclosing method, since it
// does not affect the method's own validity.
func (c *cursor) parseThrowsList(pos int) ([]ast.JType, int) {
	pos++ // `throws`
	var types []ast.JType
	for {
		ty, next, terr := c.parseType(pos)
		if terr != nil {
			break
		}
		types = append(types, ty)
		pos = next
		if p, ok := c.peekIs(pos, token.Comma); ok {
			pos = p + 1
			continue
		}
		break
	}
	return types, pos
}
