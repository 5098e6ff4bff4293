package parser

import (
	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/token"
)

var binaryOperators = map[token.Kind]string{
	token.Plus: "+", token.Dash: "-", token.Star: "*", token.Slash: "/",
	token.EqualEqual: "==", token.NotEqual: "!=", token.Lt: "<", token.Gt: ">",
	token.LtEqual: "<=", token.GtEqual: ">=", token.OrOr: "||", token.AndAnd: "&&",
	token.Question: "?", token.Colon: ":",
}

// parseExpression parses a non-empty sequence of ExpressionKind nodes
// implicitly composed by whatever operator tokens appear between them. It
// stops at the first token that cannot start a primary and is not a
// recognized binary/ternary operator.
func (c *cursor) parseExpression(pos int) (ast.Expression, int, error) {
	start := c.skip(pos)
	var nodes []ast.ExpressionNode

	node, next, err := c.parsePrimaryNode(start)
	if err != nil {
		return ast.Expression{}, start, ParseError{Kind: ErrEmptyExpression, Pos: start}
	}
	nodes = append(nodes, node)
	pos = next

	for {
		// postfix ++ / --
		if p, ok := c.peekIs(pos, token.PlusPlus); ok {
			nodes = append(nodes, ast.ExpressionNode{Kind: ast.ExprOperator, Operator: "++", Range: ast.Range{Start: c.point(p), End: c.point(p + 1)}})
			pos = p + 1
			continue
		}
		if p, ok := c.peekIs(pos, token.MinusMinus); ok {
			nodes = append(nodes, ast.ExpressionNode{Kind: ast.ExprOperator, Operator: "--", Range: ast.Range{Start: c.point(p), End: c.point(p + 1)}})
			pos = p + 1
			continue
		}
		// instanceof
		if p, ok := c.peekIs(pos, token.KwInstanceof); ok {
			ty, after, terr := c.parseType(p + 1)
			if terr != nil {
				break
			}
			nodes = append(nodes, ast.ExpressionNode{Kind: ast.ExprInstanceOf, Type: &ty, Range: ty.Range})
			pos = after
			continue
		}
		// binary / ternary operators followed by another primary.
		p := c.skip(pos)
		opText, isOp := binaryOperators[c.kind(p)]
		if !isOp {
			break
		}
		rhs, after, rerr := c.parsePrimaryNode(p + 1)
		if rerr != nil {
			break
		}
		nodes = append(nodes, ast.ExpressionNode{Kind: ast.ExprOperator, Operator: opText, Range: ast.Range{Start: c.point(p), End: c.point(p + 1)}})
		nodes = append(nodes, rhs)
		pos = after
	}

	rng := ast.Range{Start: nodes[0].Range.Start, End: nodes[len(nodes)-1].Range.End}
	return ast.Expression{Nodes: nodes, Range: rng}, pos, nil
}

// parsePrimaryNode parses one primary term: an integer, boolean, null or
// string nugget, a recursive chain, a lambda, a new-class expression, a
// cast, or a parenthesized expression. Inline switch expressions and bare
// type references are not parsed here.
func (c *cursor) parsePrimaryNode(pos int) (ast.ExpressionNode, int, error) {
	start := c.skip(pos)

	switch c.kind(start) {
	case token.Integer:
		txt := c.at(start).Token.Text
		return ast.ExpressionNode{
			Kind: ast.ExprNugget, NuggetKind: ast.NuggetInteger, NuggetText: txt,
			Range: ast.Range{Start: c.point(start), End: c.point(start + 1)},
		}, start + 1, nil
	case token.KwTrue, token.KwFalse:
		return ast.ExpressionNode{
			Kind: ast.ExprNugget, NuggetKind: ast.NuggetBoolean,
			NuggetText: map[bool]string{true: "true", false: "false"}[c.kind(start) == token.KwTrue],
			Range:      ast.Range{Start: c.point(start), End: c.point(start + 1)},
		}, start + 1, nil
	case token.KwNull:
		return ast.ExpressionNode{Kind: ast.ExprNugget, NuggetKind: ast.NuggetNull, Range: ast.Range{Start: c.point(start), End: c.point(start + 1)}}, start + 1, nil
	case token.StringQuote:
		return c.parseStringOrCharLiteral(start)
	case token.KwNew:
		return c.parseNewClass(start)
	case token.LParen:
		if node, next, ok := c.parseParenLambda(start); ok {
			return node, next, nil
		}
		return c.parseParenOrCast(start)
	}

	// Lambda: bare identifier -> body.
	if c.kind(start) == token.Identifier {
		if p, ok := c.peekIs(start+1, token.Arrow); ok {
			return c.parseLambdaFrom(start, []ast.Param{{Name: c.at(start).Token.Text, Range: ast.Range{Start: c.point(start), End: c.point(start + 1)}}}, p)
		}
	}

	// Recursive chain: identifier / this / super, then `.`-segments and an
	// optional trailing argument list.
	return c.parseRecursive(start)
}

func (c *cursor) parseStringOrCharLiteral(pos int) (ast.ExpressionNode, int, error) {
	start := pos
	pos++ // opening quote already confirmed by caller via kind check
	for c.kind(pos) != token.StringQuote && c.kind(pos) != token.EOF {
		pos++
	}
	if c.kind(pos) != token.StringQuote {
		return ast.ExpressionNode{}, start, ParseError{Kind: ErrInvalidString, Pos: start}
	}
	pos++
	return ast.ExpressionNode{
		Kind: ast.ExprNugget, NuggetKind: ast.NuggetString,
		Range: ast.Range{Start: c.point(start), End: c.point(pos)},
	}, pos, nil
}

func (c *cursor) parseParenOrCast(pos int) (ast.ExpressionNode, int, error) {
	start := pos
	inner := pos + 1
	// Try cast: `(` Type `)` expression, where Type must be followed
	// immediately by `)` and then a valid primary.
	if ty, afterType, terr := c.parseType(inner); terr == nil {
		if rp, ok := c.peekIs(afterType, token.RParen); ok {
			if operand, afterOperand, oerr := c.parseExpression(rp + 1); oerr == nil {
				return ast.ExpressionNode{
					Kind: ast.ExprCast, Type: &ty, CastOperand: &operand,
					Range: ast.Range{Start: c.point(start), End: operand.Range.End},
				}, afterOperand, nil
			}
		}
	}
	// Parenthesized expression, folded into a RootParenthesized recursive.
	innerExpr, afterInner, ierr := c.parseExpression(inner)
	if ierr != nil {
		return ast.ExpressionNode{}, start, ierr
	}
	closePos, ok := c.peekIs(afterInner, token.RParen)
	if !ok {
		return ast.ExpressionNode{}, start, ParseError{Kind: ErrExpectedToken, Pos: afterInner, Expected: ")"}
	}
	next := closePos + 1
	rec := &ast.RecursiveExpr{
		Root:  ast.RecursiveRoot{Kind: ast.RootParenthesized, Inner: &innerExpr, Range: ast.Range{Start: c.point(start), End: c.point(next)}},
		Range: ast.Range{Start: c.point(start), End: c.point(next)},
	}
	return c.parseChainTail(rec, next)
}

// parseRecursive parses the recursive expression form: identifier/this/
// super root, `.`-separated segments, optional argument lists and array
// indices.
func (c *cursor) parseRecursive(pos int) (ast.ExpressionNode, int, error) {
	start := pos
	var root ast.RecursiveRoot

	switch c.kind(start) {
	case token.KwThis:
		root = ast.RecursiveRoot{Kind: ast.RootThis, Range: ast.Range{Start: c.point(start), End: c.point(start + 1)}}
		pos = start + 1
	case token.KwSuper:
		root = ast.RecursiveRoot{Kind: ast.RootSuper, Range: ast.Range{Start: c.point(start), End: c.point(start + 1)}}
		pos = start + 1
	case token.Identifier:
		name, next, err := c.expectIdentifier(start)
		if err != nil {
			return ast.ExpressionNode{}, start, err
		}
		root = ast.RecursiveRoot{Kind: ast.RootIdentifier, Name: name, Range: ast.Range{Start: c.point(start), End: c.point(next)}}
		pos = next
	default:
		return ast.ExpressionNode{}, start, ParseError{Kind: ErrEmptyExpression, Pos: start}
	}

	rec := &ast.RecursiveExpr{Root: root, Range: root.Range}
	return c.parseChainTail(rec, pos)
}

// parseChainTail consumes zero-or-more `.name`, `.name(args)`, `(args)`,
// and `[index]` segments following a recursive root.
func (c *cursor) parseChainTail(rec *ast.RecursiveExpr, pos int) (ast.ExpressionNode, int, error) {
	// A bare trailing argument list directly on the root (method call with
	// no receiver, e.g. `foo(1, 2)`).
	if p, ok := c.peekIs(pos, token.LParen); ok {
		args, after, aerr := c.parseArgList(p)
		if aerr == nil {
			rec.Segments = append(rec.Segments, ast.RecursiveSegment{Args: args, HasArgs: true, Range: ast.Range{Start: c.point(p), End: c.point(after)}})
			pos = after
		}
	}

	for {
		if p, ok := c.peekIs(pos, token.Dot); ok {
			name, afterName, nerr := c.expectIdentifier(p + 1)
			if nerr != nil {
				break
			}
			seg := ast.RecursiveSegment{Name: name, Range: ast.Range{Start: c.point(p), End: c.point(afterName)}}
			if q, ok := c.peekIs(afterName, token.LParen); ok {
				args, after, aerr := c.parseArgList(q)
				if aerr == nil {
					seg.Args = args
					seg.HasArgs = true
					seg.Range.End = c.point(after)
					afterName = after
				}
			}
			rec.Segments = append(rec.Segments, seg)
			pos = afterName
			continue
		}
		if p, ok := c.peekIs(pos, token.LBracket); ok {
			idx, afterIdx, ierr := c.parseExpression(p + 1)
			if ierr != nil {
				break
			}
			closeBracket, ok2 := c.peekIs(afterIdx, token.RBracket)
			if !ok2 {
				break
			}
			rec.Segments = append(rec.Segments, ast.RecursiveSegment{Index: &idx, Range: ast.Range{Start: c.point(p), End: c.point(closeBracket + 1)}})
			pos = closeBracket + 1
			continue
		}
		break
	}

	end := rec.Root.Range.End
	if len(rec.Segments) > 0 {
		end = rec.Segments[len(rec.Segments)-1].Range.End
	}
	rec.Range = ast.Range{Start: rec.Root.Range.Start, End: end}
	return ast.ExpressionNode{Kind: ast.ExprRecursive, Recursive: rec, Range: rec.Range}, pos, nil
}

// parseArgList parses `(expr, expr, ...)`. pos points at the opening `(`.
func (c *cursor) parseArgList(pos int) ([]ast.Expression, int, error) {
	pos, err := c.expect(pos, token.LParen, "(")
	if err != nil {
		return nil, pos, err
	}
	var args []ast.Expression
	if p, ok := c.peekIs(pos, token.RParen); ok {
		return args, p + 1, nil
	}
	for {
		arg, next, aerr := c.parseExpression(pos)
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
	pos, err = c.expect(pos, token.RParen, ")")
	if err != nil {
		return nil, pos, err
	}
	return args, pos, nil
}

// parseLambdaFrom finishes a lambda whose parameter list and `->` have
// already been identified. next points just after the arrow.
func (c *cursor) parseLambdaFrom(start int, params []ast.Param, next int) (ast.ExpressionNode, int, error) {
	pos := c.skip(next + 1)
	body := ast.LambdaBody{}
	if c.kind(pos) == token.LBrace {
		block, after, berr := c.parseBlock(pos)
		if berr != nil {
			return ast.ExpressionNode{}, start, berr
		}
		body.Kind = ast.LambdaBodyBlock
		body.Block = &block
		pos = after
	} else {
		expr, after, eerr := c.parseExpression(pos)
		if eerr != nil {
			body.Kind = ast.LambdaBodyNone
		} else {
			body.Kind = ast.LambdaBodyExpression
			body.Expression = &expr
			pos = after
		}
	}
	lambda := &ast.LambdaExpr{Params: params, Body: body, Range: ast.Range{Start: c.point(start), End: c.point(pos)}}
	return ast.ExpressionNode{Kind: ast.ExprLambda, Lambda: lambda, Range: lambda.Range}, pos, nil
}

// parseParenLambda handles `(params) -> body`, trying it before falling
// back to a parenthesized expression when the `(...)` is not followed by
// `->`.
func (c *cursor) parseParenLambda(pos int) (ast.ExpressionNode, int, bool) {
	start := pos
	p := pos + 1
	var params []ast.Param
	if closeP, ok := c.peekIs(p, token.RParen); ok {
		p = closeP
	} else {
		for {
			param, next, ok := c.parseLambdaParam(p)
			if !ok {
				return ast.ExpressionNode{}, start, false
			}
			params = append(params, param)
			p = next
			if cp, ok := c.peekIs(p, token.Comma); ok {
				p = cp + 1
				continue
			}
			break
		}
	}
	closeP, ok := c.peekIs(p, token.RParen)
	if !ok {
		return ast.ExpressionNode{}, start, false
	}
	arrowP, ok := c.peekIs(closeP+1, token.Arrow)
	if !ok {
		return ast.ExpressionNode{}, start, false
	}
	node, next, err := c.parseLambdaFrom(start, params, arrowP)
	if err != nil {
		return ast.ExpressionNode{}, start, false
	}
	return node, next, true
}

// parseLambdaParam parses one lambda parameter, which may carry an
// explicit type ("Type name") or be a bare name.
func (c *cursor) parseLambdaParam(pos int) (ast.Param, int, bool) {
	save := pos
	if ty, afterType, terr := c.parseType(pos); terr == nil {
		if name, afterName, nerr := c.expectIdentifier(afterType); nerr == nil {
			return ast.Param{Name: name, Type: &ty, Range: ast.Range{Start: c.point(save), End: c.point(afterName)}}, afterName, true
		}
	}
	name, afterName, err := c.expectIdentifier(pos)
	if err != nil {
		return ast.Param{}, pos, false
	}
	return ast.Param{Name: name, Range: ast.Range{Start: c.point(save), End: c.point(afterName)}}, afterName, true
}

func (c *cursor) parseNewClass(pos int) (ast.ExpressionNode, int, error) {
	start := pos
	ty, afterType, terr := c.parseType(pos + 1)
	if terr != nil {
		return ast.ExpressionNode{}, start, terr
	}
	nc := &ast.NewClassExpr{Type: ty}
	pos = afterType

	if p, ok := c.peekIs(pos, token.LBrace); ok && ty.Kind == ast.JTypeArray {
		elems, after, eerr := c.parseArrayLiteralElems(p)
		if eerr == nil {
			nc.IsArrayLit = true
			nc.ArrayLit = elems
			pos = after
		}
	} else if p, ok := c.peekIs(pos, token.LParen); ok {
		args, after, aerr := c.parseArgList(p)
		if aerr != nil {
			return ast.ExpressionNode{}, start, aerr
		}
		nc.Args = args
		pos = after
		if q, ok := c.peekIs(pos, token.LBrace); ok {
			body, after2, berr := c.parseAnonymousBody(q)
			if berr == nil {
				nc.AnonymousBody = &body
				pos = after2
			}
		}
	}

	return ast.ExpressionNode{Kind: ast.ExprNewClass, NewClass: nc, Range: ast.Range{Start: c.point(start), End: c.point(pos)}}, pos, nil
}

func (c *cursor) parseArrayLiteralElems(pos int) ([]ast.Expression, int, error) {
	pos, err := c.expect(pos, token.LBrace, "{")
	if err != nil {
		return nil, pos, err
	}
	var elems []ast.Expression
	if p, ok := c.peekIs(pos, token.RBrace); ok {
		return elems, p + 1, nil
	}
	for {
		e, next, eerr := c.parseExpression(pos)
		if eerr != nil {
			break
		}
		elems = append(elems, e)
		pos = next
		if p, ok := c.peekIs(pos, token.Comma); ok {
			pos = p + 1
			continue
		}
		break
	}
	pos, err = c.expect(pos, token.RBrace, "}")
	if err != nil {
		return nil, pos, err
	}
	return elems, pos, nil
}
