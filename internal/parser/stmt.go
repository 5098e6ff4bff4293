package parser

import (
	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/token"
)

// parseBlock parses `{ entries* }`. The working error from one failing
// entry does not poison the rest: a failed entry is skipped by advancing
// one token and resuming, so later valid statements still report cleanly.
func (c *cursor) parseBlock(pos int) (ast.Block, int, error) {
	start := pos
	pos, err := c.expect(pos, token.LBrace, "{")
	if err != nil {
		return ast.Block{}, start, err
	}
	var entries []ast.BlockEntry
	for {
		pos = c.skip(pos)
		if c.kind(pos) == token.RBrace || c.kind(pos) == token.EOF {
			break
		}
		entry, next, eerr := c.parseBlockEntry(pos)
		if eerr != nil {
			// Recovery: advance one token and keep scanning for the next
			// entry so a single bad statement doesn't block the rest.
			pos++
			continue
		}
		entries = append(entries, entry)
		pos = next
	}
	end, err := c.expect(pos, token.RBrace, "}")
	if err != nil {
		return ast.Block{Entries: entries, Range: ast.Range{Start: c.point(start), End: c.point(pos)}}, pos, err
	}
	return ast.Block{Entries: entries, Range: ast.Range{Start: c.point(start), End: c.point(end)}}, end, nil
}

// parseBlockEntry tries keyword-led statement forms first, then nested
// things, then local variable declarations, then an expression statement
// or assignment, in that fixed priority order.
func (c *cursor) parseBlockEntry(pos int) (ast.BlockEntry, int, error) {
	start := c.skip(pos)

	if _, ok := c.peekIs(start, token.Semicolon); ok {
		return ast.BlockEntry{Kind: ast.EntryEmpty, Range: ast.Range{Start: c.point(start), End: c.point(start + 1)}}, start + 1, nil
	}

	switch c.kind(start) {
	case token.KwReturn:
		return c.parseReturn(start)
	case token.KwAssert:
		return c.parseAssert(start)
	case token.KwIf:
		return c.parseIf(start)
	case token.KwWhile:
		return c.parseWhile(start)
	case token.KwFor:
		return c.parseFor(start)
	case token.KwBreak:
		return c.parseBreakContinue(start, ast.EntryBreak)
	case token.KwContinue:
		return c.parseBreakContinue(start, ast.EntryContinue)
	case token.KwSwitch:
		return c.parseSwitchStmt(start)
	case token.KwThrow:
		return c.parseThrow(start)
	case token.KwTry:
		return c.parseTry(start)
	case token.KwSynchronized:
		return c.parseSynchronized(start)
	case token.KwYield:
		return c.parseYield(start)
	case token.LBrace:
		block, next, err := c.parseBlock(start)
		if err != nil {
			return ast.BlockEntry{}, start, err
		}
		return ast.BlockEntry{Kind: ast.EntryInlineBlock, InlineBlock: &block, Range: block.Range}, next, nil
	}

	if isThingStart(c, start) {
		thing, next, err := c.parseThing(start)
		if err == nil {
			return ast.BlockEntry{Kind: ast.EntryNestedThing, NestedThing: &thing, Range: thing.Range}, next, nil
		}
	}

	if decl, next, ok := c.tryVarDecl(start); ok {
		return ast.BlockEntry{Kind: ast.EntryVarDecl, VarDecl: &decl, Range: ast.Range{Start: c.point(start), End: c.point(next)}}, next, nil
	}

	expr, next, err := c.parseExpression(start)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	if opPos, opText, ok := c.peekAssignmentOperator(next); ok {
		value, afterValue, verr := c.parseExpression(opPos)
		if verr != nil {
			return ast.BlockEntry{}, start, verr
		}
		assign := &ast.AssignmentStmt{Target: expr, Operator: opText, Value: value}
		afterValue, _ = c.expect(afterValue, token.Semicolon, ";")
		return ast.BlockEntry{Kind: ast.EntryAssignment, Assignment: assign, Range: ast.Range{Start: c.point(start), End: c.point(afterValue)}}, afterValue, nil
	}
	next, _ = c.expect(next, token.Semicolon, ";")
	return ast.BlockEntry{Kind: ast.EntryExprStmt, ExprStmt: &expr, Range: ast.Range{Start: c.point(start), End: c.point(next)}}, next, nil
}

var assignOps = map[token.Kind]string{
	token.Equal: "=",
}

func (c *cursor) peekAssignmentOperator(pos int) (int, string, bool) {
	p := c.skip(pos)
	if op, ok := assignOps[c.kind(p)]; ok {
		return p + 1, op, true
	}
	return pos, "", false
}

func (c *cursor) parseReturn(pos int) (ast.BlockEntry, int, error) {
	start := pos
	pos, _ = c.expect(pos, token.KwReturn, "return")
	if p, ok := c.peekIs(pos, token.Semicolon); ok {
		return ast.BlockEntry{Kind: ast.EntryReturn, Range: ast.Range{Start: c.point(start), End: c.point(p + 1)}}, p + 1, nil
	}
	expr, next, err := c.parseExpression(pos)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	next, _ = c.expect(next, token.Semicolon, ";")
	return ast.BlockEntry{Kind: ast.EntryReturn, Return: &expr, Range: ast.Range{Start: c.point(start), End: c.point(next)}}, next, nil
}

func (c *cursor) parseAssert(pos int) (ast.BlockEntry, int, error) {
	start := pos
	pos, _ = c.expect(pos, token.KwAssert, "assert")
	cond, next, err := c.parseExpression(pos)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	entry := ast.BlockEntry{Kind: ast.EntryAssert, Assert: &cond}
	if p, ok := c.peekIs(next, token.Colon); ok {
		msg, afterMsg, merr := c.parseExpression(p + 1)
		if merr == nil {
			entry.AssertMsg = &msg
			next = afterMsg
		}
	}
	next, _ = c.expect(next, token.Semicolon, ";")
	entry.Range = ast.Range{Start: c.point(start), End: c.point(next)}
	return entry, next, nil
}

func (c *cursor) parseIf(pos int) (ast.BlockEntry, int, error) {
	start := pos
	pos, err := c.expect(pos, token.KwIf, "if")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	pos, err = c.expect(pos, token.LParen, "(")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	cond, next, err := c.parseExpression(pos)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	next, err = c.expect(next, token.RParen, ")")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	thenBlock, next2, err := c.parseBlockOrSingle(next)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	stmt := &ast.IfStmt{Condition: cond, Then: thenBlock}
	if p, ok := c.peekIs(next2, token.KwElse); ok {
		after := p + 1
		if q, ok2 := c.peekIs(after, token.KwIf); ok2 {
			nested, afterNested, nerr := c.parseIf(q)
			if nerr == nil {
				block := ast.Block{Entries: []ast.BlockEntry{nested}, Range: nested.Range}
				stmt.Else = &block
				next2 = afterNested
			}
		} else {
			elseBlock, afterElse, eerr := c.parseBlockOrSingle(after)
			if eerr == nil {
				stmt.Else = &elseBlock
				next2 = afterElse
			}
		}
	}
	return ast.BlockEntry{Kind: ast.EntryIf, If: stmt, Range: ast.Range{Start: c.point(start), End: c.point(next2)}}, next2, nil
}

// parseBlockOrSingle parses a `{ ... }` block or wraps a single statement
// in a synthetic one-entry Block, matching the source language's braces-
// optional single-statement bodies.
func (c *cursor) parseBlockOrSingle(pos int) (ast.Block, int, error) {
	p := c.skip(pos)
	if c.kind(p) == token.LBrace {
		return c.parseBlock(p)
	}
	entry, next, err := c.parseBlockEntry(p)
	if err != nil {
		return ast.Block{}, pos, err
	}
	return ast.Block{Entries: []ast.BlockEntry{entry}, Range: entry.Range}, next, nil
}

func (c *cursor) parseWhile(pos int) (ast.BlockEntry, int, error) {
	start := pos
	pos, err := c.expect(pos, token.KwWhile, "while")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	pos, err = c.expect(pos, token.LParen, "(")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	cond, next, err := c.parseExpression(pos)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	next, err = c.expect(next, token.RParen, ")")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	body, next2, err := c.parseBlockOrSingle(next)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	stmt := &ast.WhileStmt{Condition: cond, Body: body}
	return ast.BlockEntry{Kind: ast.EntryWhile, While: stmt, Range: ast.Range{Start: c.point(start), End: c.point(next2)}}, next2, nil
}

// parseFor disambiguates classical `for (init; cond; update)` from
// enhanced `for (Type name : iterable)` by attempting the enhanced form
// first (it is the more constrained shape).
func (c *cursor) parseFor(pos int) (ast.BlockEntry, int, error) {
	start := pos
	pos, err := c.expect(pos, token.KwFor, "for")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	pos, err = c.expect(pos, token.LParen, "(")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}

	if ty, afterType, terr := c.parseType(pos); terr == nil {
		if name, afterName, nerr := c.expectIdentifier(afterType); nerr == nil {
			if p, ok := c.peekIs(afterName, token.Colon); ok {
				iter, afterIter, ierr := c.parseExpression(p + 1)
				if ierr == nil {
					afterIter, cerr := c.expect(afterIter, token.RParen, ")")
					if cerr == nil {
						body, next2, berr := c.parseBlockOrSingle(afterIter)
						if berr == nil {
							stmt := &ast.ForEnhancedStmt{Type: ty, Name: name, Iterable: iter, Body: body}
							return ast.BlockEntry{Kind: ast.EntryForEnhanced, ForEnhanced: stmt, Range: ast.Range{Start: c.point(start), End: c.point(next2)}}, next2, nil
						}
					}
				}
			}
		}
	}

	var init []ast.BlockEntry
	if p, ok := c.peekIs(pos, token.Semicolon); ok {
		pos = p + 1
	} else {
		for {
			var entry ast.BlockEntry
			var next int
			if decl, declNext, ok := c.tryVarDecl(pos); ok {
				entry = ast.BlockEntry{Kind: ast.EntryVarDecl, VarDecl: &decl, Range: ast.Range{Start: c.point(pos), End: c.point(declNext)}}
				next = declNext
			} else {
				expr, exprNext, eerr := c.parseExpression(pos)
				if eerr != nil {
					return ast.BlockEntry{}, start, eerr
				}
				entry = ast.BlockEntry{Kind: ast.EntryExprStmt, ExprStmt: &expr, Range: expr.Range}
				next = exprNext
			}
			init = append(init, entry)
			pos = next
			if cp, ok := c.peekIs(pos, token.Comma); ok {
				pos = cp + 1
				continue
			}
			break
		}
		pos, err = c.expect(pos, token.Semicolon, ";")
		if err != nil {
			return ast.BlockEntry{}, start, err
		}
	}

	var cond *ast.Expression
	if p, ok := c.peekIs(pos, token.Semicolon); !ok {
		condExpr, next, cerr := c.parseExpression(pos)
		if cerr != nil {
			return ast.BlockEntry{}, start, cerr
		}
		cond = &condExpr
		pos = next
	} else {
		pos = p
	}
	pos, err = c.expect(pos, token.Semicolon, ";")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}

	var update []ast.Expression
	if _, ok := c.peekIs(pos, token.RParen); !ok {
		for {
			u, next, uerr := c.parseExpression(pos)
			if uerr != nil {
				return ast.BlockEntry{}, start, uerr
			}
			update = append(update, u)
			pos = next
			if cp, ok := c.peekIs(pos, token.Comma); ok {
				pos = cp + 1
				continue
			}
			break
		}
	}
	pos, err = c.expect(pos, token.RParen, ")")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	body, next2, err := c.parseBlockOrSingle(pos)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	stmt := &ast.ForClassicalStmt{Init: init, Condition: cond, Update: update, Body: body}
	return ast.BlockEntry{Kind: ast.EntryForClassical, ForClassical: stmt, Range: ast.Range{Start: c.point(start), End: c.point(next2)}}, next2, nil
}

func (c *cursor) parseBreakContinue(pos int, kind ast.BlockEntryKind) (ast.BlockEntry, int, error) {
	start := pos
	pos++
	label := ""
	if c.kind(c.skip(pos)) == token.Identifier {
		p := c.skip(pos)
		label = c.at(p).Token.Text
		pos = p + 1
	}
	pos, _ = c.expect(pos, token.Semicolon, ";")
	entry := ast.BlockEntry{Kind: kind, Range: ast.Range{Start: c.point(start), End: c.point(pos)}}
	if kind == ast.EntryBreak {
		entry.BreakLabel = label
	} else {
		entry.ContinueLabel = label
	}
	return entry, pos, nil
}

func (c *cursor) parseThrow(pos int) (ast.BlockEntry, int, error) {
	start := pos
	pos, _ = c.expect(pos, token.KwThrow, "throw")
	expr, next, err := c.parseExpression(pos)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	next, _ = c.expect(next, token.Semicolon, ";")
	return ast.BlockEntry{Kind: ast.EntryThrow, Throw: &expr, Range: ast.Range{Start: c.point(start), End: c.point(next)}}, next, nil
}

func (c *cursor) parseYield(pos int) (ast.BlockEntry, int, error) {
	start := pos
	pos, _ = c.expect(pos, token.KwYield, "yield")
	expr, next, err := c.parseExpression(pos)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	next, _ = c.expect(next, token.Semicolon, ";")
	return ast.BlockEntry{Kind: ast.EntryYield, Yield: &expr, Range: ast.Range{Start: c.point(start), End: c.point(next)}}, next, nil
}

func (c *cursor) parseSynchronized(pos int) (ast.BlockEntry, int, error) {
	start := pos
	pos, err := c.expect(pos, token.KwSynchronized, "synchronized")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	pos, err = c.expect(pos, token.LParen, "(")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	lock, next, err := c.parseExpression(pos)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	next, err = c.expect(next, token.RParen, ")")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	body, next2, err := c.parseBlock(next)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	stmt := &ast.SynchronizedStmt{Lock: lock, Body: body}
	return ast.BlockEntry{Kind: ast.EntrySynchronized, Synchronized: stmt, Range: ast.Range{Start: c.point(start), End: c.point(next2)}}, next2, nil
}

func (c *cursor) parseTry(pos int) (ast.BlockEntry, int, error) {
	start := pos
	pos, err := c.expect(pos, token.KwTry, "try")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	stmt := &ast.TryStmt{}
	if p, ok := c.peekIs(pos, token.LParen); ok {
		pos = p + 1
		for {
			decl, next, ok := c.tryVarDecl(pos)
			if !ok {
				break
			}
			stmt.Resources = append(stmt.Resources, decl)
			pos = next
			if sp, ok := c.peekIs(pos, token.Semicolon); ok {
				pos = sp + 1
				continue
			}
			break
		}
		pos, err = c.expect(pos, token.RParen, ")")
		if err != nil {
			return ast.BlockEntry{}, start, err
		}
	}
	body, next, err := c.parseBlock(pos)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	stmt.Body = body
	pos = next

	for {
		p, ok := c.peekIs(pos, token.KwCatch)
		if !ok {
			break
		}
		pos, err = c.expect(p, token.KwCatch, "catch")
		if err != nil {
			break
		}
		pos, err = c.expect(pos, token.LParen, "(")
		if err != nil {
			break
		}
		var types []ast.JType
		for {
			ty, next, terr := c.parseType(pos)
			if terr != nil {
				break
			}
			types = append(types, ty)
			pos = next
			pipe, ok := c.peekIs(pos, token.OrOr)
			if ok {
				pos = pipe + 1
				continue
			}
			break
		}
		name, afterName, nerr := c.expectIdentifier(pos)
		if nerr != nil {
			break
		}
		pos, err = c.expect(afterName, token.RParen, ")")
		if err != nil {
			break
		}
		catchBody, afterBody, cerr := c.parseBlock(pos)
		if cerr != nil {
			break
		}
		stmt.Catches = append(stmt.Catches, ast.CatchClause{Types: types, Name: name, Body: catchBody})
		pos = afterBody
	}

	if p, ok := c.peekIs(pos, token.KwFinally); ok {
		finallyBlock, afterFinally, ferr := c.parseBlock(p + 1)
		if ferr == nil {
			stmt.Finally = &finallyBlock
			pos = afterFinally
		}
	}

	return ast.BlockEntry{Kind: ast.EntryTry, Try: stmt, Range: ast.Range{Start: c.point(start), End: c.point(pos)}}, pos, nil
}

// parseSwitchStmt parses both classical (`case v:`) and arrow-form
// (`case v ->`) switch statements.
func (c *cursor) parseSwitchStmt(pos int) (ast.BlockEntry, int, error) {
	start := pos
	pos, err := c.expect(pos, token.KwSwitch, "switch")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	pos, err = c.expect(pos, token.LParen, "(")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	selector, next, err := c.parseExpression(pos)
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	next, err = c.expect(next, token.RParen, ")")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	next, err = c.expect(next, token.LBrace, "{")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}

	stmt := &ast.SwitchStmt{Selector: selector}
	pos = next
	for {
		pos = c.skip(pos)
		if c.kind(pos) == token.RBrace || c.kind(pos) == token.EOF {
			break
		}
		arm, afterArm, aerr := c.parseSwitchArm(pos)
		if aerr != nil {
			pos++
			continue
		}
		if len(stmt.Arms) == 0 {
			stmt.Arrow = arm.BodyKind != ast.ArmBodyBlock || arm.Block != nil
		}
		stmt.Arms = append(stmt.Arms, arm)
		pos = afterArm
	}
	end, err := c.expect(pos, token.RBrace, "}")
	if err != nil {
		return ast.BlockEntry{}, start, err
	}
	return ast.BlockEntry{Kind: ast.EntrySwitch, Switch: stmt, Range: ast.Range{Start: c.point(start), End: c.point(end)}}, end, nil
}

// parseSwitchArm parses one `case label(s):`/`case label(s) ->`/`default`
// arm. After the separator it accepts a block, a single expression, or a
// type pattern.
func (c *cursor) parseSwitchArm(pos int) (ast.SwitchArm, int, error) {
	start := pos
	arm := ast.SwitchArm{}
	if p, ok := c.peekIs(pos, token.KwDefault); ok {
		arm.IsDefault = true
		pos = p + 1
	} else {
		next, err := c.expect(pos, token.KwCase, "case")
		if err != nil {
			return ast.SwitchArm{}, start, err
		}
		pos = next
		matchedTypePattern := false
		if ty, afterType, terr := c.parseType(pos); terr == nil {
			if _, afterName, nerr := c.expectIdentifier(afterType); nerr == nil {
				if _, ok := c.peekIs(afterName, token.Arrow); ok {
					arm.TypeLabel = &ty
					pos = afterName
					matchedTypePattern = true
				}
			}
		}
		if !matchedTypePattern {
			for {
				label, next, lerr := c.parseExpression(pos)
				if lerr != nil {
					return ast.SwitchArm{}, start, lerr
				}
				arm.Labels = append(arm.Labels, label)
				pos = next
				if cp, ok := c.peekIs(pos, token.Comma); ok {
					pos = cp + 1
					continue
				}
				break
			}
		}
	}
	if p, ok := c.peekIs(pos, token.Arrow); ok {
		after := c.skip(p + 1)
		if c.kind(after) == token.LBrace {
			block, next, berr := c.parseBlock(after)
			if berr != nil {
				return ast.SwitchArm{}, start, berr
			}
			arm.BodyKind = ast.ArmBodyBlock
			arm.Block = &block
			pos = next
		} else {
			expr, next, eerr := c.parseExpression(after)
			if eerr != nil {
				return ast.SwitchArm{}, start, eerr
			}
			next, _ = c.expect(next, token.Semicolon, ";")
			arm.BodyKind = ast.ArmBodyExpression
			arm.Expr = &expr
			pos = next
		}
		arm.Range = ast.Range{Start: c.point(start), End: c.point(pos)}
		return arm, pos, nil
	}

	pos, err := c.expect(pos, token.Colon, ":")
	if err != nil {
		return ast.SwitchArm{}, start, err
	}
	for {
		p := c.skip(pos)
		if c.kind(p) == token.KwCase || c.kind(p) == token.KwDefault || c.kind(p) == token.RBrace || c.kind(p) == token.EOF {
			break
		}
		entry, next, eerr := c.parseBlockEntry(p)
		if eerr != nil {
			pos = p + 1
			continue
		}
		arm.Statements = append(arm.Statements, entry)
		pos = next
	}
	arm.Range = ast.Range{Start: c.point(start), End: c.point(pos)}
	return arm, pos, nil
}

// tryVarDecl attempts a local variable declaration list; callers treat
// failure as "not a var decl" rather than a hard parse error, since the
// expression-statement alternative must still get a chance under the
// block entry's fixed priority order.
func (c *cursor) tryVarDecl(pos int) (ast.VarDeclStmt, int, bool) {
	start := pos
	final := false
	if p, ok := c.peekIs(pos, token.KwFinal); ok {
		final = true
		pos = p + 1
	}
	ty, afterType, terr := c.parseType(pos)
	if terr != nil {
		return ast.VarDeclStmt{}, start, false
	}
	var vars []ast.VarDeclarator
	p := afterType
	for {
		name, afterName, nerr := c.expectIdentifier(p)
		if nerr != nil {
			if len(vars) == 0 {
				return ast.VarDeclStmt{}, start, false
			}
			break
		}
		decl := ast.VarDeclarator{Name: name, Range: ast.Range{Start: c.point(p), End: c.point(afterName)}}
		p = afterName
		if eq, ok := c.peekIs(p, token.Equal); ok {
			init, afterInit, ierr := c.parseExpression(eq + 1)
			if ierr != nil {
				if len(vars) == 0 {
					return ast.VarDeclStmt{}, start, false
				}
				break
			}
			decl.Initializer = &init
			p = afterInit
		}
		vars = append(vars, decl)
		if cp, ok := c.peekIs(p, token.Comma); ok {
			p = cp + 1
			continue
		}
		break
	}
	if len(vars) == 0 {
		return ast.VarDeclStmt{}, start, false
	}
	p, serr := c.expect(p, token.Semicolon, ";")
	if serr != nil {
		return ast.VarDeclStmt{}, start, false
	}
	return ast.VarDeclStmt{Type: ty, Vars: vars, Final: final}, p, true
}
