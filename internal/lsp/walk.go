package lsp

import "github.com/oxhq/javalsp/internal/ast"

// walk.go collects every Expression and type reference reachable from a
// File, flattened and tagged with their source Range, so hover/definition/
// references/completion can each ask "what sits at this point" without
// re-walking the tree. Grounded on internal/resolve/locals.go's
// Range.Contains-gated descent, generalized from "collect locals in scope"
// to "collect every expression/type node", since the source language's
// handlers (crates/server/src/{hover,definition,references}.rs) all need
// the same "what AST node is under the cursor" primitive before they can
// call into the resolver.

// ExpressionsIn returns every Expression in file, including those nested
// inside conditions, initializers, lambda bodies, and nested classes.
func ExpressionsIn(file ast.File) []ast.Expression {
	var out []ast.Expression
	for _, t := range file.Things {
		walkThingExprs(t, &out)
	}
	return out
}

// ExpressionAt returns the innermost Expression in file whose range
// contains point, the closest Go equivalent of the source language
// server's "node under the cursor" lookup.
func ExpressionAt(file ast.File, point ast.Point) (ast.Expression, bool) {
	var best ast.Expression
	found := false
	for _, e := range ExpressionsIn(file) {
		if !e.Range.Contains(point) {
			continue
		}
		if !found || smaller(e.Range, best.Range) {
			best = e
			found = true
		}
	}
	return best, found
}

func smaller(a, b ast.Range) bool {
	aLines := a.End.Line - a.Start.Line
	bLines := b.End.Line - b.Start.Line
	if aLines != bLines {
		return aLines < bLines
	}
	return (a.End.Column - a.Start.Column) < (b.End.Column - b.Start.Column)
}

func walkThingExprs(t ast.Thing, out *[]ast.Expression) {
	for _, m := range t.Members {
		walkMemberExprs(m, out)
	}
}

func walkMemberExprs(m ast.Member, out *[]ast.Expression) {
	if m.Initializer != nil {
		appendExpr(*m.Initializer, out)
	}
	for _, a := range m.Annotations {
		for _, arg := range a.Args {
			appendExpr(arg, out)
		}
	}
	if m.Body != nil {
		walkBlockExprs(*m.Body, out)
	}
	for _, e := range m.EnumArgs {
		appendExpr(e, out)
	}
	if m.Kind == ast.MemberNestedThing && m.Nested != nil {
		walkThingExprs(*m.Nested, out)
	}
}

func walkBlockExprs(b ast.Block, out *[]ast.Expression) {
	for _, e := range b.Entries {
		walkEntryExprs(e, out)
	}
}

func walkEntryExprs(e ast.BlockEntry, out *[]ast.Expression) {
	switch e.Kind {
	case ast.EntryReturn:
		if e.Return != nil {
			appendExpr(*e.Return, out)
		}
	case ast.EntryAssert:
		if e.Assert != nil {
			appendExpr(*e.Assert, out)
		}
		if e.AssertMsg != nil {
			appendExpr(*e.AssertMsg, out)
		}
	case ast.EntryVarDecl:
		if e.VarDecl == nil {
			return
		}
		for _, v := range e.VarDecl.Vars {
			if v.Initializer != nil {
				appendExpr(*v.Initializer, out)
			}
		}
	case ast.EntryExprStmt:
		if e.ExprStmt != nil {
			appendExpr(*e.ExprStmt, out)
		}
	case ast.EntryAssignment:
		if e.Assignment != nil {
			appendExpr(e.Assignment.Target, out)
			appendExpr(e.Assignment.Value, out)
		}
	case ast.EntryIf:
		if e.If == nil {
			return
		}
		appendExpr(e.If.Condition, out)
		walkBlockExprs(e.If.Then, out)
		if e.If.Else != nil {
			walkBlockExprs(*e.If.Else, out)
		}
	case ast.EntryWhile:
		if e.While != nil {
			appendExpr(e.While.Condition, out)
			walkBlockExprs(e.While.Body, out)
		}
	case ast.EntryForClassical:
		if e.ForClassical == nil {
			return
		}
		for _, init := range e.ForClassical.Init {
			walkEntryExprs(init, out)
		}
		if e.ForClassical.Condition != nil {
			appendExpr(*e.ForClassical.Condition, out)
		}
		for _, u := range e.ForClassical.Update {
			appendExpr(u, out)
		}
		walkBlockExprs(e.ForClassical.Body, out)
	case ast.EntryForEnhanced:
		if e.ForEnhanced != nil {
			appendExpr(e.ForEnhanced.Iterable, out)
			walkBlockExprs(e.ForEnhanced.Body, out)
		}
	case ast.EntrySwitch:
		if e.Switch == nil {
			return
		}
		appendExpr(e.Switch.Selector, out)
		for _, arm := range e.Switch.Arms {
			walkSwitchArmExprs(arm, out)
		}
	case ast.EntryThrow:
		if e.Throw != nil {
			appendExpr(*e.Throw, out)
		}
	case ast.EntryTry:
		if e.Try == nil {
			return
		}
		for _, res := range e.Try.Resources {
			for _, v := range res.Vars {
				if v.Initializer != nil {
					appendExpr(*v.Initializer, out)
				}
			}
		}
		walkBlockExprs(e.Try.Body, out)
		for _, c := range e.Try.Catches {
			walkBlockExprs(c.Body, out)
		}
		if e.Try.Finally != nil {
			walkBlockExprs(*e.Try.Finally, out)
		}
	case ast.EntrySynchronized:
		if e.Synchronized != nil {
			appendExpr(e.Synchronized.Lock, out)
			walkBlockExprs(e.Synchronized.Body, out)
		}
	case ast.EntryYield:
		if e.Yield != nil {
			appendExpr(*e.Yield, out)
		}
	case ast.EntryNestedThing:
		if e.NestedThing != nil {
			walkThingExprs(*e.NestedThing, out)
		}
	case ast.EntryInlineBlock:
		if e.InlineBlock != nil {
			walkBlockExprs(*e.InlineBlock, out)
		}
	}
}

func walkSwitchArmExprs(arm ast.SwitchArm, out *[]ast.Expression) {
	for _, l := range arm.Labels {
		appendExpr(l, out)
	}
	for _, s := range arm.Statements {
		walkEntryExprs(s, out)
	}
	if arm.Block != nil {
		walkBlockExprs(*arm.Block, out)
	}
	if arm.Expr != nil {
		appendExpr(*arm.Expr, out)
	}
}

// appendExpr records e and recurses into every sub-expression its nodes
// carry (cast operands, new-class arguments, lambda bodies, array literal
// elements, inline switch arms, recursive-access segment arguments).
func appendExpr(e ast.Expression, out *[]ast.Expression) {
	*out = append(*out, e)
	for _, n := range e.Nodes {
		switch n.Kind {
		case ast.ExprCast:
			if n.CastOperand != nil {
				appendExpr(*n.CastOperand, out)
			}
		case ast.ExprNewClass:
			if n.NewClass != nil {
				for _, a := range n.NewClass.Args {
					appendExpr(a, out)
				}
				for _, a := range n.NewClass.ArrayLit {
					appendExpr(a, out)
				}
				if n.NewClass.AnonymousBody != nil {
					walkThingExprs(*n.NewClass.AnonymousBody, out)
				}
			}
		case ast.ExprArrayLiteral:
			for _, el := range n.Elements {
				appendExpr(el, out)
			}
		case ast.ExprLambda:
			if n.Lambda != nil {
				switch n.Lambda.Body.Kind {
				case ast.LambdaBodyExpression:
					if n.Lambda.Body.Expression != nil {
						appendExpr(*n.Lambda.Body.Expression, out)
					}
				case ast.LambdaBodyBlock:
					if n.Lambda.Body.Block != nil {
						walkBlockExprs(*n.Lambda.Body.Block, out)
					}
				}
			}
		case ast.ExprInlineSwitch:
			if n.Switch != nil {
				appendExpr(n.Switch.Selector, out)
				for _, arm := range n.Switch.Arms {
					walkSwitchArmExprs(arm, out)
				}
			}
		case ast.ExprRecursive:
			if n.Recursive != nil {
				for _, seg := range n.Recursive.Segments {
					for _, a := range seg.Args {
						appendExpr(a, out)
					}
					if seg.Index != nil {
						appendExpr(*seg.Index, out)
					}
				}
				if n.Recursive.Root.Index != nil {
					appendExpr(*n.Recursive.Root.Index, out)
				}
				if n.Recursive.Root.Inner != nil {
					appendExpr(*n.Recursive.Root.Inner, out)
				}
			}
		}
	}
}

// TypeRefsIn returns every JType reference reachable from file that names a
// class: a method's declared return type or a field's or parameter's
// declared type, among others. Annotation names are not collected.
func TypeRefsIn(file ast.File) []ast.JType {
	var out []ast.JType
	for _, t := range file.Things {
		walkThingTypes(t, &out)
	}
	return out
}

// TypeRefAt returns the innermost type reference in file whose range
// contains point.
func TypeRefAt(file ast.File, point ast.Point) (ast.JType, bool) {
	var best ast.JType
	found := false
	for _, jt := range TypeRefsIn(file) {
		if !jt.Range.Contains(point) {
			continue
		}
		if !found || smaller(jt.Range, best.Range) {
			best = jt
			found = true
		}
	}
	return best, found
}

func walkThingTypes(t ast.Thing, out *[]ast.JType) {
	if t.SuperClass != nil {
		*out = append(*out, *t.SuperClass)
	}
	*out = append(*out, t.SuperInterfaces...)
	for _, p := range t.RecordComponents {
		if p.Type != nil {
			*out = append(*out, *p.Type)
		}
	}
	for _, m := range t.Members {
		walkMemberTypes(m, out)
	}
}

func walkMemberTypes(m ast.Member, out *[]ast.JType) {
	if m.VarType != nil {
		*out = append(*out, *m.VarType)
	}
	if m.Return != nil {
		*out = append(*out, *m.Return)
	}
	*out = append(*out, m.Throws...)
	for _, p := range m.Params {
		if p.Type != nil {
			*out = append(*out, *p.Type)
		}
	}
	if m.Body != nil {
		walkBlockTypes(*m.Body, out)
	}
	if m.Kind == ast.MemberNestedThing && m.Nested != nil {
		walkThingTypes(*m.Nested, out)
	}
}

func walkBlockTypes(b ast.Block, out *[]ast.JType) {
	for _, e := range b.Entries {
		switch e.Kind {
		case ast.EntryVarDecl:
			if e.VarDecl != nil {
				*out = append(*out, e.VarDecl.Type)
			}
		case ast.EntryIf:
			if e.If != nil {
				walkBlockTypes(e.If.Then, out)
				if e.If.Else != nil {
					walkBlockTypes(*e.If.Else, out)
				}
			}
		case ast.EntryWhile:
			if e.While != nil {
				walkBlockTypes(e.While.Body, out)
			}
		case ast.EntryForClassical:
			if e.ForClassical != nil {
				for _, init := range e.ForClassical.Init {
					if init.Kind == ast.EntryVarDecl && init.VarDecl != nil {
						*out = append(*out, init.VarDecl.Type)
					}
				}
				walkBlockTypes(e.ForClassical.Body, out)
			}
		case ast.EntryForEnhanced:
			if e.ForEnhanced != nil {
				*out = append(*out, e.ForEnhanced.Type)
				walkBlockTypes(e.ForEnhanced.Body, out)
			}
		case ast.EntryTry:
			if e.Try != nil {
				for _, res := range e.Try.Resources {
					*out = append(*out, res.Type)
				}
				walkBlockTypes(e.Try.Body, out)
				for _, c := range e.Try.Catches {
					*out = append(*out, c.Types...)
					walkBlockTypes(c.Body, out)
				}
				if e.Try.Finally != nil {
					walkBlockTypes(*e.Try.Finally, out)
				}
			}
		case ast.EntrySynchronized:
			if e.Synchronized != nil {
				walkBlockTypes(e.Synchronized.Body, out)
			}
		case ast.EntryNestedThing:
			if e.NestedThing != nil {
				walkThingTypes(*e.NestedThing, out)
			}
		case ast.EntryInlineBlock:
			if e.InlineBlock != nil {
				walkBlockTypes(*e.InlineBlock, out)
			}
		}
	}
	for _, e := range b.Entries {
		for _, jt := range exprTypesInEntry(e) {
			*out = append(*out, jt)
		}
	}
}

// exprTypesInEntry collects the type references embedded inside
// expressions (cast targets, instanceof/bare-type checks, new-class
// targets) within one block entry's direct expressions only; nested blocks
// are handled by walkBlockTypes's own recursion.
func exprTypesInEntry(e ast.BlockEntry) []ast.JType {
	var exprs []ast.Expression
	switch e.Kind {
	case ast.EntryReturn:
		if e.Return != nil {
			exprs = append(exprs, *e.Return)
		}
	case ast.EntryExprStmt:
		if e.ExprStmt != nil {
			exprs = append(exprs, *e.ExprStmt)
		}
	case ast.EntryVarDecl:
		if e.VarDecl != nil {
			for _, v := range e.VarDecl.Vars {
				if v.Initializer != nil {
					exprs = append(exprs, *v.Initializer)
				}
			}
		}
	case ast.EntryAssignment:
		if e.Assignment != nil {
			exprs = append(exprs, e.Assignment.Value)
		}
	}
	var out []ast.JType
	for _, expr := range exprs {
		for _, n := range expr.Nodes {
			switch n.Kind {
			case ast.ExprCast, ast.ExprInstanceOf, ast.ExprBareType:
				if n.Type != nil {
					out = append(out, *n.Type)
				}
			case ast.ExprNewClass:
				if n.NewClass != nil {
					out = append(out, n.NewClass.Type)
				}
			}
		}
	}
	return out
}
