// Package resolve implements the type-resolution engine: turning a bare
// type name or a call chain into the Class/JType it refers to, walking
// import resolution order, and flattening the inheritance chain into each
// resolved class (the "parent overlay").
package resolve

import "github.com/oxhq/javalsp/internal/ast"

// CallItemKind tags one element of a flattened call chain.
type CallItemKind int

const (
	ItemMethodCall CallItemKind = iota
	ItemFieldAccess
	ItemVariable
	ItemThis
	ItemClass
	ItemClassOrVariable
	ItemArgumentList
)

// CallItem is one step of a call chain. Only the fields relevant to Kind
// are populated.
type CallItem struct {
	Kind  CallItemKind
	Name  string // MethodCall, FieldAccess, Variable, Class, ClassOrVariable
	Range ast.Range

	// ArgumentList
	Prev         []CallItem
	ActiveParam  *int
	FilledParams [][]CallItem
}

// SourceRange returns the item's source range, the span ValidateToPoint
// compares against a cursor position.
func (c CallItem) SourceRange() ast.Range { return c.Range }

// BuildCallChain converts a parsed Expression into the flat CallItem
// sequence the resolver walks. The recursive-access shape (identifier/
// this/super root plus `.name`, `.name(args)`, `[index]` segments) produces
// the chain's items, and a string literal or a new-class expression adds a
// single Class item; other expression forms (casts, lambdas, other
// literals) are not call chains and yield nothing.
func BuildCallChain(expr ast.Expression) []CallItem {
	var out []CallItem
	for _, node := range expr.Nodes {
		switch node.Kind {
		case ast.ExprRecursive:
			if node.Recursive != nil {
				out = append(out, buildFromRecursive(*node.Recursive)...)
			}
		case ast.ExprNugget:
			if node.NuggetKind == ast.NuggetString {
				out = append(out, CallItem{Kind: ItemClass, Name: "String", Range: node.Range})
			}
		case ast.ExprNewClass:
			if node.NewClass != nil {
				out = append(out, CallItem{Kind: ItemClass, Name: node.NewClass.Type.Name, Range: node.Range})
			}
		}
	}
	return out
}

func buildFromRecursive(r ast.RecursiveExpr) []CallItem {
	var out []CallItem
	switch r.Root.Kind {
	case ast.RootIdentifier:
		out = append(out, CallItem{Kind: ItemClassOrVariable, Name: r.Root.Name, Range: r.Root.Range})
	case ast.RootThis:
		out = append(out, CallItem{Kind: ItemThis, Range: r.Root.Range})
	case ast.RootSuper:
		out = append(out, CallItem{Kind: ItemThis, Range: r.Root.Range})
	case ast.RootArrayAccess:
		if r.Root.Index != nil {
			out = append(out, BuildCallChain(*r.Root.Index)...)
		}
	case ast.RootParenthesized:
		if r.Root.Inner != nil {
			out = append(out, BuildCallChain(*r.Root.Inner)...)
		}
	}

	for _, seg := range r.Segments {
		if seg.Index != nil {
			out = append(out, BuildCallChain(*seg.Index)...)
			continue
		}
		if seg.HasArgs {
			filled := make([][]CallItem, len(seg.Args))
			for i, a := range seg.Args {
				filled[i] = BuildCallChain(a)
			}
			if seg.Name != "" {
				out = append(out, CallItem{Kind: ItemMethodCall, Name: seg.Name, Range: seg.Range})
			}
			out = append(out, CallItem{
				Kind:         ItemArgumentList,
				Prev:         append([]CallItem(nil), out...),
				FilledParams: filled,
				Range:        seg.Range,
			})
			continue
		}
		if seg.Name != "" {
			out = append(out, CallItem{Kind: ItemFieldAccess, Name: seg.Name, Range: seg.Range})
		}
	}
	return out
}

// ValidateToPoint truncates a call chain to the items that start at or
// before point.
func ValidateToPoint(chain []CallItem, point ast.Point) []CallItem {
	for i, item := range chain {
		if startsAfter(item.Range, point) {
			return chain[:i]
		}
	}
	return chain
}

func startsAfter(r ast.Range, p ast.Point) bool {
	return p.Before(r.Start)
}
