package lsp

import (
	"strings"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
)

// DocumentSymbols builds the outline tree for a textDocument/documentSymbol
// request: one entry per top-level Thing, nested Things, and each Thing's
// methods/fields/enum variants.
func DocumentSymbols(file ast.File) []DocumentSymbol {
	out := make([]DocumentSymbol, 0, len(file.Things))
	for _, t := range file.Things {
		out = append(out, thingSymbol(t))
	}
	return out
}

func thingSymbol(t ast.Thing) DocumentSymbol {
	sym := DocumentSymbol{
		Name:           t.Name,
		Kind:           thingSymbolKind(t.Kind),
		Range:          ToRange(t.Range),
		SelectionRange: ToRange(t.Range),
	}
	for _, m := range t.Members {
		if child, ok := memberSymbol(m); ok {
			sym.Children = append(sym.Children, child)
		}
	}
	return sym
}

func thingSymbolKind(k ast.ThingKind) SymbolKind {
	switch k {
	case ast.ThingInterface:
		return SymbolInterface
	case ast.ThingEnumeration:
		return SymbolEnum
	case ast.ThingAnnotation:
		return SymbolAnnotation
	default:
		return SymbolClass
	}
}

func memberSymbol(m ast.Member) (DocumentSymbol, bool) {
	switch m.Kind {
	case ast.MemberVariable:
		return DocumentSymbol{Name: m.Name, Kind: SymbolField, Range: ToRange(m.Range), SelectionRange: ToRange(m.Range)}, true
	case ast.MemberInterfaceConstant:
		return DocumentSymbol{Name: m.Name, Kind: SymbolConstant, Range: ToRange(m.Range), SelectionRange: ToRange(m.Range)}, true
	case ast.MemberMethod:
		return DocumentSymbol{Name: m.Name, Kind: SymbolMethod, Range: ToRange(m.Range), SelectionRange: ToRange(m.Range)}, true
	case ast.MemberConstructor:
		return DocumentSymbol{Name: "<init>", Kind: SymbolConstructor, Range: ToRange(m.Range), SelectionRange: ToRange(m.Range)}, true
	case ast.MemberEnumVariant:
		return DocumentSymbol{Name: m.Name, Kind: SymbolEnumMember, Range: ToRange(m.Range), SelectionRange: ToRange(m.Range)}, true
	case ast.MemberNestedThing:
		if m.Nested != nil {
			sym := thingSymbol(*m.Nested)
			return sym, true
		}
	}
	return DocumentSymbol{}, false
}

// WorkspaceSymbols searches every indexed class for one matching query
// (case-insensitive substring of its short name), used by the
// workspace/symbol request.
func (c *Context) WorkspaceSymbols(query string) []WorkspaceSymbol {
	query = strings.ToLower(query)
	var out []WorkspaceSymbol
	for _, cl := range c.ClassMap.Snapshot() {
		if query != "" && !strings.Contains(strings.ToLower(cl.Name), query) {
			continue
		}
		loc, ok := c.locationForClass(cl)
		if !ok {
			loc = Location{URI: uriForClassPath(cl)}
		}
		out = append(out, WorkspaceSymbol{Name: cl.Name, Kind: classSymbolKind(cl), Location: loc})
	}
	return out
}

func classSymbolKind(c class.Class) SymbolKind {
	switch {
	case c.Access.Has(class.Interface):
		return SymbolInterface
	case c.Access.Has(class.Enum):
		return SymbolEnum
	case c.Access.Has(class.Annotation):
		return SymbolAnnotation
	default:
		return SymbolClass
	}
}
