package lsp

import (
	"sort"
	"strings"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/resolve"
)

// Completion answers a textDocument/completion request at point. When the
// cursor sits right after a `.`, the call chain up to (but excluding) the
// partial trailing segment resolves to a receiver class, and completion
// lists that class's members filtered by whatever prefix was already
// typed. With no receiver in scope, it falls back to locals and the
// enclosing class's own members, the bare-name completion case.
func (c *Context) Completion(path string, point ast.Point) []CompletionItem {
	file, ok := c.fileAt(path)
	if !ok {
		return nil
	}
	self, hasSelf := c.selfClass(file)
	locals := resolve.NewLocalScope(file, point)

	expr, ok := ExpressionAt(file, point)
	if ok {
		chain := resolve.BuildCallChain(expr)
		truncated := resolve.ValidateToPoint(chain, point)
		if len(truncated) > 0 {
			last := truncated[len(truncated)-1]
			if (last.Kind == resolve.ItemFieldAccess || last.Kind == resolve.ItemMethodCall) && len(truncated) > 1 {
				prev := truncated[:len(truncated)-1]
				if state, err := resolve.ResolveCallChainToPoint(prev, locals, importsOf(self), self, c.ClassMap, point); err == nil {
					return memberCompletions(state.Class, last.Name)
				}
			}
		}
	}

	if !hasSelf {
		return nil
	}
	var out []CompletionItem
	for _, v := range resolve.LocalsAt(file, point) {
		out = append(out, CompletionItem{Label: v.Name, Kind: CompletionVariable, Detail: v.JType.String()})
	}
	out = append(out, memberCompletions(self, "")...)
	return out
}

func memberCompletions(c class.Class, prefix string) []CompletionItem {
	var out []CompletionItem
	for _, f := range c.Fields {
		if !strings.HasPrefix(f.Name, prefix) {
			continue
		}
		out = append(out, CompletionItem{Label: f.Name, Kind: CompletionField, Detail: f.JType.String()})
	}
	for _, m := range c.Methods {
		if !strings.HasPrefix(m.Name, prefix) {
			continue
		}
		out = append(out, CompletionItem{Label: m.Name, Kind: CompletionMethod, Detail: methodSignature(m)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
