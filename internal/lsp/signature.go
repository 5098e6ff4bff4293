package lsp

import (
	"sort"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/resolve"
)

// SignatureHelp answers a textDocument/signatureHelp request: finds the
// ArgumentList call chain item enclosing point, resolves its receiver, and
// lists every overload of the called method as a candidate signature with
// the cursor's active parameter index highlighted.
func (c *Context) SignatureHelp(path string, point ast.Point) (SignatureHelp, bool) {
	file, ok := c.fileAt(path)
	if !ok {
		return SignatureHelp{}, false
	}
	self, hasSelf := c.selfClass(file)
	if !hasSelf {
		return SignatureHelp{}, false
	}
	truncated, ok := enclosingCallChain(file, point)
	if !ok {
		return SignatureHelp{}, false
	}
	argList, methodName, ok := enclosingArgumentList(truncated)
	if !ok {
		return SignatureHelp{}, false
	}

	locals := resolve.NewLocalScope(file, point)
	state, err := resolve.ResolveCallChainToPoint(argList.Prev, locals, importsOf(self), self, c.ClassMap, point)
	if err != nil {
		return SignatureHelp{}, false
	}

	var sigs []SignatureInformation
	for _, m := range state.Class.Methods {
		if m.Name != methodName {
			continue
		}
		sigs = append(sigs, SignatureInformation{
			Label:      methodSignature(m),
			Parameters: paramInfos(m),
		})
	}
	if len(sigs) == 0 {
		return SignatureHelp{}, false
	}

	active := 0
	if argList.ActiveParam != nil {
		active = *argList.ActiveParam
	}
	return SignatureHelp{Signatures: sigs, ActiveSignature: 0, ActiveParameter: active}, true
}

// enclosingCallChain finds the call chain for signature help: unlike
// hover/definition, which want the innermost expression under point (the
// identifier actually being pointed at), signature help wants the outermost
// enclosing method call, since point usually sits inside one of that call's
// arguments rather than on the call itself. It tries every expression
// containing point from largest range to smallest, returning the first
// whose chain (truncated to point) contains an ArgumentList.
func enclosingCallChain(file ast.File, point ast.Point) ([]resolve.CallItem, bool) {
	var candidates []ast.Expression
	for _, e := range ExpressionsIn(file) {
		if e.Range.Contains(point) {
			candidates = append(candidates, e)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return smaller(candidates[j].Range, candidates[i].Range) })
	for _, e := range candidates {
		truncated := resolve.ValidateToPoint(resolve.BuildCallChain(e), point)
		if _, _, ok := enclosingArgumentList(truncated); ok {
			return truncated, true
		}
	}
	return nil, false
}

// enclosingArgumentList finds the last ArgumentList in chain and the
// method name (the MethodCall item immediately preceding it in the
// original chain construction, which BuildCallChain always emits right
// before its ArgumentList).
func enclosingArgumentList(chain []resolve.CallItem) (resolve.CallItem, string, bool) {
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].Kind != resolve.ItemArgumentList {
			continue
		}
		name := ""
		if i > 0 && chain[i-1].Kind == resolve.ItemMethodCall {
			name = chain[i-1].Name
		}
		return chain[i], name, true
	}
	return resolve.CallItem{}, "", false
}

func paramInfos(m class.Method) []ParameterInformation {
	out := make([]ParameterInformation, len(m.Parameters))
	for i, p := range m.Parameters {
		label := p.JType.String()
		if p.Name != "" {
			label += " " + p.Name
		}
		out[i] = ParameterInformation{Label: label}
	}
	return out
}
