package lsp

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
	"github.com/oxhq/javalsp/internal/resolve"
)

// Hover answers a textDocument/hover request at point inside the document
// at path. A type reference under the cursor (a declared return type, a
// field's or parameter's declared type) takes priority over a
// call-chain hover, since the two never overlap in practice and the first
// is cheaper to compute.
func (c *Context) Hover(path string, point ast.Point) (Hover, bool) {
	file, ok := c.fileAt(path)
	if !ok {
		return Hover{}, false
	}
	self, hasSelf := c.selfClass(file)

	if jt, ok := TypeRefAt(file, point); ok {
		if h, ok := c.hoverTypeRef(jt, self); ok {
			return h, true
		}
	}

	if !hasSelf {
		return Hover{}, false
	}
	expr, ok := ExpressionAt(file, point)
	if !ok {
		return Hover{}, false
	}
	chain := resolve.BuildCallChain(expr)
	if len(chain) == 0 {
		return Hover{}, false
	}
	return c.hoverCallChain(file, chain, point, self)
}

func (c *Context) hoverTypeRef(jt ast.JType, self class.Class) (Hover, bool) {
	name, ok := jt.Identifier()
	if !ok {
		return Hover{}, false
	}
	state, err := resolve.Resolve(name, importsOf(self), c.ClassMap)
	if err != nil {
		return Hover{}, false
	}
	return Hover{Contents: MarkupContent{Kind: "markdown", Value: classToHover(state.Class)}, Range: rangePtr(ToRange(jt.Range))}, true
}

func (c *Context) hoverCallChain(file ast.File, chain []resolve.CallItem, point ast.Point, self class.Class) (Hover, bool) {
	truncated := resolve.ValidateToPoint(chain, point)
	if len(truncated) == 0 {
		return Hover{}, false
	}
	last := truncated[len(truncated)-1]
	locals := resolve.NewLocalScope(file, point)

	switch last.Kind {
	case resolve.ItemThis:
		return Hover{Contents: MarkupContent{Kind: "markdown", Value: classToHover(self)}, Range: rangePtr(ToRange(last.Range))}, true

	case resolve.ItemClass:
		state, err := resolve.Resolve(last.Name, importsOf(self), c.ClassMap)
		if err != nil {
			return Hover{}, false
		}
		return Hover{Contents: MarkupContent{Kind: "markdown", Value: classToHover(state.Class)}, Range: rangePtr(ToRange(last.Range))}, true

	case resolve.ItemVariable, resolve.ItemClassOrVariable:
		if v, ok := locals.Lookup(last.Name); ok {
			return Hover{Contents: MarkupContent{Kind: "markdown", Value: formatVariable(v)}, Range: rangePtr(ToRange(last.Range))}, true
		}
		if last.Kind == resolve.ItemClassOrVariable {
			state, err := resolve.Resolve(last.Name, importsOf(self), c.ClassMap)
			if err == nil {
				return Hover{Contents: MarkupContent{Kind: "markdown", Value: classToHover(state.Class)}, Range: rangePtr(ToRange(last.Range))}, true
			}
		}
		return Hover{}, false

	case resolve.ItemMethodCall:
		state, err := resolve.ResolveCallChainToPoint(truncated[:len(truncated)-1], locals, importsOf(self), self, c.ClassMap, point)
		if err != nil {
			return Hover{}, false
		}
		m, ok := findMethod(state.Class, last.Name)
		if !ok {
			return Hover{}, false
		}
		return Hover{Contents: MarkupContent{Kind: "markdown", Value: formatMethod(state.Class, m)}, Range: rangePtr(ToRange(last.Range))}, true

	case resolve.ItemFieldAccess:
		state, err := resolve.ResolveCallChainToPoint(truncated[:len(truncated)-1], locals, importsOf(self), self, c.ClassMap, point)
		if err != nil {
			return Hover{}, false
		}
		f, ok := findField(state.Class, last.Name)
		if !ok {
			return Hover{}, false
		}
		return Hover{Contents: MarkupContent{Kind: "markdown", Value: formatField(state.Class, f)}, Range: rangePtr(ToRange(last.Range))}, true

	case resolve.ItemArgumentList:
		if last.ActiveParam != nil && *last.ActiveParam < len(last.FilledParams) {
			nested := last.FilledParams[*last.ActiveParam]
			if len(nested) > 0 {
				return c.hoverCallChain(file, nested, point, self)
			}
		}
		return c.hoverCallChain(file, last.Prev, point, self)
	}
	return Hover{}, false
}

func rangePtr(r Range) *Range { return &r }

func findMethod(c class.Class, name string) (class.Method, bool) {
	for _, m := range c.Methods {
		if m.Name == name {
			return m, true
		}
	}
	return class.Method{}, false
}

func findField(c class.Class, name string) (class.Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return class.Field{}, false
}

func formatVariable(v resolve.LocalVariable) string {
	if v.IsFun {
		return fmt.Sprintf("```java\n%s (inferred)\n```", v.Name)
	}
	return fmt.Sprintf("```java\n%s %s\n```", v.JType.String(), v.Name)
}

func formatField(owner class.Class, f class.Field) string {
	access := f.Access.String()
	sig := strings.TrimSpace(fmt.Sprintf("%s %s %s", access, f.JType.String(), f.Name))
	return fmt.Sprintf("```java\n%s\n```\n\n%s", sig, owner.ClassPath)
}

func formatMethod(owner class.Class, m class.Method) string {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		if p.Name != "" {
			params[i] = fmt.Sprintf("%s %s", p.JType.String(), p.Name)
		} else {
			params[i] = p.JType.String()
		}
	}
	access := m.Access.String()
	ret := m.Return.String()
	sig := strings.TrimSpace(fmt.Sprintf("%s %s %s(%s)", access, ret, m.Name, strings.Join(params, ", ")))
	if len(m.Throws) > 0 {
		thrown := make([]string, len(m.Throws))
		for i, t := range m.Throws {
			thrown[i] = t.String()
		}
		sig += " throws " + strings.Join(thrown, ", ")
	}
	owned := owner.ClassPath
	if m.Source != "" {
		owned = m.Source
	}
	return fmt.Sprintf("```java\n%s\n```\n\n%s", sig, owned)
}

// classToHover renders a Markdown summary block: the class declaration
// line followed by its public fields and methods, grounded on hover.rs's
// class_to_hover (which filters to public members for brevity).
func classToHover(c class.Class) string {
	var b strings.Builder
	kind := "class"
	if c.Access.Has(class.Interface) {
		kind = "interface"
	} else if c.Access.Has(class.Enum) {
		kind = "enum"
	} else if c.Access.Has(class.Annotation) {
		kind = "@interface"
	}
	fmt.Fprintf(&b, "```java\n%s %s %s\n```\n\n%s", c.Access.String(), kind, c.Name, c.ClassPath)

	fields := publicFields(c)
	if len(fields) > 0 {
		b.WriteString("\n\n**Fields**\n")
		for _, f := range fields {
			fmt.Fprintf(&b, "\n- `%s %s`", f.JType.String(), f.Name)
		}
	}
	methods := publicMethods(c)
	if len(methods) > 0 {
		b.WriteString("\n\n**Methods**\n")
		for _, m := range methods {
			fmt.Fprintf(&b, "\n- `%s`", methodSignature(m))
		}
	}
	return b.String()
}

func publicFields(c class.Class) []class.Field {
	var out []class.Field
	for _, f := range c.Fields {
		if f.Access.Has(class.Public) {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func publicMethods(c class.Class) []class.Method {
	var out []class.Method
	for _, m := range c.Methods {
		if m.Access.Has(class.Public) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func methodSignature(m class.Method) string {
	params := make([]string, len(m.Parameters))
	for i, p := range m.Parameters {
		params[i] = p.JType.String()
	}
	return fmt.Sprintf("%s %s(%s)", m.Return.String(), m.Name, strings.Join(params, ", "))
}
