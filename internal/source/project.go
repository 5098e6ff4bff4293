// Package source projects a parsed source file into the same normalized
// Class shape internal/classfile produces for compiled classes, so the
// resolver and index can treat a source-backed class and a compiled one
// identically.
package source

import (
	"strings"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
)

// Project walks every top-level Thing in a parsed File and produces one
// Class record per Thing, plus one per nested Thing (member declarations
// of kind MemberNestedThing), named with the `$`-joined JVM inner-class
// convention so they sit in the same class_map alongside compiled nested
// classes. A file with no package declaration projects class_paths with
// no leading package segment.
func Project(file ast.File, src class.Source) []class.Class {
	pkg := ""
	if file.Package != nil {
		pkg = file.Package.Name
	}

	imports := buildImports(file.Imports, pkg)

	var out []class.Class
	for _, t := range file.Things {
		out = append(out, projectThing(t, pkg, "", imports, src)...)
	}
	return out
}

func buildImports(decls []ast.Import, pkg string) []class.ImportUnit {
	units := make([]class.ImportUnit, 0, len(decls)+1)
	units = append(units, class.ImportUnit{Kind: class.ImportPackage, Path: pkg})
	for _, d := range decls {
		units = append(units, class.ImportUnit{
			Kind:   importKind(d.Kind),
			Path:   d.Path,
			Member: d.Member,
		})
	}
	return units
}

func importKind(k ast.ImportKind) class.ImportKind {
	switch k {
	case ast.ImportClass:
		return class.ImportClass
	case ast.ImportStaticClass:
		return class.ImportStaticClass
	case ast.ImportStaticClassMethod:
		return class.ImportStaticClassMethod
	case ast.ImportPrefix:
		return class.ImportPrefix
	case ast.ImportStaticPrefix:
		return class.ImportStaticPrefix
	case ast.ImportPackage:
		return class.ImportPackage
	}
	return class.ImportClass
}

// projectThing builds the Class record for one Thing and recurses into its
// nested things. outerPath is the `$`-joined prefix of any enclosing
// Thing's class_path ("" at the top level).
func projectThing(t ast.Thing, pkg, outerPath string, imports []class.ImportUnit, src class.Source) []class.Class {
	simpleName := t.Name
	if outerPath != "" {
		simpleName = outerPath + "$" + t.Name
	}
	classPath := simpleName
	if pkg != "" {
		classPath = pkg + "." + simpleName
	}

	c := class.Class{
		ClassPath: classPath,
		Name:      t.Name,
		Source:    src,
		Access:    class.Access(t.Access),
		Imports:   imports,
	}

	if t.Kind == ast.ThingInterface {
		c.Access |= class.Interface
	}
	if t.Kind == ast.ThingEnumeration {
		c.Access |= class.Enum
	}
	if t.Kind == ast.ThingAnnotation {
		c.Access |= class.Annotation
	}

	if t.SuperClass != nil {
		if name, ok := t.SuperClass.Identifier(); ok {
			c.SuperClass = class.SuperClass{Kind: class.SuperName, Name: name}
		}
	}
	for _, iface := range t.SuperInterfaces {
		if name, ok := iface.Identifier(); ok {
			c.SuperInterfaces = append(c.SuperInterfaces, class.SuperClass{Kind: class.SuperName, Name: name})
		}
	}

	for _, comp := range t.RecordComponents {
		c.Fields = append(c.Fields, recordComponentField(comp))
	}

	out := []class.Class{c}
	for _, m := range t.Members {
		switch m.Kind {
		case ast.MemberVariable, ast.MemberInterfaceConstant:
			out[0].Fields = append(out[0].Fields, Field(m))
		case ast.MemberMethod, ast.MemberConstructor:
			out[0].Methods = append(out[0].Methods, Method(m))
		case ast.MemberEnumVariant:
			out[0].Fields = append(out[0].Fields, class.Field{
				Access: class.Public | class.Static | class.Final,
				Name:   m.Name,
				JType:  class.JType{Kind: class.JClass, Name: classPath},
			})
		case ast.MemberNestedThing:
			if m.Nested != nil {
				out = append(out, projectThing(*m.Nested, pkg, simpleName, imports, src)...)
			}
		}
	}
	return out
}

func recordComponentField(p ast.Param) class.Field {
	var jt class.JType
	if p.Type != nil {
		jt = class.FromAST(*p.Type)
	}
	return class.Field{
		Access: class.Public | class.Final,
		Name:   p.Name,
		JType:  jt,
	}
}

// Field converts a MemberVariable/MemberInterfaceConstant into a Field.
func Field(m ast.Member) class.Field {
	var jt class.JType
	if m.VarType != nil {
		jt = class.FromAST(*m.VarType)
	}
	return class.Field{
		Access: class.Access(m.Access),
		Name:   m.Name,
		JType:  jt,
	}
}

// Method converts a MemberMethod/MemberConstructor into a Method,
// preserving parameter names so signature help can show them by name
// rather than by position alone.
func Method(m ast.Member) class.Method {
	method := class.Method{
		Access: class.Access(m.Access),
		IsCtor: m.Kind == ast.MemberConstructor,
	}
	if !method.IsCtor {
		method.Name = m.Name
	}
	for _, p := range m.Params {
		param := class.Parameter{Name: p.Name}
		if p.Type != nil {
			param.JType = class.FromAST(*p.Type)
		}
		method.Parameters = append(method.Parameters, param)
	}
	for _, th := range m.Throws {
		method.Throws = append(method.Throws, class.FromAST(th))
	}
	if m.Return != nil {
		method.Return = class.FromAST(*m.Return)
	}
	return method
}

// RelativePath reconstructs the `.java`-shaped path of a class_path rooted
// under a source folder, mirroring dto.rs's Class::get_source for the
// RelativeInFolder source kind.
func RelativePath(root, classPath string) string {
	return root + "/" + strings.ReplaceAll(classPath, ".", "/") + ".java"
}
