package resolve

import (
	"fmt"
	"strings"

	"github.com/oxhq/javalsp/internal/ast"
	"github.com/oxhq/javalsp/internal/class"
)

// ErrorKind tags the resolver's closed sum-type error set.
type ErrorKind int

const (
	ErrClassNotFound ErrorKind = iota
	ErrNoClassInOps
	ErrMethodNotFound
	ErrFieldNotFound
	ErrVariableNotFound
	ErrNotImported
	ErrCallChainInvalid
	ErrCallChainEmpty
	// ErrCheckValue means the JType was `var`: the caller must re-run
	// resolution against the declaration's initializer in value mode.
	ErrCheckValue
)

// Error is the resolver's error type, carrying the identifier involved for
// diagnostics.
type Error struct {
	Kind ErrorKind
	Name string
}

func (e Error) Error() string {
	switch e.Kind {
	case ErrClassNotFound:
		return fmt.Sprintf("class not found: %s", e.Name)
	case ErrNoClassInOps:
		return "resolver stack is empty"
	case ErrMethodNotFound:
		return fmt.Sprintf("method not found: %s", e.Name)
	case ErrFieldNotFound:
		return fmt.Sprintf("field not found: %s", e.Name)
	case ErrVariableNotFound:
		return fmt.Sprintf("variable not found: %s", e.Name)
	case ErrNotImported:
		return fmt.Sprintf("not imported: %s", e.Name)
	case ErrCallChainInvalid:
		return "call chain invalid"
	case ErrCallChainEmpty:
		return "call chain empty"
	case ErrCheckValue:
		return "value needs to be checked, type is var"
	}
	return "unknown resolve error"
}

// ResolveState is the resolver's running state: the class a chain element
// resolved to, plus the JType that named it.
type ResolveState struct {
	Class class.Class
	JType class.JType
}

// ClassMap is the read side of the concurrent class index the resolver
// queries. internal/index's class_map implements this.
type ClassMap interface {
	Get(classPath string) (class.Class, bool)
}

// Locals is the read side of the local-variable lookup the resolver
// queries for Variable/ClassOrVariable steps.
type Locals interface {
	Lookup(name string) (LocalVariable, bool)
}

// importResultKind distinguishes an import match that named a class
// outright from one that named a static-member host class.
type importResultKind int

const (
	importResultClass importResultKind = iota
	importResultStaticClass
)

type importResult struct {
	kind      importResultKind
	classPath string
}

// isImported checks a short name against the default `java.lang` import,
// then the explicit import list in declaration order.
func isImported(name string, imports []class.ImportUnit, classMap ClassMap) (importResult, bool) {
	if strings.HasPrefix(name, "java.lang") {
		return importResult{kind: importResultClass, classPath: name}, true
	}
	for _, imp := range imports {
		switch imp.Kind {
		case class.ImportClass, class.ImportStaticClass:
			if cn, ok := imp.ClassName(); ok && cn == name {
				kind := importResultClass
				if imp.Kind == class.ImportStaticClass {
					kind = importResultStaticClass
				}
				return importResult{kind: kind, classPath: imp.Path}, true
			}
		case class.ImportPackage, class.ImportPrefix:
			candidate := imp.Path + "." + name
			if _, ok := classMap.Get(candidate); ok {
				return importResult{kind: importResultClass, classPath: candidate}, true
			}
		case class.ImportStaticPrefix:
			candidate := imp.Path + "." + name
			if _, ok := classMap.Get(candidate); ok {
				return importResult{kind: importResultStaticClass, classPath: candidate}, true
			}
		}
	}
	return importResult{}, false
}

// Resolve looks a bare or dotted type name up against class_map, following
// the three-step import resolution order, then applies the parent overlay
// to the result.
func Resolve(name string, imports []class.ImportUnit, classMap ClassMap) (ResolveState, error) {
	if strings.Contains(name, ".") {
		c, ok := classMap.Get(name)
		if !ok {
			return ResolveState{}, Error{Kind: ErrClassNotFound, Name: name}
		}
		return ResolveState{JType: class.JType{Kind: class.JClass, Name: name}, Class: includeParent(c, classMap)}, nil
	}

	langKey := "java.lang." + name
	if c, ok := classMap.Get(langKey); ok {
		return ResolveState{JType: class.JType{Kind: class.JClass, Name: langKey}, Class: includeParent(c, classMap)}, nil
	}

	res, ok := isImported(name, imports, classMap)
	if !ok {
		return ResolveState{}, Error{Kind: ErrNotImported, Name: name}
	}
	c, ok := classMap.Get(res.classPath)
	if !ok {
		return ResolveState{}, Error{Kind: ErrClassNotFound, Name: res.classPath}
	}
	return ResolveState{JType: class.JType{Kind: class.JClass, Name: res.classPath}, Class: includeParent(c, classMap)}, nil
}

// ResolveJType resolves a JType to the ResolveState describing the class it
// names, synthesizing classes for primitives/arrays/type-parameters.
func ResolveJType(jt class.JType, imports []class.ImportUnit, classMap ClassMap) (ResolveState, error) {
	switch jt.Kind {
	case class.JVoid:
		return ResolveState{JType: jt, Class: class.Class{Name: "void"}}, nil
	case class.JByte:
		return ResolveState{JType: jt, Class: class.Class{Name: "byte"}}, nil
	case class.JChar:
		return ResolveState{JType: jt, Class: class.Class{Name: "char"}}, nil
	case class.JDouble:
		return ResolveState{JType: jt, Class: class.Class{Name: "double"}}, nil
	case class.JFloat:
		return ResolveState{JType: jt, Class: class.Class{Name: "float"}}, nil
	case class.JInt:
		return ResolveState{JType: jt, Class: class.Class{Name: "int"}}, nil
	case class.JLong:
		return ResolveState{JType: jt, Class: class.Class{Name: "long"}}, nil
	case class.JShort:
		return ResolveState{JType: jt, Class: class.Class{Name: "short"}}, nil
	case class.JBoolean:
		return ResolveState{JType: jt, Class: class.Class{Name: "boolean"}}, nil
	case class.JWildcard:
		return ResolveState{JType: jt, Class: class.Class{Name: "Wildcard"}}, nil
	case class.JArray:
		return ResolveState{
			JType: jt,
			Class: class.Class{
				Name: "array",
				Methods: []class.Method{
					{Name: "clone", Return: jt},
				},
				Fields: []class.Field{
					{Name: "length", JType: class.JType{Kind: class.JInt}},
				},
			},
		}, nil
	case class.JClass, class.JGeneric:
		return Resolve(jt.Name, imports, classMap)
	case class.JParameter:
		return ResolveState{JType: jt, Class: class.Class{Name: "<" + jt.Name + ">"}}, nil
	case class.JVar:
		return ResolveState{}, Error{Kind: ErrCheckValue}
	case class.JAccess:
		if jt.Base == nil || jt.Inner == nil {
			return ResolveState{}, Error{Kind: ErrClassNotFound}
		}
		query := jt.Base.Name + "$" + jt.Inner.Name
		c, ok := classMap.Get(query)
		if !ok {
			return ResolveState{}, Error{Kind: ErrClassNotFound, Name: query}
		}
		return ResolveState{JType: jt, Class: c}, nil
	}
	return ResolveState{}, Error{Kind: ErrClassNotFound}
}

// ResolveVar resolves a local variable's declared JType. A `var`-typed
// declaration carries no class of its own, so ResolveJType reports
// ErrCheckValue for it; when that happens here, ResolveVar instead builds a
// call chain from the declaration's initializer and resolves that chain in
// value mode, giving a `var x = new Foo()` local the type `Foo` would have
// resolved to directly.
func ResolveVar(v LocalVariable, locals Locals, imports []class.ImportUnit, self class.Class, classMap ClassMap) (ResolveState, error) {
	state, err := ResolveJType(v.JType, imports, classMap)
	if err == nil {
		return state, nil
	}
	rerr, ok := err.(Error)
	if !ok || rerr.Kind != ErrCheckValue || v.Initializer == nil {
		return ResolveState{}, err
	}
	chain := BuildCallChain(*v.Initializer)
	if len(chain) == 0 {
		return ResolveState{}, err
	}
	return ResolveCallChainValue(chain, locals, imports, self, classMap)
}

// ResolveCallChain walks a call chain, replacing the stack's top at each
// step, in "type of the argument under the cursor" mode.
func ResolveCallChain(chain []CallItem, locals Locals, imports []class.ImportUnit, self class.Class, classMap ClassMap) (ResolveState, error) {
	return walkChain(chain, locals, imports, self, classMap, true, false)
}

// ResolveCallChainValue walks a call chain in "type of surrounding value"
// mode: an ArgumentList resolves its `prev` chain, which ends in the call
// it closes, to that call's return type, never to the active parameter.
func ResolveCallChainValue(chain []CallItem, locals Locals, imports []class.ImportUnit, self class.Class, classMap ClassMap) (ResolveState, error) {
	return walkChain(chain, locals, imports, self, classMap, false, true)
}

// ResolveCallChainToPoint walks only the prefix of chain whose items start
// at or before point, tolerating failures on trailing partial input.
func ResolveCallChainToPoint(chain []CallItem, locals Locals, imports []class.ImportUnit, self class.Class, classMap ClassMap, point ast.Point) (ResolveState, error) {
	truncated := ValidateToPoint(chain, point)
	if len(truncated) == 0 {
		return ResolveState{}, Error{Kind: ErrCallChainEmpty}
	}
	ops := []ResolveState{{Class: self, JType: class.JType{Kind: class.JClass, Name: self.ClassPath}}}
	for i, item := range truncated {
		op, err := chainOp(item, ops, locals, imports, self, classMap, true, false, i == len(truncated)-1)
		if err == nil {
			ops = append(ops, op)
		}
	}
	return ops[len(ops)-1], nil
}

func walkChain(chain []CallItem, locals Locals, imports []class.ImportUnit, self class.Class, classMap ClassMap, resolveArgument, returnValue bool) (ResolveState, error) {
	if len(chain) == 0 {
		return ResolveState{}, Error{Kind: ErrCallChainEmpty}
	}
	ops := []ResolveState{{Class: self, JType: class.JType{Kind: class.JClass, Name: self.ClassPath}}}
	for i, item := range chain {
		last := i == len(chain)-1
		op, err := chainOp(item, ops, locals, imports, self, classMap, resolveArgument, returnValue && last, false)
		if err != nil {
			return ResolveState{}, err
		}
		ops = append(ops, op)
	}
	return ops[len(ops)-1], nil
}

// chainOp resolves one chain item. When isSelf is true (ResolveCallChainToPoint
// passes it for the final element of the truncated chain), a
// MethodCall/FieldAccess/Variable item only needs to prove membership and
// returns the stack's current top unresolved further, so signature help
// gets the class that owns the called method. walkChain never sets it:
// every item of a fully walked chain resolves through to its own type.
func chainOp(item CallItem, ops []ResolveState, locals Locals, imports []class.ImportUnit, self class.Class, classMap ClassMap, resolveArgument, returnValue, isSelf bool) (ResolveState, error) {
	top := ops[len(ops)-1]
	switch item.Kind {
	case ItemMethodCall:
		if isSelf {
			for _, m := range top.Class.Methods {
				if m.Name == item.Name {
					return top, nil
				}
			}
			return ResolveState{}, Error{Kind: ErrMethodNotFound, Name: item.Name}
		}
		for _, m := range top.Class.Methods {
			if m.Name == item.Name {
				return ResolveJType(m.Return, imports, classMap)
			}
		}
		return ResolveState{}, Error{Kind: ErrMethodNotFound, Name: item.Name}
	case ItemFieldAccess:
		if isSelf {
			for _, f := range top.Class.Fields {
				if f.Name == item.Name {
					return top, nil
				}
			}
			return ResolveState{}, Error{Kind: ErrFieldNotFound, Name: item.Name}
		}
		for _, f := range top.Class.Fields {
			if f.Name == item.Name {
				return ResolveJType(f.JType, imports, classMap)
			}
		}
		return ResolveState{}, Error{Kind: ErrFieldNotFound, Name: item.Name}
	case ItemVariable:
		v, ok := locals.Lookup(item.Name)
		if !ok {
			return ResolveState{}, Error{Kind: ErrVariableNotFound, Name: item.Name}
		}
		if isSelf {
			return top, nil
		}
		return ResolveVar(v, locals, imports, self, classMap)
	case ItemThis:
		return ResolveState{Class: self, JType: class.JType{Kind: class.JClass, Name: self.ClassPath}}, nil
	case ItemClass:
		return Resolve(item.Name, imports, classMap)
	case ItemClassOrVariable:
		if v, ok := locals.Lookup(item.Name); ok {
			if isSelf {
				return top, nil
			}
			return ResolveVar(v, locals, imports, self, classMap)
		}
		return Resolve(item.Name, imports, classMap)
	case ItemArgumentList:
		if resolveArgument {
			if item.ActiveParam != nil {
				if params := item.FilledParams; *item.ActiveParam < len(params) && len(params[*item.ActiveParam]) > 0 {
					return walkChain(params[*item.ActiveParam], locals, imports, self, classMap, true, false)
				}
			}
			return walkChain(item.Prev, locals, imports, self, classMap, true, false)
		}
		if returnValue {
			return walkChain(item.Prev, locals, imports, self, classMap, false, true)
		}
		return walkChain(item.Prev, locals, imports, self, classMap, true, false)
	}
	return ResolveState{}, Error{Kind: ErrNoClassInOps}
}
