package classfile

import (
	"strings"

	"github.com/oxhq/javalsp/internal/class"
)

// LoadClass decodes one compiled class file into its normalized Class
// record. classPath is supplied by the caller, computed from the archive
// entry path; source describes where the class's printable origin lives.
// When skipPrivate is set, a class that carries no Public access flag
// yields ErrPrivate instead of a record, letting the archive loader drop
// non-visible classes without special-casing them.
func LoadClass(data []byte, classPath string, source class.Source, skipPrivate bool) (class.Class, error) {
	rc, err := parseRaw(data)
	if err != nil {
		return class.Class{}, err
	}
	p := rc.pool

	name, ok := p.className(rc.thisClass)
	if !ok {
		return class.Class{}, Error{Kind: ErrUnknownClassName}
	}
	if skipPrivate && rc.accessFlags&accPublic == 0 {
		return class.Class{}, Error{Kind: ErrPrivate}
	}

	used := map[string]struct{}{}

	methods := make([]class.Method, 0, len(rc.methods))
	for _, m := range rc.methods {
		method, ok := decodeMethod(p, m)
		if !ok {
			continue
		}
		methods = append(methods, method)
		for _, param := range method.Parameters {
			for _, cn := range param.JType.ClassNames() {
				used[cn] = struct{}{}
			}
		}
		for _, cn := range method.Return.ClassNames() {
			used[cn] = struct{}{}
		}
		if codeAttr, ok := findAttribute(p, m.Attributes, "Code"); ok {
			collectDescriptorClasses(used, localVariableDescriptors(p, codeAttr))
		}
	}

	fields := make([]class.Field, 0, len(rc.fields))
	for _, f := range rc.fields {
		field, ok := decodeField(p, f)
		if !ok {
			continue
		}
		fields = append(fields, field)
		for _, cn := range field.JType.ClassNames() {
			used[cn] = struct{}{}
		}
	}

	pkg := strings.TrimSuffix(strings.TrimSuffix(classPath, name), ".")
	imports := []class.ImportUnit{{Kind: class.ImportPackage, Path: pkg}}
	for cn := range used {
		if cn == classPath {
			continue
		}
		imports = append(imports, class.ImportUnit{Kind: class.ImportClass, Path: cn})
	}

	deprecated := hasAttribute(p, rc.attributes, "Deprecated")

	superClass := class.SuperClass{Kind: class.SuperNone}
	if superName, ok := p.className(rc.superClass); ok && superName != "Object" {
		superClass = class.SuperClass{Kind: class.SuperName, Name: superName}
	}

	superInterfaces := make([]class.SuperClass, 0, len(rc.interfaces))
	for _, idx := range rc.interfaces {
		if ifaceName, ok := p.className(idx); ok {
			superInterfaces = append(superInterfaces, class.SuperClass{Kind: class.SuperName, Name: ifaceName})
		} else {
			superInterfaces = append(superInterfaces, class.SuperClass{Kind: class.SuperNone})
		}
	}

	return class.Class{
		ClassPath:       classPath,
		Name:            name,
		Source:          source,
		Access:          classAccess(rc.accessFlags, deprecated),
		SuperClass:      superClass,
		SuperInterfaces: superInterfaces,
		Imports:         imports,
		Methods:         methods,
		Fields:          fields,
	}, nil
}

// ModuleInfo is the result of scanning a module class for its Module
// attribute.
type ModuleInfo struct {
	Exports []string
}

// LoadModule scans a module-info class for its Module attribute and
// returns the set of unqualified exported packages, used to filter which
// classes in a module archive are visible.
func LoadModule(data []byte) (ModuleInfo, error) {
	rc, err := parseRaw(data)
	if err != nil {
		return ModuleInfo{}, err
	}
	attr, ok := findAttribute(rc.pool, rc.attributes, "Module")
	if !ok {
		return ModuleInfo{}, Error{Kind: ErrNoModuleAttribute}
	}
	return ModuleInfo{Exports: moduleExports(rc.pool, attr)}, nil
}

func collectDescriptorClasses(used map[string]struct{}, descs []string) {
	for _, d := range descs {
		jt := parseFieldDescriptor(d)
		for _, cn := range jt.ClassNames() {
			used[cn] = struct{}{}
		}
	}
}

func decodeMethod(p pool, m member) (class.Method, bool) {
	rawName, ok := p.utf8(m.NameIndex)
	if !ok || strings.HasPrefix(rawName, "lambda$") {
		return class.Method{}, false
	}
	descriptor, ok := p.utf8(m.DescriptorIndex)
	if !ok {
		return class.Method{}, false
	}
	paramTypes, ret := parseMethodDescriptor(descriptor)

	var names []string
	if mp, ok := findAttribute(p, m.Attributes, "MethodParameters"); ok {
		names = methodParameterNames(p, mp)
	}
	params := make([]class.Parameter, len(paramTypes))
	for i, jt := range paramTypes {
		param := class.Parameter{JType: jt}
		if i < len(names) && names[i] != "" {
			param.Name = names[i]
		}
		params[i] = param
	}

	var throws []class.JType
	if exc, ok := findAttribute(p, m.Attributes, "Exceptions"); ok {
		for _, path := range exceptionClassPaths(p, exc) {
			throws = append(throws, class.JType{Kind: class.JClass, Name: path})
		}
	}

	deprecated := hasAttribute(p, m.Attributes, "Deprecated")
	isCtor := rawName == "<init>"
	name := rawName
	if isCtor {
		name = ""
	}

	return class.Method{
		Access:     methodAccess(m.AccessFlags, deprecated),
		Name:       name,
		IsCtor:     isCtor,
		Parameters: params,
		Throws:     throws,
		Return:     ret,
	}, true
}

func decodeField(p pool, f member) (class.Field, bool) {
	name, ok := p.utf8(f.NameIndex)
	if !ok {
		return class.Field{}, false
	}
	descriptor, ok := p.utf8(f.DescriptorIndex)
	if !ok {
		return class.Field{}, false
	}
	return class.Field{
		Access: fieldAccess(f.AccessFlags),
		Name:   name,
		JType:  parseFieldDescriptor(descriptor),
	}, true
}

func classAccess(flags uint16, deprecated bool) class.Access {
	var a class.Access
	if flags&accPublic != 0 {
		a |= class.Public
	}
	if flags&accFinal != 0 {
		a |= class.Final
	}
	if flags&accSuper != 0 {
		a |= class.Super
	}
	if flags&accInterface != 0 {
		a |= class.Interface
	}
	if flags&accAbstract != 0 {
		a |= class.Abstract
	}
	if flags&accSynthetic != 0 {
		a |= class.Synthetic
	}
	if flags&accAnnotation != 0 {
		a |= class.Annotation
	}
	if flags&accEnum != 0 {
		a |= class.Enum
	}
	if deprecated {
		a |= class.Deprecated
	}
	return a
}

func methodAccess(flags uint16, deprecated bool) class.Access {
	var a class.Access
	if flags&accPublic != 0 {
		a |= class.Public
	}
	if flags&accPrivate != 0 {
		a |= class.Private
	}
	if flags&accProtected != 0 {
		a |= class.Protected
	}
	if flags&accStatic != 0 {
		a |= class.Static
	}
	if flags&accFinal != 0 {
		a |= class.Final
	}
	if flags&accSynchronized != 0 {
		a |= class.Synchronized
	}
	if flags&accAbstract != 0 {
		a |= class.Abstract
	}
	if flags&accSynthetic != 0 {
		a |= class.Synthetic
	}
	if deprecated {
		a |= class.Deprecated
	}
	return a
}

func fieldAccess(flags uint16) class.Access {
	var a class.Access
	if flags&accPublic != 0 {
		a |= class.Public
	}
	if flags&accPrivate != 0 {
		a |= class.Private
	}
	if flags&accProtected != 0 {
		a |= class.Protected
	}
	if flags&accStatic != 0 {
		a |= class.Static
	}
	if flags&accFinal != 0 {
		a |= class.Final
	}
	if flags&accVolatile != 0 {
		a |= class.Volatile
	}
	if flags&accTransient != 0 {
		a |= class.Transient
	}
	if flags&accSynthetic != 0 {
		a |= class.Synthetic
	}
	return a
}
