package resolve

import "github.com/oxhq/javalsp/internal/class"

// includeParent flattens a class's inheritance chain into it: every
// non-private method and field declared on an ancestor (walked super-class
// first, then super-interfaces, both leaves-first) is appended to the
// class's own Methods/Fields unless a member of the same name is already
// present, and stamped with Source set to the ancestor's class_path so
// callers can tell an inherited member from a directly declared one.
//
// Superclass names are resolved by Resolve like any other class name: a
// dotted name directly in class_map, otherwise java.lang, then the class's
// own imports. No
// other rule in the resolver privileges any package as an implicit
// superclass namespace, so a bare superclass name that isn't imported and
// isn't java.lang simply fails resolution rather than falling back to a
// hardcoded guess.
func includeParent(c class.Class, classMap ClassMap) class.Class {
	return overlayClass(c, classMap, map[string]bool{c.ClassPath: true})
}

// overlayClass does the actual walk, tracking visited class_paths to avoid
// infinite recursion on a cyclic (malformed) inheritance graph.
func overlayClass(c class.Class, classMap ClassMap, visited map[string]bool) class.Class {
	if c.SuperClass.Kind != class.SuperNone {
		if parent, ok := loadParent(c.SuperClass, c.Imports, classMap); ok && !visited[parent.ClassPath] {
			visited[parent.ClassPath] = true
			parent = overlayClass(parent, classMap, visited)
			c = mergeAncestor(c, parent)
		}
	}
	for _, iface := range c.SuperInterfaces {
		if parent, ok := loadParent(iface, c.Imports, classMap); ok && !visited[parent.ClassPath] {
			visited[parent.ClassPath] = true
			parent = overlayClass(parent, classMap, visited)
			c = mergeAncestor(c, parent)
		}
	}
	return c
}

// loadParent resolves a SuperClass reference to the ancestor's Class
// record, following the same resolution order Resolve uses for any other
// bare or dotted class name.
func loadParent(sc class.SuperClass, imports []class.ImportUnit, classMap ClassMap) (class.Class, bool) {
	switch sc.Kind {
	case class.SuperClassPath:
		return classMap.Get(sc.Name)
	case class.SuperName:
		state, err := Resolve(sc.Name, imports, classMap)
		if err != nil {
			return class.Class{}, false
		}
		return state.Class, true
	default:
		return class.Class{}, false
	}
}

// mergeAncestor appends parent's non-private members that aren't already
// shadowed by one of c's own members of the same name.
func mergeAncestor(c, parent class.Class) class.Class {
	methodNames := make(map[string]bool, len(c.Methods))
	for _, m := range c.Methods {
		methodNames[m.Name] = true
	}
	fieldNames := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		fieldNames[f.Name] = true
	}

	source := parent.ClassPath

	for _, m := range parent.Methods {
		if m.Access.Has(class.Private) || methodNames[m.Name] {
			continue
		}
		if m.Source == "" {
			m.Source = source
		}
		c.Methods = append(c.Methods, m)
		methodNames[m.Name] = true
	}
	for _, f := range parent.Fields {
		if f.Access.Has(class.Private) || fieldNames[f.Name] {
			continue
		}
		if f.Source == "" {
			f.Source = source
		}
		c.Fields = append(c.Fields, f)
		fieldNames[f.Name] = true
	}
	return c
}
