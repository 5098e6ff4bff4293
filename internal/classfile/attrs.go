package classfile

// localVariableDescriptors extracts every descriptor string named in a
// Code attribute's nested LocalVariableTable attribute, used to build the
// implicit-import set.
func localVariableDescriptors(p pool, codeAttr attribute) []string {
	d := &decoder{r: newReader(codeAttr.Info)}
	d.u2() // max_stack
	d.u2() // max_locals
	codeLength := d.u4()
	d.bytesN(codeLength)
	excCount := d.u2()
	for i := uint16(0); i < excCount; i++ {
		d.u2() // start_pc
		d.u2() // end_pc
		d.u2() // handler_pc
		d.u2() // catch_type
	}
	attrs, err := d.readAttributes()
	if err != nil {
		return nil
	}

	var descs []string
	for _, a := range attrs {
		name, ok := p.utf8(a.NameIndex)
		if !ok || name != "LocalVariableTable" {
			continue
		}
		lvd := &decoder{r: newReader(a.Info)}
		count := lvd.u2()
		for i := uint16(0); i < count; i++ {
			lvd.u2() // start_pc
			lvd.u2() // length
			lvd.u2() // name_index
			descIndex := lvd.u2()
			lvd.u2() // index
			if desc, ok := p.utf8(descIndex); ok {
				descs = append(descs, desc)
			}
		}
	}
	return descs
}

// methodParameterNames decodes a MethodParameters attribute into a
// positional list of names; an empty string at position i means that
// parameter was compiled without a recorded name.
func methodParameterNames(p pool, attr attribute) []string {
	d := &decoder{r: newReader(attr.Info)}
	count := d.u1()
	names := make([]string, count)
	for i := uint8(0); i < count; i++ {
		nameIndex := d.u2()
		d.u2() // access_flags
		if name, ok := p.utf8(nameIndex); ok {
			names[i] = name
		}
	}
	return names
}

// exceptionClassPaths decodes an Exceptions attribute into dotted class
// paths.
func exceptionClassPaths(p pool, attr attribute) []string {
	d := &decoder{r: newReader(attr.Info)}
	count := d.u2()
	out := make([]string, 0, count)
	for i := uint16(0); i < count; i++ {
		idx := d.u2()
		if path, ok := p.classPath(idx); ok {
			out = append(out, path)
		}
	}
	return out
}

// moduleExports decodes a Module attribute's exports table into the
// unqualified ("exported to everyone") package names.
func moduleExports(p pool, attr attribute) []string {
	d := &decoder{r: newReader(attr.Info)}
	d.u2() // module_name_index
	d.u2() // module_flags
	d.u2() // module_version_index

	requiresCount := d.u2()
	for i := uint16(0); i < requiresCount; i++ {
		d.u2()
		d.u2()
		d.u2()
	}

	exportsCount := d.u2()
	var exports []string
	for i := uint16(0); i < exportsCount; i++ {
		exportsIndex := d.u2()
		d.u2() // exports_flags
		toCount := d.u2()
		for j := uint16(0); j < toCount; j++ {
			d.u2()
		}
		if toCount != 0 {
			continue // qualified exports (restricted to specific modules) are ignored
		}
		if name, ok := p.utf8(exportsIndex); ok {
			exports = append(exports, name)
		}
	}
	return exports
}
