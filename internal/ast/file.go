package ast

// Access is a bit-flag set over the modifiers/characteristics a Thing,
// member, method or field can carry.
type Access uint32

const (
	AccessPublic Access = 1 << iota
	AccessPrivate
	AccessProtected
	AccessStatic
	AccessFinal
	AccessSuper
	AccessVolatile
	AccessTransient
	AccessSynthetic
	AccessAnnotation
	AccessEnum
	AccessInterface
	AccessAbstract
	AccessSynchronized
	AccessDeprecated
)

// Has reports whether every bit in want is set in a.
func (a Access) Has(want Access) bool { return a&want == want }

// ImportKind tags the variant of an Import declaration.
type ImportKind int

const (
	ImportClass ImportKind = iota
	ImportStaticClass
	ImportStaticClassMethod
	ImportPrefix
	ImportStaticPrefix
	ImportPackage // synthetic: the owning package, appended by the loader
)

// Import is one import declaration (or, for ImportPackage, a synthetic
// entry appended to every Class record for its own package).
type Import struct {
	Kind ImportKind
	// Path is the dotted class path for Class/StaticClass/StaticClassMethod
	// and ImportPackage, or the package prefix for Prefix/StaticPrefix.
	Path string
	// Member is the static member name for StaticClassMethod.
	Member string
	Range  Range
}

// Package is a package declaration, separate from the Import list.
type Package struct {
	Name  string
	Range Range
}

// File is the parse result of one source file.
type File struct {
	Package *Package
	Imports []Import
	Things  []Thing
	Modules []ModuleDecl
	Range   Range
}

// ThingKind tags the variant of a top-level or nested declaration.
type ThingKind int

const (
	ThingClass ThingKind = iota
	ThingRecord
	ThingInterface
	ThingEnumeration
	ThingAnnotation
)

// Thing is a class/record/interface/enumeration/annotation declaration.
type Thing struct {
	Kind ThingKind

	Access      Access
	Attributes  []string // raw modifier spellings, for diagnostics/formatting
	Annotations []AnnotationUse
	Name        string
	TypeParams  []string

	SuperClass      *JType
	SuperInterfaces []JType

	// ThingRecord: the component list feeding an implicit constructor.
	RecordComponents []Param

	Members []Member
	Range   Range
}

// AnnotationUse is `@Name(args)` attached to a Thing or Member.
type AnnotationUse struct {
	Name  string
	Args  []Expression
	Range Range
}

// MemberKind tags the variant of a class-block entry.
type MemberKind int

const (
	MemberVariable MemberKind = iota
	MemberMethod
	MemberConstructor
	MemberInterfaceConstant
	MemberEnumVariant
	MemberNestedThing
)

// Member is one entry inside a Thing's body block.
type Member struct {
	Kind        MemberKind
	Access      Access
	Annotations []AnnotationUse
	Range       Range

	// MemberVariable / MemberInterfaceConstant
	VarType        *JType
	Name           string
	Initializer    *Expression

	// MemberMethod / MemberConstructor
	Params  []Param
	Return  *JType // nil for constructors
	Throws  []JType
	Body    *Block // nil for abstract/interface method headers

	// MemberEnumVariant
	EnumArgs []Expression

	// MemberNestedThing
	Nested *Thing
}

// ModuleDecl is a `module name { requires/exports/... }` declaration.
type ModuleDecl struct {
	Name        string
	Directives  []ModuleDirective
	Range       Range
}

// ModuleDirectiveKind tags one module-info directive.
type ModuleDirectiveKind int

const (
	DirectiveRequires ModuleDirectiveKind = iota
	DirectiveExports
	DirectiveProvides
	DirectiveUses
	DirectiveOpens
)

// ModuleDirective is one line inside a module declaration.
type ModuleDirective struct {
	Kind    ModuleDirectiveKind
	Name    string   // package or service name
	To      []string // exports/opens ... to
	With    []string // provides ... with
	Static  bool
	Transitive bool
	Range   Range
}
