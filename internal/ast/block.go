package ast

// BlockEntryKind tags one statement form admitted inside a Block.
type BlockEntryKind int

const (
	EntryReturn BlockEntryKind = iota
	EntryAssert
	EntryVarDecl
	EntryExprStmt
	EntryAssignment
	EntryIf
	EntryWhile
	EntryForClassical
	EntryForEnhanced
	EntryBreak
	EntryContinue
	EntrySwitch
	EntryThrow
	EntryTry
	EntrySynchronized
	EntryYield
	EntryNestedThing
	EntryInlineBlock
	EntryEmpty
)

// Block is an ordered sequence of BlockEntry within a brace-delimited span.
type Block struct {
	Entries []BlockEntry
	Range   Range
}

// BlockEntry is one statement. Only the fields relevant to Kind are set.
type BlockEntry struct {
	Kind  BlockEntryKind
	Range Range

	Return *Expression // EntryReturn; nil for a bare `return;`

	Assert     *Expression // EntryAssert: the condition
	AssertMsg  *Expression // EntryAssert: optional message

	VarDecl *VarDeclStmt // EntryVarDecl

	ExprStmt *Expression // EntryExprStmt

	Assignment *AssignmentStmt // EntryAssignment

	If *IfStmt // EntryIf

	While *WhileStmt // EntryWhile

	ForClassical *ForClassicalStmt // EntryForClassical
	ForEnhanced  *ForEnhancedStmt  // EntryForEnhanced

	BreakLabel    string // EntryBreak
	ContinueLabel string // EntryContinue

	Switch *SwitchStmt // EntrySwitch

	Throw *Expression // EntryThrow

	Try *TryStmt // EntryTry

	Synchronized *SynchronizedStmt // EntrySynchronized

	Yield *Expression // EntryYield

	NestedThing *Thing // EntryNestedThing

	InlineBlock *Block // EntryInlineBlock
}

// VarDeclStmt is a comma-separated list of local variable declarations
// sharing one declared type.
type VarDeclStmt struct {
	Type  JType
	Vars  []VarDeclarator
	Final bool
}

// VarDeclarator is one `name` or `name = initializer` in a VarDeclStmt.
type VarDeclarator struct {
	Name        string
	Initializer *Expression
	Range       Range
}

// AssignmentStmt is `target op= value` for op in {"", "+", "-", ...}.
type AssignmentStmt struct {
	Target   Expression
	Operator string
	Value    Expression
}

// IfStmt is `if (cond) then [else elseBranch]`. elseBranch may itself wrap
// a nested EntryIf to represent `else if`.
type IfStmt struct {
	Condition Expression
	Then      Block
	Else      *Block
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Condition Expression
	Body      Block
}

// ForClassicalStmt is `for (init; cond; update) body`.
type ForClassicalStmt struct {
	Init      []BlockEntry
	Condition *Expression
	Update    []Expression
	Body      Block
}

// ForEnhancedStmt is `for (Type name : iterable) body`.
type ForEnhancedStmt struct {
	Type     JType
	Name     string
	Iterable Expression
	Body     Block
}

// SwitchStmt covers both classical (`case v:`) and arrow-form
// (`case v ->`) switch statements.
type SwitchStmt struct {
	Selector Expression
	Arms     []SwitchArm
	Arrow    bool
}

// SwitchArmBodyKind tags the arrow-form RHS shape.
type SwitchArmBodyKind int

const (
	ArmBodyBlock SwitchArmBodyKind = iota
	ArmBodyExpression
	ArmBodyType
)

// SwitchArm is one `case label(s):` or `case label(s) ->` arm, or the
// default arm.
type SwitchArm struct {
	Labels    []Expression
	IsDefault bool
	TypeLabel *JType // type-pattern case, e.g. `case String s ->`

	// Classical form: statements following the colon, shared until the next
	// label (standard fallthrough semantics).
	Statements []BlockEntry

	// Arrow form.
	BodyKind SwitchArmBodyKind
	Block    *Block
	Expr     *Expression

	Range Range
}

// TryStmt is `try (resources)? { body } catch (...)* finally?`.
type TryStmt struct {
	Resources []VarDeclStmt
	Body      Block
	Catches   []CatchClause
	Finally   *Block
}

// CatchClause is `catch (Type1 | Type2 name) { body }`.
type CatchClause struct {
	Types []JType
	Name  string
	Body  Block
}

// SynchronizedStmt is `synchronized (lock) { body }`.
type SynchronizedStmt struct {
	Lock Expression
	Body Block
}
