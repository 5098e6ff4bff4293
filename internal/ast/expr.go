package ast

// ExpressionKind tags one element of an Expression's flat node sequence.
// Associativity and precedence are intentionally not reconstructed here;
// the parser preserves source order and the resolver walks the sequence
// prefix-to-suffix.
type ExpressionKind int

const (
	ExprRecursive ExpressionKind = iota
	ExprLambda
	ExprInlineSwitch
	ExprNewClass
	ExprGenericsMarker
	ExprInstanceOf
	ExprBareType
	ExprCast
	ExprArrayLiteral
	ExprOperator // binary/ternary/increment operator token between nodes
	ExprNugget   // literal primary: integer, string, char, boolean
)

// ExpressionNode is one element of an Expression's node sequence.
type ExpressionNode struct {
	Kind  ExpressionKind
	Range Range

	// ExprRecursive: a chain of accesses rooted at an identifier, literal,
	// `this`/`super`, or array access, followed by `.`-separated segments.
	Recursive *RecursiveExpr

	// ExprLambda
	Lambda *LambdaExpr

	// ExprNewClass
	NewClass *NewClassExpr

	// ExprInstanceOf / ExprCast / ExprBareType
	Type *JType

	// ExprCast
	CastOperand *Expression

	// ExprOperator: the literal operator spelling (e.g. "+", "?", ":").
	Operator string

	// ExprNugget: literal text as it appeared in source.
	NuggetText string
	NuggetKind NuggetKind

	// ExprArrayLiteral
	Elements []Expression

	// ExprInlineSwitch
	Switch *SwitchExpr
}

// NuggetKind distinguishes the literal shape of a nugget.
type NuggetKind int

const (
	NuggetInteger NuggetKind = iota
	NuggetFloating
	NuggetString
	NuggetChar
	NuggetBoolean
	NuggetNull
)

// Expression is a non-empty ordered sequence of ExpressionNode, implicitly
// composed by whatever operator tokens sit between recursive/nugget/etc.
// segments.
type Expression struct {
	Nodes []ExpressionNode
	Range Range
}

// RecursiveExpr is an identifier/literal/value/array-access root followed
// by a chain of `.`-separated segments and an optional trailing argument
// list.
type RecursiveExpr struct {
	Root     RecursiveRoot
	Segments []RecursiveSegment
	Range    Range
}

// RecursiveRootKind tags the root of a recursive expression.
type RecursiveRootKind int

const (
	RootIdentifier RecursiveRootKind = iota
	RootThis
	RootSuper
	RootArrayAccess
	RootParenthesized
)

// RecursiveRoot is the first element of a RecursiveExpr.
type RecursiveRoot struct {
	Kind       RecursiveRootKind
	Name       string      // RootIdentifier
	Index      *Expression // RootArrayAccess
	Inner      *Expression // RootParenthesized
	Range      Range
}

// RecursiveSegment is one `.name`, `.name(args)`, `[index]`, or bare
// argument-list step following a recursive root.
type RecursiveSegment struct {
	Name      string // field/method access name; empty for bare array index
	Args      []Expression
	HasArgs   bool
	Index     *Expression // array index, if this segment is `[expr]`
	Range     Range
}

// LambdaExpr is `(params) -> body` or `name -> body`.
type LambdaExpr struct {
	Params []Param
	Body   LambdaBody
	Range  Range
}

// LambdaBodyKind tags a lambda's right-hand side shape.
type LambdaBodyKind int

const (
	LambdaBodyNone LambdaBodyKind = iota
	LambdaBodyBlock
	LambdaBodyExpression
)

// LambdaBody is the RHS of a lambda, one of block | expression | none.
type LambdaBody struct {
	Kind       LambdaBodyKind
	Block      *Block
	Expression *Expression
}

// Param is a method/constructor/lambda parameter.
type Param struct {
	Name  string
	Type  *JType // nil when the parameter carries no explicit type
	Range Range
}

// NewClassExpr is `new Type(args)`, `new Type(args) { body }` (anonymous
// class), or `new Type[] { elems }`.
type NewClassExpr struct {
	Type JType
	Args []Expression
	// AnonymousBody holds the member list when a class body follows the
	// constructor call; its Name/SuperClass are left unset since they are
	// implied by Type.
	AnonymousBody *Thing
	ArrayLit      []Expression
	IsArrayLit    bool
	Range         Range
}

// SwitchExpr is the inline-switch expression form (`switch (e) { ... }`
// used as a value).
type SwitchExpr struct {
	Selector Expression
	Arms     []SwitchArm
	Range    Range
}
