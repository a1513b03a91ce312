package hir

import "rock/internal/source"

// ExprKind tags the variant of Expr.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprLit
	ExprIdentifier
	ExprCall
	ExprStructCtor
	ExprIndice
	ExprDot
	ExprReturn
)

func (k ExprKind) String() string {
	switch k {
	case ExprLit:
		return "Lit"
	case ExprIdentifier:
		return "Identifier"
	case ExprCall:
		return "FunctionCall"
	case ExprStructCtor:
		return "StructCtor"
	case ExprIndice:
		return "Indice"
	case ExprDot:
		return "Dot"
	case ExprReturn:
		return "Return"
	default:
		return "Invalid"
	}
}

// LiteralKind tags the variant of Literal.
type LiteralKind uint8

const (
	LitNumber LiteralKind = iota
	LitFloat
	LitBool
	LitString
	LitChar
	LitArray
)

// Literal carries one of LiteralKind's payloads.
type Literal struct {
	Kind    LiteralKind
	Number  int64
	Float   float64
	Bool    bool
	String  string
	Char    byte
	Array   []*Expr
}

// StructCtorField binds one field in a StructCtor expression.
type StructCtorField struct {
	Name  string
	Value *Expr
}

// Expr is a tagged union over every HIR expression variant named in
// Expression = Lit | Identifier(IdentifierPath) | FunctionCall | StructCtor
// | Indice | Dot | NativeOperation(op, lhs, rhs) | Return(Expr).
// NativeOperation is not a distinct tag here: it is recorded out-of-band in
// internal/hir.Root.NativeOps, keyed by the FunctionCall's NodeID.
type Expr struct {
	NodeID NodeID
	Kind   ExprKind
	Span   source.Span

	// ExprLit
	Lit *Literal

	// ExprIdentifier
	Path []string

	// ExprCall
	Callee *Expr
	Args   []*Expr

	// ExprStructCtor
	StructName string
	Fields     []StructCtorField

	// ExprIndice, ExprDot: Base is shared; Index is set for Indice,
	// FieldName for Dot.
	Base      *Expr
	Index     *Expr
	FieldName string

	// ExprReturn
	Inner *Expr
}
