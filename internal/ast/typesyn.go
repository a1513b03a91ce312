package ast

import "rock/internal/source"

// TypeExprKind enumerates syntactic (pre-resolution) type forms.
type TypeExprKind uint8

const (
	TypeExprInvalid TypeExprKind = iota
	// TypeExprName is a bare name: a primitive, a struct name, or a
	// lowercase forall type variable (e.g. the `a` in `trait Show a`).
	TypeExprName
	// TypeExprArray is `T[n]` (fixed) or `T[]` (the parser may set Len to 0
	// to mean "unspecified"; the spec does not give arrays a dynamic form).
	TypeExprArray
	// TypeExprFunc is `(T1, T2) -> R`.
	TypeExprFunc
)

// TypeExpr is a single syntactic type node.
type TypeExpr struct {
	NodeID NodeID
	Kind   TypeExprKind
	Span   source.Span

	Name string // TypeExprName

	Elem TypeExprID // TypeExprArray
	Len  uint64     // TypeExprArray

	Params []TypeExprID // TypeExprFunc
	Ret    TypeExprID   // TypeExprFunc
}
