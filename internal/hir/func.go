package hir

import (
	"rock/internal/source"
	"rock/internal/types"
)

// ArgumentDecl is one parameter of a FunctionDecl. TypeExpr is the ast
// package's TypeExprID for the parameter's declared type, kept untyped here
// to avoid an hir->ast dependency cycle; internal/infer resolves it against
// the same ast.Builder lowering read from. NoTypeExprID (0) means the
// parameter carries no annotation and infer mints a ForAll for it.
type ArgumentDecl struct {
	Name     string
	NodeID   NodeID
	Span     source.Span
	TypeExpr uint32
}

// Prototype is an extern declaration: already-solved signature, no body.
type Prototype struct {
	Name        string
	NodeID      NodeID
	Span        source.Span
	Arguments   []ArgumentDecl
	RetTypeExpr uint32
	Signature   types.TypeID
}

// FunctionDecl is a user-defined function. Signature starts out containing
// ForAll variables (one per parameter whose type was not pinned by a type
// annotation) and is solved per call site by internal/infer; after
// internal/mono runs, each surviving clone's Signature is fully solved.
type FunctionDecl struct {
	Name        string
	MangledName string
	NodeID      NodeID
	Span        source.Span
	Arguments   []ArgumentDecl
	BodyID      FnBodyID
	RetTypeExpr uint32
	Signature   types.TypeID
}

// FnBody binds a FnBodyID to the function it belongs to and its statements.
type FnBody struct {
	ID          FnBodyID
	FnID        NodeID
	Name        string
	MangledName string
	Body        *Body
}

// TopLevelKind tags the variant of TopLevel.
type TopLevelKind uint8

const (
	TopInvalid TopLevelKind = iota
	TopExtern
	TopFunction
)

// TopLevel is TopLevel = Extern(Prototype) | Function(FunctionDecl).
type TopLevel struct {
	Kind     TopLevelKind
	Extern   *Prototype
	Function *FunctionDecl
}
