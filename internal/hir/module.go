package hir

import (
	"rock/internal/source"
	"rock/internal/types"
)

// TraitDecl records a trait's declared method names. internal/resolve binds
// each name to the trait's NodeID, and internal/infer dispatches such a call
// to the first impl in Root.TraitMethods whose first parameter matches.
// Arities are not recorded, and impls are not checked for supplying the
// full method set.
type TraitDecl struct {
	Name    string
	NodeID  NodeID
	Span    source.Span
	Methods []string
}

// StructFieldDecl is one field of a struct declaration, with its
// not-yet-resolved type expression kept around so inference can resolve it
// against the same ast.Builder used for lowering.
type StructFieldDecl struct {
	Name     string
	NodeID   NodeID
	TypeExpr uint32 // ast.TypeExprID, kept untyped here to avoid an hir->ast dependency cycle beyond Lower's input
}

// StructDecl records a struct's declared fields in source order.
type StructDecl struct {
	Name   string
	NodeID NodeID
	Span   source.Span
	Fields []StructFieldDecl
}

// UseImport is a `use` item surviving lowering, for internal/resolve to
// fold into the module's root scope — a plain import binds one name, a
// wildcard import (Wildcard set; lowering drops the trailing "(*)" segment
// from Path) binds every name in the target module's own root scope (B3:
// not transitively).
type UseImport struct {
	Path     []string
	Wildcard bool
	Span     source.Span
}

// Root is the output of lowering: every top-level, the function bodies
// table, the struct and trait tables, and the maps later passes fill in.
//
// The per-instantiation type environments live in internal/infer's Table,
// not here. internal/infer writes Resolutions (for dispatched trait calls)
// and NativeOps; NodeTypes is filled by internal/mono for the monomorphized
// Root it builds.
type Root struct {
	TopLevels []*TopLevel
	Bodies    map[FnBodyID]*FnBody
	Uses      []UseImport

	Structs      map[string]*StructDecl
	Traits       map[string]*TraitDecl
	TraitMethods map[string][]*FunctionDecl // trait method name -> impls, in declaration order
	StructMethods map[string][]*FunctionDecl // inherent impl methods, keyed by receiver struct name

	Resolutions map[NodeID]NodeID
	NodeTypes   map[NodeID]types.TypeID

	// NativeOps records which FunctionCall NodeIDs were recognized by
	// inference as a builtin operator application rather than a user call,
	// and which concrete NativeOperatorKind they resolved to.
	NativeOps map[NodeID]NativeOperatorKind

	Spans map[NodeID]source.Span

	nextBodyID uint32
}

// NewRoot creates an empty Root ready for Lower to populate.
func NewRoot() *Root {
	return &Root{
		Bodies:        make(map[FnBodyID]*FnBody),
		Structs:       make(map[string]*StructDecl),
		Traits:        make(map[string]*TraitDecl),
		TraitMethods:  make(map[string][]*FunctionDecl),
		StructMethods: make(map[string][]*FunctionDecl),
		Resolutions:   make(map[NodeID]NodeID),
		NodeTypes:     make(map[NodeID]types.TypeID),
		NativeOps:     make(map[NodeID]NativeOperatorKind),
		Spans:         make(map[NodeID]source.Span),
	}
}

// NewBodyID allocates a fresh FnBodyID.
func (r *Root) NewBodyID() FnBodyID {
	r.nextBodyID++
	return FnBodyID(r.nextBodyID)
}

// FunctionByID finds a FunctionDecl among r.TopLevels by NodeID.
func (r *Root) FunctionByID(id NodeID) *FunctionDecl {
	for _, tl := range r.TopLevels {
		if tl.Kind == TopFunction && tl.Function.NodeID == id {
			return tl.Function
		}
	}
	return nil
}

// PrototypeByID finds a Prototype among r.TopLevels by NodeID.
func (r *Root) PrototypeByID(id NodeID) *Prototype {
	for _, tl := range r.TopLevels {
		if tl.Kind == TopExtern && tl.Extern.NodeID == id {
			return tl.Extern
		}
	}
	return nil
}
