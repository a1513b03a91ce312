package ast

import (
	"fmt"

	"fortio.org/safecast"

	"rock/internal/source"
)

// Builder owns every AST arena for a compilation and assigns NodeIDs. It is
// produced by the (out-of-scope) parser, or by astsnapshot.Restore and unit
// tests through the Add* methods below. The core reads its arenas and, during
// hir.Lower, mints fresh HIR NodeIDs from it through NewNodeID.
type Builder struct {
	Files     *Arena[File]
	Items     *Arena[Item]
	Stmts     *Arena[Stmt]
	Exprs     *Arena[Expr]
	TypeExprs *Arena[TypeExpr]

	// Spans maps every NodeID to its source span, the process-wide
	// identities table described in spec.md §3.
	Spans map[NodeID]source.Span

	nextNodeID uint32
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		Files:     NewArena[File](4),
		Items:     NewArena[Item](64),
		Stmts:     NewArena[Stmt](256),
		Exprs:     NewArena[Expr](256),
		TypeExprs: NewArena[TypeExpr](64),
		Spans:     make(map[NodeID]source.Span, 256),
	}
}

// NewNodeID allocates a fresh NodeID and records its span in the identities
// table. Every AST and HIR node embeds a NodeID obtained this way (HIR
// clones obtained during monomorphization call this too, on this same
// Builder; see internal/mono's builder.mint).
func (b *Builder) NewNodeID(span source.Span) NodeID {
	b.nextNodeID++
	id := NodeID(b.nextNodeID)
	b.Spans[id] = span
	return id
}

// Span looks up the span for a NodeID.
func (b *Builder) Span(id NodeID) (source.Span, bool) {
	s, ok := b.Spans[id]
	return s, ok
}

// AdvanceNodeID raises the builder's NodeID counter so the next NewNodeID
// call never reissues an id at or below last. internal/astsnapshot uses
// this to restore a Builder from a decoded snapshot: the snapshot's arenas
// already carry concrete NodeIDs minted by whatever produced them, so
// replaying those arenas must not reset the counter to zero.
func (b *Builder) AdvanceNodeID(last NodeID) {
	if uint32(last) > b.nextNodeID {
		b.nextNodeID = uint32(last)
	}
}

// AddFile allocates a File and returns its FileID.
func (b *Builder) AddFile(f File) FileID {
	return FileID(b.Files.Allocate(f))
}

// AddItem allocates an Item and returns its ItemID.
func (b *Builder) AddItem(it Item) ItemID {
	return ItemID(b.Items.Allocate(it))
}

// AddStmt allocates a Stmt and returns its StmtID.
func (b *Builder) AddStmt(s Stmt) StmtID {
	return StmtID(b.Stmts.Allocate(s))
}

// AddExpr allocates an Expr and returns its ExprID.
func (b *Builder) AddExpr(e Expr) ExprID {
	return ExprID(b.Exprs.Allocate(e))
}

// AddTypeExpr allocates a TypeExpr and returns its TypeExprID.
func (b *Builder) AddTypeExpr(t TypeExpr) TypeExprID {
	return TypeExprID(b.TypeExprs.Allocate(t))
}

// Item, Stmt, Expr, TypeExpr, File look up arena entries by ID, returning
// nil for the zero ("no such node") ID.

func (b *Builder) File(id FileID) *File           { return b.Files.Get(uint32(id)) }
func (b *Builder) Item(id ItemID) *Item           { return b.Items.Get(uint32(id)) }
func (b *Builder) Stmt(id StmtID) *Stmt           { return b.Stmts.Get(uint32(id)) }
func (b *Builder) Expr(id ExprID) *Expr           { return b.Exprs.Get(uint32(id)) }
func (b *Builder) TypeExpr(id TypeExprID) *TypeExpr { return b.TypeExprs.Get(uint32(id)) }

// asU32 converts a length to uint32, panicking on overflow, matching the
// teacher's fortio.org/safecast discipline for every narrowing conversion.
func asU32(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("ast: length overflow: %w", err))
	}
	return v
}
