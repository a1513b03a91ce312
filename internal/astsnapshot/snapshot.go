// Package astsnapshot stands in for the front end this mid-end doesn't
// have: with no lexer/parser in scope, cmd/rockc cannot turn Rock source
// text into an ast.Builder itself, so it reads one back from a
// msgpack-encoded Snapshot instead — the same encoding --emit-mono already
// uses for the monomorphized program, reused here for the input side of
// the same boundary. Capture/Restore round-trip a Builder through the
// arena Slice()s internal/ast already exposes read-only, so no new
// reflection into Builder's private arenas is needed.
package astsnapshot

import (
	"rock/internal/ast"
	"rock/internal/source"
)

// Snapshot is the wire form of an ast.Builder: each arena's contents in
// allocation order, plus every NodeID's span. Replaying the arenas via
// Builder's own Add* methods in the same order reproduces the identical
// 1-based IDs the arenas held when Capture ran, since Arena.Allocate always
// appends.
type Snapshot struct {
	Files      []ast.File
	Items      []ast.Item
	Stmts      []ast.Stmt
	Exprs      []ast.Expr
	TypeExprs  []ast.TypeExpr
	Spans      map[ast.NodeID]source.Span
	NextNodeID uint32
}

// Capture copies b's arenas into a Snapshot ready for msgpack encoding.
func Capture(b *ast.Builder) *Snapshot {
	return &Snapshot{
		Files:      b.Files.Slice(),
		Items:      b.Items.Slice(),
		Stmts:      b.Stmts.Slice(),
		Exprs:      b.Exprs.Slice(),
		TypeExprs:  b.TypeExprs.Slice(),
		Spans:      b.Spans,
		NextNodeID: highestNodeID(b.Spans),
	}
}

// Restore rebuilds a Builder from a decoded Snapshot.
func Restore(s *Snapshot) *ast.Builder {
	b := ast.NewBuilder()
	for _, f := range s.Files {
		b.AddFile(f)
	}
	for _, it := range s.Items {
		b.AddItem(it)
	}
	for _, st := range s.Stmts {
		b.AddStmt(st)
	}
	for _, e := range s.Exprs {
		b.AddExpr(e)
	}
	for _, t := range s.TypeExprs {
		b.AddTypeExpr(t)
	}
	for id, span := range s.Spans {
		b.Spans[id] = span
	}
	b.AdvanceNodeID(ast.NodeID(s.NextNodeID))
	return b
}

func highestNodeID(spans map[ast.NodeID]source.Span) uint32 {
	var max uint32
	for id := range spans {
		if uint32(id) > max {
			max = uint32(id)
		}
	}
	return max
}
