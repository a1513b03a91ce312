package astsnapshot

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"

	"rock/internal/ast"
	"rock/internal/hir"
	"rock/internal/source"
)

func findMain(root *hir.Root) *hir.FunctionDecl {
	for _, tl := range root.TopLevels {
		if tl.Kind == hir.TopFunction && tl.Function.Name == "main" {
			return tl.Function
		}
	}
	return nil
}

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

// buildMainReturningSeven constructs `fn main() { 7 }`.
func buildMainReturningSeven(b *ast.Builder) ast.FileID {
	litID := b.NewNodeID(sp(0, 1))
	lit := b.AddExpr(ast.Expr{NodeID: litID, Kind: ast.ExprLiteral, Span: sp(0, 1), Lit: ast.Literal{Kind: ast.LitNumber, Number: 7}})
	stmtID := b.NewNodeID(sp(0, 1))
	stmt := b.AddStmt(ast.Stmt{NodeID: stmtID, Kind: ast.StmtExpr, Span: sp(0, 1), Expr: lit})

	fnSpan := sp(0, 10)
	fnNodeID := b.NewNodeID(fnSpan)
	fnItem := b.AddItem(ast.Item{
		Kind: ast.ItemFn,
		Span: fnSpan,
		Fn:   ast.FunctionDecl{Name: "main", NodeID: fnNodeID, Body: []ast.StmtID{stmt}, Span: fnSpan},
	})

	fileSpan := sp(0, 10)
	return b.AddFile(ast.File{Path: "main.rk", Span: fileSpan, Items: []ast.ItemID{fnItem}})
}

// Capturing a Builder, round-tripping it through msgpack, and restoring it
// must produce a Builder that lowers identically to the original.
func TestCaptureRestoreRoundTripsThroughMsgpack(t *testing.T) {
	b := ast.NewBuilder()
	fileID := buildMainReturningSeven(b)

	encoded, err := msgpack.Marshal(Capture(b))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded Snapshot
	if err := msgpack.Unmarshal(encoded, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if diff := cmp.Diff(Capture(b), &decoded); diff != "" {
		t.Fatalf("snapshot changed shape across the msgpack round trip (-want +got):\n%s", diff)
	}

	restored := Restore(&decoded)

	origRoots, origBag := hir.Lower(b, nil, fileID)
	restoredRoots, restoredBag := hir.Lower(restored, nil, fileID)
	if origBag.HasErrors() || restoredBag.HasErrors() {
		t.Fatalf("unexpected lowering errors: %v / %v", origBag.Items(), restoredBag.Items())
	}

	origMain := findMain(origRoots[""])
	restoredMain := findMain(restoredRoots[""])
	if origMain == nil || restoredMain == nil {
		t.Fatalf("expected both builders to lower a main function")
	}
	if origMain.NodeID != restoredMain.NodeID {
		t.Fatalf("expected matching NodeIDs since both builders mint off the same sequence, got %d vs %d", origMain.NodeID, restoredMain.NodeID)
	}

	// A NodeID minted after restore must not collide with anything the
	// snapshot already used.
	fresh := restored.NewNodeID(sp(99, 100))
	if _, used := decoded.Spans[ast.NodeID(fresh)]; used {
		t.Fatalf("expected a freshly minted NodeID after restore, got a reused one: %d", fresh)
	}
}
