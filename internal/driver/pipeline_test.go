package driver

import (
	"context"
	"testing"

	"rock/internal/ast"
	"rock/internal/source"
	"rock/internal/types"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func numLit(b *ast.Builder, n int64, s source.Span) ast.ExprID {
	id := b.NewNodeID(s)
	return b.AddExpr(ast.Expr{NodeID: id, Kind: ast.ExprLiteral, Span: s, Lit: ast.Literal{Kind: ast.LitNumber, Number: n}})
}

// buildMainAddsTwoAndThree constructs the AST a parser would produce for
// `fn main() { 2 + 3 }`, mirroring internal/hir's own lowering fixture since
// no real front end exists to produce one for us.
func buildMainAddsTwoAndThree(b *ast.Builder) ast.FileID {
	lhs := numLit(b, 2, sp(0, 1))
	rhs := numLit(b, 3, sp(4, 5))
	chainSpan := sp(0, 5)
	chainID := b.NewNodeID(chainSpan)
	chain := b.AddExpr(ast.Expr{
		NodeID: chainID,
		Kind:   ast.ExprBinopChain,
		Span:   chainSpan,
		First:  lhs,
		Tail:   []ast.BinopTail{{Op: "+", OpSpan: sp(2, 3), Rhs: rhs}},
	})
	stmtID := b.NewNodeID(chainSpan)
	stmt := b.AddStmt(ast.Stmt{NodeID: stmtID, Kind: ast.StmtExpr, Span: chainSpan, Expr: chain})

	fnSpan := sp(0, 20)
	fnNodeID := b.NewNodeID(fnSpan)
	fnItem := b.AddItem(ast.Item{
		Kind: ast.ItemFn,
		Span: fnSpan,
		Fn: ast.FunctionDecl{
			Name:   "main",
			NodeID: fnNodeID,
			Body:   []ast.StmtID{stmt},
			Span:   fnSpan,
		},
	})

	fileSpan := sp(0, 20)
	fileID := b.AddFile(ast.File{Path: "main.rk", Span: fileSpan, Items: []ast.ItemID{fnItem}})
	return fileID
}

// fn main() { 2 + 3 } should reach StageBuild with a single monomorphized
// main function whose body resolves to Int64 — the "2+3 -> 5" scenario.
func TestPipelineRunBuildsAndMonomorphizesAddition(t *testing.T) {
	b := ast.NewBuilder()
	in := types.NewInterner()
	fileID := buildMainAddsTwoAndThree(b)

	p := &Pipeline{Precedence: map[string]uint8{"+": 10}}
	result, err := p.Run(context.Background(), b, in, []ast.FileID{fileID}, StageBuild)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Bag.Items())
	}
	if result.Mono == nil || len(result.Mono.Funcs) != 1 {
		t.Fatalf("expected exactly one monomorphized function, got %+v", result.Mono)
	}
	mainFn := result.Mono.Funcs[0]
	if mainFn.Name != "main" {
		t.Fatalf("expected main to keep its bare name, got %q", mainFn.Name)
	}
	info, ok := in.FnInfo(mainFn.Signature)
	if !ok || info.Result != in.Builtins().Int64 {
		t.Fatalf("expected main's signature to resolve to Int64, got %+v", info)
	}
}

// StageCheck must stop before monomorphization even when the program is
// otherwise well-typed.
func TestPipelineRunCheckStopsBeforeMono(t *testing.T) {
	b := ast.NewBuilder()
	in := types.NewInterner()
	fileID := buildMainAddsTwoAndThree(b)

	p := &Pipeline{Precedence: map[string]uint8{"+": 10}}
	result, err := p.Run(context.Background(), b, in, []ast.FileID{fileID}, StageCheck)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", result.Bag.Items())
	}
	if result.Mono != nil {
		t.Fatalf("expected StageCheck to skip monomorphization, got %+v", result.Mono)
	}
	if result.Table == nil {
		t.Fatalf("expected StageCheck to still run inference")
	}
}
