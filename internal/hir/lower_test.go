package hir

import (
	"testing"

	"rock/internal/ast"
	"rock/internal/diag"
	"rock/internal/source"
)

func sp(start, end uint32) source.Span {
	return source.Span{File: 1, Start: start, End: end}
}

func numLit(b *ast.Builder, n int64, s source.Span) ast.ExprID {
	id := b.NewNodeID(s)
	return b.AddExpr(ast.Expr{NodeID: id, Kind: ast.ExprLiteral, Span: s, Lit: ast.Literal{Kind: ast.LitNumber, Number: n}})
}

// buildMainAddsTwoAndThree constructs the AST a parser would produce for
// `fn main() { 2 + 3 }` and returns the file's FileID.
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

func TestLowerDesugarsInfixIntoFunctionCall(t *testing.T) {
	b := ast.NewBuilder()
	fileID := buildMainAddsTwoAndThree(b)

	roots, bag := Lower(b, map[string]uint8{"+": 10}, fileID)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	root, ok := roots[""]
	if !ok {
		t.Fatalf("expected root module entry")
	}
	if len(root.TopLevels) != 1 {
		t.Fatalf("expected 1 top level, got %d", len(root.TopLevels))
	}
	fn := root.TopLevels[0].Function
	body := root.Bodies[fn.BodyID].Body
	if len(body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(body.Stmts))
	}
	stmt := body.Stmts[0]
	if stmt.Kind != StmtExpression {
		t.Fatalf("expected StmtExpression, got %v", stmt.Kind)
	}
	ret := stmt.Expr
	if ret.Kind != ExprReturn {
		t.Fatalf("expected return insertion to wrap the tail expression, got %v", ret.Kind)
	}
	call := ret.Inner
	if call.Kind != ExprCall {
		t.Fatalf("expected infix desugar to produce a call, got %v", call.Kind)
	}
	if call.Callee.Kind != ExprIdentifier || call.Callee.Path[0] != "+" {
		t.Fatalf("expected callee identifier \"+\", got %+v", call.Callee)
	}
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(call.Args))
	}
	if call.Args[0].Lit.Number != 2 || call.Args[1].Lit.Number != 3 {
		t.Fatalf("expected operands 2 and 3, got %+v", call.Args)
	}
}

func TestDesugarInfixIsLeftAssociativeOnEqualPrecedence(t *testing.T) {
	b := ast.NewBuilder()
	// 1 - 2 - 3, with "-" left-associative, must desugar to (1 - 2) - 3.
	one := numLit(b, 1, sp(0, 1))
	two := numLit(b, 2, sp(4, 5))
	three := numLit(b, 3, sp(8, 9))
	chainSpan := sp(0, 9)
	chain := &ast.Expr{
		NodeID: b.NewNodeID(chainSpan),
		Kind:   ast.ExprBinopChain,
		Span:   chainSpan,
		First:  one,
		Tail: []ast.BinopTail{
			{Op: "-", OpSpan: sp(2, 3), Rhs: two},
			{Op: "-", OpSpan: sp(6, 7), Rhs: three},
		},
	}

	lw := &lowerer{b: b, precedence: map[string]uint8{"-": 10}}
	got := lw.desugarInfix(chain)
	if got.Kind != ExprCall {
		t.Fatalf("expected call, got %v", got.Kind)
	}
	outerLhs := got.Args[0]
	if outerLhs.Kind != ExprCall {
		t.Fatalf("expected left-associative nesting, outer lhs was %v", outerLhs.Kind)
	}
	if outerLhs.Args[0].Lit.Number != 1 || outerLhs.Args[1].Lit.Number != 2 {
		t.Fatalf("expected inner call to be (1 - 2), got %+v", outerLhs.Args)
	}
	if got.Args[1].Lit.Number != 3 {
		t.Fatalf("expected outer rhs to be 3, got %+v", got.Args[1])
	}
}

func TestInsertReturnIsIdempotent(t *testing.T) {
	b := ast.NewBuilder()
	lw := &lowerer{b: b}
	expr := &Expr{Kind: ExprLit, Span: sp(0, 1), Lit: &Literal{Kind: LitNumber, Number: 7}}
	body := &Body{Stmts: []*Stmt{{Kind: StmtExpression, Span: sp(0, 1), Expr: expr}}}

	lw.insertReturn(body)
	if body.Stmts[0].Expr.Kind != ExprReturn {
		t.Fatalf("expected return wrapper after first insertReturn")
	}
	firstInner := body.Stmts[0].Expr.Inner

	lw.insertReturn(body)
	if body.Stmts[0].Expr.Kind != ExprReturn {
		t.Fatalf("expected return wrapper to remain after second insertReturn")
	}
	if body.Stmts[0].Expr.Inner != firstInner {
		t.Fatalf("expected idempotent insertReturn to leave the inner expression untouched")
	}
}

func TestInsertReturnRejectsIfChainWithoutElse(t *testing.T) {
	b := ast.NewBuilder()
	lw := &lowerer{b: b, bag: diag.NewBag(16)}
	cond := &Expr{Kind: ExprLit, Span: sp(0, 1), Lit: &Literal{Kind: LitBool, Bool: true}}
	arm := IfArm{Cond: cond, Body: &Body{Stmts: []*Stmt{{Kind: StmtExpression, Expr: &Expr{Kind: ExprLit, Lit: &Literal{Kind: LitNumber, Number: 1}}}}}}
	body := &Body{Stmts: []*Stmt{{Kind: StmtIfChain, Span: sp(0, 10), IfChain: &IfChain{Arms: []IfArm{arm}}}}}

	lw.insertReturn(body)
	if !lw.bag.HasErrors() {
		t.Fatalf("expected an error diagnostic for a tail if-chain without else")
	}
}
