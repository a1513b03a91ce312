package mono

import (
	"testing"

	"rock/internal/ast"
	"rock/internal/hir"
	"rock/internal/infer"
	"rock/internal/source"
	"rock/internal/types"
)

func sp(a, b uint32) source.Span { return source.Span{File: 1, Start: a, End: b} }

func numLit(n int64, id hir.NodeID, s source.Span) *hir.Expr {
	return &hir.Expr{NodeID: id, Kind: hir.ExprLit, Span: s, Lit: &hir.Literal{Kind: hir.LitNumber, Number: n}}
}

// main() { return id(7) } where id(x) { x } has no type annotation —
// monomorphization should produce two clones: main (bare name, kept as the
// entry point) and one id$0 instantiated for Int64.
func TestRunClonesEachReachedInstantiationOnce(t *testing.T) {
	root := hir.NewRoot()
	b := ast.NewBuilder()
	in := types.NewInterner()

	idArgID := hir.NodeID(2)
	idArg := &hir.Expr{NodeID: 30, Kind: hir.ExprIdentifier, Path: []string{"x"}, Span: sp(0, 1)}
	idRet := &hir.Expr{NodeID: 31, Kind: hir.ExprReturn, Inner: idArg, Span: sp(0, 1)}
	idBodyID := root.NewBodyID()
	idDecl := &hir.FunctionDecl{
		Name:      "id",
		NodeID:    3,
		Arguments: []hir.ArgumentDecl{{Name: "x", NodeID: idArgID}},
		BodyID:    idBodyID,
	}
	root.TopLevels = append(root.TopLevels, &hir.TopLevel{Kind: hir.TopFunction, Function: idDecl})
	root.Bodies[idBodyID] = &hir.FnBody{ID: idBodyID, FnID: idDecl.NodeID, Body: &hir.Body{
		Stmts: []*hir.Stmt{{NodeID: 32, Kind: hir.StmtExpression, Expr: idRet}},
	}}
	root.Resolutions[idArg.NodeID] = idArgID

	seven := numLit(7, 50, sp(3, 4))
	callee := &hir.Expr{NodeID: 40, Kind: hir.ExprIdentifier, Path: []string{"id"}, Span: sp(0, 2)}
	call := &hir.Expr{NodeID: 41, Kind: hir.ExprCall, Callee: callee, Args: []*hir.Expr{seven}, Span: sp(0, 4)}
	ret := &hir.Expr{NodeID: 42, Kind: hir.ExprReturn, Inner: call, Span: sp(0, 4)}
	mainBodyID := root.NewBodyID()
	main := &hir.FunctionDecl{Name: "main", NodeID: 1, BodyID: mainBodyID}
	root.TopLevels = append(root.TopLevels, &hir.TopLevel{Kind: hir.TopFunction, Function: main})
	root.Bodies[mainBodyID] = &hir.FnBody{ID: mainBodyID, FnID: main.NodeID, Body: &hir.Body{
		Stmts: []*hir.Stmt{{NodeID: 43, Kind: hir.StmtExpression, Expr: ret}},
	}}
	root.Resolutions[callee.NodeID] = idDecl.NodeID

	roots := map[string]*hir.Root{"": root}
	table, bag := infer.Run(roots, b, in)
	if bag.HasErrors() {
		t.Fatalf("unexpected inference errors: %v", bag.Items())
	}

	prog, err := Run(table, roots, b, in)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(prog.Funcs) != 2 {
		t.Fatalf("expected 2 clones (main, id$0), got %d", len(prog.Funcs))
	}

	var mainClone, idClone *Func
	for _, f := range prog.Funcs {
		switch f.OrigName {
		case "main":
			mainClone = f
		case "id":
			idClone = f
		}
	}
	if mainClone == nil || mainClone.Name != "main" {
		t.Fatalf("expected main to keep its bare name, got %+v", mainClone)
	}
	if idClone == nil || idClone.Name != "id$0" {
		t.Fatalf("expected id's sole instantiation named id$0, got %+v", idClone)
	}
	info, ok := in.FnInfo(idClone.Signature)
	if !ok || len(info.Params) != 1 || info.Params[0] != in.Builtins().Int64 || info.Result != in.Builtins().Int64 {
		t.Fatalf("expected id$0 solved to (Int64) -> Int64, got %+v", info)
	}
	if !types.IsSolved(in, idClone.Signature) {
		t.Fatalf("expected id$0's signature to be fully solved")
	}

	idFn := prog.Root.FunctionByID(idClone.NodeID)
	if idFn == nil || len(idFn.Arguments) != 1 {
		t.Fatalf("expected the cloned id function to carry one argument, got %+v", idFn)
	}
	if prog.Root.NodeTypes[idFn.Arguments[0].NodeID] != in.Builtins().Int64 {
		t.Fatalf("expected id$0's parameter to carry its solved Int64 type into the monomorphized root")
	}
}

// A recursive function must clone exactly once per distinct signature, not
// loop forever: fact(n) -> Int64 { return fact(n) } called only as
// fact(Int64) should still produce a single fact$0 clone even though
// ensureClone revisits the same Key while rewriting fact's own call to
// itself (self-recursion is represented by resolving a call back to
// fact's own NodeID, matching spec.md §4.3's memoize-before-recurse rule).
func TestRunMemoizesRecursiveInstantiation(t *testing.T) {
	root := hir.NewRoot()
	b := ast.NewBuilder()
	in := types.NewInterner()

	retTypeExpr := b.AddTypeExpr(ast.TypeExpr{Kind: ast.TypeExprName, Name: "Int64"})

	nArgID := hir.NodeID(2)
	selfCallee := &hir.Expr{NodeID: 60, Kind: hir.ExprIdentifier, Path: []string{"fact"}, Span: sp(0, 4)}
	nRef := &hir.Expr{NodeID: 61, Kind: hir.ExprIdentifier, Path: []string{"n"}, Span: sp(5, 6)}
	selfCall := &hir.Expr{NodeID: 62, Kind: hir.ExprCall, Callee: selfCallee, Args: []*hir.Expr{nRef}, Span: sp(0, 6)}
	factRet := &hir.Expr{NodeID: 63, Kind: hir.ExprReturn, Inner: selfCall, Span: sp(0, 6)}
	factBodyID := root.NewBodyID()
	factDecl := &hir.FunctionDecl{
		Name:        "fact",
		NodeID:      4,
		Arguments:   []hir.ArgumentDecl{{Name: "n", NodeID: nArgID}},
		BodyID:      factBodyID,
		RetTypeExpr: uint32(retTypeExpr),
	}
	root.TopLevels = append(root.TopLevels, &hir.TopLevel{Kind: hir.TopFunction, Function: factDecl})
	root.Bodies[factBodyID] = &hir.FnBody{ID: factBodyID, FnID: factDecl.NodeID, Body: &hir.Body{
		Stmts: []*hir.Stmt{{NodeID: 64, Kind: hir.StmtExpression, Expr: factRet}},
	}}
	root.Resolutions[selfCallee.NodeID] = factDecl.NodeID
	root.Resolutions[nRef.NodeID] = nArgID

	five := numLit(5, 70, sp(10, 11))
	callee := &hir.Expr{NodeID: 71, Kind: hir.ExprIdentifier, Path: []string{"fact"}, Span: sp(8, 12)}
	call := &hir.Expr{NodeID: 72, Kind: hir.ExprCall, Callee: callee, Args: []*hir.Expr{five}, Span: sp(8, 13)}
	ret := &hir.Expr{NodeID: 73, Kind: hir.ExprReturn, Inner: call, Span: sp(8, 13)}
	mainBodyID := root.NewBodyID()
	main := &hir.FunctionDecl{Name: "main", NodeID: 1, BodyID: mainBodyID}
	root.TopLevels = append(root.TopLevels, &hir.TopLevel{Kind: hir.TopFunction, Function: main})
	root.Bodies[mainBodyID] = &hir.FnBody{ID: mainBodyID, FnID: main.NodeID, Body: &hir.Body{
		Stmts: []*hir.Stmt{{NodeID: 74, Kind: hir.StmtExpression, Expr: ret}},
	}}
	root.Resolutions[callee.NodeID] = factDecl.NodeID

	roots := map[string]*hir.Root{"": root}
	table, bag := infer.Run(roots, b, in)
	if bag.HasErrors() {
		t.Fatalf("unexpected inference errors: %v", bag.Items())
	}

	prog, err := Run(table, roots, b, in)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	factClones := 0
	for _, f := range prog.Funcs {
		if f.OrigName == "fact" {
			factClones++
		}
	}
	if factClones != 1 {
		t.Fatalf("expected exactly one fact clone despite self-recursion, got %d", factClones)
	}
}
