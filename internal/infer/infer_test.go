package infer

import (
	"testing"

	"rock/internal/ast"
	"rock/internal/hir"
	"rock/internal/source"
	"rock/internal/types"
)

func sp(a, b uint32) source.Span { return source.Span{File: 1, Start: a, End: b} }

func numLit(n int64, s source.Span) *hir.Expr {
	return &hir.Expr{NodeID: hir.NodeID(1000 + n), Kind: hir.ExprLit, Span: s, Lit: &hir.Literal{Kind: hir.LitNumber, Number: n}}
}

// main() { return 2 + 3 } — the desugared-and-return-inserted shape
// hir.Lower would have already produced.
func TestInferNativeAdditionOnMain(t *testing.T) {
	root := hir.NewRoot()
	mainID := hir.NodeID(1)
	bodyID := root.NewBodyID()

	two := numLit(2, sp(0, 1))
	three := numLit(3, sp(4, 5))
	plus := &hir.Expr{NodeID: 10, Kind: hir.ExprIdentifier, Path: []string{"+"}, Span: sp(2, 3)}
	call := &hir.Expr{NodeID: 11, Kind: hir.ExprCall, Callee: plus, Args: []*hir.Expr{two, three}, Span: sp(0, 5)}
	ret := &hir.Expr{NodeID: 12, Kind: hir.ExprReturn, Inner: call, Span: sp(0, 5)}

	main := &hir.FunctionDecl{Name: "main", NodeID: mainID, BodyID: bodyID}
	root.TopLevels = append(root.TopLevels, &hir.TopLevel{Kind: hir.TopFunction, Function: main})
	root.Bodies[bodyID] = &hir.FnBody{ID: bodyID, FnID: mainID, Body: &hir.Body{
		Stmts: []*hir.Stmt{{NodeID: 20, Kind: hir.StmtExpression, Expr: ret}},
	}}

	in := types.NewInterner()
	b := ast.NewBuilder()
	table, bag := Run(map[string]*hir.Root{"": root}, b, in)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	sig0 := in.RegisterFn(nil, in.Builtins().Int64)
	env, ok := table.Lookup(Key{FnID: mainID, Sig: sig0})
	if !ok {
		t.Fatalf("expected main's instantiation to be visited")
	}
	if got := env.NodeTypes[call.NodeID]; got != in.Builtins().Int64 {
		t.Fatalf("expected 2+3 to have type Int64, got %v", got)
	}
	if kind := root.NativeOps[call.NodeID]; kind != hir.IAdd {
		t.Fatalf("expected 2+3 to resolve to IAdd, got %v", kind)
	}
}

// main() { return id(7) } where id(x) { x } has no type annotation at all —
// id's ForAll parameter instantiates to Int64 from the call-site argument.
func TestInferInstantiatesPolymorphicIdentity(t *testing.T) {
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
		Arguments: []hir.ArgumentDecl{{Name: "x", NodeID: idArgID}}, // TypeExpr left 0 (NoTypeExprID): untyped param
		BodyID:    idBodyID,
	}
	root.TopLevels = append(root.TopLevels, &hir.TopLevel{Kind: hir.TopFunction, Function: idDecl})
	root.Bodies[idBodyID] = &hir.FnBody{ID: idBodyID, FnID: idDecl.NodeID, Body: &hir.Body{
		Stmts: []*hir.Stmt{{NodeID: 32, Kind: hir.StmtExpression, Expr: idRet}},
	}}
	root.Resolutions[idArg.NodeID] = idArgID

	seven := numLit(7, sp(3, 4))
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

	table, bag := Run(map[string]*hir.Root{"": root}, b, in)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	sig0 := in.RegisterFn(nil, in.Builtins().Int64)
	env, ok := table.Lookup(Key{FnID: main.NodeID, Sig: sig0})
	if !ok {
		t.Fatalf("expected main's instantiation to be visited")
	}
	if got := env.NodeTypes[call.NodeID]; got != in.Builtins().Int64 {
		t.Fatalf("expected id(7) to have type Int64, got %v", got)
	}

	var idEnv *Env
	for _, key := range table.Order() {
		if key.FnID == idDecl.NodeID {
			idEnv, _ = table.Lookup(key)
		}
	}
	if idEnv == nil {
		t.Fatalf("expected id's instantiation to be visited")
	}
	if got := idEnv.NodeTypes[idArgID]; got != in.Builtins().Int64 {
		t.Fatalf("expected id's parameter to solve to Int64, got %v", got)
	}
	if info, ok := in.FnInfo(idEnv.Signature); !ok || info.Result != in.Builtins().Int64 {
		t.Fatalf("expected id's solved signature to return Int64, got %+v", info)
	}
}
