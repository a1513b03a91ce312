package resolve

import (
	"testing"

	"rock/internal/hir"
	"rock/internal/source"
)

func sp(a, b uint32) source.Span { return source.Span{File: 1, Start: a, End: b} }

func newFnRoot(fnName string, fnID hir.NodeID, argName string, argID hir.NodeID, bodyExpr *hir.Expr) *hir.Root {
	r := hir.NewRoot()
	bodyID := r.NewBodyID()
	fn := &hir.FunctionDecl{
		Name:      fnName,
		NodeID:    fnID,
		Arguments: []hir.ArgumentDecl{{Name: argName, NodeID: argID}},
		BodyID:    bodyID,
	}
	r.TopLevels = append(r.TopLevels, &hir.TopLevel{Kind: hir.TopFunction, Function: fn})
	r.Bodies[bodyID] = &hir.FnBody{ID: bodyID, FnID: fnID, Body: &hir.Body{
		Stmts: []*hir.Stmt{{Kind: hir.StmtExpression, Expr: bodyExpr}},
	}}
	return r
}

func TestResolveArgumentIdentifier(t *testing.T) {
	ident := &hir.Expr{NodeID: 100, Kind: hir.ExprIdentifier, Path: []string{"x"}, Span: sp(0, 1)}
	root := newFnRoot("id", 1, "x", 2, ident)

	bag := Run(map[string]*hir.Root{"": root})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if got := root.Resolutions[ident.NodeID]; got != 2 {
		t.Fatalf("expected identifier to resolve to argument NodeID 2, got %d", got)
	}
}

func TestResolveUnknownIdentifierReportsDiagnostic(t *testing.T) {
	ident := &hir.Expr{NodeID: 100, Kind: hir.ExprIdentifier, Path: []string{"nope"}, Span: sp(0, 1)}
	root := newFnRoot("id", 1, "x", 2, ident)

	bag := Run(map[string]*hir.Root{"": root})
	if !bag.HasErrors() {
		t.Fatalf("expected an unknown-identifier diagnostic")
	}
}

func TestResolveWildcardUseImportsOnlyRootScope(t *testing.T) {
	callee := &hir.Expr{NodeID: 200, Kind: hir.ExprIdentifier, Path: []string{"helper"}, Span: sp(0, 1)}
	call := &hir.Expr{NodeID: 201, Kind: hir.ExprCall, Callee: callee, Span: sp(0, 2)}
	mainRoot := newFnRoot("main", 10, "_unused", 11, call)
	mainRoot.Uses = []hir.UseImport{{Path: []string{"util"}, Wildcard: true, Span: sp(0, 1)}}

	utilRoot := hir.NewRoot()
	helperBody := utilRoot.NewBodyID()
	helperFn := &hir.FunctionDecl{Name: "helper", NodeID: 20, BodyID: helperBody}
	utilRoot.TopLevels = append(utilRoot.TopLevels, &hir.TopLevel{Kind: hir.TopFunction, Function: helperFn})
	utilRoot.Bodies[helperBody] = &hir.FnBody{ID: helperBody, FnID: 20, Body: &hir.Body{}}

	bag := Run(map[string]*hir.Root{"": mainRoot, "util": utilRoot})
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %v", bag.Items())
	}
	if got := mainRoot.Resolutions[callee.NodeID]; got != 20 {
		t.Fatalf("expected wildcard-imported helper to resolve to NodeID 20, got %d", got)
	}
}
