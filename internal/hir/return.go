package hir

import (
	"rock/internal/diag"
	"rock/internal/source"
)

// insertReturn implements spec.md §4.1's return-position insertion: the
// last statement of a function body (recursing into every arm of a
// terminal if/else chain, including a required else) gets wrapped so its
// value becomes the function's result. Running this twice on an
// already-lowered body is a no-op (L2): StmtExpression whose Expr is
// already ExprReturn is left alone.
func (lw *lowerer) insertReturn(body *Body) {
	if body == nil || len(body.Stmts) == 0 {
		return
	}
	last := body.Stmts[len(body.Stmts)-1]
	switch last.Kind {
	case StmtExpression:
		if last.Expr != nil && last.Expr.Kind == ExprReturn {
			return
		}
		inner := last.Expr
		last.Expr = &Expr{
			NodeID: lw.mint(last.Span),
			Kind:   ExprReturn,
			Span:   last.Span,
			Inner:  inner,
		}
	case StmtIfChain:
		ic := last.IfChain
		if ic.Else == nil {
			lw.bag.Add(diagErr(diag.SyntaxError, last.Span, "if-chain in tail position requires an else branch"))
			return
		}
		for i := range ic.Arms {
			lw.insertReturn(ic.Arms[i].Body)
		}
		lw.insertReturn(ic.Else)
	case StmtAssign:
		lw.bag.Add(diagErr(diag.UnusedAssignment, last.Span, "assignment in tail position has no value"))
	case StmtFor:
		lw.bag.Add(diagErr(diag.UnusedAssignment, last.Span, "for loop in tail position has no value"))
	}
}

func diagErr(code diag.Code, sp source.Span, msg string) *diag.Diagnostic {
	d := diag.NewError(code, sp, msg)
	return &d
}
