package mono

import "rock/internal/hir"

// cloneBody deep-copies a function body, preserving every original NodeID.
// The rewrite pass (rewrite.go) assigns fresh NodeIDs afterward, once per
// node it actually visits — mirroring the teacher's two-step clone-then-
// rewrite split between clone.go and rewrite_calls.go, just over Rock's
// smaller HIR shape.
func cloneBody(b *hir.Body) *hir.Body {
	if b == nil {
		return nil
	}
	out := &hir.Body{Stmts: make([]*hir.Stmt, len(b.Stmts))}
	for i, s := range b.Stmts {
		out.Stmts[i] = cloneStmt(s)
	}
	return out
}

func cloneStmt(s *hir.Stmt) *hir.Stmt {
	if s == nil {
		return nil
	}
	out := *s
	switch s.Kind {
	case hir.StmtExpression:
		out.Expr = cloneExpr(s.Expr)
	case hir.StmtAssign:
		out.Assign = cloneAssign(s.Assign)
	case hir.StmtIfChain:
		out.IfChain = cloneIfChain(s.IfChain)
	case hir.StmtFor:
		out.For = cloneFor(s.For)
	}
	return &out
}

func cloneAssign(a *hir.Assign) *hir.Assign {
	if a == nil {
		return nil
	}
	out := *a
	out.Target = cloneExpr(a.Target)
	out.Value = cloneExpr(a.Value)
	return &out
}

func cloneIfChain(ic *hir.IfChain) *hir.IfChain {
	if ic == nil {
		return nil
	}
	out := &hir.IfChain{Arms: make([]hir.IfArm, len(ic.Arms))}
	for i, arm := range ic.Arms {
		out.Arms[i] = hir.IfArm{Cond: cloneExpr(arm.Cond), Body: cloneBody(arm.Body)}
	}
	out.Else = cloneBody(ic.Else)
	return out
}

func cloneFor(f *hir.For) *hir.For {
	if f == nil {
		return nil
	}
	out := *f
	out.Iter = cloneExpr(f.Iter)
	out.Body = cloneBody(f.Body)
	return &out
}

func cloneExpr(e *hir.Expr) *hir.Expr {
	if e == nil {
		return nil
	}
	out := *e
	switch e.Kind {
	case hir.ExprLit:
		if e.Lit != nil {
			lit := *e.Lit
			if len(e.Lit.Array) > 0 {
				lit.Array = make([]*hir.Expr, len(e.Lit.Array))
				for i, el := range e.Lit.Array {
					lit.Array[i] = cloneExpr(el)
				}
			}
			out.Lit = &lit
		}
	case hir.ExprCall:
		out.Callee = cloneExpr(e.Callee)
		if len(e.Args) > 0 {
			out.Args = make([]*hir.Expr, len(e.Args))
			for i, a := range e.Args {
				out.Args[i] = cloneExpr(a)
			}
		}
	case hir.ExprStructCtor:
		if len(e.Fields) > 0 {
			out.Fields = make([]hir.StructCtorField, len(e.Fields))
			for i, f := range e.Fields {
				out.Fields[i] = hir.StructCtorField{Name: f.Name, Value: cloneExpr(f.Value)}
			}
		}
	case hir.ExprIndice:
		out.Base = cloneExpr(e.Base)
		out.Index = cloneExpr(e.Index)
	case hir.ExprDot:
		out.Base = cloneExpr(e.Base)
	case hir.ExprReturn:
		out.Inner = cloneExpr(e.Inner)
	}
	return &out
}
