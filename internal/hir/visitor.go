package hir

// Visitor walks a read-only HIR tree. Each VisitX method is called before
// WalkX descends into X's children; embedding DefaultVisitor and overriding
// only the methods of interest is the usual way to write one, matching
// spec.md §4.5's "every node kind gets visit_NodeKind/walk_NodeKind".
type Visitor interface {
	VisitExpr(e *Expr)
	VisitStmt(s *Stmt)
	VisitFunction(fn *FunctionDecl, body *Body)
}

// DefaultVisitor recurses into every child without doing anything at each
// node; embed it and override the VisitX methods a concrete visitor cares
// about.
type DefaultVisitor struct{}

func (DefaultVisitor) VisitExpr(*Expr)                        {}
func (DefaultVisitor) VisitStmt(*Stmt)                         {}
func (DefaultVisitor) VisitFunction(*FunctionDecl, *Body)      {}

// WalkExpr calls v.VisitExpr(e) then recurses into e's children in source
// order.
func WalkExpr(v Visitor, e *Expr) {
	if e == nil {
		return
	}
	v.VisitExpr(e)
	switch e.Kind {
	case ExprLit:
		if e.Lit != nil {
			for _, el := range e.Lit.Array {
				WalkExpr(v, el)
			}
		}
	case ExprCall:
		WalkExpr(v, e.Callee)
		for _, a := range e.Args {
			WalkExpr(v, a)
		}
	case ExprStructCtor:
		for _, f := range e.Fields {
			WalkExpr(v, f.Value)
		}
	case ExprIndice:
		WalkExpr(v, e.Base)
		WalkExpr(v, e.Index)
	case ExprDot:
		WalkExpr(v, e.Base)
	case ExprReturn:
		WalkExpr(v, e.Inner)
	}
}

// WalkStmt calls v.VisitStmt(s) then recurses into s's children.
func WalkStmt(v Visitor, s *Stmt) {
	if s == nil {
		return
	}
	v.VisitStmt(s)
	switch s.Kind {
	case StmtExpression:
		WalkExpr(v, s.Expr)
	case StmtAssign:
		if s.Assign != nil {
			WalkExpr(v, s.Assign.Target)
			WalkExpr(v, s.Assign.Value)
		}
	case StmtIfChain:
		if s.IfChain != nil {
			for _, arm := range s.IfChain.Arms {
				WalkExpr(v, arm.Cond)
				WalkBody(v, arm.Body)
			}
			WalkBody(v, s.IfChain.Else)
		}
	case StmtFor:
		if s.For != nil {
			WalkExpr(v, s.For.Iter)
			WalkBody(v, s.For.Body)
		}
	}
}

// WalkBody recurses into every statement of a body in order.
func WalkBody(v Visitor, b *Body) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		WalkStmt(v, s)
	}
}

// WalkRoot visits every function body in a Root, in TopLevels order.
func WalkRoot(v Visitor, r *Root) {
	for _, tl := range r.TopLevels {
		if tl.Kind != TopFunction {
			continue
		}
		fb := r.Bodies[tl.Function.BodyID]
		if fb == nil {
			continue
		}
		v.VisitFunction(tl.Function, fb.Body)
		WalkBody(v, fb.Body)
	}
}

// VisitorMut rewrites a HIR tree in place, returning the (possibly
// replaced) node. internal/mono implements this to clone bodies with fresh
// NodeIDs and rewrite FunctionCall resolutions onto monomorphized clones.
type VisitorMut interface {
	MutateExpr(e *Expr) *Expr
	MutateStmt(s *Stmt) *Stmt
}

// MutateBody rewrites every statement of a body in place via v, dropping
// statements whose MutateStmt returns nil.
func MutateBody(v VisitorMut, b *Body) {
	if b == nil {
		return
	}
	out := b.Stmts[:0]
	for _, s := range b.Stmts {
		mutateStmtChildren(v, s)
		if ns := v.MutateStmt(s); ns != nil {
			out = append(out, ns)
		}
	}
	b.Stmts = out
}

func mutateStmtChildren(v VisitorMut, s *Stmt) {
	if s == nil {
		return
	}
	switch s.Kind {
	case StmtExpression:
		s.Expr = mutateExprTree(v, s.Expr)
	case StmtAssign:
		if s.Assign != nil {
			s.Assign.Target = mutateExprTree(v, s.Assign.Target)
			s.Assign.Value = mutateExprTree(v, s.Assign.Value)
		}
	case StmtIfChain:
		if s.IfChain != nil {
			for i := range s.IfChain.Arms {
				s.IfChain.Arms[i].Cond = mutateExprTree(v, s.IfChain.Arms[i].Cond)
				MutateBody(v, s.IfChain.Arms[i].Body)
			}
			MutateBody(v, s.IfChain.Else)
		}
	case StmtFor:
		if s.For != nil {
			s.For.Iter = mutateExprTree(v, s.For.Iter)
			MutateBody(v, s.For.Body)
		}
	}
}

func mutateExprTree(v VisitorMut, e *Expr) *Expr {
	if e == nil {
		return nil
	}
	switch e.Kind {
	case ExprLit:
		if e.Lit != nil {
			for i, el := range e.Lit.Array {
				e.Lit.Array[i] = mutateExprTree(v, el)
			}
		}
	case ExprCall:
		e.Callee = mutateExprTree(v, e.Callee)
		for i, a := range e.Args {
			e.Args[i] = mutateExprTree(v, a)
		}
	case ExprStructCtor:
		for i := range e.Fields {
			e.Fields[i].Value = mutateExprTree(v, e.Fields[i].Value)
		}
	case ExprIndice:
		e.Base = mutateExprTree(v, e.Base)
		e.Index = mutateExprTree(v, e.Index)
	case ExprDot:
		e.Base = mutateExprTree(v, e.Base)
	case ExprReturn:
		e.Inner = mutateExprTree(v, e.Inner)
	}
	return v.MutateExpr(e)
}
