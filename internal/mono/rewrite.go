package mono

import (
	"rock/internal/hir"
)

// assignBindingIDs renames every let/reassignment/for-loop binding site in
// body with a fresh NodeID, ahead of the hir.VisitorMut pass in mono.go.
// Binding sites (Assign.NameNodeID, For.BindingNodeID) are not Expr or Stmt
// nodes themselves, so hir.MutateBody's walk never reaches them; renaming
// them first, in one top-down sweep, means the later VisitorMut pass can
// resolve every identifier reference against an already-complete localMap
// regardless of the order it happens to visit expressions in.
func assignBindingIDs(mint func() hir.NodeID, body *hir.Body, localMap map[hir.NodeID]hir.NodeID) {
	if body == nil {
		return
	}
	for _, s := range body.Stmts {
		switch s.Kind {
		case hir.StmtAssign:
			a := s.Assign
			if a == nil || a.TargetKind != hir.AssignIdentifier {
				continue
			}
			old := a.NameNodeID
			a.NameNodeID = mint()
			localMap[old] = a.NameNodeID
		case hir.StmtIfChain:
			if s.IfChain == nil {
				continue
			}
			for _, arm := range s.IfChain.Arms {
				assignBindingIDs(mint, arm.Body, localMap)
			}
			assignBindingIDs(mint, s.IfChain.Else, localMap)
		case hir.StmtFor:
			if s.For == nil {
				continue
			}
			old := s.For.BindingNodeID
			s.For.BindingNodeID = mint()
			localMap[old] = s.For.BindingNodeID
			assignBindingIDs(mint, s.For.Body, localMap)
		}
	}
}

// rewriter implements hir.VisitorMut over one freshly cloned function body,
// assigning every Expr/Stmt a fresh NodeID, carrying its solved type (from
// the infer.Env that produced this instantiation) into the monomorphized
// Root, and rewiring call resolutions onto the matching clone — recursing
// into ensureClone on demand, exactly like internal/infer's visit()
// recurses into callees the first time it sees them.
type rewriter struct {
	bd       *builder
	env      *env
	origRoot *hir.Root
	localMap map[hir.NodeID]hir.NodeID
}

func (rw *rewriter) MutateStmt(s *hir.Stmt) *hir.Stmt {
	orig := s.NodeID
	newID := rw.bd.mint(s.Span)
	if t, ok := rw.env.NodeTypes[orig]; ok {
		rw.bd.out.NodeTypes[newID] = t
	}
	s.NodeID = newID
	return s
}

func (rw *rewriter) MutateExpr(e *hir.Expr) *hir.Expr {
	orig := e.NodeID
	newID := rw.bd.mint(e.Span)
	if t, ok := rw.env.NodeTypes[orig]; ok {
		rw.bd.out.NodeTypes[newID] = t
	}
	if kind, ok := rw.origRoot.NativeOps[orig]; ok {
		rw.bd.out.NativeOps[newID] = kind
	}

	switch e.Kind {
	case hir.ExprIdentifier:
		if target, ok := rw.origRoot.Resolutions[orig]; ok {
			if nt, ok := rw.localMap[target]; ok {
				rw.bd.out.Resolutions[newID] = nt
			} else {
				// A global (function, extern, or already-dispatched trait
				// impl) target: left pointing at its original NodeID. A
				// call's own case below overwrites this with the callee's
				// clone once it knows which instantiation was taken;
				// extern targets keep this placeholder since prototypes
				// are carried into the monomorphized Root unrenamed.
				rw.bd.out.Resolutions[newID] = target
			}
		}
	case hir.ExprCall:
		if calleeKey, ok := rw.env.CallTargets[orig]; ok && rw.bd.err == nil {
			target, err := rw.bd.ensureClone(calleeKey)
			if err != nil {
				rw.bd.err = err
				break
			}
			rw.bd.out.Resolutions[e.Callee.NodeID] = target.NodeID
		}
	}

	e.NodeID = newID
	return e
}
