package infer

import (
	"fmt"

	"rock/internal/diag"
	"rock/internal/hir"
	"rock/internal/types"
)

func (e *Engine) inferStmt(root *hir.Root, env *Env, s *hir.Stmt) (types.TypeID, bool) {
	switch s.Kind {
	case hir.StmtExpression:
		return e.inferExpr(root, env, s.Expr)
	case hir.StmtAssign:
		return e.inferAssign(root, env, s)
	case hir.StmtIfChain:
		return e.inferIfChain(root, env, s)
	case hir.StmtFor:
		return e.inferFor(root, env, s)
	default:
		return e.in.Builtins().Void, true
	}
}

func (e *Engine) inferAssign(root *hir.Root, env *Env, s *hir.Stmt) (types.TypeID, bool) {
	a := s.Assign
	switch a.TargetKind {
	case hir.AssignIdentifier:
		vt, ok := e.inferExpr(root, env, a.Value)
		if !ok {
			return types.NoTypeID, false
		}
		if !a.IsLet {
			if old, has := env.NodeTypes[a.NameNodeID]; has {
				if _, ok := unify(e.in, old, vt); !ok {
					e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, s.Span,
						fmt.Sprintf("reassignment of %q changes its type", a.Name))))
					return types.NoTypeID, false
				}
			}
		}
		env.NodeTypes[a.NameNodeID] = vt
		return e.in.Builtins().Void, true
	case hir.AssignIndice, hir.AssignDot:
		if _, ok := e.inferExpr(root, env, a.Target); !ok {
			return types.NoTypeID, false
		}
		if _, ok := e.inferExpr(root, env, a.Value); !ok {
			return types.NoTypeID, false
		}
		return e.in.Builtins().Void, true
	default:
		return e.in.Builtins().Void, true
	}
}

func (e *Engine) inferIfChain(root *hir.Root, env *Env, s *hir.Stmt) (types.TypeID, bool) {
	ic := s.IfChain
	var unified types.TypeID
	first := true
	for _, arm := range ic.Arms {
		if _, ok := e.inferExpr(root, env, arm.Cond); !ok {
			return types.NoTypeID, false
		}
		t, ok := e.inferBody(root, env, arm.Body)
		if !ok {
			return types.NoTypeID, false
		}
		if first {
			unified, first = t, false
			continue
		}
		u, ok := unify(e.in, unified, t)
		if !ok {
			e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, s.Span, "if/else arms do not agree on a type")))
			return types.NoTypeID, false
		}
		unified = u
	}
	if ic.Else != nil {
		t, ok := e.inferBody(root, env, ic.Else)
		if !ok {
			return types.NoTypeID, false
		}
		if first {
			unified = t
		} else if u, ok := unify(e.in, unified, t); ok {
			unified = u
		} else {
			e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, s.Span, "else arm does not agree with earlier arms")))
			return types.NoTypeID, false
		}
	}
	env.NodeTypes[s.NodeID] = unified
	return unified, true
}

func (e *Engine) inferFor(root *hir.Root, env *Env, s *hir.Stmt) (types.TypeID, bool) {
	f := s.For
	iterType, ok := e.inferExpr(root, env, f.Iter)
	if !ok {
		return types.NoTypeID, false
	}
	elem := types.NoTypeID
	if it, ok := e.in.Lookup(iterType); ok && it.Kind == types.KindArray {
		elem = it.Elem
	} else {
		e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, s.Span, "for loop iterates a non-array value")))
		return types.NoTypeID, false
	}
	env.NodeTypes[f.BindingNodeID] = elem
	if _, ok := e.inferBody(root, env, f.Body); !ok {
		return types.NoTypeID, false
	}
	return e.in.Builtins().Void, true
}
