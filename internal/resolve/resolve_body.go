package resolve

import (
	"rock/internal/diag"
	"rock/internal/hir"
)

func (r *Resolver) resolveModule(key string, root *hir.Root) {
	modPath := splitKey(key)
	moduleScope := r.moduleScopes[key]
	for _, tl := range root.TopLevels {
		if tl.Kind != hir.TopFunction {
			continue
		}
		fb := root.Bodies[tl.Function.BodyID]
		if fb == nil {
			continue
		}
		fnScope := NewScope(moduleScope)
		for _, arg := range tl.Function.Arguments {
			fnScope.Define(arg.Name, arg.NodeID)
		}
		r.resolveBody(modPath, root, fnScope, fb.Body)
	}
}

func (r *Resolver) resolveBody(modPath []string, root *hir.Root, scope *Scope, body *hir.Body) {
	if body == nil {
		return
	}
	for _, stmt := range body.Stmts {
		r.resolveStmt(modPath, root, scope, stmt)
	}
}

func (r *Resolver) resolveStmt(modPath []string, root *hir.Root, scope *Scope, s *hir.Stmt) {
	switch s.Kind {
	case hir.StmtExpression:
		r.resolveExpr(modPath, root, scope, s.Expr)
	case hir.StmtAssign:
		a := s.Assign
		if a == nil {
			return
		}
		switch a.TargetKind {
		case hir.AssignIdentifier:
			r.resolveExpr(modPath, root, scope, a.Value)
			if a.IsLet {
				scope.Define(a.Name, a.NameNodeID)
			} else if !scope.Redefine(a.Name, a.NameNodeID) {
				r.bag.Add(diagErr(diag.UnknownIdentifier, s.Span, "assignment to undeclared name: "+a.Name))
			}
		case hir.AssignIndice, hir.AssignDot:
			r.resolveExpr(modPath, root, scope, a.Target)
			r.resolveExpr(modPath, root, scope, a.Value)
		}
	case hir.StmtIfChain:
		ic := s.IfChain
		if ic == nil {
			return
		}
		for _, arm := range ic.Arms {
			r.resolveExpr(modPath, root, scope, arm.Cond)
			r.resolveBody(modPath, root, NewScope(scope), arm.Body)
		}
		if ic.Else != nil {
			r.resolveBody(modPath, root, NewScope(scope), ic.Else)
		}
	case hir.StmtFor:
		f := s.For
		if f == nil {
			return
		}
		r.resolveExpr(modPath, root, scope, f.Iter)
		bodyScope := NewScope(scope)
		bodyScope.Define(f.Binding, f.BindingNodeID)
		r.resolveBody(modPath, root, bodyScope, f.Body)
	}
}

func (r *Resolver) resolveExpr(modPath []string, root *hir.Root, scope *Scope, e *hir.Expr) {
	if e == nil {
		return
	}
	switch e.Kind {
	case hir.ExprIdentifier:
		r.resolveIdentifier(modPath, root, scope, e)
	case hir.ExprCall:
		r.resolveExpr(modPath, root, scope, e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(modPath, root, scope, a)
		}
	case hir.ExprStructCtor:
		for _, f := range e.Fields {
			r.resolveExpr(modPath, root, scope, f.Value)
		}
	case hir.ExprIndice:
		r.resolveExpr(modPath, root, scope, e.Base)
		r.resolveExpr(modPath, root, scope, e.Index)
	case hir.ExprDot:
		r.resolveExpr(modPath, root, scope, e.Base)
	case hir.ExprReturn:
		r.resolveExpr(modPath, root, scope, e.Inner)
	case hir.ExprLit:
		if e.Lit != nil {
			for _, el := range e.Lit.Array {
				r.resolveExpr(modPath, root, scope, el)
			}
		}
	}
}

// resolveIdentifier resolves a single- or multi-segment identifier path.
// A single segment resolves through the lexical scope stack; a path with a
// leading module qualifier (including `super`) resolves against the
// target module's root scope instead, the same way an explicit `use` does.
func (r *Resolver) resolveIdentifier(modPath []string, root *hir.Root, scope *Scope, e *hir.Expr) {
	if len(e.Path) == 0 {
		return
	}
	if len(e.Path) == 1 {
		if _, isBuiltin := hir.BuiltinOperators[e.Path[0]]; isBuiltin {
			return // native operator call; internal/infer resolves this, not us.
		}
		if _, isUnary := hir.BuiltinUnaryOperators[e.Path[0]]; isUnary {
			return
		}
	}
	if len(e.Path) == 1 {
		id, ok := scope.Lookup(e.Path[0])
		if !ok {
			r.bag.Add(diagErr(diag.UnknownIdentifier, e.Span, "unknown identifier: "+e.Path[0]))
			return
		}
		root.Resolutions[e.NodeID] = id
		return
	}
	targetKey := modKey(resolveModulePath(modPath, e.Path[:len(e.Path)-1]))
	target, ok := r.moduleScopes[targetKey]
	if !ok {
		r.bag.Add(diagErr(diag.ModuleNotFound, e.Span, "module not found: "+targetKey))
		return
	}
	name := e.Path[len(e.Path)-1]
	id, ok := target.Names[name]
	if !ok {
		r.bag.Add(diagErr(diag.UnknownIdentifier, e.Span, "unknown identifier: "+name))
		return
	}
	root.Resolutions[e.NodeID] = id
}
