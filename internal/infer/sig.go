package infer

import (
	"fmt"

	"rock/internal/ast"
	"rock/internal/hir"
	"rock/internal/types"
)

// resolveTypeExpr converts a syntactic ast.TypeExprID into an interned
// TypeID, minting a fresh ForAll for an absent annotation and sharing one
// ForAll per distinct lowercase type-variable name within forall — the same
// table is reused across a whole function signature so `fn id(x: a) -> a`
// ties the parameter and the result to one variable.
func (e *Engine) resolveTypeExpr(id ast.TypeExprID, forall map[string]types.TypeID) types.TypeID {
	if !id.IsValid() {
		e.anon++
		return e.in.NewForAll(fmt.Sprintf("$%d", e.anon))
	}
	te := e.b.TypeExpr(id)
	if te == nil {
		e.anon++
		return e.in.NewForAll(fmt.Sprintf("$%d", e.anon))
	}
	switch te.Kind {
	case ast.TypeExprName:
		if pid, ok := primitiveByName(e.in, te.Name); ok {
			return pid
		}
		if sid, ok := e.in.LookupStruct(te.Name); ok {
			return sid
		}
		if v, ok := forall[te.Name]; ok {
			return v
		}
		v := e.in.NewForAll(te.Name)
		forall[te.Name] = v
		return v
	case ast.TypeExprArray:
		elem := e.resolveTypeExpr(te.Elem, forall)
		return e.in.Intern(types.MakeArray(elem, te.Len))
	case ast.TypeExprFunc:
		params := make([]types.TypeID, len(te.Params))
		for i, p := range te.Params {
			params[i] = e.resolveTypeExpr(p, forall)
		}
		ret := e.resolveTypeExpr(te.Ret, forall)
		return e.in.RegisterFn(params, ret)
	default:
		return e.in.Builtins().Void
	}
}

func primitiveByName(in *types.Interner, name string) (types.TypeID, bool) {
	b := in.Builtins()
	switch name {
	case "Void":
		return b.Void, true
	case "Bool":
		return b.Bool, true
	case "Int8":
		return b.Int8, true
	case "Int16":
		return b.Int16, true
	case "Int32":
		return b.Int32, true
	case "Int64":
		return b.Int64, true
	case "Float64":
		return b.Float64, true
	case "Char":
		return b.Char, true
	case "String":
		return b.String, true
	default:
		return types.NoTypeID, false
	}
}

// ensureSignature builds decl.Signature on first use and memoizes it onto
// the decl itself, since a FunctionDecl's declared (possibly-ForAll)
// signature is shared across every call-site instantiation.
func (e *Engine) ensureSignature(decl *hir.FunctionDecl) {
	if decl.Signature != types.NoTypeID {
		return
	}
	forall := make(map[string]types.TypeID)
	params := make([]types.TypeID, len(decl.Arguments))
	for i, arg := range decl.Arguments {
		params[i] = e.resolveTypeExpr(ast.TypeExprID(arg.TypeExpr), forall)
	}
	decl.Signature = e.in.RegisterFn(params, e.resultTypeExpr(ast.TypeExprID(decl.RetTypeExpr), forall))
}

// resultTypeExpr resolves a declared return type, or leaves it NoTypeID
// ("solve from the body") when the function wrote no `-> T` at all — unlike
// an omitted parameter type, an omitted return type is not its own ForAll
// variable, since nothing in the signature ties it to anything.
func (e *Engine) resultTypeExpr(id ast.TypeExprID, forall map[string]types.TypeID) types.TypeID {
	if !id.IsValid() {
		return types.NoTypeID
	}
	return e.resolveTypeExpr(id, forall)
}

// ensurePrototypeSignature builds an extern's signature the same way —
// spec.md describes extern signatures as arriving pre-solved from the
// driver's project config, but nothing upstream of this pass actually
// produces one, so it is built here once and cached exactly like a
// FunctionDecl's, typically with no ForAll since extern params are always
// written with an explicit type.
func (e *Engine) ensurePrototypeSignature(proto *hir.Prototype) {
	if proto.Signature != types.NoTypeID {
		return
	}
	forall := make(map[string]types.TypeID)
	params := make([]types.TypeID, len(proto.Arguments))
	for i, arg := range proto.Arguments {
		params[i] = e.resolveTypeExpr(ast.TypeExprID(arg.TypeExpr), forall)
	}
	proto.Signature = e.in.RegisterFn(params, e.resultTypeExpr(ast.TypeExprID(proto.RetTypeExpr), forall))
}
