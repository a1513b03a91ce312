package infer

import (
	"fmt"

	"rock/internal/diag"
	"rock/internal/hir"
	"rock/internal/types"
)

func (e *Engine) inferExpr(root *hir.Root, env *Env, ex *hir.Expr) (types.TypeID, bool) {
	if ex == nil {
		return e.in.Builtins().Void, true
	}
	switch ex.Kind {
	case hir.ExprLit:
		return e.inferLiteral(root, env, ex)
	case hir.ExprIdentifier:
		return e.inferIdentifier(root, env, ex)
	case hir.ExprCall:
		return e.inferCall(root, env, ex)
	case hir.ExprStructCtor:
		return e.inferStructCtor(root, env, ex)
	case hir.ExprIndice:
		return e.inferIndice(root, env, ex)
	case hir.ExprDot:
		return e.inferDot(root, env, ex)
	case hir.ExprReturn:
		t, ok := e.inferExpr(root, env, ex.Inner)
		if !ok {
			return types.NoTypeID, false
		}
		if ex.Inner == nil {
			t = e.in.Builtins().Void
		}
		env.NodeTypes[ex.NodeID] = t
		return t, true
	default:
		return types.NoTypeID, false
	}
}

func (e *Engine) inferLiteral(root *hir.Root, env *Env, ex *hir.Expr) (types.TypeID, bool) {
	b := e.in.Builtins()
	var t types.TypeID
	switch ex.Lit.Kind {
	case hir.LitNumber:
		t = b.Int64
	case hir.LitFloat:
		t = b.Float64
	case hir.LitBool:
		t = b.Bool
	case hir.LitString:
		t = b.String
	case hir.LitChar:
		t = b.Char
	case hir.LitArray:
		if len(ex.Lit.Array) == 0 {
			t = e.in.Intern(types.MakeArray(e.in.NewUndefined(), 0))
			break
		}
		first, ok := e.inferExpr(root, env, ex.Lit.Array[0])
		if !ok {
			return types.NoTypeID, false
		}
		for _, el := range ex.Lit.Array[1:] {
			et, ok := e.inferExpr(root, env, el)
			if !ok {
				return types.NoTypeID, false
			}
			u, ok := unify(e.in, first, et)
			if !ok {
				e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, ex.Span, "array literal elements do not all share one type")))
				return types.NoTypeID, false
			}
			first = u
		}
		t = e.in.Intern(types.MakeArray(first, uint64(len(ex.Lit.Array))))
	default:
		t = types.NoTypeID
	}
	env.NodeTypes[ex.NodeID] = t
	return t, true
}

func (e *Engine) inferIdentifier(root *hir.Root, env *Env, ex *hir.Expr) (types.TypeID, bool) {
	target, ok := root.Resolutions[ex.NodeID]
	if !ok {
		// Already reported by internal/resolve; propagate Undefined so the
		// enclosing expression can still be typed without cascading noise.
		t := e.in.NewUndefined()
		env.NodeTypes[ex.NodeID] = t
		return t, true
	}
	t, ok := env.NodeTypes[target]
	if !ok {
		t = e.in.NewUndefined()
	}
	env.NodeTypes[ex.NodeID] = t
	return t, true
}

func (e *Engine) inferCall(root *hir.Root, env *Env, ex *hir.Expr) (types.TypeID, bool) {
	if ex.Callee.Kind == hir.ExprIdentifier && len(ex.Callee.Path) == 1 {
		name := ex.Callee.Path[0]
		if fam, isOp := hir.BuiltinOperators[name]; isOp {
			return e.inferNativeBinary(root, env, ex, fam)
		}
		if kind, isUnary := hir.BuiltinUnaryOperators[name]; isUnary {
			return e.inferNativeUnary(root, env, ex, kind)
		}
	}
	targetID, ok := root.Resolutions[ex.Callee.NodeID]
	if !ok {
		t := e.in.NewUndefined()
		env.NodeTypes[ex.NodeID] = t
		return t, true
	}
	argTypes := make([]types.TypeID, len(ex.Args))
	for i, a := range ex.Args {
		t, ok := e.inferExpr(root, env, a)
		if !ok {
			return types.NoTypeID, false
		}
		argTypes[i] = t
	}

	if trait, isTrait := e.traitByID[targetID]; isTrait {
		chosen := e.dispatchTrait(trait, ex.Callee.Path[len(ex.Callee.Path)-1], argTypes)
		if chosen == nil {
			e.bag.Add(diagPtr(diag.NewError(diag.UnresolvedTraitCall, ex.Span,
				fmt.Sprintf("no implementation of %q matches the argument types", ex.Callee.Path[len(ex.Callee.Path)-1]))))
			t := e.in.NewUndefined()
			env.NodeTypes[ex.NodeID] = t
			return t, true
		}
		root.Resolutions[ex.Callee.NodeID] = chosen.NodeID
		targetID = chosen.NodeID
	}

	if proto := e.protoByID[targetID]; proto != nil {
		e.ensurePrototypeSignature(proto)
		info, _ := e.in.FnInfo(proto.Signature)
		for i, p := range info.Params {
			if i < len(argTypes) {
				if _, ok := unify(e.in, p, argTypes[i]); !ok {
					e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, ex.Span, "argument type mismatch in extern call")))
					return types.NoTypeID, false
				}
			}
		}
		env.NodeTypes[ex.NodeID] = info.Result
		return info.Result, true
	}

	calleeDecl := e.fnByID[targetID]
	if calleeDecl == nil {
		t := e.in.NewUndefined()
		env.NodeTypes[ex.NodeID] = t
		return t, true
	}
	e.ensureSignature(calleeDecl)
	sigPrime, ok := instantiate(e.in, calleeDecl.Signature, argTypes)
	if !ok {
		e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, ex.Span,
			fmt.Sprintf("call to %q: argument types do not match its signature", calleeDecl.Name))))
		return types.NoTypeID, false
	}
	calleeKey := Key{FnID: targetID, Sig: sigPrime}
	env.CallTargets[ex.NodeID] = calleeKey
	calleeEnv := e.visit(calleeKey)
	result := types.NoTypeID
	if calleeEnv != nil && calleeEnv.Signature != types.NoTypeID {
		if info, ok := e.in.FnInfo(calleeEnv.Signature); ok {
			result = info.Result
		}
	}
	if result == types.NoTypeID {
		if info, ok := e.in.FnInfo(sigPrime); ok {
			result = info.Result
		}
	}
	env.NodeTypes[ex.NodeID] = result
	return result, true
}

// dispatchTrait picks the first impl whose receiver (first argument) type
// matches the call's observed first argument type, per spec.md §4.3's
// first-match trait call rule.
func (e *Engine) dispatchTrait(trait *hir.TraitDecl, method string, argTypes []types.TypeID) *hir.FunctionDecl {
	if len(argTypes) == 0 {
		return nil
	}
	for _, impl := range e.traitMethodsGlobal[method] {
		if len(impl.Arguments) == 0 {
			continue
		}
		e.ensureSignature(impl)
		info, ok := e.in.FnInfo(impl.Signature)
		if !ok || len(info.Params) == 0 {
			continue
		}
		if _, ok := unify(e.in, info.Params[0], argTypes[0]); ok {
			return impl
		}
	}
	return nil
}

func isComparison(k hir.NativeOperatorKind) bool {
	switch k {
	case hir.IEq, hir.Igt, hir.Ige, hir.Ilt, hir.Ile, hir.FEq, hir.Fgt, hir.Fge, hir.Flt, hir.Fle, hir.BEq:
		return true
	default:
		return false
	}
}

func (e *Engine) inferNativeBinary(root *hir.Root, env *Env, call *hir.Expr, fam hir.OperatorFamily) (types.TypeID, bool) {
	if len(call.Args) != 2 {
		e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, call.Span, "operator requires exactly two operands")))
		return types.NoTypeID, false
	}
	lt, ok := e.inferExpr(root, env, call.Args[0])
	if !ok {
		return types.NoTypeID, false
	}
	rt, ok := e.inferExpr(root, env, call.Args[1])
	if !ok {
		return types.NoTypeID, false
	}
	b := e.in.Builtins()
	var kind hir.NativeOperatorKind
	var result types.TypeID
	switch {
	case lt == b.Int64 && rt == b.Int64 && fam.Int != hir.NativeOperatorInvalid:
		kind = fam.Int
		result = b.Int64
		if isComparison(kind) {
			result = b.Bool
		}
	case lt == b.Float64 && rt == b.Float64 && fam.Float != hir.NativeOperatorInvalid:
		kind = fam.Float
		result = b.Float64
		if isComparison(kind) {
			result = b.Bool
		}
	case lt == b.Bool && rt == b.Bool && fam.Bool != hir.NativeOperatorInvalid:
		kind = fam.Bool
		result = b.Bool
	default:
		e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, call.Span, "operator not defined for these operand types")))
		return types.NoTypeID, false
	}
	root.NativeOps[call.NodeID] = kind
	env.NodeTypes[call.NodeID] = result
	return result, true
}

func (e *Engine) inferNativeUnary(root *hir.Root, env *Env, call *hir.Expr, kind hir.NativeOperatorKind) (types.TypeID, bool) {
	if len(call.Args) != 1 {
		e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, call.Span, "operator requires exactly one operand")))
		return types.NoTypeID, false
	}
	argType, ok := e.inferExpr(root, env, call.Args[0])
	if !ok {
		return types.NoTypeID, false
	}
	if kind != hir.Len {
		return types.NoTypeID, false
	}
	at, ok := e.in.Lookup(argType)
	if !ok || at.Kind != types.KindArray {
		e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, call.Span, "len() requires an array operand")))
		return types.NoTypeID, false
	}
	root.NativeOps[call.NodeID] = hir.Len
	env.NodeTypes[call.NodeID] = e.in.Builtins().Int64
	return e.in.Builtins().Int64, true
}

func (e *Engine) inferStructCtor(root *hir.Root, env *Env, ex *hir.Expr) (types.TypeID, bool) {
	decl, ok := e.structByName[ex.StructName]
	if !ok {
		e.bag.Add(diagPtr(diag.NewError(diag.UnresolvedType, ex.Span, fmt.Sprintf("unknown struct %q", ex.StructName))))
		return types.NoTypeID, false
	}
	structType := e.structTypeOf[ex.StructName]
	if len(ex.Fields) != len(decl.Fields) {
		e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, ex.Span,
			fmt.Sprintf("struct %q requires every field to be supplied", ex.StructName))))
		return types.NoTypeID, false
	}
	for _, f := range ex.Fields {
		vt, ok := e.inferExpr(root, env, f.Value)
		if !ok {
			return types.NoTypeID, false
		}
		declared, ok := e.in.FieldType(structType, f.Name)
		if !ok {
			e.bag.Add(diagPtr(diag.NewError(diag.UnresolvedType, ex.Span, fmt.Sprintf("struct %q has no field %q", ex.StructName, f.Name))))
			return types.NoTypeID, false
		}
		if _, ok := unify(e.in, declared, vt); !ok {
			e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, ex.Span, fmt.Sprintf("field %q has the wrong type", f.Name))))
			return types.NoTypeID, false
		}
	}
	env.NodeTypes[ex.NodeID] = structType
	return structType, true
}

func (e *Engine) inferIndice(root *hir.Root, env *Env, ex *hir.Expr) (types.TypeID, bool) {
	baseType, ok := e.inferExpr(root, env, ex.Base)
	if !ok {
		return types.NoTypeID, false
	}
	idxType, ok := e.inferExpr(root, env, ex.Index)
	if !ok {
		return types.NoTypeID, false
	}
	if _, ok := unify(e.in, idxType, e.in.Builtins().Int64); !ok {
		e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, ex.Span, "index expression must be Int64")))
		return types.NoTypeID, false
	}
	bt, ok := e.in.Lookup(baseType)
	var result types.TypeID
	switch {
	case ok && bt.Kind == types.KindArray:
		result = bt.Elem
	case baseType == e.in.Builtins().String:
		result = e.in.Builtins().Int8
	default:
		e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, ex.Span, "indexing requires an array or string operand")))
		return types.NoTypeID, false
	}
	env.NodeTypes[ex.NodeID] = result
	return result, true
}

func (e *Engine) inferDot(root *hir.Root, env *Env, ex *hir.Expr) (types.TypeID, bool) {
	baseType, ok := e.inferExpr(root, env, ex.Base)
	if !ok {
		return types.NoTypeID, false
	}
	bt, ok := e.in.Lookup(baseType)
	if !ok || bt.Kind != types.KindStruct {
		e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, ex.Span, "field access requires a struct operand")))
		return types.NoTypeID, false
	}
	fieldType, ok := e.in.FieldType(baseType, ex.FieldName)
	if !ok {
		e.bag.Add(diagPtr(diag.NewError(diag.UnresolvedType, ex.Span, fmt.Sprintf("no field %q on this struct", ex.FieldName))))
		return types.NoTypeID, false
	}
	env.NodeTypes[ex.NodeID] = fieldType
	return fieldType, true
}
