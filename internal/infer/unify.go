package infer

import "rock/internal/types"

// unify checks a and b for structural compatibility, resolving ForAll and
// Undefined placeholders to whichever concrete side is offered. It never
// mutates the interner's substitution state outside of what Intern/RegisterFn
// already memoize — spec.md's inference never needs to revisit a unification
// result once a call site is instantiated, so no persistent substitution map
// is threaded through callers.
func unify(in *types.Interner, a, b types.TypeID) (types.TypeID, bool) {
	if a == b {
		return a, true
	}
	ta, oka := in.Lookup(a)
	tb, okb := in.Lookup(b)
	if !oka || !okb {
		return types.NoTypeID, false
	}
	if ta.Kind == types.KindForAll || ta.Kind == types.KindUndefined {
		return b, true
	}
	if tb.Kind == types.KindForAll || tb.Kind == types.KindUndefined {
		return a, true
	}
	if ta.Kind != tb.Kind {
		return types.NoTypeID, false
	}
	switch ta.Kind {
	case types.KindArray:
		if ta.Len != tb.Len {
			return types.NoTypeID, false
		}
		elem, ok := unify(in, ta.Elem, tb.Elem)
		if !ok {
			return types.NoTypeID, false
		}
		return in.Intern(types.MakeArray(elem, ta.Len)), true
	case types.KindFunc:
		ia, ok1 := in.FnInfo(a)
		ib, ok2 := in.FnInfo(b)
		if !ok1 || !ok2 || len(ia.Params) != len(ib.Params) {
			return types.NoTypeID, false
		}
		params := make([]types.TypeID, len(ia.Params))
		for i := range ia.Params {
			p, ok := unify(in, ia.Params[i], ib.Params[i])
			if !ok {
				return types.NoTypeID, false
			}
			params[i] = p
		}
		result, ok := unify(in, ia.Result, ib.Result)
		if !ok {
			return types.NoTypeID, false
		}
		return in.RegisterFn(params, result), true
	default:
		// Same Kind but different TypeID for Struct/Trait/primitive means
		// distinct nominal identities — not unifiable.
		return types.NoTypeID, false
	}
}

// instantiate partially applies a possibly-polymorphic signature's ForAll
// parameters to the argument types observed at a call site, producing a
// concrete Key.Sig per spec.md §4.3 step 4. Two ForAll parameters sharing a
// source name must agree on the same concrete type; a return type written
// with that same name rides along for free.
func instantiate(in *types.Interner, sig types.TypeID, argTypes []types.TypeID) (types.TypeID, bool) {
	info, ok := in.FnInfo(sig)
	if !ok || len(info.Params) != len(argTypes) {
		return types.NoTypeID, false
	}
	sub := make(map[string]types.TypeID)
	solvedParams := make([]types.TypeID, len(info.Params))
	for i, p := range info.Params {
		pt, ok := in.Lookup(p)
		if ok && pt.Kind == types.KindForAll {
			if existing, has := sub[pt.Name]; has {
				u, ok := unify(in, existing, argTypes[i])
				if !ok {
					return types.NoTypeID, false
				}
				sub[pt.Name] = u
				solvedParams[i] = u
			} else {
				sub[pt.Name] = argTypes[i]
				solvedParams[i] = argTypes[i]
			}
			continue
		}
		if _, ok := unify(in, p, argTypes[i]); !ok {
			return types.NoTypeID, false
		}
		solvedParams[i] = p
	}
	result := info.Result
	if rt, ok := in.Lookup(info.Result); ok && rt.Kind == types.KindForAll {
		if solved, has := sub[rt.Name]; has {
			result = solved
		}
	}
	return in.RegisterFn(solvedParams, result), true
}
