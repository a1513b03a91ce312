package infer

import (
	"fmt"

	"rock/internal/ast"
	"rock/internal/diag"
	"rock/internal/hir"
	"rock/internal/source"
	"rock/internal/types"
)

// Engine runs spec.md §4.3's inference algorithm over every module produced
// by hir.Lower and resolved by internal/resolve.
type Engine struct {
	roots map[string]*hir.Root
	in    *types.Interner
	b     *ast.Builder
	bag   *diag.Bag
	table *Table

	fnByID      map[hir.NodeID]*hir.FunctionDecl
	fnRootOf    map[hir.NodeID]*hir.Root
	protoByID   map[hir.NodeID]*hir.Prototype
	protoRootOf map[hir.NodeID]*hir.Root
	traitByID   map[hir.NodeID]*hir.TraitDecl

	structByName       map[string]*hir.StructDecl
	structTypeOf       map[string]types.TypeID
	traitMethodsGlobal map[string][]*hir.FunctionDecl

	anon int
}

// Run infers every type reachable from main, returning the populated env
// table and the diagnostics accumulated along the way. roots and b must be
// the same values hir.Lower and internal/resolve were given/produced.
func Run(roots map[string]*hir.Root, b *ast.Builder, in *types.Interner) (*Table, *diag.Bag) {
	e := &Engine{
		roots:              roots,
		in:                 in,
		b:                  b,
		bag:                diag.NewBag(4096),
		table:              newTable(),
		fnByID:             make(map[hir.NodeID]*hir.FunctionDecl),
		fnRootOf:           make(map[hir.NodeID]*hir.Root),
		protoByID:          make(map[hir.NodeID]*hir.Prototype),
		protoRootOf:        make(map[hir.NodeID]*hir.Root),
		traitByID:          make(map[hir.NodeID]*hir.TraitDecl),
		structByName:       make(map[string]*hir.StructDecl),
		structTypeOf:       make(map[string]types.TypeID),
		traitMethodsGlobal: make(map[string][]*hir.FunctionDecl),
	}
	e.prepare()

	main := e.findMain()
	if main == nil {
		e.bag.Add(diagPtr(diag.NewError(diag.NoMain, source.Span{}, "no function named main with zero arguments was found")))
		return e.table, e.bag
	}
	sig0 := e.in.RegisterFn(nil, e.in.Builtins().Int64)
	e.visit(Key{FnID: main.NodeID, Sig: sig0})
	return e.table, e.bag
}

func (e *Engine) findMain() *hir.FunctionDecl {
	for _, root := range e.roots {
		for _, tl := range root.TopLevels {
			if tl.Kind == hir.TopFunction && tl.Function.Name == "main" && tl.Function.MangledName == "" && len(tl.Function.Arguments) == 0 {
				return tl.Function
			}
		}
	}
	return nil
}

// visit solves one (fn, concrete signature) instantiation, memoizing into
// e.table before walking the body so direct and indirect recursion
// terminate (spec.md §4.3's "second visit to the same key is a no-op").
func (e *Engine) visit(key Key) *Env {
	if env, ok := e.table.Lookup(key); ok {
		return env
	}
	decl := e.fnByID[key.FnID]
	if decl == nil {
		return nil
	}
	root := e.fnRootOf[key.FnID]
	env := &Env{NodeTypes: make(map[hir.NodeID]types.TypeID), CallTargets: make(map[hir.NodeID]Key), ok: true}
	e.table.insert(key, env)

	info, ok := e.in.FnInfo(key.Sig)
	if !ok {
		env.ok = false
		return env
	}
	for i, arg := range decl.Arguments {
		if i < len(info.Params) {
			env.NodeTypes[arg.NodeID] = info.Params[i]
		}
	}
	fb := root.Bodies[decl.BodyID]
	if fb == nil || fb.Body == nil {
		env.Signature = key.Sig
		return env
	}
	bodyType, halted := e.inferBody(root, env, fb.Body)
	if !halted {
		env.ok = false
	}
	result := info.Result
	rt, rtOK := e.in.Lookup(info.Result)
	unpinned := info.Result == types.NoTypeID || (rtOK && rt.Kind == types.KindForAll)
	if unpinned && bodyType != types.NoTypeID {
		result = bodyType
	} else if bodyType != types.NoTypeID {
		if _, ok := unify(e.in, info.Result, bodyType); !ok {
			e.bag.Add(diagPtr(diag.NewError(diag.TypeConflict, decl.Span,
				fmt.Sprintf("function %q: declared return type does not match returned value", decl.Name))))
			env.ok = false
		}
	}
	env.Signature = e.in.RegisterFn(info.Params, result)
	return env
}

func (e *Engine) inferBody(root *hir.Root, env *Env, body *hir.Body) (types.TypeID, bool) {
	last := types.NoTypeID
	for _, stmt := range body.Stmts {
		t, ok := e.inferStmt(root, env, stmt)
		if !ok {
			return types.NoTypeID, false
		}
		last = t
	}
	return last, true
}

func diagPtr(d diag.Diagnostic) *diag.Diagnostic { return &d }
