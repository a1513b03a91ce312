// Package mono implements spec.md §4.4's monomorphization pass: it walks
// internal/infer's env table and produces one concrete HIR function per
// (declaration, call-site signature) pair actually reached from main,
// flattened into a single hir.Root ready for a back end. Grounded on the
// teacher's internal/mono (monomorphize.go's ensureFunc/seed driver,
// clone.go's structural copy, rewrite_calls.go's call-site rewiring),
// simplified because Rock's TypeID is already a small comparable integer —
// the teacher's ArgsKey string-flattening exists only to key a map on a
// []types.TypeID slice, which Go can't do directly, and has no equivalent
// need here since infer.Key embeds a single already-interned signature
// TypeID instead of a raw slice of type arguments.
package mono

import (
	"fmt"

	"rock/internal/ast"
	"rock/internal/hir"
	"rock/internal/infer"
	"rock/internal/source"
	"rock/internal/types"
)

// Key identifies one monomorphized instantiation; it is exactly
// internal/infer's (function, concrete signature) pair, since infer has
// already done the work of pairing a declaration with the one signature it
// was solved against.
type Key = infer.Key

type env = infer.Env

// Func is one instantiation's monomorphized function: a fresh NodeID
// identity, a name disambiguated from the original declaration's other
// instantiations, and the fully solved signature infer.Engine computed for
// it.
type Func struct {
	Key       Key
	NodeID    hir.NodeID
	Name      string
	OrigName  string
	BodyID    hir.FnBodyID
	Signature types.TypeID
}

// Program is the flattened output of monomorphization: a single Root
// containing only the functions actually reachable from main, each
// appearing once per concrete signature it was called with, in first-
// discovery order (Funcs mirrors Root.TopLevels' function entries, kept
// alongside for callers that want the Key/Signature metadata without
// re-deriving it from HIR, e.g. cmd/rockc's --emit-mono encoder).
type Program struct {
	Root  *hir.Root
	Funcs []*Func
}

// builder carries the state threaded through one monomorphization run.
// It mirrors the teacher's monoBuilder: seed/ensureFunc memoize-before-
// recurse exactly like internal/infer's own Engine.visit does, so direct
// and mutually recursive functions each clone exactly once.
type builder struct {
	table *infer.Table
	idx   *index
	b     *ast.Builder
	in    *types.Interner

	out     *hir.Root
	clones  map[Key]*Func
	order   []Key
	counter map[hir.NodeID]int
	err     error
}

func (bd *builder) mint(span source.Span) hir.NodeID {
	return hir.NodeID(bd.b.NewNodeID(span))
}

// Run monomorphizes every (function, signature) instantiation table
// recorded, relative to the roots and builder/interner internal/infer was
// given. It fails if any recorded instantiation never finished solving
// (env.ok == false) or still carries an unresolved type variable in its
// signature — by construction internal/infer should never hand mono such a
// Table, so this reports a driver-level wiring bug rather than a user
// diagnostic, matching spec.md §4.4's "monomorphization assumes a fully
// solved program and is not expected to diagnose".
func Run(table *infer.Table, roots map[string]*hir.Root, b *ast.Builder, in *types.Interner) (*Program, error) {
	if len(table.Order()) == 0 {
		return nil, fmt.Errorf("mono: inference table is empty, nothing reachable from main")
	}
	bd := &builder{
		table:   table,
		idx:     buildIndex(roots),
		b:       b,
		in:      in,
		out:     hir.NewRoot(),
		clones:  make(map[Key]*Func),
		counter: make(map[hir.NodeID]int),
	}
	seenExterns := make(map[hir.NodeID]bool)
	for _, root := range roots {
		for name, decl := range root.Structs {
			bd.out.Structs[name] = decl
		}
		for name, decl := range root.Traits {
			bd.out.Traits[name] = decl
		}
		for _, tl := range root.TopLevels {
			if tl.Kind == hir.TopExtern && !seenExterns[tl.Extern.NodeID] {
				seenExterns[tl.Extern.NodeID] = true
				bd.out.TopLevels = append(bd.out.TopLevels, &hir.TopLevel{Kind: hir.TopExtern, Extern: tl.Extern})
			}
		}
	}

	for _, key := range table.Order() {
		if _, err := bd.ensureClone(key); err != nil {
			return nil, err
		}
		if bd.err != nil {
			return nil, bd.err
		}
	}

	prog := &Program{Root: bd.out}
	for _, key := range bd.order {
		prog.Funcs = append(prog.Funcs, bd.clones[key])
	}
	if err := validate(bd.in, prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// ensureClone returns the clone for key, cloning its body on first request.
// It registers the clone's identity in bd.clones before touching the body
// so a recursive call back to the same key (direct or mutual recursion)
// resolves to the same NodeID instead of recursing forever.
func (bd *builder) ensureClone(key Key) (*Func, error) {
	if f, ok := bd.clones[key]; ok {
		return f, nil
	}
	environment, ok := bd.table.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("mono: instantiation %+v was never solved by inference", key)
	}
	if !environment.Ok() {
		return nil, fmt.Errorf("mono: instantiation %+v has an unresolved type error and cannot be monomorphized", key)
	}
	decl := bd.idx.fnByID[key.FnID]
	if decl == nil {
		return nil, fmt.Errorf("mono: no function declaration for NodeID %d", key.FnID)
	}
	if !types.IsSolved(bd.in, environment.Signature) {
		return nil, fmt.Errorf("mono: %q's solved signature still contains an unresolved type variable", decl.Name)
	}

	n := bd.counter[key.FnID]
	bd.counter[key.FnID]++
	name := decl.Name
	if decl.Name != "main" {
		name = fmt.Sprintf("%s$%d", decl.Name, n)
	}

	newFnID := bd.mint(decl.Span)
	bodyID := bd.out.NewBodyID()
	f := &Func{Key: key, NodeID: newFnID, Name: name, OrigName: decl.Name, BodyID: bodyID, Signature: environment.Signature}
	bd.clones[key] = f
	bd.order = append(bd.order, key)

	localMap := make(map[hir.NodeID]hir.NodeID)
	newArgs := make([]hir.ArgumentDecl, len(decl.Arguments))
	for i, arg := range decl.Arguments {
		newArgID := bd.mint(arg.Span)
		localMap[arg.NodeID] = newArgID
		newArgs[i] = hir.ArgumentDecl{Name: arg.Name, NodeID: newArgID, Span: arg.Span}
		if t, ok := environment.NodeTypes[arg.NodeID]; ok {
			bd.out.NodeTypes[newArgID] = t
		}
	}

	origRoot := bd.idx.fnRootOf[key.FnID]
	newBody := &hir.Body{}
	if fb := origRoot.Bodies[decl.BodyID]; fb != nil && fb.Body != nil {
		cloned := cloneBody(fb.Body)
		assignBindingIDs(func() hir.NodeID { return bd.mint(decl.Span) }, cloned, localMap)
		rw := &rewriter{bd: bd, env: environment, origRoot: origRoot, localMap: localMap}
		hir.MutateBody(rw, cloned)
		if bd.err != nil {
			return nil, bd.err
		}
		newBody = cloned
	}

	bd.out.Bodies[bodyID] = &hir.FnBody{ID: bodyID, FnID: newFnID, Name: name, Body: newBody}
	newDecl := &hir.FunctionDecl{
		Name:      name,
		NodeID:    newFnID,
		Span:      decl.Span,
		Arguments: newArgs,
		BodyID:    bodyID,
		Signature: environment.Signature,
	}
	if decl.Name != "main" {
		newDecl.MangledName = name
	}
	bd.out.TopLevels = append(bd.out.TopLevels, &hir.TopLevel{Kind: hir.TopFunction, Function: newDecl})
	return f, nil
}

// validate checks spec.md §4.4's exit invariant: every type recorded in the
// monomorphized Root is fully solved, with no ForAll or Undefined left
// reachable from it.
func validate(in *types.Interner, prog *Program) error {
	for id, t := range prog.Root.NodeTypes {
		if !types.IsSolved(in, t) {
			return fmt.Errorf("mono: node %d has an unsolved type after monomorphization", id)
		}
	}
	return nil
}
