// Package infer implements Rock's type inference pass: spec.md §4.3's
// per-(function, concrete signature) environment model, fed by the
// resolutions internal/resolve produced and consumed by internal/mono.
package infer

import (
	"rock/internal/hir"
	"rock/internal/types"
)

// Key identifies one instantiation of a function: its declared NodeID
// paired with the concrete FuncType signature it was called with. The same
// FunctionDecl may appear under several Keys when called polymorphically —
// internal/mono clones one HIR body per Key.
type Key struct {
	FnID hir.NodeID
	Sig  types.TypeID
}

// Env holds the types solved for one instantiation: every node reached
// while walking that instantiation's body, keyed by its original
// (pre-monomorphization) NodeID. Signature is the fully solved FuncType for
// this instantiation, which may differ from Sig when the declared
// signature left its result type unpinned (no return annotation, and no
// parameter ForAll to carry it) — Signature is filled in once the body's
// trailing return type is known.
type Env struct {
	NodeTypes map[hir.NodeID]types.TypeID
	Signature types.TypeID
	ok        bool // false if a TypeConflict halted this instantiation's body walk

	// CallTargets maps an ExprCall's NodeID to the Key it resolved to for
	// this instantiation — internal/mono reads this to rewrite each cloned
	// call site onto the matching clone, instead of re-deriving the callee's
	// concrete signature from scratch.
	CallTargets map[hir.NodeID]Key
}

// Ok reports whether this instantiation's body finished solving without a
// halting TypeConflict — internal/mono refuses to clone an instantiation
// that didn't.
func (e *Env) Ok() bool { return e.ok }

// Table is the env_table from spec.md §4.3: one Env per visited Key,
// remembered in first-visit order so internal/mono's clone NodeIDs come out
// deterministic across runs.
type Table struct {
	envs  map[Key]*Env
	order []Key
}

func newTable() *Table {
	return &Table{envs: make(map[Key]*Env)}
}

// Lookup returns the Env recorded for key, if the engine ever visited it.
func (t *Table) Lookup(key Key) (*Env, bool) {
	e, ok := t.envs[key]
	return e, ok
}

// Order returns every visited Key in first-visit order.
func (t *Table) Order() []Key {
	return t.order
}

func (t *Table) insert(key Key, env *Env) {
	if _, exists := t.envs[key]; exists {
		return
	}
	t.envs[key] = env
	t.order = append(t.order, key)
}
