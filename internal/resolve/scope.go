// Package resolve implements Rock's name resolution pass: per-module
// two-pass scope-stack resolution over a lowered hir.Root, filling in
// Root.Resolutions and reporting unresolved names.
package resolve

import "rock/internal/hir"

// Scope is one lexical scope: a name-to-NodeID map with a parent link.
// `let` introduces a fresh binding in the current scope (shadowing any
// binding of the same name visible through Parent); a bare reassignment
// resolves through the chain first, then re-adds the binding in the scope
// that already held it.
type Scope struct {
	Parent *Scope
	Names  map[string]hir.NodeID
}

// NewScope creates a child scope of parent (nil for a module's root scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, Names: make(map[string]hir.NodeID)}
}

// Define binds name to id in this scope, shadowing any outer binding.
func (s *Scope) Define(name string, id hir.NodeID) {
	s.Names[name] = id
}

// Lookup searches this scope and its ancestors, innermost first.
func (s *Scope) Lookup(name string) (hir.NodeID, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if id, ok := sc.Names[name]; ok {
			return id, true
		}
	}
	return hir.NoNodeID, false
}

// Redefine finds the scope in the chain that currently binds name and
// updates the binding there, without introducing a fresh scope-local entry
// (spec.md's "bare x = e resolves existing + re-adds binding"). Reports
// whether an existing binding was found.
func (s *Scope) Redefine(name string, id hir.NodeID) bool {
	for sc := s; sc != nil; sc = sc.Parent {
		if _, ok := sc.Names[name]; ok {
			sc.Names[name] = id
			return true
		}
	}
	return false
}
