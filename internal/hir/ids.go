// Package hir defines Rock's High-level Intermediate Representation and the
// lowering pass that builds it from a parsed ast.Builder.
package hir

// NodeID is the process-unique identifier shared by every HIR node. It is
// allocated from the same counter ast.Builder uses for AST nodes, so a
// lowered HIR node's NodeID is never mistaken for a raw AST NodeID once
// lowering has run — lowering always mints a fresh one rather than reusing
// the AST node's id.
type NodeID uint32

// NoNodeID marks the absence of a node.
const NoNodeID NodeID = 0

// IsValid reports whether id refers to an allocated node.
func (id NodeID) IsValid() bool { return id != NoNodeID }

// FnBodyID identifies a function body stored in Root.Bodies.
type FnBodyID uint32

// NoFnBodyID marks the absence of a body.
const NoFnBodyID FnBodyID = 0

// IsValid reports whether id refers to an allocated body.
func (id FnBodyID) IsValid() bool { return id != NoFnBodyID }
