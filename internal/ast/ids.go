package ast

// The AST assigns a stable, process-unique NodeID to every syntactic entity
// the mid-end cares about: items, statements, expressions, and the
// identifiers embedded in them. IDs are 1-based indices into the Builder's
// per-kind arenas; zero is always the "no such node" sentinel.

type (
	// FileID identifies a parsed source file.
	FileID uint32
	// ItemID identifies a top-level item (fn, trait, impl, struct, use, mod, infix).
	ItemID uint32
	// StmtID identifies a statement inside a function/if/for body.
	StmtID uint32
	// ExprID identifies an expression.
	ExprID uint32
	// TypeExprID identifies a syntactic (unresolved) type expression.
	TypeExprID uint32
	// NodeID is the generic node identifier embedded in every node that
	// name resolution and type inference key their maps on. It is distinct
	// from the per-kind IDs above: several of those may share one NodeID
	// only if one was cloned from another (monomorphization), never at
	// parse time.
	NodeID uint32
)

const (
	// NoFileID marks the absence of a file.
	NoFileID FileID = 0
	// NoItemID marks the absence of an item.
	NoItemID ItemID = 0
	// NoStmtID marks the absence of a statement.
	NoStmtID StmtID = 0
	// NoExprID marks the absence of an expression.
	NoExprID ExprID = 0
	// NoTypeExprID marks the absence of a type expression.
	NoTypeExprID TypeExprID = 0
	// NoNodeID marks the absence of a node.
	NoNodeID NodeID = 0
)

// IsValid reports whether the FileID refers to an allocated file.
func (id FileID) IsValid() bool { return id != NoFileID }

// IsValid reports whether the ItemID refers to an allocated item.
func (id ItemID) IsValid() bool { return id != NoItemID }

// IsValid reports whether the StmtID refers to an allocated statement.
func (id StmtID) IsValid() bool { return id != NoStmtID }

// IsValid reports whether the ExprID refers to an allocated expression.
func (id ExprID) IsValid() bool { return id != NoExprID }

// IsValid reports whether the TypeExprID refers to an allocated type expression.
func (id TypeExprID) IsValid() bool { return id != NoTypeExprID }

// IsValid reports whether the NodeID refers to an allocated node.
func (id NodeID) IsValid() bool { return id != NoNodeID }
