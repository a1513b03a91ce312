// Package diagfmt renders the output the mid-end hands back to a caller:
// diag.Bag contents as human-readable text, and hir.Root trees as an
// indented dump for rockc hir. Grounded on the teacher's internal/diagfmt
// (options.go's PathMode, pretty.go's color-gated line-and-caret rendering,
// ast_tree.go's treeNode/render approach), trimmed to the two outputs
// cmd/rockc actually needs instead of the teacher's full AST/JSON/SARIF
// surface.
package diagfmt

// PathMode controls how a diagnostic's file path is displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute automatically.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures Pretty's rendering.
type PrettyOpts struct {
	Color    bool
	Context  int // not read by Pretty, which always shows only the line holding the primary span's start
	PathMode PathMode
}
