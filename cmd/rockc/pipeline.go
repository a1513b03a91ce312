package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"rock/internal/ast"
	"rock/internal/astsnapshot"
	"rock/internal/diag"
	"rock/internal/diagfmt"
	"rock/internal/driver"
	"rock/internal/source"
	"rock/internal/types"
)

// loadSnapshot reads a msgpack-encoded astsnapshot.Snapshot from path and
// restores it into a fresh ast.Builder. This is cmd/rockc's stand-in for
// invoking a parser: the snapshot is whatever a (not-yet-built) front end,
// or a hand-authored test fixture, already produced. The first file in the
// snapshot is always rockc's compilation unit, since Arena.Allocate's
// 1-based indexing means it is always restored at FileID 1.
func loadSnapshot(path string) (*ast.Builder, ast.FileID, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path is a user-supplied CLI argument
	if err != nil {
		return nil, 0, fmt.Errorf("reading %q: %w", path, err)
	}
	var snap astsnapshot.Snapshot
	if err := msgpack.Unmarshal(raw, &snap); err != nil {
		return nil, 0, fmt.Errorf("decoding %q as an AST snapshot: %w", path, err)
	}
	if len(snap.Files) == 0 {
		return nil, 0, fmt.Errorf("%q: snapshot has no files", path)
	}
	return astsnapshot.Restore(&snap), ast.FileID(1), nil
}

// precedenceFromBuilder scans b's top-level items for infix declarations,
// building the table hir.Lower needs to desugar operator chains. Infix
// declarations are never lowered to HIR themselves (ast.ItemInfix's own
// doc comment), so the driver — here, the CLI standing in for it before a
// file's items are known — is what collects them.
func precedenceFromBuilder(b *ast.Builder, fileID ast.FileID) map[string]uint8 {
	table := make(map[string]uint8)
	file := b.File(fileID)
	if file == nil {
		return table
	}
	for _, itemID := range file.Items {
		item := b.Item(itemID)
		if item != nil && item.Kind == ast.ItemInfix {
			table[item.Infix.Op] = item.Infix.Precedence
		}
	}
	return table
}

func runPipeline(path string, stage driver.Stage) (*driver.Result, *types.Interner, error) {
	b, fileID, err := loadSnapshot(path)
	if err != nil {
		return nil, nil, err
	}
	in := types.NewInterner()
	p := &driver.Pipeline{Precedence: precedenceFromBuilder(b, fileID)}
	result, err := p.Run(context.Background(), b, in, []ast.FileID{fileID}, stage)
	return result, in, err
}

// printDiagnostics renders bag through diagfmt.Pretty. There is no real
// source text to show context lines from at this boundary (no front end
// ever loaded the input into a source.FileSet), so diagnostics are shown
// against a FileSet of same-length empty virtual files: Pretty degrades to
// printing just the path:line:col header and message when a file's content
// is empty, which is the best this CLI can offer until a real lexer/parser
// exists to back FileSet with actual bytes.
func printDiagnostics(w io.Writer, bag *diag.Bag, path string, colored bool) {
	bag.Sort()
	fs := source.NewFileSet()
	maxFile := uint32(0)
	for _, d := range bag.Items() {
		if uint32(d.Primary.File) > maxFile {
			maxFile = uint32(d.Primary.File)
		}
	}
	for i := uint32(0); i <= maxFile; i++ {
		fs.AddVirtual(path, nil)
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{Color: colored, Context: 1, PathMode: diagfmt.PathModeBasename})
}
