// Package driver sequences the mid-end's four passes — lowering,
// resolution, inference, monomorphization — into the single Pipeline.Run
// entry point cmd/rockc calls for both `check` and `build`. Grounded on the
// teacher's internal/driver (diagnose.go's DiagnoseStage-gated
// parse->resolve->sema->mono sequencing, parallel.go's errgroup-bounded
// per-file fan-out), trimmed to the four passes this mid-end actually has:
// the teacher's module cache, alien hints, and LSP-oriented phase observer
// have no analogue here since there is no incremental-recompilation or
// editor-facing surface in scope.
package driver

import (
	"context"
	"fmt"

	"rock/internal/ast"
	"rock/internal/diag"
	"rock/internal/hir"
	"rock/internal/infer"
	"rock/internal/mono"
	"rock/internal/resolve"
	"rock/internal/types"
)

// Stage selects how far Pipeline.Run carries a build.
type Stage uint8

const (
	// StageLower only lowers and merges — what `rockc hir` dumps.
	StageLower Stage = iota
	// StageCheck runs lowering, resolution and inference only — what
	// `rockc check` reports.
	StageCheck
	// StageBuild additionally runs monomorphization — what `rockc build`
	// needs before it can hand a program to a back end.
	StageBuild
)

// Pipeline holds the configuration shared across every file lowered in one
// run. Precedence carries the user-declared infix operator table the
// front end (out of scope here) would otherwise have threaded through its
// own parse; a caller driving the pipeline from a serialized ast.Builder
// snapshot supplies whatever table that snapshot's source declared.
type Pipeline struct {
	Precedence map[string]uint8
}

// Result is everything a later stage (diagfmt, cmd/rockc's --emit-mono
// encoder) might want out of one Pipeline.Run.
type Result struct {
	Roots map[string]*hir.Root
	Table *infer.Table
	Mono  *mono.Program
	Bag   *diag.Bag
}

// Run lowers every file in fileIDs, merges their per-module Roots, then
// resolves and infers over the merged set, stopping before the next pass
// once Bag.HasErrors() is true (spec's must-stop-on-error rule) — except
// resolution, which always completes its single pass so every name error
// in the program is reported together, not just the first file's. When
// stage is StageBuild and no pass reported an error, monomorphization runs
// last and fails hard via the returned error rather than through Bag,
// since by that point its preconditions (a fully solved program) are
// expected to already hold.
func (p *Pipeline) Run(ctx context.Context, b *ast.Builder, in *types.Interner, fileIDs []ast.FileID, stage Stage) (*Result, error) {
	roots, bag, err := p.lowerAll(ctx, b, fileIDs)
	if err != nil {
		return nil, err
	}
	result := &Result{Roots: roots, Bag: bag}
	if bag.HasErrors() || stage == StageLower {
		return result, nil
	}

	resolveBag := resolve.Run(roots)
	result.Bag.Merge(resolveBag)
	if result.Bag.HasErrors() {
		return result, nil
	}

	table, inferBag := infer.Run(roots, b, in)
	result.Table = table
	result.Bag.Merge(inferBag)
	if result.Bag.HasErrors() || stage == StageCheck {
		return result, nil
	}

	prog, err := mono.Run(table, roots, b, in)
	if err != nil {
		return result, fmt.Errorf("driver: monomorphization failed: %w", err)
	}
	result.Mono = prog
	return result, nil
}
