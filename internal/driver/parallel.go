package driver

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"rock/internal/ast"
	"rock/internal/diag"
	"rock/internal/hir"
)

// lowerAll lowers every file in fileIDs in its own errgroup goroutine, then
// merges each file's per-module Roots into one map keyed by module path.
// Grounded on the teacher's internal/driver parallel.go, which fans out
// per-file diagnosis the same way. The number of goroutines is not limited,
// and the hir.Lower calls themselves are serialized by mu: every call mints
// HIR NodeIDs off the shared ast.Builder, advancing its counter and writing
// its Spans map.
func (p *Pipeline) lowerAll(ctx context.Context, b *ast.Builder, fileIDs []ast.FileID) (map[string]*hir.Root, *diag.Bag, error) {
	perFile := make([]map[string]*hir.Root, len(fileIDs))
	perFileBags := make([]*diag.Bag, len(fileIDs))

	g, _ := errgroup.WithContext(ctx)
	var mu sync.Mutex
	for i, fileID := range fileIDs {
		i, fileID := i, fileID
		g.Go(func() error {
			mu.Lock()
			roots, bag := hir.Lower(b, p.Precedence, fileID)
			mu.Unlock()
			perFile[i] = roots
			perFileBags[i] = bag
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	merged := make(map[string]*hir.Root)
	combinedBag := diag.NewBag(4096)
	for i := range fileIDs {
		combinedBag.Merge(perFileBags[i])
		for key, src := range perFile[i] {
			dst, ok := merged[key]
			if !ok {
				merged[key] = src
				continue
			}
			mergeRootInto(dst, src)
		}
	}
	return merged, combinedBag, nil
}

// mergeRootInto folds src's declarations into dst, which both belong to the
// same module path but came from different files. NodeID-keyed maps
// (Resolutions, NodeTypes, NativeOps, Spans) are safe to merge by plain key
// union: every NodeID across every file in one run is minted off the same
// ast.Builder counter, so two files never produce a colliding NodeID.
// FnBodyID is the one ID space that is allocated per-Root rather than off
// the shared builder, so each of src's bodies is re-keyed under a freshly
// minted dst FnBodyID before its owning FunctionDecl is appended.
func mergeRootInto(dst, src *hir.Root) {
	for _, tl := range src.TopLevels {
		if tl.Kind == hir.TopFunction {
			oldBodyID := tl.Function.BodyID
			if fb, ok := src.Bodies[oldBodyID]; ok {
				newBodyID := dst.NewBodyID()
				dst.Bodies[newBodyID] = &hir.FnBody{ID: newBodyID, FnID: fb.FnID, Name: fb.Name, MangledName: fb.MangledName, Body: fb.Body}
				tl.Function.BodyID = newBodyID
			}
		}
		dst.TopLevels = append(dst.TopLevels, tl)
	}
	dst.Uses = append(dst.Uses, src.Uses...)

	for name, decl := range src.Structs {
		if _, exists := dst.Structs[name]; !exists {
			dst.Structs[name] = decl
		}
	}
	for name, decl := range src.Traits {
		if _, exists := dst.Traits[name]; !exists {
			dst.Traits[name] = decl
		}
	}
	for name, impls := range src.TraitMethods {
		dst.TraitMethods[name] = append(dst.TraitMethods[name], impls...)
	}
	for name, methods := range src.StructMethods {
		dst.StructMethods[name] = append(dst.StructMethods[name], methods...)
	}
	for id, target := range src.Resolutions {
		dst.Resolutions[id] = target
	}
	for id, t := range src.NodeTypes {
		dst.NodeTypes[id] = t
	}
	for id, op := range src.NativeOps {
		dst.NativeOps[id] = op
	}
	for id, span := range src.Spans {
		dst.Spans[id] = span
	}
}
