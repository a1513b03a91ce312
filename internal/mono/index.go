package mono

import "rock/internal/hir"

// index rebuilds the cross-root declaration lookups internal/mono needs on
// its own, the same way the teacher's monoBuilder rebuilds origFuncBySym
// from the module's own Funcs rather than reaching back into sema's
// internals — by the time monomorphization runs, internal/infer's Engine is
// gone and only the roots and its Table survive.
type index struct {
	fnByID    map[hir.NodeID]*hir.FunctionDecl
	fnRootOf  map[hir.NodeID]*hir.Root
	protoByID map[hir.NodeID]*hir.Prototype
}

func buildIndex(roots map[string]*hir.Root) *index {
	idx := &index{
		fnByID:    make(map[hir.NodeID]*hir.FunctionDecl),
		fnRootOf:  make(map[hir.NodeID]*hir.Root),
		protoByID: make(map[hir.NodeID]*hir.Prototype),
	}
	for _, root := range roots {
		for _, tl := range root.TopLevels {
			switch tl.Kind {
			case hir.TopFunction:
				idx.fnByID[tl.Function.NodeID] = tl.Function
				idx.fnRootOf[tl.Function.NodeID] = root
			case hir.TopExtern:
				idx.protoByID[tl.Extern.NodeID] = tl.Extern
			}
		}
	}
	return idx
}
