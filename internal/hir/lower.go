package hir

import (
	"fmt"
	"strings"

	"rock/internal/ast"
	"rock/internal/diag"
	"rock/internal/source"
)

// ModulePath is a dotted sequence of module segment names, "" for the root
// module. Lower produces one Root per module, keyed by this joined form, so
// internal/resolve can build its module_scopes map one entry per Root.
type ModulePath []string

// Key returns the "::"-joined canonical form used as a map key.
func (p ModulePath) Key() string { return strings.Join(p, "::") }

// lowerer carries the state shared across one module-tree lowering pass.
type lowerer struct {
	b          *ast.Builder
	precedence map[string]uint8
	bag        *diag.Bag
	roots      map[string]*Root

	// curRoot is the Root currently being populated; mint records every
	// freshly allocated NodeID's span into it, alongside ast.Builder's own
	// process-wide Spans table, so both I1 (every arena NodeId has a span)
	// and the HIR-specific Root.Spans stay in sync. Set once per lowerModule
	// call since every item processed there belongs to the same Root.
	curRoot *Root
}

// mint allocates a fresh HIR NodeID off ast.Builder's shared counter — HIR
// nodes are never given the AST node's own id, even when an HIR node
// corresponds 1:1 to an AST node, so that an id is always traceable to
// exactly one tree.
func (lw *lowerer) mint(span source.Span) NodeID {
	id := NodeID(lw.b.NewNodeID(span))
	if lw.curRoot != nil {
		lw.curRoot.Spans[id] = span
	}
	return id
}

// Lower walks a parsed file's top-level items (including nested `mod`
// blocks) and produces one Root per module path, implementing spec.md §4.1:
// infix chains are desugared by shunting-yard, trait/impl blocks are
// flattened into method tables with mangled FunctionDecls, and every
// function body gets a return inserted at its tail position.
func Lower(b *ast.Builder, precedence map[string]uint8, fileID ast.FileID) (map[string]*Root, *diag.Bag) {
	lw := &lowerer{
		b:          b,
		precedence: precedence,
		bag:        diag.NewBag(4096),
		roots:      make(map[string]*Root),
	}
	file := b.File(fileID)
	if file == nil {
		return lw.roots, lw.bag
	}
	lw.lowerModule(nil, file.Items)
	return lw.roots, lw.bag
}

func (lw *lowerer) rootFor(modPath ModulePath) *Root {
	key := modPath.Key()
	r, ok := lw.roots[key]
	if !ok {
		r = NewRoot()
		lw.roots[key] = r
	}
	return r
}

func (lw *lowerer) lowerModule(modPath ModulePath, items []ast.ItemID) {
	r := lw.rootFor(modPath)
	prevRoot := lw.curRoot
	lw.curRoot = r
	defer func() { lw.curRoot = prevRoot }()
	for _, itemID := range items {
		item := lw.b.Item(itemID)
		if item == nil {
			continue
		}
		switch item.Kind {
		case ast.ItemFn:
			r.TopLevels = append(r.TopLevels, &TopLevel{Kind: TopFunction, Function: lw.lowerFunction(r, item.Fn)})
		case ast.ItemExtern:
			r.TopLevels = append(r.TopLevels, &TopLevel{Kind: TopExtern, Extern: lw.lowerPrototype(r, item.Extern)})
		case ast.ItemStruct:
			lw.lowerStruct(r, item.Struct)
		case ast.ItemTrait:
			lw.lowerTrait(r, item.Trait)
		case ast.ItemImpl:
			lw.lowerImpl(r, item.Impl)
		case ast.ItemMod:
			lw.lowerModule(append(append(ModulePath{}, modPath...), item.Mod.Name), item.Mod.Items)
		case ast.ItemUse:
			segs := append([]string{}, item.Use.Path.Segments...)
			wildcard := item.Use.Path.IsWildcard()
			if wildcard && len(segs) > 0 {
				segs = segs[:len(segs)-1] // drop the "(*)" sentinel segment
			}
			r.Uses = append(r.Uses, UseImport{Path: segs, Wildcard: wildcard, Span: item.Use.Span})
		case ast.ItemInfix:
			// Not lowered: the caller collects infix declarations into the
			// precedence table it passes to Lower.
		}
	}
}

func (lw *lowerer) lowerArgs(params []ast.FnParam) []ArgumentDecl {
	out := make([]ArgumentDecl, len(params))
	for i, p := range params {
		out[i] = ArgumentDecl{Name: p.Name, NodeID: lw.mint(p.Span), Span: p.Span, TypeExpr: uint32(p.Type)}
	}
	return out
}

func (lw *lowerer) lowerPrototype(r *Root, p ast.Prototype) *Prototype {
	return &Prototype{
		Name:        p.Name,
		NodeID:      lw.mint(p.Span),
		Span:        p.Span,
		Arguments:   lw.lowerArgs(p.Params),
		RetTypeExpr: uint32(p.RetType),
	}
}

func (lw *lowerer) lowerFunction(r *Root, fn ast.FunctionDecl) *FunctionDecl {
	return lw.lowerFunctionNamed(r, fn, fn.Name, "")
}

// lowerFunctionNamed lowers a function declaration under a possibly-mangled
// name (used by impl blocks, per spec.md §4.1: `[impl_type_names]_method_name`).
func (lw *lowerer) lowerFunctionNamed(r *Root, fn ast.FunctionDecl, name, mangled string) *FunctionDecl {
	decl := &FunctionDecl{
		Name:        name,
		MangledName: mangled,
		NodeID:      lw.mint(fn.Span),
		Span:        fn.Span,
		Arguments:   lw.lowerArgs(fn.Params),
		RetTypeExpr: uint32(fn.RetType),
	}
	body := lw.lowerBody(fn.Body)
	lw.insertReturn(body)
	bodyID := r.NewBodyID()
	decl.BodyID = bodyID
	r.Bodies[bodyID] = &FnBody{
		ID:          bodyID,
		FnID:        decl.NodeID,
		Name:        name,
		MangledName: mangled,
		Body:        body,
	}
	return decl
}

func (lw *lowerer) lowerStruct(r *Root, s ast.StructDecl) {
	decl := &StructDecl{Name: s.Name, NodeID: lw.mint(s.Span), Span: s.Span}
	for _, f := range s.Fields {
		if f.Default.IsValid() {
			lw.bag.Add(diagPtr(diag.NewError(diag.DefaultFieldUnsupported, f.Span,
				fmt.Sprintf("struct field %q: default values are not supported", f.Name))))
		}
		decl.Fields = append(decl.Fields, StructFieldDecl{
			Name:     f.Name,
			NodeID:   lw.mint(f.Span),
			TypeExpr: uint32(f.Type),
		})
	}
	r.Structs[s.Name] = decl
}

func (lw *lowerer) lowerTrait(r *Root, t ast.TraitDecl) {
	decl := &TraitDecl{Name: t.Name, NodeID: lw.mint(t.Span), Span: t.Span}
	for _, m := range t.Methods {
		decl.Methods = append(decl.Methods, m.Name)
	}
	r.Traits[t.Name] = decl
}

// lowerImpl flattens `impl Trait for A, B { fn show(self) {...} }` into
// one mangled FunctionDecl per (type, method) pair, registered into
// r.TraitMethods[methodName] so internal/infer's first-match dispatch can
// scan it directly, per spec.md's "traits and impls are expanded at
// lowering into trait tables + function decls".
func (lw *lowerer) lowerImpl(r *Root, impl ast.ImplDecl) {
	for _, typeName := range impl.TypeNames {
		for _, m := range impl.Methods {
			mangled := typeName + "_" + m.Name
			decl := lw.lowerFunctionNamed(r, m, m.Name, mangled)
			r.TopLevels = append(r.TopLevels, &TopLevel{Kind: TopFunction, Function: decl})
			if impl.TraitName != "" {
				r.TraitMethods[m.Name] = append(r.TraitMethods[m.Name], decl)
			} else {
				r.StructMethods[typeName] = append(r.StructMethods[typeName], decl)
			}
		}
	}
}

func diagPtr(d diag.Diagnostic) *diag.Diagnostic { return &d }
