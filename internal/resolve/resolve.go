package resolve

import (
	"strings"

	"rock/internal/diag"
	"rock/internal/hir"
	"rock/internal/source"
)

// Resolver walks every module's lowered HIR and fills in its
// Root.Resolutions table, implementing spec.md §4.2's two-pass
// scope-stack algorithm: pass one registers every module's top-level
// names, pass two resolves identifiers against a per-function scope
// stack rooted at its module's scope.
type Resolver struct {
	roots        map[string]*hir.Root // modulePath key -> Root
	moduleScopes map[string]*Scope    // modulePath key -> root scope
	bag          *diag.Bag
}

// Run resolves every module in roots (keyed the same way hir.Lower keys
// its return value) and returns the diagnostics collected along the way.
func Run(roots map[string]*hir.Root) *diag.Bag {
	r := &Resolver{
		roots:        roots,
		moduleScopes: make(map[string]*Scope),
		bag:          diag.NewBag(4096),
	}
	r.buildModuleScopes()
	r.applyUses()
	for key, root := range roots {
		r.resolveModule(key, root)
	}
	return r.bag
}

func modKey(path []string) string { return strings.Join(path, "::") }

func parentKey(key string) (string, bool) {
	if key == "" {
		return "", false
	}
	segs := strings.Split(key, "::")
	if len(segs) == 1 {
		return "", true
	}
	return modKey(segs[:len(segs)-1]), true
}

// buildModuleScopes creates one root Scope per module and registers its
// own top-level function/extern names. Nested modules' scopes chain to
// their enclosing module's scope (ordinary lexical nesting); explicit
// `use` imports are layered on top in applyUses, independent of nesting.
func (r *Resolver) buildModuleScopes() {
	for key := range r.roots {
		r.moduleScopes[key] = NewScope(nil)
	}
	for key, scope := range r.moduleScopes {
		if pk, ok := parentKey(key); ok {
			if parent, ok := r.moduleScopes[pk]; ok {
				scope.Parent = parent
			}
		}
	}
	for key, root := range r.roots {
		scope := r.moduleScopes[key]
		for _, tl := range root.TopLevels {
			switch tl.Kind {
			case hir.TopFunction:
				if tl.Function.MangledName == "" {
					scope.Define(tl.Function.Name, tl.Function.NodeID)
				}
			case hir.TopExtern:
				scope.Define(tl.Extern.Name, tl.Extern.NodeID)
			}
		}
		// A trait method's bare name resolves to the trait declaration
		// itself, not to any one impl — internal/infer dispatches the
		// actual callee by the first argument's type at that point.
		for _, trait := range root.Traits {
			for _, method := range trait.Methods {
				if _, exists := scope.Names[method]; !exists {
					scope.Define(method, trait.NodeID)
				}
			}
		}
	}
}

func (r *Resolver) applyUses() {
	for key, root := range r.roots {
		modPath := splitKey(key)
		scope := r.moduleScopes[key]
		for _, u := range root.Uses {
			r.applyUse(modPath, scope, u)
		}
	}
}

func splitKey(key string) []string {
	if key == "" {
		return nil
	}
	return strings.Split(key, "::")
}

// resolveModulePath applies spec.md §4.2's `super` rule: each `super`
// segment removes the previously accumulated segment plus itself,
// processed left to right starting from the current module's path.
func resolveModulePath(current []string, path []string) []string {
	result := append([]string{}, current...)
	for _, seg := range path {
		if seg == "super" {
			if len(result) > 0 {
				result = result[:len(result)-1]
			}
			continue
		}
		result = append(result, seg)
	}
	return result
}

func (r *Resolver) applyUse(currentMod []string, into *Scope, u hir.UseImport) {
	if u.Wildcard {
		targetKey := modKey(resolveModulePath(currentMod, u.Path))
		target, ok := r.moduleScopes[targetKey]
		if !ok {
			r.bag.Add(diagErr(diag.ModuleNotFound, u.Span, "module not found: "+targetKey))
			return
		}
		for name, id := range target.Names {
			into.Define(name, id)
		}
		return
	}
	if len(u.Path) == 0 {
		return
	}
	modPart := u.Path[:len(u.Path)-1]
	name := u.Path[len(u.Path)-1]
	targetKey := modKey(resolveModulePath(currentMod, modPart))
	target, ok := r.moduleScopes[targetKey]
	if !ok {
		r.bag.Add(diagErr(diag.ModuleNotFound, u.Span, "module not found: "+targetKey))
		return
	}
	id, ok := target.Names[name]
	if !ok {
		r.bag.Add(diagErr(diag.UnknownIdentifier, u.Span, "unknown identifier: "+name))
		return
	}
	into.Define(name, id)
}

func diagErr(code diag.Code, sp source.Span, msg string) *diag.Diagnostic {
	d := diag.NewError(code, sp, msg)
	return &d
}
