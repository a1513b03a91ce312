package infer

import (
	"rock/internal/ast"
	"rock/internal/hir"
	"rock/internal/types"
)

// prepare aggregates every module's declarations into the engine's
// cross-root indices and registers struct types with the interner so
// ExprDot/ExprStructCtor have somewhere to look up field types. It runs
// once before any body is visited, since a call can reach a function or
// struct declared in any module, not just its own.
func (e *Engine) prepare() {
	for _, root := range e.roots {
		for _, tl := range root.TopLevels {
			switch tl.Kind {
			case hir.TopFunction:
				e.fnByID[tl.Function.NodeID] = tl.Function
				e.fnRootOf[tl.Function.NodeID] = root
			case hir.TopExtern:
				e.protoByID[tl.Extern.NodeID] = tl.Extern
				e.protoRootOf[tl.Extern.NodeID] = root
			}
		}
		for name, decl := range root.Structs {
			e.structByName[name] = decl
			e.structTypeOf[name] = e.in.RegisterStruct(name, decl.Span)
		}
		for _, decl := range root.Traits {
			e.traitByID[decl.NodeID] = decl
		}
		for name, impls := range root.TraitMethods {
			e.traitMethodsGlobal[name] = append(e.traitMethodsGlobal[name], impls...)
		}
	}
	// Field types reference other structs, so resolve field lists only
	// after every struct name is registered.
	for name, decl := range e.structByName {
		typeID := e.structTypeOf[name]
		fields := make([]types.StructField, len(decl.Fields))
		for i, f := range decl.Fields {
			forall := make(map[string]types.TypeID) // struct fields never share a type variable with a sibling field
			fields[i] = types.StructField{Name: f.Name, Type: e.resolveTypeExpr(ast.TypeExprID(f.TypeExpr), forall)}
		}
		e.in.SetStructFields(typeID, fields)
	}
}
