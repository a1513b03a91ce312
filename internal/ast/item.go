package ast

import "rock/internal/source"

// ItemKind enumerates top-level (and nested-module) item forms.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	// ItemFn is a concrete function definition.
	ItemFn
	// ItemExtern is an external prototype with a fully solved signature
	// and no body (the back-end provides the definition).
	ItemExtern
	// ItemTrait declares a trait and its method prototypes.
	ItemTrait
	// ItemImpl implements a trait's methods for one or more concrete types.
	ItemImpl
	// ItemStruct declares a struct type.
	ItemStruct
	// ItemUse imports a name (or, with a wildcard path, every top-level
	// name) from another module into the current scope.
	ItemUse
	// ItemMod declares a nested module.
	ItemMod
	// ItemInfix declares (or overrides) an operator's shunting-yard
	// precedence. Infix declarations are not lowered to HIR; the driver
	// collects them into the precedence table handed to hir.Lower.
	ItemInfix
)

func (k ItemKind) String() string {
	switch k {
	case ItemFn:
		return "fn"
	case ItemExtern:
		return "extern"
	case ItemTrait:
		return "trait"
	case ItemImpl:
		return "impl"
	case ItemStruct:
		return "struct"
	case ItemUse:
		return "use"
	case ItemMod:
		return "mod"
	case ItemInfix:
		return "infix"
	default:
		return "invalid"
	}
}

// FnParam is one function argument declaration.
type FnParam struct {
	Name       string
	NodeID     NodeID
	Type       TypeExprID
	Span       source.Span
}

// Prototype is a name + signature with no body: an extern declaration or
// a trait method signature.
type Prototype struct {
	Name     string
	NodeID   NodeID
	Params   []FnParam
	RetType  TypeExprID
	Span     source.Span
}

// FunctionDecl is a concrete function definition.
type FunctionDecl struct {
	Name    string
	NodeID  NodeID
	Params  []FnParam
	RetType TypeExprID
	Body    []StmtID
	Span    source.Span
}

// TraitDecl declares a trait: a name, one forall type parameter, and a set
// of method prototypes.
type TraitDecl struct {
	Name       string
	NodeID     NodeID
	TypeParam  string
	Methods    []Prototype
	Span       source.Span
}

// ImplDecl implements a trait's methods for one or more concrete type
// names. Method names are mangled at lowering time by
// `[impl_type_names]_method_name`.
type ImplDecl struct {
	TraitName string
	TypeNames []string
	Methods   []FunctionDecl
	Span      source.Span
}

// StructFieldDecl is one field of a struct declaration.
type StructFieldDecl struct {
	Name   string
	NodeID NodeID
	Type   TypeExprID
	// Default, when set, is the field's default-value expression. Default
	// parameters are parsed but rejected by the core (see SPEC_FULL.md §9).
	Default ExprID
	Span    source.Span
}

// StructDecl declares a struct type and its fields.
type StructDecl struct {
	Name     string
	NodeID   NodeID
	Fields   []StructFieldDecl
	Span     source.Span
}

// UseDecl imports a name, or every top-level name (wildcard), from another
// module into the current scope.
type UseDecl struct {
	Path IdentPath
	Span source.Span
}

// ModDecl declares a nested module and its items.
type ModDecl struct {
	Name   string
	NodeID NodeID
	Items  []ItemID
	Span   source.Span
}

// InfixDecl declares an operator's precedence for shunting-yard desugaring.
type InfixDecl struct {
	Op         string
	Precedence uint8
	Span       source.Span
}

// Item is a single top-level (or nested-module) item. Only the field
// matching Kind is populated.
type Item struct {
	Kind ItemKind
	Span source.Span

	Fn      FunctionDecl
	Extern  Prototype
	Trait   TraitDecl
	Impl    ImplDecl
	Struct  StructDecl
	Use     UseDecl
	Mod     ModDecl
	Infix   InfixDecl
}
