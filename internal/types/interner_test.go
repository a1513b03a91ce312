package types

import (
	"testing"

	"rock/internal/source"
)

func TestInternerBuiltins(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	if b.Void == NoTypeID || b.Bool == NoTypeID {
		t.Fatalf("builtins not initialized")
	}
	void, ok := in.Lookup(b.Void)
	if !ok || void.Kind != KindVoid {
		t.Fatalf("expected void kind, got %+v", void)
	}
}

func TestInternerDeduplicatesArrayDescriptors(t *testing.T) {
	in := NewInterner()
	elem := in.Builtins().Int64
	arr1 := in.Intern(MakeArray(elem, 4))
	arr2 := in.Intern(MakeArray(elem, 4))
	if arr1 != arr2 {
		t.Fatalf("array types of equal element and length should be deduplicated")
	}
	arr3 := in.Intern(MakeArray(elem, 5))
	if arr1 == arr3 {
		t.Fatalf("arrays with different lengths must not unify identities")
	}
}

func TestFnTypesDedup(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	fn1 := in.RegisterFn([]TypeID{b.Int64, b.Bool}, b.Void)
	fn2 := in.RegisterFn([]TypeID{b.Int64, b.Bool}, b.Void)
	if fn1 != fn2 {
		t.Fatalf("identical function signatures should share a TypeID")
	}
	info, ok := in.FnInfo(fn1)
	if !ok || info.Result != b.Void || len(info.Params) != 2 {
		t.Fatalf("unexpected fn info: %+v", info)
	}
}

func TestStructRegistrationIsStableByName(t *testing.T) {
	in := NewInterner()
	sp := source.Span{}
	id1 := in.RegisterStruct("Point", sp)
	id2 := in.RegisterStruct("Point", sp)
	if id1 != id2 {
		t.Fatalf("registering the same struct name twice must return the same TypeID")
	}
	in.SetStructFields(id1, []StructField{
		{Name: "x", Type: in.Builtins().Int64},
		{Name: "y", Type: in.Builtins().Int64},
	})
	ft, ok := in.FieldType(id1, "y")
	if !ok || ft != in.Builtins().Int64 {
		t.Fatalf("expected field y to resolve to int64")
	}
}

func TestUndefinedPlaceholdersAreDistinct(t *testing.T) {
	in := NewInterner()
	a := in.NewUndefined()
	b := in.NewUndefined()
	if a == b {
		t.Fatalf("each Undefined placeholder must get its own TypeID")
	}
	if IsSolved(in, a) {
		t.Fatalf("an Undefined type must not be considered solved")
	}
}

func TestIsSolvedRecursesIntoFuncAndArray(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	undef := in.NewUndefined()
	fn := in.RegisterFn([]TypeID{undef}, b.Bool)
	if IsSolved(in, fn) {
		t.Fatalf("a function with an undefined parameter must not be solved")
	}
	arr := in.Intern(MakeArray(undef, 3))
	if IsSolved(in, arr) {
		t.Fatalf("an array of an undefined element must not be solved")
	}
	okFn := in.RegisterFn([]TypeID{b.Int64}, b.Bool)
	if !IsSolved(in, okFn) {
		t.Fatalf("a fully concrete function type must be solved")
	}
}
