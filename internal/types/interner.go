package types

import (
	"fmt"

	"fortio.org/safecast"

	"rock/internal/source"
)

// Builtins stores TypeIDs for the primitive cases of PrimitiveType.
type Builtins struct {
	Invalid TypeID
	Void    TypeID
	Bool    TypeID
	Int8    TypeID
	Int16   TypeID
	Int32   TypeID
	Int64   TypeID
	Float64 TypeID
	Char    TypeID
	String  TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors. It
// owns side tables for the variable-length payloads of Func and Struct
// descriptors, keyed by Type.Payload.
type Interner struct {
	types    []Type
	index    map[typeKey]TypeID
	builtins Builtins
	Strings  *source.Interner

	structs []StructInfo
	traits  []TraitInfo
	fns     []FnInfo

	byStructName map[string]TypeID
	byTraitName  map[string]TypeID

	nextUndefined uint64
}

// NewInterner constructs an interner seeded with the built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:        make(map[typeKey]TypeID, 64),
		byStructName: make(map[string]TypeID, 16),
		byTraitName:  make(map[string]TypeID, 16),
	}
	in.structs = append(in.structs, StructInfo{}) // reserve slot 0 as invalid sentinel
	in.traits = append(in.traits, TraitInfo{})
	in.fns = append(in.fns, FnInfo{})

	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid})
	in.builtins.Void = in.Intern(Type{Kind: KindVoid})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Int8 = in.Intern(Type{Kind: KindInt8})
	in.builtins.Int16 = in.Intern(Type{Kind: KindInt16})
	in.builtins.Int32 = in.Intern(Type{Kind: KindInt32})
	in.builtins.Int64 = in.Intern(Type{Kind: KindInt64})
	in.builtins.Float64 = in.Intern(Type{Kind: KindFloat64})
	in.builtins.Char = in.Intern(Type{Kind: KindChar})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	return in
}

// Builtins returns TypeIDs for the primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	key := typeKey(t)
	if id, ok := in.index[key]; ok {
		return id
	}
	return in.internRaw(t)
}

// NewUndefined mints a fresh Undefined(u64) placeholder, never deduplicated
// against any other type since each one names a distinct not-yet-solved slot.
func (in *Interner) NewUndefined() TypeID {
	in.nextUndefined++
	return in.internRaw(MakeUndefined(in.nextUndefined))
}

// internRaw adds the descriptor to storage without consulting the dedup map.
func (in *Interner) internRaw(t Type) TypeID {
	lenTypes, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("len(types) overflow: %w", err))
	}
	id := TypeID(lenTypes)
	in.types = append(in.types, t)
	in.index[typeKey(t)] = id
	return id
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

type typeKey struct {
	Kind         Kind
	Elem         TypeID
	Len          uint64
	Payload      uint32
	Name         string
	Discriminant uint64
}
