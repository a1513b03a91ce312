// Package types implements Rock's type universe: a hash-consed interner
// over Primitive, Func, Struct, Trait, ForAll, and Undefined descriptors,
// matching the structural-equality unification rules type inference needs.
package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates the cases of Type, mirroring
// Type = Primitive | Func | Struct | Trait | ForAll | Undefined.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindVoid
	KindBool
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindFloat64
	KindChar
	KindString
	KindArray
	KindFunc
	KindStruct
	KindTrait
	KindForAll
	KindUndefined
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindVoid:
		return "void"
	case KindBool:
		return "bool"
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindFunc:
		return "func"
	case KindStruct:
		return "struct"
	case KindTrait:
		return "trait"
	case KindForAll:
		return "forall"
	case KindUndefined:
		return "undefined"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsPrimitive reports whether k is one of PrimitiveType's cases.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindVoid, KindBool, KindInt8, KindInt16, KindInt32, KindInt64, KindFloat64, KindChar, KindString, KindArray:
		return true
	default:
		return false
	}
}

// Type is a compact descriptor for any member of Rock's type universe.
// Elem and Len carry PrimitiveType's Array(Type, usize) payload. Payload
// indexes into the interner's side table for Func/Struct kinds. Name
// carries the Trait(name)/ForAll(varname) payload. Discriminant carries
// Undefined(u64) — a placeholder id minted during inference for a type not
// yet solved.
type Type struct {
	Kind         Kind
	Elem         TypeID
	Len          uint64
	Payload      uint32
	Name         string
	Discriminant uint64
}

// MakeArray describes Primitive(Array(elem, len)).
func MakeArray(elem TypeID, length uint64) Type {
	return Type{Kind: KindArray, Elem: elem, Len: length}
}

// MakeTrait describes Trait(name).
func MakeTrait(name string) Type {
	return Type{Kind: KindTrait, Name: name}
}

// MakeForAll describes ForAll(varname), a universally quantified type
// variable in a not-yet-fully-applied function signature.
func MakeForAll(varname string) Type {
	return Type{Kind: KindForAll, Name: varname}
}

// MakeUndefined describes Undefined(u64), a fresh placeholder minted while
// a signature is still being solved.
func MakeUndefined(discriminant uint64) Type {
	return Type{Kind: KindUndefined, Discriminant: discriminant}
}

// IsSolved reports whether id, and everything reachable through it in in,
// contains no ForAll or Undefined component. A FuncType is solved iff this
// holds for every parameter and the result.
func IsSolved(in *Interner, id TypeID) bool {
	if in == nil || id == NoTypeID {
		return false
	}
	tt, ok := in.Lookup(id)
	if !ok {
		return false
	}
	switch tt.Kind {
	case KindForAll, KindUndefined:
		return false
	case KindArray:
		return IsSolved(in, tt.Elem)
	case KindFunc:
		info, ok := in.FnInfo(id)
		if !ok {
			return false
		}
		if !IsSolved(in, info.Result) {
			return false
		}
		for _, p := range info.Params {
			if !IsSolved(in, p) {
				return false
			}
		}
		return true
	default:
		return true
	}
}
