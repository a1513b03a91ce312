package types

import (
	"fmt"

	"fortio.org/safecast"

	"rock/internal/source"
)

// StructField describes one field of a StructType.
type StructField struct {
	Name string
	Type TypeID
}

// StructInfo stores metadata for a StructType: its name, declaration span,
// and resolved field list.
type StructInfo struct {
	Name   string
	Decl   source.Span
	Fields []StructField
}

// RegisterStruct allocates a nominal struct type slot and returns its
// TypeID. Calling it twice for the same name returns the same TypeID: a
// Rock struct declaration is registered once per name, then its fields are
// filled in by SetStructFields once the field types are known.
func (in *Interner) RegisterStruct(name string, decl source.Span) TypeID {
	if id, ok := in.byStructName[name]; ok {
		return id
	}
	slot := in.appendStructInfo(StructInfo{Name: name, Decl: decl})
	id := in.internRaw(Type{Kind: KindStruct, Payload: slot})
	in.byStructName[name] = id
	return id
}

// LookupStruct returns the TypeID registered for a struct name, if any.
func (in *Interner) LookupStruct(name string) (TypeID, bool) {
	id, ok := in.byStructName[name]
	return id, ok
}

// SetStructFields stores the resolved field descriptors for the struct.
func (in *Interner) SetStructFields(typeID TypeID, fields []StructField) {
	info := in.structInfo(typeID)
	if info == nil {
		return
	}
	info.Fields = cloneStructFields(fields)
}

// StructInfo returns metadata for the struct TypeID.
func (in *Interner) StructInfo(typeID TypeID) (*StructInfo, bool) {
	info := in.structInfo(typeID)
	if info == nil {
		return nil, false
	}
	return info, true
}

// FieldType returns the type of a named field, if the struct has one.
func (in *Interner) FieldType(typeID TypeID, field string) (TypeID, bool) {
	info := in.structInfo(typeID)
	if info == nil {
		return NoTypeID, false
	}
	for _, f := range info.Fields {
		if f.Name == field {
			return f.Type, true
		}
	}
	return NoTypeID, false
}

func (in *Interner) structInfo(typeID TypeID) *StructInfo {
	if typeID == NoTypeID {
		return nil
	}
	tt, ok := in.Lookup(typeID)
	if !ok || tt.Kind != KindStruct || int(tt.Payload) >= len(in.structs) {
		return nil
	}
	return &in.structs[tt.Payload]
}

func (in *Interner) appendStructInfo(info StructInfo) uint32 {
	in.structs = append(in.structs, StructInfo{
		Name:   info.Name,
		Decl:   info.Decl,
		Fields: cloneStructFields(info.Fields),
	})
	slot, err := safecast.Conv[uint32](len(in.structs) - 1)
	if err != nil {
		panic(fmt.Errorf("struct info overflow: %w", err))
	}
	return slot
}

func cloneStructFields(fields []StructField) []StructField {
	if len(fields) == 0 {
		return nil
	}
	clone := make([]StructField, len(fields))
	copy(clone, fields)
	return clone
}
