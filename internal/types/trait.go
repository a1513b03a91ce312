package types

import (
	"fmt"

	"fortio.org/safecast"

	"rock/internal/source"
)

// TraitMethod names one method a trait declares, with its parameter count
// (the concrete types are resolved per-impl, not on the trait itself).
type TraitMethod struct {
	Name   string
	Arity  int
	Span   source.Span
}

// TraitInfo stores metadata for Trait(name): the declared method set
// recorded by SetTraitMethods. The interner does not check impls against it.
type TraitInfo struct {
	Name    string
	Decl    source.Span
	Methods []TraitMethod
}

// RegisterTrait allocates the Trait(name) type slot, or returns the existing
// one if the trait was already registered.
func (in *Interner) RegisterTrait(name string, decl source.Span) TypeID {
	if id, ok := in.byTraitName[name]; ok {
		return id
	}
	slot := in.appendTraitInfo(TraitInfo{Name: name, Decl: decl})
	t := MakeTrait(name)
	t.Payload = slot
	id := in.internRaw(t)
	in.byTraitName[name] = id
	return id
}

// LookupTrait returns the TypeID registered for a trait name, if any.
func (in *Interner) LookupTrait(name string) (TypeID, bool) {
	id, ok := in.byTraitName[name]
	return id, ok
}

// SetTraitMethods stores the trait's declared method set.
func (in *Interner) SetTraitMethods(typeID TypeID, methods []TraitMethod) {
	info := in.traitInfo(typeID)
	if info == nil {
		return
	}
	info.Methods = append([]TraitMethod(nil), methods...)
}

// TraitInfo returns metadata for the trait TypeID.
func (in *Interner) TraitInfo(typeID TypeID) (*TraitInfo, bool) {
	info := in.traitInfo(typeID)
	if info == nil {
		return nil, false
	}
	return info, true
}

func (in *Interner) traitInfo(typeID TypeID) *TraitInfo {
	if typeID == NoTypeID {
		return nil
	}
	tt, ok := in.Lookup(typeID)
	if !ok || tt.Kind != KindTrait || int(tt.Payload) >= len(in.traits) {
		return nil
	}
	return &in.traits[tt.Payload]
}

func (in *Interner) appendTraitInfo(info TraitInfo) uint32 {
	in.traits = append(in.traits, info)
	slot, err := safecast.Conv[uint32](len(in.traits) - 1)
	if err != nil {
		panic(fmt.Errorf("trait info overflow: %w", err))
	}
	return slot
}
