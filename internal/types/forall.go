package types

// NewForAll mints a ForAll(varname) type. Unlike struct/trait names, ForAll
// variables are not deduplicated by name across calls: each occurrence in a
// FunctionDecl's declared signature is a distinct quantified variable, even
// if two parameters are written with the same source name in different
// functions. Callers that want two ForAll occurrences within one signature
// to denote the same variable must intern the TypeID once and reuse it.
func (in *Interner) NewForAll(varname string) TypeID {
	return in.internRaw(MakeForAll(varname))
}
