package types

import (
	"fmt"
	"strings"
)

// Label renders a user-facing name for a TypeID, used in diagnostic
// messages such as TypeConflict.
func Label(in *Interner, id TypeID) string {
	return labelDepth(in, id, 0)
}

func labelDepth(in *Interner, id TypeID, depth int) string {
	if id == NoTypeID || in == nil {
		return "?"
	}
	if depth > 8 {
		return "..."
	}
	tt, ok := in.Lookup(id)
	if !ok {
		return "?"
	}
	switch tt.Kind {
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
		return fmt.Sprintf("[%s; %d]", labelDepth(in, tt.Elem, depth+1), tt.Len)
	case KindFunc:
		info, ok := in.FnInfo(id)
		if !ok {
			return "func(?)"
		}
		params := make([]string, len(info.Params))
		for i, p := range info.Params {
			params[i] = labelDepth(in, p, depth+1)
		}
		return "func(" + strings.Join(params, ", ") + ") -> " + labelDepth(in, info.Result, depth+1)
	case KindStruct:
		if info, ok := in.StructInfo(id); ok {
			return info.Name
		}
		return "?"
	case KindTrait:
		return tt.Name
	case KindForAll:
		return tt.Name
	case KindUndefined:
		return fmt.Sprintf("undefined#%d", tt.Discriminant)
	default:
		return "?"
	}
}
