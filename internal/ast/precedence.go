package ast

// CollectPrecedence walks a file's top-level items and builds the operator
// precedence table used by hir.Lower for shunting-yard infix desugaring.
// Declaring the same operator twice is a caller-visible error (diag.DuplicatedOperator);
// this helper reports it via the returned duplicates slice rather than failing
// outright, so callers can continue diagnosing other files.
func CollectPrecedence(b *Builder, fileID FileID) (table map[string]uint8, duplicates []string) {
	table = make(map[string]uint8)
	file := b.File(fileID)
	if file == nil {
		return table, nil
	}
	for _, itemID := range file.Items {
		item := b.Item(itemID)
		if item == nil || item.Kind != ItemInfix {
			continue
		}
		if _, exists := table[item.Infix.Op]; exists {
			duplicates = append(duplicates, item.Infix.Op)
			continue
		}
		table[item.Infix.Op] = item.Infix.Precedence
	}
	return table, duplicates
}
