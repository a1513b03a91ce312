package ast

import "rock/internal/source"

// File is a parsed source file: an ordered list of top-level items.
type File struct {
	Path  string
	Span  source.Span
	Items []ItemID
}
