package diag

import "rock/internal/source"

// Note provides auxiliary context for a diagnostic message.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic captures a single issue: a severity, a stable code, a message,
// a primary span, and optional notes. Every diagnostic kind listed in
// spec.md §6 is reported through this one shape.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
