// Package diag defines the diagnostic model shared by name resolution, type
// inference, monomorphization, and project loading.
//
// # Purpose
//
//   - Provide deterministic data structures that capture findings produced by
//     each pipeline pass.
//   - Offer light-weight utilities (Reporter, Bag) that let producers emit
//     diagnostics without coupling to concrete storage or formatting layers.
//
// # Scope
//
// Package diag does not perform formatting or CLI integration. Rendering
// lives in internal/diagfmt; sequencing passes and deciding when to stop on
// accumulated errors lives in internal/driver.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – tri-level enum (Info, Warning, Error) defined in severity.go.
//   - Code – compact numeric identifier (see codes.go) with a stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the canonical source.Span pointing to the issue.
//   - Notes – optional secondary spans/messages for additional context.
//
// Notes should be used sparingly: each note must add new context (e.g. "trait
// declared here") rather than repeating the diagnostic message.
//
// # Emitting diagnostics
//
// Passes use a diag.Reporter to decouple emission from storage: construct a
// ReportBuilder via NewReportBuilder (or the ReportError/ReportWarning/ReportInfo
// helpers), chain WithNote, then call Emit. diag.BagReporter adapts a Reporter
// onto a Bag, which supports sorting, deduplication, and filtering.
//
// # Consumers
//
//   - internal/diagfmt renders Diagnostics for terminal output.
//   - internal/driver collects each pass's Bag and decides whether to continue
//     to the next pass via Bag.HasErrors.
package diag
