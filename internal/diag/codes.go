package diag

import "fmt"

// Code identifies a diagnostic kind. The lexer and parser are external
// collaborators that hand a finished ast.Builder to this pipeline, so they
// get no range of their own: UnexpectedToken and SyntaxError sit in the
// first range below, next to the lowering and resolution codes, and every
// other code belongs to lowering, resolution, inference, monomorphization,
// or project loading.
type Code uint16

const (
	UnknownCode Code = 0

	// Name resolution, 6000-6019.
	UnexpectedToken    Code = 6000
	SyntaxError        Code = 6001
	UnknownIdentifier  Code = 6002
	ModuleNotFound     Code = 6003
	DuplicatedOperator Code = 6004
	UnusedFunction     Code = 6005
	UnusedAssignment   Code = 6006

	// Type inference, 6020-6049.
	NotAFunction        Code = 6020
	UnresolvedTraitCall Code = 6021
	TypeConflict        Code = 6022
	UnresolvedType      Code = 6023
	DefaultFieldUnsupported Code = 6024

	// Monomorphization / codegen handoff, 6050-6069.
	CodegenError Code = 6050
	OutOfBounds  Code = 6051

	// Driver / project loading, 6070-6089.
	NoMain       Code = 6070
	FileNotFound Code = 6071
)

var codeTitle = map[Code]string{
	UnknownCode: "unknown diagnostic",

	UnexpectedToken:    "unexpected token",
	SyntaxError:        "syntax error",
	UnknownIdentifier:  "unknown identifier",
	ModuleNotFound:     "module not found",
	DuplicatedOperator: "duplicated infix operator declaration",
	UnusedFunction:     "unused function",
	UnusedAssignment:   "unused assignment",

	NotAFunction:            "value is not callable",
	UnresolvedTraitCall:     "no matching trait implementation",
	TypeConflict:            "type conflict",
	UnresolvedType:          "unresolved type",
	DefaultFieldUnsupported: "default struct field values are not supported",

	CodegenError: "code generation error",
	OutOfBounds:  "index out of bounds",

	NoMain:       "no main function",
	FileNotFound: "file not found",
}

// ID renders the stable, greppable string form of a code, e.g. "R6002".
func (c Code) ID() string {
	return fmt.Sprintf("R%04d", uint16(c))
}

// Title returns the short human-readable description of a code.
func (c Code) Title() string {
	if t, ok := codeTitle[c]; ok {
		return t
	}
	return codeTitle[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
