package fixture

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes reported by the loader.
const (
	ErrCodeRead          = "E201" // File unreadable or missing
	ErrCodeFormat        = "E202" // Unsupported file extension
	ErrCodeDecode        = "E203" // CUE or YAML did not decode
	ErrCodeMissingBody   = "E204" // Fixture has no body
	ErrCodeUnknownKind   = "E205" // Unknown node kind
	ErrCodeUnknownType   = "E206" // Reference to an undeclared type
	ErrCodeUnknownSymbol = "E207" // Reference to an undeclared symbol
	ErrCodeBadEnum       = "E208" // Unknown enumeration value
	ErrCodeBadConstant   = "E209" // Malformed constant
	ErrCodeBadSyntax     = "E210" // Syntax id/ref problem
	ErrCodeBadArguments  = "E211" // Argument mapping does not fit the argument list
)

// LoadError is a fixture problem, positioned when the source location is
// known. CUE fixtures report a token.Pos; YAML fixtures report Line and
// Column.
type LoadError struct {
	Code    string
	Message string
	// Path is the field path inside the fixture, e.g. body.statements[2].kind.
	Path     string
	Pos      token.Pos
	Filename string
	Line     int
	Column   int
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = e.Path + ": " + msg
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, msg)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Filename, e.Line, e.Column, e.Code, msg)
	}
	if e.Filename != "" {
		return fmt.Sprintf("%s: %s: %s", e.Filename, e.Code, msg)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

// cueError converts the first CUE error in err to a LoadError.
func cueError(filename string, err error) *LoadError {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: ErrCodeDecode, Message: err.Error(), Filename: filename}
	}
	first := errs[0]
	le := &LoadError{Code: ErrCodeDecode, Message: first.Error(), Filename: filename}
	if positions := errors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
