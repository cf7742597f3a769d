package evaluator

import (
	"fmt"

	"github.com/weldlang/weld/internal/token"
)

// ErrorKind is the evaluation error taxonomy. All kinds are fatal and
// unwind to the top-level caller; recoverability (match fallback arms,
// validator contracts) is a language feature, not an engine one.
type ErrorKind string

const (
	ErrInfiniteRecursion     ErrorKind = "InfiniteRecursion"
	ErrFieldMissing          ErrorKind = "FieldMissing"
	ErrIncompatibleValues    ErrorKind = "MergeIncompatibleValues"
	ErrUnexpectedField       ErrorKind = "MergeUnexpectedField"
	ErrContractViolation     ErrorKind = "ContractViolation"
	ErrUnboundIdentifier     ErrorKind = "UnboundIdentifier"
	ErrNotAFunction          ErrorKind = "NotAFunction"
	ErrDestructuringMismatch ErrorKind = "DestructuringMismatch"
	ErrDivisionByZero        ErrorKind = "DivisionByZero"
	ErrTypeMismatch          ErrorKind = "TypeMismatch"
	ErrImport                ErrorKind = "Import"
	ErrDepthExceeded         ErrorKind = "DepthExceeded"
)

// Error is an evaluation failure propagating as a value through the
// call stack.
type Error struct {
	Kind    ErrorKind
	Message string
	Line    int
	Column  int

	// Path is the blame path ("server.port") for contract violations.
	Path string
	// Notes carry secondary positions, e.g. both sides of a merge
	// conflict.
	Notes []string
}

func (e *Error) Type() ObjectType { return ERROR_OBJ }
func (e *Error) Inspect() string {
	var result string
	if e.Line > 0 {
		result = fmt.Sprintf("ERROR at %d:%d: [%s] %s", e.Line, e.Column, e.Kind, e.Message)
	} else {
		result = fmt.Sprintf("ERROR: [%s] %s", e.Kind, e.Message)
	}
	if e.Path != "" {
		result += "\n  field path: " + e.Path
	}
	for _, note := range e.Notes {
		result += "\n  note: " + note
	}
	return result
}
func (e *Error) Hash() uint32 { return hashString(e.Message) }

func (e *Evaluator) newErrorKind(kind ErrorKind, tok token.Token, format string, args ...interface{}) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func isError(obj Object) bool {
	if obj == nil {
		return true
	}
	return obj.Type() == ERROR_OBJ
}
