package diagnostics

import (
	"fmt"

	"github.com/weldlang/weld/internal/token"
)

// Error codes, stable across releases so tooling can filter on them.
const (
	ErrL001 = "L001" // lexer: illegal character
	ErrL002 = "L002" // lexer: unterminated string
	ErrL003 = "L003" // lexer: malformed number

	ErrP001 = "P001" // parser: unexpected token
	ErrP002 = "P002" // parser: no prefix parse rule
	ErrP003 = "P003" // parser: malformed record field
	ErrP004 = "P004" // parser: malformed match arm
	ErrP005 = "P005" // parser: malformed annotation
	ErrP006 = "P006" // parser: recursion depth exceeded
)

// Error is a diagnostic tied to a source position.
type Error struct {
	Code    string
	Message string
	File    string
	Line    int
	Column  int
}

func NewError(code string, tok token.Token, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Line:    tok.Line,
		Column:  tok.Column,
	}
}

func (e *Error) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: [%s] %s", e.File, e.Line, e.Column, e.Code, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("%d:%d: [%s] %s", e.Line, e.Column, e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}
