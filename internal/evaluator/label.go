package evaluator

import (
	"strings"

	"github.com/weldlang/weld/internal/token"
)

// Label is the blame metadata threaded through contract application:
// where the contract was attached, which field path it guards, an
// optional custom message, and the polarity of the position being
// checked (negative for function arguments).
type Label struct {
	Tok      token.Token
	Path     []string
	Message  string
	Negative bool
}

func NewLabel(tok token.Token) *Label {
	return &Label{Tok: tok}
}

// WithField returns a copy of the label extended with a path segment.
// Labels are immutable once attached to a pending contract.
func (l *Label) WithField(name string) *Label {
	path := make([]string, 0, len(l.Path)+1)
	path = append(path, l.Path...)
	path = append(path, name)
	return &Label{Tok: l.Tok, Path: path, Message: l.Message, Negative: l.Negative}
}

// WithMessage returns a copy carrying a custom diagnostic message.
func (l *Label) WithMessage(msg string) *Label {
	return &Label{Tok: l.Tok, Path: l.Path, Message: msg, Negative: l.Negative}
}

// Flipped returns the label with inverted polarity, used when checking
// the argument side of a function contract.
func (l *Label) Flipped() *Label {
	return &Label{Tok: l.Tok, Path: l.Path, Message: l.Message, Negative: !l.Negative}
}

func (l *Label) PathString() string { return strings.Join(l.Path, ".") }

func (l *Label) Type() ObjectType { return LABEL_OBJ }
func (l *Label) Inspect() string {
	if len(l.Path) > 0 {
		return "<label " + l.PathString() + ">"
	}
	return "<label>"
}
func (l *Label) Hash() uint32 { return hashString(l.PathString() + l.Message) }

// Blame aborts evaluation with a ContractViolation tied to this label.
func (e *Evaluator) Blame(l *Label) *Error {
	msg := l.Message
	if msg == "" {
		msg = "contract broken by value"
	}
	if l.Negative {
		msg += " (blaming the caller)"
	}
	err := e.newErrorKind(ErrContractViolation, l.Tok, "%s", msg)
	err.Path = l.PathString()
	return err
}
