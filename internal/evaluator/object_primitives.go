package evaluator

import (
	"fmt"
	"math/big"
)

// Number is an arbitrary-precision rational.
type Number struct {
	Value *big.Rat
}

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string {
	if n.Value.IsInt() {
		return n.Value.Num().String()
	}
	return n.Value.RatString()
}
func (n *Number) Hash() uint32 {
	return hashString(n.Value.RatString())
}

// IsInt reports whether the number is an integer.
func (n *Number) IsInt() bool { return n.Value.IsInt() }

func NewNumberFromInt(i int64) *Number {
	return &Number{Value: new(big.Rat).SetInt64(i)}
}

// Str is a UTF-8 string; all user-visible slicing and length
// operations work on extended grapheme clusters, not bytes or runes.
type Str struct {
	Value string
}

func (s *Str) Type() ObjectType { return STRING_OBJ }
func (s *Str) Inspect() string  { return fmt.Sprintf("%q", s.Value) }
func (s *Str) Hash() uint32     { return hashString(s.Value) }

// Boolean
type Boolean struct {
	Value bool
}

func (b *Boolean) Type() ObjectType { return BOOLEAN_OBJ }
func (b *Boolean) Inspect() string  { return fmt.Sprintf("%t", b.Value) }
func (b *Boolean) Hash() uint32 {
	if b.Value {
		return 1
	}
	return 0
}

// Null
type Null struct{}

func (n *Null) Type() ObjectType { return NULL_OBJ }
func (n *Null) Inspect() string  { return "null" }
func (n *Null) Hash() uint32     { return 0 }

// EnumTag is a bare tag value, 'name. Applying it to an argument
// produces an EnumVariant.
type EnumTag struct {
	Name string
}

func (e *EnumTag) Type() ObjectType { return ENUM_TAG_OBJ }
func (e *EnumTag) Inspect() string  { return "'" + e.Name }
func (e *EnumTag) Hash() uint32     { return hashString("'" + e.Name) }

// EnumVariant is a tag applied to a payload: 'name payload. The
// payload is lazy like every other binding.
type EnumVariant struct {
	Name    string
	Payload *Thunk
}

func (e *EnumVariant) Type() ObjectType { return ENUM_VARIANT_OBJ }
func (e *EnumVariant) Inspect() string {
	if e.Payload != nil && e.Payload.IsForced() {
		return "'" + e.Name + " " + e.Payload.value.Inspect()
	}
	return "'" + e.Name + " <thunk>"
}
func (e *EnumVariant) Hash() uint32 { return hashString(e.Name) }

// Foreign wraps an opaque host value handed in by an embedding
// application. The evaluator only moves it around.
type Foreign struct {
	Value interface{}
	Name  string
}

func (f *Foreign) Type() ObjectType { return FOREIGN_OBJ }
func (f *Foreign) Inspect() string {
	if f.Name != "" {
		return "<foreign " + f.Name + ">"
	}
	return "<foreign>"
}
func (f *Foreign) Hash() uint32 { return hashString(f.Name) }
