package evaluator

import "strings"

// Array holds lazy elements.
type Array struct {
	Elements []*Thunk
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, el := range a.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		if el.IsForced() {
			sb.WriteString(el.value.Inspect())
		} else {
			sb.WriteString("<thunk>")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
func (a *Array) Hash() uint32 {
	h := hashString("array")
	for _, el := range a.Elements {
		if el.IsForced() {
			h = 31*h + el.value.Hash()
		}
	}
	return h
}
