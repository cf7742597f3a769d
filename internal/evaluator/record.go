package evaluator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/weldlang/weld/internal/token"
)

// PriorityKind orders field definitions for merge conflict resolution:
// Bottom < Default < Numeral(n) < Top.
type PriorityKind int

const (
	PriorityBottom PriorityKind = iota
	PriorityDefault
	PriorityNumeral
	PriorityTop
)

type Priority struct {
	Kind PriorityKind
	Num  int64 // only meaningful for PriorityNumeral
}

// NeutralPriority is the ambient priority of an ordinary `f = v`
// definition: Numeral(0).
func NeutralPriority() Priority { return Priority{Kind: PriorityNumeral} }

func DefaultPriority() Priority { return Priority{Kind: PriorityDefault} }
func TopPriority() Priority     { return Priority{Kind: PriorityTop} }
func BottomPriority() Priority  { return Priority{Kind: PriorityBottom} }

// Compare returns -1, 0 or 1 following the total priority order.
func (p Priority) Compare(o Priority) int {
	if p.Kind != o.Kind {
		if p.Kind < o.Kind {
			return -1
		}
		return 1
	}
	if p.Kind == PriorityNumeral {
		switch {
		case p.Num < o.Num:
			return -1
		case p.Num > o.Num:
			return 1
		}
	}
	return 0
}

func (p Priority) String() string {
	switch p.Kind {
	case PriorityBottom:
		return "bottom"
	case PriorityDefault:
		return "default"
	case PriorityTop:
		return "force"
	default:
		return fmt.Sprintf("priority %d", p.Num)
	}
}

// FieldMetadata carries the non-semantic attributes of a field.
type FieldMetadata struct {
	Doc         string
	Optional    bool
	NotExported bool
}

// PendingContract is a contract attached to a field but not yet
// applied; application is deferred until the field value is forced.
type PendingContract struct {
	Contract Object
	Label    *Label
}

// Field is the unit a record is built from: an optional lazy value, a
// priority, accumulated pending contracts and metadata. A field with a
// nil Value is declared-but-undefined (legal for contract fields and
// optional fields).
type Field struct {
	Value            *Thunk
	Priority         Priority
	PendingContracts []PendingContract
	Metadata         FieldMetadata

	// DefTok is the source position of the winning definition, used in
	// merge conflict and blame messages.
	DefTok token.Token

	// checked memoizes the forced value after all pending contracts
	// ran. Fields are copied structurally on merge, so the memo never
	// leaks between records with different contract sets.
	checked Object
}

// Defined reports whether the field carries a value.
func (f *Field) Defined() bool { return f.Value != nil }

// Record maps field names to fields. Declaration order is preserved in
// Order for deterministic inspection; serialization sorts names
// lexicographically. Open marks records that, used as contracts,
// accept unknown fields.
type Record struct {
	FieldMap map[string]*Field
	Order    []string
	Open     bool
}

func NewRecordValue(open bool) *Record {
	return &Record{FieldMap: make(map[string]*Field), Open: open}
}

// SetField inserts or replaces a field, maintaining Order.
func (r *Record) SetField(name string, f *Field) {
	if _, exists := r.FieldMap[name]; !exists {
		r.Order = append(r.Order, name)
	}
	r.FieldMap[name] = f
}

// SortedNames returns the field names in lexicographic order.
func (r *Record) SortedNames() []string {
	names := make([]string, 0, len(r.FieldMap))
	for name := range r.FieldMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Record) Type() ObjectType { return RECORD_OBJ }

func (r *Record) Inspect() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, name := range r.SortedNames() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(name)
		f := r.FieldMap[name]
		switch {
		case f.checked != nil:
			sb.WriteString(" = " + f.checked.Inspect())
		case f.Value != nil && f.Value.IsForced():
			sb.WriteString(" = " + f.Value.value.Inspect())
		case f.Value != nil:
			sb.WriteString(" = <thunk>")
		}
	}
	if r.Open {
		if len(r.FieldMap) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("..")
	}
	sb.WriteString("}")
	return sb.String()
}

func (r *Record) Hash() uint32 {
	h := hashString("record")
	for _, name := range r.SortedNames() {
		h = 31*h + hashString(name)
	}
	return h
}
