package evaluator

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/weldlang/weld/internal/token"
)

// MergeMode selects between combining data and applying a record
// contract to a value. In contract mode the left operand is the value
// and the right operand is the contract; closedness is enforced there
// and only there.
type MergeMode int

const (
	MergeModeStandard MergeMode = iota
	MergeModeContract
)

// Merge combines two evaluated values. Records merge field by field;
// any other pair of values must be equal once forced, in which case
// the left one is kept.
func (e *Evaluator) Merge(left, right Object, tok token.Token, mode MergeMode, label *Label) Object {
	lr, lok := left.(*Record)
	rr, rok := right.(*Record)
	if lok && rok {
		return e.mergeRecords(lr, rr, tok, mode, label)
	}

	if mode == MergeModeContract {
		// A record contract applied to a non-record value.
		if label == nil {
			label = NewLabel(tok)
		}
		return e.Blame(label.WithMessage("expected a record, got " + typeName(left)))
	}

	return e.mergeSimpleValues(left, right, tok, tok)
}

// mergeSimpleValues handles the non-record cases: merging is
// idempotent on equal values and fails otherwise. Functions are never
// mergeable.
func (e *Evaluator) mergeSimpleValues(left, right Object, tok1, tok2 token.Token) Object {
	switch left.(type) {
	case *Function, *Builtin, *PartialApplication:
		return e.incompatible(left, right, tok1, tok2)
	}
	switch right.(type) {
	case *Function, *Builtin, *PartialApplication:
		return e.incompatible(left, right, tok1, tok2)
	}

	eq := e.objectsEqual(left, right, tok1)
	if isError(eq) {
		return eq
	}
	if eq.(*Boolean).Value {
		return left
	}
	return e.incompatible(left, right, tok1, tok2)
}

func (e *Evaluator) incompatible(left, right Object, tok1, tok2 token.Token) *Error {
	err := e.newErrorKind(ErrIncompatibleValues, tok1,
		"cannot merge incompatible values %s and %s", left.Inspect(), right.Inspect())
	if tok2.Line > 0 {
		err.Notes = append(err.Notes,
			formatPos("first definition", tok1),
			formatPos("second definition", tok2))
	}
	return err
}

func formatPos(what string, tok token.Token) string {
	if tok.Line > 0 {
		return fmt.Sprintf("%s at %d:%d", what, tok.Line, tok.Column)
	}
	return what
}

// mergeRecords is the field-by-field combination at the heart of the
// language. Every field of the result gets a fresh thunk; thunks whose
// expressions referenced sibling fields are reverted against an
// overlay environment that rebinds those siblings to the merged
// record's thunks, so recursive fields follow overrides.
func (e *Evaluator) mergeRecords(r1, r2 *Record, tok token.Token, mode MergeMode, label *Label) Object {
	if mode == MergeModeContract && !r2.Open {
		var extra []string
		for _, name := range r1.SortedNames() {
			if _, declared := r2.FieldMap[name]; !declared {
				extra = append(extra, name)
			}
		}
		if len(extra) > 0 {
			if label == nil {
				label = NewLabel(tok)
			}
			err := e.Blame(label.WithMessage("extra field(s) " + strings.Join(extra, ", ")))
			err.Kind = ErrUnexpectedField
			err.Notes = append(err.Notes,
				"record contracts are closed by default; append `..` to accept extra fields")
			return err
		}
	}

	e.Logger.Debug("merging records",
		"left_fields", len(r1.FieldMap),
		"right_fields", len(r2.FieldMap),
		"contract_mode", mode == MergeModeContract)

	merged := NewRecordValue(r1.Open || r2.Open)

	order := make([]string, 0, len(r1.Order)+len(r2.Order))
	order = append(order, r1.Order...)
	for _, name := range r2.Order {
		if _, both := r1.FieldMap[name]; !both {
			order = append(order, name)
		}
	}

	frame := newMergeFrame(order)

	for _, name := range order {
		f1, in1 := r1.FieldMap[name]
		f2, in2 := r2.FieldMap[name]

		var field *Field
		switch {
		case in1 && in2:
			field = e.mergeFields(f1, f2, frame)
		case in1:
			field = copyFieldReverted(f1, frame)
		default:
			field = copyFieldReverted(f2, frame)
		}

		if field.Value != nil {
			frame.bind(name, field.Value)
		}
		merged.SetField(name, field)
	}

	return merged
}

// mergeFrame is the recursive scope of one merge. Every merged field
// name gets a fresh hidden slot name up front; the slots fill with the
// final field thunks while the merged record is built, read only when
// a reverted thunk is later forced.
type mergeFrame struct {
	slotNames map[string]string
	slots     map[string]*Thunk
}

func newMergeFrame(order []string) *mergeFrame {
	f := &mergeFrame{
		slotNames: make(map[string]string, len(order)),
		slots:     make(map[string]*Thunk, len(order)),
	}
	for _, name := range order {
		f.slotNames[name] = "%" + name + "-" + uuid.NewString()
	}
	return f
}

func (f *mergeFrame) bind(name string, t *Thunk) {
	f.slots[f.slotNames[name]] = t
}

// revert rebuilds a thunk so its sibling references resolve to the
// merged record's fields. Only names that were fields of the thunk's
// originating record are rebound; free identifiers keep their lexical
// binding. Thunks without a source expression or without siblings are
// shared unchanged.
func (f *mergeFrame) revert(t *Thunk) *Thunk {
	if t == nil || !t.Revertible() {
		return t
	}
	aliases := make(map[string]string, len(t.deps))
	for name := range t.deps {
		if slot, ok := f.slotNames[name]; ok {
			aliases[name] = slot
		}
	}
	if len(aliases) == 0 {
		return t
	}
	return t.Revert(NewOverlayEnvironment(aliases, f.slots, t.env))
}

func copyFieldReverted(field *Field, frame *mergeFrame) *Field {
	return &Field{
		Value:            frame.revert(field.Value),
		Priority:         field.Priority,
		PendingContracts: append([]PendingContract(nil), field.PendingContracts...),
		Metadata:         field.Metadata,
		DefTok:           field.DefTok,
	}
}

// mergeFields combines two fields for the same name. Pending contracts
// accumulate from both sides unconditionally; the value and priority
// follow the resolution table of the merge semantics.
func (e *Evaluator) mergeFields(f1, f2 *Field, frame *mergeFrame) *Field {
	contracts := make([]PendingContract, 0, len(f1.PendingContracts)+len(f2.PendingContracts))
	contracts = append(contracts, f1.PendingContracts...)
	contracts = append(contracts, f2.PendingContracts...)

	cmp := f1.Priority.Compare(f2.Priority)

	switch {
	case f1.Defined() && f2.Defined() && cmp == 0:
		// Equal priorities, both defined: defer the combination, so a
		// conflict only surfaces if the field is actually observed.
		t1 := frame.revert(f1.Value)
		t2 := frame.revert(f2.Value)
		tok1, tok2 := f1.DefTok, f2.DefTok
		value := NewComputeThunk(func(e *Evaluator) Object {
			v1 := e.Force(t1)
			if isError(v1) {
				return v1
			}
			v2 := e.Force(t2)
			if isError(v2) {
				return v2
			}
			if vr1, ok := v1.(*Record); ok {
				if vr2, ok := v2.(*Record); ok {
					return e.mergeRecords(vr1, vr2, tok1, MergeModeStandard, nil)
				}
			}
			return e.mergeSimpleValues(v1, v2, tok1, tok2)
		})
		meta := unionMetadata(f1.Metadata, f2.Metadata)
		return &Field{
			Value:            value,
			Priority:         f1.Priority,
			PendingContracts: contracts,
			Metadata:         meta,
			DefTok:           f1.DefTok,
		}

	case f1.Defined() && (cmp > 0 || !f2.Defined()):
		// Left wins; the right value, if any, is discarded unforced,
		// and metadata follows the winning side.
		return &Field{
			Value:            frame.revert(f1.Value),
			Priority:         f1.Priority,
			PendingContracts: contracts,
			Metadata:         f1.Metadata,
			DefTok:           f1.DefTok,
		}

	case f2.Defined():
		return &Field{
			Value:            frame.revert(f2.Value),
			Priority:         f2.Priority,
			PendingContracts: contracts,
			Metadata:         f2.Metadata,
			DefTok:           f2.DefTok,
		}

	default:
		// Neither side defined: contract-only field.
		return &Field{
			Priority:         NeutralPriority(),
			PendingContracts: contracts,
			Metadata:         unionMetadata(f1.Metadata, f2.Metadata),
			DefTok:           f1.DefTok,
		}
	}
}

// unionMetadata combines metadata when no single definition wins: the
// field stays optional only if both sides agree, is hidden from export
// if either side hides it, and keeps the first documentation string.
func unionMetadata(m1, m2 FieldMetadata) FieldMetadata {
	doc := m1.Doc
	if doc == "" {
		doc = m2.Doc
	}
	return FieldMetadata{
		Doc:         doc,
		Optional:    m1.Optional && m2.Optional,
		NotExported: m1.NotExported || m2.NotExported,
	}
}
