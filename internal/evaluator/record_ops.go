package evaluator

import (
	"github.com/weldlang/weld/internal/token"
)

// Freeze forces every field, applies its pending contracts, and bakes
// the checked values into a fresh record. The result is severed from
// the original recursive environment: overriding a field of a frozen
// record no longer updates fields that were computed from it. Ambient
// definitions are promoted to the neutral numeric priority so later
// defaults cannot displace them; explicit force and numeric priorities
// are kept.
func (e *Evaluator) Freeze(r *Record, tok token.Token) Object {
	frozen := NewRecordValue(r.Open)
	for _, name := range r.Order {
		f := r.FieldMap[name]
		if !f.Defined() {
			if f.Metadata.Optional {
				continue
			}
			return e.newErrorKind(ErrFieldMissing, tok,
				"cannot freeze: field %q has no definition", name)
		}
		v := e.forceField(name, f, nil)
		if isError(v) {
			return v
		}
		frozen.SetField(name, &Field{
			Value:    NewForcedThunk(v),
			Priority: promotePriority(f.Priority),
			Metadata: f.Metadata,
			DefTok:   f.DefTok,
			checked:  v,
		})
	}
	return frozen
}

func promotePriority(p Priority) Priority {
	if p.Kind == PriorityDefault || p.Kind == PriorityBottom {
		return NeutralPriority()
	}
	return p
}

// InsertOpts controls how Insert attaches the new field.
type InsertOpts struct {
	Priority Priority
	Metadata FieldMetadata
}

// Insert returns a copy of the record with the named field added.
// Existing fields keep their thunks unchanged; inserted fields never
// participate in the record's recursive environment.
func (e *Evaluator) Insert(r *Record, name string, value *Thunk, opts InsertOpts, tok token.Token) Object {
	if f, ok := r.FieldMap[name]; ok && f.Defined() {
		return e.newErrorKind(ErrIncompatibleValues, tok,
			"cannot insert: field %q already exists", name)
	}
	out := copyRecord(r)
	out.SetField(name, &Field{
		Value:    value,
		Priority: opts.Priority,
		Metadata: opts.Metadata,
		DefTok:   tok,
	})
	return out
}

// Remove returns a copy of the record without the named field.
type RemoveOpts struct {
	// Missing tolerates removing a field that is not there.
	Missing bool
}

func (e *Evaluator) Remove(r *Record, name string, opts RemoveOpts, tok token.Token) Object {
	if _, ok := r.FieldMap[name]; !ok {
		if opts.Missing {
			return r
		}
		return e.newErrorKind(ErrFieldMissing, tok,
			"cannot remove: no field %q", name)
	}
	out := NewRecordValue(r.Open)
	for _, n := range r.Order {
		if n == name {
			continue
		}
		out.SetField(n, r.FieldMap[n])
	}
	return out
}

// Update replaces the value of a field, or inserts it when absent. The
// replacement drops the old value, contracts and priority of the field;
// metadata is kept when the field existed.
func (e *Evaluator) Update(r *Record, name string, value *Thunk, tok token.Token) Object {
	out := copyRecord(r)
	field := &Field{
		Value:    value,
		Priority: NeutralPriority(),
		DefTok:   tok,
	}
	if old, ok := r.FieldMap[name]; ok {
		field.Metadata = old.Metadata
	}
	out.SetField(name, field)
	return out
}

// HasField reports whether the record defines the named field. Fields
// that are declared but valueless do not count.
func (r *Record) HasField(name string) bool {
	f, ok := r.FieldMap[name]
	return ok && f.Defined()
}

// DefinedFields returns the names of defined fields, lexicographically.
func (r *Record) DefinedFields() []string {
	return definedNames(r)
}

func copyRecord(r *Record) *Record {
	out := NewRecordValue(r.Open)
	for _, n := range r.Order {
		out.SetField(n, r.FieldMap[n])
	}
	return out
}
