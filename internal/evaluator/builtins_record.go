package evaluator

import (
	"github.com/weldlang/weld/internal/token"
)

// RecordBuiltins returns the std.record group.
func RecordBuiltins() map[string]*Builtin {
	return map[string]*Builtin{
		"freeze": {
			Name:  "record.freeze",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				r, err := argRecord(e, "record.freeze", args[0])
				if err != nil {
					return err
				}
				return e.Freeze(r, token.Token{})
			},
		},
		"insert": {
			Name:     "record.insert",
			Arity:    3,
			LazyArgs: []int{1},
			Fn: func(e *Evaluator, args ...Object) Object {
				name, err := argString(e, "record.insert", args[0])
				if err != nil {
					return err
				}
				r, err := argRecord(e, "record.insert", args[2])
				if err != nil {
					return err
				}
				opts := InsertOpts{Priority: NeutralPriority()}
				return e.Insert(r, name, argThunk(args[1]), opts, token.Token{})
			},
		},
		"insert_with_opts": {
			Name:     "record.insert_with_opts",
			Arity:    4,
			LazyArgs: []int{2},
			Fn: func(e *Evaluator, args ...Object) Object {
				optsRec, err := argRecord(e, "record.insert_with_opts", args[0])
				if err != nil {
					return err
				}
				name, err := argString(e, "record.insert_with_opts", args[1])
				if err != nil {
					return err
				}
				r, err := argRecord(e, "record.insert_with_opts", args[3])
				if err != nil {
					return err
				}
				opts, optErr := e.readInsertOpts(optsRec)
				if optErr != nil {
					return optErr
				}
				return e.Insert(r, name, argThunk(args[2]), opts, token.Token{})
			},
		},
		"remove": {
			Name:  "record.remove",
			Arity: 2,
			Fn: func(e *Evaluator, args ...Object) Object {
				name, err := argString(e, "record.remove", args[0])
				if err != nil {
					return err
				}
				r, err := argRecord(e, "record.remove", args[1])
				if err != nil {
					return err
				}
				return e.Remove(r, name, RemoveOpts{}, token.Token{})
			},
		},
		"remove_with_opts": {
			Name:  "record.remove_with_opts",
			Arity: 3,
			Fn: func(e *Evaluator, args ...Object) Object {
				optsRec, err := argRecord(e, "record.remove_with_opts", args[0])
				if err != nil {
					return err
				}
				name, err := argString(e, "record.remove_with_opts", args[1])
				if err != nil {
					return err
				}
				r, err := argRecord(e, "record.remove_with_opts", args[2])
				if err != nil {
					return err
				}
				ignore, optErr := e.readBoolOpt(optsRec, "ignore_missing")
				if optErr != nil {
					return optErr
				}
				return e.Remove(r, name, RemoveOpts{Missing: ignore}, token.Token{})
			},
		},
		"update": {
			Name:     "record.update",
			Arity:    3,
			LazyArgs: []int{1},
			Fn: func(e *Evaluator, args ...Object) Object {
				name, err := argString(e, "record.update", args[0])
				if err != nil {
					return err
				}
				r, err := argRecord(e, "record.update", args[2])
				if err != nil {
					return err
				}
				return e.Update(r, name, argThunk(args[1]), token.Token{})
			},
		},
		"has_field": {
			Name:  "record.has_field",
			Arity: 2,
			Fn: func(e *Evaluator, args ...Object) Object {
				name, err := argString(e, "record.has_field", args[0])
				if err != nil {
					return err
				}
				r, err := argRecord(e, "record.has_field", args[1])
				if err != nil {
					return err
				}
				return &Boolean{Value: r.HasField(name)}
			},
		},
		"fields": {
			Name:  "record.fields",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				r, err := argRecord(e, "record.fields", args[0])
				if err != nil {
					return err
				}
				names := r.DefinedFields()
				elems := make([]*Thunk, len(names))
				for i, name := range names {
					elems[i] = NewForcedThunk(&Str{Value: name})
				}
				return &Array{Elements: elems}
			},
		},
		"values": {
			Name:  "record.values",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				r, err := argRecord(e, "record.values", args[0])
				if err != nil {
					return err
				}
				names := r.DefinedFields()
				elems := make([]*Thunk, len(names))
				for i, name := range names {
					name, f := name, r.FieldMap[name]
					elems[i] = NewComputeThunk(func(e *Evaluator) Object {
						return e.forceField(name, f, nil)
					})
				}
				return &Array{Elements: elems}
			},
		},
		"length": {
			Name:  "record.length",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				r, err := argRecord(e, "record.length", args[0])
				if err != nil {
					return err
				}
				return NewNumberFromInt(int64(len(r.DefinedFields())))
			},
		},
	}
}

// readInsertOpts interprets an options record: priority (integer or
// the strings "default"/"force"), optional, not_exported, doc.
func (e *Evaluator) readInsertOpts(opts *Record) (InsertOpts, *Error) {
	out := InsertOpts{Priority: NeutralPriority()}

	if v, errObj := e.optField(opts, "priority"); errObj != nil {
		return out, errObj
	} else if v != nil {
		switch pv := v.(type) {
		case *Number:
			if !pv.IsInt() {
				return out, e.newErrorKind(ErrTypeMismatch, token.Token{},
					"priority must be an integer")
			}
			out.Priority = Priority{Kind: PriorityNumeral, Num: pv.Value.Num().Int64()}
		case *Str:
			switch pv.Value {
			case "default":
				out.Priority = DefaultPriority()
			case "force":
				out.Priority = TopPriority()
			default:
				return out, e.newErrorKind(ErrTypeMismatch, token.Token{},
					"unknown priority %q", pv.Value)
			}
		default:
			return out, e.newErrorKind(ErrTypeMismatch, token.Token{},
				"priority must be an integer or \"default\"/\"force\"")
		}
	}

	optional, err := e.readBoolOpt(opts, "optional")
	if err != nil {
		return out, err
	}
	out.Metadata.Optional = optional

	hidden, err := e.readBoolOpt(opts, "not_exported")
	if err != nil {
		return out, err
	}
	out.Metadata.NotExported = hidden

	if v, errObj := e.optField(opts, "doc"); errObj != nil {
		return out, errObj
	} else if v != nil {
		doc, ok := v.(*Str)
		if !ok {
			return out, e.newErrorKind(ErrTypeMismatch, token.Token{},
				"doc must be a string")
		}
		out.Metadata.Doc = doc.Value
	}

	return out, nil
}

func (e *Evaluator) readBoolOpt(opts *Record, name string) (bool, *Error) {
	v, err := e.optField(opts, name)
	if err != nil || v == nil {
		return false, err
	}
	b, ok := v.(*Boolean)
	if !ok {
		return false, e.newErrorKind(ErrTypeMismatch, token.Token{},
			"%s must be a boolean", name)
	}
	return b.Value, nil
}

func (e *Evaluator) optField(opts *Record, name string) (Object, *Error) {
	f, ok := opts.FieldMap[name]
	if !ok || !f.Defined() {
		return nil, nil
	}
	v := e.forceField(name, f, nil)
	if err, bad := v.(*Error); bad {
		return nil, err
	}
	return v, nil
}
