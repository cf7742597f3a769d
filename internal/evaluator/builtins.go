package evaluator

import (
	"github.com/weldlang/weld/internal/token"
)

// Global primitive contracts. They double as ordinary values: a
// contract is just something ApplyContract knows how to run.
var (
	builtinNumber = &Builtin{Name: "Number", Arity: 2, Fn: numberContract}
	builtinString = &Builtin{Name: "String", Arity: 2, Fn: stringContract}
	builtinBool   = &Builtin{Name: "Bool", Arity: 2, Fn: boolContract}
	builtinDyn    = &Builtin{Name: "Dyn", Arity: 2, Fn: dynContract}
	builtinEnum   = &Builtin{Name: "Enum", Arity: 2, Fn: enumContract}
	builtinArray  = &Builtin{Name: "Array", Arity: 3, Fn: arrayOfContract}
)

// NewBaseEnvironment builds the top-level environment: the std record
// and the global contract identifiers.
func NewBaseEnvironment() *Environment {
	env := NewEnvironment()
	RegisterBuiltins(env)
	return env
}

// RegisterBuiltins binds the standard library into env.
func RegisterBuiltins(env *Environment) {
	std := NewRecordValue(false)
	setStdField(std, "record", recordOfBuiltins(RecordBuiltins()))
	setStdField(std, "contract", recordOfBuiltins(ContractBuiltins()))
	setStdField(std, "array", recordOfBuiltins(ArrayBuiltins()))
	setStdField(std, "string", recordOfBuiltins(StringBuiltins()))
	setStdField(std, "enum", recordOfBuiltins(EnumBuiltins()))
	setStdField(std, "number", recordOfBuiltins(NumberBuiltins()))
	setStdField(std, "deep_force", &Builtin{
		Name:  "deep_force",
		Arity: 1,
		Fn: func(e *Evaluator, args ...Object) Object {
			return e.DeepForce(args[0], token.Token{})
		},
	})
	env.Set("std", NewForcedThunk(std))

	env.Set("Number", NewForcedThunk(builtinNumber))
	env.Set("String", NewForcedThunk(builtinString))
	env.Set("Bool", NewForcedThunk(builtinBool))
	env.Set("Dyn", NewForcedThunk(builtinDyn))
	env.Set("Enum", NewForcedThunk(builtinEnum))
	env.Set("Array", NewForcedThunk(builtinArray))
}

func recordOfBuiltins(group map[string]*Builtin) *Record {
	r := NewRecordValue(false)
	for name, b := range group {
		setStdField(r, name, b)
	}
	return r
}

func setStdField(r *Record, name string, v Object) {
	r.SetField(name, &Field{
		Value:    NewForcedThunk(v),
		Priority: NeutralPriority(),
		Metadata: FieldMetadata{NotExported: true},
	})
}

// Argument helpers shared by the builtin groups. Position information
// is stamped by applyBuiltin on the way out.

func argRecord(e *Evaluator, name string, v Object) (*Record, *Error) {
	r, ok := v.(*Record)
	if !ok {
		return nil, e.newErrorKind(ErrTypeMismatch, token.Token{},
			"%s expects a record, got %s", name, typeName(v))
	}
	return r, nil
}

func argString(e *Evaluator, name string, v Object) (string, *Error) {
	s, ok := v.(*Str)
	if !ok {
		return "", e.newErrorKind(ErrTypeMismatch, token.Token{},
			"%s expects a string, got %s", name, typeName(v))
	}
	return s.Value, nil
}

func argArray(e *Evaluator, name string, v Object) (*Array, *Error) {
	a, ok := v.(*Array)
	if !ok {
		return nil, e.newErrorKind(ErrTypeMismatch, token.Token{},
			"%s expects an array, got %s", name, typeName(v))
	}
	return a, nil
}

func argNumber(e *Evaluator, name string, v Object) (*Number, *Error) {
	n, ok := v.(*Number)
	if !ok {
		return nil, e.newErrorKind(ErrTypeMismatch, token.Token{},
			"%s expects a number, got %s", name, typeName(v))
	}
	return n, nil
}

func argInt(e *Evaluator, name string, v Object) (int64, *Error) {
	n, ok := v.(*Number)
	if !ok || !n.IsInt() {
		return 0, e.newErrorKind(ErrTypeMismatch, token.Token{},
			"%s expects an integer, got %s", name, typeName(v))
	}
	return n.Value.Num().Int64(), nil
}

// argThunk unwraps an argument declared lazy in the builtin's
// LazyArgs; already-forced values are rewrapped.
func argThunk(v Object) *Thunk {
	if d, ok := v.(*Deferred); ok {
		return d.Thunk
	}
	return NewForcedThunk(v)
}

func argLabel(e *Evaluator, name string, v Object) (*Label, *Error) {
	l, ok := v.(*Label)
	if !ok {
		return nil, e.newErrorKind(ErrTypeMismatch, token.Token{},
			"%s expects a label, got %s", name, typeName(v))
	}
	return l, nil
}
