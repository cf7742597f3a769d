package evaluator

import (
	"github.com/weldlang/weld/internal/token"
)

// ApplyContract checks value against contract under label. Primitive
// contracts are builtins of shape (label, value) -> value; user
// contracts are ordinary curried functions label -> value -> value
// that call blame to fail; records are record-shape contracts applied
// by contract-mode merge; enum tags check themselves.
func (e *Evaluator) ApplyContract(contract Object, label *Label, value Object) Object {
	e.Logger.Debug("applying contract",
		"contract", contract.Inspect(), "path", label.PathString())

	switch c := contract.(type) {
	case *Builtin:
		switch c.Arity {
		case 2:
			return c.Fn(e, label, value)
		case 3:
			// A parameterized contract used bare, e.g. `Array` without
			// an element contract. The parameter defaults to Dyn.
			return c.Fn(e, builtinDyn, label, value)
		default:
			return e.newErrorKind(ErrTypeMismatch, label.Tok,
				"builtin %s is not usable as a contract", c.Name)
		}

	case *PartialApplication:
		// A parameterized contract like `ArrayOf Number` waiting for
		// its label and value.
		if len(c.Args)+2 != c.Builtin.Arity {
			return e.newErrorKind(ErrTypeMismatch, label.Tok,
				"builtin %s is not usable as a contract", c.Builtin.Name)
		}
		args := make([]Object, 0, c.Builtin.Arity)
		args = append(args, c.Args...)
		args = append(args, label, value)
		return c.Builtin.Fn(e, args...)

	case *Function:
		return e.callValue(c, label.Tok, label, value)

	case *Record:
		return e.Merge(value, c, label.Tok, MergeModeContract, label)

	case *EnumTag:
		switch v := value.(type) {
		case *EnumTag:
			if v.Name == c.Name {
				return value
			}
		case *EnumVariant:
			if v.Name == c.Name {
				return value
			}
		}
		return e.Blame(label.WithMessage("expected enum tag '" + c.Name))

	default:
		return e.newErrorKind(ErrTypeMismatch, label.Tok,
			"%s is not usable as a contract", typeName(contract))
	}
}

// Primitive contracts, bound as global identifiers.

func numberContract(e *Evaluator, args ...Object) Object {
	label, value := args[0].(*Label), args[1]
	if _, ok := value.(*Number); ok {
		return value
	}
	return e.Blame(label.WithMessage("expected a number, got " + typeName(value)))
}

func stringContract(e *Evaluator, args ...Object) Object {
	label, value := args[0].(*Label), args[1]
	if _, ok := value.(*Str); ok {
		return value
	}
	return e.Blame(label.WithMessage("expected a string, got " + typeName(value)))
}

func boolContract(e *Evaluator, args ...Object) Object {
	label, value := args[0].(*Label), args[1]
	if _, ok := value.(*Boolean); ok {
		return value
	}
	return e.Blame(label.WithMessage("expected a boolean, got " + typeName(value)))
}

// arrayOfContract checks the value is an array and wraps each element
// thunk so the element contract runs only when the element is forced.
func arrayOfContract(e *Evaluator, args ...Object) Object {
	elem := args[0]
	label, ok := args[1].(*Label)
	if !ok {
		return e.newErrorKind(ErrTypeMismatch, token.Token{},
			"ArrayOf expects a single element contract argument")
	}
	value := args[2]
	arr, isArr := value.(*Array)
	if !isArr {
		return e.Blame(label.WithMessage("expected an array, got " + typeName(value)))
	}
	if elem == Object(builtinDyn) {
		return arr
	}
	wrapped := make([]*Thunk, len(arr.Elements))
	for i, el := range arr.Elements {
		el := el
		wrapped[i] = NewComputeThunk(func(e *Evaluator) Object {
			v := e.Force(el)
			if isError(v) {
				return v
			}
			return e.ApplyContract(elem, label, v)
		})
	}
	return &Array{Elements: wrapped}
}

func enumContract(e *Evaluator, args ...Object) Object {
	label, value := args[0].(*Label), args[1]
	switch value.(type) {
	case *EnumTag, *EnumVariant:
		return value
	}
	return e.Blame(label.WithMessage("expected an enum value, got " + typeName(value)))
}

func dynContract(e *Evaluator, args ...Object) Object {
	return args[1]
}
