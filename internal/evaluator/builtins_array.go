package evaluator

import (
	"github.com/weldlang/weld/internal/token"
)

// ArrayBuiltins returns the std.array group. Element access stays
// lazy: map defers each application, and at forces only the element it
// returns.
func ArrayBuiltins() map[string]*Builtin {
	return map[string]*Builtin{
		"length": {
			Name:  "array.length",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				a, err := argArray(e, "array.length", args[0])
				if err != nil {
					return err
				}
				return NewNumberFromInt(int64(len(a.Elements)))
			},
		},
		"map": {
			Name:  "array.map",
			Arity: 2,
			Fn: func(e *Evaluator, args ...Object) Object {
				fn := args[0]
				a, err := argArray(e, "array.map", args[1])
				if err != nil {
					return err
				}
				mapped := make([]*Thunk, len(a.Elements))
				for i, el := range a.Elements {
					el := el
					mapped[i] = NewComputeThunk(func(e *Evaluator) Object {
						return e.applyFunction(fn, el, token.Token{})
					})
				}
				return &Array{Elements: mapped}
			},
		},
		"at": {
			Name:  "array.at",
			Arity: 2,
			Fn: func(e *Evaluator, args ...Object) Object {
				i, err := argInt(e, "array.at", args[0])
				if err != nil {
					return err
				}
				a, err := argArray(e, "array.at", args[1])
				if err != nil {
					return err
				}
				if i < 0 || i >= int64(len(a.Elements)) {
					return e.newErrorKind(ErrTypeMismatch, token.Token{},
						"array index %d out of bounds (length %d)", i, len(a.Elements))
				}
				return e.Force(a.Elements[i])
			},
		},
		"concat": {
			Name:  "array.concat",
			Arity: 2,
			Fn: func(e *Evaluator, args ...Object) Object {
				a, err := argArray(e, "array.concat", args[0])
				if err != nil {
					return err
				}
				b, err := argArray(e, "array.concat", args[1])
				if err != nil {
					return err
				}
				elems := make([]*Thunk, 0, len(a.Elements)+len(b.Elements))
				elems = append(elems, a.Elements...)
				elems = append(elems, b.Elements...)
				return &Array{Elements: elems}
			},
		},
	}
}
