package evaluator

import (
	"math/big"
)

// NumberBuiltins returns the std.number group. All operations are
// exact on the underlying rationals.
func NumberBuiltins() map[string]*Builtin {
	return map[string]*Builtin{
		"floor": {
			Name:  "number.floor",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				n, err := argNumber(e, "number.floor", args[0])
				if err != nil {
					return err
				}
				f := new(big.Int).Div(n.Value.Num(), n.Value.Denom())
				return &Number{Value: new(big.Rat).SetInt(f)}
			},
		},
		"abs": {
			Name:  "number.abs",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				n, err := argNumber(e, "number.abs", args[0])
				if err != nil {
					return err
				}
				return &Number{Value: new(big.Rat).Abs(n.Value)}
			},
		},
		// truncate rounds toward zero, unlike floor which rounds down.
		"truncate": {
			Name:  "number.truncate",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				n, err := argNumber(e, "number.truncate", args[0])
				if err != nil {
					return err
				}
				t := new(big.Int).Quo(n.Value.Num(), n.Value.Denom())
				return &Number{Value: new(big.Rat).SetInt(t)}
			},
		},
	}
}
