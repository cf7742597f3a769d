package evaluator

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/weldlang/weld/internal/token"
)

// StringBuiltins returns the std.string group. Indices and lengths
// count extended grapheme clusters, so "héllo" and a string of emoji
// behave the way a user expects.
func StringBuiltins() map[string]*Builtin {
	return map[string]*Builtin{
		"length": {
			Name:  "string.length",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				s, err := argString(e, "string.length", args[0])
				if err != nil {
					return err
				}
				return NewNumberFromInt(int64(uniseg.GraphemeClusterCount(s)))
			},
		},
		"substring": {
			Name:  "string.substring",
			Arity: 3,
			Fn: func(e *Evaluator, args ...Object) Object {
				start, err := argInt(e, "string.substring", args[0])
				if err != nil {
					return err
				}
				end, err := argInt(e, "string.substring", args[1])
				if err != nil {
					return err
				}
				s, err := argString(e, "string.substring", args[2])
				if err != nil {
					return err
				}
				clusters := graphemes(s)
				if start < 0 || end < start || end > int64(len(clusters)) {
					return e.newErrorKind(ErrTypeMismatch, token.Token{},
						"substring range %d..%d out of bounds (length %d)", start, end, len(clusters))
				}
				return &Str{Value: strings.Join(clusters[start:end], "")}
			},
		},
		"characters": {
			Name:  "string.characters",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				s, err := argString(e, "string.characters", args[0])
				if err != nil {
					return err
				}
				clusters := graphemes(s)
				elems := make([]*Thunk, len(clusters))
				for i, c := range clusters {
					elems[i] = NewForcedThunk(&Str{Value: c})
				}
				return &Array{Elements: elems}
			},
		},
		"join": {
			Name:  "string.join",
			Arity: 2,
			Fn: func(e *Evaluator, args ...Object) Object {
				sep, err := argString(e, "string.join", args[0])
				if err != nil {
					return err
				}
				a, err := argArray(e, "string.join", args[1])
				if err != nil {
					return err
				}
				parts := make([]string, len(a.Elements))
				for i, el := range a.Elements {
					v := e.Force(el)
					if isError(v) {
						return v
					}
					s, ok := v.(*Str)
					if !ok {
						return e.newErrorKind(ErrTypeMismatch, token.Token{},
							"string.join expects an array of strings, element %d is %s", i, typeName(v))
					}
					parts[i] = s.Value
				}
				return &Str{Value: strings.Join(parts, sep)}
			},
		},
		"contains": {
			Name:  "string.contains",
			Arity: 2,
			Fn: func(e *Evaluator, args ...Object) Object {
				needle, err := argString(e, "string.contains", args[0])
				if err != nil {
					return err
				}
				s, err := argString(e, "string.contains", args[1])
				if err != nil {
					return err
				}
				return &Boolean{Value: strings.Contains(s, needle)}
			},
		},
	}
}

func graphemes(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}
