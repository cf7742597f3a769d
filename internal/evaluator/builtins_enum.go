package evaluator

import (
	"github.com/weldlang/weld/internal/token"
)

// EnumBuiltins returns the std.enum group.
func EnumBuiltins() map[string]*Builtin {
	return map[string]*Builtin{
		// to_tag_and_arg destructures an enum value into a record
		// {tag, arg}; arg is null for a bare tag and stays lazy for a
		// variant payload.
		"to_tag_and_arg": {
			Name:  "enum.to_tag_and_arg",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				out := NewRecordValue(false)
				switch v := args[0].(type) {
				case *EnumTag:
					setEnumField(out, "tag", NewForcedThunk(v))
					setEnumField(out, "arg", NewForcedThunk(&Null{}))
				case *EnumVariant:
					setEnumField(out, "tag", NewForcedThunk(&EnumTag{Name: v.Name}))
					setEnumField(out, "arg", v.Payload)
				default:
					return e.newErrorKind(ErrTypeMismatch, token.Token{},
						"enum.to_tag_and_arg expects an enum value, got %s", typeName(args[0]))
				}
				return out
			},
		},
		"is_variant": {
			Name:  "enum.is_variant",
			Arity: 1,
			Fn: func(e *Evaluator, args ...Object) Object {
				_, ok := args[0].(*EnumVariant)
				return &Boolean{Value: ok}
			},
		},
	}
}

func setEnumField(r *Record, name string, value *Thunk) {
	r.SetField(name, &Field{Value: value, Priority: NeutralPriority()})
}
