package evaluator

import (
	"github.com/weldlang/weld/internal/ast"
	"github.com/weldlang/weld/internal/token"
)

func typeName(obj Object) string {
	if obj == nil {
		return "nothing"
	}
	switch obj.Type() {
	case NUMBER_OBJ:
		return "a number"
	case STRING_OBJ:
		return "a string"
	case BOOLEAN_OBJ:
		return "a boolean"
	case NULL_OBJ:
		return "null"
	case ENUM_TAG_OBJ:
		return "an enum tag"
	case ENUM_VARIANT_OBJ:
		return "an enum variant"
	case ARRAY_OBJ:
		return "an array"
	case RECORD_OBJ:
		return "a record"
	case FUNCTION_OBJ, BUILTIN_OBJ, PARTIAL_APP_OBJ:
		return "a function"
	case LABEL_OBJ:
		return "a label"
	case FOREIGN_OBJ:
		return "a foreign value"
	default:
		return string(obj.Type())
	}
}

// forceField forces a field's value and applies its pending contracts
// in attachment order, memoizing the checked result.
func (e *Evaluator) forceField(name string, f *Field, at ast.TokenProvider) Object {
	if f.checked != nil {
		return f.checked
	}
	tok := f.DefTok
	if at != nil && tok.Line == 0 {
		tok = at.GetToken()
	}
	if f.Value == nil {
		err := e.newErrorKind(ErrFieldMissing, tok,
			"field %q has contracts or metadata but no definition", name)
		return err
	}
	v := e.Force(f.Value)
	if isError(v) {
		return v
	}
	for _, pc := range f.PendingContracts {
		v = e.ApplyContract(pc.Contract, pc.Label, v)
		if isError(v) {
			return v
		}
	}
	f.checked = v
	return v
}

// ForceField forces a record field and runs its pending contracts,
// memoizing the result. Exported for the serializer.
func (e *Evaluator) ForceField(name string, f *Field) Object {
	return e.forceField(name, f, nil)
}

// DeepForce recursively forces a value: every array element and every
// defined record field, applying pending contracts along the way.
// Valueless optional fields are skipped; valueless required fields
// fail with FieldMissing.
func (e *Evaluator) DeepForce(obj Object, tok token.Token) Object {
	switch v := obj.(type) {
	case *Array:
		for _, el := range v.Elements {
			forced := e.Force(el)
			if isError(forced) {
				return forced
			}
			if deep := e.DeepForce(forced, tok); isError(deep) {
				return deep
			}
		}
		return v
	case *EnumVariant:
		if v.Payload != nil {
			forced := e.Force(v.Payload)
			if isError(forced) {
				return forced
			}
			if deep := e.DeepForce(forced, tok); isError(deep) {
				return deep
			}
		}
		return v
	case *Record:
		for _, name := range v.SortedNames() {
			f := v.FieldMap[name]
			if !f.Defined() {
				if f.Metadata.Optional {
					continue
				}
				return e.newErrorKind(ErrFieldMissing, f.DefTok,
					"field %q has no definition", name)
			}
			forced := e.forceField(name, f, nil)
			if isError(forced) {
				return forced
			}
			if deep := e.DeepForce(forced, tok); isError(deep) {
				return deep
			}
		}
		return v
	default:
		return obj
	}
}
