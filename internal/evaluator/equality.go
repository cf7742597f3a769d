package evaluator

import (
	"github.com/weldlang/weld/internal/token"
)

// objectsEqual is deep structural equality. Lazy containers are forced
// as far as the comparison requires. Functions are not comparable.
func (e *Evaluator) objectsEqual(a, b Object, tok token.Token) Object {
	switch av := a.(type) {
	case *Number:
		bv, ok := b.(*Number)
		return &Boolean{Value: ok && av.Value.Cmp(bv.Value) == 0}
	case *Str:
		bv, ok := b.(*Str)
		return &Boolean{Value: ok && av.Value == bv.Value}
	case *Boolean:
		bv, ok := b.(*Boolean)
		return &Boolean{Value: ok && av.Value == bv.Value}
	case *Null:
		_, ok := b.(*Null)
		return &Boolean{Value: ok}
	case *EnumTag:
		bv, ok := b.(*EnumTag)
		return &Boolean{Value: ok && av.Name == bv.Name}
	case *EnumVariant:
		bv, ok := b.(*EnumVariant)
		if !ok || av.Name != bv.Name {
			return &Boolean{Value: false}
		}
		ap := e.Force(av.Payload)
		if isError(ap) {
			return ap
		}
		bp := e.Force(bv.Payload)
		if isError(bp) {
			return bp
		}
		return e.objectsEqual(ap, bp, tok)
	case *Array:
		bv, ok := b.(*Array)
		if !ok || len(av.Elements) != len(bv.Elements) {
			return &Boolean{Value: false}
		}
		for i := range av.Elements {
			ae := e.Force(av.Elements[i])
			if isError(ae) {
				return ae
			}
			be := e.Force(bv.Elements[i])
			if isError(be) {
				return be
			}
			eq := e.objectsEqual(ae, be, tok)
			if isError(eq) {
				return eq
			}
			if !eq.(*Boolean).Value {
				return &Boolean{Value: false}
			}
		}
		return &Boolean{Value: true}
	case *Record:
		bv, ok := b.(*Record)
		if !ok {
			return &Boolean{Value: false}
		}
		return e.recordsEqual(av, bv, tok)
	case *Function, *Builtin, *PartialApplication:
		return e.newErrorKind(ErrTypeMismatch, tok, "cannot compare functions for equality")
	case *Foreign:
		bv, ok := b.(*Foreign)
		return &Boolean{Value: ok && av == bv}
	}
	return &Boolean{Value: false}
}

func (e *Evaluator) recordsEqual(a, b *Record, tok token.Token) Object {
	aNames := definedNames(a)
	bNames := definedNames(b)
	if len(aNames) != len(bNames) {
		return &Boolean{Value: false}
	}
	for _, name := range aNames {
		bf, ok := b.FieldMap[name]
		if !ok || !bf.Defined() {
			return &Boolean{Value: false}
		}
		av := e.forceField(name, a.FieldMap[name], nil)
		if isError(av) {
			return av
		}
		bv := e.forceField(name, bf, nil)
		if isError(bv) {
			return bv
		}
		eq := e.objectsEqual(av, bv, tok)
		if isError(eq) {
			return eq
		}
		if !eq.(*Boolean).Value {
			return &Boolean{Value: false}
		}
	}
	return &Boolean{Value: true}
}

func definedNames(r *Record) []string {
	names := make([]string, 0, len(r.FieldMap))
	for _, name := range r.SortedNames() {
		if r.FieldMap[name].Defined() {
			names = append(names, name)
		}
	}
	return names
}
