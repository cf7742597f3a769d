package evaluator

import (
	"github.com/weldlang/weld/internal/ast"
)

func (e *Evaluator) evalArrayLiteral(node *ast.ArrayLiteral, env *Environment) Object {
	arr := &Array{Elements: make([]*Thunk, len(node.Elements))}
	for i, el := range node.Elements {
		arr.Elements[i] = NewThunk(el, env)
	}
	return arr
}

// evalRecordLiteral builds a recursive record: every field thunk is
// allocated first and bound into a shared self environment, then each
// thunk captures that same environment, so sibling references resolve
// in any order without a second pass.
func (e *Evaluator) evalRecordLiteral(node *ast.RecordLiteral, env *Environment) Object {
	record := NewRecordValue(node.Open)
	selfEnv := NewEnclosedEnvironment(env)

	// Every field thunk shares the literal's sibling name set; merge
	// later rebinds only these names when reverting.
	siblings := make(map[string]struct{}, len(node.Fields))
	for _, def := range node.Fields {
		siblings[def.Name] = struct{}{}
	}

	for _, def := range node.Fields {
		if _, dup := record.FieldMap[def.Name]; dup {
			return e.newErrorKind(ErrTypeMismatch, def.Token,
				"duplicate field %q in record literal", def.Name)
		}

		field := &Field{
			Priority: NeutralPriority(),
			DefTok:   def.Token,
		}

		ann := def.Annotations
		switch {
		case ann.Force:
			field.Priority = TopPriority()
		case ann.Default:
			field.Priority = DefaultPriority()
		case ann.Priority != nil:
			num := e.Eval(ann.Priority, env)
			if isError(num) {
				return num
			}
			n, ok := num.(*Number)
			if !ok || !n.IsInt() {
				return e.newErrorKind(ErrTypeMismatch, ann.Priority.GetToken(),
					"priority annotation must be an integer, got %s", typeName(num))
			}
			field.Priority = Priority{Kind: PriorityNumeral, Num: n.Value.Num().Int64()}
		}
		field.Metadata.Optional = ann.Optional
		field.Metadata.NotExported = ann.NotExported
		field.Metadata.Doc = ann.Doc

		// Contract expressions are evaluated now (they are almost
		// always identifiers); their application is deferred until the
		// field is forced.
		for _, cexpr := range ann.Contracts {
			contract := e.Eval(cexpr, env)
			if isError(contract) {
				return contract
			}
			label := NewLabel(cexpr.GetToken()).WithField(def.Name)
			field.PendingContracts = append(field.PendingContracts, PendingContract{
				Contract: contract,
				Label:    label,
			})
		}

		if def.Value != nil {
			thunk := NewFieldThunk(def.Value, selfEnv, siblings)
			field.Value = thunk
			selfEnv.Set(def.Name, thunk)
		}
		record.SetField(def.Name, field)
	}

	return record
}

func (e *Evaluator) evalLetExpression(node *ast.LetExpression, env *Environment) Object {
	var thunk *Thunk
	if node.Recursive {
		// Allocate the thunk, bind it, then point its environment at
		// the scope that already contains it.
		scope := NewEnclosedEnvironment(env)
		thunk = NewThunk(node.Value, scope)
		scope.Set(node.Name.Value, thunk)
		return e.Eval(node.Body, scope)
	}
	thunk = NewThunk(node.Value, env)
	scope := NewEnclosedEnvironment(env)
	scope.Set(node.Name.Value, thunk)
	return e.Eval(node.Body, scope)
}

func (e *Evaluator) evalFieldAccess(node *ast.FieldAccess, env *Environment) Object {
	target := e.Eval(node.Record, env)
	if isError(target) {
		return target
	}
	record, ok := target.(*Record)
	if !ok {
		return e.newErrorKind(ErrTypeMismatch, node.Token,
			"cannot access field %q on %s", node.Name, typeName(target))
	}
	field, ok := record.FieldMap[node.Name]
	if !ok {
		return e.newErrorKind(ErrFieldMissing, node.Token,
			"record has no field %q", node.Name)
	}
	return e.forceField(node.Name, field, node)
}
