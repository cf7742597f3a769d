package evaluator

import (
	"github.com/weldlang/weld/internal/ast"
)

func (e *Evaluator) evalIfExpression(node *ast.IfExpression, env *Environment) Object {
	cond := e.Eval(node.Condition, env)
	if isError(cond) {
		return cond
	}
	b, ok := cond.(*Boolean)
	if !ok {
		return e.newErrorKind(ErrTypeMismatch, node.Token,
			"if condition must be a boolean, got %s", typeName(cond))
	}
	if b.Value {
		return e.Eval(node.Consequence, env)
	}
	return e.Eval(node.Alternative, env)
}

// evalMatchExpression tries arms in order; a wildcard or or-pattern
// fallback is the only in-language recovery from a failed match.
func (e *Evaluator) evalMatchExpression(node *ast.MatchExpression, env *Environment) Object {
	subject := e.Eval(node.Subject, env)
	if isError(subject) {
		return subject
	}

	for _, arm := range node.Arms {
		switch pattern := arm.Pattern.(type) {
		case *ast.WildcardPattern:
			return e.Eval(arm.Body, env)

		case *ast.TagPattern:
			switch s := subject.(type) {
			case *EnumTag:
				if s.Name == pattern.Name && pattern.Binder == nil {
					return e.Eval(arm.Body, env)
				}
			case *EnumVariant:
				if s.Name == pattern.Name && pattern.Binder != nil {
					scope := NewEnclosedEnvironment(env)
					scope.Set(pattern.Binder.Value, s.Payload)
					return e.Eval(arm.Body, scope)
				}
			}

		case *ast.LiteralPattern:
			lit := e.Eval(pattern.Value, env)
			if isError(lit) {
				return lit
			}
			eq := e.objectsEqual(subject, lit, pattern.Token)
			if isError(eq) {
				return eq
			}
			if eq.(*Boolean).Value {
				return e.Eval(arm.Body, env)
			}
		}
	}

	return e.newErrorKind(ErrDestructuringMismatch, node.Token,
		"no pattern matched value %s", subject.Inspect())
}
