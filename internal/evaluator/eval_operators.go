package evaluator

import (
	"math/big"

	"github.com/weldlang/weld/internal/ast"
)

func (e *Evaluator) evalPrefixExpression(node *ast.PrefixExpression, env *Environment) Object {
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}
	switch node.Operator {
	case "!":
		b, ok := right.(*Boolean)
		if !ok {
			return e.newErrorKind(ErrTypeMismatch, node.Token, "operator ! expects a boolean, got %s", typeName(right))
		}
		return &Boolean{Value: !b.Value}
	case "-":
		n, ok := right.(*Number)
		if !ok {
			return e.newErrorKind(ErrTypeMismatch, node.Token, "operator - expects a number, got %s", typeName(right))
		}
		return &Number{Value: new(big.Rat).Neg(n.Value)}
	}
	return e.newErrorKind(ErrTypeMismatch, node.Token, "unknown prefix operator %q", node.Operator)
}

func (e *Evaluator) evalInfixExpression(node *ast.InfixExpression, env *Environment) Object {
	// Short-circuit operators evaluate the right side only on demand.
	if node.Operator == "&&" || node.Operator == "||" {
		return e.evalLogicalExpression(node, env)
	}

	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}

	switch node.Operator {
	case "&":
		return e.Merge(left, right, node.Token, MergeModeStandard, nil)
	case "==":
		eq := e.objectsEqual(left, right, node.Token)
		if isError(eq) {
			return eq
		}
		return eq
	case "!=":
		eq := e.objectsEqual(left, right, node.Token)
		if err, ok := eq.(*Error); ok {
			return err
		}
		return &Boolean{Value: !eq.(*Boolean).Value}
	case "++":
		return e.evalConcat(left, right, node)
	case "+", "-", "*", "/":
		return e.evalArithmetic(left, right, node)
	case "<", ">", "<=", ">=":
		return e.evalComparison(left, right, node)
	}
	return e.newErrorKind(ErrTypeMismatch, node.Token, "unknown operator %q", node.Operator)
}

func (e *Evaluator) evalLogicalExpression(node *ast.InfixExpression, env *Environment) Object {
	left := e.Eval(node.Left, env)
	if isError(left) {
		return left
	}
	lb, ok := left.(*Boolean)
	if !ok {
		return e.newErrorKind(ErrTypeMismatch, node.Token, "operator %s expects booleans, got %s", node.Operator, typeName(left))
	}
	if node.Operator == "&&" && !lb.Value {
		return &Boolean{Value: false}
	}
	if node.Operator == "||" && lb.Value {
		return &Boolean{Value: true}
	}
	right := e.Eval(node.Right, env)
	if isError(right) {
		return right
	}
	rb, ok := right.(*Boolean)
	if !ok {
		return e.newErrorKind(ErrTypeMismatch, node.Token, "operator %s expects booleans, got %s", node.Operator, typeName(right))
	}
	return &Boolean{Value: rb.Value}
}

func (e *Evaluator) evalArithmetic(left, right Object, node *ast.InfixExpression) Object {
	ln, ok := left.(*Number)
	if !ok {
		return e.newErrorKind(ErrTypeMismatch, node.Token, "operator %s expects numbers, got %s", node.Operator, typeName(left))
	}
	rn, ok := right.(*Number)
	if !ok {
		return e.newErrorKind(ErrTypeMismatch, node.Token, "operator %s expects numbers, got %s", node.Operator, typeName(right))
	}
	result := new(big.Rat)
	switch node.Operator {
	case "+":
		result.Add(ln.Value, rn.Value)
	case "-":
		result.Sub(ln.Value, rn.Value)
	case "*":
		result.Mul(ln.Value, rn.Value)
	case "/":
		if rn.Value.Sign() == 0 {
			return e.newErrorKind(ErrDivisionByZero, node.Token, "division by zero")
		}
		result.Quo(ln.Value, rn.Value)
	}
	return &Number{Value: result}
}

func (e *Evaluator) evalComparison(left, right Object, node *ast.InfixExpression) Object {
	ln, lok := left.(*Number)
	rn, rok := right.(*Number)
	if lok && rok {
		cmp := ln.Value.Cmp(rn.Value)
		return compareResult(cmp, node.Operator)
	}
	ls, lsok := left.(*Str)
	rs, rsok := right.(*Str)
	if lsok && rsok {
		cmp := 0
		switch {
		case ls.Value < rs.Value:
			cmp = -1
		case ls.Value > rs.Value:
			cmp = 1
		}
		return compareResult(cmp, node.Operator)
	}
	return e.newErrorKind(ErrTypeMismatch, node.Token,
		"operator %s expects two numbers or two strings, got %s and %s",
		node.Operator, typeName(left), typeName(right))
}

func compareResult(cmp int, op string) Object {
	switch op {
	case "<":
		return &Boolean{Value: cmp < 0}
	case ">":
		return &Boolean{Value: cmp > 0}
	case "<=":
		return &Boolean{Value: cmp <= 0}
	default:
		return &Boolean{Value: cmp >= 0}
	}
}

func (e *Evaluator) evalConcat(left, right Object, node *ast.InfixExpression) Object {
	if ls, ok := left.(*Str); ok {
		rs, ok := right.(*Str)
		if !ok {
			return e.newErrorKind(ErrTypeMismatch, node.Token, "cannot concatenate string with %s", typeName(right))
		}
		return &Str{Value: ls.Value + rs.Value}
	}
	if la, ok := left.(*Array); ok {
		ra, ok := right.(*Array)
		if !ok {
			return e.newErrorKind(ErrTypeMismatch, node.Token, "cannot concatenate array with %s", typeName(right))
		}
		elements := make([]*Thunk, 0, len(la.Elements)+len(ra.Elements))
		elements = append(elements, la.Elements...)
		elements = append(elements, ra.Elements...)
		return &Array{Elements: elements}
	}
	return e.newErrorKind(ErrTypeMismatch, node.Token, "operator ++ expects strings or arrays, got %s", typeName(left))
}

func (e *Evaluator) evalAnnotatedExpression(node *ast.AnnotatedExpression, env *Environment) Object {
	value := e.Eval(node.Expr, env)
	if isError(value) {
		return value
	}
	for _, cexpr := range node.Contracts {
		contract := e.Eval(cexpr, env)
		if isError(contract) {
			return contract
		}
		label := NewLabel(cexpr.GetToken())
		if path := ast.FieldPath(node.Expr); path != "" {
			label = label.WithField(path)
		}
		value = e.ApplyContract(contract, label, value)
		if isError(value) {
			return value
		}
	}
	return value
}
