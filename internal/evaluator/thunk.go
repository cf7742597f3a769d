package evaluator

import (
	"github.com/weldlang/weld/internal/ast"
	"github.com/weldlang/weld/internal/token"
)

type ThunkState int

const (
	Unforced ThunkState = iota
	InProgress
	Forced
)

// Thunk is a memoized unit of deferred computation: either an
// expression plus the environment to evaluate it in, or a native
// compute step (contract wrapping, lazy merge combination). Forcing
// happens at most once; the InProgress state is the black hole that
// turns self-referential cycles into InfiniteRecursion instead of a
// hang.
type Thunk struct {
	state ThunkState
	value Object

	expr ast.Expression
	env  *Environment

	// deps holds the field names of the record literal this thunk was
	// born in. Merge rebinds exactly these names when reverting; every
	// other identifier keeps its lexical binding.
	deps map[string]struct{}

	compute func(e *Evaluator) Object
}

func NewThunk(expr ast.Expression, env *Environment) *Thunk {
	return &Thunk{expr: expr, env: env}
}

// NewFieldThunk builds a record field thunk that remembers its sibling
// field names, so merge can tell sibling references apart from free
// identifiers.
func NewFieldThunk(expr ast.Expression, env *Environment, siblings map[string]struct{}) *Thunk {
	return &Thunk{expr: expr, env: env, deps: siblings}
}

// NewComputeThunk defers a native computation. Compute thunks carry no
// source expression and are therefore not revertible by merge.
func NewComputeThunk(fn func(e *Evaluator) Object) *Thunk {
	return &Thunk{compute: fn}
}

// NewForcedThunk wraps an already-evaluated value.
func NewForcedThunk(value Object) *Thunk {
	return &Thunk{state: Forced, value: value}
}

func (t *Thunk) IsForced() bool { return t.state == Forced }

// Revertible reports whether merge can rebuild this thunk against a
// new recursive environment.
func (t *Thunk) Revertible() bool { return t.expr != nil }

// Revert returns a fresh unforced thunk evaluating the original
// expression in env. Non-revertible thunks (baked values, native
// computations) are shared as-is: they no longer depend on siblings.
func (t *Thunk) Revert(env *Environment) *Thunk {
	if !t.Revertible() {
		return t
	}
	return &Thunk{expr: t.expr, env: env, deps: t.deps}
}

// Force evaluates the thunk at most once and memoizes the result.
// Errors are memoized like values so repeated observation is
// deterministic.
func (e *Evaluator) Force(t *Thunk) Object {
	switch t.state {
	case Forced:
		return t.value
	case InProgress:
		return e.newErrorKind(ErrInfiniteRecursion, t.exprToken(), "infinite recursion: this value depends on itself")
	}

	t.state = InProgress
	var v Object
	if t.compute != nil {
		v = t.compute(e)
	} else {
		v = e.Eval(t.expr, t.env)
	}
	t.state = Forced
	t.value = v
	return v
}

func (t *Thunk) exprToken() token.Token {
	if t.expr != nil {
		return t.expr.GetToken()
	}
	return token.Token{}
}
