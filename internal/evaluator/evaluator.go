package evaluator

import (
	"io"
	"log/slog"

	"github.com/weldlang/weld/internal/ast"
	"github.com/weldlang/weld/internal/config"
	"github.com/weldlang/weld/internal/token"
)

// ImportHandler resolves an import path (relative to the importing
// file) to a value. Wired up by the CLI; nil disables imports.
type ImportHandler func(path string, fromFile string) (Object, error)

// Evaluator walks the expression tree, forcing thunks on demand. Each
// evaluator owns its thunk graph; independent evaluations share no
// state.
type Evaluator struct {
	// CurrentFile being evaluated, for import resolution and errors.
	CurrentFile string

	// Imports resolves import expressions.
	Imports ImportHandler

	// Logger receives debug-level traces (merges, imports). Defaults
	// to a discard handler; the CLI installs a real one.
	Logger *slog.Logger

	// MaxDepth bounds eval recursion; 0 means config.MaxEvalDepth.
	MaxDepth int

	evalDepth int
}

func New() *Evaluator {
	return &Evaluator{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		MaxDepth: config.MaxEvalDepth,
	}
}

// Eval evaluates an expression to a value. Errors are returned as
// *Error objects and short-circuit every caller up to the top level.
func (e *Evaluator) Eval(node ast.Expression, env *Environment) Object {
	e.evalDepth++
	defer func() { e.evalDepth-- }()
	if e.evalDepth > e.MaxDepth {
		return e.newErrorKind(ErrDepthExceeded, node.GetToken(),
			"evaluation depth limit exceeded (%d)", e.MaxDepth)
	}

	switch node := node.(type) {
	case *ast.NumberLiteral:
		return &Number{Value: node.Value}
	case *ast.StringLiteral:
		return &Str{Value: node.Value}
	case *ast.BooleanLiteral:
		return &Boolean{Value: node.Value}
	case *ast.NullLiteral:
		return &Null{}
	case *ast.EnumTagLiteral:
		return &EnumTag{Name: node.Name}
	case *ast.Identifier:
		return e.evalIdentifier(node, env)
	case *ast.ArrayLiteral:
		return e.evalArrayLiteral(node, env)
	case *ast.RecordLiteral:
		return e.evalRecordLiteral(node, env)
	case *ast.LetExpression:
		return e.evalLetExpression(node, env)
	case *ast.FunctionLiteral:
		return &Function{Params: node.Params, Body: node.Body, Env: env}
	case *ast.CallExpression:
		return e.evalCallExpression(node, env)
	case *ast.FieldAccess:
		return e.evalFieldAccess(node, env)
	case *ast.PrefixExpression:
		return e.evalPrefixExpression(node, env)
	case *ast.InfixExpression:
		return e.evalInfixExpression(node, env)
	case *ast.AnnotatedExpression:
		return e.evalAnnotatedExpression(node, env)
	case *ast.IfExpression:
		return e.evalIfExpression(node, env)
	case *ast.MatchExpression:
		return e.evalMatchExpression(node, env)
	case *ast.ImportExpression:
		return e.evalImportExpression(node)
	}
	return e.newErrorKind(ErrTypeMismatch, node.GetToken(), "cannot evaluate node %T", node)
}

func (e *Evaluator) evalIdentifier(node *ast.Identifier, env *Environment) Object {
	if t, ok := env.Get(node.Value); ok {
		return e.Force(t)
	}
	return e.newErrorKind(ErrUnboundIdentifier, node.Token, "unbound identifier %q", node.Value)
}

func (e *Evaluator) evalCallExpression(node *ast.CallExpression, env *Environment) Object {
	fn := e.Eval(node.Function, env)
	if isError(fn) {
		return fn
	}
	// Arguments are passed by need: the callee decides if and when to
	// force them.
	arg := NewThunk(node.Argument, env)
	return e.applyFunction(fn, arg, node.GetToken())
}

func (e *Evaluator) applyFunction(fn Object, arg *Thunk, tok token.Token) Object {
	switch fn := fn.(type) {
	case *Function:
		bound := NewEnclosedEnvironment(fn.Env)
		bound.Set(fn.Params[0].Value, arg)
		if len(fn.Params) > 1 {
			return &Function{Params: fn.Params[1:], Body: fn.Body, Env: bound}
		}
		return e.Eval(fn.Body, bound)
	case *Builtin:
		return e.applyBuiltin(fn, nil, arg, tok)
	case *PartialApplication:
		return e.applyBuiltin(fn.Builtin, fn.Args, arg, tok)
	case *EnumTag:
		return &EnumVariant{Name: fn.Name, Payload: arg}
	case *Error:
		return fn
	default:
		return e.newErrorKind(ErrNotAFunction, tok,
			"%s is not a function", typeName(fn))
	}
}

func (e *Evaluator) applyBuiltin(b *Builtin, collected []Object, arg *Thunk, tok token.Token) Object {
	var v Object
	if b.lazyAt(len(collected)) {
		v = &Deferred{Thunk: arg}
	} else {
		v = e.Force(arg)
		if isError(v) {
			return v
		}
	}
	args := make([]Object, 0, len(collected)+1)
	args = append(args, collected...)
	args = append(args, v)
	if len(args) < b.Arity {
		return &PartialApplication{Builtin: b, Args: args}
	}
	result := b.Fn(e, args...)
	if err, ok := result.(*Error); ok && err.Line == 0 {
		err.Line = tok.Line
		err.Column = tok.Column
	}
	return result
}

// callValue applies fn to already-evaluated arguments, one at a time.
func (e *Evaluator) callValue(fn Object, tok token.Token, args ...Object) Object {
	result := fn
	for _, arg := range args {
		result = e.applyFunction(result, NewForcedThunk(arg), tok)
		if isError(result) {
			return result
		}
	}
	return result
}

func (e *Evaluator) evalImportExpression(node *ast.ImportExpression) Object {
	if e.Imports == nil {
		return e.newErrorKind(ErrImport, node.Token, "imports are not available in this context")
	}
	e.Logger.Debug("resolving import", "path", node.Path, "from", e.CurrentFile)
	v, err := e.Imports(node.Path, e.CurrentFile)
	if err != nil {
		return e.newErrorKind(ErrImport, node.Token, "import %q: %v", node.Path, err)
	}
	return v
}
