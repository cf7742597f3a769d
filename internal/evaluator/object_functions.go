package evaluator

import (
	"strings"

	"github.com/weldlang/weld/internal/ast"
)

// Function is a user closure. Multi-parameter literals apply one
// argument at a time: binding the first parameter yields a closure
// over the remaining ones.
type Function struct {
	Params []*ast.Identifier
	Body   ast.Expression
	Env    *Environment
}

func (f *Function) Type() ObjectType { return FUNCTION_OBJ }
func (f *Function) Inspect() string {
	names := make([]string, len(f.Params))
	for i, p := range f.Params {
		names[i] = p.Value
	}
	return "fun " + strings.Join(names, " ") + " => <body>"
}
func (f *Function) Hash() uint32 { return hashString(f.Inspect()) }

// BuiltinFn receives already-forced arguments. Laziness-sensitive
// builtins take thunk-bearing objects (records, arrays) whose inner
// bindings stay unforced.
type BuiltinFn func(e *Evaluator, args ...Object) Object

// Builtin is a native function with a fixed arity, applied in curried
// style like user functions.
type Builtin struct {
	Name  string
	Arity int
	Fn    BuiltinFn

	// LazyArgs lists argument positions passed through unforced,
	// wrapped as *Deferred. Record constructors use this so a stored
	// value is only evaluated when its field is observed.
	LazyArgs []int
}

func (b *Builtin) lazyAt(i int) bool {
	for _, p := range b.LazyArgs {
		if p == i {
			return true
		}
	}
	return false
}

func (b *Builtin) Type() ObjectType { return BUILTIN_OBJ }
func (b *Builtin) Inspect() string  { return "builtin " + b.Name }
func (b *Builtin) Hash() uint32     { return hashString("builtin " + b.Name) }

// Deferred carries an argument thunk through a builtin unforced. Only
// builtins declaring the position in LazyArgs ever receive one.
type Deferred struct {
	Thunk *Thunk
}

func (d *Deferred) Type() ObjectType { return DEFERRED_OBJ }
func (d *Deferred) Inspect() string  { return "<deferred>" }
func (d *Deferred) Hash() uint32     { return hashString("<deferred>") }

// PartialApplication is a builtin waiting for more arguments.
type PartialApplication struct {
	Builtin *Builtin
	Args    []Object
}

func (p *PartialApplication) Type() ObjectType { return PARTIAL_APP_OBJ }
func (p *PartialApplication) Inspect() string {
	return "partial " + p.Builtin.Name
}
func (p *PartialApplication) Hash() uint32 { return hashString("partial " + p.Builtin.Name) }
