package evaluator

// Environment maps identifiers to thunks. Scopes extend by layering a
// new environment over the enclosing one; existing layers are never
// mutated after construction. Recursive scopes (recursive records,
// let rec) are built by allocating the scope's thunks first, binding
// them all, and only then pointing each thunk's captured environment
// at the shared layer.
type Environment struct {
	store map[string]*Thunk
	outer *Environment

	// aliases marks this layer as a merge overlay: the listed names
	// resolve through hidden slot names into store, every other name
	// falls through to outer untouched.
	aliases map[string]string
}

func NewEnvironment() *Environment {
	return &Environment{store: make(map[string]*Thunk)}
}

func NewEnclosedEnvironment(outer *Environment) *Environment {
	env := NewEnvironment()
	env.outer = outer
	return env
}

// NewOverlayEnvironment layers a merge rebinding over outer. aliases
// maps the sibling names of one reverted thunk to the merged record's
// hidden slot names; slots is shared with the merge that created it
// and fills while the merged record is under construction, which is
// safe because nothing forces a thunk until merge returns.
func NewOverlayEnvironment(aliases map[string]string, slots map[string]*Thunk, outer *Environment) *Environment {
	return &Environment{store: slots, aliases: aliases, outer: outer}
}

func (e *Environment) Get(name string) (*Thunk, bool) {
	if e.aliases != nil {
		if slot, ok := e.aliases[name]; ok {
			if t, ok := e.store[slot]; ok {
				return t, true
			}
		}
	} else if t, ok := e.store[name]; ok {
		return t, true
	}
	if e.outer != nil {
		return e.outer.Get(name)
	}
	return nil, false
}

// Set binds a name during scope construction.
func (e *Environment) Set(name string, t *Thunk) {
	e.store[name] = t
}
