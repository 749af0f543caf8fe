package value

// Environment is a lexically-scoped chain of name-to-thunk bindings, plus
// the dedicated self/super slots spec.md §4.4 calls for. Every local
// block, function call, and object field gets its own Environment
// extending the one it was written in; self/super are carried along
// unchanged by plain extension and only replaced at an object-field
// frame, so a function defined inside an object still sees that object's
// self/super when called from outside it.
type Environment struct {
	vars   map[string]*Thunk
	parent *Environment

	self  *Object
	super *Object
	// hasFrame is false outside any object field, distinguishing "no
	// self/super" from "self/super happen to be nil".
	hasFrame bool

	// file is the canonical path of the source file this scope was
	// parsed from, carried lexically (like self/super) so std.thisFile
	// and relative import resolution always reflect where an expression
	// was *written*, not whichever file happened to force its thunk.
	file string
}

// NewRootEnvironment creates the outermost environment an evaluation
// starts in: no bindings, no enclosing object.
func NewRootEnvironment() *Environment {
	return &Environment{vars: make(map[string]*Thunk)}
}

// Extend creates a child scope that inherits self/super unchanged — used
// for local binds and function calls, neither of which introduces a new
// object-field frame.
func (e *Environment) Extend() *Environment {
	return &Environment{
		vars:     make(map[string]*Thunk),
		parent:   e,
		self:     e.self,
		super:    e.super,
		hasFrame: e.hasFrame,
		file:     e.file,
	}
}

// ExtendWithObjectFrame creates a child scope with a new self/super pair,
// used when entering a DesugaredObject's field bodies (self/super).
func (e *Environment) ExtendWithObjectFrame(self, super *Object) *Environment {
	return &Environment{
		vars:     make(map[string]*Thunk),
		parent:   e,
		self:     self,
		super:    super,
		hasFrame: true,
		file:     e.file,
	}
}

// WithFile returns a root-level environment identical to e but tagged
// with file — used once per import to stamp the new file's root scope,
// inherited unchanged by everything evaluated underneath it.
func (e *Environment) WithFile(file string) *Environment {
	cp := *e
	cp.file = file

	return &cp
}

// File returns the canonical path this scope's enclosing source file was
// loaded from, or "" for the root program's own top-level environment
// before any Importer has labeled it.
func (e *Environment) File() string {
	return e.file
}

// Bind adds a binding to this environment's own frame (not a parent's).
func (e *Environment) Bind(name string, t *Thunk) {
	e.vars[name] = t
}

// Lookup walks the frame chain for name.
func (e *Environment) Lookup(name string) (*Thunk, bool) {
	for env := e; env != nil; env = env.parent {
		if t, ok := env.vars[name]; ok {
			return t, true
		}
	}

	return nil, false
}

// Self returns the innermost enclosing object-field frame's self, or
// false if there is none (a bare `self` outside any object is an error,
// spec.md §4.4).
func (e *Environment) Self() (*Object, bool) {
	return e.self, e.hasFrame
}

// Super is Self's counterpart; super is nil (but hasFrame true) for an
// object with no base layer to inherit from.
func (e *Environment) Super() (*Object, bool) {
	return e.super, e.hasFrame
}
