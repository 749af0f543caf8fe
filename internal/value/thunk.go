package value

import "fmt"

type thunkState byte

const (
	stateUnforced thunkState = iota
	stateForcing
	stateForced
	stateFailed
)

// CycleError is returned when forcing a thunk would require forcing
// itself — `local x = x; x`, or an object field that reads its own value
// through self before it has one.
type CycleError struct {
	Name string // best-effort description of what was being forced; may be empty
}

func (e *CycleError) Error() string {
	if e.Name == "" {
		return "infinite recursion detected"
	}

	return fmt.Sprintf("infinite recursion detected while evaluating %s", e.Name)
}

// Thunk is a memoized, at-most-once computation: the laziness behind
// every array element, object field, local binding, and function
// argument (spec.md §4.4). compute is nil once the thunk has settled.
type Thunk struct {
	state   thunkState
	compute func() (Value, error)
	value   Value
	err     error
	name    string // optional, used only in CycleError messages
}

// NewThunk defers compute until the first Force call.
func NewThunk(compute func() (Value, error)) *Thunk {
	return &Thunk{state: stateUnforced, compute: compute}
}

// NewNamedThunk is NewThunk with a name recorded for cycle-error messages.
func NewNamedThunk(name string, compute func() (Value, error)) *Thunk {
	return &Thunk{state: stateUnforced, compute: compute, name: name}
}

// Ready wraps an already-computed value as a thunk that never defers.
func Ready(v Value) *Thunk {
	return &Thunk{state: stateForced, value: v}
}

// Force computes and memoizes the thunk's value, returning the memoized
// result (or error) on every later call. A thunk observed mid-computation
// signals a cycle.
func (t *Thunk) Force() (Value, error) {
	switch t.state {
	case stateForced:
		return t.value, nil
	case stateFailed:
		return nil, t.err
	case stateForcing:
		return nil, &CycleError{Name: t.name}
	}

	t.state = stateForcing

	v, err := t.compute()
	if err != nil {
		t.state = stateFailed
		t.err = err
		t.compute = nil

		return nil, err
	}

	t.state = stateForced
	t.value = v
	t.compute = nil

	return v, nil
}
