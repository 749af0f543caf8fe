package eval

import (
	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/value"
)

func (it *Interpreter) evalApply(n *ast.Apply, env *value.Environment) (value.Value, error) {
	targetV, err := it.Eval(n.Target, env)
	if err != nil {
		return nil, err
	}

	args := make([]*value.Thunk, len(n.Args))
	names := make([]string, len(n.Args))

	for i, a := range n.Args {
		a := a
		names[i] = a.Name

		th := value.NewThunk(func() (value.Value, error) { return it.Eval(a.Expr, env) })

		if n.TailStrict {
			// tailstrict forces its arguments eagerly, before the call
			// happens, trading laziness for a flat (non-growing) stack on
			// self-recursive std library functions (spec.md §4.4).
			if _, err := th.Force(); err != nil {
				return nil, err
			}
		}

		args[i] = th
	}

	v, err := it.apply(n.Position(), targetV, names, args)
	if err != nil {
		return nil, withFrame(err, n.Position())
	}

	return v, nil
}

// apply calls a Function or Builtin with positional-then-named arguments
// already thunked, resolving them against the callee's parameter list
// (spec.md §4.4): duplicate or unknown names, and missing required
// parameters, are all static-ish errors raised at call time since
// Jsonnet's name resolution only happens when a call is actually made.
func (it *Interpreter) apply(pos ast.Pos, target value.Value, argNames []string, argVals []*value.Thunk) (value.Value, error) {
	it.depth++
	defer func() { it.depth-- }()

	if it.depth > it.MaxDepth {
		return nil, newError(pos, "max call depth exceeded (infinite recursion?)")
	}

	switch fn := target.(type) {
	case *value.Function:
		return it.applyFunction(pos, fn, argNames, argVals)
	case *value.Builtin:
		bound, err := bindArgs(pos, fn.Params, argNames, argVals)
		if err != nil {
			return nil, err
		}

		ordered := make([]*value.Thunk, len(fn.Params))
		for i, p := range fn.Params {
			ordered[i] = bound[p]
		}

		return fn.Fn(ordered)
	default:
		return nil, newError(pos, "cannot call a %s", target.Type())
	}
}

func (it *Interpreter) applyFunction(pos ast.Pos, fn *value.Function, argNames []string, argVals []*value.Thunk) (value.Value, error) {
	paramNames := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		paramNames[i] = p.Name
	}

	bound, err := bindArgs(pos, paramNames, argNames, argVals)
	if err != nil {
		return nil, err
	}

	callEnv := fn.Env.Extend()

	// Defaults are bound in left-to-right order so a later default may
	// reference an earlier parameter, including one that itself used its
	// default (spec.md §4.4).
	for _, p := range fn.Params {
		if th, ok := bound[p.Name]; ok {
			callEnv.Bind(p.Name, th)

			continue
		}

		if p.Default == nil {
			return nil, newError(pos, "missing argument for required parameter %q", p.Name)
		}

		p := p

		callEnv.Bind(p.Name, value.NewNamedThunk(p.Name, func() (value.Value, error) {
			return it.Eval(p.Default, callEnv)
		}))
	}

	return it.Eval(fn.Body, callEnv)
}

// bindArgs resolves a call's positional-then-named arguments against a
// parameter-name list, returning only the names an argument was actually
// supplied for; callers fill in defaults for the rest.
func bindArgs(pos ast.Pos, paramNames []string, argNames []string, argVals []*value.Thunk) (map[string]*value.Thunk, error) {
	bound := make(map[string]*value.Thunk, len(argVals))

	positionalCount := 0
	for _, n := range argNames {
		if n == "" {
			positionalCount++
		}
	}

	if positionalCount > len(paramNames) {
		return nil, newError(pos, "too many positional arguments: got %d, function accepts %d", positionalCount, len(paramNames))
	}

	for i := 0; i < positionalCount; i++ {
		bound[paramNames[i]] = argVals[i]
	}

	for i := positionalCount; i < len(argNames); i++ {
		name := argNames[i]
		if name == "" {
			return nil, newError(pos, "positional argument follows named argument")
		}

		if !containsName(paramNames, name) {
			return nil, newError(pos, "function has no parameter named %q", name)
		}

		if _, dup := bound[name]; dup {
			return nil, newError(pos, "argument %q bound more than once", name)
		}

		bound[name] = argVals[i]
	}

	return bound, nil
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}

	return false
}
