package eval

import (
	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/value"
)

// defaultMaxDepth bounds the call stack; exceeding it raises a
// RuntimeError instead of overflowing the Go stack (spec.md §4.4).
const defaultMaxDepth = 500

// Importer resolves `import`/`importstr`/`importbin` paths. internal/importer
// provides the default, filesystem-backed implementation; tests and
// embedders may supply their own.
type Importer interface {
	// Resolve returns the contents of path as seen from fromFile (the
	// importing file's canonical path, "" for the root program) and the
	// resolved file's own canonical path, used both for std.thisFile and
	// as the import cache key.
	Resolve(fromFile, path string) (contents string, canonical string, err error)
}

// Interpreter holds everything an evaluation run shares across the whole
// tree: the standard library object, external variables, the importer,
// and the call-depth bound. One Interpreter evaluates one top-level
// program, imports included.
type Interpreter struct {
	Std      *value.Object
	Importer Importer
	ExtVars  map[string]*value.Thunk
	MaxDepth int

	depth int

	importCache map[string]*value.Thunk
}

// New creates an Interpreter. std may be nil for tests that don't touch
// the standard library; internal/stdlib.New populates it for real use.
func New(std *value.Object, importer Importer) *Interpreter {
	return &Interpreter{
		Std:         std,
		Importer:    importer,
		ExtVars:     map[string]*value.Thunk{},
		MaxDepth:    defaultMaxDepth,
		importCache: map[string]*value.Thunk{},
	}
}

// RootEnv builds the environment a top-level program (or import) starts
// evaluating in: std bound as a name (with thisFile pinned to file), no
// self/super frame.
func (it *Interpreter) RootEnv(file string) *value.Environment {
	env := value.NewRootEnvironment().WithFile(file)

	if it.Std != nil {
		env.Bind("std", value.Ready(stdWithThisFile(it.Std, file)))
	}

	return env
}

// stdWithThisFile returns a shallow copy of std with its thisFile field
// rebound to file — the one piece of the standard library object that is
// genuinely per-file rather than shared (spec.md §4.8).
func stdWithThisFile(std *value.Object, file string) *value.Object {
	if std == nil || file == "" {
		return std
	}

	fe, ok := std.Fields["thisFile"]
	if !ok {
		return std
	}

	fields := make(map[string]*value.FieldEntry, len(std.Fields))
	for k, v := range std.Fields {
		fields[k] = v
	}

	fields["thisFile"] = &value.FieldEntry{Def: fe.Def, Value: value.Ready(value.String(file))}

	return &value.Object{Names: std.Names, Fields: fields, Asserts: std.Asserts}
}

// Eval is the single recursive dispatcher every node kind goes through.
// It never returns a bare Thunk — laziness lives inside Array elements,
// object fields, function arguments, and local bindings, each of which
// wraps a deferred call back into Eval.
func (it *Interpreter) Eval(node ast.Node, env *value.Environment) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Null:
		return value.Null{}, nil
	case *ast.Bool:
		return value.Bool(n.Value), nil
	case *ast.Number:
		return value.Number(n.Value), nil
	case *ast.Str:
		return value.String(n.Value), nil
	case *ast.Var:
		return it.evalVar(n, env)
	case *ast.Self:
		self, ok := env.Self()
		if !ok {
			return nil, newError(n.Position(), "self outside an object")
		}

		return self, nil
	case *ast.Array:
		return it.evalArray(n, env)
	case *ast.DesugaredObject:
		return it.evalObject(n, env, nil)
	case *ast.Binary:
		return it.evalBinary(n, env)
	case *ast.Unary:
		return it.evalUnary(n, env)
	case *ast.Conditional:
		return it.evalConditional(n, env)
	case *ast.Local:
		return it.evalLocal(n, env)
	case *ast.ErrorExpr:
		return it.evalError(n, env)
	case *ast.Function:
		return &value.Function{Params: n.Params, Body: n.Body, Env: env}, nil
	case *ast.Apply:
		return it.evalApply(n, env)
	case *ast.Index:
		return it.evalIndex(n, env)
	case *ast.SuperIndex:
		return it.evalSuperIndex(n, env)
	case *ast.InSuper:
		return it.evalInSuper(n, env)
	case *ast.Import:
		return it.evalImport(n, env)
	case *ast.ImportStr:
		return it.evalImportStr(n, env)
	case *ast.ImportBin:
		return it.evalImportBin(n, env)
	default:
		return nil, newError(node.Position(), "internal error: unevaluable node %T (did desugaring run?)", node)
	}
}

func (it *Interpreter) evalVar(n *ast.Var, env *value.Environment) (value.Value, error) {
	th, ok := env.Lookup(n.Name)
	if !ok {
		return nil, newError(n.Position(), "unknown variable %q", n.Name)
	}

	v, err := th.Force()
	if err != nil {
		return nil, withFrame(err, n.Position())
	}

	return v, nil
}

func (it *Interpreter) evalArray(n *ast.Array, env *value.Environment) (value.Value, error) {
	elems := make([]*value.Thunk, len(n.Elements))

	for i, e := range n.Elements {
		e := e
		elems[i] = value.NewThunk(func() (value.Value, error) { return it.Eval(e, env) })
	}

	return &value.Array{Elements: elems}, nil
}

func (it *Interpreter) evalConditional(n *ast.Conditional, env *value.Environment) (value.Value, error) {
	condV, err := it.Eval(n.Cond, env)
	if err != nil {
		return nil, err
	}

	cond, ok := condV.(value.Bool)
	if !ok {
		return nil, newError(n.Position(), "condition must be a boolean, got %s", condV.Type())
	}

	if cond {
		return it.Eval(n.True, env)
	}

	return it.Eval(n.False, env)
}

func (it *Interpreter) evalLocal(n *ast.Local, env *value.Environment) (value.Value, error) {
	inner := env.Extend()

	for _, b := range n.Binds {
		b := b
		inner.Bind(b.Name, value.NewNamedThunk(b.Name, func() (value.Value, error) {
			return it.Eval(b.Expr, inner)
		}))
	}

	return it.Eval(n.Body, inner)
}

func (it *Interpreter) evalError(n *ast.ErrorExpr, env *value.Environment) (value.Value, error) {
	v, err := it.Eval(n.Expr, env)
	if err != nil {
		return nil, err
	}

	msg, err := it.toDisplayString(n.Position(), v)
	if err != nil {
		return nil, err
	}

	return nil, newError(n.Position(), "%s", msg)
}
