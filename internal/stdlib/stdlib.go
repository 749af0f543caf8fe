// Package stdlib builds the `std` object every Jsonnet program sees
// implicitly bound, the same role gix's registerBuiltins plays for Nix's
// builtin set (_examples/conneroisu-gix/pkg/eval/builtins.go): a
// table-driven registration pass producing native value.Builtin entries,
// generalized here from a flat builtins map to a genuine value.Object so
// std behaves like any other Jsonnet object (std.length is a field lookup,
// not a magic form).
//
// A handful of entries — map/filter/foldl/foldr/flatMap, format,
// manifestJsonEx — need to call back into the evaluator to apply user
// functions or reuse operator semantics. internal/eval implements
// Applier and passes itself in, rather than stdlib importing eval
// directly, to avoid a cycle (eval already imports stdlib's Std field
// type from internal/value, not from here).
package stdlib

import (
	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/value"
)

// Applier is the callback surface stdlib needs from internal/eval:
// applying a Jsonnet function value to already-thunked arguments,
// running the `%` format operator, rendering a value as JSON, and looking
// up an external variable — all four are evaluator concerns (they need position/error context and
// the same recursive Eval dispatcher a plain builtin doesn't have).
type Applier interface {
	Apply(pos ast.Pos, fn value.Value, args []*value.Thunk) (value.Value, error)
	Format(pos ast.Pos, format string, arg value.Value) (string, error)
	Manifest(v value.Value, indent int) (string, error)
	ExtVar(name string) (value.Value, error)
}

// New builds the std object. Its thisFile field holds a placeholder "";
// internal/eval.Interpreter.RootEnv rebinds it per file, since thisFile is
// the one field that is genuinely per-import rather than shared.
func New(applier Applier) *value.Object {
	b := &builder{applier: applier, fields: map[string]*value.FieldEntry{}}

	b.registerConstants()
	b.registerTypes()
	b.registerCollections()
	b.registerStrings()
	b.registerObjects()
	b.registerMath()

	b.fn("extVar", []string{"x"}, func(args []*value.Thunk) (value.Value, error) {
		v, err := forceArg("extVar", args[0])
		if err != nil {
			return nil, err
		}

		name, err := asString("extVar", v)
		if err != nil {
			return nil, err
		}

		return b.applier.ExtVar(name)
	})

	return b.build()
}

type builder struct {
	applier Applier
	names   []string
	fields  map[string]*value.FieldEntry
}

func (b *builder) build() *value.Object {
	return &value.Object{Names: b.names, Fields: b.fields}
}

// fn registers a native function field of std. params names its formal
// parameters in call order, for named-argument support at call sites
// (spec.md §4.4).
func (b *builder) fn(name string, params []string, impl func(args []*value.Thunk) (value.Value, error)) {
	builtin := &value.Builtin{Name: name, Params: params, Fn: impl}
	b.set(name, value.Ready(builtin))
}

// constant registers a plain (non-function) field of std, e.g.
// std.thisFile's placeholder or any future std.* data constant.
func (b *builder) constant(name string, v value.Value) {
	b.set(name, value.Ready(v))
}

func (b *builder) set(name string, th *value.Thunk) {
	if _, exists := b.fields[name]; !exists {
		b.names = append(b.names, name)
	}

	def := value.FieldDef{
		Hide: ast.ObjectFieldHidden,
		Build: func(self, super *value.Object) *value.Thunk {
			return th
		},
	}
	b.fields[name] = &value.FieldEntry{Def: def, Value: th}
}

func argErr(name, msg string) error {
	return &stdError{name: name, msg: msg}
}

type stdError struct {
	name string
	msg  string
}

func (e *stdError) Error() string { return "std." + e.name + ": " + e.msg }
