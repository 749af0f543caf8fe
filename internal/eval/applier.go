package eval

import (
	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/value"
)

// Apply, Format, and Manifest implement internal/stdlib.Applier: the
// callback surface native standard-library functions (map, filter,
// foldl, format, toString, ...) need back into the evaluator, satisfied
// structurally so internal/stdlib never has to import internal/eval.

// Apply calls fn (a user Function or another Builtin) with purely
// positional arguments — every std-library caller already resolved
// names on the Jsonnet side, if any.
func (it *Interpreter) Apply(pos ast.Pos, fn value.Value, args []*value.Thunk) (value.Value, error) {
	names := make([]string, len(args))

	return it.apply(pos, fn, names, args)
}

// ApplyNamed calls fn with named arguments, for pkg/jsonnet's top-level
// argument binding (-A/--tla-str, --tla-code), which — unlike every
// in-language call site — has no AST Apply node to desugar names from.
func (it *Interpreter) ApplyNamed(pos ast.Pos, fn value.Value, names []string, args []*value.Thunk) (value.Value, error) {
	return it.apply(pos, fn, names, args)
}

// Format runs the `%` operator's string-formatting half directly, for
// std.format (which has no syntax of its own to desugar to — it's the
// operator by another name).
func (it *Interpreter) Format(pos ast.Pos, format string, arg value.Value) (string, error) {
	args, single := percentArgs(arg)

	return formatString(pos, format, args, single)
}

// Manifest renders v as JSON, for std.toString and std.manifestJsonEx.
func (it *Interpreter) Manifest(v value.Value, indent int) (string, error) {
	return it.ManifestJSON(v, indent)
}

// ExtVar looks up an external variable bound via EvalOptions.ExtVars /
// ExtCodes, for std.extVar. An unbound name is a runtime error rather than
// null, matching real Jsonnet's "undefined external variable" behavior.
func (it *Interpreter) ExtVar(name string) (value.Value, error) {
	th, ok := it.ExtVars[name]
	if !ok {
		return nil, newError(ast.Pos{}, "undefined external variable: %q", name)
	}

	return th.Force()
}
