// Package jsonnet is the embedding API (spec.md §6): Evaluate and
// EvaluateToValue run a complete lex → parse → desugar → evaluate →
// manifest pipeline over a Jsonnet source document, the way gix's
// pkg/eval.New(baseDir) + Evaluator.Eval gives callers a single
// entry point over its own lex → parse → eval pipeline
// (_examples/conneroisu-gix/pkg/eval/evaluator.go), generalized here to
// Jsonnet's additional desugar stage and richer option set.
package jsonnet

import (
	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/desugar"
	"github.com/conneroisu/jsonnet/internal/diag"
	"github.com/conneroisu/jsonnet/internal/eval"
	"github.com/conneroisu/jsonnet/internal/importer"
	"github.com/conneroisu/jsonnet/internal/stdlib"
	"github.com/conneroisu/jsonnet/internal/value"
	"github.com/conneroisu/jsonnet/pkg/parser"
)

// EvalOptions configures one evaluation run (spec.md §6). The zero value
// is a usable default: no external variables, no top-level arguments, the
// evaluator's own default stack bound, compact non-string JSON output,
// and a filesystem importer with no extra search paths.
type EvalOptions struct {
	// ExtVars binds `std.extVar(name)` to a plain string value.
	ExtVars map[string]string
	// ExtCodes binds `std.extVar(name)` to the result of evaluating a
	// Jsonnet expression, as its own standalone program.
	ExtCodes map[string]string
	// TLAVars/TLACodes supply named arguments to a top-level function
	// value, the same string-vs-code split as ExtVars/ExtCodes.
	TLAVars  map[string]string
	TLACodes map[string]string
	// SearchPaths are tried, in order, after an importing file's own
	// directory, when resolving import/importstr/importbin paths.
	SearchPaths []string
	// Importer overrides the default filesystem resolver entirely, for
	// embedders who supply their own (e.g. an in-memory source set).
	Importer eval.Importer
	// MaxStack overrides the evaluator's call-depth bound; 0 keeps the
	// evaluator's own default.
	MaxStack int
	// Indent is the number of spaces per JSON nesting level; 0 produces
	// compact output with no inserted whitespace.
	Indent int
	// StringOutput requires the manifested top-level value to be a
	// Jsonnet string and emits it unquoted, per spec.md §4.7/§6.
	StringOutput bool
}

// Evaluate runs source (named origin, for error positions and relative
// import resolution) through the full pipeline and returns manifested
// JSON text, or string output per opts.StringOutput.
func Evaluate(source, origin string, opts EvalOptions) (string, error) {
	v, it, err := evalToValue(source, origin, opts)
	if err != nil {
		return "", err
	}

	if opts.StringOutput {
		s, ok := v.(value.String)
		if !ok {
			return "", diag.Errorf(diag.CodeRuntime, ast.Pos{}, "string_output requires the top-level value to be a string, got %s", v.Type())
		}

		return string(s), nil
	}

	out, err := it.ManifestJSON(v, opts.Indent)
	if err != nil {
		return "", diag.FromError(diag.CodeRuntime, err)
	}

	return out, nil
}

// EvaluateToValue runs the pipeline but stops short of JSON manifestation,
// returning the host-side value.Value tree for callers who want to walk
// or convert it themselves rather than re-parse JSON text.
func EvaluateToValue(source, origin string, opts EvalOptions) (value.Value, error) {
	v, _, err := evalToValue(source, origin, opts)

	return v, err
}

func evalToValue(source, origin string, opts EvalOptions) (value.Value, *eval.Interpreter, error) {
	node, err := parser.ParseString(origin, source)
	if err != nil {
		return nil, nil, diag.FromError(diag.CodeParse, err)
	}

	desugared, err := desugar.Desugar(node)
	if err != nil {
		return nil, nil, diag.FromError(diag.CodeStatic, err)
	}

	imp := opts.Importer
	if imp == nil {
		imp = importer.NewFileResolver(opts.SearchPaths...)
	}

	it := eval.New(nil, imp)
	it.Std = stdlib.New(it)

	if opts.MaxStack > 0 {
		it.MaxDepth = opts.MaxStack
	}

	bindExtVars(it, opts)

	result, err := it.Eval(desugared, it.RootEnv(origin))
	if err != nil {
		return nil, nil, diag.FromError(diag.CodeRuntime, err)
	}

	result, err = applyTLA(it, result, opts)
	if err != nil {
		return nil, nil, diag.FromError(diag.CodeRuntime, err)
	}

	return result, it, nil
}

// bindExtVars populates it.ExtVars from opts.ExtVars (plain strings) and
// opts.ExtCodes (each evaluated lazily, as its own standalone Jsonnet
// program, so one external variable's code cannot see another's or the
// main program's bindings).
func bindExtVars(it *eval.Interpreter, opts EvalOptions) {
	for name, s := range opts.ExtVars {
		it.ExtVars[name] = value.Ready(value.String(s))
	}

	for name, code := range opts.ExtCodes {
		name, code := name, code

		it.ExtVars[name] = value.NewThunk(func() (value.Value, error) {
			return evalStandaloneCode(it, name, code)
		})
	}
}

// evalStandaloneCode parses and evaluates an ext-code/TLA-code fragment as
// its own program, sharing only the interpreter (std, importer, depth
// bound) with the outer evaluation — not its lexical environment.
func evalStandaloneCode(it *eval.Interpreter, name, code string) (value.Value, error) {
	origin := "<" + name + ">"

	node, err := parser.ParseString(origin, code)
	if err != nil {
		return nil, diag.FromError(diag.CodeParse, err)
	}

	desugared, err := desugar.Desugar(node)
	if err != nil {
		return nil, diag.FromError(diag.CodeStatic, err)
	}

	return it.Eval(desugared, it.RootEnv(origin))
}

// applyTLA applies top-level-argument bindings to v, if any were given; v
// must then be callable, matching real Jsonnet's `-A`/`--tla-*` CLI
// semantics. With no TLA options set, v is returned unchanged even if it
// happens to be a function (spec.md doesn't require every program to take
// arguments).
func applyTLA(it *eval.Interpreter, v value.Value, opts EvalOptions) (value.Value, error) {
	if len(opts.TLAVars) == 0 && len(opts.TLACodes) == 0 {
		return v, nil
	}

	names := make([]string, 0, len(opts.TLAVars)+len(opts.TLACodes))
	args := make([]*value.Thunk, 0, cap(names))

	for name, s := range opts.TLAVars {
		names = append(names, name)
		args = append(args, value.Ready(value.String(s)))
	}

	for name, code := range opts.TLACodes {
		name, code := name, code
		names = append(names, name)
		args = append(args, value.NewThunk(func() (value.Value, error) {
			return evalStandaloneCode(it, name, code)
		}))
	}

	return it.ApplyNamed(ast.Pos{}, v, names, args)
}
