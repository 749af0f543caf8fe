package eval

import (
	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/desugar"
	"github.com/conneroisu/jsonnet/internal/value"
	"github.com/conneroisu/jsonnet/pkg/parser"
)

func (it *Interpreter) evalImport(n *ast.Import, env *value.Environment) (value.Value, error) {
	if it.Importer == nil {
		return nil, newError(n.Position(), "no importer configured, cannot import %q", n.Path)
	}

	contents, canonical, err := it.Importer.Resolve(env.File(), n.Path)
	if err != nil {
		return nil, newError(n.Position(), "%s", err.Error())
	}

	// Cache by canonical path: two imports of the same file anywhere in
	// the program share one parsed-and-evaluated thunk (spec.md §5), so
	// side-effect-free re-evaluation never happens twice and, more
	// importantly, object identity is preserved for `==` on imported
	// values.
	if th, ok := it.importCache[canonical]; ok {
		v, err := th.Force()
		if err != nil {
			return nil, withFrame(err, n.Position())
		}

		return v, nil
	}

	th := value.NewNamedThunk(canonical, func() (value.Value, error) {
		return it.evalFile(contents, canonical)
	})
	it.importCache[canonical] = th

	v, err := th.Force()
	if err != nil {
		return nil, withFrame(err, n.Position())
	}

	return v, nil
}

func (it *Interpreter) evalFile(contents, canonical string) (value.Value, error) {
	raw, err := parser.ParseString(canonical, contents)
	if err != nil {
		return nil, newError(ast.Pos{}, "%s: %s", canonical, err.Error())
	}

	core, err := desugar.Desugar(raw)
	if err != nil {
		return nil, newError(ast.Pos{}, "%s: %s", canonical, err.Error())
	}

	return it.Eval(core, it.RootEnv(canonical))
}

func (it *Interpreter) evalImportStr(n *ast.ImportStr, env *value.Environment) (value.Value, error) {
	if it.Importer == nil {
		return nil, newError(n.Position(), "no importer configured, cannot importstr %q", n.Path)
	}

	contents, _, err := it.Importer.Resolve(env.File(), n.Path)
	if err != nil {
		return nil, newError(n.Position(), "%s", err.Error())
	}

	return value.String(contents), nil
}

func (it *Interpreter) evalImportBin(n *ast.ImportBin, env *value.Environment) (value.Value, error) {
	if it.Importer == nil {
		return nil, newError(n.Position(), "no importer configured, cannot importbin %q", n.Path)
	}

	contents, _, err := it.Importer.Resolve(env.File(), n.Path)
	if err != nil {
		return nil, newError(n.Position(), "%s", err.Error())
	}

	elems := make([]*value.Thunk, len(contents))
	for i := 0; i < len(contents); i++ {
		elems[i] = value.Ready(value.Number(float64(contents[i])))
	}

	return &value.Array{Elements: elems}, nil
}
