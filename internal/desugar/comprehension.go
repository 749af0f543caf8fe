package desugar

import "github.com/conneroisu/jsonnet/internal/ast"

// desugarArrayComp implements rule 3: `[ body for x in e if c ... ]`
// becomes a chain of std.flatMap calls, one per `for`, with consecutive
// `if` clauses folded into a single filtering Conditional.
func desugarArrayComp(n *ast.ArrayComp, objLevel int) (ast.Node, error) {
	body, err := desugarNode(n.Body, objLevel)
	if err != nil {
		return nil, err
	}

	return desugarCompSpecs(n.Specs, body, objLevel)
}

// desugarObjectComp implements rule 2: the comprehension's lone field is
// turned into a single-field DesugaredObject, expanded into an array of
// those exactly like an array comprehension would be, then merged down
// with std.foldl and `+` — object-inheritance semantics do the actual
// merging, so this never needs a dedicated merge builtin.
func desugarObjectComp(n *ast.ObjectComp, objLevel int) (ast.Node, error) {
	pos := n.Position()

	single, err := desugarObjectCompField(n, objLevel)
	if err != nil {
		return nil, err
	}

	expanded, err := desugarCompSpecs(n.Specs, single, objLevel)
	if err != nil {
		return nil, err
	}

	accName, elemName := "acc", "o"
	acc := &ast.Var{Name: accName}
	setPos(acc, pos)

	elem := &ast.Var{Name: elemName}
	setPos(elem, pos)

	merge := &ast.Binary{Left: acc, Op: ast.BopAdd, Right: elem}
	setPos(merge, pos)

	mergeFn := &ast.Function{Params: []ast.Param{{Name: accName}, {Name: elemName}}, Body: merge}
	setPos(mergeFn, pos)

	return buildStdCall(pos, "foldl", mergeFn, expanded, &ast.DesugaredObject{base: ast.At(pos)}), nil
}

// desugarObjectCompField builds the one-field DesugaredObject an object
// comprehension's body evaluates to on each iteration, reusing the same
// field/locals/$-binding conversion desugarObject applies to plain
// objects.
func desugarObjectCompField(n *ast.ObjectComp, objLevel int) (ast.Node, error) {
	f := n.Field

	key, err := desugarNode(f.Key, objLevel)
	if err != nil {
		return nil, err
	}

	expr, err := desugarNode(f.Expr, objLevel+1)
	if err != nil {
		return nil, err
	}

	field := ast.DesugaredField{Key: key, Hide: f.Hide, PlusSuper: f.PlusSuper, Expr: expr}

	locals, err := desugarBinds(n.Locals, objLevel+1)
	if err != nil {
		return nil, err
	}

	if objLevel == 0 {
		self := &ast.Self{}
		setPos(self, n.Position())
		locals = append(locals, ast.LocalBind{Name: "$", Expr: self})
	}

	return &ast.DesugaredObject{
		base:   ast.At(n.Position()),
		Locals: locals,
		Fields: []ast.DesugaredField{field},
	}, nil
}

// desugarCompSpecs walks a comprehension's for/if clauses left to right —
// the leftmost for is outermost — producing nested std.flatMap calls with
// if-clauses folded into a filtering Conditional whose false branch is an
// empty array, so a failed filter simply contributes nothing to the
// surrounding flatMap.
func desugarCompSpecs(specs []ast.CompSpec, body ast.Node, objLevel int) (ast.Node, error) {
	if len(specs) == 0 {
		return wrapInArray(body.Position(), body), nil
	}

	spec := specs[0]
	pos := spec.Expr.Position()

	switch spec.Kind {
	case ast.CompFor:
		rest, err := desugarCompSpecs(specs[1:], body, objLevel)
		if err != nil {
			return nil, err
		}

		expr, err := desugarNode(spec.Expr, objLevel)
		if err != nil {
			return nil, err
		}

		fn := simpleLambda(pos, spec.VarName, rest)

		return buildStdCall(pos, "flatMap", fn, expr), nil

	case ast.CompIf:
		cond, err := desugarNode(spec.Expr, objLevel)
		if err != nil {
			return nil, err
		}

		i := 0
		for i+1 < len(specs) && specs[i+1].Kind == ast.CompIf {
			next, err := desugarNode(specs[i+1].Expr, objLevel)
			if err != nil {
				return nil, err
			}

			cond = buildAnd(pos, cond, next)
			i++
		}

		rest, err := desugarCompSpecs(specs[i+1:], body, objLevel)
		if err != nil {
			return nil, err
		}

		return &ast.Conditional{base: ast.At(pos), Cond: cond, True: rest, False: emptyArray(pos)}, nil

	default:
		panic("desugar: unrecognized comprehension clause kind")
	}
}
