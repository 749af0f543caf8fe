// Package desugar implements the rewrite pass described in this directory's
// doc.go: see there for the package's role.
package desugar

import "github.com/conneroisu/jsonnet/internal/ast"

// Desugar rewrites a freshly parsed tree into the core form internal/eval
// consumes. It must run exactly once, before any evaluation, per spec.md
// §4.3.
func Desugar(node ast.Node) (ast.Node, error) {
	return desugarNode(node, 0)
}

// desugarNode is the single recursive dispatcher every rewrite rule goes
// through. objLevel counts enclosing object literals: 0 means "not inside
// any object yet", and is what lets rule 1 (the `$` rewrite) both find
// where to inject its synthetic local and detect a `$` used with no
// enclosing object at all.
//
// Unlike the pointer-to-interface, mutate-in-place style of the reference
// this is grounded on, each case returns a new node rather than splicing
// through a *ast.Node — Go interface values don't support the same
// indirection trick cleanly, and a pure rewrite keeps every case a
// self-contained expression instead of an assignment into an out pointer.
func desugarNode(node ast.Node, objLevel int) (ast.Node, error) {
	if node == nil {
		return nil, nil
	}

	switch n := node.(type) {

	// ----- literals and names: no sub-expressions to rewrite -----
	case *ast.Null, *ast.Bool, *ast.Number, *ast.Str, *ast.Var, *ast.Self:
		return n, nil

	case *ast.Dollar:
		if objLevel == 0 {
			return nil, &StaticError{Pos: n.Position(), Message: "$ does not have a meaning here; no enclosing object found"}
		}

		v := &ast.Var{Name: "$"}
		setPos(v, n.Position())

		return v, nil

	case *ast.Super:
		return n, nil

	case *ast.Array:
		elems := make([]ast.Node, len(n.Elements))

		for i, e := range n.Elements {
			d, err := desugarNode(e, objLevel)
			if err != nil {
				return nil, err
			}

			elems[i] = d
		}

		return &ast.Array{base: ast.At(n.Position()), Elements: elems}, nil

	case *ast.ArrayComp:
		return desugarArrayComp(n, objLevel)

	case *ast.Object:
		return desugarObject(n, objLevel)

	case *ast.ObjectComp:
		return desugarObjectComp(n, objLevel)

	case *ast.DesugaredObject:
		panic("desugar: node already desugared")

	case *ast.Binary:
		return desugarBinary(n, objLevel)

	case *ast.Unary:
		expr, err := desugarNode(n.Expr, objLevel)
		if err != nil {
			return nil, err
		}

		return &ast.Unary{base: ast.At(n.Position()), Op: n.Op, Expr: expr}, nil

	case *ast.Conditional:
		cond, err := desugarNode(n.Cond, objLevel)
		if err != nil {
			return nil, err
		}

		trueBranch, err := desugarNode(n.True, objLevel)
		if err != nil {
			return nil, err
		}

		falseBranch := n.False
		if falseBranch == nil {
			falseBranch = nullNode(n.Position())
		}

		falseBranch, err = desugarNode(falseBranch, objLevel)
		if err != nil {
			return nil, err
		}

		return &ast.Conditional{base: ast.At(n.Position()), Cond: cond, True: trueBranch, False: falseBranch}, nil

	case *ast.Local:
		binds, err := desugarBinds(n.Binds, objLevel)
		if err != nil {
			return nil, err
		}

		body, err := desugarNode(n.Body, objLevel)
		if err != nil {
			return nil, err
		}

		return &ast.Local{base: ast.At(n.Position()), Binds: binds, Body: body}, nil

	case *ast.Assert:
		return desugarAssert(n, objLevel)

	case *ast.ErrorExpr:
		expr, err := desugarNode(n.Expr, objLevel)
		if err != nil {
			return nil, err
		}

		return &ast.ErrorExpr{base: ast.At(n.Position()), Expr: expr}, nil

	case *ast.Function:
		return desugarFunction(n, objLevel)

	case *ast.Apply:
		return desugarApply(n, objLevel)

	case *ast.Index:
		target, err := desugarNode(n.Target, objLevel)
		if err != nil {
			return nil, err
		}

		idx, err := desugarNode(n.Index, objLevel)
		if err != nil {
			return nil, err
		}

		return &ast.Index{base: ast.At(n.Position()), Target: target, Index: idx}, nil

	case *ast.SuperIndex:
		idx, err := desugarNode(n.Index, objLevel)
		if err != nil {
			return nil, err
		}

		return &ast.SuperIndex{base: ast.At(n.Position()), Index: idx}, nil

	case *ast.InSuper:
		idx, err := desugarNode(n.Index, objLevel)
		if err != nil {
			return nil, err
		}

		return &ast.InSuper{base: ast.At(n.Position()), Index: idx}, nil

	case *ast.Slice:
		return desugarSlice(n, objLevel)

	case *ast.Import, *ast.ImportStr, *ast.ImportBin:
		return n, nil

	default:
		panic("desugar: unrecognized node type")
	}
}

func desugarBinds(binds []ast.LocalBind, objLevel int) ([]ast.LocalBind, error) {
	out := make([]ast.LocalBind, len(binds))

	for i, b := range binds {
		expr, err := desugarNode(b.Expr, objLevel)
		if err != nil {
			return nil, err
		}

		out[i] = ast.LocalBind{Name: b.Name, Expr: expr}
	}

	return out, nil
}

// desugarBinary implements rule 6 (`%` left alone, runtime-dispatched) and
// rule 7 (`in` → std.objectHasEx); every other operator just has its
// operands recursively desugared.
func desugarBinary(n *ast.Binary, objLevel int) (ast.Node, error) {
	left, err := desugarNode(n.Left, objLevel)
	if err != nil {
		return nil, err
	}

	right, err := desugarNode(n.Right, objLevel)
	if err != nil {
		return nil, err
	}

	if n.Op == ast.BopIn {
		return buildStdCall(n.Position(), "objectHasEx", right, left, boolNode(n.Position(), true)), nil
	}

	return &ast.Binary{base: ast.At(n.Position()), Left: left, Op: n.Op, Right: right}, nil
}

// desugarAssert implements rule 9: `assert cond [: msg]; rest` becomes
// `if cond then rest else error msg`.
func desugarAssert(n *ast.Assert, objLevel int) (ast.Node, error) {
	message := n.Message
	if message == nil {
		message = strNode(n.Position(), defaultAssertMessage)
	}

	cond, err := desugarNode(n.Cond, objLevel)
	if err != nil {
		return nil, err
	}

	rest, err := desugarNode(n.Rest, objLevel)
	if err != nil {
		return nil, err
	}

	msg, err := desugarNode(message, objLevel)
	if err != nil {
		return nil, err
	}

	errNode := &ast.ErrorExpr{base: ast.At(n.Position()), Expr: msg}

	return &ast.Conditional{base: ast.At(n.Position()), Cond: cond, True: rest, False: errNode}, nil
}

// desugarFunction leaves parameter defaults in place per rule 5 — the
// evaluator fills them in lazily at call time — but still needs to
// desugar both the defaults and the body.
func desugarFunction(n *ast.Function, objLevel int) (ast.Node, error) {
	params := make([]ast.Param, len(n.Params))

	for i, p := range n.Params {
		def := p.Default
		if def != nil {
			var err error

			def, err = desugarNode(def, objLevel)
			if err != nil {
				return nil, err
			}
		}

		params[i] = ast.Param{Name: p.Name, Default: def}
	}

	body, err := desugarNode(n.Body, objLevel)
	if err != nil {
		return nil, err
	}

	return &ast.Function{base: ast.At(n.Position()), Params: params, Body: body}, nil
}

func desugarApply(n *ast.Apply, objLevel int) (ast.Node, error) {
	target, err := desugarNode(n.Target, objLevel)
	if err != nil {
		return nil, err
	}

	args := make([]ast.Arg, len(n.Args))

	for i, a := range n.Args {
		expr, err := desugarNode(a.Expr, objLevel)
		if err != nil {
			return nil, err
		}

		args[i] = ast.Arg{Name: a.Name, Expr: expr}
	}

	return &ast.Apply{base: ast.At(n.Position()), Target: target, Args: args, TailStrict: n.TailStrict}, nil
}

// desugarSlice implements rule 8.
func desugarSlice(n *ast.Slice, objLevel int) (ast.Node, error) {
	target, err := desugarNode(n.Target, objLevel)
	if err != nil {
		return nil, err
	}

	begin, err := desugarOrNull(n.BeginIndex, n.Position(), objLevel)
	if err != nil {
		return nil, err
	}

	end, err := desugarOrNull(n.EndIndex, n.Position(), objLevel)
	if err != nil {
		return nil, err
	}

	step, err := desugarOrNull(n.Step, n.Position(), objLevel)
	if err != nil {
		return nil, err
	}

	return buildStdCall(n.Position(), "slice", target, begin, end, step), nil
}

func desugarOrNull(n ast.Node, pos ast.Pos, objLevel int) (ast.Node, error) {
	if n == nil {
		return nullNode(pos), nil
	}

	return desugarNode(n, objLevel)
}

// desugarObject implements rules 1 and 4: field-sugar is already folded
// into Expr by the parser, so this only needs to convert to the
// DesugaredObject shape and inject the synthetic `$` binding at the
// outermost object.
func desugarObject(n *ast.Object, objLevel int) (ast.Node, error) {
	fields := make([]ast.DesugaredField, len(n.Fields))

	for i, f := range n.Fields {
		key := f.Key
		if key == nil {
			key = strNode(f.Pos, f.Name)
		}

		key, err := desugarNode(key, objLevel)
		if err != nil {
			return nil, err
		}

		expr, err := desugarNode(f.Expr, objLevel+1)
		if err != nil {
			return nil, err
		}

		fields[i] = ast.DesugaredField{Key: key, Hide: f.Hide, PlusSuper: f.PlusSuper, Expr: expr}
	}

	asserts := make([]ast.Node, len(n.Asserts))

	for i, a := range n.Asserts {
		d, err := desugarNode(a, objLevel+1)
		if err != nil {
			return nil, err
		}

		asserts[i] = d
	}

	locals, err := desugarBinds(n.Locals, objLevel+1)
	if err != nil {
		return nil, err
	}

	if objLevel == 0 {
		self := &ast.Self{}
		setPos(self, n.Position())
		locals = append(locals, ast.LocalBind{Name: "$", Expr: self})
	}

	return &ast.DesugaredObject{base: ast.At(n.Position()), Locals: locals, Asserts: asserts, Fields: fields}, nil
}
