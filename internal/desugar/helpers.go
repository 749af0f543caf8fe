package desugar

import "github.com/conneroisu/jsonnet/internal/ast"

const defaultAssertMessage = "Object assertion failed."

func strNode(pos ast.Pos, value string) ast.Node {
	n := &ast.Str{Value: value}
	setPos(n, pos)

	return n
}

func boolNode(pos ast.Pos, value bool) ast.Node {
	n := &ast.Bool{Value: value}
	setPos(n, pos)

	return n
}

func nullNode(pos ast.Pos) ast.Node {
	n := &ast.Null{}
	setPos(n, pos)

	return n
}

// setPos back-patches the position of a node built without one handy; all
// of our synthetic nodes are built with struct literals that skip `base`,
// so this keeps their positions pointing at the construct that produced
// them instead of the zero position.
func setPos(n ast.Node, pos ast.Pos) {
	switch n := n.(type) {
	case *ast.Str:
		n.Pos = pos
	case *ast.Bool:
		n.Pos = pos
	case *ast.Null:
		n.Pos = pos
	case *ast.Self:
		n.Pos = pos
	case *ast.Var:
		n.Pos = pos
	case *ast.Index:
		n.Pos = pos
	case *ast.Apply:
		n.Pos = pos
	case *ast.Function:
		n.Pos = pos
	case *ast.Array:
		n.Pos = pos
	case *ast.Conditional:
		n.Pos = pos
	case *ast.Binary:
		n.Pos = pos
	case *ast.ErrorExpr:
		n.Pos = pos
	case *ast.DesugaredObject:
		n.Pos = pos
	}
}

// wrapInArray builds a single-element array literal, used by comprehension
// desugaring to seed the flatMap chain.
func wrapInArray(pos ast.Pos, inside ast.Node) ast.Node {
	n := &ast.Array{Elements: []ast.Node{inside}}
	setPos(n, pos)

	return n
}

func emptyArray(pos ast.Pos) ast.Node {
	n := &ast.Array{}
	setPos(n, pos)

	return n
}

// simpleLambda builds `function(param) body`.
func simpleLambda(pos ast.Pos, param string, body ast.Node) ast.Node {
	n := &ast.Function{Params: []ast.Param{{Name: param}}, Body: body}
	setPos(n, pos)

	return n
}

func buildAnd(pos ast.Pos, left, right ast.Node) ast.Node {
	n := &ast.Binary{Left: left, Op: ast.BopAnd, Right: right}
	setPos(n, pos)

	return n
}

// buildStdCall builds `std.<name>(args...)`, the shape every desugared
// stdlib dispatch (objectHasEx, slice, flatMap, foldl, ...) takes.
func buildStdCall(pos ast.Pos, name string, args ...ast.Node) ast.Node {
	std := &ast.Var{Name: "std"}
	setPos(std, pos)

	member := &ast.Index{Target: std, Index: strNode(pos, name)}
	setPos(member, pos)

	argList := make([]ast.Arg, len(args))
	for i, a := range args {
		argList[i] = ast.Arg{Expr: a}
	}

	apply := &ast.Apply{Target: member, Args: argList}
	setPos(apply, pos)

	return apply
}
