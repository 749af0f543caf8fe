package eval

import (
	"fmt"
	"math"

	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/value"
)

func (it *Interpreter) evalBinary(n *ast.Binary, env *value.Environment) (value.Value, error) {
	// && and || short-circuit: the right operand must not be evaluated
	// (never mind forced) unless the left doesn't already decide it.
	if n.Op == ast.BopAnd || n.Op == ast.BopOr {
		leftV, err := it.Eval(n.Left, env)
		if err != nil {
			return nil, err
		}

		left, ok := leftV.(value.Bool)
		if !ok {
			return nil, newError(n.Position(), "binary operand must be a boolean, got %s", leftV.Type())
		}

		if n.Op == ast.BopAnd && !bool(left) {
			return value.Bool(false), nil
		}

		if n.Op == ast.BopOr && bool(left) {
			return value.Bool(true), nil
		}

		rightV, err := it.Eval(n.Right, env)
		if err != nil {
			return nil, err
		}

		right, ok := rightV.(value.Bool)
		if !ok {
			return nil, newError(n.Position(), "binary operand must be a boolean, got %s", rightV.Type())
		}

		return right, nil
	}

	leftV, err := it.Eval(n.Left, env)
	if err != nil {
		return nil, err
	}

	rightV, err := it.Eval(n.Right, env)
	if err != nil {
		return nil, err
	}

	return it.applyBinary(n.Position(), n.Op, leftV, rightV)
}

func (it *Interpreter) applyBinary(pos ast.Pos, op ast.BinaryOp, leftV, rightV value.Value) (value.Value, error) {
	switch op {
	case ast.BopAdd:
		return it.evalAdd(pos, leftV, rightV)
	case ast.BopSub:
		l, r, err := bothNumbers(pos, leftV, rightV)
		if err != nil {
			return nil, err
		}

		return value.Number(l - r), nil
	case ast.BopMul:
		l, r, err := bothNumbers(pos, leftV, rightV)
		if err != nil {
			return nil, err
		}

		return value.Number(l * r), nil
	case ast.BopDiv:
		l, r, err := bothNumbers(pos, leftV, rightV)
		if err != nil {
			return nil, err
		}

		if r == 0 {
			return nil, newError(pos, "division by zero")
		}

		return value.Number(l / r), nil
	case ast.BopPercent:
		return it.evalPercent(pos, leftV, rightV)
	case ast.BopShiftL, ast.BopShiftR, ast.BopBitAnd, ast.BopBitXor, ast.BopBitOr:
		return evalBitwise(pos, op, leftV, rightV)
	case ast.BopEqEq:
		eq, err := valuesEqual(pos, leftV, rightV)
		if err != nil {
			return nil, err
		}

		return value.Bool(eq), nil
	case ast.BopNotEq:
		eq, err := valuesEqual(pos, leftV, rightV)
		if err != nil {
			return nil, err
		}

		return value.Bool(!eq), nil
	case ast.BopLess, ast.BopLessEq, ast.BopGreater, ast.BopGreaterEq:
		return evalCompare(pos, op, leftV, rightV)
	default:
		return nil, newError(pos, "unsupported binary operator %s", op)
	}
}

func (it *Interpreter) evalAdd(pos ast.Pos, leftV, rightV value.Value) (value.Value, error) {
	v, err := addValues(leftV, rightV)
	if err != nil {
		if _, ok := err.(*RuntimeError); ok {
			return nil, withFrame(err, pos)
		}

		return nil, newError(pos, "%s", err.Error())
	}

	return v, nil
}

// addValues implements `+` across every type it is defined for (spec.md
// §4.4/§4.6): numeric addition, string concatenation (with the other
// operand stringified if only one side is a string), array concatenation,
// and object merge. It has no position of its own — callers that can
// supply one wrap the returned error.
func addValues(leftV, rightV value.Value) (value.Value, error) {
	switch l := leftV.(type) {
	case value.Number:
		r, ok := rightV.(value.Number)
		if !ok {
			return nil, errTypeMismatch("+", leftV, rightV)
		}

		return value.Number(l + r), nil
	case value.String:
		rs, err := stringify(rightV)
		if err != nil {
			return nil, err
		}

		return value.String(string(l) + rs), nil
	case *value.Array:
		if r, ok := rightV.(*value.Array); ok {
			elems := make([]*value.Thunk, 0, len(l.Elements)+len(r.Elements))
			elems = append(elems, l.Elements...)
			elems = append(elems, r.Elements...)

			return &value.Array{Elements: elems}, nil
		}

		return nil, errTypeMismatch("+", leftV, rightV)
	case *value.Object:
		r, ok := rightV.(*value.Object)
		if !ok {
			return nil, errTypeMismatch("+", leftV, rightV)
		}

		return mergeObjects(l, r), nil
	default:
		if rs, ok := rightV.(value.String); ok {
			ls, err := stringify(leftV)
			if err != nil {
				return nil, err
			}

			return value.String(ls + string(rs)), nil
		}

		return nil, errTypeMismatch("+", leftV, rightV)
	}
}

func stringify(v value.Value) (string, error) {
	if s, ok := v.(value.String); ok {
		return string(s), nil
	}

	return manifestCompact(v)
}

func errTypeMismatch(op string, l, r value.Value) error {
	return fmt.Errorf("%s is not defined for %s and %s", op, l.Type(), r.Type())
}

func bothNumbers(pos ast.Pos, leftV, rightV value.Value) (float64, float64, error) {
	l, ok := leftV.(value.Number)
	if !ok {
		return 0, 0, newError(pos, "left operand must be a number, got %s", leftV.Type())
	}

	r, ok := rightV.(value.Number)
	if !ok {
		return 0, 0, newError(pos, "right operand must be a number, got %s", rightV.Type())
	}

	return float64(l), float64(r), nil
}

func toInt64(pos ast.Pos, v value.Value, side string) (int64, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, newError(pos, "%s operand must be a number, got %s", side, v.Type())
	}

	f := float64(n)
	if f != math.Trunc(f) {
		return 0, newError(pos, "%s operand of a bitwise operator must be an integer, got %v", side, f)
	}

	return int64(f), nil
}

func evalBitwise(pos ast.Pos, op ast.BinaryOp, leftV, rightV value.Value) (value.Value, error) {
	l, err := toInt64(pos, leftV, "left")
	if err != nil {
		return nil, err
	}

	r, err := toInt64(pos, rightV, "right")
	if err != nil {
		return nil, err
	}

	switch op {
	case ast.BopShiftL:
		return value.Number(l << uint(r)), nil
	case ast.BopShiftR:
		return value.Number(l >> uint(r)), nil
	case ast.BopBitAnd:
		return value.Number(l & r), nil
	case ast.BopBitXor:
		return value.Number(l ^ r), nil
	case ast.BopBitOr:
		return value.Number(l | r), nil
	default:
		return nil, newError(pos, "unreachable bitwise operator %s", op)
	}
}

func evalCompare(pos ast.Pos, op ast.BinaryOp, leftV, rightV value.Value) (value.Value, error) {
	c, err := compareValues(pos, leftV, rightV)
	if err != nil {
		return nil, err
	}

	switch op {
	case ast.BopLess:
		return value.Bool(c < 0), nil
	case ast.BopLessEq:
		return value.Bool(c <= 0), nil
	case ast.BopGreater:
		return value.Bool(c > 0), nil
	case ast.BopGreaterEq:
		return value.Bool(c >= 0), nil
	default:
		return nil, newError(pos, "unreachable comparison operator %s", op)
	}
}

// compareValues orders numbers, strings (byte-wise), and arrays
// (lexicographically, recursing on elements); any other pairing is a
// type error (spec.md §4.4 — comparison is not defined across types, or
// for objects/functions at all).
func compareValues(pos ast.Pos, leftV, rightV value.Value) (int, error) {
	switch l := leftV.(type) {
	case value.Number:
		r, ok := rightV.(value.Number)
		if !ok {
			return 0, newError(pos, "cannot compare number with %s", rightV.Type())
		}

		switch {
		case l < r:
			return -1, nil
		case l > r:
			return 1, nil
		default:
			return 0, nil
		}
	case value.String:
		r, ok := rightV.(value.String)
		if !ok {
			return 0, newError(pos, "cannot compare string with %s", rightV.Type())
		}

		switch {
		case l < r:
			return -1, nil
		case l > r:
			return 1, nil
		default:
			return 0, nil
		}
	case *value.Array:
		r, ok := rightV.(*value.Array)
		if !ok {
			return 0, newError(pos, "cannot compare array with %s", rightV.Type())
		}

		for i := 0; i < len(l.Elements) && i < len(r.Elements); i++ {
			lv, err := l.Elements[i].Force()
			if err != nil {
				return 0, err
			}

			rv, err := r.Elements[i].Force()
			if err != nil {
				return 0, err
			}

			c, err := compareValues(pos, lv, rv)
			if err != nil {
				return 0, err
			}

			if c != 0 {
				return c, nil
			}
		}

		switch {
		case len(l.Elements) < len(r.Elements):
			return -1, nil
		case len(l.Elements) > len(r.Elements):
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, newError(pos, "values of type %s are not orderable", leftV.Type())
	}
}

// valuesEqual implements Jsonnet's structural `==` (spec.md §4.4):
// numbers/strings/booleans/null by value, arrays/objects recursively
// (comparing an object's *visible* fields only). Values of different
// types are unequal; comparing two functions is an error.
func valuesEqual(pos ast.Pos, leftV, rightV value.Value) (bool, error) {
	if leftV.Type() != rightV.Type() {
		return false, nil
	}

	switch l := leftV.(type) {
	case value.Null:
		return true, nil
	case value.Bool:
		return l == rightV.(value.Bool), nil
	case value.Number:
		return l == rightV.(value.Number), nil
	case value.String:
		return l == rightV.(value.String), nil
	case *value.Array:
		r := rightV.(*value.Array)
		if len(l.Elements) != len(r.Elements) {
			return false, nil
		}

		for i := range l.Elements {
			lv, err := l.Elements[i].Force()
			if err != nil {
				return false, err
			}

			rv, err := r.Elements[i].Force()
			if err != nil {
				return false, err
			}

			eq, err := valuesEqual(pos, lv, rv)
			if err != nil {
				return false, err
			}

			if !eq {
				return false, nil
			}
		}

		return true, nil
	case *value.Object:
		r := rightV.(*value.Object)

		if err := l.ForceAsserts(); err != nil {
			return false, err
		}

		if err := r.ForceAsserts(); err != nil {
			return false, err
		}

		lNames := l.VisibleNames(false)
		rNames := r.VisibleNames(false)

		if len(lNames) != len(rNames) {
			return false, nil
		}

		for _, name := range lNames {
			if !r.Has(name, false) {
				return false, nil
			}

			lv, err := l.Fields[name].Value.Force()
			if err != nil {
				return false, err
			}

			rv, err := r.Fields[name].Value.Force()
			if err != nil {
				return false, err
			}

			eq, err := valuesEqual(pos, lv, rv)
			if err != nil {
				return false, err
			}

			if !eq {
				return false, nil
			}
		}

		return true, nil
	default:
		return false, newError(pos, "functions are not comparable")
	}
}

func (it *Interpreter) evalUnary(n *ast.Unary, env *value.Environment) (value.Value, error) {
	v, err := it.Eval(n.Expr, env)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.UopNot:
		b, ok := v.(value.Bool)
		if !ok {
			return nil, newError(n.Position(), "operand of ! must be a boolean, got %s", v.Type())
		}

		return value.Bool(!b), nil
	case ast.UopMinus:
		num, ok := v.(value.Number)
		if !ok {
			return nil, newError(n.Position(), "operand of unary - must be a number, got %s", v.Type())
		}

		return value.Number(-num), nil
	case ast.UopPlus:
		num, ok := v.(value.Number)
		if !ok {
			return nil, newError(n.Position(), "operand of unary + must be a number, got %s", v.Type())
		}

		return num, nil
	case ast.UopBitNot:
		i, err := toInt64(n.Position(), v, "")
		if err != nil {
			return nil, err
		}

		return value.Number(^i), nil
	default:
		return nil, newError(n.Position(), "unsupported unary operator %s", n.Op)
	}
}
