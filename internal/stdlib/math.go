package stdlib

import (
	"math"

	"github.com/conneroisu/jsonnet/internal/value"
)

func (b *builder) registerMath() {
	unary := func(name string, f func(float64) float64) {
		b.fn(name, []string{"x"}, func(args []*value.Thunk) (value.Value, error) {
			v, err := forceArg(name, args[0])
			if err != nil {
				return nil, err
			}

			n, err := asNumber(name, v)
			if err != nil {
				return nil, err
			}

			return value.Number(f(n)), nil
		})
	}

	unary("abs", math.Abs)
	unary("ceil", math.Ceil)
	unary("floor", math.Floor)
	unary("sqrt", math.Sqrt)
	unary("exp", math.Exp)
	unary("log", math.Log)
	unary("sin", math.Sin)
	unary("cos", math.Cos)
	unary("tan", math.Tan)

	b.fn("pow", []string{"x", "n"}, func(args []*value.Thunk) (value.Value, error) {
		xv, err := forceArg("pow", args[0])
		if err != nil {
			return nil, err
		}

		x, err := asNumber("pow", xv)
		if err != nil {
			return nil, err
		}

		nv, err := forceArg("pow", args[1])
		if err != nil {
			return nil, err
		}

		n, err := asNumber("pow", nv)
		if err != nil {
			return nil, err
		}

		return value.Number(math.Pow(x, n)), nil
	})

	b.fn("mod", []string{"a", "b"}, func(args []*value.Thunk) (value.Value, error) {
		av, err := forceArg("mod", args[0])
		if err != nil {
			return nil, err
		}

		a, err := asNumber("mod", av)
		if err != nil {
			return nil, err
		}

		bv, err := forceArg("mod", args[1])
		if err != nil {
			return nil, err
		}

		bb, err := asNumber("mod", bv)
		if err != nil {
			return nil, err
		}

		if bb == 0 {
			return nil, argErr("mod", "division by zero")
		}

		return value.Number(math.Mod(a, bb)), nil
	})

	b.fn("max", []string{"a", "b"}, func(args []*value.Thunk) (value.Value, error) {
		a, bb, err := twoNumbers("max", args)
		if err != nil {
			return nil, err
		}

		return value.Number(math.Max(a, bb)), nil
	})

	b.fn("min", []string{"a", "b"}, func(args []*value.Thunk) (value.Value, error) {
		a, bb, err := twoNumbers("min", args)
		if err != nil {
			return nil, err
		}

		return value.Number(math.Min(a, bb)), nil
	})

	b.fn("clamp", []string{"x", "minVal", "maxVal"}, func(args []*value.Thunk) (value.Value, error) {
		xv, err := forceArg("clamp", args[0])
		if err != nil {
			return nil, err
		}

		x, err := asNumber("clamp", xv)
		if err != nil {
			return nil, err
		}

		minV, maxV, err := twoNumbers("clamp", args[1:])
		if err != nil {
			return nil, err
		}

		return value.Number(math.Min(math.Max(x, minV), maxV)), nil
	})
}

func twoNumbers(name string, args []*value.Thunk) (float64, float64, error) {
	av, err := forceArg(name, args[0])
	if err != nil {
		return 0, 0, err
	}

	a, err := asNumber(name, av)
	if err != nil {
		return 0, 0, err
	}

	bv, err := forceArg(name, args[1])
	if err != nil {
		return 0, 0, err
	}

	bb, err := asNumber(name, bv)
	if err != nil {
		return 0, 0, err
	}

	return a, bb, nil
}
