package stdlib

import "github.com/conneroisu/jsonnet/internal/value"

func asNumber(name string, v value.Value) (float64, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, argErr(name, "expected a number, got "+v.Type().String())
	}

	return float64(n), nil
}

func asString(name string, v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", argErr(name, "expected a string, got "+v.Type().String())
	}

	return string(s), nil
}

func asArray(name string, v value.Value) (*value.Array, error) {
	a, ok := v.(*value.Array)
	if !ok {
		return nil, argErr(name, "expected an array, got "+v.Type().String())
	}

	return a, nil
}

func asObject(name string, v value.Value) (*value.Object, error) {
	o, ok := v.(*value.Object)
	if !ok {
		return nil, argErr(name, "expected an object, got "+v.Type().String())
	}

	return o, nil
}

func asBool(name string, v value.Value) (bool, error) {
	bl, ok := v.(value.Bool)
	if !ok {
		return false, argErr(name, "expected a boolean, got "+v.Type().String())
	}

	return bool(bl), nil
}

func forceArg(name string, th *value.Thunk) (value.Value, error) {
	v, err := th.Force()
	if err != nil {
		return nil, err
	}

	return v, nil
}

// compareForSort orders numbers and strings for std.sort; any other element
// type is an error. Unlike internal/eval.compareValues, it does not order
// arrays.
func compareForSort(a, b value.Value) (int, error) {
	switch l := a.(type) {
	case value.Number:
		r, ok := b.(value.Number)
		if !ok {
			return 0, argErr("sort", "cannot compare differing types")
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
		r, ok := b.(value.String)
		if !ok {
			return 0, argErr("sort", "cannot compare differing types")
		}

		switch {
		case l < r:
			return -1, nil
		case l > r:
			return 1, nil
		default:
			return 0, nil
		}
	default:
		return 0, argErr("sort", "array elements must be numbers or strings")
	}
}

// sliceLen reports the element count std.slice clamps begin/end/step
// against, for whichever indexable type was passed.
func sliceLen(v value.Value) (int, error) {
	switch t := v.(type) {
	case *value.Array:
		return len(t.Elements), nil
	case value.String:
		return len([]rune(string(t))), nil
	default:
		return 0, argErr("slice", "indexable must be an array or string")
	}
}

// optionalIndex forces th and returns its integer value, or def if th
// holds Null — the desugared shape of an omitted slice bound.
func optionalIndex(th *value.Thunk, def int) (int, error) {
	v, err := th.Force()
	if err != nil {
		return 0, err
	}

	if _, ok := v.(value.Null); ok {
		return def, nil
	}

	n, ok := v.(value.Number)
	if !ok {
		return 0, argErr("slice", "index must be a number or null")
	}

	return int(n), nil
}

// valuesEqual implements std.equals' structural comparison: numbers,
// strings and booleans by value, arrays/objects recursively (an object's
// *visible* fields only); comparing two functions is an error. Duplicated
// from internal/eval's own `==` operator rather than called back into it,
// the same way compareForSort above stands in for internal/eval's ordering
// logic — stdlib cannot import eval without a cycle.
func valuesEqual(l, r value.Value) (bool, error) {
	if l.Type() != r.Type() {
		return false, nil
	}

	switch lt := l.(type) {
	case value.Null:
		return true, nil
	case value.Bool:
		return lt == r.(value.Bool), nil
	case value.Number:
		return lt == r.(value.Number), nil
	case value.String:
		return lt == r.(value.String), nil
	case *value.Array:
		rt := r.(*value.Array)
		if len(lt.Elements) != len(rt.Elements) {
			return false, nil
		}

		for i := range lt.Elements {
			lv, err := lt.Elements[i].Force()
			if err != nil {
				return false, err
			}

			rv, err := rt.Elements[i].Force()
			if err != nil {
				return false, err
			}

			eq, err := valuesEqual(lv, rv)
			if err != nil {
				return false, err
			}

			if !eq {
				return false, nil
			}
		}

		return true, nil
	case *value.Object:
		rt := r.(*value.Object)

		if err := lt.ForceAsserts(); err != nil {
			return false, err
		}

		if err := rt.ForceAsserts(); err != nil {
			return false, err
		}

		lNames := lt.VisibleNames(false)
		rNames := rt.VisibleNames(false)

		if len(lNames) != len(rNames) {
			return false, nil
		}

		for _, name := range lNames {
			if !rt.Has(name, false) {
				return false, nil
			}

			lv, err := lt.Fields[name].Value.Force()
			if err != nil {
				return false, err
			}

			rv, err := rt.Fields[name].Value.Force()
			if err != nil {
				return false, err
			}

			eq, err := valuesEqual(lv, rv)
			if err != nil {
				return false, err
			}

			if !eq {
				return false, nil
			}
		}

		return true, nil
	default:
		return false, argErr("equals", "functions are not comparable")
	}
}

func forceElements(arr *value.Array) ([]value.Value, error) {
	out := make([]value.Value, len(arr.Elements))

	for i, el := range arr.Elements {
		v, err := el.Force()
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}
