package stdlib

import (
	"sort"

	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/value"
)

func (b *builder) registerCollections() {
	b.fn("length", []string{"x"}, func(args []*value.Thunk) (value.Value, error) {
		v, err := forceArg("length", args[0])
		if err != nil {
			return nil, err
		}

		switch t := v.(type) {
		case *value.Array:
			return value.Number(float64(len(t.Elements))), nil
		case value.String:
			return value.Number(float64(len([]rune(string(t))))), nil
		case *value.Object:
			return value.Number(float64(len(t.VisibleNames(false)))), nil
		case *value.Function, *value.Builtin:
			return value.Number(0), nil
		default:
			return nil, argErr("length", "argument must be an array, string, or object")
		}
	})

	b.fn("makeArray", []string{"sz", "func"}, func(args []*value.Thunk) (value.Value, error) {
		szV, err := forceArg("makeArray", args[0])
		if err != nil {
			return nil, err
		}

		sz, err := asNumber("makeArray", szV)
		if err != nil {
			return nil, err
		}

		fnV, err := forceArg("makeArray", args[1])
		if err != nil {
			return nil, err
		}

		n := int(sz)
		elems := make([]*value.Thunk, n)

		for i := 0; i < n; i++ {
			i := i
			elems[i] = value.NewThunk(func() (value.Value, error) {
				return b.applier.Apply(ast.Pos{}, fnV, []*value.Thunk{value.Ready(value.Number(float64(i)))})
			})
		}

		return &value.Array{Elements: elems}, nil
	})

	b.fn("filter", []string{"func", "arr"}, func(args []*value.Thunk) (value.Value, error) {
		fnV, err := forceArg("filter", args[0])
		if err != nil {
			return nil, err
		}

		arrV, err := forceArg("filter", args[1])
		if err != nil {
			return nil, err
		}

		arr, err := asArray("filter", arrV)
		if err != nil {
			return nil, err
		}

		var out []*value.Thunk

		for _, el := range arr.Elements {
			keepV, err := b.applier.Apply(ast.Pos{}, fnV, []*value.Thunk{el})
			if err != nil {
				return nil, err
			}

			keep, err := asBool("filter", keepV)
			if err != nil {
				return nil, err
			}

			if keep {
				out = append(out, el)
			}
		}

		return &value.Array{Elements: out}, nil
	})

	b.fn("map", []string{"func", "arr"}, func(args []*value.Thunk) (value.Value, error) {
		fnV, err := forceArg("map", args[0])
		if err != nil {
			return nil, err
		}

		arrV, err := forceArg("map", args[1])
		if err != nil {
			return nil, err
		}

		arr, err := asArray("map", arrV)
		if err != nil {
			return nil, err
		}

		out := make([]*value.Thunk, len(arr.Elements))

		for i, el := range arr.Elements {
			el := el
			out[i] = value.NewThunk(func() (value.Value, error) {
				return b.applier.Apply(ast.Pos{}, fnV, []*value.Thunk{el})
			})
		}

		return &value.Array{Elements: out}, nil
	})

	b.fn("flatMap", []string{"func", "arr"}, func(args []*value.Thunk) (value.Value, error) {
		fnV, err := forceArg("flatMap", args[0])
		if err != nil {
			return nil, err
		}

		arrV, err := forceArg("flatMap", args[1])
		if err != nil {
			return nil, err
		}

		arr, err := asArray("flatMap", arrV)
		if err != nil {
			return nil, err
		}

		var out []*value.Thunk

		for _, el := range arr.Elements {
			rV, err := b.applier.Apply(ast.Pos{}, fnV, []*value.Thunk{el})
			if err != nil {
				return nil, err
			}

			sub, err := asArray("flatMap", rV)
			if err != nil {
				return nil, err
			}

			out = append(out, sub.Elements...)
		}

		return &value.Array{Elements: out}, nil
	})

	b.fn("foldl", []string{"func", "arr", "init"}, func(args []*value.Thunk) (value.Value, error) {
		return foldImpl(b, args, false)
	})

	b.fn("foldr", []string{"func", "arr", "init"}, func(args []*value.Thunk) (value.Value, error) {
		return foldImpl(b, args, true)
	})

	b.fn("range", []string{"from", "to"}, func(args []*value.Thunk) (value.Value, error) {
		fromV, err := forceArg("range", args[0])
		if err != nil {
			return nil, err
		}

		toV, err := forceArg("range", args[1])
		if err != nil {
			return nil, err
		}

		from, err := asNumber("range", fromV)
		if err != nil {
			return nil, err
		}

		to, err := asNumber("range", toV)
		if err != nil {
			return nil, err
		}

		var elems []*value.Thunk

		for i := int(from); i <= int(to); i++ {
			elems = append(elems, value.Ready(value.Number(float64(i))))
		}

		return &value.Array{Elements: elems}, nil
	})

	b.fn("reverse", []string{"arr"}, func(args []*value.Thunk) (value.Value, error) {
		arrV, err := forceArg("reverse", args[0])
		if err != nil {
			return nil, err
		}

		arr, err := asArray("reverse", arrV)
		if err != nil {
			return nil, err
		}

		out := make([]*value.Thunk, len(arr.Elements))
		for i, el := range arr.Elements {
			out[len(out)-1-i] = el
		}

		return &value.Array{Elements: out}, nil
	})

	b.fn("join", []string{"sep", "arr"}, func(args []*value.Thunk) (value.Value, error) {
		sepV, err := forceArg("join", args[0])
		if err != nil {
			return nil, err
		}

		arrV, err := forceArg("join", args[1])
		if err != nil {
			return nil, err
		}

		arr, err := asArray("join", arrV)
		if err != nil {
			return nil, err
		}

		elems, err := forceElements(arr)
		if err != nil {
			return nil, err
		}

		if sep, ok := sepV.(value.String); ok {
			var out []string

			for _, el := range elems {
				s, ok := el.(value.String)
				if !ok {
					return nil, argErr("join", "array elements must be strings")
				}

				out = append(out, string(s))
			}

			joined := ""
			for i, s := range out {
				if i > 0 {
					joined += string(sep)
				}

				joined += s
			}

			return value.String(joined), nil
		}

		sepArr, err := asArray("join", sepV)
		if err != nil {
			return nil, err
		}

		var out []*value.Thunk

		for i, el := range elems {
			if i > 0 {
				out = append(out, sepArr.Elements...)
			}

			sub, err := asArray("join", el)
			if err != nil {
				return nil, err
			}

			out = append(out, sub.Elements...)
		}

		return &value.Array{Elements: out}, nil
	})

	b.fn("slice", []string{"indexable", "index", "end", "step"}, func(args []*value.Thunk) (value.Value, error) {
		subjV, err := forceArg("slice", args[0])
		if err != nil {
			return nil, err
		}

		n, err := sliceLen(subjV)
		if err != nil {
			return nil, err
		}

		begin, err := optionalIndex(args[1], 0)
		if err != nil {
			return nil, err
		}

		end, err := optionalIndex(args[2], n)
		if err != nil {
			return nil, err
		}

		step, err := optionalIndex(args[3], 1)
		if err != nil {
			return nil, err
		}

		if step <= 0 {
			return nil, argErr("slice", "step must be a positive number")
		}

		if begin < 0 {
			begin = 0
		}

		if end > n {
			end = n
		}

		switch v := subjV.(type) {
		case *value.Array:
			var out []*value.Thunk

			for i := begin; i < end; i += step {
				out = append(out, v.Elements[i])
			}

			return &value.Array{Elements: out}, nil
		case value.String:
			runes := []rune(string(v))

			var out []rune

			for i := begin; i < end; i += step {
				out = append(out, runes[i])
			}

			return value.String(string(out)), nil
		default:
			return nil, argErr("slice", "indexable must be an array or string")
		}
	})

	b.fn("sort", []string{"arr", "keyF"}, func(args []*value.Thunk) (value.Value, error) {
		arrV, err := forceArg("sort", args[0])
		if err != nil {
			return nil, err
		}

		arr, err := asArray("sort", arrV)
		if err != nil {
			return nil, err
		}

		elems, err := forceElements(arr)
		if err != nil {
			return nil, err
		}

		order := make([]int, len(elems))
		for i := range order {
			order[i] = i
		}

		var sortErr error

		sort.SliceStable(order, func(i, j int) bool {
			if sortErr != nil {
				return false
			}

			c, err := compareForSort(elems[order[i]], elems[order[j]])
			if err != nil {
				sortErr = err

				return false
			}

			return c < 0
		})

		if sortErr != nil {
			return nil, sortErr
		}

		out := make([]*value.Thunk, len(order))
		for i, idx := range order {
			out[i] = value.Ready(elems[idx])
		}

		return &value.Array{Elements: out}, nil
	})
}

func foldImpl(b *builder, args []*value.Thunk, reverse bool) (value.Value, error) {
	name := "foldl"
	if reverse {
		name = "foldr"
	}

	fnV, err := forceArg(name, args[0])
	if err != nil {
		return nil, err
	}

	arrV, err := forceArg(name, args[1])
	if err != nil {
		return nil, err
	}

	arr, err := asArray(name, arrV)
	if err != nil {
		return nil, err
	}

	acc := args[2]

	elems := arr.Elements
	if reverse {
		rev := make([]*value.Thunk, len(elems))
		for i, e := range elems {
			rev[len(rev)-1-i] = e
		}

		elems = rev
	}

	for _, el := range elems {
		accV, err := acc.Force()
		if err != nil {
			return nil, err
		}

		acc = value.Ready(accV)

		var callArgs []*value.Thunk
		if reverse {
			callArgs = []*value.Thunk{el, acc}
		} else {
			callArgs = []*value.Thunk{acc, el}
		}

		r, err := b.applier.Apply(ast.Pos{}, fnV, callArgs)
		if err != nil {
			return nil, err
		}

		acc = value.Ready(r)
	}

	return acc.Force()
}
