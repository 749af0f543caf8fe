package stdlib

import (
	"encoding/json"
	"sort"
	"strconv"

	"github.com/conneroisu/jsonnet/internal/value"
)

func (b *builder) registerConstants() {
	b.constant("thisFile", value.String("")) // rebound per-file by internal/eval.Interpreter.RootEnv
}

func (b *builder) registerTypes() {
	b.fn("type", []string{"x"}, func(args []*value.Thunk) (value.Value, error) {
		v, err := forceArg("type", args[0])
		if err != nil {
			return nil, err
		}

		return value.String(v.Type().String()), nil
	})

	b.fn("isString", []string{"v"}, isType(value.TypeString))
	b.fn("isNumber", []string{"v"}, isType(value.TypeNumber))
	b.fn("isBoolean", []string{"v"}, isType(value.TypeBool))
	b.fn("isArray", []string{"v"}, isType(value.TypeArray))
	b.fn("isObject", []string{"v"}, isType(value.TypeObject))
	b.fn("isFunction", []string{"v"}, isType(value.TypeFunction))

	b.fn("toString", []string{"a"}, func(args []*value.Thunk) (value.Value, error) {
		v, err := forceArg("toString", args[0])
		if err != nil {
			return nil, err
		}

		if s, ok := v.(value.String); ok {
			return s, nil
		}

		s, err := b.applier.Manifest(v, 0)
		if err != nil {
			return nil, err
		}

		return value.String(s), nil
	})

	b.fn("parseInt", []string{"str"}, func(args []*value.Thunk) (value.Value, error) {
		v, err := forceArg("parseInt", args[0])
		if err != nil {
			return nil, err
		}

		s, err := asString("parseInt", v)
		if err != nil {
			return nil, err
		}

		n, parseErr := strconv.ParseInt(s, 10, 64)
		if parseErr != nil {
			return nil, argErr("parseInt", "not a valid integer: "+s)
		}

		return value.Number(float64(n)), nil
	})

	b.fn("parseJson", []string{"str"}, func(args []*value.Thunk) (value.Value, error) {
		v, err := forceArg("parseJson", args[0])
		if err != nil {
			return nil, err
		}

		s, err := asString("parseJson", v)
		if err != nil {
			return nil, err
		}

		var decoded any
		if jsonErr := json.Unmarshal([]byte(s), &decoded); jsonErr != nil {
			return nil, argErr("parseJson", "invalid JSON: "+jsonErr.Error())
		}

		return fromJSON(decoded), nil
	})

	b.fn("manifestJsonEx", []string{"value", "indent"}, func(args []*value.Thunk) (value.Value, error) {
		v, err := forceArg("manifestJsonEx", args[0])
		if err != nil {
			return nil, err
		}

		indentV, err := forceArg("manifestJsonEx", args[1])
		if err != nil {
			return nil, err
		}

		indentStr, err := asString("manifestJsonEx", indentV)
		if err != nil {
			return nil, err
		}

		s, err := b.applier.Manifest(v, len([]rune(indentStr)))
		if err != nil {
			return nil, err
		}

		return value.String(s), nil
	})
}

// fromJSON converts a value decoded by encoding/json (map[string]any,
// []any, float64, string, bool, nil) into the host value.Value tree
// std.parseJson returns, building plain visible-field objects via
// newDataObject the same way std.mergePatch/std.prune do for their own
// synthesized objects.
func fromJSON(v any) value.Value {
	switch t := v.(type) {
	case nil:
		return value.Null{}
	case bool:
		return value.Bool(t)
	case float64:
		return value.Number(t)
	case string:
		return value.String(t)
	case []any:
		elems := make([]*value.Thunk, len(t))
		for i, e := range t {
			elems[i] = value.Ready(fromJSON(e))
		}

		return &value.Array{Elements: elems}
	case map[string]any:
		order := make([]string, 0, len(t))
		fields := make(map[string]*value.Thunk, len(t))

		for k := range t {
			order = append(order, k)
		}

		sort.Strings(order)

		for _, k := range order {
			fields[k] = value.Ready(fromJSON(t[k]))
		}

		return newDataObject(order, fields)
	default:
		return value.Null{}
	}
}

func isType(t value.Type) func(args []*value.Thunk) (value.Value, error) {
	return func(args []*value.Thunk) (value.Value, error) {
		v, err := forceArg("is"+t.String(), args[0])
		if err != nil {
			return nil, err
		}

		return value.Bool(v.Type() == t), nil
	}
}
