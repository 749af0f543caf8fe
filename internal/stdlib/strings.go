package stdlib

import (
	"strings"

	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/value"
)

func (b *builder) registerStrings() {
	b.fn("substr", []string{"str", "from", "len"}, func(args []*value.Thunk) (value.Value, error) {
		strV, err := forceArg("substr", args[0])
		if err != nil {
			return nil, err
		}

		s, err := asString("substr", strV)
		if err != nil {
			return nil, err
		}

		fromV, err := forceArg("substr", args[1])
		if err != nil {
			return nil, err
		}

		from, err := asNumber("substr", fromV)
		if err != nil {
			return nil, err
		}

		lenV, err := forceArg("substr", args[2])
		if err != nil {
			return nil, err
		}

		length, err := asNumber("substr", lenV)
		if err != nil {
			return nil, err
		}

		runes := []rune(s)
		start := clampIndex(int(from), len(runes))
		end := clampIndex(int(from)+int(length), len(runes))

		if end < start {
			end = start
		}

		return value.String(string(runes[start:end])), nil
	})

	b.fn("startsWith", []string{"a", "b"}, func(args []*value.Thunk) (value.Value, error) {
		a, b2, err := twoStrings("startsWith", args)
		if err != nil {
			return nil, err
		}

		return value.Bool(strings.HasPrefix(a, b2)), nil
	})

	b.fn("endsWith", []string{"a", "b"}, func(args []*value.Thunk) (value.Value, error) {
		a, b2, err := twoStrings("endsWith", args)
		if err != nil {
			return nil, err
		}

		return value.Bool(strings.HasSuffix(a, b2)), nil
	})

	b.fn("stripChars", []string{"str", "chars"}, func(args []*value.Thunk) (value.Value, error) {
		s, chars, err := twoStrings("stripChars", args)
		if err != nil {
			return nil, err
		}

		return value.String(strings.Trim(s, chars)), nil
	})

	b.fn("codepoint", []string{"str"}, func(args []*value.Thunk) (value.Value, error) {
		sV, err := forceArg("codepoint", args[0])
		if err != nil {
			return nil, err
		}

		s, err := asString("codepoint", sV)
		if err != nil {
			return nil, err
		}

		runes := []rune(s)
		if len(runes) != 1 {
			return nil, argErr("codepoint", "argument must be a single-character string")
		}

		return value.Number(float64(runes[0])), nil
	})

	b.fn("char", []string{"n"}, func(args []*value.Thunk) (value.Value, error) {
		nV, err := forceArg("char", args[0])
		if err != nil {
			return nil, err
		}

		n, err := asNumber("char", nV)
		if err != nil {
			return nil, err
		}

		return value.String(string(rune(int(n)))), nil
	})

	b.fn("asciiUpper", []string{"str"}, func(args []*value.Thunk) (value.Value, error) {
		s, err := oneString("asciiUpper", args)
		if err != nil {
			return nil, err
		}

		return value.String(strings.ToUpper(s)), nil
	})

	b.fn("asciiLower", []string{"str"}, func(args []*value.Thunk) (value.Value, error) {
		s, err := oneString("asciiLower", args)
		if err != nil {
			return nil, err
		}

		return value.String(strings.ToLower(s)), nil
	})

	b.fn("split", []string{"str", "c"}, func(args []*value.Thunk) (value.Value, error) {
		s, sep, err := twoStrings("split", args)
		if err != nil {
			return nil, err
		}

		parts := strings.Split(s, sep)
		elems := make([]*value.Thunk, len(parts))

		for i, p := range parts {
			elems[i] = value.Ready(value.String(p))
		}

		return &value.Array{Elements: elems}, nil
	})

	b.fn("lstripChars", []string{"str", "chars"}, func(args []*value.Thunk) (value.Value, error) {
		s, chars, err := twoStrings("lstripChars", args)
		if err != nil {
			return nil, err
		}

		return value.String(strings.TrimLeft(s, chars)), nil
	})

	b.fn("rstripChars", []string{"str", "chars"}, func(args []*value.Thunk) (value.Value, error) {
		s, chars, err := twoStrings("rstripChars", args)
		if err != nil {
			return nil, err
		}

		return value.String(strings.TrimRight(s, chars)), nil
	})

	b.fn("format", []string{"str", "vals"}, func(args []*value.Thunk) (value.Value, error) {
		sV, err := forceArg("format", args[0])
		if err != nil {
			return nil, err
		}

		s, err := asString("format", sV)
		if err != nil {
			return nil, err
		}

		argV, err := forceArg("format", args[1])
		if err != nil {
			return nil, err
		}

		out, err := b.applier.Format(ast.Pos{}, s, argV)
		if err != nil {
			return nil, err
		}

		return value.String(out), nil
	})
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}

	if i > n {
		return n
	}

	return i
}

func oneString(name string, args []*value.Thunk) (string, error) {
	v, err := forceArg(name, args[0])
	if err != nil {
		return "", err
	}

	return asString(name, v)
}

func twoStrings(name string, args []*value.Thunk) (string, string, error) {
	av, err := forceArg(name, args[0])
	if err != nil {
		return "", "", err
	}

	a, err := asString(name, av)
	if err != nil {
		return "", "", err
	}

	bv, err := forceArg(name, args[1])
	if err != nil {
		return "", "", err
	}

	bs, err := asString(name, bv)
	if err != nil {
		return "", "", err
	}

	return a, bs, nil
}
