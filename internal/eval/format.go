package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/value"
)

// evalPercent dispatches `%` on its left operand's runtime type (spec.md
// §4.4): numeric mod between two numbers, printf-style string formatting
// when the left side is a string (mirroring std.format, which desugars to
// nothing and so must stay available as this operator at evaluation time).
func (it *Interpreter) evalPercent(pos ast.Pos, leftV, rightV value.Value) (value.Value, error) {
	if l, ok := leftV.(value.Number); ok {
		r, ok := rightV.(value.Number)
		if !ok {
			return nil, newError(pos, "right operand of %% must be a number, got %s", rightV.Type())
		}

		if r == 0 {
			return nil, newError(pos, "division by zero in %%")
		}

		m := float64OfMod(float64(l), float64(r))

		return value.Number(m), nil
	}

	l, ok := leftV.(value.String)
	if !ok {
		return nil, newError(pos, "left operand of %% must be a number or string, got %s", leftV.Type())
	}

	args, single := percentArgs(rightV)

	s, err := formatString(pos, string(l), args, single)
	if err != nil {
		return nil, err
	}

	return value.String(s), nil
}

func float64OfMod(l, r float64) float64 {
	m := l - r*float64(int64(l/r))
	if m != 0 && (m < 0) != (r < 0) {
		m += r
	}

	return m
}

// percentArgs normalizes the right operand of `%`: an array supplies
// positional arguments in order, anything else is a single argument
// (spec.md's std.format convention, also what printf-style `%` follows in
// every format-string language this pattern is borrowed from).
func percentArgs(rightV value.Value) ([]value.Value, bool) {
	if arr, ok := rightV.(*value.Array); ok {
		out := make([]value.Value, 0, len(arr.Elements))

		for _, el := range arr.Elements {
			v, err := el.Force()
			if err != nil {
				return nil, false
			}

			out = append(out, v)
		}

		return out, false
	}

	return []value.Value{rightV}, true
}

// formatString implements the printf-derived subset of format
// directives spec.md's std.format names: %s, %d, %f, %g, %e, %x, %X, %o,
// %c, %% — with optional width, zero-padding, and left-justify flags.
func formatString(pos ast.Pos, format string, args []value.Value, single bool) (string, error) {
	var b strings.Builder

	argIdx := 0

	next := func() (value.Value, error) {
		if argIdx >= len(args) {
			return nil, newError(pos, "not enough arguments for format string")
		}

		v := args[argIdx]
		argIdx++

		return v, nil
	}

	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)

			continue
		}

		i++
		if i >= len(format) {
			return "", newError(pos, "trailing %% in format string")
		}

		if format[i] == '%' {
			b.WriteByte('%')

			continue
		}

		start := i
		for i < len(format) && strings.ContainsRune("-0+ ", rune(format[i])) {
			i++
		}

		for i < len(format) && format[i] >= '0' && format[i] <= '9' {
			i++
		}

		if i < len(format) && format[i] == '.' {
			i++
			for i < len(format) && format[i] >= '0' && format[i] <= '9' {
				i++
			}
		}

		if i >= len(format) {
			return "", newError(pos, "unterminated format directive")
		}

		verb := format[i]
		flags := format[start:i]

		arg, err := next()
		if err != nil {
			return "", err
		}

		piece, err := formatOne(pos, flags, verb, arg)
		if err != nil {
			return "", err
		}

		b.WriteString(piece)
	}

	return b.String(), nil
}

func formatOne(pos ast.Pos, flags string, verb byte, arg value.Value) (string, error) {
	switch verb {
	case 's':
		s, err := (&Interpreter{}).toDisplayString(pos, arg)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%"+flags+"s", s), nil
	case 'd', 'i':
		n, ok := arg.(value.Number)
		if !ok {
			return "", newError(pos, "%%d expects a number, got %s", arg.Type())
		}

		return fmt.Sprintf("%"+flags+"d", int64(n)), nil
	case 'f', 'F':
		n, ok := arg.(value.Number)
		if !ok {
			return "", newError(pos, "%%f expects a number, got %s", arg.Type())
		}

		return fmt.Sprintf("%"+flags+"f", float64(n)), nil
	case 'g', 'G', 'e', 'E':
		n, ok := arg.(value.Number)
		if !ok {
			return "", newError(pos, "%%%c expects a number, got %s", verb, arg.Type())
		}

		return fmt.Sprintf("%"+flags+string(verb), float64(n)), nil
	case 'x', 'X', 'o':
		n, ok := arg.(value.Number)
		if !ok {
			return "", newError(pos, "%%%c expects a number, got %s", verb, arg.Type())
		}

		return fmt.Sprintf("%"+flags+string(verb), int64(n)), nil
	case 'c':
		switch a := arg.(type) {
		case value.Number:
			return string(rune(int64(a))), nil
		case value.String:
			return string(a), nil
		default:
			return "", newError(pos, "%%c expects a number or single-character string, got %s", arg.Type())
		}
	default:
		return "", newError(pos, "unsupported format verb %%%c", verb)
	}
}

// toIntString renders n in base 10. It is unexported and currently has no
// caller.
func toIntString(n int64) string {
	return strconv.FormatInt(n, 10)
}
