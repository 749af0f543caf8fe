package eval

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/value"
)

// ManifestJSON renders v as JSON text (spec.md §4.7): objects force their
// asserts before any field is read, hidden fields are skipped, and
// functions/NaN/±Inf are errors rather than producible JSON. indent is the
// number of spaces per nesting level; 0 means compact (no inserted
// whitespace), which is the default of both the CLI's --indent flag and
// the embedding API.
func (it *Interpreter) ManifestJSON(v value.Value, indent int) (string, error) {
	var b strings.Builder

	if err := it.manifest(&b, v, indent, 0); err != nil {
		return "", err
	}

	return b.String(), nil
}

func manifestCompact(v value.Value) (string, error) {
	it := &Interpreter{}

	return it.ManifestJSON(v, 0)
}

func (it *Interpreter) manifest(b *strings.Builder, v value.Value, indent, depth int) error {
	switch t := v.(type) {
	case value.Null:
		b.WriteString("null")

		return nil
	case value.Bool:
		if t {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}

		return nil
	case value.Number:
		return writeNumber(b, float64(t))
	case value.String:
		writeJSONString(b, string(t))

		return nil
	case *value.Array:
		return it.manifestArray(b, t, indent, depth)
	case *value.Object:
		return it.manifestObject(b, t, indent, depth)
	default:
		return newError(ast.Pos{}, "cannot manifest a %s as JSON", v.Type())
	}
}

func writeNumber(b *strings.Builder, f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return newError(ast.Pos{}, "cannot manifest non-finite number %v as JSON", f)
	}

	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		b.WriteString(strconv.FormatInt(int64(f), 10))

		return nil
	}

	b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))

	return nil
}

func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')

	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			if r < 0x20 {
				fmt.Fprintf(b, "\\u%04x", r)
			} else {
				b.WriteRune(r)
			}
		}
	}

	b.WriteByte('"')
}

func (it *Interpreter) manifestArray(b *strings.Builder, arr *value.Array, indent, depth int) error {
	if len(arr.Elements) == 0 {
		b.WriteString("[]")

		return nil
	}

	b.WriteByte('[')

	for i, el := range arr.Elements {
		if i > 0 {
			b.WriteByte(',')
		}

		writeNewlineIndent(b, indent, depth+1)

		v, err := el.Force()
		if err != nil {
			return err
		}

		if err := it.manifest(b, v, indent, depth+1); err != nil {
			return err
		}
	}

	writeNewlineIndent(b, indent, depth)
	b.WriteByte(']')

	return nil
}

func (it *Interpreter) manifestObject(b *strings.Builder, obj *value.Object, indent, depth int) error {
	if err := obj.ForceAsserts(); err != nil {
		return err
	}

	names := obj.VisibleNames(false)
	sort.Strings(names)

	if len(names) == 0 {
		b.WriteString("{}")

		return nil
	}

	b.WriteByte('{')

	for i, name := range names {
		if i > 0 {
			b.WriteByte(',')
		}

		writeNewlineIndent(b, indent, depth+1)
		writeJSONString(b, name)
		b.WriteByte(':')

		if indent > 0 {
			b.WriteByte(' ')
		}

		v, err := obj.Fields[name].Value.Force()
		if err != nil {
			return err
		}

		if err := it.manifest(b, v, indent, depth+1); err != nil {
			return err
		}
	}

	writeNewlineIndent(b, indent, depth)
	b.WriteByte('}')

	return nil
}

func writeNewlineIndent(b *strings.Builder, indent, depth int) {
	if indent <= 0 {
		return
	}

	b.WriteByte('\n')
	b.WriteString(strings.Repeat(" ", indent*depth))
}

// toDisplayString is what `error e` and std.toString fall back to when e
// isn't already a string: the same JSON rendering std.manifestJsonEx with
// no indentation would produce.
func (it *Interpreter) toDisplayString(pos ast.Pos, v value.Value) (string, error) {
	if s, ok := v.(value.String); ok {
		return string(s), nil
	}

	s, err := it.ManifestJSON(v, 0)
	if err != nil {
		return "", withFrame(err, pos)
	}

	return s, nil
}
