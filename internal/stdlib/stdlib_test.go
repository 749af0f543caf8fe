package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conneroisu/jsonnet/internal/eval"
	"github.com/conneroisu/jsonnet/internal/stdlib"
	"github.com/conneroisu/jsonnet/internal/value"
)

// newInterpreter builds a real Interpreter with a real std object the way
// pkg/jsonnet bootstraps one, so these tests exercise std.* through the
// same Applier wiring production code uses rather than a hand-rolled fake.
func newInterpreter(t *testing.T) *eval.Interpreter {
	t.Helper()

	it := eval.New(nil, nil)
	it.Std = stdlib.New(it)

	return it
}

// callStd looks up name on std and invokes it with args, each already
// wrapped as a ready Thunk.
func callStd(t *testing.T, it *eval.Interpreter, name string, args ...*value.Thunk) (value.Value, error) {
	t.Helper()

	fv, err := it.Std.Fields[name].Value.Force()
	require.NoError(t, err)

	fn, ok := fv.(*value.Builtin)
	require.True(t, ok, "std.%s is not a builtin", name)

	return fn.Fn(args)
}

func num(n float64) *value.Thunk   { return value.Ready(value.Number(n)) }
func str(s string) *value.Thunk    { return value.Ready(value.String(s)) }
func boolean(b bool) *value.Thunk  { return value.Ready(value.Bool(b)) }
func null() *value.Thunk           { return value.Ready(value.Null{}) }
func arr(elems ...*value.Thunk) *value.Thunk {
	return value.Ready(&value.Array{Elements: elems})
}

func TestLength(t *testing.T) {
	it := newInterpreter(t)

	v, err := callStd(t, it, "length", str("hello"))
	require.NoError(t, err)
	assert.Equal(t, value.Number(5), v)

	v, err = callStd(t, it, "length", arr(num(1), num(2), num(3)))
	require.NoError(t, err)
	assert.Equal(t, value.Number(3), v)
}

func TestReverseAndJoin(t *testing.T) {
	it := newInterpreter(t)

	rev, err := callStd(t, it, "reverse", arr(num(1), num(2), num(3)))
	require.NoError(t, err)

	a, ok := rev.(*value.Array)
	require.True(t, ok)
	require.Len(t, a.Elements, 3)

	first, err := a.Elements[0].Force()
	require.NoError(t, err)
	assert.Equal(t, value.Number(3), first)

	joined, err := callStd(t, it, "join", str(","), arr(str("a"), str("b"), str("c")))
	require.NoError(t, err)
	assert.Equal(t, value.String("a,b,c"), joined)
}

func TestSliceArray(t *testing.T) {
	it := newInterpreter(t)

	v, err := callStd(t, it, "slice", arr(num(0), num(1), num(2), num(3), num(4)), num(1), num(4), num(2))
	require.NoError(t, err)

	a, ok := v.(*value.Array)
	require.True(t, ok)

	got, err := forceAll(a)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Number(1), value.Number(3)}, got)
}

func TestSliceDefaultsToNull(t *testing.T) {
	it := newInterpreter(t)

	v, err := callStd(t, it, "slice", arr(num(10), num(20), num(30)), null(), null(), null())
	require.NoError(t, err)

	a, ok := v.(*value.Array)
	require.True(t, ok)

	got, err := forceAll(a)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.Number(10), value.Number(20), value.Number(30)}, got)
}

func TestSliceString(t *testing.T) {
	it := newInterpreter(t)

	v, err := callStd(t, it, "slice", str("jsonnet"), num(1), num(4), null())
	require.NoError(t, err)
	assert.Equal(t, value.String("son"), v)
}

func TestObjectHasAndFields(t *testing.T) {
	it := newInterpreter(t)
	obj := makeObject(map[string]value.Value{"a": value.Number(1), "b": value.Number(2)}, nil)

	has, err := callStd(t, it, "objectHas", value.Ready(obj), str("a"))
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), has)

	has, err = callStd(t, it, "objectHas", value.Ready(obj), str("missing"))
	require.NoError(t, err)
	assert.Equal(t, value.Bool(false), has)

	fields, err := callStd(t, it, "objectFields", value.Ready(obj))
	require.NoError(t, err)

	a, ok := fields.(*value.Array)
	require.True(t, ok)

	names, err := forceAll(a)
	require.NoError(t, err)
	assert.Equal(t, []value.Value{value.String("a"), value.String("b")}, names)
}

func TestEquals(t *testing.T) {
	it := newInterpreter(t)

	eq, err := callStd(t, it, "equals", arr(num(1), num(2)), arr(num(1), num(2)))
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), eq)

	eq, err = callStd(t, it, "equals", arr(num(1), num(2)), arr(num(1), num(3)))
	require.NoError(t, err)
	assert.Equal(t, value.Bool(false), eq)

	obj1 := makeObject(map[string]value.Value{"a": value.Number(1)}, nil)
	obj2 := makeObject(map[string]value.Value{"a": value.Number(1)}, nil)

	eq, err = callStd(t, it, "equals", value.Ready(obj1), value.Ready(obj2))
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), eq)
}

func TestMergePatch(t *testing.T) {
	it := newInterpreter(t)

	target := makeObject(map[string]value.Value{
		"a": value.Number(1),
		"b": value.Number(2),
	}, []string{"a", "b"})

	patch := makeObject(map[string]value.Value{
		"b": value.Null{},
		"c": value.Number(3),
	}, []string{"b", "c"})

	merged, err := callStd(t, it, "mergePatch", value.Ready(target), value.Ready(patch))
	require.NoError(t, err)

	obj, ok := merged.(*value.Object)
	require.True(t, ok)

	assert.True(t, obj.Has("a", false))
	assert.False(t, obj.Has("b", false))
	assert.True(t, obj.Has("c", false))

	cv, err := obj.Fields["c"].Value.Force()
	require.NoError(t, err)
	assert.Equal(t, value.Number(3), cv)
}

func TestPrune(t *testing.T) {
	it := newInterpreter(t)

	obj := makeObject(map[string]value.Value{
		"keep":   value.Number(1),
		"remove": value.Null{},
	}, []string{"keep", "remove"})

	pruned, err := callStd(t, it, "prune", value.Ready(obj))
	require.NoError(t, err)

	out, ok := pruned.(*value.Object)
	require.True(t, ok)

	assert.True(t, out.Has("keep", false))
	assert.False(t, out.Has("remove", false))
}

func TestParseJson(t *testing.T) {
	it := newInterpreter(t)

	v, err := callStd(t, it, "parseJson", str(`{"a": [1, 2, "x"], "b": null}`))
	require.NoError(t, err)

	obj, ok := v.(*value.Object)
	require.True(t, ok)
	assert.True(t, obj.Has("a", false))
	assert.True(t, obj.Has("b", false))

	av, err := obj.Fields["a"].Value.Force()
	require.NoError(t, err)

	a, ok := av.(*value.Array)
	require.True(t, ok)
	require.Len(t, a.Elements, 3)
}

func TestExtVar(t *testing.T) {
	it := newInterpreter(t)
	it.ExtVars["greeting"] = value.Ready(value.String("hi"))

	v, err := callStd(t, it, "extVar", str("greeting"))
	require.NoError(t, err)
	assert.Equal(t, value.String("hi"), v)

	_, err = callStd(t, it, "extVar", str("missing"))
	assert.Error(t, err)
}

func TestTypeAndIsXxx(t *testing.T) {
	it := newInterpreter(t)

	v, err := callStd(t, it, "type", str("x"))
	require.NoError(t, err)
	assert.Equal(t, value.String("string"), v)

	v, err = callStd(t, it, "isNumber", num(1))
	require.NoError(t, err)
	assert.Equal(t, value.Bool(true), v)
}

func TestSubstrAndCase(t *testing.T) {
	it := newInterpreter(t)

	v, err := callStd(t, it, "substr", str("jsonnet"), num(1), num(3))
	require.NoError(t, err)
	assert.Equal(t, value.String("son"), v)

	v, err = callStd(t, it, "asciiUpper", str("abc"))
	require.NoError(t, err)
	assert.Equal(t, value.String("ABC"), v)
}

func forceAll(a *value.Array) ([]value.Value, error) {
	out := make([]value.Value, len(a.Elements))

	for i, el := range a.Elements {
		v, err := el.Force()
		if err != nil {
			return nil, err
		}

		out[i] = v
	}

	return out, nil
}

// makeObject builds a plain visible-field *value.Object for test fixtures,
// mirroring internal/stdlib's own newDataObject shape (fields built once,
// no self/super rebinding needed for these read-only tests).
func makeObject(fields map[string]value.Value, order []string) *value.Object {
	if order == nil {
		for name := range fields {
			order = append(order, name)
		}
	}

	entries := make(map[string]*value.FieldEntry, len(fields))
	for name, v := range fields {
		v := v
		entries[name] = &value.FieldEntry{
			Value: value.Ready(v),
		}
	}

	return &value.Object{Names: order, Fields: entries}
}
