package stdlib

import (
	"sort"

	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/value"
)

func (b *builder) registerObjects() {
	b.fn("objectHasEx", []string{"obj", "fname", "hidden"}, func(args []*value.Thunk) (value.Value, error) {
		objV, err := forceArg("objectHasEx", args[0])
		if err != nil {
			return nil, err
		}

		obj, err := asObject("objectHasEx", objV)
		if err != nil {
			return nil, err
		}

		nameV, err := forceArg("objectHasEx", args[1])
		if err != nil {
			return nil, err
		}

		name, err := asString("objectHasEx", nameV)
		if err != nil {
			return nil, err
		}

		hiddenV, err := forceArg("objectHasEx", args[2])
		if err != nil {
			return nil, err
		}

		hidden, err := asBool("objectHasEx", hiddenV)
		if err != nil {
			return nil, err
		}

		return value.Bool(obj.Has(name, hidden)), nil
	})

	b.fn("objectFieldsEx", []string{"obj", "hidden"}, func(args []*value.Thunk) (value.Value, error) {
		objV, err := forceArg("objectFieldsEx", args[0])
		if err != nil {
			return nil, err
		}

		obj, err := asObject("objectFieldsEx", objV)
		if err != nil {
			return nil, err
		}

		hiddenV, err := forceArg("objectFieldsEx", args[1])
		if err != nil {
			return nil, err
		}

		hidden, err := asBool("objectFieldsEx", hiddenV)
		if err != nil {
			return nil, err
		}

		names := append([]string(nil), obj.VisibleNames(hidden)...)
		sort.Strings(names)

		elems := make([]*value.Thunk, len(names))
		for i, n := range names {
			elems[i] = value.Ready(value.String(n))
		}

		return &value.Array{Elements: elems}, nil
	})

	b.fn("objectValues", []string{"obj"}, func(args []*value.Thunk) (value.Value, error) {
		objV, err := forceArg("objectValues", args[0])
		if err != nil {
			return nil, err
		}

		obj, err := asObject("objectValues", objV)
		if err != nil {
			return nil, err
		}

		names := append([]string(nil), obj.VisibleNames(false)...)
		sort.Strings(names)

		elems := make([]*value.Thunk, len(names))
		for i, n := range names {
			elems[i] = obj.Fields[n].Value
		}

		return &value.Array{Elements: elems}, nil
	})

	b.fn("get", []string{"obj", "f", "default", "inc_hidden"}, func(args []*value.Thunk) (value.Value, error) {
		objV, err := forceArg("get", args[0])
		if err != nil {
			return nil, err
		}

		obj, err := asObject("get", objV)
		if err != nil {
			return nil, err
		}

		nameV, err := forceArg("get", args[1])
		if err != nil {
			return nil, err
		}

		name, err := asString("get", nameV)
		if err != nil {
			return nil, err
		}

		hiddenV, err := forceArg("get", args[3])
		if err != nil {
			return nil, err
		}

		hidden, err := asBool("get", hiddenV)
		if err != nil {
			return nil, err
		}

		if !obj.Has(name, hidden) {
			return forceArg("get", args[2])
		}

		return obj.Fields[name].Value.Force()
	})

	b.fn("objectHas", []string{"obj", "fname"}, func(args []*value.Thunk) (value.Value, error) {
		return b.objectHas(args, false)
	})

	b.fn("objectHasAll", []string{"obj", "fname"}, func(args []*value.Thunk) (value.Value, error) {
		return b.objectHas(args, true)
	})

	b.fn("objectFields", []string{"obj"}, func(args []*value.Thunk) (value.Value, error) {
		return b.objectFields(args, false)
	})

	b.fn("objectFieldsAll", []string{"obj"}, func(args []*value.Thunk) (value.Value, error) {
		return b.objectFields(args, true)
	})

	b.fn("equals", []string{"a", "b"}, func(args []*value.Thunk) (value.Value, error) {
		l, err := forceArg("equals", args[0])
		if err != nil {
			return nil, err
		}

		r, err := forceArg("equals", args[1])
		if err != nil {
			return nil, err
		}

		eq, err := valuesEqual(l, r)
		if err != nil {
			return nil, err
		}

		return value.Bool(eq), nil
	})

	b.fn("mergePatch", []string{"target", "patch"}, func(args []*value.Thunk) (value.Value, error) {
		targetV, err := forceArg("mergePatch", args[0])
		if err != nil {
			return nil, err
		}

		patchV, err := forceArg("mergePatch", args[1])
		if err != nil {
			return nil, err
		}

		return mergePatch(targetV, patchV)
	})

	b.fn("prune", []string{"a"}, func(args []*value.Thunk) (value.Value, error) {
		v, err := forceArg("prune", args[0])
		if err != nil {
			return nil, err
		}

		return prune(v)
	})
}

// objectHas backs both std.objectHas (visible fields only) and
// std.objectHasAll (visible and hidden), the two-argument counterparts of
// the evaluator-critical std.objectHasEx.
func (b *builder) objectHas(args []*value.Thunk, includeHidden bool) (value.Value, error) {
	objV, err := forceArg("objectHas", args[0])
	if err != nil {
		return nil, err
	}

	obj, err := asObject("objectHas", objV)
	if err != nil {
		return nil, err
	}

	nameV, err := forceArg("objectHas", args[1])
	if err != nil {
		return nil, err
	}

	name, err := asString("objectHas", nameV)
	if err != nil {
		return nil, err
	}

	return value.Bool(obj.Has(name, includeHidden)), nil
}

// objectFields backs std.objectFields/objectFieldsAll, the two-argument
// counterparts of std.objectFieldsEx.
func (b *builder) objectFields(args []*value.Thunk, includeHidden bool) (value.Value, error) {
	objV, err := forceArg("objectFields", args[0])
	if err != nil {
		return nil, err
	}

	obj, err := asObject("objectFields", objV)
	if err != nil {
		return nil, err
	}

	names := append([]string(nil), obj.VisibleNames(includeHidden)...)
	sort.Strings(names)

	elems := make([]*value.Thunk, len(names))
	for i, n := range names {
		elems[i] = value.Ready(value.String(n))
	}

	return &value.Array{Elements: elems}, nil
}

// mergePatch implements RFC 7396 JSON Merge Patch (std.mergePatch, spec.md
// §4.8's supplemented set): a null-valued field in patch deletes the
// corresponding target field; an object-valued field merges recursively;
// anything else replaces the target field outright. patch completely
// replaces target when patch itself isn't an object.
func mergePatch(target, patch value.Value) (value.Value, error) {
	patchObj, ok := patch.(*value.Object)
	if !ok {
		return patch, nil
	}

	targetObj, ok := target.(*value.Object)
	if !ok {
		targetObj = &value.Object{Fields: map[string]*value.FieldEntry{}}
	}

	names := append([]string(nil), targetObj.VisibleNames(false)...)
	seen := map[string]bool{}
	for _, n := range names {
		seen[n] = true
	}

	out := map[string]*value.Thunk{}
	order := make([]string, 0, len(names)+len(patchObj.VisibleNames(false)))

	patchDeletes := map[string]bool{}
	for _, n := range patchObj.VisibleNames(false) {
		pv, err := patchObj.Fields[n].Value.Force()
		if err != nil {
			return nil, err
		}

		if _, isNull := pv.(value.Null); isNull {
			patchDeletes[n] = true
		}
	}

	// target's own fields keep their original position, whether they are
	// untouched, deleted, or about to be merged in place below
	for _, n := range names {
		if patchDeletes[n] {
			continue
		}

		if !patchObj.Has(n, false) {
			order = append(order, n)
			out[n] = targetObj.Fields[n].Value

			continue
		}

		pv, err := patchObj.Fields[n].Value.Force()
		if err != nil {
			return nil, err
		}

		tv, err := targetObj.Fields[n].Value.Force()
		if err != nil {
			return nil, err
		}

		merged, err := mergePatch(tv, pv)
		if err != nil {
			return nil, err
		}

		order = append(order, n)
		out[n] = value.Ready(merged)
	}

	// fields patch introduces that target never had, in patch's own order
	for _, n := range patchObj.VisibleNames(false) {
		if seen[n] || patchDeletes[n] {
			continue
		}

		pv, err := patchObj.Fields[n].Value.Force()
		if err != nil {
			return nil, err
		}

		order = append(order, n)
		out[n] = value.Ready(pv)
	}

	return newDataObject(order, out), nil
}

// prune recursively strips nulls from a value: null array elements and
// null-valued object fields are removed, empty arrays/objects that result
// are kept as-is (std.prune only removes nulls, not empty containers).
func prune(v value.Value) (value.Value, error) {
	switch t := v.(type) {
	case *value.Array:
		elems := make([]*value.Thunk, 0, len(t.Elements))

		for _, el := range t.Elements {
			ev, err := el.Force()
			if err != nil {
				return nil, err
			}

			if _, isNull := ev.(value.Null); isNull {
				continue
			}

			pruned, err := prune(ev)
			if err != nil {
				return nil, err
			}

			elems = append(elems, value.Ready(pruned))
		}

		return &value.Array{Elements: elems}, nil
	case *value.Object:
		names := t.VisibleNames(false)
		order := make([]string, 0, len(names))
		out := map[string]*value.Thunk{}

		for _, n := range names {
			fv, err := t.Fields[n].Value.Force()
			if err != nil {
				return nil, err
			}

			if _, isNull := fv.(value.Null); isNull {
				continue
			}

			pruned, err := prune(fv)
			if err != nil {
				return nil, err
			}

			order = append(order, n)
			out[n] = value.Ready(pruned)
		}

		return newDataObject(order, out), nil
	default:
		return v, nil
	}
}

// newDataObject builds a plain Object out of already-evaluated fields, for
// builtins (mergePatch, prune) that synthesize new objects rather than
// merging lexical ones — every field is visible and has no super to
// rebuild against, following the same Build-ignores-self/super shape
// internal/stdlib's own std-field registration (builder.set) uses.
func newDataObject(order []string, fields map[string]*value.Thunk) *value.Object {
	entries := make(map[string]*value.FieldEntry, len(fields))

	for name, th := range fields {
		th := th
		entries[name] = &value.FieldEntry{
			Def: value.FieldDef{
				Hide: ast.ObjectFieldVisible,
				Build: func(self, super *value.Object) *value.Thunk {
					return th
				},
			},
			Value: th,
		}
	}

	return &value.Object{Names: order, Fields: entries}
}
