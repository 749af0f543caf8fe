package value

import "github.com/conneroisu/jsonnet/internal/ast"

// FieldDef is a field's reusable recipe: everything needed to (re)build
// its value thunk against a given self/super pair. internal/eval builds
// one of these per DesugaredField and keeps it around after the first
// `self` binding so a later `+` can rebuild the same field bound to a new,
// further-merged self (spec.md §4.6 — self always resolves to the
// outermost combined object, not whichever layer first wrote the field).
type FieldDef struct {
	Hide      ast.ObjectFieldHide
	PlusSuper bool
	// OwnSuper is the super this field resolves against when it is
	// *not* being actively overridden by a `+` — the layer, if any, that
	// was already beneath it the last time it was (re)defined.
	OwnSuper *Object
	// Build evaluates the field body in its captured lexical environment
	// extended with the given self/super object-frame.
	Build func(self, super *Object) *Thunk
}

// FieldEntry is one resolved field of an Object: the recipe that produced
// it, plus the thunk already bound to this particular Object as self.
type FieldEntry struct {
	Def   FieldDef
	Value *Thunk
}

// AssertDef mirrors FieldDef for object-level asserts, which need the
// same self-rebinding treatment on every `+` (spec.md §4.6).
type AssertDef struct {
	OwnSuper *Object
	Build    func(self, super *Object) *Thunk
}

// AssertEntry mirrors FieldEntry for asserts.
type AssertEntry struct {
	Def   AssertDef
	Value *Thunk
}

// Object is an immutable, already-merged Jsonnet object. `+` produces a
// brand new Object (spec.md §4.6) by rebuilding every field's and
// assert's FieldDef/AssertDef against the new self, rather than mutating
// either operand.
type Object struct {
	// Names preserves field insertion order: L's fields first, then any
	// names introduced only by R, matching spec.md §4.6's ordering rule.
	Names  []string
	Fields map[string]*FieldEntry

	Asserts []*AssertEntry
}

// Has reports whether name names a field, optionally including hidden
// ones — the third argument to std.objectHasEx (spec.md §4.3 rule 7).
func (o *Object) Has(name string, includeHidden bool) bool {
	f, ok := o.Fields[name]
	if !ok {
		return false
	}

	return includeHidden || f.Def.Hide != ast.ObjectFieldHidden
}

func (*Object) Type() Type { return TypeObject }

// VisibleNames returns field names in declaration order, skipping hidden
// fields unless includeHidden is set — used by both manifestation and
// std.objectFieldsEx.
func (o *Object) VisibleNames(includeHidden bool) []string {
	names := make([]string, 0, len(o.Names))

	for _, n := range o.Names {
		if includeHidden || o.Fields[n].Def.Hide != ast.ObjectFieldHidden {
			names = append(names, n)
		}
	}

	return names
}

// ForceAsserts runs every assert thunk, stopping at (and returning) the
// first failure. Safe to call repeatedly: each Thunk memoizes, so asserts
// only ever actually run once per Object instance.
func (o *Object) ForceAsserts() error {
	for _, a := range o.Asserts {
		if _, err := a.Value.Force(); err != nil {
			return err
		}
	}

	return nil
}
