package eval

import (
	"github.com/conneroisu/jsonnet/internal/ast"
	"github.com/conneroisu/jsonnet/internal/value"
)

// evalObject builds a fresh value.Object from a DesugaredObject literal.
// super is the object frame to evaluate this literal's own fields
// against — nil unless this literal is itself the right-hand side of a
// `+` being evaluated in place (object literals written directly after a
// `+` still need a super frame; ordinary standalone literals pass nil).
func (it *Interpreter) evalObject(n *ast.DesugaredObject, env *value.Environment, super *value.Object) (value.Value, error) {
	obj := &value.Object{}

	// makeFrame rebuilds the object-locals on top of whichever self/super
	// pair a field or assert is being (re)built against — every `+`
	// rebuilds fields with a new self, and locals defined in this layer
	// must see that same new self (spec.md §4.6).
	makeFrame := func(self, sup *value.Object) *value.Environment {
		frame := env.ExtendWithObjectFrame(self, sup)

		for _, b := range n.Locals {
			b := b
			frame.Bind(b.Name, value.NewNamedThunk(b.Name, func() (value.Value, error) {
				return it.Eval(b.Expr, frame)
			}))
		}

		return frame
	}

	keyEnv := makeFrame(obj, super)

	names := make([]string, 0, len(n.Fields))
	fields := make(map[string]*value.FieldEntry, len(n.Fields))

	for _, f := range n.Fields {
		keyV, err := it.Eval(f.Key, keyEnv)
		if err != nil {
			return nil, err
		}

		if _, isNull := keyV.(value.Null); isNull {
			continue // a computed key that evaluates to null omits the field
		}

		name, ok := keyV.(value.String)
		if !ok {
			return nil, newError(f.Key.Position(), "field name must be a string, got %s", keyV.Type())
		}

		key := string(name)

		if _, exists := fields[key]; exists {
			return nil, newError(f.Key.Position(), "duplicate field name %q", key)
		}

		f := f

		def := value.FieldDef{
			Hide:      f.Hide,
			PlusSuper: f.PlusSuper,
			OwnSuper:  super,
			Build: func(self, sup *value.Object) *value.Thunk {
				frame := makeFrame(self, sup)

				return value.NewNamedThunk(key, func() (value.Value, error) {
					return it.Eval(f.Expr, frame)
				})
			},
		}

		names = append(names, key)
		fields[key] = &value.FieldEntry{Def: def, Value: def.Build(obj, super)}
	}

	asserts := make([]*value.AssertEntry, 0, len(n.Asserts))

	for _, a := range n.Asserts {
		a := a

		def := value.AssertDef{
			OwnSuper: super,
			Build: func(self, sup *value.Object) *value.Thunk {
				frame := makeFrame(self, sup)

				return value.NewThunk(func() (value.Value, error) {
					return it.Eval(a, frame)
				})
			},
		}

		asserts = append(asserts, &value.AssertEntry{Def: def, Value: def.Build(obj, super)})
	}

	obj.Names = names
	obj.Fields = fields
	obj.Asserts = asserts

	return obj, nil
}

// mergeObjects implements `L + R` on two objects (spec.md §4.6): the
// result's field order is L's names, then any names only R introduces.
// Every field in R — whether or not L also defines it — resolves with
// super = L, since R as a whole sits on top of L; a field found only in L
// keeps whatever super L itself was already using. Every field and
// assert is rebuilt against the new merged object as self, so `self`
// inside any field body — from either side — always resolves to the
// outermost object in the whole `+` chain.
func mergeObjects(l, r *value.Object) *value.Object {
	result := &value.Object{}

	names := make([]string, 0, len(l.Names)+len(r.Names))
	names = append(names, l.Names...)

	for _, n := range r.Names {
		if _, ok := l.Fields[n]; !ok {
			names = append(names, n)
		}
	}

	fields := make(map[string]*value.FieldEntry, len(names))

	for _, name := range names {
		lf, inL := l.Fields[name]
		rf, inR := r.Fields[name]

		var def value.FieldDef

		var ownSuper *value.Object

		switch {
		case inR:
			ownSuper = l

			if inL && rf.Def.PlusSuper {
				lDef := lf.Def
				rDef := rf.Def

				hide := rf.Def.Hide
				if hide == ast.ObjectFieldVisible && lf.Def.Hide == ast.ObjectFieldHidden {
					hide = ast.ObjectFieldHidden
				}

				def = value.FieldDef{
					Hide:      hide,
					PlusSuper: true,
					OwnSuper:  l,
					Build: func(self, super *value.Object) *value.Thunk {
						return value.NewNamedThunk(name, func() (value.Value, error) {
							leftV, err := lDef.Build(self, lDef.OwnSuper).Force()
							if err != nil {
								return nil, err
							}

							rightV, err := rDef.Build(self, l).Force()
							if err != nil {
								return nil, err
							}

							return addValues(leftV, rightV)
						})
					},
				}
			} else {
				def = value.FieldDef{
					Hide:      rf.Def.Hide,
					PlusSuper: rf.Def.PlusSuper,
					OwnSuper:  l,
					Build:     rf.Def.Build,
				}
			}
		case inL:
			def = lf.Def
			ownSuper = lf.Def.OwnSuper
		}

		fields[name] = &value.FieldEntry{Def: def, Value: def.Build(result, ownSuper)}
	}

	asserts := make([]*value.AssertEntry, 0, len(l.Asserts)+len(r.Asserts))

	for _, a := range l.Asserts {
		a := a
		asserts = append(asserts, &value.AssertEntry{Def: a.Def, Value: a.Def.Build(result, a.Def.OwnSuper)})
	}

	for _, a := range r.Asserts {
		a := a
		asserts = append(asserts, &value.AssertEntry{Def: a.Def, Value: a.Def.Build(result, a.Def.OwnSuper)})
	}

	result.Names = names
	result.Fields = fields
	result.Asserts = asserts

	return result
}

func (it *Interpreter) evalIndex(n *ast.Index, env *value.Environment) (value.Value, error) {
	targetV, err := it.Eval(n.Target, env)
	if err != nil {
		return nil, err
	}

	idxV, err := it.Eval(n.Index, env)
	if err != nil {
		return nil, err
	}

	return it.index(n.Position(), targetV, idxV)
}

func (it *Interpreter) index(pos ast.Pos, targetV, idxV value.Value) (value.Value, error) {
	switch t := targetV.(type) {
	case *value.Array:
		i, ok := idxV.(value.Number)
		if !ok {
			return nil, newError(pos, "array index must be a number, got %s", idxV.Type())
		}

		idx := int(i)
		if idx < 0 || idx >= len(t.Elements) {
			return nil, newError(pos, "array index %d out of bounds [0,%d)", idx, len(t.Elements))
		}

		v, err := t.Elements[idx].Force()
		if err != nil {
			return nil, withFrame(err, pos)
		}

		return v, nil
	case *value.Object:
		key, ok := idxV.(value.String)
		if !ok {
			return nil, newError(pos, "object index must be a string, got %s", idxV.Type())
		}

		fe, ok := t.Fields[string(key)]
		if !ok {
			return nil, newError(pos, "object has no field named %q", string(key))
		}

		if err := t.ForceAsserts(); err != nil {
			return nil, err
		}

		v, err := fe.Value.Force()
		if err != nil {
			return nil, withFrame(err, pos)
		}

		return v, nil
	case value.String:
		i, ok := idxV.(value.Number)
		if !ok {
			return nil, newError(pos, "string index must be a number, got %s", idxV.Type())
		}

		runes := []rune(string(t))
		idx := int(i)

		if idx < 0 || idx >= len(runes) {
			return nil, newError(pos, "string index %d out of bounds [0,%d)", idx, len(runes))
		}

		return value.String(string(runes[idx])), nil
	default:
		return nil, newError(pos, "cannot index a %s", targetV.Type())
	}
}

func (it *Interpreter) evalSuperIndex(n *ast.SuperIndex, env *value.Environment) (value.Value, error) {
	super, ok := env.Super()
	if !ok || super == nil {
		return nil, newError(n.Position(), "no super object to index")
	}

	idxV, err := it.Eval(n.Index, env)
	if err != nil {
		return nil, err
	}

	key, ok := idxV.(value.String)
	if !ok {
		return nil, newError(n.Position(), "object index must be a string, got %s", idxV.Type())
	}

	fe, ok := super.Fields[string(key)]
	if !ok {
		return nil, newError(n.Position(), "super has no field named %q", string(key))
	}

	// super.f still evaluates against the *current* self, not super's own
	// — self always tracks the outermost combined object (spec.md §4.6),
	// so the field's recipe is rebuilt rather than reusing fe.Value
	// (which was bound when super was itself constructed, possibly
	// against a less-merged self).
	self, _ := env.Self()

	v, err := fe.Def.Build(self, fe.Def.OwnSuper).Force()
	if err != nil {
		return nil, withFrame(err, n.Position())
	}

	return v, nil
}

func (it *Interpreter) evalInSuper(n *ast.InSuper, env *value.Environment) (value.Value, error) {
	super, ok := env.Super()
	if !ok || super == nil {
		return value.Bool(false), nil
	}

	idxV, err := it.Eval(n.Index, env)
	if err != nil {
		return nil, err
	}

	key, ok := idxV.(value.String)
	if !ok {
		return nil, newError(n.Position(), "'in super' key must be a string, got %s", idxV.Type())
	}

	return value.Bool(super.Has(string(key), true)), nil
}
