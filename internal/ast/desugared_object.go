package ast

// DesugaredField is one field of a DesugaredObject: the key has already
// been reduced to a plain expression (identifier and string-literal keys
// become Str nodes), and any method/comprehension sugar on the value has
// already been folded away (spec.md §4.3 rules 2 and 4).
type DesugaredField struct {
	Key       Node // always non-nil; evaluated once per object construction
	Hide      ObjectFieldHide
	PlusSuper bool
	Expr      Node
}

// DesugaredObject is the only object shape the evaluator ever sees. The
// desugarer builds one from every Object and ObjectComp; see
// internal/desugar.
type DesugaredObject struct {
	base
	Locals  []LocalBind
	Asserts []Node
	Fields  []DesugaredField
}
