package value

import (
	"fmt"

	"github.com/conneroisu/jsonnet/internal/ast"
)

// Type identifies a Value's runtime kind, the same six names std.type
// reports (spec.md §4.8): "null", "boolean", "number", "string", "array",
// "object", plus "function" for both user and native callables.
type Type byte

const (
	TypeNull Type = iota
	TypeBool
	TypeNumber
	TypeString
	TypeArray
	TypeObject
	TypeFunction
)

func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	case TypeFunction:
		return "function"
	default:
		return fmt.Sprintf("Type(%d)", byte(t))
	}
}

// Value is the interface every runtime Jsonnet value implements. Unlike
// the AST's Node, dispatch over Value happens by a type switch in
// internal/eval and internal/stdlib, not by methods on Value itself —
// operators need access to position and error-wrapping context a bare
// Value doesn't carry.
type Value interface {
	Type() Type
}

// Null is Jsonnet's null.
type Null struct{}

func (Null) Type() Type { return TypeNull }

// Bool is a Jsonnet boolean.
type Bool bool

func (Bool) Type() Type { return TypeBool }

// Number is Jsonnet's single numeric type — IEEE 754 double precision,
// spec.md §3.
type Number float64

func (Number) Type() Type { return TypeNumber }

// String is a Jsonnet string, stored as a Go string of runes already
// unescaped by the lexer/parser.
type String string

func (String) Type() Type { return TypeString }

// Array is a Jsonnet array. Elements are thunks: array literals and
// std.makeArray both build arrays whose elements are only forced when
// indexed or manifested (spec.md §4.4).
type Array struct {
	Elements []*Thunk
}

func (*Array) Type() Type { return TypeArray }

// NewArray wraps already-forced values as an array of ready thunks; used
// by builtins that hand back a concrete array rather than deferring
// element computation.
func NewArray(elems ...Value) *Array {
	thunks := make([]*Thunk, len(elems))
	for i, v := range elems {
		thunks[i] = Ready(v)
	}

	return &Array{Elements: thunks}
}

// Function is a user-defined closure: the parameter list (including any
// default expressions, left in place per spec.md §4.3 rule 5), its body,
// and the environment it closed over at definition time.
type Function struct {
	Name   string // empty for anonymous functions; used in error messages
	Params []ast.Param
	Body   ast.Node
	Env    *Environment
}

func (*Function) Type() Type { return TypeFunction }

// Builtin is a native function implemented in Go. Params names the
// parameters in order so named-argument calls (`f(x=1)`) can resolve
// against them the same way they would a user Function.
type Builtin struct {
	Name   string
	Params []string
	Fn     func(args []*Thunk) (Value, error)
}

func (*Builtin) Type() Type { return TypeFunction }
