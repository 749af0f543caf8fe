// Package value defines the runtime value model internal/eval produces and
// consumes: the tagged Value set (Null, Bool, Number, String, Array,
// Object, Function, Builtin), the Thunk that makes every one of them
// lazy, and the Environment that binds names to thunks with dedicated
// self/super slots for object-field frames.
//
// This package never imports internal/eval. A Thunk wraps an opaque
// compute closure rather than an AST node plus an evaluator reference, so
// the laziness machinery has no dependency on how a value is actually
// produced; internal/eval is what builds those closures.
package value
