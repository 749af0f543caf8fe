// Package eval is the recursive, call-by-need evaluator: it walks the
// core tree internal/desugar produces and reduces it to an
// internal/value.Value. Every sub-expression that may be captured
// becomes a value.Thunk bound to the environment it closed over, so
// nothing is computed until something actually demands it (spec.md
// §4.4).
package eval
