// Package desugar rewrites the raw (sugared) internal/ast tree the parser
// produces into the smaller core tree internal/eval actually understands:
// every object literal becomes a DesugaredObject, comprehensions become
// std-library calls, slices become std.slice calls, and the handful of
// other rewrites listed in spec.md §4.3 are applied.
//
// Desugaring is not idempotent — running it again on output that contains
// a DesugaredObject panics — so it must run exactly once, immediately
// after parsing.
package desugar
