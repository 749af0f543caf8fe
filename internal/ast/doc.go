// Package ast defines every node of the Jsonnet abstract syntax tree used
// by the parser, the desugarer, and the evaluator of this module.
//
// Two trees share this node set:
//
//   - The raw tree the parser builds, which still contains sugared forms:
//     Dollar, ArrayComp, ObjectComp, Object (with method/comprehension
//     sugar), Assert, and Slice.
//   - The core tree the desugarer rewrites it into, where those sugared
//     nodes have been eliminated and every object literal has become a
//     DesugaredObject (see desugared_object.go).
//
// Every node embeds base for its source Pos and the node() marker; the
// evaluator switches on concrete node type with a single type switch
// rather than per-kind virtual dispatch (spec.md §9).
package ast
