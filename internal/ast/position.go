// Package ast defines the abstract syntax tree shared by the parser, the
// desugarer, and the evaluator.
//
// A single node set serves both the raw (sugared) tree the parser produces
// and the core tree the desugarer rewrites it into: sugared-only nodes
// (ObjectComp, ArrayComp, Slice, ...) simply do not appear once desugaring
// has run. This mirrors the way the parser and desugarer documented in
// spec.md §4.2/§4.3 describe "the same AST" at two different stages rather
// than two distinct node sets.
package ast

import "fmt"

// Pos is a single point in source text: file, line, column, and absolute
// byte offset. Every node carries one, and every runtime error is reported
// against one.
type Pos struct {
	File   string
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}

	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// IsZero reports whether the position was never set.
func (p Pos) IsZero() bool { return p.Line == 0 && p.Column == 0 && p.Offset == 0 }
