package eval

import (
	"fmt"

	"github.com/conneroisu/jsonnet/internal/ast"
)

// RuntimeError is any failure surfacing during evaluation: a type
// mismatch, an out-of-range index, a user `error` expression, a failed
// assert, or exceeding the call-stack bound. Pos is the position of the
// expression being reduced when the failure was raised; Frames holds the
// call-site positions collected as the error propagates back up through
// Apply, innermost first, for the position-stack context spec.md §4.4
// and SPEC_FULL.md's error model call for.
type RuntimeError struct {
	Pos     ast.Pos
	Message string
	Frames  []ast.Pos
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Position and Stack satisfy internal/diag's positioned/stackable
// interfaces, so pkg/jsonnet can report a coded error with full call-site
// context without internal/diag importing internal/eval.
func (e *RuntimeError) Position() ast.Pos { return e.Pos }
func (e *RuntimeError) Stack() []ast.Pos  { return e.Frames }

func newError(pos ast.Pos, format string, args ...any) *RuntimeError {
	return &RuntimeError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// withFrame appends a call-site position to a propagating RuntimeError's
// stack trace; any other error is returned unchanged (it wasn't raised by
// this package, so it already carries whatever context it needs).
func withFrame(err error, pos ast.Pos) error {
	if re, ok := err.(*RuntimeError); ok {
		re.Frames = append(re.Frames, pos)

		return re
	}

	return err
}
