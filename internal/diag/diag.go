// Package diag wraps every error a Jsonnet evaluation run can surface —
// lex, parse, desugar (static), and runtime — in a single coded type so
// cmd/jsonnet and pkg/jsonnet callers can branch on Code() rather than
// string-matching error text. Coding errors this way is grounded on
// samber/oops as used throughout holomush-holomush (e.g.
// internal/auth/hasher.go's oops.Code("AUTH_...").Wrap/Errorf calls);
// conneroisu-gix itself lists samber/oops in go.mod without ever
// importing it, so wiring it in here resolves that mismatch rather than
// dropping a dependency (see DESIGN.md).
package diag

import (
	"errors"
	"strconv"

	"github.com/samber/oops"

	"github.com/conneroisu/jsonnet/internal/ast"
)

const (
	CodeLex     = "JSONNET_LEX"
	CodeParse   = "JSONNET_PARSE"
	CodeStatic  = "JSONNET_STATIC"
	CodeRuntime = "JSONNET_RUNTIME"
	CodeImport  = "JSONNET_IMPORT"
)

// Wrap builds an oops error tagged with code, the failing position, and
// (when non-empty) the position stack a runtime error accumulated as it
// propagated back up through nested Apply calls (spec.md §4.4). stack
// arrives innermost call first; it is recorded under the keys frame0,
// frame1, ... outermost first, so the most recent call comes last.
func Wrap(code string, pos ast.Pos, stack []ast.Pos, err error) error {
	b := oops.Code(code).With("position", pos.String())

	for i := range stack {
		b = b.With(frameKey(i), stack[len(stack)-1-i].String())
	}

	return b.Wrap(err)
}

// Errorf builds a new coded error directly, for failures that don't wrap
// an existing Go error (a lex/parse/static message, typically).
func Errorf(code string, pos ast.Pos, format string, args ...any) error {
	return oops.Code(code).With("position", pos.String()).Errorf(format, args...)
}

func frameKey(i int) string {
	return "frame" + strconv.Itoa(i)
}

// positioned is implemented by every stage-specific error type this
// module's pipeline produces (pkg/parser.ParseError,
// internal/desugar.StaticError, internal/eval.RuntimeError) — each
// already carries the Pos spec.md §4.2/§4.4 require reporting, just
// under a different local type per package.
type positioned interface {
	error
	Position() ast.Pos
}

// stackable is additionally implemented by internal/eval.RuntimeError,
// whose Stack field carries the call-site frames collected as the error
// propagated up through Apply.
type stackable interface {
	Stack() []ast.Pos
}

// FromError classifies err by the stage that produced it and returns the
// equivalent coded diag error; an err of any other type (one already
// produced by this package, or from outside the pipeline entirely) is
// returned unchanged.
func FromError(stage string, err error) error {
	if err == nil {
		return nil
	}

	pos, message := ast.Pos{}, err.Error()

	if p, ok := err.(positioned); ok {
		pos = p.Position()
	}

	var stack []ast.Pos
	if s, ok := err.(stackable); ok {
		stack = s.Stack()
	}

	return &StageError{Stage: stage, Wrapped: Wrap(stage, pos, stack, errorString(message))}
}

type errorString string

func (e errorString) Error() string { return string(e) }

// StageError tags a diag error with the pipeline stage that produced it —
// lex/parse/static versus runtime — letting cmd/jsonnet pick an exit code
// (spec.md §6: 0 success, 1 lex/parse/static, 2 runtime) without inspecting
// the oops error's internals.
type StageError struct {
	Stage   string
	Wrapped error
}

func (e *StageError) Error() string { return e.Wrapped.Error() }
func (e *StageError) Unwrap() error { return e.Wrapped }

// Stage reports the pipeline stage code (CodeLex, CodeParse, ...) that
// produced err, if err (or something it wraps) is a *StageError.
func Stage(err error) (string, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}

	return "", false
}
