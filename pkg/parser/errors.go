package parser

import (
	"fmt"
	"strings"

	"github.com/conneroisu/jsonnet/internal/ast"
)

// ParseError is a single unexpected-token or malformed-construct failure,
// carrying the position spec.md §4.2 requires every parse failure to report.
type ParseError struct {
	Pos     ast.Pos
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Position satisfies internal/diag's positioned interface.
func (e ParseError) Position() ast.Pos { return e.Pos }

// ParseErrors accumulates every ParseError hit while parsing, so a single
// pass can report more than just the first failure.
type ParseErrors struct {
	errors []ParseError
}

func (p *ParseErrors) add(pos ast.Pos, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any error was recorded.
func (p *ParseErrors) HasErrors() bool { return len(p.errors) > 0 }

// Errors returns every recorded error.
func (p *ParseErrors) Errors() []ParseError { return p.errors }

func (p *ParseErrors) Error() string {
	if len(p.errors) == 0 {
		return "no errors"
	}

	if len(p.errors) == 1 {
		return p.errors[0].Error()
	}

	msgs := make([]string, len(p.errors))
	for i, e := range p.errors {
		msgs[i] = e.Error()
	}

	return fmt.Sprintf("%d parse errors:\n%s", len(p.errors), strings.Join(msgs, "\n"))
}
