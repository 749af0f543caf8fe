package desugar

import (
	"fmt"

	"github.com/conneroisu/jsonnet/internal/ast"
)

// StaticError is a desugar-time failure detected without evaluating
// anything — currently just a `$` with no enclosing object.
type StaticError struct {
	Pos     ast.Pos
	Message string
}

func (e *StaticError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// Position satisfies internal/diag's positioned interface.
func (e *StaticError) Position() ast.Pos { return e.Pos }
