package check

import (
	"fmt"

	"github.com/impala-lang/impala/diag"
	"github.com/impala-lang/impala/internal/source"
)

// Error is a type-check failure located at a source span: either a
// *types.Error surfaced from the core (unification failure, illegal
// construction, missing binding) or one check raises directly
// (undefined struct/trait, arity mismatch, unsatisfied trait bound).
type Error struct {
	Span source.Span
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Span, e.Msg) }

// Diagnostic converts e into the located-diagnostic form cmd/impalac
// renders.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{Severity: diag.Error, Span: e.Span, Message: e.Msg}
}

func errorf(span source.Span, format string, args ...interface{}) *Error {
	return &Error{Span: span, Msg: fmt.Sprintf(format, args...)}
}
