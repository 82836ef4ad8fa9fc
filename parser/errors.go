package parser

import (
	"fmt"

	"github.com/impala-lang/impala/diag"
	"github.com/impala-lang/impala/internal/source"
)

// Error is a located parse error: a message plus the span of source
// text it concerns.
type Error struct {
	Span source.Span
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Msg)
}

// Diagnostic converts e into the located-diagnostic form cmd/impalac
// renders.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{Severity: diag.Error, Span: e.Span, Message: e.Msg}
}

func newErrorf(span source.Span, format string, args ...interface{}) *Error {
	return &Error{Span: span, Msg: fmt.Sprintf(format, args...)}
}
