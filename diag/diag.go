// Package diag is the located-diagnostic boundary lexer, parser,
// resolve, and check all report through: a Span (see internal/source)
// plus a message becomes a Diagnostic, and every Diagnostic produced
// during one compiler invocation is collected into a Batch stamped
// with its own run ID.
package diag

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/impala-lang/impala/internal/source"
)

// Severity classifies how a Diagnostic should affect the exit code
// and how it renders.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	default:
		return "diagnostic"
	}
}

// Label attaches a short message to a secondary span — "first bound
// here", "expected because of this annotation" — printed under the
// primary diagnostic.
type Label struct {
	Span    source.Span
	Message string
}

// Diagnostic is one located compiler message.
type Diagnostic struct {
	Severity  Severity
	Span      source.Span
	Message   string
	Secondary []Label
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s: %s", d.Span, d.Severity, d.Message)
}

// Batch is every Diagnostic produced by one compiler invocation (one
// `impalac check`/`impalac lower` run), stamped with a UUID so two
// concurrent invocations' logs — e.g. under a build daemon fanning
// requests out to worker goroutines — never interleave under the same
// identifier.
type Batch struct {
	ID          uuid.UUID
	Diagnostics []Diagnostic
}

// NewBatch starts an empty, freshly-identified Batch.
func NewBatch() *Batch {
	return &Batch{ID: uuid.New()}
}

func (b *Batch) Add(d Diagnostic) {
	b.Diagnostics = append(b.Diagnostics, d)
}

// Errorf appends an Error-severity Diagnostic at span.
func (b *Batch) Errorf(span source.Span, format string, args ...interface{}) {
	b.Add(Diagnostic{Severity: Error, Span: span, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any Diagnostic in the batch is
// Error-severity — the CLI's exit-code decision.
func (b *Batch) HasErrors() bool {
	for _, d := range b.Diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}
