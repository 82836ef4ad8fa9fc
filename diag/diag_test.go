package diag

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/impala-lang/impala/internal/source"
)

func TestBatchHasErrorsOnlyWhenAnErrorSeverityDiagnosticExists(t *testing.T) {
	b := NewBatch()
	require.False(t, b.HasErrors())
	b.Add(Diagnostic{Severity: Warning, Message: "unused binding"})
	require.False(t, b.HasErrors())
	b.Errorf(source.Span{}, "cannot unify %s with %s", "int", "bool")
	require.True(t, b.HasErrors())
}

func TestBatchIDsAreUniquePerBatch(t *testing.T) {
	a, b := NewBatch(), NewBatch()
	require.NotEqual(t, a.ID, b.ID)
}

func TestRenderShowsSourceLineAndCaret(t *testing.T) {
	f := &source.File{Name: "test.imp", Content: "let x = 1 + true\n"}
	span := source.Span{File: f, Start: source.Position{Line: 1, Column: 9, Offset: 8}, End: source.Position{Line: 1, Column: 9, Offset: 8}}

	b := NewBatch()
	b.Errorf(span, "cannot unify int with bool")

	var buf bytes.Buffer
	Render(&buf, b)

	out := buf.String()
	require.Contains(t, out, "test.imp:1:9")
	require.Contains(t, out, "let x = 1 + true")
	require.Contains(t, out, "^")
}
