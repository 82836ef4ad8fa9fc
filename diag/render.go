package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/impala-lang/impala/internal/source"
)

// Render writes every Diagnostic in b to w in funxy/able-style
// single-line-with-caret form:
//
//	test.imp:3:9: error: cannot unify int with bool
//	  let x = 1 + true
//	          ^
func Render(w io.Writer, b *Batch) {
	for _, d := range b.Diagnostics {
		renderOne(w, d)
	}
}

func renderOne(w io.Writer, d Diagnostic) {
	fmt.Fprintln(w, d.String())
	if line := sourceLine(d.Span); line != "" {
		fmt.Fprintf(w, "  %s\n", line)
		fmt.Fprintf(w, "  %s^\n", strings.Repeat(" ", d.Span.Start.Column-1))
	}
	for _, sec := range d.Secondary {
		fmt.Fprintf(w, "  %s: %s\n", sec.Span, sec.Message)
	}
}

// sourceLine returns the full line of source text span.Start falls
// on, or "" if span carries no File (a synthetic span built outside
// any real source, e.g. in a test).
func sourceLine(span source.Span) string {
	if span.File == nil {
		return ""
	}
	content := span.File.Content
	offset := span.Start.Offset
	if offset > len(content) {
		offset = len(content)
	}
	start := strings.LastIndexByte(content[:offset], '\n') + 1
	end := strings.IndexByte(content[offset:], '\n')
	if end == -1 {
		return content[start:]
	}
	return content[start : offset+end]
}
