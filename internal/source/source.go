// Package source is the shared source-file and span bookkeeping used
// by the lexer, parser, ast, and diag packages: everything downstream
// needs to say "this token/node came from this file, at this byte
// range" without depending on each other.
package source

import "fmt"

// File is one lexed/parsed input file.
type File struct {
	Name    string
	Content string
}

// Position is a single point in a File.
type Position struct {
	Line   int // 1-based
	Column int // 1-based, in runes
	Offset int // 0-based byte offset into File.Content
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open [Start, End) byte range within a File.
type Span struct {
	File  *File
	Start Position
	End   Position
}

func (s Span) String() string {
	if s.File == nil {
		return s.Start.String()
	}
	return fmt.Sprintf("%s:%s", s.File.Name, s.Start)
}

// Merge returns the smallest span covering both s and other. If either
// span has no file, the other is returned unchanged.
func (s Span) Merge(other Span) Span {
	if s.File == nil {
		return other
	}
	if other.File == nil {
		return s
	}
	start, end := s.Start, s.End
	if other.Start.Offset < start.Offset {
		start = other.Start
	}
	if other.End.Offset > end.Offset {
		end = other.End
	}
	return Span{File: s.File, Start: start, End: end}
}
