// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package ast

import (
	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/types"
)

// If is a conditional expression: `if cond { then } else { else }`.
// The else branch is mandatory in Impala, since If is an expression
// and both branches must unify to the same type.
type If struct {
	Cond     Expr
	Then     Expr
	Else     Expr
	span     source.Span
	inferred types.Handle
}

func NewIf(cond, then, els Expr, span source.Span) *If {
	return &If{Cond: cond, Then: then, Else: els, span: span}
}
func (e *If) ExprName() string       { return "If" }
func (e *If) Span() source.Span      { return e.span }
func (e *If) Type() types.Handle     { return e.inferred }
func (e *If) SetType(t types.Handle) { e.inferred = t }

// Block is a brace-delimited sequence of let-statements followed by a
// trailing result expression: `{ let a = 1; a + 1 }`.
type Block struct {
	Stmts    []*LetDecl
	Result   Expr
	span     source.Span
	inferred types.Handle
}

func NewBlock(stmts []*LetDecl, result Expr, span source.Span) *Block {
	return &Block{Stmts: stmts, Result: result, span: span}
}
func (e *Block) ExprName() string       { return "Block" }
func (e *Block) Span() source.Span      { return e.span }
func (e *Block) Type() types.Handle     { return e.inferred }
func (e *Block) SetType(t types.Handle) { e.inferred = t }

// Pattern is the base for match-arm patterns.
type Pattern interface {
	patternNode()
	Span() source.Span
}

var (
	_ Pattern = (*WildcardPattern)(nil)
	_ Pattern = (*VarPattern)(nil)
	_ Pattern = (*LiteralPattern)(nil)
	_ Pattern = (*TuplePattern)(nil)
)

// WildcardPattern matches anything and binds nothing: `_`.
type WildcardPattern struct{ span source.Span }

func NewWildcardPattern(span source.Span) *WildcardPattern { return &WildcardPattern{span: span} }
func (p *WildcardPattern) patternNode()      {}
func (p *WildcardPattern) Span() source.Span { return p.span }

// VarPattern matches anything and binds it to Name.
type VarPattern struct {
	Name string
	span source.Span
}

func NewVarPattern(name string, span source.Span) *VarPattern {
	return &VarPattern{Name: name, span: span}
}
func (p *VarPattern) patternNode()      {}
func (p *VarPattern) Span() source.Span { return p.span }

// LiteralPattern matches a scalar constant exactly.
type LiteralPattern struct {
	Lit  *Literal
	span source.Span
}

func NewLiteralPattern(lit *Literal, span source.Span) *LiteralPattern {
	return &LiteralPattern{Lit: lit, span: span}
}
func (p *LiteralPattern) patternNode()      {}
func (p *LiteralPattern) Span() source.Span { return p.span }

// TuplePattern destructures a tuple, one sub-pattern per element.
type TuplePattern struct {
	Elems []Pattern
	span  source.Span
}

func NewTuplePattern(elems []Pattern, span source.Span) *TuplePattern {
	return &TuplePattern{Elems: elems, span: span}
}
func (p *TuplePattern) patternNode()      {}
func (p *TuplePattern) Span() source.Span { return p.span }

// MatchCase is one arm of a Match: a pattern, an optional guard, and
// a body expression.
type MatchCase struct {
	Pattern Pattern
	Guard   Expr // nil if unguarded
	Body    Expr
}

// Match pattern-matches Value against each case in order, evaluating
// the first case whose pattern matches (and whose guard, if present,
// is true).
type Match struct {
	Value    Expr
	Cases    []MatchCase
	span     source.Span
	inferred types.Handle
}

func NewMatch(value Expr, cases []MatchCase, span source.Span) *Match {
	return &Match{Value: value, Cases: cases, span: span}
}
func (e *Match) ExprName() string       { return "Match" }
func (e *Match) Span() source.Span      { return e.span }
func (e *Match) Type() types.Handle     { return e.inferred }
func (e *Match) SetType(t types.Handle) { e.inferred = t }
