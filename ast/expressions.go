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
	"github.com/impala-lang/impala/token"
	"github.com/impala-lang/impala/types"
)

// LiteralKind tags the kind of a Literal's value.
type LiteralKind int

const (
	IntLiteral LiteralKind = iota
	FloatLiteral
	StringLiteral
	BoolLiteral
)

// Literal is a scalar constant: an int, float, string, or bool.
type Literal struct {
	LitKind  LiteralKind
	Text     string
	span     source.Span
	inferred types.Handle
}

func NewLiteral(kind LiteralKind, text string, span source.Span) *Literal {
	return &Literal{LitKind: kind, Text: text, span: span}
}
func (e *Literal) ExprName() string      { return "Literal" }
func (e *Literal) Span() source.Span     { return e.span }
func (e *Literal) Type() types.Handle    { return e.inferred }
func (e *Literal) SetType(t types.Handle) { e.inferred = t }

// Var is a reference to a bound name.
type Var struct {
	Name     string
	span     source.Span
	inferred types.Handle
}

func NewVar(name string, span source.Span) *Var { return &Var{Name: name, span: span} }
func (e *Var) ExprName() string       { return "Var" }
func (e *Var) Span() source.Span      { return e.span }
func (e *Var) Type() types.Handle     { return e.inferred }
func (e *Var) SetType(t types.Handle) { e.inferred = t }

// Call is function application: `f(x, y)`.
type Call struct {
	Func     Expr
	Args     []Expr
	span     source.Span
	inferred types.Handle
}

func NewCall(fn Expr, args []Expr, span source.Span) *Call {
	return &Call{Func: fn, Args: args, span: span}
}
func (e *Call) ExprName() string       { return "Call" }
func (e *Call) Span() source.Span      { return e.span }
func (e *Call) Type() types.Handle     { return e.inferred }
func (e *Call) SetType(t types.Handle) { e.inferred = t }

// Param is a function parameter: a name and its (optional) surface
// type annotation.
type Param struct {
	Name string
	Ann  TypeExpr // nil if the parameter type must be inferred
	span source.Span
}

func NewParam(name string, ann TypeExpr, span source.Span) Param {
	return Param{Name: name, Ann: ann, span: span}
}
func (p Param) Span() source.Span { return p.span }

// Func is a closure literal: `fn(x, y) { x + y }`.
type Func struct {
	Params   []Param
	Body     Expr
	span     source.Span
	inferred types.Handle
}

func NewFunc(params []Param, body Expr, span source.Span) *Func {
	return &Func{Params: params, Body: body, span: span}
}
func (e *Func) ExprName() string       { return "Func" }
func (e *Func) Span() source.Span      { return e.span }
func (e *Func) Type() types.Handle     { return e.inferred }
func (e *Func) SetType(t types.Handle) { e.inferred = t }

// BinOp is a binary operator application: `a + b`, `a == b`, ...
type BinOp struct {
	Op       token.Kind
	Left     Expr
	Right    Expr
	span     source.Span
	inferred types.Handle
}

func NewBinOp(op token.Kind, left, right Expr, span source.Span) *BinOp {
	return &BinOp{Op: op, Left: left, Right: right, span: span}
}
func (e *BinOp) ExprName() string       { return "BinOp" }
func (e *BinOp) Span() source.Span      { return e.span }
func (e *BinOp) Type() types.Handle     { return e.inferred }
func (e *BinOp) SetType(t types.Handle) { e.inferred = t }

// UnaryOp is a prefix operator application: `!b`, `-x`.
type UnaryOp struct {
	Op       token.Kind
	Operand  Expr
	span     source.Span
	inferred types.Handle
}

func NewUnaryOp(op token.Kind, operand Expr, span source.Span) *UnaryOp {
	return &UnaryOp{Op: op, Operand: operand, span: span}
}
func (e *UnaryOp) ExprName() string       { return "UnaryOp" }
func (e *UnaryOp) Span() source.Span      { return e.span }
func (e *UnaryOp) Type() types.Handle     { return e.inferred }
func (e *UnaryOp) SetType(t types.Handle) { e.inferred = t }

// TupleLit is a tuple constructor: `(a, b, c)`.
type TupleLit struct {
	Elems    []Expr
	span     source.Span
	inferred types.Handle
}

func NewTupleLit(elems []Expr, span source.Span) *TupleLit {
	return &TupleLit{Elems: elems, span: span}
}
func (e *TupleLit) ExprName() string       { return "TupleLit" }
func (e *TupleLit) Span() source.Span      { return e.span }
func (e *TupleLit) Type() types.Handle     { return e.inferred }
func (e *TupleLit) SetType(t types.Handle) { e.inferred = t }

// FieldInit pairs a struct field name with its initializer, inside a
// StructLit: `{ x = 1, y = 2 }`.
type FieldInit struct {
	Name  string
	Value Expr
}

// StructLit constructs a value of a named struct type: `Point { x = 1, y = 2 }`.
type StructLit struct {
	StructName string
	Fields     []FieldInit
	span       source.Span
	inferred   types.Handle
}

func NewStructLit(name string, fields []FieldInit, span source.Span) *StructLit {
	return &StructLit{StructName: name, Fields: fields, span: span}
}
func (e *StructLit) ExprName() string       { return "StructLit" }
func (e *StructLit) Span() source.Span      { return e.span }
func (e *StructLit) Type() types.Handle     { return e.inferred }
func (e *StructLit) SetType(t types.Handle) { e.inferred = t }

// FieldAccess projects a field out of a struct value: `p.x`.
type FieldAccess struct {
	Value    Expr
	Field    string
	span     source.Span
	inferred types.Handle
}

func NewFieldAccess(value Expr, field string, span source.Span) *FieldAccess {
	return &FieldAccess{Value: value, Field: field, span: span}
}
func (e *FieldAccess) ExprName() string       { return "FieldAccess" }
func (e *FieldAccess) Span() source.Span      { return e.span }
func (e *FieldAccess) Type() types.Handle     { return e.inferred }
func (e *FieldAccess) SetType(t types.Handle) { e.inferred = t }
