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

// Package ast is the surface-syntax tree produced by the parser and
// consumed by resolve and check. Every node knows the source span it
// came from; every expression node grows an inferred types.Handle
// once check has run over it.
package ast

import (
	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/types"
)

// Expr is the base for all expression nodes.
type Expr interface {
	// ExprName is the syntax-type of the expression, used in panics
	// and diagnostics ("Call", "If", "Match", ...).
	ExprName() string
	// Span is the source range the expression was parsed from.
	Span() source.Span
	// Type returns the inferred type of the expression. Only valid
	// after check has completed successfully.
	Type() types.Handle
}

// Decl is the base for all top-level declaration nodes.
type Decl interface {
	DeclName() string
	Span() source.Span
}

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*Var)(nil)
	_ Expr = (*Call)(nil)
	_ Expr = (*Func)(nil)
	_ Expr = (*BinOp)(nil)
	_ Expr = (*UnaryOp)(nil)
	_ Expr = (*TupleLit)(nil)
	_ Expr = (*If)(nil)
	_ Expr = (*Block)(nil)
	_ Expr = (*Match)(nil)
	_ Expr = (*StructLit)(nil)
	_ Expr = (*FieldAccess)(nil)

	_ Decl = (*LetDecl)(nil)
	_ Decl = (*FnDecl)(nil)
	_ Decl = (*TraitDecl)(nil)
	_ Decl = (*ImplDecl)(nil)
	_ Decl = (*StructDecl)(nil)
)

// Program is a whole compilation unit: an ordered list of top-level
// declarations.
type Program struct {
	Decls []Decl
}
