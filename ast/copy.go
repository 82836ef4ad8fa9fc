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

// CopyExpr deep-copies e, discarding any type already inferred onto
// it, so the copy can be type-checked again without sharing inferred
// types with the original. No other package calls it; check does not
// check trait default method bodies.
func CopyExpr(e Expr) Expr {
	switch et := e.(type) {
	case *Literal:
		return &Literal{LitKind: et.LitKind, Text: et.Text, span: et.span}

	case *Var:
		return &Var{Name: et.Name, span: et.span}

	case *Call:
		args := make([]Expr, len(et.Args))
		for i, arg := range et.Args {
			args[i] = CopyExpr(arg)
		}
		return &Call{Func: CopyExpr(et.Func), Args: args, span: et.span}

	case *Func:
		params := make([]Param, len(et.Params))
		copy(params, et.Params)
		return &Func{Params: params, Body: CopyExpr(et.Body), span: et.span}

	case *BinOp:
		return &BinOp{Op: et.Op, Left: CopyExpr(et.Left), Right: CopyExpr(et.Right), span: et.span}

	case *UnaryOp:
		return &UnaryOp{Op: et.Op, Operand: CopyExpr(et.Operand), span: et.span}

	case *TupleLit:
		elems := make([]Expr, len(et.Elems))
		for i, elem := range et.Elems {
			elems[i] = CopyExpr(elem)
		}
		return &TupleLit{Elems: elems, span: et.span}

	case *StructLit:
		fields := make([]FieldInit, len(et.Fields))
		for i, fld := range et.Fields {
			fields[i] = FieldInit{Name: fld.Name, Value: CopyExpr(fld.Value)}
		}
		return &StructLit{StructName: et.StructName, Fields: fields, span: et.span}

	case *FieldAccess:
		return &FieldAccess{Value: CopyExpr(et.Value), Field: et.Field, span: et.span}

	case *If:
		return &If{Cond: CopyExpr(et.Cond), Then: CopyExpr(et.Then), Else: CopyExpr(et.Else), span: et.span}

	case *Block:
		stmts := make([]*LetDecl, len(et.Stmts))
		for i, s := range et.Stmts {
			stmts[i] = &LetDecl{Name: s.Name, Ann: s.Ann, Value: CopyExpr(s.Value), span: s.span}
		}
		return &Block{Stmts: stmts, Result: CopyExpr(et.Result), span: et.span}

	case *Match:
		cases := make([]MatchCase, len(et.Cases))
		for i, c := range et.Cases {
			var guard Expr
			if c.Guard != nil {
				guard = CopyExpr(c.Guard)
			}
			cases[i] = MatchCase{Pattern: c.Pattern, Guard: guard, Body: CopyExpr(c.Body)}
		}
		return &Match{Value: CopyExpr(et.Value), Cases: cases, span: et.span}
	}
	panic("unknown expression type: " + e.ExprName())
}

// CopyFnDecl deep-copies a function declaration's parameter list,
// type-parameter list, and body (the body via CopyExpr).
func CopyFnDecl(d *FnDecl) *FnDecl {
	params := make([]Param, len(d.Params))
	copy(params, d.Params)
	typeParams := make([]TypeParam, len(d.TypeParams))
	copy(typeParams, d.TypeParams)
	return &FnDecl{
		Name:       d.Name,
		TypeParams: typeParams,
		Params:     params,
		RetAnn:     d.RetAnn,
		Body:       CopyExpr(d.Body),
		span:       d.span,
	}
}
