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

// WalkExpr calls f on e and then recurses into every sub-expression
// of e, in evaluation order. It does not descend into type
// annotations, since those carry no sub-expressions.
func WalkExpr(e Expr, f func(Expr)) {
	switch et := e.(type) {
	case *Var, *Literal:
		f(e)

	case *Call:
		f(e)
		WalkExpr(et.Func, f)
		for _, arg := range et.Args {
			WalkExpr(arg, f)
		}

	case *Func:
		f(e)
		WalkExpr(et.Body, f)

	case *BinOp:
		f(e)
		WalkExpr(et.Left, f)
		WalkExpr(et.Right, f)

	case *UnaryOp:
		f(e)
		WalkExpr(et.Operand, f)

	case *TupleLit:
		f(e)
		for _, elem := range et.Elems {
			WalkExpr(elem, f)
		}

	case *StructLit:
		f(e)
		for _, fld := range et.Fields {
			WalkExpr(fld.Value, f)
		}

	case *FieldAccess:
		f(e)
		WalkExpr(et.Value, f)

	case *If:
		f(e)
		WalkExpr(et.Cond, f)
		WalkExpr(et.Then, f)
		WalkExpr(et.Else, f)

	case *Block:
		f(e)
		for _, stmt := range et.Stmts {
			WalkExpr(stmt.Value, f)
		}
		WalkExpr(et.Result, f)

	case *Match:
		f(e)
		WalkExpr(et.Value, f)
		for _, c := range et.Cases {
			if c.Guard != nil {
				WalkExpr(c.Guard, f)
			}
			WalkExpr(c.Body, f)
		}

	case nil:

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}

// WalkDecl calls f on every expression reachable from decl: a let's
// value, a function's body, or (for traits/impls) each method's body.
func WalkDecl(decl Decl, f func(Expr)) {
	switch d := decl.(type) {
	case *LetDecl:
		WalkExpr(d.Value, f)
	case *FnDecl:
		WalkExpr(d.Body, f)
	case *ImplDecl:
		for _, m := range d.Methods {
			WalkExpr(m.Body, f)
		}
	case *TraitDecl:
		for _, m := range d.Methods {
			if m.Default != nil {
				WalkExpr(m.Default.Body, f)
			}
		}
	case *StructDecl:
	case nil:
	default:
		panic("unknown declaration type: " + decl.DeclName())
	}
}
