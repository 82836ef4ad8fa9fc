package ast

import (
	"strconv"
	"strings"
)

// ExprString renders e back to Impala-like surface syntax, for
// diagnostics and debugging. It is not guaranteed to round-trip
// exactly (whitespace and comments are not preserved).
func ExprString(e Expr) string {
	var sb strings.Builder
	exprString(&sb, false, e)
	return sb.String()
}

func exprString(sb *strings.Builder, simple bool, e Expr) {
	switch et := e.(type) {
	case *Literal:
		switch et.LitKind {
		case StringLiteral:
			sb.WriteString(strconv.Quote(et.Text))
		default:
			sb.WriteString(et.Text)
		}

	case *Var:
		sb.WriteString(et.Name)

	case *Call:
		exprString(sb, true, et.Func)
		sb.WriteByte('(')
		for i, arg := range et.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, arg)
		}
		sb.WriteByte(')')

	case *Func:
		if simple {
			sb.WriteByte('(')
		}
		sb.WriteString("fn(")
		for i, p := range et.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.Name)
		}
		sb.WriteString(") { ")
		exprString(sb, false, et.Body)
		sb.WriteString(" }")
		if simple {
			sb.WriteByte(')')
		}

	case *BinOp:
		if simple {
			sb.WriteByte('(')
		}
		exprString(sb, true, et.Left)
		sb.WriteByte(' ')
		sb.WriteString(et.Op.String())
		sb.WriteByte(' ')
		exprString(sb, true, et.Right)
		if simple {
			sb.WriteByte(')')
		}

	case *UnaryOp:
		sb.WriteString(et.Op.String())
		exprString(sb, true, et.Operand)

	case *TupleLit:
		sb.WriteByte('(')
		for i, elem := range et.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			exprString(sb, false, elem)
		}
		sb.WriteByte(')')

	case *StructLit:
		sb.WriteString(et.StructName)
		sb.WriteString(" { ")
		for i, fld := range et.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fld.Name)
			sb.WriteString(" = ")
			exprString(sb, false, fld.Value)
		}
		sb.WriteString(" }")

	case *FieldAccess:
		exprString(sb, true, et.Value)
		sb.WriteByte('.')
		sb.WriteString(et.Field)

	case *If:
		sb.WriteString("if ")
		exprString(sb, false, et.Cond)
		sb.WriteString(" { ")
		exprString(sb, false, et.Then)
		sb.WriteString(" } else { ")
		exprString(sb, false, et.Else)
		sb.WriteString(" }")

	case *Block:
		sb.WriteString("{ ")
		for _, s := range et.Stmts {
			sb.WriteString("let ")
			sb.WriteString(s.Name)
			sb.WriteString(" = ")
			exprString(sb, false, s.Value)
			sb.WriteString("; ")
		}
		exprString(sb, false, et.Result)
		sb.WriteString(" }")

	case *Match:
		sb.WriteString("match ")
		exprString(sb, false, et.Value)
		sb.WriteString(" { ")
		for i, c := range et.Cases {
			if i > 0 {
				sb.WriteString(", ")
			}
			patternString(sb, c.Pattern)
			sb.WriteString(" => ")
			exprString(sb, false, c.Body)
		}
		sb.WriteString(" }")

	case nil:

	default:
		panic("unknown expression type: " + e.ExprName())
	}
}

func patternString(sb *strings.Builder, p Pattern) {
	switch pt := p.(type) {
	case *WildcardPattern:
		sb.WriteByte('_')
	case *VarPattern:
		sb.WriteString(pt.Name)
	case *LiteralPattern:
		exprString(sb, false, pt.Lit)
	case *TuplePattern:
		sb.WriteByte('(')
		for i, elem := range pt.Elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			patternString(sb, elem)
		}
		sb.WriteByte(')')
	}
}
