// Package ir is a minimal continuation-passing intermediate
// representation, lowered from a fully type-checked ast.Program: every
// Continuation is a basic block taking named parameters and ending in
// exactly one terminator (Return, Branch, or TailCall), and every
// intermediate result is named by a Let binding to a primitive Value.
//
// Lowering only ever runs over a program that has already passed
// check.CheckProgram without errors. Every Value and Continuation
// parameter below carries the types.Handle check recorded on the AST
// node it was lowered from; lowering does not zonk it, so the handle
// of a call result can still be an Unknown.
package ir

import (
	"fmt"

	"github.com/impala-lang/impala/token"
	"github.com/impala-lang/impala/types"
)

// Value is an atom: something that can appear as an operand without
// itself needing a name. Constants and references to an already-named
// Param or LetBinding are atoms; anything else (arithmetic, field
// projection, construction) is a primop and must be bound by a Let
// before it can be used as an operand.
type Value interface {
	valueNode()
	Type() types.Handle
	String() string
}

// ConstInt, ConstFloat, ConstString, and ConstBool are literal atoms,
// carrying the literal's original source text (Impala's lexer never
// evaluates a literal's value, so neither does lowering).
type ConstInt struct {
	Text string
	Typ  types.Handle
}

type ConstFloat struct {
	Text string
	Typ  types.Handle
}

type ConstString struct {
	Text string
	Typ  types.Handle
}

type ConstBool struct {
	B   bool
	Typ types.Handle
}

func (*ConstInt) valueNode()    {}
func (*ConstFloat) valueNode()  {}
func (*ConstString) valueNode() {}
func (*ConstBool) valueNode()   {}

func (v *ConstInt) Type() types.Handle    { return v.Typ }
func (v *ConstFloat) Type() types.Handle  { return v.Typ }
func (v *ConstString) Type() types.Handle { return v.Typ }
func (v *ConstBool) Type() types.Handle   { return v.Typ }

func (v *ConstInt) String() string    { return v.Text }
func (v *ConstFloat) String() string  { return v.Text }
func (v *ConstString) String() string { return fmt.Sprintf("%q", v.Text) }
func (v *ConstBool) String() string   { return fmt.Sprintf("%t", v.B) }

// Ref names an already-bound value: a Continuation Param or an earlier
// LetBinding in the same (or an enclosing) Continuation.
type Ref struct {
	Name string
	Typ  types.Handle
}

func (*Ref) valueNode()          {}
func (v *Ref) Type() types.Handle { return v.Typ }
func (v *Ref) String() string     { return v.Name }

// ContRef names a Continuation used as a first-class value: passed as
// the "what happens next" argument of a TailCall, or as a branch
// target. Lowering never builds closures over continuations beyond
// this — Impala's functions are not yet lowered to escaping closures.
type ContRef struct {
	Cont *Continuation
	Typ  types.Handle
}

func (*ContRef) valueNode()          {}
func (v *ContRef) Type() types.Handle { return v.Typ }
func (v *ContRef) String() string     { return "%" + v.Cont.Name }

// BinOp is a binary primop: the arithmetic/comparison/logical
// operators check.inferBinOp already validated.
type BinOp struct {
	Op       token.Kind
	L, R     Value
	Typ      types.Handle
}

func (*BinOp) valueNode()          {}
func (v *BinOp) Type() types.Handle { return v.Typ }
func (v *BinOp) String() string     { return fmt.Sprintf("%s %s %s", v.L, v.Op.String(), v.R) }

// UnOp is a prefix primop: `!`, unary `-`.
type UnOp struct {
	Op  token.Kind
	V   Value
	Typ types.Handle
}

func (*UnOp) valueNode()          {}
func (v *UnOp) Type() types.Handle { return v.Typ }
func (v *UnOp) String() string     { return fmt.Sprintf("%s%s", v.Op.String(), v.V) }

// Tuple constructs a tuple value from its already-named elements.
type Tuple struct {
	Elems []Value
	Typ   types.Handle
}

func (*Tuple) valueNode()          {}
func (v *Tuple) Type() types.Handle { return v.Typ }
func (v *Tuple) String() string {
	s := "("
	for i, e := range v.Elems {
		if i > 0 {
			s += ", "
		}
		s += e.String()
	}
	return s + ")"
}

// Proj projects the Index'th element out of a tuple value — the
// lowering of both a literal TuplePattern destructure and a
// struct field access (structs lower to tuples; see check/typeexpr.go).
type Proj struct {
	V     Value
	Index int
	Typ   types.Handle
}

func (*Proj) valueNode()          {}
func (v *Proj) Type() types.Handle { return v.Typ }
func (v *Proj) String() string     { return fmt.Sprintf("%s.%d", v.V, v.Index) }

// StructNew constructs a nominal struct's tuple representation,
// fields already reordered into declaration order by the lowering
// pass (see lowerExpr's *ast.StructLit case).
type StructNew struct {
	StructName string
	Fields     []Value
	Typ        types.Handle
}

func (*StructNew) valueNode()          {}
func (v *StructNew) Type() types.Handle { return v.Typ }
func (v *StructNew) String() string {
	s := v.StructName + "{"
	for i, f := range v.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.String()
	}
	return s + "}"
}
