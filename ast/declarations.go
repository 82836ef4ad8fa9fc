package ast

import (
	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/types"
)

// LetDecl binds a name to a value, either at the top level of a
// program or as a statement inside a Block.
type LetDecl struct {
	Name     string
	Ann      TypeExpr // nil if the type must be inferred
	Value    Expr
	span     source.Span
	inferred types.Handle
}

func NewLetDecl(name string, ann TypeExpr, value Expr, span source.Span) *LetDecl {
	return &LetDecl{Name: name, Ann: ann, Value: value, span: span}
}
func (d *LetDecl) DeclName() string       { return "let " + d.Name }
func (d *LetDecl) Span() source.Span      { return d.span }
func (d *LetDecl) Type() types.Handle     { return d.inferred }
func (d *LetDecl) SetType(t types.Handle) { d.inferred = t }

// FnDecl is a top-level (or trait/impl member) function definition,
// with its own type-parameter list and per-parameter trait bounds:
// `fn max<A: Eq + Ord>(a: A, b: A) -> A { ... }`.
type FnDecl struct {
	Name       string
	TypeParams []TypeParam
	Params     []Param
	RetAnn     TypeExpr // nil if the return type must be inferred
	Body       Expr
	span       source.Span
	inferred   types.Handle
}

func NewFnDecl(name string, typeParams []TypeParam, params []Param, retAnn TypeExpr, body Expr, span source.Span) *FnDecl {
	return &FnDecl{Name: name, TypeParams: typeParams, Params: params, RetAnn: retAnn, Body: body, span: span}
}
func (d *FnDecl) DeclName() string       { return "fn " + d.Name }
func (d *FnDecl) Span() source.Span      { return d.span }
func (d *FnDecl) Type() types.Handle     { return d.inferred }
func (d *FnDecl) SetType(t types.Handle) { d.inferred = t }

// FnSig is a method signature declared inside a trait, with an
// optional default body inherited by any impl that omits it.
type FnSig struct {
	Name    string
	Params  []TypeExpr
	Ret     TypeExpr
	Default *FnDecl // nil if the trait declares no default
	span    source.Span
}

func NewFnSig(name string, params []TypeExpr, ret TypeExpr, def *FnDecl, span source.Span) FnSig {
	return FnSig{Name: name, Params: params, Ret: ret, Default: def, span: span}
}
func (s FnSig) Span() source.Span { return s.span }

// TraitDecl declares a trait: a name, its formal type parameters, and
// the methods any implementor must (or, with a default, may) supply.
// `trait Eq<Self> { fn equals(a: Self, b: Self) -> bool }`.
type TraitDecl struct {
	Name    string
	Formals []string
	Methods []FnSig
	span    source.Span
}

func NewTraitDecl(name string, formals []string, methods []FnSig, span source.Span) *TraitDecl {
	return &TraitDecl{Name: name, Formals: formals, Methods: methods, span: span}
}
func (d *TraitDecl) DeclName() string  { return "trait " + d.Name }
func (d *TraitDecl) Span() source.Span { return d.span }

// ImplDecl implements a trait for a concrete instantiation of its
// formals, the first of which is conventionally Self:
// `impl Eq<int> { fn equals(a: int, b: int) -> bool { a == b } }`.
// TypeParams holds any fresh type parameters introduced by the impl
// itself (e.g. `impl<A: Eq> Eq<List<A>> { ... }`).
type ImplDecl struct {
	TraitName  string
	TraitArgs  []TypeExpr
	TypeParams []TypeParam
	Methods    []*FnDecl
	span       source.Span
}

func NewImplDecl(traitName string, traitArgs []TypeExpr, typeParams []TypeParam, methods []*FnDecl, span source.Span) *ImplDecl {
	return &ImplDecl{TraitName: traitName, TraitArgs: traitArgs, TypeParams: typeParams, Methods: methods, span: span}
}
func (d *ImplDecl) DeclName() string  { return "impl " + d.TraitName }
func (d *ImplDecl) Span() source.Span { return d.span }

// FieldDecl declares one field of a struct.
type FieldDecl struct {
	Name string
	Ann  TypeExpr
	span source.Span
}

func NewFieldDecl(name string, ann TypeExpr, span source.Span) FieldDecl {
	return FieldDecl{Name: name, Ann: ann, span: span}
}
func (f FieldDecl) Span() source.Span { return f.span }

// StructDecl declares a nominal record type:
// `struct Pair<A, B> { first: A, second: B }`.
type StructDecl struct {
	Name       string
	TypeParams []TypeParam
	Fields     []FieldDecl
	span       source.Span
}

func NewStructDecl(name string, typeParams []TypeParam, fields []FieldDecl, span source.Span) *StructDecl {
	return &StructDecl{Name: name, TypeParams: typeParams, Fields: fields, span: span}
}
func (d *StructDecl) DeclName() string  { return "struct " + d.Name }
func (d *StructDecl) Span() source.Span { return d.span }
