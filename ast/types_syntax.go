package ast

import "github.com/impala-lang/impala/internal/source"

// TypeExpr is the surface syntax for a type annotation, as written by
// the programmer, before resolve/check turn it into a types.Handle.
type TypeExpr interface {
	typeExprNode()
	Span() source.Span
}

var (
	_ TypeExpr = (*TypeName)(nil)
	_ TypeExpr = (*TypeApp)(nil)
	_ TypeExpr = (*TypeFn)(nil)
	_ TypeExpr = (*TypeTuple)(nil)
)

// TypeName is a bare name: a primitive (`int`), a type parameter in
// scope (`A`), or a zero-argument struct/trait name.
type TypeName struct {
	Name string
	span source.Span
}

func NewTypeName(name string, span source.Span) *TypeName { return &TypeName{Name: name, span: span} }
func (t *TypeName) typeExprNode()                         {}
func (t *TypeName) Span() source.Span                     { return t.span }

// TypeApp is a name applied to type arguments: `List<int>`,
// `Pair<A, B>`.
type TypeApp struct {
	Name string
	Args []TypeExpr
	span source.Span
}

func NewTypeApp(name string, args []TypeExpr, span source.Span) *TypeApp {
	return &TypeApp{Name: name, Args: args, span: span}
}
func (t *TypeApp) typeExprNode()     {}
func (t *TypeApp) Span() source.Span { return t.span }

// TypeFn is a function type: `fn(A, B) -> C`.
type TypeFn struct {
	Params []TypeExpr
	Ret    TypeExpr
	span   source.Span
}

func NewTypeFn(params []TypeExpr, ret TypeExpr, span source.Span) *TypeFn {
	return &TypeFn{Params: params, Ret: ret, span: span}
}
func (t *TypeFn) typeExprNode()     {}
func (t *TypeFn) Span() source.Span { return t.span }

// TypeTuple is a tuple type: `(A, B, C)`.
type TypeTuple struct {
	Elems []TypeExpr
	span  source.Span
}

func NewTypeTuple(elems []TypeExpr, span source.Span) *TypeTuple {
	return &TypeTuple{Elems: elems, span: span}
}
func (t *TypeTuple) typeExprNode()     {}
func (t *TypeTuple) Span() source.Span { return t.span }

// TypeParam is a declared type parameter with its trait bounds, e.g.
// the `A: Eq + Ord` in `fn max<A: Eq + Ord>(a: A, b: A) -> A`.
type TypeParam struct {
	Name   string
	Bounds []string
	span   source.Span
}

func NewTypeParam(name string, bounds []string, span source.Span) TypeParam {
	return TypeParam{Name: name, Bounds: bounds, span: span}
}
func (p TypeParam) Span() source.Span { return p.span }
