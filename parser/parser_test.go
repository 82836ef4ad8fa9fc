package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/internal/source"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	f := &source.File{Name: "test.imp", Content: src}
	p := New(f)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors(), "unexpected parse errors: %v", p.Errors())
	return prog
}

func TestParseTopLevelLet(t *testing.T) {
	prog := parse(t, "let x = 1")
	require.Len(t, prog.Decls, 1)
	decl, ok := prog.Decls[0].(*ast.LetDecl)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name)
	lit, ok := decl.Value.(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, ast.IntLiteral, lit.LitKind)
	require.Equal(t, "1", lit.Text)
}

func TestParseFnDeclWithBoundedTypeParam(t *testing.T) {
	prog := parse(t, "fn id<A: Eq>(a: A) -> A { a }")
	require.Len(t, prog.Decls, 1)
	fn, ok := prog.Decls[0].(*ast.FnDecl)
	require.True(t, ok)
	require.Equal(t, "id", fn.Name)
	require.Len(t, fn.TypeParams, 1)
	require.Equal(t, "A", fn.TypeParams[0].Name)
	require.Equal(t, []string{"Eq"}, fn.TypeParams[0].Bounds)
	require.Len(t, fn.Params, 1)
	require.Equal(t, "a", fn.Params[0].Name)
	retName, ok := fn.RetAnn.(*ast.TypeName)
	require.True(t, ok)
	require.Equal(t, "A", retName.Name)
	block, ok := fn.Body.(*ast.Block)
	require.True(t, ok)
	v, ok := block.Result.(*ast.Var)
	require.True(t, ok)
	require.Equal(t, "a", v.Name)
}

func TestParseBinaryPrecedence(t *testing.T) {
	prog := parse(t, "let x = 1 + 2 * 3")
	decl := prog.Decls[0].(*ast.LetDecl)
	top, ok := decl.Value.(*ast.BinOp)
	require.True(t, ok)
	require.Equal(t, "+", top.Op.String())
	_, rightIsMul := top.Right.(*ast.BinOp)
	require.True(t, rightIsMul, "expected * to bind tighter than + so it nests on the right")
}

func TestParseIfElseExpression(t *testing.T) {
	prog := parse(t, "let x = if a { 1 } else { 2 }")
	decl := prog.Decls[0].(*ast.LetDecl)
	ifExpr, ok := decl.Value.(*ast.If)
	require.True(t, ok)
	require.NotNil(t, ifExpr.Then)
	require.NotNil(t, ifExpr.Else)
}

func TestParseCallAndFieldAccess(t *testing.T) {
	prog := parse(t, "let x = p.translate(1, 2).x")
	decl := prog.Decls[0].(*ast.LetDecl)
	outer, ok := decl.Value.(*ast.FieldAccess)
	require.True(t, ok)
	require.Equal(t, "x", outer.Field)
	call, ok := outer.Value.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	inner, ok := call.Func.(*ast.FieldAccess)
	require.True(t, ok)
	require.Equal(t, "translate", inner.Field)
}

func TestParseStructLitAndTuple(t *testing.T) {
	prog := parse(t, "let p = Point { x = 1, y = (2, 3) }")
	decl := prog.Decls[0].(*ast.LetDecl)
	lit, ok := decl.Value.(*ast.StructLit)
	require.True(t, ok)
	require.Equal(t, "Point", lit.StructName)
	require.Len(t, lit.Fields, 2)
	tup, ok := lit.Fields[1].Value.(*ast.TupleLit)
	require.True(t, ok)
	require.Len(t, tup.Elems, 2)
}

func TestParseMatchExpression(t *testing.T) {
	prog := parse(t, "let x = match n { 0 => 1, _ => 2 }")
	decl := prog.Decls[0].(*ast.LetDecl)
	m, ok := decl.Value.(*ast.Match)
	require.True(t, ok)
	require.Len(t, m.Cases, 2)
	_, ok = m.Cases[0].Pattern.(*ast.LiteralPattern)
	require.True(t, ok)
	_, ok = m.Cases[1].Pattern.(*ast.WildcardPattern)
	require.True(t, ok)
}

func TestParseTraitAndImpl(t *testing.T) {
	prog := parse(t, `
trait Eq<Self> {
	fn equals(a: Self, b: Self) -> bool;
}
impl Eq<int> {
	fn equals(a: int, b: int) -> bool { a == b }
}
`)
	require.Len(t, prog.Decls, 2)
	trait, ok := prog.Decls[0].(*ast.TraitDecl)
	require.True(t, ok)
	require.Equal(t, "Eq", trait.Name)
	require.Equal(t, []string{"Self"}, trait.Formals)
	require.Len(t, trait.Methods, 1)
	require.Nil(t, trait.Methods[0].Default)

	impl, ok := prog.Decls[1].(*ast.ImplDecl)
	require.True(t, ok)
	require.Equal(t, "Eq", impl.TraitName)
	require.Len(t, impl.TraitArgs, 1)
	require.Len(t, impl.Methods, 1)
	require.Equal(t, "equals", impl.Methods[0].Name)
}

func TestParseStructDecl(t *testing.T) {
	prog := parse(t, "struct Pair<A, B> { first: A, second: B }")
	decl, ok := prog.Decls[0].(*ast.StructDecl)
	require.True(t, ok)
	require.Equal(t, "Pair", decl.Name)
	require.Len(t, decl.TypeParams, 2)
	require.Len(t, decl.Fields, 2)
	require.Equal(t, "first", decl.Fields[0].Name)
}

func TestParseBlockWithLetStatements(t *testing.T) {
	prog := parse(t, "fn f() -> int { let a = 1; let b = 2; a + b }")
	fn := prog.Decls[0].(*ast.FnDecl)
	block := fn.Body.(*ast.Block)
	require.Len(t, block.Stmts, 2)
	require.Equal(t, "a", block.Stmts[0].Name)
	require.Equal(t, "b", block.Stmts[1].Name)
	_, ok := block.Result.(*ast.BinOp)
	require.True(t, ok)
}

func TestParseMultipleTopLevelDecls(t *testing.T) {
	prog := parse(t, "let a = 1\nlet b = 2\nfn main() -> int { a + b }")
	require.Len(t, prog.Decls, 3)
}

func TestParseErrorOnUnterminatedCall(t *testing.T) {
	f := &source.File{Name: "bad.imp", Content: "let x = f(1, 2"}
	p := New(f)
	p.ParseProgram()
	require.NotEmpty(t, p.Errors())
}
