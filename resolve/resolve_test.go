package resolve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/parser"
	"github.com/impala-lang/impala/resolve"
)

func TestResolveTopLevelBindings(t *testing.T) {
	file := &source.File{Name: "test.ipl", Content: "let x = 1\nfn f(a: int) -> int { a + x }\n"}
	p := parser.New(file)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())

	res := resolve.ResolveProgram(prog)
	require.Empty(t, res.Errors)

	_, ok := res.TopLevel.Lookup("x")
	require.True(t, ok)
	_, ok = res.TopLevel.Lookup("f")
	require.True(t, ok)
}

func TestResolveUndefinedNameIsReported(t *testing.T) {
	file := &source.File{Name: "test.ipl", Content: "fn f() -> int { y }\n"}
	p := parser.New(file)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())

	res := resolve.ResolveProgram(prog)
	require.NotEmpty(t, res.Errors)
}

func TestResolveDuplicateTopLevelNameIsReported(t *testing.T) {
	file := &source.File{Name: "test.ipl", Content: "let x = 1\nlet x = 2\n"}
	p := parser.New(file)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())

	res := resolve.ResolveProgram(prog)
	require.Len(t, res.Errors, 1)
}

func TestResolveMutualRecursionSingleGroup(t *testing.T) {
	file := &source.File{Name: "test.ipl", Content: "fn isEven(n: int) -> bool { isOdd(n) }\nfn isOdd(n: int) -> bool { isEven(n) }\n"}
	p := parser.New(file)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())

	res := resolve.ResolveProgram(prog)
	require.Empty(t, res.Errors)
	require.Len(t, res.Groups, 1)
	require.Len(t, res.Groups[0], 2)
}

func TestResolveIndependentDeclsAreSeparateGroups(t *testing.T) {
	file := &source.File{Name: "test.ipl", Content: "fn a() -> int { 1 }\nfn b() -> int { 2 }\n"}
	p := parser.New(file)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())

	res := resolve.ResolveProgram(prog)
	require.Empty(t, res.Errors)
	require.Len(t, res.Groups, 2)
}

func TestResolveBlockLetShadowsOuterScope(t *testing.T) {
	file := &source.File{Name: "test.ipl", Content: "fn f(x: int) -> int { let x = x + 1; x }\n"}
	p := parser.New(file)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())

	res := resolve.ResolveProgram(prog)
	require.Empty(t, res.Errors)
}

func TestResolveMatchPatternBindsArmScope(t *testing.T) {
	file := &source.File{Name: "test.ipl", Content: "fn f(x: int) -> int { match x { n => n, _ => 0 } }\n"}
	p := parser.New(file)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())

	res := resolve.ResolveProgram(prog)
	require.Empty(t, res.Errors)
}
