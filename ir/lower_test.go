package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/impala-lang/impala/check"
	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/parser"
	"github.com/impala-lang/impala/resolve"
)

func mustLower(t *testing.T, src string) *World {
	t.Helper()
	f := &source.File{Name: "test.imp", Content: src}
	p := parser.New(f)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())
	res := resolve.ResolveProgram(prog)
	require.Empty(t, res.Errors)
	table, errs := check.CheckProgram(prog, res)
	require.Empty(t, errs)
	return Lower(prog, table)
}

func TestLowerSimpleArithmeticFunction(t *testing.T) {
	w := mustLower(t, "fn add(a: int, b: int) -> int { a + b }")
	entry, ok := w.Funcs["add"]
	require.True(t, ok)
	require.Len(t, entry.Params, 2)
	require.IsType(t, &Return{}, entry.Term)
	require.Len(t, entry.Lets, 1)
	require.IsType(t, &BinOp{}, entry.Lets[0].Op)
}

func TestLowerIfProducesBranchAndJoin(t *testing.T) {
	w := mustLower(t, "fn choose(c: bool) -> int { if c { 1 } else { 2 } }")
	entry := w.Funcs["choose"]
	require.IsType(t, &Branch{}, entry.Term)
	br := entry.Term.(*Branch)
	require.IsType(t, &TailCall{}, br.Then.Term)
	require.IsType(t, &TailCall{}, br.Else.Term)
}

func TestLowerCallIntroducesJoinContinuation(t *testing.T) {
	w := mustLower(t, "fn inc(x: int) -> int { x + 1 }\nfn twice(x: int) -> int { inc(inc(x)) }")
	entry := w.Funcs["twice"]
	require.IsType(t, &TailCall{}, entry.Term)
	outer := entry.Term.(*TailCall)
	require.NotNil(t, outer.Next)
	require.IsType(t, &TailCall{}, outer.Next.Term)
}

func TestLowerBlockThreadsLetBindings(t *testing.T) {
	w := mustLower(t, "fn f() -> int { let a = 1; let b = a + 1; b }")
	entry := w.Funcs["f"]
	require.Len(t, entry.Lets, 1)
	require.IsType(t, &Return{}, entry.Term)
}

func TestLowerMatchChainsArmTests(t *testing.T) {
	w := mustLower(t, "fn classify(x: int) -> int { match x { 0 => 10, _ => 20 } }")
	entry := w.Funcs["classify"]
	require.IsType(t, &Branch{}, entry.Term)
}

func TestWorldStringRendersEveryFunction(t *testing.T) {
	w := mustLower(t, "fn add(a: int, b: int) -> int { a + b }")
	out := w.String()
	require.True(t, strings.Contains(out, "fn add:"))
	require.True(t, strings.Contains(out, "return"))
}

func TestWorldValidateFindsNoDeadBlocksForWellFormedLowering(t *testing.T) {
	w := mustLower(t, "fn choose(c: bool) -> int { if c { 1 } else { 2 } }")
	require.Empty(t, w.Validate())
}
