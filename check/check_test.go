package check

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/parser"
	"github.com/impala-lang/impala/resolve"
	"github.com/impala-lang/impala/types"
)

func mustCheck(t *testing.T, src string) (*types.TypeTable, *ast.Program, []*Error) {
	t.Helper()
	f := &source.File{Name: "test.imp", Content: src}
	p := parser.New(f)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors(), "unexpected parse errors: %v", p.Errors())
	res := resolve.ResolveProgram(prog)
	require.Empty(t, res.Errors, "unexpected resolve errors: %v", res.Errors)
	table, errs := CheckProgram(prog, res)
	return table, prog, errs
}

func findLet(prog *ast.Program, name string) *ast.LetDecl {
	for _, d := range prog.Decls {
		if l, ok := d.(*ast.LetDecl); ok && l.Name == name {
			return l
		}
	}
	return nil
}

func findFn(prog *ast.Program, name string) *ast.FnDecl {
	for _, d := range prog.Decls {
		if f, ok := d.(*ast.FnDecl); ok && f.Name == name {
			return f
		}
	}
	return nil
}

func TestCheckLiteralMonotype(t *testing.T) {
	table, prog, errs := mustCheck(t, "let x = 1")
	require.Empty(t, errs)
	x := findLet(prog, "x")
	require.NotNil(t, x)
	require.Equal(t, types.KindPrimitive, x.Type().Kind())
	require.Equal(t, table.TypeInt(), x.Type())
	require.False(t, x.Type().IsPolymorphic())
}

func TestCheckArithmeticUnifiesOperands(t *testing.T) {
	_, prog, errs := mustCheck(t, "let x = 1 + 2 * 3")
	require.Empty(t, errs)
	x := findLet(prog, "x")
	require.Equal(t, types.KindPrimitive, x.Type().Kind())
}

func TestCheckArithmeticMismatchIsReported(t *testing.T) {
	_, _, errs := mustCheck(t, `let x = 1 + true`)
	require.NotEmpty(t, errs)
}

func TestCheckIfBranchesMustUnify(t *testing.T) {
	_, prog, errs := mustCheck(t, "let x = if true { 1 } else { 2 }")
	require.Empty(t, errs)
	x := findLet(prog, "x")
	require.Equal(t, types.KindPrimitive, x.Type().Kind())
}

func TestCheckIfBranchMismatchIsReported(t *testing.T) {
	_, _, errs := mustCheck(t, `let x = if true { 1 } else { false }`)
	require.NotEmpty(t, errs)
}

func TestCheckExplicitGenericFunctionIsPolymorphic(t *testing.T) {
	_, prog, errs := mustCheck(t, "fn id<A>(a: A) -> A { a }")
	require.Empty(t, errs)
	id := findFn(prog, "id")
	require.NotNil(t, id)
	require.True(t, id.Type().IsPolymorphic())
	require.Equal(t, types.KindFn, id.Type().Kind())
}

func TestCheckGenericFunctionInstantiatedAtEachCallSite(t *testing.T) {
	table, prog, errs := mustCheck(t, "fn id<A>(a: A) -> A { a }\nlet p = id(1)\nlet q = id(true)")
	require.Empty(t, errs)
	p := findLet(prog, "p")
	q := findLet(prog, "q")
	require.Equal(t, table.TypeInt(), p.Type())
	require.Equal(t, table.TypeBool(), q.Type())
}

func TestCheckRigidTypeParamCannotSpecialize(t *testing.T) {
	_, _, errs := mustCheck(t, "fn id<A>(a: A) -> A { a + 1 }")
	require.NotEmpty(t, errs)
}

func TestCheckMutualRecursionGroupChecksTogether(t *testing.T) {
	_, prog, errs := mustCheck(t, `
fn isEven(n: int) -> bool { if n == 0 { true } else { isOdd(n - 1) } }
fn isOdd(n: int) -> bool { if n == 0 { false } else { isEven(n - 1) } }
`)
	require.Empty(t, errs)
	isEven := findFn(prog, "isEven")
	isOdd := findFn(prog, "isOdd")
	require.Equal(t, types.KindFn, isEven.Type().Kind())
	require.Equal(t, types.KindFn, isOdd.Type().Kind())
}

func TestCheckStructLiteralAndFieldAccess(t *testing.T) {
	table, prog, errs := mustCheck(t, `
struct Point { x: int, y: int }
let p = Point { x = 1, y = 2 }
let px = p.x
`)
	require.Empty(t, errs)
	px := findLet(prog, "px")
	require.Equal(t, table.TypeInt(), px.Type())
}

func TestCheckStructLiteralMissingFieldIsReported(t *testing.T) {
	_, _, errs := mustCheck(t, `
struct Point { x: int, y: int }
let p = Point { x = 1 }
`)
	require.NotEmpty(t, errs)
}

func TestCheckStructLiteralFieldTypeMismatchIsReported(t *testing.T) {
	_, _, errs := mustCheck(t, `
struct Point { x: int, y: int }
let p = Point { x = true, y = 2 }
`)
	require.NotEmpty(t, errs)
}

func TestCheckTupleLiteralAndMatch(t *testing.T) {
	table, prog, errs := mustCheck(t, `
let pair = (1, true)
let first = match pair { (a, _) => a }
`)
	require.Empty(t, errs)
	first := findLet(prog, "first")
	require.Equal(t, table.TypeInt(), first.Type())
}

func TestCheckMatchArmMismatchIsReported(t *testing.T) {
	_, _, errs := mustCheck(t, `
let x = match 1 { 0 => 1, _ => true }
`)
	require.NotEmpty(t, errs)
}

func TestCheckUndefinedNameIsCaughtByResolve(t *testing.T) {
	f := &source.File{Name: "test.imp", Content: "let x = y"}
	p := parser.New(f)
	prog := p.ParseProgram()
	require.Empty(t, p.Errors())
	res := resolve.ResolveProgram(prog)
	require.NotEmpty(t, res.Errors)
}

func TestCheckTraitBoundSatisfiedByImpl(t *testing.T) {
	_, prog, errs := mustCheck(t, `
trait Eq<Self> {
	fn equals(a: Self, b: Self) -> bool;
}
impl Eq<int> {
	fn equals(a: int, b: int) -> bool { a == b }
}
fn firstOf<A: Eq>(a: A, b: A) -> A { a }
let r = firstOf(1, 2)
`)
	require.Empty(t, errs)
	r := findLet(prog, "r")
	require.NotNil(t, r)
}

func TestCheckTraitBoundUnsatisfiedIsReported(t *testing.T) {
	_, _, errs := mustCheck(t, `
trait Eq<Self> {
	fn equals(a: Self, b: Self) -> bool;
}
impl Eq<int> {
	fn equals(a: int, b: int) -> bool { a == b }
}
fn firstOf<A: Eq>(a: A, b: A) -> A { a }
let r = firstOf(true, false)
`)
	require.NotEmpty(t, errs)
}

func TestCheckBlockLetsAreMonomorphicallyScoped(t *testing.T) {
	table, prog, errs := mustCheck(t, "fn f() -> int { let a = 1; let b = a + 1; b }")
	require.Empty(t, errs)
	f := findFn(prog, "f")
	require.Equal(t, types.KindFn, f.Type().Kind())
	fn := f.Type().Node().(*types.FnNode)
	require.Len(t, fn.Params, 1)
	require.Equal(t, table.TypeInt(), fn.Params[0])
}

// TestCheckGolden runs every whole-program snippet under testdata/
// through the full parse/resolve/check pipeline, asserting accept or
// reject per fixture from the list of file names in the switch below
// (each name's _accept/_reject suffix matches its case); a fixture not
// listed there fails the test.
func TestCheckGolden(t *testing.T) {
	paths, err := filepath.Glob("../testdata/*.imp")
	require.NoError(t, err)
	require.NotEmpty(t, paths, "expected golden fixtures under testdata/")

	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			content, err := os.ReadFile(path)
			require.NoError(t, err)

			f := &source.File{Name: filepath.Base(path), Content: string(content)}
			p := parser.New(f)
			prog := p.ParseProgram()
			require.Empty(t, p.Errors(), "unexpected parse errors in %s: %v", path, p.Errors())

			res := resolve.ResolveProgram(prog)
			require.Empty(t, res.Errors, "unexpected resolve errors in %s: %v", path, res.Errors)

			_, errs := CheckProgram(prog, res)

			switch {
			case filepath.Base(path) == "mutual_recursion_accept.imp",
				filepath.Base(path) == "struct_and_trait_accept.imp":
				require.Empty(t, errs, "expected %s to check cleanly, got: %v", path, errs)
			case filepath.Base(path) == "field_type_mismatch_reject.imp",
				filepath.Base(path) == "trait_bound_unsatisfied_reject.imp":
				require.NotEmpty(t, errs, "expected %s to be rejected", path)
			default:
				t.Fatalf("golden fixture %s has no accept/reject expectation wired", path)
			}
		})
	}
}
