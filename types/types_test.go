package types

import (
	"errors"
	"testing"
)

func mustTuple(t *testing.T, tbl *TypeTable, children ...Handle) Handle {
	t.Helper()
	h, err := tbl.TupleType(children)
	if err != nil {
		t.Fatalf("tupletype: %v", err)
	}
	return h
}

func mustFn(t *testing.T, tbl *TypeTable, params ...Handle) Handle {
	t.Helper()
	h, err := tbl.FnType(params)
	if err != nil {
		t.Fatalf("fntype: %v", err)
	}
	return h
}

func mustUnify(t *testing.T, tbl *TypeTable, h Handle) Handle {
	t.Helper()
	r, err := tbl.Unify(h)
	if err != nil {
		t.Fatalf("unify: %v", err)
	}
	return r
}

func mustBind(t *testing.T, tbl *TypeTable, node, v Handle) {
	t.Helper()
	if err := tbl.AddBoundVar(node, v); err != nil {
		t.Fatalf("add_bound_var: %v", err)
	}
}

// Scenario 1: fn<A,B>(A,B) and fn<C,D>(C,D) unify to the same
// representative.
func TestScenario1_AlphaEquivalentTwoVarFn(t *testing.T) {
	tbl := NewTypeTable()

	a, b := tbl.TypeVar(), tbl.TypeVar()
	f1 := mustFn(t, tbl, a, b)
	mustBind(t, tbl, f1, a)
	mustBind(t, tbl, f1, b)
	r1 := mustUnify(t, tbl, f1)

	c, d := tbl.TypeVar(), tbl.TypeVar()
	f2 := mustFn(t, tbl, c, d)
	mustBind(t, tbl, f2, c)
	mustBind(t, tbl, f2, d)
	r2 := mustUnify(t, tbl, f2)

	if !r1.Equal(r2) {
		t.Fatalf("expected fn<A,B>(A,B) and fn<C,D>(C,D) to unify to the same representative, got %q vs %q", tbl.ToString(r1), tbl.ToString(r2))
	}
	if err := tbl.CheckSanity(); err != nil {
		t.Fatalf("sanity: %v", err)
	}
}

// Scenario 2: fn<A>(A) built twice independently unifies to the same
// representative, and doing so twice from the same table is stable.
func TestScenario2_SingleVarFnIdempotent(t *testing.T) {
	tbl := NewTypeTable()

	build := func() Handle {
		a := tbl.TypeVar()
		f := mustFn(t, tbl, a)
		mustBind(t, tbl, f, a)
		return mustUnify(t, tbl, f)
	}
	r1 := build()
	r2 := build()
	if !r1.Equal(r2) {
		t.Fatalf("expected both fn<A>(A) builds to share a representative")
	}
}

// Scenario 3: trait bound sets are compared as sets, not sequences.
func TestScenario3_TraitBoundSetEquality(t *testing.T) {
	tbl := NewTypeTable()

	clonable, err := tbl.Trait("Clonable", nil)
	if err != nil {
		t.Fatal(err)
	}
	equality, err := tbl.Trait("Equality", nil)
	if err != nil {
		t.Fatal(err)
	}
	clonableInst, err := tbl.InstantiateTrait(clonable, nil)
	if err != nil {
		t.Fatal(err)
	}
	equalityInst, err := tbl.InstantiateTrait(equality, nil)
	if err != nil {
		t.Fatal(err)
	}

	c := tbl.TypeVarWithBounds([]Handle{clonableInst, equalityInst})
	dvar := tbl.TypeVar()
	f1 := mustFn(t, tbl, c)
	mustBind(t, tbl, f1, c)
	mustBind(t, tbl, f1, dvar)
	r1 := mustUnify(t, tbl, f1)

	e := tbl.TypeVarWithBounds([]Handle{equalityInst, clonableInst})
	fvar := tbl.TypeVar()
	f2 := mustFn(t, tbl, e)
	mustBind(t, tbl, f2, e)
	mustBind(t, tbl, f2, fvar)
	r2 := mustUnify(t, tbl, f2)

	if !r1.Equal(r2) {
		t.Fatalf("expected fn<C:Clonable+Equality,D>(C) and fn<E:Equality+Clonable,F>(E) to unify, got %q vs %q", tbl.ToString(r1), tbl.ToString(r2))
	}
}

// Scenario 4: binding a variable that doesn't appear in the body is
// IllegalType, and the variable stays unbound afterwards.
func TestScenario4_VacuousBindingRejected(t *testing.T) {
	tbl := NewTypeTable()
	body := mustFn(t, tbl, tbl.TypeInt())
	a := tbl.TypeVar()

	err := tbl.AddBoundVar(body, a)
	if err == nil {
		t.Fatal("expected vacuous binding to fail")
	}
	if !errors.Is(err, ErrIllegalType) {
		t.Fatalf("expected IllegalType, got %v", err)
	}
	av := a.node.(*TypeVarNode)
	if av.BoundAt != nil {
		t.Fatal("expected bound_at to remain nil after a failed binding")
	}
	if err := tbl.CheckSanity(); err != nil {
		t.Fatalf("sanity: %v", err)
	}
}

// Scenario 5: a variable cannot bind itself.
func TestScenario5_SelfBindingRejected(t *testing.T) {
	tbl := NewTypeTable()
	a := tbl.TypeVar()
	err := tbl.AddBoundVar(a, a)
	if err == nil {
		t.Fatal("expected self-binding to fail")
	}
	if !errors.Is(err, ErrIllegalType) {
		t.Fatalf("expected IllegalType, got %v", err)
	}
	av := a.node.(*TypeVarNode)
	if av.BoundAt != nil {
		t.Fatal("expected bound_at to remain nil after a failed self-binding")
	}
}

// Scenario 6: cyclic trait bounds (A : S<B>, B : S<A>) construct,
// unify, and sanity-check without looping forever.
func TestScenario6_CyclicTraitBounds(t *testing.T) {
	tbl := NewTypeTable()

	sFormal := tbl.TypeVar()
	sTrait, err := tbl.Trait("S", []Handle{sFormal})
	if err != nil {
		t.Fatal(err)
	}

	a := tbl.TypeVarWithBounds(nil)
	b := tbl.TypeVarWithBounds(nil)

	aInstOfB, err := tbl.InstantiateTrait(sTrait, []Handle{b})
	if err != nil {
		t.Fatal(err)
	}
	bInstOfA, err := tbl.InstantiateTrait(sTrait, []Handle{a})
	if err != nil {
		t.Fatal(err)
	}
	a.node.(*TypeVarNode).Bounds = []Handle{aInstOfB}
	b.node.(*TypeVarNode).Bounds = []Handle{bInstOfA}

	f := mustFn(t, tbl, a, b)
	mustBind(t, tbl, f, a)
	mustBind(t, tbl, f, b)
	r := mustUnify(t, tbl, f)

	// Pretty-printing must terminate.
	_ = tbl.ToString(r)

	if err := tbl.CheckSanity(); err != nil {
		t.Fatalf("sanity: %v", err)
	}
}

// Scenario 7: two independent free variables produce structurally
// equal but not representative-equal fn types before binding; after
// both sides are generalized and unified, they become representative
// equal.
func TestScenario7_StructuralVsRepresentativeEquality(t *testing.T) {
	tbl := NewTypeTable()

	a := tbl.TypeVar()
	b := tbl.TypeVar()
	f := mustFn(t, tbl, a)
	g := mustFn(t, tbl, b)

	if !structEqual(f.node, g.node) {
		t.Fatal("expected fn(A) and fn(B) to be structurally equal before binding")
	}

	rf := mustUnify(t, tbl, f)
	rg := mustUnify(t, tbl, g)
	if rf.Equal(rg) {
		t.Fatal("expected fn(A) and fn(B) to NOT be representative-equal while A, B remain free")
	}

	a2 := tbl.TypeVar()
	b2 := tbl.TypeVar()
	f2 := mustFn(t, tbl, a2)
	g2 := mustFn(t, tbl, b2)
	mustBind(t, tbl, f2, a2)
	mustBind(t, tbl, g2, b2)
	rf2 := mustUnify(t, tbl, f2)
	rg2 := mustUnify(t, tbl, g2)
	if !rf2.Equal(rg2) {
		t.Fatal("expected fn<A>(A) and fn<B>(B) to become representative-equal once generalized")
	}
}

func TestInterningUniqueness(t *testing.T) {
	tbl := NewTypeTable()
	a := mustUnify(t, tbl, tbl.TypeInt())
	b := mustUnify(t, tbl, tbl.TypeInt())
	if !a.Equal(b) {
		t.Fatal("expected two requests for the int primitive to share a representative")
	}

	t1 := mustUnify(t, tbl, mustTuple(t, tbl, tbl.TypeInt(), tbl.TypeBool()))
	t2 := mustUnify(t, tbl, mustTuple(t, tbl, tbl.TypeInt(), tbl.TypeBool()))
	if !t1.Equal(t2) {
		t.Fatal("expected two structurally identical closed tuples to share a representative")
	}
}

func TestFreeRigidity(t *testing.T) {
	tbl := NewTypeTable()
	a := tbl.TypeVar()
	b := tbl.TypeVar()
	fa := mustUnify(t, tbl, mustFn(t, tbl, a))
	fb := mustUnify(t, tbl, mustFn(t, tbl, b))
	if fa.Equal(fb) {
		t.Fatal("expected fn(A) and fn(B) with distinct free variables to NOT be representative-equal")
	}
}

func TestBinderIdempotenceUnderSpecialization(t *testing.T) {
	tbl := NewTypeTable()
	a := tbl.TypeVar()
	f := mustFn(t, tbl, a, a)
	mustBind(t, tbl, f, a)
	r := mustUnify(t, tbl, f)

	result, _, err := tbl.Instantiate(r, map[Handle]Handle{
		handleOf(tbl, r.node.base().boundVars[0]): handleOf(tbl, r.node.base().boundVars[0]),
	})
	if err != nil {
		t.Fatalf("instantiate with identity substitution: %v", err)
	}
	rr := mustUnify(t, tbl, result)
	_ = rr
	if err := tbl.CheckSanity(); err != nil {
		t.Fatalf("sanity: %v", err)
	}
}

func TestInstantiateSubstitutesAndPreservesBounds(t *testing.T) {
	tbl := NewTypeTable()

	numeric, err := tbl.Trait("Numeric", nil)
	if err != nil {
		t.Fatal(err)
	}
	numericInst, err := tbl.InstantiateTrait(numeric, nil)
	if err != nil {
		t.Fatal(err)
	}
	a := tbl.TypeVarWithBounds([]Handle{numericInst})
	f := mustFn(t, tbl, a, a)
	mustBind(t, tbl, f, a)
	r := mustUnify(t, tbl, f)

	boundVar := r.node.base().boundVars[0]
	result, obligations, err := tbl.Instantiate(r, map[Handle]Handle{
		handleOf(tbl, boundVar): tbl.TypeInt(),
	})
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	final := mustUnify(t, tbl, result)
	if got := tbl.ToString(final); got != "fn(int, int)" {
		t.Fatalf("expected fn(int, int), got %q", got)
	}
	if len(obligations) != 1 {
		t.Fatalf("expected one obligation, got %d", len(obligations))
	}
	if len(obligations[0].Bounds) != 1 {
		t.Fatalf("expected the substituted bound to survive instantiation")
	}
}

func TestSanityCatchesNothingOnWellFormedTable(t *testing.T) {
	tbl := NewTypeTable()
	a, b := tbl.TypeVar(), tbl.TypeVar()
	f := mustFn(t, tbl, a, b)
	mustBind(t, tbl, f, a)
	mustBind(t, tbl, f, b)
	mustUnify(t, tbl, f)
	if err := tbl.CheckSanity(); err != nil {
		t.Fatalf("expected a clean sanity check, got %v", err)
	}
}

func TestIllegalOperationsAreInert(t *testing.T) {
	tbl := NewTypeTable()
	before := mustUnify(t, tbl, tbl.TypeInt())

	a := tbl.TypeVar()
	body := mustFn(t, tbl, tbl.TypeBool())
	if err := tbl.AddBoundVar(body, a); err == nil {
		t.Fatal("expected vacuous binding to fail")
	}

	after := mustUnify(t, tbl, tbl.TypeInt())
	if !before.Equal(after) {
		t.Fatal("expected a prior handle to remain valid and unchanged after an unrelated failed construction")
	}
	if err := tbl.CheckSanity(); err != nil {
		t.Fatalf("sanity: %v", err)
	}
}

func TestEmbeddingOpenPolytypeIsIllegal(t *testing.T) {
	tbl := NewTypeTable()
	a := tbl.TypeVar()
	b := tbl.TypeVar()
	inner := mustFn(t, tbl, a, b)
	mustBind(t, tbl, inner, a)
	// b stays free: inner is a polytype (bound over a) that is still open (b is free).
	_, err := tbl.TupleType([]Handle{inner, tbl.TypeInt()})
	if err == nil {
		t.Fatal("expected embedding an open polytype to fail")
	}
	if !errors.Is(err, ErrIllegalType) {
		t.Fatalf("expected IllegalType, got %v", err)
	}
}

func TestWrongActualsArityIsIllegal(t *testing.T) {
	tbl := NewTypeTable()
	formal := tbl.TypeVar()
	trait, err := tbl.Trait("S", []Handle{formal})
	if err != nil {
		t.Fatal(err)
	}
	_, err = tbl.InstantiateTrait(trait, nil)
	if err == nil {
		t.Fatal("expected wrong-arity instantiate_trait to fail")
	}
	if !errors.Is(err, ErrIllegalType) {
		t.Fatalf("expected IllegalType, got %v", err)
	}
}
