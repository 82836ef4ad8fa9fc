package types

// pairKey identifies an (a, b) node pair visited during a cyclic
// trait-instance comparison, so equality over cyclic bounds
// (`A : S<B>, B : S<A>`) terminates by treating a repeated pair
// as provisionally equal (a standard bisimulation-style cycle rule;
// see spec's design notes on cyclic structures).
type pairKey struct{ a, b Node }

// structEqual is the deep-enough structural equality used both to
// resolve intern-set hash collisions and, recursively, to compare
// trait bound sets. It accounts for alpha-equivalence of directly
// bound type variables and treats free variables as rigid identities.
func structEqual(a, b Node) bool {
	if a == b {
		return true
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch x := a.(type) {
	case *PrimitiveNode:
		y := b.(*PrimitiveNode)
		return x.Tag == y.Tag
	case *TupleNode:
		y := b.(*TupleNode)
		if len(x.Children) != len(y.Children) || len(x.boundVars) != len(y.boundVars) {
			return false
		}
		return compositeEqual(&x.nodeBase, &y.nodeBase, x.Children, y.Children)
	case *FnNode:
		y := b.(*FnNode)
		if len(x.Params) != len(y.Params) || len(x.boundVars) != len(y.boundVars) {
			return false
		}
		return compositeEqual(&x.nodeBase, &y.nodeBase, x.Params, y.Params)
	case *UnknownNode:
		return a == b
	case *TypeVarNode:
		y := b.(*TypeVarNode)
		return typeVarEqual(x, y)
	case *TraitNode:
		y := b.(*TraitNode)
		return x.Name == y.Name && len(x.Formals) == len(y.Formals)
	case *TraitInstanceNode:
		y := b.(*TraitInstanceNode)
		return traitInstanceEqualCycle(x, y, make(map[pairKey]bool))
	default:
		return false
	}
}

// compositeEqual pairs up the two nodes' direct bound variables as
// provisionally alpha-equivalent (spec §4.2's "provisional link"),
// checks their bound sets agree as sets, compares children under that
// provisional pairing, then always restores equivVar to nil before
// returning — including on an early false return — so no scratch
// state leaks past a single comparison.
func compositeEqual(ab, bb *nodeBase, achildren, bchildren []Handle) bool {
	n := len(ab.boundVars)
	for i := 0; i < n; i++ {
		ab.boundVars[i].equivVar = bb.boundVars[i]
		bb.boundVars[i].equivVar = ab.boundVars[i]
	}
	defer func() {
		for i := 0; i < n; i++ {
			ab.boundVars[i].equivVar = nil
			bb.boundVars[i].equivVar = nil
		}
	}()
	for i := 0; i < n; i++ {
		if !traitSetEqual(ab.boundVars[i].Bounds, bb.boundVars[i].Bounds) {
			return false
		}
	}
	for i := range achildren {
		if !childEqual(achildren[i], bchildren[i]) {
			return false
		}
	}
	return true
}

// childEqual compares one structural child position. A TypeVar child
// is compared alpha-aware (via typeVarEqual); every other kind is
// compared by its already-frozen representative identity, since
// children are unified before their parent per the ordering guarantee
// in spec §5.
func childEqual(h1, h2 Handle) bool {
	v1, ok1 := h1.node.(*TypeVarNode)
	v2, ok2 := h2.node.(*TypeVarNode)
	if ok1 && ok2 {
		return typeVarEqual(v1, v2)
	}
	if ok1 != ok2 {
		return false
	}
	r1, r2 := h1.Representative(), h2.Representative()
	if r1 != nil && r2 != nil {
		return r1 == r2
	}
	return h1.node == h2.node
}

// typeVarEqual implements free rigidity (two distinct free variables
// are never equal, only identity makes them equal) and alpha
// equivalence for bound variables paired via the transient equivVar
// link set up by compositeEqual.
func typeVarEqual(v1, v2 *TypeVarNode) bool {
	if v1 == v2 {
		return true
	}
	if v1.equivVar == v2 && v2.equivVar == v1 {
		return true
	}
	return false
}

// traitSetEqual compares two trait-bound sets order-independently.
func traitSetEqual(a, b []Handle) bool {
	return traitSetEqualVisited(a, b, make(map[pairKey]bool))
}

func traitSetEqualVisited(a, b []Handle, visited map[pairKey]bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, ha := range a {
		found := false
		for j, hb := range b {
			if used[j] {
				continue
			}
			if traitInstanceHandleEqual(ha, hb, visited) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func traitInstanceHandleEqual(ha, hb Handle, visited map[pairKey]bool) bool {
	a, aok := ha.node.(*TraitInstanceNode)
	b, bok := hb.node.(*TraitInstanceNode)
	if !aok || !bok {
		return ha.node == hb.node
	}
	return traitInstanceEqualCycle(a, b, visited)
}

// traitInstanceEqualCycle compares two trait instances, tolerating
// cyclic bound graphs: revisiting a pair already on the worklist is
// treated as equal (co-inductive assumption), which is sound for the
// well-formed, finitely-described cycles the core allows and matches
// spec's instruction to use "a fixed sentinel for back-edges."
func traitInstanceEqualCycle(a, b *TraitInstanceNode, visited map[pairKey]bool) bool {
	if a == b {
		return true
	}
	key := pairKey{a, b}
	if visited[key] {
		return true
	}
	visited[key] = true
	if a.Trait != b.Trait {
		if a.Trait == nil || b.Trait == nil {
			return false
		}
		if a.Trait.Name != b.Trait.Name || len(a.Trait.Formals) != len(b.Trait.Formals) {
			return false
		}
	}
	if len(a.Actuals) != len(b.Actuals) {
		return false
	}
	for i := range a.Actuals {
		if !actualEqualCycle(a.Actuals[i], b.Actuals[i], visited) {
			return false
		}
	}
	return true
}

func actualEqualCycle(ha, hb Handle, visited map[pairKey]bool) bool {
	av, aok := ha.node.(*TypeVarNode)
	bv, bok := hb.node.(*TypeVarNode)
	if aok && bok {
		if av == bv {
			return true
		}
		if av.equivVar == bv && bv.equivVar == av {
			return true
		}
		if av.BoundAt == nil || bv.BoundAt == nil {
			return false
		}
		return traitSetEqualVisited(av.Bounds, bv.Bounds, visited)
	}
	if aok != bok {
		return false
	}
	r1, r2 := ha.Representative(), hb.Representative()
	if r1 != nil && r2 != nil {
		return r1 == r2
	}
	return ha.node == hb.node
}
