package types

// Obligation records, for one substituted bound variable, the trait
// bounds it carried with the substitution already applied. Per spec
// §4.5, the core only substitutes into the bound and re-interns it —
// verifying that the replacement type actually implements the
// substituted bound is the caller's (the checker's) responsibility.
type Obligation struct {
	Var    Handle
	Target Handle
	Bounds []Handle
}

// Instantiate substitutes subst (a map from node's own bound variables
// to concrete replacement types) through the polymorphic node,
// producing a fresh, unified, monomorphic-in-those-binders handle.
// Nested polytypes inside node keep their own binders, cloned to fresh
// variables so the substitution cannot capture them. subst must cover
// exactly node's bound_vars, no more and no fewer.
func (t *TypeTable) Instantiate(node Handle, subst map[Handle]Handle) (Handle, []Obligation, error) {
	base := node.node.base()
	if len(base.boundVars) != len(subst) {
		return Handle{}, nil, illegalf(node, "instantiate: substitution covers %d variable(s), node binds %d", len(subst), len(base.boundVars))
	}
	varSubst := make(map[*TypeVarNode]Handle, len(subst))
	for k, v := range subst {
		tv, ok := k.node.(*TypeVarNode)
		if !ok {
			return Handle{}, nil, illegalf(k, "instantiate: substitution key is not a type variable")
		}
		if tv.BoundAt != node.node {
			return Handle{}, nil, illegalf(k, "instantiate: variable is not bound at the node being instantiated")
		}
		varSubst[tv] = v
	}

	memo := make(map[Node]Handle)
	var obligations []Obligation
	for _, ov := range base.boundVars {
		target := varSubst[ov]
		subBounds := make([]Handle, len(ov.Bounds))
		for i, bnd := range ov.Bounds {
			sb, err := specializeNode(t, bnd.node, varSubst, memo)
			if err != nil {
				return Handle{}, nil, err
			}
			subBounds[i] = sb
		}
		obligations = append(obligations, Obligation{Var: handleOf(t, ov), Target: target, Bounds: subBounds})
	}

	result, err := specializeTopLevel(t, node.node, varSubst, memo)
	if err != nil {
		return Handle{}, nil, err
	}
	final, err := t.Unify(result)
	if err != nil {
		return Handle{}, nil, err
	}
	return final, obligations, nil
}

// specializeTopLevel rebuilds node's immediate composite structure
// from its substituted children, with an empty bound_vars list — the
// node's own binders are the ones being eliminated by this call.
func specializeTopLevel(t *TypeTable, n Node, subst map[*TypeVarNode]Handle, memo map[Node]Handle) (Handle, error) {
	switch x := n.(type) {
	case *TupleNode:
		children := make([]Handle, len(x.Children))
		for i, c := range x.Children {
			h, err := specializeNode(t, c.node, subst, memo)
			if err != nil {
				return Handle{}, err
			}
			children[i] = h
		}
		return t.TupleType(children)
	case *FnNode:
		params := make([]Handle, len(x.Params))
		for i, p := range x.Params {
			h, err := specializeNode(t, p.node, subst, memo)
			if err != nil {
				return Handle{}, err
			}
			params[i] = h
		}
		return t.FnType(params)
	default:
		return handleOf(t, n), nil
	}
}

// specialize is the lower-level, memoized, capture-avoiding
// substitution helper of spec §4.5: it may be applied to any node,
// possibly still containing quantifiers, and clones a nested
// polytype's own binders into fresh variables before descending, so
// an inner forall is never accidentally captured by an outer
// substitution.
func specializeNode(t *TypeTable, n Node, subst map[*TypeVarNode]Handle, memo map[Node]Handle) (Handle, error) {
	if h, ok := memo[n]; ok {
		return h, nil
	}
	switch x := n.(type) {
	case *PrimitiveNode, *UnknownNode:
		return handleOf(t, n), nil
	case *TypeVarNode:
		if target, ok := subst[x]; ok {
			return target, nil
		}
		return handleOf(t, x), nil
	case *TupleNode:
		if len(x.boundVars) > 0 {
			h, err := specializeNestedComposite(t, x.boundVars, x.Children, subst, memo,
				func(children []Handle) (Handle, error) { return t.TupleType(children) })
			if err != nil {
				return Handle{}, err
			}
			memo[n] = h
			return h, nil
		}
		children := make([]Handle, len(x.Children))
		for i, c := range x.Children {
			h, err := specializeNode(t, c.node, subst, memo)
			if err != nil {
				return Handle{}, err
			}
			children[i] = h
		}
		built, err := t.TupleType(children)
		if err != nil {
			return Handle{}, err
		}
		final, err := t.Unify(built)
		if err != nil {
			return Handle{}, err
		}
		memo[n] = final
		return final, nil
	case *FnNode:
		if len(x.boundVars) > 0 {
			h, err := specializeNestedComposite(t, x.boundVars, x.Params, subst, memo,
				func(params []Handle) (Handle, error) { return t.FnType(params) })
			if err != nil {
				return Handle{}, err
			}
			memo[n] = h
			return h, nil
		}
		params := make([]Handle, len(x.Params))
		for i, p := range x.Params {
			h, err := specializeNode(t, p.node, subst, memo)
			if err != nil {
				return Handle{}, err
			}
			params[i] = h
		}
		built, err := t.FnType(params)
		if err != nil {
			return Handle{}, err
		}
		final, err := t.Unify(built)
		if err != nil {
			return Handle{}, err
		}
		memo[n] = final
		return final, nil
	case *TraitInstanceNode:
		actuals := make([]Handle, len(x.Actuals))
		for i, a := range x.Actuals {
			h, err := specializeNode(t, a.node, subst, memo)
			if err != nil {
				return Handle{}, err
			}
			actuals[i] = h
		}
		res, err := t.InstantiateTrait(handleOf(t, x.Trait), actuals)
		if err != nil {
			return Handle{}, err
		}
		memo[n] = res
		return res, nil
	default:
		return handleOf(t, n), nil
	}
}

// specializeNestedComposite clones oldBoundVars into fresh variables
// (including their specialized bounds), extends subst locally (so the
// clone is visible only within this binder's own scope), specializes
// children under the extended substitution, builds the new composite
// via build, re-establishes the fresh binders, and unifies.
func specializeNestedComposite(
	t *TypeTable,
	oldBoundVars []*TypeVarNode,
	children []Handle,
	subst map[*TypeVarNode]Handle,
	memo map[Node]Handle,
	build func([]Handle) (Handle, error),
) (Handle, error) {
	newSubst := make(map[*TypeVarNode]Handle, len(subst)+len(oldBoundVars))
	for k, v := range subst {
		newSubst[k] = v
	}
	freshHandles := make([]Handle, len(oldBoundVars))
	freshVars := make([]*TypeVarNode, len(oldBoundVars))
	for i, ov := range oldBoundVars {
		fh := t.TypeVarWithBounds(nil)
		freshVars[i] = fh.node.(*TypeVarNode)
		freshHandles[i] = fh
		newSubst[ov] = fh
	}
	for i, ov := range oldBoundVars {
		bounds := make([]Handle, len(ov.Bounds))
		for j, b := range ov.Bounds {
			nb, err := specializeNode(t, b.node, newSubst, memo)
			if err != nil {
				return Handle{}, err
			}
			bounds[j] = nb
		}
		freshVars[i].Bounds = bounds
	}
	newChildren := make([]Handle, len(children))
	for i, c := range children {
		h, err := specializeNode(t, c.node, newSubst, memo)
		if err != nil {
			return Handle{}, err
		}
		newChildren[i] = h
	}
	built, err := build(newChildren)
	if err != nil {
		return Handle{}, err
	}
	for _, fh := range freshHandles {
		if err := t.AddBoundVar(built, fh); err != nil {
			return Handle{}, err
		}
	}
	return t.Unify(built)
}
