package check

import (
	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/types"
)

// solveObligation discharges every trait bound instantiation carried
// through a single Obligation returned by Instantiate: ob.Target is
// what the generic variable was substituted with at this reference
// site, and ob.Bounds are that variable's own bounds with the same
// substitution already applied, i.e. the trait instances ob.Target
// must actually satisfy.
func (c *Checker) solveObligation(ob types.Obligation, span source.Span) *Error {
	for _, bound := range ob.Bounds {
		if err := c.solveTraitInstance(ob.Target, bound, span); err != nil {
			return err
		}
	}
	return nil
}

// solveTraitInstance searches every impl registered against inst's
// trait for one whose pattern unifies with (target, inst's other
// actuals). It never mutates c.subst on failure: each candidate is
// tried against a mark/rollback pair, Prolog-clause-resolution style,
// so a wrong guess never contaminates the substitution the rest of
// checking depends on.
func (c *Checker) solveTraitInstance(target types.Handle, inst types.Handle, span source.Span) *Error {
	tin, ok := inst.Node().(*types.TraitInstanceNode)
	if !ok {
		return &Error{Span: span, Msg: "internal: trait bound is not a trait instance"}
	}
	candidates := c.registry.Impls[tin.Trait.Name]
	for _, impl := range candidates {
		if c.tryImpl(impl, target, tin, span) {
			return nil
		}
	}
	return &Error{
		Span: span,
		Msg:  "no impl of " + tin.Trait.Name + " satisfies " + c.table.ToString(target),
	}
}

// tryImpl attempts to match one impl block's own trait-argument
// pattern against (target, tin.Actuals). The impl's declared type
// parameters become fresh Unknowns for the duration of the attempt,
// exactly the way a Prolog clause's own variables are freshened before
// each resolution step; a match leaves those Unknowns bound in
// c.subst (they stand for the impl's own generic parameters, now
// pinned to whatever satisfied this obligation), a mismatch rolls
// every binding made during the attempt back.
func (c *Checker) tryImpl(impl *ImplInfo, target types.Handle, tin *types.TraitInstanceNode, span source.Span) bool {
	snap := c.subst.mark()

	scope := make(typeScope, len(impl.TypeParamNames))
	for _, name := range impl.TypeParamNames {
		scope[name] = c.table.Unknown()
	}

	patternActuals := make([]types.Handle, len(impl.TraitArgsExpr))
	for i, te := range impl.TraitArgsExpr {
		h, err := c.resolveTypeExpr(te, scope)
		if err != nil {
			c.subst.rollback(snap)
			return false
		}
		patternActuals[i] = h
	}
	// TraitArgs mirrors the trait's own Formals vector position for
	// position, Self included as the first formal, so it lines up
	// directly with tin.Actuals; target is redundant with
	// tin.Actuals[0] but unified explicitly for clarity.
	if len(patternActuals) != len(tin.Actuals) {
		c.subst.rollback(snap)
		return false
	}
	if len(patternActuals) == 0 {
		c.subst.rollback(snap)
		return false
	}
	if err := c.subst.Unify(target, patternActuals[0]); err != nil {
		c.subst.rollback(snap)
		return false
	}
	for i, actual := range tin.Actuals {
		if err := c.subst.Unify(patternActuals[i], actual); err != nil {
			c.subst.rollback(snap)
			return false
		}
	}

	// The impl may itself require trait bounds on its own parameters
	// (`impl<A: Ord> Sortable for List<A>`); those must hold for
	// whatever the parameters were just pinned to.
	for _, tp := range impl.Decl.TypeParams {
		v := scope[tp.Name]
		for _, boundName := range tp.Bounds {
			boundInfo, ok := c.registry.Traits[boundName]
			if !ok {
				c.subst.rollback(snap)
				return false
			}
			boundInst, err := c.table.InstantiateTrait(boundInfo.Handle, []types.Handle{v})
			if err != nil {
				c.subst.rollback(snap)
				return false
			}
			if err := c.solveObligation(types.Obligation{Target: v, Bounds: []types.Handle{boundInst}}, span); err != nil {
				c.subst.rollback(snap)
				return false
			}
		}
	}

	return true
}
