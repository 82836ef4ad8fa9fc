package types

import "fmt"

// CheckSanity walks every node the table owns and verifies the
// invariants of spec §3 plus the extra bookkeeping checks of §4.6. It
// is meant to be called liberally from tests and from debug-build
// assertions in the checker; a clean return means the table is in a
// state consistent with every invariant this package promises.
func (t *TypeTable) CheckSanity() error {
	for _, n := range t.owned {
		base := n.base()

		// Invariant 1: representative idempotence.
		if base.rep != nil {
			if rr := base.rep.base().rep; rr != base.rep {
				return fmt.Errorf("types: sanity: representative idempotence violated at node seq=%d", base.seq)
			}
		}

		if tv, ok := n.(*TypeVarNode); ok {
			// equiv_var must never be observed set outside a single
			// structural-equality call.
			if tv.equivVar != nil {
				return fmt.Errorf("types: sanity: type variable seq=%d leaked transient equivVar", base.seq)
			}
			if tv.BoundAt != nil {
				// Invariant 4: no self-binding.
				if tv.BoundAt == Node(tv) {
					return fmt.Errorf("types: sanity: type variable seq=%d is bound at itself", base.seq)
				}
				// Invariant 3: single binding site, and the binder's
				// bound_vars must list this variable back.
				found := false
				for _, w := range tv.BoundAt.base().boundVars {
					if w == tv {
						found = true
						break
					}
				}
				if !found {
					return fmt.Errorf("types: sanity: type variable seq=%d has bound_at not reflected in the binder's bound_vars", base.seq)
				}
			}
		}

		// Every entry in bound_vars must point back via bound_at
		// (the other half of invariant 3), and must actually occur
		// free in the binder (invariant 5).
		for _, w := range base.boundVars {
			if w.BoundAt != n {
				return fmt.Errorf("types: sanity: bound_vars entry seq=%d does not point back to its binder seq=%d", w.seq, base.seq)
			}
			if !occursFree(handleOf(t, n), w) {
				return fmt.Errorf("types: sanity: bound variable seq=%d does not occur in its binder seq=%d (vacuous binding escaped construction)", w.seq, base.seq)
			}
		}

		// Invariant 2: structural canonicity — a unified node's
		// representative must itself be structurally equal to it.
		if base.rep != nil && base.rep != n {
			if !structEqual(n, base.rep) {
				return fmt.Errorf("types: sanity: node seq=%d is not structurally equal to its own representative seq=%d", base.seq, base.rep.base().seq)
			}
		}
	}
	return nil
}
