package types

// AddBoundVar generalizes node over v: v becomes a forall-binder of
// node, making node a polytype in v. It enforces binder discipline
// (spec §4.3): v must be free, node must not be v itself, node must be
// a composite (not a free TypeVar), and v must actually occur free
// somewhere inside node's structural children (no vacuous binders).
//
// On failure the table is left exactly as it was: v.BoundAt stays
// nil and node.boundVars is unchanged (all-or-nothing construction).
func (t *TypeTable) AddBoundVar(node Handle, v Handle) error {
	vVar, ok := v.node.(*TypeVarNode)
	if !ok {
		return illegalf(v, "add_bound_var: argument is not a type variable")
	}
	if vVar.BoundAt != nil {
		return illegalf(v, "add_bound_var: %w", errDoubleBinding)
	}
	if node.node == Node(vVar) {
		return illegalf(node, "add_bound_var: %w", errSelfBinding)
	}
	base := node.node.base()
	switch node.node.(type) {
	case *TupleNode, *FnNode:
		// composite, allowed
	default:
		return illegalf(node, "add_bound_var: %w", errNonComposite)
	}
	if base.rep != nil {
		return illegalf(node, "add_bound_var: node is already unified and its structure is frozen")
	}
	if !occursFree(node, vVar) {
		return illegalf(node, "add_bound_var: %w", errVacuousBinding)
	}
	vVar.BoundAt = node.node
	base.boundVars = append(base.boundVars, vVar)
	return nil
}

// occursFree reports whether v occurs, as a still-free variable, among
// the structural positions reachable from h: composite children,
// TypeVar bounds, and trait-instance actuals. Cycles through trait
// bounds are guarded with a visited set.
func occursFree(h Handle, v *TypeVarNode) bool {
	visited := make(map[Node]bool)
	var walk func(n Node) bool
	walk = func(n Node) bool {
		if n == nil || visited[n] {
			return false
		}
		visited[n] = true
		switch x := n.(type) {
		case *TypeVarNode:
			if x == v {
				return true
			}
			for _, b := range x.Bounds {
				if walk(b.node) {
					return true
				}
			}
			return false
		case *TupleNode:
			for _, c := range x.Children {
				if walk(c.node) {
					return true
				}
			}
			return false
		case *FnNode:
			for _, p := range x.Params {
				if walk(p.node) {
					return true
				}
			}
			return false
		case *TraitNode:
			for _, f := range x.Formals {
				if walk(f) {
					return true
				}
			}
			return false
		case *TraitInstanceNode:
			for _, a := range x.Actuals {
				if walk(a.node) {
					return true
				}
			}
			return false
		default:
			return false
		}
	}
	return walk(h.node)
}

// IsClosed reports whether every TypeVar reachable from h has a
// non-nil BoundAt, i.e. h contains no remaining free variable.
func IsClosed(h Handle) bool {
	visited := make(map[Node]bool)
	var walk func(n Node) bool
	walk = func(n Node) bool {
		if n == nil {
			return true
		}
		if visited[n] {
			return true
		}
		visited[n] = true
		switch x := n.(type) {
		case *TypeVarNode:
			if x.BoundAt == nil {
				return false
			}
			for _, b := range x.Bounds {
				if !walk(b.node) {
					return false
				}
			}
			return true
		case *TupleNode:
			for _, c := range x.Children {
				if !walk(c.node) {
					return false
				}
			}
			return true
		case *FnNode:
			for _, p := range x.Params {
				if !walk(p.node) {
					return false
				}
			}
			return true
		case *TraitInstanceNode:
			for _, a := range x.Actuals {
				if !walk(a.node) {
					return false
				}
			}
			return true
		case *PrimitiveNode, *UnknownNode, *TraitNode:
			return true
		default:
			return true
		}
	}
	return walk(h.node)
}

// embedsIllegally implements the conservative resolution of "embedding
// an open or already-generalized term" (SPEC_FULL.md B.6 item 2): a
// child that is itself a polytype (non-empty boundVars) and still
// contains a reachable free variable may not be embedded as a
// structural child of a new composite.
func embedsIllegally(child Handle) bool {
	if child.node == nil {
		return false
	}
	base := child.node.base()
	if len(base.boundVars) == 0 {
		return false
	}
	return !IsClosed(child)
}
