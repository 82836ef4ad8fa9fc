package check

import (
	"fmt"

	"github.com/impala-lang/impala/types"
)

// Subst is the checker's own union-find over inference metavariables.
// types.TypeTable deliberately never resolves an types.Unknown node on
// its own ("it is the checker's job to narrow it down" — table.go);
// Subst is that job. Each Unknown's ID is a union-find element; Bind
// installs a link from an element to the handle it was solved to
// (which may itself still contain unsolved Unknowns), and Resolve
// follows links to a fixed point, the same path-compression-free
// union-find shape as a textbook Robinson unifier.
type Subst struct {
	table *types.TypeTable
	links map[int]types.Handle
}

// NewSubst returns an empty substitution over table's Unknowns.
func NewSubst(table *types.TypeTable) *Subst {
	return &Subst{table: table, links: make(map[int]types.Handle)}
}

// Resolve follows h through the substitution to a fixed point: if h is
// a bound Unknown, it returns what that Unknown was last unified
// with (recursively resolved), otherwise h unchanged.
func (s *Subst) Resolve(h types.Handle) types.Handle {
	for h.IsValid() && h.Kind() == types.KindUnknown {
		id := h.Node().(*types.UnknownNode).ID
		next, ok := s.links[id]
		if !ok {
			break
		}
		h = next
	}
	return h
}

// mark/rollback let a caller attempt a unification (e.g. while
// searching for a trait impl that might match) and discard every
// binding it made on failure, without disturbing bindings made before
// the attempt started.
func (s *Subst) mark() map[int]types.Handle {
	snap := make(map[int]types.Handle, len(s.links))
	for k, v := range s.links {
		snap[k] = v
	}
	return snap
}

func (s *Subst) rollback(snap map[int]types.Handle) {
	s.links = snap
}

// forceBind installs a link without the occurs check bind performs,
// used only by generalization to retarget an Unknown that inference
// left completely unconstrained onto a freshly minted rigid TypeVar —
// there is no cycle to guard against since the TypeVar is brand new.
func (s *Subst) forceBind(id int, h types.Handle) { s.links[id] = h }

func (s *Subst) bind(id int, h types.Handle) error {
	if occursUnknown(s, id, h) {
		return fmt.Errorf("occurs check failed: inference variable ?unknown%d occurs in %s", id, s.table.ToString(h))
	}
	s.links[id] = h
	return nil
}

func occursUnknown(s *Subst, id int, h types.Handle) bool {
	h = s.Resolve(h)
	if !h.IsValid() {
		return false
	}
	switch h.Kind() {
	case types.KindUnknown:
		return h.Node().(*types.UnknownNode).ID == id
	case types.KindTuple:
		for _, c := range h.Node().(*types.TupleNode).Children {
			if occursUnknown(s, id, c) {
				return true
			}
		}
		return false
	case types.KindFn:
		for _, p := range h.Node().(*types.FnNode).Params {
			if occursUnknown(s, id, p) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Unify is the checker's unification algorithm proper: a metavariable
// (types.KindUnknown) binds freely to anything (after the occurs
// check); a rigid type parameter introduced by the generic function
// currently being checked (types.KindTypeVar, still free since
// generalization only happens once the whole body has been checked)
// unifies only with itself, never with a concrete type or a different
// parameter — that rigidity is exactly what makes a function
// annotated `fn id<A>(x: A) -> A` actually polymorphic instead of
// silently specializing A to whatever its first call site uses.
// Primitives, tuples, and function types unify structurally,
// recursing into Resolve'd children.
func (s *Subst) Unify(a, b types.Handle) error {
	ra, rb := s.Resolve(a), s.Resolve(b)
	if !ra.IsValid() || !rb.IsValid() {
		return fmt.Errorf("unify: invalid type handle")
	}

	if ra.Kind() == types.KindUnknown {
		return s.bind(ra.Node().(*types.UnknownNode).ID, rb)
	}
	if rb.Kind() == types.KindUnknown {
		return s.bind(rb.Node().(*types.UnknownNode).ID, ra)
	}

	if ra.Kind() != rb.Kind() {
		return fmt.Errorf("cannot unify %s with %s", s.table.ToString(ra), s.table.ToString(rb))
	}

	switch ra.Kind() {
	case types.KindPrimitive:
		if ra.Node().(*types.PrimitiveNode).Tag != rb.Node().(*types.PrimitiveNode).Tag {
			return fmt.Errorf("cannot unify %s with %s", s.table.ToString(ra), s.table.ToString(rb))
		}
		return nil
	case types.KindTypeVar:
		if ra.Node() != rb.Node() {
			return fmt.Errorf("cannot unify distinct type parameters %s and %s", s.table.ToString(ra), s.table.ToString(rb))
		}
		return nil
	case types.KindTuple:
		ta, tb := ra.Node().(*types.TupleNode), rb.Node().(*types.TupleNode)
		if len(ta.Children) != len(tb.Children) {
			return fmt.Errorf("cannot unify tuples of different arity: %s with %s", s.table.ToString(ra), s.table.ToString(rb))
		}
		for i := range ta.Children {
			if err := s.Unify(ta.Children[i], tb.Children[i]); err != nil {
				return err
			}
		}
		return nil
	case types.KindFn:
		fa, fb := ra.Node().(*types.FnNode), rb.Node().(*types.FnNode)
		if len(fa.Params) != len(fb.Params) {
			return fmt.Errorf("cannot unify functions of different arity: %s with %s", s.table.ToString(ra), s.table.ToString(rb))
		}
		for i := range fa.Params {
			if err := s.Unify(fa.Params[i], fb.Params[i]); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("cannot unify %s with %s", s.table.ToString(ra), s.table.ToString(rb))
	}
}

// Zonk fully resolves every Unknown reachable from h, rebuilding
// tuples/functions through the table so the result is interned and
// fit to hand back to ast.SetType. An Unknown that is still unresolved
// is returned unchanged (HasUnresolved reports whether any remain);
// Zonk panics only if the table rejects a rebuilt tuple or function.
func (s *Subst) Zonk(h types.Handle) types.Handle {
	h = s.Resolve(h)
	switch h.Kind() {
	case types.KindTuple:
		children := h.Node().(*types.TupleNode).Children
		zonked := make([]types.Handle, len(children))
		for i, c := range children {
			zonked[i] = s.Zonk(c)
		}
		built, err := s.table.TupleType(zonked)
		if err != nil {
			panic(err)
		}
		rep, err := s.table.Unify(built)
		if err != nil {
			panic(err)
		}
		return rep
	case types.KindFn:
		params := h.Node().(*types.FnNode).Params
		zonked := make([]types.Handle, len(params))
		for i, p := range params {
			zonked[i] = s.Zonk(p)
		}
		built, err := s.table.FnType(zonked)
		if err != nil {
			panic(err)
		}
		rep, err := s.table.Unify(built)
		if err != nil {
			panic(err)
		}
		return rep
	default:
		return h
	}
}

// HasUnresolved reports whether h still contains an Unknown after
// Resolve, i.e. whether Zonk's result would still contain one.
func HasUnresolved(s *Subst, h types.Handle) bool {
	h = s.Resolve(h)
	switch h.Kind() {
	case types.KindUnknown:
		return true
	case types.KindTuple:
		for _, c := range h.Node().(*types.TupleNode).Children {
			if HasUnresolved(s, c) {
				return true
			}
		}
		return false
	case types.KindFn:
		for _, p := range h.Node().(*types.FnNode).Params {
			if HasUnresolved(s, p) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
