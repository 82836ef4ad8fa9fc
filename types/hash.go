package types

// Hashing and structural equality for the intern hash set. Both
// functions operate one level at a time over already-unified (frozen)
// children, per spec's literal unifier algorithm: a node's hash and
// equality are computed over "(kind, children's representatives,
// bounds' representatives, arity of bound_vars)", with one refinement
// for the children that are themselves this node's own bound
// variables — those compare and hash alpha-equivalently (by binder
// position) rather than by identity, which is what gives fn<A>(A) and
// fn<C>(C) the same representative. A bound variable buried inside an
// already-frozen nested child (for example inside a Tuple built and
// interned before the outer Fn was generalized) is compared by the
// nested child's own already-decided representative identity; it is
// not re-normalized transitively. See DESIGN.md for the grounding and
// rationale of this scope decision.

const (
	fnvOffset uint64 = 14695981039346656037
	fnvPrime  uint64 = 1099511628211
)

func hashBytes(h uint64, bs ...byte) uint64 {
	for _, b := range bs {
		h ^= uint64(b)
		h *= fnvPrime
	}
	return h
}

func hashUint64(h uint64, v uint64) uint64 {
	for i := 0; i < 8; i++ {
		h = hashBytes(h, byte(v))
		v >>= 8
	}
	return h
}

func hashString(h uint64, s string) uint64 {
	return hashBytes(h, []byte(s)...)
}

// identityHash derives a stable hash from a node's creation sequence
// number, used for free type variables and for opaque (non-TypeVar)
// children that are compared by representative identity.
func identityHash(n Node) uint64 {
	return hashUint64(fnvOffset, n.base().seq)
}

// boundIndexOf returns v's position in its own binder's bound-var
// list. Panics if v is not actually listed there, which would itself
// be a sanity violation.
func boundIndexOf(v *TypeVarNode) int {
	siblings := v.BoundAt.base().boundVars
	for i, w := range siblings {
		if w == v {
			return i
		}
	}
	panic("types: bound type variable missing from its own binder's bound_vars")
}

// typeVarHash hashes a type variable alpha-invariantly: a free
// variable hashes by identity; a bound variable hashes by its
// position within its own binder, ignoring which node binds it and
// ignoring its own identity, so that independently built
// alpha-equivalent binders land in the same bucket.
func typeVarHash(v *TypeVarNode) uint64 {
	if v.BoundAt == nil {
		return identityHash(v)
	}
	h := hashBytes(fnvOffset, 'B')
	return hashUint64(h, uint64(boundIndexOf(v)))
}

// childHash hashes a structural child position: TypeVar children use
// the alpha-invariant rule above; every other child kind hashes by
// its (already-frozen) representative identity.
func childHash(h Handle) uint64 {
	if v, ok := h.node.(*TypeVarNode); ok {
		return typeVarHash(v)
	}
	if rep := h.Representative(); rep != nil {
		return identityHash(rep)
	}
	return identityHash(h.node)
}

// traitInstanceSetHash hashes a set of trait-instance handles
// order-independently (bound sets are compared/normalized as sets).
func traitInstanceSetHash(bounds []Handle) uint64 {
	var acc uint64
	for _, b := range bounds {
		acc ^= childHash(b)
	}
	return acc
}

func structHash(n Node) uint64 {
	switch x := n.(type) {
	case *PrimitiveNode:
		return hashString(hashBytes(fnvOffset, 'P'), x.Tag)
	case *TupleNode:
		h := hashBytes(fnvOffset, 'T')
		h = hashUint64(h, uint64(len(x.Children)))
		h = hashUint64(h, uint64(len(x.boundVars)))
		for _, c := range x.Children {
			h = hashUint64(h, childHash(c))
		}
		for _, v := range x.boundVars {
			h ^= traitInstanceSetHash(v.Bounds)
		}
		return h
	case *FnNode:
		h := hashBytes(fnvOffset, 'F')
		h = hashUint64(h, uint64(len(x.Params)))
		h = hashUint64(h, uint64(len(x.boundVars)))
		for _, p := range x.Params {
			h = hashUint64(h, childHash(p))
		}
		for _, v := range x.boundVars {
			h ^= traitInstanceSetHash(v.Bounds)
		}
		return h
	case *UnknownNode:
		return identityHash(x)
	case *TypeVarNode:
		return typeVarHash(x)
	case *TraitNode:
		h := hashString(hashBytes(fnvOffset, 'R'), x.Name)
		return hashUint64(h, uint64(len(x.Formals)))
	case *TraitInstanceNode:
		h := hashBytes(fnvOffset, 'I')
		if x.Trait != nil {
			h = hashString(h, x.Trait.Name)
			h = hashUint64(h, uint64(len(x.Trait.Formals)))
		}
		for _, a := range x.Actuals {
			h = hashUint64(h, childHash(a))
		}
		return h
	default:
		return fnvOffset
	}
}
