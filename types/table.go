package types

// TypeTable is the sole factory and owner of every type, trait, and
// trait-instance node for one compilation. It guarantees each distinct
// structural shape exists at most once (structural interning), and
// drives the union-find unifier that turns a freshly constructed node
// into its canonical representative.
//
// A TypeTable is not safe for concurrent use; per spec, the core is
// single-threaded per compilation, and handles from one table must
// never be passed to another.
type TypeTable struct {
	seq     uint64
	owned   []Node
	buckets map[uint64][]Node

	primitives map[string]*PrimitiveNode
	traitsByID map[traitKey]*TraitNode

	nextVarID     int
	nextUnknownID int
}

type traitKey struct {
	name   string
	arity  int
}

// NewTypeTable constructs an empty table. The four built-in primitive
// kinds (int, bool, float, string) are pre-interned as singletons,
// matching the "type_int() / type_bool() / ..." factories of spec §4.1.
func NewTypeTable() *TypeTable {
	t := &TypeTable{
		buckets:    make(map[uint64][]Node),
		primitives: make(map[string]*PrimitiveNode),
		traitsByID: make(map[traitKey]*TraitNode),
	}
	for _, tag := range []string{"int", "bool", "float", "string"} {
		t.internPrimitive(tag)
	}
	return t
}

func (t *TypeTable) nextSeq() uint64 {
	t.seq++
	return t.seq
}

func (t *TypeTable) own(n Node) {
	n.base().table = t
	n.base().seq = t.nextSeq()
	t.owned = append(t.owned, n)
}

func (t *TypeTable) internPrimitive(tag string) *PrimitiveNode {
	if p, ok := t.primitives[tag]; ok {
		return p
	}
	p := &PrimitiveNode{Tag: tag}
	t.own(p)
	p.rep = p
	t.primitives[tag] = p
	return p
}

// TypeInt, TypeBool, TypeFloat, and TypeString return the handle to
// the singleton primitive of that name.
func (t *TypeTable) TypeInt() Handle    { return handleOf(t, t.internPrimitive("int")) }
func (t *TypeTable) TypeBool() Handle   { return handleOf(t, t.internPrimitive("bool")) }
func (t *TypeTable) TypeFloat() Handle  { return handleOf(t, t.internPrimitive("float")) }
func (t *TypeTable) TypeString() Handle { return handleOf(t, t.internPrimitive("string")) }

// TypePrimitive returns the singleton primitive handle for an
// arbitrary tag, for callers (e.g. the checker) that carry their own
// primitive vocabulary beyond the four built-ins.
func (t *TypeTable) TypePrimitive(tag string) Handle {
	return handleOf(t, t.internPrimitive(tag))
}

// TypeVar creates a fresh, free type variable. Each call yields a
// distinct identity; variables are never interned at creation.
func (t *TypeTable) TypeVar() Handle {
	return t.TypeVarWithBounds(nil)
}

// TypeVarWithBounds creates a fresh, free type variable carrying the
// given trait-instance bounds.
func (t *TypeTable) TypeVarWithBounds(bounds []Handle) Handle {
	v := &TypeVarNode{ID: t.nextVarID, Bounds: append([]Handle(nil), bounds...)}
	t.nextVarID++
	t.own(v)
	return handleOf(t, v)
}

// Unknown creates a fresh inference hole. The core never resolves an
// Unknown on its own; it is the checker's job to narrow it down and
// replace references to it before the term must be closed.
func (t *TypeTable) Unknown() Handle {
	u := &UnknownNode{ID: t.nextUnknownID}
	t.nextUnknownID++
	t.own(u)
	return handleOf(t, u)
}

// TupleType constructs a (possibly fresh) tuple node over the given
// ordered children. Fails with IllegalType if any child would embed
// an open or already-generalized term (see binder.go's embedsIllegally).
func (t *TypeTable) TupleType(children []Handle) (Handle, error) {
	for _, c := range children {
		if embedsIllegally(c) {
			return Handle{}, illegalf(c, "tupletype: %w", errEmbeddedOpenOrPolyTerm)
		}
	}
	n := &TupleNode{Children: append([]Handle(nil), children...)}
	t.own(n)
	return handleOf(t, n), nil
}

// FnType constructs a (possibly fresh) function-type node over the
// given ordered parameters (by convention the last parameter carries
// the continuation/return). Same embedding restriction as TupleType.
func (t *TypeTable) FnType(params []Handle) (Handle, error) {
	for _, p := range params {
		if embedsIllegally(p) {
			return Handle{}, illegalf(p, "fntype: %w", errEmbeddedOpenOrPolyTerm)
		}
	}
	n := &FnNode{Params: append([]Handle(nil), params...)}
	t.own(n)
	return handleOf(t, n), nil
}

// Trait interns the canonical trait node for (name, len(formals)).
// Traits declared with the same name and arity are the same trait
// even if the formal TypeVar identities differ.
func (t *TypeTable) Trait(name string, formals []Handle) (Handle, error) {
	key := traitKey{name, len(formals)}
	if existing, ok := t.traitsByID[key]; ok {
		return handleOf(t, existing), nil
	}
	fv := make([]*TypeVarNode, len(formals))
	for i, f := range formals {
		tv, ok := f.node.(*TypeVarNode)
		if !ok {
			return Handle{}, illegalf(f, "typetrait: formal %d is not a type variable", i)
		}
		fv[i] = tv
	}
	n := &TraitNode{Name: name, Formals: fv}
	t.own(n)
	n.rep = n
	t.traitsByID[key] = n
	return handleOf(t, n), nil
}

// InstantiateTrait builds a TraitInstance applying trait to actuals.
// Fails if the arity of actuals does not match the trait's formals.
func (t *TypeTable) InstantiateTrait(trait Handle, actuals []Handle) (Handle, error) {
	tn, ok := trait.node.(*TraitNode)
	if !ok {
		return Handle{}, illegalf(trait, "instantiate_trait: handle is not a trait")
	}
	if len(actuals) != len(tn.Formals) {
		return Handle{}, illegalf(trait, "instantiate_trait: %w (want %d, got %d)", errWrongActualsArity, len(tn.Formals), len(actuals))
	}
	for _, a := range actuals {
		if embedsIllegally(a) {
			return Handle{}, illegalf(a, "instantiate_trait: %w", errEmbeddedOpenOrPolyTerm)
		}
	}
	n := &TraitInstanceNode{Trait: tn, Actuals: append([]Handle(nil), actuals...)}
	t.own(n)
	return t.Unify(handleOf(t, n))
}

// Unify canonicalizes h: structural children and bound variables are
// unified first, then h's own structural hash is looked up against
// the table's intern set. It always succeeds for a well-formed
// construction (see spec §4.2/§7); the error return exists only for
// the (currently unreachable from a well-formed node) defensive path
// shared with the recursive helpers.
func (t *TypeTable) Unify(h Handle) (Handle, error) {
	n := h.node
	if n == nil {
		return Handle{}, illegalf(h, "unify: invalid handle")
	}
	if rep := n.base().rep; rep != nil {
		return handleOf(t, rep), nil
	}
	switch x := n.(type) {
	case *PrimitiveNode:
		x.rep = x
		return handleOf(t, x), nil
	case *UnknownNode:
		x.rep = x
		return handleOf(t, x), nil
	case *TypeVarNode:
		for i, b := range x.Bounds {
			r, err := t.Unify(b)
			if err != nil {
				return Handle{}, err
			}
			x.Bounds[i] = r
		}
		x.rep = x
		return handleOf(t, x), nil
	case *TraitNode:
		if x.rep == nil {
			x.rep = x
		}
		return handleOf(t, x), nil
	case *TupleNode:
		for i, c := range x.Children {
			r, err := t.Unify(c)
			if err != nil {
				return Handle{}, err
			}
			x.Children[i] = r
		}
		for _, v := range x.boundVars {
			if _, err := t.Unify(handleOf(t, v)); err != nil {
				return Handle{}, err
			}
		}
		return t.intern(x), nil
	case *FnNode:
		for i, p := range x.Params {
			r, err := t.Unify(p)
			if err != nil {
				return Handle{}, err
			}
			x.Params[i] = r
		}
		for _, v := range x.boundVars {
			if _, err := t.Unify(handleOf(t, v)); err != nil {
				return Handle{}, err
			}
		}
		return t.intern(x), nil
	case *TraitInstanceNode:
		for i, a := range x.Actuals {
			r, err := t.Unify(a)
			if err != nil {
				return Handle{}, err
			}
			x.Actuals[i] = r
		}
		return t.intern(x), nil
	default:
		return Handle{}, illegalf(h, "unify: unrecognized node kind")
	}
}

// intern looks up n's structural hash in the bucket set; on a match
// it sets n's representative to the match and returns the match,
// otherwise n becomes its own representative and is inserted.
func (t *TypeTable) intern(n Node) Handle {
	h := structHash(n)
	bucket := t.buckets[h]
	for _, existing := range bucket {
		if structEqual(n, existing) {
			n.base().rep = existing
			return handleOf(t, existing)
		}
	}
	n.base().rep = n
	t.buckets[h] = append(bucket, n)
	return handleOf(t, n)
}

// UnifyWith canonicalizes both handles and asks whether they denote
// the same closed type. This is the failure-returning entry point
// (spec §7): plain Unify always succeeds for a well-formed node; two
// already-closed terms that turn out structurally incompatible
// surface as UnificationFailure here instead.
func (t *TypeTable) UnifyWith(a, b Handle) (Handle, error) {
	ra, err := t.Unify(a)
	if err != nil {
		return Handle{}, err
	}
	rb, err := t.Unify(b)
	if err != nil {
		return Handle{}, err
	}
	if ra.Equal(rb) {
		return ra, nil
	}
	return Handle{}, unificationFailuref("cannot unify %s with %s", t.ToString(ra), t.ToString(rb))
}
