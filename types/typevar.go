package types

// TypeVarNode is a type variable: a placeholder that is either free
// (BoundAt == nil) or bound at the generic node that generalizes over
// it. Two calls to TypeTable.TypeVar always yield distinct identities;
// variables are never interned at creation, only the composite nodes
// that later bind and unify them are.
type TypeVarNode struct {
	nodeBase
	ID int
	// Bounds are the trait instances this variable's eventual
	// instantiation must implement.
	Bounds []Handle
	// BoundAt is nil while the variable is free; once generalized it
	// points to the node whose BoundVars contains this variable.
	BoundAt Node
	// equivVar is transient scratch used only during a structural
	// equality comparison of two polytypes: while comparing a pair of
	// binders (v, w), v.equivVar is set to w (and vice versa) for the
	// duration of that comparison, then restored to nil. It must be
	// nil on every node at rest; CheckSanity verifies this.
	equivVar *TypeVarNode
}

func (n *TypeVarNode) Kind() Kind { return KindTypeVar }

// IsFree reports whether this variable has not yet been generalized
// over by any node.
func (n *TypeVarNode) IsFree() bool { return n.BoundAt == nil }
