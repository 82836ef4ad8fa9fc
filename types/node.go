// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package types is the type-system core: structural interning of type
// nodes, union-find unification, polymorphic binder discipline, and
// trait-bound solving. Every node is owned by a TypeTable arena; callers
// only ever hold non-owning Handles into it.
package types

// Kind tags every interned node with its concrete shape.
type Kind int

const (
	KindPrimitive Kind = iota
	KindTuple
	KindFn
	KindTypeVar
	KindUnknown
	KindTrait
	KindTraitInstance
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "Primitive"
	case KindTuple:
		return "Tuple"
	case KindFn:
		return "Fn"
	case KindTypeVar:
		return "TypeVar"
	case KindUnknown:
		return "Unknown"
	case KindTrait:
		return "Trait"
	case KindTraitInstance:
		return "TraitInstance"
	default:
		return "?"
	}
}

// Node is the common interface implemented by every interned entity:
// identity, representative pointer, and structural hash/equality hooks.
// External code should not need to implement Node; the concrete kinds
// below are the only inhabitants.
type Node interface {
	Kind() Kind
	base() *nodeBase
}

// nodeBase is the Unifiable substrate shared by every node kind: the
// union-find representative, the forall-binder list this node
// introduces (only ever non-empty on composite nodes), and the table
// that owns it.
type nodeBase struct {
	table *TypeTable
	// rep is nil until this node is unified; afterwards it points to
	// the canonical node for this node's equivalence class (which may
	// be this node itself).
	rep Node
	// boundVars are the TypeVars this node universally quantifies over
	// (its forall-binders). Non-empty only on composite nodes; a
	// non-empty list makes this node a polytype.
	boundVars []*TypeVarNode
	// seq is a stable per-table creation order, used only to break
	// ties when iterating for the sanity checker and pretty-printer so
	// output is deterministic.
	seq uint64
}

func (b *nodeBase) base() *nodeBase { return b }

// PrimitiveNode is a leaf type constant: int, bool, float, ...
type PrimitiveNode struct {
	nodeBase
	Tag string
}

func (n *PrimitiveNode) Kind() Kind { return KindPrimitive }

// TupleNode is an ordered product of types: (a, b, c).
type TupleNode struct {
	nodeBase
	Children []Handle
}

func (n *TupleNode) Kind() Kind { return KindTuple }

// FnNode is a function type; by convention the last parameter carries
// the continuation/return in lowered (CPS) form, but the surface
// checker treats the last element of Params as the ordinary return type.
type FnNode struct {
	nodeBase
	Params []Handle
}

func (n *FnNode) Kind() Kind { return KindFn }

// UnknownNode is a transient inference hole: it may later be resolved to
// another type by the caller (the core never resolves it on its own).
type UnknownNode struct {
	nodeBase
	ID int
}

func (n *UnknownNode) Kind() Kind { return KindUnknown }

// Handle is an opaque, non-owning reference to a node in some TypeTable.
// Handles are cheap to copy; equality after unification is representative
// pointer-equality, which is what Equal implements.
type Handle struct {
	table *TypeTable
	node  Node
}

// Table returns the TypeTable that owns this handle's node.
func (h Handle) Table() *TypeTable { return h.table }

// Node returns the underlying node. Only meaningful to inspect before
// unification; after unification, prefer Representative.
func (h Handle) Node() Node { return h.node }

// IsValid reports whether the handle references a node at all (the zero
// Handle is invalid).
func (h Handle) IsValid() bool { return h.node != nil }

// Kind reports the node kind. Panics on an invalid handle.
func (h Handle) Kind() Kind { return h.node.Kind() }

// IsUnified reports whether this handle's node has a representative
// installed yet.
func (h Handle) IsUnified() bool {
	return h.node != nil && h.node.base().rep != nil
}

// Representative returns the canonical node for this handle's
// equivalence class, or nil if the node hasn't been unified yet.
func (h Handle) Representative() Node {
	if h.node == nil {
		return nil
	}
	return h.node.base().rep
}

// RepHandle returns a Handle wrapping the representative node. Panics if
// this handle is not yet unified.
func (h Handle) RepHandle() Handle {
	rep := h.Representative()
	if rep == nil {
		panic("types: RepHandle called on a handle that has not been unified")
	}
	return Handle{h.table, rep}
}

// Equal compares two handles by representative identity. Two handles
// that are not both unified are never equal.
func (h Handle) Equal(other Handle) bool {
	a, b := h.Representative(), other.Representative()
	if a == nil || b == nil {
		return false
	}
	return a == b
}

// BoundVars returns the forall-binders h quantifies over, in binder
// order — empty for a monotype. Instantiate's substitution argument
// must cover exactly this set; callers that generalize a value into a
// reusable scheme (the check package's let-polymorphism) use this to
// build that substitution rather than track binders themselves.
func (h Handle) BoundVars() []Handle {
	if h.node == nil {
		return nil
	}
	vars := h.node.base().boundVars
	if len(vars) == 0 {
		return nil
	}
	out := make([]Handle, len(vars))
	for i, v := range vars {
		out[i] = handleOf(h.table, v)
	}
	return out
}

// IsPolymorphic reports whether h has at least one forall-binder.
func (h Handle) IsPolymorphic() bool { return len(h.BoundVars()) > 0 }

func handleOf(t *TypeTable, n Node) Handle { return Handle{t, n} }
