// Package resolve is the name resolver: it builds a block-scoped
// symbol table over an ast.Program and orders top-level let/fn
// declarations into mutually-recursive groups, exactly the
// (symbol -> declaration) interface the type-check walker needs as
// its external collaborator.
package resolve

import (
	"hash/fnv"

	"github.com/benbjohnson/immutable"

	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/internal/source"
)

// BindingKind tags what kind of thing a name in scope refers to.
type BindingKind int

const (
	BindValue BindingKind = iota // a let/fn binding or function parameter
	BindTypeParam
	BindStruct
	BindTrait
)

// Binding is one entry in a Scope: a name paired with what it names.
type Binding struct {
	Name string
	Kind BindingKind
	Decl ast.Decl // nil for parameters and type parameters
	Span source.Span
}

// stringHasher hashes and compares the string keys used in every
// Scope's persistent map.
type stringHasher struct{}

func (stringHasher) Hash(value interface{}) uint32 {
	h := fnv.New32a()
	h.Write([]byte(value.(string)))
	return h.Sum32()
}

func (stringHasher) Equal(a, b interface{}) bool {
	return a.(string) == b.(string)
}

// Scope is a persistent, immutable symbol table: binding a name
// returns a new Scope sharing structure with the old one, so a
// sibling branch of the AST (an else-branch, a second match arm)
// never sees bindings introduced by another branch, and popping back
// out of a block is simply discarding the child Scope value.
type Scope struct {
	parent *Scope
	vars   *immutable.Map
}

// NewScope returns an empty root scope with no parent.
func NewScope() *Scope {
	return &Scope{vars: immutable.NewMap(stringHasher{})}
}

// Child returns a new, initially-empty scope nested under s.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, vars: immutable.NewMap(stringHasher{})}
}

// Bind returns a new scope like s but with name additionally bound to
// b, shadowing any existing binding of name in s.
func (s *Scope) Bind(name string, b *Binding) *Scope {
	return &Scope{parent: s.parent, vars: s.vars.Set(name, b)}
}

// Lookup searches s and its ancestors, innermost first, for name.
func (s *Scope) Lookup(name string) (*Binding, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars.Get(name); ok {
			return v.(*Binding), true
		}
	}
	return nil, false
}

// LocalLen returns the number of bindings introduced directly in s,
// not counting ancestors.
func (s *Scope) LocalLen() int { return s.vars.Len() }
