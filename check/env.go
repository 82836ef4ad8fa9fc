// Package check is the type-check walker: it infers a types.Handle for
// every ast.Expr, closes each top-level declaration's type by
// generalizing it into a polymorphic scheme, and discharges the trait
// obligations that generalization's callers incur.
package check

import "github.com/impala-lang/impala/types"

// Env is a parent-chained value environment: a name maps to the
// types.Handle it was declared with, and lookup walks up to the
// parent when a name is missing locally. Unlike resolve.Scope (which
// is immutable/persistent to support sibling-branch isolation across
// an AST), Env is plain and mutable per nested call, mirroring
// wdamron-poly's TypeEnv parent-chain shape directly: check only ever
// grows an Env downward through one call stack, never needs to hold
// onto an old branch after leaving it.
type Env struct {
	Parent *Env
	Types  map[string]types.Handle
}

// NewEnv returns a child environment of parent (nil for the root).
func NewEnv(parent *Env) *Env {
	return &Env{Parent: parent, Types: make(map[string]types.Handle)}
}

// Declare binds name to t in e, shadowing any declaration of name in
// an ancestor environment.
func (e *Env) Declare(name string, t types.Handle) { e.Types[name] = t }

// Lookup searches e and its ancestors, innermost first.
func (e *Env) Lookup(name string) (types.Handle, bool) {
	if t, ok := e.Types[name]; ok {
		return t, true
	}
	if e.Parent == nil {
		return types.Handle{}, false
	}
	return e.Parent.Lookup(name)
}
