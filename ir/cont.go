package ir

import (
	"fmt"
	"strings"

	"github.com/impala-lang/impala/types"
)

// Param is one formal parameter of a Continuation.
type Param struct {
	Name string
	Typ  types.Handle
}

// LetBinding names the result of one primop so later instructions (in
// the same Continuation) can refer to it by Ref.
type LetBinding struct {
	Name string
	Op   Value
}

// Terminator is the single instruction that ends a Continuation.
// Every Continuation has exactly one, chosen at construction time and
// never mutated afterward.
type Terminator interface {
	termNode()
	String() string
}

// Return hands Value back to the Continuation's caller — the
// lowering of a function body's final result.
type Return struct {
	Value Value
}

func (*Return) termNode()      {}
func (t *Return) String() string { return "return " + t.Value.String() }

// Branch dispatches to Then or Else depending on Cond, matching the
// lowering of both `if` and a Match's sequence of arm tests. Neither
// target takes arguments: arm bodies close over whatever was already
// bound in the branching Continuation.
type Branch struct {
	Cond       Value
	Then, Else *Continuation
}

func (*Branch) termNode() {}
func (t *Branch) String() string {
	return fmt.Sprintf("branch %s -> %%%s, %%%s", t.Cond, t.Then.Name, t.Else.Name)
}

// TailCall applies Callee to Args and continues at Next, which must
// take exactly one Param — the call's result. lowerCall always sets
// Next; Next is nil only when Callee is a ContRef and the TailCall is
// an unconditional jump to a branch or join Continuation (see
// successors).
type TailCall struct {
	Callee Value
	Args   []Value
	Next   *Continuation
}

func (*TailCall) termNode() {}
func (t *TailCall) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	call := fmt.Sprintf("%s(%s)", t.Callee, strings.Join(args, ", "))
	if t.Next == nil {
		return "tail " + call
	}
	return fmt.Sprintf("let %%r = %s in %%%s(%%r)", call, t.Next.Name)
}

// Continuation is a basic block: a name, its formal parameters, a
// straight-line sequence of Let bindings, and the Terminator that
// hands control to whatever comes next (another Continuation, or the
// caller). This is Thorin's "everything is a continuation" shape
// flattened to the subset Impala's control flow (if/match/call) needs.
type Continuation struct {
	Name   string
	Params []*Param
	Lets   []*LetBinding
	Term   Terminator
}

func (c *Continuation) String() string {
	var b strings.Builder
	params := make([]string, len(c.Params))
	for i, p := range c.Params {
		params[i] = p.Name
	}
	fmt.Fprintf(&b, "%%%s(%s):\n", c.Name, strings.Join(params, ", "))
	for _, l := range c.Lets {
		fmt.Fprintf(&b, "  %%%s = %s\n", l.Name, l.Op)
	}
	term := "<no terminator>"
	if c.Term != nil {
		term = c.Term.String()
	}
	fmt.Fprintf(&b, "  %s\n", term)
	return b.String()
}

// successors lists the Continuations Term may hand control to, used
// to build the call graph World.Graph walks for dominator analysis. A
// TailCall has two possible successor edges: Callee itself, when it
// names another Continuation directly (the encoding lowerIf/lowerMatch
// use for an unconditional jump to a branch or join point), and Next,
// the continuation that receives the call's result when Callee is an
// ordinary function value.
func (c *Continuation) successors() []*Continuation {
	switch t := c.Term.(type) {
	case *Branch:
		return []*Continuation{t.Then, t.Else}
	case *TailCall:
		var succs []*Continuation
		if ref, ok := t.Callee.(*ContRef); ok {
			succs = append(succs, ref.Cont)
		}
		if t.Next != nil {
			succs = append(succs, t.Next)
		}
		return succs
	}
	return nil
}
