package ir

import (
	"sort"
	"strings"

	"github.com/impala-lang/impala/internal/util"
)

// World is the whole lowered program: one entry Continuation per
// top-level function declaration, plus every Continuation introduced
// while lowering a branch or match arm inside one of their bodies.
type World struct {
	Funcs map[string]*Continuation
	all   []*Continuation
}

func newWorld() *World {
	return &World{Funcs: make(map[string]*Continuation)}
}

// add registers c so it is reachable from World.Validate's dominance
// check and from String's program-wide dump, independent of whether
// it is ever also registered as a named top-level Func.
func (w *World) add(c *Continuation) *Continuation {
	w.all = append(w.all, c)
	return c
}

// graph builds the control-flow graph over every Continuation ever
// added to w, indexed by its position in w.all, for use with
// internal/util's SCC and dominance algorithms.
func (w *World) graph() (util.Graph, map[*Continuation]int) {
	index := make(map[*Continuation]int, len(w.all))
	for i, c := range w.all {
		index[c] = i
	}
	g := util.NewGraph(len(w.all))
	for i, c := range w.all {
		for _, succ := range c.successors() {
			if j, ok := index[succ]; ok {
				g.AddEdge(i, j)
			}
		}
	}
	return g, index
}

// Validate checks one structural invariant Thorin-style lowering
// relies on: every Continuation reachable from a function's entry
// point is reachable via that function's own dominator tree, i.e. no
// branch or match arm Continuation is shared between two functions
// (lowerExpr never does this, but a hand-built World might). It
// returns the set of Continuation names unreachable from any entry —
// dead blocks a later optimization pass would need to prune.
func (w *World) Validate() []string {
	g, index := w.graph()
	reachable := make([]bool, len(w.all))
	for _, entry := range w.Funcs {
		e, ok := index[entry]
		if !ok {
			continue
		}
		_, tree := g.AnalyzeDominators(e)
		tree.ForEach(func(id int) {
			if tree.Dominates(e, id) {
				reachable[id] = true
			}
		})
	}
	var dead []string
	for i, c := range w.all {
		if !reachable[i] {
			dead = append(dead, c.Name)
		}
	}
	sort.Strings(dead)
	return dead
}

// String renders every function's entry Continuation and everything
// reachable from it, functions sorted by name, for `impalac lower`'s
// text output.
func (w *World) String() string {
	names := make([]string, 0, len(w.Funcs))
	for name := range w.Funcs {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	for _, name := range names {
		entry := w.Funcs[name]
		b.WriteString("fn " + name + ":\n")
		for _, c := range w.reachableFrom(entry) {
			b.WriteString(c.String())
		}
		b.WriteString("\n")
	}
	return b.String()
}

// reachableFrom walks entry's successors in a stable order, used by
// String to print a function's whole Continuation tree without
// depending on w.all's construction order.
func (w *World) reachableFrom(entry *Continuation) []*Continuation {
	var order []*Continuation
	seen := make(map[*Continuation]bool)
	var visit func(c *Continuation)
	visit = func(c *Continuation) {
		if seen[c] {
			return
		}
		seen[c] = true
		order = append(order, c)
		for _, succ := range c.successors() {
			visit(succ)
		}
	}
	visit(entry)
	return order
}
