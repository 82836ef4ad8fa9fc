// The MIT License (MIT)
//
// Copyright (c) 2019 West Damron
// Portions Copyright (c) 2017 Julian Jensen jjdanois@gmail.com
// Portions Copyright (c) 2013 The Go Authors
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

package util

import (
	"sort"
)

func (g Graph) Transpose() Graph {
	t := make(Graph, len(g))
	for pred, succs := range g {
		for _, succ := range succs {
			t[succ] = append(t[succ], pred)
		}
	}
	return t
}

func (g Graph) Compact() {
	for id, dupes := range g {
		switch len(dupes) {
		case 0, 1:
			continue
		case 2:
			if dupes[0] > dupes[1] {
				dupes[0], dupes[1] = dupes[1], dupes[0]
			}
			continue
		}
		sort.Ints(dupes)
		lastId, flat := -1, dupes[:0]
		for _, id := range dupes {
			if lastId != id {
				flat = append(flat, id)
			}
		}
		g[id] = flat[:len(flat):len(flat)]
	}
}

func (g Graph) PostOrder(entry int, reverse bool) []int {
	if len(g) == 0 {
		return nil
	}
	if len(g) == 1 {
		return []int{0}
	}
	order := make([]int, len(g))
	if len(g) <= 64 {
		g.postOrderSmall(entry, order, 0, 0)
	} else {
		g.postOrderLarge(entry, order, make([]bool, len(g)), 0)
	}
	if reverse {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}
	return order
}

func (g Graph) postOrderLarge(curr int, order []int, seen []bool, i int) int {
	if seen[curr] {
		return i
	}
	seen[curr] = true
	for _, succ := range g[curr] {
		if !seen[succ] {
			seen[succ] = true
			i = g.postOrderLarge(succ, order, seen, i)
		}
	}
	order[i] = curr
	return i + 1
}

func (g Graph) postOrderSmall(curr int, order []int, seen uint64, i int) (uint64, int) {
	if seen&(1<<uint8(curr)) != 0 {
		return seen, i
	}
	seen |= 1 << uint8(curr)
	for _, succ := range g[curr] {
		seen, i = g.postOrderSmall(succ, order, seen, i)
	}
	order[i] = curr
	return seen, i + 1
}

// A Simple, Fast Dominance Algorithm: https://www.cs.rice.edu/~keith/Embed/dom.pdf
func (g Graph) TransposedImmediateDominators(transposed Graph, entry int) []int {
	type info struct {
		id    int
		post  int
		preds []int
		succs []int
	}
	post, infos, idoms := g.PostOrder(entry, false), make([]info, len(g)), make([]int, len(g))
	for pred, succs := range g {
		infos[pred] = info{id: pred, post: -1, preds: transposed[pred], succs: succs}
	}
	for id := range idoms {
		idoms[id] = -1
	}
	for order, id := range post {
		// All nodes must be reachable:
		if id == -1 {
			return nil
		}
		infos[id].post = order
	}
	// The 0th node is assumed to be the entry node:
	idoms[entry] = entry
	changed := true
	for changed {
		changed = false
		// Reverse preorder:
		for i := len(post) - 1; i >= 0; i-- {
			// Find dominators:
			id := post[i]
			if id == entry {
				continue // skip the entry node
			}
			info, idom := infos[id], -1
			for _, pred := range info.preds {
				if idoms[pred] == -1 {
					continue
				}
				if idom == -1 {
					idom = pred
					continue
				}
				finger1, finger2 := infos[pred], infos[idom]
				for finger1.post != finger2.post {
					for finger1.post < finger2.post {
						finger1 = infos[idoms[finger1.id]] // finger1 = idom(finger1)
					}
					for finger2.post < finger1.post {
						finger2 = infos[idoms[finger2.id]] // finger2 = idom(finger2)
					}
				}
				idom = finger1.id
			}
			if idoms[id] != idom {
				idoms[id] = idom
				changed = true
			}

		}
	}
	return idoms
}

func (transposed Graph) DominanceFrontiersFromIdoms(idoms []int) [][]int {
	if len(transposed) == 0 {
		return nil
	}
	if len(transposed) == 1 {
		return [][]int{{}}
	}
	frontiers := make([][]int, len(transposed))
	for succ, preds := range transposed {
		if len(preds) < 2 {
			continue
		}
		for _, runner := range preds {
			for runner != idoms[succ] {
				frontiers[runner] = append(frontiers[runner], succ)
				runner = idoms[runner]
			}
		}
	}
	Graph(frontiers).Compact()
	return frontiers
}

// AnalyzeDominators computes both the dominance frontiers and the
// dominator tree of g in one pass, reusing the immediate-dominators
// array between the two.
func (g Graph) AnalyzeDominators(entry int) (frontiers [][]int, tree DomTree) {
	return g.TransposedAnalyzeDominators(g.Transpose(), entry)
}

func (g Graph) TransposedAnalyzeDominators(transposed Graph, entry int) (frontiers [][]int, tree DomTree) {
	idoms := g.TransposedImmediateDominators(transposed, entry)
	frontiers = transposed.DominanceFrontiersFromIdoms(idoms)
	tree = g.DominatorTreeFromIdoms(idoms, entry)
	return
}

type DomTree struct {
	verts []domInfo
	edges [][]int
}

type domInfo struct {
	id, idom, pre, post int
}

func (g Graph) DominatorTreeFromIdoms(idoms []int, entry int) DomTree {
	t := DomTree{
		verts: make([]domInfo, len(g)),
		edges: make([][]int, len(g)),
	}
	for pred := range g {
		t.verts[pred] = domInfo{id: pred, idom: idoms[pred]}
	}
	for dominee, idom := range idoms {
		t.edges[idom] = append(t.edges[idom], dominee)
	}
	if len(g) <= 64 {
		t.numberSmall(entry, 0, 0, 0)
	} else {
		t.numberLarge(entry, 0, 0, make([]bool, len(g)))
	}
	return t
}

// ForEach visits every vertex id known to the tree, in no particular
// order.
func (t DomTree) ForEach(walk func(int)) {
	for id := range t.verts {
		walk(id)
	}
}

// Dominates reports whether a dominates b (reflexively: a dominates
// itself), via the tree's pre/post-order numbering rather than a walk.
func (t DomTree) Dominates(a, b int) bool {
	ad, bd := t.verts[a], t.verts[b]
	return ad.pre <= bd.pre && bd.post <= ad.post
}

func (t *DomTree) numberLarge(id, pre, post int, seen []bool) (int, int, []bool) {
	if seen[id] {
		return pre, post, seen
	}
	seen[id] = true
	t.verts[id].pre = pre
	pre++
	for _, child := range t.edges[id] {
		pre, post, seen = t.numberLarge(child, pre, post, seen)
	}
	t.verts[id].post = post
	post++
	return pre, post, seen
}

func (t *DomTree) numberSmall(id, pre, post int, seen uint64) (int, int, uint64) {
	if seen&(1<<uint8(id)) != 0 {
		return pre, post, seen
	}
	seen |= 1 << uint8(id)
	t.verts[id].pre = pre
	pre++
	for _, child := range t.edges[id] {
		pre, post, seen = t.numberSmall(child, pre, post, seen)
	}
	t.verts[id].post = post
	post++
	return pre, post, seen
}
