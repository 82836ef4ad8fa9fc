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

package types

import (
	"strconv"
	"strings"
	"sync"
)

var printerPool = sync.Pool{
	New: func() interface{} {
		return &typePrinter{names: make(map[*TypeVarNode]string, 16)}
	},
}

type typePrinter struct {
	sb     strings.Builder
	names  map[*TypeVarNode]string
	letter int
}

func (p *typePrinter) release() {
	for k := range p.names {
		delete(p.names, k)
	}
	p.letter = 0
	p.sb.Reset()
	printerPool.Put(p)
}

func (p *typePrinter) nameFor(v *TypeVarNode) string {
	if n, ok := p.names[v]; ok {
		return n
	}
	n := letterName(p.letter)
	p.letter++
	p.names[v] = n
	return n
}

func letterName(i int) string {
	if i < 26 {
		return string(byte('A' + i))
	}
	return string(byte('A'+i%26)) + strconv.Itoa(i/26)
}

// ToString renders h in a canonical form: primitives by name,
// tuples as "(a, b, c)", function types as "fn<bound...>(params...)"
// with trait bounds spelled "V: T1 + T2" in binder position, and
// free (unbound) variables as "?<id>". Two representative-equal
// handles always render identically, and vice versa for closed types.
func (t *TypeTable) ToString(h Handle) string {
	p := printerPool.Get().(*typePrinter)
	defer p.release()
	writeNode(p, h.node)
	return p.sb.String()
}

func writeNode(p *typePrinter, n Node) {
	switch x := n.(type) {
	case *PrimitiveNode:
		p.sb.WriteString(x.Tag)
	case *UnknownNode:
		p.sb.WriteString("?unknown")
		p.sb.WriteString(strconv.Itoa(x.ID))
	case *TypeVarNode:
		if x.BoundAt == nil {
			p.sb.WriteString("?")
			p.sb.WriteString(strconv.Itoa(x.ID))
			return
		}
		p.sb.WriteString(p.nameFor(x))
	case *TupleNode:
		p.sb.WriteByte('(')
		for i, c := range x.Children {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			writeNode(p, c.node)
		}
		p.sb.WriteByte(')')
	case *FnNode:
		p.sb.WriteString("fn")
		writeBinders(p, x.boundVars)
		p.sb.WriteByte('(')
		for i, param := range x.Params {
			if i > 0 {
				p.sb.WriteString(", ")
			}
			writeNode(p, param.node)
		}
		p.sb.WriteByte(')')
	case *TraitNode:
		p.sb.WriteString(x.Name)
	case *TraitInstanceNode:
		if x.Trait != nil {
			p.sb.WriteString(x.Trait.Name)
		}
		if len(x.Actuals) > 0 {
			p.sb.WriteByte('<')
			for i, a := range x.Actuals {
				if i > 0 {
					p.sb.WriteString(", ")
				}
				writeNode(p, a.node)
			}
			p.sb.WriteByte('>')
		}
	default:
		p.sb.WriteString("?")
	}
}

func writeBinders(p *typePrinter, vars []*TypeVarNode) {
	if len(vars) == 0 {
		return
	}
	p.sb.WriteByte('<')
	for i, v := range vars {
		if i > 0 {
			p.sb.WriteString(", ")
		}
		p.sb.WriteString(p.nameFor(v))
		if len(v.Bounds) > 0 {
			p.sb.WriteString(": ")
			for j, b := range v.Bounds {
				if j > 0 {
					p.sb.WriteString(" + ")
				}
				writeNode(p, b.node)
			}
		}
	}
	p.sb.WriteByte('>')
}
