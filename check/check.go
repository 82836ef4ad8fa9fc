package check

import (
	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/resolve"
	"github.com/impala-lang/impala/types"
)

// Checker holds everything one program's type-check pass threads
// through: the arena every type is interned into, the union-find
// substitution over its metavariables, the nominal declaration
// registry, and the accumulated diagnostics.
type Checker struct {
	table    *types.TypeTable
	subst    *Subst
	registry *Registry
	errors   []*Error
}

func (c *Checker) errorf(span source.Span, format string, args ...interface{}) {
	c.errors = append(c.errors, errorf(span, format, args...))
}

// CheckProgram type-checks every declaration in prog against the
// scope and dependency groups resolve.ResolveProgram already computed,
// generalizing each group's value declarations into reusable schemes
// in dependency order so a later group may call an earlier one
// polymorphically. It returns the table every resulting types.Handle
// is interned in, alongside every diagnostic raised along the way.
func CheckProgram(prog *ast.Program, res *resolve.Result) (*types.TypeTable, []*Error) {
	table := types.NewTypeTable()
	c := &Checker{table: table, subst: NewSubst(table), registry: newRegistry()}

	for _, decl := range prog.Decls {
		if err := c.registry.register(decl, table); err != nil {
			c.errorf(decl.Span(), "%s", err)
		}
	}

	topEnv := NewEnv(nil)
	for _, group := range res.Groups {
		c.checkGroup(group, topEnv)
	}

	for _, decl := range prog.Decls {
		impl, ok := decl.(*ast.ImplDecl)
		if !ok {
			continue
		}
		c.checkImpl(impl, topEnv)
	}

	return table, c.errors
}

func declName(decl ast.Decl) string {
	switch d := decl.(type) {
	case *ast.LetDecl:
		return d.Name
	case *ast.FnDecl:
		return d.Name
	default:
		return ""
	}
}

// checkGroup type-checks one mutually-recursive group of top-level
// let/fn declarations as a unit: every member is pre-bound to a fresh
// metavariable so the others may call it before its own body has been
// walked, the whole group's bodies are inferred against that shared
// environment, and only once every member unifies cleanly is each
// one generalized into a scheme and published into topEnv.
func (c *Checker) checkGroup(group []ast.Decl, topEnv *Env) {
	groupEnv := NewEnv(topEnv)
	placeholders := make([]types.Handle, len(group))
	for i, decl := range group {
		ph := c.table.Unknown()
		placeholders[i] = ph
		groupEnv.Declare(declName(decl), ph)
	}

	for i, decl := range group {
		var inferred types.Handle
		switch d := decl.(type) {
		case *ast.LetDecl:
			inferred = c.infer(d.Value, groupEnv)
			if d.Ann != nil {
				ann, err := c.resolveTypeExpr(d.Ann, nil)
				if err != nil {
					c.errorf(d.Span(), "%s", err)
				} else if err := c.subst.Unify(inferred, ann); err != nil {
					c.errorf(d.Span(), "%s", err)
				}
			}
		case *ast.FnDecl:
			h, err := c.inferFnDecl(d, groupEnv)
			if err != nil {
				c.errorf(d.Span(), "%s", err)
				h = c.table.Unknown()
			}
			inferred = h
		}
		if err := c.subst.Unify(inferred, placeholders[i]); err != nil {
			c.errorf(decl.Span(), "%s", err)
		}
	}

	for i, decl := range group {
		scheme, err := c.generalize(placeholders[i])
		if err != nil {
			c.errorf(decl.Span(), "%s", err)
			continue
		}
		topEnv.Declare(declName(decl), scheme)
		if setter, ok := decl.(interface{ SetType(types.Handle) }); ok {
			setter.SetType(scheme)
		}
	}
}

// inferFnDecl checks a top-level (or impl-member) function declaration
// with its own explicit generic parameters: each declared type
// parameter becomes a rigid types.TypeVar for the duration of the
// body check (see typeexpr.go's makeTypeParamVar), so the body may not
// silently specialize it to whatever its first use demands.
func (c *Checker) inferFnDecl(d *ast.FnDecl, env *Env) (types.Handle, error) {
	tpScope := make(typeScope, len(d.TypeParams))
	rigidVars := make([]types.Handle, len(d.TypeParams))
	for i, tp := range d.TypeParams {
		bv, err := c.makeTypeParamVar(tp)
		if err != nil {
			return types.Handle{}, err
		}
		tpScope[tp.Name] = bv
		rigidVars[i] = bv
	}

	child := NewEnv(env)
	paramTypes := make([]types.Handle, len(d.Params))
	for i, p := range d.Params {
		h, err := c.resolveTypeExpr(p.Ann, tpScope)
		if err != nil {
			c.errorf(p.Span(), "%s", err)
			h = c.table.Unknown()
		}
		paramTypes[i] = h
		child.Declare(p.Name, h)
	}

	bodyType := c.infer(d.Body, child)
	if d.RetAnn != nil {
		ret, err := c.resolveTypeExpr(d.RetAnn, tpScope)
		if err != nil {
			c.errorf(d.Span(), "%s", err)
		} else if err := c.subst.Unify(bodyType, ret); err != nil {
			c.errorf(d.Span(), "return type mismatch: %s", err)
		}
	}

	raw, err := c.table.FnType(append(append([]types.Handle{}, paramTypes...), bodyType))
	if err != nil {
		return types.Handle{}, err
	}
	for _, bv := range rigidVars {
		if err := c.table.AddBoundVar(raw, bv); err != nil {
			return types.Handle{}, err
		}
	}
	return c.table.Unify(raw)
}

// checkImpl type-checks every method body of one impl block against
// topEnv the same as any other function: only a method's own type
// parameters are in scope (and rigid). The impl's own type parameters
// (e.g. `impl<A: Ord> ...`) are not put in scope here.
func (c *Checker) checkImpl(impl *ast.ImplDecl, topEnv *Env) {
	for _, m := range impl.Methods {
		h, err := c.inferFnDecl(m, topEnv)
		if err != nil {
			c.errorf(m.Span(), "%s", err)
			continue
		}
		m.SetType(h)
	}
}

// generalize closes off a group member's inferred (and by now fully
// unified) type into a reusable scheme: every metavariable still free
// in it becomes a fresh forall-bound TypeVar via AddBoundVar. A
// monotype (no remaining free metavariables) is returned as Resolve
// gives it, without re-zonking — not every binding needs to be
// polymorphic.
func (c *Checker) generalize(h types.Handle) (types.Handle, error) {
	resolved := c.subst.Resolve(h)
	if !resolved.IsValid() {
		return types.Handle{}, nil
	}

	seen := make(map[int]bool)
	var frees []types.Handle
	c.collectFreeUnknowns(resolved, seen, &frees)
	if len(frees) == 0 {
		// Nothing left to bind. resolved is either already an
		// interned closed term (possibly already polymorphic, e.g. a
		// fn with its own explicit <A> parameters) or a bare
		// primitive/rigid TypeVar; either way it must be returned
		// as-is rather than re-zonked, since Zonk always rebuilds a
		// composite through table.FnType/TupleType with an empty
		// bound_vars list and would silently drop any binders
		// already attached to it.
		return resolved, nil
	}

	freshVars := make([]types.Handle, len(frees))
	for i, u := range frees {
		tv := c.table.TypeVar()
		id := u.Node().(*types.UnknownNode).ID
		c.subst.forceBind(id, tv)
		freshVars[i] = tv
	}

	raw := c.zonkOpen(resolved)
	if raw.Kind() != types.KindTuple && raw.Kind() != types.KindFn {
		// A bare, never-constrained value has nothing for AddBoundVar
		// to quantify over; fall back to its (now frozen) monomorphic
		// shape rather than fail the whole declaration.
		return c.subst.Zonk(resolved), nil
	}
	for _, tv := range freshVars {
		if err := c.table.AddBoundVar(raw, tv); err != nil {
			return types.Handle{}, err
		}
	}
	return c.table.Unify(raw)
}

// collectFreeUnknowns walks h through the substitution, collecting
// every still-unresolved Unknown reachable from it exactly once.
func (c *Checker) collectFreeUnknowns(h types.Handle, seen map[int]bool, out *[]types.Handle) {
	h = c.subst.Resolve(h)
	if !h.IsValid() {
		return
	}
	switch h.Kind() {
	case types.KindUnknown:
		id := h.Node().(*types.UnknownNode).ID
		if !seen[id] {
			seen[id] = true
			*out = append(*out, h)
		}
	case types.KindTuple:
		for _, child := range h.Node().(*types.TupleNode).Children {
			c.collectFreeUnknowns(child, seen, out)
		}
	case types.KindFn:
		for _, p := range h.Node().(*types.FnNode).Params {
			c.collectFreeUnknowns(p, seen, out)
		}
	}
}

// zonkOpen behaves like Subst.Zonk but leaves the outermost composite
// node raw (constructed, not yet table.Unify'd), so a caller can still
// call AddBoundVar on it — Unify freezes a node's structure, and
// AddBoundVar refuses to bind a variable onto an already-frozen node.
// Children are fully zonked (and may be frozen) since only the
// outermost node is ever generalized at a single call site.
func (c *Checker) zonkOpen(h types.Handle) types.Handle {
	h = c.subst.Resolve(h)
	switch h.Kind() {
	case types.KindTuple:
		children := h.Node().(*types.TupleNode).Children
		zonked := make([]types.Handle, len(children))
		for i, child := range children {
			zonked[i] = c.subst.Zonk(child)
		}
		built, err := c.table.TupleType(zonked)
		if err != nil {
			panic(err)
		}
		return built
	case types.KindFn:
		params := h.Node().(*types.FnNode).Params
		zonked := make([]types.Handle, len(params))
		for i, p := range params {
			zonked[i] = c.subst.Zonk(p)
		}
		built, err := c.table.FnType(zonked)
		if err != nil {
			panic(err)
		}
		return built
	default:
		return h
	}
}
