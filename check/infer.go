package check

import (
	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/token"
	"github.com/impala-lang/impala/types"
)

// infer synthesizes a types.Handle for e, recording it on the node via
// SetType and returning it. Every metavariable it allocates
// (types.Unknown) is narrowed down through c.subst as inference
// proceeds; the handle returned may still contain unresolved Unknowns
// until the enclosing declaration finishes and calls c.subst.Zonk.
func (c *Checker) infer(e ast.Expr, env *Env) types.Handle {
	var h types.Handle
	switch expr := e.(type) {
	case *ast.Literal:
		h = c.inferLiteral(expr)
	case *ast.Var:
		h = c.inferVar(expr, env)
	case *ast.Call:
		h = c.inferCall(expr, env)
	case *ast.Func:
		h = c.inferFunc(expr, env)
	case *ast.BinOp:
		h = c.inferBinOp(expr, env)
	case *ast.UnaryOp:
		h = c.inferUnaryOp(expr, env)
	case *ast.TupleLit:
		h = c.inferTupleLit(expr, env)
	case *ast.StructLit:
		h = c.inferStructLit(expr, env)
	case *ast.FieldAccess:
		h = c.inferFieldAccess(expr, env)
	case *ast.If:
		h = c.inferIf(expr, env)
	case *ast.Block:
		h = c.inferBlock(expr, env)
	case *ast.Match:
		h = c.inferMatch(expr, env)
	default:
		c.errorf(e.Span(), "check: unhandled expression kind %T", e)
		h = c.table.Unknown()
	}
	if setter, ok := e.(interface{ SetType(types.Handle) }); ok {
		setter.SetType(h)
	}
	return h
}

func (c *Checker) inferLiteral(lit *ast.Literal) types.Handle {
	switch lit.LitKind {
	case ast.IntLiteral:
		return c.table.TypeInt()
	case ast.FloatLiteral:
		return c.table.TypeFloat()
	case ast.StringLiteral:
		return c.table.TypeString()
	case ast.BoolLiteral:
		return c.table.TypeBool()
	default:
		c.errorf(lit.Span(), "unrecognized literal kind")
		return c.table.Unknown()
	}
}

func (c *Checker) inferVar(v *ast.Var, env *Env) types.Handle {
	scheme, ok := env.Lookup(v.Name)
	if !ok {
		c.errorf(v.Span(), "undefined name %q", v.Name)
		return c.table.Unknown()
	}
	return c.instantiateScheme(scheme, v.Span())
}

// instantiateScheme substitutes every bound variable of scheme with a
// fresh Unknown metavariable and discharges the trait obligations that
// substitution incurs immediately, at the reference site, rather than
// deferring them — an unsatisfiable bound is reported where the
// polymorphic value is used, not silently propagated to its caller's
// caller.
func (c *Checker) instantiateScheme(scheme types.Handle, span source.Span) types.Handle {
	boundVars := scheme.BoundVars()
	if len(boundVars) == 0 {
		return scheme
	}
	subst := make(map[types.Handle]types.Handle, len(boundVars))
	for _, bv := range boundVars {
		subst[bv] = c.table.Unknown()
	}
	inst, obligations, err := c.table.Instantiate(scheme, subst)
	if err != nil {
		c.errorf(span, "%s", err)
		return c.table.Unknown()
	}
	for _, ob := range obligations {
		if err := c.solveObligation(ob, span); err != nil {
			c.errors = append(c.errors, err)
		}
	}
	return inst
}

func (c *Checker) inferCall(call *ast.Call, env *Env) types.Handle {
	fnType := c.infer(call.Func, env)
	argTypes := make([]types.Handle, len(call.Args))
	for i, a := range call.Args {
		argTypes[i] = c.infer(a, env)
	}
	ret := c.table.Unknown()
	wanted, err := c.table.FnType(append(append([]types.Handle{}, argTypes...), ret))
	if err != nil {
		c.errorf(call.Span(), "%s", err)
		return c.table.Unknown()
	}
	if err := c.subst.Unify(fnType, wanted); err != nil {
		c.errorf(call.Span(), "%s", err)
		return c.table.Unknown()
	}
	return ret
}

func (c *Checker) inferFunc(fn *ast.Func, env *Env) types.Handle {
	child := NewEnv(env)
	paramTypes := make([]types.Handle, len(fn.Params))
	for i, p := range fn.Params {
		h, err := c.resolveTypeExpr(p.Ann, nil)
		if err != nil {
			c.errorf(p.Span(), "%s", err)
			h = c.table.Unknown()
		}
		paramTypes[i] = h
		child.Declare(p.Name, h)
	}
	bodyType := c.infer(fn.Body, child)
	built, err := c.table.FnType(append(append([]types.Handle{}, paramTypes...), bodyType))
	if err != nil {
		c.errorf(fn.Span(), "%s", err)
		return c.table.Unknown()
	}
	h, err := c.table.Unify(built)
	if err != nil {
		c.errorf(fn.Span(), "%s", err)
		return c.table.Unknown()
	}
	return h
}

func (c *Checker) inferBinOp(b *ast.BinOp, env *Env) types.Handle {
	lt := c.infer(b.Left, env)
	rt := c.infer(b.Right, env)
	switch b.Op {
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		if err := c.subst.Unify(lt, rt); err != nil {
			c.errorf(b.Span(), "%s", err)
			return c.table.Unknown()
		}
		return lt
	case token.EQ, token.NOT_EQ, token.LT, token.GT, token.LE, token.GE:
		if err := c.subst.Unify(lt, rt); err != nil {
			c.errorf(b.Span(), "%s", err)
		}
		return c.table.TypeBool()
	case token.AND, token.OR:
		if err := c.subst.Unify(lt, c.table.TypeBool()); err != nil {
			c.errorf(b.Left.Span(), "%s", err)
		}
		if err := c.subst.Unify(rt, c.table.TypeBool()); err != nil {
			c.errorf(b.Right.Span(), "%s", err)
		}
		return c.table.TypeBool()
	default:
		c.errorf(b.Span(), "unrecognized binary operator %s", b.Op)
		return c.table.Unknown()
	}
}

func (c *Checker) inferUnaryOp(u *ast.UnaryOp, env *Env) types.Handle {
	t := c.infer(u.Operand, env)
	switch u.Op {
	case token.BANG:
		if err := c.subst.Unify(t, c.table.TypeBool()); err != nil {
			c.errorf(u.Span(), "%s", err)
		}
		return c.table.TypeBool()
	case token.MINUS:
		return t
	default:
		c.errorf(u.Span(), "unrecognized unary operator %s", u.Op)
		return c.table.Unknown()
	}
}

func (c *Checker) inferTupleLit(tl *ast.TupleLit, env *Env) types.Handle {
	elems := make([]types.Handle, len(tl.Elems))
	for i, e := range tl.Elems {
		elems[i] = c.infer(e, env)
	}
	built, err := c.table.TupleType(elems)
	if err != nil {
		c.errorf(tl.Span(), "%s", err)
		return c.table.Unknown()
	}
	h, err := c.table.Unify(built)
	if err != nil {
		c.errorf(tl.Span(), "%s", err)
		return c.table.Unknown()
	}
	return h
}

func (c *Checker) inferStructLit(sl *ast.StructLit, env *Env) types.Handle {
	info, ok := c.registry.Structs[sl.StructName]
	if !ok {
		c.errorf(sl.Span(), "undefined struct %q", sl.StructName)
		for _, f := range sl.Fields {
			c.infer(f.Value, env)
		}
		return c.table.Unknown()
	}
	local := make(typeScope, len(info.Decl.TypeParams))
	for _, tp := range info.Decl.TypeParams {
		local[tp.Name] = c.table.Unknown()
	}
	fieldTypes := make([]types.Handle, len(info.Decl.Fields))
	for i, f := range info.Decl.Fields {
		h, err := c.resolveTypeExpr(f.Ann, local)
		if err != nil {
			c.errorf(sl.Span(), "%s", err)
			h = c.table.Unknown()
		}
		fieldTypes[i] = h
	}
	seen := make([]bool, len(info.Decl.Fields))
	for _, fi := range sl.Fields {
		idx, ok := info.FieldIndex[fi.Name]
		if !ok {
			c.errorf(sl.Span(), "struct %q has no field %q", sl.StructName, fi.Name)
			c.infer(fi.Value, env)
			continue
		}
		seen[idx] = true
		vt := c.infer(fi.Value, env)
		if err := c.subst.Unify(vt, fieldTypes[idx]); err != nil {
			c.errorf(sl.Span(), "field %q: %s", fi.Name, err)
		}
	}
	for i, f := range info.Decl.Fields {
		if !seen[i] {
			c.errorf(sl.Span(), "missing field %q in struct literal for %s", f.Name, sl.StructName)
		}
	}
	built, err := c.table.TupleType(fieldTypes)
	if err != nil {
		c.errorf(sl.Span(), "%s", err)
		return c.table.Unknown()
	}
	h, err := c.table.Unify(built)
	if err != nil {
		c.errorf(sl.Span(), "%s", err)
		return c.table.Unknown()
	}
	return h
}

// inferFieldAccess resolves p.x by finding the (hopefully unique)
// struct declaration with a field named x whose arity matches the
// value's already-known shape, then unifying the value's type with
// that struct's tuple lowering. Structs erase to plain tuples (see
// DESIGN.md), so field access has no nominal tag to dispatch on
// directly; disambiguating by field name plus arity is a deliberate,
// simpler stand-in for full row-polymorphic record inference, which
// is out of scope.
func (c *Checker) inferFieldAccess(fa *ast.FieldAccess, env *Env) types.Handle {
	vt := c.infer(fa.Value, env)
	resolved := c.subst.Resolve(vt)

	var candidate *StructInfo
	ambiguous := false
	for _, info := range c.registry.Structs {
		if _, ok := info.FieldIndex[fa.Field]; !ok {
			continue
		}
		if resolved.IsValid() && resolved.Kind() == types.KindTuple {
			if len(resolved.Node().(*types.TupleNode).Children) != len(info.Decl.Fields) {
				continue
			}
		}
		if candidate != nil {
			ambiguous = true
		}
		candidate = info
	}
	if candidate == nil {
		c.errorf(fa.Span(), "no struct with field %q", fa.Field)
		return c.table.Unknown()
	}
	if ambiguous {
		c.errorf(fa.Span(), "ambiguous field %q matches more than one struct type", fa.Field)
		return c.table.Unknown()
	}

	local := make(typeScope, len(candidate.Decl.TypeParams))
	for _, tp := range candidate.Decl.TypeParams {
		local[tp.Name] = c.table.Unknown()
	}
	fieldTypes := make([]types.Handle, len(candidate.Decl.Fields))
	for i, f := range candidate.Decl.Fields {
		h, err := c.resolveTypeExpr(f.Ann, local)
		if err != nil {
			c.errorf(fa.Span(), "%s", err)
			h = c.table.Unknown()
		}
		fieldTypes[i] = h
	}
	structType, err := c.table.TupleType(fieldTypes)
	if err != nil {
		c.errorf(fa.Span(), "%s", err)
		return c.table.Unknown()
	}
	if err := c.subst.Unify(vt, structType); err != nil {
		c.errorf(fa.Span(), "%s", err)
		return c.table.Unknown()
	}
	return fieldTypes[candidate.FieldIndex[fa.Field]]
}

func (c *Checker) inferIf(ifExpr *ast.If, env *Env) types.Handle {
	condType := c.infer(ifExpr.Cond, env)
	if err := c.subst.Unify(condType, c.table.TypeBool()); err != nil {
		c.errorf(ifExpr.Cond.Span(), "%s", err)
	}
	thenType := c.infer(ifExpr.Then, env)
	if ifExpr.Else == nil {
		return thenType
	}
	elseType := c.infer(ifExpr.Else, env)
	if err := c.subst.Unify(thenType, elseType); err != nil {
		c.errorf(ifExpr.Span(), "if and else branches disagree: %s", err)
	}
	return thenType
}

func (c *Checker) inferBlock(b *ast.Block, env *Env) types.Handle {
	child := NewEnv(env)
	for _, stmt := range b.Stmts {
		var declared types.Handle
		if stmt.Ann != nil {
			h, err := c.resolveTypeExpr(stmt.Ann, nil)
			if err != nil {
				c.errorf(stmt.Span(), "%s", err)
			} else {
				declared = h
			}
		}
		vt := c.infer(stmt.Value, child)
		if declared.IsValid() {
			if err := c.subst.Unify(vt, declared); err != nil {
				c.errorf(stmt.Span(), "%s", err)
			}
		}
		stmt.SetType(vt)
		child.Declare(stmt.Name, vt)
	}
	return c.infer(b.Result, child)
}

func (c *Checker) inferMatch(m *ast.Match, env *Env) types.Handle {
	scrutinee := c.infer(m.Value, env)
	resultType := c.table.Unknown()
	for _, cs := range m.Cases {
		child := NewEnv(env)
		c.checkPattern(cs.Pattern, scrutinee, child)
		if cs.Guard != nil {
			gt := c.infer(cs.Guard, child)
			if err := c.subst.Unify(gt, c.table.TypeBool()); err != nil {
				c.errorf(cs.Guard.Span(), "%s", err)
			}
		}
		bodyType := c.infer(cs.Body, child)
		if err := c.subst.Unify(bodyType, resultType); err != nil {
			c.errorf(cs.Body.Span(), "match arms disagree: %s", err)
		}
	}
	return resultType
}

func (c *Checker) checkPattern(p ast.Pattern, scrutinee types.Handle, env *Env) {
	switch pat := p.(type) {
	case *ast.WildcardPattern:
	case *ast.VarPattern:
		env.Declare(pat.Name, scrutinee)
	case *ast.LiteralPattern:
		lt := c.infer(pat.Lit, env)
		if err := c.subst.Unify(lt, scrutinee); err != nil {
			c.errorf(pat.Span(), "%s", err)
		}
	case *ast.TuplePattern:
		elemTypes := make([]types.Handle, len(pat.Elems))
		for i := range pat.Elems {
			elemTypes[i] = c.table.Unknown()
		}
		tup, err := c.table.TupleType(elemTypes)
		if err != nil {
			c.errorf(pat.Span(), "%s", err)
			return
		}
		if err := c.subst.Unify(tup, scrutinee); err != nil {
			c.errorf(pat.Span(), "%s", err)
			return
		}
		for i, el := range pat.Elems {
			c.checkPattern(el, elemTypes[i], env)
		}
	default:
		c.errorf(p.Span(), "check: unhandled pattern kind %T", p)
	}
}
