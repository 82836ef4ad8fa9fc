package check

import (
	"fmt"

	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/types"
)

// typeScope maps a generic function's or impl's own type-parameter
// names to the handles standing in for them while resolving a surface
// TypeExpr: rigid types.TypeVar handles while checking a function
// body, or fresh types.Unknown metavariables while pattern-matching an
// impl against a trait obligation (see trait_solve.go).
type typeScope map[string]types.Handle

// resolveTypeExpr lowers a surface type annotation into a types.Handle.
// A nil TypeExpr (an omitted annotation) becomes a fresh Unknown for
// inference to narrow down.
func (c *Checker) resolveTypeExpr(te ast.TypeExpr, scope typeScope) (types.Handle, error) {
	switch t := te.(type) {
	case nil:
		return c.table.Unknown(), nil
	case *ast.TypeName:
		if h, ok := scope[t.Name]; ok {
			return h, nil
		}
		switch t.Name {
		case "int", "bool", "float", "string":
			return c.table.TypePrimitive(t.Name), nil
		}
		if _, ok := c.registry.Structs[t.Name]; ok {
			return c.structType(t.Name, nil, scope)
		}
		return types.Handle{}, fmt.Errorf("undefined type %q", t.Name)
	case *ast.TypeApp:
		if _, ok := c.registry.Structs[t.Name]; ok {
			return c.structType(t.Name, t.Args, scope)
		}
		return types.Handle{}, fmt.Errorf("undefined generic type %q", t.Name)
	case *ast.TypeFn:
		params := make([]types.Handle, 0, len(t.Params)+1)
		for _, p := range t.Params {
			h, err := c.resolveTypeExpr(p, scope)
			if err != nil {
				return types.Handle{}, err
			}
			params = append(params, h)
		}
		ret, err := c.resolveTypeExpr(t.Ret, scope)
		if err != nil {
			return types.Handle{}, err
		}
		params = append(params, ret)
		built, err := c.table.FnType(params)
		if err != nil {
			return types.Handle{}, err
		}
		return c.table.Unify(built)
	case *ast.TypeTuple:
		elems := make([]types.Handle, len(t.Elems))
		for i, e := range t.Elems {
			h, err := c.resolveTypeExpr(e, scope)
			if err != nil {
				return types.Handle{}, err
			}
			elems[i] = h
		}
		built, err := c.table.TupleType(elems)
		if err != nil {
			return types.Handle{}, err
		}
		return c.table.Unify(built)
	default:
		return types.Handle{}, fmt.Errorf("check: unhandled type expression %T", te)
	}
}

// structType lowers a (possibly generic) struct reference into a
// TupleNode over its fields, in declaration order, with the struct's
// own type parameters substituted by args (or a fresh Unknown per
// omitted trailing parameter).
func (c *Checker) structType(name string, args []ast.TypeExpr, scope typeScope) (types.Handle, error) {
	info := c.registry.Structs[name]
	local := make(typeScope, len(info.Decl.TypeParams))
	for i, tp := range info.Decl.TypeParams {
		if i < len(args) {
			h, err := c.resolveTypeExpr(args[i], scope)
			if err != nil {
				return types.Handle{}, err
			}
			local[tp.Name] = h
		} else {
			local[tp.Name] = c.table.Unknown()
		}
	}
	fields := make([]types.Handle, len(info.Decl.Fields))
	for i, f := range info.Decl.Fields {
		h, err := c.resolveTypeExpr(f.Ann, local)
		if err != nil {
			return types.Handle{}, err
		}
		fields[i] = h
	}
	built, err := c.table.TupleType(fields)
	if err != nil {
		return types.Handle{}, err
	}
	return c.table.Unify(built)
}

// makeTypeParamVar creates the rigid types.TypeVar standing for one
// declared generic type parameter, with its trait bounds resolved to
// TraitInstance handles over that same variable. The variable must
// exist before its bounds can be built (a bound like `A: Eq` names a
// TraitInstance whose actual is A itself), so this constructs the bare
// variable first and patches its Bounds in afterward — safe only
// because nothing has unified or interned the variable yet, and
// nothing will until the enclosing signature is fully built.
func (c *Checker) makeTypeParamVar(tp ast.TypeParam) (types.Handle, error) {
	bv := c.table.TypeVarWithBounds(nil)
	var bounds []types.Handle
	for _, boundName := range tp.Bounds {
		info, ok := c.registry.Traits[boundName]
		if !ok {
			return types.Handle{}, fmt.Errorf("undefined trait %q in bound on %s", boundName, tp.Name)
		}
		if info.Arity != 1 {
			return types.Handle{}, fmt.Errorf("trait %q takes %d argument(s), used as a single-variable bound on %s", boundName, info.Arity, tp.Name)
		}
		inst, err := c.table.InstantiateTrait(info.Handle, []types.Handle{bv})
		if err != nil {
			return types.Handle{}, err
		}
		bounds = append(bounds, inst)
	}
	bv.Node().(*types.TypeVarNode).Bounds = bounds
	return bv, nil
}
