package check

import (
	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/types"
)

// StructInfo records a struct declaration's field layout: the order
// fields appear in is the order they're lowered into the core's
// TupleNode, since types has no dedicated nominal-record kind (see
// DESIGN.md's "structs lower to tuples" decision).
type StructInfo struct {
	Decl       *ast.StructDecl
	FieldIndex map[string]int
}

// TraitInfo records a trait declaration's canonical core handle,
// interned once (with fresh formal TypeVars) when the registry is
// built, so every bound and impl referencing the trait by name shares
// the same types.TraitNode identity.
type TraitInfo struct {
	Decl   *ast.TraitDecl
	Arity  int
	Handle types.Handle
}

// ImplInfo records one impl block with its own type parameters still
// unresolved: TraitArgsExpr is resolved fresh (with a new set of
// metavariables standing in for TypeParamNames) every time a trait
// obligation is checked against it, so two obligations probing the
// same generic impl never interfere with each other's substitution.
type ImplInfo struct {
	Decl           *ast.ImplDecl
	TraitName      string
	TypeParamNames []string
	TraitArgsExpr  []ast.TypeExpr
	Methods        map[string]*ast.FnDecl
}

// Registry is the whole-program table of nominal declarations, built
// once before any expression is type-checked so forward references
// (a function using a struct declared later in the file) resolve.
type Registry struct {
	Structs map[string]*StructInfo
	Traits  map[string]*TraitInfo
	Impls   map[string][]*ImplInfo
}

func newRegistry() *Registry {
	return &Registry{
		Structs: make(map[string]*StructInfo),
		Traits:  make(map[string]*TraitInfo),
		Impls:   make(map[string][]*ImplInfo),
	}
}

// register adds decl to the registry. table is only needed to intern a
// TraitDecl's canonical types.TraitNode; struct and impl registration
// is pure bookkeeping over the AST.
func (r *Registry) register(decl ast.Decl, table *types.TypeTable) error {
	switch d := decl.(type) {
	case *ast.StructDecl:
		idx := make(map[string]int, len(d.Fields))
		for i, f := range d.Fields {
			idx[f.Name] = i
		}
		r.Structs[d.Name] = &StructInfo{Decl: d, FieldIndex: idx}
	case *ast.TraitDecl:
		formals := make([]types.Handle, len(d.Formals))
		for i := range d.Formals {
			formals[i] = table.TypeVar()
		}
		h, err := table.Trait(d.Name, formals)
		if err != nil {
			return err
		}
		r.Traits[d.Name] = &TraitInfo{Decl: d, Arity: len(d.Formals), Handle: h}
	case *ast.ImplDecl:
		names := make([]string, len(d.TypeParams))
		for i, tp := range d.TypeParams {
			names[i] = tp.Name
		}
		methods := make(map[string]*ast.FnDecl, len(d.Methods))
		for _, m := range d.Methods {
			methods[m.Name] = m
		}
		r.Impls[d.TraitName] = append(r.Impls[d.TraitName], &ImplInfo{
			Decl:           d,
			TraitName:      d.TraitName,
			TypeParamNames: names,
			TraitArgsExpr:  d.TraitArgs,
			Methods:        methods,
		})
	}
	return nil
}
