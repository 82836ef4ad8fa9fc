package resolve

import (
	"fmt"

	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/diag"
	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/internal/util"
)

// Error is a name-resolution failure: a duplicate top-level
// declaration or a reference to a name with no binding in scope.
type Error struct {
	Span source.Span
	Msg  string
}

func (e *Error) Error() string { return fmt.Sprintf("%s: %s", e.Span, e.Msg) }

// Diagnostic converts e into the located-diagnostic form cmd/impalac
// renders.
func (e *Error) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{Severity: diag.Error, Span: e.Span, Message: e.Msg}
}

// Result is the output of resolving a whole program: the top-level
// scope (every let/fn/struct/trait name visible at the top level) and
// the value declarations grouped into strongly-connected components,
// in dependency order, so check can process each group as a unit.
type Result struct {
	TopLevel *Scope
	Groups   [][]ast.Decl
	Errors   []*Error
}

type resolver struct {
	scope  *Scope
	errors []*Error
}

func (r *resolver) errorf(span source.Span, format string, args ...interface{}) {
	r.errors = append(r.errors, &Error{Span: span, Msg: fmt.Sprintf(format, args...)})
}

// ResolveProgram builds the top-level scope for prog, checks every
// variable reference against its lexical scope (function parameters,
// block lets, match-pattern bindings), and computes the
// mutually-recursive let/fn groups implied by the top-level call
// graph, so check can process each group as a unit.
func ResolveProgram(prog *ast.Program) *Result {
	r := &resolver{scope: NewScope()}

	var values []ast.Decl
	nameIndex := make(map[string]int)
	seen := make(map[string]source.Span)

	bindTopLevel := func(name string, kind BindingKind, decl ast.Decl, span source.Span) {
		if prior, ok := seen[name]; ok {
			r.errorf(span, "%q is already declared at %s", name, prior)
			return
		}
		seen[name] = span
		r.scope = r.scope.Bind(name, &Binding{Name: name, Kind: kind, Decl: decl, Span: span})
	}

	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.LetDecl:
			nameIndex[d.Name] = len(values)
			values = append(values, d)
			bindTopLevel(d.Name, BindValue, d, d.Span())
		case *ast.FnDecl:
			nameIndex[d.Name] = len(values)
			values = append(values, d)
			bindTopLevel(d.Name, BindValue, d, d.Span())
		case *ast.StructDecl:
			bindTopLevel(d.Name, BindStruct, d, d.Span())
		case *ast.TraitDecl:
			bindTopLevel(d.Name, BindTrait, d, d.Span())
		case *ast.ImplDecl:
			// impls contribute methods, not top-level names; check
			// resolves them against the trait/type they implement.
		}
	}

	for _, decl := range values {
		r.resolveDeclBody(decl, r.scope)
	}
	for _, decl := range prog.Decls {
		if impl, ok := decl.(*ast.ImplDecl); ok {
			implScope := r.scope
			for _, tp := range impl.TypeParams {
				implScope = implScope.Bind(tp.Name, &Binding{Name: tp.Name, Kind: BindTypeParam, Span: tp.Span()})
			}
			for _, m := range impl.Methods {
				r.resolveDeclBody(m, implScope)
			}
		}
	}

	g := util.NewGraph(len(values))
	for i, decl := range values {
		body := declBody(decl)
		ast.WalkExpr(body, func(e ast.Expr) {
			v, ok := e.(*ast.Var)
			if !ok {
				return
			}
			if j, ok := nameIndex[v.Name]; ok && j != i {
				g.AddEdge(i, j)
			}
		})
	}

	// SCC returns components in topological order of the edges, i.e.
	// users before the names they use; Groups is filled back to front
	// so every group comes after the groups it depends on.
	sccIndices := g.SCC()
	groups := make([][]ast.Decl, len(sccIndices))
	for gi, members := range sccIndices {
		group := make([]ast.Decl, len(members))
		for mi, idx := range members {
			group[mi] = values[idx]
		}
		groups[len(sccIndices)-1-gi] = group
	}

	return &Result{TopLevel: r.scope, Groups: groups, Errors: r.errors}
}

func declBody(decl ast.Decl) ast.Expr {
	switch d := decl.(type) {
	case *ast.LetDecl:
		return d.Value
	case *ast.FnDecl:
		return d.Body
	default:
		return nil
	}
}

// resolveDeclBody checks a top-level or impl-member function/let body
// against its own lexical scope, layered on top of the top-level
// scope passed as base.
func (r *resolver) resolveDeclBody(decl ast.Decl, base *Scope) {
	switch d := decl.(type) {
	case *ast.LetDecl:
		if d.Value != nil {
			r.resolveExpr(d.Value, base)
		}
	case *ast.FnDecl:
		scope := base
		for _, tp := range d.TypeParams {
			scope = scope.Bind(tp.Name, &Binding{Name: tp.Name, Kind: BindTypeParam, Span: tp.Span()})
		}
		for _, p := range d.Params {
			scope = scope.Bind(p.Name, &Binding{Name: p.Name, Kind: BindValue, Span: p.Span()})
		}
		if d.Body != nil {
			r.resolveExpr(d.Body, scope)
		}
	}
}

// resolveExpr walks e, threading a fresh child scope through every
// binding construct (Func params, Block lets, Match pattern arms) so
// a name introduced in one branch never leaks into a sibling.
func (r *resolver) resolveExpr(e ast.Expr, scope *Scope) {
	switch expr := e.(type) {
	case nil:
		return
	case *ast.Literal:
	case *ast.Var:
		if _, ok := scope.Lookup(expr.Name); !ok {
			r.errorf(expr.Span(), "undefined name %q", expr.Name)
		}
	case *ast.Call:
		r.resolveExpr(expr.Func, scope)
		for _, a := range expr.Args {
			r.resolveExpr(a, scope)
		}
	case *ast.Func:
		child := scope
		for _, p := range expr.Params {
			child = child.Bind(p.Name, &Binding{Name: p.Name, Kind: BindValue, Span: p.Span()})
		}
		r.resolveExpr(expr.Body, child)
	case *ast.BinOp:
		r.resolveExpr(expr.Left, scope)
		r.resolveExpr(expr.Right, scope)
	case *ast.UnaryOp:
		r.resolveExpr(expr.Operand, scope)
	case *ast.TupleLit:
		for _, el := range expr.Elems {
			r.resolveExpr(el, scope)
		}
	case *ast.StructLit:
		if _, ok := scope.Lookup(expr.StructName); !ok {
			r.errorf(expr.Span(), "undefined struct %q", expr.StructName)
		}
		for _, f := range expr.Fields {
			r.resolveExpr(f.Value, scope)
		}
	case *ast.FieldAccess:
		r.resolveExpr(expr.Value, scope)
	case *ast.If:
		r.resolveExpr(expr.Cond, scope)
		r.resolveExpr(expr.Then, scope)
		r.resolveExpr(expr.Else, scope)
	case *ast.Block:
		child := scope
		for _, stmt := range expr.Stmts {
			if stmt.Value != nil {
				r.resolveExpr(stmt.Value, child)
			}
			child = child.Bind(stmt.Name, &Binding{Name: stmt.Name, Kind: BindValue, Decl: stmt, Span: stmt.Span()})
		}
		r.resolveExpr(expr.Result, child)
	case *ast.Match:
		r.resolveExpr(expr.Value, scope)
		for _, c := range expr.Cases {
			child := bindPattern(scope, c.Pattern)
			if c.Guard != nil {
				r.resolveExpr(c.Guard, child)
			}
			r.resolveExpr(c.Body, child)
		}
	default:
		panic(fmt.Sprintf("resolve: unhandled expression kind %T", e))
	}
}

// bindPattern returns a child of scope with every name a pattern
// introduces bound to it.
func bindPattern(scope *Scope, p ast.Pattern) *Scope {
	switch pat := p.(type) {
	case *ast.WildcardPattern, *ast.LiteralPattern:
		return scope
	case *ast.VarPattern:
		return scope.Bind(pat.Name, &Binding{Name: pat.Name, Kind: BindValue, Span: pat.Span()})
	case *ast.TuplePattern:
		for _, el := range pat.Elems {
			scope = bindPattern(scope, el)
		}
		return scope
	default:
		return scope
	}
}
