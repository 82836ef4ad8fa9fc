package ir

import (
	"fmt"

	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/token"
	"github.com/impala-lang/impala/types"
)

type lowerer struct {
	world       *World
	table       *types.TypeTable
	fieldOrder  map[string][]string // struct name -> field names in declaration order
	n           int
}

// Lower converts a fully checked ast.Program (every expression's
// Type() already set by check.CheckProgram) into a *World of
// continuations, one entry per top-level function declaration. It
// assumes the program type-checked cleanly; lowering a program with
// outstanding check errors produces an undefined World.
func Lower(prog *ast.Program, table *types.TypeTable) *World {
	l := &lowerer{
		world:      newWorld(),
		table:      table,
		fieldOrder: make(map[string][]string),
	}
	for _, decl := range prog.Decls {
		if s, ok := decl.(*ast.StructDecl); ok {
			names := make([]string, len(s.Fields))
			for i, f := range s.Fields {
				names[i] = f.Name
			}
			l.fieldOrder[s.Name] = names
		}
	}

	env := make(map[string]Value)
	var fns []*ast.FnDecl
	for _, decl := range prog.Decls {
		fn, ok := decl.(*ast.FnDecl)
		if !ok {
			continue
		}
		fns = append(fns, fn)
		entry := &Continuation{Name: fn.Name}
		l.world.add(entry)
		l.world.Funcs[fn.Name] = entry
		env[fn.Name] = &ContRef{Cont: entry, Typ: fn.Type()}
	}

	for _, fn := range fns {
		l.lowerFn(fn, l.world.Funcs[fn.Name], env)
	}
	return l.world
}

func (l *lowerer) fresh(prefix string) string {
	l.n++
	return fmt.Sprintf("%s%d", prefix, l.n)
}

// lowerFn fills in entry's Params (one per declared parameter) and
// lowers the body into it (and whatever further continuations the
// body's control flow needs), ending in a Return.
func (l *lowerer) lowerFn(d *ast.FnDecl, entry *Continuation, topEnv map[string]Value) {
	fnType, _ := d.Type().Node().(*types.FnNode)
	local := make(map[string]Value, len(topEnv)+len(d.Params))
	for k, v := range topEnv {
		local[k] = v
	}
	for i, p := range d.Params {
		var pt types.Handle
		if fnType != nil && i < len(fnType.Params) {
			pt = fnType.Params[i]
		}
		param := &Param{Name: p.Name, Typ: pt}
		entry.Params = append(entry.Params, param)
		local[p.Name] = &Ref{Name: p.Name, Typ: pt}
	}

	val, cur := l.lowerExpr(d.Body, entry, local)
	cur.Term = &Return{Value: val}
}

// bind appends a Let binding for op to cont and returns a Ref to it.
func (l *lowerer) bind(cont *Continuation, prefix string, op Value) Value {
	name := l.fresh(prefix)
	cont.Lets = append(cont.Lets, &LetBinding{Name: name, Op: op})
	return &Ref{Name: name, Typ: op.Type()}
}

// lowerExpr lowers e into cont (appending Let bindings as needed) and
// returns the Value standing for its result, along with the
// Continuation subsequent instructions must be appended to — which
// differs from cont whenever e itself branches (If, Match), since
// control only rejoins a shared continuation once every branch has
// jumped to it.
func (l *lowerer) lowerExpr(e ast.Expr, cont *Continuation, env map[string]Value) (Value, *Continuation) {
	switch ex := e.(type) {
	case *ast.Literal:
		return l.lowerLiteral(ex), cont

	case *ast.Var:
		if v, ok := env[ex.Name]; ok {
			return v, cont
		}
		// resolve already guarantees every Var is bound; an unbound
		// name here means lowering ran ahead of resolve/check.
		return &Ref{Name: ex.Name, Typ: ex.Type()}, cont

	case *ast.BinOp:
		lv, cont := l.lowerExpr(ex.Left, cont, env)
		rv, cont := l.lowerExpr(ex.Right, cont, env)
		return l.bind(cont, "t", &BinOp{Op: ex.Op, L: lv, R: rv, Typ: ex.Type()}), cont

	case *ast.UnaryOp:
		v, cont := l.lowerExpr(ex.Operand, cont, env)
		return l.bind(cont, "t", &UnOp{Op: ex.Op, V: v, Typ: ex.Type()}), cont

	case *ast.TupleLit:
		elems := make([]Value, len(ex.Elems))
		for i, e := range ex.Elems {
			elems[i], cont = l.lowerExpr(e, cont, env)
		}
		return l.bind(cont, "t", &Tuple{Elems: elems, Typ: ex.Type()}), cont

	case *ast.StructLit:
		order := l.fieldOrder[ex.StructName]
		byName := make(map[string]Value, len(ex.Fields))
		for _, f := range ex.Fields {
			v, c := l.lowerExpr(f.Value, cont, env)
			cont = c
			byName[f.Name] = v
		}
		fields := make([]Value, len(order))
		for i, name := range order {
			fields[i] = byName[name]
		}
		return l.bind(cont, "t", &StructNew{StructName: ex.StructName, Fields: fields, Typ: ex.Type()}), cont

	case *ast.FieldAccess:
		v, cont := l.lowerExpr(ex.Value, cont, env)
		idx := l.fieldIndexOf(v.Type(), ex.Field)
		return l.bind(cont, "t", &Proj{V: v, Index: idx, Typ: ex.Type()}), cont

	case *ast.Call:
		callee, cont := l.lowerExpr(ex.Func, cont, env)
		args := make([]Value, len(ex.Args))
		for i, a := range ex.Args {
			args[i], cont = l.lowerExpr(a, cont, env)
		}
		return l.lowerCall(callee, args, ex.Type(), cont)

	case *ast.If:
		return l.lowerIf(ex, cont, env)

	case *ast.Block:
		local := env
		copied := false
		for _, stmt := range ex.Stmts {
			var v Value
			v, cont = l.lowerExpr(stmt.Value, cont, local)
			if !copied {
				local = make(map[string]Value, len(env)+len(ex.Stmts))
				for k, v := range env {
					local[k] = v
				}
				copied = true
			}
			local[stmt.Name] = v
		}
		return l.lowerExpr(ex.Result, cont, local)

	case *ast.Match:
		return l.lowerMatch(ex, cont, env)

	default:
		panic(fmt.Sprintf("ir: unhandled expression %T", e))
	}
}

func (l *lowerer) lowerLiteral(lit *ast.Literal) Value {
	switch lit.LitKind {
	case ast.IntLiteral:
		return &ConstInt{Text: lit.Text, Typ: lit.Type()}
	case ast.FloatLiteral:
		return &ConstFloat{Text: lit.Text, Typ: lit.Type()}
	case ast.StringLiteral:
		return &ConstString{Text: lit.Text, Typ: lit.Type()}
	case ast.BoolLiteral:
		return &ConstBool{B: lit.Text == "true", Typ: lit.Type()}
	default:
		panic("ir: unhandled literal kind")
	}
}

// fieldIndexOf finds field's declaration-order index among the struct
// whose lowered tuple type is recvType. Since types has no nominal
// record kind (structs lower to plain TupleNodes; see
// check/typeexpr.go's structType), lowering recovers the struct's
// identity by matching recvType's arity against every known struct's
// field count — the same name-and-arity heuristic check.inferFieldAccess
// uses at type-check time, applied here against the struct name table
// lowering built from ast.StructDecls directly.
func (l *lowerer) fieldIndexOf(recvType types.Handle, field string) int {
	tup, ok := recvType.Node().(*types.TupleNode)
	if !ok {
		return 0
	}
	for _, order := range l.fieldOrder {
		if len(order) != len(tup.Children) {
			continue
		}
		for i, name := range order {
			if name == field {
				return i
			}
		}
	}
	return 0
}

// lowerCall terminates cont with a TailCall to callee. If cont already
// sits at the very end of its enclosing function body this would
// ideally be emitted as a genuine tail call (Next == nil); lowerExpr
// always has more to do with the result (binding it, branching on it,
// or returning it), so it introduces a fresh join Continuation that
// receives the call's result as its sole parameter, and returns a Ref
// to that parameter as the Call's Value — every subsequent instruction
// is appended to the join, not to cont.
func (l *lowerer) lowerCall(callee Value, args []Value, resultType types.Handle, cont *Continuation) (Value, *Continuation) {
	join := &Continuation{Name: l.fresh("k"), Params: []*Param{{Name: l.fresh("r"), Typ: resultType}}}
	l.world.add(join)
	cont.Term = &TailCall{Callee: callee, Args: args, Next: join}
	return &Ref{Name: join.Params[0].Name, Typ: resultType}, join
}

func (l *lowerer) lowerIf(ex *ast.If, cont *Continuation, env map[string]Value) (Value, *Continuation) {
	cond, cont := l.lowerExpr(ex.Cond, cont, env)

	join := &Continuation{Name: l.fresh("join"), Params: []*Param{{Name: l.fresh("v"), Typ: ex.Type()}}}

	thenCont := &Continuation{Name: l.fresh("then")}
	l.world.add(thenCont)
	thenVal, thenEnd := l.lowerExpr(ex.Then, thenCont, env)
	thenEnd.Term = &TailCall{Callee: &ContRef{Cont: join}, Args: []Value{thenVal}}

	elseCont := &Continuation{Name: l.fresh("else")}
	l.world.add(elseCont)
	elseVal, elseEnd := l.lowerExpr(ex.Else, elseCont, env)
	elseEnd.Term = &TailCall{Callee: &ContRef{Cont: join}, Args: []Value{elseVal}}

	l.world.add(join)
	cont.Term = &Branch{Cond: cond, Then: thenCont, Else: elseCont}
	return &Ref{Name: join.Params[0].Name, Typ: ex.Type()}, join
}

// lowerMatch lowers a sequence of match arms into a chain of test
// Continuations, one per arm, falling through to the next arm's test
// on a pattern mismatch. The final arm is never guarded by a test — it
// is always reached structurally, the same trust-the-last-arm stance
// check/infer.go takes by not verifying match exhaustiveness (see
// DESIGN.md).
func (l *lowerer) lowerMatch(ex *ast.Match, cont *Continuation, env map[string]Value) (Value, *Continuation) {
	scrut, cont := l.lowerExpr(ex.Value, cont, env)

	join := &Continuation{Name: l.fresh("join"), Params: []*Param{{Name: l.fresh("v"), Typ: ex.Type()}}}

	cur := cont
	for i, arm := range ex.Cases {
		last := i == len(ex.Cases)-1
		armCont := &Continuation{Name: l.fresh("arm")}
		l.world.add(armCont)
		armEnv := l.bindPattern(arm.Pattern, scrut, armCont, env)

		if last {
			cur.Term = &TailCall{Callee: &ContRef{Cont: armCont}}
			v, end := l.lowerExpr(arm.Body, armCont, armEnv)
			end.Term = &TailCall{Callee: &ContRef{Cont: join}, Args: []Value{v}}
			break
		}

		test := l.patternTest(arm.Pattern, scrut, cur)
		nextCont := &Continuation{Name: l.fresh("arm")}
		l.world.add(nextCont)
		cur.Term = &Branch{Cond: test, Then: armCont, Else: nextCont}
		v, end := l.lowerExpr(arm.Body, armCont, armEnv)
		end.Term = &TailCall{Callee: &ContRef{Cont: join}, Args: []Value{v}}
		cur = nextCont
	}

	l.world.add(join)
	return &Ref{Name: join.Params[0].Name, Typ: ex.Type()}, join
}

// bindPattern extends env with every name pat binds, projecting tuple
// elements out of scrut as needed. It never emits a test — that is
// patternTest's job — so it is also used for the unguarded final arm.
func (l *lowerer) bindPattern(pat ast.Pattern, scrut Value, cont *Continuation, env map[string]Value) map[string]Value {
	local := make(map[string]Value, len(env)+1)
	for k, v := range env {
		local[k] = v
	}
	l.bindPatternInto(pat, scrut, cont, local)
	return local
}

func (l *lowerer) bindPatternInto(pat ast.Pattern, scrut Value, cont *Continuation, env map[string]Value) {
	switch p := pat.(type) {
	case *ast.VarPattern:
		env[p.Name] = scrut
	case *ast.WildcardPattern, *ast.LiteralPattern:
		// binds nothing
	case *ast.TuplePattern:
		for i, elem := range p.Elems {
			proj := l.bind(cont, "p", &Proj{V: scrut, Index: i, Typ: elementType(scrut.Type(), i)})
			l.bindPatternInto(elem, proj, cont, env)
		}
	}
}

// patternTest builds the boolean Value testing whether scrut matches
// pat, combining a tuple pattern's per-element literal tests with AND.
// A pattern with no literal anywhere in it (pure bindings) always
// matches; patternTest is only ever called for a non-final arm, so
// that case returns a trivially-true constant rather than nil, keeping
// lowerMatch's Branch shape uniform.
func (l *lowerer) patternTest(pat ast.Pattern, scrut Value, cont *Continuation) Value {
	switch p := pat.(type) {
	case *ast.LiteralPattern:
		lit := l.lowerLiteral(p.Lit)
		return l.bind(cont, "t", &BinOp{Op: token.EQ, L: scrut, R: lit, Typ: p.Lit.Type().Table().TypeBool()})
	case *ast.TuplePattern:
		var combined Value
		for i, elem := range p.Elems {
			proj := l.bind(cont, "p", &Proj{V: scrut, Index: i, Typ: elementType(scrut.Type(), i)})
			sub := l.patternTest(elem, proj, cont)
			if sub == nil {
				continue
			}
			if combined == nil {
				combined = sub
				continue
			}
			combined = l.bind(cont, "t", &BinOp{Op: token.AND, L: combined, R: sub, Typ: combined.Type()})
		}
		if combined == nil {
			return &ConstBool{B: true}
		}
		return combined
	default:
		return &ConstBool{B: true}
	}
}

func elementType(tupleType types.Handle, index int) types.Handle {
	tup, ok := tupleType.Node().(*types.TupleNode)
	if !ok || index >= len(tup.Children) {
		return types.Handle{}
	}
	return tup.Children[index]
}
