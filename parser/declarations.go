package parser

import (
	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/token"
)

// ParseProgram parses the whole token stream as a sequence of
// top-level declarations.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.curTokenIs(token.EOF) {
		decl := p.parseDecl()
		if decl != nil {
			prog.Decls = append(prog.Decls, decl)
		}
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		p.nextToken()
	}
	return prog
}

func (p *Parser) parseDecl() ast.Decl {
	switch p.curToken.Kind {
	case token.LET:
		return p.parseTopLevelLet()
	case token.FN:
		return p.parseFnDecl()
	case token.TRAIT:
		return p.parseTraitDecl()
	case token.IMPL:
		return p.parseImplDecl()
	case token.STRUCT:
		return p.parseStructDecl()
	default:
		p.errorf(p.curToken.Span, "expected a declaration (let, fn, trait, impl, struct), got %s", p.curToken.Kind)
		p.skipToNextDecl()
		return nil
	}
}

// skipToNextDecl discards tokens until one that can start a
// declaration, so one malformed declaration doesn't cascade into
// spurious errors for every token after it.
func (p *Parser) skipToNextDecl() {
	for !p.curTokenIs(token.EOF) {
		switch p.peekToken.Kind {
		case token.LET, token.FN, token.TRAIT, token.IMPL, token.STRUCT, token.EOF:
			return
		}
		p.nextToken()
	}
}

func (p *Parser) parseTopLevelLet() *ast.LetDecl {
	return p.parseLetStmt()
}

func (p *Parser) parseFnDecl() *ast.FnDecl {
	start := p.curToken.Span // FN
	if !p.expectPeek(token.IDENT) {
		return ast.NewFnDecl("", nil, nil, nil, nil, start)
	}
	name := p.curToken.Lexeme

	var typeParams []ast.TypeParam
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		typeParams = p.parseTypeParamList()
	}

	if !p.expectPeek(token.LPAREN) {
		return ast.NewFnDecl(name, typeParams, nil, nil, nil, start)
	}
	params := p.parseParamList()

	var retAnn ast.TypeExpr
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		retAnn = p.parseTypeExpr()
	}

	if !p.expectPeek(token.LBRACE) {
		return ast.NewFnDecl(name, typeParams, params, retAnn, nil, start)
	}
	body := p.parseBlockExpr()
	return ast.NewFnDecl(name, typeParams, params, retAnn, body, spanFrom(start, body.Span()))
}

func (p *Parser) parseTraitDecl() *ast.TraitDecl {
	start := p.curToken.Span // TRAIT
	if !p.expectPeek(token.IDENT) {
		return ast.NewTraitDecl("", nil, nil, start)
	}
	name := p.curToken.Lexeme

	var formals []string
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		p.nextToken()
		formals = append(formals, p.curToken.Lexeme)
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			formals = append(formals, p.curToken.Lexeme)
		}
		p.expectPeek(token.GT)
	}

	if !p.expectPeek(token.LBRACE) {
		return ast.NewTraitDecl(name, formals, nil, start)
	}
	p.nextToken()

	var methods []ast.FnSig
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		methods = append(methods, p.parseFnSig())
		p.nextToken()
	}
	return ast.NewTraitDecl(name, formals, methods, spanFrom(start, p.curToken.Span))
}

// parseFnSig parses a trait method signature, with an optional
// default body: `fn equals(a: Self, b: Self) -> bool;` or
// `fn equals(a: Self, b: Self) -> bool { ... }`.
func (p *Parser) parseFnSig() ast.FnSig {
	start := p.curToken.Span // FN
	if !p.expectPeek(token.IDENT) {
		return ast.NewFnSig("", nil, nil, nil, start)
	}
	name := p.curToken.Lexeme

	if !p.expectPeek(token.LPAREN) {
		return ast.NewFnSig(name, nil, nil, nil, start)
	}
	var paramTypes []ast.TypeExpr
	var params []ast.Param
	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		pname, pann := p.parseFnSigParam()
		params = append(params, ast.NewParam(pname, pann, p.curToken.Span))
		paramTypes = append(paramTypes, pann)
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			pname, pann = p.parseFnSigParam()
			params = append(params, ast.NewParam(pname, pann, p.curToken.Span))
			paramTypes = append(paramTypes, pann)
		}
	}
	p.expectPeek(token.RPAREN)

	var ret ast.TypeExpr
	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		ret = p.parseTypeExpr()
	}

	var def *ast.FnDecl
	if p.peekTokenIs(token.LBRACE) {
		p.nextToken()
		body := p.parseBlockExpr()
		def = ast.NewFnDecl(name, nil, params, ret, body, spanFrom(start, body.Span()))
	} else if p.peekTokenIs(token.SEMICOLON) {
		p.nextToken()
	}
	return ast.NewFnSig(name, paramTypes, ret, def, spanFrom(start, p.curToken.Span))
}

func (p *Parser) parseFnSigParam() (string, ast.TypeExpr) {
	name := p.curToken.Lexeme
	var ann ast.TypeExpr
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		ann = p.parseTypeExpr()
	}
	return name, ann
}

func (p *Parser) parseImplDecl() *ast.ImplDecl {
	start := p.curToken.Span // IMPL
	var implTypeParams []ast.TypeParam
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		implTypeParams = p.parseTypeParamList()
	}
	if !p.expectPeek(token.IDENT) {
		return ast.NewImplDecl("", nil, implTypeParams, nil, start)
	}
	traitName := p.curToken.Lexeme
	var traitArgs []ast.TypeExpr
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		p.nextToken()
		traitArgs = append(traitArgs, p.parseTypeExpr())
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			traitArgs = append(traitArgs, p.parseTypeExpr())
		}
		p.expectPeek(token.GT)
	}
	if !p.expectPeek(token.LBRACE) {
		return ast.NewImplDecl(traitName, traitArgs, implTypeParams, nil, start)
	}
	p.nextToken()
	var methods []*ast.FnDecl
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		methods = append(methods, p.parseFnDecl())
		p.nextToken()
	}
	return ast.NewImplDecl(traitName, traitArgs, implTypeParams, methods, spanFrom(start, p.curToken.Span))
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	start := p.curToken.Span // STRUCT
	if !p.expectPeek(token.IDENT) {
		return ast.NewStructDecl("", nil, nil, start)
	}
	name := p.curToken.Lexeme

	var typeParams []ast.TypeParam
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		typeParams = p.parseTypeParamList()
	}

	if !p.expectPeek(token.LBRACE) {
		return ast.NewStructDecl(name, typeParams, nil, start)
	}
	var fields []ast.FieldDecl
	if !p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		fields = append(fields, p.parseFieldDecl())
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			fields = append(fields, p.parseFieldDecl())
		}
	}
	p.expectPeek(token.RBRACE)
	return ast.NewStructDecl(name, typeParams, fields, spanFrom(start, p.curToken.Span))
}

func (p *Parser) parseFieldDecl() ast.FieldDecl {
	start := p.curToken.Span
	name := p.curToken.Lexeme
	var ann ast.TypeExpr
	if p.expectPeek(token.COLON) {
		p.nextToken()
		ann = p.parseTypeExpr()
	}
	return ast.NewFieldDecl(name, ann, spanFrom(start, p.curToken.Span))
}
