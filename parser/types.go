package parser

import (
	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/token"
)

// parseTypeExpr parses a surface type annotation.
// Grammar:
//
//	TypeExpr ::= "fn" "(" TypeExpr,* ")" "->" TypeExpr
//	           | "(" TypeExpr,* ")"
//	           | IDENT ("<" TypeExpr,+ ">")?
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	switch p.curToken.Kind {
	case token.FN:
		return p.parseTypeFn()
	case token.LPAREN:
		return p.parseTypeTuple()
	case token.IDENT:
		return p.parseTypeNameOrApp()
	default:
		p.errorf(p.curToken.Span, "expected a type, got %s (%q)", p.curToken.Kind, p.curToken.Lexeme)
		return ast.NewTypeName(p.curToken.Lexeme, p.curToken.Span)
	}
}

func (p *Parser) parseTypeFn() ast.TypeExpr {
	start := p.curToken.Span
	if !p.expectPeek(token.LPAREN) {
		return ast.NewTypeFn(nil, nil, start)
	}
	var params []ast.TypeExpr
	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		params = append(params, p.parseTypeExpr())
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			params = append(params, p.parseTypeExpr())
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return ast.NewTypeFn(params, nil, start)
	}
	if !p.expectPeek(token.ARROW) {
		return ast.NewTypeFn(params, nil, spanFrom(start, p.curToken.Span))
	}
	p.nextToken()
	ret := p.parseTypeExpr()
	return ast.NewTypeFn(params, ret, spanFrom(start, ret.Span()))
}

func (p *Parser) parseTypeTuple() ast.TypeExpr {
	start := p.curToken.Span
	var elems []ast.TypeExpr
	if !p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		elems = append(elems, p.parseTypeExpr())
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			elems = append(elems, p.parseTypeExpr())
		}
	}
	if !p.expectPeek(token.RPAREN) {
		return ast.NewTypeTuple(elems, start)
	}
	return ast.NewTypeTuple(elems, spanFrom(start, p.curToken.Span))
}

func (p *Parser) parseTypeNameOrApp() ast.TypeExpr {
	name := p.curToken.Lexeme
	start := p.curToken.Span
	if !p.peekTokenIs(token.LT) {
		return ast.NewTypeName(name, start)
	}
	p.nextToken() // consume '<'
	p.nextToken()
	args := []ast.TypeExpr{p.parseTypeExpr()}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		args = append(args, p.parseTypeExpr())
	}
	if !p.expectPeek(token.GT) {
		return ast.NewTypeApp(name, args, start)
	}
	return ast.NewTypeApp(name, args, spanFrom(start, p.curToken.Span))
}

// parseTypeParamList parses `<A: Eq + Ord, B>`, returning nil if the
// current token isn't `<` (type parameters are optional).
func (p *Parser) parseTypeParamList() []ast.TypeParam {
	if !p.curTokenIs(token.LT) {
		return nil
	}
	var params []ast.TypeParam
	p.nextToken()
	params = append(params, p.parseOneTypeParam())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseOneTypeParam())
	}
	p.expectPeek(token.GT)
	return params
}

func (p *Parser) parseOneTypeParam() ast.TypeParam {
	start := p.curToken.Span
	name := p.curToken.Lexeme
	var bounds []string
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		bounds = append(bounds, p.curToken.Lexeme)
		for p.peekTokenIs(token.PLUS) {
			p.nextToken()
			p.nextToken()
			bounds = append(bounds, p.curToken.Lexeme)
		}
	}
	return ast.NewTypeParam(name, bounds, spanFrom(start, p.curToken.Span))
}
