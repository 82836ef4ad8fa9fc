package parser

import (
	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/token"
)

func (p *Parser) parseIntLiteral() ast.Expr {
	lit := ast.NewLiteral(ast.IntLiteral, p.curToken.Lexeme, p.curToken.Span)
	return lit
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	return ast.NewLiteral(ast.FloatLiteral, p.curToken.Lexeme, p.curToken.Span)
}

func (p *Parser) parseStringLiteral() ast.Expr {
	return ast.NewLiteral(ast.StringLiteral, p.curToken.Lexeme, p.curToken.Span)
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	return ast.NewLiteral(ast.BoolLiteral, p.curToken.Lexeme, p.curToken.Span)
}

// parseIdentOrStructLit disambiguates a bare variable reference from a
// struct literal: `Point { x = 1, y = 2 }`. A struct literal is only
// recognized when the identifier is immediately followed by `{` and
// noStructLit is off; parseIfExpr and parseMatchExpr turn noStructLit
// on for their condition/scrutinee, which keeps `if cond { ... }`
// reading `cond` as a variable.
func (p *Parser) parseIdentOrStructLit() ast.Expr {
	name := p.curToken.Lexeme
	start := p.curToken.Span
	if p.peekTokenIs(token.LBRACE) && !p.noStructLit {
		return p.parseStructLitSpan(name, start)
	}
	return ast.NewVar(name, start)
}

func (p *Parser) parseStructLitSpan(name string, start source.Span) ast.Expr {
	p.nextToken() // consume LBRACE
	p.nextToken()
	var fields []ast.FieldInit
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		fname := p.curToken.Lexeme
		if !p.expectPeek(token.ASSIGN) {
			break
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		fields = append(fields, ast.FieldInit{Name: fname, Value: value})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}
	return ast.NewStructLit(name, fields, spanFrom(start, p.curToken.Span))
}

func (p *Parser) parseUnaryExpr() ast.Expr {
	op := p.curToken
	p.nextToken()
	operand := p.parseExpression(PREFIX)
	return ast.NewUnaryOp(op.Kind, operand, spanFrom(op.Span, exprEnd(operand, op.Span)))
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	op := p.curToken
	precedence := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(precedence)
	return ast.NewBinOp(op.Kind, left, right, spanFrom(left.Span(), exprEnd(right, op.Span)))
}

func (p *Parser) parseCallExpr(fn ast.Expr) ast.Expr {
	start := p.curToken.Span
	args := p.parseExprList(token.RPAREN)
	return ast.NewCall(fn, args, spanFrom(fn.Span(), spanFrom(start, p.curToken.Span)))
}

func (p *Parser) parseFieldAccessExpr(left ast.Expr) ast.Expr {
	if !p.expectPeek(token.IDENT) {
		return left
	}
	field := p.curToken.Lexeme
	return ast.NewFieldAccess(left, field, spanFrom(left.Span(), p.curToken.Span))
}

// parseParenOrTupleExpr disambiguates `(expr)` (grouping) from
// `(a, b, ...)` (a tuple constructor).
func (p *Parser) parseParenOrTupleExpr() ast.Expr {
	start := p.curToken.Span
	p.nextToken()
	if p.curTokenIs(token.RPAREN) {
		return ast.NewTupleLit(nil, spanFrom(start, p.curToken.Span))
	}
	first := p.parseExpression(LOWEST)
	if p.peekTokenIs(token.COMMA) {
		elems := []ast.Expr{first}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			elems = append(elems, p.parseExpression(LOWEST))
		}
		if !p.expectPeek(token.RPAREN) {
			return ast.NewTupleLit(elems, start)
		}
		return ast.NewTupleLit(elems, spanFrom(start, p.curToken.Span))
	}
	if !p.expectPeek(token.RPAREN) {
		return first
	}
	return first
}

func (p *Parser) parseExprList(end token.Kind) []ast.Expr {
	var list []ast.Expr
	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return list
	}
	return list
}

func (p *Parser) parseIfExpr() ast.Expr {
	start := p.curToken.Span
	p.nextToken()
	saved := p.noStructLit
	p.noStructLit = true
	cond := p.parseExpression(LOWEST)
	p.noStructLit = saved
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	then := p.parseBlockExpr()
	if !p.expectPeek(token.ELSE) {
		p.errorf(p.curToken.Span, "if-expressions require an else branch, since If is itself an expression")
		return ast.NewIf(cond, then, then, spanFrom(start, p.curToken.Span))
	}
	var els ast.Expr
	if p.peekTokenIs(token.IF) {
		p.nextToken()
		els = p.parseIfExpr()
	} else if p.expectPeek(token.LBRACE) {
		els = p.parseBlockExpr()
	}
	return ast.NewIf(cond, then, els, spanFrom(start, exprEnd(els, start)))
}

func (p *Parser) parseBlockExpr() ast.Expr {
	start := p.curToken.Span // curToken == LBRACE
	var stmts []*ast.LetDecl
	p.nextToken()
	for p.curTokenIs(token.LET) {
		stmts = append(stmts, p.parseLetStmt())
		if p.peekTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		p.nextToken()
	}
	result := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACE) {
		return ast.NewBlock(stmts, result, spanFrom(start, p.curToken.Span))
	}
	return ast.NewBlock(stmts, result, spanFrom(start, p.curToken.Span))
}

func (p *Parser) parseLetStmt() *ast.LetDecl {
	start := p.curToken.Span // LET
	if !p.expectPeek(token.IDENT) {
		return ast.NewLetDecl("", nil, nil, start)
	}
	name := p.curToken.Lexeme
	var ann ast.TypeExpr
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		ann = p.parseTypeExpr()
	}
	if !p.expectPeek(token.ASSIGN) {
		return ast.NewLetDecl(name, ann, nil, start)
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return ast.NewLetDecl(name, ann, value, spanFrom(start, exprEnd(value, start)))
}

func (p *Parser) parseFuncLit() ast.Expr {
	start := p.curToken.Span // FN
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	params := p.parseParamList()
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	body := p.parseBlockExpr()
	return ast.NewFunc(params, body, spanFrom(start, exprEnd(body, start)))
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, p.parseOneParam())
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, p.parseOneParam())
	}
	if !p.expectPeek(token.RPAREN) {
		return params
	}
	return params
}

func (p *Parser) parseOneParam() ast.Param {
	start := p.curToken.Span
	name := p.curToken.Lexeme
	var ann ast.TypeExpr
	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		ann = p.parseTypeExpr()
	}
	return ast.NewParam(name, ann, spanFrom(start, p.curToken.Span))
}

func (p *Parser) parseMatchExpr() ast.Expr {
	start := p.curToken.Span
	p.nextToken()
	saved := p.noStructLit
	p.noStructLit = true
	value := p.parseExpression(LOWEST)
	p.noStructLit = saved
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	var cases []ast.MatchCase
	p.nextToken()
	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		pat := p.parsePattern()
		var guard ast.Expr
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			p.nextToken()
			guard = p.parseExpression(LOWEST)
		}
		if !p.expectPeek(token.FAT_ARROW) {
			break
		}
		p.nextToken()
		body := p.parseExpression(LOWEST)
		cases = append(cases, ast.MatchCase{Pattern: pat, Guard: guard, Body: body})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
		p.nextToken()
	}
	return ast.NewMatch(value, cases, spanFrom(start, p.curToken.Span))
}

func (p *Parser) parsePattern() ast.Pattern {
	switch p.curToken.Kind {
	case token.UNDERSCORE:
		return ast.NewWildcardPattern(p.curToken.Span)
	case token.IDENT:
		return ast.NewVarPattern(p.curToken.Lexeme, p.curToken.Span)
	case token.INT:
		return ast.NewLiteralPattern(ast.NewLiteral(ast.IntLiteral, p.curToken.Lexeme, p.curToken.Span), p.curToken.Span)
	case token.FLOAT:
		return ast.NewLiteralPattern(ast.NewLiteral(ast.FloatLiteral, p.curToken.Lexeme, p.curToken.Span), p.curToken.Span)
	case token.STRING:
		return ast.NewLiteralPattern(ast.NewLiteral(ast.StringLiteral, p.curToken.Lexeme, p.curToken.Span), p.curToken.Span)
	case token.TRUE, token.FALSE:
		return ast.NewLiteralPattern(ast.NewLiteral(ast.BoolLiteral, p.curToken.Lexeme, p.curToken.Span), p.curToken.Span)
	case token.LPAREN:
		start := p.curToken.Span
		var elems []ast.Pattern
		p.nextToken()
		if !p.curTokenIs(token.RPAREN) {
			elems = append(elems, p.parsePattern())
			for p.peekTokenIs(token.COMMA) {
				p.nextToken()
				p.nextToken()
				elems = append(elems, p.parsePattern())
			}
			p.nextToken()
		}
		return ast.NewTuplePattern(elems, spanFrom(start, p.curToken.Span))
	default:
		p.errorf(p.curToken.Span, "unexpected token %s in pattern", p.curToken.Kind)
		return ast.NewWildcardPattern(p.curToken.Span)
	}
}

// exprEnd returns e's span, or fallback if e is nil (a parse error
// already recorded at the call site left a hole in the tree).
func exprEnd(e ast.Expr, fallback source.Span) source.Span {
	if e == nil {
		return fallback
	}
	return e.Span()
}
