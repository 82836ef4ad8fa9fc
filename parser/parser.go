// Package parser is a recursive-descent statement parser plus a
// Pratt expression parser, producing ast nodes with source spans.
package parser

import (
	"github.com/impala-lang/impala/ast"
	"github.com/impala-lang/impala/internal/source"
	"github.com/impala-lang/impala/lexer"
	"github.com/impala-lang/impala/token"
)

// Operator precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // ! -x
	CALL        // f(...)
	DOT         // r.field
)

var precedences = map[token.Kind]int{
	token.OR:      OR,
	token.AND:     AND,
	token.EQ:      EQUALS,
	token.NOT_EQ:  EQUALS,
	token.LT:      LESSGREATER,
	token.GT:      LESSGREATER,
	token.LE:      LESSGREATER,
	token.GE:      LESSGREATER,
	token.PLUS:    SUM,
	token.MINUS:   SUM,
	token.STAR:    PRODUCT,
	token.SLASH:   PRODUCT,
	token.PERCENT: PRODUCT,
	token.LPAREN:  CALL,
	token.DOT:     DOT,
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parser holds a two-token lookahead window over a Lexer's token
// stream and the prefix/infix dispatch tables that drive
// parseExpression.
type Parser struct {
	file *source.File
	lex  *lexer.Lexer

	curToken  token.Token
	peekToken token.Token

	errors []*Error

	// noStructLit suppresses struct-literal recognition while parsing
	// the condition of an if or the scrutinee of a match, so `if
	// cond { ... }` doesn't get misread as `if (cond { ... })`.
	noStructLit bool

	prefixParseFns map[token.Kind]prefixParseFn
	infixParseFns  map[token.Kind]infixParseFn
}

// New returns a Parser positioned at the first token of file.
func New(file *source.File) *Parser {
	p := &Parser{file: file, lex: lexer.New(file)}

	p.prefixParseFns = map[token.Kind]prefixParseFn{
		token.IDENT:  p.parseIdentOrStructLit,
		token.INT:    p.parseIntLiteral,
		token.FLOAT:  p.parseFloatLiteral,
		token.STRING: p.parseStringLiteral,
		token.TRUE:   p.parseBoolLiteral,
		token.FALSE:  p.parseBoolLiteral,
		token.BANG:   p.parseUnaryExpr,
		token.MINUS:  p.parseUnaryExpr,
		token.LPAREN: p.parseParenOrTupleExpr,
		token.IF:     p.parseIfExpr,
		token.MATCH:  p.parseMatchExpr,
		token.FN:     p.parseFuncLit,
		token.LBRACE: p.parseBlockExpr,
	}
	p.infixParseFns = map[token.Kind]infixParseFn{
		token.PLUS:    p.parseBinaryExpr,
		token.MINUS:   p.parseBinaryExpr,
		token.STAR:    p.parseBinaryExpr,
		token.SLASH:   p.parseBinaryExpr,
		token.PERCENT: p.parseBinaryExpr,
		token.EQ:      p.parseBinaryExpr,
		token.NOT_EQ:  p.parseBinaryExpr,
		token.LT:      p.parseBinaryExpr,
		token.GT:      p.parseBinaryExpr,
		token.LE:      p.parseBinaryExpr,
		token.GE:      p.parseBinaryExpr,
		token.AND:     p.parseBinaryExpr,
		token.OR:      p.parseBinaryExpr,
		token.LPAREN:  p.parseCallExpr,
		token.DOT:     p.parseFieldAccessExpr,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns every parse error accumulated so far.
func (p *Parser) Errors() []*Error { return p.errors }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lex.NextToken()
	// statement-insignificant newlines are filtered out here; callers
	// that care about line breaks (block/program statement separators)
	// never need to see them because every statement form is
	// terminated by a keyword or brace, not by NEWLINE.
	for p.peekToken.Kind == token.NEWLINE {
		p.peekToken = p.lex.NextToken()
	}
}

func (p *Parser) curTokenIs(k token.Kind) bool  { return p.curToken.Kind == k }
func (p *Parser) peekTokenIs(k token.Kind) bool { return p.peekToken.Kind == k }

func (p *Parser) expectPeek(k token.Kind) bool {
	if p.peekTokenIs(k) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken.Span, "expected next token to be %s, got %s (%q)", k, p.peekToken.Kind, p.peekToken.Lexeme)
	return false
}

func (p *Parser) errorf(span source.Span, format string, args ...interface{}) {
	p.errors = append(p.errors, newErrorf(span, format, args...))
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peekToken.Kind]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.curToken.Kind]; ok {
		return pr
	}
	return LOWEST
}

func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix := p.prefixParseFns[p.curToken.Kind]
	if prefix == nil {
		p.errorf(p.curToken.Span, "no prefix parse function for %s", p.curToken.Kind)
		return nil
	}
	left := prefix()

	for !p.peekTokenIs(token.EOF) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Kind]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func spanFrom(start source.Span, end source.Span) source.Span {
	return start.Merge(end)
}
