package parser

import (
	"github.com/weldlang/weld/internal/ast"
	"github.com/weldlang/weld/internal/config"
	"github.com/weldlang/weld/internal/diagnostics"
	"github.com/weldlang/weld/internal/lexer"
	"github.com/weldlang/weld/internal/pipeline"
	"github.com/weldlang/weld/internal/token"
)

// Operator precedences, lowest first.
const (
	LOWEST = iota
	ANNOT       // e | Contract
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // < > <= >=
	MERGE       // &
	CONCAT      // ++
	SUM         // + -
	PRODUCT     // * /
	PREFIX      // -x !x
	CALL        // f x (juxtaposition)
	ACCESS      // record.field
)

var precedences = map[token.TokenType]int{
	token.PIPE:     ANNOT,
	token.OR:       OR,
	token.AND:      AND,
	token.EQ:       EQUALS,
	token.NOT_EQ:   EQUALS,
	token.LT:       LESSGREATER,
	token.GT:       LESSGREATER,
	token.LT_EQ:    LESSGREATER,
	token.GT_EQ:    LESSGREATER,
	token.MERGE:    MERGE,
	token.CONCAT:   CONCAT,
	token.PLUS:     SUM,
	token.MINUS:    SUM,
	token.ASTERISK: PRODUCT,
	token.SLASH:    PRODUCT,
	token.DOT:      ACCESS,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

type Parser struct {
	lexer *lexer.Lexer
	ctx   *pipeline.PipelineContext

	curToken  token.Token
	peekToken token.Token

	depth int

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

func New(l *lexer.Lexer, ctx *pipeline.PipelineContext) *Parser {
	p := &Parser{lexer: l, ctx: ctx}

	p.prefixParseFns = map[token.TokenType]prefixParseFn{
		token.IDENT:    p.parseIdentifier,
		token.NUMBER:   p.parseNumberLiteral,
		token.STRING:   p.parseStringLiteral,
		token.TAG:      p.parseEnumTag,
		token.TRUE:     p.parseBooleanLiteral,
		token.FALSE:    p.parseBooleanLiteral,
		token.NULL:     p.parseNullLiteral,
		token.BANG:     p.parsePrefixExpression,
		token.MINUS:    p.parsePrefixExpression,
		token.LPAREN:   p.parseGroupedExpression,
		token.LBRACKET: p.parseArrayLiteral,
		token.LBRACE:   p.parseRecordLiteral,
		token.LET:      p.parseLetExpression,
		token.IF:       p.parseIfExpression,
		token.FUN:      p.parseFunctionLiteral,
		token.MATCH:    p.parseMatchExpression,
		token.IMPORT:   p.parseImportExpression,
	}

	p.infixParseFns = map[token.TokenType]infixParseFn{
		token.PLUS:     p.parseInfixExpression,
		token.MINUS:    p.parseInfixExpression,
		token.ASTERISK: p.parseInfixExpression,
		token.SLASH:    p.parseInfixExpression,
		token.EQ:       p.parseInfixExpression,
		token.NOT_EQ:   p.parseInfixExpression,
		token.LT:       p.parseInfixExpression,
		token.GT:       p.parseInfixExpression,
		token.LT_EQ:    p.parseInfixExpression,
		token.GT_EQ:    p.parseInfixExpression,
		token.AND:      p.parseInfixExpression,
		token.OR:       p.parseInfixExpression,
		token.CONCAT:   p.parseInfixExpression,
		token.MERGE:    p.parseInfixExpression,
		token.DOT:      p.parseFieldAccess,
		token.PIPE:     p.parseAnnotatedExpression,
	}

	// Prime curToken and peekToken.
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.lexer.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.ctx.AddError(diagnostics.NewError(
		diagnostics.ErrP001,
		p.peekToken,
		"expected %s, got %s (%q)", t, p.peekToken.Type, p.peekToken.Lexeme,
	))
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses one top-level expression and expects EOF after it.
func (p *Parser) ParseProgram() ast.Expression {
	expr := p.parseExpression(LOWEST)
	if expr != nil && !p.peekTokenIs(token.EOF) {
		p.ctx.AddError(diagnostics.NewError(
			diagnostics.ErrP001,
			p.peekToken,
			"unexpected trailing token %q", p.peekToken.Lexeme,
		))
	}
	return expr
}

// canStartExpression reports whether a token may begin an expression;
// drives application-by-juxtaposition.
func canStartExpression(t token.TokenType) bool {
	switch t {
	case token.IDENT, token.NUMBER, token.STRING, token.TAG,
		token.TRUE, token.FALSE, token.NULL,
		token.LPAREN, token.LBRACKET, token.LBRACE,
		token.LET, token.IF, token.FUN, token.MATCH, token.IMPORT:
		return true
	}
	return false
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > config.MaxParseDepth {
		p.ctx.AddError(diagnostics.NewError(
			diagnostics.ErrP006,
			p.curToken,
			"expression too complex: recursion depth limit exceeded",
		))
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.ctx.AddError(diagnostics.NewError(
			diagnostics.ErrP002,
			p.curToken,
			"unexpected token %q", p.curToken.Lexeme,
		))
		return nil
	}
	leftExp := prefix()

	for leftExp != nil {
		// Juxtaposition binds tighter than every binary operator:
		// `f a + b` parses as `(f a) + b`.
		if precedence < CALL && canStartExpression(p.peekToken.Type) {
			callTok := p.peekToken
			p.nextToken()
			arg := p.parseExpression(CALL)
			if arg == nil {
				return nil
			}
			leftExp = &ast.CallExpression{Token: callTok, Function: leftExp, Argument: arg}
			continue
		}

		if precedence >= p.peekPrecedence() {
			break
		}
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}
