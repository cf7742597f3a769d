package parser

import (
	"math/big"

	"github.com/weldlang/weld/internal/ast"
	"github.com/weldlang/weld/internal/diagnostics"
	"github.com/weldlang/weld/internal/token"
)

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	value, ok := p.curToken.Literal.(*big.Rat)
	if !ok {
		p.ctx.AddError(diagnostics.NewError(
			diagnostics.ErrP001, p.curToken, "malformed number literal %q", p.curToken.Lexeme))
		return nil
	}
	return &ast.NumberLiteral{Token: p.curToken, Value: value}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseEnumTag() ast.Expression {
	name, _ := p.curToken.Literal.(string)
	return &ast.EnumTagLiteral{Token: p.curToken, Name: name}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	expression := &ast.PrefixExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
	}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Lexeme,
	}
	precedence := precedences[p.curToken.Type]
	p.nextToken()
	expression.Right = p.parseExpression(precedence)
	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	array := &ast.ArrayLiteral{Token: p.curToken}
	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return array
	}
	p.nextToken()
	array.Elements = append(array.Elements, p.parseExpression(LOWEST))
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		if p.peekTokenIs(token.RBRACKET) {
			break // trailing comma
		}
		p.nextToken()
		array.Elements = append(array.Elements, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}
	return array
}

func (p *Parser) parseLetExpression() ast.Expression {
	expr := &ast.LetExpression{Token: p.curToken}
	if p.peekTokenIs(token.REC) {
		p.nextToken()
		expr.Recursive = true
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	expr.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	expr.Value = p.parseExpression(LOWEST)
	if !p.expectPeek(token.IN) {
		return nil
	}
	p.nextToken()
	expr.Body = p.parseExpression(LOWEST)
	return expr
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Token: p.curToken}
	p.nextToken()
	expr.Condition = p.parseExpression(LOWEST)
	if !p.expectPeek(token.THEN) {
		return nil
	}
	p.nextToken()
	expr.Consequence = p.parseExpression(LOWEST)
	if !p.expectPeek(token.ELSE) {
		return nil
	}
	p.nextToken()
	expr.Alternative = p.parseExpression(LOWEST)
	return expr
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	fn := &ast.FunctionLiteral{Token: p.curToken}
	for p.peekTokenIs(token.IDENT) || p.peekTokenIs(token.UNDERSCORE) {
		p.nextToken()
		fn.Params = append(fn.Params, &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme})
	}
	if len(fn.Params) == 0 {
		p.ctx.AddError(diagnostics.NewError(
			diagnostics.ErrP001, p.peekToken, "function literal needs at least one parameter"))
		return nil
	}
	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	fn.Body = p.parseExpression(LOWEST)
	return fn
}

func (p *Parser) parseFieldAccess(left ast.Expression) ast.Expression {
	access := &ast.FieldAccess{Token: p.curToken, Record: left}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	access.Name = p.curToken.Lexeme
	return access
}

// parseAnnotatedExpression handles `e | C1 | C2`, collecting the whole
// chain into one node so contracts apply in source order.
func (p *Parser) parseAnnotatedExpression(left ast.Expression) ast.Expression {
	annotated := &ast.AnnotatedExpression{Token: p.curToken, Expr: left}
	p.nextToken()
	contract := p.parseExpression(ANNOT)
	if contract == nil {
		return nil
	}
	annotated.Contracts = append(annotated.Contracts, contract)
	for p.peekTokenIs(token.PIPE) {
		p.nextToken()
		p.nextToken()
		contract = p.parseExpression(ANNOT)
		if contract == nil {
			return nil
		}
		annotated.Contracts = append(annotated.Contracts, contract)
	}
	return annotated
}

func (p *Parser) parseMatchExpression() ast.Expression {
	expr := &ast.MatchExpression{Token: p.curToken}
	p.nextToken()
	// The subject parses at CALL precedence so the arm block is not
	// swallowed as a juxtaposed argument.
	expr.Subject = p.parseExpression(CALL)
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		arm := p.parseMatchArm()
		if arm == nil {
			return nil
		}
		expr.Arms = append(expr.Arms, arm)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return expr
}

func (p *Parser) parseMatchArm() *ast.MatchArm {
	arm := &ast.MatchArm{Token: p.curToken}
	switch p.curToken.Type {
	case token.TAG:
		name, _ := p.curToken.Literal.(string)
		pattern := &ast.TagPattern{Token: p.curToken, Name: name}
		if p.peekTokenIs(token.IDENT) {
			p.nextToken()
			pattern.Binder = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		}
		arm.Pattern = pattern
	case token.UNDERSCORE:
		arm.Pattern = &ast.WildcardPattern{Token: p.curToken}
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE, token.NULL:
		value := p.parseExpression(CALL)
		if value == nil {
			return nil
		}
		arm.Pattern = &ast.LiteralPattern{Token: arm.Token, Value: value}
	default:
		p.ctx.AddError(diagnostics.NewError(
			diagnostics.ErrP004, p.curToken, "invalid match pattern %q", p.curToken.Lexeme))
		return nil
	}
	if !p.expectPeek(token.ARROW) {
		return nil
	}
	p.nextToken()
	arm.Body = p.parseExpression(LOWEST)
	if arm.Body == nil {
		return nil
	}
	return arm
}

func (p *Parser) parseImportExpression() ast.Expression {
	expr := &ast.ImportExpression{Token: p.curToken}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	expr.Path = p.curToken.Lexeme
	return expr
}
