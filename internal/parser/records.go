package parser

import (
	"github.com/weldlang/weld/internal/ast"
	"github.com/weldlang/weld/internal/diagnostics"
	"github.com/weldlang/weld/internal/token"
)

func (p *Parser) parseRecordLiteral() ast.Expression {
	record := &ast.RecordLiteral{Token: p.curToken}

	if p.peekTokenIs(token.RBRACE) {
		p.nextToken()
		return record
	}

	for {
		p.nextToken()

		if p.curTokenIs(token.ELLIPSIS) {
			record.Open = true
			if !p.expectPeek(token.RBRACE) {
				return nil
			}
			return record
		}

		field := p.parseRecordField()
		if field == nil {
			return nil
		}
		record.Fields = append(record.Fields, field)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			if p.peekTokenIs(token.RBRACE) {
				break // trailing comma
			}
			continue
		}
		break
	}

	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return record
}

// parseRecordField parses `name [| annotation ...] [= value]`.
// Field names are identifiers or string literals.
func (p *Parser) parseRecordField() *ast.RecordFieldDef {
	field := &ast.RecordFieldDef{Token: p.curToken}

	switch p.curToken.Type {
	case token.IDENT, token.STRING:
		field.Name = p.curToken.Lexeme
	default:
		p.ctx.AddError(diagnostics.NewError(
			diagnostics.ErrP003, p.curToken, "expected field name, got %q", p.curToken.Lexeme))
		return nil
	}

	for p.peekTokenIs(token.PIPE) {
		p.nextToken() // onto '|'
		p.nextToken() // onto the annotation
		if !p.parseFieldAnnotation(field) {
			return nil
		}
	}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		field.Value = p.parseExpression(LOWEST)
		if field.Value == nil {
			return nil
		}
	}

	return field
}

// parseFieldAnnotation consumes one entry of the `|` chain. Metadata
// words (default, force, priority, optional, not_exported, doc) are
// contextual; anything else is a contract expression.
func (p *Parser) parseFieldAnnotation(field *ast.RecordFieldDef) bool {
	if p.curTokenIs(token.IDENT) {
		switch p.curToken.Lexeme {
		case "default":
			field.Annotations.Default = true
			return true
		case "force":
			field.Annotations.Force = true
			return true
		case "optional":
			field.Annotations.Optional = true
			return true
		case "not_exported":
			field.Annotations.NotExported = true
			return true
		case "priority":
			p.nextToken()
			prio := p.parseExpression(PREFIX)
			if prio == nil {
				return false
			}
			field.Annotations.Priority = prio
			return true
		case "doc":
			if !p.expectPeek(token.STRING) {
				return false
			}
			field.Annotations.Doc = p.curToken.Lexeme
			return true
		}
	}

	contract := p.parseExpression(ANNOT)
	if contract == nil {
		return false
	}
	field.Annotations.Contracts = append(field.Annotations.Contracts, contract)
	return true
}
