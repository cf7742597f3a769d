package ast

import (
	"math/big"
	"strings"

	"github.com/weldlang/weld/internal/token"
)

// TokenProvider is an interface for any AST node that can provide its
// primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Expression is a Node that produces a value.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
}

// Identifier refers to a bound name.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// NumberLiteral is an arbitrary-precision rational literal.
type NumberLiteral struct {
	Token token.Token
	Value *big.Rat
}

func (n *NumberLiteral) expressionNode()      {}
func (n *NumberLiteral) TokenLiteral() string { return n.Token.Lexeme }
func (n *NumberLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Token
}

type StringLiteral struct {
	Token token.Token
	Value string
}

func (s *StringLiteral) expressionNode()      {}
func (s *StringLiteral) TokenLiteral() string { return s.Token.Lexeme }
func (s *StringLiteral) GetToken() token.Token {
	if s == nil {
		return token.Token{}
	}
	return s.Token
}

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()      {}
func (b *BooleanLiteral) TokenLiteral() string { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token {
	if b == nil {
		return token.Token{}
	}
	return b.Token
}

type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) expressionNode()      {}
func (n *NullLiteral) TokenLiteral() string { return n.Token.Lexeme }
func (n *NullLiteral) GetToken() token.Token {
	if n == nil {
		return token.Token{}
	}
	return n.Token
}

// EnumTagLiteral is 'name. Applying a tag to an argument produces an
// enum variant at evaluation time.
type EnumTagLiteral struct {
	Token token.Token
	Name  string
}

func (e *EnumTagLiteral) expressionNode()      {}
func (e *EnumTagLiteral) TokenLiteral() string { return e.Token.Lexeme }
func (e *EnumTagLiteral) GetToken() token.Token {
	if e == nil {
		return token.Token{}
	}
	return e.Token
}

type ArrayLiteral struct {
	Token    token.Token
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Lexeme }
func (a *ArrayLiteral) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// FieldAnnotations is the metadata chain attached to a record field
// with `|`: priority markers, contracts, documentation.
type FieldAnnotations struct {
	Default     bool
	Force       bool
	Priority    Expression // nil unless `| priority N`
	Optional    bool
	NotExported bool
	Doc         string
	Contracts   []Expression
}

// RecordFieldDef is a single `name [| ann ...] [= value]` entry.
type RecordFieldDef struct {
	Token       token.Token // the field name token
	Name        string
	Value       Expression // nil for a contract-only field
	Annotations FieldAnnotations
}

func (f *RecordFieldDef) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

// RecordLiteral is `{ ... }`; Open is true when the record ends with
// the `..` marker and, used as a contract, accepts unknown fields.
type RecordLiteral struct {
	Token  token.Token
	Fields []*RecordFieldDef
	Open   bool
}

func (r *RecordLiteral) expressionNode()      {}
func (r *RecordLiteral) TokenLiteral() string { return r.Token.Lexeme }
func (r *RecordLiteral) GetToken() token.Token {
	if r == nil {
		return token.Token{}
	}
	return r.Token
}

// LetExpression is `let [rec] name = value in body`.
type LetExpression struct {
	Token     token.Token
	Recursive bool
	Name      *Identifier
	Value     Expression
	Body      Expression
}

func (l *LetExpression) expressionNode()      {}
func (l *LetExpression) TokenLiteral() string { return l.Token.Lexeme }
func (l *LetExpression) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

type IfExpression struct {
	Token       token.Token
	Condition   Expression
	Consequence Expression
	Alternative Expression
}

func (i *IfExpression) expressionNode()      {}
func (i *IfExpression) TokenLiteral() string { return i.Token.Lexeme }
func (i *IfExpression) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// FunctionLiteral is `fun a b => body`; multiple parameters desugar to
// nested single-parameter closures at evaluation time.
type FunctionLiteral struct {
	Token  token.Token
	Params []*Identifier
	Body   Expression
}

func (f *FunctionLiteral) expressionNode()      {}
func (f *FunctionLiteral) TokenLiteral() string { return f.Token.Lexeme }
func (f *FunctionLiteral) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

// CallExpression is application by juxtaposition: `f x`. Chains of
// arguments parse as left-nested calls.
type CallExpression struct {
	Token    token.Token
	Function Expression
	Argument Expression
}

func (c *CallExpression) expressionNode()      {}
func (c *CallExpression) TokenLiteral() string { return c.Token.Lexeme }
func (c *CallExpression) GetToken() token.Token {
	if c == nil {
		return token.Token{}
	}
	return c.Token
}

// FieldAccess is `record.name`.
type FieldAccess struct {
	Token  token.Token // the '.' token
	Record Expression
	Name   string
}

func (f *FieldAccess) expressionNode()      {}
func (f *FieldAccess) TokenLiteral() string { return f.Token.Lexeme }
func (f *FieldAccess) GetToken() token.Token {
	if f == nil {
		return token.Token{}
	}
	return f.Token
}

type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (p *PrefixExpression) expressionNode()      {}
func (p *PrefixExpression) TokenLiteral() string { return p.Token.Lexeme }
func (p *PrefixExpression) GetToken() token.Token {
	if p == nil {
		return token.Token{}
	}
	return p.Token
}

type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (i *InfixExpression) expressionNode()      {}
func (i *InfixExpression) TokenLiteral() string { return i.Token.Lexeme }
func (i *InfixExpression) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// AnnotatedExpression applies contracts to an expression: `e | C1 | C2`.
type AnnotatedExpression struct {
	Token     token.Token // the '|' token
	Expr      Expression
	Contracts []Expression
}

func (a *AnnotatedExpression) expressionNode()      {}
func (a *AnnotatedExpression) TokenLiteral() string { return a.Token.Lexeme }
func (a *AnnotatedExpression) GetToken() token.Token {
	if a == nil {
		return token.Token{}
	}
	return a.Token
}

// Pattern is a match-arm pattern.
type Pattern interface {
	Node
	patternNode()
	GetToken() token.Token
}

// TagPattern matches an enum tag, optionally binding the variant
// payload: `'Ok`, `'Error msg`.
type TagPattern struct {
	Token  token.Token
	Name   string
	Binder *Identifier // nil for bare tags
}

func (t *TagPattern) patternNode()         {}
func (t *TagPattern) TokenLiteral() string { return t.Token.Lexeme }
func (t *TagPattern) GetToken() token.Token {
	if t == nil {
		return token.Token{}
	}
	return t.Token
}

// LiteralPattern matches a literal value by equality.
type LiteralPattern struct {
	Token token.Token
	Value Expression
}

func (l *LiteralPattern) patternNode()         {}
func (l *LiteralPattern) TokenLiteral() string { return l.Token.Lexeme }
func (l *LiteralPattern) GetToken() token.Token {
	if l == nil {
		return token.Token{}
	}
	return l.Token
}

// WildcardPattern is `_`.
type WildcardPattern struct {
	Token token.Token
}

func (w *WildcardPattern) patternNode()         {}
func (w *WildcardPattern) TokenLiteral() string { return w.Token.Lexeme }
func (w *WildcardPattern) GetToken() token.Token {
	if w == nil {
		return token.Token{}
	}
	return w.Token
}

type MatchArm struct {
	Token   token.Token
	Pattern Pattern
	Body    Expression
}

type MatchExpression struct {
	Token   token.Token
	Subject Expression
	Arms    []*MatchArm
}

func (m *MatchExpression) expressionNode()      {}
func (m *MatchExpression) TokenLiteral() string { return m.Token.Lexeme }
func (m *MatchExpression) GetToken() token.Token {
	if m == nil {
		return token.Token{}
	}
	return m.Token
}

// ImportExpression is `import "path"`.
type ImportExpression struct {
	Token token.Token
	Path  string
}

func (i *ImportExpression) expressionNode()      {}
func (i *ImportExpression) TokenLiteral() string { return i.Token.Lexeme }
func (i *ImportExpression) GetToken() token.Token {
	if i == nil {
		return token.Token{}
	}
	return i.Token
}

// FieldPath renders a dotted access chain for labels, e.g. "a.b.c".
// Non-access expressions render as their token lexeme.
func FieldPath(e Expression) string {
	var parts []string
	for {
		fa, ok := e.(*FieldAccess)
		if !ok {
			break
		}
		parts = append([]string{fa.Name}, parts...)
		e = fa.Record
	}
	if id, ok := e.(*Identifier); ok {
		parts = append([]string{id.Value}, parts...)
	}
	return strings.Join(parts, ".")
}
