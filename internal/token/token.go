package token

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string      // raw source text
	Literal interface{} // parsed literal value (string, *big.Rat, ...)
	Line    int
	Column  int
}

const (
	ILLEGAL = "ILLEGAL"
	EOF     = "EOF"

	IDENT  = "IDENT"  // foo, bar
	NUMBER = "NUMBER" // 1, 2.5
	STRING = "STRING" // "abc"
	TAG    = "TAG"    // 'foo

	ASSIGN   = "="
	PLUS     = "+"
	MINUS    = "-"
	ASTERISK = "*"
	SLASH    = "/"
	BANG     = "!"

	EQ     = "=="
	NOT_EQ = "!="
	LT     = "<"
	GT     = ">"
	LT_EQ  = "<="
	GT_EQ  = ">="

	AND    = "&&"
	OR     = "||"
	MERGE  = "&"
	CONCAT = "++"
	PIPE   = "|"
	ARROW  = "=>"

	COMMA      = ","
	DOT        = "."
	ELLIPSIS   = ".."
	LPAREN     = "("
	RPAREN     = ")"
	LBRACE     = "{"
	RBRACE     = "}"
	LBRACKET   = "["
	RBRACKET   = "]"
	UNDERSCORE = "_"

	// Keywords. Field metadata words (default, priority, force,
	// optional, doc, not_exported) are contextual and stay IDENT so
	// they remain usable as field names.
	LET    = "LET"
	REC    = "REC"
	IN     = "IN"
	IF     = "IF"
	THEN   = "THEN"
	ELSE   = "ELSE"
	FUN    = "FUN"
	MATCH  = "MATCH"
	IMPORT = "IMPORT"
	TRUE   = "TRUE"
	FALSE  = "FALSE"
	NULL   = "NULL"
)

var keywords = map[string]TokenType{
	"let":    LET,
	"rec":    REC,
	"in":     IN,
	"if":     IF,
	"then":   THEN,
	"else":   ELSE,
	"fun":    FUN,
	"match":  MATCH,
	"import": IMPORT,
	"true":   TRUE,
	"false":  FALSE,
	"null":   NULL,
}

// LookupIdent maps identifier text to its keyword token type, or IDENT.
func LookupIdent(ident string) TokenType {
	if ident == "_" {
		return UNDERSCORE
	}
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
