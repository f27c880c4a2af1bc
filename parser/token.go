package parser

// TokenType identifies the lexical class of a Token.
type TokenType int

const (
	// TokenIdent covers keywords, type names, unquoted paths, and URLs.
	TokenIdent TokenType = iota
	// TokenString is a quoted string with the quotes stripped.
	TokenString
	// TokenNumber is an integer or decimal literal, possibly negative.
	TokenNumber
	// TokenLBrace is "{".
	TokenLBrace
	// TokenRBrace is "}".
	TokenRBrace
	// TokenLParen is "(".
	TokenLParen
	// TokenRParen is ")".
	TokenRParen
	// TokenQuestion is "?".
	TokenQuestion
	// TokenAt is "@".
	TokenAt
	// TokenComment is a line comment (// ...) with the marker stripped.
	TokenComment
	// TokenDocComment is a doc comment (/** ... */) with decoration stripped.
	TokenDocComment
	// TokenEOF marks end of input; the lexer returns it forever afterwards.
	TokenEOF
)

var tokenTypeNames = [...]string{
	TokenIdent:      "Ident",
	TokenString:     "String",
	TokenNumber:     "Number",
	TokenLBrace:     "LBrace",
	TokenRBrace:     "RBrace",
	TokenLParen:     "LParen",
	TokenRParen:     "RParen",
	TokenQuestion:   "Question",
	TokenAt:         "At",
	TokenComment:    "Comment",
	TokenDocComment: "DocComment",
	TokenEOF:        "EOF",
}

// String returns the token type name used in diagnostics.
func (t TokenType) String() string {
	if int(t) < len(tokenTypeNames) {
		return tokenTypeNames[t]
	}
	return "Unknown"
}

// Token is one lexical unit with its source line for diagnostics.
// Tokens are ephemeral: the lexer produces them one at a time and the parser
// consumes them immediately.
type Token struct {
	Type    TokenType
	Literal string
	Line    int
}
