package lexer

import "fmt"

// TokenType represents the type of token in a prattle expression
type TokenType int

const (
	// Special tokens
	EOF TokenType = iota
	ILLEGAL

	// Literals
	IDENTIFIER // function and variable names: a, foo, sum
	NUMBER     // non-negative integer literals: 0, 42, 1000

	// Punctuation
	LPAREN // ( - grouping and call argument list start
	RPAREN // ) - grouping and call argument list end
	COMMA  // , - call argument separator

	// Operators
	PLUS  // + - addition, unary plus
	MINUS // - - subtraction, unary negation
	STAR  // * - multiplication
	SLASH // / - floor division
	CARET // ^ - exponentiation (right-associative)
)

// Pre-computed token name lookup for fast debugging
var tokenNames = [...]string{
	EOF:        "EOF",
	ILLEGAL:    "ILLEGAL",
	IDENTIFIER: "IDENTIFIER",
	NUMBER:     "NUMBER",
	LPAREN:     "LPAREN",
	RPAREN:     "RPAREN",
	COMMA:      "COMMA",
	PLUS:       "PLUS",
	MINUS:      "MINUS",
	STAR:       "STAR",
	SLASH:      "SLASH",
	CARET:      "CARET",
}

func (t TokenType) String() string {
	if int(t) < len(tokenNames) && int(t) >= 0 {
		return tokenNames[t]
	}
	return fmt.Sprintf("TokenType(%d)", int(t))
}

// SymbolTokens maps single punctuation characters to their token types.
// Every symbol the grammar recognizes is exactly one byte wide.
var SymbolTokens = map[byte]TokenType{
	'(': LPAREN,
	')': RPAREN,
	',': COMMA,
	'+': PLUS,
	'-': MINUS,
	'*': STAR,
	'/': SLASH,
	'^': CARET,
}

// Token represents a single token with position information.
// Tokens are immutable once produced; the parser only reads them.
type Token struct {
	Type   TokenType
	Value  string // raw token text
	Num    int64  // parsed value, set only for NUMBER tokens
	Line   int    // 1-based line number
	Column int    // 1-based column number
}

// Position returns a formatted position string for error reporting
func (t Token) Position() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}
