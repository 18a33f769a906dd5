package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/prattle-dev/prattle/pkgs/ast"
	"github.com/prattle-dev/prattle/pkgs/lexer"
)

// Option configures a Parser
type Option func(*config)

type config struct {
	trace io.Writer
}

// WithTrace enables a human-readable trace of every descent, token
// dispatch and ascent, one line each, indented by recursion depth.
// Purely diagnostic; it never influences parsing.
func WithTrace(w io.Writer) Option {
	return func(c *config) {
		c.trace = w
	}
}

// Parser implements a Pratt (precedence climbing) parser over a token
// stream. Each Parser owns its stream exclusively and consumes it front
// to back; create a new Parser per expression.
type Parser struct {
	tokens []lexer.Token
	pos    int
	trace  io.Writer
	depth  int // recursion depth, used only for trace indentation
}

// Parse tokenizes the input and parses it as a single expression,
// rejecting any trailing input after the expression ends.
func Parse(input string, opts ...Option) (ast.Node, error) {
	tokens, err := lexer.New(input).Tokenize()
	if err != nil {
		return nil, err
	}

	p := NewParser(tokens, opts...)
	node, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Type != lexer.EOF {
		return nil, NewParseError(tok, "unexpected %s after expression", describe(tok))
	}
	return node, nil
}

// NewParser creates a parser over an already-tokenized stream. The
// stream must be terminated by an EOF token, as produced by
// lexer.Tokenize.
func NewParser(tokens []lexer.Token, opts ...Option) *Parser {
	c := &config{}
	for _, opt := range opts {
		opt(c)
	}
	return &Parser{
		tokens: tokens,
		trace:  c.trace,
	}
}

// ParseExpression parses one complete expression from the stream and
// leaves the stream positioned just after it. The next unconsumed token
// is EOF, or a delimiter belonging to an enclosing construct.
func (p *Parser) ParseExpression() (ast.Node, error) {
	return p.parseExpression(0)
}

// parseExpression returns the next expression whose span binds at least
// as tightly as minBP: it consumes one token for its prefix behavior,
// then keeps absorbing infix continuations while the peeked token binds
// strictly tighter than minBP.
func (p *Parser) parseExpression(minBP int) (ast.Node, error) {
	p.tracef("parse(%d)", minBP)
	p.depth++

	tok := p.next()
	prefix, ok := prefixParselets[tok.Type]
	if !ok {
		return nil, NewParseError(tok, "%s is not valid in prefix position", describe(tok))
	}

	p.tracef("nud(%s)", describeTrace(tok))
	left, err := prefix(p, tok)
	if err != nil {
		return nil, err
	}

	for bindingPower[p.peek().Type] > minBP {
		tok = p.next()
		infix, ok := infixParselets[tok.Type]
		if !ok {
			return nil, NewParseError(tok, "%s is not valid in infix position", describe(tok))
		}

		p.tracef("led(%s)", describeTrace(tok))
		if left, err = infix(p, tok, left); err != nil {
			return nil, err
		}
	}

	p.depth--
	p.tracef("<=")
	return left, nil
}

// peek returns the next unconsumed token without consuming it
func (p *Parser) peek() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Type: lexer.EOF}
	}
	return p.tokens[p.pos]
}

// next consumes and returns the next token
func (p *Parser) next() lexer.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// tracef writes one indented trace line when tracing is enabled
func (p *Parser) tracef(format string, args ...interface{}) {
	if p.trace == nil {
		return
	}
	padding := strings.Repeat("  ", p.depth)
	fmt.Fprintf(p.trace, padding+format+"\n", args...)
}

// describeTrace names a token for trace output
func describeTrace(tok lexer.Token) string {
	if tok.Type == lexer.EOF {
		return "EOF"
	}
	return tok.Value
}
