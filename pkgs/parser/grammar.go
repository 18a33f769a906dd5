package parser

import (
	"github.com/prattle-dev/prattle/pkgs/ast"
	"github.com/prattle-dev/prattle/pkgs/lexer"
)

// Binding powers control how eagerly an infix token absorbs a following
// sub-expression. Higher binds tighter. Tokens absent from the table
// bind at 0 and can never extend an expression.
const (
	bpSum      = 10 // + -
	bpQuotient = 20 // /
	bpProduct  = 30 // *
	bpPower    = 40 // ^
	bpCall     = 80 // ( as call/grouping
)

var bindingPower = map[lexer.TokenType]int{
	lexer.LPAREN: bpCall,
	lexer.CARET:  bpPower,
	lexer.STAR:   bpProduct,
	lexer.SLASH:  bpQuotient,
	lexer.PLUS:   bpSum,
	lexer.MINUS:  bpSum,
}

// prefixParselet handles a token found where a value is expected (nud)
type prefixParselet func(*Parser, lexer.Token) (ast.Node, error)

// infixParselet extends an already-parsed left expression (led)
type infixParselet func(*Parser, lexer.Token, ast.Node) (ast.Node, error)

// The grammar is a fixed table: adding an operator means adding a
// binding power and one parselet row, nothing else.
var prefixParselets map[lexer.TokenType]prefixParselet

var infixParselets map[lexer.TokenType]infixParselet

// The tables are populated in init rather than at declaration to break
// the initialization cycle through parseExpression.
func init() {
	prefixParselets = map[lexer.TokenType]prefixParselet{
		lexer.IDENTIFIER: identParselet,
		lexer.NUMBER:     numberParselet,
		lexer.LPAREN:     groupParselet,
		lexer.PLUS:       unaryPlusParselet,
		lexer.MINUS:      unaryMinusParselet,
	}

	infixParselets = map[lexer.TokenType]infixParselet{
		lexer.LPAREN: callParselet,
		lexer.PLUS:   binaryParselet(ast.Add, bpSum),
		lexer.MINUS:  binaryParselet(ast.Subtract, bpSum),
		lexer.STAR:   binaryParselet(ast.Multiply, bpProduct),
		lexer.SLASH:  binaryParselet(ast.Divide, bpQuotient),
		// right-associative: recurse one below its own binding power so a
		// trailing ^ is absorbed into the right operand
		lexer.CARET: binaryParselet(ast.Power, bpPower-1),
	}
}

func identParselet(p *Parser, tok lexer.Token) (ast.Node, error) {
	return &ast.Ident{Name: tok.Value}, nil
}

func numberParselet(p *Parser, tok lexer.Token) (ast.Node, error) {
	return &ast.NumberLit{Value: tok.Num}, nil
}

// groupParselet parses a parenthesized sub-expression. The grouped value
// is returned verbatim, without a wrapping node.
func groupParselet(p *Parser, tok lexer.Token) (ast.Node, error) {
	node, err := p.parseExpression(0)
	if err != nil {
		return nil, err
	}
	if next := p.next(); next.Type != lexer.RPAREN {
		return nil, NewParseError(next, "expected closing parenthesis, got %s", describe(next))
	}
	return node, nil
}

// unaryPlusParselet is a no-op: +x parses as x with no wrapping node
func unaryPlusParselet(p *Parser, tok lexer.Token) (ast.Node, error) {
	return p.parseExpression(bpSum)
}

func unaryMinusParselet(p *Parser, tok lexer.Token) (ast.Node, error) {
	operand, err := p.parseExpression(bpSum)
	if err != nil {
		return nil, err
	}
	return &ast.UnaryExpr{Op: ast.Negate, Operand: operand}, nil
}

// binaryParselet builds the led for an infix operator with the given
// right binding power
func binaryParselet(op ast.Operator, rightBP int) infixParselet {
	return func(p *Parser, tok lexer.Token, left ast.Node) (ast.Node, error) {
		right, err := p.parseExpression(rightBP)
		if err != nil {
			return nil, err
		}
		return &ast.BinaryExpr{Op: op, Left: left, Right: right}, nil
	}
}

// callParselet parses a function application: the callee must be a bare
// identifier, and the argument list is comma-separated with no trailing
// comma (a comma directly before ')' leaves ')' in prefix position,
// which fails).
func callParselet(p *Parser, tok lexer.Token, left ast.Node) (ast.Node, error) {
	callee, ok := left.(*ast.Ident)
	if !ok {
		return nil, NewParseError(tok, "cannot invoke expression as a function")
	}

	if p.peek().Type == lexer.RPAREN {
		p.next()
		return &ast.CallExpr{Callee: callee.Name}, nil
	}

	var args []ast.Node
	for {
		arg, err := p.parseExpression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch next := p.next(); next.Type {
		case lexer.RPAREN:
			return &ast.CallExpr{Callee: callee.Name, Args: args}, nil
		case lexer.COMMA:
			// next iteration parses the following argument
		default:
			return nil, NewParseError(next, "expected comma or closing parenthesis, got %s", describe(next))
		}
	}
}
