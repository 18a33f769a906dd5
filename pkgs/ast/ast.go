package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Node represents any node in the expression tree. Nodes are built
// bottom-up by the parser and never mutated afterwards; every interior
// node exclusively owns its children.
type Node interface {
	// String renders the node in fully-parenthesized prefix form:
	// operator nodes as "(name child child)", calls as "f(a, b)".
	String() string
	// node keeps the set of implementations closed to this package.
	node()
}

// Operator identifies an arithmetic operation. The enum is closed so
// that evaluation can be a total match, and each operator carries its
// own display name rather than deriving it reflectively.
type Operator int

const (
	Add Operator = iota
	Subtract
	Multiply
	Divide // floor division
	Power
	Negate
)

var operatorNames = [...]string{
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
	Power:    "power",
	Negate:   "negate",
}

func (op Operator) String() string {
	if int(op) < len(operatorNames) && int(op) >= 0 {
		return operatorNames[op]
	}
	return fmt.Sprintf("Operator(%d)", int(op))
}

// Ident is a bare name leaf: a variable reference or, as the direct
// child of a CallExpr, the callee.
type Ident struct {
	Name string
}

func (i *Ident) String() string { return i.Name }
func (i *Ident) node()          {}

// NumberLit is a non-negative integer literal leaf
type NumberLit struct {
	Value int64
}

func (n *NumberLit) String() string { return strconv.FormatInt(n.Value, 10) }
func (n *NumberLit) node()          {}

// UnaryExpr applies an operator to a single operand. The parser only
// produces it for unary minus; unary plus is a no-op and builds no node.
type UnaryExpr struct {
	Op      Operator
	Operand Node
}

func (u *UnaryExpr) String() string {
	return fmt.Sprintf("(%s %s)", u.Op, u.Operand)
}
func (u *UnaryExpr) node() {}

// BinaryExpr applies an infix operator to two operands
type BinaryExpr struct {
	Op    Operator
	Left  Node
	Right Node
}

func (b *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Op, b.Left, b.Right)
}
func (b *BinaryExpr) node() {}

// CallExpr is a function application. The callee is always a plain
// identifier; calling any other expression is rejected at parse time.
type CallExpr struct {
	Callee string
	Args   []Node
}

func (c *CallExpr) String() string {
	var sb strings.Builder
	sb.WriteString(c.Callee)
	sb.WriteByte('(')
	for i, arg := range c.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte(')')
	return sb.String()
}
func (c *CallExpr) node() {}
