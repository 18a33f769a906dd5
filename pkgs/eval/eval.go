// Package eval executes parsed expression trees against an environment
// of integer variables and host functions. The parser itself never
// evaluates; arithmetic failures only surface here.
package eval

import (
	"fmt"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/prattle-dev/prattle/pkgs/ast"
)

// Func is a host function callable from an expression
type Func func(args []int64) (int64, error)

// Env supplies variable and function bindings for evaluation. A nil Env
// behaves like an empty one.
type Env struct {
	Vars  map[string]int64
	Funcs map[string]Func
}

// ArithmeticError represents a failure of an arithmetic operation at
// evaluation time, such as division by zero
type ArithmeticError struct {
	Message string
}

func (e *ArithmeticError) Error() string {
	return e.Message
}

// Eval evaluates the tree bottom-up. The operator match is total over
// the closed ast.Operator set.
func Eval(node ast.Node, env *Env) (int64, error) {
	if env == nil {
		env = &Env{}
	}

	switch n := node.(type) {
	case *ast.NumberLit:
		return n.Value, nil

	case *ast.Ident:
		if v, ok := env.Vars[n.Name]; ok {
			return v, nil
		}
		return 0, undefinedErr("variable", n.Name, keys(env.Vars))

	case *ast.UnaryExpr:
		operand, err := Eval(n.Operand, env)
		if err != nil {
			return 0, err
		}
		if n.Op != ast.Negate {
			return 0, fmt.Errorf("operator %s is not unary", n.Op)
		}
		return -operand, nil

	case *ast.BinaryExpr:
		left, err := Eval(n.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := Eval(n.Right, env)
		if err != nil {
			return 0, err
		}
		return apply(n.Op, left, right)

	case *ast.CallExpr:
		fn, ok := env.Funcs[n.Callee]
		if !ok {
			return 0, undefinedErr("function", n.Callee, funcNames(env.Funcs))
		}
		args := make([]int64, len(n.Args))
		for i, argNode := range n.Args {
			arg, err := Eval(argNode, env)
			if err != nil {
				return 0, err
			}
			args[i] = arg
		}
		return fn(args)

	default:
		return 0, fmt.Errorf("cannot evaluate %T", node)
	}
}

// apply performs one binary arithmetic operation
func apply(op ast.Operator, left, right int64) (int64, error) {
	switch op {
	case ast.Add:
		return left + right, nil
	case ast.Subtract:
		return left - right, nil
	case ast.Multiply:
		return left * right, nil
	case ast.Divide:
		return floorDiv(left, right)
	case ast.Power:
		return ipow(left, right)
	default:
		return 0, fmt.Errorf("operator %s is not binary", op)
	}
}

// floorDiv divides rounding toward negative infinity
func floorDiv(a, b int64) (int64, error) {
	if b == 0 {
		return 0, &ArithmeticError{Message: "division by zero"}
	}
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q, nil
}

// ipow raises base to exp by repeated squaring
func ipow(base, exp int64) (int64, error) {
	if exp < 0 {
		return 0, &ArithmeticError{Message: fmt.Sprintf("negative exponent %d", exp)}
	}
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result, nil
}

// undefinedErr builds a not-found error, with a fuzzy "did you mean"
// suggestion when one of the known names is close enough
func undefinedErr(kind, name string, known []string) error {
	if suggestion := closest(name, known); suggestion != "" {
		return fmt.Errorf("undefined %s %q (did you mean %q?)", kind, name, suggestion)
	}
	return fmt.Errorf("undefined %s %q", kind, name)
}

// closest returns the best fuzzy match for name among candidates, or ""
func closest(name string, candidates []string) string {
	ranks := fuzzy.RankFindFold(name, candidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

func keys(m map[string]int64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}

func funcNames(m map[string]Func) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	return names
}
