package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prattle-dev/prattle/pkgs/eval"
	"github.com/prattle-dev/prattle/pkgs/lexer"
	"github.com/prattle-dev/prattle/pkgs/parser"
	"github.com/prattle-dev/prattle/pkgs/suite"
	"github.com/prattle-dev/prattle/pkgs/wire"
)

// Build-time variables - can be set via ldflags
var (
	Version   string = "dev"
	BuildTime string = "unknown"
	GitCommit string = "unknown"
)

// Global flags
var (
	trace    bool
	varFlags []string
	output   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "prattle <expression>",
	Short: "Parse arithmetic expressions with a Pratt parser",
	Long: `prattle parses infix arithmetic expressions (identifiers, integers,
+ - * / ^, unary minus, grouping, and function calls) into a syntax tree
and prints the tree in fully-parenthesized prefix form.

Example expression: (a() + 2) * 3 ^ 4 ^ 5`,
	Args: cobra.ExactArgs(1),
	RunE: parseCommand,
}

var tokensCmd = &cobra.Command{
	Use:   "tokens <expression>",
	Short: "Print the token stream for an expression",
	Long:  "Tokenize an expression and print one token per line without parsing it.",
	Args:  cobra.ExactArgs(1),
	RunE:  tokensCommand,
}

var evalCmd = &cobra.Command{
	Use:   "eval <expression>",
	Short: "Parse and evaluate an expression",
	Long: `Parse an expression and evaluate it as integer arithmetic.
Variables are supplied with repeated --var flags, e.g. --var x=4.
The builtin functions abs, min and max are always available.`,
	Args: cobra.ExactArgs(1),
	RunE: evalCommand,
}

var exportCmd = &cobra.Command{
	Use:   "export <expression>",
	Short: "Parse an expression and write the tree in wire format",
	Long:  "Parse an expression and write the binary tree encoding to the output file (or stdout).",
	Args:  cobra.ExactArgs(1),
	RunE:  exportCommand,
}

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a tree previously written by export",
	Args:  cobra.ExactArgs(1),
	RunE:  showCommand,
}

var checkCmd = &cobra.Command{
	Use:   "check <suite.json>",
	Short: "Run a JSON suite of expression cases",
	Long: `Run a suite file: a JSON document with a "cases" array of
{"expr": ..., "want": ...} objects. Each expression is parsed and its
rendering compared against the expected value.`,
	Args: cobra.ExactArgs(1),
	RunE: checkCommand,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("prattle %s\n", Version)
		fmt.Printf("Built: %s\n", BuildTime)
		fmt.Printf("Commit: %s\n", GitCommit)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&trace, "trace", false, "Print one line per parse step to stderr")

	evalCmd.Flags().StringArrayVar(&varFlags, "var", nil, "Variable binding NAME=VALUE (repeatable)")
	exportCmd.Flags().StringVarP(&output, "output", "o", "", "Output file path (default: stdout)")

	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

// parseOpts builds the parser options from the global flags
func parseOpts() []parser.Option {
	var opts []parser.Option
	if trace {
		opts = append(opts, parser.WithTrace(os.Stderr))
	}
	return opts
}

func parseCommand(cmd *cobra.Command, args []string) error {
	node, err := parser.Parse(args[0], parseOpts()...)
	if err != nil {
		return fmt.Errorf("error parsing expression: %w", err)
	}

	fmt.Println(node)
	return nil
}

func tokensCommand(cmd *cobra.Command, args []string) error {
	tokens, err := lexer.New(args[0]).Tokenize()
	if err != nil {
		return fmt.Errorf("error tokenizing expression: %w", err)
	}

	for _, tok := range tokens {
		fmt.Printf("%-10s %q @%s\n", tok.Type, tok.Value, tok.Position())
	}
	return nil
}

func evalCommand(cmd *cobra.Command, args []string) error {
	node, err := parser.Parse(args[0], parseOpts()...)
	if err != nil {
		return fmt.Errorf("error parsing expression: %w", err)
	}

	env := &eval.Env{
		Vars:  make(map[string]int64),
		Funcs: builtinFuncs(),
	}
	for _, binding := range varFlags {
		name, value, ok := strings.Cut(binding, "=")
		if !ok {
			return fmt.Errorf("invalid --var %q: expected NAME=VALUE", binding)
		}
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid --var %q: %w", binding, err)
		}
		env.Vars[name] = n
	}

	result, err := eval.Eval(node, env)
	if err != nil {
		return fmt.Errorf("error evaluating expression: %w", err)
	}

	fmt.Println(result)
	return nil
}

// builtinFuncs returns the functions available to eval
func builtinFuncs() map[string]eval.Func {
	return map[string]eval.Func{
		"abs": func(args []int64) (int64, error) {
			if len(args) != 1 {
				return 0, fmt.Errorf("abs expects 1 argument, got %d", len(args))
			}
			if args[0] < 0 {
				return -args[0], nil
			}
			return args[0], nil
		},
		"min": func(args []int64) (int64, error) {
			if len(args) == 0 {
				return 0, fmt.Errorf("min expects at least 1 argument")
			}
			m := args[0]
			for _, a := range args[1:] {
				if a < m {
					m = a
				}
			}
			return m, nil
		},
		"max": func(args []int64) (int64, error) {
			if len(args) == 0 {
				return 0, fmt.Errorf("max expects at least 1 argument")
			}
			m := args[0]
			for _, a := range args[1:] {
				if a > m {
					m = a
				}
			}
			return m, nil
		},
	}
}

func exportCommand(cmd *cobra.Command, args []string) error {
	node, err := parser.Parse(args[0], parseOpts()...)
	if err != nil {
		return fmt.Errorf("error parsing expression: %w", err)
	}

	out := os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("error creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := wire.Encode(out, node); err != nil {
		return fmt.Errorf("error encoding tree: %w", err)
	}
	return nil
}

func showCommand(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("error opening file %s: %w", args[0], err)
	}
	defer f.Close()

	node, err := wire.Decode(f)
	if err != nil {
		return fmt.Errorf("error decoding tree: %w", err)
	}

	fmt.Println(node)
	return nil
}

func checkCommand(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("error opening suite %s: %w", args[0], err)
	}
	defer f.Close()

	s, err := suite.Load(f)
	if err != nil {
		return fmt.Errorf("error loading suite: %w", err)
	}

	failed := 0
	for _, res := range s.Run() {
		switch {
		case res.Passed:
			fmt.Printf("ok   %s\n", res.Case.Expr)
		case res.Err != nil:
			failed++
			fmt.Printf("FAIL %s: %v\n", res.Case.Expr, res.Err)
		default:
			failed++
			fmt.Printf("FAIL %s: got %s, want %s\n", res.Case.Expr, res.Got, res.Case.Want)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d cases failed", failed, len(s.Cases))
	}
	return nil
}
