// Package gocalc provides a tokenizer, parser and evaluator for integer
// expressions built from literals, '+', '-' and parentheses.
//
// Addition and subtraction are left-associative. A unary minus is only
// allowed directly in front of a number: "-17" is valid, "-(1+2)" is not.
//
// # Quick Start
//
//	// Simple evaluation
//	v, err := gocalc.Eval("10 + ((51+9)-(-17-3)) + 1") // 91
//
//	// Parse once, evaluate and render many times
//	expr, err := gocalc.Compile("5 +6 -   ( 7+ 4) ")
//	v := evaluator.Evaluate(expr.AST())  // 0
//	s := printer.Render(expr.AST())      // "5 + 6 - ( 7 + 4 )"
//
// # More Information
//
// For detailed documentation, see:
//   - Parser: github.com/sandrolain/gocalc/pkg/parser
//   - Evaluator: github.com/sandrolain/gocalc/pkg/evaluator
//   - Printer: github.com/sandrolain/gocalc/pkg/printer
//   - Types: github.com/sandrolain/gocalc/pkg/types
package gocalc

import (
	"context"
	"fmt"

	"github.com/sandrolain/gocalc/pkg/evaluator"
	"github.com/sandrolain/gocalc/pkg/parser"
	"github.com/sandrolain/gocalc/pkg/printer"
	"github.com/sandrolain/gocalc/pkg/types"
)

// Version returns the current version of gocalc.
func Version() string {
	return "v0.1.0-dev"
}

// Parse parses an expression. It fails with an error matching types.ErrLex
// or types.ErrParse.
func Parse(text string) (*types.Expression, error) {
	return parser.Parse(text)
}

// Compile parses an expression with options.
//
// The returned expression can be evaluated and rendered any number of
// times and is safe for concurrent use.
func Compile(text string, opts ...parser.CompileOption) (*types.Expression, error) {
	return parser.Compile(text, opts...)
}

// Eval is a convenience function that parses and evaluates an expression
// in a single call.
func Eval(text string, opts ...evaluator.EvalOption) (int64, error) {
	return EvalWithContext(context.Background(), text, opts...)
}

// EvalWithContext evaluates an expression with a custom context.
func EvalWithContext(ctx context.Context, text string, opts ...evaluator.EvalOption) (int64, error) {
	return evaluator.New(opts...).EvalString(ctx, text)
}

// Render parses text and returns its canonical form.
func Render(text string) (string, error) {
	expr, err := Parse(text)
	if err != nil {
		return "", err
	}
	return printer.Render(expr.AST()), nil
}

// MustCompile is like Compile but panics if the expression cannot be parsed.
// It simplifies safe initialization of global variables.
func MustCompile(text string) *types.Expression {
	expr, err := Compile(text)
	if err != nil {
		panic(fmt.Sprintf("gocalc: Compile(%q): %v", text, err))
	}
	return expr
}
