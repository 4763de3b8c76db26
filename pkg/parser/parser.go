// Package parser implements the gocalc tokenizer and parser.
//
// The parser uses a hand-written recursive descent approach with one method
// per grammar production and a single token of lookahead. Errors carry the
// source position of the offending character or token.
//
// # Architecture
//
// The parser consists of two components:
//   - Lexer: Tokenizes the input expression into a stream of tokens
//   - Parser: Builds the expression tree from the token slice
//
// # Example
//
//	expr, err := parser.Parse("10 + ((51+9)-(-17-3)) + 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	root := expr.AST()
package parser

import (
	"github.com/sandrolain/gocalc/pkg/types"
)

// Parse parses an expression and returns it.
//
// If parsing fails, it returns a *types.Error with position information.
// Lexical errors match types.ErrLex and syntax errors match types.ErrParse
// under errors.Is.
//
// Example:
//
//	expr, err := parser.Parse("1 + 2")
//	if err != nil {
//	    var perr *types.Error
//	    if errors.As(err, &perr) {
//	        fmt.Printf("error at position %d\n", perr.Position)
//	    }
//	    return
//	}
func Parse(query string) (*types.Expression, error) {
	p := NewParser(query)
	return p.Parse()
}

// Compile is Parse with options.
func Compile(query string, opts ...CompileOption) (*types.Expression, error) {
	p := NewParser(query, opts...)
	return p.Parse()
}

// CompileOption configures compilation behavior.
type CompileOption func(*CompileOptions)

// CompileOptions holds parser configuration.
type CompileOptions struct {
	// MaxDepth limits parenthesis nesting to prevent stack overflow.
	// Zero disables the limit.
	MaxDepth int
}

// WithMaxDepth sets the maximum parenthesis nesting depth.
func WithMaxDepth(depth int) CompileOption {
	return func(opts *CompileOptions) {
		opts.MaxDepth = depth
	}
}
