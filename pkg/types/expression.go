// Package types defines the core types shared by the gocalc packages.
//
// This package contains type definitions for:
//   - Expression: a parsed expression together with its source
//   - Node: the closed set of expression tree nodes
//   - Error: structured errors with codes and source positions
package types

// Expression represents a parsed expression.
//
// An Expression can be evaluated and rendered any number of times. It is
// safe for concurrent use by multiple goroutines because its tree is never
// modified after parsing.
type Expression struct {
	ast    Node
	source string
}

// NewExpression creates a new Expression from a tree.
func NewExpression(ast Node, source string) *Expression {
	return &Expression{
		ast:    ast,
		source: source,
	}
}

// AST returns the root node of the expression.
func (e *Expression) AST() Node {
	return e.ast
}

// Source returns the original source text of the expression.
func (e *Expression) Source() string {
	return e.source
}

// String returns the original source text.
func (e *Expression) String() string {
	return e.source
}
