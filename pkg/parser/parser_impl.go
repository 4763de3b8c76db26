package parser

import (
	"fmt"
	"strconv"

	"github.com/sandrolain/gocalc/pkg/types"
)

// Parser implements a recursive descent parser for calculator expressions.
//
// Grammar, outermost production first:
//
//	expression   ::= addition
//	addition     ::= subtraction ( '+' subtraction )*
//	subtraction  ::= atomic ( '-' atomic )*
//	atomic       ::= braces | number
//	braces       ::= '(' expression ')'
//	number       ::= ('-')? NUMBER
//
// Unary minus only binds to a literal: "-(1+2)" is rejected.
//
// A Parser is single use and not safe for concurrent use.
type Parser struct {
	input  string
	tokens []Token
	pos    int // index of the current token
	depth  int // current parenthesis nesting
	lexErr error
	opts   CompileOptions
}

// NewParser creates a new parser for the given input string.
// The input is tokenized eagerly; a lexical error is reported by Parse.
func NewParser(input string, opts ...CompileOption) *Parser {
	options := CompileOptions{
		MaxDepth: 10000,
	}
	for _, opt := range opts {
		opt(&options)
	}

	tokens, err := Tokenize(input)

	return &Parser{
		input:  input,
		tokens: tokens,
		lexErr: err,
		opts:   options,
	}
}

// Parse parses the entire expression and returns it.
func (p *Parser) Parse() (*types.Expression, error) {
	if p.lexErr != nil {
		return nil, p.lexErr
	}

	node, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.Type != TokenEOF {
		return nil, p.errorAt(tok, types.ErrTrailingInput,
			fmt.Sprintf("expected %s, found %s", TokenEOF, tok)).WithExpected(TokenEOF.String())
	}

	return types.NewExpression(node, p.input), nil
}

// peek returns the current token without consuming it.
// Past the end it keeps returning the trailing EOF token.
func (p *Parser) peek() Token {
	return p.tokens[p.pos]
}

// advance consumes the current token and returns it.
func (p *Parser) advance() Token {
	t := p.tokens[p.pos]
	if t.Type != TokenEOF {
		p.pos++
	}
	return t
}

// expect consumes the current token if it has type tt.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.errorAt(tok, types.ErrExpectedToken,
			fmt.Sprintf("expected %s, found %s", tt, tok)).WithExpected(tt.String())
	}
	return p.advance(), nil
}

// errorAt creates a syntax error located at tok.
func (p *Parser) errorAt(tok Token, code types.ErrorCode, message string) *types.Error {
	return types.NewError(code, message, tok.Position).WithToken(tok.String())
}

// parseExpression parses the expression production.
func (p *Parser) parseExpression() (types.Node, error) {
	return p.parseAddition()
}

// parseAddition folds subtraction chains joined by '+' into left-associative Add nodes.
func (p *Parser) parseAddition() (types.Node, error) {
	left, err := p.parseSubtraction()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == TokenPlus {
		p.advance()
		right, err := p.parseSubtraction()
		if err != nil {
			return nil, err
		}
		left = types.NewAdd(left, right)
	}

	return left, nil
}

// parseSubtraction folds atoms joined by '-' into left-associative Subtract nodes.
func (p *Parser) parseSubtraction() (types.Node, error) {
	left, err := p.parseAtomic()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == TokenMinus {
		p.advance()
		right, err := p.parseAtomic()
		if err != nil {
			return nil, err
		}
		left = types.NewSubtract(left, right)
	}

	return left, nil
}

func (p *Parser) parseAtomic() (types.Node, error) {
	if p.peek().Type == TokenParenOpen {
		return p.parseBraces()
	}
	return p.parseNumber()
}

// parseBraces parses a parenthesized sub-expression.
func (p *Parser) parseBraces() (types.Node, error) {
	open, err := p.expect(TokenParenOpen)
	if err != nil {
		return nil, err
	}

	p.depth++
	defer func() { p.depth-- }()
	if p.opts.MaxDepth > 0 && p.depth > p.opts.MaxDepth {
		return nil, p.errorAt(open, types.ErrMaxDepth,
			fmt.Sprintf("parentheses nested deeper than %d", p.opts.MaxDepth))
	}

	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(TokenParenClose); err != nil {
		return nil, err
	}

	return types.NewParenthesized(inner, open.Position), nil
}

// parseNumber parses an optionally negated literal.
func (p *Parser) parseNumber() (types.Node, error) {
	if p.peek().Type == TokenMinus {
		minus := p.advance()
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return types.NewNegate(lit, minus.Position), nil
	}
	return p.parseLiteral()
}

func (p *Parser) parseLiteral() (*types.Constant, error) {
	tok, err := p.expect(TokenNumber)
	if err != nil {
		return nil, err
	}

	val, err := strconv.ParseInt(tok.Value, 10, 64)
	if err != nil {
		return nil, p.errorAt(tok, types.ErrNumberOutOfRange,
			fmt.Sprintf("number out of range: %s", tok.Value)).WithCause(err)
	}

	return types.NewConstant(val, tok.Position), nil
}
