package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a gocalc error code.
type ErrorCode string

// Error codes.
const (
	// S01xx: lexical errors
	ErrUnexpectedCharacter ErrorCode = "S0101"
	ErrNumberOutOfRange    ErrorCode = "S0102"

	// S02xx: syntax errors
	ErrTrailingInput ErrorCode = "S0201"
	ErrExpectedToken ErrorCode = "S0202"
	ErrMaxDepth      ErrorCode = "S0203"

	// D1xxx: evaluation errors
	ErrNumberTooLarge    ErrorCode = "D1001"
	ErrInvalidExpression ErrorCode = "D1002"
)

// Error classes, for use with errors.Is.
var (
	ErrLex   = errors.New("lex error")
	ErrParse = errors.New("parse error")
	ErrEval  = errors.New("evaluation error")
)

// Class returns the sentinel error matching the code's class.
// A literal too large for int64 is a syntax problem, not a lexical one:
// the lexer accepted the digit run.
func (c ErrorCode) Class() error {
	switch {
	case c == ErrNumberOutOfRange:
		return ErrParse
	case strings.HasPrefix(string(c), "S01"):
		return ErrLex
	case strings.HasPrefix(string(c), "S02"):
		return ErrParse
	case strings.HasPrefix(string(c), "D"):
		return ErrEval
	default:
		return nil
	}
}

// Error represents a structured gocalc error.
type Error struct {
	Code     ErrorCode
	Message  string
	Position int
	// Token is the offending source text: the unexpected character for
	// lexical errors, the actual token for syntax errors.
	Token string
	// Expected names the token kind a production required. Syntax errors only.
	Expected string
	Err      error
}

// NewError creates a new error.
func NewError(code ErrorCode, message string, position int) *Error {
	return &Error{
		Code:     code,
		Message:  message,
		Position: position,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s at position %d: %s", e.Code, e.Position, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is the class sentinel of e's code.
func (e *Error) Is(target error) bool {
	return target != nil && e.Code.Class() == target
}

// WithToken adds token information to the error.
func (e *Error) WithToken(token string) *Error {
	e.Token = token
	return e
}

// WithExpected records the token kind that was required.
func (e *Error) WithExpected(expected string) *Error {
	e.Expected = expected
	return e
}

// WithCause wraps another error.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

// AsError returns the *Error in err's chain, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
