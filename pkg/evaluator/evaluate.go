package evaluator

import (
	"fmt"
	"math"

	"github.com/sandrolain/gocalc/pkg/types"
)

// Evaluate computes the value of a tree using int64 arithmetic.
// Overflow wraps around; use an Evaluator with WithCheckedArithmetic to
// detect it instead.
func Evaluate(node types.Node) int64 {
	switch n := node.(type) {
	case *types.Constant:
		return n.Value
	case *types.Negate:
		return -Evaluate(n.Operand)
	case *types.Add:
		return Evaluate(n.Left) + Evaluate(n.Right)
	case *types.Subtract:
		return Evaluate(n.Left) - Evaluate(n.Right)
	case *types.Parenthesized:
		return Evaluate(n.Inner)
	default:
		panic(fmt.Sprintf("evaluator: unknown node %T", node))
	}
}

// evaluateChecked is Evaluate with overflow detection.
func evaluateChecked(node types.Node) (int64, error) {
	switch n := node.(type) {
	case *types.Constant:
		return n.Value, nil
	case *types.Negate:
		v, err := evaluateChecked(n.Operand)
		if err != nil {
			return 0, err
		}
		if v == math.MinInt64 {
			return 0, overflow(n, "-%d", v)
		}
		return -v, nil
	case *types.Add:
		l, r, err := evaluatePair(n.Left, n.Right)
		if err != nil {
			return 0, err
		}
		sum := l + r
		// Same-sign operands producing a different-sign result overflowed.
		if (l >= 0) == (r >= 0) && (sum >= 0) != (l >= 0) {
			return 0, overflow(n, "%d + %d", l, r)
		}
		return sum, nil
	case *types.Subtract:
		l, r, err := evaluatePair(n.Left, n.Right)
		if err != nil {
			return 0, err
		}
		diff := l - r
		if (l >= 0) != (r >= 0) && (diff >= 0) != (l >= 0) {
			return 0, overflow(n, "%d - %d", l, r)
		}
		return diff, nil
	case *types.Parenthesized:
		return evaluateChecked(n.Inner)
	default:
		return 0, types.NewError(types.ErrInvalidExpression,
			fmt.Sprintf("unknown node %T", node), -1)
	}
}

func evaluatePair(left, right types.Node) (int64, int64, error) {
	l, err := evaluateChecked(left)
	if err != nil {
		return 0, 0, err
	}
	r, err := evaluateChecked(right)
	if err != nil {
		return 0, 0, err
	}
	return l, r, nil
}

func overflow(n types.Node, format string, args ...interface{}) error {
	return types.NewError(types.ErrNumberTooLarge,
		"integer overflow in "+fmt.Sprintf(format, args...), n.Pos())
}
