package evaluator_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gocalc/pkg/cache"
	"github.com/sandrolain/gocalc/pkg/evaluator"
	"github.com/sandrolain/gocalc/pkg/parser"
	"github.com/sandrolain/gocalc/pkg/types"
)

func mustParse(t *testing.T, input string) *types.Expression {
	t.Helper()
	expr, err := parser.Parse(input)
	require.NoError(t, err, "parsing %q", input)
	return expr
}

func TestEvaluate(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{"5", 5},
		{"-17", -17},
		{"1+2+3", 6},
		{"10-3-2", 5},
		{"(1)", 1},
		{"5 +6 -   ( 7+ 4) ", 0},
		{"10 + ((51+9)-(-17-3)) + 1", 91},
		{"5+6", 11},
		{" 5  +   6 ", 11},
		{"3--4", 7},
		{"1-2+3-4", -2},
		{"10-(3-2)", 9},
		{"0", 0},
		{"-0", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, evaluator.Evaluate(mustParse(t, tt.input).AST()))
		})
	}
}

func TestEvaluateHandBuiltTree(t *testing.T) {
	// 5 + (6 - (7 + 4))
	tree := types.NewAdd(
		types.NewConstant(5, 0),
		types.NewSubtract(
			types.NewConstant(6, 0),
			types.NewParenthesized(types.NewAdd(types.NewConstant(7, 0), types.NewConstant(4, 0)), 0),
		),
	)
	assert.Equal(t, int64(0), evaluator.Evaluate(tree))
}

func TestEvaluateWrapsAround(t *testing.T) {
	expr := mustParse(t, "9223372036854775807 + 1")
	assert.Equal(t, int64(math.MinInt64), evaluator.Evaluate(expr.AST()))
}

func TestEvalChecked(t *testing.T) {
	ev := evaluator.New(evaluator.WithCheckedArithmetic(true))
	ctx := context.Background()

	tests := []struct {
		input    string
		want     int64
		overflow bool
	}{
		{"9223372036854775807 + 1", 0, true},
		{"-9223372036854775807 - 2", 0, true},
		{"1 - -9223372036854775807 - 1", 0, true},
		{"9223372036854775807 - 1 + 1", math.MaxInt64, false},
		{"-9223372036854775807 - 1", math.MinInt64, false},
		{"10 + ((51+9)-(-17-3)) + 1", 91, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ev.Eval(ctx, mustParse(t, tt.input))
			if tt.overflow {
				require.Error(t, err)
				assert.True(t, errors.Is(err, types.ErrEval))
				e, ok := types.AsError(err)
				require.True(t, ok)
				assert.Equal(t, types.ErrNumberTooLarge, e.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvalCheckedNegateMinInt(t *testing.T) {
	ev := evaluator.New(evaluator.WithCheckedArithmetic(true))
	tree := types.NewNegate(types.NewParenthesized(
		types.NewSubtract(types.NewNegate(types.NewConstant(math.MaxInt64, 2), 1), types.NewConstant(1, 5)), 0), 0)
	_, err := ev.Eval(context.Background(), types.NewExpression(tree, ""))
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrEval))
}

func TestEvalInvalidExpression(t *testing.T) {
	ev := evaluator.New()
	_, err := ev.Eval(context.Background(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrEval))

	_, err = ev.Eval(context.Background(), types.NewExpression(nil, ""))
	require.Error(t, err)
}

func TestEvalCancelledContext(t *testing.T) {
	ev := evaluator.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ev.Eval(ctx, mustParse(t, "1+1"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEvalString(t *testing.T) {
	ev := evaluator.New()
	v, err := ev.EvalString(context.Background(), "10 + ((51+9)-(-17-3)) + 1")
	require.NoError(t, err)
	assert.Equal(t, int64(91), v)

	_, err = ev.EvalString(context.Background(), "9@")
	assert.True(t, errors.Is(err, types.ErrLex))

	_, err = ev.EvalString(context.Background(), "-(1+2)")
	assert.True(t, errors.Is(err, types.ErrParse))
}

func TestEvalStringMaxDepth(t *testing.T) {
	ev := evaluator.New(evaluator.WithMaxDepth(2))
	_, err := ev.EvalString(context.Background(), "((1))")
	require.NoError(t, err)
	_, err = ev.EvalString(context.Background(), "(((1)))")
	require.Error(t, err)
}

func TestEvaluatorCaching(t *testing.T) {
	ev := evaluator.New(evaluator.WithCaching(true), evaluator.WithCacheSize(2))
	require.NotNil(t, ev.Cache())
	assert.Equal(t, 2, ev.Cache().Capacity())

	first, err := ev.Compile("1+2")
	require.NoError(t, err)
	second, err := ev.Compile("1+2")
	require.NoError(t, err)
	assert.Same(t, first, second)

	_, err = ev.Compile("1+")
	require.Error(t, err)
	assert.Equal(t, 1, ev.Cache().Len(), "errors are not cached")
}

func TestEvaluatorSharedCache(t *testing.T) {
	c := cache.New(8)
	a := evaluator.New(evaluator.WithCache(c))
	b := evaluator.New(evaluator.WithCache(c))

	first, err := a.Compile("4-2")
	require.NoError(t, err)
	second, err := b.Compile("4-2")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestEvaluatorNoCacheByDefault(t *testing.T) {
	ev := evaluator.New()
	assert.Nil(t, ev.Cache())

	first, err := ev.Compile("1")
	require.NoError(t, err)
	second, err := ev.Compile("1")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestEvaluatorDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ev := evaluator.New(
		evaluator.WithDebug(true),
		evaluator.WithLogger(logger),
		evaluator.WithCaching(true),
	)

	_, err := ev.EvalString(context.Background(), "1+2")
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "cache miss")
	assert.Contains(t, out, "result=3")
}

func TestEvaluatorQuietByDefault(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ev := evaluator.New(evaluator.WithLogger(logger))

	_, err := ev.EvalString(context.Background(), "1+2")
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestEvalConcurrentUse(t *testing.T) {
	ev := evaluator.New(evaluator.WithCaching(true), evaluator.WithTimeout(time.Second))
	expr := mustParse(t, "10 + ((51+9)-(-17-3)) + 1")

	var wg sync.WaitGroup
	errs := make(chan error, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v, err := ev.Eval(context.Background(), expr)
			if err == nil && v != 91 {
				err = errors.New("wrong value")
			}
			if err == nil {
				_, err = ev.EvalString(context.Background(), strings.Repeat("1+", 10)+"1")
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}
