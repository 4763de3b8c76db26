package gocalc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gocalc"
	"github.com/sandrolain/gocalc/pkg/evaluator"
	"github.com/sandrolain/gocalc/pkg/printer"
	"github.com/sandrolain/gocalc/pkg/types"
)

func TestScenarios(t *testing.T) {
	tests := []struct {
		input     string
		want      int64
		canonical string
	}{
		{"5 +6 -   ( 7+ 4) ", 0, "5 + 6 - ( 7 + 4 )"},
		{"10 + ((51+9)-(-17-3)) + 1", 91, "10 + ( ( 51 + 9 ) - ( -17 - 3 ) ) + 1"},
		{"5", 5, "5"},
		{"1+2+3", 6, "1 + 2 + 3"},
		{"(1)", 1, "( 1 )"},
		{"10-3-2", 5, "10 - 3 - 2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := gocalc.Eval(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)

			s, err := gocalc.Render(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.canonical, s)
		})
	}
}

func TestWhitespaceInsensitive(t *testing.T) {
	a, err := gocalc.Eval("5+6")
	require.NoError(t, err)
	b, err := gocalc.Eval(" 5  +   6 ")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestNegationScope(t *testing.T) {
	_, err := gocalc.Parse("-(1+2)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrParse))
}

func TestLexErrorPosition(t *testing.T) {
	_, err := gocalc.Parse("9@")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrLex))

	e, ok := types.AsError(err)
	require.True(t, ok)
	assert.Equal(t, 1, e.Position)
	assert.Equal(t, "@", e.Token)
}

func TestCompileReuse(t *testing.T) {
	expr := gocalc.MustCompile("10 + ((51+9)-(-17-3)) + 1")
	ev := evaluator.New()
	for i := 0; i < 3; i++ {
		v, err := ev.Eval(context.Background(), expr)
		require.NoError(t, err)
		assert.Equal(t, int64(91), v)
		assert.Equal(t, "10 + ( ( 51 + 9 ) - ( -17 - 3 ) ) + 1", printer.Render(expr.AST()))
	}
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { gocalc.MustCompile("1 +") })
}

func TestEvalOptions(t *testing.T) {
	_, err := gocalc.Eval("9223372036854775807 + 1", gocalc.WithCheckedArithmetic(true))
	assert.True(t, errors.Is(err, types.ErrEval))

	v, err := gocalc.EvalWithContext(context.Background(), "1+1", gocalc.WithCaching(true), gocalc.WithDebug(false))
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestRenderError(t *testing.T) {
	_, err := gocalc.Render("(")
	assert.True(t, errors.Is(err, types.ErrParse))
}

func TestVersion(t *testing.T) {
	assert.NotEmpty(t, gocalc.Version())
}
