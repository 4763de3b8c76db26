package evaluator_test

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandrolain/gocalc/pkg/evaluator"
	"github.com/sandrolain/gocalc/pkg/types"
)

func collect(t *testing.T, ch <-chan evaluator.StreamResult) []evaluator.StreamResult {
	t.Helper()
	var out []evaluator.StreamResult
	for res := range ch {
		out = append(out, res)
	}
	return out
}

func TestEvalStreamLines(t *testing.T) {
	input := "5 +6 -   ( 7+ 4) \n\n10 + ((51+9)-(-17-3)) + 1\n   \n1+2+3"

	ev := evaluator.New()
	ch, err := ev.EvalStream(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	results := collect(t, ch)
	require.Len(t, results, 3)

	assert.Equal(t, 1, results[0].Line)
	assert.Equal(t, "5 +6 -   ( 7+ 4)", results[0].Source)
	assert.Equal(t, int64(0), results[0].Value)

	assert.Equal(t, 3, results[1].Line)
	assert.Equal(t, int64(91), results[1].Value)

	assert.Equal(t, 5, results[2].Line)
	assert.Equal(t, int64(6), results[2].Value)

	for _, res := range results {
		assert.NoError(t, res.Err)
	}
}

func TestEvalStreamContinuesAfterErrors(t *testing.T) {
	input := "1+1\n9@\n-(1+2)\n2+2\n"

	ev := evaluator.New()
	ch, err := ev.EvalStream(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	results := collect(t, ch)
	require.Len(t, results, 4)

	assert.NoError(t, results[0].Err)
	assert.True(t, errors.Is(results[1].Err, types.ErrLex))
	assert.Equal(t, 2, results[1].Line)
	assert.True(t, errors.Is(results[2].Err, types.ErrParse))
	assert.NoError(t, results[3].Err)
	assert.Equal(t, int64(4), results[3].Value)
}

func TestEvalStreamEmpty(t *testing.T) {
	ev := evaluator.New()
	ch, err := ev.EvalStream(context.Background(), strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, collect(t, ch))
}

func TestEvalStreamNilReader(t *testing.T) {
	ev := evaluator.New()
	_, err := ev.EvalStream(context.Background(), nil)
	assert.Error(t, err)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestEvalStreamReadError(t *testing.T) {
	ev := evaluator.New()
	ch, err := ev.EvalStream(context.Background(), failingReader{})
	require.NoError(t, err)

	results := collect(t, ch)
	require.Len(t, results, 1)
	assert.Equal(t, 0, results[0].Line)
	assert.ErrorIs(t, results[0].Err, io.ErrUnexpectedEOF)
}

func TestEvalStreamCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ev := evaluator.New()
	ch, err := ev.EvalStream(ctx, strings.NewReader("1\n2\n3\n"))
	require.NoError(t, err)

	for res := range ch {
		assert.Error(t, res.Err)
	}
}

func TestEvalStreamLongLine(t *testing.T) {
	long := "1" + strings.Repeat("+1", 40000)
	input := long + "\n2+2\n"

	ev := evaluator.New()
	ch, err := ev.EvalStream(context.Background(), strings.NewReader(input))
	require.NoError(t, err)

	results := collect(t, ch)
	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	assert.Equal(t, 1, results[0].Line)
	assert.Equal(t, int64(40001), results[0].Value)
	require.NoError(t, results[1].Err)
	assert.Equal(t, 2, results[1].Line)
	assert.Equal(t, int64(4), results[1].Value)
}

func TestEvalStreamMaxLineSize(t *testing.T) {
	ev := evaluator.New(evaluator.WithMaxLineSize(8))
	ch, err := ev.EvalStream(context.Background(), strings.NewReader("1+2\n1+1+1+1+1+1\n3\n"))
	require.NoError(t, err)

	results := collect(t, ch)
	require.Len(t, results, 2)
	assert.Equal(t, int64(3), results[0].Value)
	assert.Equal(t, 0, results[1].Line)
	assert.ErrorIs(t, results[1].Err, bufio.ErrTooLong)
}

func TestEvalMany(t *testing.T) {
	sources := []string{
		"5 +6 -   ( 7+ 4) ",
		"9@",
		"10 + ((51+9)-(-17-3)) + 1",
		"-(1+2)",
		"(1)",
	}

	for _, concurrent := range []bool{false, true} {
		name := "sequential"
		if concurrent {
			name = "concurrent"
		}
		t.Run(name, func(t *testing.T) {
			ev := evaluator.New(evaluator.WithConcurrency(concurrent))
			results, err := ev.EvalMany(context.Background(), sources)
			require.NoError(t, err)
			require.Len(t, results, len(sources))

			for i, res := range results {
				assert.Equal(t, sources[i], res.Source)
			}

			assert.NoError(t, results[0].Err)
			assert.Equal(t, int64(0), results[0].Value)
			assert.Equal(t, "5 + 6 - ( 7 + 4 )", results[0].Canonical)

			assert.True(t, errors.Is(results[1].Err, types.ErrLex))
			assert.Empty(t, results[1].Canonical)

			assert.Equal(t, int64(91), results[2].Value)
			assert.True(t, errors.Is(results[3].Err, types.ErrParse))

			assert.Equal(t, int64(1), results[4].Value)
			assert.Equal(t, "( 1 )", results[4].Canonical)
		})
	}
}

func TestEvalManyEmpty(t *testing.T) {
	results, err := evaluator.New().EvalMany(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestEvalManyCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, concurrent := range []bool{false, true} {
		ev := evaluator.New(evaluator.WithConcurrency(concurrent))
		_, err := ev.EvalMany(ctx, []string{"1", "2", "3"})
		assert.ErrorIs(t, err, context.Canceled)
	}
}
