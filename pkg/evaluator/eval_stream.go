package evaluator

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// StreamResult holds the output of a single streaming evaluation step.
type StreamResult struct {
	// Line is the 1-based input line the expression was read from.
	// Zero for a fatal stream error.
	Line int
	// Source is the expression text with surrounding whitespace removed.
	Source string
	// Value is the evaluated result, or zero when Err is set.
	Value int64
	// Err is non-nil when parsing or evaluating the line failed.
	// After a fatal I/O error or cancellation the channel is closed;
	// per-line errors are sent individually and the stream continues.
	Err error
}

// EvalStream reads one expression per line from r and evaluates each one,
// sending results on the returned channel. Blank lines are skipped.
//
// The channel is closed when all input has been consumed or the context is
// cancelled. Lines may be up to EvalOptions.MaxLineSize bytes long; a longer
// line is a fatal bufio.ErrTooLong. A fatal I/O error is sent as a StreamResult with a non-nil Err
// and then the channel is closed.
//
// It is the caller's responsibility to drain the channel or cancel the
// context to avoid goroutine leaks.
func (e *Evaluator) EvalStream(ctx context.Context, r io.Reader) (<-chan StreamResult, error) {
	if r == nil {
		return nil, fmt.Errorf("nil reader")
	}

	ch := make(chan StreamResult, 16)

	go func() {
		defer close(ch)

		send := func(res StreamResult) bool {
			select {
			case ch <- res:
				return true
			case <-ctx.Done():
				return false
			}
		}

		maxLine := e.opts.MaxLineSize
		if maxLine <= 0 {
			maxLine = DefaultMaxLineSize
		}
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, min(64*1024, maxLine)), maxLine)
		line := 0
		for sc.Scan() {
			line++
			if err := ctx.Err(); err != nil {
				select {
				case ch <- StreamResult{Err: err}:
				default:
				}
				return
			}

			src := strings.TrimSpace(sc.Text())
			if src == "" {
				continue
			}

			v, err := e.EvalString(ctx, src)
			if e.opts.Debug {
				e.logger.Debug("stream line", "line", line, "source", src, "error", err)
			}
			if !send(StreamResult{Line: line, Source: src, Value: v, Err: err}) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			send(StreamResult{Err: err})
		}
	}()

	return ch, nil
}
