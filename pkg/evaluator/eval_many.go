package evaluator

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sandrolain/gocalc/pkg/printer"
)

// Result is the outcome of evaluating one source string.
type Result struct {
	Source    string
	Value     int64
	Canonical string // canonical rendering; empty when Err is set
	Err       error
}

// EvalMany evaluates independent expressions and returns one Result per
// source, in input order. A failing source does not stop the others; its
// error is reported in its Result. The returned error is only non-nil when
// ctx is done before all sources were evaluated.
//
// With concurrency enabled the sources are evaluated in parallel.
func (e *Evaluator) EvalMany(ctx context.Context, sources []string) ([]Result, error) {
	results := make([]Result, len(sources))

	evalOne := func(i int) {
		src := sources[i]
		res := Result{Source: src}
		expr, err := e.Compile(src)
		if err == nil {
			res.Value, err = e.Eval(ctx, expr)
		}
		if err == nil {
			res.Canonical = printer.Render(expr.AST())
		}
		res.Err = err
		results[i] = res
	}

	if !e.opts.Concurrency || len(sources) < 2 {
		for i := range sources {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			evalOne(i)
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			evalOne(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, ctx.Err()
}
