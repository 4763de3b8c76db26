package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sandrolain/gocalc/pkg/evaluator"
	"github.com/sandrolain/gocalc/pkg/printer"
	"github.com/sandrolain/gocalc/pkg/samples"
)

var errFailed = errors.New("one or more expressions failed")

// EvalCmd evaluates its arguments.
type EvalCmd struct {
	Render bool     `short:"r" help:"Also print the canonical form."`
	Dot    bool     `help:"Print the expression tree as a Graphviz digraph instead of its value."`
	Dump   bool     `help:"Print the expression tree as Go values instead of its value."`
	Exprs  []string `arg:"" name:"expression" help:"Expressions to evaluate."`
}

func (c *EvalCmd) Run(ctx context.Context, g *Globals) error {
	return c.run(ctx, g.Evaluator(), os.Stdout)
}

func (c *EvalCmd) run(ctx context.Context, ev *evaluator.Evaluator, w io.Writer) error {
	if c.Dot || c.Dump {
		failed := false
		for _, src := range c.Exprs {
			expr, err := ev.Compile(src)
			if err != nil {
				fmt.Fprintln(w, formatError(src, err))
				failed = true
				continue
			}
			if c.Dot {
				if err := printer.WriteDot(w, expr.AST()); err != nil {
					return err
				}
			} else {
				printer.Dump(w, expr.AST())
			}
		}
		if failed {
			return errFailed
		}
		return nil
	}

	results, err := ev.EvalMany(ctx, c.Exprs)
	if err != nil {
		return err
	}
	return printResults(w, results, c.Render)
}

func printResults(w io.Writer, results []evaluator.Result, render bool) error {
	failed := false
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintln(w, formatError(res.Source, res.Err))
			failed = true
			continue
		}
		if render {
			fmt.Fprintf(w, "%s\t%s\n", valueStyle.Render(fmt.Sprint(res.Value)), canonicalStyle.Render(res.Canonical))
		} else {
			fmt.Fprintln(w, valueStyle.Render(fmt.Sprint(res.Value)))
		}
	}
	if failed {
		return errFailed
	}
	return nil
}

// StreamCmd evaluates stdin line by line.
type StreamCmd struct {
	Sum bool `help:"Print only the sum of all values."`
}

func (c *StreamCmd) Run(ctx context.Context, g *Globals) error {
	return c.run(ctx, g.Evaluator(), os.Stdin, os.Stdout)
}

func (c *StreamCmd) run(ctx context.Context, ev *evaluator.Evaluator, r io.Reader, w io.Writer) error {
	ch, err := ev.EvalStream(ctx, r)
	if err != nil {
		return err
	}

	var sum int64
	failed := false
	for res := range ch {
		if res.Line == 0 && res.Err != nil {
			return res.Err
		}
		if res.Err != nil {
			fmt.Fprintf(w, "line %d: %s\n", res.Line, formatError(res.Source, res.Err))
			failed = true
			continue
		}
		sum += res.Value
		if !c.Sum {
			fmt.Fprintln(w, valueStyle.Render(fmt.Sprint(res.Value)))
		}
	}
	if c.Sum {
		fmt.Fprintln(w, valueStyle.Render(fmt.Sprint(sum)))
	}
	if failed {
		return errFailed
	}
	return nil
}

// SamplesCmd runs the built-in samples.
type SamplesCmd struct{}

func (c *SamplesCmd) Run(ctx context.Context, g *Globals) error {
	return c.run(ctx, g.Evaluator(), os.Stdout)
}

func (c *SamplesCmd) run(ctx context.Context, ev *evaluator.Evaluator, w io.Writer) error {
	bad, err := samples.Check(ctx, ev)
	if err != nil {
		return err
	}
	for _, m := range bad {
		fmt.Fprintln(w, errorStyle.Render("FAIL "+m.String()))
	}
	if len(bad) > 0 {
		return fmt.Errorf("%d of %d samples failed", len(bad), len(samples.Names()))
	}
	fmt.Fprintf(w, "OK %d samples\n", len(samples.Names()))
	return nil
}
