// Command gocalc evaluates integer expressions from the command line.
//
// Usage:
//
//	gocalc eval "10 + ((51+9)-(-17-3)) + 1"     # 91
//	gocalc eval --render "5 +6 -   ( 7+ 4) "     # 0  5 + 6 - ( 7 + 4 )
//	gocalc eval --dot "1 + (2 - 3)" | dot -Tpng  # tree as a Graphviz graph
//	gocalc stream < input.txt                    # one expression per line
//	gocalc samples                               # self-check against known answers
//	gocalc                                       # interactive prompt on a terminal
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/sandrolain/gocalc"
	"github.com/sandrolain/gocalc/pkg/evaluator"
)

// Globals holds the flags shared by every command.
type Globals struct {
	Debug       bool             `help:"Enable debug logging on stderr." env:"GOCALC_DEBUG"`
	CacheSize   int              `help:"Parse cache capacity; 0 disables caching." default:"256" env:"GOCALC_CACHE_SIZE"`
	Timeout     time.Duration    `help:"Per-expression evaluation timeout." default:"30s" env:"GOCALC_TIMEOUT"`
	Checked     bool             `help:"Fail on int64 overflow instead of wrapping around." env:"GOCALC_CHECKED"`
	MaxDepth    int              `help:"Maximum parenthesis nesting; 0 means unlimited." default:"10000" env:"GOCALC_MAX_DEPTH"`
	MaxLineSize int              `help:"Longest accepted input line in bytes when streaming." default:"1048576" env:"GOCALC_MAX_LINE_SIZE"`
	Version     kong.VersionFlag `help:"Print version and exit."`
}

// Evaluator builds an evaluator from the global flags.
func (g *Globals) Evaluator() *evaluator.Evaluator {
	level := slog.LevelInfo
	if g.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	return evaluator.New(
		evaluator.WithCaching(g.CacheSize > 0),
		evaluator.WithCacheSize(g.CacheSize),
		evaluator.WithTimeout(g.Timeout),
		evaluator.WithCheckedArithmetic(g.Checked),
		evaluator.WithMaxDepth(g.MaxDepth),
		evaluator.WithMaxLineSize(g.MaxLineSize),
		evaluator.WithDebug(g.Debug),
		evaluator.WithLogger(logger),
	)
}

type cli struct {
	Globals

	Eval    EvalCmd    `cmd:"" help:"Evaluate expressions given as arguments."`
	Stream  StreamCmd  `cmd:"" help:"Evaluate one expression per line read from stdin."`
	Samples SamplesCmd `cmd:"" help:"Check the evaluator against the built-in samples."`
	Repl    ReplCmd    `cmd:"" default:"1" help:"Interactive prompt (default when stdin is a terminal)."`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("gocalc"),
		kong.Description("Evaluate integer expressions built from numbers, '+', '-' and parentheses."),
		kong.UsageOnError(),
		kong.Vars{"version": gocalc.Version()},
		kong.BindTo(context.Background(), (*context.Context)(nil)),
	)
	err := kctx.Run(&c.Globals)
	kctx.FatalIfErrorf(err)
}
