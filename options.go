package gocalc

import (
	"log/slog"
	"time"

	"github.com/sandrolain/gocalc/pkg/evaluator"
)

// Re-exported evaluator options, so that simple callers only import gocalc.

// WithCaching enables parse caching.
func WithCaching(enabled bool) evaluator.EvalOption { return evaluator.WithCaching(enabled) }

// WithConcurrency enables concurrent evaluation of independent expressions.
func WithConcurrency(enabled bool) evaluator.EvalOption { return evaluator.WithConcurrency(enabled) }

// WithCheckedArithmetic reports int64 overflow as an error.
func WithCheckedArithmetic(enabled bool) evaluator.EvalOption {
	return evaluator.WithCheckedArithmetic(enabled)
}

// WithTimeout sets the evaluation timeout.
func WithTimeout(d time.Duration) evaluator.EvalOption { return evaluator.WithTimeout(d) }

// WithDebug enables debug logging.
func WithDebug(enabled bool) evaluator.EvalOption { return evaluator.WithDebug(enabled) }

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) evaluator.EvalOption { return evaluator.WithLogger(l) }
