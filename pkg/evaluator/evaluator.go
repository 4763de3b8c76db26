// Package evaluator implements the gocalc evaluation engine.
//
// The package offers two layers. Evaluate is the bare tree walk: it takes a
// parsed tree and returns its int64 value, nothing else. Evaluator wraps it
// with the concerns of a long-lived caller:
//   - Expression caching for repeated source strings
//   - Optional overflow detection
//   - Timeout and cancellation via context.Context
//   - Concurrent evaluation of independent expressions
//   - Line-oriented streaming
//
// # Example
//
//	ev := evaluator.New(evaluator.WithCaching(true))
//	v, err := ev.EvalString(ctx, "10 + ((51+9)-(-17-3)) + 1")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Concurrency
//
// An Evaluator holds no per-evaluation state and is safe for concurrent use.
//
//	results, err := ev.EvalMany(ctx, []string{"1+2", "3-4"})
package evaluator

import (
	"context"
	"log/slog"
	"time"

	"github.com/sandrolain/gocalc/pkg/cache"
	"github.com/sandrolain/gocalc/pkg/parser"
	"github.com/sandrolain/gocalc/pkg/types"
)

// Evaluator evaluates parsed expressions.
type Evaluator struct {
	opts   EvalOptions
	logger *slog.Logger
	cache  *cache.Cache // non-nil when Caching is enabled
}

// EvalOptions configures evaluator behavior.
type EvalOptions struct {
	// Caching enables parse caching in EvalString and EvalMany.
	// The default cache holds up to 256 entries with LRU eviction.
	Caching bool
	// CacheSize sets the maximum number of cached expressions.
	// Only used when Caching is true and no explicit Cache is provided.
	// Defaults to 256.
	CacheSize int
	// Cache is a custom expression cache. If non-nil, Caching is implicitly enabled.
	Cache *cache.Cache
	// Concurrency enables concurrent evaluation in EvalMany.
	Concurrency bool
	// Checked makes arithmetic overflow an error instead of wrapping around.
	Checked bool
	// MaxDepth limits parenthesis nesting when the evaluator parses source text.
	MaxDepth int
	// MaxLineSize is the longest line EvalStream accepts, in bytes.
	// Defaults to 1 MiB.
	MaxLineSize int
	// Timeout sets evaluation timeout.
	Timeout time.Duration
	// Debug enables debug logging.
	Debug bool
	// Logger for structured logging.
	Logger *slog.Logger
}

// defaultConcurrency controls the default value of EvalOptions.Concurrency for
// newly created Evaluators. It is false on WebAssembly targets; see
// evaluator_wasm.go.
var defaultConcurrency = true

// DefaultMaxLineSize is the default EvalStream line limit.
const DefaultMaxLineSize = 1024 * 1024

// New creates a new Evaluator with default options.
func New(opts ...EvalOption) *Evaluator {
	options := EvalOptions{
		Caching:     false,
		Concurrency: defaultConcurrency,
		MaxDepth:    10000,
		MaxLineSize: DefaultMaxLineSize,
		Timeout:     30 * time.Second,
	}

	for _, opt := range opts {
		opt(&options)
	}

	if options.Logger == nil {
		options.Logger = slog.Default()
	}

	var c *cache.Cache
	if options.Cache != nil {
		c = options.Cache
	} else if options.Caching {
		size := options.CacheSize
		if size <= 0 {
			size = 256
		}
		c = cache.New(size)
	}

	return &Evaluator{
		opts:   options,
		logger: options.Logger,
		cache:  c,
	}
}

// Cache returns the expression cache, or nil if caching is disabled.
func (e *Evaluator) Cache() *cache.Cache {
	return e.cache
}

// Eval evaluates a parsed expression.
func (e *Evaluator) Eval(ctx context.Context, expr *types.Expression) (int64, error) {
	if expr == nil || expr.AST() == nil {
		return 0, types.NewError(types.ErrInvalidExpression, "invalid expression", -1)
	}

	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var (
		result int64
		err    error
	)
	if e.opts.Checked {
		result, err = evaluateChecked(expr.AST())
	} else {
		result = Evaluate(expr.AST())
	}
	if err != nil {
		return 0, err
	}

	if e.opts.Debug {
		e.logger.Debug("evaluated", "source", expr.Source(), "result", result)
	}

	return result, nil
}

// Compile parses source, going through the cache when one is configured.
func (e *Evaluator) Compile(source string) (*types.Expression, error) {
	compile := func() (*types.Expression, error) {
		return parser.Compile(source, parser.WithMaxDepth(e.opts.MaxDepth))
	}
	if e.cache == nil {
		return compile()
	}

	return e.cache.GetOrCompile(source, func() (*types.Expression, error) {
		if e.opts.Debug {
			e.logger.Debug("cache miss", "source", source)
		}
		return compile()
	})
}

// EvalString parses and evaluates source.
func (e *Evaluator) EvalString(ctx context.Context, source string) (int64, error) {
	expr, err := e.Compile(source)
	if err != nil {
		return 0, err
	}
	return e.Eval(ctx, expr)
}

// EvalOption configures evaluation behavior.
type EvalOption func(*EvalOptions)

// WithCaching enables or disables expression caching.
// When enabled, a default LRU cache of 256 entries is created.
// To control the cache size use WithCacheSize; to supply your own cache use WithCache.
func WithCaching(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Caching = enabled
	}
}

// WithCacheSize sets the maximum number of cached expressions.
// Only effective when combined with WithCaching(true).
func WithCacheSize(size int) EvalOption {
	return func(opts *EvalOptions) {
		opts.CacheSize = size
	}
}

// WithCache attaches an external expression cache.
// The evaluator will use this cache regardless of the Caching flag.
func WithCache(c *cache.Cache) EvalOption {
	return func(opts *EvalOptions) {
		opts.Cache = c
	}
}

// WithConcurrency enables or disables concurrent evaluation.
func WithConcurrency(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Concurrency = enabled
	}
}

// WithCheckedArithmetic reports int64 overflow as a D1001 error.
func WithCheckedArithmetic(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Checked = enabled
	}
}

// WithTimeout sets the evaluation timeout.
func WithTimeout(timeout time.Duration) EvalOption {
	return func(opts *EvalOptions) {
		opts.Timeout = timeout
	}
}

// WithDebug enables or disables debug logging.
func WithDebug(enabled bool) EvalOption {
	return func(opts *EvalOptions) {
		opts.Debug = enabled
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) EvalOption {
	return func(opts *EvalOptions) {
		opts.Logger = logger
	}
}

// WithMaxDepth sets the maximum parenthesis nesting accepted when parsing.
func WithMaxDepth(depth int) EvalOption {
	return func(opts *EvalOptions) {
		opts.MaxDepth = depth
	}
}

// WithMaxLineSize sets the longest line EvalStream accepts.
// Values <= 0 select DefaultMaxLineSize.
func WithMaxLineSize(size int) EvalOption {
	return func(opts *EvalOptions) {
		opts.MaxLineSize = size
	}
}
