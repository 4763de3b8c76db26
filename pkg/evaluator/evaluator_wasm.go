//go:build (js && wasm) || wasip1

package evaluator

// init sets WebAssembly-specific defaults for all Evaluators created in this
// process.
//
// The Go runtime runs WebAssembly single-threaded, so fanning EvalMany out
// over goroutines only adds scheduling overhead there.
func init() {
	defaultConcurrency = false
}
