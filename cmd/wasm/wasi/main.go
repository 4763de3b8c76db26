//go:build wasip1

// Command gocalc-wasm-wasi is the WASI (wasip1) entrypoint for use from any
// language that supports the WebAssembly System Interface.
//
// Protocol: single JSON object on stdin → single JSON object on stdout.
//
//	stdin:  { "expression": "<text>" }
//	stdout: { "result": <integer>, "canonical": "<text>" }   on success
//	        { "error":  "<message>", "position": <int> }     on failure (exit code 1)
//
// Build:
//
//	GOOS=wasip1 GOARCH=wasm go build -o gocalc.wasm ./cmd/wasm/wasi/
//
// Usage with wasmtime CLI:
//
//	echo '{"expression":"10 + ((51+9)-(-17-3)) + 1"}' | wasmtime gocalc.wasm
package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/sandrolain/gocalc"
	"github.com/sandrolain/gocalc/pkg/evaluator"
	"github.com/sandrolain/gocalc/pkg/printer"
	"github.com/sandrolain/gocalc/pkg/types"
)

type request struct {
	Expression string `json:"expression"`
}

type response struct {
	Result    *int64 `json:"result,omitempty"`
	Canonical string `json:"canonical,omitempty"`
	Error     string `json:"error,omitempty"`
	Position  *int   `json:"position,omitempty"`
}

func writeResponse(r response, exitCode int) {
	_ = json.NewEncoder(os.Stdout).Encode(r)
	os.Exit(exitCode)
}

func fail(err error) {
	r := response{Error: err.Error()}
	if e, ok := types.AsError(err); ok && e.Position >= 0 {
		r.Position = &e.Position
	}
	writeResponse(r, 1)
}

func main() {
	var req request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		writeResponse(response{Error: "invalid request JSON: " + err.Error()}, 1)
	}

	expr, err := gocalc.Parse(req.Expression)
	if err != nil {
		fail(err)
	}

	ev := evaluator.New(gocalc.WithConcurrency(false))
	v, err := ev.Eval(context.Background(), expr)
	if err != nil {
		fail(err)
	}

	writeResponse(response{Result: &v, Canonical: printer.Render(expr.AST())}, 0)
}
