//go:build js && wasm

// Command gocalc-wasm-js is the WebAssembly entrypoint for browser and Node.js.
//
// It exposes a global `gocalc` object with the following API:
//
//	gocalc.version()           → string
//	gocalc.eval(expression)    → number | Error
//	gocalc.render(expression)  → string | Error
//	gocalc.compile(expression) → { eval() → number | Error, render() → string } | Error
//
// Failures are returned, not thrown: callers check `result instanceof Error`.
// The Error carries the gocalc message plus `code` and `position` properties
// when the failure came from the lexer, parser or evaluator. Returning keeps
// the Go runtime alive; a panic inside a callback would end the program.
//
// Build:
//
//	GOOS=js GOARCH=wasm go build -o gocalc.wasm ./cmd/wasm/js/
//
// Values are int64 on the Go side and are handed to JavaScript as numbers,
// so results beyond ±2^53 lose precision.
package main

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/sandrolain/gocalc"
	"github.com/sandrolain/gocalc/pkg/evaluator"
	"github.com/sandrolain/gocalc/pkg/printer"
	"github.com/sandrolain/gocalc/pkg/types"
)

// jsError converts err into a JavaScript Error value.
func jsError(fn string, err error) js.Value {
	jsErr := js.Global().Get("Error").New(fmt.Sprintf("gocalc.%s: %v", fn, err))
	if e, ok := types.AsError(err); ok {
		jsErr.Set("code", string(e.Code))
		jsErr.Set("position", e.Position)
	}
	return jsErr
}

func expressionArg(fn string, args []js.Value) (string, js.Value, bool) {
	if len(args) < 1 || args[0].Type() != js.TypeString {
		return "", js.Global().Get("Error").New(
			fmt.Sprintf("gocalc.%s requires 1 argument: expression (string)", fn)), false
	}
	return args[0].String(), js.Undefined(), true
}

// jsEval implements gocalc.eval(expression) → number.
func jsEval(_ js.Value, args []js.Value) interface{} {
	text, jsErr, ok := expressionArg("eval", args)
	if !ok {
		return jsErr
	}
	v, err := gocalc.Eval(text, gocalc.WithConcurrency(false))
	if err != nil {
		return jsError("eval", err)
	}
	return float64(v)
}

// jsRender implements gocalc.render(expression) → string.
func jsRender(_ js.Value, args []js.Value) interface{} {
	text, jsErr, ok := expressionArg("render", args)
	if !ok {
		return jsErr
	}
	s, err := gocalc.Render(text)
	if err != nil {
		return jsError("render", err)
	}
	return s
}

// jsCompile implements gocalc.compile(expression) → { eval(), render() }.
func jsCompile(_ js.Value, args []js.Value) interface{} {
	text, jsErr, ok := expressionArg("compile", args)
	if !ok {
		return jsErr
	}
	expr, err := gocalc.Compile(text)
	if err != nil {
		return jsError("compile", err)
	}

	ev := evaluator.New(gocalc.WithConcurrency(false))

	evalFn := js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
		v, err := ev.Eval(context.Background(), expr)
		if err != nil {
			return jsError("compiled.eval", err)
		}
		return float64(v)
	})
	renderFn := js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
		return printer.Render(expr.AST())
	})

	return js.ValueOf(map[string]interface{}{"eval": evalFn, "render": renderFn})
}

func main() {
	api := map[string]interface{}{
		"eval":    js.FuncOf(jsEval),
		"render":  js.FuncOf(jsRender),
		"compile": js.FuncOf(jsCompile),
		"version": js.FuncOf(func(_ js.Value, _ []js.Value) interface{} {
			return gocalc.Version()
		}),
	}
	js.Global().Set("gocalc", js.ValueOf(api))

	// Block forever; the JS event loop owns execution from here.
	select {}
}
