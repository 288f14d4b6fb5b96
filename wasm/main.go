//go:build js && wasm

package main

import (
	"strings"
	"syscall/js"

	"bares/app/lang"
)

var (
	evalState  = &lang.EvalState{}
	editorText string
)

// resultValue converts a line result to {text, isErr, col}; col is 1-based
// and 0 when the error has no column.
func resultValue(r lang.EvalResult) js.Value {
	obj := js.Global().Get("Object").New()
	obj.Set("text", r.Text)
	obj.Set("isErr", r.IsErr)
	obj.Set("col", r.Col+1)
	return obj
}

func main() {
	// evaluate(text) returns one result object per line of text
	js.Global().Set("evaluate", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 {
			return nil
		}
		editorText = args[0].String()

		results := evalState.EvalAll(strings.Split(editorText, "\n"))
		arr := js.Global().Get("Array").New(len(results))
		for i, r := range results {
			arr.SetIndex(i, resultValue(r))
		}
		return arr
	}))

	// setMessages(obj) replaces error messages by code name, e.g.
	// {DivisionByZero: "..."}; it returns an error string or null.
	js.Global().Set("setMessages", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) < 1 || args[0].Type() != js.TypeObject {
			return "setMessages expects an object"
		}
		overrides := map[string]string{}
		keys := js.Global().Get("Object").Call("keys", args[0])
		for i := 0; i < keys.Length(); i++ {
			name := keys.Index(i).String()
			overrides[name] = args[0].Get(name).String()
		}
		r, err := lang.NewReporter(overrides)
		if err != nil {
			return err.Error()
		}
		// cached results were rendered with the old messages
		evalState = &lang.EvalState{Reporter: &r}
		return nil
	}))

	js.Global().Set("getEditorText", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return editorText
	}))

	js.Global().Set("setEditorText", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			editorText = args[0].String()
			ta := js.Global().Get("document").Call("getElementById", "editor")
			if !ta.IsUndefined() && !ta.IsNull() {
				ta.Set("value", editorText)
				ta.Call("dispatchEvent", js.Global().Get("Event").New("input"))
			}
		}
		return nil
	}))

	js.Global().Set("_wasmReady", true)
	onReady := js.Global().Get("_onWasmReady")
	if !onReady.IsUndefined() && !onReady.IsNull() {
		onReady.Invoke()
	}

	select {}
}
