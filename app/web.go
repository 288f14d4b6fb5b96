//go:build js && wasm

package main

import (
	"syscall/js"

	"bares/app/lang"

	"gioui.org/app"
)

func registerWebCallbacks(es *EditorState, w *app.Window) {
	js.Global().Set("getEditorText", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		return es.Editor.Text()
	}))
	js.Global().Set("setEditorText", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			es.SetContent([]byte(args[0].String()))
			w.Invalidate()
		}
		return nil
	}))
	// getResults returns the rendered result of every line, one per line,
	// in the same layout the command line tool writes.
	js.Global().Set("getResults", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		var st lang.EvalState
		return string(ResultsText(st.EvalAll(es.Lines())))
	}))

	// Load initial text from URL parameter (decoded by JS before WASM started)
	initialText := js.Global().Get("_initialText")
	if !initialText.IsUndefined() && !initialText.IsNull() && initialText.String() != "" {
		es.SetContent([]byte(initialText.String()))
	}
}
