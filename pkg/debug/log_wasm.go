//go:build js && wasm
// +build js,wasm

package debug

import "syscall/js"

func platformLog(args ...interface{}) {
	js.Global().Get("console").Call("log", args...)
}
