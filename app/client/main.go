//go:build js && wasm
// +build js,wasm

package main

import (
	"strings"
	"syscall/js"

	"github.com/recera/sitekit/pkg/debug"
	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/scheduler"
	"github.com/recera/sitekit/pkg/site"
)

func main() {
	window := js.Global().Get("window")

	// ?debug=1 turns on console tracing
	if search := window.Get("location").Get("search").String(); strings.Contains(search, "debug=1") {
		debug.EnableLogging()
	}
	debug.Log("sitekit client starting")

	s := site.New(dom.Browser(), scheduler.NewBrowser(), site.Options{})
	s.Mount()

	window.Call("addEventListener", "pagehide", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		// Pages kept in the back/forward cache come back with their handlers
		if len(args) > 0 && args[0].Get("persisted").Bool() {
			return nil
		}
		s.Close()
		return nil
	}))

	debug.Log("sitekit client mounted")

	// Keep the WASM runtime alive
	select {}
}
