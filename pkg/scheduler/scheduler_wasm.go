//go:build js && wasm
// +build js,wasm

package scheduler

import (
	"sync"
	"syscall/js"
	"time"
)

// Browser is a Scheduler backed by window timers and requestAnimationFrame
type Browser struct {
	window js.Value
	perf   js.Value
}

// NewBrowser binds to the global window
func NewBrowser() *Browser {
	w := js.Global().Get("window")
	return &Browser{window: w, perf: w.Get("performance")}
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// Now returns performance.now()
func (b *Browser) Now() time.Duration {
	return msToDuration(b.perf.Call("now").Float())
}

type jsTimer struct {
	once  sync.Once
	clear func()
}

func (t *jsTimer) Stop() { t.once.Do(t.clear) }

func (b *Browser) Every(d time.Duration, fn func()) Timer {
	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		fn()
		return nil
	})
	id := b.window.Call("setInterval", cb, d.Milliseconds())
	if debugLog != nil {
		debugLog("[Scheduler] setInterval", id.Int(), d.String())
	}
	return &jsTimer{clear: func() {
		b.window.Call("clearInterval", id)
		cb.Release()
	}}
}

func (b *Browser) After(d time.Duration, fn func()) Timer {
	t := &jsTimer{}
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		t.once.Do(cb.Release)
		fn()
		return nil
	})
	id := b.window.Call("setTimeout", cb, d.Milliseconds())
	t.clear = func() {
		b.window.Call("clearTimeout", id)
		cb.Release()
	}
	return t
}

func (b *Browser) Frame(fn FrameFunc) Timer {
	t := &jsTimer{}
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		t.once.Do(cb.Release)
		now := b.Now()
		if len(args) > 0 {
			now = msToDuration(args[0].Float())
		}
		fn(now)
		return nil
	})
	id := b.window.Call("requestAnimationFrame", cb)
	t.clear = func() {
		b.window.Call("cancelAnimationFrame", id)
		cb.Release()
	}
	return t
}
