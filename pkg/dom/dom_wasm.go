//go:build js && wasm
// +build js,wasm

package dom

import (
	"strings"
	"sync"
	"syscall/js"

	"github.com/recera/sitekit/pkg/events"
)

// Browser returns the Window backed by the global JS window
func Browser() Window {
	return &jsWindow{
		v:   js.Global().Get("window"),
		doc: &jsDocument{v: js.Global().Get("document")},
	}
}

func wrap(v js.Value) Element {
	if v.IsNull() || v.IsUndefined() {
		return nil
	}
	return &jsElement{v: v}
}

func wrapAll(list js.Value) []Element {
	n := list.Length()
	out := make([]Element, 0, n)
	for i := 0; i < n; i++ {
		if el := wrap(list.Index(i)); el != nil {
			out = append(out, el)
		}
	}
	return out
}

// listen wires h to target and returns a release function
func listen(target js.Value, kind string, h events.Handler) func() {
	fn := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		if len(args) > 0 {
			h(&jsEvent{v: args[0]})
		}
		return nil
	})

	var opts interface{} = false
	if kind == events.Scroll {
		opts = map[string]interface{}{"passive": true}
	}
	target.Call("addEventListener", kind, fn, opts)

	var once sync.Once
	return func() {
		once.Do(func() {
			target.Call("removeEventListener", kind, fn, opts)
			fn.Release()
		})
	}
}

type jsEvent struct {
	v js.Value
}

func (e *jsEvent) Type() string           { return e.v.Get("type").String() }
func (e *jsEvent) PreventDefault()        { e.v.Call("preventDefault") }
func (e *jsEvent) DefaultPrevented() bool { return e.v.Get("defaultPrevented").Bool() }

type jsElement struct {
	v js.Value
}

func (e *jsElement) Tag() string {
	return strings.ToLower(e.v.Get("tagName").String())
}

func (e *jsElement) Query(selector string) Element {
	return wrap(e.v.Call("querySelector", selector))
}

func (e *jsElement) QueryAll(selector string) []Element {
	return wrapAll(e.v.Call("querySelectorAll", selector))
}

func (e *jsElement) Attr(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false
	}
	return v.String(), true
}

func (e *jsElement) SetAttr(name, value string) { e.v.Call("setAttribute", name, value) }
func (e *jsElement) RemoveAttr(name string)     { e.v.Call("removeAttribute", name) }

func (e *jsElement) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *jsElement) AddClass(names ...string) {
	for _, n := range names {
		e.v.Get("classList").Call("add", n)
	}
}

func (e *jsElement) RemoveClass(names ...string) {
	for _, n := range names {
		e.v.Get("classList").Call("remove", n)
	}
}

func (e *jsElement) ToggleClass(name string, on bool) {
	e.v.Get("classList").Call("toggle", name, on)
}

func (e *jsElement) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

func (e *jsElement) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

func (e *jsElement) Text() string        { return e.v.Get("textContent").String() }
func (e *jsElement) SetText(text string) { e.v.Set("textContent", text) }

func (e *jsElement) AppendChild(child Element) {
	if c, ok := child.(*jsElement); ok {
		e.v.Call("appendChild", c.v)
	}
}

func (e *jsElement) Clear() { e.v.Set("innerHTML", "") }

func (e *jsElement) BoundingRect() Rect {
	r := e.v.Call("getBoundingClientRect")
	return Rect{
		Top:    r.Get("top").Float(),
		Left:   r.Get("left").Float(),
		Width:  r.Get("width").Float(),
		Height: r.Get("height").Float(),
	}
}

func (e *jsElement) ScrollIntoView(smooth bool) {
	behavior := "auto"
	if smooth {
		behavior = "smooth"
	}
	e.v.Call("scrollIntoView", map[string]interface{}{"behavior": behavior})
}

func (e *jsElement) Reset() {
	if e.v.Get("reset").Type() == js.TypeFunction {
		e.v.Call("reset")
	}
}

func (e *jsElement) On(kind string, h events.Handler) func() {
	return listen(e.v, kind, h)
}

type jsDocument struct {
	v js.Value
}

func (d *jsDocument) Root() Element                      { return wrap(d.v.Get("documentElement")) }
func (d *jsDocument) Query(selector string) Element      { return wrap(d.v.Call("querySelector", selector)) }
func (d *jsDocument) QueryAll(selector string) []Element { return wrapAll(d.v.Call("querySelectorAll", selector)) }
func (d *jsDocument) ByID(id string) Element {
	if id == "" {
		return nil
	}
	return wrap(d.v.Call("getElementById", id))
}
func (d *jsDocument) CreateElement(tag string) Element { return wrap(d.v.Call("createElement", tag)) }
func (d *jsDocument) Loaded() bool                     { return d.v.Get("readyState").String() == "complete" }

type jsWindow struct {
	v   js.Value
	doc *jsDocument
}

func (w *jsWindow) Document() Document   { return w.doc }
func (w *jsWindow) ScrollY() float64     { return w.v.Get("scrollY").Float() }
func (w *jsWindow) InnerHeight() float64 { return w.v.Get("innerHeight").Float() }

func (w *jsWindow) ScrollMetrics() ScrollMetrics {
	root := w.doc.v.Get("documentElement")
	top := root.Get("scrollTop").Float()
	if top == 0 {
		if body := w.doc.v.Get("body"); !body.IsNull() {
			top = body.Get("scrollTop").Float()
		}
	}
	return ScrollMetrics{
		ScrollTop:    top,
		ScrollHeight: root.Get("scrollHeight").Float(),
		ClientHeight: root.Get("clientHeight").Float(),
	}
}

// Storage returns nil when accessing localStorage throws, which browsers do
// for sandboxed frames and some private modes.
func (w *jsWindow) Storage() (s Storage) {
	defer func() {
		if recover() != nil {
			s = nil
		}
	}()
	ls := w.v.Get("localStorage")
	if ls.IsNull() || ls.IsUndefined() {
		return nil
	}
	return &jsStorage{v: ls}
}

func (w *jsWindow) MatchMedia(query string) bool {
	if !w.v.Get("matchMedia").Truthy() {
		return false
	}
	return w.v.Call("matchMedia", query).Get("matches").Bool()
}

func (w *jsWindow) Observe(threshold float64, targets []Element, fn IntersectionFunc) func() {
	ctor := js.Global().Get("IntersectionObserver")
	if !ctor.Truthy() {
		// No observer support: treat everything as visible.
		for i, t := range targets {
			fn(i, t)
		}
		return func() {}
	}

	values := make([]js.Value, len(targets))
	for i, t := range targets {
		if el, ok := t.(*jsElement); ok {
			values[i] = el.v
		}
	}

	cb := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		entries := args[0]
		for i := 0; i < entries.Length(); i++ {
			entry := entries.Index(i)
			if !entry.Get("isIntersecting").Bool() {
				continue
			}
			target := entry.Get("target")
			for idx, v := range values {
				if v.Equal(target) {
					fn(idx, targets[idx])
					break
				}
			}
		}
		return nil
	})

	io := ctor.New(cb, map[string]interface{}{"threshold": threshold})
	for _, v := range values {
		if v.Truthy() {
			io.Call("observe", v)
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			io.Call("disconnect")
			cb.Release()
		})
	}
}

func (w *jsWindow) On(kind string, h events.Handler) func() {
	return listen(w.v, kind, h)
}

type jsStorage struct {
	v js.Value
}

func (s *jsStorage) Get(key string) (string, bool) {
	v := s.v.Call("getItem", key)
	if v.IsNull() || v.IsUndefined() {
		return "", false
	}
	return v.String(), true
}

func (s *jsStorage) Set(key, value string) {
	defer func() { _ = recover() }() // quota errors
	s.v.Call("setItem", key, value)
}
