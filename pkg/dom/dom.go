// Package dom describes the slice of the browser document that sitekit
// components touch. The wasm build binds it to syscall/js; memdom provides an
// in-memory implementation for tests and offline checks.
//
// Lookups that find nothing return a nil Element, never a typed nil.
package dom

import "github.com/recera/sitekit/pkg/events"

// Rect is a bounding box in viewport coordinates
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Bottom returns the lower edge of the box
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Element is a document element
type Element interface {
	Tag() string

	Query(selector string) Element
	QueryAll(selector string) []Element

	Attr(name string) (string, bool)
	SetAttr(name, value string)
	RemoveAttr(name string)

	HasClass(name string) bool
	AddClass(names ...string)
	RemoveClass(names ...string)
	// ToggleClass adds name when on is true and removes it otherwise
	ToggleClass(name string, on bool)

	SetStyle(property, value string)
	Style(property string) string

	Text() string
	SetText(text string)

	AppendChild(child Element)
	// Clear removes every child
	Clear()

	BoundingRect() Rect
	ScrollIntoView(smooth bool)

	// Reset clears the values of the form's fields
	Reset()

	On(kind string, h events.Handler) (off func())
}

// Document is the page document
type Document interface {
	Root() Element
	Query(selector string) Element
	QueryAll(selector string) []Element
	ByID(id string) Element
	CreateElement(tag string) Element
	// Loaded reports whether the load event has already fired
	Loaded() bool
}

// ScrollMetrics mirrors the document element's scroll box
type ScrollMetrics struct {
	ScrollTop    float64
	ScrollHeight float64
	ClientHeight float64
}

// IntersectionFunc receives a target that became intersecting along with its
// index in the slice given to Observe
type IntersectionFunc func(index int, el Element)

// Window is the browsing context
type Window interface {
	Document() Document

	ScrollY() float64
	InnerHeight() float64
	ScrollMetrics() ScrollMetrics

	// Storage returns nil when local storage is unavailable
	Storage() Storage
	MatchMedia(query string) bool

	// Observe calls fn whenever one of targets crosses into at least the
	// given visible fraction. The returned function disconnects the observer.
	Observe(threshold float64, targets []Element, fn IntersectionFunc) (disconnect func())

	On(kind string, h events.Handler) (off func())
}

// Storage is a string key-value store
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Media queries used by the site
const (
	PrefersDark          = "(prefers-color-scheme: dark)"
	PrefersReducedMotion = "(prefers-reduced-motion: reduce)"
)
