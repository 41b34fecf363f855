package memdom

import (
	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/events"
)

// Default viewport used by NewWindow
const (
	DefaultInnerHeight = 800.0
)

// Window is an in-memory browsing context
type Window struct {
	doc          *Document
	bus          *events.Bus
	scrollY      float64
	innerHeight  float64
	scrollHeight float64
	storage      *Storage
	media        map[string]bool
	observers    []*observer
	lastSmooth   bool
}

// NewWindow creates a window over doc with local storage enabled and a page
// exactly as tall as the viewport.
func NewWindow(doc *Document) *Window {
	w := &Window{
		doc:          doc,
		bus:          events.NewBus(),
		innerHeight:  DefaultInnerHeight,
		scrollHeight: DefaultInnerHeight,
		storage:      NewStorage(),
		media:        make(map[string]bool),
	}
	doc.win = w
	return w
}

func (w *Window) Document() dom.Document { return w.doc }

// Doc returns the concrete document
func (w *Window) Doc() *Document { return w.doc }

func (w *Window) ScrollY() float64     { return w.scrollY }
func (w *Window) InnerHeight() float64 { return w.innerHeight }

func (w *Window) ScrollMetrics() dom.ScrollMetrics {
	return dom.ScrollMetrics{
		ScrollTop:    w.scrollY,
		ScrollHeight: w.scrollHeight,
		ClientHeight: w.innerHeight,
	}
}

// SetInnerHeight changes the viewport height and dispatches resize
func (w *Window) SetInnerHeight(h float64) {
	w.innerHeight = h
	w.checkObservers()
	w.bus.Emit(events.New(events.Resize))
}

// SetScrollHeight sets the total document height
func (w *Window) SetScrollHeight(h float64) { w.scrollHeight = h }

// ScrollTo moves the viewport and dispatches a scroll event. The offset is
// not clamped to the document height.
func (w *Window) ScrollTo(y float64) {
	w.scrollY = y
	w.checkObservers()
	w.bus.Emit(events.New(events.Scroll))
}

// LastScrollSmooth reports whether the last ScrollIntoView asked for smooth
// scrolling
func (w *Window) LastScrollSmooth() bool { return w.lastSmooth }

// FireLoad marks the document loaded and dispatches load
func (w *Window) FireLoad() {
	w.doc.loaded = true
	w.bus.Emit(events.New(events.Load))
}

// Dispatch emits a new event of the given kind on the window
func (w *Window) Dispatch(kind string) *events.Basic {
	ev := events.New(kind)
	w.bus.Emit(ev)
	return ev
}

func (w *Window) On(kind string, h events.Handler) func() { return w.bus.On(kind, h) }

// Listeners returns the number of window handlers registered for kind
func (w *Window) Listeners(kind string) int { return w.bus.Len(kind) }

func (w *Window) Storage() dom.Storage {
	if w.storage == nil {
		return nil
	}
	return w.storage
}

// LocalStorage returns the concrete storage, or nil when disabled
func (w *Window) LocalStorage() *Storage { return w.storage }

// DisableStorage makes Storage return nil
func (w *Window) DisableStorage() { w.storage = nil }

// SetMedia sets the result of a media query
func (w *Window) SetMedia(query string, matches bool) { w.media[query] = matches }

func (w *Window) MatchMedia(query string) bool { return w.media[query] }

type observer struct {
	threshold float64
	targets   []*Node
	index     []int
	inside    map[*Node]bool
	fn        dom.IntersectionFunc
	closed    bool
}

// Observe delivers the initial intersecting targets synchronously, then again
// on every scroll or resize that brings a target into view.
func (w *Window) Observe(threshold float64, targets []dom.Element, fn dom.IntersectionFunc) func() {
	o := &observer{
		threshold: threshold,
		inside:    make(map[*Node]bool),
		fn:        fn,
	}
	for i, t := range targets {
		if n, ok := t.(*Node); ok {
			o.targets = append(o.targets, n)
			o.index = append(o.index, i)
		}
	}
	w.observers = append(w.observers, o)
	w.check(o)

	return func() {
		o.closed = true
		for i, x := range w.observers {
			if x == o {
				w.observers = append(w.observers[:i], w.observers[i+1:]...)
				break
			}
		}
	}
}

// Observers returns the number of connected observers
func (w *Window) Observers() int { return len(w.observers) }

func (w *Window) checkObservers() {
	for _, o := range append([]*observer(nil), w.observers...) {
		w.check(o)
	}
}

func (w *Window) check(o *observer) {
	for i, n := range o.targets {
		if o.closed {
			return
		}
		in := w.VisibleRatio(n) >= o.threshold && w.intersects(n)
		was := o.inside[n]
		o.inside[n] = in
		if in && !was {
			o.fn(o.index[i], n)
		}
	}
}

func (w *Window) intersects(n *Node) bool {
	r := n.BoundingRect()
	return r.Bottom() >= 0 && r.Top <= w.innerHeight
}

// VisibleRatio returns the fraction of n's box inside the viewport. Boxes
// with no height count as fully visible when they sit inside it.
func (w *Window) VisibleRatio(n *Node) float64 {
	r := n.BoundingRect()
	if r.Height <= 0 {
		if r.Top >= 0 && r.Top <= w.innerHeight {
			return 1
		}
		return 0
	}
	top := max(r.Top, 0)
	bottom := min(r.Bottom(), w.innerHeight)
	if bottom <= top {
		return 0
	}
	return (bottom - top) / r.Height
}

// Storage is an in-memory key-value store
type Storage struct {
	items map[string]string
}

// NewStorage creates an empty store
func NewStorage() *Storage {
	return &Storage{items: make(map[string]string)}
}

func (s *Storage) Get(key string) (string, bool) {
	v, ok := s.items[key]
	return v, ok
}

func (s *Storage) Set(key, value string) { s.items[key] = value }

// Len returns the number of stored keys
func (s *Storage) Len() int { return len(s.items) }
