// Package events provides the handler registry used by every event target in
// sitekit. Dispatch is serial: handlers for one event kind run in the order
// they were registered, on the caller's goroutine.
package events

import "sync"

// Event is the minimal view of a dispatched event
type Event interface {
	Type() string
	PreventDefault()
	DefaultPrevented() bool
}

// Handler reacts to an event
type Handler func(Event)

type entry struct {
	id uint64
	fn Handler
}

// Bus holds handlers keyed by event kind
type Bus struct {
	mu       sync.Mutex
	handlers map[string][]entry
	nextID   uint64
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{handlers: make(map[string][]entry)}
}

// On registers h for events of the given kind and returns a function that
// removes it. Calling the returned function more than once is harmless.
func (b *Bus) On(kind string, h Handler) (off func()) {
	if h == nil {
		return func() {}
	}

	b.mu.Lock()
	if b.handlers == nil {
		b.handlers = make(map[string][]entry)
	}
	b.nextID++
	id := b.nextID
	b.handlers[kind] = append(b.handlers[kind], entry{id: id, fn: h})
	b.mu.Unlock()

	return func() { b.remove(kind, id) }
}

func (b *Bus) remove(kind string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.handlers[kind]
	for i, e := range list {
		if e.id == id {
			b.handlers[kind] = append(list[:i:i], list[i+1:]...)
			return
		}
	}
}

// Emit delivers ev to the handlers registered for ev.Type(). The handler list
// is snapshotted first, so handlers added during dispatch wait for the next
// event.
func (b *Bus) Emit(ev Event) {
	if ev == nil {
		return
	}

	b.mu.Lock()
	list := append([]entry(nil), b.handlers[ev.Type()]...)
	b.mu.Unlock()

	for _, e := range list {
		e.fn(ev)
	}
}

// Len returns the number of handlers registered for kind
func (b *Bus) Len(kind string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[kind])
}

// Basic is a plain Event used by in-memory targets and tests
type Basic struct {
	kind      string
	prevented bool
}

// New creates a Basic event of the given kind
func New(kind string) *Basic {
	return &Basic{kind: kind}
}

func (e *Basic) Type() string           { return e.kind }
func (e *Basic) PreventDefault()        { e.prevented = true }
func (e *Basic) DefaultPrevented() bool { return e.prevented }

// Well-known event kinds
const (
	Load   = "load"
	Scroll = "scroll"
	Resize = "resize"
	Click  = "click"
	Submit = "submit"
)
