// Package reactive holds small observable values. Subscribers run
// synchronously on the goroutine that changes the value.
package reactive

import (
	"sync"
)

// debugLog is set by platform-specific code
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// Signal is the interface for reactive values
type Signal[T any] interface {
	Get() T
	Set(T)
	Subscribe(fn func(T)) (unsubscribe func())
}

type subscriber[T any] struct {
	id uint64
	fn func(T)
}

// State represents a reactive state value
type State[T any] struct {
	value T
	mu    sync.RWMutex

	subs   []subscriber[T]
	subsMu sync.Mutex
	nextID uint64
}

// NewState creates a new reactive state
func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial}
}

// Get returns the current value
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies subscribers in subscription order
func (s *State[T]) Set(value T) {
	if debugLog != nil {
		debugLog("[State] Set called with value:", value)
	}

	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	s.notify(value)
}

// Update atomically reads, modifies, and writes the value
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	oldValue := s.value
	s.value = fn(oldValue)
	newValue := s.value
	s.mu.Unlock()

	if debugLog != nil {
		debugLog("[State] Update called, old:", oldValue, "new:", newValue)
	}

	s.notify(newValue)
}

// Subscribe registers fn to run after every change
func (s *State[T]) Subscribe(fn func(T)) func() {
	s.subsMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber[T]{id: id, fn: fn})
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// notify runs subscribers outside the locks so they may read or write s
func (s *State[T]) notify(value T) {
	s.subsMu.Lock()
	subs := append([]subscriber[T](nil), s.subs...)
	s.subsMu.Unlock()

	if debugLog != nil {
		debugLog("[State] Notifying", len(subs), "subscribers")
	}
	for _, sub := range subs {
		sub.fn(value)
	}
}
