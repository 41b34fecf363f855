// Package scheduler abstracts the host's timers and animation frames so that
// components can be driven by the browser or stepped deterministically.
package scheduler

import (
	"sort"
	"sync"
	"time"
)

// FrameInterval is the frame period used by Virtual.Step
const FrameInterval = 16 * time.Millisecond

// Timer is a pending timer, interval or frame request
type Timer interface {
	Stop()
}

// FrameFunc receives the frame timestamp
type FrameFunc func(now time.Duration)

// Scheduler runs callbacks on the host's single event thread
type Scheduler interface {
	// Now returns a monotonic timestamp comparable with frame timestamps
	Now() time.Duration
	// Every runs fn every d until the timer is stopped
	Every(d time.Duration, fn func()) Timer
	// After runs fn once after d
	After(d time.Duration, fn func()) Timer
	// Frame runs fn before the next repaint
	Frame(fn FrameFunc) Timer
}

// debugLog is set by platform-specific code
var debugLog func(args ...interface{})

// SetDebugLog sets the debug logging function
func SetDebugLog(fn func(args ...interface{})) {
	debugLog = fn
}

// Virtual is a Scheduler whose clock only moves when told to
type Virtual struct {
	mu     sync.Mutex
	now    time.Duration
	nextID uint64
	timers []*vtimer
	frames []*vframe
}

type vtimer struct {
	id      uint64
	due     time.Duration
	period  time.Duration
	fn      func()
	stopped bool
	v       *Virtual
}

func (t *vtimer) Stop() {
	t.v.mu.Lock()
	defer t.v.mu.Unlock()
	t.stopped = true
	t.v.removeTimer(t)
}

type vframe struct {
	fn      FrameFunc
	stopped bool
	v       *Virtual
}

func (f *vframe) Stop() {
	f.v.mu.Lock()
	defer f.v.mu.Unlock()
	f.stopped = true
}

// NewVirtual creates a virtual scheduler at time zero
func NewVirtual() *Virtual {
	return &Virtual{}
}

// Now returns the virtual time
func (v *Virtual) Now() time.Duration {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

// Every schedules a repeating timer
func (v *Virtual) Every(d time.Duration, fn func()) Timer {
	return v.add(d, d, fn)
}

// After schedules a one-shot timer
func (v *Virtual) After(d time.Duration, fn func()) Timer {
	return v.add(d, 0, fn)
}

func (v *Virtual) add(d, period time.Duration, fn func()) *vtimer {
	v.mu.Lock()
	defer v.mu.Unlock()

	if period < 0 {
		period = 0
	}
	if d < 0 {
		d = 0
	}
	v.nextID++
	t := &vtimer{id: v.nextID, due: v.now + d, period: period, fn: fn, v: v}
	v.timers = append(v.timers, t)
	if debugLog != nil {
		debugLog("[Scheduler] timer", t.id, "due at", t.due)
	}
	return t
}

func (v *Virtual) removeTimer(t *vtimer) {
	for i, x := range v.timers {
		if x == t {
			v.timers = append(v.timers[:i], v.timers[i+1:]...)
			return
		}
	}
}

// Frame queues fn for the next Step
func (v *Virtual) Frame(fn FrameFunc) Timer {
	v.mu.Lock()
	defer v.mu.Unlock()
	f := &vframe{fn: fn, v: v}
	v.frames = append(v.frames, f)
	return f
}

// Advance moves the clock forward by d, firing due timers in due order.
// Timers that share a due time fire in creation order.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now + d
	v.mu.Unlock()

	for {
		v.mu.Lock()
		t := v.nextDue(target)
		if t == nil {
			v.now = target
			v.mu.Unlock()
			return
		}
		v.now = t.due
		if t.period > 0 {
			t.due += t.period
		} else {
			v.removeTimer(t)
		}
		v.mu.Unlock()

		t.fn()
	}
}

func (v *Virtual) nextDue(limit time.Duration) *vtimer {
	if len(v.timers) == 0 {
		return nil
	}
	sorted := append([]*vtimer(nil), v.timers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].due != sorted[j].due {
			return sorted[i].due < sorted[j].due
		}
		return sorted[i].id < sorted[j].id
	})
	if sorted[0].due > limit {
		return nil
	}
	return sorted[0]
}

// Step advances one FrameInterval and then runs the frame callbacks that
// were queued before the step. Callbacks queued while running wait for the
// next step.
func (v *Virtual) Step() {
	v.Advance(FrameInterval)

	v.mu.Lock()
	frames := v.frames
	v.frames = nil
	now := v.now
	v.mu.Unlock()

	for _, f := range frames {
		v.mu.Lock()
		stopped := f.stopped
		v.mu.Unlock()
		if !stopped {
			f.fn(now)
		}
	}
}

// RunFrames steps until no frame callbacks are pending or limit steps have
// run, and returns the number of steps taken.
func (v *Virtual) RunFrames(limit int) int {
	steps := 0
	for steps < limit && v.PendingFrames() > 0 {
		v.Step()
		steps++
	}
	return steps
}

// PendingTimers returns the number of live timers
func (v *Virtual) PendingTimers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

// PendingFrames returns the number of queued frame callbacks
func (v *Virtual) PendingFrames() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for _, f := range v.frames {
		if !f.stopped {
			n++
		}
	}
	return n
}
