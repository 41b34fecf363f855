package site

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/recera/sitekit/pkg/debug"
	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/scheduler"
)

const (
	counterSelector = "[data-counter]"
	counterAttr     = "data-counter"
	suffixAttr      = "data-suffix"
	durationAttr    = "data-duration"
	doneAttr        = "data-done"
)

// CounterConfig is read once from an element's data attributes
type CounterConfig struct {
	Target   int
	Suffix   string
	Duration time.Duration
}

// ParseCounter reads el's counter attributes. It returns false when the
// target is missing or not a whole number. A missing, invalid or
// non-positive duration (milliseconds) falls back to def.
func ParseCounter(el dom.Element, def time.Duration) (CounterConfig, bool) {
	raw, ok := el.Attr(counterAttr)
	if !ok {
		return CounterConfig{}, false
	}
	target, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		f, ferr := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) || math.Abs(f) > math.MaxInt32 {
			return CounterConfig{}, false
		}
		target = int(f)
	}

	cfg := CounterConfig{Target: target, Duration: def}
	cfg.Suffix, _ = el.Attr(suffixAttr)
	if v, ok := el.Attr(durationAttr); ok {
		if ms, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil && ms > 0 && !math.IsInf(ms, 0) {
			cfg.Duration = time.Duration(ms * float64(time.Millisecond))
		}
	}
	return cfg, true
}

// CounterValue is the value shown at progress t: target scaled from the start
// fraction up to the whole, rounded down. t is clamped to [0, 1].
func CounterValue(target int, start, t float64) int {
	t = math.Max(0, math.Min(1, t))
	return int(math.Floor(float64(target) * (start + (1-start)*t)))
}

// FormatCounter renders a value with its suffix
func FormatCounter(value int, suffix string) string {
	return strconv.Itoa(value) + suffix
}

type counter struct {
	el    dom.Element
	cfg   CounterConfig
	frame scheduler.Timer
}

// Counters animates [data-counter] elements the first time they scroll into
// view
type Counters struct {
	sched   scheduler.Scheduler
	start   float64
	items   []*counter
	reduced bool
}

func initCounters(s *Site) *Counters {
	els := s.doc.QueryAll(counterSelector)
	if len(els) == 0 {
		return nil
	}

	c := &Counters{
		sched:   s.sched,
		start:   s.opts.CounterStart,
		reduced: s.win.MatchMedia(dom.PrefersReducedMotion),
	}
	targets := make([]dom.Element, 0, len(els))
	for _, el := range els {
		cfg, ok := ParseCounter(el, s.opts.CounterDuration)
		if !ok {
			v, _ := el.Attr(counterAttr)
			debug.Logf("[Counter] skipping invalid target %q", v)
			continue
		}
		c.items = append(c.items, &counter{el: el, cfg: cfg})
		targets = append(targets, el)
	}

	if c.reduced {
		for _, it := range c.items {
			it.el.SetText(FormatCounter(it.cfg.Target, it.cfg.Suffix))
		}
		return c
	}

	s.deferClose(s.win.Observe(s.opts.CounterThreshold, targets, func(i int, _ dom.Element) {
		c.trigger(c.items[i])
	}))
	s.deferClose(c.stop)
	return c
}

// ReducedMotion reports whether counters were rendered without animation
func (c *Counters) ReducedMotion() bool { return c.reduced }

// Len returns the number of valid counters
func (c *Counters) Len() int { return len(c.items) }

func (c *Counters) trigger(it *counter) {
	if v, _ := it.el.Attr(doneAttr); v == "1" {
		return
	}
	it.el.SetAttr(doneAttr, "1")
	c.animate(it)
}

func (c *Counters) animate(it *counter) {
	begin := c.sched.Now()
	final := FormatCounter(it.cfg.Target, it.cfg.Suffix)

	var tick scheduler.FrameFunc
	tick = func(now time.Duration) {
		t := float64(now-begin) / float64(it.cfg.Duration)
		if t < 1 {
			it.el.SetText(FormatCounter(CounterValue(it.cfg.Target, c.start, t), it.cfg.Suffix))
			it.frame = c.sched.Frame(tick)
			return
		}
		it.el.SetText(final)
		it.frame = nil
	}
	it.frame = c.sched.Frame(tick)
}

func (c *Counters) stop() {
	for _, it := range c.items {
		if it.frame != nil {
			it.frame.Stop()
			it.frame = nil
		}
	}
}
