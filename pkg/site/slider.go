package site

import (
	"strconv"
	"time"

	"github.com/recera/sitekit/pkg/debug"
	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/events"
	"github.com/recera/sitekit/pkg/reactive"
	"github.com/recera/sitekit/pkg/scheduler"
)

const (
	sliderSelector = ".hero-slider"
	slideSelector  = ".slide"
	dotsSelector   = ".slider-dots"
	dotClass       = "slider-dot"
	activeClass    = "active"
)

// Slider cycles the hero slides. Exactly one slide and its indicator carry
// the active class, matching Current.
type Slider struct {
	sched    scheduler.Scheduler
	interval time.Duration
	slides   []dom.Element
	dots     []dom.Element
	index    *reactive.State[int]
	timer    scheduler.Timer
}

func initSlider(s *Site) *Slider {
	root := s.doc.Query(sliderSelector)
	if root == nil {
		return nil
	}
	slides := root.QueryAll(slideSelector)
	box := s.doc.Query(dotsSelector)
	if len(slides) <= 1 || box == nil {
		debug.Logf("[Slider] disabled: %d slides, indicators present: %v", len(slides), box != nil)
		return nil
	}

	current := 0
	for i, slide := range slides {
		if slide.HasClass(activeClass) {
			current = i
			break
		}
	}

	sl := &Slider{
		sched:    s.sched,
		interval: s.opts.SlideInterval,
		slides:   slides,
		index:    reactive.NewState(current),
	}

	box.Clear()
	for i := range slides {
		dot := s.doc.CreateElement("button")
		if dot == nil {
			return nil
		}
		dot.SetAttr("type", "button")
		dot.SetAttr("class", dotClass)
		dot.SetAttr("aria-label", "Go to slide "+strconv.Itoa(i+1))
		box.AppendChild(dot)
		sl.dots = append(sl.dots, dot)

		idx := i
		s.listen(dot, events.Click, func(events.Event) { sl.GoTo(idx) })
	}

	sl.render(current)
	s.deferClose(sl.index.Subscribe(sl.render))
	sl.restart()
	s.deferClose(sl.Stop)

	debug.Logf("[Slider] %d slides, starting at %d", len(slides), current)
	return sl
}

func (sl *Slider) render(current int) {
	for i := range sl.slides {
		sl.slides[i].ToggleClass(activeClass, i == current)
		sl.dots[i].ToggleClass(activeClass, i == current)
	}
}

func (sl *Slider) restart() {
	if sl.timer != nil {
		sl.timer.Stop()
	}
	sl.timer = sl.sched.Every(sl.interval, sl.Next)
}

// Len returns the number of slides
func (sl *Slider) Len() int { return len(sl.slides) }

// Current returns the active index
func (sl *Slider) Current() int { return sl.index.Get() }

// Next advances to the following slide, wrapping at the end
func (sl *Slider) Next() {
	sl.index.Update(func(i int) int { return (i + 1) % len(sl.slides) })
}

// GoTo activates slide i and restarts the interval. Out of range indexes are
// ignored.
func (sl *Slider) GoTo(i int) {
	if i < 0 || i >= len(sl.slides) {
		return
	}
	sl.index.Set(i)
	sl.restart()
}

// Stop cancels automatic advancing
func (sl *Slider) Stop() {
	if sl.timer != nil {
		sl.timer.Stop()
		sl.timer = nil
	}
}
