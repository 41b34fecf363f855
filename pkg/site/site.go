// Package site wires the interactive behaviour of the marketing pages: theme
// switching, scroll effects, the hero slider, animated counters, the contact
// form stub and navigation.
//
// A Site owns every listener and timer it creates. Mount registers the
// handlers that the markup needs from the first paint, Load runs the
// initialisers that wait for the load event, and Close undoes both.
package site

import (
	"time"

	"github.com/recera/sitekit/pkg/debug"
	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/events"
	"github.com/recera/sitekit/pkg/scheduler"
)

// Options tunes component constants. Zero fields take the defaults.
type Options struct {
	SlideInterval     time.Duration
	CounterStart      float64
	CounterDuration   time.Duration
	CounterThreshold  float64
	ScrolledThreshold float64
	RevealMargin      float64
	PreloaderFade     time.Duration
	ThemeKey          string
}

// DefaultOptions returns the stock constants
func DefaultOptions() Options {
	return Options{
		SlideInterval:     6 * time.Second,
		CounterStart:      0.15,
		CounterDuration:   1200 * time.Millisecond,
		CounterThreshold:  0.35,
		ScrolledThreshold: 10,
		RevealMargin:      100,
		PreloaderFade:     600 * time.Millisecond,
		ThemeKey:          "theme",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.SlideInterval <= 0 {
		o.SlideInterval = d.SlideInterval
	}
	if o.CounterStart <= 0 || o.CounterStart >= 1 {
		o.CounterStart = d.CounterStart
	}
	if o.CounterDuration <= 0 {
		o.CounterDuration = d.CounterDuration
	}
	if o.CounterThreshold <= 0 || o.CounterThreshold > 1 {
		o.CounterThreshold = d.CounterThreshold
	}
	if o.ScrolledThreshold <= 0 {
		o.ScrolledThreshold = d.ScrolledThreshold
	}
	if o.RevealMargin <= 0 {
		o.RevealMargin = d.RevealMargin
	}
	if o.PreloaderFade <= 0 {
		o.PreloaderFade = d.PreloaderFade
	}
	if o.ThemeKey == "" {
		o.ThemeKey = d.ThemeKey
	}
	return o
}

// Site is the context object shared by all components
type Site struct {
	win   dom.Window
	doc   dom.Document
	sched scheduler.Scheduler
	opts  Options

	cleanups []func()
	onLoad   []func()
	mounted  bool
	loaded   bool
	closed   bool

	theme     *ThemeStore
	slider    *Slider
	counters  *Counters
	contact   *ContactForm
	nav       *Navigation
	preloader *Preloader
	scroll    *ScrollReporter
	reveal    *Reveal
}

// New creates a Site over win driven by sched
func New(win dom.Window, sched scheduler.Scheduler, opts Options) *Site {
	return &Site{
		win:   win,
		doc:   win.Document(),
		sched: sched,
		opts:  opts.withDefaults(),
	}
}

// Options returns the effective options
func (s *Site) Options() Options { return s.opts }

// Mount wires the components. Scroll listeners and navigation attach
// immediately; everything else waits for the load event. When the document
// has already loaded, Load runs before Mount returns.
func (s *Site) Mount() {
	if s.mounted || s.closed {
		return
	}
	s.mounted = true

	s.preloader = mountPreloader(s)
	s.scroll = mountScrollReporter(s)
	s.reveal = mountReveal(s)
	s.nav = mountNavigation(s)

	s.whenLoaded(func() { s.theme = initTheme(s) })
	s.whenLoaded(func() { s.slider = initSlider(s) })
	s.whenLoaded(func() { s.counters = initCounters(s) })
	s.whenLoaded(func() { s.contact = initContactForm(s) })

	s.listen(s.win, events.Load, func(events.Event) { s.Load() })
	if s.doc.Loaded() {
		s.Load()
	}
}

// Load runs the load-time work once, in registration order: preloader fade,
// scroll state, reveal pass, then the theme, slider, counters and form.
func (s *Site) Load() {
	if s.loaded || s.closed {
		return
	}
	s.loaded = true
	debug.Log("[Site] load")

	for _, fn := range s.onLoad {
		fn()
	}
}

// Close stops every timer, disconnects observers and removes listeners
func (s *Site) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for i := len(s.cleanups) - 1; i >= 0; i-- {
		s.cleanups[i]()
	}
	s.cleanups = nil
	debug.Log("[Site] closed")
}

func (s *Site) whenLoaded(fn func()) {
	s.onLoad = append(s.onLoad, fn)
}

// deferClose registers fn to run on Close
func (s *Site) deferClose(fn func()) {
	s.cleanups = append(s.cleanups, fn)
}

type target interface {
	On(kind string, h events.Handler) func()
}

func (s *Site) listen(t target, kind string, h events.Handler) {
	s.deferClose(t.On(kind, h))
}

// Theme returns the theme store, or nil before load
func (s *Site) Theme() *ThemeStore { return s.theme }

// Slider returns the hero slider, or nil when the markup has none
func (s *Site) Slider() *Slider { return s.slider }

// Counters returns the counter animator, or nil when there are no counters
func (s *Site) Counters() *Counters { return s.counters }

// ContactForm returns the form handler, or nil when the page has no form
func (s *Site) ContactForm() *ContactForm { return s.contact }

// Navigation returns the navigation wiring
func (s *Site) Navigation() *Navigation { return s.nav }

// Features lists the components that found their markup
type Features struct {
	Preloader      bool `json:"preloader"`
	Navbar         bool `json:"navbar"`
	ProgressBar    bool `json:"progressBar"`
	RevealElements int  `json:"revealElements"`
	ThemeToggles   int  `json:"themeToggles"`
	Slides         int  `json:"slides"`
	Counters       int  `json:"counters"`
	ContactForm    bool `json:"contactForm"`
	Hamburger      bool `json:"hamburger"`
	Anchors        int  `json:"anchors"`
}

// Features reports what the site wired up
func (s *Site) Features() Features {
	f := Features{
		Preloader:      s.preloader != nil,
		Navbar:         s.doc.Query(navbarSelector) != nil,
		ProgressBar:    s.doc.Query(progressSelector) != nil,
		RevealElements: len(s.doc.QueryAll(revealSelector)),
		ContactForm:    s.contact != nil,
	}
	if s.theme != nil {
		f.ThemeToggles = s.theme.toggles
	}
	if s.slider != nil {
		f.Slides = s.slider.Len()
	}
	if s.counters != nil {
		f.Counters = len(s.counters.items)
	}
	if s.nav != nil {
		f.Hamburger = s.nav.hamburger
		f.Anchors = s.nav.anchors
	}
	return f
}
