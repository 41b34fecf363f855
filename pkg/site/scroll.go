package site

import (
	"strconv"

	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/events"
)

const (
	navbarSelector   = ".navbar"
	progressSelector = ".scroll-progress"
	scrolledClass    = "is-scrolled"
)

// Progress returns how far the document is scrolled, in percent. A document
// that does not overflow reports 0.
func Progress(m dom.ScrollMetrics) float64 {
	scrollable := m.ScrollHeight - m.ClientHeight
	if scrollable <= 0 {
		return 0
	}
	return m.ScrollTop / scrollable * 100
}

// FormatPercent renders p as a CSS percentage
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64) + "%"
}

// ScrollReporter keeps the navbar state and progress bar in step with the
// scroll offset
type ScrollReporter struct {
	site *Site
}

func mountScrollReporter(s *Site) *ScrollReporter {
	r := &ScrollReporter{site: s}
	s.listen(s.win, events.Scroll, func(events.Event) { r.Update() })
	s.whenLoaded(r.Update)
	return r
}

// Update recomputes the navbar class and progress width
func (r *ScrollReporter) Update() {
	s := r.site
	if nav := s.doc.Query(navbarSelector); nav != nil {
		nav.ToggleClass(scrolledClass, s.win.ScrollY() > s.opts.ScrolledThreshold)
	}
	if bar := s.doc.Query(progressSelector); bar != nil {
		bar.SetStyle("width", FormatPercent(Progress(s.win.ScrollMetrics())))
	}
}
