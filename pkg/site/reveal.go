package site

import "github.com/recera/sitekit/pkg/events"

const (
	revealSelector = ".animate-on-scroll"
	visibleClass   = "visible"
)

// Reveal marks scroll-revealable elements visible once their top edge is
// inside the viewport by more than the reveal margin. The class is never
// removed.
type Reveal struct {
	site *Site
}

func mountReveal(s *Site) *Reveal {
	r := &Reveal{site: s}
	s.listen(s.win, events.Scroll, func(events.Event) { r.Update() })
	s.whenLoaded(r.Update)
	return r
}

// Update re-evaluates every revealable element
func (r *Reveal) Update() {
	limit := r.site.win.InnerHeight() - r.site.opts.RevealMargin
	for _, el := range r.site.doc.QueryAll(revealSelector) {
		if el.BoundingRect().Top < limit {
			el.AddClass(visibleClass)
		}
	}
}
