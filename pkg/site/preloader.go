package site

import (
	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/scheduler"
)

const preloaderSelector = ".preloader"

// Preloader fades out the loading overlay after load and then hides it
type Preloader struct {
	el    dom.Element
	timer scheduler.Timer
}

func mountPreloader(s *Site) *Preloader {
	el := s.doc.Query(preloaderSelector)
	if el == nil {
		return nil
	}

	p := &Preloader{el: el}
	s.whenLoaded(func() {
		el.SetStyle("opacity", "0")
		if p.timer != nil {
			p.timer.Stop()
		}
		p.timer = s.sched.After(s.opts.PreloaderFade, func() {
			el.SetStyle("display", "none")
		})
	})
	s.deferClose(func() {
		if p.timer != nil {
			p.timer.Stop()
		}
	})
	return p
}
