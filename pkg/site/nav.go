package site

import (
	"strings"

	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/events"
)

const (
	hamburgerSelector = ".hamburger"
	menuSelector      = ".nav-menu"
	anchorSelector    = `a[href^="#"]`
	menuOpenClass     = "active"
)

// Navigation wires the mobile menu toggle and in-page anchor scrolling
type Navigation struct {
	doc       dom.Document
	menu      dom.Element
	hamburger bool
	anchors   int
}

func mountNavigation(s *Site) *Navigation {
	n := &Navigation{doc: s.doc, menu: s.doc.Query(menuSelector)}

	if burger := s.doc.Query(hamburgerSelector); burger != nil && n.menu != nil {
		n.hamburger = true
		s.listen(burger, events.Click, func(events.Event) { n.ToggleMenu() })
	}

	for _, a := range s.doc.QueryAll(anchorSelector) {
		a := a
		n.anchors++
		s.listen(a, events.Click, func(ev events.Event) { n.follow(a, ev) })
	}
	return n
}

// ToggleMenu opens or closes the mobile menu
func (n *Navigation) ToggleMenu() {
	if n.menu == nil {
		return
	}
	n.menu.ToggleClass(menuOpenClass, !n.menu.HasClass(menuOpenClass))
}

// MenuOpen reports whether the mobile menu is open
func (n *Navigation) MenuOpen() bool {
	return n.menu != nil && n.menu.HasClass(menuOpenClass)
}

func (n *Navigation) follow(a dom.Element, ev events.Event) {
	href, _ := a.Attr("href")
	target := n.doc.ByID(strings.TrimPrefix(href, "#"))
	if target == nil {
		return
	}

	ev.PreventDefault()
	target.ScrollIntoView(true)
	if n.menu != nil {
		n.menu.RemoveClass(menuOpenClass)
	}
}
