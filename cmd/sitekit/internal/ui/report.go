package ui

import (
	"fmt"
	"strings"

	"github.com/recera/sitekit/pkg/site"
)

type reportLine struct {
	name   string
	on     bool
	detail string
}

// RenderReport formats the components a page wires up
func RenderReport(page string, f site.Features) string {
	lines := []reportLine{
		{"Preloader", f.Preloader, ".preloader"},
		{"Navbar state", f.Navbar, ".navbar"},
		{"Scroll progress", f.ProgressBar, ".scroll-progress"},
		{"Reveal on scroll", f.RevealElements > 0, plural(f.RevealElements, "element")},
		{"Theme toggle", f.ThemeToggles > 0, plural(f.ThemeToggles, "control")},
		{"Hero slider", f.Slides > 1, plural(f.Slides, "slide")},
		{"Counters", f.Counters > 0, plural(f.Counters, "counter")},
		{"Contact form", f.ContactForm, "[data-contact-form]"},
		{"Mobile menu", f.Hamburger, ".hamburger + .nav-menu"},
		{"Anchor links", f.Anchors > 0, plural(f.Anchors, "link")},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("sitekit check") + " " + mutedStyle.Render(page) + "\n\n")

	active := 0
	for _, l := range lines {
		mark := errorStyle.Render("✗")
		if l.on {
			mark = successStyle.Render("✓")
			active++
		}
		fmt.Fprintf(&b, "%s %-18s %s\n", mark, l.name, mutedStyle.Render(l.detail))
	}

	summary := fmt.Sprintf("%d of %d features active", active, len(lines))
	if active == 0 {
		summary = warningStyle.Render(summary + ", is this the right page?")
	}
	b.WriteString("\n" + summary)

	return boxStyle.Render(b.String())
}

func plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return fmt.Sprintf("%d %ss", n, word)
}
