package site

import (
	"testing"

	"github.com/recera/sitekit/pkg/dom"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name string
		m    dom.ScrollMetrics
		want float64
	}{
		{"top of page", dom.ScrollMetrics{ScrollTop: 0, ScrollHeight: 2000, ClientHeight: 800}, 0},
		{"half way", dom.ScrollMetrics{ScrollTop: 600, ScrollHeight: 2000, ClientHeight: 800}, 50},
		{"bottom", dom.ScrollMetrics{ScrollTop: 1200, ScrollHeight: 2000, ClientHeight: 800}, 100},
		{"no overflow", dom.ScrollMetrics{ScrollTop: 500, ScrollHeight: 800, ClientHeight: 800}, 0},
		{"shorter than viewport", dom.ScrollMetrics{ScrollTop: 50, ScrollHeight: 600, ClientHeight: 800}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.m); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(50); got != "50%" {
		t.Errorf("FormatPercent(50) = %q", got)
	}
	if got := FormatPercent(12.5); got != "12.5%" {
		t.Errorf("FormatPercent(12.5) = %q", got)
	}
}

func TestScrollReporter(t *testing.T) {
	f := newFixture(t, landingPage)
	f.win.SetScrollHeight(2000)
	f.start()

	nav := f.doc.HTML().Find(".navbar")
	bar := f.doc.HTML().Find(".scroll-progress")

	if nav.HasClass("is-scrolled") {
		t.Error("Navbar marked scrolled at the top")
	}
	if bar.Style("width") != "0%" {
		t.Errorf("Initial width = %q, want 0%%", bar.Style("width"))
	}

	f.win.ScrollTo(10)
	if nav.HasClass("is-scrolled") {
		t.Error("Threshold is exclusive")
	}

	f.win.ScrollTo(600)
	if !nav.HasClass("is-scrolled") {
		t.Error("Navbar should be marked scrolled")
	}
	if bar.Style("width") != "50%" {
		t.Errorf("width = %q, want 50%%", bar.Style("width"))
	}

	f.win.ScrollTo(0)
	if nav.HasClass("is-scrolled") {
		t.Error("Scrolled class should be removed at the top")
	}
}

func TestScrollReporter_NoOverflow(t *testing.T) {
	f := newFixture(t, landingPage)
	f.win.SetScrollHeight(800)
	f.start()

	f.win.ScrollTo(300)
	if got := f.doc.HTML().Find(".scroll-progress").Style("width"); got != "0%" {
		t.Errorf("width = %q, want 0%%", got)
	}
}
