package memdom

import (
	"testing"

	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/events"
)

func TestWindow_BoundingRectFollowsScroll(t *testing.T) {
	doc := NewDocument()
	win := NewWindow(doc)
	el := doc.Body().Append(doc.Element("div"))
	el.SetRect(dom.Rect{Top: 1000, Height: 200})

	win.ScrollTo(300)
	if got := el.BoundingRect().Top; got != 700 {
		t.Errorf("Top = %v, want 700", got)
	}
}

func TestWindow_ObserveThreshold(t *testing.T) {
	doc := NewDocument()
	win := NewWindow(doc)
	win.SetScrollHeight(5000)

	el := doc.Body().Append(doc.Element("div"))
	el.SetRect(dom.Rect{Top: 1000, Height: 100})

	var hits []dom.Element
	disconnect := win.Observe(0.35, []dom.Element{el}, func(i int, e dom.Element) {
		if i != 0 {
			t.Errorf("Unexpected index %d", i)
		}
		hits = append(hits, e)
	})

	if len(hits) != 0 {
		t.Fatalf("Element below the fold should not be reported")
	}

	// 30% visible
	win.ScrollTo(230)
	if len(hits) != 0 {
		t.Fatalf("30%% visible should not cross 0.35")
	}

	// 50% visible
	win.ScrollTo(250)
	if len(hits) != 1 {
		t.Fatalf("Expected one hit, got %d", len(hits))
	}

	// Still visible, no new transition
	win.ScrollTo(400)
	if len(hits) != 1 {
		t.Fatalf("Expected no repeat while visible, got %d", len(hits))
	}

	// Leave and re-enter
	win.ScrollTo(0)
	win.ScrollTo(400)
	if len(hits) != 2 {
		t.Fatalf("Expected re-entry to be reported, got %d", len(hits))
	}

	disconnect()
	win.ScrollTo(0)
	win.ScrollTo(400)
	if len(hits) != 2 || win.Observers() != 0 {
		t.Errorf("Disconnected observer still active")
	}
}

func TestWindow_ScrollIntoView(t *testing.T) {
	doc := NewDocument()
	win := NewWindow(doc)
	target := doc.Body().Append(doc.Element("section", "id", "about"))
	target.SetRect(dom.Rect{Top: 1200, Height: 400})

	scrolls := 0
	win.On(events.Scroll, func(events.Event) { scrolls++ })

	target.ScrollIntoView(true)
	if win.ScrollY() != 1200 || !win.LastScrollSmooth() || scrolls != 1 {
		t.Errorf("scrollY=%v smooth=%v scrolls=%d", win.ScrollY(), win.LastScrollSmooth(), scrolls)
	}
}

func TestWindow_StorageAndMedia(t *testing.T) {
	win := NewWindow(NewDocument())

	win.Storage().Set("theme", "dark")
	if v, ok := win.Storage().Get("theme"); !ok || v != "dark" {
		t.Errorf("Get = %q, %v", v, ok)
	}

	win.DisableStorage()
	if win.Storage() != nil {
		t.Error("Disabled storage should be a nil interface")
	}

	if win.MatchMedia(dom.PrefersDark) {
		t.Error("Unset media should not match")
	}
	win.SetMedia(dom.PrefersDark, true)
	if !win.MatchMedia(dom.PrefersDark) {
		t.Error("Expected media to match")
	}
}
