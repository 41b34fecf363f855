package site

import (
	"testing"

	"github.com/recera/sitekit/pkg/dom"
)

func TestInitialTheme(t *testing.T) {
	tests := []struct {
		name       string
		stored     string
		hasStored  bool
		prefersDrk bool
		noStorage  bool
		want       Theme
	}{
		{name: "default light", want: ThemeLight},
		{name: "system dark", prefersDrk: true, want: ThemeDark},
		{name: "stored dark", stored: "dark", hasStored: true, want: ThemeDark},
		{name: "stored light beats system", stored: "light", hasStored: true, prefersDrk: true, want: ThemeLight},
		{name: "unknown stored value", stored: "sepia", hasStored: true, prefersDrk: true, want: ThemeLight},
		{name: "empty stored value", stored: "", hasStored: true, prefersDrk: true, want: ThemeDark},
		{name: "no storage", noStorage: true, prefersDrk: true, want: ThemeDark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, landingPage)
			f.win.SetMedia(dom.PrefersDark, tt.prefersDrk)
			if tt.hasStored {
				f.win.Storage().Set("theme", tt.stored)
			}
			if tt.noStorage {
				f.win.DisableStorage()
			}

			f.start()

			ts := f.site.Theme()
			if ts == nil {
				t.Fatal("Theme store not initialised")
			}
			if got := ts.Current(); got != tt.want {
				t.Errorf("Current() = %s, want %s", got, tt.want)
			}
			_, hasAttr := f.doc.HTML().Attr("data-theme")
			if hasAttr != (tt.want == ThemeDark) {
				t.Errorf("data-theme present = %v for %s", hasAttr, tt.want)
			}
		})
	}
}

func TestThemeStore_ToggleRoundTrip(t *testing.T) {
	f := newFixture(t, landingPage)
	f.win.SetMedia(dom.PrefersDark, true)
	f.start()

	ts := f.site.Theme()
	if ts.Current() != ThemeDark {
		t.Fatalf("Expected dark from system preference")
	}
	if f.win.LocalStorage().Len() != 0 {
		t.Errorf("Initial theme should not be persisted")
	}

	if got := ts.Toggle(); got != ThemeLight {
		t.Errorf("First toggle = %s, want light", got)
	}
	assertPersisted(t, f, ThemeLight)

	if got := ts.Toggle(); got != ThemeDark {
		t.Errorf("Second toggle = %s, want dark", got)
	}
	assertPersisted(t, f, ThemeDark)

	if v, _ := f.doc.HTML().Attr("data-theme"); v != "dark" {
		t.Errorf("data-theme = %q after two toggles", v)
	}
}

func TestThemeStore_ToggleControls(t *testing.T) {
	f := newFixture(t, landingPage)
	f.start()

	var seen []Theme
	f.site.Theme().Subscribe(func(th Theme) { seen = append(seen, th) })

	toggles := f.doc.HTML().FindAll("[data-theme-toggle]")
	toggles[0].Click()
	assertPersisted(t, f, ThemeDark)
	toggles[1].Click()
	assertPersisted(t, f, ThemeLight)

	if len(seen) != 2 || seen[0] != ThemeDark || seen[1] != ThemeLight {
		t.Errorf("Subscriber saw %v", seen)
	}
}

func TestThemeStore_ToggleWithoutStorage(t *testing.T) {
	f := newFixture(t, landingPage)
	f.win.DisableStorage()
	f.start()

	if got := f.site.Theme().Toggle(); got != ThemeDark {
		t.Errorf("Toggle() = %s, want dark", got)
	}
}

func assertPersisted(t *testing.T, f *fixture, want Theme) {
	t.Helper()
	v, ok := f.win.Storage().Get("theme")
	if !ok || Theme(v) != want {
		t.Errorf("stored theme = %q (%v), want %s", v, ok, want)
	}
	if f.site.Theme().Current() != want {
		t.Errorf("applied theme = %s, want %s", f.site.Theme().Current(), want)
	}
}
