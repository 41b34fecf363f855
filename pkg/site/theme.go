package site

import (
	"github.com/recera/sitekit/pkg/debug"
	"github.com/recera/sitekit/pkg/dom"
	"github.com/recera/sitekit/pkg/events"
	"github.com/recera/sitekit/pkg/reactive"
)

// Theme is the colour scheme preference
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

const (
	themeAttr           = "data-theme"
	themeToggleSelector = "[data-theme-toggle]"
)

// ParseTheme maps a stored value to a theme. Anything but "dark" is light.
func ParseTheme(v string) Theme {
	if Theme(v) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// ThemeStore applies the theme to the root element and persists toggles
type ThemeStore struct {
	root    dom.Element
	storage dom.Storage
	key     string
	state   *reactive.State[Theme]
	toggles int
}

// InitialTheme resolves the theme to apply on load: the stored value, else
// the system preference, else light.
func InitialTheme(win dom.Window, key string) Theme {
	if st := win.Storage(); st != nil {
		if v, ok := st.Get(key); ok && v != "" {
			return ParseTheme(v)
		}
	}
	if win.MatchMedia(dom.PrefersDark) {
		return ThemeDark
	}
	return ThemeLight
}

func initTheme(s *Site) *ThemeStore {
	root := s.doc.Root()
	if root == nil {
		return nil
	}

	ts := &ThemeStore{
		root:    root,
		storage: s.win.Storage(),
		key:     s.opts.ThemeKey,
		state:   reactive.NewState(InitialTheme(s.win, s.opts.ThemeKey)),
	}
	ts.apply(ts.state.Get())
	s.deferClose(ts.state.Subscribe(ts.apply))

	for _, btn := range s.doc.QueryAll(themeToggleSelector) {
		ts.toggles++
		s.listen(btn, events.Click, func(events.Event) { ts.Toggle() })
	}

	debug.Logf("[Theme] initial %s, %d toggles", ts.state.Get(), ts.toggles)
	return ts
}

func (ts *ThemeStore) apply(t Theme) {
	if t == ThemeDark {
		ts.root.SetAttr(themeAttr, string(ThemeDark))
	} else {
		ts.root.RemoveAttr(themeAttr)
	}
}

// Current reads the theme from the root element
func (ts *ThemeStore) Current() Theme {
	if v, ok := ts.root.Attr(themeAttr); ok && Theme(v) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle flips the applied theme and persists the new value
func (ts *ThemeStore) Toggle() Theme {
	next := ThemeDark
	if ts.Current() == ThemeDark {
		next = ThemeLight
	}
	ts.state.Set(next)
	if ts.storage != nil {
		ts.storage.Set(ts.key, string(next))
	}
	return next
}

// Subscribe runs fn after every theme change
func (ts *ThemeStore) Subscribe(fn func(Theme)) (unsubscribe func()) {
	return ts.state.Subscribe(fn)
}
