package site

import "testing"

func TestNavigation_Hamburger(t *testing.T) {
	f := newFixture(t, landingPage)
	f.start()

	burger := f.doc.HTML().Find(".hamburger")
	menu := f.doc.HTML().Find(".nav-menu")

	burger.Click()
	if !menu.HasClass("active") || !f.site.Navigation().MenuOpen() {
		t.Fatal("Menu should open")
	}
	burger.Click()
	if menu.HasClass("active") {
		t.Fatal("Menu should close")
	}
}

func TestNavigation_Anchor(t *testing.T) {
	f := newFixture(t, landingPage)
	f.place(t, "#contact", 1800, 600)
	f.start()

	f.doc.HTML().Find(".hamburger").Click()

	ev := f.doc.HTML().Find(`a[href="#contact"]`).Click()
	if !ev.DefaultPrevented() {
		t.Error("Default jump should be suppressed")
	}
	if f.win.ScrollY() != 1800 || !f.win.LastScrollSmooth() {
		t.Errorf("scrollY = %v smooth = %v", f.win.ScrollY(), f.win.LastScrollSmooth())
	}
	if f.site.Navigation().MenuOpen() {
		t.Error("Mobile menu should close after navigating")
	}
}

func TestNavigation_AnchorWithoutTarget(t *testing.T) {
	f := newFixture(t, landingPage)
	f.start()
	f.doc.HTML().Find(".hamburger").Click()

	for _, href := range []string{"#missing", "#"} {
		ev := f.doc.HTML().Find(`a[href="` + href + `"]`).Click()
		if ev.DefaultPrevented() {
			t.Errorf("%s: default prevented without a target", href)
		}
	}
	if f.win.ScrollY() != 0 {
		t.Errorf("Scrolled to %v", f.win.ScrollY())
	}
	if !f.site.Navigation().MenuOpen() {
		t.Error("Menu should stay open when nothing happened")
	}
}

func TestNavigation_HamburgerWithoutMenu(t *testing.T) {
	f := newFixture(t, `<html><body><button class="hamburger"></button></body></html>`)
	f.start()

	f.doc.HTML().Find(".hamburger").Click()
	if f.site.Features().Hamburger {
		t.Error("Hamburger without a menu should not be wired")
	}
}
