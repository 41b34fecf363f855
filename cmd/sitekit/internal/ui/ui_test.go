package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/recera/sitekit/pkg/site"
)

func TestRenderReport(t *testing.T) {
	out := RenderReport("public/index.html", site.Features{
		Navbar:       true,
		ThemeToggles: 2,
		Slides:       3,
		Anchors:      1,
	})

	for _, want := range []string{"public/index.html", "2 controls", "3 slides", "1 link", "4 of 10 features active"} {
		if !strings.Contains(out, want) {
			t.Errorf("Report missing %q:\n%s", want, out)
		}
	}
}

func TestRenderReport_Empty(t *testing.T) {
	out := RenderReport("blank.html", site.Features{})
	if !strings.Contains(out, "0 of 10 features active") {
		t.Errorf("Unexpected report:\n%s", out)
	}
}

func TestResultLine(t *testing.T) {
	ok := ResultLine("Building app.wasm", "1.2 MB", nil, 1500*time.Millisecond)
	if !strings.Contains(ok, "Building app.wasm") || !strings.Contains(ok, "1.2 MB") || !strings.Contains(ok, "1.5s") {
		t.Errorf("Unexpected line %q", ok)
	}

	bad := ResultLine("Building app.wasm", "", errors.New("exit status 1"), 0)
	if !strings.Contains(bad, "failed") || !strings.Contains(bad, "exit status 1") {
		t.Errorf("Unexpected line %q", bad)
	}
}

func TestTaskModel_Done(t *testing.T) {
	m := newTaskModel("Building", func() (string, error) { return "ok", nil })

	next, cmd := m.Update(taskDoneMsg{summary: "ok", elapsed: time.Second})
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if view := next.View(); !strings.Contains(view, "Building") || !strings.Contains(view, "ok") {
		t.Errorf("Unexpected view %q", view)
	}
}
