package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Task is work shown behind a spinner. It returns a one-line summary.
type Task func() (string, error)

type taskDoneMsg struct {
	summary string
	err     error
	elapsed time.Duration
}

type taskModel struct {
	title   string
	task    Task
	spinner spinner.Model
	started time.Time
	done    *taskDoneMsg
}

func newTaskModel(title string, task Task) taskModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = titleStyle
	return taskModel{title: title, task: task, spinner: s}
}

func (m taskModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run())
}

func (m taskModel) run() tea.Cmd {
	task := m.task
	return func() tea.Msg {
		start := time.Now()
		summary, err := task()
		return taskDoneMsg{summary: summary, err: err, elapsed: time.Since(start)}
	}
}

func (m taskModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = &taskDoneMsg{err: fmt.Errorf("interrupted")}
			return m, tea.Quit
		}
	case taskDoneMsg:
		m.done = &msg
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m taskModel) View() string {
	if m.done == nil {
		return fmt.Sprintf("%s %s\n", m.spinner.View(), m.title)
	}
	return ResultLine(m.title, m.done.summary, m.done.err, m.done.elapsed) + "\n"
}

// ResultLine renders the outcome of a task
func ResultLine(title, summary string, err error, elapsed time.Duration) string {
	if err != nil {
		return errorStyle.Render("✗ "+title+" failed") + "\n" + err.Error()
	}
	line := successStyle.Render("✓ " + title)
	if summary != "" {
		line += " " + summary
	}
	return line + mutedStyle.Render(fmt.Sprintf(" (%s)", elapsed.Round(time.Millisecond)))
}

// RunTask runs task behind a spinner when stdout is a terminal and plainly
// otherwise.
func RunTask(title string, task Task) error {
	if !interactive() {
		start := time.Now()
		summary, err := task()
		fmt.Println(ResultLine(title, summary, err, time.Since(start)))
		return err
	}

	final, err := tea.NewProgram(newTaskModel(title, task)).Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if m, ok := final.(taskModel); ok && m.done != nil {
		return m.done.err
	}
	return nil
}

func interactive() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
