// Package tui provides the terminal dashboard for a listen task. It shows
// the task's status log as it arrives and a footer with running counters.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ssargent/recordcast/pkg/task"
)

const maxLines = 1000

// statusMsg carries one status message from the task
type statusMsg task.Status

// closedMsg is sent once the task's status channel is closed
type closedMsg struct{}

// Model is the bubbletea model for the listener dashboard
type Model struct {
	task     *task.Task
	title    string
	lines    []task.Status
	width    int
	height   int
	stopping bool
	finished bool
}

// New returns a Model that follows t. The model takes over draining t.Status.
func New(t *task.Task, title string) Model {
	return Model{task: t, title: title}
}

// Init starts reading status messages
func (m Model) Init() tea.Cmd {
	return waitForStatus(m.task)
}

func waitForStatus(t *task.Task) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-t.Status()
		if !ok {
			return closedMsg{}
		}
		return statusMsg(s)
	}
}

// Update processes messages and returns an updated model plus any commands
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.finished {
				return m, tea.Quit
			}
			m.stopping = true
			m.task.Stop()
		}
		return m, nil

	case statusMsg:
		m.lines = append(m.lines, task.Status(msg))
		if len(m.lines) > maxLines {
			m.lines = m.lines[len(m.lines)-maxLines:]
		}
		return m, waitForStatus(m.task)

	case closedMsg:
		m.finished = true
		if m.stopping {
			return m, tea.Quit
		}
		return m, nil
	}

	return m, nil
}

// View renders the dashboard
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString("\n\n")

	height := m.height - 4 // title(2) + footer(2)
	if height < 1 {
		height = 10
	}
	lines := m.lines
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	if len(lines) == 0 {
		sb.WriteString(dimStyle.Render("Waiting for records..."))
		sb.WriteString("\n")
	}
	for _, s := range lines {
		sb.WriteString(RenderStatus(s))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.renderFooter())
	return sb.String()
}

func (m Model) renderFooter() string {
	snap := m.task.Snapshot()
	parts := []string{
		fmt.Sprintf("received: %d", snap.Counters.Received),
		fmt.Sprintf("corrupt: %d", snap.Counters.Corrupt),
		fmt.Sprintf("read errors: %d", snap.Counters.ReadErrs),
	}
	switch {
	case m.finished:
		parts = append(parts, "finished, q: quit")
	case m.stopping:
		parts = append(parts, "stopping…")
	default:
		parts = append(parts, "q: stop")
	}
	return statusBarStyle.Render(strings.Join(parts, "  |  "))
}
