package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ssargent/recordcast/pkg/task"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)

	timeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("2")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(1)
)

func styleFor(k task.Kind) lipgloss.Style {
	switch k {
	case task.Warning:
		return warnStyle
	case task.Failure:
		return failStyle
	case task.Success:
		return successStyle
	default:
		return infoStyle
	}
}

// RenderStatus formats one status message as a single styled line
func RenderStatus(s task.Status) string {
	msg := s.Message
	switch {
	case s.Kind == task.Success && msg == "":
		msg = "finished"
	case s.Kind == task.Warning:
		msg = "warning: " + msg
	case s.Kind == task.Failure:
		msg = "error: " + msg
	}
	return fmt.Sprintf("%s %s", timeStyle.Render(s.Time.Format("15:04:05.000")), styleFor(s.Kind).Render(msg))
}
