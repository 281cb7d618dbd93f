package task

import (
	"log/slog"
	"time"
)

// Kind is the category of a status message
type Kind int

const (
	// Info is progress the user may want to see
	Info Kind = iota
	// Warning is a non-fatal problem; the task keeps running
	Warning
	// Failure ends the task unsuccessfully
	Failure
	// Success ends the task successfully
	Success
)

func (k Kind) String() string {
	switch k {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Failure:
		return "failure"
	case Success:
		return "success"
	default:
		return "unknown"
	}
}

// Status is one message from a running task
type Status struct {
	Kind    Kind
	Message string
	Time    time.Time
}

// Final reports whether the task ends after this message
func (s Status) Final() bool {
	return s.Kind == Failure || s.Kind == Success
}

// Level maps the status kind onto a log level
func (s Status) Level() slog.Level {
	switch s.Kind {
	case Warning:
		return slog.LevelWarn
	case Failure:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
