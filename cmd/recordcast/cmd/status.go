package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ssargent/recordcast/pkg/api"
	"github.com/ssargent/recordcast/pkg/task"
	"github.com/ssargent/recordcast/pkg/tui"
)

// follow reports every status message of t until it finishes. It returns an
// error when the task failed.
func follow(cmd *cobra.Command, t *task.Task) error {
	out := cmd.OutOrStdout()
	for s := range t.Status() {
		if structuredLogs {
			slog.Log(cmd.Context(), s.Level(), s.Message,
				"task", t.ID.String(), "mode", t.Mode, "kind", s.Kind.String())
			continue
		}
		fmt.Fprintln(out, tui.RenderStatus(s))
	}
	return taskResult(t)
}

func taskResult(t *task.Task) error {
	snap := t.Snapshot()
	if snap.State == task.StateFailed {
		return errors.New(snap.LastMessage)
	}
	return nil
}

// startStatusServer runs the status API in the background until ctx is done
func startStatusServer(ctx context.Context, addr string, logRequests bool) {
	starter := container.GetServerFactory().CreateServerStarter()
	serverConfig := api.ServerConfig{Addr: addr, APIKey: cfg.Status.APIKey, LogRequests: logRequests}

	go func() {
		err := starter.StartServer(ctx, serverConfig, container.GetTracker(),
			container.GetMetrics(), container.GetRegistry(), nil)
		if err != nil {
			slog.Error("status server stopped", "addr", addr, "error", err)
		}
	}()
}
