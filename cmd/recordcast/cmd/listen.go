package cmd

import (
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ssargent/recordcast/pkg/task"
	"github.com/ssargent/recordcast/pkg/tui"
)

// listenCmd represents the listen command
var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Receive records and print them",
	Long: `Bind a UDP socket and print every record that arrives until interrupted.
Datagrams that do not decode are reported as warnings and skipped.

Key bindings (--tui):
  q / Ctrl+C  Stop listening and quit

Examples:
  recordcast listen --bind 0.0.0.0:8142
  recordcast listen --tui --status-addr 127.0.0.1:9142`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("bind") {
			cfg.Bind, _ = flags.GetString("bind")
		}
		if flags.Changed("read-timeout") {
			cfg.Listen.ReadTimeout, _ = flags.GetDuration("read-timeout")
		}
		statusAddr := cfg.Status.Addr
		serveStatus := cfg.Status.Enabled
		if flags.Changed("status-addr") {
			statusAddr, _ = flags.GetString("status-addr")
			serveStatus = statusAddr != ""
		}
		useTUI, _ := flags.GetBool("tui")

		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if serveStatus {
			// request lines would draw over the dashboard
			startStatusServer(ctx, statusAddr, !useTUI)
		}

		t := container.GetTracker().Add(task.StartListen(ctx, task.ListenParams{
			Bind:        cfg.Bind,
			ReadTimeout: cfg.Listen.ReadTimeout,
			Observer:    container.GetMetrics(),
		}))

		if !useTUI {
			return follow(cmd, t)
		}

		p := tea.NewProgram(tui.New(t, "recordcast listen "+cfg.Bind), tea.WithAltScreen())
		_, err := p.Run()
		t.Stop()
		for range t.Status() {
		}
		if err != nil {
			return err
		}
		return taskResult(t)
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)

	listenCmd.Flags().String("bind", "", "Local address to listen on (default from config)")
	listenCmd.Flags().Duration("read-timeout", 0, "Receive timeout between stop checks (default from config)")
	listenCmd.Flags().Bool("tui", false, "Show an interactive dashboard")
	listenCmd.Flags().String("status-addr", "", "Serve the status API and metrics on this address")
}
