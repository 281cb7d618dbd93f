package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/recordcast/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the status API and metrics",
	Long: `Serve /metrics and /api/v1/health until interrupted.

No tasks run in this mode, so the task routes are not served. To watch a
listener's tasks, use "recordcast listen --status-addr" instead.

Examples:
  recordcast serve
  recordcast serve --addr 0.0.0.0:9142`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.Status.Addr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		starter := container.GetServerFactory().CreateServerStarter()
		return starter.StartServer(ctx,
			api.ServerConfig{Addr: addr, APIKey: cfg.Status.APIKey, LogRequests: true},
			nil,
			container.GetMetrics(),
			container.GetRegistry(),
			func(bound string) { cmd.Printf("Serving status API on http://%s\n", bound) },
		)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default from config)")
}
