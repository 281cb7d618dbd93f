package cmd

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ssargent/recordcast/pkg/storage"
	"github.com/ssargent/recordcast/pkg/task"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send every stored record to a destination",
	Long: `Load every record from the configured source and send each one as a
single UDP datagram. Records larger than 508 bytes once encoded are cut to
508 bytes and reported as warnings.

Examples:
  recordcast send --to 192.168.1.20:8142
  recordcast send --bind 0.0.0.0:0 --to 127.0.0.1:8142 --driver postgres --dsn "postgres://..."`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		applySendFlags(cmd)
		if cfg.Destination == "" {
			return errors.New("no destination: pass --to or set destination in the config")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		opts := storage.Options{
			Driver:  cfg.Source.Driver,
			DataDir: cfg.Source.DataDir,
			DSN:     cfg.Source.DSN,
		}
		open := container.GetLoaderOpener()

		t := container.GetTracker().Add(task.StartSend(ctx, task.SendParams{
			Bind:        cfg.Bind,
			Destination: cfg.Destination,
			Open:        func() (storage.Loader, error) { return open(opts) },
			Observer:    container.GetMetrics(),
		}))
		return follow(cmd, t)
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().String("bind", "", "Local address to send from (default from config)")
	sendCmd.Flags().String("to", "", "Destination host:port")
	sendCmd.Flags().String("driver", "", "Record source: pebble or postgres")
	sendCmd.Flags().String("data-dir", "", "Directory of the pebble record store")
	sendCmd.Flags().String("dsn", "", "Postgres connection string")
}

func applySendFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("bind") {
		cfg.Bind, _ = flags.GetString("bind")
	}
	if flags.Changed("to") {
		cfg.Destination, _ = flags.GetString("to")
	}
	if flags.Changed("driver") {
		cfg.Source.Driver, _ = flags.GetString("driver")
	}
	if flags.Changed("data-dir") {
		cfg.Source.DataDir, _ = flags.GetString("data-dir")
	}
	if flags.Changed("dsn") {
		cfg.Source.DSN, _ = flags.GetString("dsn")
	}
}
