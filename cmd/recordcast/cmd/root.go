/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ssargent/recordcast/pkg/config"
	"github.com/ssargent/recordcast/pkg/di"
)

var (
	container *di.Container
	cfg       *config.Config

	// structuredLogs routes task status through slog instead of styled lines
	structuredLogs bool
)

// SetContainer injects the dependency container used by every command
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "recordcast",
	Short: "recordcast - send and receive records over UDP",
	Long: `recordcast sends stored records as UDP datagrams and listens for
them on the other side. Each datagram carries one record: a little-endian
32-bit id followed by UTF-8 text.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		loaded, err := loadConfig(configPath)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("log-level") {
			loaded.Logging.Level, _ = cmd.Flags().GetString("log-level")
		}
		level, err := loaded.Logging.SlogLevel()
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("log-format")
		setupLogging(cmd, level, format)

		if container == nil {
			container = di.NewContainer()
		}

		cfg = loaded
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default is ~/.config/recordcast/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")
}

// loadConfig reads configPath, falling back to defaults when no file exists
// at the default location.
func loadConfig(configPath string) (*config.Config, error) {
	explicit := configPath != ""
	if !explicit {
		configPath = config.GetDefaultConfigPath()
	}

	if !config.ConfigExists(configPath) {
		if explicit {
			return nil, fmt.Errorf("config file does not exist: %s (run 'recordcast init --config %s')", configPath, configPath)
		}
		return config.DefaultConfig(), nil
	}

	return config.LoadConfig(configPath)
}

func setupLogging(cmd *cobra.Command, level slog.Level, format string) {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	structuredLogs = format == "json"
	if structuredLogs {
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	} else {
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	}
	slog.SetDefault(slog.New(handler))
}
