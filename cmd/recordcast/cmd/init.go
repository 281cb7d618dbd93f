/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/recordcast/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a default recordcast configuration file.

The file holds the local bind address, the destination for send, the record
source (a pebble directory or a postgres DSN) and the status server settings.

Examples:
  recordcast init
  recordcast init --config ./recordcast.yaml --data-dir ./records`,
	// init must work before a config file exists
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}

		if config.ConfigExists(configPath) && !force {
			cmd.Printf("Configuration already exists at %s. Use --force to overwrite.\n", configPath)
			return nil
		}

		created, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return err
		}

		cmd.Printf("✅ Configuration written to %s\n", configPath)
		cmd.Printf("Records directory: %s\n", created.Source.DataDir)
		cmd.Printf("\nAdd a record with:\n")
		cmd.Printf("  recordcast records put 1 \"hello\" --config %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("data-dir", "", "Directory of the pebble record store (default ./data)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}
