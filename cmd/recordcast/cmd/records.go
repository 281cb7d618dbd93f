package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ssargent/recordcast/pkg/codec"
	"github.com/ssargent/recordcast/pkg/storage"
)

// recordsCmd groups the record store commands
var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage the local record store",
	Long: `Manage the pebble record store that send reads from.

Examples:
  recordcast records put 1 "hello"
  recordcast records import records.yaml
  recordcast records list -o yaml
  recordcast records delete 1`,
}

var recordsPutCmd = &cobra.Command{
	Use:   "put <id> <data>",
	Short: "Store a record",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		store, err := openRecordStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Put(codec.Record{ID: id, Data: args[1]}); err != nil {
			return fmt.Errorf("failed to store record %d: %w", id, err)
		}

		cmd.Printf("Stored record %d\n", id)
		return nil
	},
}

var recordsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print one record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		store, err := openRecordStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		record, err := store.Get(id)
		if errors.Is(err, storage.ErrRecordNotFound) {
			return fmt.Errorf("record %d not found", id)
		}
		if err != nil {
			return err
		}

		cmd.Println(record.String())
		return nil
	},
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored records in id order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("output")

		store, err := openRecordStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		records, err := store.Load(cmd.Context())
		if err != nil {
			return err
		}
		return writeRecords(cmd.OutOrStdout(), format, records)
	},
}

var recordsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Store every record from a yaml or json list",
	Long: `Store every record from a yaml or json file containing a list of
{id, data} entries. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			in = f
		}

		records, err := readRecords(in)
		if err != nil {
			return err
		}

		store, err := openRecordStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.PutAll(records); err != nil {
			return err
		}

		cmd.Printf("Imported %d records\n", len(records))
		return nil
	},
}

var recordsDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		store, err := openRecordStore(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(id); err != nil {
			return err
		}

		cmd.Printf("Deleted record %d\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
	recordsCmd.AddCommand(recordsPutCmd, recordsGetCmd, recordsListCmd, recordsImportCmd, recordsDeleteCmd)

	recordsCmd.PersistentFlags().String("data-dir", "", "Directory of the pebble record store (default from config)")
	recordsListCmd.Flags().StringP("output", "o", "table", "Output format: table, json or yaml")
}

func parseID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid record id %q: must be an unsigned 32-bit integer", s)
	}
	return uint32(id), nil
}

func openRecordStore(cmd *cobra.Command) (*storage.RecordStore, error) {
	dataDir := cfg.Source.DataDir
	if cmd.Flags().Changed("data-dir") {
		dataDir, _ = cmd.Flags().GetString("data-dir")
	}
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return storage.NewRecordStore(dataDir)
}
