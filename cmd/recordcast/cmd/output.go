package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/recordcast/pkg/codec"
)

// recordRow is the printable and importable form of a record
type recordRow struct {
	ID   uint32 `json:"id" yaml:"id"`
	Data string `json:"data" yaml:"data"`
}

func toRows(records []codec.Record) []recordRow {
	rows := make([]recordRow, len(records))
	for i, r := range records {
		rows[i] = recordRow{ID: r.ID, Data: r.Data}
	}
	return rows
}

func fromRows(rows []recordRow) []codec.Record {
	records := make([]codec.Record, len(rows))
	for i, r := range rows {
		records[i] = codec.Record{ID: r.ID, Data: r.Data}
	}
	return records
}

// writeRecords prints records as a table, json or yaml
func writeRecords(w io.Writer, format string, records []codec.Record) error {
	rows := toRows(records)

	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	case "", "table":
		if len(rows) == 0 {
			_, err := fmt.Fprintln(w, "No records found.")
			return err
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tDATA")
		for _, r := range rows {
			fmt.Fprintf(tw, "%d\t%s\n", r.ID, r.Data)
		}
		return tw.Flush()
	default:
		return fmt.Errorf("unknown output format %q (want table, json or yaml)", format)
	}
}

// readRecords parses a yaml (or json) list of records
func readRecords(r io.Reader) ([]codec.Record, error) {
	var rows []recordRow
	if err := yaml.NewDecoder(r).Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse records: %w", err)
	}
	return fromRows(rows), nil
}
