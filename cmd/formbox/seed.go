package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"formbox/internal/datasource"
	"formbox/internal/option"
)

func addSeed(topLevel *cobra.Command) {
	var table string

	cmd := &cobra.Command{
		Use:   "seed DB CSV",
		Short: "Load value,label rows from a CSV file into a SQLite option table.",
		Long: `Load value,label rows from a CSV file into a SQLite option table.

The table is created when missing. Rows with an existing value update its
label. A first row of "value,label" is treated as a header. A row with a
single column uses it as both value and label.`,
		Example: `
formbox seed options.db countries.csv --table countries
`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			//nolint:gosec // G304: the CSV path is chosen by the user
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[1], err)
			}
			defer func() {
				_ = f.Close()
			}()

			opts, err := readOptionsCSV(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[1], err)
			}
			n, err := datasource.Seed(cmd.Context(), args[0], table, opts)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d options into %s (%s)\n", n, args[0], table)
			return err
		},
	}

	cmd.Flags().StringVar(&table, "table", "options", "Table to create or update")

	topLevel.AddCommand(cmd)
}

// readOptionsCSV parses value,label rows.
func readOptionsCSV(r io.Reader) ([]option.Option, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var opts []option.Option
	for line := 1; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && isHeader(record) {
			continue
		}
		switch len(record) {
		case 0:
			continue
		case 1:
			opts = append(opts, option.New("", strings.TrimSpace(record[0])))
		default:
			opts = append(opts, option.New(strings.TrimSpace(record[1]), strings.TrimSpace(record[0])))
		}
	}
	if len(opts) == 0 {
		return nil, errors.New("no rows")
	}
	return opts, nil
}

func isHeader(record []string) bool {
	return len(record) >= 1 && strings.EqualFold(strings.TrimSpace(record[0]), "value") &&
		(len(record) == 1 || strings.EqualFold(strings.TrimSpace(record[1]), "label"))
}
