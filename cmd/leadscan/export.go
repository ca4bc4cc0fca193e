package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vicentfs/leadscan/internal/export"
)

// NewExportCmd creates the export command.
func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.json>",
		Short: "Convert a JSON export to CSV",
		Long: `Export converts a JSON file produced by a previous scan to the
semicolon-delimited CSV format, without touching the network.

The CSV file is written next to the input unless --output names a
different path. Fields the converter does not recognize are ignored,
so JSON from other tools works as long as it uses the same field
names.

Examples:
  leadscan export output/empresas_pesca_madrid.json
  leadscan export datos.json --output /tmp/datos.csv`,
		Args: cobra.ExactArgs(1),
		RunE: runExportCmd,
	}

	cmd.Flags().StringP("output", "o", "", "CSV output path (default: input path with .csv extension)")

	return cmd
}

// runExportCmd executes the export command.
func runExportCmd(cmd *cobra.Command, args []string) error {
	jsonPath := args[0]

	csvPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if csvPath == "" {
		csvPath = strings.TrimSuffix(jsonPath, ".json") + ".csv"
	}

	if err := export.JSONToCSV(jsonPath, csvPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", csvPath)
	return nil
}
