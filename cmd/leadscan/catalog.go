package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vicentfs/leadscan/internal/config"
)

// NewCatalogCmd creates the catalog command.
func NewCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog [provinces|activities]",
		Short: "List the known provinces and activities",
		Long: `Catalog lists the province and activity names the scan command
resolves, alongside the slugs the directory uses in its URLs. Without
an argument both catalogs are printed.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"provinces", "activities"},
		RunE:      runCatalogCmd,
	}

	return cmd
}

// runCatalogCmd executes the catalog command.
func runCatalogCmd(cmd *cobra.Command, args []string) error {
	which := ""
	if len(args) == 1 {
		which = args[0]
	}

	if which == "" || which == "provinces" {
		printCatalog(cmd, "Provinces", config.Provinces)
	}
	if which == "" || which == "activities" {
		printCatalog(cmd, "Activities", config.Activities)
	}
	return nil
}

// printCatalog writes one catalog as an aligned name/slug table.
func printCatalog(cmd *cobra.Command, title string, entries []config.CatalogEntry) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s:\n", title)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	for _, e := range entries {
		fmt.Fprintf(w, "  %s\t%s\n", e.Name, e.Slug)
	}
	_ = w.Flush()

	fmt.Fprintln(cmd.OutOrStdout())
}
