// Package main provides the entry point for the leadscan CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for leadscan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leadscan",
		Short: "Company data scraper for the Empresite business directory",
		Long: `Leadscan collects company data from the Empresite business directory
(empresite.eleconomista.es). It searches by activity, province, or
locality, visits every company detail page in the results, and exports
the extracted records as JSON and CSV.

The scraper is deliberately slow: it issues one request at a time with
a randomized delay between requests, and backs off when the site asks
it to. A large search takes hours; use --max to limit a run and
--resume to continue an interrupted one.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewScanCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewCatalogCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
