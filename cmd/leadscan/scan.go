package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/vicentfs/leadscan/internal/config"
	"github.com/vicentfs/leadscan/internal/database"
	"github.com/vicentfs/leadscan/internal/export"
	"github.com/vicentfs/leadscan/internal/extract"
	"github.com/vicentfs/leadscan/internal/fetch"
	"github.com/vicentfs/leadscan/internal/log"
	"github.com/vicentfs/leadscan/internal/model"
	"github.com/vicentfs/leadscan/internal/report"
	"github.com/vicentfs/leadscan/internal/scrape"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scrape companies matching a search from the directory",
		Long: `Scan searches the Empresite directory with the given filters, walks
every results page, and scrapes each company detail page it finds.

At least one of --activity, --province, or --locality is required.
Activity and province accept either the display name ("Pesca",
"Madrid") or the slug the site uses ("PESCA", "MADRID"); run
"leadscan catalog" to list them. Locality takes the site's
NAME-PROVINCE form (e.g. "VIGO-PONTEVEDRA").

Results are written incrementally to <output>/empresas_<search>.json
and .csv, so an interrupted run keeps what it collected. Every scraped
company is also recorded in a local database; --resume skips companies
already stored for the same search.

Examples:
  # All fishing companies in Pontevedra
  leadscan scan --activity PESCA --province PONTEVEDRA

  # First 50 companies in Vigo, then continue later
  leadscan scan --locality VIGO-PONTEVEDRA --max 50
  leadscan scan --locality VIGO-PONTEVEDRA --resume

  # Write a Markdown summary next to the data files
  leadscan scan --activity TEXTIL --markdown-summary`,
		Args: cobra.NoArgs,
		RunE: runScanCmd,
	}

	// Search flags
	cmd.Flags().StringP("activity", "a", "", "Activity name or slug (see 'leadscan catalog activities')")
	cmd.Flags().StringP("province", "p", "", "Province name or slug (see 'leadscan catalog provinces')")
	cmd.Flags().StringP("locality", "l", "", "Locality slug in NAME-PROVINCE form")
	cmd.Flags().IntP("max", "n", 0, "Maximum number of companies to scrape (0 = all)")

	// Output flags
	cmd.Flags().StringP("output", "o", "output", "Directory for JSON/CSV output")
	cmd.Flags().BoolP("markdown-summary", "m", false, "Also write a Markdown run summary next to the data files")

	// Behavior flags
	cmd.Flags().BoolP("resume", "r", false, "Skip companies already stored for this search")
	cmd.Flags().StringP("config", "c", "", "Configuration file path (default: .leadscan.yaml in current or home directory)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	sel, err := buildSelector(cmd)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Interrupts cancel the context; the scraper flushes what it has
	// before returning.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, finishing up...")
		cancel()
	}()

	markdownSummary, err := cmd.Flags().GetBool("markdown-summary")
	if err != nil {
		return err
	}

	return runScan(ctx, cmd, cfg, sel, markdownSummary, logger)
}

// buildConfig creates a Config from defaults, the optional YAML file,
// and command flags, in that precedence order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	configPath := config.FindConfigFile(configFlag)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if configFlag != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configFlag)
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.Resume, err = cmd.Flags().GetBool("resume")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// buildSelector resolves the search flags to directory slugs.
func buildSelector(cmd *cobra.Command) (model.Selector, error) {
	var sel model.Selector

	activity, err := cmd.Flags().GetString("activity")
	if err != nil {
		return sel, err
	}
	if activity != "" {
		slug, ok := config.ResolveActivity(activity)
		if !ok {
			// Unknown values pass through as raw slugs: the catalog
			// covers the common activities, not every one the site has.
			slug = strings.ToUpper(activity)
		}
		sel.Activity = slug
	}

	province, err := cmd.Flags().GetString("province")
	if err != nil {
		return sel, err
	}
	if province != "" {
		slug, ok := config.ResolveProvince(province)
		if !ok {
			return sel, fmt.Errorf("unknown province %q (see 'leadscan catalog provinces')", province)
		}
		sel.Province = slug
	}

	sel.Locality, err = cmd.Flags().GetString("locality")
	if err != nil {
		return sel, err
	}
	sel.Locality = strings.ToUpper(sel.Locality)

	sel.MaxResults, err = cmd.Flags().GetInt("max")
	if err != nil {
		return sel, err
	}

	if err := sel.Validate(); err != nil {
		return sel, err
	}
	return sel, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
// Long values (page markup, error bodies) are trimmed so every record
// stays one line.
func setupLogger(verbose bool) *slog.Logger {
	return log.NewLogger(os.Stderr, verbose)
}

// runScan executes the scrape and prints the summary.
func runScan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, sel model.Selector, markdownSummary bool, logger *slog.Logger) error {
	logger.Info("starting scan",
		"search", sel.Slug(),
		"max", sel.MaxResults,
		"resume", cfg.Resume,
		"output", cfg.OutputDir,
	)

	sink, err := export.NewFiles(cfg.OutputDir, "empresas_"+sel.Slug())
	if err != nil {
		return err
	}

	fetcher := fetch.New(cfg, fetch.WithLogger(logger))
	defer fetcher.Close()

	opts := []scrape.Option{
		scrape.WithSink(sink),
		scrape.WithProgress(newProgressPrinter(cmd, cfg.Verbose)),
		scrape.WithLogger(logger),
	}

	if cfg.DBDir != "" {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "dir", cfg.DBDir)

		opts = append(opts, scrape.WithStore(db.Run(sel.Slug())), scrape.WithResume(cfg.Resume))
	}

	scraper := scrape.New(fetcher, extract.New(cfg.PlaceholderPhrases), cfg, opts...)

	started := time.Now()
	ledger, runErr := scraper.Run(ctx, sel)

	summary := &report.Summary{
		Selector:    sel,
		Progress:    ledger,
		Started:     started,
		Finished:    time.Now(),
		JSONPath:    sink.JSONPath(),
		CSVPath:     sink.CSVPath(),
		Interrupted: errors.Is(runErr, context.Canceled),
	}

	fmt.Fprintln(cmd.OutOrStdout())
	if _, err := report.NewTextWriter(cmd.OutOrStdout()).Write(summary); err != nil {
		logger.Error("failed to write summary", "error", err)
	}

	if markdownSummary {
		if err := writeMarkdownSummary(sink, sel, summary); err != nil {
			logger.Error("failed to write markdown summary", "error", err)
		}
	}

	// An interrupt is a normal way to end a long scrape: the partial
	// results are already flushed and summarized.
	if summary.Interrupted {
		return nil
	}
	return runErr
}

// writeMarkdownSummary writes the Markdown summary next to the data files.
func writeMarkdownSummary(sink *export.Files, sel model.Selector, summary *report.Summary) error {
	path := strings.TrimSuffix(sink.JSONPath(), ".json") + "_summary.md"
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = report.NewMarkdownWriter(file).Write(summary)
	return err
}

// newProgressPrinter returns the progress callback for the scrape.
// By default statuses feed a spinner on stderr; in verbose mode they
// are printed as plain lines so they interleave readably with the log.
func newProgressPrinter(cmd *cobra.Command, verbose bool) scrape.ProgressFunc {
	if verbose {
		return func(status string) {
			fmt.Fprintln(cmd.ErrOrStderr(), status)
		}
	}

	bar := progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetDescription("starting..."),
	)
	return func(status string) {
		bar.Describe(status)
		_ = bar.Add(1)
	}
}
