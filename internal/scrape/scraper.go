package scrape

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vicentfs/leadscan/internal/config"
	"github.com/vicentfs/leadscan/internal/extract"
	"github.com/vicentfs/leadscan/internal/model"
	"github.com/vicentfs/leadscan/internal/siteurl"
)

// Fetcher downloads one page and returns its markup.
// Implemented by fetch.Fetcher; tests substitute scripted fakes.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// Sink receives the accumulated successful records for persistence.
// Flush is called at the incremental-save interval and once more when
// the run ends, each time with the full success sequence so far; a
// sink overwrites its output rather than appending.
type Sink interface {
	Flush(companies []model.Company) error
}

// Store is the optional crawl database. It records every processed
// URL and answers resume lookups so a restarted run can skip pages it
// already scraped.
type Store interface {
	// HasCompany reports whether a record for the URL is already stored.
	HasCompany(ctx context.Context, sourceURL string) (bool, error)

	// SaveCompany persists one scraped record.
	SaveCompany(ctx context.Context, c model.Company) error

	// SaveFailure persists one failed URL with its error text.
	SaveFailure(ctx context.Context, pageURL, message string) error
}

// ProgressFunc receives human-readable status lines at phase
// boundaries, per listing page, and per company URL. It is a
// notification sink only: the scraper never consults it for flow
// control, and implementations must not block.
type ProgressFunc func(status string)

// Scraper drives the listing and entity traversals for one run.
type Scraper struct {
	// fetcher performs all page downloads. One fetcher per run; its
	// User-Agent state belongs to this crawl alone.
	fetcher Fetcher

	// extractor parses listing and detail markup.
	extractor *extract.Extractor

	// resultsPerPage is how many cards the directory shows per
	// listing page, used to derive the page count from the total.
	resultsPerPage int

	// saveEvery is the incremental-save interval in successes.
	// Zero disables incremental saves; the final flush still runs.
	saveEvery int

	sink     Sink
	store    Store
	resume   bool
	progress ProgressFunc
	logger   *slog.Logger
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithSink sets the serialization sink for incremental and final
// flushes. Without a sink, records only live in the returned ledger.
func WithSink(sink Sink) Option {
	return func(s *Scraper) {
		s.sink = sink
	}
}

// WithStore sets the crawl database.
func WithStore(store Store) Option {
	return func(s *Scraper) {
		s.store = store
	}
}

// WithResume makes the entity traversal skip URLs the store already
// holds. It has no effect without a store.
func WithResume(resume bool) Option {
	return func(s *Scraper) {
		s.resume = resume
	}
}

// WithProgress sets the progress notification callback.
func WithProgress(fn ProgressFunc) Option {
	return func(s *Scraper) {
		s.progress = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scraper) {
		s.logger = logger
	}
}

// New creates a Scraper.
func New(fetcher Fetcher, extractor *extract.Extractor, cfg *config.Config, opts ...Option) *Scraper {
	s := &Scraper{
		fetcher:        fetcher,
		extractor:      extractor,
		resultsPerPage: cfg.ResultsPerPage,
		saveEvery:      cfg.SaveEvery,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// CollectCompanyURLs walks the listing pages for the selector and
// returns the discovered company detail URLs plus the total result
// count the directory reported.
//
// Page 1 decides everything: its result count fixes how many pages
// exist, and a count of 0 ends the traversal with an empty list and no
// error. A fetch failure on page 1 is fatal because without the count
// there is nothing to traverse; failures on later pages are logged and
// skipped, since partial listing coverage beats losing the whole run.
// The walk stops early once the selector's cap is reached and the
// returned list never exceeds the cap.
func (s *Scraper) CollectCompanyURLs(ctx context.Context, sel model.Selector) ([]string, int, error) {
	if err := sel.Validate(); err != nil {
		return nil, 0, err
	}

	firstURL, err := siteurl.BuildSelectorURL(sel, 1)
	if err != nil {
		return nil, 0, err
	}

	s.notify("Searching companies...")

	markup, err := s.fetcher.Fetch(ctx, firstURL)
	if err != nil {
		return nil, 0, fmt.Errorf("fetch first listing page: %w", err)
	}

	total := s.extractor.ResultCount(markup)
	if total == 0 {
		s.notify("No companies found for this search")
		return nil, 0, nil
	}

	target := total
	if sel.Capped() && sel.MaxResults < total {
		target = sel.MaxResults
	}
	pages := (target + s.resultsPerPage - 1) / s.resultsPerPage

	s.notify(fmt.Sprintf("Found %d companies (%d pages)", total, pages))
	s.logger.Info("listing traversal started",
		"total", total,
		"target", target,
		"pages", pages,
	)

	urls, err := s.extractor.ListingURLs(markup)
	if err != nil {
		return nil, 0, fmt.Errorf("parse first listing page: %w", err)
	}
	s.notify(fmt.Sprintf("Page 1/%d: %d companies", pages, len(urls)))

	for page := 2; page <= pages; page++ {
		if err := ctx.Err(); err != nil {
			return s.capURLs(urls, sel), total, err
		}
		if sel.Capped() && len(urls) >= sel.MaxResults {
			break
		}

		pageURL, err := siteurl.BuildSelectorURL(sel, page)
		if err != nil {
			return nil, 0, err
		}

		markup, err := s.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return s.capURLs(urls, sel), total, ctx.Err()
			}
			s.logger.Warn("listing page failed, skipping",
				"page", page,
				"url", pageURL,
				"error", err,
			)
			s.notify(fmt.Sprintf("Page %d/%d failed, skipping", page, pages))
			continue
		}

		pageURLs, err := s.extractor.ListingURLs(markup)
		if err != nil {
			s.logger.Warn("listing page unparseable, skipping",
				"page", page,
				"url", pageURL,
				"error", err,
			)
			continue
		}

		urls = append(urls, pageURLs...)
		s.notify(fmt.Sprintf("Page %d/%d: %d companies", page, pages, len(urls)))
	}

	return s.capURLs(urls, sel), total, nil
}

// Run performs a complete crawl for the selector: listing traversal,
// then one fetch-and-extract pass per discovered URL, maintaining the
// progress ledger and flushing successes to the sink.
//
// The returned ledger is valid even when err is non-nil: an
// interrupted run hands back everything scraped up to the
// cancellation, already flushed best-effort.
func (s *Scraper) Run(ctx context.Context, sel model.Selector) (*model.Progress, error) {
	ledger := model.NewProgress()

	urls, _, err := s.CollectCompanyURLs(ctx, sel)
	if err != nil {
		return ledger, err
	}
	ledger.ExpectedTotal = len(urls)

	if len(urls) == 0 {
		return ledger, nil
	}

	// Final flush no matter how the loop ends, so an interrupt or a
	// fatal error still leaves the partial output on disk.
	defer s.flush(ledger)

	s.notify(fmt.Sprintf("Scraping %d companies...", len(urls)))

	for i, pageURL := range urls {
		if err := ctx.Err(); err != nil {
			s.logger.Warn("run cancelled", "processed", ledger.Processed(), "reason", err)
			return ledger, err
		}

		if s.skipScraped(ctx, pageURL) {
			s.notify(fmt.Sprintf("[%d/%d] Already scraped, skipping %s", i+1, len(urls), pageURL))
			continue
		}

		company, err := s.scrapeCompany(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return ledger, ctx.Err()
			}
			ledger.AddFailure(pageURL, err)
			s.recordFailure(ctx, pageURL, err)
			s.notify(fmt.Sprintf("[%d/%d] Failed: %s", i+1, len(urls), pageURL))
			continue
		}

		ledger.AddSuccess(company)
		s.recordSuccess(ctx, company)
		s.notify(fmt.Sprintf("[%d/%d] Scraped %s", i+1, len(urls), company.Name))

		if s.saveEvery > 0 && len(ledger.Companies)%s.saveEvery == 0 {
			s.flush(ledger)
		}
	}

	return ledger, nil
}

// scrapeCompany fetches one detail page and extracts its record.
func (s *Scraper) scrapeCompany(ctx context.Context, pageURL string) (model.Company, error) {
	markup, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return model.Company{}, err
	}
	return s.extractor.CompanyRecord(markup, pageURL)
}

// skipScraped reports whether resume mode should skip the URL.
// Lookup errors degrade to "not scraped": re-scraping a page is
// cheaper than silently dropping one.
func (s *Scraper) skipScraped(ctx context.Context, pageURL string) bool {
	if !s.resume || s.store == nil {
		return false
	}
	seen, err := s.store.HasCompany(ctx, pageURL)
	if err != nil {
		s.logger.Warn("resume lookup failed", "url", pageURL, "error", err)
		return false
	}
	return seen
}

// flush writes the success sequence to the sink, best effort.
func (s *Scraper) flush(ledger *model.Progress) {
	if s.sink == nil || len(ledger.Companies) == 0 {
		return
	}
	if err := s.sink.Flush(ledger.Companies); err != nil {
		s.logger.Error("flush failed", "companies", len(ledger.Companies), "error", err)
		return
	}
	s.logger.Debug("flushed companies", "count", len(ledger.Companies))
}

func (s *Scraper) recordSuccess(ctx context.Context, c model.Company) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveCompany(ctx, c); err != nil {
		s.logger.Warn("store write failed", "url", c.SourceURL, "error", err)
	}
}

func (s *Scraper) recordFailure(ctx context.Context, pageURL string, cause error) {
	if s.store == nil {
		return
	}
	if err := s.store.SaveFailure(ctx, pageURL, cause.Error()); err != nil {
		s.logger.Warn("store write failed", "url", pageURL, "error", err)
	}
}

// capURLs truncates the URL list to the selector's cap.
func (s *Scraper) capURLs(urls []string, sel model.Selector) []string {
	if sel.Capped() && len(urls) > sel.MaxResults {
		return urls[:sel.MaxResults]
	}
	return urls
}

func (s *Scraper) notify(status string) {
	if s.progress != nil {
		s.progress(status)
	}
}
