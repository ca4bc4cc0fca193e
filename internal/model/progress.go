package model

import (
	"fmt"
	"strings"
)

// failurePreviewLimit is how many failures the summary lists before
// collapsing the rest into a count.
const failurePreviewLimit = 10

// Failure records a company page that could not be scraped.
type Failure struct {
	// URL is the detail page that failed.
	URL string `json:"url"`

	// Err is the human-readable error text.
	Err string `json:"error"`
}

// Progress is the mutable ledger of a scrape run.
// It is created empty when a run starts, mutated by the entity
// traversal exactly once per processed URL, and read-only once the run
// finishes or is interrupted.
//
// Design decision: No mutex. The crawl is strictly sequential by design
// (one network call at a time, shared User-Agent state in the fetcher),
// so the ledger is only ever touched from one goroutine.
type Progress struct {
	// ExpectedTotal is the number of company URLs discovered by the
	// listing traversal, i.e. how many entities the run will attempt.
	ExpectedTotal int `json:"expected_total"`

	// Companies holds every successfully scraped record, in visit order.
	Companies []Company `json:"companies"`

	// Failures holds one entry per company page that failed, in visit
	// order.
	Failures []Failure `json:"failures"`
}

// NewProgress returns an empty ledger.
func NewProgress() *Progress {
	return &Progress{
		Companies: make([]Company, 0),
		Failures:  make([]Failure, 0),
	}
}

// AddSuccess appends a successfully scraped company.
func (p *Progress) AddSuccess(c Company) {
	p.Companies = append(p.Companies, c)
}

// AddFailure records a failed company page with its error text.
func (p *Progress) AddFailure(url string, err error) {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	p.Failures = append(p.Failures, Failure{URL: url, Err: msg})
}

// Processed returns how many URLs have been handled so far,
// successes and failures combined.
func (p *Progress) Processed() int {
	return len(p.Companies) + len(p.Failures)
}

// SuccessRate returns the percentage of processed URLs that succeeded.
// It is 0 when nothing has been processed yet.
func (p *Progress) SuccessRate() float64 {
	processed := p.Processed()
	if processed == 0 {
		return 0
	}
	return float64(len(p.Companies)) / float64(processed) * 100
}

// Summary renders the end-of-run summary shown to the user.
// Failures are previewed up to a fixed limit; the remainder is
// collapsed into a count so a run with hundreds of failures stays
// readable.
func (p *Progress) Summary() string {
	var b strings.Builder

	rule := strings.Repeat("=", 50)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "  SCRAPE SUMMARY\n")
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "  Companies found:   %d\n", p.ExpectedTotal)
	fmt.Fprintf(&b, "  Pages processed:   %d\n", p.Processed())
	fmt.Fprintf(&b, "  Succeeded:         %d\n", len(p.Companies))
	fmt.Fprintf(&b, "  Failed:            %d\n", len(p.Failures))
	fmt.Fprintf(&b, "  Success rate:      %.1f%%\n", p.SuccessRate())
	fmt.Fprintf(&b, "%s", rule)

	if len(p.Failures) > 0 {
		fmt.Fprintf(&b, "\n\n  Failures:\n")
		for i, f := range p.Failures {
			if i == failurePreviewLimit {
				fmt.Fprintf(&b, "    ... and %d more\n", len(p.Failures)-failurePreviewLimit)
				break
			}
			fmt.Fprintf(&b, "    - %s: %s\n", f.URL, f.Err)
		}
	}

	return b.String()
}
