// Package scrape orchestrates a full crawl of the company directory:
// listing traversal discovers company detail URLs for a filter
// selector, then entity traversal visits each URL, extracts a record,
// and maintains the run's progress ledger.
//
// Both traversals are strictly sequential, one network call at a time.
// Concurrency is deliberately avoided: the fetcher's politeness delay
// and challenge-driven User-Agent rotation are session-wide state, and
// parallel requests would both defeat the rate limiting the directory
// expects and require coordinating that state.
//
// Per-entity failures never abort a run. They are recorded in the
// ledger with the offending URL and surfaced in the end-of-run
// summary. Accumulated successes are flushed to the sink at a
// configurable interval and once more when the run ends, so an
// interrupted run keeps its partial output.
package scrape
