// Package database provides SQLite-based persistence for scrape runs.
//
// Every scraped company and every failed URL is recorded per filter
// set, so a restarted run can resume where the previous one stopped
// instead of re-fetching pages the directory already served. The
// JSON/CSV files are the deliverable; the database is the crawl's
// memory across processes.
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of
// other databases because:
//  1. No external dependencies - the database is a single file
//  2. The crawl is single-writer by design, SQLite's sweet spot
//  3. The pure-Go driver keeps the build free of cgo
package database
