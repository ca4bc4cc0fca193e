// Package export persists scraped company records to disk.
//
// Two formats are produced: a UTF-8 JSON array with the record's
// field order preserved, and a semicolon-delimited CSV with a fixed
// header row. The CSV starts with a UTF-8 byte-order mark so that
// spreadsheet applications open the Spanish field names and values
// with the right encoding; without the mark they guess a legacy
// codepage and mangle every accented character.
//
// The Files sink writes both formats side by side and is what the
// scraper flushes to during a run.
package export
