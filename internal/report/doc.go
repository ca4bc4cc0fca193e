// Package report renders the end-of-run summary of a scrape: how many
// companies were attempted, how many succeeded, and which URLs failed.
//
// Two formats are provided: a plain-text writer for the terminal and a
// Markdown writer for files that land in documentation or issue
// trackers. Both implement the same Writer interface, and MultiWriter
// fans one summary out to several destinations.
package report
