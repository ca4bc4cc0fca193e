// Package model defines the core data structures for leadscan.
// It contains the company record extracted from directory pages,
// the search selector that drives listing traversal, and the
// progress ledger that accumulates results during a run.
package model
