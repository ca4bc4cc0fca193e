// Package extract recovers structured data from the directory's HTML.
//
// # Architecture
//
// The directory renders different optional sections for different legal
// forms, so no fixed CSS path works across all record types. The only
// stable signal is the label text next to each value. The extractor
// therefore anchors on heading labels and tries an ordered chain of
// strategies per attribute; the first strategy that produces a clean,
// non-placeholder value wins.
//
// # Components
//
//   - Extractor: configured with the placeholder phrase list
//   - ListingURLs / ResultCount: listing-page extraction
//   - CompanyRecord: detail-page extraction via per-field strategy chains
//
// Label matching is case-insensitive and accent-insensitive: the site
// is inconsistent about accents ("Razón social" vs "Razon Social"), so
// both the label and the page text are folded before comparison.
package extract
