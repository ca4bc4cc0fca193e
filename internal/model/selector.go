package model

import (
	"errors"
	"strings"
)

// ErrEmptySelector is returned when a selector has no filter dimension
// set. The directory has no "list everything" listing, so at least one
// of activity, province, or locality is required before any network
// activity starts.
var ErrEmptySelector = errors.New("empty selector: set at least one of activity, province, or locality")

// Selector is the set of search filters that drives a crawl.
// Slugs are the uppercase URL segments the directory uses
// (e.g. "PESCA", "JAEN", "VIGO-PONTEVEDRA"), not display names;
// the CLI layer resolves display names to slugs before building one.
type Selector struct {
	// Activity is the activity slug, empty for no activity filter.
	Activity string

	// Province is the province slug. Ignored when Locality is set:
	// a locality already pins down the province and the directory
	// rejects URLs carrying both location segments.
	Province string

	// Locality is the locality slug in NAME-PROVINCE form.
	Locality string

	// MaxResults caps how many companies are scraped.
	// Zero or negative means no cap (scrape everything found).
	MaxResults int
}

// Validate checks that the selector can drive a crawl.
// It is called before any network activity so that an all-empty
// selector fails fast.
func (s Selector) Validate() error {
	if s.Activity == "" && s.Province == "" && s.Locality == "" {
		return ErrEmptySelector
	}
	return nil
}

// Capped reports whether a result cap is in effect.
func (s Selector) Capped() bool {
	return s.MaxResults > 0
}

// Slug returns a filesystem-friendly label describing the selector,
// used to derive output file names (e.g. "pesca_pontevedra").
// Locality suppresses province here too, mirroring URL construction.
func (s Selector) Slug() string {
	parts := make([]string, 0, 2)
	if s.Activity != "" {
		parts = append(parts, strings.ToLower(s.Activity))
	}
	if s.Locality != "" {
		parts = append(parts, strings.ToLower(s.Locality))
	} else if s.Province != "" {
		parts = append(parts, strings.ToLower(s.Province))
	}
	return strings.Join(parts, "_")
}
