// Package siteurl builds listing and company URLs for the directory.
// It is one of the two places that know the site's URL conventions
// (the other is package extract, which knows the markup); swapping the
// target site means replacing these functions.
//
// URL patterns the directory uses:
//
//	activity only:      /Actividad/PESCA/
//	province only:      /provincia/JAEN/
//	combined:           /Actividad/PESCA/provincia/PONTEVEDRA/
//	with locality:      /Actividad/PESCA/localidad/VIGO-PONTEVEDRA/
//	locality only:      /localidad/UBEDA-JAEN/
//	pagination:         .../PgNum-2/
//
// All functions are pure: no network access, no hidden state, safe for
// concurrent use.
package siteurl

import (
	"fmt"
	"strings"

	"github.com/vicentfs/leadscan/internal/config"
	"github.com/vicentfs/leadscan/internal/model"
)

// BuildListingURL composes the URL of a listing page for the given
// filter slugs. At least one of activity, province, or locality must be
// set or model.ErrEmptySelector is returned before any URL is formed.
//
// Composition order is fixed: the activity segment first, then exactly
// one location segment. Locality wins over province when both are given
// because it is the more specific filter and the site rejects URLs
// carrying both. Page 1 has no pagination suffix; page 2 and up append
// PgNum-N.
func BuildListingURL(activity, province, locality string, page int) (string, error) {
	if activity == "" && province == "" && locality == "" {
		return "", model.ErrEmptySelector
	}

	var b strings.Builder
	b.WriteString(config.BaseURL)

	if activity != "" {
		b.WriteString("/Actividad/")
		b.WriteString(activity)
	}

	switch {
	case locality != "":
		b.WriteString("/localidad/")
		b.WriteString(locality)
	case province != "":
		b.WriteString("/provincia/")
		b.WriteString(province)
	}

	b.WriteString("/")

	if page > 1 {
		fmt.Fprintf(&b, "PgNum-%d/", page)
	}

	return b.String(), nil
}

// BuildSelectorURL is BuildListingURL applied to a model.Selector,
// honoring the locality-over-province precedence the type documents.
func BuildSelectorURL(sel model.Selector, page int) (string, error) {
	return BuildListingURL(sel.Activity, sel.Province, sel.Locality, page)
}

// BuildCompanyURL returns the absolute URL of a company detail page.
// It is idempotent: identifiers that are already absolute URLs pass
// through unchanged, anything else is joined to the site's base URL.
func BuildCompanyURL(slug string) string {
	if strings.HasPrefix(slug, "http") {
		return slug
	}
	return config.BaseURL + "/" + strings.TrimPrefix(slug, "/")
}
