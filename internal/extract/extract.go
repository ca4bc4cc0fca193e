package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/vicentfs/leadscan/internal/model"
	"github.com/vicentfs/leadscan/internal/siteurl"
)

// Extractor turns raw page markup into structured values.
// It carries the placeholder phrase list so that callers configure the
// site wording once and every extraction applies it consistently.
type Extractor struct {
	// placeholders are lowercase placeholder phrases. A candidate value
	// containing any of them is treated as not-found.
	placeholders []string
}

// New creates an Extractor with the given placeholder phrases.
func New(placeholderPhrases []string) *Extractor {
	lowered := make([]string, 0, len(placeholderPhrases))
	for _, p := range placeholderPhrases {
		lowered = append(lowered, strings.ToLower(p))
	}
	return &Extractor{placeholders: lowered}
}

// ListingURLs extracts company detail URLs from a listing page, in
// card order. The primary source is the machine-readable URL annotation
// each card embeds (meta[itemprop=url]); when a card lacks one, the
// heading link ending in the page-document suffix is used instead.
// Relative paths are normalized to absolute URLs.
//
// Duplicates are not removed: if the site repeats a card, the caller
// sees the repeat.
func (e *Extractor) ListingURLs(markup string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	urls := make([]string, 0)
	doc.Find("div.cardCompanyBox").Each(func(_ int, card *goquery.Selection) {
		if content, ok := card.Find(`meta[itemprop="url"]`).Attr("content"); ok && content != "" {
			urls = append(urls, siteurl.BuildCompanyURL(content))
			return
		}

		// Fallback: the card heading links to the detail page.
		href, ok := card.Find("h3 a").Attr("href")
		if ok && strings.HasSuffix(href, ".html") {
			urls = append(urls, siteurl.BuildCompanyURL(href))
		}
	})

	return urls, nil
}

// resultCountRegex matches "<number> empresa(s)" in the results-summary
// element.
var resultCountRegex = regexp.MustCompile(`(\d+)\s*empresas?`)

// resultCountFallbackRegex matches the full summary sentence anywhere
// in the page, used when the summary element is missing.
var resultCountFallbackRegex = regexp.MustCompile(`Hemos encontrado\s+(\d+)\s+empresas?`)

// ResultCount reads the total result count from a listing page.
// It returns 0 when no count can be found; callers must treat 0 as
// "no results, stop traversal", not as an error.
func (e *Extractor) ResultCount(markup string) int {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return 0
	}

	if summary := doc.Find("#filter-numresultados"); summary.Length() > 0 {
		if m := resultCountRegex.FindStringSubmatch(summary.Text()); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n
			}
		}
	}

	if m := resultCountFallbackRegex.FindStringSubmatch(doc.Text()); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n
		}
	}

	return 0
}

// CompanyRecord extracts a full company record from a detail page.
// Every field is attempted through its strategy chain (see fields.go);
// fields with no usable value stay empty. The source URL is always set
// on the returned record regardless of markup content.
func (e *Extractor) CompanyRecord(markup, sourceURL string) (model.Company, error) {
	company := model.NewCompany(sourceURL)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return company, err
	}

	for _, spec := range fieldSpecs {
		for _, strat := range spec.strategies {
			if value := strat(e, doc); value != "" {
				spec.assign(&company, value)
				break
			}
		}
	}

	return company, nil
}

// labelValue finds a heading whose text contains the label and returns
// the associated value, or "" when nothing usable is found.
//
// Value resolution per matched heading, in order:
//  1. the text of the immediately following sibling element
//  2. the concatenated text of the other children of the heading's
//     parent, placeholder parts dropped
//
// The first heading that yields a usable value wins; later headings
// with the same label are only consulted when earlier ones yield
// nothing.
func (e *Extractor) labelValue(doc *goquery.Document, label string) string {
	value := ""
	doc.Find("h2, h3, h4").EachWithBreak(func(_ int, heading *goquery.Selection) bool {
		if !labelMatches(cleanText(heading.Text()), label) {
			return true
		}

		if sibling := heading.Next(); sibling.Length() > 0 {
			if v := cleanText(sibling.Text()); e.usable(v) {
				value = v
				return false
			}
		}

		if v := e.remainingParentText(heading); v != "" {
			value = v
			return false
		}

		return true
	})
	return value
}

// remainingParentText concatenates the text of every child of the
// heading's parent except the heading itself, in document order. The
// site sometimes renders the value before the label, so the walk covers
// both sides of the heading. Text nodes and element nodes both
// contribute; placeholder fragments are dropped individually so one
// "Añadir ..." stub does not poison the rest of the section.
func (e *Extractor) remainingParentText(heading *goquery.Selection) string {
	headingNode := heading.Get(0)
	parent := headingNode.Parent
	if parent == nil {
		return ""
	}

	parts := make([]string, 0)
	for n := parent.FirstChild; n != nil; n = n.NextSibling {
		if n == headingNode {
			continue
		}
		if v := cleanText(nodeText(n)); e.usable(v) {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// nodeText returns the concatenated text content of a node subtree.
// goquery's Text() only works on element selections; the sibling walk
// also crosses bare text nodes, so this descends the raw tree.
func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}

// titleCompanyName is the last-resort name source: the page <title> is
// "COMPANY NAME - Empresite", so the left-hand side of the separator is
// the name.
func (e *Extractor) titleCompanyName(doc *goquery.Document) string {
	title := cleanText(doc.Find("title").First().Text())
	if title == "" {
		return ""
	}
	name, _, found := strings.Cut(title, " - ")
	if !found {
		return ""
	}
	return strings.TrimSpace(name)
}

// postalAddress reads the schema.org postal-address annotation, the
// address fallback when no label-anchored value exists.
func (e *Extractor) postalAddress(doc *goquery.Document) string {
	addr := doc.Find(`[itemprop="address"]`).First()
	if addr.Length() == 0 {
		return ""
	}
	v := cleanText(addr.Text())
	if !e.usable(v) {
		return ""
	}
	return v
}
