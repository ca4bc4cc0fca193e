package extract

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// \s in Go regexps is ASCII-only, and entity decoding produces real
// no-break spaces, so the class spells out the Unicode space property.
var whitespaceRegex = regexp.MustCompile(`[\s\p{Zs}]+`)

// cleanText decodes HTML entities and collapses runs of whitespace.
// Extracted values go through this before placeholder checks so that
// "  Añadir&nbsp;Teléfono " and "añadir teléfono" compare equal.
func cleanText(s string) string {
	s = html.UnescapeString(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// accentFolder strips combining marks: NFD decomposition, drop the
// marks, recompose. "Razón" and "Razon" fold to the same string.
var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// foldLabel lowercases and strips accents for label comparison.
func foldLabel(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		// html-parsed input is valid UTF-8, so this should not happen;
		// fall back to plain lowercasing rather than dropping the value.
		folded = s
	}
	return strings.ToLower(folded)
}

// labelMatches reports whether the heading text contains the label,
// ignoring case and accents on both sides.
func labelMatches(headingText, label string) bool {
	return strings.Contains(foldLabel(headingText), foldLabel(label))
}

// isPlaceholder reports whether a value is site filler rather than
// data: "Añadir teléfono" invitations, "No disponible" stubs, and the
// like. The phrase list comes from configuration; matching is a
// case-insensitive substring check because the phrases appear embedded
// in longer call-to-action sentences.
func (e *Extractor) isPlaceholder(value string) bool {
	lower := strings.ToLower(value)
	for _, phrase := range e.placeholders {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}

// usable reports whether a cleaned value should be kept: non-empty and
// not a placeholder.
func (e *Extractor) usable(value string) bool {
	return value != "" && !e.isPlaceholder(value)
}
