// Package isbn validates and locates 13-digit book identifiers.
package isbn

import (
	"regexp"
	"strings"

	"shelfwatch/src/internal/normtext"
)

var (
	// isbn13Re matches the modern 13-digit form: the two Bookland prefixes
	// 978/979 followed by ten digits. Check digits are not verified; the
	// upstream feed carries enough garbage that a checksum pass rejects
	// little beyond what the prefix test already does, and a wrong checksum
	// from the publisher would otherwise drop a real book.
	isbn13Re = regexp.MustCompile(`^97[89]\d{10}$`)

	// isbn10Re matches the legacy 10-character form, used only as a weak
	// signal during column inference.
	isbn10Re = regexp.MustCompile(`^\d{9}[\dX]$`)

	// scrapeRe locates a 13-digit identifier embedded in free text.
	scrapeRe = regexp.MustCompile(`97[89]\d{10}`)
)

// IsISBN13 reports whether s, after identifier cleanup, is a valid 13-digit
// identifier. Malformed candidates are rejected, never coerced.
func IsISBN13(s string) bool {
	return isbn13Re.MatchString(normtext.CleanIdentifier(s))
}

// LooksLikeISBN10 reports whether s, after cleanup, has the shape of a legacy
// 10-character identifier.
func LooksLikeISBN10(s string) bool {
	return isbn10Re.MatchString(normtext.CleanIdentifier(s))
}

// Normalize returns the cleaned 13-digit identifier, or "" when s does not
// hold one.
func Normalize(s string) string {
	c := normtext.CleanIdentifier(s)
	if isbn13Re.MatchString(c) {
		return c
	}
	return ""
}

// FindFirst scans free text and returns the first embedded 13-digit
// identifier, or "". The scan is per whitespace-separated token so that
// digit runs from adjacent fields never concatenate into a false match,
// while a hyphenated identifier inside one token is still recovered.
func FindFirst(text string) string {
	for _, tok := range strings.Fields(text) {
		if m := scrapeRe.FindString(normtext.CleanIdentifier(tok)); m != "" {
			return m
		}
	}
	return ""
}
