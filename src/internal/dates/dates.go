// Package dates normalizes the publication-date tokens found in the feed
// and in enrichment responses. The canonical persisted forms are
// "YYYY/MM/DD" and "YYYY/MM"; anything unparsable normalizes to "".
package dates

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	compactRe = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})$`)
	sepRe     = regexp.MustCompile(`^(\d{4})[-/.](\d{1,2})(?:[-/.](\d{1,2}))?$`)
	scanRe    = regexp.MustCompile(`\d{4}[-/.]\d{1,2}(?:[-/.]\d{1,2})?|\d{8}`)
)

// Normalize parses a single date token and returns its canonical form, or ""
// when the token is not a recognizable date. Accepted inputs: 8-digit compact
// dates and YYYY sep MM (sep DD) with -, / or . separators.
func Normalize(token string) string {
	token = strings.TrimSpace(token)
	if m := compactRe.FindStringSubmatch(token); m != nil {
		return build(m[1], m[2], m[3])
	}
	if m := sepRe.FindStringSubmatch(token); m != nil {
		return build(m[1], m[2], m[3])
	}
	return ""
}

// FindInText scans free text for the first normalizable date token. Used as
// the secondary pass when the resolved date column held something unparsable.
func FindInText(text string) string {
	for _, m := range scanRe.FindAllString(text, -1) {
		if d := Normalize(m); d != "" {
			return d
		}
	}
	return ""
}

// build validates components and assembles the canonical form. An absent or
// invalid day degrades to the year/month form; an invalid month rejects the
// whole token.
func build(y, mo, d string) string {
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(mo)
	if year < 1900 || year > 2200 || month < 1 || month > 12 {
		return ""
	}
	if d != "" {
		if day, _ := strconv.Atoi(d); day >= 1 && day <= 31 {
			return fmt.Sprintf("%04d/%02d/%02d", year, month, day)
		}
	}
	return fmt.Sprintf("%04d/%02d", year, month)
}
