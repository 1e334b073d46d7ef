// Package inference locates columns of interest in an unlabeled or
// inconsistently labeled table. The source schema drifts release to release
// (columns reorder, headers rename, encodings add noise), so every column is
// resolved by the same two-phase policy: trust a recognizable header name
// first, fall back to statistical scoring over a bounded row sample, and
// otherwise fail closed. An unresolved column degrades the extraction; a
// silently wrong one poisons it.
package inference

import (
	"regexp"
	"strings"

	"shelfwatch/src/internal/isbn"
	"shelfwatch/src/internal/normtext"
)

// Unresolved is the sentinel Column value for "no column found".
const Unresolved Column = -1

// Column is a resolved column index or Unresolved.
type Column int

// Resolved reports whether the column was found.
func (c Column) Resolved() bool { return c >= 0 }

// Thresholds carries the scoring knobs. The values are empirical, inherited
// from observed feed behavior; they are configuration, not semantics.
type Thresholds struct {
	IdentifierSample   int // rows scanned for identifier scoring
	IdentifierMinScore int // minimum winning score
	TagSample          int // rows scanned for tag hits
	DateSample         int // rows scanned for date hits
	DateMinHits        int // minimum winning date hit count
}

// DefaultThresholds returns the stock scoring parameters.
func DefaultThresholds() Thresholds {
	return Thresholds{
		IdentifierSample:   200,
		IdentifierMinScore: 5,
		TagSample:          400,
		DateSample:         200,
		DateMinHits:        3,
	}
}

// resolve composes the two phases: headerMatch wins outright when it
// resolves, otherwise statInfer decides. Either phase may return Unresolved.
func resolve(header []string, rows [][]string, headerMatch func([]string) Column, statInfer func([][]string) Column) Column {
	if header != nil {
		if c := headerMatch(header); c.Resolved() {
			return c
		}
	}
	return statInfer(rows)
}

var identifierHeaderRe = regexp.MustCompile(`isbn`)

// Identifier resolves the column holding 13-digit identifiers.
// Header phase: any header cell whose folded form contains an identifier
// label. Statistical phase: over the sample, +3 per cell matching the
// 13-digit form, +1 per cell shaped like a legacy 10-character form; the
// best column wins iff its score reaches the configured minimum.
func Identifier(header []string, rows [][]string, th Thresholds) Column {
	return resolve(header, rows,
		func(h []string) Column { return headerIndex(h, identifierHeaderRe.MatchString) },
		func(rs [][]string) Column {
			scores := scoreColumns(rs, th.IdentifierSample, func(cell string) int {
				switch {
				case isbn.IsISBN13(cell):
					return 3
				case isbn.LooksLikeISBN10(cell):
					return 1
				default:
					return 0
				}
			})
			return best(scores, th.IdentifierMinScore)
		})
}

// tagHeaderWords are folded synonyms for the classification column.
var tagHeaderWords = []string{"レーベル", "label", "imprint", "シリーズ", "series", "叢書"}

// Tag resolves the column carrying the free-text classification tag.
// Statistical phase counts, per column, cells whose folded form contains any
// whitelist tag; the identifier column is excluded from the scan. A single
// hit is enough; tags are rare and specific.
func Tag(header []string, rows [][]string, tags []string, identifierCol Column, th Thresholds) Column {
	folded := make([]string, 0, len(tags))
	for _, tg := range tags {
		if f := normtext.Fold(tg); f != "" {
			folded = append(folded, f)
		}
	}
	if len(folded) == 0 {
		return Unresolved
	}
	return resolve(header, rows,
		func(h []string) Column { return headerIndex(h, containsAny(tagHeaderWords)) },
		func(rs [][]string) Column {
			scores := scoreColumnsSkip(rs, th.TagSample, int(identifierCol), func(cell string) int {
				f := normtext.Fold(cell)
				for _, tg := range folded {
					if strings.Contains(f, tg) {
						return 1
					}
				}
				return 0
			})
			return best(scores, 1)
		})
}

var (
	dateHeaderWords = []string{"発売日", "発売", "刊行", "date", "pubdate", "released"}

	compactDateRe = regexp.MustCompile(`^\d{8}$`)
	sepDateRe     = regexp.MustCompile(`^\d{4}[-/.]\d{1,2}([-/.]\d{1,2})?$`)
)

// Date resolves the optional publication-date column.
func Date(header []string, rows [][]string, th Thresholds) Column {
	return resolve(header, rows,
		func(h []string) Column { return headerIndex(h, containsAny(dateHeaderWords)) },
		func(rs [][]string) Column {
			scores := scoreColumns(rs, th.DateSample, func(cell string) int {
				if LooksLikeDate(cell) {
					return 1
				}
				return 0
			})
			return best(scores, th.DateMinHits)
		})
}

// LooksLikeDate reports whether a trimmed cell is a recognizable date token:
// an 8-digit compact date or YYYY sep MM (sep DD) with -, / or . separators.
func LooksLikeDate(cell string) bool {
	cell = strings.TrimSpace(cell)
	return compactDateRe.MatchString(cell) || sepDateRe.MatchString(cell)
}

// --- shared scoring plumbing ---

func headerIndex(header []string, match func(string) bool) Column {
	for i, cell := range header {
		if match(normtext.Fold(cell)) {
			return Column(i)
		}
	}
	return Unresolved
}

func containsAny(words []string) func(string) bool {
	folded := make([]string, len(words))
	for i, w := range words {
		folded[i] = normtext.Fold(w)
	}
	return func(cell string) bool {
		for _, w := range folded {
			if strings.Contains(cell, w) {
				return true
			}
		}
		return false
	}
}

func scoreColumns(rows [][]string, sample int, score func(string) int) []int {
	return scoreColumnsSkip(rows, sample, -1, score)
}

func scoreColumnsSkip(rows [][]string, sample int, skip int, score func(string) int) []int {
	if len(rows) == 0 {
		return nil
	}
	if sample > 0 && len(rows) > sample {
		rows = rows[:sample]
	}
	scores := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if i == skip || i >= len(scores) {
				continue
			}
			scores[i] += score(cell)
		}
	}
	return scores
}

// best returns the highest-scoring column iff it reaches min; earlier
// columns win ties.
func best(scores []int, min int) Column {
	col, top := Unresolved, 0
	for i, s := range scores {
		if s > top {
			col, top = Column(i), s
		}
	}
	if top < min {
		return Unresolved
	}
	return col
}
