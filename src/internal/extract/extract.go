// Package extract turns parsed feed rows into the deduplicated identifier
// set handed to enrichment.
package extract

import (
	"strings"

	"shelfwatch/src/internal/dates"
	"shelfwatch/src/internal/feedtable"
	"shelfwatch/src/internal/inference"
	"shelfwatch/src/internal/isbn"
	"shelfwatch/src/internal/normtext"
)

// Pick is one extracted row: a validated identifier plus the tag that
// admitted it and, when recoverable, a normalized publication date.
type Pick struct {
	ISBN    string
	Tag     string
	PubDate string
}

// Columns carries the per-run column resolution consumed read-only here.
type Columns struct {
	Identifier inference.Column
	Tag        inference.Column
	Date       inference.Column
}

// Rows applies the inclusion and validation policy to every data row:
//
//   - A row is admitted only when its folded joined text contains at least
//     one whitelist tag. Rows without a recognizable classification are
//     discarded regardless of identifier validity.
//   - The identifier comes from the resolved column when valid; otherwise
//     the joined row text is scraped for the first 13-digit candidate. A row
//     with no recoverable identifier is dropped.
//   - The tag text comes from the resolved tag column when that cell is
//     non-empty, since the cell often carries a fuller label than the
//     configured substring; otherwise the matched whitelist tag is kept.
//   - The date comes from the resolved column, falling back to a regex scan
//     of the row when the column value was unparsable.
//
// Output order follows row order; duplicates keep the first occurrence's
// tag, but a later duplicate may backfill a date the first occurrence
// lacked (first non-empty date wins). The result is capped at limit to
// bound enrichment cost.
func Rows(t feedtable.Table, cols Columns, tags []string, limit int) []Pick {
	folded := make([]string, 0, len(tags))
	orig := make([]string, 0, len(tags))
	for _, tg := range tags {
		if f := normtext.Fold(tg); f != "" {
			folded = append(folded, f)
			orig = append(orig, tg)
		}
	}
	if len(folded) == 0 {
		return nil
	}

	index := make(map[string]int)
	var out []Pick
	for _, row := range t.Rows {
		joined := strings.Join(row, " ")
		tag := matchTag(normtext.Fold(joined), folded, orig)
		if tag == "" {
			continue
		}
		id := rowIdentifier(row, cols.Identifier, joined)
		if id == "" {
			continue
		}
		date := rowDate(row, cols.Date, joined)
		if i, ok := index[id]; ok {
			if out[i].PubDate == "" && date != "" {
				out[i].PubDate = date
			}
			continue
		}
		index[id] = len(out)
		out = append(out, Pick{ISBN: id, Tag: rowTag(row, cols.Tag, tag), PubDate: date})
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// rowTag prefers the resolved tag column's own cell text over the matched
// whitelist tag.
func rowTag(row []string, col inference.Column, matched string) string {
	if col.Resolved() && int(col) < len(row) {
		if cell := strings.TrimSpace(row[col]); cell != "" {
			return cell
		}
	}
	return matched
}

// matchTag returns the first configured tag contained in the folded row
// text, in its original (configured) spelling.
func matchTag(foldedRow string, folded, orig []string) string {
	for i, tg := range folded {
		if strings.Contains(foldedRow, tg) {
			return orig[i]
		}
	}
	return ""
}

func rowIdentifier(row []string, col inference.Column, joined string) string {
	if col.Resolved() && int(col) < len(row) {
		if id := isbn.Normalize(row[col]); id != "" {
			return id
		}
	}
	return isbn.FindFirst(joined)
}

// rowDate reads the resolved date column, falling back to a scan of the
// whole row when the cell was unparsable. With no resolved column the date
// is left for enrichment to fill.
func rowDate(row []string, col inference.Column, joined string) string {
	if !col.Resolved() || int(col) >= len(row) {
		return ""
	}
	if d := dates.Normalize(row[col]); d != "" {
		return d
	}
	return dates.FindInText(joined)
}
