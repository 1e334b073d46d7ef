// Package feedtable splits a raw delimited text payload into padded rows.
// The upstream extract has no schema contract: the delimiter varies between
// releases, a header line may or may not be present, and rows are frequently
// ragged. The parser commits only to what it can observe in the payload
// itself.
package feedtable

import (
	"errors"
	"strings"

	"shelfwatch/src/internal/normtext"
)

// ErrNoDelimiter is returned when the sample line contains neither a tab nor
// a comma. Callers degrade to an empty extraction; this is never fatal to a
// run.
var ErrNoDelimiter = errors.New("feedtable: no delimiter detectable")

// headerWords are folded keywords whose presence in the first line marks it
// as a header rather than data. "isbn" is the strong signal; the rest are
// header labels seen across releases of the feed.
var headerWords = []string{
	"isbn",
	"タイトル",
	"書名",
	"商品名",
	"レーベル",
	"発売日",
	"title",
	"label",
	"date",
}

// Table is one parsed payload: an optional header and data rows, all padded
// to the same column count.
type Table struct {
	Header []string // nil when the payload has no recognizable header line
	Rows   [][]string
}

// Width returns the common column count.
func (t Table) Width() int {
	if t.Header != nil {
		return len(t.Header)
	}
	if len(t.Rows) > 0 {
		return len(t.Rows[0])
	}
	return 0
}

// Parse splits payload into a Table. Delimiter detection compares tab and
// comma counts on the first line; ties go to tab since the feed's native
// format is TSV. Every row is right-padded with empty cells to the widest
// row so downstream column indexing is never out of range.
func Parse(payload string) (Table, error) {
	lines := splitLines(payload)
	if len(lines) == 0 {
		return Table{}, ErrNoDelimiter
	}
	delim, err := detectDelimiter(lines[0])
	if err != nil {
		return Table{}, err
	}

	rows := make([][]string, 0, len(lines))
	maxCols := 0
	for _, ln := range lines {
		cells := strings.Split(ln, delim)
		if len(cells) > maxCols {
			maxCols = len(cells)
		}
		rows = append(rows, cells)
	}
	for i, r := range rows {
		for len(r) < maxCols {
			r = append(r, "")
		}
		rows[i] = r
	}

	t := Table{Rows: rows}
	if looksLikeHeader(rows[0]) {
		t.Header = rows[0]
		t.Rows = rows[1:]
	}
	return t, nil
}

func splitLines(payload string) []string {
	var out []string
	for _, ln := range strings.Split(payload, "\n") {
		ln = strings.TrimRight(ln, "\r")
		if strings.TrimSpace(ln) == "" {
			continue
		}
		out = append(out, ln)
	}
	return out
}

func detectDelimiter(sample string) (string, error) {
	const sampleLimit = 512
	if len(sample) > sampleLimit {
		sample = sample[:sampleLimit]
	}
	tabs := strings.Count(sample, "\t")
	commas := strings.Count(sample, ",")
	switch {
	case tabs == 0 && commas == 0:
		return "", ErrNoDelimiter
	case tabs >= commas:
		return "\t", nil
	default:
		return ",", nil
	}
}

func looksLikeHeader(cells []string) bool {
	joined := normtext.Fold(strings.Join(cells, " "))
	for _, w := range headerWords {
		if strings.Contains(joined, normtext.Fold(w)) {
			return true
		}
	}
	return false
}
