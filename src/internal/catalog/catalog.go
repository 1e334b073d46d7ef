// Package catalog holds the persisted record collection and the bounded
// merge that maintains it across runs.
package catalog

import "time"

// Record is one enriched catalog entry. Immutable after enrichment except
// for gap patching during merge.
type Record struct {
	ISBN    string `json:"isbn"`
	Title   string `json:"title"`
	Cover   string `json:"cover,omitempty"`
	PubDate string `json:"pubdate,omitempty"`
	Link    string `json:"link"`
	Tag     string `json:"tag,omitempty"`
}

// Document is the persisted state: the bounded record list plus provenance.
// It is the only entity that outlives a run; a run reads it once at the
// start and writes it once at the end, or not at all.
type Document struct {
	GeneratedAt time.Time `json:"generated_at"`
	Source      string    `json:"source"`
	Records     []Record  `json:"records"`
}

// NewDocument stamps a fresh document for this run.
func NewDocument(source string, records []Record) Document {
	return Document{GeneratedAt: time.Now().UTC(), Source: source, Records: records}
}
