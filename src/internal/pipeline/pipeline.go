// Package pipeline runs one ingest cycle: fetch, parse, infer, extract,
// enrich, merge, persist. The whole cycle is a single linear sequence; the
// only state that survives it is the catalog document, which is read once at
// the start and written at most once at the end.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"shelfwatch/src/internal/archive"
	"shelfwatch/src/internal/catalog"
	"shelfwatch/src/internal/config"
	"shelfwatch/src/internal/extract"
	"shelfwatch/src/internal/feedtable"
	"shelfwatch/src/internal/inference"
	"shelfwatch/src/internal/openbd"
)

// Outcome is the result of a run: either the catalog was updated with a new
// document, or the run was a deliberate no-op and prior state is untouched.
// The persistence write is gated solely on the Updated variant.
type Outcome interface{ outcome() }

// Updated reports that Doc was persisted.
type Updated struct{ Doc catalog.Document }

// NoOp reports that the run finished without touching persisted state.
type NoOp struct{ Reason string }

func (Updated) outcome() {}
func (NoOp) outcome()    {}

// Storer is the persistence contract. A Save that fails must not have
// partially overwritten the previous document.
type Storer interface {
	Load() (catalog.Document, bool, error)
	Save(catalog.Document) error
}

// Deps are the run's collaborators, injectable for tests. Zero-value fields
// fall back to the production implementations.
type Deps struct {
	Store  Storer
	Fetch  func(ctx context.Context, url string) (string, error)
	Enrich func(ctx context.Context, picks []extract.Pick, opts openbd.Options) ([]catalog.Record, error)
	Log    *zap.Logger
}

func (d *Deps) fill(cfg config.Config) {
	if d.Store == nil {
		d.Store = catalog.Store{Path: cfg.Catalog.Path}
	}
	if d.Fetch == nil {
		d.Fetch = fetchText
	}
	if d.Enrich == nil {
		d.Enrich = enrich
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
}

func fetchText(ctx context.Context, url string) (string, error) {
	payload, err := archive.Retrieve(ctx, url)
	if err != nil {
		return "", err
	}
	return archive.ExtractText(payload)
}

func enrich(ctx context.Context, picks []extract.Pick, opts openbd.Options) ([]catalog.Record, error) {
	isbns := make([]string, len(picks))
	for i, p := range picks {
		isbns[i] = p.ISBN
	}
	vols, err := openbd.Lookup(ctx, isbns)
	if err != nil {
		return nil, err
	}
	return openbd.BuildRecords(ctx, picks, vols, opts), nil
}

// Run executes one cycle. Transport and persistence failures abort the run
// with prior state untouched; format uncertainty and zero-result stages
// degrade to a NoOp. The catalog can therefore only move between good
// states.
func Run(ctx context.Context, cfg config.Config, deps Deps) (Outcome, error) {
	deps.fill(cfg)
	log := deps.Log

	prior, exists, err := deps.Store.Load()
	if err != nil {
		return nil, err
	}

	text, err := deps.Fetch(ctx, cfg.Source.URL)
	if err != nil {
		return nil, fmt.Errorf("pipeline: fetch: %w", err)
	}

	picks := extractPicks(text, cfg, log)
	var today []catalog.Record
	if len(picks) > 0 {
		today, err = deps.Enrich(ctx, picks, openbd.Options{
			AffiliateTag: cfg.Enrichment.AffiliateTag,
			ProbeCovers:  cfg.Catalog.Capacity,
		})
		if err != nil {
			return nil, fmt.Errorf("pipeline: enrich: %w", err)
		}
	}

	outcome := decide(prior, exists, today, cfg)
	if u, ok := outcome.(Updated); ok {
		if err := deps.Store.Save(u.Doc); err != nil {
			return nil, err
		}
		log.Info("catalog updated",
			zap.Int("extracted", len(picks)),
			zap.Int("enriched", len(today)),
			zap.Int("kept", len(u.Doc.Records)))
	} else {
		log.Info("catalog unchanged", zap.String("reason", outcome.(NoOp).Reason))
	}
	return outcome, nil
}

// extractPicks parses the payload and applies column inference and row
// extraction. Every failure mode in here is format uncertainty: it is
// logged and degrades to an empty pick list, never an error.
func extractPicks(text string, cfg config.Config, log *zap.Logger) []extract.Pick {
	table, err := feedtable.Parse(text)
	if err != nil {
		log.Warn("payload not parsable as a table", zap.Error(err))
		return nil
	}

	th := inference.Thresholds{
		IdentifierSample:   cfg.Inference.IdentifierSample,
		IdentifierMinScore: cfg.Inference.IdentifierMinScore,
		TagSample:          cfg.Inference.TagSample,
		DateSample:         cfg.Inference.DateSample,
		DateMinHits:        cfg.Inference.DateMinHits,
	}
	cols := extract.Columns{
		Identifier: inference.Identifier(table.Header, table.Rows, th),
	}
	cols.Tag = inference.Tag(table.Header, table.Rows, cfg.Tags, cols.Identifier, th)
	cols.Date = inference.Date(table.Header, table.Rows, th)
	if !cols.Identifier.Resolved() {
		log.Warn("identifier column unresolved; falling back to row scraping")
	}

	picks := extract.Rows(table, cols, cfg.Tags, cfg.Inference.MaxRecords)
	log.Debug("extraction complete",
		zap.Int("rows", len(table.Rows)),
		zap.Int("cols", table.Width()),
		zap.Int("identifier_col", int(cols.Identifier)),
		zap.Int("tag_col", int(cols.Tag)),
		zap.Int("date_col", int(cols.Date)),
		zap.Int("picks", len(picks)))
	return picks
}

// decide maps today's enrichment output and the prior state to an outcome.
// An empty today never overwrites an existing catalog; the only time an
// empty document is written is when no catalog has ever existed, so that
// consumers find a well-formed file.
func decide(prior catalog.Document, exists bool, today []catalog.Record, cfg config.Config) Outcome {
	if len(today) == 0 {
		if exists {
			return NoOp{Reason: "no qualifying records this run"}
		}
		return Updated{Doc: catalog.NewDocument(cfg.Source.URL, []catalog.Record{})}
	}
	merged := catalog.Merge(prior.Records, today, cfg.Catalog.Capacity)
	return Updated{Doc: catalog.NewDocument(cfg.Source.URL, merged)}
}
