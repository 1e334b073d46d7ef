// Package runcmd implements the "run" command: one full ingest cycle.
package runcmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"shelfwatch/src/internal/config"
	"shelfwatch/src/internal/logx"
	"shelfwatch/src/internal/pipeline"
)

// DefaultTimeout is the overall budget for one run; cancellation is
// cooperative between I/O boundaries.
const DefaultTimeout = 5 * time.Minute

// Options carries the run command's flags.
type Options struct {
	ConfigPath string
	Verbose    bool
	Timeout    time.Duration
}

// Run loads configuration, executes one pipeline cycle, and reports the
// outcome on w.
func Run(ctx context.Context, w io.Writer, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	log, err := logx.New(opts.Verbose || cfg.Verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	outcome, err := pipeline.Run(ctx, cfg, pipeline.Deps{Log: log})
	if err != nil {
		return err
	}
	switch o := outcome.(type) {
	case pipeline.Updated:
		_, _ = fmt.Fprintf(w, "catalog updated: %d records (%s)\n", len(o.Doc.Records), cfg.Catalog.Path)
	case pipeline.NoOp:
		_, _ = fmt.Fprintf(w, "catalog unchanged: %s\n", o.Reason)
	}
	return nil
}
