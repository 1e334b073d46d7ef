// Package showcmd renders the persisted catalog for humans and scripts.
package showcmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"

	"shelfwatch/src/internal/catalog"
	"shelfwatch/src/internal/config"
)

// Options carries the show command's flags.
type Options struct {
	ConfigPath string
	JSON       bool
}

// Run prints the catalog at the configured path to w.
func Run(w io.Writer, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}
	doc, ok, err := (catalog.Store{Path: cfg.Catalog.Path}).Load()
	if err != nil {
		return err
	}
	if !ok {
		_, _ = fmt.Fprintln(w, "no catalog yet; run `shelfwatch run` first")
		return nil
	}
	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	}
	render(w, doc)
	return nil
}

func render(w io.Writer, doc catalog.Document) {
	_, _ = fmt.Fprintf(w, "generated %s from %s\n", doc.GeneratedAt.Format("2006-01-02 15:04 MST"), doc.Source)

	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		tw.SetStyle(table.StyleRounded)
	}
	tw.AppendHeader(table.Row{"#", "ISBN", "Title", "Date", "Tag", "Cover"})
	for i, r := range doc.Records {
		cover := ""
		if r.Cover != "" {
			cover = "yes"
		}
		tw.AppendRow(table.Row{i + 1, r.ISBN, r.Title, r.PubDate, r.Tag, cover})
	}
	tw.Render()
}
