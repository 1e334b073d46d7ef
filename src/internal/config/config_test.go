package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
source:
  url: https://example.com/feed.zip
tags:
  - GA文庫
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Capacity != 8 || cfg.Catalog.Path != "data/catalog.json" {
		t.Fatalf("catalog defaults: %+v", cfg.Catalog)
	}
	if cfg.Inference.IdentifierMinScore != 5 || cfg.Inference.MaxRecords != 1200 {
		t.Fatalf("inference defaults: %+v", cfg.Inference)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
source:
  url: https://example.com/feed.zip
tags: [GA文庫]
catalog:
  path: /tmp/cat.json
  capacity: 12
inference:
  identifier_min_score: 9
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Catalog.Capacity != 12 || cfg.Inference.IdentifierMinScore != 9 {
		t.Fatalf("overrides: %+v", cfg)
	}
	// Untouched knobs keep their defaults.
	if cfg.Inference.TagSample != 400 {
		t.Fatalf("default lost: %+v", cfg.Inference)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []string{
		"tags: [a]",                     // no source url
		"source: {url: x}",              // no tags
		"source: {url: x}\ntags: [a]\ncatalog: {path: p, capacity: 0}",
	}
	for _, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("config %q should be rejected", body)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("missing file should error")
	}
}

func TestSampleParsesAndValidates(t *testing.T) {
	cfg, err := Load(writeConfig(t, Sample))
	if err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
	if !strings.Contains(cfg.Source.URL, "example.com") || len(cfg.Tags) != 2 {
		t.Fatalf("sample content: %+v", cfg)
	}
}
