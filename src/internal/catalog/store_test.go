package catalog

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStoreLoadMissing(t *testing.T) {
	s := Store{Path: filepath.Join(t.TempDir(), "catalog.json")}
	_, ok, err := s.Load()
	if err != nil {
		t.Fatalf("Load missing: %v", err)
	}
	if ok {
		t.Fatalf("Load missing: ok = true")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s := Store{Path: filepath.Join(t.TempDir(), "nested", "catalog.json")}
	doc := Document{
		GeneratedAt: time.Date(2026, 8, 29, 6, 0, 0, 0, time.UTC),
		Source:      "https://example.com/feed.zip",
		Records: []Record{
			{ISBN: "9784001234567", Title: "Foo", Cover: "https://img/x.jpg", PubDate: "2026/09/01", Link: "https://shop/x", Tag: "GA文庫"},
			{ISBN: "9784001234574", Title: "Bar", Link: "https://shop/y"},
		},
	}
	if err := s.Save(doc); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok, err := s.Load()
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if got.Source != doc.Source || len(got.Records) != 2 {
		t.Fatalf("round trip: %+v", got)
	}
	if got.Records[0] != doc.Records[0] || got.Records[1] != doc.Records[1] {
		t.Fatalf("records differ: %+v", got.Records)
	}
	if !got.GeneratedAt.Equal(doc.GeneratedAt) {
		t.Fatalf("timestamp: %v", got.GeneratedAt)
	}
}

func TestStoreLoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := (Store{Path: path}).Load(); err == nil {
		t.Fatalf("corrupt catalog should error")
	}
}

func TestStoreSaveOverwritesAtomically(t *testing.T) {
	s := Store{Path: filepath.Join(t.TempDir(), "catalog.json")}
	if err := s.Save(NewDocument("a", []Record{rec("A")})); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(NewDocument("b", []Record{rec("B")})); err != nil {
		t.Fatalf("Save 2: %v", err)
	}
	got, _, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Source != "b" || got.Records[0].ISBN != "B" {
		t.Fatalf("second save not visible: %+v", got)
	}
	if _, err := os.Stat(s.Path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind")
	}
}
