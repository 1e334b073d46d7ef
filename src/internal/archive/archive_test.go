package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

type fakeHTTP struct {
	status int
	body   []byte
}

func (f fakeHTTP) Do(req *http.Request) (*http.Response, error) {
	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(bytes.NewReader(f.body)),
		Header:     make(http.Header),
	}, nil
}

func zipPayload(t *testing.T, entries map[string][]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestRetrieve(t *testing.T) {
	old := client
	defer func() { client = old }()
	client = fakeHTTP{status: 200, body: []byte("payload")}
	b, err := Retrieve(context.Background(), "https://example.com/feed.zip")
	if err != nil || string(b) != "payload" {
		t.Fatalf("Retrieve: %q %v", b, err)
	}
}

func TestRetrieveHTTPError(t *testing.T) {
	old := client
	defer func() { client = old }()
	client = fakeHTTP{status: 503, body: []byte("down")}
	if _, err := Retrieve(context.Background(), "https://example.com/feed.zip"); err == nil {
		t.Fatalf("expected error on http 503")
	}
}

func TestExtractTextPlain(t *testing.T) {
	got, err := ExtractText([]byte("isbn\ttitle\n"))
	if err != nil || got != "isbn\ttitle\n" {
		t.Fatalf("ExtractText: %q %v", got, err)
	}
}

func TestExtractTextZipPrefersTSV(t *testing.T) {
	payload := zipPayload(t, map[string][]byte{
		"readme.txt": []byte("about"),
		"data.tsv":   []byte("isbn\ttitle\n"),
	})
	got, err := ExtractText(payload)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if got != "isbn\ttitle\n" {
		t.Fatalf("wrong entry extracted: %q", got)
	}
}

func TestPickEntry(t *testing.T) {
	cases := []struct {
		names []string
		want  string
	}{
		{[]string{"b.txt", "a.tsv"}, "a.tsv"},
		{[]string{"notes.TXT", "image.png"}, "notes.TXT"},
		{[]string{"image.png", "data.bin"}, "image.png"},
		{nil, ""},
	}
	for _, c := range cases {
		if got := PickEntry(c.names); got != c.want {
			t.Fatalf("PickEntry(%v) = %q, want %q", c.names, got, c.want)
		}
	}
}

func TestDecodeTextShiftJIS(t *testing.T) {
	sjis, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte("カドカワ\t新刊"))
	if err != nil {
		t.Fatal(err)
	}
	if got := DecodeText(sjis); got != "カドカワ\t新刊" {
		t.Fatalf("DecodeText shift_jis: %q", got)
	}
}

func TestDecodeTextUTF8BOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("isbn,title")...)
	if got := DecodeText(in); got != "isbn,title" {
		t.Fatalf("DecodeText bom: %q", got)
	}
}

func TestExtractTextZipShiftJISEntry(t *testing.T) {
	sjis, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte("書名\t発売日\n"))
	if err != nil {
		t.Fatal(err)
	}
	payload := zipPayload(t, map[string][]byte{"shinkan.txt": sjis})
	got, err := ExtractText(payload)
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(got, "書名") {
		t.Fatalf("shift_jis entry not decoded: %q", got)
	}
}
