// Package archive retrieves the published feed payload and extracts a
// tabular text blob from it. The publisher ships either a bare text file or
// a ZIP containing one, encoded in UTF-8 or Shift_JIS depending on the
// release.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"shelfwatch/src/internal/httpx"
)

// client is the HTTP client used by this package; replaceable in tests.
var client httpx.Doer = httpx.NewClient(30 * time.Second)

// SetHTTPClient allows tests to inject a fake http client.
func SetHTTPClient(c httpx.Doer) { client = c }

// maxPayload bounds the downloaded archive size.
const maxPayload = 64 << 20

// Retrieve downloads the raw payload bytes.
func Retrieve(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	httpx.SetUA(req)
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("archive retrieve: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, httpx.StatusError("archive retrieve", resp)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxPayload))
	if err != nil {
		return nil, fmt.Errorf("archive retrieve: %w", err)
	}
	return b, nil
}

// ExtractText returns the decoded tabular text from a payload: for a ZIP,
// the preferred entry's contents; otherwise the payload itself is assumed to
// be the text.
func ExtractText(payload []byte) (string, error) {
	if !isZip(payload) {
		return DecodeText(payload), nil
	}
	zr, err := zip.NewReader(bytes.NewReader(payload), int64(len(payload)))
	if err != nil {
		return "", fmt.Errorf("archive: open zip: %w", err)
	}
	name := PickEntry(entryNames(zr))
	if name == "" {
		return "", fmt.Errorf("archive: zip has no entries")
	}
	raw, err := readEntry(zr, name)
	if err != nil {
		return "", err
	}
	return DecodeText(raw), nil
}

// PickEntry chooses the entry most likely to hold tabular text:
// .tsv beats .txt beats whatever comes first.
func PickEntry(names []string) string {
	if len(names) == 0 {
		return ""
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	for _, ext := range []string{".tsv", ".txt"} {
		for _, n := range sorted {
			if strings.EqualFold(path.Ext(n), ext) {
				return n
			}
		}
	}
	return names[0]
}

// DecodeText decodes a raw text payload: valid UTF-8 passes through (BOM
// stripped), anything else is treated as Shift_JIS. A payload that survives
// neither decoding cleanly still comes back as a best-effort string; the
// parser downstream tolerates noise.
func DecodeText(b []byte) string {
	b = bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
	if utf8.Valid(b) {
		return string(b)
	}
	decoded, _, err := transform.Bytes(japanese.ShiftJIS.NewDecoder(), b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}

func isZip(b []byte) bool {
	return len(b) >= 4 && bytes.HasPrefix(b, []byte("PK\x03\x04"))
}

func entryNames(zr *zip.Reader) []string {
	names := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		names = append(names, f.Name)
	}
	return names
}

func readEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("archive: read %s: %w", name, err)
		}
		defer rc.Close()
		b, err := io.ReadAll(io.LimitReader(rc, maxPayload))
		if err != nil {
			return nil, fmt.Errorf("archive: read %s: %w", name, err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("archive: entry %s not found", name)
}
