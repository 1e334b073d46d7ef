package openbd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"shelfwatch/src/internal/httpx"
)

// probeClient issues the cover existence checks; replaceable in tests.
var probeClient httpx.Doer = httpx.NewClient(10 * time.Second)

// SetProbeClient allows tests to inject a fake http client for cover probes.
func SetProbeClient(c httpx.Doer) { probeClient = c }

// ProbeTimeout bounds each individual cover probe. A slow image host costs
// at most this much per probe, independent of the run deadline.
const ProbeTimeout = 4500 * time.Millisecond

// coverProbe is one source in the fallback chain: a name for logging and a
// URL template over the identifier.
type coverProbe struct {
	name string
	url  func(isbn string) string
}

// coverChain is evaluated in order; the first probe that answers with a
// plausible image wins and the chain stops.
var coverChain = []coverProbe{
	{name: "openbd-cdn", url: func(isbn string) string {
		return fmt.Sprintf("https://cover.openbd.jp/%s.jpg", isbn)
	}},
	{name: "ndl-thumbnail", url: func(isbn string) string {
		return fmt.Sprintf("https://ndlsearch.ndl.go.jp/thumbnail/%s.jpg", isbn)
	}},
}

// ProbeCover walks the fallback chain for an identifier and returns the
// first URL that serves an image, or "" when every source misses. A failed
// or timed-out probe just moves the chain along; probes never fail a run.
func ProbeCover(ctx context.Context, isbn string) string {
	for _, p := range coverChain {
		if u := p.url(isbn); probeOnce(ctx, u) {
			return u
		}
	}
	return ""
}

// probeOnce reports whether url answers with a success status and a
// content type consistent with an image. An absent or ambiguous content
// type is tolerated; image hosts are sloppy about it.
func probeOnce(ctx context.Context, url string) bool {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	httpx.SetUA(req)
	resp, err := probeClient.Do(req)
	if err != nil {
		return false
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false
	}
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	return ct == "" || strings.HasPrefix(ct, "image/") || ct == "application/octet-stream"
}
