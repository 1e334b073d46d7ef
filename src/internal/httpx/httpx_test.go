package httpx

import (
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestSetUA(t *testing.T) {
	req, _ := http.NewRequest(http.MethodGet, "https://example.com", nil)
	if hv := req.Header.Get("User-Agent"); hv != "" {
		t.Fatalf("precondition: UA not empty: %q", hv)
	}
	SetUA(req)
	if hv := req.Header.Get("User-Agent"); hv != ChromeUA {
		t.Fatalf("SetUA: want %q, got %q", ChromeUA, hv)
	}
	// idempotent
	SetUA(req)
	if hv := req.Header.Get("User-Agent"); hv != ChromeUA {
		t.Fatalf("SetUA idempotent: want %q, got %q", ChromeUA, hv)
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient(3 * time.Second)
	if c.Timeout != 3*time.Second {
		t.Fatalf("timeout: %v", c.Timeout)
	}
}

func TestStatusError(t *testing.T) {
	resp := &http.Response{
		StatusCode: 503,
		Body:       io.NopCloser(strings.NewReader("service down")),
	}
	err := StatusError("feed", resp)
	if err == nil || !strings.Contains(err.Error(), "503") || !strings.Contains(err.Error(), "service down") {
		t.Fatalf("StatusError: %v", err)
	}
}
