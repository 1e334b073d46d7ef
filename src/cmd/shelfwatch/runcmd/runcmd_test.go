package runcmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
)

func TestRunMissingConfig(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), &out, Options{
		ConfigPath: filepath.Join(t.TempDir(), "nope.yaml"),
	})
	if err == nil {
		t.Fatalf("expected error for missing config")
	}
}
