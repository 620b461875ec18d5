package oasforge

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNopLogger(t *testing.T) {
	var log Logger = NopLogger{}
	log.Debug("debug", "k", "v")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")
	if log.With("k", "v") == nil {
		t.Fatal("With returned nil")
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	log := NewSlogAdapter(slog.New(handler))

	log.Debug("loading document", "locator", "spec.yaml")
	if !strings.Contains(buf.String(), "loading document") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "locator=spec.yaml") {
		t.Errorf("expected attribute in output, got %q", buf.String())
	}

	buf.Reset()
	scoped := log.With("stage", "decode")
	scoped.Info("done")
	if !strings.Contains(buf.String(), "stage=decode") {
		t.Errorf("expected scoped attribute in output, got %q", buf.String())
	}
}

func TestNewSlogAdapterNilUsesDefault(t *testing.T) {
	if NewSlogAdapter(nil) == nil {
		t.Fatal("expected adapter")
	}
}
