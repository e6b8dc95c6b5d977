package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer

	logger, err := New(Options{Level: "info", Format: "json", Output: &buf}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("hello", "key", "value")
	if !strings.Contains(buf.String(), `"key":"value"`) {
		t.Fatalf("expected JSON output, got %q", buf.String())
	}

	if _, err := New(Options{Format: "yaml", Output: &buf}, nil); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(Options{Level: "warn", Output: &buf}, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept")
	out := buf.String()
	if strings.Contains(out, "dropped") || !strings.Contains(out, "kept") {
		t.Fatalf("level filtering failed: %q", out)
	}

	if _, err := New(Options{Level: "loud", Output: &buf}, nil); err == nil {
		t.Fatalf("expected error for unsupported level")
	}
}
