package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/moodclip/clipsuggest/internal/types"
)

func writeTranscript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "transcript.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
	return path
}

func wordPayload(t *testing.T) string {
	t.Helper()
	tokens := strings.Fields(strings.Repeat("you will never guess the secret behind this! ", 5))
	words := make([]map[string]any, 0, len(tokens))
	for i, tok := range tokens {
		words = append(words, map[string]any{
			"word":  tok,
			"start": float64(i) * 0.75,
			"end":   float64(i+1) * 0.75,
		})
	}
	b, err := json.Marshal(map[string]any{"words": words})
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return string(b)
}

func TestConfigValidate(t *testing.T) {
	input := writeTranscript(t, "{}")
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{InputPath: input, Limit: 5}, false},
		{"empty input", Config{Limit: 5}, true},
		{"missing file", Config{InputPath: input + ".nope", Limit: 5}, true},
		{"zero limit", Config{InputPath: input}, true},
		{"negative duration", Config{InputPath: input, Limit: 5, DurationSec: -1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestRun_WordTranscript(t *testing.T) {
	input := writeTranscript(t, wordPayload(t))
	outPath := filepath.Join(t.TempDir(), "suggestions.json")

	out, err := Run(Config{
		InputPath:   input,
		OutPath:     outPath,
		Limit:       5,
		Units:       types.UnitSeconds,
		LegacyUnits: true,
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.WordCount == 0 {
		t.Fatalf("expected words")
	}
	if len(out.Suggestions) == 0 {
		t.Fatalf("expected suggestions")
	}
	if out.Source != "fallback:v1" {
		t.Fatalf("source = %q", out.Source)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var written Output
	if err := json.Unmarshal(data, &written); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(written.Suggestions) != len(out.Suggestions) {
		t.Fatalf("written %d suggestions, returned %d", len(written.Suggestions), len(out.Suggestions))
	}
}

func TestRun_PlainProseFile(t *testing.T) {
	// not JSON at all: treated as untimed prose
	input := writeTranscript(t, "hello world this is plain prose without any timing")

	out, err := Run(Config{InputPath: input, Limit: 5, LegacyUnits: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.WordCount != 9 {
		t.Fatalf("word count = %d, want 9", out.WordCount)
	}
}

func TestRun_EmptyTranscript(t *testing.T) {
	input := writeTranscript(t, "{}")
	out, err := Run(Config{InputPath: input, Limit: 5, LegacyUnits: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if out.WordCount != 0 || len(out.Suggestions) != 0 {
		t.Fatalf("expected empty result, got %+v", out)
	}
}
