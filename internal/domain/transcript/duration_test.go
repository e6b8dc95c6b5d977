package transcript

import (
	"testing"

	"github.com/moodclip/clipsuggest/internal/types"
)

func TestInferDuration(t *testing.T) {
	words := []types.TimedWord{tw("a", 0, 1), tw("b", 1, 12.5)}

	tests := []struct {
		name   string
		fields map[string]any
		words  []types.TimedWord
		want   float64
		known  bool
	}{
		{"explicit duration", map[string]any{"duration": 90.0}, nil, 90, true},
		{"camel alias", map[string]any{"durationSec": 45.5}, nil, 45.5, true},
		{"string value", map[string]any{"duration": "120"}, nil, 120, true},
		{"metadata nesting", map[string]any{"metadata": map[string]any{"audio_duration": 33.0}}, nil, 33, true},
		{"zero ignored", map[string]any{"duration": 0.0}, words, 12.5, true},
		{"last word fallback", map[string]any{}, words, 12.5, true},
		{"nothing", map[string]any{}, nil, 0, false},
		{"nil fields", nil, words, 12.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, known := InferDuration(tt.fields, tt.words)
			if known != tt.known {
				t.Fatalf("known = %v, want %v", known, tt.known)
			}
			if known && !approx(got, tt.want) {
				t.Fatalf("duration = %v, want %v", got, tt.want)
			}
		})
	}
}
