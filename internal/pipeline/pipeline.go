package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/moodclip/clipsuggest/internal/domain/highlights"
	"github.com/moodclip/clipsuggest/internal/domain/transcript"
	"github.com/moodclip/clipsuggest/internal/types"
)

// Config drives one file-mode run: read a raw transcript JSON document,
// normalize it, derive fallback suggestions, optionally write them out.
type Config struct {
	InputPath string
	OutPath   string

	Limit int
	Units types.TimeUnit

	// DurationSec is the known media duration; zero means unknown and lets
	// the normalizer infer one.
	DurationSec float64

	LegacyUnits bool

	Logger *slog.Logger
}

func (c Config) Validate() error {
	if c.InputPath == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.InputPath); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.Limit <= 0 {
		return fmt.Errorf("limit must be > 0")
	}
	if c.DurationSec < 0 {
		return fmt.Errorf("duration must be >= 0")
	}
	return nil
}

// Output is the run result, also the shape written to OutPath.
type Output struct {
	Input       string             `json:"input"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Source      string             `json:"source"`
	WordCount   int                `json:"wordCount"`
	DurationSec *float64           `json:"durationSec"`
	Suggestions []types.Suggestion `json:"suggestions"`
}

// Run executes one file-mode generation.
func Run(cfg Config) (Output, error) {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	data, err := os.ReadFile(cfg.InputPath)
	if err != nil {
		return Output{}, fmt.Errorf("read transcript: %w", err)
	}

	// The payload shape is provider-dependent; decode to a generic tree and
	// let the normalizer sort it out. A file that is not JSON at all is still
	// usable as plain prose.
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		payload = string(data)
	}

	ctx := types.NormalizationContext{
		Units:       cfg.Units,
		LegacyUnits: cfg.LegacyUnits,
	}
	if cfg.DurationSec > 0 {
		ctx.DurationSec = cfg.DurationSec
		ctx.DurationKnown = true
	}

	norm := transcript.Normalize(payload, ctx)
	log.Info("transcript normalized",
		"input", cfg.InputPath,
		"words", len(norm.Words),
		"duration_known", norm.DurationKnown)

	suggestions := highlights.Generate(norm.Words, norm.DurationSec, norm.DurationKnown, cfg.Limit)

	out := Output{
		Input:       cfg.InputPath,
		GeneratedAt: time.Now().UTC(),
		Source:      highlights.SourceTag,
		WordCount:   len(norm.Words),
		Suggestions: suggestions,
	}
	if norm.DurationKnown {
		d := norm.DurationSec
		out.DurationSec = &d
	}

	if cfg.OutPath != "" {
		b, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return Output{}, fmt.Errorf("marshal output: %w", err)
		}
		if err := os.WriteFile(cfg.OutPath, b, 0o644); err != nil {
			return Output{}, fmt.Errorf("write output: %w", err)
		}
		log.Info("suggestions written", "path", cfg.OutPath, "count", len(suggestions))
	}

	return out, nil
}
