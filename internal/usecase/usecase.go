package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/moodclip/clipsuggest/internal/domain/highlights"
	"github.com/moodclip/clipsuggest/internal/domain/transcript"
	"github.com/moodclip/clipsuggest/internal/ports"
	"github.com/moodclip/clipsuggest/internal/types"
)

// payloadPriorityKeys are tried in order before falling back to the pattern
// scan.
var payloadPriorityKeys = []string{
	"transcript",
	"transcription",
	"transcriptData",
	"words",
	"deepgram",
	"asrResult",
}

var payloadKeyPattern = regexp.MustCompile(`(?i)transcript|paragraph|segments|words|alternatives|deepgram`)

type Deps struct {
	Store  ports.ProjectStore
	Logger *slog.Logger
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase {
	if d.Logger == nil {
		d.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Usecase{d: d}
}

type Input struct {
	ProjectID string
	Limit     int
	Units     types.TimeUnit

	// Force regenerates even when suggestions are already stored.
	Force bool
}

type Result struct {
	Suggestions []types.Suggestion

	// Skipped reports that stored suggestions already existed and the engine
	// was not invoked.
	Skipped bool

	WordCount     int
	DurationSec   float64
	DurationKnown bool
}

// Run loads the project record, decides whether generation is needed, runs
// the normalizer and the highlight engine, and merge-writes the result. An
// empty suggestion list is persisted as nothing and returned as an empty,
// non-error result.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	log := u.d.Logger.With("run_id", uuid.NewString(), "project_id", in.ProjectID)

	rec, err := u.d.Store.Load(ctx, in.ProjectID)
	if err != nil {
		return Result{}, fmt.Errorf("load project: %w", err)
	}

	// Idempotence guard: a once-computed fallback (or any curated set) is
	// never silently overwritten. Read-then-write, so two concurrent first
	// runs may both compute; the merge is idempotent so that only wastes
	// work.
	if !in.Force && len(rec.Suggestions) > 0 {
		log.Info("suggestions already stored, skipping generation",
			"count", len(rec.Suggestions))
		return Result{Skipped: true, Suggestions: rec.Suggestions}, nil
	}

	payload, key, ok := locatePayload(rec.Fields)
	if !ok {
		log.Warn("no transcript payload on record")
		return Result{}, nil
	}

	durationSec, durationKnown := transcript.InferDuration(rec.Fields, nil)
	norm := transcript.Normalize(payload, types.NormalizationContext{
		Units:         in.Units,
		DurationSec:   durationSec,
		DurationKnown: durationKnown,
		LegacyUnits:   true,
	})
	if len(norm.Words) == 0 {
		log.Info("transcript yielded no words", "payload_key", key)
		return Result{}, nil
	}

	suggestions := highlights.Generate(norm.Words, norm.DurationSec, norm.DurationKnown, in.Limit)
	res := Result{
		Suggestions:   suggestions,
		WordCount:     len(norm.Words),
		DurationSec:   norm.DurationSec,
		DurationKnown: norm.DurationKnown,
	}
	if len(suggestions) == 0 {
		log.Info("no viable highlight candidates", "words", len(norm.Words))
		return res, nil
	}

	merge := ports.SuggestionMerge{
		Suggestions: suggestions,
		GeneratedAt: time.Now().UTC(),
		SourceTag:   highlights.SourceTag,
	}
	if err := u.d.Store.MergeSuggestions(ctx, in.ProjectID, merge); err != nil {
		return Result{}, fmt.Errorf("persist suggestions: %w", err)
	}

	log.Info("fallback suggestions stored",
		"payload_key", key,
		"words", len(norm.Words),
		"suggestions", len(suggestions))
	return res, nil
}

// locatePayload finds the raw transcript payload on a record: the fixed
// priority keys first, then a deterministic scan of the remaining keys for
// transcript-looking names.
func locatePayload(fields map[string]any) (any, string, bool) {
	for _, key := range payloadPriorityKeys {
		if v, ok := fields[key]; ok && v != nil {
			return v, key, true
		}
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if fields[k] != nil && payloadKeyPattern.MatchString(k) {
			return fields[k], k, true
		}
	}
	return nil, "", false
}
