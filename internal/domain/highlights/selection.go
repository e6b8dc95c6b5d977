package highlights

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/moodclip/clipsuggest/internal/types"
)

// SourceTag versions the heuristic so stored fallback suggestions can be
// distinguished from curated or model-generated ones.
const SourceTag = "fallback:v1"

// DefaultLimit is the number of suggestions produced when the caller does not
// ask for a specific count.
const DefaultLimit = 5

const (
	// minTextRunes rejects windows whose normalized text is too short to be a
	// meaningful clip caption.
	minTextRunes = 30

	// maxOverlapRatio is the non-maximum suppression threshold.
	maxOverlapRatio = 0.55

	confidenceFloor   = 0.45
	confidenceWeight  = 0.45
	confidenceCeiling = 0.95

	titleMaxTokens      = 9
	descriptionMaxRunes = 160

	ellipsis = "…"
)

// Generate produces up to limit non-overlapping highlight suggestions from a
// finalized word timeline, ordered by start time. An empty timeline, or a
// candidate set that fully fails selection, yields an empty list.
func Generate(words []types.TimedWord, durationSec float64, durationKnown bool, limit int) []types.Suggestion {
	if limit <= 0 {
		limit = DefaultLimit
	}
	candidates := buildCandidates(words, durationSec, durationKnown)
	accepted := selectCandidates(candidates, limit)
	return shapeSuggestions(accepted)
}

// selectCandidates runs non-maximum suppression: best score first (earlier
// start wins ties), dropping degenerate, short, duplicate-text and
// overlapping windows, then restores chronological order.
func selectCandidates(candidates []types.CandidateSegment, limit int) []types.CandidateSegment {
	ranked := make([]types.CandidateSegment, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Start < ranked[j].Start
	})

	var accepted []types.CandidateSegment
	seenText := make(map[string]struct{})
	for _, c := range ranked {
		if len(accepted) >= limit {
			break
		}
		if c.End <= c.Start {
			continue
		}
		norm := normalizeText(c.Text)
		if utf8.RuneCountInString(norm) < minTextRunes {
			continue
		}
		if _, dup := seenText[norm]; dup {
			continue
		}
		if overlapsAccepted(c, accepted) {
			continue
		}
		seenText[norm] = struct{}{}
		accepted = append(accepted, c)
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		return accepted[i].Start < accepted[j].Start
	})
	return accepted
}

func overlapsAccepted(c types.CandidateSegment, accepted []types.CandidateSegment) bool {
	for _, a := range accepted {
		if overlapRatio(c, a) > maxOverlapRatio {
			return true
		}
	}
	return false
}

// overlapRatio measures the shared span of two windows against the shorter
// window's duration, so a short clip swallowed by a long one still counts as
// a full overlap.
func overlapRatio(a, b types.CandidateSegment) float64 {
	shared := math.Min(a.End, b.End) - math.Max(a.Start, b.Start)
	if shared <= 0 {
		return 0
	}
	shorter := math.Min(a.End-a.Start, b.End-b.Start)
	if shorter <= 0 {
		return 0
	}
	return shared / shorter
}

// shapeSuggestions calibrates confidence against the best accepted score and
// renders the persisted suggestion shape. The ceiling stays below certainty
// on purpose: this is a heuristic, not a model.
func shapeSuggestions(accepted []types.CandidateSegment) []types.Suggestion {
	if len(accepted) == 0 {
		return nil
	}

	maxScore := 0.0
	for _, c := range accepted {
		if c.Score > maxScore {
			maxScore = c.Score
		}
	}

	out := make([]types.Suggestion, 0, len(accepted))
	for i, c := range accepted {
		base := 0.5
		if maxScore > 0 {
			base = clamp(c.Score/maxScore, 0, 1)
		}
		confidence := round2(clamp(confidenceFloor+base*confidenceWeight, confidenceFloor, confidenceCeiling))

		text := strings.TrimSpace(c.Text)
		s := types.Suggestion{
			ID:         fmt.Sprintf("fallback-%d", i+1),
			Title:      makeTitle(text),
			Start:      math.Max(0, round3(c.Start)),
			End:        math.Max(0, round3(c.End)),
			Confidence: confidence,
			Source:     SourceTag,
			Score:      c.Score,
			Metadata: map[string]float64{
				"hookScore":        c.HookScore,
				"fillerPenalty":    c.FillerPenalty,
				"punctuationScore": c.PunctuationScore,
			},
		}
		if text != "" {
			s.Description = makeDescription(text)
		}
		out = append(out, s)
	}
	return out
}

// makeTitle keeps the first nine whitespace tokens, capitalizes the first
// rune and marks truncation with an ellipsis.
func makeTitle(text string) string {
	tokens := strings.Fields(text)
	truncated := len(tokens) > titleMaxTokens
	if truncated {
		tokens = tokens[:titleMaxTokens]
	}
	title := strings.Join(tokens, " ")
	if title == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(title)
	title = string(unicode.ToUpper(r)) + title[size:]
	if truncated {
		title += ellipsis
	}
	return title
}

func makeDescription(text string) string {
	if utf8.RuneCountInString(text) <= descriptionMaxRunes {
		return text
	}
	runes := []rune(text)
	return string(runes[:descriptionMaxRunes-3]) + ellipsis
}

// normalizeText lowercases and collapses whitespace for the duplicate and
// minimum-length checks.
func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
