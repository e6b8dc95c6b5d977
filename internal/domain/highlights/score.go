package highlights

import (
	"math"
	"strings"

	"github.com/moodclip/clipsuggest/internal/types"
)

// Fixed lexicons. The scoring model is intentionally an auditable linear
// formula over these counts; constants are load-bearing for behavioral
// compatibility and must not drift.
var hookWords = wordSet(
	"you", "your", "secret", "secrets", "imagine", "never", "always",
	"nobody", "everyone", "everybody", "viral", "crazy", "insane",
	"unbelievable", "why", "how", "what", "stop", "wait", "truth",
	"mistake", "free", "now", "instantly", "biggest", "worst", "best",
)

var fillerWords = wordSet("um", "uh", "like", "basically")

var fillerPhrases = map[[2]string]struct{}{
	{"you", "know"}: {},
	{"sort", "of"}:  {},
	{"kind", "of"}:  {},
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// normalizeToken lowercases a word and strips surrounding punctuation so
// lexicon membership is not defeated by "You," or "secret!".
func normalizeToken(w string) string {
	return strings.Trim(strings.ToLower(w), ".,!?;:\"'()[]“”‘’-")
}

func isHookToken(tok string) bool {
	_, ok := hookWords[tok]
	return ok
}

func isFillerToken(prev, tok string) bool {
	if _, ok := fillerWords[tok]; ok {
		return true
	}
	_, ok := fillerPhrases[[2]string{prev, tok}]
	return ok
}

// counts are the running tallies a candidate window accumulates during the
// sweep.
type counts struct {
	words    int
	hooks    int
	emphasis int
	fillers  int
	speakers int
}

// scoreSegment applies the fixed-weight linear model to one window.
func scoreSegment(start, end, target float64, text string, c counts) types.CandidateSegment {
	duration := end - start

	durationScore := clamp(1-math.Abs(duration-target)/target, 0, 1.2)
	hookScore := clamp(float64(c.hooks)*0.35+float64(c.emphasis)*0.2, 0, 2.5)
	fillerPenalty := clamp(float64(c.fillers)*0.25, 0, 1.2)

	speakerPenalty := 0.0
	if c.speakers > 1 {
		speakerPenalty = float64(c.speakers-1) * 0.2
	}

	punctuationScore := 0.0
	switch {
	case strings.ContainsAny(text, "!?"):
		punctuationScore = 0.3
	case strings.ContainsAny(text, ".,;:"):
		punctuationScore = 0.15
	}

	wordScore := clamp(float64(c.words)/12, 0, 1.5)

	raw := 1 + durationScore*1.2 + hookScore + punctuationScore + wordScore - fillerPenalty - speakerPenalty

	return types.CandidateSegment{
		Start:            start,
		End:              end,
		Text:             text,
		Score:            math.Max(0, raw),
		RawScore:         raw,
		WordCount:        c.words,
		SpeakerCount:     c.speakers,
		HookScore:        hookScore,
		FillerPenalty:    fillerPenalty,
		PunctuationScore: punctuationScore,
	}
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
