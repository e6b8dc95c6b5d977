package highlights

import (
	"strings"

	"github.com/moodclip/clipsuggest/internal/types"
)

const (
	// minSegmentSec and maxSegmentSec bound a usable clip window.
	minSegmentSec = 5.0
	maxSegmentSec = 22.0

	// targetSec anchors the duration-closeness term.
	targetSec = 12.0

	// overshootSec is the grace window past the cap before a start index
	// stops extending.
	overshootSec = 4.0
)

// effectiveMax caps the window length at the media duration when one is
// known.
func effectiveMax(durationSec float64, durationKnown bool) float64 {
	if durationKnown && durationSec > 0 && durationSec < maxSegmentSec {
		return durationSec
	}
	return maxSegmentSec
}

// targetDuration clamps the soft 12s target to lie between minSegmentSec+1
// and the effective cap.
func targetDuration(maxDur float64) float64 {
	return clamp(targetSec, minSegmentSec+1, maxDur)
}

// buildCandidates sweeps every word as a window start and every later word as
// a window end, scoring each pair whose duration lands between the minimum
// and the cap plus grace. Counts accumulate incrementally so the sweep stays
// O(n^2) in words, not in text length.
func buildCandidates(words []types.TimedWord, durationSec float64, durationKnown bool) []types.CandidateSegment {
	if len(words) == 0 {
		return nil
	}

	maxDur := effectiveMax(durationSec, durationKnown)
	target := targetDuration(maxDur)

	var out []types.CandidateSegment
	for i := range words {
		start := words[i].Start

		var (
			parts    []string
			c        counts
			speakers map[string]struct{}
			prevTok  string
		)

		for j := i; j < len(words); j++ {
			w := words[j]
			if w.End <= start {
				// Fully before the candidate start; contributes nothing.
				continue
			}

			parts = append(parts, w.Text)
			c.words++

			tok := normalizeToken(w.Text)
			if w.IsHook || isHookToken(tok) {
				c.hooks++
			}
			if isFillerToken(prevTok, tok) {
				c.fillers++
			}
			if strings.ContainsAny(w.Text, "!?") {
				c.emphasis++
			}
			if w.Speaker != "" {
				if speakers == nil {
					speakers = make(map[string]struct{})
				}
				speakers[strings.ToLower(w.Speaker)] = struct{}{}
				c.speakers = len(speakers)
			}
			prevTok = tok

			duration := w.End - start
			if duration > maxDur+overshootSec {
				break
			}
			if duration < minSegmentSec {
				continue
			}

			text := strings.TrimSpace(strings.Join(parts, " "))
			if text == "" {
				continue
			}
			out = append(out, scoreSegment(start, w.End, target, text, c))
		}
	}
	return out
}
