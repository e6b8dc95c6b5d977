package transcript

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/moodclip/clipsuggest/internal/types"
)

// minWordDurationSec is the floor below which a clipped word is considered
// noise and dropped.
const minWordDurationSec = 0.01

// Finalize sorts, clips and deduplicates an extracted word sequence. It is
// idempotent: running it on its own output returns the same sequence.
func Finalize(words []types.TimedWord, durationSec float64, durationKnown bool) []types.TimedWord {
	sorted := make([]types.TimedWord, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})

	out := make([]types.TimedWord, 0, len(sorted))
	seen := make(map[string]struct{}, len(sorted))
	for _, w := range sorted {
		if durationKnown {
			if w.Start > durationSec {
				continue
			}
			if w.End > durationSec {
				w.End = durationSec
			}
		}
		if w.End-w.Start < minWordDurationSec {
			continue
		}
		key := dedupeKey(w)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w)
	}
	return out
}

func dedupeKey(w types.TimedWord) string {
	return fmt.Sprintf("%.3f|%.3f|%s", round3(w.Start), round3(w.End), strings.ToLower(w.Text))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
