package transcript

import "github.com/moodclip/clipsuggest/internal/types"

// recordDurationAliases are the record-level fields a media duration may hide
// behind, in precedence order. Values here are taken as seconds as-is: a
// record-level duration is authored metadata, not a provider word offset.
var recordDurationAliases = []string{
	"duration",
	"durationSec",
	"duration_seconds",
	"durationSeconds",
	"mediaDuration",
	"media_duration",
	"audioDuration",
	"audio_duration",
	"length",
}

// InferDuration resolves the media duration for a source record: an explicit
// numeric field (also probed one level down under "metadata"), else the end
// of the last finalized word, else unknown.
func InferDuration(fields map[string]any, words []types.TimedWord) (float64, bool) {
	if d, ok := recordDuration(fields); ok {
		return d, true
	}
	if meta, ok := fields["metadata"].(map[string]any); ok {
		if d, ok := recordDuration(meta); ok {
			return d, true
		}
	}
	if len(words) > 0 {
		return words[len(words)-1].End, true
	}
	return 0, false
}

func recordDuration(m map[string]any) (float64, bool) {
	if m == nil {
		return 0, false
	}
	if d, ok := numericField(m, recordDurationAliases); ok && d > 0 && isFinite(d) {
		return d, true
	}
	return 0, false
}
