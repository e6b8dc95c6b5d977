package types

// TimeUnit declares the unit a provider reports word offsets in. Providers
// frequently omit this, in which case the legacy magnitude heuristics in the
// transcript package take over.
type TimeUnit string

const (
	UnitSeconds      TimeUnit = "seconds"
	UnitCentiseconds TimeUnit = "centiseconds"
	UnitMilliseconds TimeUnit = "milliseconds"
	UnitMinutes      TimeUnit = "minutes"
)

// ParseTimeUnit maps a config/flag string to a TimeUnit. Empty and unknown
// values fall back to seconds.
func ParseTimeUnit(s string) TimeUnit {
	switch TimeUnit(s) {
	case UnitCentiseconds, UnitMilliseconds, UnitMinutes:
		return TimeUnit(s)
	default:
		return UnitSeconds
	}
}

// TimedWord is one recognized token on the canonical timeline. Start and End
// are seconds from the beginning of the media.
type TimedWord struct {
	ID         string   `json:"id"`
	Text       string   `json:"text"`
	Start      float64  `json:"start"`
	End        float64  `json:"end"`
	Speaker    string   `json:"speaker,omitempty"`
	Confidence *float64 `json:"confidence,omitempty"`
	IsHook     bool     `json:"isHook,omitempty"`
}

// NormalizationContext is the per-call configuration for transcript
// normalization.
type NormalizationContext struct {
	Units TimeUnit

	// DurationSec is the known media duration. Valid only when DurationKnown.
	DurationSec   float64
	DurationKnown bool

	// LegacyUnits enables magnitude-based unit guessing for providers that
	// emit centisecond integers without declaring units. All extraction call
	// sites enable it.
	LegacyUnits bool
}

// CandidateSegment is a provisional highlight window under evaluation. The
// component sub-scores are retained so a rejected or selected window can be
// explained after the fact.
type CandidateSegment struct {
	Start float64
	End   float64
	Text  string

	Score    float64
	RawScore float64

	WordCount    int
	SpeakerCount int

	HookScore        float64
	FillerPenalty    float64
	PunctuationScore float64
}

// Suggestion is one highlight suggestion in its persisted shape.
type Suggestion struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description,omitempty"`
	Start       float64            `json:"start"`
	End         float64            `json:"end"`
	Confidence  float64            `json:"confidence"`
	Source      string             `json:"source"`
	Score       float64            `json:"score"`
	Metadata    map[string]float64 `json:"metadata,omitempty"`
}
