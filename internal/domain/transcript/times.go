package transcript

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/moodclip/clipsuggest/internal/types"
)

// parseTimeValue converts a raw provider time into a plain number, before any
// unit adjustment. Numbers pass through; strings may be plain decimals or
// clock-style ("MM:SS", "HH:MM:SS"), accumulated base-60 from the least
// significant component.
func parseTimeValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if !isFinite(t) {
			return 0, false
		}
		return t, true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		if err != nil || !isFinite(f) {
			return 0, false
		}
		return f, true
	case string:
		return parseTimeString(t)
	default:
		return 0, false
	}
}

func parseTimeString(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ":") {
		return parseClock(s)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !isFinite(f) {
		return 0, false
	}
	return f, true
}

func parseClock(s string) (float64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}
	total := 0.0
	mult := 1.0
	for i := len(parts) - 1; i >= 0; i-- {
		f, err := strconv.ParseFloat(strings.TrimSpace(parts[i]), 64)
		if err != nil || !isFinite(f) || f < 0 {
			return 0, false
		}
		total += f * mult
		mult *= 60
	}
	return total, true
}

// NormalizeSeconds converts a parsed time magnitude to seconds. Declared units
// win outright. Without a declaration, the legacy heuristics guess: a value
// beyond 1.5x a known duration is read as centiseconds, as is any value above
// 10000 when no duration is known. Providers emit centisecond and decisecond
// integers without saying so, and a best-effort guess beats discarding the
// timestamp.
func NormalizeSeconds(value float64, durationSec float64, durationKnown bool, units types.TimeUnit, legacy bool) float64 {
	switch units {
	case types.UnitCentiseconds:
		return value / 100
	case types.UnitMilliseconds:
		return value / 1000
	case types.UnitMinutes:
		return value * 60
	}
	if legacy {
		if durationKnown && durationSec > 0 && value > durationSec*1.5 {
			return value / 100
		}
		if !durationKnown && value > 10000 {
			return value / 100
		}
	}
	return value
}

// normalizeDurationField converts an explicit word-duration field to seconds.
// Values above 300 are read as milliseconds: no single word lasts five
// minutes, but plenty of providers report word lengths in ms.
func normalizeDurationField(v float64) float64 {
	if v > 300 {
		return v / 1000
	}
	return v
}

// syntheticEnd derives an end offset when a word carries no usable timing for
// one: a flat floor of 0.42s or 0.21s per whitespace token, whichever is
// larger.
func syntheticEnd(start float64, text string) float64 {
	n := len(strings.Fields(text))
	return start + math.Max(0.42, float64(n)*0.21)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
