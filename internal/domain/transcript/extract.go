package transcript

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/moodclip/clipsuggest/internal/types"
)

// maxDepth bounds the recursive descent. Real provider payloads nest at most
// three container levels; anything deeper is malformed or adversarial.
const maxDepth = 4

// plainTextStep is the synthetic slot width used when the payload carries no
// timing at all.
const plainTextStep = 0.42

// Field alias tables. Order is precedence, not coincidence: when a provider
// emits two of these on the same node, the earlier alias is the one its
// official schema means.
var (
	textAliases    = []string{"text", "word", "value", "token", "punctuated_word"}
	startAliases   = []string{"start", "start_time", "startTime", "ts", "offset", "begin", "time", "from", "offsetStart", "t"}
	endAliases     = []string{"end", "end_time", "endTime", "until", "offset_end", "offsetEnd", "finish", "to", "timeEnd", "offsetStop"}
	durAliases     = []string{"duration", "durationMs", "duration_ms", "dur", "length"}
	speakerAliases = []string{"speaker", "speaker_label", "speakerLabel", "channel_speaker"}
	confAliases    = []string{"confidence", "probability"}
	hookAliases    = []string{"isHook", "is_hook", "hook"}
	idAliases      = []string{"id", "word_id", "wordId"}
)

// containerRule resolves one known nested-word-group shape on an object node.
// Rules are probed in order; the first match claims the node.
type containerRule struct {
	name    string
	resolve func(m map[string]any) (any, bool)
}

var containerRules = []containerRule{
	{"words", keyRule("words")},
	{"paragraphs", paragraphsRule},
	{"sentences", keyRule("sentences")},
	{"items", keyRule("items")},
	{"alternatives", firstElementRule("alternatives")},
	{"results.channels", pathRule("results", "channels")},
}

func keyRule(key string) func(map[string]any) (any, bool) {
	return func(m map[string]any) (any, bool) {
		v, ok := m[key]
		return v, ok && v != nil
	}
}

// paragraphsRule unwraps both the flat `paragraphs: [...]` shape and the
// wrapped `paragraphs: { paragraphs: [...] }` shape some providers emit.
func paragraphsRule(m map[string]any) (any, bool) {
	v, ok := m["paragraphs"]
	if !ok || v == nil {
		return nil, false
	}
	if inner, ok := v.(map[string]any); ok {
		if nested, ok := inner["paragraphs"]; ok && nested != nil {
			return nested, true
		}
	}
	return v, true
}

// containerKeys mirror the rule set for cheap "is this a container" probes
// without referencing containerRules (which would cycle at init).
var containerKeys = []string{"words", "paragraphs", "sentences", "items", "alternatives", "results"}

func hasContainerKey(m map[string]any) bool {
	for _, k := range containerKeys {
		if v, ok := m[k]; ok && v != nil {
			return true
		}
	}
	return false
}

// firstElementRule descends into key[0] only when that element is itself a
// container. A bare alternative like {transcript: "..."} stays with the
// enclosing node so leaf interpretation can pick the transcript text up.
func firstElementRule(key string) func(map[string]any) (any, bool) {
	return func(m map[string]any) (any, bool) {
		arr, ok := m[key].([]any)
		if !ok || len(arr) == 0 {
			return nil, false
		}
		switch elem := arr[0].(type) {
		case []any:
			return elem, true
		case map[string]any:
			if hasContainerKey(elem) {
				return elem, true
			}
		}
		return nil, false
	}
}

func pathRule(keys ...string) func(map[string]any) (any, bool) {
	return func(m map[string]any) (any, bool) {
		var cur any = m
		for _, k := range keys {
			obj, ok := cur.(map[string]any)
			if !ok {
				return nil, false
			}
			cur, ok = obj[k]
			if !ok || cur == nil {
				return nil, false
			}
		}
		return cur, true
	}
}

// Result is the normalizer output: the finalized word timeline and the
// duration it was clipped against (inferred from the last word when the
// caller did not know one).
type Result struct {
	Words         []types.TimedWord
	DurationSec   float64
	DurationKnown bool
}

// Normalize converts one opaque transcript payload into an ordered,
// deduplicated, duration-clipped word timeline. Malformed input never fails;
// it degrades to an empty contribution. An empty result means "no transcript
// available", not an error.
func Normalize(payload any, ctx types.NormalizationContext) Result {
	e := &extractor{ctx: ctx, visited: map[uintptr]struct{}{}}
	e.walk(payload, 0, "")

	words := Finalize(e.words, ctx.DurationSec, ctx.DurationKnown)

	res := Result{Words: words, DurationSec: ctx.DurationSec, DurationKnown: ctx.DurationKnown}
	if !res.DurationKnown && len(words) > 0 {
		res.DurationSec = words[len(words)-1].End
		res.DurationKnown = true
	}
	return res
}

type extractor struct {
	ctx     types.NormalizationContext
	words   []types.TimedWord
	visited map[uintptr]struct{}
	nextID  int
}

func (e *extractor) walk(v any, depth int, speaker string) {
	if v == nil || depth > maxDepth {
		return
	}
	switch node := v.(type) {
	case string:
		// Plain prose only makes sense as the whole payload. A stray string
		// deeper in the tree has no timeline position to anchor to.
		if depth == 0 {
			e.synthesizeFromText(node)
		}
	case []any:
		if e.seen(node) {
			return
		}
		// Arrays are transparent: they do not consume a depth level, so the
		// ceiling counts container nesting, not element fan-out.
		for _, elem := range node {
			e.walk(elem, depth, speaker)
		}
	case map[string]any:
		if e.seen(node) {
			return
		}
		if s, ok := stringField(node, speakerAliases); ok {
			speaker = s
		}
		for _, rule := range containerRules {
			if child, ok := rule.resolve(node); ok {
				e.walk(child, depth+1, speaker)
				return
			}
		}
		if w, ok := e.wordFromObject(node, speaker); ok {
			e.words = append(e.words, w)
		}
	}
}

// seen records container identity for the current top-level invocation so a
// self-referential payload terminates.
func (e *extractor) seen(container any) bool {
	ptr := reflect.ValueOf(container).Pointer()
	if _, ok := e.visited[ptr]; ok {
		return true
	}
	e.visited[ptr] = struct{}{}
	return false
}

// wordFromObject interprets an unrecognized object as a single timed word.
// A node with no resolvable non-empty text yields nothing.
func (e *extractor) wordFromObject(m map[string]any, speaker string) (types.TimedWord, bool) {
	text, ok := resolveText(m)
	if !ok {
		return types.TimedWord{}, false
	}

	start := 0.0
	if raw, ok := numericField(m, startAliases); ok {
		start = e.toSeconds(raw)
	}
	if start < 0 || !isFinite(start) {
		start = 0
	}

	end := math.NaN()
	if raw, ok := numericField(m, endAliases); ok {
		end = e.toSeconds(raw)
	}
	if !isFinite(end) || end <= start {
		if raw, ok := numericField(m, durAliases); ok && raw > 0 {
			end = start + normalizeDurationField(raw)
		} else {
			end = syntheticEnd(start, text)
		}
	}
	if end <= start {
		end = syntheticEnd(start, text)
	}

	w := types.TimedWord{
		ID:      e.wordID(m),
		Text:    text,
		Start:   start,
		End:     end,
		Speaker: speaker,
	}
	if s, ok := stringField(m, speakerAliases); ok {
		w.Speaker = s
	}
	if c, ok := numericField(m, confAliases); ok && c >= 0 && c <= 1 {
		conf := c
		w.Confidence = &conf
	}
	for _, key := range hookAliases {
		if b, ok := m[key].(bool); ok && b {
			w.IsHook = true
			break
		}
	}
	return w, true
}

// resolveText picks the word text from the alias list, falling back to the
// alternatives[0].transcript shape.
func resolveText(m map[string]any) (string, bool) {
	if s, ok := stringField(m, textAliases); ok {
		return s, true
	}
	if arr, ok := m["alternatives"].([]any); ok && len(arr) > 0 {
		if alt, ok := arr[0].(map[string]any); ok {
			if s, ok := alt["transcript"].(string); ok {
				if t := strings.TrimSpace(s); t != "" {
					return t, true
				}
			}
		}
	}
	return "", false
}

func (e *extractor) toSeconds(raw float64) float64 {
	return NormalizeSeconds(raw, e.ctx.DurationSec, e.ctx.DurationKnown, e.ctx.Units, e.ctx.LegacyUnits)
}

func (e *extractor) wordID(m map[string]any) string {
	for _, key := range idAliases {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%d", int64(v))
		}
	}
	e.nextID++
	return fmt.Sprintf("w%d", e.nextID)
}

// synthesizeFromText turns untimed prose into uniform 0.42s word slots
// starting at zero, capped one second past a known duration.
func (e *extractor) synthesizeFromText(s string) {
	tokens := strings.Fields(s)
	if len(tokens) == 0 {
		return
	}
	limit := float64(len(tokens)) * plainTextStep
	if e.ctx.DurationKnown {
		limit = e.ctx.DurationSec + 1
	}
	for i, tok := range tokens {
		start := math.Min(float64(i)*plainTextStep, limit)
		e.nextID++
		e.words = append(e.words, types.TimedWord{
			ID:    fmt.Sprintf("w%d", e.nextID),
			Text:  tok,
			Start: start,
			End:   start + plainTextStep,
		})
	}
}

func stringField(m map[string]any, aliases []string) (string, bool) {
	for _, key := range aliases {
		if s, ok := m[key].(string); ok {
			if t := strings.TrimSpace(s); t != "" {
				return t, true
			}
		}
	}
	return "", false
}

func numericField(m map[string]any, aliases []string) (float64, bool) {
	for _, key := range aliases {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		if f, ok := parseTimeValue(v); ok {
			return f, true
		}
	}
	return 0, false
}
