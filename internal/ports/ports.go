package ports

import (
	"context"
	"time"

	"github.com/moodclip/clipsuggest/internal/types"
)

// ProjectRecord is the stored document for one project: the raw fields the
// upstream pipeline wrote (transcript payloads live somewhere in here) plus
// any suggestions already merged in.
type ProjectRecord struct {
	ID          string
	Fields      map[string]any
	Suggestions []types.Suggestion
}

// SuggestionMerge is the payload merged into a project record after a
// successful generation run.
type SuggestionMerge struct {
	Suggestions []types.Suggestion
	GeneratedAt time.Time
	SourceTag   string
}

// ProjectStore reads project records and merge-writes generated suggestions.
type ProjectStore interface {
	Load(ctx context.Context, projectID string) (ProjectRecord, error)
	MergeSuggestions(ctx context.Context, projectID string, merge SuggestionMerge) error
}

// RenderQueue publishes clip render jobs for accepted suggestions. Owned by
// the surrounding service; no adapter ships here.
type RenderQueue interface {
	PublishRender(ctx context.Context, projectID string, suggestion types.Suggestion) error
}

// SignedURLIssuer issues time-limited object storage URLs for rendered clips.
// Owned by the surrounding service; no adapter ships here.
type SignedURLIssuer interface {
	SignedURL(ctx context.Context, objectKey string, ttl time.Duration) (string, error)
}
