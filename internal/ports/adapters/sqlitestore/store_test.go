package sqlitestore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/moodclip/clipsuggest/internal/ports"
	"github.com/moodclip/clipsuggest/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_PutLoadRoundtrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	fields := map[string]any{"title": "episode 4", "duration": 92.5}
	if err := store.Put(ctx, "p1", fields); err != nil {
		t.Fatalf("put: %v", err)
	}

	rec, err := store.Load(ctx, "p1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.ID != "p1" || rec.Fields["title"] != "episode 4" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if len(rec.Suggestions) != 0 {
		t.Fatalf("fresh record should have no suggestions")
	}
}

func TestStore_LoadMissing(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Load(context.Background(), "nope")
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestStore_MergeSuggestions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "p1", map[string]any{"title": "x"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	merge := ports.SuggestionMerge{
		Suggestions: []types.Suggestion{
			{ID: "fallback-1", Title: "Opening hook", Start: 1.5, End: 12.5, Confidence: 0.9, Source: "fallback:v1"},
		},
		GeneratedAt: time.Now().UTC(),
		SourceTag:   "fallback:v1",
	}
	if err := store.MergeSuggestions(ctx, "p1", merge); err != nil {
		t.Fatalf("merge: %v", err)
	}

	rec, err := store.Load(ctx, "p1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rec.Suggestions) != 1 || rec.Suggestions[0].ID != "fallback-1" {
		t.Fatalf("suggestions not merged: %+v", rec.Suggestions)
	}
	if rec.Fields["title"] != "x" {
		t.Fatalf("merge must not touch raw fields: %+v", rec.Fields)
	}
}

func TestStore_MergeMissingProject(t *testing.T) {
	store := openTestStore(t)
	err := store.MergeSuggestions(context.Background(), "nope", ports.SuggestionMerge{})
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestStore_ReimportKeepsSuggestions(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.Put(ctx, "p1", map[string]any{"rev": 1.0}); err != nil {
		t.Fatalf("put: %v", err)
	}
	merge := ports.SuggestionMerge{
		Suggestions: []types.Suggestion{{ID: "fallback-1", Source: "fallback:v1"}},
		GeneratedAt: time.Now().UTC(),
		SourceTag:   "fallback:v1",
	}
	if err := store.MergeSuggestions(ctx, "p1", merge); err != nil {
		t.Fatalf("merge: %v", err)
	}

	if err := store.Put(ctx, "p1", map[string]any{"rev": 2.0}); err != nil {
		t.Fatalf("reimport: %v", err)
	}
	rec, err := store.Load(ctx, "p1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if rec.Fields["rev"] != 2.0 {
		t.Fatalf("fields not updated: %+v", rec.Fields)
	}
	if len(rec.Suggestions) != 1 {
		t.Fatalf("reimport dropped suggestions: %+v", rec.Suggestions)
	}
}
