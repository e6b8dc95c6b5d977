package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/moodclip/clipsuggest/internal/ports"
)

// ErrProjectNotFound indicates the requested project has no stored record.
var ErrProjectNotFound = errors.New("project not found")

const schemaSQL = `
CREATE TABLE IF NOT EXISTS projects (
    id           TEXT PRIMARY KEY,
    data         TEXT NOT NULL,
    suggestions  TEXT,
    generated_at TEXT,
    source_tag   TEXT,
    updated_at   TEXT NOT NULL
);
`

// Store is a SQLite-backed ProjectStore. Production deployments use the
// document database owned by the surrounding service; this adapter backs the
// CLI and tests.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to (or creates) the store at path and applies the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Put inserts or replaces a project record's raw fields. Existing suggestions
// survive a Put: re-importing upstream data must not discard generated work.
func (s *Store) Put(ctx context.Context, projectID string, fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("marshal project fields: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO projects (id, data, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		projectID, string(data), now,
	)
	if err != nil {
		return fmt.Errorf("put project %s: %w", projectID, err)
	}
	return nil
}

// Load reads one project record.
func (s *Store) Load(ctx context.Context, projectID string) (ports.ProjectRecord, error) {
	var (
		data        string
		suggestions sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT data, suggestions FROM projects WHERE id = ?", projectID,
	).Scan(&data, &suggestions)
	if errors.Is(err, sql.ErrNoRows) {
		return ports.ProjectRecord{}, fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}
	if err != nil {
		return ports.ProjectRecord{}, fmt.Errorf("load project %s: %w", projectID, err)
	}

	rec := ports.ProjectRecord{ID: projectID}
	if err := json.Unmarshal([]byte(data), &rec.Fields); err != nil {
		return ports.ProjectRecord{}, fmt.Errorf("decode project %s fields: %w", projectID, err)
	}
	if suggestions.Valid && suggestions.String != "" {
		if err := json.Unmarshal([]byte(suggestions.String), &rec.Suggestions); err != nil {
			return ports.ProjectRecord{}, fmt.Errorf("decode project %s suggestions: %w", projectID, err)
		}
	}
	return rec, nil
}

// MergeSuggestions writes the generated suggestions into an existing record
// without touching its raw fields.
func (s *Store) MergeSuggestions(ctx context.Context, projectID string, merge ports.SuggestionMerge) error {
	payload, err := json.Marshal(merge.Suggestions)
	if err != nil {
		return fmt.Errorf("marshal suggestions: %w", err)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE projects
         SET suggestions = ?, generated_at = ?, source_tag = ?, updated_at = ?
         WHERE id = ?`,
		string(payload),
		merge.GeneratedAt.UTC().Format(time.RFC3339Nano),
		merge.SourceTag,
		now,
		projectID,
	)
	if err != nil {
		return fmt.Errorf("merge suggestions for %s: %w", projectID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("merge suggestions for %s: %w", projectID, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}
	return nil
}

// compile-time interface check
var _ ports.ProjectStore = (*Store)(nil)
