package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"LeadersScraper/internal/ports"
)

// SQLiteCache persists extracted biographies keyed by article URL, so reruns
// skip refetching pages scraped before. Output files are still rewritten
// wholesale each run; only the article fetch is short-circuited.
type SQLiteCache struct {
	db *sql.DB
}

var _ ports.BiographyCache = (*SQLiteCache)(nil)

const schema = `CREATE TABLE IF NOT EXISTS biographies (
	url        TEXT PRIMARY KEY,
	summary    TEXT NOT NULL,
	fetched_at TIMESTAMP NOT NULL
)`

// Open creates or opens the cache database at path, creating parent
// directories as needed.
func Open(ctx context.Context, path string) (*SQLiteCache, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &SQLiteCache{db: db}, nil
}

// Close releases the underlying database handle.
func (c *SQLiteCache) Close() error {
	return c.db.Close()
}

// Lookup returns the cached biography for pageURL and whether one exists.
func (c *SQLiteCache) Lookup(ctx context.Context, pageURL string) (string, bool, error) {
	query := sq.Select("summary").
		From("biographies").
		Where(sq.Eq{"url": pageURL})

	var summary string
	err := query.RunWith(c.db).QueryRowContext(ctx).Scan(&summary)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup biography: %w", err)
	}
	return summary, true, nil
}

// Store upserts the biography for pageURL.
func (c *SQLiteCache) Store(ctx context.Context, pageURL, summary string) error {
	query := sq.Insert("biographies").
		Columns("url", "summary", "fetched_at").
		Values(pageURL, summary, time.Now().UTC()).
		Suffix("ON CONFLICT(url) DO UPDATE SET summary = excluded.summary, fetched_at = excluded.fetched_at")

	if _, err := query.RunWith(c.db).ExecContext(ctx); err != nil {
		return fmt.Errorf("store biography: %w", err)
	}
	return nil
}
