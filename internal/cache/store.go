// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache keeps fetched scraps in a local SQLite database so repeated
// exports do not hit the Zenn API.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/scrap2md/pkg/types"
)

const (
	dbFile = "scraps.db"

	// timeFormat is fixed-width so stored timestamps sort lexically.
	timeFormat = "2006-01-02T15:04:05.000000000Z"
)

// ErrNotFound is returned when a slug has no cached entry.
var ErrNotFound = errors.New("scrap not cached")

// Entry summarizes one cached scrap.
type Entry struct {
	Slug      string
	Title     string
	Comments  int
	FetchedAt time.Time
}

// Store manages the scrap cache database.
type Store struct {
	db   *sql.DB
	path string
}

// DefaultDir returns the per-user cache directory for scrap2md, falling
// back to ".scrap2md-cache" when the user cache directory is unknown.
func DefaultDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ".scrap2md-cache"
	}
	return filepath.Join(dir, "scrap2md")
}

// Open opens or creates the cache database in cfg.Dir (DefaultDir when
// empty) and creates the schema if it does not exist.
func Open(cfg types.CacheConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = DefaultDir()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	path := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS scraps (
			slug TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			comments INTEGER NOT NULL,
			payload TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scraps_fetched_at ON scraps(fetched_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Put stores sc, replacing any previous entry for the same slug.
func (s *Store) Put(ctx context.Context, sc *types.Scrap, fetchedAt time.Time) error {
	if sc.Slug == "" {
		return fmt.Errorf("caching scrap: empty slug")
	}
	payload, err := json.Marshal(sc)
	if err != nil {
		return fmt.Errorf("encoding scrap %s: %w", sc.Slug, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO scraps (slug, title, comments, payload, fetched_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
			title=excluded.title, comments=excluded.comments,
			payload=excluded.payload, fetched_at=excluded.fetched_at`,
		sc.Slug, sc.Title, countComments(sc.Comments), string(payload),
		fetchedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("caching scrap %s: %w", sc.Slug, err)
	}
	slog.Debug("cached scrap", "slug", sc.Slug, "db", s.path)
	return nil
}

// Get returns the cached scrap for slug and when it was fetched.
func (s *Store) Get(ctx context.Context, slug string) (*types.Scrap, time.Time, error) {
	var payload, fetchedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM scraps WHERE slug = ?`, slug,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, ErrNotFound
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("reading cached scrap %s: %w", slug, err)
	}

	var sc types.Scrap
	if err := json.Unmarshal([]byte(payload), &sc); err != nil {
		return nil, time.Time{}, fmt.Errorf("decoding cached scrap %s: %w", slug, err)
	}
	ts, err := time.Parse(timeFormat, fetchedAt)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parsing fetch time for %s: %w", slug, err)
	}
	return &sc, ts, nil
}

// List returns all cached scraps, most recently fetched first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slug, title, comments, fetched_at FROM scraps
		 ORDER BY fetched_at DESC, slug`)
	if err != nil {
		return nil, fmt.Errorf("listing cache: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var fetchedAt string
		if err := rows.Scan(&e.Slug, &e.Title, &e.Comments, &fetchedAt); err != nil {
			return nil, fmt.Errorf("scanning cache row: %w", err)
		}
		if e.FetchedAt, err = time.Parse(timeFormat, fetchedAt); err != nil {
			return nil, fmt.Errorf("parsing fetch time for %s: %w", e.Slug, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes the entry for slug. It returns ErrNotFound when nothing
// was cached.
func (s *Store) Delete(ctx context.Context, slug string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scraps WHERE slug = ?`, slug)
	if err != nil {
		return fmt.Errorf("deleting cached scrap %s: %w", slug, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every entry and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM scraps`)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	return int(n), nil
}

// countComments counts posts including nested replies.
func countComments(cs []types.Comment) int {
	n := len(cs)
	for _, c := range cs {
		n += countComments(c.Children)
	}
	return n
}
