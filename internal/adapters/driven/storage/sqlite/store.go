// Package sqlite persists fetched schema bodies across runs.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. The database
// schema is managed through versioned migrations embedded from the
// migrations/ directory.
//
// All operations are thread-safe via SQLite's database-level locking in
// WAL mode.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/spatiolabs/stacval/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/spatiolabs/stacval/internal/core/domain"
	"github.com/spatiolabs/stacval/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SchemaBlobStore = (*Store)(nil)

// Store is a SQLite-backed schema blob store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a schema store under cacheDir. The directory is
// created if needed.
func NewStore(cacheDir string) (*Store, error) {
	if cacheDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		cacheDir = filepath.Join(home, ".stacval", "cache")
	}

	if err := os.MkdirAll(cacheDir, 0700); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	dbPath := filepath.Join(cacheDir, "schemas.db")

	// WAL mode for better concurrency across crawl workers.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the stored body for a schema URL, or domain.ErrNotFound.
func (s *Store) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	row := s.db.QueryRowContext(ctx, "SELECT body FROM schema_documents WHERE url = ?", url)
	if err := row.Scan(&body); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("reading schema %s: %w", url, err)
	}
	return body, nil
}

// Put stores or replaces the body for a schema URL.
func (s *Store) Put(ctx context.Context, url string, body []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schema_documents (url, body, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET body = excluded.body, fetched_at = excluded.fetched_at
	`, url, body, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("storing schema %s: %w", url, err)
	}
	return nil
}

// Stats returns the number of cached schemas and their total size.
func (s *Store) Stats(ctx context.Context) (count int, size int64, err error) {
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*), COALESCE(SUM(LENGTH(body)), 0) FROM schema_documents")
	if err := row.Scan(&count, &size); err != nil {
		return 0, 0, fmt.Errorf("reading cache stats: %w", err)
	}
	return count, size, nil
}

// Clear removes every cached schema.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM schema_documents"); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	return nil
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_schema_documents.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}
