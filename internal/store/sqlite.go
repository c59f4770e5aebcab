package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/mahdiidarabi/vanity-keygen/pkg/vanity"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore appends matches to a "matches" table in a SQLite database.
type SQLiteStore struct {
	path string
	db   *sql.DB
}

// NewSQLite opens (or creates) the SQLite database at path with a single writer connection
// and synchronous commits, so an Append that returns has reached the disk.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}

	// Single writer prevents SQLITE_BUSY under WAL.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = FULL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	return &SQLiteStore{path: path, db: db}, nil
}

// Path returns the database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Prepare applies all pending goose migrations from the embedded FS.
func (s *SQLiteStore) Prepare(ctx context.Context) error {
	migrations, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Append inserts one record.
func (s *SQLiteStore) Append(ctx context.Context, record vanity.MatchRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO matches (public_key, note, created_at) VALUES (?, ?, ?)`,
		record.PublicIdentifier, record.Note, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("insert match: %w", err)
	}
	return nil
}

// Records returns every record in insertion order. A database that was never prepared has
// no records.
func (s *SQLiteStore) Records(ctx context.Context) ([]vanity.MatchRecord, error) {
	var tables int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'matches'`).Scan(&tables)
	if err != nil {
		return nil, fmt.Errorf("lookup matches table: %w", err)
	}
	if tables == 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT public_key, note FROM matches ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var records []vanity.MatchRecord
	for rows.Next() {
		var r vanity.MatchRecord
		if err := rows.Scan(&r.PublicIdentifier, &r.Note); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
