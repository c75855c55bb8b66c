// Package store provides the SQLite session journal for forcetrack.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// journalPragmas are applied to every connection the driver opens.
const journalPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// Store is the session journal: one SQLite file with a single connection,
// so sessions and their events are written in order.
type Store struct {
	db   *sql.DB
	path string
}

// New opens the journal at path, creating the file and its directory if
// needed, and brings the schema up to date.
func New(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("journal path is required")
	}

	clean := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(clean), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", clean+journalPragmas)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping journal: %w", err)
	}
	if err := ensureForeignKeys(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &Store{
		db:   db,
		path: clean,
	}

	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return s, nil
}

// ensureForeignKeys fails unless the connection enforces foreign keys;
// deleting a session relies on the cascade to drop its events.
func ensureForeignKeys(db *sql.DB) error {
	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		return fmt.Errorf("check foreign keys: %w", err)
	}
	if enabled != 1 {
		return errors.New("journal foreign keys are disabled")
	}
	return nil
}

// Close closes the journal. A nil Store is already closed.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DB returns the underlying database connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Path returns the cleaned journal file path.
func (s *Store) Path() string {
	return s.path
}
