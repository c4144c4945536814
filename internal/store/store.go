// Package store persists the tracker documents. A Backend holds opaque
// values under string keys; StateStore and Categories layer the two
// tracker documents on top of it.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const currentVersion = 1

// ErrNotFound is returned by Backend.Get for a key that was never written
// or has been deleted.
var ErrNotFound = errors.New("not found")

// Backend is a durable key/value map of whole documents.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// ErrNotListable is returned by List for a backend that cannot enumerate
// its keys.
var ErrNotListable = errors.New("backend cannot list documents")

// BlobInfo describes one stored document.
type BlobInfo struct {
	Key       string
	Size      int
	UpdatedAt time.Time
}

type lister interface {
	List() ([]BlobInfo, error)
}

// List returns every document in b, sorted by key.
func List(b Backend) ([]BlobInfo, error) {
	l, ok := b.(lister)
	if !ok {
		return nil, ErrNotListable
	}
	return l.List()
}

// SQLite keeps documents in a single table of a SQLite database.
type SQLite struct {
	db *sql.DB
}

// New opens (or creates) the SQLite database at dbPath and runs migrations.
func New(dbPath string) (*SQLite, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

// NewMemory creates an in-memory store for testing.
func NewMemory() (*SQLite, error) {
	return New(":memory:")
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) migrate() error {
	var version int
	err := s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return fmt.Errorf("read user_version: %w", err)
	}

	if version >= currentVersion {
		return nil
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentVersion))
	return err
}

func (s *SQLite) migrateV1() error {
	const ddl = `
	CREATE TABLE IF NOT EXISTS blobs (
		key         TEXT PRIMARY KEY,
		value       BLOB NOT NULL,
		updated_at  TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
	);
	`
	_, err := s.db.Exec(ddl)
	return err
}

// Backend kinds accepted by Open.
const (
	KindSQLite = "sqlite"
	KindDiskv  = "diskv"
)

// Open creates the backend of the given kind inside dataDir.
func Open(kind, dataDir string) (Backend, error) {
	switch kind {
	case "", KindSQLite:
		return New(filepath.Join(dataDir, "dualtrack.db"))
	case KindDiskv:
		return NewDiskv(filepath.Join(dataDir, "blobs"))
	}
	return nil, fmt.Errorf("open store: unknown backend %q", kind)
}
