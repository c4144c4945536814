package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

func (s *SQLite) Get(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get blob %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLite) Put(key string, value []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO blobs (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("put blob %q: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM blobs WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete blob %q: %w", key, err)
	}
	return nil
}

// List returns every stored key with its size and last write time.
func (s *SQLite) List() ([]BlobInfo, error) {
	rows, err := s.db.Query(`SELECT key, length(value), updated_at FROM blobs ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("list blobs: %w", err)
	}
	defer rows.Close()

	var out []BlobInfo
	for rows.Next() {
		var b BlobInfo
		var updated string
		if err := rows.Scan(&b.Key, &b.Size, &updated); err != nil {
			return nil, err
		}
		b.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
		out = append(out, b)
	}
	return out, rows.Err()
}
