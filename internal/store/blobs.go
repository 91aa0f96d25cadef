package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// GetBlob returns the value stored under key, or nil if the key has never
// been written.
func (s *Store) GetBlob(key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM blobs WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %q: %w", key, err)
	}
	return value, nil
}

// PutBlob replaces the value stored under key.
func (s *Store) PutBlob(key string, value []byte) error {
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

// BlobInfo returns metadata about the value stored under key. ok is false
// when the key is absent.
func (s *Store) BlobInfo(key string) (info Blob, ok bool, err error) {
	var updated string
	err = s.db.QueryRow(
		`SELECT key, COALESCE(length(value), 0), updated_at FROM blobs WHERE key = ?`, key,
	).Scan(&info.Key, &info.Size, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return Blob{}, false, nil
	}
	if err != nil {
		return Blob{}, false, fmt.Errorf("blob info %q: %w", key, err)
	}
	info.UpdatedAt, _ = time.Parse(time.RFC3339, updated)
	return info, true, nil
}
