package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Sync state keys
const (
	KeyLastSync = "last_sync"
)

// GetSyncState retrieves a sync state value by key
// Returns empty string if key doesn't exist
func (db *DB) GetSyncState(key string) (string, error) {
	var value string
	err := db.QueryRow(`
		SELECT value FROM sync_state WHERE key = ?
	`, key).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}

// SetSyncState sets a sync state value
func (db *DB) SetSyncState(key, value string) error {
	_, err := db.Exec(`
		INSERT INTO sync_state (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, key, value)
	return err
}

// LastSync returns when the last successful sync finished, or the zero time
func (db *DB) LastSync() (time.Time, error) {
	v, err := db.GetSyncState(KeyLastSync)
	if err != nil || v == "" {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s %q: %w", KeyLastSync, v, err)
	}
	return t, nil
}

// SetLastSync records the completion time of a sync
func (db *DB) SetLastSync(t time.Time) error {
	return db.SetSyncState(KeyLastSync, t.UTC().Format(time.RFC3339))
}
