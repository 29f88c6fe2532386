// Package cache stores stamped listings so repeated folder requests skip the upstream site.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vmunix/catchup/internal/listing"
)

// Store is a SQLite-backed listing cache keyed by (folder id, data version).
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore creates a listing store. The listing_cache table must exist.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Get returns the cached listing for navID at version.
// Returns false if not found, expired, or written under another data version.
func (s *Store) Get(ctx context.Context, navID, version string) (listing.Result, bool) {
	var payload string
	var expiresAt int64

	err := s.db.QueryRowContext(ctx,
		"SELECT payload, expires_at FROM listing_cache WHERE nav_id = ? AND data_version = ?",
		navID, version,
	).Scan(&payload, &expiresAt)
	if err != nil || s.now().UnixMilli() >= expiresAt {
		return listing.Result{}, false
	}

	var res listing.Result
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		return listing.Result{}, false
	}
	return res, true
}

// Set stores res under its own DataVersion for CacheTTL.
func (s *Store) Set(ctx context.Context, navID string, res listing.Result) error {
	if res.CacheTTL <= 0 {
		return nil
	}
	payload, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("encode listing: %w", err)
	}
	expiresAt := s.now().Add(res.CacheTTL).UnixMilli()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO listing_cache (nav_id, data_version, payload, expires_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(nav_id, data_version) DO UPDATE SET payload = excluded.payload, expires_at = excluded.expires_at`,
		navID, res.DataVersion, string(payload), expiresAt,
	)
	if err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes every version of navID.
func (s *Store) Delete(ctx context.Context, navID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM listing_cache WHERE nav_id = ?", navID)
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// Prune removes expired entries and entries from other data versions.
// Returns the number of entries removed.
func (s *Store) Prune(ctx context.Context, currentVersion string) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM listing_cache WHERE expires_at <= ? OR data_version <> ?",
		s.now().UnixMilli(), currentVersion,
	)
	if err != nil {
		return 0, fmt.Errorf("cache prune: %w", err)
	}
	return result.RowsAffected()
}

// Len returns the number of stored entries, including expired ones.
func (s *Store) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM listing_cache").Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}
