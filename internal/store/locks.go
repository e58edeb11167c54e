package store

import (
	"context"
	"fmt"
	"time"
)

// AcquireLock inserts the admission lock row for a normalized URL. The
// unique index makes the insert fail with ErrLockHeld when another creation
// for the same URL is still in flight.
func (s *Store) AcquireLock(ctx context.Context, normalizedURL string) (int64, error) {
	res, err := s.execWithRetry(ctx,
		`INSERT INTO admission_locks (normalized_url, created_at) VALUES (?, ?)`,
		normalizedURL,
		timestamp(time.Now()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("acquire lock %s: %w", normalizedURL, ErrLockHeld)
		}
		return 0, fmt.Errorf("acquire lock %s: %w", normalizedURL, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("acquire lock %s: last insert id: %w", normalizedURL, err)
	}
	return id, nil
}

// ReleaseLock deletes the admission lock row for a normalized URL. Deleting
// an absent row is not an error, so release is safe to call twice.
func (s *Store) ReleaseLock(ctx context.Context, normalizedURL string) error {
	if _, err := s.execWithRetry(ctx,
		`DELETE FROM admission_locks WHERE normalized_url = ?`, normalizedURL); err != nil {
		return fmt.Errorf("release lock %s: %w", normalizedURL, err)
	}
	return nil
}

// LockHeld reports whether an admission lock currently exists for the URL.
func (s *Store) LockHeld(ctx context.Context, normalizedURL string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ensureContext(ctx),
		`SELECT COUNT(1) FROM admission_locks WHERE normalized_url = ?`, normalizedURL).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check lock %s: %w", normalizedURL, err)
	}
	return count > 0, nil
}
