package eventstore

import (
	"context"
	"time"
)

// Store persists generation records.
type Store interface {
	// Append adds a record to the history.
	Append(ctx context.Context, rec GenerationRecord) error

	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]GenerationRecord, error)

	// PruneBefore deletes records older than cutoff and reports how many were removed.
	PruneBefore(ctx context.Context, cutoff time.Time) (int64, error)

	Close() error
}

// DefaultRecentLimit bounds Recent when callers pass a non-positive limit.
const DefaultRecentLimit = 50

// MaxRecentLimit caps how many records a single query may return.
const MaxRecentLimit = 500

// ClampLimit maps a requested page size onto [1, MaxRecentLimit].
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultRecentLimit
	case limit > MaxRecentLimit:
		return MaxRecentLimit
	default:
		return limit
	}
}
