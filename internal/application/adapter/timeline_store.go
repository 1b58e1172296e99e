// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// SelectionStore persists the timeline selection of each user.
type SelectionStore interface {
	// Get returns the stored selection, or nil when the user has none.
	Get(ctx context.Context, userID uuid.UUID) (*entity.SelectionState, error)

	// Save stores the selection for the user.
	Save(ctx context.Context, userID uuid.UUID, state entity.SelectionState) error
}

// StatusCache memoizes classified bucket statuses. Keys embed the data
// version, so stale entries are never read back.
type StatusCache interface {
	// GetMany returns the cached statuses for the keys that are present.
	GetMany(ctx context.Context, keys []string) (map[string]entity.BucketStatus, error)

	// SetMany stores statuses for the given keys.
	SetMany(ctx context.Context, statuses map[string]entity.BucketStatus) error
}

// ReminderLedger records which (facility, bucket) reminders were already sent.
type ReminderLedger interface {
	// Claim marks the reminder as sent and reports whether this call was the
	// first to do so.
	Claim(ctx context.Context, facilityID uuid.UUID, bucketID string, ttl time.Duration) (bool, error)

	// Release forgets a claim so the reminder can be retried.
	Release(ctx context.Context, facilityID uuid.UUID, bucketID string) error
}
