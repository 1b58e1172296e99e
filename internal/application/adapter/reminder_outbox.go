package adapter

import (
	"context"
	"time"

	"github.com/epiwatch/backend/internal/domain/entity"
)

// ReminderOutbox persists reminder emails until the worker delivers them.
type ReminderOutbox interface {
	// Enqueue stores all emails atomically.
	Enqueue(ctx context.Context, emails ...*entity.ReminderEmail) error

	// ClaimDue moves up to limit queued emails due at now to sending and
	// returns them, oldest first. Emails left in sending by a worker that
	// stopped without saving them become claimable again once their claim
	// is older than the lease.
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*entity.ReminderEmail, error)

	// Release hands claimed emails that were never attempted back to the
	// queue.
	Release(ctx context.Context, emails ...*entity.ReminderEmail) error

	// Save writes back the delivery state of an email.
	Save(ctx context.Context, email *entity.ReminderEmail) error

	// PurgeDelivered removes delivered emails finished before cutoff.
	PurgeDelivered(ctx context.Context, cutoff time.Time) (int64, error)
}
