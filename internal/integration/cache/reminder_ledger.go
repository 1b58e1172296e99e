package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/epiwatch/backend/internal/application/adapter"
)

const reminderKeyPrefix = "reminder:sent:"

type reminderLedger struct {
	client *redis.Client
}

// NewReminderLedger creates a Redis backed reminder ledger.
func NewReminderLedger(client *redis.Client) adapter.ReminderLedger {
	return &reminderLedger{client: client}
}

func reminderKey(facilityID uuid.UUID, bucketID string) string {
	return reminderKeyPrefix + facilityID.String() + ":" + bucketID
}

func (l *reminderLedger) Claim(ctx context.Context, facilityID uuid.UUID, bucketID string, ttl time.Duration) (bool, error) {
	claimed, err := l.client.SetNX(ctx, reminderKey(facilityID, bucketID), time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to claim reminder: %w", err)
	}
	return claimed, nil
}

func (l *reminderLedger) Release(ctx context.Context, facilityID uuid.UUID, bucketID string) error {
	if err := l.client.Del(ctx, reminderKey(facilityID, bucketID)).Err(); err != nil {
		return fmt.Errorf("failed to release reminder: %w", err)
	}
	return nil
}
