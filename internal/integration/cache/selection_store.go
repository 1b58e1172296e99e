// Package cache implements the Redis and in-process stores behind the
// timeline and reminder adapters.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/epiwatch/backend/internal/application/adapter"
	"github.com/epiwatch/backend/internal/domain/entity"
)

const selectionKeyPrefix = "timeline:selection:"

// storedSelection is the JSON form of entity.SelectionState.
type storedSelection struct {
	Granularity      string    `json:"granularity"`
	SelectedBucketID string    `json:"selected_bucket_id"`
	ReferenceDate    time.Time `json:"reference_date"`
}

type selectionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSelectionStore creates a Redis backed selection store. Idle selections
// expire after ttl; zero keeps them forever.
func NewSelectionStore(client *redis.Client, ttl time.Duration) adapter.SelectionStore {
	return &selectionStore{client: client, ttl: ttl}
}

// Get returns nil when nothing is stored. A value that no longer decodes is
// treated the same way so the next Save replaces it.
func (s *selectionStore) Get(ctx context.Context, userID uuid.UUID) (*entity.SelectionState, error) {
	raw, err := s.client.Get(ctx, selectionKeyPrefix+userID.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read selection: %w", err)
	}

	var stored storedSelection
	if err := json.Unmarshal(raw, &stored); err != nil {
		slog.WarnContext(ctx, "ignoring undecodable timeline selection", "user_id", userID, "error", err)
		return nil, nil
	}

	return &entity.SelectionState{
		Granularity:      entity.Granularity(stored.Granularity),
		SelectedBucketID: stored.SelectedBucketID,
		ReferenceDate:    stored.ReferenceDate,
	}, nil
}

func (s *selectionStore) Save(ctx context.Context, userID uuid.UUID, state entity.SelectionState) error {
	raw, err := json.Marshal(storedSelection{
		Granularity:      string(state.Granularity),
		SelectedBucketID: state.SelectedBucketID,
		ReferenceDate:    state.ReferenceDate,
	})
	if err != nil {
		return fmt.Errorf("failed to encode selection: %w", err)
	}

	if err := s.client.Set(ctx, selectionKeyPrefix+userID.String(), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save selection: %w", err)
	}
	return nil
}
