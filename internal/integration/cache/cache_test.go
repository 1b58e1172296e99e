package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epiwatch/backend/internal/application/usecase/timeline"
	"github.com/epiwatch/backend/internal/domain/entity"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return server, client
}

func TestSelectionStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	server, client := newRedis(t)
	store := NewSelectionStore(client, time.Hour)
	userID := uuid.New()

	missing, err := store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	reference := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, userID, entity.SelectionState{
		Granularity:      entity.GranularityWeek,
		SelectedBucketID: "2024-W11",
		ReferenceDate:    reference,
	}))

	got, err := store.Get(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.GranularityWeek, got.Granularity)
	assert.Equal(t, "2024-W11", got.SelectedBucketID)
	assert.True(t, reference.Equal(got.ReferenceDate))

	server.FastForward(2 * time.Hour)
	expired, err := store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, expired)
}

func TestSelectionStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	server, client := newRedis(t)
	userID := uuid.New()
	require.NoError(t, server.Set(selectionKeyPrefix+userID.String(), "{not json"))

	state, err := NewSelectionStore(client, 0).Get(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSelectionStore_CorruptValueIsReplacedByDefault(t *testing.T) {
	ctx := context.Background()
	server, client := newRedis(t)
	userID := uuid.New()
	key := selectionKeyPrefix + userID.String()
	require.NoError(t, server.Set(key, "{not json"))

	selections := timeline.NewManageSelectionUseCase(NewSelectionStore(client, time.Hour), entity.GranularityWeek, 0, time.UTC)

	out, err := selections.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, entity.GranularityWeek, out.State.Granularity)

	out, err = selections.SetGranularity(ctx, userID, entity.GranularityMonth)
	require.NoError(t, err)
	assert.Equal(t, entity.GranularityMonth, out.State.Granularity)

	raw, err := server.Get(key)
	require.NoError(t, err)
	assert.Contains(t, raw, `"granularity":"month"`)
}

func TestRedisStatusCache(t *testing.T) {
	ctx := context.Background()
	server, client := newRedis(t)
	cache := NewRedisStatusCache(client, time.Minute)

	require.NoError(t, cache.SetMany(ctx, map[string]entity.BucketStatus{
		"f:submission:week:v1:2024-W10": entity.BucketStatusComplete,
		"f:submission:week:v1:2024-W11": entity.BucketStatusNoSubmission,
	}))

	got, err := cache.GetMany(ctx, []string{
		"f:submission:week:v1:2024-W10",
		"f:submission:week:v1:2024-W11",
		"f:submission:week:v1:2024-W12",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]entity.BucketStatus{
		"f:submission:week:v1:2024-W10": entity.BucketStatusComplete,
		"f:submission:week:v1:2024-W11": entity.BucketStatusNoSubmission,
	}, got)

	server.FastForward(2 * time.Minute)
	got, err = cache.GetMany(ctx, []string{"f:submission:week:v1:2024-W10"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRedisStatusCache_Unavailable(t *testing.T) {
	server, client := newRedis(t)
	server.Close()

	_, err := NewRedisStatusCache(client, time.Minute).GetMany(context.Background(), []string{"k"})
	assert.Error(t, err)
}

func TestMemoryStatusCache(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryStatusCache(2)

	require.NoError(t, cache.SetMany(ctx, map[string]entity.BucketStatus{"a": entity.BucketStatusPending}))
	got, err := cache.GetMany(ctx, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, map[string]entity.BucketStatus{"a": entity.BucketStatusPending}, got)

	require.NoError(t, cache.SetMany(ctx, map[string]entity.BucketStatus{
		"b": entity.BucketStatusComplete,
		"c": entity.BucketStatusComplete,
	}))
	assert.Equal(t, 2, cache.Len())
	got, err = cache.GetMany(ctx, []string{"a"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReminderLedger(t *testing.T) {
	ctx := context.Background()
	server, client := newRedis(t)
	ledger := NewReminderLedger(client)
	facilityID := uuid.New()

	first, err := ledger.Claim(ctx, facilityID, "2024-W11", time.Hour)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := ledger.Claim(ctx, facilityID, "2024-W11", time.Hour)
	require.NoError(t, err)
	assert.False(t, second)

	other, err := ledger.Claim(ctx, facilityID, "2024-W12", time.Hour)
	require.NoError(t, err)
	assert.True(t, other)

	require.NoError(t, ledger.Release(ctx, facilityID, "2024-W11"))
	again, err := ledger.Claim(ctx, facilityID, "2024-W11", time.Hour)
	require.NoError(t, err)
	assert.True(t, again)

	server.FastForward(2 * time.Hour)
	afterExpiry, err := ledger.Claim(ctx, facilityID, "2024-W12", time.Hour)
	require.NoError(t, err)
	assert.True(t, afterExpiry)
}
