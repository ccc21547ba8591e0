package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/OTISDav/vehiculesplatform/internal/core/cache"
	"github.com/OTISDav/vehiculesplatform/internal/features/transport/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrackingCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisTrackingCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := cache.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return mr, NewRedisTrackingCache(store, ttl)
}

func sampleSnapshot() *domain.TrackingSnapshot {
	return &domain.TrackingSnapshot{
		RequestID:       12,
		VehicleTitle:    "Toyota Land Cruiser 2021",
		OriginCountry:   "France",
		DestinationCity: "Lomé",
		Status:          domain.StatusInTransit,
		StatusLabel:     "En transit",
		CurrentIndex:    4,
		ProgressPercent: 57,
		DelayEstimate:   "25–35 jours",
		AdvancePaid:     decimal.NewFromInt(1_020_000),
		Steps: []domain.TrackingStep{
			{Status: domain.StatusQuoteRequested, Title: "Demande reçue", ReachedAt: time.Now().UTC().Truncate(time.Second)},
			{Status: domain.StatusInTransit, Title: "En transit", IsCurrent: true, ReachedAt: time.Now().UTC().Truncate(time.Second)},
		},
	}
}

// TestRedisTrackingCache_PutGet verifies the snapshot round-trips through
// Redis, decimals included.
func TestRedisTrackingCache_PutGet(t *testing.T) {
	_, tc := newTestTrackingCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, tc.Put(ctx, sampleSnapshot()))

	got, err := tc.Get(ctx, 12)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.StatusInTransit, got.Status)
	assert.Equal(t, 57, got.ProgressPercent)
	assert.True(t, got.AdvancePaid.Equal(decimal.NewFromInt(1_020_000)))
	require.Len(t, got.Steps, 2)
	assert.True(t, got.Steps[1].IsCurrent)
}

// TestRedisTrackingCache_Miss verifies that an absent key is a nil result,
// not an error.
func TestRedisTrackingCache_Miss(t *testing.T) {
	_, tc := newTestTrackingCache(t, time.Minute)

	got, err := tc.Get(context.Background(), 404)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

// TestRedisTrackingCache_Invalidate verifies that invalidation drops the entry.
func TestRedisTrackingCache_Invalidate(t *testing.T) {
	_, tc := newTestTrackingCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, tc.Put(ctx, sampleSnapshot()))
	require.NoError(t, tc.Invalidate(ctx, 12))

	got, err := tc.Get(ctx, 12)
	assert.NoError(t, err)
	assert.Nil(t, got)
}

// TestRedisTrackingCache_TTL verifies that entries expire on their own.
func TestRedisTrackingCache_TTL(t *testing.T) {
	mr, tc := newTestTrackingCache(t, time.Second)
	ctx := context.Background()

	require.NoError(t, tc.Put(ctx, sampleSnapshot()))
	mr.FastForward(2 * time.Second)

	got, err := tc.Get(ctx, 12)
	assert.NoError(t, err)
	assert.Nil(t, got)
}
