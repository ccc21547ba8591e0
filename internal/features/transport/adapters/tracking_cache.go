package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/OTISDav/vehiculesplatform/internal/core/cache"
	"github.com/OTISDav/vehiculesplatform/internal/features/transport/domain"
)

// RedisTrackingCache implements ports.TrackingCache on top of the shared
// cache port, storing snapshots as JSON under a per-request key.
type RedisTrackingCache struct {
	store cache.Cache
	ttl   time.Duration
}

// NewRedisTrackingCache creates a new RedisTrackingCache.
func NewRedisTrackingCache(store cache.Cache, ttl time.Duration) *RedisTrackingCache {
	return &RedisTrackingCache{store: store, ttl: ttl}
}

func trackingKey(requestID uint) string {
	return fmt.Sprintf("logistics:tracking:%d", requestID)
}

// Get returns the cached snapshot, or nil on a miss. A corrupt entry is
// treated as a miss.
func (c *RedisTrackingCache) Get(ctx context.Context, requestID uint) (*domain.TrackingSnapshot, error) {
	data, err := c.store.Get(ctx, trackingKey(requestID))
	if errors.Is(err, cache.ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read tracking snapshot %d: %w", requestID, err)
	}

	var snapshot domain.TrackingSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, nil
	}
	return &snapshot, nil
}

// Put stores a snapshot for the configured TTL.
func (c *RedisTrackingCache) Put(ctx context.Context, snapshot *domain.TrackingSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to encode tracking snapshot %d: %w", snapshot.RequestID, err)
	}
	if err := c.store.Set(ctx, trackingKey(snapshot.RequestID), data, c.ttl); err != nil {
		return fmt.Errorf("failed to cache tracking snapshot %d: %w", snapshot.RequestID, err)
	}
	return nil
}

// Invalidate drops the cached snapshot after a mutation.
func (c *RedisTrackingCache) Invalidate(ctx context.Context, requestID uint) error {
	if err := c.store.Delete(ctx, trackingKey(requestID)); err != nil {
		return fmt.Errorf("failed to invalidate tracking snapshot %d: %w", requestID, err)
	}
	return nil
}
