package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"carpool/internal/domain"
)

// CacheStore handles carpool caching in Redis. Roster state changes on every
// admission decision, so entries carry a short TTL and are invalidated on
// every mutation.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

const (
	carpoolCacheTTL    = 15 * time.Second
	carpoolCachePrefix = "cache:carpool:"
)

// GetCarpool retrieves a carpool from cache. A miss returns (nil, nil).
func (s *CacheStore) GetCarpool(ctx context.Context, carpoolID string) (*domain.Carpool, error) {
	key := carpoolCachePrefix + carpoolID
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var carpool domain.Carpool
	if err := json.Unmarshal(data, &carpool); err != nil {
		return nil, err
	}
	return &carpool, nil
}

// SetCarpool stores a carpool in cache.
func (s *CacheStore) SetCarpool(ctx context.Context, carpool *domain.Carpool) error {
	key := carpoolCachePrefix + carpool.ID
	data, err := json.Marshal(carpool)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, data, carpoolCacheTTL).Err()
}

// InvalidateCarpool removes a carpool from cache.
func (s *CacheStore) InvalidateCarpool(ctx context.Context, carpoolID string) error {
	key := carpoolCachePrefix + carpoolID
	return s.client.Del(ctx, key).Err()
}
