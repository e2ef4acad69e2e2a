package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// lockRetryInterval is how often a blocked acquirer re-polls the lock key.
const lockRetryInterval = 25 * time.Millisecond

// LockStore serializes roster mutations with per-carpool locks in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireCarpoolLock attempts to acquire the mutation lock for the given
// carpool. Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireCarpoolLock(ctx context.Context, carpoolID string, ttl time.Duration) (bool, error) {
	key := fmt.Sprintf("lock:carpool:%s", carpoolID)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// WaitCarpoolLock blocks until the carpool lock is acquired or the context
// is done. Concurrent roster mutations against the same carpool queue here
// instead of failing.
func (s *LockStore) WaitCarpoolLock(ctx context.Context, carpoolID string, ttl time.Duration) error {
	for {
		ok, err := s.AcquireCarpoolLock(ctx, carpoolID, ttl)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(lockRetryInterval):
		}
	}
}

// ReleaseCarpoolLock releases the lock for the given carpool.
func (s *LockStore) ReleaseCarpoolLock(ctx context.Context, carpoolID string) error {
	key := fmt.Sprintf("lock:carpool:%s", carpoolID)

	return s.client.Del(ctx, key).Err()
}
