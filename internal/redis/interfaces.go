package redis

import (
	"context"
	"time"

	"carpool/internal/domain"
)

// LockStoreInterface is the per-carpool locking surface consumed by the
// roster service.
type LockStoreInterface interface {
	AcquireCarpoolLock(ctx context.Context, carpoolID string, ttl time.Duration) (bool, error)
	WaitCarpoolLock(ctx context.Context, carpoolID string, ttl time.Duration) error
	ReleaseCarpoolLock(ctx context.Context, carpoolID string) error
}

var _ LockStoreInterface = (*LockStore)(nil)

// CacheStoreInterface is the carpool caching surface consumed by the catalog
// and roster services. Reads miss with (nil, nil).
type CacheStoreInterface interface {
	GetCarpool(ctx context.Context, carpoolID string) (*domain.Carpool, error)
	SetCarpool(ctx context.Context, carpool *domain.Carpool) error
	InvalidateCarpool(ctx context.Context, carpoolID string) error
}

var _ CacheStoreInterface = (*CacheStore)(nil)
