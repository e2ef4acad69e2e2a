package tests

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"carpool/internal/domain"
	"carpool/internal/service"
)

func TestGetByID_MissPopulatesCache(t *testing.T) {
	t.Parallel()

	f := newCatalogFixture()
	f.carpools.AddCarpool(&domain.Carpool{
		ID:            "pool-1",
		Origin:        "Ithaca",
		Destination:   "New York",
		MeetingPoint:  "North Lot",
		StartTime:     futureTime(0),
		TotalCapacity: 4,
		DriverID:      "driver-1",
	})

	carpool, err := f.catalog.GetByID(context.Background(), "pool-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if carpool.ID != "pool-1" {
		t.Errorf("expected pool-1, got %s", carpool.ID)
	}
	if !f.cache.HasEntry("pool-1") {
		t.Error("expected lookup to populate the cache")
	}
	if n := atomic.LoadInt32(&f.cache.SetCallCount); n != 1 {
		t.Errorf("expected 1 cache write, got %d", n)
	}

	// A second lookup is served from cache without another write.
	if _, err := f.catalog.GetByID(context.Background(), "pool-1"); err != nil {
		t.Fatalf("expected no error on cached lookup, got: %v", err)
	}
	if n := atomic.LoadInt32(&f.cache.SetCallCount); n != 1 {
		t.Errorf("expected cached lookup to skip the write, got %d writes", n)
	}
}

func TestGetByID_ServedFromCache(t *testing.T) {
	t.Parallel()

	f := newCatalogFixture()

	// Only the cache knows this carpool; a repository fallback would 404.
	if err := f.cache.SetCarpool(context.Background(), &domain.Carpool{
		ID:            "pool-1",
		Origin:        "Ithaca",
		Destination:   "New York",
		TotalCapacity: 3,
		DriverID:      "driver-1",
	}); err != nil {
		t.Fatalf("seeding cache failed: %v", err)
	}

	carpool, err := f.catalog.GetByID(context.Background(), "pool-1")
	if err != nil {
		t.Fatalf("expected cached carpool, got: %v", err)
	}
	if carpool.Destination != "New York" {
		t.Errorf("expected cached destination, got %s", carpool.Destination)
	}
	if n := atomic.LoadInt32(&f.cache.GetCallCount); n != 1 {
		t.Errorf("expected 1 cache read, got %d", n)
	}
}

func TestGetByID_CacheFailure_FallsBackToRepository(t *testing.T) {
	t.Parallel()

	f := newCatalogFixture()
	f.carpools.AddCarpool(&domain.Carpool{
		ID:            "pool-1",
		Origin:        "Ithaca",
		Destination:   "New York",
		TotalCapacity: 4,
		DriverID:      "driver-1",
	})
	f.cache.GetError = errors.New("redis: connection refused")

	carpool, err := f.catalog.GetByID(context.Background(), "pool-1")
	if err != nil {
		t.Fatalf("expected repository fallback, got: %v", err)
	}
	if carpool.ID != "pool-1" {
		t.Errorf("expected pool-1, got %s", carpool.ID)
	}
}

func TestRosterMutation_InvalidatesCachedCarpool(t *testing.T) {
	t.Parallel()

	users := NewMockUserRepository()
	carpools := NewMockCarpoolRepository()
	cache := NewMockCacheStore()
	locks := NewMockLockStore()
	schedule := service.NewScheduleService(carpools)
	catalog := service.NewCatalogService(carpools, users, schedule, cache)
	roster := service.NewRosterService(carpools, users, schedule, locks, cache)

	users.AddUser(&domain.User{ID: "driver-1", Name: "driver-1", Username: "driver-1"})
	users.AddUser(&domain.User{ID: "rider-1", Name: "rider-1", Username: "rider-1"})
	carpools.AddCarpool(&domain.Carpool{
		ID:            "pool-1",
		Origin:        "Ithaca",
		Destination:   "New York",
		MeetingPoint:  "North Lot",
		StartTime:     futureTime(0),
		TotalCapacity: 3,
		DriverID:      "driver-1",
	})

	if _, err := catalog.GetByID(context.Background(), "pool-1"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if !cache.HasEntry("pool-1") {
		t.Fatal("expected lookup to populate the cache")
	}

	if _, err := roster.RequestJoin(context.Background(), "pool-1", "rider-1"); err != nil {
		t.Fatalf("request join failed: %v", err)
	}
	if cache.HasEntry("pool-1") {
		t.Error("expected roster mutation to invalidate the cache entry")
	}

	// The next lookup repopulates with the pending rider visible.
	carpool, err := catalog.GetByID(context.Background(), "pool-1")
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if carpool.MembershipOf("rider-1") != domain.MembershipPending {
		t.Errorf("expected rider-1 PENDING after repopulation, got %s", carpool.MembershipOf("rider-1"))
	}
}
