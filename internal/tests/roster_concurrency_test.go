package tests

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"carpool/internal/service"
)

func TestAcceptRider_ConcurrentAcceptsNeverOverfill(t *testing.T) {
	t.Parallel()

	// capacity=2 leaves a single passenger seat; five pending riders race
	// for it. The per-carpool lock must let exactly one promotion through.
	f := newRosterFixture()
	f.addCarpool("pool-1", "driver-1", 2, futureTime(0))

	riders := make([]string, 5)
	for i := range riders {
		riders[i] = fmt.Sprintf("rider-%d", i)
		f.addUser(riders[i])
		if _, err := f.roster.RequestJoin(context.Background(), "pool-1", riders[i]); err != nil {
			t.Fatalf("request join failed for %s: %v", riders[i], err)
		}
	}

	var accepted int32
	var wg sync.WaitGroup
	for _, rider := range riders {
		wg.Add(1)
		go func(rider string) {
			defer wg.Done()
			_, err := f.roster.AcceptRider(context.Background(), "pool-1", "driver-1", rider)
			if err == nil {
				atomic.AddInt32(&accepted, 1)
				return
			}
			if !errors.Is(err, service.ErrCapacityExceeded) {
				t.Errorf("unexpected error for %s: %v", rider, err)
			}
		}(rider)
	}
	wg.Wait()

	if accepted != 1 {
		t.Errorf("expected exactly 1 accepted rider, got %d", accepted)
	}

	carpool := f.carpools.GetCarpool("pool-1")
	if len(carpool.Confirmed) != 1 {
		t.Errorf("expected 1 confirmed passenger, got %d", len(carpool.Confirmed))
	}

	// Five joins plus five accepts, every one behind the carpool lock.
	if waits := atomic.LoadInt32(&f.locks.Waits); waits != 10 {
		t.Errorf("expected 10 lock acquisitions, got %d", waits)
	}
}

func TestRequestJoin_ConcurrentJoinsRespectSerialization(t *testing.T) {
	t.Parallel()

	f := newRosterFixture()
	f.addCarpool("pool-1", "driver-1", 4, futureTime(0))

	const joiners = 8
	riders := make([]string, joiners)
	for i := range riders {
		riders[i] = fmt.Sprintf("joiner-%d", i)
		f.addUser(riders[i])
	}

	var wg sync.WaitGroup
	for _, rider := range riders {
		wg.Add(1)
		go func(rider string) {
			defer wg.Done()
			if _, err := f.roster.RequestJoin(context.Background(), "pool-1", rider); err != nil {
				t.Errorf("join failed for %s: %v", rider, err)
			}
		}(rider)
	}
	wg.Wait()

	carpool := f.carpools.GetCarpool("pool-1")
	if len(carpool.Pending) != joiners {
		t.Errorf("expected %d pending riders, got %d", joiners, len(carpool.Pending))
	}

	seen := make(map[string]bool)
	for _, id := range carpool.Pending {
		if seen[id] {
			t.Errorf("duplicate pending entry for %s", id)
		}
		seen[id] = true
	}
}
