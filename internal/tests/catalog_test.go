package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/service"
)

type catalogFixture struct {
	users    *MockUserRepository
	carpools *MockCarpoolRepository
	cache    *MockCacheStore
	catalog  *service.CatalogService
}

func newCatalogFixture() *catalogFixture {
	users := NewMockUserRepository()
	carpools := NewMockCarpoolRepository()
	cache := NewMockCacheStore()
	schedule := service.NewScheduleService(carpools)
	catalog := service.NewCatalogService(carpools, users, schedule, cache)
	return &catalogFixture{users: users, carpools: carpools, cache: cache, catalog: catalog}
}

func validCreateRequest(driverID string) service.CreateCarpoolRequest {
	return service.CreateCarpoolRequest{
		DriverID:      driverID,
		Origin:        "Ithaca",
		Destination:   "New York",
		MeetingPoint:  "North Lot",
		StartTime:     time.Now().Add(48 * time.Hour).Format(domain.StartTimeLayout),
		TotalCapacity: 4,
		Price:         25,
		Vehicle:       "Honda Civic",
	}
}

func TestCreateCarpool_ValidInput_Succeeds(t *testing.T) {
	t.Parallel()

	f := newCatalogFixture()
	f.users.AddUser(&domain.User{ID: "driver-1", Name: "Dana", Username: "dana"})

	carpool, err := f.catalog.Create(context.Background(), validCreateRequest("driver-1"))
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	if carpool.ID == "" {
		t.Error("expected carpool ID to be set")
	}
	if carpool.DriverID != "driver-1" {
		t.Errorf("expected driver-1, got %s", carpool.DriverID)
	}
	if len(carpool.Confirmed) != 0 || len(carpool.Pending) != 0 {
		t.Error("expected empty membership sets on creation")
	}
	if carpool.AvailableSeats() != 3 {
		t.Errorf("expected 3 available seats (capacity 4 minus driver), got %d", carpool.AvailableSeats())
	}
}

func TestCreateCarpool_InvalidFields_Rejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		mutate  func(*service.CreateCarpoolRequest)
		wantErr error
	}{
		{
			name:    "start time in the past",
			mutate:  func(r *service.CreateCarpoolRequest) { r.StartTime = "2020-01-01 10:00:00" },
			wantErr: service.ErrStartTimeNotFuture,
		},
		{
			name:    "unparseable start time",
			mutate:  func(r *service.CreateCarpoolRequest) { r.StartTime = "June 1st at 10am" },
			wantErr: service.ErrInvalidStartTime,
		},
		{
			name:    "capacity of one leaves no passenger seat",
			mutate:  func(r *service.CreateCarpoolRequest) { r.TotalCapacity = 1 },
			wantErr: service.ErrInvalidCapacity,
		},
		{
			name:    "zero capacity",
			mutate:  func(r *service.CreateCarpoolRequest) { r.TotalCapacity = 0 },
			wantErr: service.ErrInvalidCapacity,
		},
		{
			name:    "negative price",
			mutate:  func(r *service.CreateCarpoolRequest) { r.Price = -1 },
			wantErr: service.ErrInvalidPrice,
		},
		{
			name:    "missing origin",
			mutate:  func(r *service.CreateCarpoolRequest) { r.Origin = "" },
			wantErr: service.ErrMissingOrigin,
		},
		{
			name:    "missing destination",
			mutate:  func(r *service.CreateCarpoolRequest) { r.Destination = "" },
			wantErr: service.ErrMissingDestination,
		},
		{
			name:    "missing meeting point",
			mutate:  func(r *service.CreateCarpoolRequest) { r.MeetingPoint = "" },
			wantErr: service.ErrMissingMeetingPoint,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f := newCatalogFixture()
			f.users.AddUser(&domain.User{ID: "driver-1", Name: "Dana", Username: "dana"})

			req := validCreateRequest("driver-1")
			tc.mutate(&req)

			_, err := f.catalog.Create(context.Background(), req)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateCarpool_UnknownDriver_NotFound(t *testing.T) {
	t.Parallel()

	f := newCatalogFixture()

	_, err := f.catalog.Create(context.Background(), validCreateRequest("ghost"))
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestCreateCarpool_DriverScheduleConflict(t *testing.T) {
	t.Parallel()

	f := newCatalogFixture()
	f.users.AddUser(&domain.User{ID: "driver-1", Name: "Dana", Username: "dana"})

	first := validCreateRequest("driver-1")
	existing, err := f.catalog.Create(context.Background(), first)
	if err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := validCreateRequest("driver-1")
	second.StartTime = existing.StartTime.Add(30 * time.Minute).Format(domain.StartTimeLayout)
	if _, err := f.catalog.Create(context.Background(), second); !errors.Is(err, service.ErrScheduleConflict) {
		t.Errorf("expected ErrScheduleConflict, got: %v", err)
	}

	third := validCreateRequest("driver-1")
	third.StartTime = existing.StartTime.Add(5 * time.Hour).Format(domain.StartTimeLayout)
	if _, err := f.catalog.Create(context.Background(), third); err != nil {
		t.Errorf("expected create 5 hours apart to succeed, got: %v", err)
	}
}

func TestCreateCarpool_PassengerCommitmentConflicts(t *testing.T) {
	t.Parallel()

	// A confirmed seat on an overlapping ride blocks hosting one too.
	f := newCatalogFixture()
	f.users.AddUser(&domain.User{ID: "driver-1", Name: "Dana", Username: "dana"})

	start := time.Now().Add(48 * time.Hour).Truncate(time.Second)
	f.carpools.AddCarpool(&domain.Carpool{
		ID: "pool-1", Origin: "Ithaca", Destination: "Boston",
		StartTime: start, TotalCapacity: 4, DriverID: "other-driver",
		Confirmed: []string{"driver-1"},
	})

	req := validCreateRequest("driver-1")
	req.StartTime = start.Add(45 * time.Minute).Format(domain.StartTimeLayout)
	if _, err := f.catalog.Create(context.Background(), req); !errors.Is(err, service.ErrScheduleConflict) {
		t.Errorf("expected ErrScheduleConflict, got: %v", err)
	}
}

func TestSearch_Filters(t *testing.T) {
	t.Parallel()

	f := newCatalogFixture()
	base := time.Now().Add(48 * time.Hour).Truncate(time.Second)

	f.carpools.AddCarpool(&domain.Carpool{
		ID: "pool-nyc", Origin: "Ithaca", Destination: "New York City",
		StartTime: base, TotalCapacity: 4, DriverID: "d1",
	})
	f.carpools.AddCarpool(&domain.Carpool{
		ID: "pool-bos", Origin: "Ithaca Commons", Destination: "Boston",
		StartTime: base.Add(6 * time.Hour), TotalCapacity: 4, DriverID: "d2",
	})

	testCases := []struct {
		name    string
		req     service.SearchRequest
		wantIDs []string
	}{
		{
			name:    "no filters returns all",
			req:     service.SearchRequest{},
			wantIDs: []string{"pool-nyc", "pool-bos"},
		},
		{
			name:    "destination substring",
			req:     service.SearchRequest{Destination: "York"},
			wantIDs: []string{"pool-nyc"},
		},
		{
			name:    "destination match is case-sensitive",
			req:     service.SearchRequest{Destination: "york"},
			wantIDs: []string{},
		},
		{
			name:    "origin substring matches both",
			req:     service.SearchRequest{Origin: "Ithaca"},
			wantIDs: []string{"pool-nyc", "pool-bos"},
		},
		{
			name:    "min time is inclusive",
			req:     service.SearchRequest{MinTime: base.Add(6 * time.Hour).Format(domain.StartTimeLayout)},
			wantIDs: []string{"pool-bos"},
		},
		{
			name:    "max time is inclusive",
			req:     service.SearchRequest{MaxTime: base.Format(domain.StartTimeLayout)},
			wantIDs: []string{"pool-nyc"},
		},
		{
			name: "conjunction of filters",
			req: service.SearchRequest{
				Origin:  "Ithaca",
				MaxTime: base.Add(time.Hour).Format(domain.StartTimeLayout),
			},
			wantIDs: []string{"pool-nyc"},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			carpools, err := f.catalog.Search(context.Background(), tc.req)
			if err != nil {
				t.Fatalf("search failed: %v", err)
			}

			got := make(map[string]bool, len(carpools))
			for _, c := range carpools {
				got[c.ID] = true
			}
			if len(got) != len(tc.wantIDs) {
				t.Fatalf("expected %d results, got %d", len(tc.wantIDs), len(got))
			}
			for _, id := range tc.wantIDs {
				if !got[id] {
					t.Errorf("expected %s in results", id)
				}
			}
		})
	}
}

func TestSearch_BadTimeFilter(t *testing.T) {
	t.Parallel()

	f := newCatalogFixture()
	_, err := f.catalog.Search(context.Background(), service.SearchRequest{MinTime: "yesterday"})
	if !errors.Is(err, service.ErrInvalidTimeFilter) {
		t.Errorf("expected ErrInvalidTimeFilter, got: %v", err)
	}
}

func TestGetByID_Missing_NotFound(t *testing.T) {
	t.Parallel()

	f := newCatalogFixture()
	_, err := f.catalog.GetByID(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}
