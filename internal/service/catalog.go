package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/redis"
	"carpool/internal/repository"
)

// CatalogService handles carpool creation, lookup and filtered search.
type CatalogService struct {
	carpoolRepo repository.CarpoolRepository
	userRepo    repository.UserRepository
	schedule    *ScheduleService
	cache       redis.CacheStoreInterface
}

// NewCatalogService creates a new CatalogService. The cache may be nil, in
// which case lookups always hit the repository.
func NewCatalogService(
	carpoolRepo repository.CarpoolRepository,
	userRepo repository.UserRepository,
	schedule *ScheduleService,
	cache redis.CacheStoreInterface,
) *CatalogService {
	return &CatalogService{
		carpoolRepo: carpoolRepo,
		userRepo:    userRepo,
		schedule:    schedule,
		cache:       cache,
	}
}

// CreateCarpoolRequest contains the parameters for creating a carpool.
type CreateCarpoolRequest struct {
	DriverID      string
	Origin        string
	Destination   string
	MeetingPoint  string
	StartTime     string // domain.StartTimeLayout
	TotalCapacity int
	Price         float64
	Vehicle       string
}

// Create validates the request and allocates a new carpool with empty
// confirmed/pending sets. The driver must exist and be free of commitments
// within the conflict window of the requested start time.
func (s *CatalogService) Create(ctx context.Context, req CreateCarpoolRequest) (*domain.Carpool, error) {
	if req.Origin == "" {
		return nil, ErrMissingOrigin
	}
	if req.Destination == "" {
		return nil, ErrMissingDestination
	}
	if req.MeetingPoint == "" {
		return nil, ErrMissingMeetingPoint
	}
	if req.TotalCapacity <= 1 {
		return nil, ErrInvalidCapacity
	}
	if req.Price < 0 {
		return nil, ErrInvalidPrice
	}

	startTime, err := time.ParseInLocation(domain.StartTimeLayout, req.StartTime, time.Local)
	if err != nil {
		return nil, ErrInvalidStartTime
	}
	if !startTime.After(time.Now()) {
		return nil, ErrStartTimeNotFuture
	}

	if _, err := s.userRepo.GetByID(ctx, req.DriverID); err != nil {
		return nil, err
	}

	available, err := s.schedule.IsAvailable(ctx, req.DriverID, startTime)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrScheduleConflict
	}

	carpool := &domain.Carpool{
		ID:            uuid.New().String(),
		Origin:        req.Origin,
		Destination:   req.Destination,
		MeetingPoint:  req.MeetingPoint,
		StartTime:     startTime,
		TotalCapacity: req.TotalCapacity,
		Price:         req.Price,
		Vehicle:       req.Vehicle,
		DriverID:      req.DriverID,
		CreatedAt:     time.Now(),
	}

	if err := s.carpoolRepo.Create(ctx, carpool); err != nil {
		return nil, err
	}
	return carpool, nil
}

// SearchRequest narrows a carpool search. Empty fields impose no constraint.
type SearchRequest struct {
	Destination string
	Origin      string
	MinTime     string // domain.StartTimeLayout, inclusive
	MaxTime     string // domain.StartTimeLayout, inclusive
}

// Search returns carpools matching every present filter conjunctively.
func (s *CatalogService) Search(ctx context.Context, req SearchRequest) ([]*domain.Carpool, error) {
	filter := repository.SearchFilter{
		Destination: req.Destination,
		Origin:      req.Origin,
	}

	if req.MinTime != "" {
		t, err := time.ParseInLocation(domain.StartTimeLayout, req.MinTime, time.Local)
		if err != nil {
			return nil, ErrInvalidTimeFilter
		}
		filter.MinTime = &t
	}
	if req.MaxTime != "" {
		t, err := time.ParseInLocation(domain.StartTimeLayout, req.MaxTime, time.Local)
		if err != nil {
			return nil, ErrInvalidTimeFilter
		}
		filter.MaxTime = &t
	}

	return s.carpoolRepo.Search(ctx, filter)
}

// GetAll retrieves all carpools.
func (s *CatalogService) GetAll(ctx context.Context) ([]*domain.Carpool, error) {
	return s.carpoolRepo.GetAll(ctx)
}

// GetByID retrieves a carpool by ID, consulting the cache first. Cache
// failures fall through to the repository.
func (s *CatalogService) GetByID(ctx context.Context, id string) (*domain.Carpool, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetCarpool(ctx, id); err == nil && cached != nil {
			return cached, nil
		}
	}

	carpool, err := s.carpoolRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetCarpool(ctx, carpool)
	}
	return carpool, nil
}
