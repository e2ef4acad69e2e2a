package service

import (
	"context"
	"time"

	"carpool/internal/domain"
	"carpool/internal/redis"
	"carpool/internal/repository"
)

// rosterLockTTL bounds how long a single admission decision may hold a
// carpool's mutation lock.
const rosterLockTTL = 10 * time.Second

// RosterService owns the per-carpool membership state machine. Every
// (carpool, user) pair is in exactly one of NOT_INVOLVED, PENDING, CONFIRMED
// or DRIVER, and all mutations of a carpool's sets are serialized behind its
// lock so two concurrent joins can never both take the last seat.
type RosterService struct {
	carpoolRepo repository.CarpoolRepository
	userRepo    repository.UserRepository
	schedule    *ScheduleService
	locks       redis.LockStoreInterface
	cache       redis.CacheStoreInterface
}

// NewRosterService creates a new RosterService. The lock store and cache may
// be nil in single-process setups; serialization is then the caller's concern.
func NewRosterService(
	carpoolRepo repository.CarpoolRepository,
	userRepo repository.UserRepository,
	schedule *ScheduleService,
	locks redis.LockStoreInterface,
	cache redis.CacheStoreInterface,
) *RosterService {
	return &RosterService{
		carpoolRepo: carpoolRepo,
		userRepo:    userRepo,
		schedule:    schedule,
		locks:       locks,
		cache:       cache,
	}
}

// lockCarpool serializes roster mutations against one carpool. The returned
// release func is a no-op when no lock store is configured.
func (s *RosterService) lockCarpool(ctx context.Context, carpoolID string) (func(), error) {
	if s.locks == nil {
		return func() {}, nil
	}
	if err := s.locks.WaitCarpoolLock(ctx, carpoolID, rosterLockTTL); err != nil {
		return nil, err
	}
	return func() {
		_ = s.locks.ReleaseCarpoolLock(context.Background(), carpoolID)
	}, nil
}

func (s *RosterService) invalidate(ctx context.Context, carpoolID string) {
	if s.cache == nil {
		return
	}
	_ = s.cache.InvalidateCarpool(ctx, carpoolID)
}

// load resolves the carpool and user, surfacing ErrNotFound for either.
func (s *RosterService) load(ctx context.Context, carpoolID, userID string) (*domain.Carpool, error) {
	carpool, err := s.carpoolRepo.GetByID(ctx, carpoolID)
	if err != nil {
		return nil, err
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return carpool, nil
}

// RequestJoin records a user's request to join a carpool as a pending
// passenger. The schedule check here is advisory; it is not repeated at
// accept time.
func (s *RosterService) RequestJoin(ctx context.Context, carpoolID, userID string) (*domain.Carpool, error) {
	release, err := s.lockCarpool(ctx, carpoolID)
	if err != nil {
		return nil, err
	}
	defer release()

	carpool, err := s.load(ctx, carpoolID, userID)
	if err != nil {
		return nil, err
	}

	if carpool.AvailableSeats() <= 0 {
		return nil, ErrCapacityExceeded
	}

	switch carpool.MembershipOf(userID) {
	case domain.MembershipDriver, domain.MembershipConfirmed:
		return nil, ErrAlreadyRider
	case domain.MembershipPending:
		return nil, ErrAlreadyPending
	}

	available, err := s.schedule.IsAvailable(ctx, userID, carpool.StartTime)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrScheduleConflict
	}

	if err := s.carpoolRepo.AddPending(ctx, carpoolID, userID); err != nil {
		return nil, err
	}

	s.invalidate(ctx, carpoolID)
	return s.carpoolRepo.GetByID(ctx, carpoolID)
}

// Leave removes a confirmed passenger from the carpool, freeing the seat.
func (s *RosterService) Leave(ctx context.Context, carpoolID, userID string) (*domain.Carpool, error) {
	release, err := s.lockCarpool(ctx, carpoolID)
	if err != nil {
		return nil, err
	}
	defer release()

	carpool, err := s.load(ctx, carpoolID, userID)
	if err != nil {
		return nil, err
	}

	if carpool.MembershipOf(userID) != domain.MembershipConfirmed {
		return nil, ErrNotRider
	}

	if err := s.carpoolRepo.RemoveConfirmed(ctx, carpoolID, userID); err != nil {
		return nil, err
	}

	s.invalidate(ctx, carpoolID)
	return s.carpoolRepo.GetByID(ctx, carpoolID)
}

// CancelPending withdraws a user's own pending join request.
func (s *RosterService) CancelPending(ctx context.Context, carpoolID, userID string) (*domain.Carpool, error) {
	release, err := s.lockCarpool(ctx, carpoolID)
	if err != nil {
		return nil, err
	}
	defer release()

	carpool, err := s.load(ctx, carpoolID, userID)
	if err != nil {
		return nil, err
	}

	if carpool.MembershipOf(userID) != domain.MembershipPending {
		return nil, ErrNotPending
	}

	if err := s.carpoolRepo.RemovePending(ctx, carpoolID, userID); err != nil {
		return nil, err
	}

	s.invalidate(ctx, carpoolID)
	return s.carpoolRepo.GetByID(ctx, carpoolID)
}

// AcceptRider promotes a pending passenger to confirmed. Admission is
// driver-gated, so capacity is re-checked here independently of the check
// made when the request was filed. The promotion itself is atomic.
func (s *RosterService) AcceptRider(ctx context.Context, carpoolID, requesterID, riderID string) (*domain.Carpool, error) {
	release, err := s.lockCarpool(ctx, carpoolID)
	if err != nil {
		return nil, err
	}
	defer release()

	carpool, err := s.load(ctx, carpoolID, riderID)
	if err != nil {
		return nil, err
	}

	if !carpool.IsDriver(requesterID) {
		return nil, ErrForbidden
	}

	if carpool.MembershipOf(riderID) != domain.MembershipPending {
		return nil, ErrNotPending
	}

	if carpool.AvailableSeats() <= 0 {
		return nil, ErrCapacityExceeded
	}

	if err := s.carpoolRepo.PromoteToConfirmed(ctx, carpoolID, riderID); err != nil {
		return nil, err
	}

	s.invalidate(ctx, carpoolID)
	return s.carpoolRepo.GetByID(ctx, carpoolID)
}

// DeclineRider removes a pending passenger without admitting them.
func (s *RosterService) DeclineRider(ctx context.Context, carpoolID, requesterID, riderID string) (*domain.Carpool, error) {
	release, err := s.lockCarpool(ctx, carpoolID)
	if err != nil {
		return nil, err
	}
	defer release()

	carpool, err := s.load(ctx, carpoolID, riderID)
	if err != nil {
		return nil, err
	}

	if !carpool.IsDriver(requesterID) {
		return nil, ErrForbidden
	}

	if carpool.MembershipOf(riderID) != domain.MembershipPending {
		return nil, ErrNotPending
	}

	if err := s.carpoolRepo.RemovePending(ctx, carpoolID, riderID); err != nil {
		return nil, err
	}

	s.invalidate(ctx, carpoolID)
	return s.carpoolRepo.GetByID(ctx, carpoolID)
}

// DeleteRide destroys the carpool and every membership row it owns. Only the
// driver may delete a ride; all pending and confirmed passengers are
// released in the same cascade.
func (s *RosterService) DeleteRide(ctx context.Context, carpoolID, requesterID string) error {
	release, err := s.lockCarpool(ctx, carpoolID)
	if err != nil {
		return err
	}
	defer release()

	carpool, err := s.load(ctx, carpoolID, requesterID)
	if err != nil {
		return err
	}

	if !carpool.IsDriver(requesterID) {
		return ErrForbidden
	}

	if err := s.carpoolRepo.Delete(ctx, carpoolID); err != nil {
		return err
	}

	s.invalidate(ctx, carpoolID)
	return nil
}
