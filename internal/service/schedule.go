package service

import (
	"context"
	"time"

	"carpool/internal/repository"
)

// conflictWindow is the minimum spacing between two commitments of the same
// user. Two rides strictly closer than this conflict.
const conflictWindow = 2 * time.Hour

// ScheduleService answers time-conflict queries over a user's commitments.
type ScheduleService struct {
	carpoolRepo repository.CarpoolRepository
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(carpoolRepo repository.CarpoolRepository) *ScheduleService {
	return &ScheduleService{carpoolRepo: carpoolRepo}
}

// IsAvailable reports whether the user is free to commit to a ride starting
// at t. A commitment is any carpool where the user is the driver or a
// confirmed passenger; pending requests do not count. The user is unavailable
// if any commitment starts strictly within the conflict window of t.
func (s *ScheduleService) IsAvailable(ctx context.Context, userID string, t time.Time) (bool, error) {
	commitments, err := s.carpoolRepo.GetByParticipant(ctx, userID)
	if err != nil {
		return false, err
	}

	for _, carpool := range commitments {
		diff := carpool.StartTime.Sub(t)
		if diff < 0 {
			diff = -diff
		}
		if diff < conflictWindow {
			return false, nil
		}
	}
	return true, nil
}
