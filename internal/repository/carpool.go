package repository

import (
	"context"
	"time"

	"carpool/internal/domain"
)

// SearchFilter narrows a carpool search. Zero-valued fields impose no
// constraint; present text filters are case-sensitive substring matches and
// time bounds are inclusive.
type SearchFilter struct {
	Destination string
	Origin      string
	MinTime     *time.Time
	MaxTime     *time.Time
}

// CarpoolRepository defines the persistence operations for carpools and the
// membership sets they own.
type CarpoolRepository interface {
	// Create persists a new carpool with empty confirmed/pending sets.
	Create(ctx context.Context, carpool *domain.Carpool) error

	// GetByID retrieves a carpool, including its membership sets.
	GetByID(ctx context.Context, id string) (*domain.Carpool, error)

	// GetAll retrieves all carpools.
	GetAll(ctx context.Context) ([]*domain.Carpool, error)

	// Search retrieves carpools matching every present filter.
	Search(ctx context.Context, filter SearchFilter) ([]*domain.Carpool, error)

	// Delete removes a carpool and all of its membership rows.
	Delete(ctx context.Context, id string) error

	// AddPending records a join request awaiting driver approval.
	AddPending(ctx context.Context, carpoolID, userID string) error

	// RemovePending withdraws or declines a pending request.
	RemovePending(ctx context.Context, carpoolID, userID string) error

	// RemoveConfirmed frees a confirmed passenger's seat.
	RemoveConfirmed(ctx context.Context, carpoolID, userID string) error

	// PromoteToConfirmed atomically moves a user from the pending set to the
	// confirmed set. The two writes are never observable separately.
	PromoteToConfirmed(ctx context.Context, carpoolID, userID string) error

	// GetByParticipant retrieves every carpool where the user is the driver or
	// a confirmed passenger. Pending-only involvement is excluded.
	GetByParticipant(ctx context.Context, userID string) ([]*domain.Carpool, error)

	// GetUserRides retrieves the user's hosted/confirmed/pending back-references.
	GetUserRides(ctx context.Context, userID string) (*domain.UserRides, error)
}
