package repository

import (
	"context"

	"carpool/internal/domain"
)

// AssetRepository defines the persistence operations for uploaded binaries.
type AssetRepository interface {
	// Create persists a new asset.
	Create(ctx context.Context, asset *domain.Asset) error

	// GetByID retrieves an asset by ID.
	GetByID(ctx context.Context, id string) (*domain.Asset, error)
}
