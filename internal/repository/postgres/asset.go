package postgres

import (
	"context"
	"database/sql"
	"errors"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// AssetRepository implements repository.AssetRepository using PostgreSQL.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// Create persists a new asset.
func (r *AssetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	query := `INSERT INTO assets (id, content_type, data, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, asset.ID, asset.ContentType, asset.Data, asset.CreatedAt)
	return storageErr(err)
}

// GetByID retrieves an asset by ID.
func (r *AssetRepository) GetByID(ctx context.Context, id string) (*domain.Asset, error) {
	query := `SELECT id, content_type, data, created_at FROM assets WHERE id = $1`

	var asset domain.Asset
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&asset.ID,
		&asset.ContentType,
		&asset.Data,
		&asset.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}
	return &asset, nil
}
