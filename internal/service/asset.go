package service

import (
	"context"
	"encoding/base64"
	"strings"
	"time"

	"github.com/google/uuid"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// AssetService stores uploaded binaries and hands back retrievable URLs. It
// is entirely decoupled from the roster logic.
type AssetService struct {
	assetRepo repository.AssetRepository
	baseURL   string
}

// NewAssetService creates a new AssetService. baseURL is the externally
// reachable server root, e.g. "http://localhost:8080".
func NewAssetService(assetRepo repository.AssetRepository, baseURL string) *AssetService {
	return &AssetService{
		assetRepo: assetRepo,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// UploadResult contains the stored asset's identity and its URL.
type UploadResult struct {
	ID  string
	URL string
}

// Upload decodes a base64 payload, persists it and returns a URL the asset
// can be fetched from.
func (s *AssetService) Upload(ctx context.Context, data, contentType string) (*UploadResult, error) {
	// Tolerate data URI prefixes like "data:image/png;base64,".
	if idx := strings.Index(data, ","); idx != -1 && strings.Contains(data[:idx], "base64") {
		data = data[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, ErrInvalidAssetData
	}
	if len(raw) == 0 {
		return nil, ErrInvalidAssetData
	}

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	asset := &domain.Asset{
		ID:          uuid.New().String(),
		ContentType: contentType,
		Data:        raw,
		CreatedAt:   time.Now(),
	}

	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return nil, err
	}

	return &UploadResult{
		ID:  asset.ID,
		URL: s.baseURL + "/v1/assets/" + asset.ID,
	}, nil
}

// Get retrieves a stored asset.
func (s *AssetService) Get(ctx context.Context, id string) (*domain.Asset, error) {
	return s.assetRepo.GetByID(ctx, id)
}
