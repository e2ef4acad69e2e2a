package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/service"
)

// AssetHandler handles HTTP requests for binary uploads.
type AssetHandler struct {
	assets *service.AssetService
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assets *service.AssetService) *AssetHandler {
	return &AssetHandler{assets: assets}
}

// UploadRequest is the HTTP request body for uploading an asset.
type UploadRequest struct {
	Data        string `json:"data"` // base64 payload, optionally a data URI
	ContentType string `json:"content_type,omitempty"`
}

// UploadResponse is the HTTP response for a stored asset.
type UploadResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Upload handles POST /v1/assets
func (h *AssetHandler) Upload(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.assets.Upload(c.Request.Context(), req.Data, req.ContentType)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, UploadResponse{ID: result.ID, URL: result.URL})
}

// Get handles GET /v1/assets/:id
func (h *AssetHandler) Get(c *gin.Context) {
	asset, err := h.assets.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, asset.ContentType, asset.Data)
}
