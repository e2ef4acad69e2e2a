package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/repository"
	"carpool/internal/service"
)

// CarpoolHandler handles HTTP requests for the ride catalog.
type CarpoolHandler struct {
	catalog  *service.CatalogService
	roster   *service.RosterService
	userRepo repository.UserRepository
}

// NewCarpoolHandler creates a new CarpoolHandler.
func NewCarpoolHandler(
	catalog *service.CatalogService,
	roster *service.RosterService,
	userRepo repository.UserRepository,
) *CarpoolHandler {
	return &CarpoolHandler{
		catalog:  catalog,
		roster:   roster,
		userRepo: userRepo,
	}
}

// CreateCarpoolRequest is the HTTP request body for creating a carpool.
type CreateCarpoolRequest struct {
	DriverID      string  `json:"driver_id"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	MeetingPoint  string  `json:"meeting_point"`
	StartTime     string  `json:"start_time"` // "2006-01-02 15:04:05"
	TotalCapacity int     `json:"total_capacity"`
	Price         float64 `json:"price"`
	Vehicle       string  `json:"vehicle,omitempty"`
}

// DeleteCarpoolRequest is the HTTP request body for deleting a carpool.
type DeleteCarpoolRequest struct {
	RequesterID string `json:"requester_id"`
}

// Create handles POST /v1/carpools
func (h *CarpoolHandler) Create(c *gin.Context) {
	var req CreateCarpoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	carpool, err := h.catalog.Create(c.Request.Context(), service.CreateCarpoolRequest{
		DriverID:      req.DriverID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		MeetingPoint:  req.MeetingPoint,
		StartTime:     req.StartTime,
		TotalCapacity: req.TotalCapacity,
		Price:         req.Price,
		Vehicle:       req.Vehicle,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, newCarpoolResponse(c.Request.Context(), h.userRepo, carpool))
}

// Search handles GET /v1/carpools
// Filters come in as query parameters; absent filters impose no constraint.
func (h *CarpoolHandler) Search(c *gin.Context) {
	carpools, err := h.catalog.Search(c.Request.Context(), service.SearchRequest{
		Destination: c.Query("destination"),
		Origin:      c.Query("origin"),
		MinTime:     c.Query("min_time"),
		MaxTime:     c.Query("max_time"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]CarpoolResponse, 0, len(carpools))
	for _, carpool := range carpools {
		response = append(response, newCarpoolResponse(c.Request.Context(), h.userRepo, carpool))
	}

	c.JSON(http.StatusOK, gin.H{"carpools": response})
}

// Get handles GET /v1/carpools/:id
func (h *CarpoolHandler) Get(c *gin.Context) {
	carpool, err := h.catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newCarpoolResponse(c.Request.Context(), h.userRepo, carpool))
}

// Delete handles DELETE /v1/carpools/:id
// Only the driver may delete a ride; the roster cascade releases every
// pending and confirmed passenger.
func (h *CarpoolHandler) Delete(c *gin.Context) {
	var req DeleteCarpoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.roster.DeleteRide(c.Request.Context(), c.Param("id"), req.RequesterID); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}
