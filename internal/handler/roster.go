package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/service"
)

// RosterHandler handles HTTP requests that mutate a carpool's roster.
type RosterHandler struct {
	roster   *service.RosterService
	userRepo repository.UserRepository
}

// NewRosterHandler creates a new RosterHandler.
func NewRosterHandler(roster *service.RosterService, userRepo repository.UserRepository) *RosterHandler {
	return &RosterHandler{roster: roster, userRepo: userRepo}
}

// MemberRequest is the HTTP request body for join/leave/cancel operations.
type MemberRequest struct {
	UserID string `json:"user_id"`
}

// DecisionRequest is the HTTP request body for accept/decline operations.
// RequesterID must be the ride's driver.
type DecisionRequest struct {
	RequesterID string `json:"requester_id"`
	RiderID     string `json:"rider_id"`
}

// Join handles POST /v1/carpools/:id/join
func (h *RosterHandler) Join(c *gin.Context) {
	h.memberOp(c, h.roster.RequestJoin)
}

// Leave handles POST /v1/carpools/:id/leave
func (h *RosterHandler) Leave(c *gin.Context) {
	h.memberOp(c, h.roster.Leave)
}

// CancelPending handles POST /v1/carpools/:id/cancel
func (h *RosterHandler) CancelPending(c *gin.Context) {
	h.memberOp(c, h.roster.CancelPending)
}

// Accept handles POST /v1/carpools/:id/accept
func (h *RosterHandler) Accept(c *gin.Context) {
	h.decisionOp(c, h.roster.AcceptRider)
}

// Decline handles POST /v1/carpools/:id/decline
func (h *RosterHandler) Decline(c *gin.Context) {
	h.decisionOp(c, h.roster.DeclineRider)
}

// memberOp runs a single-user roster transition and serializes the result.
func (h *RosterHandler) memberOp(c *gin.Context, op func(ctx context.Context, carpoolID, userID string) (*domain.Carpool, error)) {
	var req MemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "user_id is required"})
		return
	}

	carpool, err := op(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newCarpoolResponse(c.Request.Context(), h.userRepo, carpool))
}

// decisionOp runs a driver-gated transition over a pending rider.
func (h *RosterHandler) decisionOp(c *gin.Context, op func(ctx context.Context, carpoolID, requesterID, riderID string) (*domain.Carpool, error)) {
	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.RequesterID == "" || req.RiderID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "requester_id and rider_id are required"})
		return
	}

	carpool, err := op(c.Request.Context(), c.Param("id"), req.RequesterID, req.RiderID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, newCarpoolResponse(c.Request.Context(), h.userRepo, carpool))
}
