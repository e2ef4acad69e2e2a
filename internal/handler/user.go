package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/service"
)

// UserHandler handles HTTP requests for users and authentication.
type UserHandler struct {
	directory *service.DirectoryService
	userRepo  repository.UserRepository
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(directory *service.DirectoryService, userRepo repository.UserRepository) *UserHandler {
	return &UserHandler{directory: directory, userRepo: userRepo}
}

// RegisterRequest is the HTTP request body for user registration.
type RegisterRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the HTTP request body for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse is the HTTP response for user data. Passwords never leave
// the boundary.
type UserResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}

// UserRidesResponse is the HTTP response for a user with ride back-references.
type UserRidesResponse struct {
	UserResponse
	Hosted    []CarpoolResponse `json:"hosted_carpools"`
	Confirmed []CarpoolResponse `json:"joined_carpools"`
	Pending   []CarpoolResponse `json:"pending_carpools"`
}

func userResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Email:    u.Email,
		Phone:    u.Phone,
	}
}

// Register handles POST /v1/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.directory.Register(c.Request.Context(), service.RegisterRequest{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, userResponse(user))
}

// GetAll handles GET /v1/users
func (h *UserHandler) GetAll(c *gin.Context) {
	users, err := h.directory.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]UserResponse, 0, len(users))
	for _, u := range users {
		response = append(response, userResponse(u))
	}

	c.JSON(http.StatusOK, gin.H{"users": response})
}

// Get handles GET /v1/users/:id
// The response includes the user's hosted, joined and pending rides.
func (h *UserHandler) Get(c *gin.Context) {
	userID := c.Param("id")

	user, err := h.directory.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	rides, err := h.directory.Rides(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	response := UserRidesResponse{
		UserResponse: userResponse(user),
		Hosted:       []CarpoolResponse{},
		Confirmed:    []CarpoolResponse{},
		Pending:      []CarpoolResponse{},
	}
	for _, r := range rides.Hosted {
		response.Hosted = append(response.Hosted, newCarpoolResponse(c.Request.Context(), h.userRepo, r))
	}
	for _, r := range rides.Confirmed {
		response.Confirmed = append(response.Confirmed, newCarpoolResponse(c.Request.Context(), h.userRepo, r))
	}
	for _, r := range rides.Pending {
		response.Pending = append(response.Pending, newCarpoolResponse(c.Request.Context(), h.userRepo, r))
	}

	respondJSON(c, http.StatusOK, response)
}

// Login handles POST /v1/auth/login
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}
	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
		return
	}

	user, err := h.directory.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"message": "successfully logged in",
		"user":    userResponse(user),
	})
}
