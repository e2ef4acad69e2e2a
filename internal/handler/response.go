package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"carpool/internal/domain"
	"carpool/internal/repository"
	"carpool/internal/service"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	c.JSON(code, ErrorResponse{Error: err.Error()})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrMissingName),
		errors.Is(err, service.ErrMissingUsername),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrMissingOrigin),
		errors.Is(err, service.ErrMissingDestination),
		errors.Is(err, service.ErrMissingMeetingPoint),
		errors.Is(err, service.ErrInvalidCapacity),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidStartTime),
		errors.Is(err, service.ErrStartTimeNotFuture),
		errors.Is(err, service.ErrInvalidTimeFilter),
		errors.Is(err, service.ErrInvalidAssetData):
		return http.StatusBadRequest

	// Credential mismatch
	case errors.Is(err, service.ErrInvalidCredential):
		return http.StatusUnauthorized

	// Driver-only actions
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden

	// Roster state and uniqueness conflicts
	case errors.Is(err, repository.ErrDuplicateUsername),
		errors.Is(err, repository.ErrDuplicateEmail),
		errors.Is(err, service.ErrCapacityExceeded),
		errors.Is(err, service.ErrAlreadyRider),
		errors.Is(err, service.ErrAlreadyPending),
		errors.Is(err, service.ErrNotPending),
		errors.Is(err, service.ErrNotRider),
		errors.Is(err, service.ErrScheduleConflict):
		return http.StatusConflict

	// Persistence faults pass through opaquely
	case errors.Is(err, repository.ErrStorageUnavailable):
		return http.StatusServiceUnavailable

	// Default to internal server error
	default:
		return http.StatusInternalServerError
	}
}

// UserSummary is the password-free view of a user embedded in responses.
type UserSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// CarpoolResponse is the serialized form of a carpool and its roster.
type CarpoolResponse struct {
	ID             string        `json:"id"`
	Origin         string        `json:"origin"`
	Destination    string        `json:"destination"`
	MeetingPoint   string        `json:"meeting_point"`
	StartTime      string        `json:"start_time"`
	TotalCapacity  int           `json:"total_capacity"`
	AvailableSeats int           `json:"available_seats"`
	Price          float64       `json:"price"`
	Vehicle        string        `json:"vehicle,omitempty"`
	Driver         UserSummary   `json:"driver"`
	Confirmed      []UserSummary `json:"confirmed_passengers"`
	Pending        []UserSummary `json:"pending_passengers"`
}

func userSummary(u *domain.User) UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Username: u.Username}
}

// newCarpoolResponse resolves the roster's user references into summaries.
// Members that fail to resolve are skipped rather than failing the response.
func newCarpoolResponse(ctx context.Context, users repository.UserRepository, carpool *domain.Carpool) CarpoolResponse {
	resp := CarpoolResponse{
		ID:             carpool.ID,
		Origin:         carpool.Origin,
		Destination:    carpool.Destination,
		MeetingPoint:   carpool.MeetingPoint,
		StartTime:      carpool.StartTime.Format(domain.StartTimeLayout),
		TotalCapacity:  carpool.TotalCapacity,
		AvailableSeats: carpool.AvailableSeats(),
		Price:          carpool.Price,
		Vehicle:        carpool.Vehicle,
		Confirmed:      []UserSummary{},
		Pending:        []UserSummary{},
	}

	if driver, err := users.GetByID(ctx, carpool.DriverID); err == nil {
		resp.Driver = userSummary(driver)
	} else {
		resp.Driver = UserSummary{ID: carpool.DriverID}
	}

	for _, id := range carpool.Confirmed {
		if u, err := users.GetByID(ctx, id); err == nil {
			resp.Confirmed = append(resp.Confirmed, userSummary(u))
		}
	}
	for _, id := range carpool.Pending {
		if u, err := users.GetByID(ctx, id); err == nil {
			resp.Pending = append(resp.Pending, userSummary(u))
		}
	}
	return resp
}
