package service

import "errors"

var (
	// ErrMissingName is returned when the display name is empty.
	ErrMissingName = errors.New("name is required")

	// ErrMissingUsername is returned when the username is empty.
	ErrMissingUsername = errors.New("username is required")

	// ErrInvalidEmail is returned when the email fails syntax validation.
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidCredential is returned when the presented password does not match.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrMissingOrigin is returned when the departure location is empty.
	ErrMissingOrigin = errors.New("origin is required")

	// ErrMissingDestination is returned when the destination is empty.
	ErrMissingDestination = errors.New("destination is required")

	// ErrMissingMeetingPoint is returned when the meeting point is empty.
	ErrMissingMeetingPoint = errors.New("meeting point is required")

	// ErrInvalidCapacity is returned when total capacity leaves no passenger seat.
	ErrInvalidCapacity = errors.New("total capacity must be at least 2")

	// ErrInvalidPrice is returned when the price is negative.
	ErrInvalidPrice = errors.New("price must not be negative")

	// ErrInvalidStartTime is returned when the start time does not parse.
	ErrInvalidStartTime = errors.New("invalid start time format")

	// ErrStartTimeNotFuture is returned when the start time is not in the future.
	ErrStartTimeNotFuture = errors.New("start time must be in the future")

	// ErrInvalidTimeFilter is returned when a search time bound does not parse.
	ErrInvalidTimeFilter = errors.New("invalid time filter format")

	// ErrCapacityExceeded is returned when no passenger seats remain.
	ErrCapacityExceeded = errors.New("carpool is full")

	// ErrAlreadyRider is returned when the user already rides this carpool,
	// as driver or confirmed passenger.
	ErrAlreadyRider = errors.New("user is already a rider of this carpool")

	// ErrAlreadyPending is returned when the user already has a pending request.
	ErrAlreadyPending = errors.New("user already requested to join this carpool")

	// ErrNotPending is returned when the user has no pending request.
	ErrNotPending = errors.New("user has no pending request for this carpool")

	// ErrNotRider is returned when the user is not a confirmed passenger.
	ErrNotRider = errors.New("user is not a rider of this carpool")

	// ErrScheduleConflict is returned when the user has another commitment
	// within two hours of the requested start time.
	ErrScheduleConflict = errors.New("schedule conflict with an existing ride")

	// ErrForbidden is returned when a non-driver attempts a driver-only action.
	ErrForbidden = errors.New("only the driver may perform this action")

	// ErrInvalidAssetData is returned when an upload payload is not valid base64.
	ErrInvalidAssetData = errors.New("invalid asset payload")
)
