package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateUsername is returned when the username is already registered.
	ErrDuplicateUsername = errors.New("username already registered")

	// ErrDuplicateEmail is returned when the email is already registered.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrStorageUnavailable wraps opaque persistence failures (I/O, connection
	// loss). Callers surface it directly; the core never retries.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
