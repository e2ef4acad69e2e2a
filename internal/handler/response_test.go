package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"carpool/internal/repository"
	"carpool/internal/service"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"missing origin", service.ErrMissingOrigin, http.StatusBadRequest},
		{"invalid asset data", service.ErrInvalidAssetData, http.StatusBadRequest},
		{"invalid credential", service.ErrInvalidCredential, http.StatusUnauthorized},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"duplicate email", repository.ErrDuplicateEmail, http.StatusConflict},
		{"capacity exceeded", service.ErrCapacityExceeded, http.StatusConflict},
		{"schedule conflict", service.ErrScheduleConflict, http.StatusConflict},
		{"storage unavailable", repository.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{"wrapped storage unavailable", fmt.Errorf("%w: connection refused", repository.ErrStorageUnavailable), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}
