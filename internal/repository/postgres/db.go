package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"carpool/internal/repository"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// storageErr wraps opaque driver failures as ErrStorageUnavailable so that
// callers can distinguish infrastructure faults from domain conditions.
// Sentinel repository errors pass through untouched.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) ||
		errors.Is(err, repository.ErrDuplicateUsername) ||
		errors.Is(err, repository.ErrDuplicateEmail) {
		return err
	}
	return fmt.Errorf("%w: %v", repository.ErrStorageUnavailable, err)
}

// uniqueViolation returns the violated constraint name if err is a PostgreSQL
// unique-constraint violation, and "" otherwise.
func uniqueViolation(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return pqErr.Constraint
	}
	return ""
}
