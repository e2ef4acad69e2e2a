package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"carpool/internal/domain"
	"carpool/internal/repository"
)

// CarpoolRepository is a PostgreSQL implementation of repository.CarpoolRepository.
// Membership lives in two join tables (carpool_confirmed, carpool_pending)
// owned by this repository; both carry a composite primary key on
// (carpool_id, user_id) so a user can never appear twice in the same set.
type CarpoolRepository struct {
	db *sql.DB
}

// NewCarpoolRepository creates a new PostgreSQL carpool repository.
func NewCarpoolRepository(db *sql.DB) *CarpoolRepository {
	return &CarpoolRepository{db: db}
}

const carpoolColumns = `id, origin, destination, meeting_point, start_time, total_capacity, price, vehicle, driver_id, created_at`

// Create persists a new carpool with empty membership sets.
func (r *CarpoolRepository) Create(ctx context.Context, carpool *domain.Carpool) error {
	query := `
		INSERT INTO carpools (` + carpoolColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.db.ExecContext(ctx, query,
		carpool.ID,
		carpool.Origin,
		carpool.Destination,
		carpool.MeetingPoint,
		carpool.StartTime,
		carpool.TotalCapacity,
		carpool.Price,
		carpool.Vehicle,
		carpool.DriverID,
		carpool.CreatedAt,
	)
	return storageErr(err)
}

// GetByID retrieves a carpool, including its membership sets.
func (r *CarpoolRepository) GetByID(ctx context.Context, id string) (*domain.Carpool, error) {
	query := `SELECT ` + carpoolColumns + ` FROM carpools WHERE id = $1`

	carpool, err := scanCarpool(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, storageErr(err)
	}

	if err := r.loadMembers(ctx, carpool); err != nil {
		return nil, err
	}
	return carpool, nil
}

// GetAll retrieves all carpools.
func (r *CarpoolRepository) GetAll(ctx context.Context) ([]*domain.Carpool, error) {
	return r.Search(ctx, repository.SearchFilter{})
}

// Search retrieves carpools matching every present filter. Text filters are
// case-sensitive substring matches; time bounds are inclusive.
func (r *CarpoolRepository) Search(ctx context.Context, filter repository.SearchFilter) ([]*domain.Carpool, error) {
	query := `SELECT ` + carpoolColumns + ` FROM carpools WHERE 1=1`
	var args []any

	if filter.Destination != "" {
		args = append(args, filter.Destination)
		query += fmt.Sprintf(" AND destination LIKE '%%' || $%d || '%%'", len(args))
	}
	if filter.Origin != "" {
		args = append(args, filter.Origin)
		query += fmt.Sprintf(" AND origin LIKE '%%' || $%d || '%%'", len(args))
	}
	if filter.MinTime != nil {
		args = append(args, *filter.MinTime)
		query += fmt.Sprintf(" AND start_time >= $%d", len(args))
	}
	if filter.MaxTime != nil {
		args = append(args, *filter.MaxTime)
		query += fmt.Sprintf(" AND start_time <= $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var carpools []*domain.Carpool
	for rows.Next() {
		carpool, err := scanCarpool(rows)
		if err != nil {
			return nil, storageErr(err)
		}
		carpools = append(carpools, carpool)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}

	for _, carpool := range carpools {
		if err := r.loadMembers(ctx, carpool); err != nil {
			return nil, err
		}
	}
	return carpools, nil
}

// Delete removes a carpool and cascades over its membership rows.
func (r *CarpoolRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback()

	for _, table := range []string{"carpool_pending", "carpool_confirmed"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE carpool_id = $1`, id); err != nil {
			return storageErr(err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM carpools WHERE id = $1`, id)
	if err != nil {
		return storageErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storageErr(err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	return storageErr(tx.Commit())
}

// AddPending records a join request awaiting driver approval.
func (r *CarpoolRepository) AddPending(ctx context.Context, carpoolID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO carpool_pending (carpool_id, user_id) VALUES ($1, $2)`,
		carpoolID, userID)
	return storageErr(err)
}

// RemovePending withdraws or declines a pending request.
func (r *CarpoolRepository) RemovePending(ctx context.Context, carpoolID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM carpool_pending WHERE carpool_id = $1 AND user_id = $2`,
		carpoolID, userID)
	return storageErr(err)
}

// RemoveConfirmed frees a confirmed passenger's seat.
func (r *CarpoolRepository) RemoveConfirmed(ctx context.Context, carpoolID, userID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM carpool_confirmed WHERE carpool_id = $1 AND user_id = $2`,
		carpoolID, userID)
	return storageErr(err)
}

// PromoteToConfirmed atomically moves a user from pending to confirmed using
// a transaction, so the two set mutations are never observable separately.
func (r *CarpoolRepository) PromoteToConfirmed(ctx context.Context, carpoolID, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr(err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM carpool_pending WHERE carpool_id = $1 AND user_id = $2`,
		carpoolID, userID)
	if err != nil {
		return storageErr(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return storageErr(err)
	}
	if affected == 0 {
		return repository.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO carpool_confirmed (carpool_id, user_id) VALUES ($1, $2)`,
		carpoolID, userID); err != nil {
		return storageErr(err)
	}

	return storageErr(tx.Commit())
}

// GetByParticipant retrieves every carpool where the user drives or rides as
// a confirmed passenger. Pending-only involvement does not count.
func (r *CarpoolRepository) GetByParticipant(ctx context.Context, userID string) ([]*domain.Carpool, error) {
	query := `
		SELECT ` + carpoolColumns + ` FROM carpools WHERE driver_id = $1
		UNION
		SELECT c.id, c.origin, c.destination, c.meeting_point, c.start_time, c.total_capacity, c.price, c.vehicle, c.driver_id, c.created_at
		FROM carpools c
		JOIN carpool_confirmed m ON m.carpool_id = c.id
		WHERE m.user_id = $1
	`
	return r.queryCarpools(ctx, query, userID)
}

// GetUserRides retrieves the user's hosted/confirmed/pending back-references.
func (r *CarpoolRepository) GetUserRides(ctx context.Context, userID string) (*domain.UserRides, error) {
	hosted, err := r.queryCarpools(ctx,
		`SELECT `+carpoolColumns+` FROM carpools WHERE driver_id = $1 ORDER BY start_time`, userID)
	if err != nil {
		return nil, err
	}

	confirmed, err := r.memberRides(ctx, "carpool_confirmed", userID)
	if err != nil {
		return nil, err
	}

	pending, err := r.memberRides(ctx, "carpool_pending", userID)
	if err != nil {
		return nil, err
	}

	return &domain.UserRides{Hosted: hosted, Confirmed: confirmed, Pending: pending}, nil
}

func (r *CarpoolRepository) memberRides(ctx context.Context, table, userID string) ([]*domain.Carpool, error) {
	query := `
		SELECT c.id, c.origin, c.destination, c.meeting_point, c.start_time, c.total_capacity, c.price, c.vehicle, c.driver_id, c.created_at
		FROM carpools c
		JOIN ` + table + ` m ON m.carpool_id = c.id
		WHERE m.user_id = $1
		ORDER BY c.start_time
	`
	return r.queryCarpools(ctx, query, userID)
}

func (r *CarpoolRepository) queryCarpools(ctx context.Context, query string, args ...any) ([]*domain.Carpool, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var carpools []*domain.Carpool
	for rows.Next() {
		carpool, err := scanCarpool(rows)
		if err != nil {
			return nil, storageErr(err)
		}
		carpools = append(carpools, carpool)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr(err)
	}

	for _, carpool := range carpools {
		if err := r.loadMembers(ctx, carpool); err != nil {
			return nil, err
		}
	}
	return carpools, nil
}

// loadMembers populates the confirmed and pending sets.
func (r *CarpoolRepository) loadMembers(ctx context.Context, carpool *domain.Carpool) error {
	var err error
	carpool.Confirmed, err = r.memberIDs(ctx, "carpool_confirmed", carpool.ID)
	if err != nil {
		return err
	}
	carpool.Pending, err = r.memberIDs(ctx, "carpool_pending", carpool.ID)
	return err
}

func (r *CarpoolRepository) memberIDs(ctx context.Context, table, carpoolID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id FROM `+table+` WHERE carpool_id = $1 ORDER BY user_id`, carpoolID)
	if err != nil {
		return nil, storageErr(err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, storageErr(err)
		}
		ids = append(ids, id)
	}
	return ids, storageErr(rows.Err())
}

func scanCarpool(s scanner) (*domain.Carpool, error) {
	var carpool domain.Carpool
	if err := s.Scan(
		&carpool.ID,
		&carpool.Origin,
		&carpool.Destination,
		&carpool.MeetingPoint,
		&carpool.StartTime,
		&carpool.TotalCapacity,
		&carpool.Price,
		&carpool.Vehicle,
		&carpool.DriverID,
		&carpool.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &carpool, nil
}
