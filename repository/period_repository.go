package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sportsbook/database"
	"sportsbook/models"

	"github.com/jackc/pgx/v5"
)

const periodColumns = `week, lock_time, is_locked, is_settled, created_at, updated_at`

// PeriodRepository implements the PeriodRepository interface
type PeriodRepository struct {
	q queryable
}

// NewPeriodRepository creates a new period repository
func NewPeriodRepository(db *database.DB) *PeriodRepository {
	return &PeriodRepository{q: db.Pool}
}

// newPeriodRepositoryWithTx creates a new period repository with a transaction
func newPeriodRepositoryWithTx(tx queryable) *PeriodRepository {
	return &PeriodRepository{q: tx}
}

func scanPeriod(row pgx.Row) (*models.Period, error) {
	var period models.Period
	err := row.Scan(
		&period.Week,
		&period.LockTime,
		&period.IsLocked,
		&period.IsSettled,
		&period.CreatedAt,
		&period.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	period.LockTime = period.LockTime.UTC()
	return &period, nil
}

// queryPeriod runs a single-row period statement, mapping no rows to nil
func (r *PeriodRepository) queryPeriod(ctx context.Context, action string, week int, query string, args ...any) (*models.Period, error) {
	period, err := scanPeriod(r.q.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to %s period %d: %w", action, week, err)
	}
	return period, nil
}

// GetByWeek retrieves a period
func (r *PeriodRepository) GetByWeek(ctx context.Context, week int) (*models.Period, error) {
	return r.queryPeriod(ctx, "get", week, `SELECT `+periodColumns+` FROM periods WHERE week = $1`, week)
}

// LockIfExpired flips is_locked once lock_time has passed. Concurrent callers
// converge: exactly one of them sees true.
func (r *PeriodRepository) LockIfExpired(ctx context.Context, week int, now time.Time) (bool, error) {
	query := `
		UPDATE periods
		SET is_locked = TRUE, updated_at = NOW()
		WHERE week = $1 AND NOT is_locked AND lock_time <= $2
	`

	tag, err := r.q.Exec(ctx, query, week, now)
	if err != nil {
		return false, fmt.Errorf("failed to lock expired period %d: %w", week, err)
	}
	return tag.RowsAffected() == 1, nil
}

// Upsert sets the lock time of a week and reopens it. is_settled is left alone.
func (r *PeriodRepository) Upsert(ctx context.Context, week int, lockTime time.Time) (*models.Period, error) {
	query := `
		INSERT INTO periods (week, lock_time, is_locked)
		VALUES ($1, $2, FALSE)
		ON CONFLICT (week) DO UPDATE
		SET lock_time = EXCLUDED.lock_time, is_locked = FALSE, updated_at = NOW()
		RETURNING ` + periodColumns

	period, err := scanPeriod(r.q.QueryRow(ctx, query, week, lockTime))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert period %d: %w", week, err)
	}
	return period, nil
}

// Lock sets is_locked
func (r *PeriodRepository) Lock(ctx context.Context, week int) (*models.Period, error) {
	return r.queryPeriod(ctx, "lock", week, `
		UPDATE periods
		SET is_locked = TRUE, updated_at = NOW()
		WHERE week = $1
		RETURNING `+periodColumns, week)
}

// Unlock clears is_locked and moves the lock time
func (r *PeriodRepository) Unlock(ctx context.Context, week int, lockTime time.Time) (*models.Period, error) {
	return r.queryPeriod(ctx, "unlock", week, `
		UPDATE periods
		SET is_locked = FALSE, lock_time = $2, updated_at = NOW()
		WHERE week = $1
		RETURNING `+periodColumns, week, lockTime)
}

// MarkSettled sets is_settled and is_locked
func (r *PeriodRepository) MarkSettled(ctx context.Context, week int) (*models.Period, error) {
	return r.queryPeriod(ctx, "settle", week, `
		UPDATE periods
		SET is_settled = TRUE, is_locked = TRUE, updated_at = NOW()
		WHERE week = $1
		RETURNING `+periodColumns, week)
}

// GetCurrentWeek returns the highest unsettled week
func (r *PeriodRepository) GetCurrentWeek(ctx context.Context) (int, bool, error) {
	var week int
	err := r.q.QueryRow(ctx, `SELECT week FROM periods WHERE NOT is_settled ORDER BY week DESC LIMIT 1`).Scan(&week)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get current week: %w", err)
	}
	return week, true, nil
}

// List returns all periods, newest week first
func (r *PeriodRepository) List(ctx context.Context) ([]*models.Period, error) {
	rows, err := r.q.Query(ctx, `SELECT `+periodColumns+` FROM periods ORDER BY week DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	defer rows.Close()

	var periods []*models.Period
	for rows.Next() {
		period, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period: %w", err)
		}
		periods = append(periods, period)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate periods: %w", err)
	}
	return periods, nil
}
