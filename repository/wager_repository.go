package repository

import (
	"context"
	"errors"
	"fmt"

	"sportsbook/database"
	"sportsbook/models"
	"sportsbook/service"

	"github.com/jackc/pgx/v5"
)

const wagerColumns = `
	id, user_id, week, bet_type, selection_description,
	amount::TEXT, odds, potential_win::TEXT, status, result::TEXT,
	placed_at, settled_at`

// WagerRepository implements the WagerRepository interface
type WagerRepository struct {
	q queryable
}

// NewWagerRepository creates a new wager repository
func NewWagerRepository(db *database.DB) *WagerRepository {
	return &WagerRepository{q: db.Pool}
}

// newWagerRepositoryWithTx creates a new wager repository with a transaction
func newWagerRepositoryWithTx(tx queryable) *WagerRepository {
	return &WagerRepository{q: tx}
}

func scanWager(row pgx.Row) (*models.Wager, error) {
	var wager models.Wager
	err := row.Scan(
		&wager.ID,
		&wager.UserID,
		&wager.Week,
		&wager.BetType,
		&wager.SelectionDescription,
		&wager.Amount,
		&wager.Odds,
		&wager.PotentialWin,
		&wager.Status,
		&wager.Result,
		&wager.PlacedAt,
		&wager.SettledAt,
	)
	if err != nil {
		return nil, err
	}
	return &wager, nil
}

func collectWagers(rows pgx.Rows) ([]*models.Wager, error) {
	defer rows.Close()

	var wagers []*models.Wager
	for rows.Next() {
		wager, err := scanWager(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wager: %w", err)
		}
		wagers = append(wagers, wager)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate wagers: %w", err)
	}
	return wagers, nil
}

// Create inserts a pending wager
func (r *WagerRepository) Create(ctx context.Context, wager *models.Wager) error {
	query := `
		INSERT INTO wagers (user_id, week, bet_type, selection_description, amount, odds, potential_win)
		VALUES ($1, $2, $3, $4, $5::NUMERIC, $6, $7::NUMERIC)
		RETURNING id, status, result::TEXT, placed_at
	`

	err := r.q.QueryRow(ctx, query,
		wager.UserID,
		wager.Week,
		wager.BetType,
		wager.SelectionDescription,
		wager.Amount.String(),
		wager.Odds,
		wager.PotentialWin.String(),
	).Scan(&wager.ID, &wager.Status, &wager.Result, &wager.PlacedAt)
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("user %d: %w", wager.UserID, service.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to create wager for user %d: %w", wager.UserID, err)
	}
	return nil
}

// GetByID retrieves a wager by ID
func (r *WagerRepository) GetByID(ctx context.Context, id int64) (*models.Wager, error) {
	wager, err := scanWager(r.q.QueryRow(ctx, `SELECT `+wagerColumns+` FROM wagers WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wager %d: %w", id, err)
	}
	return wager, nil
}

// GetByIDForUpdate retrieves a wager and holds a row lock until the transaction ends
func (r *WagerRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Wager, error) {
	wager, err := scanWager(r.q.QueryRow(ctx, `SELECT `+wagerColumns+` FROM wagers WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock wager %d: %w", id, err)
	}
	return wager, nil
}

// MarkSettled persists the outcome of a wager that is still pending
func (r *WagerRepository) MarkSettled(ctx context.Context, wager *models.Wager) error {
	query := `
		UPDATE wagers
		SET status = $1, result = $2::NUMERIC, settled_at = $3
		WHERE id = $4 AND status = 'pending'
	`

	tag, err := r.q.Exec(ctx, query, wager.Status, wager.Result.String(), wager.SettledAt, wager.ID)
	if err != nil {
		return fmt.Errorf("failed to settle wager %d: %w", wager.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wager %d: %w", wager.ID, service.ErrAlreadySettled)
	}
	return nil
}

// Delete removes a pending wager
func (r *WagerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM wagers WHERE id = $1 AND status = 'pending'`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wager %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending wager %d: %w", id, service.ErrNotFound)
	}
	return nil
}

// GetPendingByUser returns a user's unsettled wagers, newest first
func (r *WagerRepository) GetPendingByUser(ctx context.Context, userID int64) ([]*models.Wager, error) {
	query := `SELECT ` + wagerColumns + `
		FROM wagers
		WHERE user_id = $1 AND status = 'pending'
		ORDER BY placed_at DESC, id DESC`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending wagers for user %d: %w", userID, err)
	}
	return collectWagers(rows)
}

// GetByUser returns a user's wagers in any status, newest first
func (r *WagerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Wager, error) {
	query := `SELECT ` + wagerColumns + `
		FROM wagers
		WHERE user_id = $1
		ORDER BY placed_at DESC, id DESC
		LIMIT $2`

	rows, err := r.q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers for user %d: %w", userID, err)
	}
	return collectWagers(rows)
}

// GetByWeek returns a week's wagers in placement order, optionally filtered by status
func (r *WagerRepository) GetByWeek(ctx context.Context, week int, status *models.WagerStatus) ([]*models.Wager, error) {
	query := `SELECT ` + wagerColumns + `
		FROM wagers
		WHERE week = $1 AND ($2::TEXT IS NULL OR status = $2::TEXT)
		ORDER BY placed_at, id`

	var statusFilter *string
	if status != nil {
		s := string(*status)
		statusFilter = &s
	}

	rows, err := r.q.Query(ctx, query, week, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers for week %d: %w", week, err)
	}
	return collectWagers(rows)
}
