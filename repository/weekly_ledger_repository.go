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

const weeklyLedgerColumns = `
	id, user_id, week,
	starting_balance::TEXT, ending_balance::TEXT, pnl::TEXT,
	active_bets_amount::TEXT, settled_pnl::TEXT,
	bets_placed, bets_won, created_at, updated_at`

// WeeklyLedgerRepository implements the WeeklyLedgerRepository interface
type WeeklyLedgerRepository struct {
	q queryable
}

// NewWeeklyLedgerRepository creates a new weekly ledger repository
func NewWeeklyLedgerRepository(db *database.DB) *WeeklyLedgerRepository {
	return &WeeklyLedgerRepository{q: db.Pool}
}

// newWeeklyLedgerRepositoryWithTx creates a new weekly ledger repository with a transaction
func newWeeklyLedgerRepositoryWithTx(tx queryable) *WeeklyLedgerRepository {
	return &WeeklyLedgerRepository{q: tx}
}

func scanWeeklyLedger(row pgx.Row) (*models.WeeklyLedger, error) {
	var ledger models.WeeklyLedger
	err := row.Scan(
		&ledger.ID,
		&ledger.UserID,
		&ledger.Week,
		&ledger.StartingBalance,
		&ledger.EndingBalance,
		&ledger.PnL,
		&ledger.ActiveBetsAmount,
		&ledger.SettledPnL,
		&ledger.BetsPlaced,
		&ledger.BetsWon,
		&ledger.CreatedAt,
		&ledger.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &ledger, nil
}

// Get retrieves a ledger
func (r *WeeklyLedgerRepository) Get(ctx context.Context, userID int64, week int) (*models.WeeklyLedger, error) {
	query := `SELECT ` + weeklyLedgerColumns + ` FROM weekly_ledgers WHERE user_id = $1 AND week = $2`

	ledger, err := scanWeeklyLedger(r.q.QueryRow(ctx, query, userID, week))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ledger for user %d week %d: %w", userID, week, err)
	}
	return ledger, nil
}

// GetForUpdate retrieves a ledger and holds a row lock until the transaction ends
func (r *WeeklyLedgerRepository) GetForUpdate(ctx context.Context, userID int64, week int) (*models.WeeklyLedger, error) {
	query := `SELECT ` + weeklyLedgerColumns + ` FROM weekly_ledgers WHERE user_id = $1 AND week = $2 FOR UPDATE`

	ledger, err := scanWeeklyLedger(r.q.QueryRow(ctx, query, userID, week))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock ledger for user %d week %d: %w", userID, week, err)
	}
	return ledger, nil
}

// Create inserts a ledger. A second ledger for the same user and week is an
// invariant breach and reported as ErrLedgerInconsistent.
func (r *WeeklyLedgerRepository) Create(ctx context.Context, ledger *models.WeeklyLedger) error {
	query := `
		INSERT INTO weekly_ledgers
		(user_id, week, starting_balance, ending_balance, pnl, active_bets_amount, settled_pnl, bets_placed, bets_won)
		VALUES ($1, $2, $3::NUMERIC, $4::NUMERIC, $5::NUMERIC, $6::NUMERIC, $7::NUMERIC, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.q.QueryRow(ctx, query,
		ledger.UserID,
		ledger.Week,
		ledger.StartingBalance.String(),
		ledger.EndingBalance.String(),
		ledger.PnL.String(),
		ledger.ActiveBetsAmount.String(),
		ledger.SettledPnL.String(),
		ledger.BetsPlaced,
		ledger.BetsWon,
	).Scan(&ledger.ID, &ledger.CreatedAt, &ledger.UpdatedAt)
	if database.IsUniqueViolation(err) {
		return fmt.Errorf("duplicate ledger for user %d week %d: %w", ledger.UserID, ledger.Week, service.ErrLedgerInconsistent)
	}
	if err != nil {
		return fmt.Errorf("failed to create ledger for user %d week %d: %w", ledger.UserID, ledger.Week, err)
	}
	return nil
}

// Update persists the aggregate fields. starting_balance never changes after creation.
func (r *WeeklyLedgerRepository) Update(ctx context.Context, ledger *models.WeeklyLedger) error {
	query := `
		UPDATE weekly_ledgers
		SET ending_balance = $1::NUMERIC,
		    pnl = $2::NUMERIC,
		    active_bets_amount = $3::NUMERIC,
		    settled_pnl = $4::NUMERIC,
		    bets_placed = $5,
		    bets_won = $6,
		    updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := r.q.QueryRow(ctx, query,
		ledger.EndingBalance.String(),
		ledger.PnL.String(),
		ledger.ActiveBetsAmount.String(),
		ledger.SettledPnL.String(),
		ledger.BetsPlaced,
		ledger.BetsWon,
		ledger.ID,
	).Scan(&ledger.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("ledger %d: %w", ledger.ID, service.ErrLedgerInconsistent)
	}
	if err != nil {
		return fmt.Errorf("failed to update ledger %d: %w", ledger.ID, err)
	}
	return nil
}

// GetByUser returns every ledger of a user, newest week first
func (r *WeeklyLedgerRepository) GetByUser(ctx context.Context, userID int64) ([]*models.WeeklyLedger, error) {
	query := `SELECT ` + weeklyLedgerColumns + ` FROM weekly_ledgers WHERE user_id = $1 ORDER BY week DESC`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get ledgers for user %d: %w", userID, err)
	}
	defer rows.Close()

	var ledgers []*models.WeeklyLedger
	for rows.Next() {
		ledger, err := scanWeeklyLedger(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger: %w", err)
		}
		ledgers = append(ledgers, ledger)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ledgers: %w", err)
	}
	return ledgers, nil
}

// GetLeaderboard returns the week's ledgers ordered by pnl
func (r *WeeklyLedgerRepository) GetLeaderboard(ctx context.Context, week int, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT l.user_id, u.username, l.pnl::TEXT, l.settled_pnl::TEXT, l.bets_placed, l.bets_won
		FROM weekly_ledgers l
		JOIN users u ON u.id = l.user_id
		WHERE l.week = $1
		ORDER BY l.pnl DESC, l.user_id
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, week, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard for week %d: %w", week, err)
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		var entry models.LeaderboardEntry
		if err := rows.Scan(
			&entry.UserID,
			&entry.Username,
			&entry.PnL,
			&entry.SettledPnL,
			&entry.BetsPlaced,
			&entry.BetsWon,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaderboard: %w", err)
	}
	return entries, nil
}
