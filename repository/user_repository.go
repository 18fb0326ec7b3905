package repository

import (
	"context"
	"errors"
	"fmt"

	"sportsbook/database"
	"sportsbook/models"
	"sportsbook/service"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const userColumns = `id, username, account_balance::TEXT, total_pnl::TEXT, created_at, updated_at`

// UserRepository implements the UserRepository interface
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{q: db.Pool}
}

// newUserRepositoryWithTx creates a new user repository with a transaction
func newUserRepositoryWithTx(tx queryable) *UserRepository {
	return &UserRepository{q: tx}
}

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.AccountBalance,
		&user.TotalPnL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return user, nil
}

// GetByIDForUpdate retrieves a user and holds a row lock until the transaction ends
func (r *UserRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error) {
	user, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock user %d: %w", id, err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	return user, nil
}

// Create creates a new user with the initial balance
func (r *UserRepository) Create(ctx context.Context, username string, initialBalance decimal.Decimal) (*models.User, error) {
	query := `
		INSERT INTO users (username, account_balance)
		VALUES ($1, $2::NUMERIC)
		RETURNING ` + userColumns

	user, err := scanUser(r.q.QueryRow(ctx, query, username, initialBalance.String()))
	if database.IsUniqueViolation(err) {
		return nil, fmt.Errorf("user %q: %w", username, service.ErrAlreadyExists)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}
	return user, nil
}

// DeductBalance debits the balance only if it covers the amount
func (r *UserRepository) DeductBalance(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE users
		SET account_balance = account_balance - $1::NUMERIC,
		    updated_at = NOW()
		WHERE id = $2 AND account_balance >= $1::NUMERIC
		RETURNING account_balance::TEXT
	`

	var balance decimal.Decimal
	err := r.q.QueryRow(ctx, query, amount.String(), id).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("user %d cannot cover %s: %w", id, amount, service.ErrInsufficientBalance)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to deduct balance for user %d: %w", id, err)
	}
	return balance, nil
}

// AddBalance credits the balance and moves total_pnl by pnlDelta
func (r *UserRepository) AddBalance(ctx context.Context, id int64, amount, pnlDelta decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE users
		SET account_balance = account_balance + $1::NUMERIC,
		    total_pnl = total_pnl + $2::NUMERIC,
		    updated_at = NOW()
		WHERE id = $3
		RETURNING account_balance::TEXT
	`

	var balance decimal.Decimal
	err := r.q.QueryRow(ctx, query, amount.String(), pnlDelta.String(), id).Scan(&balance)
	if errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("user %d: %w", id, service.ErrNotFound)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to add balance for user %d: %w", id, err)
	}
	return balance, nil
}
