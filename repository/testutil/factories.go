package testutil

import (
	"context"
	"testing"
	"time"

	"sportsbook/database"
	"sportsbook/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// InsertUser inserts a user with the given balance directly, bypassing services
func InsertUser(t *testing.T, db *database.DB, username string, balance string) *models.User {
	t.Helper()

	user := &models.User{Username: username}
	err := db.QueryRow(context.Background(), `
		INSERT INTO users (username, account_balance)
		VALUES ($1, $2::NUMERIC)
		RETURNING id, account_balance::TEXT, total_pnl::TEXT, created_at, updated_at`,
		username, balance,
	).Scan(&user.ID, &user.AccountBalance, &user.TotalPnL, &user.CreatedAt, &user.UpdatedAt)
	require.NoError(t, err)

	return user
}

// InsertPeriod inserts a period row directly
func InsertPeriod(t *testing.T, db *database.DB, week int, lockTime time.Time, locked bool) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		`INSERT INTO periods (week, lock_time, is_locked) VALUES ($1, $2, $3)`,
		week, lockTime, locked,
	)
	require.NoError(t, err)
}

// CreateTestWager builds a pending wager for repository tests
func CreateTestWager(userID int64, week int, amount string) *models.Wager {
	return &models.Wager{
		UserID:               userID,
		Week:                 week,
		BetType:              models.DefaultBetType,
		SelectionDescription: "Lions -3.5",
		Amount:               decimal.RequireFromString(amount),
		Odds:                 "-110",
		PotentialWin:         decimal.RequireFromString(amount).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(110)),
		Status:               models.WagerStatusPending,
		Result:               decimal.Zero,
	}
}

// CreateTestBalanceHistory creates a test balance history entry
func CreateTestBalanceHistory(userID int64, transactionType models.TransactionType) *models.BalanceHistory {
	return &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   decimal.NewFromInt(1000),
		BalanceAfter:    decimal.NewFromInt(900),
		ChangeAmount:    decimal.NewFromInt(-100),
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"test": true,
		},
	}
}
