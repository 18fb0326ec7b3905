package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a player account holding play money
type User struct {
	ID             int64           `db:"id" json:"id"`
	Username       string          `db:"username" json:"username"`
	AccountBalance decimal.Decimal `db:"account_balance" json:"account_balance"`
	TotalPnL       decimal.Decimal `db:"total_pnl" json:"total_pnl"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`
}

// CanCover checks if the user's balance covers the given stake
func (u *User) CanCover(stake decimal.Decimal) bool {
	return u.AccountBalance.GreaterThanOrEqual(stake)
}
