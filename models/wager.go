package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WagerStatus represents the lifecycle state of a wager
type WagerStatus string

const (
	WagerStatusPending WagerStatus = "pending"
	WagerStatusWon     WagerStatus = "won"
	WagerStatusLost    WagerStatus = "lost"
)

// DefaultBetType is used when the caller does not categorize a wager
const DefaultBetType = "straight"

// Wager represents a single stake placed against a quoted outcome for one week
type Wager struct {
	ID                   int64           `db:"id" json:"id"`
	UserID               int64           `db:"user_id" json:"user_id"`
	Week                 int             `db:"week" json:"week"`
	BetType              string          `db:"bet_type" json:"bet_type"`
	SelectionDescription string          `db:"selection_description" json:"selection_description"`
	Amount               decimal.Decimal `db:"amount" json:"amount"`
	Odds                 string          `db:"odds" json:"odds"`
	PotentialWin         decimal.Decimal `db:"potential_win" json:"potential_win"`
	Status               WagerStatus     `db:"status" json:"status"`
	Result               decimal.Decimal `db:"result" json:"result"`
	PlacedAt             time.Time       `db:"placed_at" json:"placed_at"`
	SettledAt            *time.Time      `db:"settled_at" json:"settled_at,omitempty"`
}

// PlacementResult is returned to the caller after a successful placement
type PlacementResult struct {
	Wager      *Wager          `json:"wager"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// CancellationResult is returned to the caller after a successful cancellation
type CancellationResult struct {
	WagerID    int64           `json:"wager_id"`
	Refunded   decimal.Decimal `json:"refunded"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// SettlementResult describes the money movement of a settled wager
type SettlementResult struct {
	Wager      *Wager          `json:"wager"`
	Payout     decimal.Decimal `json:"payout"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// IsPending checks if the wager can still be cancelled or settled
func (w *Wager) IsPending() bool {
	return w.Status == WagerStatusPending
}

// IsOwnedBy checks if the wager belongs to the given user
func (w *Wager) IsOwnedBy(userID int64) bool {
	return w.UserID == userID
}

// Settle computes the outcome of a pending wager and marks it settled.
// It returns the amount credited back to the user's balance.
func (w *Wager) Settle(won bool, at time.Time) decimal.Decimal {
	var payout decimal.Decimal
	if won {
		payout = w.Amount.Add(w.PotentialWin)
		w.Result = w.PotentialWin
		w.Status = WagerStatusWon
	} else {
		payout = decimal.Zero
		w.Result = w.Amount.Neg()
		w.Status = WagerStatusLost
	}
	w.SettledAt = &at
	return payout
}
