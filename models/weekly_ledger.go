package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeeklyLedger holds one user's running totals for one week
type WeeklyLedger struct {
	ID               int64           `db:"id" json:"id"`
	UserID           int64           `db:"user_id" json:"user_id"`
	Week             int             `db:"week" json:"week"`
	StartingBalance  decimal.Decimal `db:"starting_balance" json:"starting_balance"`
	EndingBalance    decimal.Decimal `db:"ending_balance" json:"ending_balance"`
	PnL              decimal.Decimal `db:"pnl" json:"pnl"`
	ActiveBetsAmount decimal.Decimal `db:"active_bets_amount" json:"active_bets_amount"`
	SettledPnL       decimal.Decimal `db:"settled_pnl" json:"settled_pnl"`
	BetsPlaced       int             `db:"bets_placed" json:"bets_placed"`
	BetsWon          int             `db:"bets_won" json:"bets_won"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}

// LeaderboardEntry is one row of a week's standings
type LeaderboardEntry struct {
	Rank       int             `json:"rank"`
	UserID     int64           `json:"user_id"`
	Username   string          `json:"username"`
	PnL        decimal.Decimal `json:"pnl"`
	SettledPnL decimal.Decimal `json:"settled_pnl"`
	BetsPlaced int             `json:"bets_placed"`
	BetsWon    int             `json:"bets_won"`
}

// NewWeeklyLedger opens a ledger for the first wager of a week.
// startingBalance is the user's balance before that wager's debit.
func NewWeeklyLedger(userID int64, week int, startingBalance decimal.Decimal) *WeeklyLedger {
	return &WeeklyLedger{
		UserID:           userID,
		Week:             week,
		StartingBalance:  startingBalance,
		EndingBalance:    startingBalance,
		PnL:              decimal.Zero,
		ActiveBetsAmount: decimal.Zero,
		SettledPnL:       decimal.Zero,
	}
}

// ApplyPlacement records a newly placed stake
func (l *WeeklyLedger) ApplyPlacement(stake, balance decimal.Decimal) {
	l.ActiveBetsAmount = l.ActiveBetsAmount.Add(stake)
	l.BetsPlaced++
	l.refresh(balance)
}

// ApplyCancellation reverses a placement that was refunded
func (l *WeeklyLedger) ApplyCancellation(stake, balance decimal.Decimal) {
	l.ActiveBetsAmount = l.ActiveBetsAmount.Sub(stake)
	l.BetsPlaced--
	l.refresh(balance)
}

// ApplySettlement moves a stake out of the active total and realizes its result
func (l *WeeklyLedger) ApplySettlement(stake, result decimal.Decimal, won bool, balance decimal.Decimal) {
	l.ActiveBetsAmount = l.ActiveBetsAmount.Sub(stake)
	l.SettledPnL = l.SettledPnL.Add(result)
	if won {
		l.BetsWon++
	}
	l.refresh(balance)
}

func (l *WeeklyLedger) refresh(balance decimal.Decimal) {
	l.EndingBalance = balance
	l.PnL = l.EndingBalance.Sub(l.StartingBalance)
}
