package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType represents the type of balance change
type TransactionType string

const (
	TransactionTypeInitial        TransactionType = "initial"
	TransactionTypeWagerPlaced    TransactionType = "wager_placed"
	TransactionTypeWagerCancelled TransactionType = "wager_cancelled"
	TransactionTypeWagerWon       TransactionType = "wager_won"
	TransactionTypeWagerLost      TransactionType = "wager_lost"
)

// BalanceHistory represents a historical balance change
type BalanceHistory struct {
	ID                  int64           `db:"id" json:"id"`
	UserID              int64           `db:"user_id" json:"user_id"`
	BalanceBefore       decimal.Decimal `db:"balance_before" json:"balance_before"`
	BalanceAfter        decimal.Decimal `db:"balance_after" json:"balance_after"`
	ChangeAmount        decimal.Decimal `db:"change_amount" json:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type" json:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata" json:"transaction_metadata,omitempty"`
	RelatedID           *int64          `db:"related_id" json:"related_id,omitempty"`
	CreatedAt           time.Time       `db:"created_at" json:"created_at"`
}
