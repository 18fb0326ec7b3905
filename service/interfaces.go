package service

import (
	"context"
	"time"

	"sportsbook/events"
	"sportsbook/models"

	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// GetByID retrieves a user by ID, returning nil if not found
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByIDForUpdate retrieves a user and locks the row until the transaction ends
	GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error)

	// GetByUsername retrieves a user by username, returning nil if not found
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// Create creates a new user with the initial balance
	Create(ctx context.Context, username string, initialBalance decimal.Decimal) (*models.User, error)

	// DeductBalance debits the balance only if it covers the amount and returns the new balance
	DeductBalance(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error)

	// AddBalance credits the balance, adjusts total_pnl by pnlDelta and returns the new balance
	AddBalance(ctx context.Context, id int64, amount, pnlDelta decimal.Decimal) (decimal.Decimal, error)
}

// WagerRepository defines the interface for wager data access
type WagerRepository interface {
	// Create inserts a pending wager and fills in its ID and placement time
	Create(ctx context.Context, wager *models.Wager) error

	// GetByID retrieves a wager by ID, returning nil if not found
	GetByID(ctx context.Context, id int64) (*models.Wager, error)

	// GetByIDForUpdate retrieves a wager and locks the row until the transaction ends
	GetByIDForUpdate(ctx context.Context, id int64) (*models.Wager, error)

	// MarkSettled persists the status, result and settled_at of a pending wager
	MarkSettled(ctx context.Context, wager *models.Wager) error

	// Delete removes a pending wager
	Delete(ctx context.Context, id int64) error

	// GetPendingByUser returns a user's unsettled wagers, newest first
	GetPendingByUser(ctx context.Context, userID int64) ([]*models.Wager, error)

	// GetByUser returns a user's wagers in any status, newest first
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Wager, error)

	// GetByWeek returns the wagers of a week, optionally filtered by status
	GetByWeek(ctx context.Context, week int, status *models.WagerStatus) ([]*models.Wager, error)
}

// PeriodRepository defines the interface for betting period data access
type PeriodRepository interface {
	// GetByWeek retrieves a period, returning nil if not found
	GetByWeek(ctx context.Context, week int) (*models.Period, error)

	// LockIfExpired flips is_locked when lock_time has passed and reports whether this call flipped it
	LockIfExpired(ctx context.Context, week int, now time.Time) (bool, error)

	// Upsert sets the lock time of a week and reopens it
	Upsert(ctx context.Context, week int, lockTime time.Time) (*models.Period, error)

	// Lock sets is_locked, returning nil if not found
	Lock(ctx context.Context, week int) (*models.Period, error)

	// Unlock clears is_locked and moves the lock time, returning nil if not found
	Unlock(ctx context.Context, week int, lockTime time.Time) (*models.Period, error)

	// MarkSettled sets is_settled and is_locked, returning nil if not found
	MarkSettled(ctx context.Context, week int) (*models.Period, error)

	// GetCurrentWeek returns the highest unsettled week, or false if every period is settled
	GetCurrentWeek(ctx context.Context) (int, bool, error)

	// List returns all periods, newest week first
	List(ctx context.Context) ([]*models.Period, error)
}

// WeeklyLedgerRepository defines the interface for per-user weekly aggregates
type WeeklyLedgerRepository interface {
	// Get retrieves a ledger, returning nil if not found
	Get(ctx context.Context, userID int64, week int) (*models.WeeklyLedger, error)

	// GetForUpdate retrieves a ledger and locks the row until the transaction ends
	GetForUpdate(ctx context.Context, userID int64, week int) (*models.WeeklyLedger, error)

	// Create inserts a ledger; a second ledger for the same user and week is rejected
	Create(ctx context.Context, ledger *models.WeeklyLedger) error

	// Update persists the aggregate fields of an existing ledger
	Update(ctx context.Context, ledger *models.WeeklyLedger) error

	// GetByUser returns every ledger of a user, newest week first
	GetByUser(ctx context.Context, userID int64) ([]*models.WeeklyLedger, error)

	// GetLeaderboard returns the week's ledgers ranked by pnl
	GetLeaderboard(ctx context.Context, week int, limit int) ([]*models.LeaderboardEntry, error)
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *models.BalanceHistory) error

	// GetByUser returns balance history for a specific user
	GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error)
}

// PlaceWagerRequest carries the caller's inputs for a new wager
type PlaceWagerRequest struct {
	UserID    int64
	Week      int
	BetType   string
	Selection string
	Stake     decimal.Decimal
	Odds      string
}

// UserService defines the interface for user operations
type UserService interface {
	// CreateUser creates a user with the configured starting balance
	CreateUser(ctx context.Context, username string) (*models.User, error)

	// GetUser returns a user by ID
	GetUser(ctx context.Context, userID int64) (*models.User, error)

	// GetBalanceHistory returns the most recent balance changes of a user
	GetBalanceHistory(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error)
}

// WagerService defines the interface for wager placement and cancellation
type WagerService interface {
	// PlaceWager debits the stake and records a pending wager
	PlaceWager(ctx context.Context, req PlaceWagerRequest) (*models.PlacementResult, error)

	// CancelWager refunds and removes a pending wager owned by the user
	CancelWager(ctx context.Context, userID, wagerID int64) (*models.CancellationResult, error)

	// GetWager returns one of the user's wagers
	GetWager(ctx context.Context, userID, wagerID int64) (*models.Wager, error)

	// ListPendingWagers returns the user's unsettled wagers
	ListPendingWagers(ctx context.Context, userID int64) ([]*models.Wager, error)

	// ListWagers returns the user's most recent wagers
	ListWagers(ctx context.Context, userID int64, limit int) ([]*models.Wager, error)

	// ListWeekWagers returns a week's wagers, optionally filtered by status
	ListWeekWagers(ctx context.Context, week int, status *models.WagerStatus) ([]*models.Wager, error)
}

// SettlementService defines the interface for resolving wagers
type SettlementService interface {
	// SettleWager resolves a pending wager as won or lost
	SettleWager(ctx context.Context, wagerID int64, won bool) (*models.SettlementResult, error)

	// SettlePeriod marks a week settled
	SettlePeriod(ctx context.Context, week int) (*models.Period, error)
}

// PeriodService defines the interface for the betting period state machine
type PeriodService interface {
	// CurrentWeek returns the highest unsettled week, or the configured default
	CurrentWeek(ctx context.Context) (int, error)

	// CheckLock returns the lock time if the week no longer accepts wagers
	CheckLock(ctx context.Context, week int) (*time.Time, error)

	// SetPeriod creates or reschedules a week and reopens it
	SetPeriod(ctx context.Context, week int, lockTime time.Time) (*models.Period, error)

	// LockPeriod closes a week to new wagers immediately
	LockPeriod(ctx context.Context, week int) (*models.Period, error)

	// UnlockPeriod reopens a week and pushes its lock time one period length out
	UnlockPeriod(ctx context.Context, week int) (*models.Period, error)

	// SettlePeriod marks a week settled
	SettlePeriod(ctx context.Context, week int) (*models.Period, error)

	// GetPeriod returns a week's period
	GetPeriod(ctx context.Context, week int) (*models.Period, error)

	// ListPeriods returns every period
	ListPeriods(ctx context.Context) ([]*models.Period, error)
}

// LedgerService defines the interface for weekly ledger reads
type LedgerService interface {
	// GetWeeklyLedger returns one user's ledger for one week
	GetWeeklyLedger(ctx context.Context, userID int64, week int) (*models.WeeklyLedger, error)

	// ListWeeklyLedgers returns every ledger of a user, newest week first
	ListWeeklyLedgers(ctx context.Context, userID int64) ([]*models.WeeklyLedger, error)

	// WeekLeaderboard ranks users of a week by pnl
	WeekLeaderboard(ctx context.Context, week int, limit int) ([]*models.LeaderboardEntry, error)
}

// WeekCache caches the result of CurrentWeek
type WeekCache interface {
	Get(ctx context.Context) (int, bool)
	Set(ctx context.Context, week int)
	Invalidate(ctx context.Context)
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork defines the interface for transactional repository operations
type UnitOfWork interface {
	// Begin starts a new transaction
	Begin(ctx context.Context) error

	// Commit commits the transaction and flushes pending events
	Commit() error

	// Rollback rolls back the transaction, a no-op after Commit
	Rollback() error

	// Repository accessors - all repositories share the same transaction
	UserRepository() UserRepository
	WagerRepository() WagerRepository
	PeriodRepository() PeriodRepository
	WeeklyLedgerRepository() WeeklyLedgerRepository
	BalanceHistoryRepository() BalanceHistoryRepository

	// EventBus returns the transactional event bus for this unit of work
	EventBus() EventPublisher
}

// UnitOfWorkFactory defines the interface for creating UnitOfWork instances
type UnitOfWorkFactory interface {
	// Create creates a new UnitOfWork instance
	Create() UnitOfWork
}
