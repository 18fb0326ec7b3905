package service

import (
	"errors"
	"fmt"
	"time"

	"sportsbook/odds"
)

// Errors reported back to the boundary layer. None of them leave partial state behind.
var (
	ErrInvalidStake        = errors.New("stake must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrPeriodLocked        = errors.New("betting period is locked")
	ErrNotFound            = errors.New("not found")
	ErrAlreadySettled      = errors.New("wager already settled")
	ErrInvalidOdds         = odds.ErrInvalidOdds
	ErrInvalidSelection    = errors.New("selection description cannot be empty")
	ErrInvalidWeek         = errors.New("week out of range")
	ErrAlreadyExists       = errors.New("already exists")
	ErrInvalidUsername     = errors.New("username cannot be empty")

	// ErrLedgerInconsistent marks a weekly ledger that is missing or duplicated
	// where the invariants say it must exist exactly once. It is never expected
	// in normal operation and is surfaced as a fatal failure.
	ErrLedgerInconsistent = errors.New("weekly ledger inconsistent")
)

// PeriodLockedError carries the lock time so callers can show when betting closed
type PeriodLockedError struct {
	Week     int
	LockTime time.Time
}

func (e *PeriodLockedError) Error() string {
	return fmt.Sprintf("week %d locked at %s", e.Week, e.LockTime.UTC().Format(time.RFC3339))
}

// Is lets errors.Is(err, ErrPeriodLocked) match
func (e *PeriodLockedError) Is(target error) bool {
	return target == ErrPeriodLocked
}

// RejectionReason maps an operation error to a short label for metrics and logs
func RejectionReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidStake):
		return "invalid_stake"
	case errors.Is(err, ErrInsufficientBalance):
		return "insufficient_balance"
	case errors.Is(err, ErrPeriodLocked):
		return "period_locked"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrAlreadySettled):
		return "already_settled"
	case errors.Is(err, ErrInvalidOdds):
		return "invalid_odds"
	case errors.Is(err, ErrInvalidSelection):
		return "invalid_selection"
	case errors.Is(err, ErrInvalidWeek):
		return "invalid_week"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrInvalidUsername):
		return "invalid_username"
	case errors.Is(err, ErrLedgerInconsistent):
		return "ledger_inconsistent"
	default:
		return "internal"
	}
}
