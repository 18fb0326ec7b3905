package models

import (
	"math"
	"time"
)

// MaxWeek is the largest week number the INTEGER week columns can store
const MaxWeek = math.MaxInt32

// ValidWeek reports whether week can name a period
func ValidWeek(week int) bool {
	return week > 0 && week <= MaxWeek
}

// Period represents one scoring week that groups wagers for locking and settlement
type Period struct {
	Week      int       `db:"week" json:"week"`
	LockTime  time.Time `db:"lock_time" json:"lock_time"`
	IsLocked  bool      `db:"is_locked" json:"is_locked"`
	IsSettled bool      `db:"is_settled" json:"is_settled"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// PeriodState is the derived state machine position of a period
type PeriodState string

const (
	PeriodStateOpen    PeriodState = "open"
	PeriodStateLocked  PeriodState = "locked"
	PeriodStateSettled PeriodState = "settled"
)

// State returns the period's state at the given instant, treating an expired
// lock time as locked even if the flag has not been flipped yet
func (p *Period) State(now time.Time) PeriodState {
	switch {
	case p.IsSettled:
		return PeriodStateSettled
	case p.IsLocked || p.LockExpired(now):
		return PeriodStateLocked
	default:
		return PeriodStateOpen
	}
}

// LockExpired checks if the lock time has passed
func (p *Period) LockExpired(now time.Time) bool {
	return !now.Before(p.LockTime)
}

// AcceptsWagers checks if placement and cancellation are allowed at the given instant
func (p *Period) AcceptsWagers(now time.Time) bool {
	return p.State(now) == PeriodStateOpen
}
