package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriodLockedError(t *testing.T) {
	lockTime := time.Date(2025, 11, 9, 18, 0, 0, 0, time.UTC)
	err := fmt.Errorf("place wager: %w", &PeriodLockedError{Week: 10, LockTime: lockTime})

	assert.ErrorIs(t, err, ErrPeriodLocked)

	var lockedErr *PeriodLockedError
	assert.True(t, errors.As(err, &lockedErr))
	assert.Equal(t, lockTime, lockedErr.LockTime)
	assert.Contains(t, err.Error(), "week 10 locked at 2025-11-09T18:00:00Z")
}

func TestRejectionReason(t *testing.T) {
	assert.Equal(t, "", RejectionReason(nil))
	assert.Equal(t, "invalid_stake", RejectionReason(ErrInvalidStake))
	assert.Equal(t, "period_locked", RejectionReason(&PeriodLockedError{Week: 1}))
	assert.Equal(t, "invalid_odds", RejectionReason(fmt.Errorf("wrap: %w", ErrInvalidOdds)))
	assert.Equal(t, "invalid_username", RejectionReason(ErrInvalidUsername))
	assert.Equal(t, "invalid_week", RejectionReason(fmt.Errorf("week 3000000000: %w", ErrInvalidWeek)))
	assert.Equal(t, "internal", RejectionReason(errors.New("connection reset")))
}
