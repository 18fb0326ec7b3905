package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPeriod_State(t *testing.T) {
	now := time.Date(2025, 11, 9, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		period Period
		want   PeriodState
	}{
		{"open before lock time", Period{LockTime: now.Add(time.Hour)}, PeriodStateOpen},
		{"locked by expiry", Period{LockTime: now}, PeriodStateLocked},
		{"locked explicitly", Period{LockTime: now.Add(time.Hour), IsLocked: true}, PeriodStateLocked},
		{"settled wins over lock", Period{LockTime: now.Add(-time.Hour), IsLocked: true, IsSettled: true}, PeriodStateSettled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.period.State(now))
			assert.Equal(t, tt.want == PeriodStateOpen, tt.period.AcceptsWagers(now))
		})
	}
}

func TestValidWeek(t *testing.T) {
	assert.True(t, ValidWeek(1))
	assert.True(t, ValidWeek(MaxWeek))
	assert.False(t, ValidWeek(0))
	assert.False(t, ValidWeek(-3))
	assert.False(t, ValidWeek(MaxWeek+1))
}
