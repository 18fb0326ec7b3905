package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWager_Settle(t *testing.T) {
	at := time.Date(2025, 11, 11, 4, 0, 0, 0, time.UTC)

	t.Run("won returns stake plus potential win", func(t *testing.T) {
		w := &Wager{Amount: dec("100"), PotentialWin: dec("150"), Status: WagerStatusPending}
		payout := w.Settle(true, at)

		assert.True(t, payout.Equal(dec("250")))
		assert.True(t, w.Result.Equal(dec("150")))
		assert.Equal(t, WagerStatusWon, w.Status)
		require.NotNil(t, w.SettledAt)
		assert.Equal(t, at, *w.SettledAt)
	})

	t.Run("lost pays nothing", func(t *testing.T) {
		w := &Wager{Amount: dec("100"), PotentialWin: dec("150"), Status: WagerStatusPending}
		payout := w.Settle(false, at)

		assert.True(t, payout.IsZero())
		assert.True(t, w.Result.Equal(dec("-100")))
		assert.Equal(t, WagerStatusLost, w.Status)
		assert.False(t, w.IsPending())
	})
}
