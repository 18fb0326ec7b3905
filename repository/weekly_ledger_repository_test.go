package repository

import (
	"context"
	"testing"

	"sportsbook/models"
	"sportsbook/repository/testutil"
	"sportsbook/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeeklyLedgerRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWeeklyLedgerRepository(testDB.DB)
	ctx := context.Background()
	alice := testutil.InsertUser(t, testDB.DB, "alice", "1000")
	bob := testutil.InsertUser(t, testDB.DB, "bob", "1000")

	ledger := models.NewWeeklyLedger(alice.ID, 10, decimal.NewFromInt(1000))
	ledger.ApplyPlacement(decimal.NewFromInt(100), decimal.NewFromInt(900))
	require.NoError(t, repo.Create(ctx, ledger))
	assert.NotZero(t, ledger.ID)

	t.Run("one ledger per user and week", func(t *testing.T) {
		dup := models.NewWeeklyLedger(alice.ID, 10, decimal.NewFromInt(900))
		assert.ErrorIs(t, repo.Create(ctx, dup), service.ErrLedgerInconsistent)
	})

	t.Run("update", func(t *testing.T) {
		stored, err := repo.GetForUpdate(ctx, alice.ID, 10)
		require.NoError(t, err)
		require.NotNil(t, stored)

		stored.ApplySettlement(decimal.NewFromInt(100), decimal.NewFromInt(150), true, decimal.NewFromInt(1150))
		require.NoError(t, repo.Update(ctx, stored))

		reloaded, err := repo.Get(ctx, alice.ID, 10)
		require.NoError(t, err)
		assert.True(t, reloaded.ActiveBetsAmount.IsZero())
		assert.True(t, reloaded.SettledPnL.Equal(decimal.NewFromInt(150)))
		assert.True(t, reloaded.PnL.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, 1, reloaded.BetsPlaced)
		assert.Equal(t, 1, reloaded.BetsWon)
	})

	t.Run("missing", func(t *testing.T) {
		missing, err := repo.Get(ctx, bob.ID, 10)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("leaderboard", func(t *testing.T) {
		loser := models.NewWeeklyLedger(bob.ID, 10, decimal.NewFromInt(1000))
		loser.ApplyPlacement(decimal.NewFromInt(200), decimal.NewFromInt(800))
		require.NoError(t, repo.Create(ctx, loser))

		entries, err := repo.GetLeaderboard(ctx, 10, 10)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "alice", entries[0].Username)
		assert.Equal(t, "bob", entries[1].Username)
		assert.True(t, entries[1].PnL.Equal(decimal.NewFromInt(-200)))

		top, err := repo.GetLeaderboard(ctx, 10, 1)
		require.NoError(t, err)
		assert.Len(t, top, 1)
	})

	t.Run("by user", func(t *testing.T) {
		next := models.NewWeeklyLedger(alice.ID, 11, decimal.NewFromInt(1150))
		require.NoError(t, repo.Create(ctx, next))

		ledgers, err := repo.GetByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, ledgers, 2)
		assert.Equal(t, 11, ledgers[0].Week)
	})
}
