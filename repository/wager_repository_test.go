package repository

import (
	"context"
	"testing"
	"time"

	"sportsbook/models"
	"sportsbook/repository/testutil"
	"sportsbook/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWagerRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewWagerRepository(testDB.DB)
	ctx := context.Background()
	user := testutil.InsertUser(t, testDB.DB, "erin", "1000")

	first := testutil.CreateTestWager(user.ID, 10, "100")
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)
	assert.Equal(t, models.WagerStatusPending, first.Status)
	assert.False(t, first.PlacedAt.IsZero())

	second := testutil.CreateTestWager(user.ID, 10, "50")
	require.NoError(t, repo.Create(ctx, second))
	other := testutil.CreateTestWager(user.ID, 11, "25")
	require.NoError(t, repo.Create(ctx, other))

	t.Run("get by id", func(t *testing.T) {
		wager, err := repo.GetByID(ctx, first.ID)
		require.NoError(t, err)
		require.NotNil(t, wager)
		assert.True(t, wager.Amount.Equal(decimal.NewFromInt(100)))
		assert.True(t, wager.PotentialWin.Equal(first.PotentialWin))
		assert.Equal(t, "-110", wager.Odds)
		assert.Nil(t, wager.SettledAt)

		missing, err := repo.GetByID(ctx, 999999)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("settle once", func(t *testing.T) {
		wager, err := repo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		wager.Settle(false, time.Now().UTC())

		require.NoError(t, repo.MarkSettled(ctx, wager))
		assert.ErrorIs(t, repo.MarkSettled(ctx, wager), service.ErrAlreadySettled)

		stored, err := repo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, models.WagerStatusLost, stored.Status)
		assert.True(t, stored.Result.Equal(decimal.NewFromInt(-50)))
		require.NotNil(t, stored.SettledAt)
	})

	t.Run("settled wagers cannot be deleted", func(t *testing.T) {
		assert.ErrorIs(t, repo.Delete(ctx, second.ID), service.ErrNotFound)
	})

	t.Run("filters", func(t *testing.T) {
		pending, err := repo.GetPendingByUser(ctx, user.ID)
		require.NoError(t, err)
		assert.Len(t, pending, 2)

		week, err := repo.GetByWeek(ctx, 10, nil)
		require.NoError(t, err)
		assert.Len(t, week, 2)

		lost := models.WagerStatusLost
		week, err = repo.GetByWeek(ctx, 10, &lost)
		require.NoError(t, err)
		require.Len(t, week, 1)
		assert.Equal(t, second.ID, week[0].ID)

		recent, err := repo.GetByUser(ctx, user.ID, 2)
		require.NoError(t, err)
		assert.Len(t, recent, 2)
	})

	t.Run("unknown user", func(t *testing.T) {
		orphan := testutil.CreateTestWager(999999, 10, "10")
		assert.ErrorIs(t, repo.Create(ctx, orphan), service.ErrNotFound)
	})

	t.Run("delete pending", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, other.ID))

		wager, err := repo.GetByID(ctx, other.ID)
		require.NoError(t, err)
		assert.Nil(t, wager)
	})
}
