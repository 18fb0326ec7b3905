package repository

import (
	"context"
	"testing"

	"sportsbook/models"
	"sportsbook/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceHistoryRepository(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewBalanceHistoryRepository(testDB.DB)
	ctx := context.Background()
	user := testutil.InsertUser(t, testDB.DB, "frank", "900")

	placed := testutil.CreateTestBalanceHistory(user.ID, models.TransactionTypeWagerPlaced)
	require.NoError(t, repo.Record(ctx, placed))
	assert.NotZero(t, placed.ID)
	assert.False(t, placed.CreatedAt.IsZero())

	bare := testutil.CreateTestBalanceHistory(user.ID, models.TransactionTypeWagerCancelled)
	bare.TransactionMetadata = nil
	require.NoError(t, repo.Record(ctx, bare))

	history, err := repo.GetByUser(ctx, user.ID, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, bare.ID, history[0].ID)
	assert.Equal(t, true, history[1].TransactionMetadata["test"])
	assert.True(t, history[1].ChangeAmount.Equal(placed.ChangeAmount))

	limited, err := repo.GetByUser(ctx, user.ID, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}
