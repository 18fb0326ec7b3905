package service

import (
	"context"
	"testing"
	"time"

	"sportsbook/events"
	"sportsbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPeriodService is a mock implementation of PeriodService
type MockPeriodService struct {
	mock.Mock
}

func (m *MockPeriodService) CurrentWeek(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockPeriodService) CheckLock(ctx context.Context, week int) (*time.Time, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockPeriodService) SetPeriod(ctx context.Context, week int, lockTime time.Time) (*models.Period, error) {
	args := m.Called(ctx, week, lockTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

func (m *MockPeriodService) LockPeriod(ctx context.Context, week int) (*models.Period, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

func (m *MockPeriodService) UnlockPeriod(ctx context.Context, week int) (*models.Period, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

func (m *MockPeriodService) SettlePeriod(ctx context.Context, week int) (*models.Period, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

func (m *MockPeriodService) GetPeriod(ctx context.Context, week int) (*models.Period, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

func (m *MockPeriodService) ListPeriods(ctx context.Context) ([]*models.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Period), args.Error(1)
}

func newTestSettlementService(m *uowMocks, periods PeriodService) *settlementService {
	svc := NewSettlementService(m.factory, periods).(*settlementService)
	svc.now = func() time.Time { return testNow }
	return svc
}

func openLedger() *models.WeeklyLedger {
	ledger := models.NewWeeklyLedger(1, 10, dec("1000"))
	ledger.ApplyPlacement(dec("100"), dec("900"))
	return ledger
}

func TestSettlementService_SettleWager_Won(t *testing.T) {
	ctx := context.Background()
	m := newUoWMocks()
	m.expectTransaction(true)

	m.wagers.On("GetByIDForUpdate", ctx, int64(7)).Return(pendingWager(), nil)
	m.users.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, AccountBalance: dec("900")}, nil)
	m.users.On("AddBalance", ctx, int64(1), decEq("250"), decEq("150")).Return(dec("1150"), nil)
	m.wagers.On("MarkSettled", ctx, mock.MatchedBy(func(w *models.Wager) bool {
		return w.Status == models.WagerStatusWon &&
			w.Result.Equal(dec("150")) &&
			w.SettledAt != nil && w.SettledAt.Equal(testNow)
	})).Return(nil)
	m.ledgers.On("GetForUpdate", ctx, int64(1), 10).Return(openLedger(), nil)
	m.ledgers.On("Update", ctx, mock.MatchedBy(func(l *models.WeeklyLedger) bool {
		return l.ActiveBetsAmount.IsZero() &&
			l.SettledPnL.Equal(dec("150")) &&
			l.BetsWon == 1 &&
			l.EndingBalance.Equal(dec("1150")) &&
			l.PnL.Equal(dec("150"))
	})).Return(nil)
	m.history.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.TransactionType == models.TransactionTypeWagerWon &&
			h.ChangeAmount.Equal(dec("250")) &&
			h.BalanceBefore.Equal(dec("900")) &&
			h.BalanceAfter.Equal(dec("1150"))
	})).Return(nil)

	result, err := newTestSettlementService(m, nil).SettleWager(ctx, 7, true)

	require.NoError(t, err)
	assert.True(t, result.Payout.Equal(dec("250")))
	assert.True(t, result.NewBalance.Equal(dec("1150")))
	assert.Equal(t, models.WagerStatusWon, result.Wager.Status)

	settled := m.uow.Publisher().OfType(events.EventTypeWagerSettled)
	require.Len(t, settled, 1)
	assert.True(t, settled[0].(events.WagerSettledEvent).Payout.Equal(dec("250")))
	m.assertExpectations(t)
}

func TestSettlementService_SettleWager_Lost(t *testing.T) {
	ctx := context.Background()
	m := newUoWMocks()
	m.expectTransaction(true)

	m.wagers.On("GetByIDForUpdate", ctx, int64(7)).Return(pendingWager(), nil)
	m.users.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, AccountBalance: dec("900")}, nil)
	m.users.On("AddBalance", ctx, int64(1), decEq("0"), decEq("-100")).Return(dec("900"), nil)
	m.wagers.On("MarkSettled", ctx, mock.MatchedBy(func(w *models.Wager) bool {
		return w.Status == models.WagerStatusLost && w.Result.Equal(dec("-100"))
	})).Return(nil)
	m.ledgers.On("GetForUpdate", ctx, int64(1), 10).Return(openLedger(), nil)
	m.ledgers.On("Update", ctx, mock.MatchedBy(func(l *models.WeeklyLedger) bool {
		return l.ActiveBetsAmount.IsZero() &&
			l.SettledPnL.Equal(dec("-100")) &&
			l.BetsWon == 0 &&
			l.PnL.Equal(dec("-100"))
	})).Return(nil)
	m.history.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.TransactionType == models.TransactionTypeWagerLost && h.ChangeAmount.IsZero()
	})).Return(nil)

	result, err := newTestSettlementService(m, nil).SettleWager(ctx, 7, false)

	require.NoError(t, err)
	assert.True(t, result.Payout.IsZero())
	assert.True(t, result.Wager.Result.Equal(dec("-100")))
	m.assertExpectations(t)
}

func TestSettlementService_SettleWager_AlreadySettled(t *testing.T) {
	ctx := context.Background()
	m := newUoWMocks()
	m.expectTransaction(false)

	wager := pendingWager()
	wager.Status = models.WagerStatusLost
	m.wagers.On("GetByIDForUpdate", ctx, int64(7)).Return(wager, nil)

	_, err := newTestSettlementService(m, nil).SettleWager(ctx, 7, true)

	assert.ErrorIs(t, err, ErrAlreadySettled)
	m.users.AssertNotCalled(t, "AddBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestSettlementService_SettleWager_NotFound(t *testing.T) {
	ctx := context.Background()
	m := newUoWMocks()
	m.expectTransaction(false)

	m.wagers.On("GetByIDForUpdate", ctx, int64(99)).Return(nil, nil)

	_, err := newTestSettlementService(m, nil).SettleWager(ctx, 99, true)

	assert.ErrorIs(t, err, ErrNotFound)
	m.assertExpectations(t)
}

func TestSettlementService_SettleWager_MissingLedger(t *testing.T) {
	ctx := context.Background()
	m := newUoWMocks()
	m.expectTransaction(false)

	m.wagers.On("GetByIDForUpdate", ctx, int64(7)).Return(pendingWager(), nil)
	m.users.On("GetByIDForUpdate", ctx, int64(1)).Return(&models.User{ID: 1, AccountBalance: dec("900")}, nil)
	m.users.On("AddBalance", ctx, int64(1), decEq("250"), decEq("150")).Return(dec("1150"), nil)
	m.wagers.On("MarkSettled", ctx, mock.Anything).Return(nil)
	m.ledgers.On("GetForUpdate", ctx, int64(1), 10).Return(nil, nil)

	_, err := newTestSettlementService(m, nil).SettleWager(ctx, 7, true)

	assert.ErrorIs(t, err, ErrLedgerInconsistent)
	m.uow.AssertNotCalled(t, "Commit")
	m.assertExpectations(t)
}

func TestSettlementService_SettlePeriod_Delegates(t *testing.T) {
	ctx := context.Background()
	periods := new(MockPeriodService)
	settled := &models.Period{Week: 10, IsLocked: true, IsSettled: true}
	periods.On("SettlePeriod", ctx, 10).Return(settled, nil)

	period, err := newTestSettlementService(newUoWMocks(), periods).SettlePeriod(ctx, 10)

	require.NoError(t, err)
	assert.Same(t, settled, period)
	periods.AssertExpectations(t)
}
