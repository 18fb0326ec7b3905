package api

import (
	"context"
	"time"

	"sportsbook/models"
	"sportsbook/service"

	"github.com/stretchr/testify/mock"
)

type mockUserService struct{ mock.Mock }

func (m *mockUserService) CreateUser(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) GetUser(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserService) GetBalanceHistory(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

type mockWagerService struct{ mock.Mock }

func (m *mockWagerService) PlaceWager(ctx context.Context, req service.PlaceWagerRequest) (*models.PlacementResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PlacementResult), args.Error(1)
}

func (m *mockWagerService) CancelWager(ctx context.Context, userID, wagerID int64) (*models.CancellationResult, error) {
	args := m.Called(ctx, userID, wagerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CancellationResult), args.Error(1)
}

func (m *mockWagerService) GetWager(ctx context.Context, userID, wagerID int64) (*models.Wager, error) {
	args := m.Called(ctx, userID, wagerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wager), args.Error(1)
}

func (m *mockWagerService) ListPendingWagers(ctx context.Context, userID int64) ([]*models.Wager, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Wager), args.Error(1)
}

func (m *mockWagerService) ListWagers(ctx context.Context, userID int64, limit int) ([]*models.Wager, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Wager), args.Error(1)
}

func (m *mockWagerService) ListWeekWagers(ctx context.Context, week int, status *models.WagerStatus) ([]*models.Wager, error) {
	args := m.Called(ctx, week, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Wager), args.Error(1)
}

type mockSettlementService struct{ mock.Mock }

func (m *mockSettlementService) SettleWager(ctx context.Context, wagerID int64, won bool) (*models.SettlementResult, error) {
	args := m.Called(ctx, wagerID, won)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SettlementResult), args.Error(1)
}

func (m *mockSettlementService) SettlePeriod(ctx context.Context, week int) (*models.Period, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

type mockPeriodService struct{ mock.Mock }

func (m *mockPeriodService) CurrentWeek(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockPeriodService) CheckLock(ctx context.Context, week int) (*time.Time, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *mockPeriodService) SetPeriod(ctx context.Context, week int, lockTime time.Time) (*models.Period, error) {
	args := m.Called(ctx, week, lockTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

func (m *mockPeriodService) LockPeriod(ctx context.Context, week int) (*models.Period, error) {
	return m.period(m.Called(ctx, week))
}

func (m *mockPeriodService) UnlockPeriod(ctx context.Context, week int) (*models.Period, error) {
	return m.period(m.Called(ctx, week))
}

func (m *mockPeriodService) SettlePeriod(ctx context.Context, week int) (*models.Period, error) {
	return m.period(m.Called(ctx, week))
}

func (m *mockPeriodService) GetPeriod(ctx context.Context, week int) (*models.Period, error) {
	return m.period(m.Called(ctx, week))
}

func (m *mockPeriodService) ListPeriods(ctx context.Context) ([]*models.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Period), args.Error(1)
}

func (m *mockPeriodService) period(args mock.Arguments) (*models.Period, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

type mockLedgerService struct{ mock.Mock }

func (m *mockLedgerService) GetWeeklyLedger(ctx context.Context, userID int64, week int) (*models.WeeklyLedger, error) {
	args := m.Called(ctx, userID, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyLedger), args.Error(1)
}

func (m *mockLedgerService) ListWeeklyLedgers(ctx context.Context, userID int64) ([]*models.WeeklyLedger, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WeeklyLedger), args.Error(1)
}

func (m *mockLedgerService) WeekLeaderboard(ctx context.Context, week int, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, week, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}
