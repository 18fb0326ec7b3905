package service

import (
	"context"
	"sync"
	"time"

	"sportsbook/events"
	"sportsbook/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, username string, initialBalance decimal.Decimal) (*models.User, error) {
	args := m.Called(ctx, username, initialBalance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) DeductBalance(ctx context.Context, id int64, amount decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, id, amount)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockUserRepository) AddBalance(ctx context.Context, id int64, amount, pnlDelta decimal.Decimal) (decimal.Decimal, error) {
	args := m.Called(ctx, id, amount, pnlDelta)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockWagerRepository is a mock implementation of WagerRepository
type MockWagerRepository struct {
	mock.Mock
}

func (m *MockWagerRepository) Create(ctx context.Context, wager *models.Wager) error {
	args := m.Called(ctx, wager)
	return args.Error(0)
}

func (m *MockWagerRepository) GetByID(ctx context.Context, id int64) (*models.Wager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wager), args.Error(1)
}

func (m *MockWagerRepository) GetByIDForUpdate(ctx context.Context, id int64) (*models.Wager, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wager), args.Error(1)
}

func (m *MockWagerRepository) MarkSettled(ctx context.Context, wager *models.Wager) error {
	args := m.Called(ctx, wager)
	return args.Error(0)
}

func (m *MockWagerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWagerRepository) GetPendingByUser(ctx context.Context, userID int64) ([]*models.Wager, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Wager), args.Error(1)
}

func (m *MockWagerRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.Wager, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Wager), args.Error(1)
}

func (m *MockWagerRepository) GetByWeek(ctx context.Context, week int, status *models.WagerStatus) ([]*models.Wager, error) {
	args := m.Called(ctx, week, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Wager), args.Error(1)
}

// MockPeriodRepository is a mock implementation of PeriodRepository
type MockPeriodRepository struct {
	mock.Mock
}

func (m *MockPeriodRepository) GetByWeek(ctx context.Context, week int) (*models.Period, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

func (m *MockPeriodRepository) LockIfExpired(ctx context.Context, week int, now time.Time) (bool, error) {
	args := m.Called(ctx, week, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockPeriodRepository) Upsert(ctx context.Context, week int, lockTime time.Time) (*models.Period, error) {
	args := m.Called(ctx, week, lockTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

func (m *MockPeriodRepository) Lock(ctx context.Context, week int) (*models.Period, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

func (m *MockPeriodRepository) Unlock(ctx context.Context, week int, lockTime time.Time) (*models.Period, error) {
	args := m.Called(ctx, week, lockTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

func (m *MockPeriodRepository) MarkSettled(ctx context.Context, week int) (*models.Period, error) {
	args := m.Called(ctx, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Period), args.Error(1)
}

func (m *MockPeriodRepository) GetCurrentWeek(ctx context.Context) (int, bool, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockPeriodRepository) List(ctx context.Context) ([]*models.Period, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Period), args.Error(1)
}

// MockWeeklyLedgerRepository is a mock implementation of WeeklyLedgerRepository
type MockWeeklyLedgerRepository struct {
	mock.Mock
}

func (m *MockWeeklyLedgerRepository) Get(ctx context.Context, userID int64, week int) (*models.WeeklyLedger, error) {
	args := m.Called(ctx, userID, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyLedger), args.Error(1)
}

func (m *MockWeeklyLedgerRepository) GetForUpdate(ctx context.Context, userID int64, week int) (*models.WeeklyLedger, error) {
	args := m.Called(ctx, userID, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WeeklyLedger), args.Error(1)
}

func (m *MockWeeklyLedgerRepository) Create(ctx context.Context, ledger *models.WeeklyLedger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockWeeklyLedgerRepository) Update(ctx context.Context, ledger *models.WeeklyLedger) error {
	args := m.Called(ctx, ledger)
	return args.Error(0)
}

func (m *MockWeeklyLedgerRepository) GetByUser(ctx context.Context, userID int64) ([]*models.WeeklyLedger, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.WeeklyLedger), args.Error(1)
}

func (m *MockWeeklyLedgerRepository) GetLeaderboard(ctx context.Context, week int, limit int) ([]*models.LeaderboardEntry, error) {
	args := m.Called(ctx, week, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.LeaderboardEntry), args.Error(1)
}

// MockBalanceHistoryRepository is a mock implementation of BalanceHistoryRepository
type MockBalanceHistoryRepository struct {
	mock.Mock
}

func (m *MockBalanceHistoryRepository) Record(ctx context.Context, history *models.BalanceHistory) error {
	args := m.Called(ctx, history)
	return args.Error(0)
}

func (m *MockBalanceHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*models.BalanceHistory, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BalanceHistory), args.Error(1)
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (m *MockEventPublisher) Publish(event events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

// Events returns the events published so far
func (m *MockEventPublisher) Events() []events.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]events.Event(nil), m.events...)
}

// OfType returns the published events of one type
func (m *MockEventPublisher) OfType(eventType events.EventType) []events.Event {
	var matched []events.Event
	for _, e := range m.Events() {
		if e.Type() == eventType {
			matched = append(matched, e)
		}
	}
	return matched
}

// MockUnitOfWork is a mock implementation of UnitOfWork.
// Repository accessors return whatever SetRepositories installed.
type MockUnitOfWork struct {
	mock.Mock
	userRepo           UserRepository
	wagerRepo          WagerRepository
	periodRepo         PeriodRepository
	weeklyLedgerRepo   WeeklyLedgerRepository
	balanceHistoryRepo BalanceHistoryRepository
	eventBus           *MockEventPublisher
}

// SetRepositories installs the repositories handed out by the accessors
func (m *MockUnitOfWork) SetRepositories(userRepo UserRepository, wagerRepo WagerRepository, periodRepo PeriodRepository, weeklyLedgerRepo WeeklyLedgerRepository, balanceHistoryRepo BalanceHistoryRepository) {
	m.userRepo = userRepo
	m.wagerRepo = wagerRepo
	m.periodRepo = periodRepo
	m.weeklyLedgerRepo = weeklyLedgerRepo
	m.balanceHistoryRepo = balanceHistoryRepo
}

func (m *MockUnitOfWork) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUnitOfWork) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) UserRepository() UserRepository {
	return m.userRepo
}

func (m *MockUnitOfWork) WagerRepository() WagerRepository {
	return m.wagerRepo
}

func (m *MockUnitOfWork) PeriodRepository() PeriodRepository {
	return m.periodRepo
}

func (m *MockUnitOfWork) WeeklyLedgerRepository() WeeklyLedgerRepository {
	return m.weeklyLedgerRepo
}

func (m *MockUnitOfWork) BalanceHistoryRepository() BalanceHistoryRepository {
	return m.balanceHistoryRepo
}

func (m *MockUnitOfWork) EventBus() EventPublisher {
	return m.Publisher()
}

// Publisher returns the recording event bus of this unit of work
func (m *MockUnitOfWork) Publisher() *MockEventPublisher {
	if m.eventBus == nil {
		m.eventBus = &MockEventPublisher{}
	}
	return m.eventBus
}

// MockUnitOfWorkFactory is a mock implementation of UnitOfWorkFactory
type MockUnitOfWorkFactory struct {
	mock.Mock
}

func (m *MockUnitOfWorkFactory) Create() UnitOfWork {
	args := m.Called()
	return args.Get(0).(UnitOfWork)
}

// MockWeekCache is a mock implementation of WeekCache
type MockWeekCache struct {
	mock.Mock
}

func (m *MockWeekCache) Get(ctx context.Context) (int, bool) {
	args := m.Called(ctx)
	return args.Int(0), args.Bool(1)
}

func (m *MockWeekCache) Set(ctx context.Context, week int) {
	m.Called(ctx, week)
}

func (m *MockWeekCache) Invalidate(ctx context.Context) {
	m.Called(ctx)
}
