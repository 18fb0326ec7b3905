package service

import (
	"testing"
	"time"

	"sportsbook/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 11, 6, 12, 0, 0, 0, time.UTC)

type uowMocks struct {
	factory *MockUnitOfWorkFactory
	uow     *MockUnitOfWork
	users   *MockUserRepository
	wagers  *MockWagerRepository
	periods *MockPeriodRepository
	ledgers *MockWeeklyLedgerRepository
	history *MockBalanceHistoryRepository
}

func newUoWMocks() *uowMocks {
	m := &uowMocks{
		factory: new(MockUnitOfWorkFactory),
		uow:     new(MockUnitOfWork),
		users:   new(MockUserRepository),
		wagers:  new(MockWagerRepository),
		periods: new(MockPeriodRepository),
		ledgers: new(MockWeeklyLedgerRepository),
		history: new(MockBalanceHistoryRepository),
	}
	m.uow.SetRepositories(m.users, m.wagers, m.periods, m.ledgers, m.history)
	m.factory.On("Create").Return(m.uow)
	return m
}

// expectTransaction sets up Begin and the deferred Rollback, plus Commit when the
// operation is expected to persist something
func (m *uowMocks) expectTransaction(commit bool) {
	m.uow.On("Begin", mock.Anything).Return(nil)
	m.uow.On("Rollback").Return(nil)
	if commit {
		m.uow.On("Commit").Return(nil)
	}
}

// expectOpenPeriod sets up a lock check that finds the week open
func (m *uowMocks) expectOpenPeriod(week int) {
	m.periods.On("LockIfExpired", mock.Anything, week, testNow).Return(false, nil)
	m.periods.On("GetByWeek", mock.Anything, week).Return(&models.Period{
		Week:     week,
		LockTime: testNow.Add(48 * time.Hour),
	}, nil)
}

func (m *uowMocks) assertExpectations(t *testing.T) {
	m.factory.AssertExpectations(t)
	m.uow.AssertExpectations(t)
	m.users.AssertExpectations(t)
	m.wagers.AssertExpectations(t)
	m.periods.AssertExpectations(t)
	m.ledgers.AssertExpectations(t)
	m.history.AssertExpectations(t)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// decEq matches a decimal argument by value rather than representation
func decEq(s string) interface{} {
	want := dec(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(want)
	})
}
