package service

import (
	"context"
	"errors"
	"testing"

	"sportsbook/events"
	"sportsbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	m := newUoWMocks()
	m.expectTransaction(true)

	startingBalance := dec("1000")
	created := &models.User{ID: 5, Username: "bob", AccountBalance: startingBalance}
	m.users.On("GetByUsername", ctx, "bob").Return(nil, nil)
	m.users.On("Create", ctx, "bob", startingBalance).Return(created, nil)
	m.history.On("Record", ctx, mock.MatchedBy(func(h *models.BalanceHistory) bool {
		return h.UserID == 5 &&
			h.BalanceBefore.IsZero() &&
			h.BalanceAfter.Equal(startingBalance) &&
			h.TransactionType == models.TransactionTypeInitial &&
			h.TransactionMetadata["username"] == "bob"
	})).Return(nil)

	user, err := NewUserService(m.factory, startingBalance).CreateUser(ctx, " bob ")

	require.NoError(t, err)
	assert.Same(t, created, user)

	userCreated := m.uow.Publisher().OfType(events.EventTypeUserCreated)
	require.Len(t, userCreated, 1)
	assert.Equal(t, "bob", userCreated[0].(events.UserCreatedEvent).Username)
	m.assertExpectations(t)
}

func TestUserService_CreateUser_Duplicate(t *testing.T) {
	ctx := context.Background()
	m := newUoWMocks()
	m.expectTransaction(false)

	m.users.On("GetByUsername", ctx, "bob").Return(&models.User{ID: 5, Username: "bob"}, nil)

	_, err := NewUserService(m.factory, dec("1000")).CreateUser(ctx, "bob")

	assert.ErrorIs(t, err, ErrAlreadyExists)
	m.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	m.assertExpectations(t)
}

func TestUserService_CreateUser_HistoryFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	m := newUoWMocks()
	m.expectTransaction(false)

	startingBalance := dec("1000")
	m.users.On("GetByUsername", ctx, "bob").Return(nil, nil)
	m.users.On("Create", ctx, "bob", startingBalance).Return(&models.User{ID: 5, Username: "bob"}, nil)
	m.history.On("Record", ctx, mock.Anything).Return(errors.New("disk full"))

	_, err := NewUserService(m.factory, startingBalance).CreateUser(ctx, "bob")

	require.Error(t, err)
	m.uow.AssertNotCalled(t, "Commit")
	m.assertExpectations(t)
}

func TestUserService_CreateUser_EmptyName(t *testing.T) {
	m := newUoWMocks()

	_, err := NewUserService(m.factory, dec("1000")).CreateUser(context.Background(), "   ")

	assert.ErrorIs(t, err, ErrInvalidUsername)
	assert.Equal(t, "invalid_username", RejectionReason(err))
	m.factory.AssertNotCalled(t, "Create")
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	ctx := context.Background()
	m := newUoWMocks()
	m.expectTransaction(false)
	m.users.On("GetByID", ctx, int64(9)).Return(nil, nil)

	_, err := NewUserService(m.factory, dec("1000")).GetUser(ctx, 9)

	assert.ErrorIs(t, err, ErrNotFound)
	m.assertExpectations(t)
}
