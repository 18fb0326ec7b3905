package service

import (
	"context"
	"fmt"

	"sportsbook/models"
)

// DefaultLeaderboardSize is used when the caller gives no limit
const DefaultLeaderboardSize = 10

type ledgerService struct {
	uowFactory UnitOfWorkFactory
}

// NewLedgerService creates a new weekly ledger read service
func NewLedgerService(uowFactory UnitOfWorkFactory) LedgerService {
	return &ledgerService{uowFactory: uowFactory}
}

func (s *ledgerService) GetWeeklyLedger(ctx context.Context, userID int64, week int) (*models.WeeklyLedger, error) {
	if !models.ValidWeek(week) {
		return nil, fmt.Errorf("week %d: %w", week, ErrInvalidWeek)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ledger, err := uow.WeeklyLedgerRepository().Get(ctx, userID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly ledger: %w", err)
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger for user %d week %d: %w", userID, week, ErrNotFound)
	}
	return ledger, nil
}

func (s *ledgerService) ListWeeklyLedgers(ctx context.Context, userID int64) ([]*models.WeeklyLedger, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	ledgers, err := uow.WeeklyLedgerRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list weekly ledgers: %w", err)
	}
	return ledgers, nil
}

func (s *ledgerService) WeekLeaderboard(ctx context.Context, week int, limit int) ([]*models.LeaderboardEntry, error) {
	if !models.ValidWeek(week) {
		return nil, fmt.Errorf("week %d: %w", week, ErrInvalidWeek)
	}
	if limit <= 0 {
		limit = DefaultLeaderboardSize
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	entries, err := uow.WeeklyLedgerRepository().GetLeaderboard(ctx, week, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard for week %d: %w", week, err)
	}
	for i, entry := range entries {
		entry.Rank = i + 1
	}
	return entries, nil
}
