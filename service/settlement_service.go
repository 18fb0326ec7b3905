package service

import (
	"context"
	"fmt"
	"time"

	"sportsbook/events"
	"sportsbook/metrics"
	"sportsbook/models"

	log "github.com/sirupsen/logrus"
)

type settlementService struct {
	uowFactory UnitOfWorkFactory
	periods    PeriodService
	now        func() time.Time
}

// NewSettlementService creates a new settlement service
func NewSettlementService(uowFactory UnitOfWorkFactory, periods PeriodService) SettlementService {
	return &settlementService{
		uowFactory: uowFactory,
		periods:    periods,
		now:        utcNow,
	}
}

// SettleWager resolves a pending wager as won or lost.
// A winner is credited stake plus potential win; a loser is credited nothing.
func (s *settlementService) SettleWager(ctx context.Context, wagerID int64, won bool) (result *models.SettlementResult, err error) {
	start := time.Now()
	defer func() { observe("settle_wager", start, err) }()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := uow.WagerRepository().GetByIDForUpdate(ctx, wagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil {
		return nil, fmt.Errorf("wager %d: %w", wagerID, ErrNotFound)
	}
	if !wager.IsPending() {
		return nil, fmt.Errorf("wager %d is %s: %w", wagerID, wager.Status, ErrAlreadySettled)
	}

	user, err := uow.UserRepository().GetByIDForUpdate(ctx, wager.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", wager.UserID, ErrNotFound)
	}

	payout := wager.Settle(won, s.now())

	newBalance, err := uow.UserRepository().AddBalance(ctx, user.ID, payout, wager.Result)
	if err != nil {
		return nil, fmt.Errorf("failed to credit payout: %w", err)
	}

	if err := uow.WagerRepository().MarkSettled(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to mark wager settled: %w", err)
	}

	ledger, err := uow.WeeklyLedgerRepository().GetForUpdate(ctx, user.ID, wager.Week)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly ledger: %w", err)
	}
	if ledger == nil {
		return nil, fmt.Errorf("no ledger for user %d week %d: %w", user.ID, wager.Week, ErrLedgerInconsistent)
	}
	ledger.ApplySettlement(wager.Amount, wager.Result, won, newBalance)
	if err := uow.WeeklyLedgerRepository().Update(ctx, ledger); err != nil {
		return nil, fmt.Errorf("failed to update weekly ledger: %w", err)
	}

	transactionType := models.TransactionTypeWagerLost
	if won {
		transactionType = models.TransactionTypeWagerWon
	}
	history := &models.BalanceHistory{
		UserID:          user.ID,
		BalanceBefore:   user.AccountBalance,
		BalanceAfter:    newBalance,
		ChangeAmount:    payout,
		TransactionType: transactionType,
		TransactionMetadata: map[string]any{
			"wager_id": wager.ID,
			"week":     wager.Week,
			"odds":     wager.Odds,
			"result":   wager.Result.String(),
		},
		RelatedID: &wager.ID,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	uow.EventBus().Publish(events.WagerSettledEvent{
		WagerID: wager.ID,
		UserID:  user.ID,
		Week:    wager.Week,
		Status:  wager.Status,
		Result:  wager.Result,
		Payout:  payout,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.RecordSettlement(string(wager.Status), payout)
	log.WithFields(log.Fields{
		"wager_id": wager.ID,
		"user_id":  user.ID,
		"week":     wager.Week,
		"status":   wager.Status,
		"result":   wager.Result.StringFixed(2),
		"payout":   payout.StringFixed(2),
	}).Info("Wager settled")

	return &models.SettlementResult{
		Wager:      wager,
		Payout:     payout,
		NewBalance: newBalance,
	}, nil
}

// SettlePeriod marks a week settled
func (s *settlementService) SettlePeriod(ctx context.Context, week int) (*models.Period, error) {
	return s.periods.SettlePeriod(ctx, week)
}
