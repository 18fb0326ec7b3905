package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"sportsbook/events"
	"sportsbook/metrics"
	"sportsbook/models"
	"sportsbook/odds"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// wagerService implements the WagerService interface
type wagerService struct {
	uowFactory UnitOfWorkFactory
	now        func() time.Time
}

// NewWagerService creates a new wager service
func NewWagerService(uowFactory UnitOfWorkFactory) WagerService {
	return &wagerService{
		uowFactory: uowFactory,
		now:        utcNow,
	}
}

// PlaceWager debits the stake and records a pending wager
func (s *wagerService) PlaceWager(ctx context.Context, req PlaceWagerRequest) (result *models.PlacementResult, err error) {
	start := time.Now()
	defer func() { observe("place_wager", start, err) }()

	if !models.ValidWeek(req.Week) {
		return nil, fmt.Errorf("week %d: %w", req.Week, ErrInvalidWeek)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	lockTime, err := checkLock(ctx, uow, req.Week, s.now())
	if err != nil {
		return nil, err
	}
	if lockTime != nil {
		// Keep the lock flip even though the wager is refused
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil, &PeriodLockedError{Week: req.Week, LockTime: *lockTime}
	}

	if !req.Stake.IsPositive() {
		return nil, ErrInvalidStake
	}
	potentialWin, quote, err := odds.PotentialWin(req.Stake, req.Odds)
	if err != nil {
		return nil, err
	}
	selection := strings.TrimSpace(req.Selection)
	if selection == "" {
		return nil, ErrInvalidSelection
	}
	betType := strings.TrimSpace(req.BetType)
	if betType == "" {
		betType = models.DefaultBetType
	}

	user, err := uow.UserRepository().GetByIDForUpdate(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", req.UserID, ErrNotFound)
	}
	if !user.CanCover(req.Stake) {
		return nil, fmt.Errorf("have %s, need %s: %w", user.AccountBalance, req.Stake, ErrInsufficientBalance)
	}

	newBalance, err := uow.UserRepository().DeductBalance(ctx, user.ID, req.Stake)
	if err != nil {
		return nil, fmt.Errorf("failed to deduct stake: %w", err)
	}

	wager := &models.Wager{
		UserID:               user.ID,
		Week:                 req.Week,
		BetType:              betType,
		SelectionDescription: selection,
		Amount:               req.Stake,
		Odds:                 quote.String(),
		PotentialWin:         potentialWin,
		Status:               models.WagerStatusPending,
		Result:               decimal.Zero,
	}
	if err := uow.WagerRepository().Create(ctx, wager); err != nil {
		return nil, fmt.Errorf("failed to create wager: %w", err)
	}

	if err := applyPlacementToLedger(ctx, uow, wager, user.AccountBalance, newBalance); err != nil {
		return nil, err
	}

	history := &models.BalanceHistory{
		UserID:          user.ID,
		BalanceBefore:   user.AccountBalance,
		BalanceAfter:    newBalance,
		ChangeAmount:    req.Stake.Neg(),
		TransactionType: models.TransactionTypeWagerPlaced,
		TransactionMetadata: map[string]any{
			"wager_id":      wager.ID,
			"week":          wager.Week,
			"odds":          wager.Odds,
			"potential_win": wager.PotentialWin.String(),
			"implied_prob":  odds.ImpliedProbability(quote).StringFixed(4),
		},
		RelatedID: &wager.ID,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	uow.EventBus().Publish(events.WagerPlacedEvent{
		WagerID:      wager.ID,
		UserID:       wager.UserID,
		Week:         wager.Week,
		Amount:       wager.Amount,
		Odds:         wager.Odds,
		PotentialWin: wager.PotentialWin,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.RecordPlacement(betType, req.Stake)
	log.WithFields(log.Fields{
		"wager_id":      wager.ID,
		"user_id":       user.ID,
		"week":          wager.Week,
		"amount":        wager.Amount.String(),
		"odds":          wager.Odds,
		"potential_win": wager.PotentialWin.StringFixed(2),
	}).Info("Wager placed")

	return &models.PlacementResult{
		Wager:      wager,
		NewBalance: newBalance,
	}, nil
}

// applyPlacementToLedger opens the user's ledger for the week on the first wager and
// records the stake on it. balanceBefore is the balance prior to this wager's debit.
func applyPlacementToLedger(ctx context.Context, uow UnitOfWork, wager *models.Wager, balanceBefore, newBalance decimal.Decimal) error {
	repo := uow.WeeklyLedgerRepository()

	ledger, err := repo.GetForUpdate(ctx, wager.UserID, wager.Week)
	if err != nil {
		return fmt.Errorf("failed to get weekly ledger: %w", err)
	}

	if ledger == nil {
		ledger = models.NewWeeklyLedger(wager.UserID, wager.Week, balanceBefore)
		ledger.ApplyPlacement(wager.Amount, newBalance)
		if err := repo.Create(ctx, ledger); err != nil {
			return fmt.Errorf("failed to create weekly ledger: %w", err)
		}
		return nil
	}

	ledger.ApplyPlacement(wager.Amount, newBalance)
	if err := repo.Update(ctx, ledger); err != nil {
		return fmt.Errorf("failed to update weekly ledger: %w", err)
	}
	return nil
}

// CancelWager refunds and removes a pending wager owned by the user
func (s *wagerService) CancelWager(ctx context.Context, userID, wagerID int64) (result *models.CancellationResult, err error) {
	start := time.Now()
	defer func() { observe("cancel_wager", start, err) }()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// Wager row is always locked before the user row
	wager, err := uow.WagerRepository().GetByIDForUpdate(ctx, wagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil || !wager.IsOwnedBy(userID) || !wager.IsPending() {
		return nil, fmt.Errorf("pending wager %d: %w", wagerID, ErrNotFound)
	}

	lockTime, err := checkLock(ctx, uow, wager.Week, s.now())
	if err != nil {
		return nil, err
	}
	if lockTime != nil {
		if err := uow.Commit(); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return nil, &PeriodLockedError{Week: wager.Week, LockTime: *lockTime}
	}

	user, err := uow.UserRepository().GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	newBalance, err := uow.UserRepository().AddBalance(ctx, userID, wager.Amount, decimal.Zero)
	if err != nil {
		return nil, fmt.Errorf("failed to refund stake: %w", err)
	}

	if err := uow.WagerRepository().Delete(ctx, wager.ID); err != nil {
		return nil, fmt.Errorf("failed to delete wager: %w", err)
	}

	ledger, err := uow.WeeklyLedgerRepository().GetForUpdate(ctx, userID, wager.Week)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly ledger: %w", err)
	}
	if ledger == nil {
		return nil, fmt.Errorf("no ledger for user %d week %d: %w", userID, wager.Week, ErrLedgerInconsistent)
	}
	ledger.ApplyCancellation(wager.Amount, newBalance)
	if err := uow.WeeklyLedgerRepository().Update(ctx, ledger); err != nil {
		return nil, fmt.Errorf("failed to update weekly ledger: %w", err)
	}

	history := &models.BalanceHistory{
		UserID:          userID,
		BalanceBefore:   user.AccountBalance,
		BalanceAfter:    newBalance,
		ChangeAmount:    wager.Amount,
		TransactionType: models.TransactionTypeWagerCancelled,
		TransactionMetadata: map[string]any{
			"wager_id": wager.ID,
			"week":     wager.Week,
		},
		RelatedID: &wager.ID,
	}
	if err := RecordBalanceChange(ctx, uow, history); err != nil {
		return nil, fmt.Errorf("failed to record balance change: %w", err)
	}

	uow.EventBus().Publish(events.WagerCancelledEvent{
		WagerID: wager.ID,
		UserID:  userID,
		Week:    wager.Week,
		Amount:  wager.Amount,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	metrics.WagersCancelled.Inc()
	log.WithFields(log.Fields{
		"wager_id": wager.ID,
		"user_id":  userID,
		"week":     wager.Week,
		"refunded": wager.Amount.String(),
	}).Info("Wager cancelled")

	return &models.CancellationResult{
		WagerID:    wager.ID,
		Refunded:   wager.Amount,
		NewBalance: newBalance,
	}, nil
}

// GetWager returns a wager owned by the user; other users' wagers are not found
func (s *wagerService) GetWager(ctx context.Context, userID, wagerID int64) (*models.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wager, err := uow.WagerRepository().GetByID(ctx, wagerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get wager: %w", err)
	}
	if wager == nil || !wager.IsOwnedBy(userID) {
		return nil, fmt.Errorf("wager %d: %w", wagerID, ErrNotFound)
	}
	return wager, nil
}

// ListPendingWagers returns the user's unsettled wagers
func (s *wagerService) ListPendingWagers(ctx context.Context, userID int64) ([]*models.Wager, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wagers, err := uow.WagerRepository().GetPendingByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending wagers: %w", err)
	}
	return wagers, nil
}

// ListWagers returns the user's most recent wagers
func (s *wagerService) ListWagers(ctx context.Context, userID int64, limit int) ([]*models.Wager, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wagers, err := uow.WagerRepository().GetByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers: %w", err)
	}
	return wagers, nil
}

// ListWeekWagers returns a week's wagers, optionally filtered by status
func (s *wagerService) ListWeekWagers(ctx context.Context, week int, status *models.WagerStatus) ([]*models.Wager, error) {
	if !models.ValidWeek(week) {
		return nil, fmt.Errorf("week %d: %w", week, ErrInvalidWeek)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	wagers, err := uow.WagerRepository().GetByWeek(ctx, week, status)
	if err != nil {
		return nil, fmt.Errorf("failed to get wagers for week %d: %w", week, err)
	}
	return wagers, nil
}
