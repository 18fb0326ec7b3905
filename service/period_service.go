package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"sportsbook/events"
	"sportsbook/models"

	log "github.com/sirupsen/logrus"
)

type periodService struct {
	uowFactory   UnitOfWorkFactory
	cache        WeekCache
	defaultWeek  int
	periodLength time.Duration
	now          func() time.Time

	// cacheGen counts invalidations; CurrentWeek only caches a week read within one generation
	cacheGen atomic.Uint64
}

// NewPeriodService creates a new period service. A nil cache disables caching of CurrentWeek.
func NewPeriodService(uowFactory UnitOfWorkFactory, cache WeekCache, defaultWeek int, periodLength time.Duration) PeriodService {
	if cache == nil {
		cache = noopWeekCache{}
	}
	return &periodService{
		uowFactory:   uowFactory,
		cache:        cache,
		defaultWeek:  defaultWeek,
		periodLength: periodLength,
		now:          utcNow,
	}
}

// checkLock flips an expired period to locked and returns its lock time once it stops
// accepting wagers. A week without a period row is open.
func checkLock(ctx context.Context, uow UnitOfWork, week int, now time.Time) (*time.Time, error) {
	flipped, err := uow.PeriodRepository().LockIfExpired(ctx, week, now)
	if err != nil {
		return nil, fmt.Errorf("failed to lock expired period: %w", err)
	}

	period, err := uow.PeriodRepository().GetByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get period: %w", err)
	}
	if period == nil {
		return nil, nil
	}

	if flipped {
		uow.EventBus().Publish(events.PeriodChangedEvent{
			Week:     week,
			OldState: models.PeriodStateOpen,
			NewState: models.PeriodStateLocked,
			LockTime: period.LockTime,
		})
		log.WithFields(log.Fields{
			"week":      week,
			"lock_time": period.LockTime,
		}).Info("Period lock time passed, locking")
	}

	if !period.AcceptsWagers(now) {
		lockTime := period.LockTime
		return &lockTime, nil
	}
	return nil, nil
}

// CurrentWeek returns the highest unsettled week, or the configured default
func (s *periodService) CurrentWeek(ctx context.Context) (int, error) {
	if week, ok := s.cache.Get(ctx); ok {
		return week, nil
	}

	gen := s.cacheGen.Load()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	week, found, err := uow.PeriodRepository().GetCurrentWeek(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get current week: %w", err)
	}
	if !found {
		week = s.defaultWeek
	}

	if s.cacheGen.Load() == gen {
		s.cache.Set(ctx, week)
	}
	return week, nil
}

// CheckLock returns the lock time if the week no longer accepts wagers
func (s *periodService) CheckLock(ctx context.Context, week int) (*time.Time, error) {
	if !models.ValidWeek(week) {
		return nil, fmt.Errorf("week %d: %w", week, ErrInvalidWeek)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	lockTime, err := checkLock(ctx, uow, week, s.now())
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return lockTime, nil
}

// SetPeriod creates or reschedules a week and reopens it
func (s *periodService) SetPeriod(ctx context.Context, week int, lockTime time.Time) (period *models.Period, err error) {
	start := time.Now()
	defer func() { observe("set_period", start, err) }()

	if !models.ValidWeek(week) {
		return nil, fmt.Errorf("week %d: %w", week, ErrInvalidWeek)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	previous, err := uow.PeriodRepository().GetByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get period: %w", err)
	}

	period, err = uow.PeriodRepository().Upsert(ctx, week, lockTime.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to set period: %w", err)
	}

	s.publishTransition(uow, previous, period)

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	s.invalidateCache(ctx)

	log.WithFields(log.Fields{
		"week":      week,
		"lock_time": period.LockTime,
	}).Info("Set betting period")

	return period, nil
}

// LockPeriod closes a week to new wagers immediately
func (s *periodService) LockPeriod(ctx context.Context, week int) (period *models.Period, err error) {
	start := time.Now()
	defer func() { observe("lock_period", start, err) }()

	return s.transition(ctx, week, func(repo PeriodRepository) (*models.Period, error) {
		return repo.Lock(ctx, week)
	})
}

// UnlockPeriod reopens a week and pushes its lock time one period length out
func (s *periodService) UnlockPeriod(ctx context.Context, week int) (period *models.Period, err error) {
	start := time.Now()
	defer func() { observe("unlock_period", start, err) }()

	lockTime := NextLockTime(s.now(), s.periodLength)
	return s.transition(ctx, week, func(repo PeriodRepository) (*models.Period, error) {
		return repo.Unlock(ctx, week, lockTime)
	})
}

// SettlePeriod marks a week settled. It does not check that the week's wagers are settled.
func (s *periodService) SettlePeriod(ctx context.Context, week int) (period *models.Period, err error) {
	start := time.Now()
	defer func() { observe("settle_period", start, err) }()

	period, err = s.transition(ctx, week, func(repo PeriodRepository) (*models.Period, error) {
		return repo.MarkSettled(ctx, week)
	})
	if err != nil {
		return nil, err
	}
	s.invalidateCache(ctx)
	return period, nil
}

// GetPeriod returns a week's period
func (s *periodService) GetPeriod(ctx context.Context, week int) (*models.Period, error) {
	if !models.ValidWeek(week) {
		return nil, fmt.Errorf("week %d: %w", week, ErrInvalidWeek)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	period, err := uow.PeriodRepository().GetByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get period: %w", err)
	}
	if period == nil {
		return nil, fmt.Errorf("week %d: %w", week, ErrNotFound)
	}
	return period, nil
}

// ListPeriods returns every period
func (s *periodService) ListPeriods(ctx context.Context) ([]*models.Period, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	periods, err := uow.PeriodRepository().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	return periods, nil
}

// transition applies an admin state change to an existing period
func (s *periodService) transition(ctx context.Context, week int, apply func(PeriodRepository) (*models.Period, error)) (*models.Period, error) {
	if !models.ValidWeek(week) {
		return nil, fmt.Errorf("week %d: %w", week, ErrInvalidWeek)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	previous, err := uow.PeriodRepository().GetByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to get period: %w", err)
	}
	if previous == nil {
		return nil, fmt.Errorf("week %d: %w", week, ErrNotFound)
	}

	period, err := apply(uow.PeriodRepository())
	if err != nil {
		return nil, fmt.Errorf("failed to update period: %w", err)
	}
	if period == nil {
		return nil, fmt.Errorf("week %d: %w", week, ErrNotFound)
	}

	s.publishTransition(uow, previous, period)

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.WithFields(log.Fields{
		"week":      week,
		"state":     period.State(s.now()),
		"lock_time": period.LockTime,
	}).Info("Period updated")

	return period, nil
}

func (s *periodService) publishTransition(uow UnitOfWork, previous, current *models.Period) {
	now := s.now()
	var oldState models.PeriodState
	if previous != nil {
		oldState = previous.State(now)
	}
	newState := current.State(now)
	if oldState == newState {
		return
	}
	uow.EventBus().Publish(events.PeriodChangedEvent{
		Week:     current.Week,
		OldState: oldState,
		NewState: newState,
		LockTime: current.LockTime,
	})
}

func (s *periodService) invalidateCache(ctx context.Context) {
	s.cacheGen.Add(1)
	s.cache.Invalidate(ctx)
}

type noopWeekCache struct{}

func (noopWeekCache) Get(context.Context) (int, bool) { return 0, false }
func (noopWeekCache) Set(context.Context, int)        {}
func (noopWeekCache) Invalidate(context.Context)      {}
