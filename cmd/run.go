package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"sportsbook/api"
	"sportsbook/config"
	"sportsbook/database"
	"sportsbook/events"
	"sportsbook/infrastructure"
	"sportsbook/metrics"
	"sportsbook/repository"
	"sportsbook/service"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()
	ConfigureLogging(cfg)

	log.WithField("environment", cfg.Environment).Info("Starting sportsbook...")

	// Initialize database connection
	db, err := database.NewConnection(ctx, database.ConstructDatabaseURL(cfg.DatabaseURL, cfg.DatabaseName))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	// Initialize event bus
	eventBus := events.NewBus()
	eventBus.Subscribe(events.EventTypePeriodChanged, func(ctx context.Context, event events.Event) {
		if changed, ok := event.(events.PeriodChangedEvent); ok {
			metrics.PeriodTransitions.WithLabelValues(string(changed.NewState)).Inc()
		}
	})

	// Optional current-week cache
	var weekCache service.WeekCache
	if cfg.RedisURL != "" {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		weekCache = infrastructure.NewRedisWeekCache(rdb, cfg.CurrentWeekCacheTTL)
		log.Info("Current week cache enabled")
	}

	// Optional event fan-out to NATS
	if cfg.NATSURL != "" {
		natsClient := infrastructure.NewNATSClient(cfg.NATSURL)
		if err := natsClient.Connect(ctx); err != nil {
			return err
		}
		defer natsClient.Close()

		mapper := infrastructure.NewEventSubjectMapper()
		if err := infrastructure.EnsureLedgerStream(natsClient, mapper); err != nil {
			return err
		}
		infrastructure.NewNATSEventPublisher(natsClient, mapper).Attach(eventBus)
	}

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	// Initialize services
	periodService := service.NewPeriodService(uowFactory, weekCache, cfg.DefaultWeek, cfg.PeriodLength)
	services := api.Services{
		Users:      service.NewUserService(uowFactory, cfg.StartingBalance),
		Wagers:     service.NewWagerService(uowFactory),
		Settlement: service.NewSettlementService(uowFactory, periodService),
		Periods:    periodService,
		Ledgers:    service.NewLedgerService(uowFactory),
	}

	hub := api.NewWSHub()
	go hub.Run(ctx)
	eventBus.SubscribeAll(hub.HandleEvent)

	limiter := api.NewRateLimiter(cfg.WagerRateLimit, cfg.WagerRateBurst, 10*time.Minute)
	go limiter.Run(ctx)

	if cfg.AdminToken == "" {
		log.Warn("ADMIN_TOKEN is not set, admin routes are disabled")
	}

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      api.NewServer(services, hub, limiter, cfg.AdminToken).Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("port", cfg.HTTPPort).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}

	log.Info("Shutdown completed")
	return nil
}

// ConfigureLogging applies the configured logrus level and format
func ConfigureLogging(cfg *config.Config) {
	log.SetOutput(os.Stdout)

	level := log.InfoLevel
	if cfg.LogLevel != "" {
		parsed, err := log.ParseLevel(cfg.LogLevel)
		if err != nil {
			log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
		} else {
			level = parsed
		}
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
