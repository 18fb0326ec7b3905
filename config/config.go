package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// HTTP configuration
	HTTPPort   string
	AdminToken string // Required on admin routes via X-Admin-Token

	// Per-user limit on wager mutations
	WagerRateLimit float64 // requests per second
	WagerRateBurst int

	// Ledger configuration
	StartingBalance decimal.Decimal
	DefaultWeek     int           // Current week when no unsettled period exists
	PeriodLength    time.Duration // How far unlock pushes the lock time forward

	// Optional infrastructure
	RedisURL            string
	CurrentWeekCacheTTL time.Duration
	NATSURL             string

	// Logging
	LogLevel  string
	LogFormat string // "text" or "json"

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	config := &Config{
		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// HTTP
		HTTPPort:   "8080",
		AdminToken: os.Getenv("ADMIN_TOKEN"),

		WagerRateLimit: 5,
		WagerRateBurst: 10,

		// Ledger defaults
		StartingBalance: decimal.NewFromInt(1000),
		DefaultWeek:     10,
		PeriodLength:    7 * 24 * time.Hour,

		// Infrastructure
		RedisURL:            os.Getenv("REDIS_URL"),
		CurrentWeekCacheTTL: 30 * time.Second,
		NATSURL:             os.Getenv("NATS_URL"),

		// Logging
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: os.Getenv("LOG_FORMAT"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if port := os.Getenv("HTTP_PORT"); port != "" {
		config.HTTPPort = port
	}
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		parsed, err := decimal.NewFromString(balance)
		if err != nil || !parsed.IsPositive() {
			return nil, fmt.Errorf("STARTING_BALANCE must be a positive number, got %q", balance)
		}
		config.StartingBalance = parsed
	}
	if week := os.Getenv("DEFAULT_WEEK"); week != "" {
		if parsedWeek, err := strconv.Atoi(week); err == nil && parsedWeek > 0 {
			config.DefaultWeek = parsedWeek
		}
	}
	if hours := os.Getenv("PERIOD_LENGTH_HOURS"); hours != "" {
		if parsedHours, err := strconv.Atoi(hours); err == nil && parsedHours > 0 {
			config.PeriodLength = time.Duration(parsedHours) * time.Hour
		}
	}
	if rps := os.Getenv("WAGER_RATE_LIMIT_RPS"); rps != "" {
		if parsedRPS, err := strconv.ParseFloat(rps, 64); err == nil && parsedRPS > 0 {
			config.WagerRateLimit = parsedRPS
		}
	}
	if burst := os.Getenv("WAGER_RATE_LIMIT_BURST"); burst != "" {
		if parsedBurst, err := strconv.Atoi(burst); err == nil && parsedBurst > 0 {
			config.WagerRateBurst = parsedBurst
		}
	}
	if ttl := os.Getenv("CURRENT_WEEK_CACHE_TTL_SECONDS"); ttl != "" {
		if parsedTTL, err := strconv.Atoi(ttl); err == nil && parsedTTL >= 0 {
			config.CurrentWeekCacheTTL = time.Duration(parsedTTL) * time.Second
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
