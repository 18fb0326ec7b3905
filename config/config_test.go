package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STARTING_BALANCE", "")
	t.Setenv("DEFAULT_WEEK", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("PERIOD_LENGTH_HOURS", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("WAGER_RATE_LIMIT_RPS", "")
	t.Setenv("WAGER_RATE_LIMIT_BURST", "")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "1000", cfg.StartingBalance.String())
	assert.Equal(t, 10, cfg.DefaultWeek)
	assert.Equal(t, 7*24*time.Hour, cfg.PeriodLength)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5.0, cfg.WagerRateLimit)
	assert.Equal(t, 10, cfg.WagerRateBurst)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432")
	t.Setenv("STARTING_BALANCE", "2500.50")
	t.Setenv("DEFAULT_WEEK", "3")
	t.Setenv("PERIOD_LENGTH_HOURS", "24")
	t.Setenv("CURRENT_WEEK_CACHE_TTL_SECONDS", "5")

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "2500.5", cfg.StartingBalance.String())
	assert.Equal(t, 3, cfg.DefaultWeek)
	assert.Equal(t, 24*time.Hour, cfg.PeriodLength)
	assert.Equal(t, 5*time.Second, cfg.CurrentWeekCacheTTL)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_NAME=sportsbook_dotenv\n"), 0o600))
	t.Chdir(dir)

	t.Setenv("ENVIRONMENT", "test")
	// Restored on cleanup; godotenv never overrides a variable that is already set
	t.Setenv("DATABASE_NAME", "")
	require.NoError(t, os.Unsetenv("DATABASE_NAME"))

	cfg, err := load()
	require.NoError(t, err)

	assert.Equal(t, "sportsbook_dotenv", cfg.DatabaseName)
}

func TestLoad_RequiresDatabaseURLOutsideTest(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("DATABASE_URL", "")

	_, err := load()
	assert.EqualError(t, err, "DATABASE_URL is required")
}

func TestLoad_RejectsBadStartingBalance(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("STARTING_BALANCE", "-5")

	_, err := load()
	assert.Error(t, err)
}
