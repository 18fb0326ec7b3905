package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"sportsbook/models"
	"sportsbook/service"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const currentWeekKey = "sportsbook:current_week"

// RedisWeekCache caches the current week. Cache failures degrade to a miss.
type RedisWeekCache struct {
	rdb *redis.Client
	ttl time.Duration
}

var _ service.WeekCache = (*RedisWeekCache)(nil)

// NewRedisClient parses url and verifies the server answers
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return rdb, nil
}

// NewRedisWeekCache creates a week cache with the given TTL
func NewRedisWeekCache(rdb *redis.Client, ttl time.Duration) *RedisWeekCache {
	return &RedisWeekCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached week, if any
func (c *RedisWeekCache) Get(ctx context.Context) (int, bool) {
	val, err := c.rdb.Get(ctx, currentWeekKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false
	}
	if err != nil {
		log.WithError(err).Warn("Failed to read current week from redis")
		return 0, false
	}

	week, err := strconv.Atoi(val)
	if err != nil || !models.ValidWeek(week) {
		log.WithField("value", val).Warn("Ignoring malformed cached week")
		return 0, false
	}
	return week, true
}

// Set caches the week
func (c *RedisWeekCache) Set(ctx context.Context, week int) {
	if err := c.rdb.Set(ctx, currentWeekKey, week, c.ttl).Err(); err != nil {
		log.WithError(err).Warn("Failed to cache current week")
	}
}

// Invalidate drops the cached week
func (c *RedisWeekCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, currentWeekKey).Err(); err != nil {
		log.WithError(err).Warn("Failed to invalidate cached week")
	}
}
