package cache

import (
	"context"
	"strconv"
	"time"

	"chat_economy/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

// CounterStore tracks per-user per-period activity counters in Redis hashes.
// It is an optimization over the ledger, never the source of truth: every
// read degrades to zero when Redis is missing or failing, so a cache outage
// can only ever grant rewards, not block them.
type CounterStore struct {
	client *redis.Client
}

// New connects to Redis at addr. An empty addr or a failed ping returns a
// store with a nil client; all operations then act as a fail-open no-op.
func New(addr, password string, db int) *CounterStore {
	if addr == "" {
		return &CounterStore{}
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("counter store unavailable, running without quota cache", "error", err)
		return &CounterStore{}
	}
	return &CounterStore{client: client}
}

// Available reports whether a Redis client is connected.
func (s *CounterStore) Available() bool {
	return s.client != nil
}

// DailyKey builds the per-day hash key for a user.
func DailyKey(userID int64, day time.Time) string {
	return "stats:daily:" + strconv.FormatInt(userID, 10) + ":" + day.UTC().Format("2006-01-02")
}

// WeeklyKey builds the per-ISO-week hash key for a user.
func WeeklyKey(userID int64, day time.Time) string {
	year, week := day.UTC().ISOWeek()
	return "stats:weekly:" + strconv.FormatInt(userID, 10) + ":" +
		strconv.Itoa(year) + "-W" + strconv.Itoa(week)
}

// GetField returns the integer value of one hash field, or 0 on miss/error.
func (s *CounterStore) GetField(ctx context.Context, key, field string) int64 {
	if s.client == nil {
		return 0
	}
	val, err := s.client.HGet(ctx, key, field).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("counter read failed", "key", key, "field", field, "error", err)
		}
		return 0
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// IncrField increments one hash field and refreshes the key expiry. Errors
// are logged and swallowed.
func (s *CounterStore) IncrField(ctx context.Context, key, field string, delta int64, ttl time.Duration) {
	if s.client == nil {
		return
	}
	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, key, field, delta)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("counter increment failed", "key", key, "field", field, "error", err)
	}
}

// SetField overwrites one hash field and refreshes the key expiry.
func (s *CounterStore) SetField(ctx context.Context, key, field string, value int64, ttl time.Duration) {
	if s.client == nil {
		return
	}
	pipe := s.client.Pipeline()
	pipe.HSet(ctx, key, field, value)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		logger.Warn("counter set failed", "key", key, "field", field, "error", err)
	}
}

// GetAllFields returns the whole hash as integers; empty map on miss/error.
func (s *CounterStore) GetAllFields(ctx context.Context, key string) map[string]int64 {
	res := make(map[string]int64)
	if s.client == nil {
		return res
	}
	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		logger.Warn("counter read-all failed", "key", key, "error", err)
		return res
	}
	for f, v := range fields {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			res[f] = n
		}
	}
	return res
}
