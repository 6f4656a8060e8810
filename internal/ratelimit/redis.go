package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements the sliding window on a redis sorted set per
// key, so the counter is shared across instances. Members are scored by
// their unix-nano timestamp; anything older than the window is trimmed
// before counting.
type RedisStore struct {
	client *redis.Client
	limit  int
	window time.Duration
}

// NewRedisStore connects to redis and verifies the connection.
func NewRedisStore(ctx context.Context, addr, password string, limit int, window time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &RedisStore{client: client, limit: limit, window: window}, nil
}

func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	rkey := "ratelimit:" + key
	now := time.Now()
	cutoff := now.Add(-s.window).UnixNano()

	if err := s.client.ZRemRangeByScore(ctx, rkey, "0", strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return false, fmt.Errorf("trim window: %w", err)
	}
	count, err := s.client.ZCard(ctx, rkey).Result()
	if err != nil {
		return false, fmt.Errorf("count window: %w", err)
	}
	if count >= int64(s.limit) {
		return false, nil
	}

	member := strconv.FormatInt(now.UnixNano(), 10)
	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, rkey, redis.Z{Score: float64(now.UnixNano()), Member: member})
	pipe.Expire(ctx, rkey, s.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("record hit: %w", err)
	}
	return true, nil
}

// Close closes the underlying redis connection.
func (s *RedisStore) Close() error { return s.client.Close() }
