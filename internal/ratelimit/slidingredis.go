package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests per key in a Redis sorted set scored by
// arrival time, so the window slides instead of resetting on a boundary.
// Every api process sharing the Redis shares the budget.
type RedisLimiter struct {
	Client *redis.Client
	Prefix string
}

func (l RedisLimiter) Allow(ctx context.Context, key string, window time.Duration, limit int) (bool, int, time.Time, error) {
	now := time.Now()
	reset := now.Add(window)
	if l.Client == nil || limit <= 0 || window <= 0 {
		return true, limit, reset, nil
	}

	setKey := l.Prefix + key
	oldest := strconv.FormatInt(now.Add(-window).UnixNano(), 10)

	pipe := l.Client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, setKey, "-inf", oldest)
	pipe.ZAdd(ctx, setKey, redis.Z{Score: float64(now.UnixNano()), Member: key + ":" + uuid.NewString()})
	count := pipe.ZCard(ctx, setKey)
	pipe.Expire(ctx, setKey, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, reset, err
	}

	seen := int(count.Val())
	return seen <= limit, max(limit-seen, 0), reset, nil
}
