package bucket

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Ibramnsh/backend-sidokepung/internal/ratelimit/models"
)

const keyPrefix = "sidokepung:ratelimit:"

// RedisBucketStore is a sliding window limiter shared across instances. Each
// key is a sorted set of hit timestamps in microseconds.
type RedisBucketStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisBucketStore(client *redis.Client) *RedisBucketStore {
	return &RedisBucketStore{client: client, now: time.Now}
}

func (s *RedisBucketStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (*models.Result, error) {
	now := s.now()
	k := keyPrefix + key
	cutoff := now.Add(-window).UnixMicro()

	var count *redis.IntCmd
	var oldest *redis.ZSliceCmd
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZRemRangeByScore(ctx, k, "-inf", strconv.FormatInt(cutoff, 10))
		count = p.ZCard(ctx, k)
		oldest = p.ZRangeWithScores(ctx, k, 0, 0)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("read rate limit window: %w", err)
	}

	resetAt := now.Add(window)
	if zs := oldest.Val(); len(zs) > 0 {
		resetAt = time.UnixMicro(int64(zs[0].Score)).Add(window)
	}

	n := int(count.Val())
	if n >= limit {
		return &models.Result{
			Allowed:    false,
			Limit:      limit,
			ResetAt:    resetAt,
			RetryAfter: retryAfter(resetAt.Sub(now)),
		}, nil
	}

	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZAdd(ctx, k, redis.Z{Score: float64(now.UnixMicro()), Member: uuid.NewString()})
		p.PExpire(ctx, k, window)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record rate limit hit: %w", err)
	}
	if n == 0 {
		resetAt = now.Add(window)
	}
	return &models.Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - n - 1,
		ResetAt:   resetAt,
	}, nil
}

func (s *RedisBucketStore) Reset(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}
