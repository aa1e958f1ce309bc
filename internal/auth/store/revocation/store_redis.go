package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

var revocationCheckSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "sidokepung_token_revocation_check_seconds",
	Help:    "Latency of Redis token revocation lookups",
	Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025},
}, []string{"result"})

const redisKeyPrefix = "sidokepung:revoked:jti:"

// RedisTRL is the revocation list shared by every instance. A key per jti
// expires with the token it revokes.
type RedisTRL struct {
	client *redis.Client
	clock  Clock
}

func NewRedisTRL(client *redis.Client) *RedisTRL {
	return &RedisTRL{client: client, clock: time.Now}
}

func redisKey(jti string) string {
	return redisKeyPrefix + jti
}

// RevokeToken stores the revocation time under the jti key for ttl.
func (t *RedisTRL) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	if err := validateTTL(ttl); err != nil {
		return err
	}
	revokedAt := t.clock().UTC().Format(time.RFC3339)
	if err := t.client.Set(ctx, redisKey(jti), revokedAt, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token in redis: %w", err)
	}
	return nil
}

func (t *RedisTRL) IsRevoked(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	start := time.Now()
	n, err := t.client.Exists(ctx, redisKey(jti)).Result()
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case n > 0:
		result = "hit"
	}
	revocationCheckSeconds.WithLabelValues(result).Observe(time.Since(start).Seconds())
	if err != nil {
		return false, fmt.Errorf("check token revocation in redis: %w", err)
	}
	return n > 0, nil
}
