//go:build integration

package containers

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// RedisContainer is a Redis instance shared by the integration suites of one
// test binary.
type RedisContainer struct {
	Container testcontainers.Container
	URL       string
	Client    *redis.Client
}

// NewRedisContainer starts Redis and connects a client to it. The Manager
// owns the container, so no cleanup is registered on t.
func NewRedisContainer(t *testing.T) *RedisContainer {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}

	url, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("redis connection string: %v", err)
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("parse redis url %q: %v", url, err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		_ = container.Terminate(ctx)
		t.Fatalf("ping redis: %v", err)
	}
	return &RedisContainer{Container: container, URL: url, Client: client}
}

// FlushAll empties the database between tests.
func (r *RedisContainer) FlushAll(ctx context.Context) error {
	return r.Client.FlushAll(ctx).Err()
}
