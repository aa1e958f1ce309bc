// Package redis opens the optional Redis connection used for token
// revocation and auth rate limiting.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Ibramnsh/backend-sidokepung/internal/platform/config"
)

const pingTimeout = 5 * time.Second

// Client is a connected go-redis client.
type Client struct {
	*redis.Client
}

// New connects using cfg. It returns a nil Client and no error when no URL is
// configured. Zero pool and timeout values keep the go-redis defaults.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	applyOverrides(opts, cfg)

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return &Client{Client: client}, nil
}

func applyOverrides(opts *redis.Options, cfg config.RedisConfig) {
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if cfg.ReadTimeout > 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if cfg.WriteTimeout > 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
}

// Health pings the server. It backs the redis entry of /health.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}
