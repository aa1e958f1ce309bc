package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ibramnsh/backend-sidokepung/internal/platform/config"
)

func TestNew(t *testing.T) {
	ctx := context.Background()

	t.Run("no url disables redis", func(t *testing.T) {
		c, err := New(ctx, config.RedisConfig{})
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("connects and applies overrides", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c, err := New(ctx, config.RedisConfig{URL: "redis://" + mr.Addr(), PoolSize: 4, ReadTimeout: time.Second})
		require.NoError(t, err)
		t.Cleanup(func() { _ = c.Close() })

		assert.Equal(t, 4, c.Options().PoolSize)
		assert.Equal(t, time.Second, c.Options().ReadTimeout)
		assert.NoError(t, c.Health(ctx))
	})

	t.Run("bad url", func(t *testing.T) {
		_, err := New(ctx, config.RedisConfig{URL: "mysql://nope"})
		assert.Error(t, err)
	})

	t.Run("unreachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()
		_, err := New(ctx, config.RedisConfig{URL: "redis://" + addr, DialTimeout: 100 * time.Millisecond})
		assert.Error(t, err)
	})
}
