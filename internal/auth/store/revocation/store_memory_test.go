package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTRL(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	trl := NewInMemoryTRL()
	trl.clock = func() time.Time { return now }

	require.NoError(t, trl.RevokeToken(ctx, "jti-1", time.Minute))
	revoked, err := trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	// expired entries are swept on the next write
	require.NoError(t, trl.RevokeToken(ctx, "jti-2", time.Minute))
	assert.Len(t, trl.revoked, 1)

	assert.Error(t, trl.RevokeToken(ctx, "jti-3", -time.Second))
}
