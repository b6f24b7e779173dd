package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRedisRevocationStore_NilCacheFailsOpen(t *testing.T) {
	store := NewRevocationStore(nil)
	ctx := context.Background()

	assert.NoError(t, store.Revoke(ctx, "jti-1", time.Minute))
	assert.NoError(t, store.Revoke(ctx, "jti-1", 0))
	revoked, err := store.IsRevoked(ctx, "jti-1")
	assert.NoError(t, err)
	assert.False(t, revoked)
}
