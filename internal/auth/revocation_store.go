package auth

import (
	"context"
	"time"

	"meetconnect/internal/cache"
)

const revokedTokenKeyPrefix = "revoked:session:"

// RevocationStore tracks logged-out session tokens by their JTI.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// RedisRevocationStore keeps revoked token ids in Redis until the token would
// have expired anyway. Redis outages fail open.
type RedisRevocationStore struct {
	cache *cache.Client
}

// Ensure RedisRevocationStore implements RevocationStore
var _ RevocationStore = (*RedisRevocationStore)(nil)

// NewRevocationStore creates a new revocation store.
func NewRevocationStore(cache *cache.Client) *RedisRevocationStore {
	return &RedisRevocationStore{cache: cache}
}

// Revoke marks tokenID as revoked for ttl.
func (s *RedisRevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked checks whether tokenID was revoked.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.cache.Exists(ctx, revokedTokenKeyPrefix+tokenID), nil
}
