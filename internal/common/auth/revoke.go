package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DeepthiAddanki/Fleetrace/internal/common/apperr"
)

// RevocationStore is the denylist consulted on every request. Logout
// writes the token's jti with a TTL equal to the token's remaining
// life, so entries expire exactly when the token itself would.
type RevocationStore struct {
	rdb *redis.Client
}

func NewRevocationStore(rdb *redis.Client) *RevocationStore {
	return &RevocationStore{rdb: rdb}
}

func revocationKey(jti string) string {
	return "session:revoked:" + jti
}

func (s *RevocationStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to deny.
		return nil
	}
	if err := s.rdb.Set(ctx, revocationKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: revoke session: %v", apperr.ErrUnavailable, err)
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	err := s.rdb.Get(ctx, revocationKey(jti)).Err()
	if err == nil {
		return true, nil
	}
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	return false, fmt.Errorf("%w: check revocation: %v", apperr.ErrUnavailable, err)
}
