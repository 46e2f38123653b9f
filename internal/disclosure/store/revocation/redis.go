// Package revocation shares revoked share-token digests across instances so a
// revocation takes effect before any grant cache or replica catches up.
package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"proofpack/pkg/platform/sentinel"
)

var isRevokedDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "proofpack_share_revocation_check_duration_ms",
	Help:    "Latency of share token revocation checks in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

const revokedShareKeyPrefix = "srl:digest:"

// RedisList keeps one key per revoked digest, expiring with the grant.
type RedisList struct {
	client *redis.Client
}

func NewRedisList(client *redis.Client) *RedisList {
	return &RedisList{client: client}
}

// Revoke marks digest revoked for ttl. Uses SET with expiry.
func (l *RedisList) Revoke(ctx context.Context, digest string, ttl time.Duration) error {
	if err := validateTTL(ttl); err != nil {
		return err
	}
	if digest == "" {
		return nil
	}
	return l.client.Set(ctx, revokedShareKeyPrefix+digest, "1", ttl).Err()
}

// IsRevoked reports false for unknown or expired keys.
func (l *RedisList) IsRevoked(ctx context.Context, digest string) (bool, error) {
	start := time.Now()
	defer func() {
		isRevokedDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	if digest == "" {
		return false, nil
	}
	_, err := l.client.Get(ctx, revokedShareKeyPrefix+digest).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive: %w", sentinel.ErrInvalidState)
	}
	return nil
}
