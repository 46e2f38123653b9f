package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.Database.DSN)
	assert.Empty(t, cfg.Kafka.Brokers)
	assert.True(t, cfg.Review.StrictPolicy)
	assert.Equal(t, 14*24*time.Hour, cfg.Disclosure.DefaultGrantTTL)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PROOFPACK_ADDR", ":9090")
	t.Setenv("PROOFPACK_KAFKA_BROKERS", "a:9092, b:9092,,")
	t.Setenv("PROOFPACK_REVIEW_STRICT_POLICY", "false")
	t.Setenv("PROOFPACK_NOTIFY_RETRY_INTERVAL", "250ms")
	t.Setenv("PROOFPACK_NOTIFY_BUFFER_SIZE", "not-a-number")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.Review.StrictPolicy)
	assert.Equal(t, 250*time.Millisecond, cfg.Notification.RetryInterval)
	assert.Equal(t, 1000, cfg.Notification.BufferSize, "invalid values fall back to defaults")
}
