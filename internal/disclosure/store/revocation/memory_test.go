package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofpack/pkg/platform/sentinel"
)

func TestMemoryList(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	l := NewMemoryList(WithClock(func() time.Time { return now }))

	revoked, err := l.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, l.Revoke(ctx, "abc", time.Hour))
	revoked, err = l.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(time.Hour)
	revoked, err = l.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked, "entry lapses with the grant")

	assert.ErrorIs(t, l.Revoke(ctx, "abc", 0), sentinel.ErrInvalidState)
}
