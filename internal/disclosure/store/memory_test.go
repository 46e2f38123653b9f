package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proofpack/internal/disclosure/models"
	"proofpack/internal/disclosure/token"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/sentinel"
)

func newGrant(now time.Time) *models.ShareGrant {
	return &models.ShareGrant{
		TokenDigest: token.Digest("grant-" + uuid.NewString()),
		ProofPackID: id.PackID(uuid.New()),
		CreatedBy:   id.UserID(uuid.New()),
		NDAVersion:  1,
		CreatedAt:   now,
		ExpiresAt:   now.Add(time.Hour),
		Version:     1,
	}
}

func TestInMemoryUpdateGrantRejectsStaleCopy(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	now := time.Now().UTC()
	grant := newGrant(now)
	require.NoError(t, s.CreateGrant(ctx, grant))

	stale, err := s.FindGrant(ctx, grant.TokenDigest)
	require.NoError(t, err)
	current, err := s.FindGrant(ctx, grant.TokenDigest)
	require.NoError(t, err)

	current.ApplyRevoke(now)
	require.NoError(t, s.UpdateGrant(ctx, current))
	assert.Equal(t, int64(2), current.Version)

	stale.BumpNDAVersion()
	assert.ErrorIs(t, s.UpdateGrant(ctx, stale), sentinel.ErrConflict)

	stored, err := s.FindGrant(ctx, grant.TokenDigest)
	require.NoError(t, err)
	assert.True(t, stored.Revoked)
	assert.Equal(t, 1, stored.NDAVersion)
	assert.Equal(t, int64(2), stored.Version)
}

func TestInMemoryUpdateGrantMissing(t *testing.T) {
	s := NewInMemory()
	grant := newGrant(time.Now().UTC())
	assert.ErrorIs(t, s.UpdateGrant(context.Background(), grant), sentinel.ErrNotFound)
}

func TestInMemoryUpdateGrantDoesNotAliasCaller(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	now := time.Now().UTC()
	grant := newGrant(now)
	require.NoError(t, s.CreateGrant(ctx, grant))

	grant.ApplyRevoke(now)
	require.NoError(t, s.UpdateGrant(ctx, grant))
	*grant.RevokedAt = now.Add(time.Hour)

	stored, err := s.FindGrant(ctx, grant.TokenDigest)
	require.NoError(t, err)
	require.NotNil(t, stored.RevokedAt)
	assert.True(t, now.Equal(*stored.RevokedAt))
}
