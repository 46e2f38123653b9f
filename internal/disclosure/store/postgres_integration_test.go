//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"proofpack/internal/disclosure/models"
	"proofpack/internal/disclosure/store"
	"proofpack/internal/disclosure/token"
	packmodels "proofpack/internal/proofpack/models"
	packstore "proofpack/internal/proofpack/store"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/sentinel"
	"proofpack/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	packs    *packstore.PostgresStore
	store    *store.PostgresStore
	now      time.Time
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.packs = packstore.NewPostgres(s.postgres.DB)
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "proof_packs", "share_grants", "access_log"))
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) seedGrant() *models.ShareGrant {
	ctx := context.Background()
	owner := id.UserID(uuid.New())
	pack, err := packmodels.NewProofPack(id.PackID(uuid.New()), owner, "Northwind", "logistics", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.packs.Create(ctx, pack))

	raw, err := token.Generate()
	s.Require().NoError(err)
	grant := &models.ShareGrant{
		TokenDigest: token.Digest(raw),
		ProofPackID: pack.ID,
		CreatedBy:   owner,
		Label:       "acme procurement",
		NDAVersion:  1,
		CreatedAt:   s.now,
		ExpiresAt:   s.now.Add(14 * 24 * time.Hour),
		Version:     1,
	}
	s.Require().NoError(s.store.CreateGrant(ctx, grant))
	return grant
}

func (s *PostgresStoreSuite) TestGrantLifecycle() {
	ctx := context.Background()
	grant := s.seedGrant()

	s.ErrorIs(s.store.CreateGrant(ctx, grant), sentinel.ErrAlreadyExists)

	found, err := s.store.FindGrant(ctx, grant.TokenDigest)
	s.Require().NoError(err)
	s.Equal(grant.Label, found.Label)
	s.True(found.IsActive(s.now))

	found.ApplyRevoke(s.now)
	found.BumpNDAVersion()
	s.Require().NoError(s.store.UpdateGrant(ctx, found))

	reloaded, err := s.store.FindGrant(ctx, grant.TokenDigest)
	s.Require().NoError(err)
	s.True(reloaded.Revoked)
	s.Require().NotNil(reloaded.RevokedAt)
	s.Equal(2, reloaded.NDAVersion)

	grants, err := s.store.ListGrants(ctx, grant.ProofPackID)
	s.Require().NoError(err)
	s.Len(grants, 1)

	_, err = s.store.FindGrant(ctx, token.Digest("unknown"))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpdateGrantRejectsStaleCopy() {
	ctx := context.Background()
	grant := s.seedGrant()

	stale, err := s.store.FindGrant(ctx, grant.TokenDigest)
	s.Require().NoError(err)
	current, err := s.store.FindGrant(ctx, grant.TokenDigest)
	s.Require().NoError(err)

	current.ApplyRevoke(s.now)
	s.Require().NoError(s.store.UpdateGrant(ctx, current))
	s.Equal(int64(2), current.Version)

	stale.BumpNDAVersion()
	s.ErrorIs(s.store.UpdateGrant(ctx, stale), sentinel.ErrConflict)

	reloaded, err := s.store.FindGrant(ctx, grant.TokenDigest)
	s.Require().NoError(err)
	s.True(reloaded.Revoked)
	s.Equal(1, reloaded.NDAVersion)
	s.Equal(int64(2), reloaded.Version)

	missing := *reloaded
	missing.TokenDigest = token.Digest("missing")
	s.ErrorIs(s.store.UpdateGrant(ctx, &missing), sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestSaveAcceptanceKeepsFirstAcceptance() {
	ctx := context.Background()
	grant := s.seedGrant()
	buyer := id.UserID(uuid.New())

	first := &models.NDAAcceptance{TokenDigest: grant.TokenDigest, UserID: buyer, Version: 1, AcceptedAt: s.now}
	created, err := s.store.SaveAcceptance(ctx, first)
	s.Require().NoError(err)
	s.True(created)

	again := &models.NDAAcceptance{TokenDigest: grant.TokenDigest, UserID: buyer, Version: 1, AcceptedAt: s.now.Add(time.Hour)}
	created, err = s.store.SaveAcceptance(ctx, again)
	s.Require().NoError(err)
	s.False(created)
	s.True(s.now.Equal(again.AcceptedAt))

	bumped := &models.NDAAcceptance{TokenDigest: grant.TokenDigest, UserID: buyer, Version: 2, AcceptedAt: s.now.Add(2 * time.Hour)}
	created, err = s.store.SaveAcceptance(ctx, bumped)
	s.Require().NoError(err)
	s.True(created)

	stored, err := s.store.FindAcceptance(ctx, grant.TokenDigest, buyer)
	s.Require().NoError(err)
	s.Equal(2, stored.Version)

	_, err = s.store.FindAcceptance(ctx, grant.TokenDigest, id.UserID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestAccessLogNewestFirst() {
	ctx := context.Background()
	grant := s.seedGrant()
	buyer := id.UserID(uuid.New())
	docID := id.DocumentID(uuid.New())

	for i := range 3 {
		entry := models.AccessLogEntry{
			ID:          id.AccessLogID(uuid.New()),
			TokenDigest: grant.TokenDigest,
			ProofPackID: grant.ProofPackID,
			UserID:      buyer,
			Action:      models.ActionViewPack,
			Timestamp:   s.now.Add(time.Duration(i) * time.Minute),
			ClientIP:    "203.0.113.7",
		}
		if i == 2 {
			entry.Action = models.ActionDownloadDocument
			entry.DocumentID = &docID
		}
		s.Require().NoError(s.store.AppendAccess(ctx, entry))
	}

	entries, err := s.store.ListAccess(ctx, grant.ProofPackID, 2)
	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Equal(models.ActionDownloadDocument, entries[0].Action)
	s.Require().NotNil(entries[0].DocumentID)
	s.Equal(docID, *entries[0].DocumentID)
	s.True(entries[0].Timestamp.After(entries[1].Timestamp))

	all, err := s.store.ListAccess(ctx, grant.ProofPackID, 0)
	s.Require().NoError(err)
	s.Len(all, 3)
}
