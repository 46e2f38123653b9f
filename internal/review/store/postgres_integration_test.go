//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	packmodels "proofpack/internal/proofpack/models"
	packstore "proofpack/internal/proofpack/store"
	"proofpack/internal/review/models"
	"proofpack/internal/review/store"
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
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "proof_packs", "qa_reviews"))
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) seedPack() id.PackID {
	pack, err := packmodels.NewProofPack(id.PackID(uuid.New()), id.UserID(uuid.New()), "Northwind", "logistics", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.packs.Create(context.Background(), pack))
	return pack.ID
}

func (s *PostgresStoreSuite) TestOneActiveReviewPerPack() {
	ctx := context.Background()
	packID := s.seedPack()

	first := models.NewQAReview(id.ReviewID(uuid.New()), packID, s.now)
	s.Require().NoError(s.store.Create(ctx, first))

	second := models.NewQAReview(id.ReviewID(uuid.New()), packID, s.now)
	s.ErrorIs(s.store.Create(ctx, second), sentinel.ErrAlreadyExists)

	first.ApplyCancel("withdrawn", s.now)
	s.Require().NoError(s.store.Update(ctx, first))

	s.Require().NoError(s.store.Create(ctx, second))
	active, err := s.store.FindActiveByPack(ctx, packID)
	s.Require().NoError(err)
	s.Equal(second.ID, active.ID)

	history, err := s.store.ListByPack(ctx, packID)
	s.Require().NoError(err)
	s.Len(history, 2)
}

func (s *PostgresStoreSuite) TestClaimAndFindingsRoundTrip() {
	ctx := context.Background()
	review := models.NewQAReview(id.ReviewID(uuid.New()), s.seedPack(), s.now)
	s.Require().NoError(s.store.Create(ctx, review))

	reviewer := id.UserID(uuid.New())
	review.ApplyClaim(reviewer, s.now)
	review.ApplyAddFinding(models.Finding{
		ID:          id.FindingID(uuid.New()),
		Severity:    models.SeverityCritical,
		Category:    "insurance",
		Description: "Policy lapsed",
		Status:      models.FindingOpen,
		CreatedAt:   s.now,
	})
	s.Require().NoError(s.store.Update(ctx, review))
	s.Equal(int64(2), review.Version)

	found, err := s.store.FindByID(ctx, review.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusInProgress, found.Status)
	s.Require().NotNil(found.ReviewerID)
	s.Equal(reviewer, *found.ReviewerID)
	s.Require().Len(found.Findings, 1)
	s.Equal(models.SeverityCritical, found.Findings[0].Severity)
	s.True(found.HasOpenCritical())

	inProgress, err := s.store.ListByStatus(ctx, models.StatusInProgress)
	s.Require().NoError(err)
	s.Len(inProgress, 1)
}

func (s *PostgresStoreSuite) TestStaleUpdate() {
	ctx := context.Background()
	review := models.NewQAReview(id.ReviewID(uuid.New()), s.seedPack(), s.now)
	s.Require().NoError(s.store.Create(ctx, review))

	stale := review.Clone()
	review.ApplyClaim(id.UserID(uuid.New()), s.now)
	s.Require().NoError(s.store.Update(ctx, review))

	stale.ApplyClaim(id.UserID(uuid.New()), s.now)
	s.ErrorIs(s.store.Update(ctx, stale), sentinel.ErrConflict)
}

func (s *PostgresStoreSuite) TestMissing() {
	_, err := s.store.FindByID(context.Background(), id.ReviewID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.FindActiveByPack(context.Background(), id.PackID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}
