//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"proofpack/internal/proofpack/models"
	"proofpack/internal/proofpack/score"
	"proofpack/internal/proofpack/store"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/sentinel"
	"proofpack/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.PostgresStore
	owner    id.UserID
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
	s.store = store.NewPostgres(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "proof_packs"))
	s.owner = id.UserID(uuid.New())
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) newPack(name, industry string, status models.PackStatus, sub float64) *models.ProofPack {
	pack, err := models.NewProofPack(id.PackID(uuid.New()), s.owner, name, industry, s.now)
	s.Require().NoError(err)
	health, err := score.ComputeHealth(sub, sub, sub, sub)
	s.Require().NoError(err)
	pack.Health = health
	pack.Status = status
	return pack
}

func (s *PostgresStoreSuite) TestRoundTripWithChildren() {
	ctx := context.Background()
	pack := s.newPack("Northwind Logistics", "logistics", models.PackStatusDraft, 50)
	expires := s.now.Add(30 * 24 * time.Hour)
	docID := id.DocumentID(uuid.New())
	pack.AddDocument(models.Document{
		ID:             docID,
		Category:       models.DocumentInsurance,
		FileName:       "liability.pdf",
		ContentType:    "application/pdf",
		SizeBytes:      2048,
		StorageKey:     "packs/liability.pdf",
		ExpirationDate: &expires,
		UploadedAt:     s.now,
	})
	pack.Gaps = []models.Gap{{
		ID:             id.GapID(uuid.New()),
		Category:       models.GapExpiration,
		Severity:       models.SeverityHigh,
		Recommendation: "Renew liability cover",
		Status:         models.GapOpen,
		DocumentID:     &docID,
	}}

	s.Require().NoError(s.store.Create(ctx, pack))
	s.Equal(int64(1), pack.Version)

	found, err := s.store.FindByID(ctx, pack.ID)
	s.Require().NoError(err)
	s.Equal(pack.CompanyName, found.CompanyName)
	s.Equal(pack.Health, found.Health)
	s.Require().Len(found.Documents, 1)
	s.Equal("packs/liability.pdf", found.Documents[0].StorageKey)
	s.Require().NotNil(found.Documents[0].ExpirationDate)
	s.True(expires.Equal(*found.Documents[0].ExpirationDate))
	s.Require().Len(found.Gaps, 1)
	s.Require().NotNil(found.Gaps[0].DocumentID)
	s.Equal(docID, *found.Gaps[0].DocumentID)
}

func (s *PostgresStoreSuite) TestDuplicateCreate() {
	ctx := context.Background()
	pack := s.newPack("Contoso", "", models.PackStatusDraft, 0)
	s.Require().NoError(s.store.Create(ctx, pack))
	s.ErrorIs(s.store.Create(ctx, pack), sentinel.ErrAlreadyExists)
}

func (s *PostgresStoreSuite) TestFindMissing() {
	_, err := s.store.FindByID(context.Background(), id.PackID(uuid.New()))
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestUpdateVersioning() {
	ctx := context.Background()
	pack := s.newPack("Fabrikam", "construction", models.PackStatusDraft, 40)
	s.Require().NoError(s.store.Create(ctx, pack))

	stale := pack.Clone()
	pack.CompanyName = "Fabrikam Ltd"
	s.Require().NoError(s.store.Update(ctx, pack))
	s.Equal(int64(2), pack.Version)

	stale.CompanyName = "Lost write"
	s.ErrorIs(s.store.Update(ctx, stale), sentinel.ErrConflict)

	missing := s.newPack("Ghost", "", models.PackStatusDraft, 0)
	s.ErrorIs(s.store.Update(ctx, missing), sentinel.ErrNotFound)

	found, err := s.store.FindByID(ctx, pack.ID)
	s.Require().NoError(err)
	s.Equal("Fabrikam Ltd", found.CompanyName)
	s.Equal(int64(2), found.Version)
}

// TestConcurrentUpdates verifies that only one writer wins a given version.
func (s *PostgresStoreSuite) TestConcurrentUpdates() {
	ctx := context.Background()
	pack := s.newPack("Tailspin", "", models.PackStatusDraft, 10)
	s.Require().NoError(s.store.Create(ctx, pack))

	const writers = 20
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		conflicts atomic.Int32
	)
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			candidate := pack.Clone()
			candidate.Industry = uuid.NewString()
			err := s.store.Update(ctx, candidate)
			switch {
			case err == nil:
				succeeded.Add(1)
			case errors.Is(err, sentinel.ErrConflict):
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int32(1), succeeded.Load())
	s.Equal(int32(writers-1), conflicts.Load())
}

func (s *PostgresStoreSuite) TestListApproved() {
	ctx := context.Background()
	top := s.newPack("Northwind Logistics", "Logistics", models.PackStatusApproved, 92)
	mid := s.newPack("Adatum 100%_Builders", "construction", models.PackStatusApproved, 80)
	low := s.newPack("Contoso Freight", "logistics", models.PackStatusApproved, 60)
	draft := s.newPack("Litware", "logistics", models.PackStatusSubmitted, 95)
	for _, p := range []*models.ProofPack{top, mid, low, draft} {
		s.Require().NoError(s.store.Create(ctx, p))
	}

	s.Run("score floor and ordering", func() {
		packs, err := s.store.ListApproved(ctx, models.DirectoryFilter{MinScore: 70})
		s.Require().NoError(err)
		s.Require().Len(packs, 2)
		s.Equal(top.ID, packs[0].ID)
		s.Equal(mid.ID, packs[1].ID)
	})

	s.Run("industry is case insensitive", func() {
		packs, err := s.store.ListApproved(ctx, models.DirectoryFilter{Industry: "logistics"})
		s.Require().NoError(err)
		s.Len(packs, 2)
	})

	s.Run("search escapes wildcards", func() {
		packs, err := s.store.ListApproved(ctx, models.DirectoryFilter{Search: "100%_"})
		s.Require().NoError(err)
		s.Require().Len(packs, 1)
		s.Equal(mid.ID, packs[0].ID)

		packs, err = s.store.ListApproved(ctx, models.DirectoryFilter{Search: "%"})
		s.Require().NoError(err)
		s.Len(packs, 1)
	})

	s.Run("pagination", func() {
		packs, err := s.store.ListApproved(ctx, models.DirectoryFilter{Limit: 1, Offset: 1})
		s.Require().NoError(err)
		s.Require().Len(packs, 1)
		s.Equal(mid.ID, packs[0].ID)
	})
}
