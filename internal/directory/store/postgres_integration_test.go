//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"proofpack/internal/directory/models"
	"proofpack/internal/directory/store"
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
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "proof_packs", "introductions"))
	s.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (s *PostgresStoreSuite) seedPack() id.PackID {
	pack, err := packmodels.NewProofPack(id.PackID(uuid.New()), id.UserID(uuid.New()), "Northwind", "logistics", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.packs.Create(context.Background(), pack))
	return pack.ID
}

func (s *PostgresStoreSuite) intro(buyer id.UserID, packID id.PackID, at time.Time) *models.Introduction {
	return &models.Introduction{
		ID:             id.IntroductionID(uuid.New()),
		BuyerID:        buyer,
		ProofPackID:    packID,
		Message:        "We would like to discuss a logistics contract.",
		ScoreAtRequest: 84,
		CreatedAt:      at,
	}
}

func (s *PostgresStoreSuite) TestOnePerBuyerAndPack() {
	ctx := context.Background()
	packID := s.seedPack()
	buyer := id.UserID(uuid.New())

	first := s.intro(buyer, packID, s.now)
	s.Require().NoError(s.store.Create(ctx, first))
	s.ErrorIs(s.store.Create(ctx, s.intro(buyer, packID, s.now)), sentinel.ErrAlreadyExists)

	found, err := s.store.FindByBuyerAndPack(ctx, buyer, packID)
	s.Require().NoError(err)
	s.Equal(first.ID, found.ID)
	s.Equal(84, found.ScoreAtRequest)

	_, err = s.store.FindByBuyerAndPack(ctx, id.UserID(uuid.New()), packID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListByPackNewestFirst() {
	ctx := context.Background()
	packID := s.seedPack()
	older := s.intro(id.UserID(uuid.New()), packID, s.now)
	newer := s.intro(id.UserID(uuid.New()), packID, s.now.Add(time.Hour))
	s.Require().NoError(s.store.Create(ctx, older))
	s.Require().NoError(s.store.Create(ctx, newer))

	intros, err := s.store.ListByPack(ctx, packID)
	s.Require().NoError(err)
	s.Require().Len(intros, 2)
	s.Equal(newer.ID, intros[0].ID)
	s.Equal(older.ID, intros[1].ID)

	empty, err := s.store.ListByPack(ctx, s.seedPack())
	s.Require().NoError(err)
	s.Empty(empty)
}
