// Package service exposes eligible proof packs to buyers and validates
// introduction requests against the pack's current score.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"proofpack/internal/directory/models"
	"proofpack/internal/notification"
	"proofpack/internal/platform/metrics"
	packmodels "proofpack/internal/proofpack/models"
	"proofpack/internal/proofpack/score"
	reviewmodels "proofpack/internal/review/models"
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
	"proofpack/pkg/platform/sentinel"
	"proofpack/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,PackDirectory,ReviewHistory,Notifier

const (
	defaultStoreTimeout   = 5 * time.Second
	enrichmentConcurrency = 8
)

type Store interface {
	Create(ctx context.Context, intro *models.Introduction) error
	FindByBuyerAndPack(ctx context.Context, buyerID id.UserID, packID id.PackID) (*models.Introduction, error)
	ListByPack(ctx context.Context, packID id.PackID) ([]*models.Introduction, error)
}

// PackDirectory reads packs without authorization.
type PackDirectory interface {
	GetPack(ctx context.Context, packID id.PackID) (*packmodels.ProofPack, error)
	ListApproved(ctx context.Context, filter packmodels.DirectoryFilter) ([]*packmodels.ProofPack, error)
}

type ReviewHistory interface {
	ListByPack(ctx context.Context, packID id.PackID) ([]*reviewmodels.QAReview, error)
}

type Notifier interface {
	Emit(ctx context.Context, event notification.Event)
}

type Service struct {
	store        Store
	packs        PackDirectory
	reviews      ReviewHistory
	notifier     Notifier
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	storeTimeout time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithReviewHistory enables approval dates on listings.
func WithReviewHistory(r ReviewHistory) Option {
	return func(s *Service) {
		s.reviews = r
	}
}

func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func New(store Store, packs PackDirectory, opts ...Option) *Service {
	s := &Service{
		store:        store,
		packs:        packs,
		logger:       slog.Default(),
		tracer:       otel.Tracer("proofpack/directory"),
		storeTimeout: defaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns approved packs scoring at least max(q.MinScore,
// EligibilityThreshold), best first.
func (s *Service) List(ctx context.Context, q models.ListQuery) ([]models.Listing, error) {
	ctx, span := s.tracer.Start(ctx, "directory.list")
	defer span.End()

	limit := q.Limit
	if limit <= 0 || limit > models.MaxPageSize {
		limit = models.DefaultPageSize
	}
	packs, err := s.packs.ListApproved(ctx, packmodels.DirectoryFilter{
		MinScore: max(q.MinScore, score.EligibilityThreshold),
		Industry: q.Industry,
		Search:   q.Search,
		Limit:    limit,
		Offset:   max(q.Offset, 0),
	})
	if err != nil {
		return nil, err
	}

	listings := make([]models.Listing, 0, len(packs))
	for _, pack := range packs {
		if pack.Status != packmodels.PackStatusApproved || !pack.Health.IsEligible() {
			continue
		}
		listings = append(listings, models.Listing{Summary: pack.Summary()})
	}
	if err := s.enrich(ctx, listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// enrich fills ApprovedAt for each listing concurrently.
func (s *Service) enrich(ctx context.Context, listings []models.Listing) error {
	if s.reviews == nil || len(listings) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(enrichmentConcurrency)
	for i := range listings {
		g.Go(func() error {
			reviews, err := s.reviews.ListByPack(ctx, listings[i].ID)
			if err != nil {
				return err
			}
			listings[i].ApprovedAt = latestApproval(reviews)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return storeError(err, "failed to load review history")
	}
	return nil
}

func latestApproval(reviews []*reviewmodels.QAReview) *time.Time {
	var latest *time.Time
	for _, r := range reviews {
		if r.Decision != reviewmodels.DecisionApproved || r.CompletedAt == nil {
			continue
		}
		if latest == nil || r.CompletedAt.After(*latest) {
			at := *r.CompletedAt
			latest = &at
		}
	}
	return latest
}

// RequestIntroduction records a buyer's interest in a pack. The pack is
// re-read and its current score re-checked; a listing seen earlier proves
// nothing.
func (s *Service) RequestIntroduction(ctx context.Context, packID id.PackID, req *models.IntroductionRequest) (*models.Introduction, error) {
	ctx, span := s.tracer.Start(ctx, "directory.request_introduction")
	defer span.End()

	buyer := requestcontext.UserID(ctx)
	pack, err := s.packs.GetPack(ctx, packID)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			s.recordCheck("not_found")
		}
		return nil, err
	}
	if pack.Status != packmodels.PackStatusApproved {
		s.recordCheck("not_found")
		return nil, dErrors.New(dErrors.CodeNotFound, "proof pack not found")
	}
	if pack.IsOwnedBy(buyer) {
		s.recordCheck("own_pack")
		return nil, dErrors.New(dErrors.CodeValidation, "cannot request an introduction to your own proof pack").
			WithField("proofPackId", "must belong to another company")
	}
	if !pack.Health.IsEligible() {
		s.recordCheck("ineligible")
		s.logger.InfoContext(ctx, "introduction refused, score below threshold",
			"pack_id", packID.String(),
			"score", pack.Health.Overall,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.New(dErrors.CodeStateConflict,
			"proof pack no longer meets the eligibility threshold of "+strconv.Itoa(score.EligibilityThreshold)).
			WithState(pack.Summary())
	}

	intro := &models.Introduction{
		ID:             id.IntroductionID(uuid.New()),
		BuyerID:        buyer,
		ProofPackID:    packID,
		Message:        req.Message,
		ScoreAtRequest: pack.Health.Overall,
		CreatedAt:      requestcontext.Now(ctx),
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.store.Create(storeCtx, intro); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			s.recordCheck("duplicate")
			existing, findErr := s.store.FindByBuyerAndPack(storeCtx, buyer, packID)
			conflict := dErrors.New(dErrors.CodeConflict, "introduction already requested")
			if findErr == nil {
				conflict = conflict.WithState(existing)
			}
			return nil, conflict
		}
		return nil, storeError(err, "failed to record introduction")
	}
	s.recordCheck("eligible")

	s.logger.InfoContext(ctx, "introduction requested",
		"pack_id", packID.String(),
		"buyer_id", buyer.String(),
		"score", intro.ScoreAtRequest,
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.notifier != nil {
		s.notifier.Emit(ctx, notification.Event{
			Kind:      notification.KindIntroductionRequested,
			PackID:    packID,
			Recipient: pack.OwnerID,
			Attributes: map[string]string{
				"introduction_id": intro.ID.String(),
				"buyer_id":        buyer.String(),
			},
			OccurredAt: intro.CreatedAt,
		})
	}
	return intro, nil
}

// ListIntroductions returns the introductions received by a pack the caller
// owns.
func (s *Service) ListIntroductions(ctx context.Context, packID id.PackID) ([]*models.Introduction, error) {
	pack, err := s.packs.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}
	if !pack.IsOwnedBy(requestcontext.UserID(ctx)) {
		return nil, dErrors.New(dErrors.CodeNotFound, "proof pack not found")
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	intros, err := s.store.ListByPack(storeCtx, packID)
	if err != nil {
		return nil, storeError(err, "failed to list introductions")
	}
	if intros == nil {
		intros = []*models.Introduction{}
	}
	return intros, nil
}

func (s *Service) recordCheck(outcome string) {
	if s.metrics != nil {
		s.metrics.IntroductionChecks.WithLabelValues(outcome).Inc()
	}
}

func storeError(err error, msg string) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeDependency, "directory store timed out")
	case errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeDependency, "request cancelled")
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeDependency, msg)
}
