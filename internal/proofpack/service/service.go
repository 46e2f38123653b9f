package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"proofpack/internal/identity"
	"proofpack/internal/notification"
	"proofpack/internal/platform/metrics"
	"proofpack/internal/proofpack/gaps"
	"proofpack/internal/proofpack/models"
	"proofpack/internal/proofpack/score"
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
	"proofpack/pkg/platform/sentinel"
	"proofpack/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,Notifier

const (
	defaultMaxRetries   = 5
	defaultStoreTimeout = 5 * time.Second
)

type Store interface {
	Create(ctx context.Context, pack *models.ProofPack) error
	FindByID(ctx context.Context, packID id.PackID) (*models.ProofPack, error)
	ListByOwner(ctx context.Context, ownerID id.UserID) ([]*models.ProofPack, error)
	ListApproved(ctx context.Context, filter models.DirectoryFilter) ([]*models.ProofPack, error)
	Update(ctx context.Context, pack *models.ProofPack) error
}

// Notifier receives fire-and-forget domain events.
type Notifier interface {
	Emit(ctx context.Context, event notification.Event)
}

// Service owns proof pack mutations. Every mutation that touches documents or
// sub-scores recomputes health and gaps and commits them with a
// compare-and-swap on Version.
type Service struct {
	store        Store
	logger       *slog.Logger
	notifier     Notifier
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	maxRetries   int
	storeTimeout time.Duration
	recomputes   singleflight.Group
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

// WithMaxRetries bounds how often a mutation is replayed after losing a
// version race.
func WithMaxRetries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithStoreTimeout bounds every store call.
func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
		}
	}
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:        store,
		logger:       slog.Default(),
		tracer:       otel.Tracer("proofpack/proofpack"),
		maxRetries:   defaultMaxRetries,
		storeTimeout: defaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreatePack starts an empty draft pack owned by the caller.
func (s *Service) CreatePack(ctx context.Context, req *models.CreatePackRequest) (*models.ProofPack, error) {
	caller := requestcontext.UserID(ctx)
	now := requestcontext.Now(ctx)
	pack, err := models.NewProofPack(id.PackID(uuid.New()), caller, req.CompanyName, req.Industry, now)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
			return nil, dErrors.New(dErrors.CodeValidation, err.Error())
		}
		return nil, err
	}
	health, err := score.ComputeHealth(0, 0, 0, 0)
	if err != nil {
		return nil, err
	}
	pack.ApplyHealth(health, gaps.Analyze(pack, health, now), now)

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.store.Create(storeCtx, pack); err != nil {
		return nil, storeError(err, "failed to create proof pack")
	}
	s.logger.InfoContext(ctx, "proof pack created",
		"pack_id", pack.ID.String(),
		"owner_id", caller.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return pack, nil
}

// GetPack loads a pack without an ownership check. Collaborating modules use it
// after doing their own authorization.
func (s *Service) GetPack(ctx context.Context, packID id.PackID) (*models.ProofPack, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	pack, err := s.store.FindByID(storeCtx, packID)
	if err != nil {
		return nil, storeError(err, "failed to load proof pack")
	}
	return pack, nil
}

// GetOwnedPack loads a pack the caller may see: the owner, reviewers and admins.
func (s *Service) GetOwnedPack(ctx context.Context, packID id.PackID) (*models.ProofPack, error) {
	pack, err := s.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}
	if err := authorizeRead(ctx, pack); err != nil {
		return nil, err
	}
	return pack, nil
}

// ListApproved returns approved packs at or above filter.MinScore. No
// authorization is applied; the directory decides what to expose.
func (s *Service) ListApproved(ctx context.Context, filter models.DirectoryFilter) ([]*models.ProofPack, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	packs, err := s.store.ListApproved(storeCtx, filter)
	if err != nil {
		return nil, storeError(err, "failed to list approved proof packs")
	}
	return packs, nil
}

func (s *Service) ListMyPacks(ctx context.Context) ([]*models.ProofPack, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	packs, err := s.store.ListByOwner(storeCtx, requestcontext.UserID(ctx))
	if err != nil {
		return nil, storeError(err, "failed to list proof packs")
	}
	if packs == nil {
		packs = []*models.ProofPack{}
	}
	return packs, nil
}

// mutation edits a working copy of the pack. Returning an error aborts the
// attempt without writing.
type mutation func(pack *models.ProofPack, now time.Time) error

// mutate runs fn against the latest version and commits with compare-and-swap,
// replaying fn on conflict. With recompute set, health and gaps are derived
// from the mutated pack before the write.
func (s *Service) mutate(ctx context.Context, op string, packID id.PackID, recompute bool, fn mutation) (*models.ProofPack, error) {
	ctx, span := s.tracer.Start(ctx, "proofpack."+op, trace.WithAttributes(
		attribute.String("pack.id", packID.String()),
	))
	defer span.End()

	now := requestcontext.Now(ctx)
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeDependency, "request cancelled")
		}
		current, err := s.GetPack(ctx, packID)
		if err != nil {
			return nil, err
		}
		previousGaps := current.Gaps

		working := current.Clone()
		if err := fn(working, now); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		if recompute {
			if err := recomputeHealth(working, previousGaps, now); err != nil {
				return nil, err
			}
		}

		storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
		err = s.store.Update(storeCtx, working)
		cancel()
		if errors.Is(err, sentinel.ErrConflict) {
			s.incRecomputeConflict()
			s.logger.DebugContext(ctx, "proof pack version conflict, retrying",
				"pack_id", packID.String(),
				"attempt", attempt,
				"request_id", requestcontext.RequestID(ctx),
			)
			continue
		}
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, storeError(err, "failed to save proof pack")
		}

		if recompute {
			s.incRecomputation()
			s.emitNewlyExpiring(ctx, working, previousGaps)
		}
		span.SetAttributes(attribute.Int64("pack.version", working.Version))
		return working, nil
	}

	latest, err := s.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}
	span.SetStatus(codes.Error, "retries exhausted")
	return nil, dErrors.New(dErrors.CodeStateConflict, "proof pack is being modified concurrently").WithState(latest)
}

func recomputeHealth(pack *models.ProofPack, previousGaps []models.Gap, now time.Time) error {
	health, err := score.ComputeHealth(
		pack.Health.Completeness, pack.Health.Expiration, pack.Health.Quality, pack.Health.Remediation)
	if err != nil {
		return err
	}
	pack.ApplyHealth(health, gaps.Merge(previousGaps, gaps.Analyze(pack, health, now)), now)
	return nil
}

func applySubScores(pack *models.ProofPack, sub models.SubScores) {
	pack.Health.Completeness = sub.Completeness
	pack.Health.Expiration = sub.Expiration
	pack.Health.Quality = sub.Quality
	pack.Health.Remediation = sub.Remediation
}

func (s *Service) emitNewlyExpiring(ctx context.Context, pack *models.ProofPack, previous []models.Gap) {
	if s.notifier == nil {
		return
	}
	for _, gap := range gaps.NewlyExpiring(previous, pack.Gaps) {
		s.notifier.Emit(ctx, notification.Event{
			Kind:      notification.KindGapExpiring,
			PackID:    pack.ID,
			Recipient: pack.OwnerID,
			Attributes: map[string]string{
				"gap_id":      gap.ID.String(),
				"document_id": gap.DocumentID.String(),
				"severity":    string(gap.Severity),
			},
			OccurredAt: requestcontext.Now(ctx),
		})
	}
}

func authorizeRead(ctx context.Context, pack *models.ProofPack) error {
	if pack.IsOwnedBy(requestcontext.UserID(ctx)) ||
		requestcontext.HasRole(ctx, identity.RoleReviewer) || requestcontext.HasRole(ctx, identity.RoleAdmin) {
		return nil
	}
	return dErrors.New(dErrors.CodeNotFound, "proof pack not found")
}

func authorizeOwner(ctx context.Context, pack *models.ProofPack) error {
	if !pack.IsOwnedBy(requestcontext.UserID(ctx)) {
		return dErrors.New(dErrors.CodeNotFound, "proof pack not found")
	}
	return nil
}

// storeError translates store failures. Timeouts and backend faults surface as
// dependency failures.
func storeError(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "proof pack not found")
	case errors.Is(err, sentinel.ErrAlreadyExists):
		return dErrors.New(dErrors.CodeConflict, "proof pack already exists")
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeDependency, "pack store timed out")
	case errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeDependency, "request cancelled")
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeDependency, msg)
}

func (s *Service) incRecomputation() {
	if s.metrics != nil {
		s.metrics.ScoreRecomputations.Inc()
	}
}

func (s *Service) incRecomputeConflict() {
	if s.metrics != nil {
		s.metrics.RecomputeConflicts.Inc()
	}
}
