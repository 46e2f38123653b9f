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

	"proofpack/internal/identity"
	"proofpack/internal/notification"
	"proofpack/internal/platform/metrics"
	packmodels "proofpack/internal/proofpack/models"
	"proofpack/internal/review/models"
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
	"proofpack/pkg/platform/sentinel"
	"proofpack/pkg/requestcontext"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store,PackGateway,Notifier

const defaultStoreTimeout = 5 * time.Second

type Store interface {
	Create(ctx context.Context, review *models.QAReview) error
	FindByID(ctx context.Context, reviewID id.ReviewID) (*models.QAReview, error)
	FindActiveByPack(ctx context.Context, packID id.PackID) (*models.QAReview, error)
	ListByPack(ctx context.Context, packID id.PackID) ([]*models.QAReview, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.QAReview, error)
	Update(ctx context.Context, review *models.QAReview) error
}

// PackGateway is the part of the pack service the workflow drives.
type PackGateway interface {
	GetPack(ctx context.Context, packID id.PackID) (*packmodels.ProofPack, error)
	MarkSubmitted(ctx context.Context, packID id.PackID) (*packmodels.ProofPack, error)
	ApplyReviewOutcome(ctx context.Context, packID id.PackID, approved bool, judgedVersion int64) (*packmodels.ProofPack, error)
	RevertToDraft(ctx context.Context, packID id.PackID) (*packmodels.ProofPack, error)
}

type Notifier interface {
	Emit(ctx context.Context, event notification.Event)
}

// Service runs the QA review state machine. Each transition is a single
// version-checked write of the review; a caller that loses the race receives
// a state conflict carrying the review as stored.
type Service struct {
	store        Store
	packs        PackGateway
	logger       *slog.Logger
	notifier     Notifier
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	policy       models.Policy
	locks        packLocks
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

// WithPolicy replaces the strict approval policy.
func WithPolicy(p models.Policy) Option {
	return func(s *Service) {
		s.policy = p
	}
}

func WithStoreTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storeTimeout = d
			s.locks.timeout = d
		}
	}
}

func New(store Store, packs PackGateway, opts ...Option) *Service {
	s := &Service{
		store:        store,
		packs:        packs,
		logger:       slog.Default(),
		tracer:       otel.Tracer("proofpack/review"),
		policy:       models.StrictPolicy(),
		storeTimeout: defaultStoreTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit schedules a review for the caller's pack and moves the pack to
// submitted.
func (s *Service) Submit(ctx context.Context, packID id.PackID) (*models.QAReview, error) {
	ctx, span := s.tracer.Start(ctx, "review.submit", trace.WithAttributes(
		attribute.String("pack.id", packID.String()),
	))
	defer span.End()

	var review *models.QAReview
	err := s.locks.run(ctx, packID, func(ctx context.Context) error {
		pack, err := s.packs.GetPack(ctx, packID)
		if err != nil {
			return err
		}
		if !pack.IsOwnedBy(requestcontext.UserID(ctx)) {
			return dErrors.New(dErrors.CodeNotFound, "proof pack not found")
		}
		if err := pack.CanTransitionTo(packmodels.PackStatusSubmitted); err != nil {
			return err
		}

		review = models.NewQAReview(id.ReviewID(uuid.New()), packID, requestcontext.Now(ctx))
		storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
		err = s.store.Create(storeCtx, review)
		cancel()
		if errors.Is(err, sentinel.ErrAlreadyExists) {
			active, findErr := s.store.FindActiveByPack(ctx, packID)
			if findErr != nil {
				return storeError(findErr, "failed to load active review")
			}
			return dErrors.New(dErrors.CodeStateConflict, "proof pack already has an active review").WithState(active)
		}
		if err != nil {
			return storeError(err, "failed to schedule review")
		}

		if _, err := s.packs.MarkSubmitted(ctx, packID); err != nil {
			s.compensate(ctx, review, func(r *models.QAReview, now time.Time) {
				r.ApplyCancel("submission failed", now)
			})
			return err
		}
		return nil
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.recordTransition(models.StatusScheduled, err)
		return nil, err
	}
	s.recordTransition(models.StatusScheduled, nil)
	s.logger.InfoContext(ctx, "review scheduled",
		"review_id", review.ID.String(),
		"pack_id", packID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return review, nil
}

// Act resolves the pack's active review and applies action to it.
func (s *Service) Act(ctx context.Context, req *models.ReviewActionRequest) (*models.QAReview, error) {
	packID, err := id.ParsePackID(req.ProofPackID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid review action").WithField("proofPackId", "must be a valid id")
	}
	review, err := s.activeReview(ctx, packID)
	if err != nil {
		return nil, err
	}
	switch models.Action(req.Action) {
	case models.ActionClaim:
		return s.Claim(ctx, review.ID)
	case models.ActionApprove:
		return s.Complete(ctx, review.ID, models.DecisionApproved, req.Comments)
	case models.ActionReject:
		return s.Complete(ctx, review.ID, models.DecisionRejected, req.Comments)
	case models.ActionCancel:
		return s.Cancel(ctx, review.ID, req.Comments)
	}
	return nil, dErrors.New(dErrors.CodeValidation, "invalid review action").
		WithField("action", "must be one of approve, reject, claim, cancel")
}

// activeReview finds the scheduled or in-progress review for a pack. When the
// pack only has closed reviews the latest one is returned as conflict state.
func (s *Service) activeReview(ctx context.Context, packID id.PackID) (*models.QAReview, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	review, err := s.store.FindActiveByPack(storeCtx, packID)
	if err == nil {
		return review, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, storeError(err, "failed to load active review")
	}
	history, err := s.store.ListByPack(storeCtx, packID)
	if err != nil {
		return nil, storeError(err, "failed to load reviews")
	}
	if len(history) == 0 {
		return nil, dErrors.New(dErrors.CodeNotFound, "no review for proof pack")
	}
	latest := history[len(history)-1]
	return nil, dErrors.New(dErrors.CodeStateConflict, "review is already "+string(latest.Status)).WithState(latest)
}

// Claim assigns the caller as reviewer. Of two concurrent claims exactly one
// succeeds.
func (s *Service) Claim(ctx context.Context, reviewID id.ReviewID) (*models.QAReview, error) {
	caller := requestcontext.UserID(ctx)
	review, err := s.apply(ctx, "claim", reviewID, func(r *models.QAReview, now time.Time) error {
		if err := r.CanClaim(); err != nil {
			return err
		}
		r.ApplyClaim(caller, now)
		return nil
	})
	s.recordTransition(models.StatusInProgress, err)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "review claimed",
		"review_id", reviewID.String(),
		"reviewer_id", caller.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return review, nil
}

// Complete records the decision, moves the pack to approved or rejected and
// notifies the pack owner.
func (s *Service) Complete(ctx context.Context, reviewID id.ReviewID, decision models.Decision, comments string) (*models.QAReview, error) {
	current, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	caller := requestcontext.UserID(ctx)

	var (
		review, before *models.QAReview
		pack           *packmodels.ProofPack
	)
	err = s.locks.run(ctx, current.ProofPackID, func(ctx context.Context) error {
		var err error
		pack, err = s.packs.GetPack(ctx, current.ProofPackID)
		if err != nil {
			return err
		}
		review, err = s.apply(ctx, "complete", reviewID, func(r *models.QAReview, now time.Time) error {
			before = r.Clone()
			if err := s.authorizeReviewer(ctx, r); err != nil {
				return err
			}
			if err := r.CanComplete(decision, comments, pack.Health.Overall, s.policy); err != nil {
				return err
			}
			r.ApplyCompletion(decision, comments, caller, now)
			return nil
		})
		if err != nil {
			return err
		}
		pack, err = s.packs.ApplyReviewOutcome(ctx, review.ProofPackID, decision == models.DecisionApproved, pack.Version)
		if err != nil {
			s.restore(ctx, review, before)
			return err
		}
		return nil
	})
	s.recordTransition(models.StatusCompleted, err)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "review completed",
		"review_id", reviewID.String(),
		"pack_id", review.ProofPackID.String(),
		"decision", string(decision),
		"request_id", requestcontext.RequestID(ctx),
	)
	if s.notifier != nil {
		s.notifier.Emit(ctx, notification.Event{
			Kind:      notification.KindReviewCompleted,
			PackID:    review.ProofPackID,
			Recipient: pack.OwnerID,
			Attributes: map[string]string{
				"review_id": review.ID.String(),
				"decision":  string(review.Decision),
			},
			OccurredAt: requestcontext.Now(ctx),
		})
	}
	return review, nil
}

// Cancel closes the review without a decision and returns the pack to draft.
func (s *Service) Cancel(ctx context.Context, reviewID id.ReviewID, comments string) (*models.QAReview, error) {
	current, err := s.GetReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	var review, before *models.QAReview
	err = s.locks.run(ctx, current.ProofPackID, func(ctx context.Context) error {
		var err error
		review, err = s.apply(ctx, "cancel", reviewID, func(r *models.QAReview, now time.Time) error {
			before = r.Clone()
			if err := s.authorizeReviewer(ctx, r); err != nil {
				return err
			}
			if err := r.CanCancel(); err != nil {
				return err
			}
			r.ApplyCancel(comments, now)
			return nil
		})
		if err != nil {
			return err
		}
		if _, err := s.packs.RevertToDraft(ctx, review.ProofPackID); err != nil {
			s.restore(ctx, review, before)
			return err
		}
		return nil
	})
	s.recordTransition(models.StatusCancelled, err)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "review cancelled",
		"review_id", reviewID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return review, nil
}

func (s *Service) AddFinding(ctx context.Context, reviewID id.ReviewID, req *models.AddFindingRequest) (*models.QAReview, error) {
	findingID := id.FindingID(uuid.New())
	return s.apply(ctx, "add_finding", reviewID, func(r *models.QAReview, now time.Time) error {
		if err := s.authorizeReviewer(ctx, r); err != nil {
			return err
		}
		if err := r.CanAddFinding(); err != nil {
			return err
		}
		r.ApplyAddFinding(models.Finding{
			ID:          findingID,
			Severity:    models.Severity(req.Severity),
			Category:    req.Category,
			Description: req.Description,
			Status:      models.FindingOpen,
			CreatedAt:   now,
		})
		return nil
	})
}

// ResolveFinding closes a finding. Completed reviews accept it for remediation
// tracking; the decision is left as it was.
func (s *Service) ResolveFinding(ctx context.Context, reviewID id.ReviewID, findingID id.FindingID) (*models.QAReview, error) {
	return s.apply(ctx, "resolve_finding", reviewID, func(r *models.QAReview, now time.Time) error {
		return r.ResolveFinding(findingID, now)
	})
}

func (s *Service) DowngradeFinding(ctx context.Context, reviewID id.ReviewID, findingID id.FindingID, to models.Severity) (*models.QAReview, error) {
	return s.apply(ctx, "downgrade_finding", reviewID, func(r *models.QAReview, _ time.Time) error {
		if err := s.authorizeReviewer(ctx, r); err != nil {
			return err
		}
		return r.DowngradeFinding(findingID, to)
	})
}

func (s *Service) GetReview(ctx context.Context, reviewID id.ReviewID) (*models.QAReview, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	review, err := s.store.FindByID(storeCtx, reviewID)
	if err != nil {
		return nil, storeError(err, "failed to load review")
	}
	return review, nil
}

// ListReviews returns reviews in the given status, oldest first. The default
// is the queue of scheduled reviews.
func (s *Service) ListReviews(ctx context.Context, status models.Status) ([]*models.QAReview, error) {
	if status == "" {
		status = models.StatusScheduled
	}
	if !status.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid status").
			WithField("status", "must be scheduled, in_progress, completed or cancelled")
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	reviews, err := s.store.ListByStatus(storeCtx, status)
	if err != nil {
		return nil, storeError(err, "failed to list reviews")
	}
	if reviews == nil {
		reviews = []*models.QAReview{}
	}
	return reviews, nil
}

// ListPackReviews returns the review history of a pack the caller owns.
func (s *Service) ListPackReviews(ctx context.Context, packID id.PackID) ([]*models.QAReview, error) {
	pack, err := s.packs.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}
	if !pack.IsOwnedBy(requestcontext.UserID(ctx)) && !isStaff(ctx) {
		return nil, dErrors.New(dErrors.CodeNotFound, "proof pack not found")
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	reviews, err := s.store.ListByPack(storeCtx, packID)
	if err != nil {
		return nil, storeError(err, "failed to list reviews")
	}
	if reviews == nil {
		reviews = []*models.QAReview{}
	}
	return reviews, nil
}

// change edits a working copy of a review. Returning an error aborts the
// write.
type change func(r *models.QAReview, now time.Time) error

// apply performs one version-checked write. A lost race is reported with the
// review as currently stored.
func (s *Service) apply(ctx context.Context, op string, reviewID id.ReviewID, fn change) (*models.QAReview, error) {
	ctx, span := s.tracer.Start(ctx, "review."+op, trace.WithAttributes(
		attribute.String("review.id", reviewID.String()),
	))
	defer span.End()

	current, err := s.GetReview(ctx, reviewID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	working := current.Clone()
	if err := fn(working, requestcontext.Now(ctx)); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	err = s.store.Update(storeCtx, working)
	cancel()
	if errors.Is(err, sentinel.ErrConflict) {
		span.SetStatus(codes.Error, "version conflict")
		latest, findErr := s.GetReview(ctx, reviewID)
		if findErr != nil {
			return nil, findErr
		}
		return nil, dErrors.New(dErrors.CodeStateConflict, "review was modified concurrently").WithState(latest)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, storeError(err, "failed to save review")
	}
	span.SetAttributes(attribute.Int64("review.version", working.Version))
	return working, nil
}

// compensate applies fn to a freshly written review after a later step
// failed. It runs detached from the request's cancellation.
func (s *Service) compensate(ctx context.Context, review *models.QAReview, fn func(r *models.QAReview, now time.Time)) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()
	working := review.Clone()
	fn(working, requestcontext.Now(ctx))
	if err := s.store.Update(ctx, working); err != nil {
		s.logger.ErrorContext(ctx, "failed to compensate review",
			"review_id", review.ID.String(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
	}
}

// restore writes back the review as it was before a transition whose pack
// side failed.
func (s *Service) restore(ctx context.Context, written, before *models.QAReview) {
	s.compensate(ctx, written, func(r *models.QAReview, _ time.Time) {
		version := r.Version
		*r = *before.Clone()
		r.Version = version
	})
}

// authorizeReviewer lets any reviewer act on an unclaimed review; once claimed
// only the holder or an admin may.
func (s *Service) authorizeReviewer(ctx context.Context, r *models.QAReview) error {
	if requestcontext.HasRole(ctx, identity.RoleAdmin) || r.ReviewerID == nil {
		return nil
	}
	if r.IsReviewer(requestcontext.UserID(ctx)) {
		return nil
	}
	return dErrors.New(dErrors.CodeForbidden, "review is held by another reviewer")
}

func isStaff(ctx context.Context) bool {
	return requestcontext.HasRole(ctx, identity.RoleReviewer) || requestcontext.HasRole(ctx, identity.RoleAdmin)
}

func (s *Service) recordTransition(to models.Status, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "ok"
	switch {
	case err == nil:
	case dErrors.HasCode(err, dErrors.CodeStateConflict):
		outcome = "conflict"
	case dErrors.HasCode(err, dErrors.CodeValidation):
		outcome = "invalid"
	default:
		outcome = "error"
	}
	s.metrics.ReviewTransitions.WithLabelValues(string(to), outcome).Inc()
}

func storeError(err error, msg string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "review not found")
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeDependency, "review store timed out")
	case errors.Is(err, context.Canceled):
		return dErrors.Wrap(err, dErrors.CodeDependency, "request cancelled")
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeDependency, msg)
}
