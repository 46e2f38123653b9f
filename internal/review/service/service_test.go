package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"proofpack/internal/identity"
	"proofpack/internal/notification"
	packmodels "proofpack/internal/proofpack/models"
	packservice "proofpack/internal/proofpack/service"
	packstore "proofpack/internal/proofpack/store"
	"proofpack/internal/review/models"
	"proofpack/internal/review/service/mocks"
	"proofpack/internal/review/store"
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
	"proofpack/pkg/requestcontext"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []notification.Event
}

func (n *recordingNotifier) Emit(_ context.Context, event notification.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Events() []notification.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.Event(nil), n.events...)
}

type ReviewServiceSuite struct {
	suite.Suite
	packs     *packservice.Service
	store     *store.InMemory
	notifier  *recordingNotifier
	service   *Service
	owner     id.UserID
	reviewer  id.UserID
	reviewer2 id.UserID
	now       time.Time
}

func TestReviewServiceSuite(t *testing.T) {
	suite.Run(t, new(ReviewServiceSuite))
}

func (s *ReviewServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.packs = packservice.New(packstore.NewInMemory(), packservice.WithLogger(logger))
	s.store = store.NewInMemory()
	s.notifier = &recordingNotifier{}
	s.service = New(s.store, s.packs, WithLogger(logger), WithNotifier(s.notifier))
	s.owner = id.UserID(uuid.New())
	s.reviewer = id.UserID(uuid.New())
	s.reviewer2 = id.UserID(uuid.New())
	s.now = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *ReviewServiceSuite) ctxFor(user id.UserID, roles ...string) context.Context {
	ctx := requestcontext.WithUserID(context.Background(), user)
	if len(roles) > 0 {
		ctx = requestcontext.WithRoles(ctx, roles)
	}
	return requestcontext.WithTime(ctx, s.now)
}

func (s *ReviewServiceSuite) ownerCtx() context.Context {
	return s.ctxFor(s.owner)
}

func (s *ReviewServiceSuite) reviewerCtx() context.Context {
	return s.ctxFor(s.reviewer, identity.RoleReviewer)
}

// packWithScores creates a pack whose overall score follows from one document
// carrying the given sub-scores.
func (s *ReviewServiceSuite) packWithScores(c, e, q, r float64) *packmodels.ProofPack {
	pack, err := s.packs.CreatePack(s.ownerCtx(), &packmodels.CreatePackRequest{
		CompanyName: "Northwind Logistics",
		Industry:    "logistics",
	})
	s.Require().NoError(err)
	pack, _, err = s.packs.AddDocument(s.ownerCtx(), pack.ID, &packmodels.DocumentRequest{
		Category:    string(packmodels.DocumentInsurance),
		FileName:    "liability.pdf",
		ContentType: "application/pdf",
		SizeBytes:   4096,
		StorageKey:  "packs/northwind/liability.pdf",
		SubScores:   &packmodels.SubScores{Completeness: c, Expiration: e, Quality: q, Remediation: r},
	})
	s.Require().NoError(err)
	return pack
}

func (s *ReviewServiceSuite) submitted(c, e, q, r float64) (*packmodels.ProofPack, *models.QAReview) {
	pack := s.packWithScores(c, e, q, r)
	review, err := s.service.Submit(s.ownerCtx(), pack.ID)
	s.Require().NoError(err)
	return pack, review
}

func (s *ReviewServiceSuite) packStatus(packID id.PackID) packmodels.PackStatus {
	pack, err := s.packs.GetPack(context.Background(), packID)
	s.Require().NoError(err)
	return pack.Status
}

func (s *ReviewServiceSuite) TestSubmit() {
	s.Run("schedules a review and submits the pack", func() {
		pack, review := s.submitted(90, 80, 70, 100)
		s.Equal(models.StatusScheduled, review.Status)
		s.Equal(models.DecisionNone, review.Decision)
		s.Nil(review.ReviewerID)
		s.Equal(s.now, review.ScheduledAt)
		s.Equal(packmodels.PackStatusSubmitted, s.packStatus(pack.ID))
	})

	s.Run("a second submission conflicts", func() {
		pack, _ := s.submitted(90, 80, 70, 100)
		_, err := s.service.Submit(s.ownerCtx(), pack.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeStateConflict))
	})

	s.Run("only one active review even when the pack is back in draft", func() {
		pack, review := s.submitted(90, 80, 70, 100)
		_, err := s.packs.RevertToDraft(context.Background(), pack.ID)
		s.Require().NoError(err)

		_, err = s.service.Submit(s.ownerCtx(), pack.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeStateConflict))
		de, _ := dErrors.As(err)
		active, ok := de.State.(*models.QAReview)
		s.Require().True(ok)
		s.Equal(review.ID, active.ID)
	})

	s.Run("someone else's pack is not found", func() {
		pack := s.packWithScores(90, 80, 70, 100)
		_, err := s.service.Submit(s.ctxFor(id.UserID(uuid.New())), pack.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		s.Equal(packmodels.PackStatusDraft, s.packStatus(pack.ID))
	})
}

func (s *ReviewServiceSuite) TestReject() {
	s.Run("without comments is a validation error", func() {
		pack, review := s.submitted(90, 80, 70, 100)
		_, err := s.service.Complete(s.reviewerCtx(), review.ID, models.DecisionRejected, "  ")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal(packmodels.PackStatusSubmitted, s.packStatus(pack.ID))
		s.Empty(s.notifier.Events())
	})

	s.Run("with comments rejects the pack and notifies the owner", func() {
		pack, review := s.submitted(90, 80, 70, 100)
		completed, err := s.service.Complete(s.reviewerCtx(), review.ID, models.DecisionRejected, "insurance certificate is illegible")
		s.Require().NoError(err)
		s.Equal(models.StatusCompleted, completed.Status)
		s.Equal(models.DecisionRejected, completed.Decision)
		s.True(completed.IsReviewer(s.reviewer))
		s.Equal(packmodels.PackStatusRejected, s.packStatus(pack.ID))

		var found bool
		for _, e := range s.notifier.Events() {
			if e.Kind == notification.KindReviewCompleted && e.PackID == pack.ID {
				found = true
				s.Equal(s.owner, e.Recipient)
				s.Equal("rejected", e.Attributes["decision"])
			}
		}
		s.True(found)
	})
}

func (s *ReviewServiceSuite) TestApprove() {
	s.Run("open critical finding blocks approval until resolved", func() {
		pack, review := s.submitted(90, 80, 70, 100)
		_, err := s.service.Claim(s.reviewerCtx(), review.ID)
		s.Require().NoError(err)
		withFinding, err := s.service.AddFinding(s.reviewerCtx(), review.ID, &models.AddFindingRequest{
			Severity:    "critical",
			Category:    "insurance",
			Description: "public liability cover expired",
		})
		s.Require().NoError(err)
		s.Require().Len(withFinding.Findings, 1)

		_, err = s.service.Complete(s.reviewerCtx(), review.ID, models.DecisionApproved, "")
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeStateConflict))
		s.Equal(packmodels.PackStatusSubmitted, s.packStatus(pack.ID))

		_, err = s.service.ResolveFinding(s.reviewerCtx(), review.ID, withFinding.Findings[0].ID)
		s.Require().NoError(err)
		approved, err := s.service.Complete(s.reviewerCtx(), review.ID, models.DecisionApproved, "")
		s.Require().NoError(err)
		s.Equal(models.DecisionApproved, approved.Decision)
		s.Equal(packmodels.PackStatusApproved, s.packStatus(pack.ID))
	})

	s.Run("downgrading the critical finding also unblocks approval", func() {
		_, review := s.submitted(90, 80, 70, 100)
		_, err := s.service.Claim(s.reviewerCtx(), review.ID)
		s.Require().NoError(err)
		withFinding, err := s.service.AddFinding(s.reviewerCtx(), review.ID, &models.AddFindingRequest{
			Severity: "critical", Category: "policy", Description: "no signed policy",
		})
		s.Require().NoError(err)
		_, err = s.service.DowngradeFinding(s.reviewerCtx(), review.ID, withFinding.Findings[0].ID, models.SeverityMinor)
		s.Require().NoError(err)
		_, err = s.service.Complete(s.reviewerCtx(), review.ID, models.DecisionApproved, "")
		s.NoError(err)
	})

	s.Run("low score needs a justification", func() {
		pack, review := s.submitted(50, 50, 50, 50)
		_, err := s.service.Complete(s.reviewerCtx(), review.ID, models.DecisionApproved, "")
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))

		_, err = s.service.Complete(s.reviewerCtx(), review.ID, models.DecisionApproved, "site visit confirmed practices")
		s.Require().NoError(err)
		s.Equal(packmodels.PackStatusApproved, s.packStatus(pack.ID))
	})

	s.Run("relaxed policy approves without justification", func() {
		s.service = New(s.store, s.packs, WithPolicy(models.Policy{}),
			WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
		_, review := s.submitted(50, 50, 50, 50)
		_, err := s.service.Complete(s.reviewerCtx(), review.ID, models.DecisionApproved, "")
		s.NoError(err)
	})
}

func (s *ReviewServiceSuite) TestConcurrentClaims() {
	_, review := s.submitted(90, 80, 70, 100)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		wins    int
		loserEr error
	)
	for _, user := range []id.UserID{s.reviewer, s.reviewer2} {
		wg.Add(1)
		go func(user id.UserID) {
			defer wg.Done()
			_, err := s.service.Claim(s.ctxFor(user, identity.RoleReviewer), review.ID)
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				wins++
				return
			}
			loserEr = err
		}(user)
	}
	wg.Wait()

	s.Equal(1, wins)
	s.Require().Error(loserEr)
	s.True(dErrors.HasCode(loserEr, dErrors.CodeStateConflict))
	de, ok := dErrors.As(loserEr)
	s.Require().True(ok)
	current, ok := de.State.(*models.QAReview)
	s.Require().True(ok)
	s.Equal(models.StatusInProgress, current.Status)
	s.NotNil(current.ReviewerID)
}

func (s *ReviewServiceSuite) TestClaimedReviewBelongsToHolder() {
	_, review := s.submitted(90, 80, 70, 100)
	_, err := s.service.Claim(s.reviewerCtx(), review.ID)
	s.Require().NoError(err)

	other := s.ctxFor(s.reviewer2, identity.RoleReviewer)
	_, err = s.service.AddFinding(other, review.ID, &models.AddFindingRequest{
		Severity: "minor", Category: "quality", Description: "typo",
	})
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	admin := s.ctxFor(id.UserID(uuid.New()), identity.RoleAdmin)
	_, err = s.service.Complete(admin, review.ID, models.DecisionRejected, "escalated")
	s.NoError(err)
}

func (s *ReviewServiceSuite) TestCancel() {
	pack, review := s.submitted(90, 80, 70, 100)
	cancelled, err := s.service.Cancel(s.reviewerCtx(), review.ID, "owner asked to withdraw")
	s.Require().NoError(err)
	s.Equal(models.StatusCancelled, cancelled.Status)
	s.Equal(models.DecisionNone, cancelled.Decision)
	s.Equal(packmodels.PackStatusDraft, s.packStatus(pack.ID))

	_, err = s.service.Cancel(s.reviewerCtx(), review.ID, "")
	s.True(dErrors.HasCode(err, dErrors.CodeStateConflict))

	again, err := s.service.Submit(s.ownerCtx(), pack.ID)
	s.Require().NoError(err)
	s.NotEqual(review.ID, again.ID)
}

func (s *ReviewServiceSuite) TestAct() {
	s.Run("dispatches to the pack's active review", func() {
		pack, _ := s.submitted(90, 80, 70, 100)
		claimed, err := s.service.Act(s.reviewerCtx(), &models.ReviewActionRequest{
			ProofPackID: pack.ID.String(), Action: "claim",
		})
		s.Require().NoError(err)
		s.Equal(models.StatusInProgress, claimed.Status)

		done, err := s.service.Act(s.reviewerCtx(), &models.ReviewActionRequest{
			ProofPackID: pack.ID.String(), Action: "reject", Comments: "missing audit",
		})
		s.Require().NoError(err)
		s.Equal(models.DecisionRejected, done.Decision)

		_, err = s.service.Act(s.reviewerCtx(), &models.ReviewActionRequest{
			ProofPackID: pack.ID.String(), Action: "approve", Comments: "changed my mind",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeStateConflict))
		de, _ := dErrors.As(err)
		latest, ok := de.State.(*models.QAReview)
		s.Require().True(ok)
		s.Equal(models.DecisionRejected, latest.Decision)
	})

	s.Run("pack without reviews is not found", func() {
		pack := s.packWithScores(90, 80, 70, 100)
		_, err := s.service.Act(s.reviewerCtx(), &models.ReviewActionRequest{
			ProofPackID: pack.ID.String(), Action: "approve",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *ReviewServiceSuite) TestResolveAfterCompletion() {
	_, review := s.submitted(90, 80, 70, 100)
	_, err := s.service.Claim(s.reviewerCtx(), review.ID)
	s.Require().NoError(err)
	withFinding, err := s.service.AddFinding(s.reviewerCtx(), review.ID, &models.AddFindingRequest{
		Severity: "major", Category: "financial", Description: "accounts are two years old",
	})
	s.Require().NoError(err)
	_, err = s.service.Complete(s.reviewerCtx(), review.ID, models.DecisionRejected, "update accounts")
	s.Require().NoError(err)

	resolved, err := s.service.ResolveFinding(s.reviewerCtx(), review.ID, withFinding.Findings[0].ID)
	s.Require().NoError(err)
	s.Equal(models.StatusCompleted, resolved.Status)
	s.Equal(models.DecisionRejected, resolved.Decision)
	s.Equal(models.FindingResolved, resolved.Findings[0].Status)
}

func (s *ReviewServiceSuite) TestListReviews() {
	s.submitted(90, 80, 70, 100)
	_, second := s.submitted(90, 80, 70, 100)
	_, err := s.service.Claim(s.reviewerCtx(), second.ID)
	s.Require().NoError(err)

	queue, err := s.service.ListReviews(s.reviewerCtx(), "")
	s.Require().NoError(err)
	s.Len(queue, 1)

	inProgress, err := s.service.ListReviews(s.reviewerCtx(), models.StatusInProgress)
	s.Require().NoError(err)
	s.Len(inProgress, 1)
	s.Equal(second.ID, inProgress[0].ID)

	_, err = s.service.ListReviews(s.reviewerCtx(), "paused")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
}

func (s *ReviewServiceSuite) TestPackOutcomeFailureRestoresReview() {
	ctrl := gomock.NewController(s.T())
	gateway := mocks.NewMockPackGateway(ctrl)
	svc := New(s.store, gateway, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	packID := id.PackID(uuid.New())
	review := models.NewQAReview(id.ReviewID(uuid.New()), packID, s.now)
	s.Require().NoError(s.store.Create(context.Background(), review))
	_, err := svc.Claim(s.reviewerCtx(), review.ID)
	s.Require().NoError(err)

	gateway.EXPECT().GetPack(gomock.Any(), packID).Return(&packmodels.ProofPack{
		ID: packID, OwnerID: s.owner, Status: packmodels.PackStatusSubmitted, Version: 4,
	}, nil)
	gateway.EXPECT().ApplyReviewOutcome(gomock.Any(), packID, false, int64(4)).
		Return(nil, dErrors.New(dErrors.CodeDependency, "pack store unavailable"))

	_, err = svc.Complete(s.reviewerCtx(), review.ID, models.DecisionRejected, "incomplete")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeDependency))

	stored, err := s.store.FindByID(context.Background(), review.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusInProgress, stored.Status)
	s.Equal(models.DecisionNone, stored.Decision)
	s.Nil(stored.CompletedAt)
}

func (s *ReviewServiceSuite) TestStoreFailureIsDependency() {
	ctrl := gomock.NewController(s.T())
	st := mocks.NewMockStore(ctrl)
	svc := New(st, s.packs, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	st.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(nil, context.DeadlineExceeded)
	_, err := svc.Claim(s.reviewerCtx(), id.ReviewID(uuid.New()))
	s.True(dErrors.HasCode(err, dErrors.CodeDependency))
}

// racingPacks runs hook once, after the review service has read the pack and
// before it records the outcome.
type racingPacks struct {
	*packservice.Service
	mu   sync.Mutex
	hook func()
}

func (p *racingPacks) GetPack(ctx context.Context, packID id.PackID) (*packmodels.ProofPack, error) {
	pack, err := p.Service.GetPack(ctx, packID)
	p.mu.Lock()
	hook := p.hook
	p.hook = nil
	p.mu.Unlock()
	if hook != nil {
		hook()
	}
	return pack, err
}

func (s *ReviewServiceSuite) TestScoreDropDuringApprovalConflicts() {
	pack, review := s.submitted(90, 80, 70, 100)
	racing := &racingPacks{Service: s.packs}
	svc := New(s.store, racing, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	_, err := svc.Claim(s.reviewerCtx(), review.ID)
	s.Require().NoError(err)

	racing.hook = func() {
		_, err := s.packs.OverrideSubScores(s.ctxFor(s.owner, identity.RoleAdmin), pack.ID, &packmodels.OverrideRequest{
			SubScores: packmodels.SubScores{Completeness: 20, Expiration: 20, Quality: 20, Remediation: 20},
			Reason:    "insurer withdrew cover",
		})
		s.Require().NoError(err)
	}

	_, err = svc.Complete(s.reviewerCtx(), review.ID, models.DecisionApproved, "")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeStateConflict), "got %v", err)

	stored, err := s.store.FindByID(context.Background(), review.ID)
	s.Require().NoError(err)
	s.Equal(models.StatusInProgress, stored.Status)
	s.Equal(models.DecisionNone, stored.Decision)
	s.Equal(packmodels.PackStatusSubmitted, s.packStatus(pack.ID))

	_, err = svc.Complete(s.reviewerCtx(), review.ID, models.DecisionApproved, "")
	s.True(dErrors.HasCode(err, dErrors.CodeValidation), "low score now needs a justification, got %v", err)

	completed, err := svc.Complete(s.reviewerCtx(), review.ID, models.DecisionApproved, "remediation plan on file")
	s.Require().NoError(err)
	s.Equal(models.DecisionApproved, completed.Decision)
	s.Equal(packmodels.PackStatusApproved, s.packStatus(pack.ID))
}
