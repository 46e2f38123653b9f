package service

import (
	"context"
	"time"

	"proofpack/internal/proofpack/models"
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
	"proofpack/pkg/requestcontext"
)

// guard vetoes a status transition against the pack as currently stored.
type guard func(p *models.ProofPack) error

// MarkSubmitted moves the caller's pack into review.
func (s *Service) MarkSubmitted(ctx context.Context, packID id.PackID) (*models.ProofPack, error) {
	return s.transition(ctx, "submit", packID, models.PackStatusSubmitted, func(p *models.ProofPack) error {
		return authorizeOwner(ctx, p)
	})
}

// ApplyReviewOutcome records a completed review's decision on the pack. The
// decision was taken against the pack at judgedVersion; a pack that has moved
// on since then is a state conflict carrying the current pack.
func (s *Service) ApplyReviewOutcome(ctx context.Context, packID id.PackID, approved bool, judgedVersion int64) (*models.ProofPack, error) {
	next := models.PackStatusRejected
	if approved {
		next = models.PackStatusApproved
	}
	return s.transition(ctx, "apply_review_outcome", packID, next, func(p *models.ProofPack) error {
		if p.Version != judgedVersion {
			return dErrors.New(dErrors.CodeStateConflict, "proof pack changed during review").WithState(p.Clone())
		}
		return nil
	})
}

// RevertToDraft returns a submitted pack to draft after its review is cancelled.
func (s *Service) RevertToDraft(ctx context.Context, packID id.PackID) (*models.ProofPack, error) {
	return s.transition(ctx, "revert_to_draft", packID, models.PackStatusDraft, nil)
}

func (s *Service) transition(ctx context.Context, op string, packID id.PackID, next models.PackStatus, check guard) (*models.ProofPack, error) {
	pack, err := s.mutate(ctx, op, packID, false, func(p *models.ProofPack, now time.Time) error {
		if check != nil {
			if err := check(p); err != nil {
				return err
			}
		}
		if err := p.CanTransitionTo(next); err != nil {
			return err
		}
		p.ApplyStatus(next, now)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "proof pack status changed",
		"pack_id", packID.String(),
		"status", string(next),
		"request_id", requestcontext.RequestID(ctx),
	)
	return pack, nil
}
