package models

import (
	"strings"
	"time"

	"proofpack/internal/proofpack/score"
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
)

// QAReview is the aggregate root for one human review of a proof pack.
//
// Invariants:
//   - Status follows the transition table; completed and cancelled are final
//   - Decision is none unless Status is completed
//   - ReviewerID is set by Claim, or by completion straight from scheduled
//   - Version increases by exactly one on every persisted transition
type QAReview struct {
	ID          id.ReviewID `json:"id"`
	ProofPackID id.PackID   `json:"proof_pack_id"`
	ReviewerID  *id.UserID  `json:"reviewer_id,omitempty"`
	Status      Status      `json:"status"`
	Decision    Decision    `json:"decision"`
	Comments    string      `json:"comments,omitempty"`
	Findings    []Finding   `json:"findings"`
	ScheduledAt time.Time   `json:"scheduled_at"`
	StartedAt   *time.Time  `json:"started_at,omitempty"`
	CompletedAt *time.Time  `json:"completed_at,omitempty"`
	CancelledAt *time.Time  `json:"cancelled_at,omitempty"`
	Version     int64       `json:"version"`
}

// Finding is an issue the reviewer raised against the pack.
type Finding struct {
	ID          id.FindingID  `json:"id"`
	Severity    Severity      `json:"severity"`
	Category    string        `json:"category"`
	Description string        `json:"description"`
	Status      FindingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	ResolvedAt  *time.Time    `json:"resolved_at,omitempty"`
}

// Policy holds the approval rules that configuration may relax.
type Policy struct {
	// BlockOnOpenCritical forbids approval while a critical finding is open.
	BlockOnOpenCritical bool
	// RequireLowScoreJustification demands comments when approving a pack
	// below score.EligibilityThreshold.
	RequireLowScoreJustification bool
}

func StrictPolicy() Policy {
	return Policy{BlockOnOpenCritical: true, RequireLowScoreJustification: true}
}

func NewQAReview(reviewID id.ReviewID, packID id.PackID, now time.Time) *QAReview {
	return &QAReview{
		ID:          reviewID,
		ProofPackID: packID,
		Status:      StatusScheduled,
		Decision:    DecisionNone,
		Findings:    []Finding{},
		ScheduledAt: now,
	}
}

func (r *QAReview) conflict(msg string) error {
	return dErrors.New(dErrors.CodeStateConflict, msg).WithState(r.Clone())
}

// CanClaim checks that the review is still waiting for a reviewer.
func (r *QAReview) CanClaim() error {
	if r.Status != StatusScheduled {
		return r.conflict("review has already been claimed or closed")
	}
	return nil
}

func (r *QAReview) ApplyClaim(reviewer id.UserID, now time.Time) {
	r.Status = StatusInProgress
	r.ReviewerID = &reviewer
	started := now
	r.StartedAt = &started
}

func (r *QAReview) CanAddFinding() error {
	if r.Status != StatusInProgress {
		return r.conflict("findings can only be added while the review is in progress")
	}
	return nil
}

func (r *QAReview) ApplyAddFinding(f Finding) {
	r.Findings = append(r.Findings, f)
}

func (r *QAReview) finding(findingID id.FindingID) (*Finding, error) {
	for i := range r.Findings {
		if r.Findings[i].ID == findingID {
			return &r.Findings[i], nil
		}
	}
	return nil, dErrors.New(dErrors.CodeNotFound, "finding not found")
}

// ResolveFinding closes an open finding. It is permitted after completion
// for remediation tracking and never touches the decision.
func (r *QAReview) ResolveFinding(findingID id.FindingID, now time.Time) error {
	if r.Status == StatusCancelled || r.Status == StatusScheduled {
		return r.conflict("findings cannot be resolved on a " + string(r.Status) + " review")
	}
	f, err := r.finding(findingID)
	if err != nil {
		return err
	}
	if f.Status != FindingOpen {
		return r.conflict("finding is already resolved")
	}
	resolved := now
	f.Status = FindingResolved
	f.ResolvedAt = &resolved
	return nil
}

// DowngradeFinding lowers the severity of an open finding while the review is
// in progress.
func (r *QAReview) DowngradeFinding(findingID id.FindingID, to Severity) error {
	if r.Status != StatusInProgress {
		return r.conflict("findings can only be downgraded while the review is in progress")
	}
	if !to.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "invalid severity").WithField("severity", "must be minor, major or critical")
	}
	f, err := r.finding(findingID)
	if err != nil {
		return err
	}
	if f.Status != FindingOpen {
		return r.conflict("only open findings can be downgraded")
	}
	if to.rank() >= f.Severity.rank() {
		return dErrors.New(dErrors.CodeValidation, "severity must be lower than "+string(f.Severity)).
			WithField("severity", "must be lower than current severity")
	}
	f.Severity = to
	return nil
}

func (r *QAReview) HasOpenCritical() bool {
	for _, f := range r.Findings {
		if f.Severity == SeverityCritical && f.Status == FindingOpen {
			return true
		}
	}
	return false
}

// CanComplete checks the decision rules. packOverall is the pack's current
// overall score.
func (r *QAReview) CanComplete(decision Decision, comments string, packOverall int, policy Policy) error {
	if !r.Status.CanTransitionTo(StatusCompleted) {
		return r.conflict("review is already " + string(r.Status))
	}
	blank := strings.TrimSpace(comments) == ""
	switch decision {
	case DecisionRejected:
		if blank {
			return dErrors.New(dErrors.CodeValidation, "comments are required to reject").
				WithField("comments", "required when rejecting")
		}
	case DecisionApproved:
		if policy.BlockOnOpenCritical && r.HasOpenCritical() {
			return r.conflict("resolve or downgrade critical findings before approving")
		}
		if policy.RequireLowScoreJustification && !score.IsEligible(packOverall) && blank {
			return dErrors.New(dErrors.CodeValidation, "comments are required to approve a pack below the eligibility threshold").
				WithField("comments", "required when overall score is below threshold")
		}
	default:
		return dErrors.New(dErrors.CodeValidation, "invalid decision").WithField("action", "must be approve or reject")
	}
	return nil
}

// ApplyCompletion records the decision. A completion straight from scheduled
// records the completer as the reviewer.
func (r *QAReview) ApplyCompletion(decision Decision, comments string, completer id.UserID, now time.Time) {
	if r.ReviewerID == nil {
		r.ReviewerID = &completer
	}
	if r.StartedAt == nil {
		started := now
		r.StartedAt = &started
	}
	completed := now
	r.Status = StatusCompleted
	r.Decision = decision
	r.Comments = strings.TrimSpace(comments)
	r.CompletedAt = &completed
}

func (r *QAReview) CanCancel() error {
	if !r.Status.CanTransitionTo(StatusCancelled) {
		return r.conflict("review is already " + string(r.Status))
	}
	return nil
}

func (r *QAReview) ApplyCancel(comments string, now time.Time) {
	cancelled := now
	r.Status = StatusCancelled
	r.CancelledAt = &cancelled
	if c := strings.TrimSpace(comments); c != "" {
		r.Comments = c
	}
}

// Clone returns a deep copy.
func (r *QAReview) Clone() *QAReview {
	c := *r
	c.Findings = make([]Finding, len(r.Findings))
	for i, f := range r.Findings {
		if f.ResolvedAt != nil {
			at := *f.ResolvedAt
			f.ResolvedAt = &at
		}
		c.Findings[i] = f
	}
	if r.ReviewerID != nil {
		reviewer := *r.ReviewerID
		c.ReviewerID = &reviewer
	}
	c.StartedAt = copyTime(r.StartedAt)
	c.CompletedAt = copyTime(r.CompletedAt)
	c.CancelledAt = copyTime(r.CancelledAt)
	return &c
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

// IsReviewer reports whether userID holds the review.
func (r *QAReview) IsReviewer(userID id.UserID) bool {
	return r.ReviewerID != nil && *r.ReviewerID == userID
}
