package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
)

var now = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

func inProgress(t *testing.T) (*QAReview, id.UserID) {
	t.Helper()
	r := NewQAReview(id.ReviewID(uuid.New()), id.PackID(uuid.New()), now)
	reviewer := id.UserID(uuid.New())
	require.NoError(t, r.CanClaim())
	r.ApplyClaim(reviewer, now)
	return r, reviewer
}

func addFinding(r *QAReview, sev Severity) id.FindingID {
	fid := id.FindingID(uuid.New())
	r.ApplyAddFinding(Finding{ID: fid, Severity: sev, Category: "insurance", Description: "cover lapsed", Status: FindingOpen})
	return fid
}

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusScheduled, StatusInProgress, true},
		{StatusScheduled, StatusCompleted, true},
		{StatusScheduled, StatusCancelled, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusInProgress, StatusScheduled, false},
		{StatusCompleted, StatusInProgress, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusCancelled, StatusCompleted, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestClaim(t *testing.T) {
	r, reviewer := inProgress(t)
	assert.Equal(t, StatusInProgress, r.Status)
	assert.True(t, r.IsReviewer(reviewer))
	require.NotNil(t, r.StartedAt)

	err := r.CanClaim()
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeStateConflict))
	de, _ := dErrors.As(err)
	current, ok := de.State.(*QAReview)
	require.True(t, ok)
	assert.Equal(t, StatusInProgress, current.Status)
}

func TestCanComplete(t *testing.T) {
	policy := StrictPolicy()

	t.Run("reject requires comments", func(t *testing.T) {
		r, _ := inProgress(t)
		err := r.CanComplete(DecisionRejected, "   ", 90, policy)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.NoError(t, r.CanComplete(DecisionRejected, "missing insurance", 90, policy))
	})

	t.Run("approve blocked by open critical finding", func(t *testing.T) {
		r, _ := inProgress(t)
		fid := addFinding(r, SeverityCritical)
		err := r.CanComplete(DecisionApproved, "fine", 90, policy)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeStateConflict))

		require.NoError(t, r.ResolveFinding(fid, now))
		assert.NoError(t, r.CanComplete(DecisionApproved, "", 90, policy))
	})

	t.Run("approve below threshold needs justification", func(t *testing.T) {
		r, _ := inProgress(t)
		err := r.CanComplete(DecisionApproved, "", 69, policy)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.NoError(t, r.CanComplete(DecisionApproved, "", 70, policy))
		assert.NoError(t, r.CanComplete(DecisionApproved, "strong references", 40, policy))
	})

	t.Run("relaxed policy lifts both approval rules", func(t *testing.T) {
		r, _ := inProgress(t)
		addFinding(r, SeverityCritical)
		assert.NoError(t, r.CanComplete(DecisionApproved, "", 10, Policy{}))
		assert.True(t, dErrors.HasCode(r.CanComplete(DecisionRejected, "", 10, Policy{}), dErrors.CodeValidation),
			"reject always needs comments")
	})

	t.Run("complete directly from scheduled records the completer", func(t *testing.T) {
		r := NewQAReview(id.ReviewID(uuid.New()), id.PackID(uuid.New()), now)
		require.NoError(t, r.CanComplete(DecisionApproved, "", 80, policy))
		admin := id.UserID(uuid.New())
		r.ApplyCompletion(DecisionApproved, "", admin, now)
		assert.True(t, r.IsReviewer(admin))
		assert.Equal(t, StatusCompleted, r.Status)
		assert.Equal(t, DecisionApproved, r.Decision)
	})

	t.Run("terminal reviews cannot complete", func(t *testing.T) {
		r, reviewer := inProgress(t)
		r.ApplyCompletion(DecisionRejected, "no", reviewer, now)
		assert.True(t, dErrors.HasCode(r.CanComplete(DecisionApproved, "x", 90, policy), dErrors.CodeStateConflict))
		assert.True(t, dErrors.HasCode(r.CanCancel(), dErrors.CodeStateConflict))
	})
}

func TestFindings(t *testing.T) {
	t.Run("add requires in progress", func(t *testing.T) {
		r := NewQAReview(id.ReviewID(uuid.New()), id.PackID(uuid.New()), now)
		assert.True(t, dErrors.HasCode(r.CanAddFinding(), dErrors.CodeStateConflict))
	})

	t.Run("downgrade lowers severity only while in progress", func(t *testing.T) {
		r, reviewer := inProgress(t)
		fid := addFinding(r, SeverityCritical)

		assert.True(t, dErrors.HasCode(r.DowngradeFinding(fid, SeverityCritical), dErrors.CodeValidation))
		require.NoError(t, r.DowngradeFinding(fid, SeverityMajor))
		assert.False(t, r.HasOpenCritical())

		r.ApplyCompletion(DecisionApproved, "", reviewer, now)
		assert.True(t, dErrors.HasCode(r.DowngradeFinding(fid, SeverityMinor), dErrors.CodeStateConflict))
	})

	t.Run("resolve after completion keeps decision", func(t *testing.T) {
		r, reviewer := inProgress(t)
		fid := addFinding(r, SeverityMajor)
		r.ApplyCompletion(DecisionRejected, "fix insurance", reviewer, now)

		require.NoError(t, r.ResolveFinding(fid, now.Add(time.Hour)))
		assert.Equal(t, StatusCompleted, r.Status)
		assert.Equal(t, DecisionRejected, r.Decision)

		assert.True(t, dErrors.HasCode(r.ResolveFinding(fid, now), dErrors.CodeStateConflict), "already resolved")
		assert.True(t, dErrors.HasCode(r.ResolveFinding(id.FindingID(uuid.New()), now), dErrors.CodeNotFound))
	})
}

func TestCloneIsDeep(t *testing.T) {
	r, _ := inProgress(t)
	fid := addFinding(r, SeverityMinor)
	c := r.Clone()
	require.NoError(t, c.ResolveFinding(fid, now))
	assert.Equal(t, FindingOpen, r.Findings[0].Status)
	*c.ReviewerID = id.UserID(uuid.New())
	assert.NotEqual(t, *c.ReviewerID, *r.ReviewerID)
}
