// Package store persists QA reviews. Both implementations allow at most one
// scheduled or in-progress review per pack and apply Update as a
// compare-and-swap on Version.
package store

import (
	"context"
	"sort"
	"sync"

	"proofpack/internal/review/models"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/sentinel"
)

type InMemory struct {
	mu      sync.RWMutex
	reviews map[id.ReviewID]*models.QAReview
}

func NewInMemory() *InMemory {
	return &InMemory{reviews: make(map[id.ReviewID]*models.QAReview)}
}

// Create stores a new review. It fails with sentinel.ErrAlreadyExists when the
// pack already has an active review.
func (s *InMemory) Create(_ context.Context, review *models.QAReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reviews[review.ID]; ok {
		return sentinel.ErrAlreadyExists
	}
	for _, r := range s.reviews {
		if r.ProofPackID == review.ProofPackID && !r.Status.IsTerminal() {
			return sentinel.ErrAlreadyExists
		}
	}
	review.Version = 1
	s.reviews[review.ID] = review.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, reviewID id.ReviewID) (*models.QAReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reviews[reviewID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return r.Clone(), nil
}

// FindActiveByPack returns the pack's scheduled or in-progress review.
func (s *InMemory) FindActiveByPack(_ context.Context, packID id.PackID) (*models.QAReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reviews {
		if r.ProofPackID == packID && !r.Status.IsTerminal() {
			return r.Clone(), nil
		}
	}
	return nil, sentinel.ErrNotFound
}

// ListByPack returns every review of the pack, oldest first.
func (s *InMemory) ListByPack(_ context.Context, packID id.PackID) ([]*models.QAReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.QAReview
	for _, r := range s.reviews {
		if r.ProofPackID == packID {
			out = append(out, r.Clone())
		}
	}
	sortByScheduled(out)
	return out, nil
}

func (s *InMemory) ListByStatus(_ context.Context, status models.Status) ([]*models.QAReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.QAReview
	for _, r := range s.reviews {
		if r.Status == status {
			out = append(out, r.Clone())
		}
	}
	sortByScheduled(out)
	return out, nil
}

func (s *InMemory) Update(_ context.Context, review *models.QAReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.reviews[review.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != review.Version {
		return sentinel.ErrConflict
	}
	review.Version++
	s.reviews[review.ID] = review.Clone()
	return nil
}

func sortByScheduled(reviews []*models.QAReview) {
	sort.Slice(reviews, func(i, j int) bool {
		if reviews[i].ScheduledAt.Equal(reviews[j].ScheduledAt) {
			return reviews[i].ID.String() < reviews[j].ID.String()
		}
		return reviews[i].ScheduledAt.Before(reviews[j].ScheduledAt)
	})
}
