// Package store persists introduction requests. A buyer may ask for one
// introduction per pack.
package store

import (
	"context"
	"sort"
	"sync"

	"proofpack/internal/directory/models"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/sentinel"
)

type InMemory struct {
	mu            sync.RWMutex
	introductions map[introKey]*models.Introduction
}

type introKey struct {
	buyerID id.UserID
	packID  id.PackID
}

func NewInMemory() *InMemory {
	return &InMemory{introductions: make(map[introKey]*models.Introduction)}
}

// Create stores intro, or returns sentinel.ErrAlreadyExists when the buyer
// already asked about the pack.
func (s *InMemory) Create(_ context.Context, intro *models.Introduction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := introKey{intro.BuyerID, intro.ProofPackID}
	if _, ok := s.introductions[key]; ok {
		return sentinel.ErrAlreadyExists
	}
	c := *intro
	s.introductions[key] = &c
	return nil
}

func (s *InMemory) FindByBuyerAndPack(_ context.Context, buyerID id.UserID, packID id.PackID) (*models.Introduction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	intro, ok := s.introductions[introKey{buyerID, packID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *intro
	return &c, nil
}

// ListByPack returns the pack's introductions, newest first.
func (s *InMemory) ListByPack(_ context.Context, packID id.PackID) ([]*models.Introduction, error) {
	s.mu.RLock()
	var out []*models.Introduction
	for key, intro := range s.introductions {
		if key.packID == packID {
			c := *intro
			out = append(out, &c)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}
