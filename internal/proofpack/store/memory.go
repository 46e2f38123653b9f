// Package store persists proof packs. Both implementations enforce optimistic
// concurrency: Update succeeds only when the caller's Version matches the
// stored one, and then increments it.
package store

import (
	"context"
	"sort"
	"strings"
	"sync"

	"proofpack/internal/proofpack/models"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/sentinel"
)

// InMemory is a process-local pack store. Stored packs are cloned on the way in
// and out so callers never share mutable state with the store.
type InMemory struct {
	mu    sync.RWMutex
	packs map[id.PackID]*models.ProofPack
}

func NewInMemory() *InMemory {
	return &InMemory{packs: make(map[id.PackID]*models.ProofPack)}
}

func (s *InMemory) Create(_ context.Context, pack *models.ProofPack) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.packs[pack.ID]; ok {
		return sentinel.ErrAlreadyExists
	}
	pack.Version = 1
	s.packs[pack.ID] = pack.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, packID id.PackID) (*models.ProofPack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pack, ok := s.packs[packID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return pack.Clone(), nil
}

func (s *InMemory) ListByOwner(_ context.Context, ownerID id.UserID) ([]*models.ProofPack, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.ProofPack
	for _, pack := range s.packs {
		if pack.OwnerID == ownerID {
			out = append(out, pack.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Update writes pack if its Version matches, then bumps pack.Version.
func (s *InMemory) Update(_ context.Context, pack *models.ProofPack) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.packs[pack.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != pack.Version {
		return sentinel.ErrConflict
	}
	pack.Version++
	s.packs[pack.ID] = pack.Clone()
	return nil
}

// ListApproved returns approved packs with Overall >= filter.MinScore, best
// score first.
func (s *InMemory) ListApproved(_ context.Context, filter models.DirectoryFilter) ([]*models.ProofPack, error) {
	s.mu.RLock()
	var out []*models.ProofPack
	search := strings.ToLower(filter.Search)
	for _, pack := range s.packs {
		if pack.Status != models.PackStatusApproved || pack.Health.Overall < filter.MinScore {
			continue
		}
		if filter.Industry != "" && !strings.EqualFold(pack.Industry, filter.Industry) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(pack.CompanyName), search) &&
			!strings.Contains(strings.ToLower(pack.Industry), search) {
			continue
		}
		out = append(out, pack.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Health.Overall != out[j].Health.Overall {
			return out[i].Health.Overall > out[j].Health.Overall
		}
		if out[i].CompanyName != out[j].CompanyName {
			return out[i].CompanyName < out[j].CompanyName
		}
		return out[i].ID.String() < out[j].ID.String()
	})

	if filter.Offset >= len(out) {
		return []*models.ProofPack{}, nil
	}
	out = out[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}
