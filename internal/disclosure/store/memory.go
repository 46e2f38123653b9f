// Package store persists share grants, NDA acceptances and the access log.
package store

import (
	"context"
	"sort"
	"sync"

	"proofpack/internal/disclosure/models"
	id "proofpack/pkg/domain"
	"proofpack/pkg/platform/sentinel"
)

// InMemory implements every disclosure store in one process-local value.
type InMemory struct {
	mu          sync.RWMutex
	grants      map[string]*models.ShareGrant
	acceptances map[acceptanceKey]*models.NDAAcceptance
	accessLog   []models.AccessLogEntry
}

type acceptanceKey struct {
	digest string
	userID id.UserID
}

func NewInMemory() *InMemory {
	return &InMemory{
		grants:      make(map[string]*models.ShareGrant),
		acceptances: make(map[acceptanceKey]*models.NDAAcceptance),
	}
}

func (s *InMemory) CreateGrant(_ context.Context, grant *models.ShareGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.grants[grant.TokenDigest]; ok {
		return sentinel.ErrAlreadyExists
	}
	g := *grant
	s.grants[grant.TokenDigest] = &g
	return nil
}

func (s *InMemory) FindGrant(_ context.Context, digest string) (*models.ShareGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.grants[digest]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return copyGrant(g), nil
}

func (s *InMemory) ListGrants(_ context.Context, packID id.PackID) ([]*models.ShareGrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.ShareGrant
	for _, g := range s.grants {
		if g.ProofPackID == packID {
			out = append(out, copyGrant(g))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UpdateGrant writes the revocation and NDA version fields when grant still
// carries the stored version, and bumps it.
func (s *InMemory) UpdateGrant(_ context.Context, grant *models.ShareGrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.grants[grant.TokenDigest]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != grant.Version {
		return sentinel.ErrConflict
	}
	grant.Version++
	s.grants[grant.TokenDigest] = copyGrant(grant)
	return nil
}

func (s *InMemory) FindAcceptance(_ context.Context, digest string, userID id.UserID) (*models.NDAAcceptance, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.acceptances[acceptanceKey{digest, userID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	c := *a
	return &c, nil
}

// SaveAcceptance records acceptance. A repeat of the stored version is a no-op
// and reports created=false.
func (s *InMemory) SaveAcceptance(_ context.Context, acceptance *models.NDAAcceptance) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := acceptanceKey{acceptance.TokenDigest, acceptance.UserID}
	if current, ok := s.acceptances[key]; ok && current.Version == acceptance.Version {
		*acceptance = *current
		return false, nil
	}
	a := *acceptance
	s.acceptances[key] = &a
	return true, nil
}

func (s *InMemory) AppendAccess(_ context.Context, entry models.AccessLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessLog = append(s.accessLog, entry)
	return nil
}

// ListAccess returns the pack's access log, newest first.
func (s *InMemory) ListAccess(_ context.Context, packID id.PackID, limit int) ([]models.AccessLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.AccessLogEntry
	for i := len(s.accessLog) - 1; i >= 0; i-- {
		if s.accessLog[i].ProofPackID != packID {
			continue
		}
		out = append(out, s.accessLog[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func copyGrant(g *models.ShareGrant) *models.ShareGrant {
	c := *g
	if g.RevokedAt != nil {
		at := *g.RevokedAt
		c.RevokedAt = &at
	}
	return &c
}
