package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"proofpack/internal/disclosure/models"
	"proofpack/internal/disclosure/token"
	packmodels "proofpack/internal/proofpack/models"
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
	"proofpack/pkg/platform/sentinel"
	"proofpack/pkg/requestcontext"
)

// CreateGrant issues a share token for a pack the caller owns. The raw token
// is returned here and never again.
func (s *Service) CreateGrant(ctx context.Context, packID id.PackID, req *models.CreateGrantRequest) (*models.CreatedGrant, error) {
	ctx, span := s.tracer.Start(ctx, "disclosure.create_grant")
	defer span.End()

	if _, err := s.ownedPack(ctx, packID); err != nil {
		return nil, err
	}
	ttl := s.grantTTL
	if req.TTLHours > 0 {
		ttl = time.Duration(req.TTLHours) * time.Hour
	}
	if ttl > s.maxGrantTTL {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid share grant").
			WithField("ttl_hours", "must not exceed "+strconv.Itoa(int(s.maxGrantTTL/time.Hour)))
	}

	raw, err := token.Generate()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to generate share token")
	}
	now := requestcontext.Now(ctx)
	grant := &models.ShareGrant{
		TokenDigest: token.Digest(raw),
		ProofPackID: packID,
		CreatedBy:   requestcontext.UserID(ctx),
		Label:       req.Label,
		NDAVersion:  1,
		CreatedAt:   now,
		ExpiresAt:   now.Add(ttl),
		Version:     1,
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	if err := s.store.CreateGrant(storeCtx, grant); err != nil {
		return nil, storeError(err, "failed to create share grant")
	}

	s.logger.InfoContext(ctx, "share grant created",
		"pack_id", packID.String(),
		"expires_at", grant.ExpiresAt,
		"request_id", requestcontext.RequestID(ctx),
	)
	return &models.CreatedGrant{Token: raw, Grant: grant}, nil
}

func (s *Service) ListGrants(ctx context.Context, packID id.PackID) ([]*models.ShareGrant, error) {
	if _, err := s.ownedPack(ctx, packID); err != nil {
		return nil, err
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	grants, err := s.store.ListGrants(storeCtx, packID)
	if err != nil {
		return nil, storeError(err, "failed to list share grants")
	}
	return grants, nil
}

// Revoke disables a token for every phase. Revoking twice is a no-op.
func (s *Service) Revoke(ctx context.Context, packID id.PackID, rawToken string) (*models.ShareGrant, error) {
	ctx, span := s.tracer.Start(ctx, "disclosure.revoke")
	defer span.End()

	now := requestcontext.Now(ctx)
	grant, changed, err := s.changeGrant(ctx, packID, rawToken, func(g *models.ShareGrant) (bool, error) {
		if g.Revoked {
			return false, nil
		}
		g.ApplyRevoke(now)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return grant, nil
	}

	if s.revocations != nil {
		if ttl := grant.ExpiresAt.Sub(now); ttl > 0 {
			listCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
			err := s.revocations.Revoke(listCtx, grant.TokenDigest, ttl)
			cancel()
			if err != nil {
				s.logger.ErrorContext(ctx, "failed to publish share revocation",
					"error", err,
					"pack_id", packID.String(),
					"request_id", requestcontext.RequestID(ctx),
				)
			}
		}
	}
	s.logger.InfoContext(ctx, "share grant revoked",
		"pack_id", packID.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return grant, nil
}

// BumpNDAVersion supersedes every acceptance of the grant's NDA. Viewers must
// accept again before their next read.
func (s *Service) BumpNDAVersion(ctx context.Context, packID id.PackID, rawToken string) (*models.ShareGrant, error) {
	now := requestcontext.Now(ctx)
	grant, _, err := s.changeGrant(ctx, packID, rawToken, func(g *models.ShareGrant) (bool, error) {
		if !g.IsActive(now) {
			return false, dErrors.New(dErrors.CodeStateConflict, "share grant is no longer active").WithState(g)
		}
		g.BumpNDAVersion()
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return grant, nil
}

// AccessLog returns the newest entries recorded against a pack.
func (s *Service) AccessLog(ctx context.Context, packID id.PackID) ([]models.AccessLogEntry, error) {
	if _, err := s.ownedPack(ctx, packID); err != nil {
		return nil, err
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	entries, err := s.store.ListAccess(storeCtx, packID, accessLogPageSize)
	if err != nil {
		return nil, storeError(err, "failed to list access log")
	}
	if entries == nil {
		entries = []models.AccessLogEntry{}
	}
	return entries, nil
}

// ownedPack hides packs the caller does not own behind not found.
func (s *Service) ownedPack(ctx context.Context, packID id.PackID) (*packmodels.ProofPack, error) {
	pack, err := s.packs.GetPack(ctx, packID)
	if err != nil {
		return nil, err
	}
	if !pack.IsOwnedBy(requestcontext.UserID(ctx)) {
		return nil, dErrors.New(dErrors.CodeNotFound, "proof pack not found")
	}
	return pack, nil
}

func (s *Service) ownedGrant(ctx context.Context, packID id.PackID, rawToken string) (*models.ShareGrant, error) {
	if _, err := s.ownedPack(ctx, packID); err != nil {
		return nil, err
	}
	notFound := dErrors.New(dErrors.CodeNotFound, "share grant not found")
	if !token.WellFormed(rawToken) {
		return nil, notFound
	}
	storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()
	grant, err := s.store.FindGrant(storeCtx, token.Digest(rawToken))
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, notFound
	}
	if err != nil {
		return nil, storeError(err, "failed to load share grant")
	}
	if grant.ProofPackID != packID {
		return nil, notFound
	}
	return grant, nil
}

// changeGrant applies fn to the latest stored grant and writes it back. A
// write that loses to a concurrent change reloads and reapplies fn, so fn
// always decides against current state. fn returning false skips the write.
func (s *Service) changeGrant(ctx context.Context, packID id.PackID, rawToken string, fn func(g *models.ShareGrant) (bool, error)) (*models.ShareGrant, bool, error) {
	for attempt := 1; attempt <= maxGrantRetries; attempt++ {
		grant, err := s.ownedGrant(ctx, packID, rawToken)
		if err != nil {
			return nil, false, err
		}
		changed, err := fn(grant)
		if err != nil || !changed {
			return grant, false, err
		}

		storeCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
		err = s.store.UpdateGrant(storeCtx, grant)
		cancel()
		switch {
		case err == nil:
			return grant, true, nil
		case errors.Is(err, sentinel.ErrConflict):
			s.logger.DebugContext(ctx, "share grant changed concurrently, retrying",
				"pack_id", packID.String(),
				"attempt", attempt,
			)
			continue
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, false, dErrors.New(dErrors.CodeNotFound, "share grant not found")
		default:
			return nil, false, storeError(err, "failed to update share grant")
		}
	}
	return nil, false, dErrors.New(dErrors.CodeStateConflict, "share grant is being changed concurrently")
}
