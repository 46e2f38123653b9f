package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"proofpack/internal/proofpack/models"
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
	"proofpack/pkg/requestcontext"
)

// AddDocument uploads document metadata and recomputes the pack.
func (s *Service) AddDocument(ctx context.Context, packID id.PackID, req *models.DocumentRequest) (*models.ProofPack, *models.Document, error) {
	if err := req.Validate(); err != nil {
		return nil, nil, err
	}
	doc := req.ToDocument()
	doc.ID = id.DocumentID(uuid.New())

	pack, err := s.mutate(ctx, "add_document", packID, true, func(p *models.ProofPack, now time.Time) error {
		if err := authorizeOwner(ctx, p); err != nil {
			return err
		}
		doc.UploadedAt = now
		p.AddDocument(doc)
		if req.SubScores != nil {
			applySubScores(p, *req.SubScores)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	s.logger.InfoContext(ctx, "document added",
		"pack_id", packID.String(),
		"document_id", doc.ID.String(),
		"overall", pack.Health.Overall,
		"request_id", requestcontext.RequestID(ctx),
	)
	added, _ := pack.FindDocument(doc.ID)
	return pack, added, nil
}

// UpdateDocument replaces document metadata and recomputes the pack.
func (s *Service) UpdateDocument(ctx context.Context, packID id.PackID, docID id.DocumentID, req *models.DocumentRequest) (*models.ProofPack, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	pack, err := s.mutate(ctx, "update_document", packID, true, func(p *models.ProofPack, _ time.Time) error {
		if err := authorizeOwner(ctx, p); err != nil {
			return err
		}
		doc := req.ToDocument()
		doc.ID = docID
		if !p.ReplaceDocument(doc) {
			return dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		if req.SubScores != nil {
			applySubScores(p, *req.SubScores)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "document updated",
		"pack_id", packID.String(),
		"document_id", docID.String(),
		"overall", pack.Health.Overall,
		"request_id", requestcontext.RequestID(ctx),
	)
	return pack, nil
}

// DeleteDocument removes a document and recomputes the pack.
func (s *Service) DeleteDocument(ctx context.Context, packID id.PackID, docID id.DocumentID) (*models.ProofPack, error) {
	pack, err := s.mutate(ctx, "delete_document", packID, true, func(p *models.ProofPack, _ time.Time) error {
		if err := authorizeOwner(ctx, p); err != nil {
			return err
		}
		if !p.RemoveDocument(docID) {
			return dErrors.New(dErrors.CodeNotFound, "document not found")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "document deleted",
		"pack_id", packID.String(),
		"document_id", docID.String(),
		"overall", pack.Health.Overall,
		"request_id", requestcontext.RequestID(ctx),
	)
	return pack, nil
}

// OverrideSubScores replaces all four sub-scores on an operator's authority.
// The route is admin-gated; the service does not check roles.
func (s *Service) OverrideSubScores(ctx context.Context, packID id.PackID, req *models.OverrideRequest) (*models.ProofPack, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	pack, err := s.mutate(ctx, "override_sub_scores", packID, true, func(p *models.ProofPack, _ time.Time) error {
		applySubScores(p, req.SubScores)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "sub-scores overridden",
		"pack_id", packID.String(),
		"overall", pack.Health.Overall,
		"reason", req.Reason,
		"request_id", requestcontext.RequestID(ctx),
	)
	return pack, nil
}

// Recompute re-derives health and gaps from the stored sub-scores and documents,
// for example after documents crossed into the expiry window. Concurrent
// requests for the same pack share one recomputation.
func (s *Service) Recompute(ctx context.Context, packID id.PackID) (*models.ProofPack, error) {
	// The shared run outlives any one caller; each caller only stops waiting.
	results := s.recomputes.DoChan(packID.String(), func() (any, error) {
		shared, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout*time.Duration(s.maxRetries+1))
		defer cancel()
		return s.mutate(shared, "recompute", packID, true, func(*models.ProofPack, time.Time) error {
			return nil
		})
	})
	select {
	case <-ctx.Done():
		return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeDependency, "request cancelled")
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*models.ProofPack).Clone(), nil
	}
}

// ResolveGap lets the owner mark a gap handled. The flag survives regeneration
// while the gap's content is unchanged.
func (s *Service) ResolveGap(ctx context.Context, packID id.PackID, gapID id.GapID) (*models.ProofPack, error) {
	return s.mutate(ctx, "resolve_gap", packID, false, func(p *models.ProofPack, now time.Time) error {
		if err := authorizeOwner(ctx, p); err != nil {
			return err
		}
		return p.ResolveGap(gapID, now)
	})
}
