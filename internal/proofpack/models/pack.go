package models

import (
	"slices"
	"strings"
	"time"

	"proofpack/internal/proofpack/score"
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
)

const (
	maxCompanyNameLength = 200
	maxIndustryLength    = 100
)

// ProofPack is the aggregate root for an SME's compliance evidence.
//
// Invariants:
//   - Health.Overall is always derived from the four sub-scores by score.ComputeHealth
//   - Gaps are regenerated whenever Health or Documents change
//   - Version increases by exactly one on every persisted mutation
//   - Status follows the PackStatus transition table
type ProofPack struct {
	ID          id.PackID        `json:"id"`
	OwnerID     id.UserID        `json:"owner_id"`
	CompanyName string           `json:"company_name"`
	Industry    string           `json:"industry"`
	Documents   []Document       `json:"documents"`
	Health      score.PackHealth `json:"health"`
	Gaps        []Gap            `json:"gaps"`
	Status      PackStatus       `json:"status"`
	Version     int64            `json:"version"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Document is metadata for one uploaded file. Content lives in the object store
// under StorageKey.
type Document struct {
	ID             id.DocumentID    `json:"id"`
	Category       DocumentCategory `json:"category"`
	FileName       string           `json:"file_name"`
	ContentType    string           `json:"content_type"`
	SizeBytes      int64            `json:"size_bytes"`
	StorageKey     string           `json:"-"`
	ExpirationDate *time.Time       `json:"expiration_date,omitempty"`
	UploadedAt     time.Time        `json:"uploaded_at"`
}

// Gap is a remediation item derived from the pack's health and documents.
type Gap struct {
	ID             id.GapID       `json:"id"`
	Category       GapCategory    `json:"category"`
	Severity       GapSeverity    `json:"severity"`
	Recommendation string         `json:"recommendation"`
	Status         GapStatus      `json:"status"`
	DocumentID     *id.DocumentID `json:"document_id,omitempty"`
	ResolvedAt     *time.Time     `json:"resolved_at,omitempty"`
}

// SameContent reports whether two gaps describe the same shortfall, ignoring
// identity and resolution state.
func (g Gap) SameContent(other Gap) bool {
	if g.Category != other.Category || g.Severity != other.Severity || g.Recommendation != other.Recommendation {
		return false
	}
	if (g.DocumentID == nil) != (other.DocumentID == nil) {
		return false
	}
	return g.DocumentID == nil || *g.DocumentID == *other.DocumentID
}

// NewProofPack creates a draft pack with zero health.
func NewProofPack(packID id.PackID, ownerID id.UserID, companyName, industry string, now time.Time) (*ProofPack, error) {
	companyName = strings.TrimSpace(companyName)
	industry = strings.TrimSpace(industry)
	if ownerID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "owner is required")
	}
	if companyName == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "company name cannot be empty")
	}
	if len(companyName) > maxCompanyNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "company name must be 200 characters or less")
	}
	if len(industry) > maxIndustryLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "industry must be 100 characters or less")
	}
	return &ProofPack{
		ID:          packID,
		OwnerID:     ownerID,
		CompanyName: companyName,
		Industry:    industry,
		Documents:   []Document{},
		Gaps:        []Gap{},
		Status:      PackStatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (p *ProofPack) IsOwnedBy(userID id.UserID) bool {
	return p.OwnerID == userID
}

// FindDocument returns the document with docID, or false.
func (p *ProofPack) FindDocument(docID id.DocumentID) (*Document, bool) {
	for i := range p.Documents {
		if p.Documents[i].ID == docID {
			return &p.Documents[i], true
		}
	}
	return nil, false
}

func (p *ProofPack) AddDocument(doc Document) {
	p.Documents = append(p.Documents, doc)
}

// ReplaceDocument swaps the metadata of an existing document, preserving order.
func (p *ProofPack) ReplaceDocument(doc Document) bool {
	for i := range p.Documents {
		if p.Documents[i].ID == doc.ID {
			doc.UploadedAt = p.Documents[i].UploadedAt
			p.Documents[i] = doc
			return true
		}
	}
	return false
}

func (p *ProofPack) RemoveDocument(docID id.DocumentID) bool {
	before := len(p.Documents)
	p.Documents = slices.DeleteFunc(p.Documents, func(d Document) bool { return d.ID == docID })
	return len(p.Documents) != before
}

// ApplyHealth replaces the cached health and gap set.
func (p *ProofPack) ApplyHealth(health score.PackHealth, gaps []Gap, now time.Time) {
	p.Health = health
	p.Gaps = gaps
	p.UpdatedAt = now
}

// ResolveGap marks an open gap resolved. Resolving twice is a no-op.
func (p *ProofPack) ResolveGap(gapID id.GapID, now time.Time) error {
	for i := range p.Gaps {
		if p.Gaps[i].ID != gapID {
			continue
		}
		if p.Gaps[i].Status == GapResolved {
			return nil
		}
		resolvedAt := now
		p.Gaps[i].Status = GapResolved
		p.Gaps[i].ResolvedAt = &resolvedAt
		p.UpdatedAt = now
		return nil
	}
	return dErrors.New(dErrors.CodeNotFound, "gap not found")
}

// CanTransitionTo checks the pack status table.
func (p *ProofPack) CanTransitionTo(next PackStatus) error {
	if !p.Status.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeStateConflict,
			"proof pack cannot move from "+p.Status.String()+" to "+next.String()).WithState(p)
	}
	return nil
}

// ApplyStatus moves the pack to next. Call CanTransitionTo first.
func (p *ProofPack) ApplyStatus(next PackStatus, now time.Time) {
	p.Status = next
	p.UpdatedAt = now
}

// Clone returns a deep copy safe to mutate independently.
func (p *ProofPack) Clone() *ProofPack {
	c := *p
	c.Documents = make([]Document, len(p.Documents))
	for i, d := range p.Documents {
		if d.ExpirationDate != nil {
			exp := *d.ExpirationDate
			d.ExpirationDate = &exp
		}
		c.Documents[i] = d
	}
	c.Gaps = make([]Gap, len(p.Gaps))
	for i, g := range p.Gaps {
		if g.DocumentID != nil {
			docID := *g.DocumentID
			g.DocumentID = &docID
		}
		if g.ResolvedAt != nil {
			at := *g.ResolvedAt
			g.ResolvedAt = &at
		}
		c.Gaps[i] = g
	}
	return &c
}

// Summary is the disclosure-safe view: no documents, no gaps.
type Summary struct {
	ID            id.PackID `json:"id"`
	CompanyName   string    `json:"company_name"`
	Industry      string    `json:"industry"`
	OverallScore  int       `json:"overall_score"`
	DocumentCount int       `json:"document_count"`
}

func (p *ProofPack) Summary() Summary {
	return Summary{
		ID:            p.ID,
		CompanyName:   p.CompanyName,
		Industry:      p.Industry,
		OverallScore:  p.Health.Overall,
		DocumentCount: len(p.Documents),
	}
}
