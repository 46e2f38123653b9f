package models

import (
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
)

const maxLabelLength = 200

// CreateGrantRequest is the body of POST /packs/{packID}/shares. A zero
// TTLHours takes the configured default.
type CreateGrantRequest struct {
	Label    string `json:"label"`
	TTLHours int    `json:"ttl_hours"`
}

func (r *CreateGrantRequest) Validate() error {
	verr := dErrors.New(dErrors.CodeValidation, "invalid share grant")
	if r.TTLHours < 0 {
		verr.WithField("ttl_hours", "must not be negative")
	}
	if len(r.Label) > maxLabelLength {
		verr.WithField("label", "must be 200 characters or less")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// AcceptNDARequest is the body of POST /share/{token}/nda.
type AcceptNDARequest struct {
	Accepted *bool `json:"accepted"`
}

func (r *AcceptNDARequest) Validate() error {
	if r.Accepted == nil || !*r.Accepted {
		return dErrors.New(dErrors.CodeValidation, "the NDA must be accepted").
			WithField("accepted", "must be true")
	}
	return nil
}

// DownloadRequest is the body of POST /share/{token}/view.
type DownloadRequest struct {
	DocumentID string `json:"documentId"`
}

func (r *DownloadRequest) Validate() error {
	if _, err := id.ParseDocumentID(r.DocumentID); err != nil {
		return dErrors.New(dErrors.CodeValidation, "invalid download request").
			WithField("documentId", "must be a valid id")
	}
	return nil
}
