package models

import (
	"strings"
	"time"

	dErrors "proofpack/pkg/domain-errors"
)

const (
	maxFileNameLength   = 255
	maxStorageKeyLength = 1024
)

type CreatePackRequest struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
}

func (r *CreatePackRequest) Validate() error {
	if strings.TrimSpace(r.CompanyName) == "" {
		return dErrors.New(dErrors.CodeValidation, "company_name is required").
			WithField("company_name", "required")
	}
	return nil
}

// SubScores are the externally computed category scores for a pack.
type SubScores struct {
	Completeness float64 `json:"completeness"`
	Expiration   float64 `json:"expiration"`
	Quality      float64 `json:"quality"`
	Remediation  float64 `json:"remediation"`
}

// DocumentRequest carries document metadata for upload and edit. SubScores, when
// present, replace the pack's sub-scores in the same recomputation.
type DocumentRequest struct {
	Category       string     `json:"category"`
	FileName       string     `json:"file_name"`
	ContentType    string     `json:"content_type"`
	SizeBytes      int64      `json:"size_bytes"`
	StorageKey     string     `json:"storage_key"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	SubScores      *SubScores `json:"sub_scores,omitempty"`
}

func (r *DocumentRequest) Validate() error {
	verr := dErrors.New(dErrors.CodeValidation, "invalid document")
	if _, err := ParseDocumentCategory(r.Category); err != nil {
		verr.WithField("category", "must be one of certificate, insurance, policy, financial, accreditation, other")
	}
	if r.FileName == "" {
		verr.WithField("file_name", "required")
	} else if len(r.FileName) > maxFileNameLength {
		verr.WithField("file_name", "must be 255 characters or less")
	}
	if r.StorageKey == "" {
		verr.WithField("storage_key", "required")
	} else if len(r.StorageKey) > maxStorageKeyLength {
		verr.WithField("storage_key", "too long")
	}
	if r.SizeBytes < 0 {
		verr.WithField("size_bytes", "must not be negative")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

// ToDocument builds document metadata. Call Validate first.
func (r *DocumentRequest) ToDocument() Document {
	doc := Document{
		Category:    DocumentCategory(r.Category),
		FileName:    r.FileName,
		ContentType: r.ContentType,
		SizeBytes:   r.SizeBytes,
		StorageKey:  r.StorageKey,
	}
	if r.ExpirationDate != nil {
		exp := r.ExpirationDate.UTC()
		doc.ExpirationDate = &exp
	}
	return doc
}

// OverrideRequest is the admin override of all four sub-scores.
type OverrideRequest struct {
	SubScores
	Reason string `json:"reason"`
}

func (r *OverrideRequest) Validate() error {
	if strings.TrimSpace(r.Reason) == "" {
		return dErrors.New(dErrors.CodeValidation, "reason is required").WithField("reason", "required")
	}
	return nil
}

// DirectoryFilter narrows an eligible-pack listing.
type DirectoryFilter struct {
	MinScore int
	Industry string
	Search   string
	Limit    int
	Offset   int
}
