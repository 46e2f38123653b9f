package models

import (
	dErrors "proofpack/pkg/domain-errors"
)

// PackStatus is the review lifecycle position of a proof pack.
type PackStatus string

const (
	PackStatusDraft     PackStatus = "draft"
	PackStatusSubmitted PackStatus = "submitted"
	PackStatusApproved  PackStatus = "approved"
	PackStatusRejected  PackStatus = "rejected"
)

var packTransitions = map[PackStatus][]PackStatus{
	PackStatusDraft:     {PackStatusSubmitted},
	PackStatusSubmitted: {PackStatusApproved, PackStatusRejected, PackStatusDraft},
	PackStatusApproved:  {PackStatusSubmitted},
	PackStatusRejected:  {PackStatusSubmitted},
}

// CanTransitionTo reports whether the transition table permits moving to next.
func (s PackStatus) CanTransitionTo(next PackStatus) bool {
	for _, allowed := range packTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s PackStatus) String() string {
	return string(s)
}

// DocumentCategory classifies an uploaded document.
type DocumentCategory string

const (
	DocumentCertificate   DocumentCategory = "certificate"
	DocumentInsurance     DocumentCategory = "insurance"
	DocumentPolicy        DocumentCategory = "policy"
	DocumentFinancial     DocumentCategory = "financial"
	DocumentAccreditation DocumentCategory = "accreditation"
	DocumentOther         DocumentCategory = "other"
)

// IsValid checks if the category is one of the supported enum values.
func (c DocumentCategory) IsValid() bool {
	switch c {
	case DocumentCertificate, DocumentInsurance, DocumentPolicy,
		DocumentFinancial, DocumentAccreditation, DocumentOther:
		return true
	}
	return false
}

// ParseDocumentCategory validates s as a DocumentCategory.
func ParseDocumentCategory(s string) (DocumentCategory, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeValidation, "document category is required")
	}
	c := DocumentCategory(s)
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeValidation, "invalid document category: "+s)
	}
	return c, nil
}

// GapCategory mirrors the four score categories.
type GapCategory string

const (
	GapCompleteness GapCategory = "completeness"
	GapExpiration   GapCategory = "expiration"
	GapQuality      GapCategory = "quality"
	GapRemediation  GapCategory = "remediation"
)

// Rank orders categories for deterministic gap output.
func (c GapCategory) Rank() int {
	switch c {
	case GapCompleteness:
		return 0
	case GapExpiration:
		return 1
	case GapQuality:
		return 2
	case GapRemediation:
		return 3
	}
	return 4
}

// GapSeverity grades how far a category falls short.
type GapSeverity string

const (
	SeverityLow      GapSeverity = "low"
	SeverityMedium   GapSeverity = "medium"
	SeverityHigh     GapSeverity = "high"
	SeverityCritical GapSeverity = "critical"
)

// GapStatus tracks whether the owner has marked a gap as handled.
type GapStatus string

const (
	GapOpen     GapStatus = "open"
	GapResolved GapStatus = "resolved"
)
