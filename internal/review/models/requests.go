package models

import (
	"strings"

	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
)

const maxCommentsLength = 4000

// ReviewActionRequest is the body of POST /qa/review.
type ReviewActionRequest struct {
	ProofPackID string `json:"proofPackId"`
	Action      string `json:"action"`
	Comments    string `json:"comments"`
}

func (r *ReviewActionRequest) Validate() error {
	verr := dErrors.New(dErrors.CodeValidation, "invalid review action")
	if _, err := id.ParsePackID(r.ProofPackID); err != nil {
		verr.WithField("proofPackId", "must be a valid id")
	}
	if !Action(r.Action).IsValid() {
		verr.WithField("action", "must be one of approve, reject, claim, cancel")
	}
	if len(r.Comments) > maxCommentsLength {
		verr.WithField("comments", "must be 4000 characters or less")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

type AddFindingRequest struct {
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

func (r *AddFindingRequest) Validate() error {
	verr := dErrors.New(dErrors.CodeValidation, "invalid finding")
	if !Severity(r.Severity).IsValid() {
		verr.WithField("severity", "must be minor, major or critical")
	}
	if strings.TrimSpace(r.Category) == "" {
		verr.WithField("category", "required")
	}
	if strings.TrimSpace(r.Description) == "" {
		verr.WithField("description", "required")
	} else if len(r.Description) > maxCommentsLength {
		verr.WithField("description", "must be 4000 characters or less")
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

type DowngradeFindingRequest struct {
	Severity string `json:"severity"`
}

func (r *DowngradeFindingRequest) Validate() error {
	if !Severity(r.Severity).IsValid() {
		return dErrors.New(dErrors.CodeValidation, "invalid severity").
			WithField("severity", "must be minor, major or critical")
	}
	return nil
}
