package models

import (
	"strconv"
	"strings"
	"time"

	packmodels "proofpack/internal/proofpack/models"
	id "proofpack/pkg/domain"
	dErrors "proofpack/pkg/domain-errors"
)

const (
	DefaultPageSize  = 20
	MaxPageSize      = 100
	maxSearchLength  = 100
	maxMessageLength = 2000
)

// Listing is one directory entry. ApprovedAt comes from the pack's latest
// approving review and is nil when none is on record.
type Listing struct {
	packmodels.Summary
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

// Introduction is a buyer's request to be put in touch with a pack owner.
type Introduction struct {
	ID             id.IntroductionID `json:"id"`
	BuyerID        id.UserID         `json:"buyer_id"`
	ProofPackID    id.PackID         `json:"proof_pack_id"`
	Message        string            `json:"message"`
	ScoreAtRequest int               `json:"score_at_request"`
	CreatedAt      time.Time         `json:"created_at"`
}

// ListQuery is the parsed query string of GET /directory.
type ListQuery struct {
	MinScore int
	Industry string
	Search   string
	Limit    int
	Offset   int
}

// ParseListQuery reads minScore, industry, q, limit and offset. Missing values
// take their defaults.
func ParseListQuery(get func(string) string) (ListQuery, error) {
	q := ListQuery{
		Industry: strings.TrimSpace(get("industry")),
		Search:   strings.TrimSpace(get("q")),
		Limit:    DefaultPageSize,
	}
	verr := dErrors.New(dErrors.CodeValidation, "invalid directory query")
	if v := get("minScore"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > 100 {
			verr.WithField("minScore", "must be an integer between 0 and 100")
		}
		q.MinScore = n
	}
	if v := get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > MaxPageSize {
			verr.WithField("limit", "must be between 1 and "+strconv.Itoa(MaxPageSize))
		}
		q.Limit = n
	}
	if v := get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			verr.WithField("offset", "must not be negative")
		}
		q.Offset = n
	}
	if len(q.Search) > maxSearchLength {
		verr.WithField("q", "must be "+strconv.Itoa(maxSearchLength)+" characters or less")
	}
	if len(verr.Fields) > 0 {
		return ListQuery{}, verr
	}
	return q, nil
}

// IntroductionRequest is the body of POST /directory/{packID}/introductions.
type IntroductionRequest struct {
	Message string `json:"message"`
}

func (r *IntroductionRequest) Validate() error {
	if r.Message == "" {
		return dErrors.New(dErrors.CodeValidation, "message is required").WithField("message", "required")
	}
	if len(r.Message) > maxMessageLength {
		return dErrors.New(dErrors.CodeValidation, "message is too long").
			WithField("message", "must be "+strconv.Itoa(maxMessageLength)+" characters or less")
	}
	return nil
}
