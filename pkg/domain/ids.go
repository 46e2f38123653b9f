// Package domain holds typed identifiers shared across modules.
//
// Every identifier is a UUID under a distinct named type so a PackID can never be
// passed where a ReviewID is expected. Construct IDs from external input with the
// Parse functions; they reject empty, malformed and nil UUIDs with CodeInvalidInput.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "proofpack/pkg/domain-errors"
)

type (
	UserID         uuid.UUID
	PackID         uuid.UUID
	DocumentID     uuid.UUID
	GapID          uuid.UUID
	ReviewID       uuid.UUID
	FindingID      uuid.UUID
	AccessLogID    uuid.UUID
	IntroductionID uuid.UUID
)

// maxIDLength bounds input before handing it to the UUID parser.
const maxIDLength = 64

func parseUUID(kind, s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	return u, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID("user_id", s)
	return UserID(u), err
}

func ParsePackID(s string) (PackID, error) {
	u, err := parseUUID("proof_pack_id", s)
	return PackID(u), err
}

func ParseDocumentID(s string) (DocumentID, error) {
	u, err := parseUUID("document_id", s)
	return DocumentID(u), err
}

func ParseGapID(s string) (GapID, error) {
	u, err := parseUUID("gap_id", s)
	return GapID(u), err
}

func ParseReviewID(s string) (ReviewID, error) {
	u, err := parseUUID("review_id", s)
	return ReviewID(u), err
}

func ParseFindingID(s string) (FindingID, error) {
	u, err := parseUUID("finding_id", s)
	return FindingID(u), err
}

func (id UserID) String() string         { return uuid.UUID(id).String() }
func (id PackID) String() string         { return uuid.UUID(id).String() }
func (id DocumentID) String() string     { return uuid.UUID(id).String() }
func (id GapID) String() string          { return uuid.UUID(id).String() }
func (id ReviewID) String() string       { return uuid.UUID(id).String() }
func (id FindingID) String() string      { return uuid.UUID(id).String() }
func (id AccessLogID) String() string    { return uuid.UUID(id).String() }
func (id IntroductionID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id PackID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id DocumentID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id ReviewID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id FindingID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs serialize as plain UUID strings in JSON.
func (id UserID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id PackID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id DocumentID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id GapID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id ReviewID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }
func (id FindingID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id AccessLogID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}
func (id IntroductionID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

func (id *UserID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PackID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *DocumentID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *GapID) UnmarshalText(b []byte) error      { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *ReviewID) UnmarshalText(b []byte) error   { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *FindingID) UnmarshalText(b []byte) error  { return (*uuid.UUID)(id).UnmarshalText(b) }
