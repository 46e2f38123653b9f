package notification

import (
	"time"

	id "proofpack/pkg/domain"
)

// Kind names a consequential domain transition.
type Kind string

const (
	KindReviewCompleted       Kind = "review_completed"
	KindNDAAccepted           Kind = "nda_accepted"
	KindGapExpiring           Kind = "gap_expiring"
	KindIntroductionRequested Kind = "introduction_requested"
)

// Event is the transport-agnostic notification payload. Recipient is the user
// the notification is addressed to, when one exists.
type Event struct {
	ID         string            `json:"id"`
	Kind       Kind              `json:"kind"`
	PackID     id.PackID         `json:"pack_id"`
	Recipient  id.UserID         `json:"recipient,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
	OccurredAt time.Time         `json:"occurred_at"`
	Attempts   int               `json:"-"`
}
