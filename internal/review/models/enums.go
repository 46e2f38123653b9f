package models

// Status is the lifecycle position of a QA review.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var transitions = map[Status][]Status{
	StatusScheduled:  {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether the transition table permits moving to next.
// Completed and cancelled reviews have no outgoing transitions.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Decision is the reviewer's verdict on a completed review.
type Decision string

const (
	DecisionNone     Decision = "none"
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Severity grades a finding.
type Severity string

const (
	SeverityMinor    Severity = "minor"
	SeverityMajor    Severity = "major"
	SeverityCritical Severity = "critical"
)

func (s Severity) IsValid() bool {
	return s == SeverityMinor || s == SeverityMajor || s == SeverityCritical
}

func (s Severity) rank() int {
	switch s {
	case SeverityMinor:
		return 1
	case SeverityMajor:
		return 2
	case SeverityCritical:
		return 3
	}
	return 0
}

// FindingStatus tracks remediation of a finding.
type FindingStatus string

const (
	FindingOpen     FindingStatus = "open"
	FindingResolved FindingStatus = "resolved"
)

// Action is the verb accepted by the review endpoint.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionClaim   Action = "claim"
	ActionCancel  Action = "cancel"
)

func (a Action) IsValid() bool {
	switch a {
	case ActionApprove, ActionReject, ActionClaim, ActionCancel:
		return true
	}
	return false
}
