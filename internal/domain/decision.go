package domain

import "time"

// VerificationOutcome represents the reviewer's decision on submitted evidence.
type VerificationOutcome string

const (
	OutcomeApprove VerificationOutcome = "approve"
	OutcomeReject  VerificationOutcome = "reject"
)

// IsValid checks if the outcome is one of the allowed values.
func (o VerificationOutcome) IsValid() bool {
	return o == OutcomeApprove || o == OutcomeReject
}

// TargetStatus returns the task status the outcome moves the task to.
func (o VerificationOutcome) TargetStatus() TaskStatus {
	if o == OutcomeApprove {
		return TaskStatusApproved
	}
	return TaskStatusRejected
}

// VerificationDecision is an immutable record of a reviewer's approve/reject
// outcome for a task's evidence. A new decision is a new record, never a
// mutation of an existing one.
type VerificationDecision struct {
	ID         string
	TaskID     string
	EvidenceID string
	Outcome    VerificationOutcome
	ReviewerID string
	Comment    string
	DecidedAt  time.Time
}
