package domain

import "time"

// SubmittedStatus is the status the submitter requests when attaching evidence.
type SubmittedStatus string

const (
	SubmittedStatusInProgress    SubmittedStatus = "in_progress"
	SubmittedStatusCompleted     SubmittedStatus = "completed"
	SubmittedStatusPendingReview SubmittedStatus = "pending_review"
)

// IsValid checks if the submitted status is one of the allowed values.
func (s SubmittedStatus) IsValid() bool {
	switch s {
	case SubmittedStatusInProgress, SubmittedStatusCompleted, SubmittedStatusPendingReview:
		return true
	default:
		return false
	}
}

// EvidenceImage is a single photo reference within an evidence submission.
// The URL comes from the media storage collaborator; uploads never happen here.
type EvidenceImage struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// Evidence represents a photo-and-notes submission attached to a task.
// Evidence records are append-only history; a task accumulates them over its
// life (progress photos, then completion photos).
type Evidence struct {
	ID              string
	TaskID          string
	Title           string
	Images          []EvidenceImage
	SubmittedStatus SubmittedStatus
	Notes           string
	SubmittedBy     string
	SubmittedAt     time.Time
}
