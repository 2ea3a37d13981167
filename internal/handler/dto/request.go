package dto

// CreateTaskRequest represents the request body for POST /tasks.
// Cross-entity checks (phase exists, unit belongs to project, deadline in the
// future) live in the service validator so failures can name every bad field.
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ProjectID   string `json:"project_id"`
	UnitID      string `json:"unit_id"`
	PhaseID     string `json:"phase_id"`
	Priority    string `json:"priority"`
	Deadline    string `json:"deadline"` // YYYY-MM-DD
}

// TransitionRequest represents the request body for PATCH /tasks/:id/status.
type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

// ImagePayload is a single photo reference in an evidence submission.
type ImagePayload struct {
	URL     string `json:"url" validate:"required"`
	Caption string `json:"caption"`
}

// SubmitEvidenceRequest represents the request body for POST /tasks/:id/evidence.
type SubmitEvidenceRequest struct {
	Title           string         `json:"title"`
	Images          []ImagePayload `json:"images"`
	Notes           string         `json:"notes"`
	SubmittedStatus string         `json:"submitted_status" validate:"required"`
	ProgressPercent *int           `json:"progress_percent" validate:"omitempty,min=0,max=100"`
}

// ReviewRequest represents the request body for POST /tasks/:id/review.
type ReviewRequest struct {
	Outcome string `json:"outcome" validate:"required,oneof=approve reject"`
	Comment string `json:"comment"`
}
