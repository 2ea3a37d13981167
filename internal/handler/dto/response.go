package dto

import (
	"time"

	"github.com/crewline/siteproof/internal/domain"
	"github.com/crewline/siteproof/internal/service"
)

// DeadlineFormat is the wire format for task deadlines (date only).
const DeadlineFormat = "2006-01-02"

// TaskResponse represents a task on the wire.
type TaskResponse struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ProjectID       string    `json:"project_id"`
	UnitID          string    `json:"unit_id"`
	PhaseID         string    `json:"phase_id"`
	Priority        string    `json:"priority"`
	Status          string    `json:"status"`
	ProgressPercent *int      `json:"progress_percent"`
	Deadline        string    `json:"deadline"`
	CreatedBy       string    `json:"created_by"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TasksListResponse represents the response for GET /tasks.
type TasksListResponse struct {
	Tasks  []TaskResponse `json:"tasks"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// TaskDetailResponse represents full task details with evidence and decisions.
type TaskDetailResponse struct {
	Task      TaskResponse       `json:"task"`
	Evidence  []EvidenceResponse `json:"evidence"`
	Decisions []DecisionResponse `json:"decisions"`
}

// ImageResponse is a photo reference within evidence.
type ImageResponse struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// EvidenceResponse represents an evidence submission on the wire.
type EvidenceResponse struct {
	ID              string          `json:"id"`
	TaskID          string          `json:"task_id"`
	Title           string          `json:"title"`
	Images          []ImageResponse `json:"images"`
	SubmittedStatus string          `json:"submitted_status"`
	Notes           string          `json:"notes"`
	SubmittedBy     string          `json:"submitted_by"`
	SubmittedAt     time.Time       `json:"submitted_at"`
}

// EvidenceListResponse represents the response for GET /tasks/:id/evidence.
type EvidenceListResponse struct {
	Evidence []EvidenceResponse `json:"evidence"`
}

// DecisionResponse represents a verification decision on the wire.
type DecisionResponse struct {
	ID         string    `json:"id"`
	TaskID     string    `json:"task_id"`
	EvidenceID string    `json:"evidence_id"`
	Outcome    string    `json:"outcome"`
	ReviewerID string    `json:"reviewer_id"`
	Comment    string    `json:"comment,omitempty"`
	DecidedAt  time.Time `json:"decided_at"`
}

// DecisionListResponse represents the response for GET /tasks/:id/decisions.
type DecisionListResponse struct {
	Decisions []DecisionResponse `json:"decisions"`
}

// PhaseResponse represents a construction phase catalog entry.
type PhaseResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Order int    `json:"order"`
}

// PhaseListResponse represents the response for GET /phases.
type PhaseListResponse struct {
	Phases []PhaseResponse `json:"phases"`
}

// OverviewRowResponse is one dashboard row: task, phase title, latest evidence.
type OverviewRowResponse struct {
	Task           TaskResponse      `json:"task"`
	PhaseTitle     string            `json:"phase_title"`
	LatestEvidence *EvidenceResponse `json:"latest_evidence,omitempty"`
	IsOverdue      bool              `json:"is_overdue"`
}

// OverviewResponse represents the response for GET /overview.
type OverviewResponse struct {
	Rows         []OverviewRowResponse `json:"rows"`
	Total        int                   `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
	StatusCounts map[string]int        `json:"status_counts"`
}

// ToTaskResponse converts a domain.Task to TaskResponse.
func ToTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:              task.ID,
		Title:           task.Title,
		Description:     task.Description,
		ProjectID:       task.ProjectID,
		UnitID:          task.UnitID,
		PhaseID:         task.PhaseID,
		Priority:        string(task.Priority),
		Status:          string(task.Status),
		ProgressPercent: task.ProgressPercent,
		Deadline:        task.Deadline.Format(DeadlineFormat),
		CreatedBy:       task.CreatedBy,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}
}

// ToEvidenceResponse converts a domain.Evidence to EvidenceResponse.
func ToEvidenceResponse(ev *domain.Evidence) EvidenceResponse {
	images := make([]ImageResponse, len(ev.Images))
	for i, img := range ev.Images {
		images[i] = ImageResponse{URL: img.URL, Caption: img.Caption}
	}
	return EvidenceResponse{
		ID:              ev.ID,
		TaskID:          ev.TaskID,
		Title:           ev.Title,
		Images:          images,
		SubmittedStatus: string(ev.SubmittedStatus),
		Notes:           ev.Notes,
		SubmittedBy:     ev.SubmittedBy,
		SubmittedAt:     ev.SubmittedAt,
	}
}

// ToDecisionResponse converts a domain.VerificationDecision to DecisionResponse.
func ToDecisionResponse(d *domain.VerificationDecision) DecisionResponse {
	return DecisionResponse{
		ID:         d.ID,
		TaskID:     d.TaskID,
		EvidenceID: d.EvidenceID,
		Outcome:    string(d.Outcome),
		ReviewerID: d.ReviewerID,
		Comment:    d.Comment,
		DecidedAt:  d.DecidedAt,
	}
}

// ToPhaseResponse converts a domain.ConstructionPhase to PhaseResponse.
func ToPhaseResponse(p domain.ConstructionPhase) PhaseResponse {
	return PhaseResponse{ID: p.ID, Title: p.Title, Order: p.Order}
}

// ToOverviewResponse converts a service.OverviewPage to OverviewResponse.
func ToOverviewResponse(page *service.OverviewPage, limit, offset int) OverviewResponse {
	rows := make([]OverviewRowResponse, len(page.Rows))
	for i, row := range page.Rows {
		var latest *EvidenceResponse
		if row.LatestEvidence != nil {
			ev := ToEvidenceResponse(row.LatestEvidence)
			latest = &ev
		}
		rows[i] = OverviewRowResponse{
			Task:           ToTaskResponse(row.Task),
			PhaseTitle:     row.PhaseTitle,
			LatestEvidence: latest,
			IsOverdue:      row.IsOverdue,
		}
	}

	counts := make(map[string]int, len(page.StatusCounts))
	for status, n := range page.StatusCounts {
		counts[string(status)] = n
	}

	return OverviewResponse{
		Rows:         rows,
		Total:        page.Total,
		Limit:        limit,
		Offset:       offset,
		StatusCounts: counts,
	}
}
