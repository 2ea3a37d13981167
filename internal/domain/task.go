package domain

import "time"

// TaskStatus represents the status of a task in the state machine.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusApproved   TaskStatus = "approved"
	TaskStatusRejected   TaskStatus = "rejected"
)

// statusEdges is the task state machine. A status maps to the statuses it
// may transition to; approved is terminal and has no outgoing edges.
var statusEdges = map[TaskStatus][]TaskStatus{
	TaskStatusPending:    {TaskStatusInProgress},
	TaskStatusInProgress: {TaskStatusCompleted},
	TaskStatusCompleted:  {TaskStatusApproved, TaskStatusRejected},
	TaskStatusRejected:   {TaskStatusInProgress},
}

// CanTransitionTo reports whether the edge s -> next exists in the state machine.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range statusEdges[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal returns true if the status is terminal (no transitions allowed).
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusApproved
}

// RequiresReview returns true for statuses that may only be reached through
// a verification decision, never through a plain transition.
func (s TaskStatus) RequiresReview() bool {
	return s == TaskStatusApproved || s == TaskStatusRejected
}

// IsValid checks if the status is one of the allowed values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted,
		TaskStatusApproved, TaskStatusRejected:
		return true
	default:
		return false
	}
}

// TaskPriority represents the priority level of a task.
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// IsValid checks if the priority is one of the allowed values.
func (p TaskPriority) IsValid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	default:
		return false
	}
}

// Task represents a unit of construction work scoped to a project, unit and phase.
type Task struct {
	ID              string
	Title           string
	Description     string
	ProjectID       string
	UnitID          string
	PhaseID         string
	Priority        TaskPriority
	Status          TaskStatus
	ProgressPercent *int
	Deadline        time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsOverdue reports whether the task deadline has passed. Terminal tasks are
// never overdue. Deadlines are dates; a task becomes overdue once its due
// day is fully in the past.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Status.IsTerminal() {
		return false
	}
	today := now.UTC().Truncate(24 * time.Hour)
	return t.Deadline.Before(today)
}

// IsCreatedBy checks if the task was created by the given actor.
func (t *Task) IsCreatedBy(actorID string) bool {
	return t.CreatedBy == actorID
}
