package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crewline/siteproof/internal/domain"
	"github.com/crewline/siteproof/internal/phase"
	"github.com/crewline/siteproof/internal/repository"
)

// CreateTaskParams holds the input for task creation.
type CreateTaskParams struct {
	Title       string
	Description string
	ProjectID   string
	UnitID      string
	PhaseID     string
	Priority    domain.TaskPriority
	Deadline    time.Time
}

// EvidenceInput holds the input for an evidence submission.
type EvidenceInput struct {
	Title           string
	Images          []domain.EvidenceImage
	Notes           string
	SubmittedStatus domain.SubmittedStatus
	ProgressPercent *int
}

// TaskService coordinates task operations and state transitions. Writes on a
// single task are serialized through a transaction holding a FOR UPDATE row
// lock, so a contractor's evidence submission and a reviewer's decision can
// never land on stale status.
type TaskService struct {
	pool         *pgxpool.Pool
	taskRepo     *repository.TaskRepository
	evidenceRepo *repository.EvidenceRepository
	validator    *Validator
}

// NewTaskService creates a new TaskService.
func NewTaskService(
	pool *pgxpool.Pool,
	taskRepo *repository.TaskRepository,
	evidenceRepo *repository.EvidenceRepository,
	phases *phase.Catalog,
	units UnitDirectory,
) *TaskService {
	return &TaskService{
		pool:         pool,
		taskRepo:     taskRepo,
		evidenceRepo: evidenceRepo,
		validator:    NewValidator(phases, units),
	}
}

// rollback releases a transaction, logging unexpected failures.
func rollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && err.Error() != "tx is closed" {
		slog.Error("failed to rollback transaction", "error", err)
	}
}

// CreateTask validates the input and creates a task in pending status.
// Validation reports every missing or invalid field, not just the first.
func (s *TaskService) CreateTask(ctx context.Context, actor domain.Actor, params CreateTaskParams) (*domain.Task, error) {
	if !actor.Role.CanManageTasks() {
		return nil, fmt.Errorf("%w: role %s cannot create tasks", domain.ErrPermissionDenied, actor.Role)
	}

	if err := s.validator.ValidateCreate(ctx, params, time.Now()); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task := &domain.Task{
		Title:       params.Title,
		Description: params.Description,
		ProjectID:   params.ProjectID,
		UnitID:      params.UnitID,
		PhaseID:     params.PhaseID,
		Priority:    params.Priority,
		Status:      domain.TaskStatusPending,
		Deadline:    params.Deadline,
		CreatedBy:   actor.ID,
	}

	if _, err := s.taskRepo.Create(ctx, tx, task); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("task created",
		"task_id", task.ID,
		"project_id", task.ProjectID,
		"phase_id", task.PhaseID,
		"created_by", actor.ID,
	)

	return task, nil
}

// Transition moves a task along an edge of the state machine. The approved
// and rejected statuses are unreachable here: they exist only behind a
// verification decision.
func (s *TaskService) Transition(ctx context.Context, actor domain.Actor, taskID string, newStatus domain.TaskStatus) (*domain.Task, error) {
	if !actor.Role.CanManageTasks() {
		return nil, fmt.Errorf("%w: role %s cannot transition tasks", domain.ErrPermissionDenied, actor.Role)
	}

	if !newStatus.IsValid() {
		verr := &domain.ValidationError{}
		verr.Add("status", fmt.Sprintf("unknown status %q", string(newStatus)))
		return nil, verr
	}

	if newStatus.RequiresReview() {
		return nil, fmt.Errorf("%w: %s is only reachable through a verification review", domain.ErrInvalidTransition, newStatus)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	oldStatus := task.Status
	if !oldStatus.CanTransitionTo(newStatus) {
		if oldStatus.IsTerminal() {
			return nil, fmt.Errorf("%w: task %s is in terminal status %s", domain.ErrInvalidTransition, taskID, oldStatus)
		}
		return nil, fmt.Errorf("%w: task %s cannot transition %s -> %s", domain.ErrInvalidTransition, taskID, oldStatus, newStatus)
	}

	if err := s.taskRepo.UpdateStatus(ctx, tx, taskID, oldStatus, newStatus); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	task.Status = newStatus

	slog.Info("task status changed",
		"task_id", taskID,
		"actor_id", actor.ID,
		"old_status", oldStatus,
		"new_status", newStatus,
	)

	return task, nil
}

// SubmitEvidence attaches a photo submission to a task. A completion request
// also moves the task to completed; the evidence record and the status move
// succeed or fail together.
func (s *TaskService) SubmitEvidence(ctx context.Context, actor domain.Actor, taskID string, input EvidenceInput) (*domain.Evidence, error) {
	if !actor.Role.CanManageTasks() {
		return nil, fmt.Errorf("%w: role %s cannot submit evidence", domain.ErrPermissionDenied, actor.Role)
	}

	if err := s.validator.ValidateEvidence(input); err != nil {
		return nil, err
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer rollback(ctx, tx)

	task, err := s.taskRepo.GetByIDForUpdate(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	switch input.SubmittedStatus {
	case domain.SubmittedStatusCompleted:
		// Completion evidence only counts from active work.
		if task.Status != domain.TaskStatusInProgress {
			return nil, fmt.Errorf("%w: task %s is in %s status, completion evidence requires in_progress", domain.ErrInvalidTransition, taskID, task.Status)
		}
		if err := s.taskRepo.UpdateStatus(ctx, tx, taskID, domain.TaskStatusInProgress, domain.TaskStatusCompleted); err != nil {
			return nil, err
		}
		task.Status = domain.TaskStatusCompleted
	case domain.SubmittedStatusInProgress:
		if task.Status != domain.TaskStatusInProgress {
			return nil, fmt.Errorf("%w: task %s is in %s status, progress evidence requires in_progress", domain.ErrInvalidTransition, taskID, task.Status)
		}
		if input.ProgressPercent != nil {
			if err := s.taskRepo.UpdateProgress(ctx, tx, taskID, *input.ProgressPercent); err != nil {
				return nil, err
			}
			task.ProgressPercent = input.ProgressPercent
		}
	case domain.SubmittedStatusPendingReview:
		if task.Status.IsTerminal() {
			return nil, fmt.Errorf("%w: task %s is in terminal status %s", domain.ErrInvalidTransition, taskID, task.Status)
		}
	}

	ev := &domain.Evidence{
		TaskID:          taskID,
		Title:           input.Title,
		Images:          input.Images,
		SubmittedStatus: input.SubmittedStatus,
		Notes:           input.Notes,
		SubmittedBy:     actor.ID,
	}

	if err := s.evidenceRepo.Create(ctx, tx, ev); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("evidence submitted",
		"task_id", taskID,
		"evidence_id", ev.ID,
		"submitted_status", input.SubmittedStatus,
		"image_count", len(input.Images),
		"actor_id", actor.ID,
	)

	return ev, nil
}

// GetTask retrieves a task by id.
func (s *TaskService) GetTask(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.taskRepo.GetByID(ctx, taskID)
}

// ListTasks retrieves tasks matching the filters.
func (s *TaskService) ListTasks(ctx context.Context, filters repository.TaskListFilters) ([]*domain.Task, int, error) {
	return s.taskRepo.List(ctx, filters)
}

// ListEvidence retrieves the evidence history for a task in submission order.
func (s *TaskService) ListEvidence(ctx context.Context, taskID string) ([]*domain.Evidence, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.evidenceRepo.ListByTask(ctx, taskID)
}
