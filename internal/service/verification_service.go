package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crewline/siteproof/internal/domain"
	"github.com/crewline/siteproof/internal/repository"
)

// VerificationService orchestrates the contractor to site-incharge handoff.
// It is the single authority for the completed -> approved/rejected edges:
// no status flips without a decision record, and both are written in one
// transaction.
type VerificationService struct {
	pool         *pgxpool.Pool
	taskRepo     *repository.TaskRepository
	evidenceRepo *repository.EvidenceRepository
	decisionRepo *repository.DecisionRepository
}

// NewVerificationService creates a new VerificationService.
func NewVerificationService(
	pool *pgxpool.Pool,
	taskRepo *repository.TaskRepository,
	evidenceRepo *repository.EvidenceRepository,
	decisionRepo *repository.DecisionRepository,
) *VerificationService {
	return &VerificationService{
		pool:         pool,
		taskRepo:     taskRepo,
		evidenceRepo: evidenceRepo,
		decisionRepo: decisionRepo,
	}
}

// Review records the reviewer's decision on a completed task and moves it to
// approved or rejected. A rejected task returns to the contractor, who may
// resume work; an approved task is terminal.
func (s *VerificationService) Review(
	ctx context.Context,
	actor domain.Actor,
	taskID string,
	outcome domain.VerificationOutcome,
	comment string,
) (*domain.VerificationDecision, error) {
	if !actor.Role.CanReview() {
		return nil, fmt.Errorf("%w: role %s cannot review evidence", domain.ErrPermissionDenied, actor.Role)
	}

	if !outcome.IsValid() {
		verr := &domain.ValidationError{}
		verr.Add("outcome", "must be 'approve' or 'reject'")
		return nil, verr
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

	if task.Status != domain.TaskStatusCompleted {
		return nil, fmt.Errorf("%w: task %s is in %s status, review requires completed", domain.ErrInvalidTransition, taskID, task.Status)
	}

	// The decision is tied to the submission under review.
	evidence, err := s.evidenceRepo.LatestByTask(ctx, tx, taskID)
	if err != nil {
		return nil, err
	}

	decision := &domain.VerificationDecision{
		TaskID:     taskID,
		EvidenceID: evidence.ID,
		Outcome:    outcome,
		ReviewerID: actor.ID,
		Comment:    comment,
	}

	if err := s.decisionRepo.Create(ctx, tx, decision); err != nil {
		return nil, err
	}

	if err := s.taskRepo.UpdateStatus(ctx, tx, taskID, domain.TaskStatusCompleted, outcome.TargetStatus()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}

	slog.Info("evidence reviewed",
		"task_id", taskID,
		"evidence_id", evidence.ID,
		"outcome", outcome,
		"reviewer_id", actor.ID,
	)

	return decision, nil
}

// History returns all verification decisions for a task, newest first.
func (s *VerificationService) History(ctx context.Context, taskID string) ([]*domain.VerificationDecision, error) {
	if _, err := s.taskRepo.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	return s.decisionRepo.ListByTask(ctx, taskID)
}
