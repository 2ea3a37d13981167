package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crewline/siteproof/internal/domain"
)

// DecisionRepository handles database operations for verification decisions.
type DecisionRepository struct {
	pool *pgxpool.Pool
}

// NewDecisionRepository creates a new DecisionRepository.
func NewDecisionRepository(pool *pgxpool.Pool) *DecisionRepository {
	return &DecisionRepository{pool: pool}
}

// Create inserts a new verification decision within a transaction.
// Decisions are immutable once created; a new decision is a new record.
func (r *DecisionRepository) Create(ctx context.Context, tx pgx.Tx, d *domain.VerificationDecision) error {
	query, args, err := psql.
		Insert("verification_decisions").
		Columns("task_id", "evidence_id", "outcome", "reviewer_id", "comment").
		Values(d.TaskID, d.EvidenceID, d.Outcome, d.ReviewerID, d.Comment).
		Suffix("RETURNING id, decided_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query for decision: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&d.ID, &d.DecidedAt)
	if err != nil {
		return fmt.Errorf("create verification decision: %w", err)
	}

	return nil
}

// ListByTask retrieves all decisions for a task, newest first.
func (r *DecisionRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.VerificationDecision, error) {
	query, args, err := psql.
		Select("id", "task_id", "evidence_id", "outcome", "reviewer_id", "comment", "decided_at").
		From("verification_decisions").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("decided_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByTask query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query decisions: %w", err)
	}
	defer rows.Close()

	var decisions []*domain.VerificationDecision
	for rows.Next() {
		var d domain.VerificationDecision
		err := rows.Scan(
			&d.ID,
			&d.TaskID,
			&d.EvidenceID,
			&d.Outcome,
			&d.ReviewerID,
			&d.Comment,
			&d.DecidedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		decisions = append(decisions, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return decisions, nil
}
