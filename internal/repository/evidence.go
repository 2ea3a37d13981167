package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crewline/siteproof/internal/domain"
)

var evidenceColumns = []string{
	"id", "task_id", "title", "images", "submitted_status",
	"notes", "submitted_by", "submitted_at",
}

// EvidenceRepository handles database operations for evidence submissions.
type EvidenceRepository struct {
	pool *pgxpool.Pool
}

// NewEvidenceRepository creates a new EvidenceRepository.
func NewEvidenceRepository(pool *pgxpool.Pool) *EvidenceRepository {
	return &EvidenceRepository{pool: pool}
}

func scanEvidence(row pgx.Row) (*domain.Evidence, error) {
	var ev domain.Evidence
	var images []byte
	err := row.Scan(
		&ev.ID,
		&ev.TaskID,
		&ev.Title,
		&images,
		&ev.SubmittedStatus,
		&ev.Notes,
		&ev.SubmittedBy,
		&ev.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(images, &ev.Images); err != nil {
		return nil, fmt.Errorf("parse evidence images: %w", err)
	}
	return &ev, nil
}

// Create inserts a new evidence record within a transaction.
// Evidence is append-only; there is no update path.
func (r *EvidenceRepository) Create(ctx context.Context, tx pgx.Tx, ev *domain.Evidence) error {
	images, err := json.Marshal(ev.Images)
	if err != nil {
		return fmt.Errorf("encode evidence images: %w", err)
	}

	query, args, err := psql.
		Insert("evidence").
		Columns("task_id", "title", "images", "submitted_status", "notes", "submitted_by").
		Values(ev.TaskID, ev.Title, images, ev.SubmittedStatus, ev.Notes, ev.SubmittedBy).
		Suffix("RETURNING id, submitted_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Create query for evidence: %w", err)
	}

	err = tx.QueryRow(ctx, query, args...).Scan(&ev.ID, &ev.SubmittedAt)
	if err != nil {
		return fmt.Errorf("create evidence: %w", err)
	}

	return nil
}

// ListByTask retrieves all evidence for a task ordered by submission time ascending.
func (r *EvidenceRepository) ListByTask(ctx context.Context, taskID string) ([]*domain.Evidence, error) {
	query, args, err := psql.
		Select(evidenceColumns...).
		From("evidence").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("submitted_at ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build ListByTask query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evidence: %w", err)
	}
	defer rows.Close()

	var items []*domain.Evidence
	for rows.Next() {
		ev, err := scanEvidence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}
		items = append(items, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return items, nil
}

// LatestByTask retrieves the most recent evidence for a task within a
// transaction. Returns ErrEvidenceNotFound when the task has none.
func (r *EvidenceRepository) LatestByTask(ctx context.Context, tx pgx.Tx, taskID string) (*domain.Evidence, error) {
	query, args, err := psql.
		Select(evidenceColumns...).
		From("evidence").
		Where(sq.Eq{"task_id": taskID}).
		OrderBy("submitted_at DESC", "id DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build LatestByTask query: %w", err)
	}

	ev, err := scanEvidence(tx.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: task %s has no evidence", domain.ErrEvidenceNotFound, taskID)
		}
		return nil, fmt.Errorf("scan evidence: %w", err)
	}
	return ev, nil
}

// LatestForTasks retrieves the most recent evidence record per task id.
// Tasks without evidence are absent from the result map.
func (r *EvidenceRepository) LatestForTasks(ctx context.Context, taskIDs []string) (map[string]*domain.Evidence, error) {
	if len(taskIDs) == 0 {
		return map[string]*domain.Evidence{}, nil
	}

	query, args, err := psql.
		Select(evidenceColumns...).
		Options("DISTINCT ON (task_id)").
		From("evidence").
		Where(sq.Eq{"task_id": taskIDs}).
		OrderBy("task_id", "submitted_at DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build LatestForTasks query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query latest evidence: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]*domain.Evidence)
	for rows.Next() {
		ev, err := scanEvidence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan evidence: %w", err)
		}
		latest[ev.TaskID] = ev
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return latest, nil
}
