package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/crewline/siteproof/internal/domain"
)

// TaskListFilters holds all supported filters for task listing.
type TaskListFilters struct {
	Statuses   []string // Optional: filter by status
	ProjectID  *string  // Optional: filter by project
	PhaseID    *string  // Optional: filter by construction phase
	Priorities []string // Optional: filter by priority
	TitleQuery string   // Optional: case-insensitive substring match on title
	Limit      int      // Required: page size
	Offset     int      // Required: page offset
}

// applyTaskFilters adds the shared WHERE clauses to a select builder.
func applyTaskFilters(qb sq.SelectBuilder, filters TaskListFilters) sq.SelectBuilder {
	if len(filters.Statuses) > 0 {
		qb = qb.Where(sq.Eq{"status": filters.Statuses})
	}
	if filters.ProjectID != nil {
		qb = qb.Where(sq.Eq{"project_id": *filters.ProjectID})
	}
	if filters.PhaseID != nil {
		qb = qb.Where(sq.Eq{"phase_id": *filters.PhaseID})
	}
	if len(filters.Priorities) > 0 {
		qb = qb.Where(sq.Eq{"priority": filters.Priorities})
	}
	if filters.TitleQuery != "" {
		qb = qb.Where(sq.ILike{"title": "%" + filters.TitleQuery + "%"})
	}
	return qb
}

// List retrieves tasks with filters and pagination. Ordering is fixed to
// deadline ascending then id, so paginated callers see a stable sequence
// within one snapshot.
func (r *TaskRepository) List(ctx context.Context, filters TaskListFilters) ([]*domain.Task, int, error) {
	qb := applyTaskFilters(psql.Select(taskColumns...).From("tasks"), filters).
		OrderBy("deadline ASC", "id ASC")

	if filters.Limit > 0 {
		qb = qb.Limit(uint64(filters.Limit)).Offset(uint64(filters.Offset))
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build List query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query tasks: %w", err)
	}

	tasks, err := scanTasks(rows)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := applyTaskFilters(psql.Select("COUNT(*)").From("tasks"), filters).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	return tasks, total, nil
}

// CountByStatus returns per-status task counts, optionally scoped to a project.
// Dashboards use these for the status tab badges.
func (r *TaskRepository) CountByStatus(ctx context.Context, projectID *string) (map[domain.TaskStatus]int, error) {
	qb := psql.Select("status", "COUNT(*)").From("tasks").GroupBy("status")
	if projectID != nil {
		qb = qb.Where(sq.Eq{"project_id": *projectID})
	}

	query, args, err := qb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build CountByStatus query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query status counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.TaskStatus]int)
	for rows.Next() {
		var status domain.TaskStatus
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return counts, nil
}
