package service

import (
	"context"
	"fmt"
	"time"

	"github.com/crewline/siteproof/internal/domain"
	"github.com/crewline/siteproof/internal/phase"
	"github.com/crewline/siteproof/internal/repository"
)

// StatusTabAll is the dashboard tab that spans every status.
const StatusTabAll = "all"

// OverviewFilters holds the dashboard filter/search/tab parameters.
type OverviewFilters struct {
	StatusTab  string // "all" or a single status
	Query      string // free-text title search
	ProjectID  *string
	PhaseID    *string
	Priorities []string
	Limit      int
	Offset     int
}

// TaskOverview is a read-only projection of a task with its latest evidence
// and resolved phase title.
type TaskOverview struct {
	Task           *domain.Task
	PhaseTitle     string
	LatestEvidence *domain.Evidence
	IsOverdue      bool
}

// OverviewPage is a point-in-time snapshot: rows are ordered by deadline
// ascending then id, and the counts reflect the same committed state.
type OverviewPage struct {
	Rows         []TaskOverview
	Total        int
	StatusCounts map[domain.TaskStatus]int
}

// QueryService builds read-only projections over tasks and evidence for the
// contractor and site-incharge dashboards. It never mutates the stores.
type QueryService struct {
	taskRepo     *repository.TaskRepository
	evidenceRepo *repository.EvidenceRepository
	phases       *phase.Catalog
}

// NewQueryService creates a new QueryService.
func NewQueryService(
	taskRepo *repository.TaskRepository,
	evidenceRepo *repository.EvidenceRepository,
	phases *phase.Catalog,
) *QueryService {
	return &QueryService{
		taskRepo:     taskRepo,
		evidenceRepo: evidenceRepo,
		phases:       phases,
	}
}

// Overview returns one page of the dashboard projection plus the per-status
// tab counts.
func (s *QueryService) Overview(ctx context.Context, filters OverviewFilters) (*OverviewPage, error) {
	var statuses []string
	if filters.StatusTab != "" && filters.StatusTab != StatusTabAll {
		status := domain.TaskStatus(filters.StatusTab)
		if !status.IsValid() {
			verr := &domain.ValidationError{}
			verr.Add("tab", fmt.Sprintf("unknown status tab %q", filters.StatusTab))
			return nil, verr
		}
		statuses = []string{filters.StatusTab}
	}

	tasks, total, err := s.taskRepo.List(ctx, repository.TaskListFilters{
		Statuses:   statuses,
		ProjectID:  filters.ProjectID,
		PhaseID:    filters.PhaseID,
		Priorities: filters.Priorities,
		TitleQuery: filters.Query,
		Limit:      filters.Limit,
		Offset:     filters.Offset,
	})
	if err != nil {
		return nil, err
	}

	taskIDs := make([]string, len(tasks))
	for i, t := range tasks {
		taskIDs[i] = t.ID
	}

	latest, err := s.evidenceRepo.LatestForTasks(ctx, taskIDs)
	if err != nil {
		return nil, err
	}

	counts, err := s.taskRepo.CountByStatus(ctx, filters.ProjectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rows := make([]TaskOverview, len(tasks))
	for i, t := range tasks {
		title := t.PhaseID
		if p, err := s.phases.Get(t.PhaseID); err == nil {
			title = p.Title
		}
		rows[i] = TaskOverview{
			Task:           t,
			PhaseTitle:     title,
			LatestEvidence: latest[t.ID],
			IsOverdue:      t.IsOverdue(now),
		}
	}

	return &OverviewPage{
		Rows:         rows,
		Total:        total,
		StatusCounts: counts,
	}, nil
}
