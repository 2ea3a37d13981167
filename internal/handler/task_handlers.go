package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/crewline/siteproof/internal/domain"
	"github.com/crewline/siteproof/internal/handler/dto"
	"github.com/crewline/siteproof/internal/middleware"
	"github.com/crewline/siteproof/internal/repository"
	"github.com/crewline/siteproof/internal/service"
)

// handleCreateTask creates a new task.
// @Summary Create a task
// @Description Creates a construction task in pending status. Validation reports every missing or invalid field at once.
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} dto.TaskResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks [post]
func (h *Handler) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "UNKNOWN_ACTOR", "Actor identity required")
		return
	}

	var req dto.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	// The deadline is a date; a zero time stands for "missing" so the
	// service validator can report it alongside the other fields.
	var deadline time.Time
	if req.Deadline != "" {
		deadline, err = time.Parse(dto.DeadlineFormat, req.Deadline)
		if err != nil {
			verr := &domain.ValidationError{}
			verr.Add("deadline", "must be a date in YYYY-MM-DD format")
			respondDomainError(w, verr)
			return
		}
	}

	task, err := h.taskService.CreateTask(ctx, actor, service.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		UnitID:      req.UnitID,
		PhaseID:     req.PhaseID,
		Priority:    domain.TaskPriority(req.Priority),
		Deadline:    deadline,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToTaskResponse(task))
}

// handleGetTask retrieves task details with evidence and decision history.
// @Summary Get task details
// @Description Get full task details including evidence history and verification decisions
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.TaskDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id} [get]
func (h *Handler) handleGetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	evidence, err := h.taskService.ListEvidence(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	decisions, err := h.verificationService.History(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := dto.TaskDetailResponse{
		Task:      dto.ToTaskResponse(task),
		Evidence:  make([]dto.EvidenceResponse, len(evidence)),
		Decisions: make([]dto.DecisionResponse, len(decisions)),
	}
	for i, ev := range evidence {
		resp.Evidence[i] = dto.ToEvidenceResponse(ev)
	}
	for i, d := range decisions {
		resp.Decisions[i] = dto.ToDecisionResponse(d)
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleTransition changes task status.
// @Summary Transition task status
// @Description Move a task along the state machine (start work, resume after rejection). Approval and rejection are only reachable through review.
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.TransitionRequest true "Status transition request"
// @Success 200 {object} dto.TaskResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /tasks/{id}/status [patch]
func (h *Handler) handleTransition(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, err := middleware.ActorFromContext(ctx)
	if err != nil {
		respondError(w, http.StatusUnauthorized, "UNKNOWN_ACTOR", "Actor identity required")
		return
	}

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	var req dto.TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := dto.Validate(req); err != nil {
		respondDomainError(w, err)
		return
	}

	task, err := h.taskService.Transition(ctx, actor, taskID, domain.TaskStatus(req.Status))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToTaskResponse(task))
}

// handleListTasks returns a list of tasks with filters.
// @Summary List tasks
// @Description Get tasks filtered by status, project, phase, priority and title search. Ordered by deadline then id.
// @Tags tasks
// @Produce json
// @Param status query string false "Comma-separated statuses: pending,in_progress"
// @Param project_id query string false "Filter by project"
// @Param phase_id query string false "Filter by construction phase"
// @Param priority query string false "Comma-separated priorities: high,medium"
// @Param q query string false "Case-insensitive title substring"
// @Param limit query int false "Page size (1-200, default 50)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} dto.TasksListResponse
// @Router /tasks [get]
func (h *Handler) handleListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()

	var statuses []string
	if statusParam := query.Get("status"); statusParam != "" {
		statuses = splitAndTrim(statusParam, ",")
	}

	var projectID *string
	if p := query.Get("project_id"); p != "" {
		projectID = &p
	}

	var phaseID *string
	if p := query.Get("phase_id"); p != "" {
		phaseID = &p
	}

	var priorities []string
	if priorityParam := query.Get("priority"); priorityParam != "" {
		priorities = splitAndTrim(priorityParam, ",")
	}

	limit, offset := parsePagination(query.Get("limit"), query.Get("offset"))

	tasks, total, err := h.taskService.ListTasks(ctx, repository.TaskListFilters{
		Statuses:   statuses,
		ProjectID:  projectID,
		PhaseID:    phaseID,
		Priorities: priorities,
		TitleQuery: query.Get("q"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list tasks")
		return
	}

	resp := dto.TasksListResponse{
		Tasks:  make([]dto.TaskResponse, len(tasks)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for i, task := range tasks {
		resp.Tasks[i] = dto.ToTaskResponse(task)
	}

	respondJSON(w, http.StatusOK, resp)
}

// handleOverview returns the dashboard projection.
// @Summary Dashboard overview
// @Description Snapshot of tasks with latest evidence, phase titles, overdue flags and status tab counts
// @Tags overview
// @Produce json
// @Param tab query string false "Status tab: all or a single status (default all)"
// @Param q query string false "Case-insensitive title substring"
// @Param project_id query string false "Filter by project"
// @Param phase_id query string false "Filter by construction phase"
// @Param priority query string false "Comma-separated priorities"
// @Param limit query int false "Page size (1-200, default 50)"
// @Param offset query int false "Page offset (default 0)"
// @Success 200 {object} dto.OverviewResponse
// @Router /overview [get]
func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()

	tab := query.Get("tab")
	if tab == "" {
		tab = service.StatusTabAll
	}

	var projectID *string
	if p := query.Get("project_id"); p != "" {
		projectID = &p
	}

	var phaseID *string
	if p := query.Get("phase_id"); p != "" {
		phaseID = &p
	}

	var priorities []string
	if priorityParam := query.Get("priority"); priorityParam != "" {
		priorities = splitAndTrim(priorityParam, ",")
	}

	limit, offset := parsePagination(query.Get("limit"), query.Get("offset"))

	page, err := h.queryService.Overview(ctx, service.OverviewFilters{
		StatusTab:  tab,
		Query:      query.Get("q"),
		ProjectID:  projectID,
		PhaseID:    phaseID,
		Priorities: priorities,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, dto.ToOverviewResponse(page, limit, offset))
}

// parsePagination bounds limit to 1-200 (default 50) and offset to >= 0.
func parsePagination(limitParam, offsetParam string) (int, int) {
	limit := 50
	if limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	offset := 0
	if offsetParam != "" {
		if n, err := strconv.Atoi(offsetParam); err == nil && n >= 0 {
			offset = n
		}
	}

	return limit, offset
}

// splitAndTrim splits a string by delimiter and trims whitespace.
func splitAndTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
