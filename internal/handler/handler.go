package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/crewline/siteproof/docs" // Import generated docs
	"github.com/crewline/siteproof/internal/handler/dto"
	"github.com/crewline/siteproof/internal/middleware"
	"github.com/crewline/siteproof/internal/phase"
	"github.com/crewline/siteproof/internal/repository"
	"github.com/crewline/siteproof/internal/service"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	pool                *pgxpool.Pool
	phases              *phase.Catalog
	taskService         *service.TaskService
	verificationService *service.VerificationService
	queryService        *service.QueryService
	actorMiddleware     *middleware.ActorMiddleware
}

// New creates a new Handler instance with all dependencies.
func New(pool *pgxpool.Pool) *Handler {
	phases := phase.NewCatalog()

	// Create repositories
	taskRepo := repository.NewTaskRepository(pool)
	evidenceRepo := repository.NewEvidenceRepository(pool)
	decisionRepo := repository.NewDecisionRepository(pool)
	unitRepo := repository.NewUnitRepository(pool)

	// Create services
	taskService := service.NewTaskService(pool, taskRepo, evidenceRepo, phases, unitRepo)
	verificationService := service.NewVerificationService(pool, taskRepo, evidenceRepo, decisionRepo)
	queryService := service.NewQueryService(taskRepo, evidenceRepo, phases)

	return &Handler{
		pool:                pool,
		phases:              phases,
		taskService:         taskService,
		verificationService: verificationService,
		queryService:        queryService,
		actorMiddleware:     middleware.NewActorMiddleware(),
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Health check
	mux.HandleFunc("GET /healthz", h.handleHealthz)

	// Swagger UI
	mux.HandleFunc("GET /swagger/", httpSwagger.Handler())

	auth := h.actorMiddleware.Authenticate

	// API v1 routes with actor identification
	mux.Handle("GET /api/v1/phases", auth(http.HandlerFunc(h.handleListPhases)))
	mux.Handle("GET /api/v1/tasks", auth(http.HandlerFunc(h.handleListTasks)))
	mux.Handle("POST /api/v1/tasks", auth(http.HandlerFunc(h.handleCreateTask)))
	mux.Handle("GET /api/v1/tasks/{id}", auth(http.HandlerFunc(h.handleGetTask)))
	mux.Handle("PATCH /api/v1/tasks/{id}/status", auth(http.HandlerFunc(h.handleTransition)))
	mux.Handle("POST /api/v1/tasks/{id}/evidence", auth(http.HandlerFunc(h.handleSubmitEvidence)))
	mux.Handle("GET /api/v1/tasks/{id}/evidence", auth(http.HandlerFunc(h.handleListEvidence)))
	mux.Handle("POST /api/v1/tasks/{id}/review", auth(http.HandlerFunc(h.handleReview)))
	mux.Handle("GET /api/v1/tasks/{id}/decisions", auth(http.HandlerFunc(h.handleDecisionHistory)))
	mux.Handle("GET /api/v1/overview", auth(http.HandlerFunc(h.handleOverview)))
}

// handleHealthz returns 200 OK if the database is reachable.
func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.pool.Ping(ctx); err != nil {
		slog.Error("database health check failed", "error", err)
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// handleListPhases returns the construction phase catalog.
// @Summary List construction phases
// @Description Get the static construction phase catalog in display order
// @Tags phases
// @Produce json
// @Success 200 {object} dto.PhaseListResponse
// @Router /phases [get]
func (h *Handler) handleListPhases(w http.ResponseWriter, r *http.Request) {
	phases := h.phases.List()
	resp := dto.PhaseListResponse{Phases: make([]dto.PhaseResponse, len(phases))}
	for i, p := range phases {
		resp.Phases[i] = dto.ToPhaseResponse(p)
	}
	respondJSON(w, http.StatusOK, resp)
}

// Ping checks if the database is reachable (used for testing).
func (h *Handler) Ping(ctx context.Context) error {
	return h.pool.Ping(ctx)
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// respondError writes a standard error response.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, dto.NewErrorResponse(code, message))
}

// respondDomainError maps a domain error and writes it.
func respondDomainError(w http.ResponseWriter, err error) {
	status, resp := dto.MapDomainError(err)
	respondJSON(w, status, resp)
}

// extractTaskID extracts and validates the task ID path parameter.
// Returns (taskID, true) if valid, ("", false) if invalid (error already sent to client).
func extractTaskID(w http.ResponseWriter, r *http.Request) (string, bool) {
	taskID := r.PathValue("id")
	if taskID == "" {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "task id is required")
		return "", false
	}

	if _, err := uuid.Parse(taskID); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_REQUEST", "task id must be a valid UUID")
		return "", false
	}

	return taskID, true
}
