package handler

import (
	"encoding/json"
	"net/http"

	"github.com/crewline/siteproof/internal/domain"
	"github.com/crewline/siteproof/internal/handler/dto"
	"github.com/crewline/siteproof/internal/middleware"
)

// handleReview records a verification decision for a completed task.
// @Summary Review a task's evidence
// @Description Site-incharge approves or rejects the evidence of a completed task. Approve is terminal; reject returns the task to the contractor.
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.ReviewRequest true "Review decision"
// @Success 201 {object} dto.DecisionResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /tasks/{id}/review [post]
func (h *Handler) handleReview(w http.ResponseWriter, r *http.Request) {
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

	var req dto.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := dto.Validate(req); err != nil {
		respondDomainError(w, err)
		return
	}

	decision, err := h.verificationService.Review(ctx, actor, taskID, domain.VerificationOutcome(req.Outcome), req.Comment)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToDecisionResponse(decision))
}

// handleDecisionHistory returns all verification decisions for a task.
// @Summary Decision history
// @Description Get all verification decisions for a task, newest first
// @Tags review
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.DecisionListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id}/decisions [get]
func (h *Handler) handleDecisionHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	decisions, err := h.verificationService.History(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := dto.DecisionListResponse{Decisions: make([]dto.DecisionResponse, len(decisions))}
	for i, d := range decisions {
		resp.Decisions[i] = dto.ToDecisionResponse(d)
	}

	respondJSON(w, http.StatusOK, resp)
}
