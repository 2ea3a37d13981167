package handler

import (
	"encoding/json"
	"net/http"

	"github.com/crewline/siteproof/internal/domain"
	"github.com/crewline/siteproof/internal/handler/dto"
	"github.com/crewline/siteproof/internal/middleware"
	"github.com/crewline/siteproof/internal/service"
)

// handleSubmitEvidence attaches a photo submission to a task.
// @Summary Submit evidence
// @Description Attach photographic evidence to a task. Completion evidence moves the task to completed atomically with the evidence record.
// @Tags evidence
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param request body dto.SubmitEvidenceRequest true "Evidence submission"
// @Success 201 {object} dto.EvidenceResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /tasks/{id}/evidence [post]
func (h *Handler) handleSubmitEvidence(w http.ResponseWriter, r *http.Request) {
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

	var req dto.SubmitEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := dto.Validate(req); err != nil {
		respondDomainError(w, err)
		return
	}

	images := make([]domain.EvidenceImage, len(req.Images))
	for i, img := range req.Images {
		images[i] = domain.EvidenceImage{URL: img.URL, Caption: img.Caption}
	}

	ev, err := h.taskService.SubmitEvidence(ctx, actor, taskID, service.EvidenceInput{
		Title:           req.Title,
		Images:          images,
		Notes:           req.Notes,
		SubmittedStatus: domain.SubmittedStatus(req.SubmittedStatus),
		ProgressPercent: req.ProgressPercent,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, dto.ToEvidenceResponse(ev))
}

// handleListEvidence returns the evidence history for a task.
// @Summary List evidence
// @Description Get all evidence for a task ordered by submission time ascending
// @Tags evidence
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} dto.EvidenceListResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /tasks/{id}/evidence [get]
func (h *Handler) handleListEvidence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	taskID, ok := extractTaskID(w, r)
	if !ok {
		return
	}

	evidence, err := h.taskService.ListEvidence(ctx, taskID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := dto.EvidenceListResponse{Evidence: make([]dto.EvidenceResponse, len(evidence))}
	for i, ev := range evidence {
		resp.Evidence[i] = dto.ToEvidenceResponse(ev)
	}

	respondJSON(w, http.StatusOK, resp)
}
