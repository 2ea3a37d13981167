package service

import (
	"context"
	"fmt"
	"time"

	"github.com/crewline/siteproof/internal/domain"
	"github.com/crewline/siteproof/internal/phase"
)

// UnitDirectory answers whether a project/unit pair exists. The project/unit
// catalog is owned by an external system; the repository-backed replica
// implements this.
type UnitDirectory interface {
	Exists(ctx context.Context, projectID, unitID string) (bool, error)
}

// Validator handles input validation for task operations. It collects every
// offending field before failing, so callers can surface all problems at once.
type Validator struct {
	phases *phase.Catalog
	units  UnitDirectory
}

// NewValidator creates a new Validator.
func NewValidator(phases *phase.Catalog, units UnitDirectory) *Validator {
	return &Validator{
		phases: phases,
		units:  units,
	}
}

// ValidateCreate checks every field of a task creation request.
func (v *Validator) ValidateCreate(ctx context.Context, params CreateTaskParams, now time.Time) error {
	verr := &domain.ValidationError{}

	if params.Title == "" {
		verr.Add("title", "is required")
	}
	if params.Description == "" {
		verr.Add("description", "is required")
	}

	if params.ProjectID == "" {
		verr.Add("project_id", "is required")
	}
	if params.UnitID == "" {
		verr.Add("unit_id", "is required")
	}
	if params.ProjectID != "" && params.UnitID != "" {
		exists, err := v.units.Exists(ctx, params.ProjectID, params.UnitID)
		if err != nil {
			return fmt.Errorf("check project unit: %w", err)
		}
		if !exists {
			verr.Add("unit_id", fmt.Sprintf("unit %s does not belong to project %s", params.UnitID, params.ProjectID))
		}
	}

	if params.PhaseID == "" {
		verr.Add("phase_id", "is required")
	} else if _, err := v.phases.Get(params.PhaseID); err != nil {
		verr.Add("phase_id", fmt.Sprintf("unknown construction phase %s", params.PhaseID))
	}

	if !params.Priority.IsValid() {
		verr.Add("priority", "must be 'low', 'medium', or 'high'")
	}

	if params.Deadline.IsZero() {
		verr.Add("deadline", "is required")
	} else if params.Deadline.Before(now.UTC().Truncate(24 * time.Hour)) {
		verr.Add("deadline", "must be today or a future date")
	}

	if verr.Empty() {
		return nil
	}
	return verr
}

// ValidateEvidence checks an evidence submission.
func (v *Validator) ValidateEvidence(input EvidenceInput) error {
	verr := &domain.ValidationError{}

	if len(input.Images) == 0 {
		verr.Add("images", "at least one image is required")
	}
	for i, img := range input.Images {
		if img.URL == "" {
			verr.Add(fmt.Sprintf("images[%d].url", i), "is required")
		}
	}

	if !input.SubmittedStatus.IsValid() {
		verr.Add("submitted_status", "must be 'in_progress', 'completed', or 'pending_review'")
	}

	if input.ProgressPercent != nil && (*input.ProgressPercent < 0 || *input.ProgressPercent > 100) {
		verr.Add("progress_percent", "must be between 0 and 100")
	}

	if verr.Empty() {
		return nil
	}
	return verr
}
