package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewline/siteproof/internal/domain"
	"github.com/crewline/siteproof/internal/phase"
	"github.com/crewline/siteproof/internal/service"
)

// stubUnits is an in-memory UnitDirectory for pure validator tests.
type stubUnits map[string]bool

func (s stubUnits) Exists(_ context.Context, projectID, unitID string) (bool, error) {
	return s[projectID+"/"+unitID], nil
}

func validParams() service.CreateTaskParams {
	return service.CreateTaskParams{
		Title:       "Foundation pour",
		Description: "Pour the tower A raft foundation",
		ProjectID:   "p1",
		UnitID:      "u1",
		PhaseID:     "groundwork_foundation",
		Priority:    domain.TaskPriorityHigh,
		Deadline:    time.Now().UTC().AddDate(0, 0, 7),
	}
}

func newValidator() *service.Validator {
	return service.NewValidator(phase.NewCatalog(), stubUnits{"p1/u1": true})
}

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
	names := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		names[i] = f.Field
	}
	return names
}

func TestValidateCreate_Valid(t *testing.T) {
	err := newValidator().ValidateCreate(context.Background(), validParams(), time.Now())
	assert.NoError(t, err)
}

func TestValidateCreate_DeadlineToday(t *testing.T) {
	params := validParams()
	params.Deadline = time.Now().UTC().Truncate(24 * time.Hour)

	err := newValidator().ValidateCreate(context.Background(), params, time.Now())
	assert.NoError(t, err)
}

func TestValidateCreate_ReportsEveryBadField(t *testing.T) {
	params := validParams()
	params.Deadline = time.Time{}
	params.PhaseID = "swimming_pool"

	err := newValidator().ValidateCreate(context.Background(), params, time.Now())
	names := fieldNames(t, err)
	assert.Contains(t, names, "deadline")
	assert.Contains(t, names, "phase_id")
	assert.Len(t, names, 2)
}

func TestValidateCreate_MissingEverything(t *testing.T) {
	err := newValidator().ValidateCreate(context.Background(), service.CreateTaskParams{}, time.Now())
	names := fieldNames(t, err)
	assert.ElementsMatch(t, []string{
		"title", "description", "project_id", "unit_id", "phase_id", "priority", "deadline",
	}, names)
}

func TestValidateCreate_UnitNotInProject(t *testing.T) {
	params := validParams()
	params.UnitID = "u99"

	err := newValidator().ValidateCreate(context.Background(), params, time.Now())
	names := fieldNames(t, err)
	assert.Equal(t, []string{"unit_id"}, names)
}

func TestValidateCreate_PastDeadline(t *testing.T) {
	params := validParams()
	params.Deadline = time.Now().UTC().AddDate(0, 0, -2)

	err := newValidator().ValidateCreate(context.Background(), params, time.Now())
	names := fieldNames(t, err)
	assert.Equal(t, []string{"deadline"}, names)
}

func TestValidateEvidence_NoImages(t *testing.T) {
	err := newValidator().ValidateEvidence(service.EvidenceInput{
		SubmittedStatus: domain.SubmittedStatusCompleted,
	})
	names := fieldNames(t, err)
	assert.Equal(t, []string{"images"}, names)
}

func TestValidateEvidence_ImageWithoutURL(t *testing.T) {
	err := newValidator().ValidateEvidence(service.EvidenceInput{
		Images:          []domain.EvidenceImage{{Caption: "no url"}},
		SubmittedStatus: domain.SubmittedStatusInProgress,
	})
	names := fieldNames(t, err)
	assert.Equal(t, []string{"images[0].url"}, names)
}

func TestValidateEvidence_BadStatusAndProgress(t *testing.T) {
	percent := 150
	err := newValidator().ValidateEvidence(service.EvidenceInput{
		Images:          []domain.EvidenceImage{{URL: "https://media.example/x.jpg"}},
		SubmittedStatus: domain.SubmittedStatus("done"),
		ProgressPercent: &percent,
	})
	names := fieldNames(t, err)
	assert.ElementsMatch(t, []string{"submitted_status", "progress_percent"}, names)
}

func TestValidateEvidence_Valid(t *testing.T) {
	percent := 40
	err := newValidator().ValidateEvidence(service.EvidenceInput{
		Images:          []domain.EvidenceImage{{URL: "https://media.example/x.jpg", Caption: "rebar"}},
		SubmittedStatus: domain.SubmittedStatusInProgress,
		ProgressPercent: &percent,
	})
	assert.NoError(t, err)
}
