package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crewline/siteproof/internal/domain"
)

func TestValidationError_ListsEveryField(t *testing.T) {
	verr := &domain.ValidationError{}
	verr.Add("deadline", "is required")
	verr.Add("phase_id", "unknown construction phase x")

	assert.Len(t, verr.Fields, 2)
	assert.Contains(t, verr.Error(), "deadline")
	assert.Contains(t, verr.Error(), "phase_id")
}

func TestValidationError_MatchesSentinel(t *testing.T) {
	verr := &domain.ValidationError{}
	verr.Add("images", "at least one image is required")

	assert.True(t, errors.Is(verr, domain.ErrValidation))
	assert.False(t, errors.Is(verr, domain.ErrInvalidTransition))
}

func TestValidationError_Empty(t *testing.T) {
	verr := &domain.ValidationError{}
	assert.True(t, verr.Empty())
	verr.Add("title", "is required")
	assert.False(t, verr.Empty())
}
