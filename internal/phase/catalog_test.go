package phase_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewline/siteproof/internal/domain"
	"github.com/crewline/siteproof/internal/phase"
)

func TestCatalog_ListIsOrdered(t *testing.T) {
	c := phase.NewCatalog()

	phases := c.List()
	require.NotEmpty(t, phases)

	for i := 1; i < len(phases); i++ {
		assert.Less(t, phases[i-1].Order, phases[i].Order)
	}
}

func TestCatalog_Get(t *testing.T) {
	c := phase.NewCatalog()

	p, err := c.Get("groundwork_foundation")
	require.NoError(t, err)
	assert.Equal(t, "Groundwork & Foundation", p.Title)
	assert.Equal(t, 1, p.Order)
}

func TestCatalog_GetUnknown(t *testing.T) {
	c := phase.NewCatalog()

	_, err := c.Get("swimming_pool")
	assert.True(t, errors.Is(err, domain.ErrPhaseNotFound))
}

func TestCatalog_ListReturnsCopy(t *testing.T) {
	c := phase.NewCatalog()

	phases := c.List()
	phases[0].Title = "mutated"

	again := c.List()
	assert.NotEqual(t, "mutated", again[0].Title)
}
