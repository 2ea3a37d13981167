// Package phase holds the static construction phase catalog. The catalog is
// seeded at process start and read-only afterwards; every task references a
// phase by id.
package phase

import (
	"fmt"
	"sort"

	"github.com/crewline/siteproof/internal/domain"
)

var defaultPhases = []domain.ConstructionPhase{
	{ID: "groundwork_foundation", Title: "Groundwork & Foundation", Order: 1},
	{ID: "structure_framing", Title: "Structure & Framing", Order: 2},
	{ID: "masonry", Title: "Masonry & Blockwork", Order: 3},
	{ID: "roofing", Title: "Roofing & Waterproofing", Order: 4},
	{ID: "plumbing", Title: "Plumbing & Sanitary", Order: 5},
	{ID: "electrical", Title: "Electrical & Wiring", Order: 6},
	{ID: "plastering", Title: "Plastering & Finishes", Order: 7},
	{ID: "flooring", Title: "Flooring & Tiling", Order: 8},
	{ID: "painting", Title: "Painting", Order: 9},
	{ID: "handover", Title: "Snagging & Handover", Order: 10},
}

// Catalog is the in-process registry of construction phases.
type Catalog struct {
	byID    map[string]domain.ConstructionPhase
	ordered []domain.ConstructionPhase
}

// NewCatalog builds the catalog from the default phase set.
func NewCatalog() *Catalog {
	return newCatalog(defaultPhases)
}

func newCatalog(phases []domain.ConstructionPhase) *Catalog {
	c := &Catalog{
		byID:    make(map[string]domain.ConstructionPhase, len(phases)),
		ordered: make([]domain.ConstructionPhase, len(phases)),
	}
	copy(c.ordered, phases)
	sort.Slice(c.ordered, func(i, j int) bool {
		return c.ordered[i].Order < c.ordered[j].Order
	})
	for _, p := range phases {
		c.byID[p.ID] = p
	}
	return c
}

// List returns all phases in display order.
func (c *Catalog) List() []domain.ConstructionPhase {
	out := make([]domain.ConstructionPhase, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Get resolves a phase by id.
func (c *Catalog) Get(id string) (domain.ConstructionPhase, error) {
	p, ok := c.byID[id]
	if !ok {
		return domain.ConstructionPhase{}, fmt.Errorf("%w: %s", domain.ErrPhaseNotFound, id)
	}
	return p, nil
}
