package domain

// ConstructionPhase is a named stage of construction used to categorize
// tasks and evidence. Phases are seeded at process start and never mutated.
type ConstructionPhase struct {
	ID    string
	Title string
	Order int
}
