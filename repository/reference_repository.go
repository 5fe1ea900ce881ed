package repository

import "market-finder/domain"

// ReferenceRepository exposes the read-only reference data. Implementations
// must be safe for concurrent readers and return copies, never shared slices.
type ReferenceRepository interface {
	ListStates() []domain.State
	FindState(code string) (domain.State, bool)
	ListCarriers() []domain.Carrier
	LOBsFor(bt domain.BusinessType) []string
}
