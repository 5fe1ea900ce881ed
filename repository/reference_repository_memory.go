package repository

import (
	"slices"

	"market-finder/domain"
)

// ReferenceRepositoryMemory is an immutable in-memory ReferenceRepository.
type ReferenceRepositoryMemory struct {
	states   []domain.State
	byCode   map[string]domain.State
	carriers []domain.Carrier
	lobs     map[domain.BusinessType][]string
}

// NewReferenceRepositoryMemory validates ds and builds the lookup tables.
func NewReferenceRepositoryMemory(ds Dataset) (*ReferenceRepositoryMemory, error) {
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	r := &ReferenceRepositoryMemory{
		states:   slices.Clone(ds.States),
		byCode:   make(map[string]domain.State, len(ds.States)),
		carriers: make([]domain.Carrier, 0, len(ds.Carriers)),
		lobs:     make(map[domain.BusinessType][]string, len(ds.LOBs)),
	}
	for _, s := range ds.States {
		r.byCode[s.Code] = s
	}
	for _, c := range ds.Carriers {
		r.carriers = append(r.carriers, cloneCarrier(c))
	}
	for bt, names := range ds.LOBs {
		r.lobs[bt] = slices.Clone(names)
	}
	return r, nil
}

// ListStates returns every state in dataset order.
func (r *ReferenceRepositoryMemory) ListStates() []domain.State {
	return slices.Clone(r.states)
}

// FindState looks a state up by its code.
func (r *ReferenceRepositoryMemory) FindState(code string) (domain.State, bool) {
	s, ok := r.byCode[code]
	return s, ok
}

// ListCarriers returns every carrier in dataset order.
func (r *ReferenceRepositoryMemory) ListCarriers() []domain.Carrier {
	out := make([]domain.Carrier, 0, len(r.carriers))
	for _, c := range r.carriers {
		out = append(out, cloneCarrier(c))
	}
	return out
}

// LOBsFor returns the ordered catalog for bt, or an empty slice when bt is
// unset or unknown.
func (r *ReferenceRepositoryMemory) LOBsFor(bt domain.BusinessType) []string {
	names, ok := r.lobs[bt]
	if !ok {
		return []string{}
	}
	return slices.Clone(names)
}

// LicensedStates returns the states that can be selected.
func (r *ReferenceRepositoryMemory) LicensedStates() []domain.State {
	var out []domain.State
	for _, s := range r.states {
		if s.Licensed {
			out = append(out, s)
		}
	}
	return out
}

func cloneCarrier(c domain.Carrier) domain.Carrier {
	c.States = slices.Clone(c.States)
	c.Lines = slices.Clone(c.Lines)
	c.Tags = slices.Clone(c.Tags)
	return c
}

var _ ReferenceRepository = (*ReferenceRepositoryMemory)(nil)
