package service

import "market-finder/domain"

// RegionStates describes how every state should look on the map for the
// given selected code. It is recomputed on each Selection change and handed
// to the renderer as a whole.
func RegionStates(states []domain.State, selected string) []domain.Region {
	regions := make([]domain.Region, 0, len(states))
	for _, s := range states {
		r := domain.Region{
			Code:       s.Code,
			Name:       s.Name,
			Visual:     domain.RegionAvailable,
			Selectable: s.Licensed,
		}
		switch {
		case !s.Licensed:
			r.Visual = domain.RegionUnlicensed
		case s.Code == selected:
			r.Visual = domain.RegionSelected
		}
		regions = append(regions, r)
	}
	return regions
}
