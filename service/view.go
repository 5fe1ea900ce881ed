package service

import (
	"context"

	"market-finder/domain"
)

// Option is one entry of a picker rendered by a front-end.
type Option struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Anchor      string `json:"anchor"`
	Active      bool   `json:"active"`
}

// View is everything a front-end needs to render one Selection.
type View struct {
	Stage         domain.Stage          `json:"stage"`
	Selection     domain.Selection      `json:"selection"`
	URL           string                `json:"url"`
	StateName     string                `json:"stateName,omitempty"`
	Regions       []domain.Region       `json:"regions"`
	BusinessTypes []Option              `json:"businessTypes"`
	Products      []Option              `json:"products"`
	Results       domain.CarrierResults `json:"results"`
	Total         int                   `json:"total"`
}

// ViewBuilder derives a View from a Selection. It never mutates anything.
type ViewBuilder struct {
	selection *SelectionService
	lookup    *LookupService
}

func NewViewBuilder(selection *SelectionService, lookup *LookupService) *ViewBuilder {
	return &ViewBuilder{selection: selection, lookup: lookup}
}

// Build assembles the View for sel.
func (b *ViewBuilder) Build(ctx context.Context, sel domain.Selection) View {
	ref := b.selection.Reference()

	v := View{
		Stage:     domain.StageOf(sel),
		Selection: sel,
		URL:       SelectionURL(sel),
		Regions:   RegionStates(ref.ListStates(), sel.StateCode),
		Products:  []Option{},
	}
	if state, ok := ref.FindState(sel.StateCode); ok {
		v.StateName = state.Name
	}

	for _, bt := range domain.BusinessTypes {
		v.BusinessTypes = append(v.BusinessTypes, Option{
			Value:       string(bt),
			Label:       string(bt),
			Description: bt.Description(),
			Anchor:      Slugify(string(bt)),
			Active:      sel.BusinessType == bt,
		})
	}
	for _, lob := range ref.LOBsFor(sel.BusinessType) {
		v.Products = append(v.Products, Option{
			Value:  lob,
			Label:  lob,
			Anchor: Slugify(lob),
			Active: sel.LOB == lob,
		})
	}

	v.Results = b.lookup.Lookup(ctx, sel)
	v.Total = v.Results.Total()
	return v
}
