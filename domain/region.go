package domain

// RegionVisual is how the map collaborator should paint a state region.
type RegionVisual string

const (
	RegionUnlicensed RegionVisual = "unlicensed"
	RegionAvailable  RegionVisual = "available"
	RegionSelected   RegionVisual = "selected"
)

// Region is one entry of the declarative map description handed to the
// map renderer on every Selection change.
type Region struct {
	Code       string       `json:"code"`
	Name       string       `json:"name"`
	Visual     RegionVisual `json:"visual"`
	Selectable bool         `json:"selectable"`
}
