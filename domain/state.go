package domain

// State is a US state shown on the map. Only licensed states can be selected.
type State struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Licensed bool   `json:"licensed"`
}
