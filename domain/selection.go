package domain

// Selection is the user's current choice of state, business type and line
// of business. An empty string means the field is not chosen yet.
type Selection struct {
	StateCode    string       `json:"state"`
	BusinessType BusinessType `json:"type"`
	LOB          string       `json:"lob"`
}

// Complete reports whether all three fields are set.
func (s Selection) Complete() bool {
	return s.StateCode != "" && s.BusinessType != "" && s.LOB != ""
}

// IsZero reports whether no field is set.
func (s Selection) IsZero() bool {
	return s == Selection{}
}
