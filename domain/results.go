package domain

// CarrierResults partitions the carriers matching a Selection by how they
// accept applications. A carrier tagged both Online and Offline is only
// listed under Online.
type CarrierResults struct {
	Online      []Carrier `json:"online"`
	OfflineOnly []Carrier `json:"offlineOnly"`
}

// Total is the number of matching carriers across both groups.
func (r CarrierResults) Total() int {
	return len(r.Online) + len(r.OfflineOnly)
}

// Empty reports whether no carrier matched.
func (r CarrierResults) Empty() bool {
	return r.Total() == 0
}
