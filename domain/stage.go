package domain

// Stage is the screen the front-ends show for a Selection.
type Stage int

const (
	StageMap Stage = iota
	StageRefine
	StageResults
)

func (s Stage) String() string {
	switch s {
	case StageMap:
		return "map"
	case StageRefine:
		return "refine"
	case StageResults:
		return "results"
	default:
		return "unknown"
	}
}

// MarshalText renders the stage by name in JSON payloads.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StageOf projects a Selection onto its stage. Completeness is based on the
// fields being non-empty, not on whether any carrier matches.
func StageOf(sel Selection) Stage {
	switch {
	case sel.StateCode == "":
		return StageMap
	case sel.BusinessType == "" || sel.LOB == "":
		return StageRefine
	default:
		return StageResults
	}
}
