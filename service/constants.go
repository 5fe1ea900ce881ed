package service

// Query parameters carrying the Selection in the shareable URL.
const (
	ParamState = "state"
	ParamType  = "type"
	ParamLOB   = "lob"
)

// Selection fields, used as log and metric labels.
const (
	FieldState        = "state"
	FieldBusinessType = "type"
	FieldLOB          = "lob"
	FieldReset        = "reset"
)

const (
	// RootPath is where the front-end lives; the query string carries the Selection.
	RootPath = "/"

	lookupCachePrefix = "lookup:"

	// Tag bucket used by GroupByTag for carriers without tags.
	otherTag = "Other"
)
