package models

// WarningKind classifies per-instrument and per-batch diagnostics.
type WarningKind string

const (
	// WarnNoData: the source returned nothing usable for the instrument in
	// the requested range. The instrument is dropped from the result.
	WarnNoData WarningKind = "no_data"
	// WarnShapeMismatch: the source returned data that is not a single
	// value series (a known failure mode of the upstream API). Dropped.
	WarnShapeMismatch WarningKind = "shape_mismatch"
	// WarnFetchError: transport or remote failure, including timeout.
	// Never retried within a request. Dropped.
	WarnFetchError WarningKind = "fetch_error"
	// WarnStructural: the merge across the whole batch failed; the result
	// degrades to an empty table with this single batch-level warning.
	WarnStructural WarningKind = "structural_error"
)

// Warning is a non-fatal diagnostic accompanying a (possibly partial)
// result. Name is empty for batch-level warnings.
type Warning struct {
	Name   string      `json:"name,omitempty" example:"DB Hitek"`
	Kind   WarningKind `json:"kind" example:"no_data"`
	Detail string      `json:"detail,omitempty" example:"no observations in range"`
}
