package models

// OutcomeKind classifies the per-row result of a batch pass.
type OutcomeKind string

const (
	// OutcomeSkipped marks a row that was not eligible for processing.
	OutcomeSkipped OutcomeKind = "skipped"
	// OutcomeSuccess marks a row whose action completed.
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeFailure marks a row whose action returned an error.
	OutcomeFailure OutcomeKind = "failure"
)

// RowOutcome is the per-row result written back to the sheet's status
// column. Outcomes are produced in input order, one per data row, and
// written back in a single pass after the whole batch completes.
type RowOutcome struct {
	// Row is the 1-based sheet row the outcome belongs to.
	Row  int         `json:"row"`
	Kind OutcomeKind `json:"kind"`
	// Value is exactly what lands in the status cell: the pre-existing
	// status for skips, the artifact reference or sent marker for
	// successes, the error text for failures.
	Value string `json:"value"`
}

// Skipped records a row left alone, preserving its existing status value
// verbatim so the write-back is a no-op for that cell.
func Skipped(row int, existing string) RowOutcome {
	return RowOutcome{Row: row, Kind: OutcomeSkipped, Value: existing}
}

// Succeeded records a completed row with its artifact reference or marker.
func Succeeded(row int, ref string) RowOutcome {
	return RowOutcome{Row: row, Kind: OutcomeSuccess, Value: ref}
}

// Failed records a row whose action failed, carrying the error text so it
// surfaces in the sheet next to the row that caused it.
func Failed(row int, err error) RowOutcome {
	return RowOutcome{Row: row, Kind: OutcomeFailure, Value: err.Error()}
}
