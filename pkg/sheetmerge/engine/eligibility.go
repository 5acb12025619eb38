package engine

import (
	"strings"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge/models"
)

// IsEligible reports whether a record is a candidate for processing.
//
// A record is eligible iff its status-column value is empty after trimming,
// its driving-column value (recipient address, new artifact name) is
// non-empty after trimming, and the row is not suppressed by an active sheet
// filter. A blank status makes re-runs idempotent: rows that already carry a
// result are left alone. Hiding a row via a filter is a user-level veto
// without deleting data. Rows with no actionable input in the driving column
// are never processed.
func IsEligible(rec models.Record, statusColumn, drivingColumn string, suppressed func(row int) bool) bool {
	if strings.TrimSpace(rec.Get(statusColumn)) != "" {
		return false
	}
	if strings.TrimSpace(rec.Get(drivingColumn)) == "" {
		return false
	}
	if suppressed != nil && suppressed(rec.Row) {
		return false
	}
	return true
}
