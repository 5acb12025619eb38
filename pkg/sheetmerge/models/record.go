// Package models defines the data structures shared by the merge engine and
// its backends.
package models

// Record is a header-keyed view of one data row, built fresh per batch run
// from a point-in-time snapshot of the sheet. It is read-only once built:
// new values are written back to the sheet out-of-band, never by mutating
// the record.
type Record struct {
	// Row is the 1-based sheet row this record came from. Row 1 is the
	// header, so the first record sits at row 2.
	Row int
	// Fields maps header name to the row's display value. Missing or blank
	// cells map to "".
	Fields map[string]string
}

// Get returns the value of the named field, or "" if the field is absent.
func (r Record) Get(name string) string {
	return r.Fields[name]
}
