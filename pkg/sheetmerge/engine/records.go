package engine

import (
	"strings"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge/models"
)

// MapRows zips the header row onto each data row positionally, producing one
// Record per row. Rows shorter than the header pad missing trailing fields
// with "". Record i carries sheet row i+2, accounting for the stripped
// header row and 1-based sheet addressing.
func MapRows(header []string, rows [][]string) []models.Record {
	records := make([]models.Record, len(rows))
	for i, row := range rows {
		fields := make(map[string]string, len(header))
		for j, name := range header {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if j < len(row) {
				fields[name] = row[j]
			} else {
				fields[name] = ""
			}
		}
		records[i] = models.Record{Row: i + 2, Fields: fields}
	}
	return records
}
