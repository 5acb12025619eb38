// Package sheet is the spreadsheet backend: it reads a worksheet range as
// display strings, reports filter-hidden rows, and writes batch outcomes
// back into a single column.
package sheet

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge/models"
)

// Sheet wraps one worksheet of an open workbook.
type Sheet struct {
	file *excelize.File
	path string
	name string
}

// Open opens the workbook at path and selects the named worksheet. An empty
// name selects the first worksheet.
func Open(path, name string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", path, err)
	}
	if name == "" {
		name = f.GetSheetName(0)
	}
	idx, err := f.GetSheetIndex(name)
	if err != nil || idx < 0 {
		f.Close()
		return nil, fmt.Errorf("worksheet %q not found in %s", name, path)
	}
	return &Sheet{file: f, path: path, name: name}, nil
}

// Name returns the selected worksheet name.
func (s *Sheet) Name() string {
	return s.name
}

// ReadRange returns a point-in-time snapshot of the worksheet as
// display-formatted strings, header row included.
func (s *Sheet) ReadRange() ([][]string, error) {
	rows, err := s.file.GetRows(s.name)
	if err != nil {
		return nil, fmt.Errorf("reading rows from %s: %w", s.name, err)
	}
	return rows, nil
}

// IsRowSuppressed reports whether the 1-based row is currently hidden, e.g.
// by an active filter. Lookup errors count as visible.
func (s *Sheet) IsRowSuppressed(row int) bool {
	visible, err := s.file.GetRowVisible(s.name, row)
	if err != nil {
		return false
	}
	return !visible
}

// WriteColumn writes a contiguous single-column block starting at the given
// 1-based row and column.
func (s *Sheet) WriteColumn(startRow, col int, values []string) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(col, startRow+i)
		if err != nil {
			return fmt.Errorf("addressing cell: %w", err)
		}
		if err := s.file.SetCellStr(s.name, cell, v); err != nil {
			return fmt.Errorf("writing %s: %w", cell, err)
		}
	}
	return nil
}

// WriteOutcomes writes one batch pass's outcomes into the 1-based column,
// one cell per outcome at the row it came from. This is the single
// write-back covering the whole processed range.
func (s *Sheet) WriteOutcomes(col int, outcomes []models.RowOutcome) error {
	for _, oc := range outcomes {
		cell, err := excelize.CoordinatesToCellName(col, oc.Row)
		if err != nil {
			return fmt.Errorf("addressing cell: %w", err)
		}
		if err := s.file.SetCellStr(s.name, cell, oc.Value); err != nil {
			return fmt.Errorf("writing %s: %w", cell, err)
		}
	}
	return nil
}

// Save writes the workbook back to the file it was opened from.
func (s *Sheet) Save() error {
	if err := s.file.Save(); err != nil {
		return fmt.Errorf("saving workbook %s: %w", s.path, err)
	}
	return nil
}

// Close releases the underlying workbook without saving.
func (s *Sheet) Close() error {
	return s.file.Close()
}
