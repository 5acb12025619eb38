package engine

import (
	"context"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge/models"
)

// RowAction performs the side effect for one eligible row (send the message,
// copy the file, create the folder) and returns the value to record in the
// status cell, such as an artifact URL or a sent-timestamp marker.
type RowAction func(ctx context.Context, rec models.Record, msg models.RenderedMessage) (string, error)

// Processor drives one batch pass over a sheet range. The processor itself
// performs no I/O; all side effects are confined to Action.
type Processor struct {
	// StatusColumn names the write-back column. Rows whose status cell is
	// non-empty are skipped, which makes repeated passes idempotent.
	StatusColumn string
	// DrivingColumn names the field that must be non-empty for a row to be
	// actionable (recipient address, new artifact name).
	DrivingColumn string
	// Required lists additional column names that must exist in the header
	// row before any row is touched.
	Required []string
	// Suppressed reports whether a 1-based sheet row is hidden by an active
	// filter. Nil means no row is suppressed.
	Suppressed func(row int) bool
	// Action is invoked once per eligible row.
	Action RowAction
}

// Run executes one ordered pass over the data rows and returns one outcome
// per input row, in input order, for a single write-back covering the whole
// range.
//
// Structural problems (bad header shape, missing required column) abort the
// run before any action is invoked. Action errors are row-local: they become
// Failure outcomes carrying the error text and the pass continues, so one
// bad row never costs the rows after it.
func (p *Processor) Run(ctx context.Context, header []string, rows [][]string, tpl models.Template) ([]models.RowOutcome, error) {
	if err := ValidateHeader(header); err != nil {
		return nil, err
	}
	required := append([]string{p.StatusColumn, p.DrivingColumn}, p.Required...)
	for _, name := range required {
		if _, err := RequireColumn(header, name); err != nil {
			return nil, err
		}
	}

	records := MapRows(header, rows)
	outcomes := make([]models.RowOutcome, 0, len(records))
	for _, rec := range records {
		if !IsEligible(rec, p.StatusColumn, p.DrivingColumn, p.Suppressed) {
			outcomes = append(outcomes, models.Skipped(rec.Row, rec.Get(p.StatusColumn)))
			continue
		}
		msg, err := Render(tpl, rec)
		if err != nil {
			outcomes = append(outcomes, models.Failed(rec.Row, err))
			continue
		}
		value, err := p.Action(ctx, rec, msg)
		if err != nil {
			outcomes = append(outcomes, models.Failed(rec.Row, err))
			continue
		}
		outcomes = append(outcomes, models.Succeeded(rec.Row, value))
	}
	return outcomes, nil
}
