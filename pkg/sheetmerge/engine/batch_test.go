package engine_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge/engine"
	"github.com/rowkit/sheetmerge/pkg/sheetmerge/models"
)

var mergeHeader = []string{"Name", "Email", "Status"}

func mergeProcessor(action engine.RowAction) *engine.Processor {
	return &engine.Processor{
		StatusColumn:  "Status",
		DrivingColumn: "Email",
		Action:        action,
	}
}

func countingAction(calls *[]models.Record, value string, err error) engine.RowAction {
	return func(_ context.Context, rec models.Record, _ models.RenderedMessage) (string, error) {
		*calls = append(*calls, rec)
		return value, err
	}
}

func TestRunEndToEnd(t *testing.T) {
	rows := [][]string{
		{"Alice", "a@x.com", ""},
		{"Bob", "b@x.com", "sent"},
	}
	var calls []models.Record
	proc := mergeProcessor(countingAction(&calls, "done", nil))
	proc.Required = []string{"Email", "Status"}

	outcomes, err := proc.Run(context.Background(), mergeHeader, rows, models.Template{Subject: "Hi {{Name}}"})
	require.NoError(t, err)
	require.Len(t, outcomes, 2)

	require.Equal(t, models.OutcomeSuccess, outcomes[0].Kind)
	require.Equal(t, "done", outcomes[0].Value)
	require.Equal(t, 2, outcomes[0].Row)

	require.Equal(t, models.OutcomeSkipped, outcomes[1].Kind)
	require.Equal(t, "sent", outcomes[1].Value)
	require.Equal(t, 3, outcomes[1].Row)

	require.Len(t, calls, 1)
	require.Equal(t, "Alice", calls[0].Get("Name"))
}

func TestRunPartialFailureIsolation(t *testing.T) {
	rows := [][]string{
		{"Alice", "a@x.com", ""},
		{"Bob", "b@x.com", ""},
		{"Carol", "c@x.com", ""},
	}
	action := func(_ context.Context, rec models.Record, _ models.RenderedMessage) (string, error) {
		if rec.Get("Name") == "Bob" {
			return "", errors.New("backend rejected the send")
		}
		return "ok", nil
	}

	outcomes, err := mergeProcessor(action).Run(context.Background(), mergeHeader, rows, models.Template{})
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	require.Equal(t, models.OutcomeSuccess, outcomes[0].Kind)
	require.Equal(t, models.OutcomeFailure, outcomes[1].Kind)
	require.Equal(t, models.OutcomeSuccess, outcomes[2].Kind)
	require.NotEmpty(t, outcomes[1].Value)
	require.Contains(t, outcomes[1].Value, "backend rejected")
}

func TestRunIdempotence(t *testing.T) {
	rows := [][]string{
		{"Alice", "a@x.com", ""},
		{"Bob", "b@x.com", ""},
	}
	var calls []models.Record
	proc := mergeProcessor(countingAction(&calls, "done", nil))

	first, err := proc.Run(context.Background(), mergeHeader, rows, models.Template{})
	require.NoError(t, err)
	require.Len(t, calls, 2)

	// Simulate the write-back: the status column now carries the first
	// run's outcome values.
	statusIdx := 2
	for i, oc := range first {
		rows[i][statusIdx] = oc.Value
	}

	calls = nil
	second, err := proc.Run(context.Background(), mergeHeader, rows, models.Template{})
	require.NoError(t, err)
	require.Empty(t, calls)
	for _, oc := range second {
		require.Equal(t, models.OutcomeSkipped, oc.Kind)
		require.Equal(t, "done", oc.Value)
	}
}

func TestRunBadHeaderAbortsBeforeAnyAction(t *testing.T) {
	var calls []models.Record
	proc := mergeProcessor(countingAction(&calls, "done", nil))
	proc.StatusColumn = "A"
	proc.DrivingColumn = "A"

	outcomes, err := proc.Run(context.Background(), []string{"A", "A"}, [][]string{{"x", "y"}}, models.Template{})
	require.Error(t, err)
	require.Nil(t, outcomes)
	require.Empty(t, calls)

	var shapeErr *engine.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	require.Equal(t, engine.ShapeInsufficientHeaders, shapeErr.Kind)
}

func TestRunMissingRequiredColumnAborts(t *testing.T) {
	var calls []models.Record
	proc := mergeProcessor(countingAction(&calls, "done", nil))
	proc.Required = []string{"Attachment"}

	outcomes, err := proc.Run(context.Background(), mergeHeader, [][]string{{"Alice", "a@x.com", ""}}, models.Template{})
	require.Error(t, err)
	require.Nil(t, outcomes)
	require.Empty(t, calls)

	var shapeErr *engine.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	require.Equal(t, engine.ShapeMissingColumn, shapeErr.Kind)
	require.Equal(t, "Attachment", shapeErr.Column)
}

func TestRunSuppressedRowsSkipped(t *testing.T) {
	rows := [][]string{
		{"Alice", "a@x.com", ""},
		{"Bob", "b@x.com", ""},
	}
	var calls []models.Record
	proc := mergeProcessor(countingAction(&calls, "done", nil))
	proc.Suppressed = func(row int) bool { return row == 3 }

	outcomes, err := proc.Run(context.Background(), mergeHeader, rows, models.Template{})
	require.NoError(t, err)
	require.Equal(t, models.OutcomeSuccess, outcomes[0].Kind)
	require.Equal(t, models.OutcomeSkipped, outcomes[1].Kind)
	require.Len(t, calls, 1)
}

func TestRunRendersTemplatePerRow(t *testing.T) {
	rows := [][]string{
		{"Alice", "a@x.com", ""},
		{"Bob", "b@x.com", ""},
	}
	var subjects []string
	action := func(_ context.Context, _ models.Record, msg models.RenderedMessage) (string, error) {
		subjects = append(subjects, msg.Subject)
		return "ok", nil
	}

	_, err := mergeProcessor(action).Run(context.Background(), mergeHeader, rows, models.Template{Subject: "Hi {{Name}}"})
	require.NoError(t, err)
	require.Equal(t, []string{"Hi Alice", "Hi Bob"}, subjects)
}

func TestRunEmptyDataRows(t *testing.T) {
	proc := mergeProcessor(func(_ context.Context, _ models.Record, _ models.RenderedMessage) (string, error) {
		t.Fatal("action must not run")
		return "", nil
	})

	outcomes, err := proc.Run(context.Background(), mergeHeader, nil, models.Template{})
	require.NoError(t, err)
	require.Empty(t, outcomes)
}
