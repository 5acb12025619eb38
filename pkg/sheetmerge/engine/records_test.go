package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rowkit/sheetmerge/pkg/sheetmerge/engine"
)

func TestMapRows(t *testing.T) {
	header := []string{"Name", "Email", "Status"}
	rows := [][]string{
		{"Alice", "a@x.com", ""},
		{"Bob", "b@x.com", "sent"},
	}

	records := engine.MapRows(header, rows)
	require.Len(t, records, len(rows))

	require.Equal(t, 2, records[0].Row)
	require.Equal(t, "Alice", records[0].Get("Name"))
	require.Equal(t, "a@x.com", records[0].Get("Email"))
	require.Equal(t, "", records[0].Get("Status"))

	require.Equal(t, 3, records[1].Row)
	require.Equal(t, "sent", records[1].Get("Status"))
}

func TestMapRowsRowPositions(t *testing.T) {
	header := []string{"A", "B"}
	rows := make([][]string, 5)
	for i := range rows {
		rows[i] = []string{"x", "y"}
	}

	records := engine.MapRows(header, rows)
	for i, rec := range records {
		require.Equal(t, i+2, rec.Row)
	}
}

func TestMapRowsShortRowPadsEmpty(t *testing.T) {
	header := []string{"Name", "Email", "Status"}
	records := engine.MapRows(header, [][]string{{"Alice"}})

	require.Len(t, records, 1)
	require.Equal(t, "Alice", records[0].Get("Name"))
	require.Equal(t, "", records[0].Get("Email"))
	require.Equal(t, "", records[0].Get("Status"))
}

func TestMapRowsEmptyInput(t *testing.T) {
	records := engine.MapRows([]string{"A", "B"}, nil)
	require.Empty(t, records)
}

func TestMapRowsAbsentFieldIsEmpty(t *testing.T) {
	records := engine.MapRows([]string{"A", "B"}, [][]string{{"1", "2"}})
	require.Equal(t, "", records[0].Get("Nope"))
}
