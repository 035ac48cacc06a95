package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable_ReadSheet_RoundTrip(t *testing.T) {
	table := [][]any{
		{"Prefer Name", "Hrs", "Mon 05/01", "TOTAL"},
		{"Ann", "8", "8", 8.0},
		{"TOTAL", "", 8.0, 8.0},
	}

	content, err := WriteTable("Timesheet", table, TableOptions{
		HighlightColumns: []int{2},
		BoldLastRow:      true,
		ColumnWidth:      14,
	})
	require.NoError(t, err)
	require.NotEmpty(t, content)

	rows, err := ReadSheet(bytes.NewReader(content), "Timesheet")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Prefer Name", "Hrs", "Mon 05/01", "TOTAL"}, rows[0])
	assert.Equal(t, "Ann", rows[1][0])
	assert.Equal(t, "8", rows[1][3])
}

func TestReadSheet_DefaultsToFirstSheet(t *testing.T) {
	content, err := WriteTable("Roster", [][]any{{"No", "Name Job"}, {"1", "House A"}}, TableOptions{})
	require.NoError(t, err)

	rows, err := ReadSheet(bytes.NewReader(content), "")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"No", "Name Job"}, {"1", "House A"}}, rows)
}

func TestReadSheet_InvalidWorkbook(t *testing.T) {
	_, err := ReadSheet(bytes.NewReader([]byte("not a workbook")), "")
	assert.Error(t, err)
}

func TestWriteTable_Empty(t *testing.T) {
	content, err := WriteTable("Empty", nil, TableOptions{})
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}
