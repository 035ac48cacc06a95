package timesheet

import (
	"testing"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowsFromGrid(t *testing.T) {
	grid := [][]string{
		{"No", "Name Job", "Period", "Hrs", "Mon", "Tue", "Wed"},
		{"1", " House A ", "9am-5pm", "8", "Ann", "", "Bob"},
		{},
		{"", "", "", ""},
		{"x", "s/o", "9pm-7am", "1", "", "Ann"},
	}

	rows, numDays, err := RowsFromGrid(grid)

	require.NoError(t, err)
	assert.Equal(t, 3, numDays)
	require.Len(t, rows, 2)
	assert.Equal(t, timesheet.RosterRow{RowNumber: 1, Note: "House A", Period: "9am-5pm", Hrs: "8", Days: []string{"Ann", "", "Bob"}}, rows[0])
	assert.Equal(t, 4, rows[1].RowNumber, "non-numeric No falls back to position")
	assert.Equal(t, []string{"", "Ann", ""}, rows[1].Days)
}

func TestRowsFromGrid_Invalid(t *testing.T) {
	tooWide := make([]string, 4+timesheet.MaxReportDays+1)

	tests := []struct {
		name string
		grid [][]string
	}{
		{"empty", nil},
		{"no day columns", [][]string{{"No", "Name Job", "Period", "Hrs"}}},
		{"too many days", [][]string{tooWide}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := RowsFromGrid(tt.grid)
			assert.ErrorIs(t, err, timesheet.ErrInvalidWorkbook)
		})
	}
}

func TestRowsFromGrid_FeedsProcess(t *testing.T) {
	grid := [][]string{
		{"No", "Name Job", "Period", "Hrs", "d1", "d2"},
		{"1", "House A", "1pm-9pm", "8", "Ann", "Ann"},
		{"2", "House A", "9pm-7am", "10", "Ann", ""},
	}

	rows, numDays, err := RowsFromGrid(grid)
	require.NoError(t, err)

	groups := Process(rows, headers(numDays))
	require.Len(t, groups, 1)
	assert.Equal(t, []timesheet.Session{timesheet.SessionNight, timesheet.SessionNight}, sessionsOf(groups[0].Jobs))
}
