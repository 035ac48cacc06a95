package timesheet

import (
	"testing"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportHeader(t *testing.T) {
	got := ExportHeader(headers(2))
	assert.Equal(t, []string{
		"Prefer Name", "Full Name", "Level", "Session", "Name Job", "Period", "Hrs",
		"Mon 05/01", "Tue 06/01", "TOTAL",
	}, got)

	assert.Equal(t, []string{"Prefer Name", "Full Name", "Level", "Session", "Name Job", "Period", "Hrs", "TOTAL"}, ExportHeader(nil))
	assert.Equal(t, "2026-02-01", dayLabel(timesheet.DateHeader{YMD: "2026-02-01"}))
}

func TestProjectRows(t *testing.T) {
	groups := []timesheet.EmployeeGroup{
		{Name: "Ann", Jobs: []timesheet.Job{
			{Num: 1, Note: "House A", Period: "9am-5pm", HrsValue: "8", Session: timesheet.SessionMorning, DayValues: []string{"8", "8"}, FullName: "Ann Lee", Level: "2"},
			{Num: 2, Note: "s/o", Period: "9pm-7am", HrsValue: "1", Session: timesheet.SessionSleep, DayValues: []string{"", "1"}},
		}},
	}

	table := ProjectRows(groups, headers(2))

	require.Len(t, table, 4)
	for _, row := range table {
		assert.Len(t, row, 10, "table is rectangular")
	}
	assert.Equal(t, "Prefer Name", table[0][0])
	assert.Equal(t, []any{"Ann", "Ann Lee", "2", "Morning", "House A", "9am-5pm", "8", "8", "8", 16.0}, table[1])
	assert.Equal(t, []any{"Ann", "", "", "Sleep Allowance", "s/o", "9pm-7am", "1", "", "1", 1.0}, table[2])
	assert.Equal(t, []any{"TOTAL", "", "", "", "", "", "", 8.0, 9.0, 17.0}, table[3])
}

func TestProjectRows_ShortDayValuesArePadded(t *testing.T) {
	groups := []timesheet.EmployeeGroup{
		{Name: "Ann", Jobs: []timesheet.Job{{Note: "House A", DayValues: []string{"4"}}}},
	}

	table := ProjectRows(groups, headers(3))

	require.Len(t, table, 3)
	assert.Equal(t, []any{"4", "", ""}, table[1][7:10])
}

func TestExportFileName(t *testing.T) {
	assert.Equal(t, "TimesheetReport_draft.xlsx", ExportFileName("TimesheetReport", "", ""))
	assert.Equal(t, "TimesheetReport_draft_2026-01-05.xlsx", ExportFileName("TimesheetReport", "", "2026-01-05"))
	assert.Equal(t, "NexgenusReport_abc_2026-01-05.xlsx", ExportFileName("NexgenusReport", "abc", "2026-01-05"))
}
