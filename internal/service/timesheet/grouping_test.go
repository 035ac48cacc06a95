package timesheet

import (
	"testing"
	"time"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func headers(n int) []timesheet.DateHeader {
	return GenerateDateHeaders(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), n)
}

func TestGroupByEmployee_MergesSameKey(t *testing.T) {
	rows := []timesheet.RosterRow{
		{RowNumber: 1, Note: "House A", Period: "9am-5pm", Hrs: "8", Days: []string{"Ann", "", ""}},
		{RowNumber: 1, Note: "House A", Period: "9am-5pm", Hrs: "8", Days: []string{"", "", " Ann "}},
	}

	groups := GroupByEmployee(rows, headers(3))

	require.Len(t, groups, 1)
	assert.Equal(t, "Ann", groups[0].Name)
	require.Len(t, groups[0].Jobs, 1)
	assert.Equal(t, timesheet.Job{
		Num:       1,
		Note:      "House A",
		Period:    "9am-5pm",
		HrsValue:  "8",
		DayValues: []string{"8", "", "8"},
	}, groups[0].Jobs[0])
}

func TestGroupByEmployee_DistinctKeysAndOrder(t *testing.T) {
	rows := []timesheet.RosterRow{
		{RowNumber: 3, Note: "House B", Period: "1pm-6pm", Hrs: "5", Days: []string{"bob", "Ann"}},
		{RowNumber: 1, Note: "House A", Period: "9am-5pm", Hrs: "8", Days: []string{"Ann", "bob"}},
		{RowNumber: 1, Note: "House A", Period: "9am-3pm", Hrs: "6", Days: []string{"Charlie", ""}},
	}

	groups := GroupByEmployee(rows, headers(2))

	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Ann", "bob", "Charlie"}, names)

	ann := groups[0]
	require.Len(t, ann.Jobs, 2)
	assert.Equal(t, "House B", ann.Jobs[0].Note, "jobs keep first-seen order")
	assert.Equal(t, []string{"", "5"}, ann.Jobs[0].DayValues)
	assert.Equal(t, "House A", ann.Jobs[1].Note)
	assert.Equal(t, []string{"8", ""}, ann.Jobs[1].DayValues)

	charlie := groups[2]
	require.Len(t, charlie.Jobs, 1)
	assert.Equal(t, "9am-3pm", charlie.Jobs[0].Period)
}

func TestGroupByEmployee_CollationOrder(t *testing.T) {
	rows := []timesheet.RosterRow{
		{RowNumber: 1, Note: "House A", Period: "9am-5pm", Hrs: "8", Days: []string{"bob", "alice", "Charlie"}},
	}

	groups := GroupByEmployee(rows, headers(3))

	require.Len(t, groups, 3)
	assert.Equal(t, "alice", groups[0].Name)
	assert.Equal(t, "bob", groups[1].Name)
	assert.Equal(t, "Charlie", groups[2].Name)
}

func TestGroupByEmployee_SkipsEmptyNote(t *testing.T) {
	rows := []timesheet.RosterRow{
		{RowNumber: 1, Note: "", Period: "9am-5pm", Hrs: "8", Days: []string{"Ann", "Ann"}},
		{RowNumber: 2, Note: "House A", Period: "9am-5pm", Hrs: "8", Days: []string{"", "  "}},
	}

	assert.Empty(t, GroupByEmployee(rows, headers(2)))
}

func TestGroupByEmployee_DayCountFromHeaders(t *testing.T) {
	rows := []timesheet.RosterRow{
		{RowNumber: 1, Note: "House A", Period: "9am-5pm", Hrs: "8", Days: []string{"Ann", "Ann", "Ann"}},
		{RowNumber: 2, Note: "House B", Period: "9am-5pm", Hrs: "8", Days: []string{"Ann"}},
	}

	groups := GroupByEmployee(rows, headers(2))

	require.Len(t, groups, 1)
	assert.Equal(t, []string{"8", "8"}, groups[0].Jobs[0].DayValues)
	assert.Equal(t, []string{"8", ""}, groups[0].Jobs[1].DayValues)

	assert.Empty(t, GroupByEmployee(rows, nil))
}

func TestGroupByEmployee_FirstRowHoursWin(t *testing.T) {
	rows := []timesheet.RosterRow{
		{RowNumber: 1, Note: "House A", Period: "9am-5pm", Hrs: "8", Days: []string{"Ann", ""}},
		{RowNumber: 1, Note: "House A", Period: "9am-5pm", Hrs: "7.5", Days: []string{"", "Ann"}},
	}

	groups := GroupByEmployee(rows, headers(2))

	require.Len(t, groups, 1)
	assert.Equal(t, "8", groups[0].Jobs[0].HrsValue)
	assert.Equal(t, []string{"8", "8"}, groups[0].Jobs[0].DayValues)
}

func TestUngroupEmployees_IsLossy(t *testing.T) {
	rows := []timesheet.RosterRow{
		{RowNumber: 1, Note: "House A", Period: "9am-5pm", Hrs: "8", Days: []string{"Ann", "", ""}},
		{RowNumber: 1, Note: "House A", Period: "9am-5pm", Hrs: "7.5", Days: []string{"", "", "Ann"}},
		{RowNumber: 2, Note: "", Period: "1pm-6pm", Hrs: "5", Days: []string{"Ann", "", ""}},
	}

	flat := UngroupEmployees(GroupByEmployee(rows, headers(3)))

	require.Len(t, flat, 1, "two rows sharing a job key collapse and note-less rows vanish")
	assert.Equal(t, timesheet.RosterRow{
		RowNumber: 1,
		Note:      "House A",
		Period:    "9am-5pm",
		Hrs:       "8",
		Days:      []string{"Ann", "", "Ann"},
	}, flat[0])
	assert.NotEqual(t, rows, flat)
}

func TestGenerateDateHeaders(t *testing.T) {
	got := GenerateDateHeaders(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), 3)

	assert.Equal(t, []timesheet.DateHeader{
		{YMD: "2026-01-02", Display: "02/01", DayName: "Fri", IsWeekend: false},
		{YMD: "2026-01-03", Display: "03/01", DayName: "Sat", IsWeekend: true},
		{YMD: "2026-01-04", Display: "04/01", DayName: "Sun", IsWeekend: true},
	}, got)

	assert.Empty(t, GenerateDateHeaders(time.Now(), 0))
	assert.Empty(t, GenerateDateHeaders(time.Now(), -3))
}
