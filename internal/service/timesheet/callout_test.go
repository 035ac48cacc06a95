package timesheet

import (
	"testing"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddCallOutAllowance_MergesSleepDays(t *testing.T) {
	in := []timesheet.Job{
		{Num: 1, Note: "House A", Period: "6pm-9pm", HrsValue: "3", Session: timesheet.SessionNight, DayValues: []string{"3", "3", "", ""}},
		{Num: 2, Note: "s/o", Period: "9pm-7am", HrsValue: "1", Session: timesheet.SessionSleep, DayValues: []string{"1", "", "", ""}, FullName: "Ann Lee", Level: "2"},
		{Num: 5, Note: "so", Period: "9pm-7am", HrsValue: "1", Session: timesheet.SessionSleep, DayValues: []string{"", "", "1", ""}},
	}

	out := AddCallOutAllowance(in)

	require.Len(t, out, 4)
	callOut := out[3]
	assert.Equal(t, timesheet.Job{
		Num:       2,
		Note:      "c/o",
		Period:    "9pm-7am",
		HrsValue:  "1",
		Session:   timesheet.SessionCallOut,
		DayValues: []string{"1", "", "1", ""},
		FullName:  "Ann Lee",
		Level:     "2",
	}, callOut)
	assert.Equal(t, in, out[:3])
}

func TestAddCallOutAllowance_Idempotent(t *testing.T) {
	in := []timesheet.Job{
		{Num: 2, Note: "s/o", Period: "9pm-7am", HrsValue: "1", Session: timesheet.SessionSleep, DayValues: []string{"1", ""}},
	}

	once := AddCallOutAllowance(in)
	twice := AddCallOutAllowance(once)

	require.Len(t, once, 2)
	assert.Equal(t, once, twice)
}

func TestAddCallOutAllowance_NoSleep(t *testing.T) {
	in := []timesheet.Job{
		{Num: 1, Note: "House A", Period: "9am-5pm", Session: timesheet.SessionMorning, DayValues: []string{"8"}},
	}
	assert.Equal(t, in, AddCallOutAllowance(in))
	assert.Empty(t, AddCallOutAllowance(nil))
}

func TestAddCallOutAllowance_ExistingCallOutNote(t *testing.T) {
	in := []timesheet.Job{
		{Num: 2, Note: "s/o", Session: timesheet.SessionSleep, DayValues: []string{"1"}},
		{Num: 3, Note: " CO ", Session: timesheet.SessionCallOut, DayValues: []string{""}},
	}
	assert.Len(t, AddCallOutAllowance(in), 2)
}

func TestAddCallOutAllowance_DayCountIsWidestJob(t *testing.T) {
	in := []timesheet.Job{
		{Num: 1, Note: "s/o", Session: timesheet.SessionSleep, DayValues: []string{"1"}},
		{Num: 2, Note: "House A", Session: timesheet.SessionMorning, DayValues: []string{"", "", "8"}},
	}

	out := AddCallOutAllowance(in)

	require.Len(t, out, 3)
	assert.Equal(t, []string{"1", "", ""}, out[2].DayValues)
}

func TestAddCallOutAllowance_AfterResolve(t *testing.T) {
	resolved := ResolveJobSessions([]timesheet.Job{
		{Num: 1, Note: "House A", Period: "6pm-9pm", HrsValue: "3", DayValues: []string{"3", ""}},
		{Num: 2, Note: "S/O", Period: "9pm-7am", HrsValue: "1", DayValues: []string{"", "1"}},
	})

	out := AddCallOutAllowance(resolved)

	require.Len(t, out, 3)
	assert.Equal(t, timesheet.SessionCallOut, out[2].Session)
	assert.Equal(t, "1", out[2].HrsValue)
	assert.Equal(t, []string{"", "1"}, out[2].DayValues)
}
