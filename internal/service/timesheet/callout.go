package timesheet

import (
	"strings"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
)

const (
	callOutNote  = "c/o"
	callOutHours = "1"
)

// AddCallOutAllowance appends one synthetic Call-Out Allowance job when the
// employee has at least one Sleep Allowance job and no c/o job yet. The new
// job is worked ("1") on every day any sleep job is worked. Running it again on
// its own output adds nothing.
func AddCallOutAllowance(jobs []timesheet.Job) []timesheet.Job {
	var sleeps []timesheet.Job
	dayCount := 0
	for _, job := range jobs {
		if IsCallOutNote(job.Note) {
			return jobs
		}
		if job.Session == timesheet.SessionSleep {
			sleeps = append(sleeps, job)
		}
		dayCount = max(dayCount, len(job.DayValues))
	}
	if len(sleeps) == 0 {
		return jobs
	}

	dayValues := make([]string, dayCount)
	for i := range dayValues {
		for _, sleep := range sleeps {
			if i < len(sleep.DayValues) && strings.TrimSpace(sleep.DayValues[i]) != "" {
				dayValues[i] = callOutHours
				break
			}
		}
	}

	first := sleeps[0]
	callOut := timesheet.Job{
		Num:       first.Num,
		Note:      callOutNote,
		Period:    first.Period,
		HrsValue:  callOutHours,
		Session:   timesheet.SessionCallOut,
		DayValues: dayValues,
		FullName:  first.FullName,
		Level:     first.Level,
	}

	out := make([]timesheet.Job, 0, len(jobs)+1)
	out = append(out, jobs...)
	return append(out, callOut)
}
