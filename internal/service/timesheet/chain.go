package timesheet

import (
	"slices"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
)

// chainState is the accumulator threaded through ResolveJobSessions.
// end is only meaningful while active.
type chainState struct {
	end    int
	active bool
}

// ResolveJobSessions assigns a session to every job of one employee, marking
// unbroken overnight chains as Night. Jobs are walked in the order given; the
// result depends on that order, so callers must not re-sort between runs.
// The input slice is not modified.
func ResolveJobSessions(jobs []timesheet.Job) []timesheet.Job {
	resolved := make([]timesheet.Job, 0, len(jobs))

	var state chainState
	for _, job := range jobs {
		var next timesheet.Job
		state, next = resolveStep(state, job)
		resolved = append(resolved, next)
	}

	return resolved
}

// resolveStep classifies one job given the chain state left by the previous
// jobs and returns the state for the next one.
//
// A chain starts at a Night job ending at exactly 9pm. Sleep rows move the
// chain end to their own end without breaking it. Any other job whose start
// equals the chain end continues the chain as Night; a job that does not
// (including one with an unparseable period) breaks it and is classified on
// its own. There is no tolerance window.
func resolveStep(state chainState, job timesheet.Job) (chainState, timesheet.Job) {
	job.DayValues = slices.Clone(job.DayValues)

	basic := SessionFromPeriod(job.Period, job.Note)
	period, parsed := ParsePeriodStartEnd(job.Period)

	switch basic {
	case timesheet.SessionSleep:
		if state.active && parsed {
			state.end = period.EndMinutes
		}
		job.Session = basic
		return state, job
	case timesheet.SessionCallOut:
		job.Session = basic
		return state, job
	}

	if state.active {
		if parsed && period.StartMinutes == state.end {
			job.Session = timesheet.SessionNight
			state.end = period.EndMinutes
			return state, job
		}
		state = chainState{}
	}

	job.Session = basic
	if basic == timesheet.SessionNight && parsed && period.EndMinutes == minutes9PM {
		state = chainState{end: minutes9PM, active: true}
	}

	return state, job
}
