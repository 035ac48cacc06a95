package timesheet

import (
	"strings"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
)

// IsSleepNote reports whether a job note marks a sleep-over ("s/o" or "so").
func IsSleepNote(note string) bool {
	switch strings.ToLower(strings.TrimSpace(note)) {
	case "s/o", "so":
		return true
	}
	return false
}

// IsCallOutNote reports whether a job note marks a call-out ("c/o" or "co").
func IsCallOutNote(note string) bool {
	switch strings.ToLower(strings.TrimSpace(note)) {
	case "c/o", "co":
		return true
	}
	return false
}

// SessionFromPeriod classifies a single job without looking at its neighbours.
//
// Allowance notes win over the period. Otherwise a period ending at exactly 9pm
// is Night whatever its start, so "5pm-9pm" is Night and not Afternoon. The
// remaining periods are bucketed by start time: 7:00-12:59 Morning,
// 13:00-17:59 Afternoon, anything else Night. Unparseable periods yield "".
func SessionFromPeriod(period, note string) timesheet.Session {
	if IsSleepNote(note) {
		return timesheet.SessionSleep
	}
	if IsCallOutNote(note) {
		return timesheet.SessionCallOut
	}

	p, ok := ParsePeriodStartEnd(period)
	if !ok {
		return timesheet.SessionNone
	}

	switch {
	case p.EndMinutes == minutes9PM:
		return timesheet.SessionNight
	case p.StartMinutes >= minutes7AM && p.StartMinutes < minutes1PM:
		return timesheet.SessionMorning
	case p.StartMinutes >= minutes1PM && p.StartMinutes < minutes6PM:
		return timesheet.SessionAfternoon
	default:
		return timesheet.SessionNight
	}
}
