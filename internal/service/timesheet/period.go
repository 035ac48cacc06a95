package timesheet

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
)

// Time tokens are 12-hour clock values: H[:MM](am|pm), case-insensitive,
// optional whitespace before the meridiem. Hours 0-12 and minutes 00-59 only.
// No seconds, no 24-hour input.
const periodSide = `\d{1,2}(?::\d{2})?\s*(?:am|pm)`

var (
	timeTokenRegex   = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(am|pm)$`)
	periodRangeRegex = regexp.MustCompile(`(?i)^(` + periodSide + `)\s*-\s*(` + periodSide + `)$`)
)

// Minutes since midnight of the clock times the session rules care about.
const (
	minutes7AM = 7 * 60
	minutes1PM = 13 * 60
	minutes6PM = 18 * 60
	minutes9PM = 21 * 60
)

// ParseTimeToMinutes converts a token like "7am" or "3:15pm" to minutes since
// midnight. ok is false when the token does not match the grammar.
func ParseTimeToMinutes(token string) (minutes int, ok bool) {
	m := timeTokenRegex.FindStringSubmatch(token)
	if m == nil {
		return 0, false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > 12 {
		return 0, false
	}
	minute := 0
	if m[2] != "" {
		minute, err = strconv.Atoi(m[2])
		if err != nil || minute > 59 {
			return 0, false
		}
	}

	switch strings.ToLower(m[3]) {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}

	return hour*60 + minute, true
}

// ParsePeriodStartEnd parses a "<start>-<end>" shift window such as "9pm-7am".
// Both sides must be valid time tokens.
func ParsePeriodStartEnd(period string) (timesheet.TimePeriod, bool) {
	m := periodRangeRegex.FindStringSubmatch(period)
	if m == nil {
		return timesheet.TimePeriod{}, false
	}

	start, ok := ParseTimeToMinutes(m[1])
	if !ok {
		return timesheet.TimePeriod{}, false
	}
	end, ok := ParseTimeToMinutes(m[2])
	if !ok {
		return timesheet.TimePeriod{}, false
	}

	return timesheet.TimePeriod{StartMinutes: start, EndMinutes: end}, true
}
