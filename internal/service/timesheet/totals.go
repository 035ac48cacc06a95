package timesheet

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/shopspring/decimal"
)

var numericPrefixRegex = regexp.MustCompile(`^\s*[+-]?(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`)

// ParseNumericOrZero reads the leading number of a free-text hours cell, so
// "7.5" and "7.5 hrs" are both 7.5. Blank, non-numeric and out-of-range input
// is 0. Every hours computation goes through here.
func ParseNumericOrZero(s string) decimal.Decimal {
	m := strings.TrimSpace(numericPrefixRegex.FindString(s))
	if m == "" {
		return decimal.Zero
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

// RowTotal sums the day cells of one job.
func RowTotal(dayValues []string) decimal.Decimal {
	total := decimal.Zero
	for _, v := range dayValues {
		total = total.Add(ParseNumericOrZero(v))
	}
	return total
}

// GrandTotal sums every job of every employee.
func GrandTotal(groups []timesheet.EmployeeGroup) decimal.Decimal {
	total := decimal.Zero
	for _, group := range groups {
		for _, job := range group.Jobs {
			total = total.Add(RowTotal(job.DayValues))
		}
	}
	return total
}

// ColumnTotals sums each of the first dayCount day columns across all jobs.
func ColumnTotals(groups []timesheet.EmployeeGroup, dayCount int) []decimal.Decimal {
	totals := make([]decimal.Decimal, dayCount)
	for i := range totals {
		totals[i] = decimal.Zero
	}
	for _, group := range groups {
		for _, job := range group.Jobs {
			for i := 0; i < dayCount && i < len(job.DayValues); i++ {
				totals[i] = totals[i].Add(ParseNumericOrZero(job.DayValues[i]))
			}
		}
	}
	return totals
}

// Totals computes the row, column and grand totals of a report.
func Totals(groups []timesheet.EmployeeGroup, dayCount int) timesheet.ReportTotals {
	rows := make([][]decimal.Decimal, 0, len(groups))
	for _, group := range groups {
		jobTotals := make([]decimal.Decimal, 0, len(group.Jobs))
		for _, job := range group.Jobs {
			jobTotals = append(jobTotals, RowTotal(job.DayValues))
		}
		rows = append(rows, jobTotals)
	}

	return timesheet.ReportTotals{
		Rows:    rows,
		Columns: ColumnTotals(groups, dayCount),
		Grand:   GrandTotal(groups),
	}
}
