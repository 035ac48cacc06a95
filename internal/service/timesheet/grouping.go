package timesheet

import (
	"slices"
	"strings"
	"time"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type jobKey struct {
	num    int
	note   string
	period string
}

type jobAccumulator struct {
	hrs    string
	worked []bool
}

type employeeAccumulator struct {
	order []jobKey
	jobs  map[jobKey]*jobAccumulator
}

// GroupByEmployee turns roster rows into per-employee job lists. A job is
// identified by (row number, note, period); rows sharing a key under the same
// employee merge into one job worked on the union of their days. Rows with an
// empty note are skipped. Employees come back in collation order, jobs in the
// order their keys were first seen. Sessions are left blank.
func GroupByEmployee(rows []timesheet.RosterRow, headers []timesheet.DateHeader) []timesheet.EmployeeGroup {
	dayCount := len(headers)
	employees := make(map[string]*employeeAccumulator)

	for _, row := range rows {
		if row.Note == "" {
			continue
		}
		key := jobKey{num: row.RowNumber, note: row.Note, period: row.Period}

		for dayIndex := 0; dayIndex < dayCount && dayIndex < len(row.Days); dayIndex++ {
			name := strings.TrimSpace(row.Days[dayIndex])
			if name == "" {
				continue
			}

			emp, ok := employees[name]
			if !ok {
				emp = &employeeAccumulator{jobs: make(map[jobKey]*jobAccumulator)}
				employees[name] = emp
			}
			acc, ok := emp.jobs[key]
			if !ok {
				acc = &jobAccumulator{hrs: row.Hrs, worked: make([]bool, dayCount)}
				emp.jobs[key] = acc
				emp.order = append(emp.order, key)
			}
			acc.worked[dayIndex] = true
		}
	}

	names := make([]string, 0, len(employees))
	for name := range employees {
		names = append(names, name)
	}
	sortNames(names)

	groups := make([]timesheet.EmployeeGroup, 0, len(names))
	for _, name := range names {
		emp := employees[name]
		jobs := make([]timesheet.Job, 0, len(emp.order))
		for _, key := range emp.order {
			acc := emp.jobs[key]
			dayValues := make([]string, dayCount)
			for i, worked := range acc.worked {
				if worked {
					dayValues[i] = acc.hrs
				}
			}
			jobs = append(jobs, timesheet.Job{
				Num:       key.num,
				Note:      key.note,
				Period:    key.period,
				HrsValue:  acc.hrs,
				DayValues: dayValues,
			})
		}
		groups = append(groups, timesheet.EmployeeGroup{Name: name, Jobs: jobs})
	}

	return groups
}

// sortNames orders employee names the way a spreadsheet user expects:
// locale-aware, so "alice" sorts before "Bob".
func sortNames(names []string) {
	c := collate.New(language.English)
	slices.SortStableFunc(names, func(a, b string) int {
		return c.CompareString(a, b)
	})
}

// UngroupEmployees flattens groups back into roster rows, one per job, with the
// employee's name in every worked day. This is lossy: rows that were merged
// into one job stay merged and per-row hours other than the job's are gone.
func UngroupEmployees(groups []timesheet.EmployeeGroup) []timesheet.RosterRow {
	var rows []timesheet.RosterRow
	for _, group := range groups {
		for _, job := range group.Jobs {
			days := make([]string, len(job.DayValues))
			for i, v := range job.DayValues {
				if v != "" {
					days[i] = group.Name
				}
			}
			rows = append(rows, timesheet.RosterRow{
				RowNumber: job.Num,
				Note:      job.Note,
				Period:    job.Period,
				Hrs:       job.HrsValue,
				Days:      days,
			})
		}
	}
	return rows
}

// GenerateDateHeaders builds numDays contiguous day columns from start.
func GenerateDateHeaders(start time.Time, numDays int) []timesheet.DateHeader {
	headers := make([]timesheet.DateHeader, 0, max(numDays, 0))
	for i := 0; i < numDays; i++ {
		d := start.AddDate(0, 0, i)
		headers = append(headers, timesheet.DateHeader{
			YMD:       d.Format("2006-01-02"),
			Display:   d.Format("02/01"),
			DayName:   d.Format("Mon"),
			IsWeekend: d.Weekday() == time.Saturday || d.Weekday() == time.Sunday,
		})
	}
	return headers
}
