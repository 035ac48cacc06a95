package timesheet

import (
	"strings"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
)

// Process derives a report from raw roster rows: grouping, then session
// resolution and call-out synthesis per employee.
func Process(rows []timesheet.RosterRow, headers []timesheet.DateHeader) []timesheet.EmployeeGroup {
	return Reprocess(GroupByEmployee(rows, headers))
}

// Reprocess re-runs the per-employee derivations over already grouped data,
// such as a saved report, so rule changes apply on every load. Job order is
// kept as stored. Sessions edited by hand are recomputed.
func Reprocess(groups []timesheet.EmployeeGroup) []timesheet.EmployeeGroup {
	out := make([]timesheet.EmployeeGroup, 0, len(groups))
	for _, group := range groups {
		out = append(out, timesheet.EmployeeGroup{
			Name: group.Name,
			Jobs: AddCallOutAllowance(ResolveJobSessions(group.Jobs)),
		})
	}
	return out
}

// DirectoryEntry is the part of an employee record used to label report rows.
type DirectoryEntry struct {
	FirstName string
	LastName  string
	Level     string
}

func (e DirectoryEntry) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// ApplyEmployeeDirectory fills in blank FullName and Level fields of every job
// whose prefer name matches exactly one directory entry, by first name or by
// full name, ignoring case. Ambiguous names are left alone.
func ApplyEmployeeDirectory(groups []timesheet.EmployeeGroup, directory []DirectoryEntry) []timesheet.EmployeeGroup {
	byName := make(map[string][]DirectoryEntry)
	for _, entry := range directory {
		first := strings.ToLower(strings.TrimSpace(entry.FirstName))
		full := strings.ToLower(entry.FullName())
		if first != "" {
			byName[first] = append(byName[first], entry)
		}
		if full != "" && full != first {
			byName[full] = append(byName[full], entry)
		}
	}

	out := make([]timesheet.EmployeeGroup, 0, len(groups))
	for _, group := range groups {
		jobs := make([]timesheet.Job, len(group.Jobs))
		copy(jobs, group.Jobs)

		matches := byName[strings.ToLower(strings.TrimSpace(group.Name))]
		if len(matches) == 1 {
			entry := matches[0]
			for i := range jobs {
				if jobs[i].FullName == "" {
					jobs[i].FullName = entry.FullName()
				}
				if jobs[i].Level == "" {
					jobs[i].Level = entry.Level
				}
			}
		}
		out = append(out, timesheet.EmployeeGroup{Name: group.Name, Jobs: jobs})
	}
	return out
}
