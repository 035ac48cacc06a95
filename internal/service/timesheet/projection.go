package timesheet

import (
	"fmt"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
)

var exportLeadingColumns = []string{"Prefer Name", "Full Name", "Level", "Session", "Name Job", "Period", "Hrs"}

const exportTotalColumn = "TOTAL"

// ExportHeader is the fixed header row of the spreadsheet export.
func ExportHeader(headers []timesheet.DateHeader) []string {
	out := make([]string, 0, len(exportLeadingColumns)+len(headers)+1)
	out = append(out, exportLeadingColumns...)
	for _, h := range headers {
		out = append(out, dayLabel(h))
	}
	return append(out, exportTotalColumn)
}

func dayLabel(h timesheet.DateHeader) string {
	switch {
	case h.DayName != "" && h.Display != "":
		return h.DayName + " " + h.Display
	case h.Display != "":
		return h.Display
	default:
		return h.YMD
	}
}

// ProjectRows flattens a report into a rectangular table: the header row, one
// row per job and a closing TOTAL row with column and grand totals. Day cells
// are copied verbatim; totals are numbers.
func ProjectRows(groups []timesheet.EmployeeGroup, headers []timesheet.DateHeader) [][]any {
	dayCount := len(headers)
	width := len(exportLeadingColumns) + dayCount + 1

	header := make([]any, 0, width)
	for _, col := range ExportHeader(headers) {
		header = append(header, col)
	}
	table := [][]any{header}

	for _, group := range groups {
		for _, job := range group.Jobs {
			row := make([]any, 0, width)
			row = append(row, group.Name, job.FullName, job.Level, string(job.Session), job.Note, job.Period, job.HrsValue)
			for i := 0; i < dayCount; i++ {
				cell := ""
				if i < len(job.DayValues) {
					cell = job.DayValues[i]
				}
				row = append(row, cell)
			}
			row = append(row, RowTotal(job.DayValues).InexactFloat64())
			table = append(table, row)
		}
	}

	footer := make([]any, 0, width)
	footer = append(footer, exportTotalColumn)
	for range exportLeadingColumns[1:] {
		footer = append(footer, "")
	}
	for _, total := range ColumnTotals(groups, dayCount) {
		footer = append(footer, total.InexactFloat64())
	}
	footer = append(footer, GrandTotal(groups).InexactFloat64())

	return append(table, footer)
}

// ExportFileName builds "<prefix>_<id or draft>[_<start date>].xlsx".
func ExportFileName(prefix, id, startDate string) string {
	if id == "" {
		id = "draft"
	}
	if startDate == "" {
		return fmt.Sprintf("%s_%s.xlsx", prefix, id)
	}
	return fmt.Sprintf("%s_%s_%s.xlsx", prefix, id, startDate)
}
