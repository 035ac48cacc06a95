package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/careroster/roster-backend/internal/pkg/spreadsheet"
	timesheetEngine "github.com/careroster/roster-backend/internal/service/timesheet"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// rosterFile is the YAML form of a roster.
type rosterFile struct {
	Kind      timesheet.ReportKind  `yaml:"kind"`
	StartDate string                `yaml:"start_date"`
	NumDays   int                   `yaml:"num_days"`
	Rows      []timesheet.RosterRow `yaml:"rows"`
	Employees []employeeEntry       `yaml:"employees,omitempty"`
}

type employeeEntry struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Level     string `yaml:"level"`
}

// reportFile is what process prints and flatten reads back.
type reportFile struct {
	Kind          timesheet.ReportKind      `yaml:"kind"`
	StartDate     string                    `yaml:"start_date"`
	DateHeaders   []timesheet.DateHeader    `yaml:"date_headers"`
	ProcessedData []timesheet.EmployeeGroup `yaml:"processed_data"`
	GrandTotal    string                    `yaml:"grand_total"`
}

// roster is a loaded roster ready for the engine.
type roster struct {
	kind      timesheet.ReportKind
	start     time.Time
	headers   []timesheet.DateHeader
	rows      []timesheet.RosterRow
	directory []timesheetEngine.DirectoryEntry
}

// loadRoster reads a YAML roster, or an xlsx workbook when path ends in .xlsx.
// startDate and kind override the file's own values when set.
func loadRoster(path, sheet, startDate, kind string) (roster, error) {
	var in rosterFile
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		f, err := os.Open(path)
		if err != nil {
			return roster{}, err
		}
		defer f.Close()

		grid, err := spreadsheet.ReadSheet(f, sheet)
		if err != nil {
			return roster{}, fmt.Errorf("read workbook: %w", err)
		}
		rows, numDays, err := timesheetEngine.RowsFromGrid(grid)
		if err != nil {
			return roster{}, err
		}
		in.Rows, in.NumDays = rows, numDays
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return roster{}, err
		}
		if err := yaml.Unmarshal(data, &in); err != nil {
			return roster{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if startDate != "" {
		in.StartDate = startDate
	}
	if kind != "" {
		in.Kind = timesheet.ReportKind(kind)
	}
	if in.Kind == "" {
		in.Kind = timesheet.ReportKindStandard
	}
	if !in.Kind.IsValid() {
		return roster{}, fmt.Errorf("%w: %q", timesheet.ErrInvalidReportKind, in.Kind)
	}

	start, err := time.Parse(dateLayout, strings.TrimSpace(in.StartDate))
	if err != nil {
		return roster{}, timesheet.ErrInvalidStartDate
	}
	if in.NumDays < 1 || in.NumDays > timesheet.MaxReportDays {
		return roster{}, timesheet.ErrInvalidNumDays
	}

	directory := make([]timesheetEngine.DirectoryEntry, 0, len(in.Employees))
	for _, e := range in.Employees {
		directory = append(directory, timesheetEngine.DirectoryEntry{FirstName: e.FirstName, LastName: e.LastName, Level: e.Level})
	}

	return roster{
		kind:      in.Kind,
		start:     start,
		headers:   timesheetEngine.GenerateDateHeaders(start, in.NumDays),
		rows:      in.Rows,
		directory: directory,
	}, nil
}

// derive runs the engine with the directory applied before call-out rows are
// added, so those rows inherit the labels too.
func (r roster) derive() []timesheet.EmployeeGroup {
	groups := timesheetEngine.GroupByEmployee(r.rows, r.headers)
	return timesheetEngine.Reprocess(timesheetEngine.ApplyEmployeeDirectory(groups, r.directory))
}

func loadReport(path string) (reportFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return reportFile{}, err
	}
	var out reportFile
	if err := yaml.Unmarshal(data, &out); err != nil {
		return reportFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}
