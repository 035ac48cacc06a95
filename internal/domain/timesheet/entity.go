package timesheet

import (
	"time"
)

// Session is the derived shift bucket or allowance category of a job.
type Session string

const (
	SessionNone      Session = ""
	SessionMorning   Session = "Morning"
	SessionAfternoon Session = "Afternoon"
	SessionNight     Session = "Night"
	SessionSleep     Session = "Sleep Allowance"
	SessionCallOut   Session = "Call-Out Allowance"
)

// RosterRow is one line of a roster: a job and who covered it on each day.
type RosterRow struct {
	RowNumber int      `json:"row_number" yaml:"row_number"`
	Note      string   `json:"note" yaml:"note"`
	Period    string   `json:"period" yaml:"period"`
	Hrs       string   `json:"hrs" yaml:"hrs"`
	Days      []string `json:"days" yaml:"days"`
}

// DateHeader is one day column of a report.
type DateHeader struct {
	YMD       string `json:"ymd" yaml:"ymd"`
	Display   string `json:"display" yaml:"display"`
	DayName   string `json:"day_name" yaml:"day_name"`
	IsWeekend bool   `json:"is_weekend" yaml:"is_weekend"`
}

// Job is a distinct (row number, note, period) worked by one employee.
type Job struct {
	Num       int      `json:"num" yaml:"num"`
	Note      string   `json:"note" yaml:"note"`
	Period    string   `json:"period" yaml:"period"`
	HrsValue  string   `json:"hrs_value" yaml:"hrs_value"`
	Session   Session  `json:"session" yaml:"session"`
	DayValues []string `json:"day_values" yaml:"day_values"`
	FullName  string   `json:"full_name" yaml:"full_name"`
	Level     string   `json:"level" yaml:"level"`
}

// EmployeeGroup holds the jobs of one employee, keyed by the name typed in the roster.
type EmployeeGroup struct {
	Name string `json:"name" yaml:"name"`
	Jobs []Job  `json:"jobs" yaml:"jobs"`
}

// TimePeriod is a parsed "<start>-<end>" shift window in minutes since midnight.
type TimePeriod struct {
	StartMinutes int
	EndMinutes   int
}

// Timesheet is the raw, editable roster a report is derived from.
type Timesheet struct {
	ID        string
	Name      string
	StartDate time.Time
	NumDays   int
	Rows      []RosterRow
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReportKind selects the payroll sheet variant.
type ReportKind string

const (
	ReportKindStandard       ReportKind = "standard"
	ReportKindSocialServices ReportKind = "social_services"
	ReportKindNexgenus       ReportKind = "nexgenus"
)

func (k ReportKind) IsValid() bool {
	switch k {
	case ReportKindStandard, ReportKindSocialServices, ReportKindNexgenus:
		return true
	}
	return false
}

// FilePrefix is the export file name prefix of the variant.
func (k ReportKind) FilePrefix() string {
	switch k {
	case ReportKindSocialServices:
		return "SocialServicesReport"
	case ReportKindNexgenus:
		return "NexgenusReport"
	default:
		return "TimesheetReport"
	}
}

// Report is a saved snapshot of derived report data.
type Report struct {
	ID            string
	Kind          ReportKind
	Name          string
	StartDate     time.Time
	NumDays       int
	NumRows       int
	ProcessedData []EmployeeGroup
	DateHeaders   []DateHeader
	TimesheetID   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
