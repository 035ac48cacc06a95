package timesheet

import (
	"fmt"
	"strings"

	"github.com/careroster/roster-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const MaxReportDays = 62

// ========== TIMESHEET DTOs ==========

type UpsertTimesheetRequest struct {
	Name      string      `json:"name"`
	StartDate string      `json:"start_date"`
	NumDays   int         `json:"num_days"`
	Rows      []RosterRow `json:"rows"`
}

func (r *UpsertTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	errs = append(errs, validatePeriod(r.StartDate, r.NumDays)...)
	for i, row := range r.Rows {
		if len(row.Days) > r.NumDays {
			errs = append(errs, validator.ValidationError{
				Field:   fmt.Sprintf("rows[%d].days", i),
				Message: fmt.Sprintf("has %d cells, report has %d days", len(row.Days), r.NumDays),
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ImportTimesheetRequest struct {
	Name      string `json:"name"`
	StartDate string `json:"start_date"`
	Sheet     string `json:"sheet"`
}

func (r *ImportTimesheetRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.StartDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: ErrInvalidStartDate.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimesheetResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	StartDate string      `json:"start_date"`
	NumDays   int         `json:"num_days"`
	Rows      []RosterRow `json:"rows"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

type TimesheetFilter struct {
	Search *string `json:"search,omitempty"`
	Page   int     `json:"page"`
	Limit  int     `json:"limit"`
}

func (f *TimesheetFilter) Validate() error {
	if errs := validator.NormalizePage(&f.Page, &f.Limit); errs != nil {
		return errs
	}
	return nil
}

type ListTimesheetResponse struct {
	Data       []TimesheetResponse `json:"data"`
	TotalCount int64               `json:"total_count"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}

// ========== REPORT DTOs ==========

type PreviewReportRequest struct {
	Kind      ReportKind  `json:"kind"`
	StartDate string      `json:"start_date"`
	NumDays   int         `json:"num_days"`
	Rows      []RosterRow `json:"rows"`
}

func (r *PreviewReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Kind == "" {
		r.Kind = ReportKindStandard
	}
	if !r.Kind.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: ErrInvalidReportKind.Error()})
	}
	errs = append(errs, validatePeriod(r.StartDate, r.NumDays)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SaveReportRequest is the frozen snapshot the client persists.
type SaveReportRequest struct {
	Kind          ReportKind      `json:"kind"`
	Name          string          `json:"name"`
	StartDate     string          `json:"start_date"`
	NumDays       int             `json:"num_days"`
	NumRows       int             `json:"num_rows"`
	ProcessedData []EmployeeGroup `json:"processed_data"`
	DateHeaders   []DateHeader    `json:"date_headers"`
	TimesheetID   *string         `json:"timesheet_id,omitempty"`
}

func (r *SaveReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Kind == "" {
		r.Kind = ReportKindStandard
	}
	if !r.Kind.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: ErrInvalidReportKind.Error()})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	errs = append(errs, validatePeriod(r.StartDate, r.NumDays)...)
	if r.NumRows < 0 {
		errs = append(errs, validator.ValidationError{Field: "num_rows", Message: "must be non-negative"})
	}
	if len(r.DateHeaders) > 0 && len(r.DateHeaders) != r.NumDays {
		errs = append(errs, validator.ValidationError{Field: "date_headers", Message: "length must equal num_days"})
	}
	if r.TimesheetID != nil && !validator.IsValidUUID(*r.TimesheetID) {
		errs = append(errs, validator.ValidationError{Field: "timesheet_id", Message: "must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReportTotals struct {
	Rows    [][]decimal.Decimal `json:"rows"`
	Columns []decimal.Decimal   `json:"columns"`
	Grand   decimal.Decimal     `json:"grand"`
}

type ReportResponse struct {
	ID            string          `json:"id,omitempty"`
	Kind          ReportKind      `json:"kind"`
	Name          string          `json:"name,omitempty"`
	StartDate     string          `json:"start_date"`
	NumDays       int             `json:"num_days"`
	NumRows       int             `json:"num_rows"`
	ProcessedData []EmployeeGroup `json:"processed_data"`
	DateHeaders   []DateHeader    `json:"date_headers"`
	Totals        ReportTotals    `json:"totals"`
	TimesheetID   *string         `json:"timesheet_id,omitempty"`
	CreatedAt     string          `json:"created_at,omitempty"`
	UpdatedAt     string          `json:"updated_at,omitempty"`
}

type ReportFilter struct {
	Kind  *ReportKind `json:"kind,omitempty"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func (f *ReportFilter) Validate() error {
	errs := validator.NormalizePage(&f.Page, &f.Limit)
	if f.Kind != nil && !f.Kind.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "kind", Message: ErrInvalidReportKind.Error()})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReportSummaryResponse struct {
	ID        string     `json:"id"`
	Kind      ReportKind `json:"kind"`
	Name      string     `json:"name"`
	StartDate string     `json:"start_date"`
	NumDays   int        `json:"num_days"`
	NumRows   int        `json:"num_rows"`
	UpdatedAt string     `json:"updated_at"`
}

type ListReportResponse struct {
	Data       []ReportSummaryResponse `json:"data"`
	TotalCount int64                   `json:"total_count"`
	Page       int                     `json:"page"`
	Limit      int                     `json:"limit"`
}

// ExportFile is a rendered spreadsheet ready to be streamed.
type ExportFile struct {
	FileName    string
	ContentType string
	Content     []byte
}

func validatePeriod(startDate string, numDays int) validator.ValidationErrors {
	var errs validator.ValidationErrors
	if _, ok := validator.IsValidDate(strings.TrimSpace(startDate)); !ok {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: ErrInvalidStartDate.Error()})
	}
	if numDays < 1 || numDays > MaxReportDays {
		errs = append(errs, validator.ValidationError{Field: "num_days", Message: ErrInvalidNumDays.Error()})
	}
	return errs
}
