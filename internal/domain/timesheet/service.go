package timesheet

import (
	"context"
	"io"
)

// TimesheetService manages raw rosters and the reports derived from them.
type TimesheetService interface {
	// Raw rosters
	CreateTimesheet(ctx context.Context, req UpsertTimesheetRequest) (TimesheetResponse, error)
	GetTimesheet(ctx context.Context, id string) (TimesheetResponse, error)
	ListTimesheets(ctx context.Context, filter TimesheetFilter) (ListTimesheetResponse, error)
	UpdateTimesheet(ctx context.Context, id string, req UpsertTimesheetRequest) (TimesheetResponse, error)
	DeleteTimesheet(ctx context.Context, id string) error
	ImportTimesheet(ctx context.Context, req ImportTimesheetRequest, workbook io.Reader) (TimesheetResponse, error)

	// Derived reports
	PreviewReport(ctx context.Context, req PreviewReportRequest) (ReportResponse, error)
	PreviewFromTimesheet(ctx context.Context, timesheetID string, kind ReportKind) (ReportResponse, error)
	SaveReport(ctx context.Context, req SaveReportRequest) (ReportResponse, error)
	UpdateReport(ctx context.Context, id string, req SaveReportRequest) (ReportResponse, error)
	GetReport(ctx context.Context, id string) (ReportResponse, error)
	ListReports(ctx context.Context, filter ReportFilter) (ListReportResponse, error)
	DeleteReport(ctx context.Context, id string) error

	// Spreadsheet export
	ExportReport(ctx context.Context, id string) (ExportFile, error)
	ExportDraft(ctx context.Context, req SaveReportRequest) (ExportFile, error)
}
