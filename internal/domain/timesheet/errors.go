package timesheet

import "errors"

var (
	ErrTimesheetNotFound = errors.New("timesheet not found")
	ErrReportNotFound    = errors.New("report not found")
	ErrInvalidReportKind = errors.New("invalid report kind")
	ErrInvalidStartDate  = errors.New("start_date must be in YYYY-MM-DD format")
	ErrInvalidNumDays    = errors.New("num_days must be between 1 and 62")
	ErrInvalidWorkbook   = errors.New("invalid roster workbook")
)
