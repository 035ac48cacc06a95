package timesheet

import "context"

type TimesheetRepository interface {
	Create(ctx context.Context, ts Timesheet) (Timesheet, error)
	GetByID(ctx context.Context, id string) (Timesheet, error)
	List(ctx context.Context, filter TimesheetFilter) ([]Timesheet, int64, error)
	Update(ctx context.Context, ts Timesheet) (Timesheet, error)
	Delete(ctx context.Context, id string) error
}

type ReportRepository interface {
	Create(ctx context.Context, report Report) (Report, error)
	GetByID(ctx context.Context, id string) (Report, error)
	List(ctx context.Context, filter ReportFilter) ([]Report, int64, error)
	Update(ctx context.Context, report Report) (Report, error)
	Delete(ctx context.Context, id string) error
}
