package timesheet

import (
	"bytes"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/careroster/roster-backend/internal/domain/employee"
	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/careroster/roster-backend/internal/pkg/spreadsheet"
	"github.com/careroster/roster-backend/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memTimesheetRepo struct {
	seq        int
	timesheets map[string]timesheet.Timesheet
}

func (m *memTimesheetRepo) Create(_ context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	m.seq++
	ts.ID = fmt.Sprintf("ts-%d", m.seq)
	ts.CreatedAt = time.Now()
	ts.UpdatedAt = ts.CreatedAt
	m.timesheets[ts.ID] = ts
	return ts, nil
}

func (m *memTimesheetRepo) GetByID(_ context.Context, id string) (timesheet.Timesheet, error) {
	ts, ok := m.timesheets[id]
	if !ok {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
	}
	return ts, nil
}

func (m *memTimesheetRepo) List(_ context.Context, _ timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	var out []timesheet.Timesheet
	for _, ts := range m.timesheets {
		ts.Rows = nil
		out = append(out, ts)
	}
	return out, int64(len(out)), nil
}

func (m *memTimesheetRepo) Update(_ context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	if _, ok := m.timesheets[ts.ID]; !ok {
		return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
	}
	m.timesheets[ts.ID] = ts
	return ts, nil
}

func (m *memTimesheetRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.timesheets[id]; !ok {
		return timesheet.ErrTimesheetNotFound
	}
	delete(m.timesheets, id)
	return nil
}

type memReportRepo struct {
	seq     int
	reports map[string]timesheet.Report
}

func (m *memReportRepo) Create(_ context.Context, r timesheet.Report) (timesheet.Report, error) {
	m.seq++
	r.ID = fmt.Sprintf("rep-%d", m.seq)
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	m.reports[r.ID] = r
	return r, nil
}

func (m *memReportRepo) GetByID(_ context.Context, id string) (timesheet.Report, error) {
	r, ok := m.reports[id]
	if !ok {
		return timesheet.Report{}, timesheet.ErrReportNotFound
	}
	return r, nil
}

func (m *memReportRepo) List(_ context.Context, filter timesheet.ReportFilter) ([]timesheet.Report, int64, error) {
	var out []timesheet.Report
	for _, r := range m.reports {
		if filter.Kind == nil || r.Kind == *filter.Kind {
			out = append(out, r)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memReportRepo) Update(_ context.Context, r timesheet.Report) (timesheet.Report, error) {
	existing, ok := m.reports[r.ID]
	if !ok {
		return timesheet.Report{}, timesheet.ErrReportNotFound
	}
	r.CreatedAt = existing.CreatedAt
	r.UpdatedAt = time.Now()
	m.reports[r.ID] = r
	return r, nil
}

func (m *memReportRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.reports[id]; !ok {
		return timesheet.ErrReportNotFound
	}
	delete(m.reports, id)
	return nil
}

// staticDirectory serves ListAll only.
type staticDirectory struct {
	employee.EmployeeRepository
	employees []employee.Employee
}

func (d staticDirectory) ListAll(context.Context) ([]employee.Employee, error) {
	return d.employees, nil
}

type serviceFixture struct {
	svc        timesheet.TimesheetService
	timesheets *memTimesheetRepo
	reports    *memReportRepo
}

func newServiceFixture() serviceFixture {
	f := serviceFixture{
		timesheets: &memTimesheetRepo{timesheets: map[string]timesheet.Timesheet{}},
		reports:    &memReportRepo{reports: map[string]timesheet.Report{}},
	}
	dir := staticDirectory{employees: []employee.Employee{{FirstName: "Bob", LastName: "Stone", Level: "2.3"}}}
	f.svc = NewTimesheetService(f.timesheets, f.reports, dir)
	return f
}

var sampleRows = []timesheet.RosterRow{
	{RowNumber: 1, Note: "House A", Period: "7am-3pm", Hrs: "8", Days: []string{"Ann", "Bob", ""}},
	{RowNumber: 2, Note: "House A", Period: "9pm-7am", Hrs: "10", Days: []string{"Bob", "", ""}},
	{RowNumber: 3, Note: "s/o", Period: "9pm-7am", Hrs: "1", Days: []string{"Bob", "", ""}},
}

func TestPreviewReport(t *testing.T) {
	f := newServiceFixture()

	resp, err := f.svc.PreviewReport(context.Background(), timesheet.PreviewReportRequest{
		StartDate: "2026-01-03",
		NumDays:   3,
		Rows:      sampleRows,
	})
	require.NoError(t, err)

	assert.Equal(t, timesheet.ReportKindStandard, resp.Kind)
	assert.Equal(t, 3, resp.NumRows)
	require.Len(t, resp.DateHeaders, 3)
	assert.True(t, resp.DateHeaders[0].IsWeekend)

	require.Len(t, resp.ProcessedData, 2)
	bob := resp.ProcessedData[1]
	assert.Equal(t, "Bob", bob.Name)
	require.Len(t, bob.Jobs, 4)
	assert.Equal(t, timesheet.SessionCallOut, bob.Jobs[3].Session)
	assert.Equal(t, "Bob Stone", bob.Jobs[3].FullName, "call-out inherits directory labels")
	assert.Equal(t, "2.3", bob.Jobs[0].Level)

	assert.True(t, decimal.NewFromInt(28).Equal(resp.Totals.Grand), "got %s", resp.Totals.Grand)
}

func TestPreviewReport_Invalid(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.PreviewReport(context.Background(), timesheet.PreviewReportRequest{Kind: "weekly", StartDate: "03/01/2026", NumDays: 0})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestPreviewFromTimesheet(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	ts, err := f.svc.CreateTimesheet(ctx, timesheet.UpsertTimesheetRequest{Name: "Jan", StartDate: "2026-01-05", NumDays: 3, Rows: sampleRows})
	require.NoError(t, err)

	resp, err := f.svc.PreviewFromTimesheet(ctx, ts.ID, timesheet.ReportKindNexgenus)
	require.NoError(t, err)
	assert.Equal(t, timesheet.ReportKindNexgenus, resp.Kind)
	assert.Equal(t, "Jan", resp.Name)
	require.NotNil(t, resp.TimesheetID)
	assert.Equal(t, ts.ID, *resp.TimesheetID)
	assert.Equal(t, "2026-01-05", resp.StartDate)

	_, err = f.svc.PreviewFromTimesheet(ctx, "missing", "")
	assert.ErrorIs(t, err, timesheet.ErrTimesheetNotFound)

	_, err = f.svc.PreviewFromTimesheet(ctx, ts.ID, "weekly")
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestSaveAndGetReport_ReprocessesOnLoad(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	// A snapshot saved with a hand-edited session and without its call-out row.
	snapshot := []timesheet.EmployeeGroup{{
		Name: "Bob",
		Jobs: []timesheet.Job{
			{Num: 2, Note: "House A", Period: "9pm-7am", HrsValue: "10", Session: timesheet.SessionMorning, DayValues: []string{"10", "", ""}},
			{Num: 3, Note: "s/o", Period: "9pm-7am", HrsValue: "1", DayValues: []string{"1", "", ""}},
		},
	}}

	saved, err := f.svc.SaveReport(ctx, timesheet.SaveReportRequest{
		Name:          "Week 1",
		StartDate:     "2026-01-05",
		NumDays:       3,
		NumRows:       2,
		ProcessedData: snapshot,
	})
	require.NoError(t, err)
	assert.Len(t, saved.DateHeaders, 3, "headers are generated when missing")

	stored := f.reports.reports[saved.ID]
	assert.Len(t, stored.ProcessedData[0].Jobs, 2, "the snapshot is stored as sent")

	got, err := f.svc.GetReport(ctx, saved.ID)
	require.NoError(t, err)
	jobs := got.ProcessedData[0].Jobs
	require.Len(t, jobs, 3)
	assert.Equal(t, timesheet.SessionNight, jobs[0].Session)
	assert.Equal(t, timesheet.SessionSleep, jobs[1].Session)
	assert.Equal(t, timesheet.SessionCallOut, jobs[2].Session)
	assert.True(t, decimal.NewFromInt(12).Equal(got.Totals.Grand))

	_, err = f.svc.GetReport(ctx, "missing")
	assert.ErrorIs(t, err, timesheet.ErrReportNotFound)
}

func TestUpdateListDeleteReport(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	saved, err := f.svc.SaveReport(ctx, timesheet.SaveReportRequest{Kind: timesheet.ReportKindSocialServices, Name: "A", StartDate: "2026-01-05", NumDays: 7})
	require.NoError(t, err)

	updated, err := f.svc.UpdateReport(ctx, saved.ID, timesheet.SaveReportRequest{Kind: timesheet.ReportKindSocialServices, Name: "B", StartDate: "2026-01-05", NumDays: 7})
	require.NoError(t, err)
	assert.Equal(t, "B", updated.Name)

	_, err = f.svc.UpdateReport(ctx, "missing", timesheet.SaveReportRequest{Name: "B", StartDate: "2026-01-05", NumDays: 7})
	assert.ErrorIs(t, err, timesheet.ErrReportNotFound)

	kind := timesheet.ReportKindSocialServices
	list, err := f.svc.ListReports(ctx, timesheet.ReportFilter{Kind: &kind})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
	assert.Equal(t, "B", list.Data[0].Name)

	require.NoError(t, f.svc.DeleteReport(ctx, saved.ID))
	assert.ErrorIs(t, f.svc.DeleteReport(ctx, saved.ID), timesheet.ErrReportNotFound)
}

func TestExportReport(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	preview, err := f.svc.PreviewReport(ctx, timesheet.PreviewReportRequest{Kind: timesheet.ReportKindNexgenus, StartDate: "2026-01-05", NumDays: 3, Rows: sampleRows})
	require.NoError(t, err)
	saved, err := f.svc.SaveReport(ctx, timesheet.SaveReportRequest{
		Kind:          preview.Kind,
		Name:          "Week 1",
		StartDate:     preview.StartDate,
		NumDays:       preview.NumDays,
		NumRows:       preview.NumRows,
		ProcessedData: preview.ProcessedData,
		DateHeaders:   preview.DateHeaders,
	})
	require.NoError(t, err)

	file, err := f.svc.ExportReport(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "NexgenusReport_"+saved.ID+"_2026-01-05.xlsx", file.FileName)
	assert.Equal(t, spreadsheet.ContentTypeXLSX, file.ContentType)

	grid, err := spreadsheet.ReadSheet(bytes.NewReader(file.Content), "")
	require.NoError(t, err)
	assert.Equal(t, "Prefer Name", grid[0][0])
	assert.Equal(t, "Mon 05/01", grid[0][7])
	assert.Equal(t, "TOTAL", grid[len(grid)-1][0])
	assert.Len(t, grid, 1+5+1, "header, one row per job, footer")
}

func TestExportDraft(t *testing.T) {
	f := newServiceFixture()

	file, err := f.svc.ExportDraft(context.Background(), timesheet.SaveReportRequest{StartDate: "2026-01-05", NumDays: 2})
	require.NoError(t, err)
	assert.Equal(t, "TimesheetReport_draft_2026-01-05.xlsx", file.FileName)
	assert.NotEmpty(t, file.Content)
}

func TestImportTimesheet(t *testing.T) {
	f := newServiceFixture()

	workbook, err := spreadsheet.WriteTable("Roster", [][]any{
		{"No", "Name Job", "Period", "Hrs", "Mon", "Tue"},
		{1, "House A", "7am-3pm", 8, "Ann", ""},
		{2, "s/o", "9pm-7am", 1, "", "Bob"},
	}, spreadsheet.TableOptions{})
	require.NoError(t, err)

	resp, err := f.svc.ImportTimesheet(context.Background(), timesheet.ImportTimesheetRequest{Name: "Imported", StartDate: "2026-01-05"}, bytes.NewReader(workbook))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.NumDays)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, timesheet.RosterRow{RowNumber: 1, Note: "House A", Period: "7am-3pm", Hrs: "8", Days: []string{"Ann", ""}}, resp.Rows[0])

	_, err = f.svc.ImportTimesheet(context.Background(), timesheet.ImportTimesheetRequest{Name: "Bad", StartDate: "2026-01-05"}, bytes.NewReader([]byte("not a workbook")))
	assert.ErrorIs(t, err, timesheet.ErrInvalidWorkbook)
}

func TestTimesheetCRUD(t *testing.T) {
	f := newServiceFixture()
	ctx := context.Background()

	_, err := f.svc.CreateTimesheet(ctx, timesheet.UpsertTimesheetRequest{Name: "Jan", StartDate: "2026-01-05", NumDays: 2, Rows: sampleRows})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs, "rows wider than the period are rejected")

	created, err := f.svc.CreateTimesheet(ctx, timesheet.UpsertTimesheetRequest{Name: " Jan ", StartDate: "2026-01-05", NumDays: 3})
	require.NoError(t, err)
	assert.Equal(t, "Jan", created.Name)
	assert.NotNil(t, created.Rows)

	updated, err := f.svc.UpdateTimesheet(ctx, created.ID, timesheet.UpsertTimesheetRequest{Name: "Jan", StartDate: "2026-01-05", NumDays: 3, Rows: sampleRows})
	require.NoError(t, err)
	assert.Len(t, updated.Rows, 3)

	list, err := f.svc.ListTimesheets(ctx, timesheet.TimesheetFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
	assert.Empty(t, list.Data[0].Rows)

	require.NoError(t, f.svc.DeleteTimesheet(ctx, created.ID))
	_, err = f.svc.GetTimesheet(ctx, created.ID)
	assert.ErrorIs(t, err, timesheet.ErrTimesheetNotFound)
}
