package timesheet

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/careroster/roster-backend/internal/domain/employee"
	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/careroster/roster-backend/internal/pkg/spreadsheet"
	"github.com/careroster/roster-backend/internal/pkg/validator"
)

const (
	dateLayout       = "2006-01-02"
	exportSheetName  = "Timesheet"
	exportColumnSize = 14
)

type TimesheetServiceImpl struct {
	timesheetRepo timesheet.TimesheetRepository
	reportRepo    timesheet.ReportRepository
	employeeRepo  employee.EmployeeRepository
}

func NewTimesheetService(
	timesheetRepo timesheet.TimesheetRepository,
	reportRepo timesheet.ReportRepository,
	employeeRepo employee.EmployeeRepository,
) timesheet.TimesheetService {
	return &TimesheetServiceImpl{
		timesheetRepo: timesheetRepo,
		reportRepo:    reportRepo,
		employeeRepo:  employeeRepo,
	}
}

func parseStartDate(s string) time.Time {
	d, _ := validator.IsValidDate(strings.TrimSpace(s))
	return d
}

func passThrough(err error, action string, known ...error) error {
	for _, k := range known {
		if errors.Is(err, k) {
			return err
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}

// directory loads the employee records used to label report rows.
func (s *TimesheetServiceImpl) directory(ctx context.Context) ([]DirectoryEntry, error) {
	employees, err := s.employeeRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load employees: %w", err)
	}
	entries := make([]DirectoryEntry, 0, len(employees))
	for _, e := range employees {
		entries = append(entries, DirectoryEntry{FirstName: e.FirstName, LastName: e.LastName, Level: e.Level})
	}
	return entries, nil
}

// derive labels the groups from the employee directory before the
// per-employee derivations so the synthesized call-out job inherits the
// labels of its sleep job.
func (s *TimesheetServiceImpl) derive(ctx context.Context, groups []timesheet.EmployeeGroup) ([]timesheet.EmployeeGroup, error) {
	dir, err := s.directory(ctx)
	if err != nil {
		return nil, err
	}
	return Reprocess(ApplyEmployeeDirectory(groups, dir)), nil
}

// ========== RAW ROSTERS ==========

func mapTimesheetToResponse(ts timesheet.Timesheet) timesheet.TimesheetResponse {
	rows := ts.Rows
	if rows == nil {
		rows = []timesheet.RosterRow{}
	}
	return timesheet.TimesheetResponse{
		ID:        ts.ID,
		Name:      ts.Name,
		StartDate: ts.StartDate.Format(dateLayout),
		NumDays:   ts.NumDays,
		Rows:      rows,
		CreatedAt: ts.CreatedAt.Format(time.RFC3339),
		UpdatedAt: ts.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) CreateTimesheet(ctx context.Context, req timesheet.UpsertTimesheetRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	created, err := s.timesheetRepo.Create(ctx, timesheet.Timesheet{
		Name:      strings.TrimSpace(req.Name),
		StartDate: parseStartDate(req.StartDate),
		NumDays:   req.NumDays,
		Rows:      req.Rows,
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to create timesheet: %w", err)
	}
	return mapTimesheetToResponse(created), nil
}

// GetTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetTimesheet(ctx context.Context, id string) (timesheet.TimesheetResponse, error) {
	ts, err := s.timesheetRepo.GetByID(ctx, id)
	if err != nil {
		return timesheet.TimesheetResponse{}, passThrough(err, "get timesheet", timesheet.ErrTimesheetNotFound)
	}
	return mapTimesheetToResponse(ts), nil
}

// ListTimesheets implements timesheet.TimesheetService. Rows are omitted.
func (s *TimesheetServiceImpl) ListTimesheets(ctx context.Context, filter timesheet.TimesheetFilter) (timesheet.ListTimesheetResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.ListTimesheetResponse{}, err
	}

	timesheets, total, err := s.timesheetRepo.List(ctx, filter)
	if err != nil {
		return timesheet.ListTimesheetResponse{}, fmt.Errorf("failed to list timesheets: %w", err)
	}

	data := make([]timesheet.TimesheetResponse, 0, len(timesheets))
	for _, ts := range timesheets {
		data = append(data, mapTimesheetToResponse(ts))
	}

	return timesheet.ListTimesheetResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) UpdateTimesheet(ctx context.Context, id string, req timesheet.UpsertTimesheetRequest) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	updated, err := s.timesheetRepo.Update(ctx, timesheet.Timesheet{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		StartDate: parseStartDate(req.StartDate),
		NumDays:   req.NumDays,
		Rows:      req.Rows,
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, passThrough(err, "update timesheet", timesheet.ErrTimesheetNotFound)
	}
	return mapTimesheetToResponse(updated), nil
}

// DeleteTimesheet implements timesheet.TimesheetService. Reports derived from
// it are kept and lose their link.
func (s *TimesheetServiceImpl) DeleteTimesheet(ctx context.Context, id string) error {
	if err := s.timesheetRepo.Delete(ctx, id); err != nil {
		return passThrough(err, "delete timesheet", timesheet.ErrTimesheetNotFound)
	}
	return nil
}

// ImportTimesheet implements timesheet.TimesheetService. The day count comes
// from the sheet header.
func (s *TimesheetServiceImpl) ImportTimesheet(ctx context.Context, req timesheet.ImportTimesheetRequest, workbook io.Reader) (timesheet.TimesheetResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	grid, err := spreadsheet.ReadSheet(workbook, req.Sheet)
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("%w: %v", timesheet.ErrInvalidWorkbook, err)
	}
	rows, numDays, err := RowsFromGrid(grid)
	if err != nil {
		return timesheet.TimesheetResponse{}, err
	}

	created, err := s.timesheetRepo.Create(ctx, timesheet.Timesheet{
		Name:      strings.TrimSpace(req.Name),
		StartDate: parseStartDate(req.StartDate),
		NumDays:   numDays,
		Rows:      rows,
	})
	if err != nil {
		return timesheet.TimesheetResponse{}, fmt.Errorf("failed to create timesheet: %w", err)
	}
	return mapTimesheetToResponse(created), nil
}

// ========== DERIVED REPORTS ==========

func (s *TimesheetServiceImpl) preview(ctx context.Context, kind timesheet.ReportKind, start time.Time, numDays int, rows []timesheet.RosterRow) (timesheet.ReportResponse, error) {
	headers := GenerateDateHeaders(start, numDays)
	groups, err := s.derive(ctx, GroupByEmployee(rows, headers))
	if err != nil {
		return timesheet.ReportResponse{}, err
	}

	return timesheet.ReportResponse{
		Kind:          kind,
		StartDate:     start.Format(dateLayout),
		NumDays:       numDays,
		NumRows:       len(rows),
		ProcessedData: groups,
		DateHeaders:   headers,
		Totals:        Totals(groups, numDays),
	}, nil
}

// PreviewReport implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) PreviewReport(ctx context.Context, req timesheet.PreviewReportRequest) (timesheet.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ReportResponse{}, err
	}
	return s.preview(ctx, req.Kind, parseStartDate(req.StartDate), req.NumDays, req.Rows)
}

// PreviewFromTimesheet implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) PreviewFromTimesheet(ctx context.Context, timesheetID string, kind timesheet.ReportKind) (timesheet.ReportResponse, error) {
	if kind == "" {
		kind = timesheet.ReportKindStandard
	}
	if !kind.IsValid() {
		return timesheet.ReportResponse{}, validator.ValidationErrors{{Field: "kind", Message: timesheet.ErrInvalidReportKind.Error()}}
	}

	ts, err := s.timesheetRepo.GetByID(ctx, timesheetID)
	if err != nil {
		return timesheet.ReportResponse{}, passThrough(err, "get timesheet", timesheet.ErrTimesheetNotFound)
	}

	resp, err := s.preview(ctx, kind, ts.StartDate, ts.NumDays, ts.Rows)
	if err != nil {
		return timesheet.ReportResponse{}, err
	}
	resp.Name = ts.Name
	resp.TimesheetID = &ts.ID
	return resp, nil
}

func reportFromRequest(req timesheet.SaveReportRequest) timesheet.Report {
	start := parseStartDate(req.StartDate)
	headers := req.DateHeaders
	if len(headers) == 0 {
		headers = GenerateDateHeaders(start, req.NumDays)
	}
	return timesheet.Report{
		Kind:          req.Kind,
		Name:          strings.TrimSpace(req.Name),
		StartDate:     start,
		NumDays:       req.NumDays,
		NumRows:       req.NumRows,
		ProcessedData: req.ProcessedData,
		DateHeaders:   headers,
		TimesheetID:   req.TimesheetID,
	}
}

// reportResponse re-derives sessions and call-outs on the stored snapshot.
func (s *TimesheetServiceImpl) reportResponse(ctx context.Context, r timesheet.Report) (timesheet.ReportResponse, error) {
	groups, err := s.derive(ctx, r.ProcessedData)
	if err != nil {
		return timesheet.ReportResponse{}, err
	}
	headers := r.DateHeaders
	if headers == nil {
		headers = []timesheet.DateHeader{}
	}

	return timesheet.ReportResponse{
		ID:            r.ID,
		Kind:          r.Kind,
		Name:          r.Name,
		StartDate:     r.StartDate.Format(dateLayout),
		NumDays:       r.NumDays,
		NumRows:       r.NumRows,
		ProcessedData: groups,
		DateHeaders:   headers,
		Totals:        Totals(groups, r.NumDays),
		TimesheetID:   r.TimesheetID,
		CreatedAt:     r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt.Format(time.RFC3339),
	}, nil
}

// SaveReport implements timesheet.TimesheetService. Missing date headers are
// generated from the period.
func (s *TimesheetServiceImpl) SaveReport(ctx context.Context, req timesheet.SaveReportRequest) (timesheet.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ReportResponse{}, err
	}

	saved, err := s.reportRepo.Create(ctx, reportFromRequest(req))
	if err != nil {
		return timesheet.ReportResponse{}, passThrough(err, "save report", timesheet.ErrTimesheetNotFound)
	}
	return s.reportResponse(ctx, saved)
}

// UpdateReport implements timesheet.TimesheetService. The whole snapshot is
// replaced.
func (s *TimesheetServiceImpl) UpdateReport(ctx context.Context, id string, req timesheet.SaveReportRequest) (timesheet.ReportResponse, error) {
	if err := req.Validate(); err != nil {
		return timesheet.ReportResponse{}, err
	}

	report := reportFromRequest(req)
	report.ID = id
	saved, err := s.reportRepo.Update(ctx, report)
	if err != nil {
		return timesheet.ReportResponse{}, passThrough(err, "update report", timesheet.ErrReportNotFound, timesheet.ErrTimesheetNotFound)
	}
	return s.reportResponse(ctx, saved)
}

// GetReport implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetReport(ctx context.Context, id string) (timesheet.ReportResponse, error) {
	r, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return timesheet.ReportResponse{}, passThrough(err, "get report", timesheet.ErrReportNotFound)
	}
	return s.reportResponse(ctx, r)
}

// ListReports implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ListReports(ctx context.Context, filter timesheet.ReportFilter) (timesheet.ListReportResponse, error) {
	if err := filter.Validate(); err != nil {
		return timesheet.ListReportResponse{}, err
	}

	reports, total, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		return timesheet.ListReportResponse{}, fmt.Errorf("failed to list reports: %w", err)
	}

	data := make([]timesheet.ReportSummaryResponse, 0, len(reports))
	for _, r := range reports {
		data = append(data, timesheet.ReportSummaryResponse{
			ID:        r.ID,
			Kind:      r.Kind,
			Name:      r.Name,
			StartDate: r.StartDate.Format(dateLayout),
			NumDays:   r.NumDays,
			NumRows:   r.NumRows,
			UpdatedAt: r.UpdatedAt.Format(time.RFC3339),
		})
	}

	return timesheet.ListReportResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// DeleteReport implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) DeleteReport(ctx context.Context, id string) error {
	if err := s.reportRepo.Delete(ctx, id); err != nil {
		return passThrough(err, "delete report", timesheet.ErrReportNotFound)
	}
	return nil
}

// ========== SPREADSHEET EXPORT ==========

// RenderReport projects groups into a styled workbook named after kind, id and
// startDate. Weekend day columns are shaded and the totals row is bold.
func RenderReport(kind timesheet.ReportKind, id, startDate string, groups []timesheet.EmployeeGroup, headers []timesheet.DateHeader) (timesheet.ExportFile, error) {
	var weekends []int
	for i, h := range headers {
		if h.IsWeekend {
			weekends = append(weekends, len(exportLeadingColumns)+i)
		}
	}

	content, err := spreadsheet.WriteTable(exportSheetName, ProjectRows(groups, headers), spreadsheet.TableOptions{
		HighlightColumns: weekends,
		BoldLastRow:      true,
		ColumnWidth:      exportColumnSize,
	})
	if err != nil {
		return timesheet.ExportFile{}, fmt.Errorf("failed to render report: %w", err)
	}

	return timesheet.ExportFile{
		FileName:    ExportFileName(kind.FilePrefix(), id, startDate),
		ContentType: spreadsheet.ContentTypeXLSX,
		Content:     content,
	}, nil
}

// ExportReport implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) ExportReport(ctx context.Context, id string) (timesheet.ExportFile, error) {
	r, err := s.GetReport(ctx, id)
	if err != nil {
		return timesheet.ExportFile{}, err
	}
	return RenderReport(r.Kind, r.ID, r.StartDate, r.ProcessedData, r.DateHeaders)
}

// ExportDraft implements timesheet.TimesheetService. It renders client-held
// report data without saving it.
func (s *TimesheetServiceImpl) ExportDraft(ctx context.Context, req timesheet.SaveReportRequest) (timesheet.ExportFile, error) {
	if strings.TrimSpace(req.Name) == "" {
		req.Name = "draft"
	}
	if err := req.Validate(); err != nil {
		return timesheet.ExportFile{}, err
	}

	r := reportFromRequest(req)
	groups, err := s.derive(ctx, r.ProcessedData)
	if err != nil {
		return timesheet.ExportFile{}, err
	}
	return RenderReport(r.Kind, "", r.StartDate.Format(dateLayout), groups, r.DateHeaders)
}
