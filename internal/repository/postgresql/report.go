package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/careroster/roster-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const reportColumns = `id, kind, name, start_date, num_days, num_rows, processed_data, date_headers, timesheet_id, created_at, updated_at`

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) timesheet.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

func scanReport(row pgx.Row) (timesheet.Report, error) {
	var r timesheet.Report
	err := row.Scan(
		&r.ID, &r.Kind, &r.Name, &r.StartDate, &r.NumDays, &r.NumRows,
		&r.ProcessedData, &r.DateHeaders, &r.TimesheetID, &r.CreatedAt, &r.UpdatedAt,
	)
	return r, err
}

func reportPayload(r timesheet.Report) ([]timesheet.EmployeeGroup, []timesheet.DateHeader) {
	groups, headers := r.ProcessedData, r.DateHeaders
	if groups == nil {
		groups = []timesheet.EmployeeGroup{}
	}
	if headers == nil {
		headers = []timesheet.DateHeader{}
	}
	return groups, headers
}

func mapReportWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		return timesheet.ErrTimesheetNotFound
	}
	return err
}

func (r *reportRepositoryImpl) Create(ctx context.Context, report timesheet.Report) (timesheet.Report, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return timesheet.Report{}, fmt.Errorf("failed to generate id: %w", err)
	}
	groups, headers := reportPayload(report)

	query := `
		INSERT INTO timesheet_reports (id, kind, name, start_date, num_days, num_rows, processed_data, date_headers, timesheet_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + reportColumns

	created, err := scanReport(q.QueryRow(ctx, query,
		id.String(), report.Kind, report.Name, report.StartDate, report.NumDays, report.NumRows,
		groups, headers, report.TimesheetID,
	))
	if err != nil {
		if mapped := mapReportWriteError(err); mapped != err {
			return timesheet.Report{}, mapped
		}
		return timesheet.Report{}, fmt.Errorf("failed to create report: %w", err)
	}
	return created, nil
}

func (r *reportRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.Report, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanReport(q.QueryRow(ctx, `SELECT `+reportColumns+` FROM timesheet_reports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Report{}, timesheet.ErrReportNotFound
		}
		return timesheet.Report{}, fmt.Errorf("failed to get report: %w", err)
	}
	return found, nil
}

// List returns report summaries, most recently updated first. The derived
// payload columns are not loaded.
func (r *reportRepositoryImpl) List(ctx context.Context, filter timesheet.ReportFilter) ([]timesheet.Report, int64, error) {
	q := GetQuerier(ctx, r.db)

	var kind *string
	if filter.Kind != nil {
		k := string(*filter.Kind)
		kind = &k
	}
	where := `($1::text IS NULL OR kind = $1)`

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM timesheet_reports WHERE `+where, kind).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	query := `
		SELECT id, kind, name, start_date, num_days, num_rows, '[]'::jsonb, '[]'::jsonb, timesheet_id, created_at, updated_at
		FROM timesheet_reports
		WHERE ` + where + `
		ORDER BY updated_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := q.Query(ctx, query, kind, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reports: %w", err)
	}
	defer rows.Close()

	var reports []timesheet.Report
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepositoryImpl) Update(ctx context.Context, report timesheet.Report) (timesheet.Report, error) {
	q := GetQuerier(ctx, r.db)
	groups, headers := reportPayload(report)

	query := `
		UPDATE timesheet_reports
		SET kind = $2, name = $3, start_date = $4, num_days = $5, num_rows = $6,
			processed_data = $7, date_headers = $8, timesheet_id = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + reportColumns

	saved, err := scanReport(q.QueryRow(ctx, query,
		report.ID, report.Kind, report.Name, report.StartDate, report.NumDays, report.NumRows,
		groups, headers, report.TimesheetID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Report{}, timesheet.ErrReportNotFound
		}
		if mapped := mapReportWriteError(err); mapped != err {
			return timesheet.Report{}, mapped
		}
		return timesheet.Report{}, fmt.Errorf("failed to update report: %w", err)
	}
	return saved, nil
}

func (r *reportRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM timesheet_reports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrReportNotFound
	}
	return nil
}
