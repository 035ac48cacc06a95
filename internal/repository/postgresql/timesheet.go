package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/careroster/roster-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const timesheetColumns = `id, name, start_date, num_days, rows, created_at, updated_at`

type timesheetRepositoryImpl struct {
	db *database.DB
}

func NewTimesheetRepository(db *database.DB) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{db: db}
}

func scanTimesheet(row pgx.Row) (timesheet.Timesheet, error) {
	var ts timesheet.Timesheet
	err := row.Scan(&ts.ID, &ts.Name, &ts.StartDate, &ts.NumDays, &ts.Rows, &ts.CreatedAt, &ts.UpdatedAt)
	return ts, err
}

func rosterRowsOrEmpty(rows []timesheet.RosterRow) []timesheet.RosterRow {
	if rows == nil {
		return []timesheet.RosterRow{}
	}
	return rows
}

func (r *timesheetRepositoryImpl) Create(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to generate id: %w", err)
	}

	query := `
		INSERT INTO timesheets (id, name, start_date, num_days, rows)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + timesheetColumns

	created, err := scanTimesheet(q.QueryRow(ctx, query, id.String(), ts.Name, ts.StartDate, ts.NumDays, rosterRowsOrEmpty(ts.Rows)))
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}
	return created, nil
}

func (r *timesheetRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanTimesheet(q.QueryRow(ctx, `SELECT `+timesheetColumns+` FROM timesheets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to get timesheet: %w", err)
	}
	return found, nil
}

// List returns timesheets without their rows, newest start date first.
func (r *timesheetRepositoryImpl) List(ctx context.Context, filter timesheet.TimesheetFilter) ([]timesheet.Timesheet, int64, error) {
	q := GetQuerier(ctx, r.db)

	var search *string
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		search = &pattern
	}
	where := `($1::text IS NULL OR name ILIKE $1)`

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM timesheets WHERE `+where, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count timesheets: %w", err)
	}

	query := `
		SELECT id, name, start_date, num_days, '[]'::jsonb, created_at, updated_at
		FROM timesheets
		WHERE ` + where + `
		ORDER BY start_date DESC, id DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := q.Query(ctx, query, search, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	var timesheets []timesheet.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		timesheets = append(timesheets, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return timesheets, total, nil
}

func (r *timesheetRepositoryImpl) Update(ctx context.Context, ts timesheet.Timesheet) (timesheet.Timesheet, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE timesheets
		SET name = $2, start_date = $3, num_days = $4, rows = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + timesheetColumns

	saved, err := scanTimesheet(q.QueryRow(ctx, query, ts.ID, ts.Name, ts.StartDate, ts.NumDays, rosterRowsOrEmpty(ts.Rows)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return timesheet.Timesheet{}, timesheet.ErrTimesheetNotFound
		}
		return timesheet.Timesheet{}, fmt.Errorf("failed to update timesheet: %w", err)
	}
	return saved, nil
}

func (r *timesheetRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM timesheets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete timesheet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return timesheet.ErrTimesheetNotFound
	}
	return nil
}
