package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/careroster/roster-backend/internal/domain/task"
	"github.com/careroster/roster-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const taskColumns = `id, title, description, status, position, customer_id, employee_id, due_date, created_at, updated_at`

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

func scanTask(row pgx.Row) (task.Task, error) {
	var t task.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Position, &t.CustomerID, &t.EmployeeID, &t.DueDate, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func mapTaskWriteError(err error, action string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
		switch {
		case strings.Contains(pgErr.ConstraintName, "customer"):
			return fmt.Errorf("%w: customer_id", task.ErrUnknownReference)
		case strings.Contains(pgErr.ConstraintName, "employee"):
			return fmt.Errorf("%w: employee_id", task.ErrUnknownReference)
		}
		return task.ErrUnknownReference
	}
	return fmt.Errorf("failed to %s task: %w", action, err)
}

func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return task.Task{}, fmt.Errorf("failed to generate id: %w", err)
	}

	query := `
		INSERT INTO tasks (id, title, description, status, position, customer_id, employee_id, due_date)
		SELECT $1, $2, $3, $4, COALESCE(MAX(position) + 1, 0), $5, $6, $7
		FROM tasks WHERE status = $4
		RETURNING ` + taskColumns

	created, err := scanTask(q.QueryRow(ctx, query,
		id.String(), t.Title, t.Description, t.Status, t.CustomerID, t.EmployeeID, t.DueDate,
	))
	if err != nil {
		return task.Task{}, mapTaskWriteError(err, "create")
	}
	return created, nil
}

func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanTask(q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, fmt.Errorf("failed to get task: %w", err)
	}
	return found, nil
}

func (r *taskRepositoryImpl) List(ctx context.Context, filter task.TaskFilter) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + taskColumns + `
		FROM tasks
		WHERE ($1::uuid IS NULL OR customer_id = $1::uuid)
		  AND ($2::uuid IS NULL OR employee_id = $2::uuid)
		ORDER BY CASE status WHEN 'todo' THEN 0 WHEN 'in_progress' THEN 1 ELSE 2 END, position, id
	`
	rows, err := q.Query(ctx, query, filter.CustomerID, filter.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update saves the card's content. Status and position only change via Move.
func (r *taskRepositoryImpl) Update(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tasks
		SET title = $2, description = $3, customer_id = $4, employee_id = $5, due_date = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + taskColumns

	saved, err := scanTask(q.QueryRow(ctx, query, t.ID, t.Title, t.Description, t.CustomerID, t.EmployeeID, t.DueDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, mapTaskWriteError(err, "update")
	}
	return saved, nil
}

func (r *taskRepositoryImpl) Move(ctx context.Context, id string, status task.Status, position int) (task.Task, error) {
	var moved task.Task

	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		var (
			oldStatus   task.Status
			oldPosition int
		)
		err := q.QueryRow(txCtx, `SELECT status, position FROM tasks WHERE id = $1 FOR UPDATE`, id).Scan(&oldStatus, &oldPosition)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return task.ErrTaskNotFound
			}
			return fmt.Errorf("failed to lock task: %w", err)
		}

		if _, err := q.Exec(txCtx,
			`UPDATE tasks SET position = position - 1 WHERE status = $1 AND position > $2 AND id <> $3`,
			oldStatus, oldPosition, id,
		); err != nil {
			return fmt.Errorf("failed to close gap: %w", err)
		}

		var columnSize int
		if err := q.QueryRow(txCtx, `SELECT COUNT(*) FROM tasks WHERE status = $1 AND id <> $2`, status, id).Scan(&columnSize); err != nil {
			return fmt.Errorf("failed to count column: %w", err)
		}
		position = min(position, columnSize)

		if _, err := q.Exec(txCtx,
			`UPDATE tasks SET position = position + 1 WHERE status = $1 AND position >= $2 AND id <> $3`,
			status, position, id,
		); err != nil {
			return fmt.Errorf("failed to open gap: %w", err)
		}

		moved, err = scanTask(q.QueryRow(txCtx, `
			UPDATE tasks SET status = $2, position = $3, updated_at = NOW()
			WHERE id = $1
			RETURNING `+taskColumns, id, status, position))
		if err != nil {
			return fmt.Errorf("failed to move task: %w", err)
		}
		return nil
	})
	if err != nil {
		return task.Task{}, err
	}
	return moved, nil
}

func (r *taskRepositoryImpl) Delete(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)

		var (
			status   task.Status
			position int
		)
		err := q.QueryRow(txCtx, `DELETE FROM tasks WHERE id = $1 RETURNING status, position`, id).Scan(&status, &position)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return task.ErrTaskNotFound
			}
			return fmt.Errorf("failed to delete task: %w", err)
		}

		if _, err := q.Exec(txCtx,
			`UPDATE tasks SET position = position - 1 WHERE status = $1 AND position > $2`,
			status, position,
		); err != nil {
			return fmt.Errorf("failed to close gap: %w", err)
		}
		return nil
	})
}
