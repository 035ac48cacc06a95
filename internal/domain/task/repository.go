package task

import "context"

type TaskRepository interface {
	// Create appends the task to the end of its column.
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	// List returns matching tasks ordered by column, then position.
	List(ctx context.Context, filter TaskFilter) ([]Task, error)
	Update(ctx context.Context, t Task) (Task, error)
	// Move places the task at position in status, shifting its neighbours.
	// Positions past the end of the column are clamped.
	Move(ctx context.Context, id string, status Status, position int) (Task, error)
	Delete(ctx context.Context, id string) error
}
