package task

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/careroster/roster-backend/internal/domain/task"
	"github.com/careroster/roster-backend/internal/pkg/validator"
)

// endOfColumn is clamped by the repository to the column size.
const endOfColumn = math.MaxInt32

type TaskServiceImpl struct {
	taskRepo task.TaskRepository
}

func NewTaskService(taskRepo task.TaskRepository) task.TaskService {
	return &TaskServiceImpl{taskRepo: taskRepo}
}

func mapTaskToResponse(t task.Task) task.TaskResponse {
	var dueDate *string
	if t.DueDate != nil {
		s := t.DueDate.Format("2006-01-02")
		dueDate = &s
	}

	return task.TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Position:    t.Position,
		CustomerID:  t.CustomerID,
		EmployeeID:  t.EmployeeID,
		DueDate:     dueDate,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func parseDueDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	d, ok := validator.IsValidDate(*s)
	if !ok {
		return nil
	}
	return &d
}

func wrapTaskError(err error, action string) error {
	switch {
	case errors.Is(err, task.ErrTaskNotFound), errors.Is(err, task.ErrUnknownReference):
		return err
	}
	return fmt.Errorf("failed to %s task: %w", action, err)
}

// CreateTask implements task.TaskService. New tasks go to the bottom of
// their column.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, req task.UpsertTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	created, err := s.taskRepo.Create(ctx, task.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		CustomerID:  req.CustomerID,
		EmployeeID:  req.EmployeeID,
		DueDate:     parseDueDate(req.DueDate),
	})
	if err != nil {
		return task.TaskResponse{}, wrapTaskError(err, "create")
	}

	return mapTaskToResponse(created), nil
}

// GetTask implements task.TaskService.
func (s *TaskServiceImpl) GetTask(ctx context.Context, id string) (task.TaskResponse, error) {
	t, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, wrapTaskError(err, "get")
	}
	return mapTaskToResponse(t), nil
}

// UpdateTask implements task.TaskService. A changed status moves the card to
// the bottom of the new column.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, id string, req task.UpsertTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	existing, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return task.TaskResponse{}, wrapTaskError(err, "get")
	}

	existing.Title = req.Title
	existing.Description = req.Description
	existing.CustomerID = req.CustomerID
	existing.EmployeeID = req.EmployeeID
	existing.DueDate = parseDueDate(req.DueDate)

	updated, err := s.taskRepo.Update(ctx, existing)
	if err != nil {
		return task.TaskResponse{}, wrapTaskError(err, "update")
	}

	if req.Status != updated.Status {
		updated, err = s.taskRepo.Move(ctx, id, req.Status, endOfColumn)
		if err != nil {
			return task.TaskResponse{}, wrapTaskError(err, "move")
		}
	}

	return mapTaskToResponse(updated), nil
}

// MoveTask implements task.TaskService.
func (s *TaskServiceImpl) MoveTask(ctx context.Context, id string, req task.MoveTaskRequest) (task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	moved, err := s.taskRepo.Move(ctx, id, req.Status, req.Position)
	if err != nil {
		return task.TaskResponse{}, wrapTaskError(err, "move")
	}
	return mapTaskToResponse(moved), nil
}

// DeleteTask implements task.TaskService.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	if err := s.taskRepo.Delete(ctx, id); err != nil {
		return wrapTaskError(err, "delete")
	}
	return nil
}

// GetBoard implements task.TaskService. Every column is present even when
// empty.
func (s *TaskServiceImpl) GetBoard(ctx context.Context, filter task.TaskFilter) (task.BoardResponse, error) {
	tasks, err := s.taskRepo.List(ctx, filter)
	if err != nil {
		return task.BoardResponse{}, fmt.Errorf("failed to list tasks: %w", err)
	}

	byStatus := make(map[task.Status][]task.TaskResponse)
	for _, t := range tasks {
		byStatus[t.Status] = append(byStatus[t.Status], mapTaskToResponse(t))
	}

	board := task.BoardResponse{Columns: make([]task.ColumnResponse, 0, len(task.Statuses()))}
	for _, status := range task.Statuses() {
		column := task.ColumnResponse{Status: status, Tasks: byStatus[status]}
		if column.Tasks == nil {
			column.Tasks = []task.TaskResponse{}
		}
		board.Columns = append(board.Columns, column)
	}

	return board, nil
}
