package task

import "context"

type TaskService interface {
	CreateTask(ctx context.Context, req UpsertTaskRequest) (TaskResponse, error)
	GetTask(ctx context.Context, id string) (TaskResponse, error)
	UpdateTask(ctx context.Context, id string, req UpsertTaskRequest) (TaskResponse, error)
	MoveTask(ctx context.Context, id string, req MoveTaskRequest) (TaskResponse, error)
	DeleteTask(ctx context.Context, id string) error
	GetBoard(ctx context.Context, filter TaskFilter) (BoardResponse, error)
}
