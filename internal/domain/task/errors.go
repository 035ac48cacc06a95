package task

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidStatus    = errors.New("status must be one of todo, in_progress, done")
	ErrInvalidPosition  = errors.New("position must not be negative")
	ErrInvalidDueDate   = errors.New("due_date must be in YYYY-MM-DD format")
	ErrUnknownReference = errors.New("referenced customer or employee does not exist")
)
