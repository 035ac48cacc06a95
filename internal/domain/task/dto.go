package task

import (
	"strings"

	"github.com/careroster/roster-backend/internal/pkg/validator"
)

type UpsertTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      Status  `json:"status"`
	CustomerID  *string `json:"customer_id,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

func (r *UpsertTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	if r.Status == "" {
		r.Status = StatusTodo
	}

	if r.Title == "" {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	} else if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not exceed 255 characters"})
	}
	if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: ErrInvalidStatus.Error()})
	}
	if r.CustomerID != nil && !validator.IsValidUUID(*r.CustomerID) {
		errs = append(errs, validator.ValidationError{Field: "customer_id", Message: "customer_id must be a valid UUID"})
	}
	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if r.DueDate != nil {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "due_date", Message: ErrInvalidDueDate.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MoveTaskRequest struct {
	Status   Status `json:"status"`
	Position int    `json:"position"`
}

func (r *MoveTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Status.IsValid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: ErrInvalidStatus.Error()})
	}
	if r.Position < 0 {
		errs = append(errs, validator.ValidationError{Field: "position", Message: ErrInvalidPosition.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaskFilter struct {
	CustomerID *string `json:"customer_id,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

type TaskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      Status  `json:"status"`
	Position    int     `json:"position"`
	CustomerID  *string `json:"customer_id"`
	EmployeeID  *string `json:"employee_id"`
	DueDate     *string `json:"due_date"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type ColumnResponse struct {
	Status Status         `json:"status"`
	Tasks  []TaskResponse `json:"tasks"`
}

// BoardResponse always carries every column, in board order.
type BoardResponse struct {
	Columns []ColumnResponse `json:"columns"`
}
