package employee

import (
	"strings"

	"github.com/careroster/roster-backend/internal/pkg/validator"
)

type UpsertEmployeeRequest struct {
	EmployeeID string `json:"employee_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Level      string `json:"level"`
}

func (r *UpsertEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	r.EmployeeID = strings.TrimSpace(r.EmployeeID)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Level = strings.TrimSpace(r.Level)

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	} else if len(r.EmployeeID) > 50 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must not exceed 50 characters"})
	}
	if r.FirstName == "" {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name is required"})
	} else if len(r.FirstName) > 100 {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "first_name must not exceed 100 characters"})
	}
	if len(r.LastName) > 100 {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "last_name must not exceed 100 characters"})
	}
	if len(r.Level) > 20 {
		errs = append(errs, validator.ValidationError{Field: "level", Message: "level must not exceed 20 characters"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID         string `json:"id"`
	EmployeeID string `json:"employee_id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	FullName   string `json:"full_name"`
	Level      string `json:"level"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

type EmployeeFilter struct {
	Search    *string `json:"search,omitempty"`
	Page      int     `json:"page"`
	Limit     int     `json:"limit"`
	SortBy    string  `json:"sort_by"`
	SortOrder string  `json:"sort_order"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}
	if f.SortBy != "" && !validator.IsInSlice(f.SortBy, []string{"first_name", "last_name", "employee_id", "level", "created_at"}) {
		errs = append(errs, validator.ValidationError{Field: "sort_by", Message: "sort_by must be one of first_name, last_name, employee_id, level, created_at"})
	}
	if f.SortOrder != "" && !validator.IsInSlice(strings.ToLower(f.SortOrder), []string{"asc", "desc"}) {
		errs = append(errs, validator.ValidationError{Field: "sort_order", Message: "sort_order must be asc or desc"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Showing    string             `json:"showing"`
	Employees  []EmployeeResponse `json:"employees"`
}
