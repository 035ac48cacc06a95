package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/careroster/roster-backend/internal/domain/auth"
	"github.com/careroster/roster-backend/internal/domain/customer"
	"github.com/careroster/roster-backend/internal/domain/employee"
	"github.com/careroster/roster-backend/internal/domain/note"
	"github.com/careroster/roster-backend/internal/domain/notification"
	"github.com/careroster/roster-backend/internal/domain/task"
	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/careroster/roster-backend/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrRefreshTokenNotFound):
		Unauthorized(w, "Refresh token not found")
	case errors.Is(err, auth.ErrRefreshTokenCookieNotFound), errors.Is(err, auth.ErrRefreshTokenCookieEmpty):
		Unauthorized(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee ID already exists")

	// Customer domain errors
	case errors.Is(err, customer.ErrCustomerNotFound):
		NotFound(w, "Customer not found")
	case errors.Is(err, customer.ErrCustomerInUse):
		Conflict(w, "Customer still has tasks")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrUnknownReference):
		BadRequest(w, err.Error(), nil)

	// Note and notification errors
	case errors.Is(err, note.ErrNoteNotFound):
		NotFound(w, "Note not found")
	case errors.Is(err, notification.ErrNotificationNotFound):
		NotFound(w, "Notification not found")

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		NotFound(w, "Timesheet not found")
	case errors.Is(err, timesheet.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, timesheet.ErrInvalidWorkbook):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
