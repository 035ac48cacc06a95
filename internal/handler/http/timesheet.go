package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/careroster/roster-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

// maxWorkbookSize caps roster uploads.
const maxWorkbookSize = 10 << 20

type TimesheetHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Import(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{timesheetService: timesheetService}
}

func (h *timesheetHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := timesheet.TimesheetFilter{
		Search: getStringQueryParam(r, "q"),
		Page:   getIntQueryParam(r, "page", 1),
		Limit:  getIntQueryParam(r, "limit", 20),
	}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.ListTimesheets(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetTimesheet(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *timesheetHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpsertTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTimesheet decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.CreateTimesheet(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet created successfully", result)
}

func (h *timesheetHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpsertTimesheetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateTimesheet decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.UpdateTimesheet(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet updated successfully", result)
}

func (h *timesheetHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.timesheetService.DeleteTimesheet(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet deleted successfully", nil)
}

// Import reads a multipart upload: form fields name, start_date and an
// optional sheet, plus the workbook under "file".
func (h *timesheetHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxWorkbookSize); err != nil {
		slog.Error("ImportTimesheet parse form error", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	req := timesheet.ImportTimesheetRequest{
		Name:      r.FormValue("name"),
		StartDate: r.FormValue("start_date"),
		Sheet:     r.FormValue("sheet"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Roster workbook is required", map[string]string{"file": "is required"})
		return
	}
	defer file.Close()

	result, err := h.timesheetService.ImportTimesheet(r.Context(), req, file)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Timesheet imported successfully", result)
}

// Report derives a report preview from a stored timesheet.
func (h *timesheetHandlerImpl) Report(w http.ResponseWriter, r *http.Request) {
	kind := timesheet.ReportKind(r.URL.Query().Get("kind"))

	result, err := h.timesheetService.PreviewFromTimesheet(r.Context(), chi.URLParam(r, "id"), kind)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
