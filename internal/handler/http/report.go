package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/careroster/roster-backend/internal/domain/timesheet"
	"github.com/careroster/roster-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	Preview(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Save(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Export(w http.ResponseWriter, r *http.Request)
	ExportDraft(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewReportHandler(timesheetService timesheet.TimesheetService) ReportHandler {
	return &reportHandlerImpl{timesheetService: timesheetService}
}

func (h *reportHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req timesheet.PreviewReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("PreviewReport decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.PreviewReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := timesheet.ReportFilter{
		Page:  getIntQueryParam(r, "page", 1),
		Limit: getIntQueryParam(r, "limit", 20),
	}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		k := timesheet.ReportKind(kind)
		filter.Kind = &k
	}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.timesheetService.ListReports(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) Save(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSaveReport(w, r, "SaveReport")
	if !ok {
		return
	}

	result, err := h.timesheetService.SaveReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Report saved successfully", result)
}

func (h *reportHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeSaveReport(w, r, "UpdateReport")
	if !ok {
		return
	}

	result, err := h.timesheetService.UpdateReport(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report updated successfully", result)
}

func (h *reportHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.timesheetService.DeleteReport(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Report deleted successfully", nil)
}

func (h *reportHandlerImpl) Export(w http.ResponseWriter, r *http.Request) {
	file, err := h.timesheetService.ExportReport(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.FileName, file.ContentType, file.Content)
}

// ExportDraft renders an unsaved snapshot.
func (h *reportHandlerImpl) ExportDraft(w http.ResponseWriter, r *http.Request) {
	var req timesheet.SaveReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ExportDraft decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	file, err := h.timesheetService.ExportDraft(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, file.FileName, file.ContentType, file.Content)
}

func decodeSaveReport(w http.ResponseWriter, r *http.Request, action string) (timesheet.SaveReportRequest, bool) {
	var req timesheet.SaveReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error(action+" decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return req, false
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return req, false
	}
	return req, true
}
