package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/careroster/roster-backend/internal/domain/note"
	"github.com/careroster/roster-backend/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type NoteHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type noteHandlerImpl struct {
	noteService note.NoteService
}

func NewNoteHandler(noteService note.NoteService) NoteHandler {
	return &noteHandlerImpl{noteService: noteService}
}

func (h *noteHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := note.NoteFilter{
		PendingOnly: getBoolQueryParam(r, "pending_only", false),
		Page:        getIntQueryParam(r, "page", 1),
		Limit:       getIntQueryParam(r, "limit", 20),
	}
	if err := filter.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.noteService.ListNotes(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *noteHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.noteService.GetNote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *noteHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req note.UpsertNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateNote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.noteService.CreateNote(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Note created successfully", result)
}

func (h *noteHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req note.UpsertNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateNote decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.noteService.UpdateNote(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Note updated successfully", result)
}

func (h *noteHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.noteService.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Note deleted successfully", nil)
}
