package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/etfolio/etf-tracker-backend/internal/api/request"
	"github.com/etfolio/etf-tracker-backend/internal/api/response"
	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
	"github.com/etfolio/etf-tracker-backend/internal/service"
	"github.com/etfolio/etf-tracker-backend/internal/validation"
)

// NoteHandler handles HTTP requests for strategy note endpoints.
type NoteHandler struct {
	noteService *service.NoteService
}

// NewNoteHandler creates a new NoteHandler with the provided service dependency.
func NewNoteHandler(noteService *service.NoteService) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
	}
}

// ListNotes handles GET requests to retrieve all strategy notes, newest first.
//
// Endpoint: GET /api/note
// Response: 200 OK with array of StrategyNote
// Error: 500 Internal Server Error if retrieval fails
func (h *NoteHandler) ListNotes(w http.ResponseWriter, _ *http.Request) {
	notes, err := h.noteService.ListNotes()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveNotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, notes)
}

// GetNote handles GET requests to retrieve a single strategy note by ID.
//
// Endpoint: GET /api/note/{uuid}
// Response: 200 OK with StrategyNote
// Error: 400 Bad Request if note ID is invalid (validated by middleware)
// Error: 404 Not Found if note not found
// Error: 500 Internal Server Error if retrieval fails
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "uuid")

	note, err := h.noteService.GetNote(noteID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoteNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNoteNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveNotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, note)
}

// CreateNote handles POST requests to create a new strategy note.
//
// Endpoint: POST /api/note
// Request Body: CreateNoteRequest (title, body, optional symbol)
// Response: 201 Created with StrategyNote
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if creation fails
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateNoteRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateNote(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	note, err := h.noteService.CreateNote(r.Context(), req)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create note", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, note)
}

// UpdateNote handles PUT requests to update an existing strategy note.
//
// Endpoint: PUT /api/note/{uuid}
// Request Body: UpdateNoteRequest (all fields optional)
// Response: 200 OK with updated StrategyNote
// Error: 400 Bad Request if note ID is invalid (validated by middleware) or validation fails
// Error: 404 Not Found if note not found
// Error: 500 Internal Server Error if update fails
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdateNoteRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdateNote(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	note, err := h.noteService.UpdateNote(r.Context(), noteID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoteNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNoteNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update note", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, note)
}

// DeleteNote handles DELETE requests to remove a strategy note.
//
// Endpoint: DELETE /api/note/{uuid}
// Response: 204 No Content on successful deletion
// Error: 400 Bad Request if note ID is invalid (validated by middleware)
// Error: 404 Not Found if note not found
// Error: 500 Internal Server Error if deletion fails
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	noteID := chi.URLParam(r, "uuid")

	if err := h.noteService.DeleteNote(r.Context(), noteID); err != nil {
		if errors.Is(err, apperrors.ErrNoteNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrNoteNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete note", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
