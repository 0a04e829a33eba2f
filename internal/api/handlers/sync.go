package handlers

import (
	"errors"
	"net/http"

	"github.com/etfolio/etf-tracker-backend/internal/api/request"
	"github.com/etfolio/etf-tracker-backend/internal/api/response"
	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
	"github.com/etfolio/etf-tracker-backend/internal/service"
)

// SyncHandler handles HTTP requests for cloud snapshot sync endpoints.
type SyncHandler struct {
	syncService *service.SyncService
}

// NewSyncHandler creates a new SyncHandler with the provided service dependency.
func NewSyncHandler(syncService *service.SyncService) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
	}
}

// SyncStatusResponse reports whether cloud sync is configured.
type SyncStatusResponse struct {
	Enabled bool `json:"enabled"`
}

// Status handles GET requests to report whether cloud sync is enabled.
//
// Endpoint: GET /api/sync
// Response: 200 OK with SyncStatusResponse
func (h *SyncHandler) Status(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, SyncStatusResponse{
		Enabled: h.syncService.Enabled(),
	})
}

// SetToken handles PUT requests to store the remote store access token.
// The token is encrypted before it is written to the database.
//
// Endpoint: PUT /api/sync/token
// Request Body: SetSyncTokenRequest (token)
// Response: 204 No Content
// Error: 400 Bad Request if the request body is invalid
// Error: 409 Conflict if sync is disabled
// Error: 500 Internal Server Error if storing fails
func (h *SyncHandler) SetToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetSyncTokenRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.syncService.SetAccessToken(r.Context(), req.Token); err != nil {
		if errors.Is(err, apperrors.ErrSyncDisabled) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrSyncDisabled.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to store sync token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Push handles POST requests to write the full ledger snapshot to the
// remote store.
//
// Endpoint: POST /api/sync/push
// Response: 204 No Content
// Error: 409 Conflict if sync is disabled
// Error: 500 Internal Server Error if the push fails
func (h *SyncHandler) Push(w http.ResponseWriter, r *http.Request) {
	if err := h.syncService.Push(r.Context()); err != nil {
		if errors.Is(err, apperrors.ErrSyncDisabled) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrSyncDisabled.Error(), "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to push snapshot", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// Pull handles POST requests to fetch the remote snapshot and replace the
// local ledger with it. A snapshot containing any invalid transaction is
// rejected whole and local state is left untouched.
//
// Endpoint: POST /api/sync/pull
// Response: 200 OK with the applied LedgerSnapshot
// Error: 404 Not Found if the remote store holds no snapshot
// Error: 409 Conflict if sync is disabled
// Error: 422 Unprocessable Entity if the snapshot fails validation
// Error: 500 Internal Server Error if the pull fails
func (h *SyncHandler) Pull(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.syncService.Pull(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrSyncDisabled):
			response.RespondError(w, http.StatusConflict, apperrors.ErrSyncDisabled.Error(), "")
		case errors.Is(err, apperrors.ErrSnapshotNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrSnapshotNotFound.Error(), "")
		case errors.Is(err, apperrors.ErrSnapshotRejected):
			response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrSnapshotRejected.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, "failed to pull snapshot", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshot)
}
