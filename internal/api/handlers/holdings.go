package handlers

import (
	"errors"
	"net/http"

	"github.com/etfolio/etf-tracker-backend/internal/api/request"
	"github.com/etfolio/etf-tracker-backend/internal/api/response"
	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
	"github.com/etfolio/etf-tracker-backend/internal/service"
	"github.com/etfolio/etf-tracker-backend/internal/validation"
)

// HoldingsHandler handles HTTP requests for the portfolio holdings view.
type HoldingsHandler struct {
	holdingsService *service.HoldingsService
}

// NewHoldingsHandler creates a new HoldingsHandler with the provided service dependency.
func NewHoldingsHandler(holdingsService *service.HoldingsService) *HoldingsHandler {
	return &HoldingsHandler{
		holdingsService: holdingsService,
	}
}

// GetHoldings handles GET requests to retrieve the replayed position set
// enriched with reserves and market valuation.
//
// Endpoint: GET /api/holdings
// Response: 200 OK with array of Holding
// Error: 500 Internal Server Error if retrieval fails
func (h *HoldingsHandler) GetHoldings(w http.ResponseWriter, _ *http.Request) {
	holdings, err := h.holdingsService.GetHoldings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}

// SetReserve handles PUT requests to store the carried-forward reserved
// capital for a symbol, then returns the refreshed holdings view.
//
// Endpoint: PUT /api/holdings/reserve
// Request Body: SetReserveRequest (symbol, reserved)
// Response: 200 OK with array of Holding
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if storing fails
func (h *HoldingsHandler) SetReserve(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SetReserveRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateSetReserve(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	if err := h.holdingsService.SetReserve(r.Context(), req.Symbol, req.Reserved); err != nil {
		if errors.Is(err, apperrors.ErrEmptySymbol) || errors.Is(err, apperrors.ErrNegativeAmount) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to set reserve", err.Error())
		return
	}

	holdings, err := h.holdingsService.GetHoldings()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHoldings.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, holdings)
}
