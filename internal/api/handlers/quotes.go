package handlers

import (
	"net/http"

	"github.com/etfolio/etf-tracker-backend/internal/api/response"
	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
	"github.com/etfolio/etf-tracker-backend/internal/service"
)

// QuoteHandler handles HTTP requests for the market quote cache.
type QuoteHandler struct {
	quoteService *service.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler with the provided service dependency.
func NewQuoteHandler(quoteService *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// ListQuotes handles GET requests to retrieve all cached quotes keyed by symbol.
//
// Endpoint: GET /api/quote
// Response: 200 OK with map of symbol to Quote
// Error: 500 Internal Server Error if retrieval fails
func (h *QuoteHandler) ListQuotes(w http.ResponseWriter, _ *http.Request) {
	quotes, err := h.quoteService.ListQuotes()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveQuotes.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}

// RefreshQuotes handles POST requests to fetch current prices for every
// traded symbol and persist them to the cache. Symbols whose fetch fails
// keep their last cached price and are absent from the response.
//
// Endpoint: POST /api/quote/refresh
// Response: 200 OK with map of symbol to refreshed Quote
// Error: 500 Internal Server Error if the ledger or cache is unavailable
func (h *QuoteHandler) RefreshQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.quoteService.RefreshQuotes(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to refresh quotes", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, quotes)
}
