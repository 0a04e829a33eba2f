package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/etfolio/etf-tracker-backend/internal/api/request"
	"github.com/etfolio/etf-tracker-backend/internal/api/response"
	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
	"github.com/etfolio/etf-tracker-backend/internal/model"
	"github.com/etfolio/etf-tracker-backend/internal/service"
	"github.com/etfolio/etf-tracker-backend/internal/validation"
)

// TransactionHandler handles HTTP requests for ledger transaction endpoints.
// The ledger is append-and-delete only; there is no update endpoint because
// positions are always rebuilt by replaying the full ledger.
type TransactionHandler struct {
	ledgerService *service.LedgerService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(ledgerService *service.LedgerService) *TransactionHandler {
	return &TransactionHandler{
		ledgerService: ledgerService,
	}
}

// LedgerMutationResponse pairs a mutated transaction with the position set
// replayed from the resulting ledger, so clients render from consistent state.
type LedgerMutationResponse struct {
	Transaction *model.Transaction `json:"transaction,omitempty"`
	Positions   []model.Position   `json:"positions"`
}

// ListTransactions handles GET requests to retrieve the full ledger in replay order.
//
// Endpoint: GET /api/transaction
// Response: 200 OK with array of Transaction
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) ListTransactions(w http.ResponseWriter, _ *http.Request) {
	transactions, err := h.ledgerService.ListTransactions()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransactions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}

// GetTransaction handles GET requests to retrieve a single transaction by ID.
//
// Endpoint: GET /api/transaction/{uuid}
// Response: 200 OK with Transaction
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	transaction, err := h.ledgerService.GetTransaction(transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveTransaction.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, transaction)
}

// CreateTransaction handles POST requests to append a transaction to the ledger.
// Validates the request body, records the transaction, and replays the ledger.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest (date, symbol, action, shares, price, optional total, notes)
// Response: 201 Created with LedgerMutationResponse
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 500 Internal Server Error if recording fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	transaction, positions, err := h.ledgerService.AppendTransaction(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransaction) {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to record transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, LedgerMutationResponse{
		Transaction: transaction,
		Positions:   positions,
	})
}

// DeleteTransaction handles DELETE requests to remove a transaction from the ledger.
// The remaining ledger is replayed and the fresh position set returned.
//
// Endpoint: DELETE /api/transaction/{uuid}
// Response: 200 OK with LedgerMutationResponse (positions only)
// Error: 400 Bad Request if transaction ID is invalid (validated by middleware)
// Error: 404 Not Found if transaction not found
// Error: 500 Internal Server Error if deletion fails
func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	transactionID := chi.URLParam(r, "uuid")

	positions, err := h.ledgerService.DeleteTransaction(r.Context(), transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrTransactionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrTransactionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, LedgerMutationResponse{Positions: positions})
}
