package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/etfolio/etf-tracker-backend/internal/api/request"
	"github.com/etfolio/etf-tracker-backend/internal/ledger"
	"github.com/etfolio/etf-tracker-backend/internal/model"
	"github.com/etfolio/etf-tracker-backend/internal/repository"
)

// LedgerService owns the transaction ledger: it validates and appends new
// transactions, deletes recorded ones, and replays the full ledger into the
// current position set after every mutation. Positions are never patched
// incrementally; a full replay is the only way they are produced, so a
// delete can never leave them out of step with the ledger.
type LedgerService struct {
	transactionRepo *repository.TransactionRepository
}

// NewLedgerService creates a new LedgerService with the provided repository dependencies.
func NewLedgerService(
	transactionRepo *repository.TransactionRepository,
) *LedgerService {
	return &LedgerService{
		transactionRepo: transactionRepo,
	}
}

// ListTransactions retrieves the full ledger in replay order.
func (s *LedgerService) ListTransactions() ([]model.Transaction, error) {
	return s.transactionRepo.List()
}

// GetTransaction retrieves a single transaction by its ID.
func (s *LedgerService) GetTransaction(transactionID string) (model.Transaction, error) {
	return s.transactionRepo.Get(transactionID)
}

// AppendTransaction validates and appends a transaction to the ledger, then
// replays the full ledger. The recorded transaction and the fresh position
// set are returned together so the caller renders from consistent state.
//
// A validation failure rejects the input before any ledger mutation, so
// previously accumulated positions are never corrupted by a bad record.
func (s *LedgerService) AppendTransaction(ctx context.Context, req request.CreateTransactionRequest) (*model.Transaction, []model.Position, error) {
	transactionDate, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, nil, err
	}

	action := model.Action(strings.ToUpper(strings.TrimSpace(req.Action)))

	total := req.Shares * req.Price
	if req.Total != nil {
		total = *req.Total
	}

	transaction := &model.Transaction{
		ID:        uuid.New().String(),
		Date:      transactionDate,
		Symbol:    ledger.NormalizeSymbol(req.Symbol),
		Action:    action,
		Shares:    req.Shares,
		Price:     req.Price,
		Total:     total,
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
	}

	if err := ledger.ValidateTransaction(*transaction); err != nil {
		return nil, nil, err
	}

	if err := s.transactionRepo.Insert(ctx, transaction); err != nil {
		return nil, nil, fmt.Errorf("failed to append transaction: %w", err)
	}

	positions, err := s.Replay()
	if err != nil {
		return nil, nil, err
	}

	return transaction, positions, nil
}

// DeleteTransaction removes a transaction by identity and replays the
// remaining ledger, returning the fresh position set.
func (s *LedgerService) DeleteTransaction(ctx context.Context, transactionID string) ([]model.Position, error) {
	if err := s.transactionRepo.Delete(ctx, transactionID); err != nil {
		return nil, err
	}

	return s.Replay()
}

// Replay loads the full ledger and reconciles it from an empty state.
func (s *LedgerService) Replay() ([]model.Position, error) {
	transactions, err := s.transactionRepo.List()
	if err != nil {
		return nil, err
	}

	positions, err := ledger.Reconcile(transactions)
	if err != nil {
		return nil, fmt.Errorf("failed to replay ledger: %w", err)
	}

	return positions, nil
}

// TradedSymbols returns every symbol that appears in the ledger, in
// first-seen order.
func (s *LedgerService) TradedSymbols() ([]string, error) {
	transactions, err := s.transactionRepo.List()
	if err != nil {
		return nil, err
	}
	return ledger.Symbols(transactions), nil
}
