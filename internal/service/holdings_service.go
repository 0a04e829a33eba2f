package service

import (
	"context"
	"fmt"

	"github.com/etfolio/etf-tracker-backend/internal/apperrors"
	"github.com/etfolio/etf-tracker-backend/internal/ledger"
	"github.com/etfolio/etf-tracker-backend/internal/model"
	"github.com/etfolio/etf-tracker-backend/internal/repository"
)

// Price source labels reported on each holding.
const (
	PriceSourceQuote     = "quote"
	PriceSourceCostBasis = "costBasis"
)

// HoldingsService produces the display-ready view of the portfolio: the
// replayed position set merged with carried-forward reserves and the
// last-known market quotes.
type HoldingsService struct {
	ledgerService *LedgerService
	reserveRepo   *repository.ReserveRepository
	quoteRepo     *repository.QuoteRepository
}

// NewHoldingsService creates a new HoldingsService with the provided dependencies.
func NewHoldingsService(
	ledgerService *LedgerService,
	reserveRepo *repository.ReserveRepository,
	quoteRepo *repository.QuoteRepository,
) *HoldingsService {
	return &HoldingsService{
		ledgerService: ledgerService,
		reserveRepo:   reserveRepo,
		quoteRepo:     quoteRepo,
	}
}

// GetHoldings replays the ledger and enriches each position with its
// reserved capital and market valuation.
//
// Quote absence is non-fatal: a symbol with no cached quote is valued at
// its average entry price (cost basis), so rendering never blocks on the
// quote provider. Fully-closed positions are included with zero shares;
// callers filter them out for display if desired.
func (s *HoldingsService) GetHoldings() ([]model.Holding, error) {
	positions, err := s.ledgerService.Replay()
	if err != nil {
		return nil, err
	}

	reserves, err := s.reserveRepo.ListAll()
	if err != nil {
		return nil, err
	}

	quotes, err := s.quoteRepo.ListAll()
	if err != nil {
		return nil, err
	}

	holdings := make([]model.Holding, len(positions))
	for i, p := range positions {
		p.Reserved = reserves[p.Symbol]

		h := model.Holding{Position: p}
		if q, ok := quotes[p.Symbol]; ok {
			h.MarketPrice = q.Price
			h.PriceSource = PriceSourceQuote
		} else {
			h.MarketPrice = p.AvgEntry
			h.PriceSource = PriceSourceCostBasis
		}
		h.MarketValue = round(p.Shares * h.MarketPrice)
		h.UnrealizedGain = round(p.Shares*h.MarketPrice - p.Invested)

		holdings[i] = h
	}

	return holdings, nil
}

// SetReserve stores the carried-forward reserved capital for a symbol.
func (s *HoldingsService) SetReserve(ctx context.Context, symbol string, reserved float64) error {
	normalized := ledger.NormalizeSymbol(symbol)
	if normalized == "" {
		return apperrors.ErrEmptySymbol
	}
	if reserved < 0 {
		return fmt.Errorf("%w: reserved %v", apperrors.ErrNegativeAmount, reserved)
	}

	return s.reserveRepo.Upsert(ctx, normalized, reserved)
}
