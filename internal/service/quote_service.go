package service

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/etfolio/etf-tracker-backend/internal/model"
	"github.com/etfolio/etf-tracker-backend/internal/repository"
)

// maxConcurrentFetches bounds parallel requests to the quote provider.
const maxConcurrentFetches = 4

// QuoteClient fetches the current market price for a symbol.
// Implemented by quotes.FinanceClient; tests substitute a mock.
type QuoteClient interface {
	LatestClose(symbol string) (model.Quote, error)
}

// QuoteService refreshes and serves cached market quotes for every symbol
// in the ledger. Fetching is best-effort: a symbol whose fetch fails keeps
// its last-known cached price and never fails the refresh as a whole.
type QuoteService struct {
	client        QuoteClient
	quoteRepo     *repository.QuoteRepository
	ledgerService *LedgerService
}

// NewQuoteService creates a new QuoteService with the provided dependencies.
func NewQuoteService(
	client QuoteClient,
	quoteRepo *repository.QuoteRepository,
	ledgerService *LedgerService,
) *QuoteService {
	return &QuoteService{
		client:        client,
		quoteRepo:     quoteRepo,
		ledgerService: ledgerService,
	}
}

// ListQuotes returns the cached quote for every symbol that has one.
func (s *QuoteService) ListQuotes() (map[string]model.Quote, error) {
	return s.quoteRepo.ListAll()
}

// RefreshQuotes fetches current prices for all traded symbols concurrently
// and persists the successful ones to the quote cache.
//
// Per-symbol fetch failures are logged and skipped; the returned map holds
// only the quotes that were actually refreshed. The error return covers
// ledger access and cache persistence, not provider failures.
func (s *QuoteService) RefreshQuotes(ctx context.Context) (map[string]model.Quote, error) {
	symbols, err := s.ledgerService.TradedSymbols()
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	fetched := make(map[string]model.Quote)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentFetches)

	for _, symbol := range symbols {
		symbol := symbol
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			quote, err := s.client.LatestClose(symbol)
			if err != nil {
				log.Printf("quote refresh: %s: %v", symbol, err)
				return nil
			}
			// Providers occasionally echo a different casing; key by ours.
			quote.Symbol = symbol

			mu.Lock()
			fetched[symbol] = quote
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Persist serially; sqlite gains nothing from concurrent writers.
	for _, symbol := range symbols {
		quote, ok := fetched[symbol]
		if !ok {
			continue
		}
		if err := s.quoteRepo.Upsert(ctx, quote); err != nil {
			return nil, err
		}
	}

	return fetched, nil
}
